package lexicon

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossa-lang/glossa/internal/grammar"
)

func TestLookupOrReserveMissThenHit(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	_, res, err := c.LookupOrReserve(ctx, "Dog", grammar.Noun)
	require.NoError(t, err)
	require.NotNil(t, res, "first lookup must reserve")
	assert.Equal(t, NewKey("dog", grammar.Noun), res.Key(), "keys are lowercased")

	committed := res.Commit("kasu")
	assert.Equal(t, "kasu", committed.Base)

	lex, res2, err := c.LookupOrReserve(ctx, "dog", grammar.Noun)
	require.NoError(t, err)
	assert.Nil(t, res2, "second lookup must hit")
	assert.Equal(t, "kasu", lex.Base)
}

func TestLookupOrReserveSeparatesClasses(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	_, res, err := c.LookupOrReserve(ctx, "run", grammar.Verb)
	require.NoError(t, err)
	require.NotNil(t, res)
	res.Commit("tole")

	_, res2, err := c.LookupOrReserve(ctx, "run", grammar.Noun)
	require.NoError(t, err)
	assert.NotNil(t, res2, "same lemma under another class is a distinct key")
	res2.Abandon()
}

func TestConcurrentLookupGeneratesOnce(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	const n = 32
	var generations atomic.Int32
	bases := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lex, res, err := c.LookupOrReserve(ctx, "dog", grammar.Noun)
			if !assert.NoError(t, err) {
				return
			}
			if res != nil {
				generations.Add(1)
				time.Sleep(5 * time.Millisecond) // hold the reservation open
				lex = res.Commit("kasu")
			}
			bases[i] = lex.Base
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), generations.Load(), "exactly one caller may generate")
	for i, base := range bases {
		assert.Equalf(t, "kasu", base, "caller %d saw a different base", i)
	}
	assert.Equal(t, 1, c.Len())
}

func TestAbandonAllowsRetry(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	_, res, err := c.LookupOrReserve(ctx, "dog", grammar.Noun)
	require.NoError(t, err)
	require.NotNil(t, res)

	woke := make(chan *Reservation)
	go func() {
		_, res2, err := c.LookupOrReserve(ctx, "dog", grammar.Noun)
		assert.NoError(t, err)
		woke <- res2
	}()

	res.Abandon()
	select {
	case res2 := <-woke:
		require.NotNil(t, res2, "after abandon the waiter must get its own reservation")
		res2.Commit("kasu")
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never woke after abandon")
	}

	lex, ok := c.Get("dog", grammar.Noun)
	require.True(t, ok)
	assert.Equal(t, "kasu", lex.Base)
}

func TestLookupOrReserveHonorsCancellation(t *testing.T) {
	c := NewCache()
	_, res, err := c.LookupOrReserve(context.Background(), "dog", grammar.Noun)
	require.NoError(t, err)
	require.NotNil(t, res)
	defer res.Abandon()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error)
	go func() {
		_, _, err := c.LookupOrReserve(ctx, "dog", grammar.Noun)
		errc <- err
	}()

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked lookup ignored cancellation")
	}
}

func TestCommitAfterAbandonIsNoOp(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	_, res, err := c.LookupOrReserve(ctx, "dog", grammar.Noun)
	require.NoError(t, err)
	res.Abandon()
	res.Commit("kasu")
	res.Abandon()

	_, ok := c.Get("dog", grammar.Noun)
	assert.False(t, ok, "commit after abandon must not store anything")
}

func TestOverride(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	lex := c.Override("dog", grammar.Noun, "wawa")
	assert.True(t, lex.Override)

	got, res, err := c.LookupOrReserve(ctx, "dog", grammar.Noun)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, "wawa", got.Base)
}

func TestOverrideWinsOverInFlightCommit(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	_, res, err := c.LookupOrReserve(ctx, "dog", grammar.Noun)
	require.NoError(t, err)
	require.NotNil(t, res)

	c.Override("dog", grammar.Noun, "wawa")
	committed := res.Commit("kasu")
	assert.Equal(t, "wawa", committed.Base, "commit must not displace a user override")

	got, _ := c.Get("dog", grammar.Noun)
	assert.Equal(t, "wawa", got.Base)
}

func TestLexemesSorted(t *testing.T) {
	c := NewCache(
		Lexeme{Lemma: "see", Class: grammar.Verb, Base: "miru"},
		Lexeme{Lemma: "dog", Class: grammar.Noun, Base: "kasu"},
		Lexeme{Lemma: "dog", Class: grammar.Verb, Base: "kasu"},
	)

	var keys []string
	for _, l := range c.Lexemes() {
		keys = append(keys, l.Key().String())
	}
	assert.Equal(t, []string{"dog#n", "dog#v", "see#v"}, keys)
}

func TestHomonyms(t *testing.T) {
	c := NewCache(
		Lexeme{Lemma: "see", Class: grammar.Verb, Base: "miru"},
		Lexeme{Lemma: "dog", Class: grammar.Noun, Base: "kasu"},
		Lexeme{Lemma: "cat", Class: grammar.Noun, Base: "kasu"},
	)
	assert.Equal(t, 2, c.Homonyms("kasu"))
	assert.Equal(t, 1, c.Homonyms("miru"))
	assert.Equal(t, 0, c.Homonyms("zzz"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := t.TempDir() + "/lexicon.json"
	c := NewCache(
		Lexeme{Lemma: "dog", Class: grammar.Noun, Base: "kasu"},
		Lexeme{Lemma: "house", Class: grammar.Noun, Base: "toma", Override: true},
	)
	require.NoError(t, Save(c, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c.Lexemes(), loaded.Lexemes())
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	c, err := Load(t.TempDir() + "/nope.json")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"Bad json", "{"},
		{"Wrong version", `{"version": 99, "lexemes": []}`},
		{"Entry without base", `{"version": 1, "lexemes": [{"lemma": "dog", "class": "n", "base": ""}]}`},
		{"Unknown class", `{"version": 1, "lexemes": [{"lemma": "dog", "class": "xyz", "base": "kasu"}]}`},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/lex%d.json", dir, i)
			require.NoError(t, writeFile(path, tt.body))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}
