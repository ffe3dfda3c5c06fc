// Package lexicon is the per-conlang word memory: once a source lemma
// has been assigned a generated word, every later translation sees the
// same word. The cache is the only shared mutable state in the pipeline,
// and its reserve/commit protocol is what makes generation happen at
// most once per key even under concurrent translations.
package lexicon

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/glossa-lang/glossa/internal/grammar"
)

// Key identifies one lexicon entry. The same lemma may exist under
// several word classes with different generated forms.
type Key struct {
	Lemma string            `json:"lemma"`
	Class grammar.WordClass `json:"class"`
}

func NewKey(lemma string, class grammar.WordClass) Key {
	return Key{Lemma: strings.ToLower(lemma), Class: class}
}

func (k Key) String() string {
	return fmt.Sprintf("%s#%s", k.Lemma, k.Class)
}

// Lexeme is one committed entry. Base never changes after commit except
// through an explicit user override.
type Lexeme struct {
	Lemma string            `json:"lemma"`
	Class grammar.WordClass `json:"class"`
	// Base is the conlang dictionary form.
	Base string `json:"base"`
	// Override marks a user-supplied irregular form that generation must
	// never replace.
	Override bool `json:"override,omitempty"`
}

func (l Lexeme) Key() Key {
	return NewKey(l.Lemma, l.Class)
}

// Cache holds one conlang's lexemes. The zero value is not usable; call
// NewCache. All methods are safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]Lexeme
	// pending marks keys a caller has reserved but not yet committed.
	// The channel closes on commit or abandon, waking waiters.
	pending map[Key]chan struct{}
}

func NewCache(lexemes ...Lexeme) *Cache {
	c := &Cache{
		entries: make(map[Key]Lexeme, len(lexemes)),
		pending: make(map[Key]chan struct{}),
	}
	for _, l := range lexemes {
		c.entries[l.Key()] = l
	}
	return c
}

// Reservation is the exclusive right to populate one key. Exactly one of
// Commit or Abandon must be called; until then every other lookup for
// the key blocks.
type Reservation struct {
	cache *Cache
	key   Key
	ch    chan struct{}
	done  bool
}

// Key returns the reserved key.
func (r *Reservation) Key() Key { return r.key }

// Commit stores the generated base form and wakes all waiters.
func (r *Reservation) Commit(base string) Lexeme {
	lex := Lexeme{Lemma: r.key.Lemma, Class: r.key.Class, Base: base}
	r.cache.mu.Lock()
	defer r.cache.mu.Unlock()
	if r.done {
		return r.cache.entries[r.key]
	}
	r.done = true
	if existing, ok := r.cache.entries[r.key]; ok && existing.Override {
		// An override landed while generation was in flight; it wins.
		lex = existing
	} else {
		r.cache.entries[r.key] = lex
	}
	delete(r.cache.pending, r.key)
	close(r.ch)
	return lex
}

// Abandon releases the reservation without committing, so a later
// lookup can reserve and generate the key again. Abandon after Commit is
// a no-op.
func (r *Reservation) Abandon() {
	r.cache.mu.Lock()
	defer r.cache.mu.Unlock()
	if r.done {
		return
	}
	r.done = true
	delete(r.cache.pending, r.key)
	close(r.ch)
}

// LookupOrReserve returns the committed lexeme for (lemma, class) when
// one exists. On a miss it reserves the key and returns a non-nil
// Reservation: the caller must generate a base form and Commit it, or
// Abandon on failure. Concurrent callers for a reserved key block until
// the reservation resolves; at most one caller ever holds a reservation
// for a given key at a time.
func (c *Cache) LookupOrReserve(ctx context.Context, lemma string, class grammar.WordClass) (Lexeme, *Reservation, error) {
	key := NewKey(lemma, class)
	for {
		c.mu.Lock()
		if lex, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return lex, nil, nil
		}
		ch, reserved := c.pending[key]
		if !reserved {
			ch = make(chan struct{})
			c.pending[key] = ch
			c.mu.Unlock()
			return Lexeme{}, &Reservation{cache: c, key: key, ch: ch}, nil
		}
		c.mu.Unlock()

		select {
		case <-ch:
			// Committed or abandoned; re-check.
		case <-ctx.Done():
			return Lexeme{}, nil, ctx.Err()
		}
	}
}

// Get returns the committed lexeme for (lemma, class) without reserving.
func (c *Cache) Get(lemma string, class grammar.WordClass) (Lexeme, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lex, ok := c.entries[NewKey(lemma, class)]
	return lex, ok
}

// Override installs a user-supplied irregular form for the key,
// replacing any generated form. Waiters blocked on a pending reservation
// for the key are not woken; the reservation holder's eventual Commit
// will not displace the override.
func (c *Cache) Override(lemma string, class grammar.WordClass, base string) Lexeme {
	key := NewKey(lemma, class)
	lex := Lexeme{Lemma: key.Lemma, Class: class, Base: base, Override: true}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = lex
	return lex
}

// Len returns the number of committed lexemes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Lexemes returns all committed entries sorted by lemma then class, for
// stable listings and persistence.
func (c *Cache) Lexemes() []Lexeme {
	c.mu.Lock()
	out := make([]Lexeme, 0, len(c.entries))
	for _, l := range c.entries {
		out = append(out, l)
	}
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Lemma != out[j].Lemma {
			return out[i].Lemma < out[j].Lemma
		}
		return out[i].Class < out[j].Class
	})
	return out
}

// Homonyms counts committed entries sharing the given base form.
// Distinct lemmas legitimately colliding on one generated form is
// ordinary homonymy, not an error, but users like to see it.
func (c *Cache) Homonyms(base string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.entries {
		if l.Base == base {
			n++
		}
	}
	return n
}
