// Package synthesis invents conlang words. Generation is a pure function
// of the profile and the (lemma, class) key: the random source is seeded
// from a hash of those inputs, so the same request always produces the
// same word, across processes and machines.
package synthesis

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/glossa-lang/glossa/internal/grammar"
	"github.com/glossa-lang/glossa/internal/profile"
)

// ErrExhausted means the bounded retry budget ran out without producing
// a word satisfying the profile's constraints. This signals an
// unsatisfiable profile (e.g. every candidate hits a forbidden
// sequence), not a transient condition.
var ErrExhausted = errors.New("phonotactic constraints unsatisfiable")

// maxAttempts bounds whole-word resampling. Profiles that reject this
// many candidates in a row are broken, not unlucky.
const maxAttempts = 64

// Syllable is one generated syllable with its phonemes still separate,
// kept so tests and diagnostics can check phonotactic compliance.
type Syllable struct {
	Shape   string
	Onset   []string
	Nucleus string
	Coda    []string
}

// Word is a generated base form.
type Word struct {
	// Form is the written form after orthographic mapping.
	Form      string
	Syllables []Syllable
}

// Generator produces words for one profile.
type Generator struct {
	profile *profile.Profile
}

func NewGenerator(p *profile.Profile) *Generator {
	return &Generator{profile: p}
}

// Generate invents a base form for the key. The word's syllable count is
// drawn from the class's length table, each syllable from the shape
// table for its position in the word. Candidates violating a forbidden
// sequence or the letter cap are rejected and resampled from the same
// deterministic stream, so retries do not break reproducibility.
func (g *Generator) Generate(lemma string, class grammar.WordClass) (Word, error) {
	rng := rand.New(rand.NewSource(seed(g.profile.Seed, lemma, class)))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		word, ok := g.sample(rng, class)
		if !ok {
			continue
		}
		return word, nil
	}
	return Word{}, fmt.Errorf("generating word for %s %q: %w", class.Name(), lemma, ErrExhausted)
}

// sample draws one candidate word. ok is false when the candidate
// violates a constraint and the caller should retry.
func (g *Generator) sample(rng *rand.Rand, class grammar.WordClass) (Word, bool) {
	count := drawWeighted(rng, g.profile.WordLengths.For(class)) + 1
	word := Word{Syllables: make([]Syllable, 0, count)}

	var written strings.Builder
	for i := 0; i < count; i++ {
		shapes := g.shapesFor(i, count)
		syl, ok := g.sampleSyllable(rng, shapes)
		if !ok {
			return Word{}, false
		}
		word.Syllables = append(word.Syllables, syl)
		written.WriteString(g.render(syl))
	}
	word.Form = written.String()

	for _, seq := range g.profile.Phonotactics.Forbidden {
		if seq != "" && strings.Contains(word.Form, seq) {
			return Word{}, false
		}
	}
	if limit := g.profile.Phonotactics.MaxLetters; limit > 0 && uniseg.GraphemeClusterCount(word.Form) > limit {
		return Word{}, false
	}
	return word, true
}

func (g *Generator) shapesFor(index, count int) []string {
	shapes := g.profile.Phonotactics.Shapes
	switch {
	case count == 1:
		return shapes.Single
	case index == 0:
		return shapes.Initial
	case index == count-1:
		return shapes.Terminal
	default:
		return shapes.Middle
	}
}

func (g *Generator) sampleSyllable(rng *rand.Rand, shapes []string) (Syllable, bool) {
	if len(shapes) == 0 {
		return Syllable{}, false
	}
	shape := shapes[rng.Intn(len(shapes))]
	syl := Syllable{Shape: shape}

	seenNucleus := false
	for _, slot := range shape {
		switch slot {
		case 'V':
			nucleus, ok := pick(rng, g.profile.Phonotactics.Nuclei)
			if !ok {
				return Syllable{}, false
			}
			syl.Nucleus = nucleus
			seenNucleus = true
		case 'C':
			pool := g.profile.Phonotactics.Onsets
			if seenNucleus {
				pool = g.profile.Phonotactics.Codas
			}
			c, ok := pick(rng, pool)
			if !ok {
				return Syllable{}, false
			}
			if seenNucleus {
				syl.Coda = append(syl.Coda, c)
			} else {
				syl.Onset = append(syl.Onset, c)
			}
		}
	}
	return syl, seenNucleus
}

// render maps a syllable's phonemes to written form. Phonemes without an
// orthography entry spell themselves.
func (g *Generator) render(syl Syllable) string {
	var b strings.Builder
	for _, p := range syl.Onset {
		b.WriteString(g.spell(p))
	}
	b.WriteString(g.spell(syl.Nucleus))
	for _, p := range syl.Coda {
		b.WriteString(g.spell(p))
	}
	return b.String()
}

func (g *Generator) spell(phoneme string) string {
	if written, ok := g.profile.Orthography[phoneme]; ok {
		return written
	}
	return phoneme
}

func pick(rng *rand.Rand, pool []string) (string, bool) {
	if len(pool) == 0 {
		return "", false
	}
	return pool[rng.Intn(len(pool))], true
}

// drawWeighted returns an index into weights proportional to its value.
// Weights sum to 100 per profile validation; a zero-sum table degrades
// to index 0.
func drawWeighted(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	n := rng.Intn(total)
	for i, w := range weights {
		n -= w
		if n < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// seed hashes the profile salt and key into the generator's random seed.
// FNV-64a keeps it stable across runs and platforms.
func seed(salt, lemma string, class grammar.WordClass) int64 {
	h := fnv.New64a()
	h.Write([]byte(salt))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(lemma)))
	h.Write([]byte{0})
	h.Write([]byte(class))
	return int64(h.Sum64())
}
