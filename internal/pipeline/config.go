// Package pipeline composes the stages of a translation run: annotation
// parsing or tagging, tree building, lexicon lookup and generation,
// inflection and transduction.
package pipeline

import (
	"fmt"

	"github.com/glossa-lang/glossa/internal/lexicon"
	"github.com/glossa-lang/glossa/internal/profile"
	"github.com/glossa-lang/glossa/internal/tagger"
)

const (
	MinConcurrency     = 1
	MaxConcurrency     = 20
	DefaultConcurrency = 4
)

// Config holds everything a Translator needs for a session. Profile and
// Lexicon are shared across requests; the profile must not change while
// the translator is in use.
type Config struct {
	Profile *profile.Profile
	Lexicon *lexicon.Cache

	// Tagger handles basic-mode (un-annotated) input. Nil disables basic
	// mode and the annotated-parse fallback.
	Tagger tagger.Tagger

	// Concurrency bounds parallel word generation within one request.
	Concurrency int
}

func ClampConcurrency(value int) (int, bool) {
	if value < MinConcurrency {
		return MinConcurrency, true
	}
	if value > MaxConcurrency {
		return MaxConcurrency, true
	}
	return value, false
}

// Normalize applies safe bounds to config values and returns any
// adjustments as user-facing notes.
func (c Config) Normalize() (Config, []string) {
	var notes []string
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if clamped, changed := ClampConcurrency(c.Concurrency); changed {
		notes = append(notes, fmt.Sprintf("concurrency clamped from %d to %d (max %d)", c.Concurrency, clamped, MaxConcurrency))
		c.Concurrency = clamped
	}
	return c, notes
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Profile == nil {
		return fmt.Errorf("config: profile is required")
	}
	if c.Lexicon == nil {
		return fmt.Errorf("config: lexicon is required")
	}
	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
