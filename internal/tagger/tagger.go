// Package tagger infers annotation for plain, un-annotated input.
// Output is an ordinary token sequence, so downstream stages cannot tell
// basic mode from hand-annotated input.
package tagger

import (
	"context"

	"github.com/glossa-lang/glossa/internal/annotate"
)

// Tagger turns raw text into an annotated token sequence.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]annotate.Token, error)
}
