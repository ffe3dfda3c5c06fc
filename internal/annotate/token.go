package annotate

import (
	"fmt"

	"github.com/glossa-lang/glossa/internal/grammar"
)

// Kind discriminates the token variants the parser emits.
type Kind int

const (
	// Word is a translatable lexical unit.
	Word Kind = iota
	// Punct is a punctuation character passed through to output.
	Punct
	// GroupOpen and GroupClose delimit a multi-word group.
	GroupOpen
	GroupClose
)

// Token is one parsed input unit. Tokens are immutable once produced.
type Token struct {
	Kind Kind
	// Surface is the written form with all annotation stripped.
	Surface string
	// Lemma is the lowercased dictionary form used as the lexicon key.
	// The annotation parser sets it to the lowercased surface; a tagger
	// may strip inflection first (e.g. "answers" -> "answer").
	Lemma string
	// Class is the annotated word class, or empty if the word carried no
	// part-of-speech tag.
	Class grammar.WordClass
	// Attrs is the order-independent attribute set from .TAG suffixes.
	Attrs grammar.AttrSet
	// Offset is the byte offset of the token in the original input.
	Offset int
}

// ParseError reports malformed annotation syntax with the offending span.
type ParseError struct {
	Offset  int
	End     int
	Snippet string
	Msg     string
}

func (e *ParseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("parse error at offset %d (%q): %s", e.Offset, e.Snippet, e.Msg)
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

func newParseError(input string, start, end int, msg string) *ParseError {
	if end > len(input) {
		end = len(input)
	}
	snippet := ""
	if start >= 0 && start < end {
		snippet = input[start:end]
	}
	return &ParseError{Offset: start, End: end, Snippet: snippet, Msg: msg}
}
