package pipeline

import "github.com/glossa-lang/glossa/internal/lexicon"

// Mode selects how input text is turned into tokens.
type Mode string

const (
	// ModeAnnotated parses explicit annotation syntax and fails on
	// malformed input.
	ModeAnnotated Mode = "annotated"
	// ModeBasic sends the raw text to the configured tagger.
	ModeBasic Mode = "basic"
	// ModeAuto parses annotation first and degrades to the tagger when
	// parsing fails. This is the default.
	ModeAuto Mode = "auto"
)

// Request is one translation call. Requests carry no cross-call state.
type Request struct {
	Text string
	Mode Mode
	// IncludeTree adds the post-transduction constituent tree to the
	// result for diagnostics.
	IncludeTree bool
}

// DiagnosticKind labels a non-fatal condition encountered mid-request.
type DiagnosticKind string

const (
	// DiagMorphologyGap means a paradigm had no rule for a requested
	// attribute combination and the unmarked form was used.
	DiagMorphologyGap DiagnosticKind = "morphology-gap"
	// DiagTaggerFallback means annotated parsing failed and the tagger
	// produced the tokens instead.
	DiagTaggerFallback DiagnosticKind = "tagger-fallback"
)

// Diagnostic is one non-fatal finding attached to a result.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

// Result is the outcome of one successful translation.
type Result struct {
	// Output is the final conlang text.
	Output string
	// Tree is a bracketed dump of the transduced constituent tree,
	// filled only when the request asked for it.
	Tree string
	// NewWords lists lexemes generated during this request, in lemma
	// order. Repeat translations of the same text return it empty.
	NewWords []lexicon.Lexeme
	// Diagnostics lists non-fatal gaps and fallbacks, in encounter order.
	Diagnostics []Diagnostic
}
