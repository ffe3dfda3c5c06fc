package tagger

import (
	"context"
	"strings"

	"github.com/glossa-lang/glossa/internal/annotate"
	"github.com/glossa-lang/glossa/internal/grammar"
)

// Heuristic is an offline, rule-based tagger for English-like input. It
// is deliberately modest: closed-class word lists, a couple of suffix
// rules, and positional guesses. Words it cannot classify stay untagged
// and pass through translation unchanged, which is the documented
// degradation for basic mode.
type Heuristic struct{}

var _ Tagger = Heuristic{}

var closedClass = map[string]grammar.WordClass{
	"a": grammar.Determiner, "an": grammar.Determiner, "the": grammar.Determiner,
	"this": grammar.Determiner, "that": grammar.Determiner,
	"these": grammar.Determiner, "those": grammar.Determiner,

	"i": grammar.Pronoun, "you": grammar.Pronoun, "he": grammar.Pronoun,
	"she": grammar.Pronoun, "it": grammar.Pronoun, "we": grammar.Pronoun,
	"they": grammar.Pronoun, "me": grammar.Pronoun, "him": grammar.Pronoun,
	"her": grammar.Pronoun, "us": grammar.Pronoun, "them": grammar.Pronoun,

	"in": grammar.Adposition, "on": grammar.Adposition, "at": grammar.Adposition,
	"to": grammar.Adposition, "from": grammar.Adposition, "with": grammar.Adposition,
	"of": grammar.Adposition, "by": grammar.Adposition, "for": grammar.Adposition,
	"under": grammar.Adposition, "over": grammar.Adposition,

	"and": grammar.Conjunction, "or": grammar.Conjunction, "but": grammar.Conjunction,
	"nor": grammar.Conjunction, "so": grammar.Conjunction,
}

// Tag annotates raw text. The context is unused; the method signature
// matches the Tagger interface shared with remote implementations.
func (Heuristic) Tag(_ context.Context, text string) ([]annotate.Token, error) {
	tokens, err := annotate.Parse(text)
	if err != nil {
		return nil, err
	}

	futureVerb := false
	out := make([]annotate.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != annotate.Word || tok.Class != "" {
			out = append(out, tok)
			continue
		}

		// "will" is consumed as a future marker on the next verb rather
		// than translated as its own word.
		if tok.Lemma == "will" {
			futureVerb = true
			continue
		}

		if class, ok := closedClass[tok.Lemma]; ok {
			tok.Class = class
			out = append(out, tok)
			continue
		}

		tok = classifyOpen(tok, out, futureVerb)
		if tok.Class == grammar.Verb {
			if futureVerb {
				tok.Attrs = tok.Attrs.With(grammar.Future)
			}
			futureVerb = false
		}
		out = append(out, tok)
	}
	return group(out), nil
}

// classifyOpen guesses an open-class reading from suffix shape and the
// immediately preceding token.
func classifyOpen(tok annotate.Token, prev []annotate.Token, futureVerb bool) annotate.Token {
	lemma := tok.Lemma

	switch {
	case strings.HasSuffix(lemma, "ed") && len(lemma) > 3:
		tok.Class = grammar.Verb
		tok.Lemma = strings.TrimSuffix(lemma, "ed")
		tok.Attrs = tok.Attrs.With(grammar.Past)
		return tok

	case strings.HasSuffix(lemma, "ing") && len(lemma) > 4:
		tok.Class = grammar.Verb
		tok.Lemma = strings.TrimSuffix(lemma, "ing")
		return tok
	}

	switch lastClass(prev) {
	case grammar.Determiner, grammar.NounModifier, grammar.Adposition:
		tok.Class = grammar.Noun
	case grammar.Pronoun:
		tok.Class = grammar.Verb
	default:
		if futureVerb {
			tok.Class = grammar.Verb
		}
	}

	// Plural nouns keep their singular lemma so "answers" and "answer"
	// share a lexicon entry.
	if tok.Class == grammar.Noun && strings.HasSuffix(lemma, "s") && !strings.HasSuffix(lemma, "ss") && len(lemma) > 2 {
		tok.Lemma = strings.TrimSuffix(lemma, "s")
		tok.Attrs = tok.Attrs.With(grammar.Plural)
	}
	return tok
}

func lastClass(tokens []annotate.Token) grammar.WordClass {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Kind == annotate.Word {
			return tokens[i].Class
		}
	}
	return ""
}

// group wraps each determiner together with its noun in a group, so the
// tree builder sees the same phrase boundaries explicit annotation would
// give it.
func group(tokens []annotate.Token) []annotate.Token {
	out := make([]annotate.Token, 0, len(tokens))
	open := false
	for _, tok := range tokens {
		if open && (tok.Kind != annotate.Word || tok.Class == grammar.Determiner) {
			out = append(out, annotate.Token{Kind: annotate.GroupClose, Offset: tok.Offset})
			open = false
		}
		if !open && tok.Kind == annotate.Word && tok.Class == grammar.Determiner {
			out = append(out, annotate.Token{Kind: annotate.GroupOpen, Offset: tok.Offset})
			open = true
		}
		out = append(out, tok)
		if open && tok.Class == grammar.Noun {
			out = append(out, annotate.Token{Kind: annotate.GroupClose, Offset: tok.Offset})
			open = false
		}
	}
	if open {
		out = append(out, annotate.Token{Kind: annotate.GroupClose})
	}
	return out
}
