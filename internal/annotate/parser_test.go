package annotate

import (
	"errors"
	"strings"
	"testing"

	"github.com/glossa-lang/glossa/internal/grammar"
)

func TestParseTagging(t *testing.T) {
	tokens, err := Parse("I see#v (a dog#n)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []struct {
		kind    Kind
		surface string
		class   grammar.WordClass
	}{
		{Word, "I", ""},
		{Word, "see", grammar.Verb},
		{GroupOpen, "", ""},
		{Word, "a", ""},
		{Word, "dog", grammar.Noun},
		{GroupClose, "", ""},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Kind != w.kind || tok.Surface != w.surface || tok.Class != w.class {
			t.Errorf("token %d = {%v %q %q}, want {%v %q %q}",
				i, tok.Kind, tok.Surface, tok.Class, w.kind, w.surface, w.class)
		}
	}
}

func TestParseAttributes(t *testing.T) {
	tokens, err := Parse("find#v.FUT answers#n.PL.DEF")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}

	find := tokens[0]
	if find.Surface != "find" || find.Class != grammar.Verb || !find.Attrs.Has(grammar.Future) {
		t.Errorf("find token = %+v", find)
	}
	answers := tokens[1]
	if answers.Class != grammar.Noun || !answers.Attrs.Has(grammar.Plural) || !answers.Attrs.Has(grammar.Definite) {
		t.Errorf("answers token = %+v", answers)
	}
	if answers.Lemma != "answers" {
		t.Errorf("parser should lowercase but not stem lemmas, got %q", answers.Lemma)
	}
}

func TestParsePunctuationPassthrough(t *testing.T) {
	tokens, err := Parse("wait#v, stop#v!")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	kinds := []Kind{Word, Punct, Word, Punct}
	if len(tokens) != len(kinds) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(kinds))
	}
	for i, k := range kinds {
		if tokens[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, tokens[i].Kind, k)
		}
	}
	if tokens[1].Surface != "," || tokens[3].Surface != "!" {
		t.Errorf("punctuation surfaces = %q, %q", tokens[1].Surface, tokens[3].Surface)
	}
}

func TestParseSentenceFinalDotIsNotAttribute(t *testing.T) {
	tokens, err := Parse("dog#n.PL.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want word + punct: %+v", len(tokens), tokens)
	}
	if !tokens[0].Attrs.Has(grammar.Plural) {
		t.Error("PL attribute lost")
	}
	if tokens[1].Kind != Punct || tokens[1].Surface != "." {
		t.Errorf("trailing dot should be punctuation, got %+v", tokens[1])
	}
}

func TestParseNestedGroups(t *testing.T) {
	if _, err := Parse("(a (big#nm dog#n))"); err != nil {
		t.Errorf("one level of nesting should parse: %v", err)
	}
	_, err := Parse("(a (big#nm (dog#n)))")
	if err == nil {
		t.Fatal("two levels of nesting should be rejected")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if !strings.Contains(pe.Msg, "nest") {
		t.Errorf("unexpected message: %s", pe.Msg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"Unknown pos tag", "dog#zzz", "unknown part-of-speech"},
		{"Unknown attribute", "dog#n.WEIRD", "unknown attribute"},
		{"Unbalanced open", "(a dog#n", "unbalanced opening"},
		{"Unbalanced close", "a dog#n)", "unbalanced closing"},
		{"Tag on punctuation", "! #n", "not attached to a word"},
		{"Dangling attribute", "stop .PL", "not attached to a word"},
		{"Empty pos tag", "dog# barks", "empty part-of-speech"},
		{"Double pos tag", "dog#n#v", "already has a part-of-speech"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.input)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestParseErrorSpan(t *testing.T) {
	_, err := Parse("see#v dog#zzz")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Snippet != "zzz" {
		t.Errorf("snippet = %q, want the offending tag", pe.Snippet)
	}
	if pe.Offset != strings.Index("see#v dog#zzz", "zzz") {
		t.Errorf("offset = %d", pe.Offset)
	}
}

func TestParseOffsets(t *testing.T) {
	input := "a (b#n)"
	tokens, err := Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range tokens {
		if tok.Kind == Word && input[tok.Offset] != tok.Surface[0] {
			t.Errorf("offset %d does not point at token %q", tok.Offset, tok.Surface)
		}
	}
}
