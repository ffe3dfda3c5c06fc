package morphology

import (
	"testing"

	"github.com/glossa-lang/glossa/internal/grammar"
	"github.com/glossa-lang/glossa/internal/profile"
)

func testProfile() *profile.Profile {
	return &profile.Profile{
		Morphology: []profile.Paradigm{
			{
				Class: grammar.Noun,
				Rules: []profile.Rule{
					{Match: []grammar.Attribute{grammar.Plural}, Op: profile.Suffix, Arg: "i"},
				},
			},
			{
				Class: grammar.Verb,
				Rules: []profile.Rule{
					{Match: []grammar.Attribute{grammar.Past}, Op: profile.Suffix, Arg: "ta"},
					{Match: []grammar.Attribute{grammar.Future}, Op: profile.Prefix, Arg: "ne"},
					{Match: []grammar.Attribute{grammar.Negative}, Op: profile.Reduplicate},
					{Match: []grammar.Attribute{grammar.Past, grammar.Plural}, Op: profile.Suffix, Arg: "tan"},
				},
			},
		},
	}
}

func TestInflect(t *testing.T) {
	eng := New(testProfile())

	tests := []struct {
		name  string
		base  string
		class grammar.WordClass
		attrs grammar.AttrSet
		want  string
	}{
		{"No attributes", "kasu", grammar.Noun, nil, "kasu"},
		{"Plural suffix", "kasu", grammar.Noun, grammar.NewAttrSet(grammar.Plural), "kasui"},
		{"Past suffix", "miru", grammar.Verb, grammar.NewAttrSet(grammar.Past), "miruta"},
		{"Future prefix", "miru", grammar.Verb, grammar.NewAttrSet(grammar.Future), "nemiru"},
		{"Reduplication", "miru", grammar.Verb, grammar.NewAttrSet(grammar.Negative), "mmiru"},
		{"Combined rules compose", "miru", grammar.Verb, grammar.NewAttrSet(grammar.Future, grammar.Negative), "nnemiru"},
		{"Most specific rule wins", "miru", grammar.Verb, grammar.NewAttrSet(grammar.Past, grammar.Plural), "mirutan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gaps := eng.Inflect(tt.base, tt.class, tt.attrs)
			if got != tt.want {
				t.Errorf("Inflect(%q, %s, %v) = %q, want %q", tt.base, tt.class, tt.attrs, got, tt.want)
			}
			if len(gaps) != 0 {
				t.Errorf("unexpected gaps: %v", gaps)
			}
		})
	}
}

func TestInflectIgnoresUnmodeledAttributes(t *testing.T) {
	eng := New(testProfile())

	// The noun paradigm never mentions DEF, so DEF must not trigger a gap.
	got, gaps := eng.Inflect("kasu", grammar.Noun, grammar.NewAttrSet(grammar.Plural, grammar.Definite))
	if got != "kasui" {
		t.Errorf("got %q, want %q", got, "kasui")
	}
	if len(gaps) != 0 {
		t.Errorf("unmodeled attribute produced gaps: %v", gaps)
	}
}

func TestInflectGap(t *testing.T) {
	p := &profile.Profile{
		Morphology: []profile.Paradigm{
			{
				Class: grammar.Noun,
				Rules: []profile.Rule{
					// PL is modeled only in combination, so PL alone is a gap.
					{Match: []grammar.Attribute{grammar.Plural, grammar.Definite}, Op: profile.Suffix, Arg: "in"},
				},
			},
		},
	}
	eng := New(p)

	got, gaps := eng.Inflect("kasu", grammar.Noun, grammar.NewAttrSet(grammar.Plural))
	if got != "kasu" {
		t.Errorf("gap should fall back to the base form, got %q", got)
	}
	if len(gaps) != 1 {
		t.Fatalf("got %d gaps, want exactly 1: %v", len(gaps), gaps)
	}
	gap := gaps[0]
	if gap.Class != grammar.Noun || !gap.Missing.Has(grammar.Plural) || gap.Base != "kasu" {
		t.Errorf("gap = %+v", gap)
	}
}

func TestInflectNoParadigm(t *testing.T) {
	eng := New(&profile.Profile{})
	got, gaps := eng.Inflect("kasu", grammar.Noun, grammar.NewAttrSet(grammar.Plural))
	if got != "kasu" || len(gaps) != 0 {
		t.Errorf("classes without a paradigm should pass through, got %q / %v", got, gaps)
	}
}

func TestApplyRuleMutate(t *testing.T) {
	tests := []struct {
		form string
		arg  string
		want string
	}{
		{"kasu", "u>o", "kaso"},
		{"susu", "s>z", "suzu"}, // last occurrence only
		{"kasu", "x>y", "kasu"}, // no occurrence
		{"kasu", "broken", "kasu"},
	}
	for _, tt := range tests {
		got := applyRule(tt.form, profile.Rule{Op: profile.Mutate, Arg: tt.arg})
		if got != tt.want {
			t.Errorf("mutate %q with %q = %q, want %q", tt.form, tt.arg, got, tt.want)
		}
	}
}

func TestApplyRuleReduplicateGraphemes(t *testing.T) {
	got := applyRule("ŋaka", profile.Rule{Op: profile.Reduplicate})
	if got != "ŋŋaka" {
		t.Errorf("got %q, want %q", got, "ŋŋaka")
	}
}
