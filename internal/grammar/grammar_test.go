package grammar

import "testing"

func TestParseWordClass(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  WordClass
		ok    bool
	}{
		{"Short tag", "n", Noun, true},
		{"Short tag verb", "v", Verb, true},
		{"Determiner", "det", Determiner, true},
		{"Uppercase tag", "N", Noun, true},
		{"Long name", "Noun Modifier", NounModifier, true},
		{"Abbreviation", "Adp", Adposition, true},
		{"Whitespace", " pro ", Pronoun, true},
		{"Unknown", "xyz", "", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseWordClass(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseWordClass(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestWordClassContentSplit(t *testing.T) {
	content := []WordClass{Noun, Verb, NounModifier, VerbModifier}
	function := []WordClass{Adposition, Conjunction, Determiner, Pronoun}

	for _, wc := range content {
		if !wc.IsContent() {
			t.Errorf("%s should be a content class", wc.Name())
		}
	}
	for _, wc := range function {
		if wc.IsContent() {
			t.Errorf("%s should be a function class", wc.Name())
		}
	}
}

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		input string
		want  Attribute
		ok    bool
	}{
		{"PL", Plural, true},
		{"pst", Past, true},
		{"FUT", Future, true},
		{"BOGUS", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseAttribute(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseAttribute(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAttrSetKeyOrderIndependent(t *testing.T) {
	a := NewAttrSet(Past, Plural)
	b := NewAttrSet(Plural, Past)
	if a.Key() != b.Key() {
		t.Errorf("keys differ for same set: %q vs %q", a.Key(), b.Key())
	}
	if !a.Equal(b) {
		t.Error("sets with same members should be equal")
	}
}

func TestAttrSetDedup(t *testing.T) {
	s := NewAttrSet(Plural, Plural, Past)
	if len(s) != 2 {
		t.Fatalf("expected 2 attributes after dedup, got %d (%v)", len(s), s)
	}
	if !s.Has(Plural) || !s.Has(Past) {
		t.Errorf("set missing members: %v", s)
	}
}

func TestAttrSetWithWithout(t *testing.T) {
	s := NewAttrSet(Past)
	s2 := s.With(Plural)
	if !s2.Has(Plural) || !s2.Has(Past) {
		t.Errorf("With(Plural) = %v", s2)
	}
	if s.Has(Plural) {
		t.Error("With should not mutate the receiver")
	}
	s3 := s2.Without(Past)
	if s3.Has(Past) || !s3.Has(Plural) {
		t.Errorf("Without(Past) = %v", s3)
	}
}
