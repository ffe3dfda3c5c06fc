package grammar

import (
	"sort"
	"strings"
)

// WordClass is a simplified part of speech, chosen to describe arbitrary
// languages rather than any one natural language.
type WordClass string

const (
	Adposition   WordClass = "adp"
	Conjunction  WordClass = "conj"
	Determiner   WordClass = "det"
	Noun         WordClass = "n"
	NounModifier WordClass = "nm"
	Pronoun      WordClass = "pro"
	Verb         WordClass = "v"
	VerbModifier WordClass = "vm"
)

type wordClassInfo struct {
	Name      string
	ShortName string
	Content   bool // content words draw from the longer syllable-count table
}

var wordClasses = map[WordClass]wordClassInfo{
	Adposition:   {Name: "Adposition", ShortName: "Adp", Content: false},
	Conjunction:  {Name: "Conjunction", ShortName: "Conj", Content: false},
	Determiner:   {Name: "Determiner", ShortName: "Det", Content: false},
	Noun:         {Name: "Noun", ShortName: "Noun", Content: true},
	NounModifier: {Name: "Noun Modifier", ShortName: "NM", Content: true},
	Pronoun:      {Name: "Pronoun", ShortName: "Pro", Content: false},
	Verb:         {Name: "Verb", ShortName: "Verb", Content: true},
	VerbModifier: {Name: "Verb Modifier", ShortName: "VM", Content: true},
}

// AllWordClasses returns every recognized word class in a stable order.
func AllWordClasses() []WordClass {
	return []WordClass{
		Adposition, Conjunction, Determiner, Noun,
		NounModifier, Pronoun, Verb, VerbModifier,
	}
}

// ParseWordClass resolves an annotation tag (e.g. "n", "v", "det") to a
// word class. Long names are accepted case-insensitively as well.
func ParseWordClass(tag string) (WordClass, bool) {
	wc := WordClass(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := wordClasses[wc]; ok {
		return wc, true
	}
	for class, info := range wordClasses {
		if strings.EqualFold(info.Name, tag) || strings.EqualFold(info.ShortName, tag) {
			return class, true
		}
	}
	return "", false
}

// Name returns the human-readable name of the word class.
func (wc WordClass) Name() string {
	if info, ok := wordClasses[wc]; ok {
		return info.Name
	}
	return string(wc)
}

// ShortName returns the abbreviated name used in diagnostics.
func (wc WordClass) ShortName() string {
	if info, ok := wordClasses[wc]; ok {
		return info.ShortName
	}
	return string(wc)
}

// IsContent reports whether the class is an open (content) class. Function
// words tend to be shorter, so the word generator keeps separate
// syllable-count tables for the two groups.
func (wc WordClass) IsContent() bool {
	return wordClasses[wc].Content
}

// Known reports whether wc is one of the recognized word classes.
func (wc WordClass) Known() bool {
	_, ok := wordClasses[wc]
	return ok
}

// PhraseType categorizes a constituent, analogous to a phrase category in
// linguistic syntax.
type PhraseType string

const (
	// Clause is the root constituent of a sentence.
	Clause PhraseType = "clause"
	// Argument is a participant phrase, typically headed by a noun or pronoun.
	Argument PhraseType = "argument"
	// Action is a predicate phrase headed by a verb.
	Action PhraseType = "action"
	// Relation is an adpositional phrase.
	Relation PhraseType = "relation"
)

var phraseNames = map[PhraseType][2]string{
	Clause:   {"Clause Phrase", "Clause"},
	Argument: {"Argument Phrase", "Arg"},
	Action:   {"Action Phrase", "Action"},
	Relation: {"Relation Phrase", "Rel"},
}

// Name returns the human-readable phrase type name.
func (pt PhraseType) Name() string {
	if n, ok := phraseNames[pt]; ok {
		return n[0]
	}
	return string(pt)
}

// ShortName returns the abbreviated phrase type name used in diagnostics.
func (pt PhraseType) ShortName() string {
	if n, ok := phraseNames[pt]; ok {
		return n[1]
	}
	return string(pt)
}

// Attribute is a grammatical feature tag attached to a token, such as a
// tense or a number.
type Attribute string

const (
	Past     Attribute = "PST"
	Present  Attribute = "PRS"
	Future   Attribute = "FUT"
	Singular Attribute = "SG"
	Plural   Attribute = "PL"
	Negative Attribute = "NEG"
	Definite Attribute = "DEF"
)

var attributes = map[Attribute]string{
	Past:     "past tense",
	Present:  "present tense",
	Future:   "future tense",
	Singular: "singular number",
	Plural:   "plural number",
	Negative: "negation",
	Definite: "definiteness",
}

// ParseAttribute resolves an annotation suffix (e.g. "PL") to an attribute.
func ParseAttribute(tag string) (Attribute, bool) {
	attr := Attribute(strings.ToUpper(strings.TrimSpace(tag)))
	_, ok := attributes[attr]
	return attr, ok
}

// Describe returns a human-readable description of the attribute.
func (a Attribute) Describe() string {
	if d, ok := attributes[a]; ok {
		return d
	}
	return string(a)
}

// AttrSet is an order-independent set of attributes. The zero value is an
// empty set.
type AttrSet []Attribute

// NewAttrSet builds a deduplicated, canonically ordered attribute set.
func NewAttrSet(attrs ...Attribute) AttrSet {
	seen := make(map[Attribute]bool, len(attrs))
	set := make(AttrSet, 0, len(attrs))
	for _, a := range attrs {
		if !seen[a] {
			seen[a] = true
			set = append(set, a)
		}
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

// Has reports whether the set contains the attribute.
func (s AttrSet) Has(a Attribute) bool {
	for _, attr := range s {
		if attr == a {
			return true
		}
	}
	return false
}

// With returns a new set containing the receiver's attributes plus a.
func (s AttrSet) With(a Attribute) AttrSet {
	return NewAttrSet(append(append(AttrSet{}, s...), a)...)
}

// Without returns a new set with a removed.
func (s AttrSet) Without(a Attribute) AttrSet {
	out := make(AttrSet, 0, len(s))
	for _, attr := range s {
		if attr != a {
			out = append(out, attr)
		}
	}
	return out
}

// Key returns a canonical string form usable as a lookup key, independent
// of the order attributes were supplied in.
func (s AttrSet) Key() string {
	canonical := NewAttrSet(s...)
	parts := make([]string, len(canonical))
	for i, a := range canonical {
		parts[i] = string(a)
	}
	return strings.Join(parts, "+")
}

// Equal reports whether two sets contain the same attributes.
func (s AttrSet) Equal(other AttrSet) bool {
	return s.Key() == other.Key()
}
