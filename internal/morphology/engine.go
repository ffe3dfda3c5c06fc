// Package morphology applies a profile's inflection rules to generated
// base forms. The engine is a pure function of the profile; it keeps no
// state between calls and is safe for concurrent use.
package morphology

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/glossa-lang/glossa/internal/grammar"
	"github.com/glossa-lang/glossa/internal/profile"
)

// Gap records a requested attribute combination the profile's paradigm
// could not express. The unmarked form was substituted; translation
// continues.
type Gap struct {
	Class grammar.WordClass
	// Missing holds the attributes no rule covered.
	Missing grammar.AttrSet
	// Base is the uninflected form the gap fell back to.
	Base string
}

func (g Gap) String() string {
	return fmt.Sprintf("no %s rule for %s (kept %q)", g.Class.Name(), g.Missing.Key(), g.Base)
}

// Engine inflects base forms according to one profile's paradigms.
type Engine struct {
	profile *profile.Profile
}

func New(p *profile.Profile) *Engine {
	return &Engine{profile: p}
}

// Inflect produces the surface form for a base word carrying the given
// attributes. Rules are matched as attribute sets: the engine repeatedly
// applies the rule covering the largest subset of the remaining
// attributes, so a paradigm listing FUT and PL separately still inflects
// a FUT+PL word. Attributes the paradigm never mentions are ignored;
// attributes it mentions but cannot cover produce a single Gap and the
// form falls back to whatever rules did apply.
func (e *Engine) Inflect(base string, class grammar.WordClass, attrs grammar.AttrSet) (string, []Gap) {
	paradigm := e.profile.ParadigmFor(class)
	if paradigm == nil || len(attrs) == 0 {
		return base, nil
	}

	remaining := modeledOnly(attrs, paradigm)
	form := base

	for len(remaining) > 0 {
		rule := bestRule(remaining, paradigm)
		if rule == nil {
			return form, []Gap{{Class: class, Missing: remaining, Base: base}}
		}
		form = applyRule(form, *rule)
		for _, a := range rule.Match {
			remaining = remaining.Without(a)
		}
	}
	return form, nil
}

// modeledOnly drops attributes no rule in the paradigm mentions.
func modeledOnly(attrs grammar.AttrSet, paradigm *profile.Paradigm) grammar.AttrSet {
	modeled := make(map[grammar.Attribute]bool)
	for _, rule := range paradigm.Rules {
		for _, a := range rule.Match {
			modeled[a] = true
		}
	}
	kept := make([]grammar.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if modeled[a] {
			kept = append(kept, a)
		}
	}
	return grammar.NewAttrSet(kept...)
}

// bestRule picks the applicable rule covering the most attributes.
// Paradigm order breaks ties, so profiles can rely on listing more
// specific rules first.
func bestRule(remaining grammar.AttrSet, paradigm *profile.Paradigm) *profile.Rule {
	var best *profile.Rule
	for i := range paradigm.Rules {
		rule := &paradigm.Rules[i]
		if len(rule.Match) == 0 || !covers(remaining, rule.Match) {
			continue
		}
		if best == nil || len(rule.Match) > len(best.Match) {
			best = rule
		}
	}
	return best
}

func covers(set grammar.AttrSet, match []grammar.Attribute) bool {
	for _, a := range match {
		if !set.Has(a) {
			return false
		}
	}
	return true
}

func applyRule(form string, rule profile.Rule) string {
	switch rule.Op {
	case profile.Suffix:
		return form + rule.Arg
	case profile.Prefix:
		return rule.Arg + form
	case profile.Reduplicate:
		// Repeat the first grapheme cluster, not the first byte, so
		// multi-byte and combining graphemes reduplicate intact.
		g := uniseg.NewGraphemes(form)
		if g.Next() {
			return g.Str() + form
		}
		return form
	case profile.Mutate:
		from, to, ok := strings.Cut(rule.Arg, ">")
		if !ok || from == "" {
			return form
		}
		if idx := strings.LastIndex(form, from); idx >= 0 {
			return form[:idx] + to + form[idx+len(from):]
		}
		return form
	}
	return form
}
