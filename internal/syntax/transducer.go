package syntax

import (
	"strings"

	"github.com/glossa-lang/glossa/internal/grammar"
	"github.com/glossa-lang/glossa/internal/morphology"
	"github.com/glossa-lang/glossa/internal/profile"
)

// Inflector re-derives a surface form from a base form; the transducer
// calls it when agreement copies new attributes onto a modifier.
type Inflector interface {
	Inflect(base string, class grammar.WordClass, attrs grammar.AttrSet) (string, []morphology.Gap)
}

// Transducer rewrites a constituent tree into the profile's word order
// and applies agreement, yielding the final leaf sequence.
type Transducer struct {
	syntax    profile.Syntax
	inflector Inflector
}

func NewTransducer(syn profile.Syntax, inf Inflector) *Transducer {
	return &Transducer{syntax: syn, inflector: inf}
}

// Transduce reorders the tree in place and returns its leaves in output
// order. Every translatable leaf must already carry Base and Form.
// Determiner leaves are omitted when the profile drops articles.
func (t *Transducer) Transduce(root *Node) ([]*Node, []morphology.Gap) {
	gaps := t.agree(root)
	t.reorder(root)
	root.Children = t.orderClauses(root.Children)

	leaves := root.Leaves(nil)
	out := make([]*Node, 0, len(leaves))
	for _, leaf := range leaves {
		if t.syntax.DropArticles() && leaf.Token.Class == grammar.Determiner {
			continue
		}
		out = append(out, leaf)
	}
	return out, gaps
}

// agree copies head attributes onto agreeing modifiers within each typed
// phrase and re-inflects them. The clause root is excluded: agreement is
// a phrase-internal relation.
func (t *Transducer) agree(n *Node) []morphology.Gap {
	if n.IsLeaf() {
		return nil
	}
	var gaps []morphology.Gap
	for _, c := range n.Children {
		gaps = append(gaps, t.agree(c)...)
	}
	if n.Type == grammar.Clause || len(t.syntax.Agreement) == 0 {
		return gaps
	}

	head := n.Head()
	if head == nil || len(head.Token.Attrs) == 0 {
		return gaps
	}
	for _, leaf := range n.Leaves(nil) {
		if leaf == head || leaf.Base == "" {
			continue
		}
		// All rules for the leaf's class contribute to one merged set,
		// so a single re-inflection carries every copied attribute.
		merged := leaf.Token.Attrs
		for _, agr := range t.syntax.Agreement {
			if leaf.Token.Class != agr.Target {
				continue
			}
			for _, a := range agr.Copy {
				if head.Token.Attrs.Has(a) {
					merged = merged.With(a)
				}
			}
		}
		if merged.Equal(leaf.Token.Attrs) {
			continue
		}
		form, igaps := t.inflector.Inflect(leaf.Base, leaf.Token.Class, merged)
		leaf.Form = form
		gaps = append(gaps, igaps...)
	}
	return gaps
}

// reorder re-sequences each typed phrase's children around its head
// according to the profile's head-final setting for that phrase type.
// Modifier order is preserved.
func (t *Transducer) reorder(n *Node) {
	if n.IsLeaf() {
		return
	}
	for _, c := range n.Children {
		t.reorder(c)
	}
	if n.Type == grammar.Clause {
		return
	}

	head := n.Head()
	if head == nil {
		return
	}
	var headChild *Node
	mods := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if headChild == nil && contains(c, head) {
			headChild = c
			continue
		}
		mods = append(mods, c)
	}
	if headChild == nil {
		return
	}
	if t.syntax.IsHeadFinal(n.Type) {
		n.Children = append(mods, headChild)
	} else {
		n.Children = append([]*Node{headChild}, mods...)
	}
}

// orderClauses splits the root's children into clauses at sentence-final
// punctuation and rewrites each clause's major constituents per the
// profile's clause order. Punctuation keeps its clause.
func (t *Transducer) orderClauses(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	clause := make([]*Node, 0, len(children))
	for _, c := range children {
		if c.IsLeaf() && isSentenceFinal(c.Token.Surface) {
			out = append(out, t.orderClause(clause)...)
			out = append(out, c)
			clause = clause[:0]
			continue
		}
		clause = append(clause, c)
	}
	return append(out, t.orderClause(clause)...)
}

// orderClause partitions one clause at its first verbal constituent into
// subject, verb and object spans, then emits them per ClauseOrder.
// Clauses without a verb keep their original order.
func (t *Transducer) orderClause(items []*Node) []*Node {
	if len(t.syntax.ClauseOrder) != 3 {
		return append([]*Node(nil), items...)
	}
	verb := -1
	for i, it := range items {
		if isVerbal(it) {
			verb = i
			break
		}
	}
	if verb < 0 {
		return append([]*Node(nil), items...)
	}

	out := make([]*Node, 0, len(items))
	// Validation accepts the order case-insensitively, so match it the
	// same way here.
	for _, r := range strings.ToUpper(t.syntax.ClauseOrder) {
		switch r {
		case 'S':
			out = append(out, items[:verb]...)
		case 'V':
			out = append(out, items[verb])
		case 'O':
			out = append(out, items[verb+1:]...)
		}
	}
	return out
}

func isVerbal(n *Node) bool {
	if n.IsLeaf() {
		return n.Token.Class == grammar.Verb
	}
	return n.Type == grammar.Action
}

func isSentenceFinal(surface string) bool {
	return surface != "" && strings.ContainsAny(surface, ".!?…")
}

func contains(n, target *Node) bool {
	if n == target {
		return true
	}
	for _, c := range n.Children {
		if contains(c, target) {
			return true
		}
	}
	return false
}
