package syntax

import (
	"fmt"

	"github.com/glossa-lang/glossa/internal/annotate"
	"github.com/glossa-lang/glossa/internal/grammar"
)

// determiners are the English articles and demonstratives recognized
// without explicit tagging inside a group.
var determiners = map[string]bool{
	"a": true, "an": true, "the": true,
	"this": true, "that": true, "these": true, "those": true,
}

// StructureError reports a token sequence that cannot form a constituent
// tree, such as a group with no identifiable head.
type StructureError struct {
	// Offset locates the offending group in the input, in bytes.
	Offset int
	Msg    string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error at offset %d: %s", e.Offset, e.Msg)
}

// Build assembles the flat token sequence into one clause-rooted tree.
// Grouped spans become phrase nodes typed by their head; everything
// outside a group hangs directly off the root.
func Build(tokens []annotate.Token) (*Node, error) {
	root := Phrase(grammar.Clause)
	// The parser caps nesting, so two open frames suffice.
	stack := []*Node{root}
	offsets := []int{0}

	for _, tok := range tokens {
		switch tok.Kind {
		case annotate.GroupOpen:
			stack = append(stack, Phrase(""))
			offsets = append(offsets, tok.Offset)

		case annotate.GroupClose:
			group := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			offset := offsets[len(offsets)-1]
			offsets = offsets[:len(offsets)-1]

			pt, err := classify(group, offset)
			if err != nil {
				return nil, err
			}
			group.Type = pt
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, group)

		default:
			// Inside a group, common determiners count as tagged even
			// without an explicit #det.
			if len(stack) > 1 && tok.Kind == annotate.Word && tok.Class == "" && determiners[tok.Lemma] {
				tok.Class = grammar.Determiner
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, Leaf(tok))
		}
	}
	return root, nil
}

// classify infers a group's phrase type from its contents: a group with
// an adposition among its direct children is a relation, otherwise the
// head's class decides between argument and action. Nested phrases are
// opaque here so an argument containing a relation stays an argument.
func classify(group *Node, offset int) (grammar.PhraseType, error) {
	for _, c := range group.Children {
		if c.IsLeaf() && c.Token.Class == grammar.Adposition {
			return grammar.Relation, nil
		}
	}

	head := group.Head()
	if head == nil {
		return "", &StructureError{
			Offset: offset,
			Msg:    "group has no identifiable head; tag a word inside it (e.g. dog#n)",
		}
	}
	switch head.Token.Class {
	case grammar.Verb, grammar.VerbModifier:
		return grammar.Action, nil
	default:
		return grammar.Argument, nil
	}
}
