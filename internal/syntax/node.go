// Package syntax builds the shallow constituent tree from parsed tokens
// and linearizes it into target word order.
package syntax

import (
	"fmt"
	"strings"

	"github.com/glossa-lang/glossa/internal/annotate"
	"github.com/glossa-lang/glossa/internal/grammar"
)

// Node is one constituent: either a leaf wrapping a single token or a
// phrase with an ordered child sequence. The tree is built once per
// translation and rewritten in place by the transducer.
type Node struct {
	// Type is set on phrase nodes; leaves leave it empty.
	Type     grammar.PhraseType
	Children []*Node

	// Leaf fields. Token is the parsed input unit; Base and Form are
	// filled in by the translation pipeline before transduction. Base is
	// the conlang dictionary form, kept so agreement can re-inflect;
	// Form is the inflected output.
	Token annotate.Token
	Base  string
	Form  string

	leaf bool
}

// Leaf wraps one token as a leaf node.
func Leaf(tok annotate.Token) *Node {
	return &Node{Token: tok, leaf: true}
}

// Phrase creates an internal node over the given children.
func Phrase(pt grammar.PhraseType, children ...*Node) *Node {
	return &Node{Type: pt, Children: children}
}

// IsLeaf reports whether the node wraps a single token.
func (n *Node) IsLeaf() bool { return n.leaf }

// Leaves appends every leaf in the subtree to out, in order.
func (n *Node) Leaves(out []*Node) []*Node {
	if n.IsLeaf() {
		return append(out, n)
	}
	for _, c := range n.Children {
		out = c.Leaves(out)
	}
	return out
}

// Head returns the phrase's head leaf, or nil when no leaf qualifies.
// For a relation phrase the head is the adposition; otherwise it is the
// rightmost content-class leaf, falling back to the rightmost pronoun.
// Direct leaf children take precedence over leaves in nested phrases, so
// "(the dog#n (in#adp the house#n))" is headed by dog, not house.
func (n *Node) Head() *Node {
	if n.IsLeaf() {
		return n
	}
	direct := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.IsLeaf() {
			direct = append(direct, c)
		}
	}
	if h := headAmong(direct, n.Type); h != nil {
		return h
	}
	return headAmong(n.Leaves(nil), n.Type)
}

func headAmong(leaves []*Node, pt grammar.PhraseType) *Node {
	if pt == grammar.Relation {
		for i := len(leaves) - 1; i >= 0; i-- {
			if leaves[i].Token.Class == grammar.Adposition {
				return leaves[i]
			}
		}
	}
	for i := len(leaves) - 1; i >= 0; i-- {
		if leaves[i].Token.Class.IsContent() {
			return leaves[i]
		}
	}
	for i := len(leaves) - 1; i >= 0; i-- {
		if leaves[i].Token.Class == grammar.Pronoun {
			return leaves[i]
		}
	}
	return nil
}

// String renders the subtree in a compact bracketed form for diagnostics,
// e.g. "[Arg a dog]".
func (n *Node) String() string {
	if n.IsLeaf() {
		if n.Form != "" {
			return n.Form
		}
		return n.Token.Surface
	}
	parts := make([]string, 0, len(n.Children)+1)
	parts = append(parts, n.Type.ShortName())
	for _, c := range n.Children {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}
