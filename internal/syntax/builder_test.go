package syntax

import (
	"errors"
	"testing"

	"github.com/glossa-lang/glossa/internal/annotate"
	"github.com/glossa-lang/glossa/internal/grammar"
)

func mustParse(t *testing.T, input string) []annotate.Token {
	t.Helper()
	tokens, err := annotate.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return tokens
}

func TestBuildFlatClause(t *testing.T) {
	root, err := Build(mustParse(t, "I see#v dog#n"))
	if err != nil {
		t.Fatal(err)
	}
	if root.Type != grammar.Clause {
		t.Errorf("root type = %v", root.Type)
	}
	if len(root.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(root.Children))
	}
	for _, c := range root.Children {
		if !c.IsLeaf() {
			t.Errorf("ungrouped token should be a leaf, got %v", c)
		}
	}
}

func TestBuildGroupTyping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  grammar.PhraseType
	}{
		{"Noun head", "(a big#nm dog#n)", grammar.Argument},
		{"Pronoun head", "(only him#pro)", grammar.Argument},
		{"Verb head", "(quickly#vm run#v)", grammar.Action},
		{"Adposition makes a relation", "(in#adp the house#n)", grammar.Relation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Build(mustParse(t, tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if len(root.Children) != 1 || root.Children[0].IsLeaf() {
				t.Fatalf("expected a single phrase child, got %v", root)
			}
			if got := root.Children[0].Type; got != tt.want {
				t.Errorf("phrase type = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildHeadIsRightmostContentWord(t *testing.T) {
	root, err := Build(mustParse(t, "(old#nm dog#n)"))
	if err != nil {
		t.Fatal(err)
	}
	head := root.Children[0].Head()
	if head == nil || head.Token.Lemma != "dog" {
		t.Errorf("head = %v, want dog", head)
	}
}

func TestBuildInfersUntaggedDeterminers(t *testing.T) {
	root, err := Build(mustParse(t, "(a dog#n) the"))
	if err != nil {
		t.Fatal(err)
	}
	article := root.Children[0].Children[0]
	if article.Token.Class != grammar.Determiner {
		t.Errorf("grouped article class = %q, want determiner", article.Token.Class)
	}
	// Outside a group the same word stays untagged.
	loose := root.Children[1]
	if loose.Token.Class != "" {
		t.Errorf("ungrouped article class = %q, want untagged", loose.Token.Class)
	}
}

func TestBuildNestedGroup(t *testing.T) {
	root, err := Build(mustParse(t, "(the dog#n (in#adp the house#n))"))
	if err != nil {
		t.Fatal(err)
	}
	outer := root.Children[0]
	if outer.Type != grammar.Argument {
		t.Errorf("outer phrase type = %v, want argument", outer.Type)
	}
	if head := outer.Head(); head == nil || head.Token.Lemma != "dog" {
		t.Errorf("outer head = %v, want dog", head)
	}
	var inner *Node
	for _, c := range outer.Children {
		if !c.IsLeaf() {
			inner = c
		}
	}
	if inner == nil || inner.Type != grammar.Relation {
		t.Fatalf("expected a nested relation phrase, got %v", inner)
	}
	if head := inner.Head(); head == nil || head.Token.Class != grammar.Adposition {
		t.Errorf("inner head = %v, want the adposition", head)
	}
}

func TestBuildHeadlessGroup(t *testing.T) {
	_, err := Build(mustParse(t, "see#v (the a)"))
	if err == nil {
		t.Fatal("headless group should fail")
	}
	var se *StructureError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StructureError, got %T: %v", err, err)
	}
}
