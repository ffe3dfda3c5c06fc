package profile

import "github.com/glossa-lang/glossa/internal/grammar"

func boolPtr(b bool) *bool { return &b }

// Default returns a starter profile with a small, satisfiable phonology,
// SOV clause order and a plural/past/future paradigm. `glossa profile init`
// writes this out for the user to edit.
func Default(name string) *Profile {
	return &Profile{
		Name: name,
		Seed: name,
		Graphemes: []string{
			"a", "e", "i", "o", "u",
			"p", "t", "k", "m", "n", "s", "r", "l", "w", "j",
		},
		Phonotactics: Phonotactics{
			Onsets: []string{"p", "t", "k", "m", "n", "s", "r", "l", "w", "j"},
			Nuclei: []string{"a", "e", "i", "o", "u"},
			Codas:  []string{"n", "s", "r", "l"},
			Shapes: ShapeTable{
				Initial:  []string{"CV", "CVC", "V"},
				Middle:   []string{"CV", "CVC"},
				Terminal: []string{"CV", "CVC"},
				Single:   []string{"CV", "CVC", "VC"},
			},
			Forbidden:  []string{"ji", "wu"},
			MaxLetters: 10,
		},
		WordLengths: WordLengths{
			Function: []int{70, 30},
			Content:  []int{10, 55, 30, 5},
		},
		Morphology: []Paradigm{
			{
				Class: grammar.Noun,
				Rules: []Rule{
					{Match: []grammar.Attribute{grammar.Plural}, Op: Suffix, Arg: "i"},
				},
			},
			{
				Class: grammar.Verb,
				Rules: []Rule{
					{Match: []grammar.Attribute{grammar.Past}, Op: Suffix, Arg: "ta"},
					{Match: []grammar.Attribute{grammar.Future}, Op: Prefix, Arg: "ne"},
					{Match: []grammar.Attribute{grammar.Negative}, Op: Reduplicate},
				},
			},
			{
				Class: grammar.Determiner,
				Rules: []Rule{
					{Match: []grammar.Attribute{grammar.Plural}, Op: Suffix, Arg: "i"},
				},
			},
		},
		Syntax: Syntax{
			ClauseOrder: "SOV",
			HeadFinal: map[grammar.PhraseType]*bool{
				grammar.Argument: boolPtr(true),
				grammar.Relation: boolPtr(false),
			},
			Articles: ArticlesDrop,
			Agreement: []Agreement{
				{Target: grammar.Determiner, Copy: []grammar.Attribute{grammar.Plural}},
			},
		},
	}
}
