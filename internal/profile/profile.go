package profile

import (
	"fmt"
	"strings"

	"github.com/glossa-lang/glossa/internal/grammar"
)

// Profile is the full parameter set for one constructed language. It is
// loaded once per translation run and treated as immutable thereafter.
type Profile struct {
	Name string `yaml:"name"`
	// Seed salts deterministic word generation so two profiles with the
	// same phonology still produce different vocabularies.
	Seed string `yaml:"seed,omitempty"`

	// Graphemes is the writing inventory, possibly containing multigraphs
	// like "ch" or "sh".
	Graphemes []string `yaml:"graphemes"`
	// Orthography maps a phoneme to its written form. Phonemes without an
	// entry are written as themselves.
	Orthography map[string]string `yaml:"orthography,omitempty"`

	Phonotactics Phonotactics `yaml:"phonotactics"`
	WordLengths  WordLengths  `yaml:"word_lengths"`
	Morphology   []Paradigm   `yaml:"morphology,omitempty"`
	Syntax       Syntax       `yaml:"syntax"`
}

// Phonotactics constrains which phoneme sequences form permissible syllables.
type Phonotactics struct {
	Onsets []string `yaml:"onsets"`
	Nuclei []string `yaml:"nuclei"`
	Codas  []string `yaml:"codas,omitempty"`
	// Shapes lists the allowed syllable templates per word position, as
	// strings over C and V (e.g. "CVC"). Consonant slots before the vowel
	// draw from Onsets, slots after it from Codas.
	Shapes ShapeTable `yaml:"shapes"`
	// Forbidden lists written sequences that must never appear in a
	// generated word, including across syllable boundaries.
	Forbidden []string `yaml:"forbidden,omitempty"`
	// MaxLetters caps the written length of a generated word, measured in
	// grapheme clusters. Zero means no cap.
	MaxLetters int `yaml:"max_letters,omitempty"`
}

// ShapeTable holds the allowed syllable shapes for each position in a word.
// Single covers one-syllable words.
type ShapeTable struct {
	Initial  []string `yaml:"initial"`
	Middle   []string `yaml:"middle"`
	Terminal []string `yaml:"terminal"`
	Single   []string `yaml:"single"`
}

// WordLengths holds the syllable-count probability tables. Index i is the
// percent weight of generating a word with i+1 syllables. Function words
// (determiners, conjunctions, pronouns, adpositions) are typically shorter
// than content words, so the two groups keep separate tables. Each table
// must sum to 100.
type WordLengths struct {
	Function []int `yaml:"function"`
	Content  []int `yaml:"content"`
}

// weightsFor returns the syllable-count table for a word class.
func (w WordLengths) For(class grammar.WordClass) []int {
	if class.IsContent() {
		return w.Content
	}
	return w.Function
}

// Transform is the kind of operation a morphology rule applies.
type Transform string

const (
	// Suffix appends the rule argument to the base form.
	Suffix Transform = "suffix"
	// Prefix prepends the rule argument to the base form.
	Prefix Transform = "prefix"
	// Reduplicate repeats the first grapheme cluster of the base form.
	Reduplicate Transform = "reduplicate"
	// Mutate rewrites the last occurrence of a sequence; the argument is
	// given as "from>to".
	Mutate Transform = "mutate"
)

// Rule maps one attribute combination to a transform.
type Rule struct {
	Match []grammar.Attribute `yaml:"match"`
	Op    Transform           `yaml:"op"`
	Arg   string              `yaml:"arg,omitempty"`
}

// Paradigm is the set of inflection rules for one word class.
type Paradigm struct {
	Class grammar.WordClass `yaml:"class"`
	Rules []Rule            `yaml:"rules"`
}

// ParadigmFor returns the paradigm for a word class, or nil if the profile
// does not define one.
func (p *Profile) ParadigmFor(class grammar.WordClass) *Paradigm {
	for i := range p.Morphology {
		if p.Morphology[i].Class == class {
			return &p.Morphology[i]
		}
	}
	return nil
}

// ArticlePolicy controls how determiners surface in output.
type ArticlePolicy string

const (
	// ArticlesKeep translates determiners like any other function word.
	ArticlesKeep ArticlePolicy = "keep"
	// ArticlesDrop omits determiners from output entirely, as languages
	// without articles do.
	ArticlesDrop ArticlePolicy = "drop"
)

// Syntax holds the word-order and agreement parameters.
type Syntax struct {
	// ClauseOrder is a permutation of S, V and O, e.g. "SOV".
	ClauseOrder string `yaml:"clause_order"`
	// HeadFinal maps a phrase type to whether its head comes after its
	// modifiers. Missing phrase types default to head-final.
	HeadFinal map[grammar.PhraseType]*bool `yaml:"head_final,omitempty"`
	// Articles selects the determiner policy. Empty means keep.
	Articles ArticlePolicy `yaml:"articles,omitempty"`
	// Agreement lists modifier classes that copy attributes from their
	// phrase head and get re-inflected.
	Agreement []Agreement `yaml:"agreement,omitempty"`
}

// Agreement copies head attributes onto a modifier class within a phrase.
type Agreement struct {
	Target grammar.WordClass   `yaml:"target"`
	Copy   []grammar.Attribute `yaml:"copy"`
}

// IsHeadFinal reports whether modifiers precede the head for a phrase type.
func (s Syntax) IsHeadFinal(pt grammar.PhraseType) bool {
	if v, ok := s.HeadFinal[pt]; ok && v != nil {
		return *v
	}
	return true
}

// DropArticles reports whether determiners are omitted from output.
func (s Syntax) DropArticles() bool {
	return s.Articles == ArticlesDrop
}

// Validate checks the profile for configuration errors that would
// otherwise surface mid-translation. It reports the first problem found.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is empty")
	}
	if len(p.Graphemes) == 0 {
		return fmt.Errorf("graphemic inventory must contain at least one grapheme")
	}
	if len(p.Phonotactics.Nuclei) == 0 {
		return fmt.Errorf("phonotactics: nucleus inventory is empty")
	}

	shapeGroups := []struct {
		name   string
		shapes []string
	}{
		{"initial", p.Phonotactics.Shapes.Initial},
		{"middle", p.Phonotactics.Shapes.Middle},
		{"terminal", p.Phonotactics.Shapes.Terminal},
		{"single", p.Phonotactics.Shapes.Single},
	}
	for _, group := range shapeGroups {
		if len(group.shapes) == 0 {
			return fmt.Errorf("phonotactics: no %s syllable shapes defined", group.name)
		}
		for _, shape := range group.shapes {
			if err := validateShape(shape); err != nil {
				return fmt.Errorf("phonotactics: %s shape %q: %w", group.name, shape, err)
			}
			if needsOnset(shape) && len(p.Phonotactics.Onsets) == 0 {
				return fmt.Errorf("phonotactics: shape %q requires an onset but the onset inventory is empty", shape)
			}
			if needsCoda(shape) && len(p.Phonotactics.Codas) == 0 {
				return fmt.Errorf("phonotactics: shape %q requires a coda but the coda inventory is empty", shape)
			}
		}
	}

	if err := validateWeights("function", p.WordLengths.Function); err != nil {
		return err
	}
	if err := validateWeights("content", p.WordLengths.Content); err != nil {
		return err
	}

	if err := validateClauseOrder(p.Syntax.ClauseOrder); err != nil {
		return err
	}
	if p.Syntax.Articles != "" && p.Syntax.Articles != ArticlesKeep && p.Syntax.Articles != ArticlesDrop {
		return fmt.Errorf("syntax: unknown article policy %q", p.Syntax.Articles)
	}

	for _, paradigm := range p.Morphology {
		if !paradigm.Class.Known() {
			return fmt.Errorf("morphology: unknown word class %q", paradigm.Class)
		}
		for _, rule := range paradigm.Rules {
			if len(rule.Match) == 0 {
				return fmt.Errorf("morphology: %s rule has an empty match set", paradigm.Class.Name())
			}
			for _, attr := range rule.Match {
				if _, ok := grammar.ParseAttribute(string(attr)); !ok {
					return fmt.Errorf("morphology: %s rule references unknown attribute %q", paradigm.Class.Name(), attr)
				}
			}
			switch rule.Op {
			case Suffix, Prefix, Mutate:
				if rule.Arg == "" {
					return fmt.Errorf("morphology: %s %s rule has no argument", paradigm.Class.Name(), rule.Op)
				}
				if rule.Op == Mutate && !strings.Contains(rule.Arg, ">") {
					return fmt.Errorf("morphology: mutate argument %q must have the form \"from>to\"", rule.Arg)
				}
			case Reduplicate:
				// no argument
			default:
				return fmt.Errorf("morphology: unknown transform %q", rule.Op)
			}
		}
	}

	for _, agr := range p.Syntax.Agreement {
		if !agr.Target.Known() {
			return fmt.Errorf("syntax: agreement targets unknown word class %q", agr.Target)
		}
		if len(agr.Copy) == 0 {
			return fmt.Errorf("syntax: agreement for %s copies no attributes", agr.Target.Name())
		}
	}

	return nil
}

func validateShape(shape string) error {
	if shape == "" {
		return fmt.Errorf("empty shape")
	}
	vowels := 0
	for _, c := range shape {
		switch c {
		case 'C', 'V':
			if c == 'V' {
				vowels++
			}
		default:
			return fmt.Errorf("shape may only contain C and V")
		}
	}
	if vowels != 1 {
		return fmt.Errorf("shape must contain exactly one V")
	}
	return nil
}

func needsOnset(shape string) bool {
	return strings.IndexByte(shape, 'C') >= 0 && strings.IndexByte(shape, 'C') < strings.IndexByte(shape, 'V')
}

func needsCoda(shape string) bool {
	return strings.LastIndexByte(shape, 'C') > strings.IndexByte(shape, 'V')
}

func validateWeights(name string, weights []int) error {
	if len(weights) == 0 {
		return fmt.Errorf("word_lengths: %s table is empty", name)
	}
	total := 0
	for _, w := range weights {
		if w < 0 || w > 100 {
			return fmt.Errorf("word_lengths: %s weight %d out of range 0-100", name, w)
		}
		total += w
	}
	if total != 100 {
		return fmt.Errorf("word_lengths: %s table adds up to %d%%, expected 100%%", name, total)
	}
	return nil
}

func validateClauseOrder(order string) error {
	if len(order) != 3 {
		return fmt.Errorf("syntax: clause_order %q must be a permutation of SVO", order)
	}
	seen := map[rune]bool{}
	for _, c := range strings.ToUpper(order) {
		switch c {
		case 'S', 'V', 'O':
			if seen[c] {
				return fmt.Errorf("syntax: clause_order %q repeats %c", order, c)
			}
			seen[c] = true
		default:
			return fmt.Errorf("syntax: clause_order %q must be a permutation of SVO", order)
		}
	}
	return nil
}
