package annotate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/glossa-lang/glossa/internal/grammar"
)

// maxGroupDepth allows a group inside a group, but nothing deeper.
const maxGroupDepth = 2

// Parse tokenizes annotated input text into an ordered token sequence.
//
// Annotation syntax:
//
//	word#n        tag the word's class (see grammar.ParseWordClass)
//	word.PL       add an attribute; suffixes may chain (word#n.PL.DEF)
//	( ... )       delimit a multi-word group
//
// Punctuation passes through as Punct tokens. Malformed annotation is
// reported as a *ParseError; the parser never recovers silently.
func Parse(input string) ([]Token, error) {
	var tokens []Token
	depth := 0
	i := 0

	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])

		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '(':
			depth++
			if depth > maxGroupDepth {
				return nil, newParseError(input, i, i+size, "groups may only nest one level deep")
			}
			tokens = append(tokens, Token{Kind: GroupOpen, Offset: i})
			i += size

		case r == ')':
			if depth == 0 {
				return nil, newParseError(input, i, i+size, "unbalanced closing parenthesis")
			}
			depth--
			tokens = append(tokens, Token{Kind: GroupClose, Offset: i})
			i += size

		case r == '#':
			return nil, newParseError(input, i, i+size, "part-of-speech tag is not attached to a word")

		case isWordRune(r):
			tok, next, err := parseWord(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case r == '.' && startsAttrTag(input[i:]):
			return nil, newParseError(input, i, i+size, "attribute tag is not attached to a word")

		default:
			tokens = append(tokens, Token{Kind: Punct, Surface: string(r), Offset: i})
			i += size
		}
	}

	if depth != 0 {
		return nil, newParseError(input, len(input), len(input), "unbalanced opening parenthesis")
	}
	return tokens, nil
}

// parseWord consumes one word starting at offset start, including any
// trailing #pos and .ATTR annotation, and returns the token plus the
// offset of the first unconsumed byte.
func parseWord(input string, start int) (Token, int, error) {
	i := start
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		if !isWordRune(r) {
			break
		}
		i += size
	}
	surface := input[start:i]

	tok := Token{
		Kind:    Word,
		Surface: surface,
		Lemma:   strings.ToLower(surface),
		Offset:  start,
	}

	var attrs []grammar.Attribute
	for i < len(input) {
		switch {
		case input[i] == '#':
			tagStart := i + 1
			tagEnd := scanTag(input, tagStart)
			if tagEnd == tagStart {
				return Token{}, 0, newParseError(input, i, i+1, "empty part-of-speech tag")
			}
			if tok.Class != "" {
				return Token{}, 0, newParseError(input, i, tagEnd, "word already has a part-of-speech tag")
			}
			class, ok := grammar.ParseWordClass(input[tagStart:tagEnd])
			if !ok {
				return Token{}, 0, newParseError(input, tagStart, tagEnd, "unknown part-of-speech tag")
			}
			tok.Class = class
			i = tagEnd

		case input[i] == '.' && startsAttrTag(input[i:]):
			tagStart := i + 1
			tagEnd := scanTag(input, tagStart)
			attr, ok := grammar.ParseAttribute(input[tagStart:tagEnd])
			if !ok {
				return Token{}, 0, newParseError(input, tagStart, tagEnd, "unknown attribute tag")
			}
			attrs = append(attrs, attr)
			i = tagEnd

		default:
			tok.Attrs = grammar.NewAttrSet(attrs...)
			return tok, i, nil
		}
	}

	tok.Attrs = grammar.NewAttrSet(attrs...)
	return tok, i, nil
}

// startsAttrTag reports whether s begins with "." followed by an
// uppercase letter, which distinguishes an attribute suffix from
// sentence punctuation.
func startsAttrTag(s string) bool {
	if len(s) < 2 || s[0] != '.' {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[1:])
	return unicode.IsUpper(r)
}

// scanTag returns the end offset of a tag starting at offset start.
func scanTag(input string, start int) int {
	i := start
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	return i
}

// isWordRune reports whether r may appear inside a word's surface form.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-'
}
