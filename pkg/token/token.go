// Package token splits SQL text into classified lexical tokens.
//
// Tokenize is total: every input, including unterminated literals and
// half-typed statements, produces a token slice and never an error.
package token

import (
	"regexp"
	"strings"
)

// Kind classifies a token by its lexical shape.
type Kind int

const (
	// KindOther is anything that matches no other shape (e.g. @var, $1).
	KindOther Kind = iota
	// KindString is a quoted literal or quoted identifier.
	KindString
	// KindNumber is an integer or decimal literal.
	KindNumber
	// KindIdentifier is a word: identifiers and keywords alike.
	KindIdentifier
	// KindOperator is a punctuation run starting with one of ,;()=<>!+-*/
	KindOperator
	// KindComment is a line (--) or block (/* */) comment.
	KindComment
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindIdentifier:
		return "identifier"
	case KindOperator:
		return "operator"
	case KindComment:
		return "comment"
	default:
		return "other"
	}
}

// Token is one lexical unit. Value is the exact source text.
type Token struct {
	Value string
	Kind  Kind
}

// Is reports whether the token value equals s.
func (t Token) Is(s string) bool {
	return t.Value == s
}

// IsLineComment reports whether the token is a -- comment, which must be
// followed by a line break when rendered.
func (t Token) IsLineComment() bool {
	return t.Kind == KindComment && strings.HasPrefix(t.Value, "--")
}

// Alternatives in priority order: line comment, block comment (possibly
// unterminated), single/double/backtick quoted text (unterminated quotes run
// to the end of input), decimal number, word or bind parameter, structural
// punctuation, and finally any other punctuation run. Go regexp prefers the
// leftmost alternative that matches at a position.
var pattern = regexp.MustCompile(`(?s)` + strings.Join([]string{
	`--[^\n]*`,
	`/\*.*?(?:\*/|$)`,
	`'(?:[^'\\]|''|\\.?)*'?`,
	`"(?:[^"\\]|""|\\.?)*"?`,
	"`(?:[^`]|``)*`?",
	`[0-9]+\.[0-9]+\b`,
	`[@$:#]?[\p{L}\p{N}_]+`,
	`[(),;.]`,
	"[^\\s\\p{L}\\p{N}_'\"`(),;.]+",
}, "|"))

var (
	numberPattern     = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?$`)
	identifierPattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)
)

const operatorChars = ",;()=<>!+-*/"

// Tokenize scans sql left to right and returns its tokens. Whitespace
// separates tokens and is dropped. Empty input yields an empty slice.
func Tokenize(sql string) []Token {
	matches := pattern.FindAllString(sql, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{Value: m, Kind: classify(m)})
	}
	return tokens
}

func classify(value string) Kind {
	switch {
	case value == "":
		return KindOther
	case strings.HasPrefix(value, "--"), strings.HasPrefix(value, "/*"):
		return KindComment
	case value[0] == '\'' || value[0] == '"' || value[0] == '`':
		return KindString
	case numberPattern.MatchString(value):
		return KindNumber
	case identifierPattern.MatchString(value):
		return KindIdentifier
	case strings.IndexByte(operatorChars, value[0]) >= 0:
		return KindOperator
	default:
		return KindOther
	}
}
