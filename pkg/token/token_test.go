package token

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Value)
	}
	return out
}

func kinds(tokens []Token) []Kind {
	out := make([]Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenize_Basic(t *testing.T) {
	tokens := Tokenize("select a,b from t where x=1")

	assert.Equal(t, []string{"select", "a", ",", "b", "from", "t", "where", "x", "=", "1"}, values(tokens))
	assert.Equal(t, []Kind{
		KindIdentifier, KindIdentifier, KindOperator, KindIdentifier, KindIdentifier,
		KindIdentifier, KindIdentifier, KindIdentifier, KindOperator, KindNumber,
	}, kinds(tokens))
}

func TestTokenize_Empty(t *testing.T) {
	tokens := Tokenize("")
	require.NotNil(t, tokens)
	assert.Empty(t, tokens)

	assert.Empty(t, Tokenize(" \n\t  "))
}

func TestTokenize_Literals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		kinds []Kind
	}{
		{
			name:  "single quoted with spaces",
			input: "x = 'hello world'",
			want:  []string{"x", "=", "'hello world'"},
			kinds: []Kind{KindIdentifier, KindOperator, KindString},
		},
		{
			name:  "double quoted",
			input: `"my col"`,
			want:  []string{`"my col"`},
			kinds: []Kind{KindString},
		},
		{
			name:  "doubled quote escape",
			input: "'it''s'",
			want:  []string{"'it''s'"},
			kinds: []Kind{KindString},
		},
		{
			name:  "backslash escape",
			input: `'a\'b' c`,
			want:  []string{`'a\'b'`, "c"},
			kinds: []Kind{KindString, KindIdentifier},
		},
		{
			name:  "unterminated quote runs to end",
			input: "select 'abc def",
			want:  []string{"select", "'abc def"},
			kinds: []Kind{KindIdentifier, KindString},
		},
		{
			name:  "backtick identifier",
			input: "`order` x",
			want:  []string{"`order`", "x"},
			kinds: []Kind{KindString, KindIdentifier},
		},
		{
			name:  "decimal number",
			input: "3.14 42",
			want:  []string{"3.14", "42"},
			kinds: []Kind{KindNumber, KindNumber},
		},
		{
			name:  "word starting with digit",
			input: "1abc",
			want:  []string{"1abc"},
			kinds: []Kind{KindOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			assert.Equal(t, tt.want, values(tokens))
			assert.Equal(t, tt.kinds, kinds(tokens))
		})
	}
}

func TestTokenize_Punctuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"operator runs", "a<>b AND c>=d", []string{"a", "<>", "b", "AND", "c", ">=", "d"}},
		{"structural punctuation is single", "f(g(x)),y", []string{"f", "(", "g", "(", "x", ")", ")", ",", "y"}},
		{"qualified name", "t.id", []string{"t", ".", "id"}},
		{"star", "count(*)", []string{"count", "(", "*", ")"}},
		{"bind parameters", "id = :id AND x = @x AND y = $1", []string{"id", "=", ":id", "AND", "x", "=", "@x", "AND", "y", "=", "$1"}},
		{"cast", "a::int", []string{"a", "::", "int"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, values(Tokenize(tt.input)))
		})
	}
}

func TestTokenize_Comments(t *testing.T) {
	tokens := Tokenize("select a -- trailing\nfrom t /* block */ where b")

	assert.Equal(t, []string{"select", "a", "-- trailing", "from", "t", "/* block */", "where", "b"}, values(tokens))
	assert.Equal(t, KindComment, tokens[2].Kind)
	assert.True(t, tokens[2].IsLineComment())
	assert.Equal(t, KindComment, tokens[5].Kind)
	assert.False(t, tokens[5].IsLineComment())
}

func TestTokenize_UnterminatedBlockComment(t *testing.T) {
	tokens := Tokenize("select /* open")
	assert.Equal(t, []string{"select", "/* open"}, values(tokens))
}

func TestTokenize_OperatorKind(t *testing.T) {
	for _, op := range []string{",", ";", "(", ")", "=", "<", ">", "!=", "+", "-", "*", "/"} {
		tokens := Tokenize("a " + op + " b")
		require.Len(t, tokens, 3, op)
		assert.Equal(t, KindOperator, tokens[1].Kind, op)
	}

	tokens := Tokenize("a || b")
	assert.Equal(t, KindOther, tokens[1].Kind)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Concatenating token values reproduces every non-whitespace character.
func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"SELECT u.id, u.name FROM users u LEFT JOIN orders o ON o.user_id = u.id WHERE o.total >= 10.5",
		"insert into t (a, b) values ('x y', \"z\")",
		"SELECT COUNT(*) FROM (SELECT 1 FROM dual) AS s -- done",
		"update t set a=a+1, b='it''s' where id in (1,2,3);",
		"WITH cte AS (SELECT * FROM x) SELECT * FROM cte /* c */ ORDER BY 1 DESC LIMIT 5",
		"select café, naïve from t",
		"a!=b<>c||d::e @p $1 :name #x ~ ^ & |",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var b strings.Builder
			for _, tok := range Tokenize(input) {
				b.WriteString(tok.Value)
			}
			assert.Equal(t, stripSpace(input), stripSpace(b.String()))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "identifier", KindIdentifier.String())
	assert.Equal(t, "operator", KindOperator.String())
	assert.Equal(t, "comment", KindComment.String())
	assert.Equal(t, "other", KindOther.String())
}
