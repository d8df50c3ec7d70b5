package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-formatter/pkg/keyword"
	"github.com/nsxbet/sql-formatter/pkg/token"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

func opts(style types.FormatStyle) Options {
	return Options{Style: style, UppercaseKeywords: true}
}

func TestFormatSQL_Scenario(t *testing.T) {
	out := FormatSQL("select a,b from t where x=1", Options{
		Style:             types.FormatStyle_STANDARD,
		UppercaseKeywords: true,
		AddSemicolon:      true,
	})

	assert.Equal(t, "SELECT a,\n  b\nFROM t\nWHERE x = 1;", out)
	assert.True(t, strings.HasPrefix(out, "SELECT"))
	assert.True(t, strings.HasSuffix(out, ";"))
}

func TestFormatSQL_Standard(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{
			name:  "every clause keyword starts a line",
			input: "select * from a left join b on a.id=b.id inner join c on c.x=a.x",
			opts:  opts(types.FormatStyle_STANDARD),
			want:  "SELECT *\nFROM a\nLEFT\nJOIN b ON a.id = b.id\nINNER\nJOIN c ON c.x = a.x",
		},
		{
			name:  "subquery indented by depth",
			input: "select a from (select b from t) x",
			opts:  opts(types.FormatStyle_STANDARD),
			want:  "SELECT a\nFROM (\n  SELECT b\n  FROM t) x",
		},
		{
			name:  "lowercase preserved",
			input: "select a from t",
			opts:  Options{Style: types.FormatStyle_STANDARD},
			want:  "select a\nfrom t",
		},
		{
			name:  "quoted keyword is not a clause",
			input: "select 'from' from t",
			opts:  opts(types.FormatStyle_STANDARD),
			want:  "SELECT 'from'\nFROM t",
		},
		{
			name:  "line comment forces a break",
			input: "select a -- note\nfrom t",
			opts:  opts(types.FormatStyle_STANDARD),
			want:  "SELECT a -- note\nFROM t",
		},
		{
			name:  "statements separated",
			input: "select 1; select 2",
			opts:  opts(types.FormatStyle_STANDARD),
			want:  "SELECT 1 ;\nSELECT 2",
		},
		{
			name:  "cte without indent option",
			input: "with c as (select 1) select * from c",
			opts:  opts(types.FormatStyle_STANDARD),
			want:  "WITH c AS (\n  SELECT 1)\nSELECT *\nFROM c",
		},
		{
			name:  "cte with indent option",
			input: "with c as (select 1) select * from c",
			opts:  Options{Style: types.FormatStyle_STANDARD, UppercaseKeywords: true, IndentCTE: true},
			want:  "WITH c AS (\n  SELECT 1\n)\nSELECT *\nFROM c",
		},
		{
			name:  "two ctes without indent option",
			input: "with a as (select 1), b as (select 2) select x, y from b",
			opts:  opts(types.FormatStyle_STANDARD),
			want:  "WITH a AS (\n  SELECT 1),\n  b AS (\n  SELECT 2)\nSELECT x,\n  y\nFROM b",
		},
		{
			name:  "two ctes with indent option",
			input: "with a as (select 1), b as (select 2) select x, y from b",
			opts:  Options{Style: types.FormatStyle_STANDARD, UppercaseKeywords: true, IndentCTE: true},
			want:  "WITH a AS (\n  SELECT 1\n),\nb AS (\n  SELECT 2\n)\nSELECT x,\n  y\nFROM b",
		},
		{
			name:  "aligned aliases",
			input: "select a as x, bbb as y from t",
			opts:  Options{Style: types.FormatStyle_STANDARD, UppercaseKeywords: true, AlignAliases: true},
			want:  "SELECT a AS x,\n  bbb    AS y\nFROM t",
		},
		{
			name:  "unbalanced closing parens",
			input: ")))",
			opts:  opts(types.FormatStyle_STANDARD),
			want:  ")))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSQL(tt.input, tt.opts))
		})
	}
}

func TestFormatSQL_Compact(t *testing.T) {
	assert.Equal(t, "SELECT a,b FROM t WHERE x = 1",
		FormatSQL("select   a,\n b\n\tfrom t where x=1", opts(types.FormatStyle_COMPACT)))

	assert.Equal(t, "SELECT a -- x\n;",
		FormatSQL("select a -- x", Options{Style: types.FormatStyle_COMPACT, UppercaseKeywords: true, AddSemicolon: true}))

	// layout refinements are ignored
	assert.Equal(t, "SELECT a AS x,b AS yy FROM t",
		FormatSQL("select a as x, b as yy from t", Options{
			Style: types.FormatStyle_COMPACT, UppercaseKeywords: true, AlignAliases: true, IndentCTE: true,
		}))
}

func TestFormatSQL_Expanded(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "comma and keyword breaks",
			input: "select a,b from t where x=1",
			want:  "SELECT a,\nb\nFROM t\nWHERE x = 1",
		},
		{
			name:  "parens on their own lines",
			input: "select count(*) from (select 1) s",
			want:  "SELECT\nCOUNT (\n  *\n)\nFROM (\n  SELECT 1\n) s",
		},
		{
			name:  "unbalanced closing parens",
			input: ")))",
			want:  ")\n)\n)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatSQL(tt.input, opts(types.FormatStyle_EXPANDED))
			assert.Equal(t, tt.want, out)
			assert.NotContains(t, out, "\n\n")
		})
	}
}

func TestFormatSQL_TabularMatchesStandard(t *testing.T) {
	inputs := []string{
		"select a,b from t where x=1",
		"select * from a left join b on a.id=b.id",
		"with c as (select 1) select * from c",
	}
	for _, input := range inputs {
		std := Options{Style: types.FormatStyle_STANDARD, UppercaseKeywords: true, AddSemicolon: true, IndentCTE: true}
		tab := std
		tab.Style = types.FormatStyle_TABULAR
		assert.Equal(t, FormatSQL(input, std), FormatSQL(input, tab), input)
	}
}

func TestFormat_Empty(t *testing.T) {
	for _, style := range []types.FormatStyle{
		types.FormatStyle_STANDARD, types.FormatStyle_COMPACT, types.FormatStyle_EXPANDED, types.FormatStyle_TABULAR,
	} {
		t.Run(style.String(), func(t *testing.T) {
			o := Options{Style: style, UppercaseKeywords: true, AddSemicolon: true}
			assert.Equal(t, "", Format(nil, keyword.Default(), o))
			assert.Equal(t, "", FormatSQL("", o))
			assert.Equal(t, "", FormatSQL(" \n\t ", o))
		})
	}
}

func TestFormat_Semicolon(t *testing.T) {
	o := Options{Style: types.FormatStyle_STANDARD, UppercaseKeywords: true, AddSemicolon: true}

	assert.Equal(t, "SELECT 1;", FormatSQL("select 1", o))
	assert.Equal(t, "SELECT 1 ;", FormatSQL("select 1;", o))
	assert.Equal(t, "SELECT 1", FormatSQL("select 1", opts(types.FormatStyle_STANDARD)))
	assert.Equal(t, "SELECT 1 -- done\n;", FormatSQL("select 1 -- done", o))
	assert.Equal(t, "SELECT 1 ; -- done", FormatSQL("select 1; -- done", o))
	assert.Equal(t, "SELECT 1 ; /* a */ -- b", FormatSQL("select 1; /* a */ -- b", o))
}

func TestFormat_NilTable(t *testing.T) {
	out := Format(token.Tokenize("select a from t"), nil, opts(types.FormatStyle_STANDARD))
	assert.Equal(t, "select a\nfrom t", out)
}

func TestFormat_Deterministic(t *testing.T) {
	input := "WITH x AS (SELECT id, name FROM users WHERE active = 1) " +
		"SELECT x.id, COUNT(*) AS n FROM x LEFT JOIN orders o ON o.uid = x.id GROUP BY x.id ORDER BY n DESC LIMIT 10"

	for _, style := range []types.FormatStyle{
		types.FormatStyle_STANDARD, types.FormatStyle_COMPACT, types.FormatStyle_EXPANDED, types.FormatStyle_TABULAR,
	} {
		o := Options{Style: style, UppercaseKeywords: true, AddSemicolon: true, IndentCTE: true, AlignAliases: true}
		first := FormatSQL(input, o)
		require.NotEmpty(t, first)
		assert.Equal(t, first, FormatSQL(input, o), style.String())
	}
}

func TestFormat_DeepNestingIsBounded(t *testing.T) {
	input := strings.Repeat("(", 5000) + "x"

	std := FormatSQL(input, opts(types.FormatStyle_STANDARD))
	assert.Len(t, std, 5001)

	expanded := FormatSQL(input, opts(types.FormatStyle_EXPANDED))
	lines := strings.Split(expanded, "\n")
	assert.Len(t, lines, 5001)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 2*MaxIndentDepth+1)
	}
}

func TestFormat_PreservesTokens(t *testing.T) {
	input := "select u.id, 'a  b', \"Q\" from users u where u.n >= 3.5 and u.s <> 'x'"
	want := token.Tokenize(input)

	for _, style := range []types.FormatStyle{
		types.FormatStyle_STANDARD, types.FormatStyle_COMPACT, types.FormatStyle_EXPANDED,
	} {
		got := token.Tokenize(FormatSQL(input, Options{Style: style}))
		assert.Equal(t, want, got, style.String())
	}
}

func TestAlignAliases(t *testing.T) {
	in := "SELECT a AS x,\n  bbb AS y,\n  'q AS r' AS z\nFROM t"
	want := "SELECT a   AS x,\n  bbb      AS y,\n  'q AS r' AS z\nFROM t"
	assert.Equal(t, want, alignAliases(in))

	// single lines are left alone
	assert.Equal(t, "SELECT a AS x\nFROM t", alignAliases("SELECT a AS x\nFROM t"))
}
