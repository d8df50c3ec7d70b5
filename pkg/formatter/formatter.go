// Package formatter re-renders a SQL token stream under one of four layout
// styles.
//
// Formatting is a pure function of its inputs. It never fails: any token
// slice, including one produced from malformed text, yields some output.
package formatter

import (
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/keyword"
	"github.com/nsxbet/sql-formatter/pkg/token"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

// Options controls the layout.
type Options struct {
	Style             types.FormatStyle `json:"style"                  yaml:"style"`
	UppercaseKeywords bool              `json:"uppercaseKeywords"      yaml:"uppercaseKeywords"`
	AddSemicolon      bool              `json:"addSemicolon"           yaml:"addSemicolon"`
	IndentCTE         bool              `json:"indentCte,omitempty"    yaml:"indentCte,omitempty"`
	AlignAliases      bool              `json:"alignAliases,omitempty" yaml:"alignAliases,omitempty"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Style:             types.FormatStyle_STANDARD,
		UppercaseKeywords: true,
	}
}

// FormatSQL tokenizes sql and formats it with the default keyword table.
func FormatSQL(sql string, opts Options) string {
	return Format(token.Tokenize(sql), keyword.Default(), opts)
}

// Format renders tokens according to opts. Keywords are looked up in table;
// a nil table recognizes no keywords. An empty token slice yields "" even
// when AddSemicolon is set.
func Format(tokens []token.Token, table *keyword.Table, opts Options) string {
	if len(tokens) == 0 {
		return ""
	}

	var out string
	switch opts.Style {
	case types.FormatStyle_COMPACT:
		out = formatCompact(tokens, table, opts)
	case types.FormatStyle_EXPANDED:
		out = formatExpanded(tokens, table, opts)
	case types.FormatStyle_TABULAR:
		// Tabular currently renders exactly like Standard.
		out = formatStandard(tokens, table, opts)
	default:
		out = formatStandard(tokens, table, opts)
	}

	if opts.AlignAliases && opts.Style != types.FormatStyle_COMPACT {
		out = alignAliases(out)
	}

	out = strings.TrimSpace(out)
	if opts.AddSemicolon && out != "" {
		out = terminate(out, tokens)
	}
	return out
}

// terminate appends a semicolon unless the last code token is one. After a
// trailing line comment the semicolon goes on its own line.
func terminate(out string, tokens []token.Token) string {
	last := tokens[len(tokens)-1]
	if last.IsLineComment() {
		if code, ok := lastCode(tokens); ok && code.Is(";") {
			return out
		}
		return out + "\n;"
	}
	if strings.HasSuffix(out, ";") {
		return out
	}
	return out + ";"
}

func lastCode(tokens []token.Token) (token.Token, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Kind != token.KindComment {
			return tokens[i], true
		}
	}
	return token.Token{}, false
}

func formatCompact(tokens []token.Token, table *keyword.Table, opts Options) string {
	p := newPrinter(table, opts.UppercaseKeywords)
	for _, tok := range tokens {
		p.emit(tok)
	}
	return p.String()
}
