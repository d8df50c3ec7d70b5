package formatter

import (
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/keyword"
	"github.com/nsxbet/sql-formatter/pkg/token"
)

func isClause(tok token.Token) bool {
	return tok.Kind == token.KindIdentifier && keyword.IsClause(tok.Value)
}

// startsWithCTE reports whether the first code token is WITH.
func startsWithCTE(tokens []token.Token) bool {
	for _, tok := range tokens {
		if tok.Kind == token.KindComment {
			continue
		}
		return tok.Kind == token.KindIdentifier && strings.EqualFold(tok.Value, "WITH")
	}
	return false
}

// formatStandard breaks lines before clause keywords and, once the first
// clause has started, after every comma. Indentation follows paren depth.
func formatStandard(tokens []token.Token, table *keyword.Table, opts Options) string {
	p := newPrinter(table, opts.UppercaseKeywords)

	clauses := false
	preamble := startsWithCTE(tokens)
	// one entry per open paren: whether it wraps a CTE body
	var cteParens []bool

	for _, tok := range tokens {
		switch {
		case tok.Is("("):
			cte := opts.IndentCTE && preamble && strings.EqualFold(p.prev, "AS")
			p.emit(tok)
			p.indent()
			cteParens = append(cteParens, cte)
			if cte {
				p.newline(p.depth)
			}

		case tok.Is(")"):
			p.dedent()
			if n := len(cteParens); n > 0 {
				if cteParens[n-1] {
					p.newline(p.depth)
				}
				cteParens = cteParens[:n-1]
			}
			p.emit(tok)

		case tok.Is(","):
			p.emit(tok)
			if !clauses {
				continue
			}
			if opts.IndentCTE && preamble && p.depth == 0 {
				p.newline(0)
			} else {
				p.newline(p.depth + 1)
			}

		case isClause(tok):
			if preamble && p.depth == 0 {
				preamble = false
			}
			p.newline(p.depth)
			p.emit(tok)
			clauses = true

		default:
			p.emit(tok)
		}
	}
	return p.String()
}

// formatExpanded puts every keyword on a new line and every parenthesized
// group on lines of its own.
func formatExpanded(tokens []token.Token, table *keyword.Table, opts Options) string {
	p := newPrinter(table, opts.UppercaseKeywords)

	for _, tok := range tokens {
		switch {
		case tok.Is("("):
			p.emit(tok)
			p.indent()
			p.newline(p.depth)

		case tok.Is(")"):
			p.dedent()
			p.newline(p.depth)
			p.emit(tok)

		case tok.Is(","):
			p.emit(tok)
			p.newline(p.depth)

		case p.isKeyword(tok):
			p.newline(p.depth)
			p.emit(tok)

		default:
			p.emit(tok)
		}
	}
	return p.String()
}
