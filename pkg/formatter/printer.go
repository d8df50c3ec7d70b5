package formatter

import (
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/keyword"
	"github.com/nsxbet/sql-formatter/pkg/token"
)

const indentUnit = "  "

// MaxIndentDepth caps the rendered indentation. Paren depth is still tracked
// exactly; only the leading whitespace stops growing.
const MaxIndentDepth = 32

// printer accumulates formatted output in a single builder.
type printer struct {
	table *keyword.Table
	upper bool

	out         strings.Builder
	depth       int
	level       int
	atLineStart bool
	prev        string
	lineComment bool
}

func newPrinter(table *keyword.Table, upper bool) *printer {
	return &printer{
		table:       table,
		upper:       upper,
		atLineStart: true,
	}
}

func (p *printer) String() string {
	return p.out.String()
}

func (p *printer) isKeyword(tok token.Token) bool {
	return tok.Kind == token.KindIdentifier && p.table.Contains(tok.Value)
}

// emit writes one token, preceded by either the pending indentation or a
// separating space.
func (p *printer) emit(tok token.Token) {
	if p.lineComment {
		p.newline(p.depth)
	}

	text := tok.Value
	if p.upper && p.isKeyword(tok) {
		text = strings.ToUpper(text)
	}

	if p.atLineStart {
		p.writeIndent()
	} else if needSpace(p.prev, tok.Value) {
		p.out.WriteByte(' ')
	}
	p.out.WriteString(text)

	p.atLineStart = false
	p.prev = tok.Value
	p.lineComment = tok.IsLineComment()
}

// newline ends the current line. The next token is indented by level.
// Consecutive calls collapse, so no blank lines are produced.
func (p *printer) newline(level int) {
	p.level = level
	if p.atLineStart {
		return
	}
	p.out.WriteByte('\n')
	p.atLineStart = true
}

func (p *printer) writeIndent() {
	n := min(p.level, MaxIndentDepth)
	for i := 0; i < n; i++ {
		p.out.WriteString(indentUnit)
	}
}

func (p *printer) indent() {
	p.depth++
}

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func needSpace(left, right string) bool {
	if left == "" {
		return false
	}
	switch left {
	case "(", ",", ".":
		return false
	}
	switch right {
	case ")", ",", ".":
		return false
	}
	return true
}
