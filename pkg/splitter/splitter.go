// Package splitter splits a SQL script into statements.
//
// Splitting runs the MySQL lexer over the whole script, so semicolons inside
// quoted literals, comments and compound statements (BEGIN ... END, IF,
// LOOP, WHILE, REPEAT, CASE) do not end a statement. DELIMITER directives
// are honoured and dropped from the output.
package splitter

import (
	"regexp"

	"github.com/antlr4-go/antlr/v4"
	parser "github.com/gedhean/mysql-parser"
	"github.com/pkg/errors"

	"github.com/nsxbet/sql-formatter/pkg/types"
)

// Statement is one statement of a script. Lines are zero based.
type Statement struct {
	Text     string
	BaseLine int
	Start    *types.Position
	End      *types.Position
	// Empty is set when the statement holds only comments, whitespace or a
	// bare semicolon.
	Empty bool
}

// Split returns the statements of script in order. Text keeps the
// whitespace and comments preceding each statement.
func Split(script string) ([]Statement, error) {
	lexer := parser.NewMySQLLexer(antlr.NewInputStream(script))
	lexer.RemoveErrorListeners()
	stream := antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel)
	stream.Fill()

	s := &splitter{stream: stream, tokens: stream.GetAllTokens()}
	if s.hasDelimiterStatement() {
		return s.splitDelimiterMode()
	}
	return s.splitBlocks()
}

// NonEmpty filters out empty statements.
func NonEmpty(statements []Statement) []Statement {
	out := make([]Statement, 0, len(statements))
	for _, st := range statements {
		if !st.Empty {
			out = append(out, st)
		}
	}
	return out
}

var delimiterPattern = regexp.MustCompile(`(?i)^\s*DELIMITER\s+([^\s\\]+)\s*`)

// ExtractDelimiter returns the delimiter set by a DELIMITER directive.
func ExtractDelimiter(stmt string) (string, error) {
	m := delimiterPattern.FindStringSubmatch(stmt)
	if len(m) < 2 {
		return "", errors.Errorf("cannot extract delimiter from %q", stmt)
	}
	return m[1], nil
}

type splitter struct {
	stream *antlr.CommonTokenStream
	tokens []antlr.Token
}

// span builds the statement covering tokens[start..end].
func (s *splitter) span(start, end int) Statement {
	// antlr lines are one based, columns zero based
	return Statement{
		Text:     s.stream.GetTextFromTokens(s.tokens[start], s.tokens[end]),
		BaseLine: s.tokens[start].GetLine() - 1,
		Start:    firstDefaultChannelPosition(s.tokens[start : end+1]),
		End:      position(s.tokens[end]),
		Empty:    isEmpty(s.tokens[start : end+1]),
	}
}

// tail returns the statement after the last separator, if any. The final
// token is always EOF.
func (s *splitter) tail(start int, result []Statement) []Statement {
	eof := len(s.tokens) - 1
	if start < eof {
		result = append(result, s.span(start, eof-1))
	}
	return result
}

func (s *splitter) hasDelimiterStatement() bool {
	for _, tok := range s.tokens {
		if tok.GetChannel() == antlr.TokenDefaultChannel && tok.GetTokenType() == parser.MySQLLexerDELIMITER_SYMBOL {
			return true
		}
	}
	return false
}

func (s *splitter) splitDelimiterMode() ([]Statement, error) {
	result := []Statement{}
	delimiter := ";"
	start := 0

	for i := 0; i < len(s.tokens); {
		tok := s.tokens[i]

		if tok.GetChannel() == antlr.TokenDefaultChannel && tok.GetTokenType() == parser.MySQLLexerDELIMITER_SYMBOL {
			next, directive := s.delimiterStatement(i)
			d, err := ExtractDelimiter(directive)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to extract delimiter from statement: %s", directive)
			}
			delimiter = d
			start, i = next, next
			continue
		}

		if delimiter == ";" && tok.GetTokenType() == parser.MySQLLexerSEMICOLON_SYMBOL {
			result = append(result, s.span(start, i))
			i++
			start = i
			continue
		}

		if tok.GetChannel() != antlr.TokenDefaultChannel {
			i++
			continue
		}

		if next, ok := s.matchDelimiter(i, delimiter); ok {
			// the custom delimiter is replaced by a semicolon
			st := s.span(start, i-1)
			st.Text += ";"
			st.End = position(s.tokens[next-1])
			result = append(result, st)
			start, i = next, next
			continue
		}
		i++
	}

	return s.tail(start, result), nil
}

// matchDelimiter reports whether the text starting at token pos spells
// delimiter, and returns the index after its last token.
func (s *splitter) matchDelimiter(pos int, delimiter string) (int, bool) {
	matched := 0
	for i := pos; i < len(s.tokens); i++ {
		text := s.tokens[i].GetText()
		for j := 0; j < len(text); j++ {
			if matched >= len(delimiter) || text[j] != delimiter[matched] {
				return 0, false
			}
			matched++
			if matched == len(delimiter) {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// delimiterStatement returns the directive starting at pos, which runs to
// the end of the line, and the index after it.
func (s *splitter) delimiterStatement(pos int) (int, string) {
	for i := pos; i < len(s.tokens); i++ {
		tok := s.tokens[i]
		if (tok.GetTokenType() == parser.MySQLLexerWHITESPACE && tok.GetText() == "\n") || tok.GetTokenType() == antlr.TokenEOF {
			return i + 1, s.stream.GetTextFromTokens(s.tokens[pos], s.tokens[max(pos, i-1)])
		}
	}
	last := len(s.tokens) - 1
	return len(s.tokens), s.stream.GetTextFromTokens(s.tokens[pos], s.tokens[last])
}

type openBlock struct {
	pos int
}

var errUnbalanced = errors.New("invalid statement: failed to split multiple statements")

// splitBlocks splits on semicolons that are not inside a compound block.
func (s *splitter) splitBlocks() ([]Statement, error) {
	tokens := s.tokens
	var beginCase, ifs, loops, whiles, repeats []openBlock
	var semicolons []int

	prev := func(i int) int { return defaultChannelTokenType(tokens, i, -1) }
	next := func(i int) int { return defaultChannelTokenType(tokens, i, 1) }

	for i, tok := range tokens {
		switch tok.GetTokenType() {
		case parser.MySQLParserBEGIN_SYMBOL:
			// BEGIN [WORK] starts a transaction, XA BEGIN a branch
			n := next(i)
			if n == parser.MySQLParserWORK_SYMBOL || n == parser.MySQLParserSEMICOLON_SYMBOL || n == parser.MySQLParserEOF {
				continue
			}
			if prev(i) == parser.MySQLParserXA_SYMBOL {
				continue
			}
			beginCase = append(beginCase, openBlock{pos: i})

		case parser.MySQLParserCASE_SYMBOL:
			if prev(i) == parser.MySQLParserEND_SYMBOL {
				continue
			}
			beginCase = append(beginCase, openBlock{pos: i})

		case parser.MySQLParserIF_SYMBOL:
			if prev(i) == parser.MySQLParserEND_SYMBOL || next(i) == parser.MySQLParserEXISTS_SYMBOL {
				continue
			}
			ifs = append(ifs, openBlock{pos: i})

		case parser.MySQLParserLOOP_SYMBOL:
			if prev(i) == parser.MySQLParserEND_SYMBOL {
				continue
			}
			loops = append(loops, openBlock{pos: i})

		case parser.MySQLParserWHILE_SYMBOL:
			if prev(i) == parser.MySQLParserEND_SYMBOL {
				continue
			}
			whiles = append(whiles, openBlock{pos: i})

		case parser.MySQLParserREPEAT_SYMBOL:
			if prev(i) == parser.MySQLParserUNTIL_SYMBOL {
				continue
			}
			repeats = append(repeats, openBlock{pos: i})

		case parser.MySQLParserEND_SYMBOL:
			if prev(i) == parser.MySQLParserXA_SYMBOL {
				continue
			}

			var err error
			switch next(i) {
			case parser.MySQLParserIF_SYMBOL:
				// IF(expr1, expr2, expr3) opens without a matching END IF,
				// so close back to the outermost IF
				semicolons, ifs, err = closeBlock(semicolons, ifs, true)
			case parser.MySQLParserLOOP_SYMBOL:
				semicolons, loops, err = closeBlock(semicolons, loops, false)
			case parser.MySQLParserWHILE_SYMBOL:
				semicolons, whiles, err = closeBlock(semicolons, whiles, false)
			case parser.MySQLParserREPEAT_SYMBOL:
				// same for the REPEAT(str, count) function
				semicolons, repeats, err = closeBlock(semicolons, repeats, true)
			default:
				semicolons, beginCase, err = closeBlock(semicolons, beginCase, false)
			}
			if err != nil {
				return nil, err
			}

		case parser.MySQLParserSEMICOLON_SYMBOL:
			semicolons = append(semicolons, i)
		}
	}

	result := []Statement{}
	start := 0
	for _, pos := range semicolons {
		result = append(result, s.span(start, pos))
		start = pos + 1
	}
	return s.tail(start, result), nil
}

// closeBlock pops the innermost open block and drops every semicolon inside
// the block. With outermost set, semicolons are dropped back to the first
// open block instead.
func closeBlock(semicolons []int, blocks []openBlock, outermost bool) ([]int, []openBlock, error) {
	if len(blocks) == 0 {
		return semicolons, blocks, errUnbalanced
	}
	open := blocks[len(blocks)-1].pos
	if outermost {
		open = blocks[0].pos
	}
	return dropSemicolonsAfter(semicolons, open), blocks[:len(blocks)-1], nil
}

func dropSemicolonsAfter(semicolons []int, pos int) []int {
	for i := len(semicolons) - 1; i >= 0; i-- {
		if semicolons[i] < pos {
			return semicolons[:i+1]
		}
	}
	return []int{}
}

func position(tok antlr.Token) *types.Position {
	return &types.Position{
		Line:   int32(tok.GetLine() - 1),
		Column: int32(tok.GetColumn()),
	}
}

func firstDefaultChannelPosition(tokens []antlr.Token) *types.Position {
	for _, tok := range tokens {
		if tok.GetChannel() == antlr.TokenDefaultChannel {
			return position(tok)
		}
	}
	return &types.Position{}
}

// defaultChannelTokenType returns the type of the offset-th default channel
// token from base, or EOF past either end.
func defaultChannelTokenType(tokens []antlr.Token, base int, offset int) int {
	current, step, remaining := base, 1, offset
	if offset < 0 {
		step, remaining = -1, -offset
	}
	for remaining != 0 {
		current += step
		if current < 0 || current >= len(tokens) {
			return antlr.TokenEOF
		}
		if tokens[current].GetChannel() == antlr.TokenDefaultChannel {
			remaining--
		}
	}
	return tokens[current].GetTokenType()
}

func isEmpty(tokens []antlr.Token) bool {
	for _, tok := range tokens {
		if tok.GetChannel() == antlr.TokenDefaultChannel &&
			tok.GetTokenType() != parser.MySQLLexerSEMICOLON_SYMBOL &&
			tok.GetTokenType() != parser.MySQLParserEOF {
			return false
		}
	}
	return true
}
