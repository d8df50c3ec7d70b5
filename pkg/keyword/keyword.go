// Package keyword holds the reserved-word table shared by the formatter and
// the structural extractor.
package keyword

import "strings"

// Table is an immutable set of reserved words, stored upper-cased.
// A *Table is safe for concurrent use.
type Table struct {
	words map[string]struct{}
}

// reserved is the default word list. Aggregate function names are included
// so that they are upper-cased together with the clauses around them.
var reserved = []string{
	"ADD", "ALL", "ALTER", "AND", "ANY", "AS", "ASC", "AVG",
	"BEGIN", "BETWEEN", "BY",
	"CASCADE", "CASE", "CAST", "CHECK", "COLUMN", "COMMIT", "CONSTRAINT", "COUNT", "CREATE", "CROSS",
	"DATABASE", "DEFAULT", "DELETE", "DESC", "DISTINCT", "DROP",
	"ELSE", "END", "EXCEPT", "EXEC", "EXECUTE", "EXISTS",
	"FETCH", "FOREIGN", "FROM", "FULL",
	"GRANT", "GROUP",
	"HAVING",
	"IF", "IN", "INDEX", "INNER", "INSERT", "INTERSECT", "INTO", "IS",
	"JOIN",
	"KEY",
	"LEFT", "LIKE", "LIMIT",
	"MAX", "MIN",
	"NATURAL", "NOT", "NULL",
	"OFFSET", "ON", "OR", "ORDER", "OUTER", "OVER",
	"PARTITION", "PRIMARY", "PROCEDURE",
	"RECURSIVE", "REFERENCES", "REPLACE", "RETURNING", "REVOKE", "RIGHT", "ROLLBACK", "ROWS",
	"SELECT", "SET", "SUM",
	"TABLE", "THEN", "TOP", "TRUNCATE",
	"UNION", "UNIQUE", "UPDATE", "USING",
	"VALUES", "VIEW",
	"WHEN", "WHERE", "WINDOW", "WITH",
}

// Clause keywords start a new line in the Standard layout.
var clauses = newSet("SELECT", "FROM", "WHERE", "JOIN", "INNER", "LEFT", "RIGHT",
	"GROUP", "HAVING", "ORDER", "LIMIT", "UNION")

var defaultTable = New(reserved...)

// Default returns the built-in keyword table.
func Default() *Table {
	return defaultTable
}

// New builds a table from the given words. Case is ignored.
func New(words ...string) *Table {
	return &Table{words: newSet(words...)}
}

// Contains reports whether word is a keyword, case-insensitively.
func (t *Table) Contains(word string) bool {
	if t == nil || word == "" {
		return false
	}
	_, ok := t.words[strings.ToUpper(word)]
	return ok
}

// Len returns the number of words in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.words)
}

// IsClause reports whether word is one of the clause keywords.
func IsClause(word string) bool {
	_, ok := clauses[strings.ToUpper(word)]
	return ok
}

func newSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return set
}
