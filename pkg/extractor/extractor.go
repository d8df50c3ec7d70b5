// Package extractor derives structural facts about a query from its text:
// statement type, referenced tables, join kinds, subquery count and clause
// flags. It is heuristic and never parses the statement.
package extractor

import (
	"regexp"
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/keyword"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

// Structure is the result of Extract.
type Structure struct {
	QueryType     types.QueryType `json:"queryType"     yaml:"queryType"`
	Tables        []string        `json:"tables"        yaml:"tables"`
	Joins         []string        `json:"joins"         yaml:"joins"`
	SubqueryCount int             `json:"subqueryCount" yaml:"subqueryCount"`

	HasWhere   bool `json:"hasWhere"   yaml:"hasWhere"`
	HasGroupBy bool `json:"hasGroupBy" yaml:"hasGroupBy"`
	HasOrderBy bool `json:"hasOrderBy" yaml:"hasOrderBy"`
	HasLimit   bool `json:"hasLimit"   yaml:"hasLimit"`
	HasHaving  bool `json:"hasHaving"  yaml:"hasHaving"`
	HasUnion   bool `json:"hasUnion"   yaml:"hasUnion"`
}

// Leading keywords in priority order.
var queryTypes = []struct {
	prefix string
	typ    types.QueryType
}{
	{"SELECT", types.QueryType_SELECT},
	{"INSERT", types.QueryType_INSERT},
	{"UPDATE", types.QueryType_UPDATE},
	{"DELETE", types.QueryType_DELETE},
	{"CREATE", types.QueryType_CREATE},
	{"ALTER", types.QueryType_ALTER},
	{"DROP", types.QueryType_DROP},
}

// JoinTypes are the join phrases Extract looks for, in report order. A bare
// JOIN matches none of them.
var JoinTypes = []string{"INNER JOIN", "LEFT JOIN", "RIGHT JOIN", "FULL JOIN", "CROSS JOIN"}

var (
	whitespace   = regexp.MustCompile(`\s+`)
	tablePattern = regexp.MustCompile(`(?i)\b(?:FROM|JOIN)\s+([\p{L}\p{N}_]+(?:\.[\p{L}\p{N}_]+)*)`)
)

// Normalize upper-cases sql, collapses whitespace runs to one space and
// trims it. All containment tests run against this form.
func Normalize(sql string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(strings.ToUpper(sql), " "))
}

// Extract computes the Structure of sql. Table names that are keywords in
// table are skipped. Slices in the result are never nil.
func Extract(sql string, table *keyword.Table) *Structure {
	upper := Normalize(sql)

	return &Structure{
		QueryType:     QueryTypeOf(upper),
		Tables:        Tables(sql, table),
		Joins:         Joins(upper),
		SubqueryCount: SubqueryCount(upper),
		HasWhere:      strings.Contains(upper, "WHERE"),
		HasGroupBy:    strings.Contains(upper, "GROUP BY"),
		HasOrderBy:    strings.Contains(upper, "ORDER BY"),
		HasLimit:      strings.Contains(upper, "LIMIT"),
		HasHaving:     strings.Contains(upper, "HAVING"),
		HasUnion:      strings.Contains(upper, "UNION"),
	}
}

// QueryTypeOf returns the type named by the leading keyword of the
// normalized text.
func QueryTypeOf(upper string) types.QueryType {
	for _, qt := range queryTypes {
		if hasWordPrefix(upper, qt.prefix) {
			return qt.typ
		}
	}
	return types.QueryType_UNKNOWN
}

func hasWordPrefix(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}
	if len(s) == len(word) {
		return true
	}
	c := s[len(word)]
	return !(c == '_' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}

// Tables returns the names following FROM or JOIN in order of first
// appearance. Duplicates are collapsed case-insensitively and the first
// spelling is kept.
func Tables(sql string, table *keyword.Table) []string {
	tables := []string{}
	seen := make(map[string]struct{})
	for _, m := range tablePattern.FindAllStringSubmatch(sql, -1) {
		name := m[1]
		if table.Contains(name) {
			continue
		}
		key := strings.ToUpper(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tables = append(tables, name)
	}
	return tables
}

// Joins returns the JoinTypes phrases contained in the normalized text.
func Joins(upper string) []string {
	joins := []string{}
	for _, j := range JoinTypes {
		if strings.Contains(upper, j) {
			joins = append(joins, j)
		}
	}
	return joins
}

// SubqueryCount is the number of SELECT occurrences beyond the first.
func SubqueryCount(upper string) int {
	return max(0, strings.Count(upper, "SELECT")-1)
}
