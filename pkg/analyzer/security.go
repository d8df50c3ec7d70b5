package analyzer

import (
	"regexp"
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/advisor"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

var (
	destructive = regexp.MustCompile(`\b(?:DROP|DELETE|TRUNCATE)\b`)
	dynamicSQL  = regexp.MustCompile(`\b(?:EXEC|EXECUTE)\b`)
)

// securityChecks are evaluated in this order and reported in it.
var securityChecks = []advisor.Check{
	{
		Type:    advisor.SecurityStringConcatenation,
		Code:    advisor.StringConcatenation,
		Status:  types.Advice_ERROR,
		Title:   "String concatenation",
		Message: "Quotes combined with + suggest string concatenation; use bound parameters to prevent SQL injection",
		Match: func(c advisor.Context) bool {
			return strings.Contains(c.Statement, "'") && strings.Contains(c.Statement, "+")
		},
	},
	{
		Type:    advisor.SecurityComment,
		Code:    advisor.InlineComment,
		Status:  types.Advice_ERROR,
		Title:   "SQL comment",
		Message: "Statement contains a -- comment, which is a common injection technique",
		Match: func(c advisor.Context) bool {
			return strings.Contains(c.Statement, "--")
		},
	},
	{
		Type:    advisor.SecurityMultipleStatements,
		Code:    advisor.MultipleStatements,
		Status:  types.Advice_ERROR,
		Title:   "Multiple statements",
		Message: "Semicolon before the end of the text indicates multiple statements",
		Match: func(c advisor.Context) bool {
			trimmed := strings.TrimSpace(c.Statement)
			i := strings.IndexByte(trimmed, ';')
			return i >= 0 && i < len(trimmed)-1
		},
	},
	{
		Type:    advisor.SecurityDestructiveOperation,
		Code:    advisor.DestructiveOperation,
		Status:  types.Advice_ERROR,
		Title:   "Destructive operation",
		Message: "DROP, DELETE or TRUNCATE permanently removes data; make sure it is intended and backed up",
		Match: func(c advisor.Context) bool {
			return destructive.MatchString(c.Upper)
		},
	},
	{
		Type:    advisor.SecurityDynamicSQL,
		Code:    advisor.DynamicSQL,
		Status:  types.Advice_ERROR,
		Title:   "Dynamic SQL",
		Message: "EXEC or EXECUTE runs dynamic SQL; validate every input it is built from",
		Match: func(c advisor.Context) bool {
			return dynamicSQL.MatchString(c.Upper)
		},
	},
}
