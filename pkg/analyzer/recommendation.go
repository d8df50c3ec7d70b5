package analyzer

import (
	"regexp"
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/advisor"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

var leadingWildcardLike = regexp.MustCompile(`\bLIKE\s*'%`)

// recommendations are evaluated in this order and reported in it.
var recommendations = []advisor.Check{
	{
		Type:    advisor.RecommendationRequireWhere,
		Code:    advisor.MissingWhere,
		Status:  types.Advice_WARNING,
		Title:   "Missing WHERE clause",
		Message: "Add a WHERE clause to avoid reading every row of the table",
		Match: func(c advisor.Context) bool {
			return !c.Structure.HasWhere && len(c.Structure.Tables) > 0
		},
	},
	{
		Type:    advisor.RecommendationNoSelectAll,
		Code:    advisor.SelectAll,
		Status:  types.Advice_WARNING,
		Title:   "SELECT *",
		Message: "Avoid SELECT *; list only the columns you need",
		Match: func(c advisor.Context) bool {
			return strings.Contains(c.Upper, "SELECT *")
		},
	},
	{
		Type:    advisor.RecommendationRequireLimit,
		Code:    advisor.MissingLimit,
		Status:  types.Advice_WARNING,
		Title:   "Missing LIMIT",
		Message: "Add a LIMIT clause to bound the size of the result set",
		Match: func(c advisor.Context) bool {
			return !c.Structure.HasLimit && strings.Contains(c.Upper, "SELECT")
		},
	},
	{
		Type:    advisor.RecommendationMaximumJoinCount,
		Code:    advisor.TooManyJoins,
		Status:  types.Advice_WARNING,
		Title:   "Too many joins",
		Message: "Query combines more than 3 kinds of JOIN; consider splitting it or denormalizing",
		Match: func(c advisor.Context) bool {
			return len(c.Structure.Joins) > 3
		},
	},
	{
		Type:    advisor.RecommendationNoOrCondition,
		Code:    advisor.OrCondition,
		Status:  types.Advice_WARNING,
		Title:   "OR in filter",
		Message: "OR conditions can prevent index use; consider IN or UNION instead",
		Match: func(c advisor.Context) bool {
			return c.Structure.HasWhere && wordOr.MatchString(c.Upper)
		},
	},
	{
		Type:    advisor.RecommendationNoLeadingWildcardLike,
		Code:    advisor.LeadingWildcardLike,
		Status:  types.Advice_WARNING,
		Title:   "Leading wildcard LIKE",
		Message: "LIKE patterns starting with % cannot use an index; anchor the pattern or use full-text search",
		Match: func(c advisor.Context) bool {
			return leadingWildcardLike.MatchString(c.Upper)
		},
	},
	{
		Type:    advisor.RecommendationLimitRequireOrderBy,
		Code:    advisor.LimitWithoutOrderBy,
		Status:  types.Advice_WARNING,
		Title:   "LIMIT without ORDER BY",
		Message: "Add ORDER BY when using LIMIT so the returned rows are deterministic",
		Match: func(c advisor.Context) bool {
			return c.Structure.HasLimit && !c.Structure.HasOrderBy
		},
	},
	{
		Type:    advisor.RecommendationGroupByRequireHaving,
		Code:    advisor.GroupByWithoutHaving,
		Status:  types.Advice_WARNING,
		Title:   "GROUP BY without HAVING",
		Message: "Grouped results are not filtered; use HAVING to drop unneeded groups early",
		Match: func(c advisor.Context) bool {
			return c.Structure.HasGroupBy && !c.Structure.HasHaving
		},
	},
	{
		Type:    advisor.RecommendationNoSubquery,
		Code:    advisor.Subquery,
		Status:  types.Advice_WARNING,
		Title:   "Subquery",
		Message: "Subqueries can often be rewritten as JOINs or CTEs",
		Match: func(c advisor.Context) bool {
			return c.Structure.SubqueryCount > 0
		},
	},
}
