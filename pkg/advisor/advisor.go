// Package advisor runs ordered lists of heuristic checks against a
// statement and turns each match into an advice.
package advisor

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/nsxbet/sql-formatter/pkg/extractor"
	"github.com/nsxbet/sql-formatter/pkg/logger"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

// Type is the type of a check. It is the key used by rule configuration.
type Type string

const (
	// RecommendationRequireWhere flags statements that read tables without WHERE.
	RecommendationRequireWhere Type = "recommendation.require-where"
	// RecommendationNoSelectAll flags 'SELECT *'.
	RecommendationNoSelectAll Type = "recommendation.no-select-all"
	// RecommendationRequireLimit flags SELECT without LIMIT.
	RecommendationRequireLimit Type = "recommendation.require-limit"
	// RecommendationMaximumJoinCount flags more than three join kinds.
	RecommendationMaximumJoinCount Type = "recommendation.maximum-join-count"
	// RecommendationNoOrCondition flags OR inside a filtered statement.
	RecommendationNoOrCondition Type = "recommendation.no-or-condition"
	// RecommendationNoLeadingWildcardLike disallow leading '%' in LIKE.
	RecommendationNoLeadingWildcardLike Type = "recommendation.no-leading-wildcard-like"
	// RecommendationLimitRequireOrderBy flags LIMIT without ORDER BY.
	RecommendationLimitRequireOrderBy Type = "recommendation.limit-require-order-by"
	// RecommendationGroupByRequireHaving flags GROUP BY without HAVING.
	RecommendationGroupByRequireHaving Type = "recommendation.group-by-require-having"
	// RecommendationNoSubquery flags nested SELECTs.
	RecommendationNoSubquery Type = "recommendation.no-subquery"

	SecurityStringConcatenation  Type = "security.string-concatenation"
	SecurityComment              Type = "security.comment"
	SecurityMultipleStatements   Type = "security.multiple-statements"
	SecurityDestructiveOperation Type = "security.destructive-operation"
	SecurityDynamicSQL           Type = "security.dynamic-sql"
)

// NewStatusBySQLReviewRuleLevel returns status by SQLReviewRuleLevel.
func NewStatusBySQLReviewRuleLevel(level types.SQLReviewRuleLevel) (types.Advice_Status, error) {
	switch level {
	case types.SQLReviewRuleLevel_ERROR:
		return types.Advice_ERROR, nil
	case types.SQLReviewRuleLevel_WARNING:
		return types.Advice_WARNING, nil
	}
	return types.Advice_STATUS_UNSPECIFIED, errors.Errorf("unexpected rule level type: %v", level)
}

// Context is what a check inspects.
type Context struct {
	// Statement is the raw text.
	Statement string
	// Upper is the normalized, upper-cased text.
	Upper     string
	Structure *extractor.Structure

	// Levels overrides the status of a check by type, or disables it.
	Levels map[Type]types.SQLReviewRuleLevel
}

// NewContext builds a Context for statement with its extracted structure.
func NewContext(statement string, structure *extractor.Structure) Context {
	return Context{
		Statement: statement,
		Upper:     extractor.Normalize(statement),
		Structure: structure,
	}
}

// Check is a single heuristic with a fixed message.
type Check struct {
	Type    Type
	Code    Code
	Status  types.Advice_Status
	Title   string
	Message string
	Match   func(checkCtx Context) bool
}

// Run evaluates checks in order and returns one advice per match, in check
// order. Disabled checks are skipped. A check that panics is logged and
// treated as not matching.
func Run(checkCtx Context, checks []Check) []*types.Advice {
	advices := []*types.Advice{}
	for _, check := range checks {
		status := check.Status
		if level, ok := checkCtx.Levels[check.Type]; ok {
			if level == types.SQLReviewRuleLevel_DISABLED {
				continue
			}
			if s, err := NewStatusBySQLReviewRuleLevel(level); err == nil {
				status = s
			}
		}

		matched, err := match(check, checkCtx)
		if err != nil {
			slog.Error("advisor check PANIC RECOVER", "type", check.Type, logger.Error(err), logger.Statement(checkCtx.Statement))
			continue
		}
		if !matched {
			continue
		}

		advices = append(advices, &types.Advice{
			Status:  status,
			Code:    check.Code.Int32(),
			Title:   check.Title,
			Content: check.Message,
		})
	}
	return advices
}

func match(check Check, checkCtx Context) (matched bool, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panicErr, ok := panicErr.(error)
			if !ok {
				panicErr = errors.Errorf("%v", panicErr)
			}
			matched = false
			err = errors.Wrapf(panicErr, "check %s", check.Type)
		}
	}()

	if check.Match == nil {
		return false, nil
	}
	return check.Match(checkCtx), nil
}
