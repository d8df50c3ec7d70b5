// Package analyzer produces a heuristic report for a single SQL statement:
// its structure, complexity and performance buckets, recommendations and
// security warnings.
//
// Analysis is a pure function of the input text. Blank input is reported
// through Report.Empty rather than as an error.
package analyzer

import (
	"log/slog"
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/advisor"
	"github.com/nsxbet/sql-formatter/pkg/extractor"
	"github.com/nsxbet/sql-formatter/pkg/keyword"
	"github.com/nsxbet/sql-formatter/pkg/logger"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

// Report is the analysis of one statement.
type Report struct {
	// Empty is set when the input was blank; nothing else was analyzed.
	Empty bool `json:"empty" yaml:"empty"`

	extractor.Structure `yaml:",inline"`
	Scores              `yaml:",inline"`

	Recommendations  []string        `json:"recommendations"  yaml:"recommendations"`
	SecurityWarnings []string        `json:"securityWarnings" yaml:"securityWarnings"`
	Advices          []*types.Advice `json:"advices"          yaml:"advices"`
}

// Analyze analyzes sql with every check at its default status.
func Analyze(sql string) *Report {
	return AnalyzeWithRules(sql, nil)
}

// AnalyzeWithRules analyzes sql. Rules re-level or disable checks by type; a
// disabled check contributes neither an advice nor a message.
func AnalyzeWithRules(sql string, rules []*types.SQLReviewRule) *Report {
	if strings.TrimSpace(sql) == "" {
		return emptyReport()
	}

	structure := extractor.Extract(sql, keyword.Default())
	checkCtx := advisor.NewContext(sql, structure)
	checkCtx.Levels = Levels(rules)

	report := &Report{
		Structure: *structure,
		Scores:    Score(checkCtx.Upper, len(structure.Tables), len(structure.Joins), structure.SubqueryCount),
	}

	recs := advisor.Run(checkCtx, recommendations)
	warnings := advisor.Run(checkCtx, securityChecks)
	report.Recommendations = contents(recs)
	report.SecurityWarnings = contents(warnings)
	report.Advices = append(recs, warnings...)

	slog.Debug("Analyzed statement",
		logger.Statement(sql),
		"query_type", report.QueryType,
		"complexity", report.ComplexityScore,
		"performance", report.PerformanceScore,
		"advices", len(report.Advices))
	return report
}

func emptyReport() *Report {
	return &Report{
		Empty: true,
		Structure: extractor.Structure{
			QueryType: types.QueryType_UNKNOWN,
			Tables:    []string{},
			Joins:     []string{},
		},
		Scores: Scores{
			Complexity:       types.Complexity_LOW,
			Performance:      types.Performance_EXCELLENT,
			PerformanceScore: PerformanceBase,
		},
		Recommendations:  []string{},
		SecurityWarnings: []string{},
		Advices:          []*types.Advice{},
	}
}

func contents(advices []*types.Advice) []string {
	out := make([]string, 0, len(advices))
	for _, a := range advices {
		out = append(out, a.Content)
	}
	return out
}

// Levels maps configured rules to check types. Rules without a level are
// ignored.
func Levels(rules []*types.SQLReviewRule) map[advisor.Type]types.SQLReviewRuleLevel {
	if len(rules) == 0 {
		return nil
	}
	levels := make(map[advisor.Type]types.SQLReviewRuleLevel, len(rules))
	for _, rule := range rules {
		if rule == nil || rule.Level == types.SQLReviewRuleLevel_LEVEL_UNSPECIFIED {
			continue
		}
		levels[advisor.Type(rule.Type)] = rule.Level
	}
	return levels
}

// Checks returns every check in evaluation order: recommendations first,
// then security checks.
func Checks() []advisor.Check {
	checks := make([]advisor.Check, 0, len(recommendations)+len(securityChecks))
	checks = append(checks, recommendations...)
	return append(checks, securityChecks...)
}

// FilterAdvices returns the advices with the given status.
func (r *Report) FilterAdvices(status types.Advice_Status) []*types.Advice {
	filtered := make([]*types.Advice, 0)
	for _, a := range r.Advices {
		if a.Status == status {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
