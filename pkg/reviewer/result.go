package reviewer

import (
	"fmt"

	"github.com/nsxbet/sql-formatter/pkg/analyzer"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

// ReviewResult contains the results of a review operation.
//
// It includes the analysis of every reviewed statement, all advices in
// statement order and aggregate statistics for quick analysis.
type ReviewResult struct {
	// Statements holds one report per reviewed statement.
	Statements []*StatementReport `json:"statements" yaml:"statements"`

	// Advices contains all findings from the review.
	// Empty if no issues were found.
	Advices []*types.Advice `json:"advices" yaml:"advices"`

	// Summary provides aggregate statistics about the findings.
	Summary Summary `json:"summary" yaml:"summary"`
}

// StatementReport is the analysis of one statement.
type StatementReport struct {
	Statement string `json:"statement" yaml:"statement"`
	// Start is the zero based position of the statement in the script. It
	// is nil when the input was reviewed as a whole.
	Start  *types.Position  `json:"start,omitempty" yaml:"start,omitempty"`
	Report *analyzer.Report `json:"report"          yaml:"report"`
}

// Summary provides aggregate statistics about review findings.
//
// It categorizes findings by severity level for quick analysis.
type Summary struct {
	// Total number of findings (errors + warnings + success)
	Total int `json:"total" yaml:"total"`

	// Errors is the count of ERROR-level findings.
	// These are the security warnings at their default level.
	Errors int `json:"errors" yaml:"errors"`

	// Warnings is the count of WARNING-level findings.
	// These are the recommendations at their default level.
	Warnings int `json:"warnings" yaml:"warnings"`

	// Success is the count of SUCCESS-level findings.
	Success int `json:"success" yaml:"success"`
}

// HasErrors returns true if the review found any ERROR-level findings.
//
// This is useful for CI/CD pipelines that should fail on errors:
//
//	if result.HasErrors() {
//	    os.Exit(1)
//	}
func (r *ReviewResult) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if the review found any WARNING-level findings.
func (r *ReviewResult) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// IsClean returns true if the review found no errors or warnings.
func (r *ReviewResult) IsClean() bool {
	return r.Summary.Errors == 0 && r.Summary.Warnings == 0
}

// String returns a human-readable summary of the review results.
//
// Example output:
//
//	Review Results: 5 total (2 errors, 3 warnings, 0 success)
func (r *ReviewResult) String() string {
	return fmt.Sprintf(
		"Review Results: %d total (%d errors, %d warnings, %d success)",
		r.Summary.Total,
		r.Summary.Errors,
		r.Summary.Warnings,
		r.Summary.Success,
	)
}

// FilterByStatus returns a new slice containing only advices with the specified status.
//
//	errors := result.FilterByStatus(types.Advice_ERROR)
//	for _, err := range errors {
//	    fmt.Printf("ERROR: %s\n", err.Content)
//	}
func (r *ReviewResult) FilterByStatus(status types.Advice_Status) []*types.Advice {
	filtered := make([]*types.Advice, 0)
	for _, advice := range r.Advices {
		if advice.Status == status {
			filtered = append(filtered, advice)
		}
	}
	return filtered
}

// FilterByCode returns a new slice containing only advices with the specified code.
//
//	selectAll := result.FilterByCode(advisor.SelectAll.Int32())
func (r *ReviewResult) FilterByCode(code int32) []*types.Advice {
	filtered := make([]*types.Advice, 0)
	for _, advice := range r.Advices {
		if advice.Code == code {
			filtered = append(filtered, advice)
		}
	}
	return filtered
}
