// Package reviewer provides a high-level API over the formatter, minifier and
// analyzer.
//
// # Quick Start
//
//	r := reviewer.New()
//
//	fmt.Println(r.Format("select a,b from t where x=1"))
//
//	result, err := r.Review(context.Background(), "SELECT * FROM users")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, advice := range result.Advices {
//	    fmt.Printf("[%s] %s\n", advice.Status, advice.Content)
//	}
//
// # Using Custom Configuration
//
//	r := reviewer.New()
//	if err := r.WithConfig(".sql-formatter.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := r.Review(ctx, script, reviewer.WithStatementSplit())
package reviewer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/sql-formatter/pkg/analyzer"
	"github.com/nsxbet/sql-formatter/pkg/config"
	"github.com/nsxbet/sql-formatter/pkg/formatter"
	"github.com/nsxbet/sql-formatter/pkg/logger"
	"github.com/nsxbet/sql-formatter/pkg/minifier"
	"github.com/nsxbet/sql-formatter/pkg/splitter"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

// Reviewer formats and analyzes SQL under one configuration.
//
// Reviewer is safe for concurrent use by multiple goroutines once configured.
type Reviewer struct {
	config  *config.Config
	options formatter.Options
}

// New creates a Reviewer with the default formatting options and every check
// at its default status.
func New() *Reviewer {
	return &Reviewer{
		config:  config.DefaultConfig("default"),
		options: formatter.DefaultOptions(),
	}
}

// WithConfig loads configuration from a YAML or JSON file. Its format section
// replaces the current formatting options.
func (r *Reviewer) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to load config from %s", filename)
	}
	r.WithConfigObject(cfg)
	return nil
}

// WithConfigObject sets the configuration directly.
func (r *Reviewer) WithConfigObject(cfg *config.Config) *Reviewer {
	if cfg == nil {
		cfg = config.DefaultConfig("default")
	}
	r.config = cfg
	r.options = cfg.FormatOptions()
	return r
}

// WithFormatOptions overrides the formatting options.
func (r *Reviewer) WithFormatOptions(opts formatter.Options) *Reviewer {
	r.options = opts
	return r
}

// Config returns the active configuration.
func (r *Reviewer) Config() *config.Config {
	return r.config
}

// FormatOptions returns the active formatting options.
func (r *Reviewer) FormatOptions() formatter.Options {
	return r.options
}

// Format formats sql as a single unit.
func (r *Reviewer) Format(sql string) string {
	return formatter.FormatSQL(sql, r.options)
}

// FormatScript formats each statement of script separately and joins them
// with a blank line. A script the splitter rejects is formatted as a whole.
func (r *Reviewer) FormatScript(script string) string {
	statements, err := splitter.Split(script)
	if err != nil {
		slog.Warn("Failed to split script, formatting as a single statement", logger.Error(err))
		return r.Format(script)
	}

	parts := make([]string, 0, len(statements))
	for _, st := range splitter.NonEmpty(statements) {
		if out := r.Format(st.Text); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Minify collapses sql onto one line.
func (r *Reviewer) Minify(sql string) string {
	return minifier.Minify(sql)
}

// Analyze analyzes sql as one statement under the configured rules.
func (r *Reviewer) Analyze(sql string) *analyzer.Report {
	return analyzer.AnalyzeWithRules(sql, r.config.Rules)
}

// Review analyzes sql and collects every advice with a summary.
//
// By default the whole text is one statement. With WithStatementSplit each
// statement is analyzed on its own and its advices carry the statement's
// start position. The context is checked between statements; on
// cancellation the partial result is returned with ctx.Err().
func (r *Reviewer) Review(ctx context.Context, sql string, opts ...ReviewOption) (*ReviewResult, error) {
	reviewOpts := &reviewOptions{logger: logger.Default()}
	for _, opt := range opts {
		opt(reviewOpts)
	}

	units := []unit{{text: sql}}
	if reviewOpts.split {
		units = splitUnits(sql, reviewOpts.logger)
	}

	result := &ReviewResult{
		Statements: make([]*StatementReport, 0, len(units)),
		Advices:    []*types.Advice{},
	}
	for _, u := range units {
		select {
		case <-ctx.Done():
			result.Summary = calculateSummary(result.Advices)
			return result, ctx.Err()
		default:
		}

		report := r.Analyze(u.text)
		for _, advice := range report.Advices {
			if u.start != nil {
				advice.StartPosition = &types.Position{Line: u.start.Line + 1, Column: u.start.Column + 1}
			}
			result.Advices = append(result.Advices, advice)
		}
		result.Statements = append(result.Statements, &StatementReport{
			Statement: strings.TrimSpace(u.text),
			Start:     u.start,
			Report:    report,
		})
		reviewOpts.logger.Debug("Reviewed statement", logger.Statement(u.text), "advices", len(report.Advices))
	}

	result.Summary = calculateSummary(result.Advices)
	return result, nil
}

type unit struct {
	text  string
	start *types.Position
}

func splitUnits(sql string, log logger.Interface) []unit {
	statements, err := splitter.Split(sql)
	if err != nil {
		log.Warn("Failed to split script, reviewing as a single statement", logger.Error(err))
		return []unit{{text: sql}}
	}

	units := make([]unit, 0, len(statements))
	for _, st := range splitter.NonEmpty(statements) {
		units = append(units, unit{text: st.Text, start: st.Start})
	}
	if len(units) == 0 {
		// keep the empty-query report for blank scripts
		units = append(units, unit{text: sql})
	}
	return units
}

// calculateSummary computes aggregate statistics from advices
func calculateSummary(advices []*types.Advice) Summary {
	summary := Summary{}
	for _, advice := range advices {
		summary.Total++
		switch advice.Status {
		case types.Advice_ERROR:
			summary.Errors++
		case types.Advice_WARNING:
			summary.Warnings++
		case types.Advice_SUCCESS:
			summary.Success++
		}
	}
	return summary
}
