package cmd

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/nsxbet/sql-formatter/pkg/reviewer"
)

var (
	// ErrReviewErrors is returned by analyze --fail-on-error.
	ErrReviewErrors = errors.New("review found errors")
	// ErrReviewWarnings is returned by analyze --fail-on-warning.
	ErrReviewWarnings = errors.New("review found warnings")
)

var analyzeBindings = map[string]string{
	"output":          "output",
	"rules":           "rules",
	"split":           "split",
	"jobs":            "jobs",
	"fail-on-error":   "fail-on-error",
	"fail-on-warning": "fail-on-warning",
}

func newAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:     "analyze [flags] [file...]",
		Aliases: []string{"check"},
		Short:   "Analyze SQL for complexity, performance and security issues",
		Long: `Analyze SQL read from files or standard input.

Each input is reported with its query type, tables, joins, complexity and
performance scores, followed by recommendations (WARNING) and security
warnings (ERROR). Rules in the configuration file can re-level or disable
individual checks; run "sql-formatter rules" to list them.`,
		PreRunE: bindFlags(analyzeBindings),
		RunE:    runAnalyze,
	}

	flags := analyzeCmd.Flags()
	flags.StringP("output", "o", "text", "output format (text, json, yaml)")
	flags.StringP("rules", "r", "", "path to rules configuration file")
	flags.Bool("split", false, "analyze each statement of a script separately")
	flags.IntP("jobs", "j", 4, "number of inputs analyzed concurrently")
	flags.Bool("fail-on-error", false, "exit with non-zero code if errors are found")
	flags.Bool("fail-on-warning", false, "exit with non-zero code if warnings are found")
	return analyzeCmd
}

// fileResult is the review of one input.
type fileResult struct {
	File   string                 `json:"file"   yaml:"file"`
	Result *reviewer.ReviewResult `json:"result" yaml:"result"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	slog.Debug("Starting analyze command", "args", args)

	r, err := newReviewer()
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	var opts []reviewer.ReviewOption
	if viper.GetBool("split") {
		opts = append(opts, reviewer.WithStatementSplit())
	}

	results, err := reviewAll(cmd.Context(), r, inputs, viper.GetInt("jobs"), opts...)
	if err != nil {
		return err
	}

	if err := outputResults(cmd.OutOrStdout(), results, viper.GetString("output")); err != nil {
		return err
	}

	// Check exit codes
	hasErrors := false
	hasWarnings := false
	for _, fr := range results {
		hasErrors = hasErrors || fr.Result.HasErrors()
		hasWarnings = hasWarnings || fr.Result.HasWarnings()
	}

	if hasErrors && viper.GetBool("fail-on-error") {
		return ErrReviewErrors
	}
	if hasWarnings && viper.GetBool("fail-on-warning") {
		return ErrReviewWarnings
	}
	return nil
}

// reviewAll reviews inputs with at most jobs running at once. Results keep
// the order of inputs.
func reviewAll(
	ctx context.Context,
	r *reviewer.Reviewer,
	inputs []input,
	jobs int,
	opts ...reviewer.ReviewOption,
) ([]fileResult, error) {
	results := make([]fileResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			result, err := r.Review(gctx, in.content, opts...)
			if err != nil {
				return errors.Wrapf(err, "failed to review %s", in.name)
			}
			results[i] = fileResult{File: in.name, Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
