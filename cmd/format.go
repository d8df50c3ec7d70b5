package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrNotFormatted is returned by format --check when an input would change.
var ErrNotFormatted = errors.New("input is not formatted")

var formatBindings = map[string]string{
	"format.style":             "style",
	"format.uppercaseKeywords": "uppercase",
	"format.addSemicolon":      "semicolon",
	"format.indentCte":         "indent-cte",
	"format.alignAliases":      "align-aliases",
	"split":                    "split",
	"write":                    "write",
	"check":                    "check",
	"diff":                     "diff",
}

func newFormatCmd() *cobra.Command {
	formatCmd := &cobra.Command{
		Use:   "format [flags] [file...]",
		Short: "Format SQL",
		Long: `Format SQL read from files or standard input.

Styles:
  standard  one clause per line, one list item per line
  compact   a single line
  expanded  every keyword and parenthesized group on its own line
  tabular   currently the same as standard`,
		PreRunE: bindFlags(formatBindings),
		RunE:    runFormat,
	}

	flags := formatCmd.Flags()
	flags.StringP("style", "s", "standard", "layout style (standard, compact, expanded, tabular)")
	flags.Bool("uppercase", true, "upper-case keywords")
	flags.Bool("semicolon", false, "terminate the output with a semicolon")
	flags.Bool("indent-cte", false, "put CTE bodies on their own indented lines")
	flags.Bool("align-aliases", false, "align AS keywords on consecutive lines")
	flags.Bool("split", false, "format each statement of a script separately")
	flags.BoolP("write", "w", false, "write the result back to the input file")
	flags.BoolP("check", "c", false, "exit with non-zero code if any input is not formatted")
	flags.BoolP("diff", "d", false, "show a unified diff instead of the formatted output")
	return formatCmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	r, err := newReviewer()
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	write := viper.GetBool("write")
	check := viper.GetBool("check")
	diff := viper.GetBool("diff")
	split := viper.GetBool("split")

	unformatted := false
	for _, in := range inputs {
		if write && in.path == "" {
			return errors.New("cannot use --write with standard input")
		}

		var formatted string
		if split {
			formatted = r.FormatScript(in.content)
		} else {
			formatted = r.Format(in.content)
		}
		slog.Debug("Formatted input", "input", in.name, "style", r.FormatOptions().Style, "size", len(formatted))

		switch {
		case check:
			if strings.TrimSpace(in.content) != formatted {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is not formatted\n", in.name)
				unformatted = true
			}
		case diff:
			if err := writeDiff(cmd.OutOrStdout(), in, formatted); err != nil {
				return err
			}
		case write:
			if err := writeBack(in, formatted); err != nil {
				return err
			}
		default:
			fmt.Fprintln(cmd.OutOrStdout(), formatted)
		}
	}

	if unformatted {
		return ErrNotFormatted
	}
	return nil
}

func writeDiff(w io.Writer, in input, formatted string) error {
	if strings.TrimSpace(in.content) == formatted {
		return nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(in.content),
		B:        difflib.SplitLines(formatted + "\n"),
		FromFile: in.name + " (original)",
		ToFile:   in.name + " (formatted)",
		Context:  3,
	}
	return errors.Wrapf(difflib.WriteUnifiedDiff(w, diff), "failed to write diff for %s", in.name)
}

func writeBack(in input, formatted string) error {
	out := formatted + "\n"
	if in.content == out {
		return nil
	}
	info, err := os.Stat(in.path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", in.path)
	}
	if err := os.WriteFile(in.path, []byte(out), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "failed to write %s", in.path)
	}
	slog.Info("Formatted file", "file", in.path)
	return nil
}
