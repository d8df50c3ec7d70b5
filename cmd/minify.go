package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMinifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minify [file...]",
		Short: "Collapse SQL onto a single line",
		Long: `Minify SQL read from files or standard input: whitespace runs become a
single space and spaces around punctuation and operators are removed.`,
		RunE: runMinify,
	}
}

func runMinify(cmd *cobra.Command, args []string) error {
	r, err := newReviewer()
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		fmt.Fprintln(cmd.OutOrStdout(), r.Minify(in.content))
	}
	return nil
}
