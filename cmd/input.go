package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/sql-formatter/pkg/formatter"
	"github.com/nsxbet/sql-formatter/pkg/reviewer"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

const stdinName = "<stdin>"

// input is one SQL source named on the command line.
type input struct {
	name    string
	path    string // empty for standard input
	content string
}

// readInputs reads every file in args. No args, or "-", reads standard input.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, errors.Wrap(err, "failed to read standard input")
			}
			inputs = append(inputs, input{name: stdinName, content: string(data)})
			continue
		}

		slog.Debug("Reading SQL file", "file", arg)
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read SQL file: %s", arg)
		}
		inputs = append(inputs, input{name: arg, path: arg, content: string(data)})
	}
	return inputs, nil
}

// newReviewer builds a reviewer from the configuration file, then applies
// formatting flags and environment overrides.
func newReviewer() (*reviewer.Reviewer, error) {
	r := reviewer.New()
	if path := configPath(); path != "" {
		if err := r.WithConfig(path); err != nil {
			return nil, err
		}
	}

	opts, err := formatOverrides(r.FormatOptions())
	if err != nil {
		return nil, err
	}
	return r.WithFormatOptions(opts), nil
}

// configPath is the explicit rules file, or else the config file viper
// loaded.
func configPath() string {
	if path := viper.GetString("rules"); path != "" {
		return path
	}
	return viper.ConfigFileUsed()
}

func formatOverrides(opts formatter.Options) (formatter.Options, error) {
	if viper.IsSet("format.style") {
		name := viper.GetString("format.style")
		style, ok := types.ParseFormatStyle(name)
		if !ok {
			return opts, errors.Errorf("unsupported format style: %s", name)
		}
		opts.Style = style
	}
	if viper.IsSet("format.uppercaseKeywords") {
		opts.UppercaseKeywords = viper.GetBool("format.uppercaseKeywords")
	}
	if viper.IsSet("format.addSemicolon") {
		opts.AddSemicolon = viper.GetBool("format.addSemicolon")
	}
	if viper.IsSet("format.indentCte") {
		opts.IndentCTE = viper.GetBool("format.indentCte")
	}
	if viper.IsSet("format.alignAliases") {
		opts.AlignAliases = viper.GetBool("format.alignAliases")
	}
	return opts, nil
}
