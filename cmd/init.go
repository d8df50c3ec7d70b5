package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-formatter/pkg/config"
	"github.com/nsxbet/sql-formatter/pkg/formatter"
)

func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a configuration file with the default settings",
		Long: `Write a configuration file listing the default formatting options and
every check at its default level. The file defaults to ` + defaultCfgFile + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	initCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
	return initCmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := defaultCfgFile
	if len(args) == 1 {
		path = args[0]
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultRulesConfig("default")
	cfg.Format = config.NewFormatConfig(formatter.DefaultOptions())

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
