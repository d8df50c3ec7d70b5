package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/sql-formatter/pkg/logger"
)

const (
	envPrefix      = "SQLFMT"
	configName     = ".sql-formatter"
	defaultCfgFile = configName + ".yaml"
)

// Execute builds the command tree and runs it. It is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sql-formatter",
		Short: "Format, minify and analyze SQL",
		Long: `sql-formatter re-renders SQL text in one of several layout styles,
minifies it, and reports heuristic findings about its structure,
complexity, performance and security.

Settings are read from flags, SQLFMT_* environment variables, a .env file
and a .sql-formatter.yaml file in the working or home directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, cfgFile)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./"+defaultCfgFile+" or $HOME/"+defaultCfgFile+")")
	flags.Bool("verbose", false, "enable verbose output")
	flags.Bool("debug", false, "enable debug output")
	flags.Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newFormatCmd(),
		newMinifyCmd(),
		newAnalyzeCmd(),
		newRulesCmd(),
		newInitCmd(),
	)
	return rootCmd
}

// initConfig reads in .env, the config file and ENV variables, then sets up
// logging.
func initConfig(cmd *cobra.Command, cfgFile string) error {
	root := cmd.Root().PersistentFlags()
	for _, key := range []string{"verbose", "debug", "no-color"} {
		_ = viper.BindPFlag(key, root.Lookup(key))
	}

	if err := loadEnvFiles(); err != nil {
		return err
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	readErr := viper.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(readErr, &notFound) {
			return errors.Wrap(readErr, "failed to read config file")
		}
	}

	if err := setupLogging(cmd); err != nil {
		return err
	}
	if viper.GetBool("no-color") {
		color.NoColor = true
	}

	if readErr != nil {
		slog.Debug("No config file found", logger.Error(readErr))
	} else {
		slog.Debug("Using config file", "file", viper.ConfigFileUsed())
	}
	return nil
}

// loadEnvFiles loads .env from the working directory if it exists.
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return errors.Wrap(err, "failed to load .env file")
	}
	return nil
}

func setupLogging(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelInfo
	}
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	}
	if name := viper.GetString("log-level"); name != "" {
		parsed, err := logger.ParseLevel(name)
		if err != nil {
			return err
		}
		level = parsed
	}

	slog.SetDefault(logger.NewWithWriter(cmd.ErrOrStderr(), level).GetSlogLogger())
	return nil
}

// bindFlags binds viper keys to the flags of the running command. Binding
// at run time keeps commands that share a key from overriding each other.
func bindFlags(bindings map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		for key, name := range bindings {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
				return errors.Wrapf(err, "failed to bind flag %s", name)
			}
		}
		return nil
	}
}
