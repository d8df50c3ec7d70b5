package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/sql-formatter/pkg/advisor"
	"github.com/nsxbet/sql-formatter/pkg/config"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

func newRulesCmd() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List the checks and their configured levels",
		Long: `List every recommendation and security check with its code, default
status and the level configured for it, if any.`,
		Args:    cobra.NoArgs,
		PreRunE: bindFlags(map[string]string{"output": "output", "rules": "rules"}),
		RunE:    runRules,
	}
	rulesCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	rulesCmd.Flags().StringP("rules", "r", "", "path to rules configuration file")
	return rulesCmd
}

// ruleRow is one check with the level the configuration gives it.
type ruleRow struct {
	config.SchemaRule `yaml:",inline"`
	Configured        types.SQLReviewRuleLevel `json:"configured" yaml:"configured"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	r, err := newReviewer()
	if err != nil {
		return err
	}

	schema := config.Schema()
	rows := make([]ruleRow, 0, len(schema))
	for _, rule := range schema {
		row := ruleRow{SchemaRule: rule}
		if configured := r.Config().GetRule(advisor.Type(rule.Type)); configured != nil {
			row.Configured = configured.Level
		}
		rows = append(rows, row)
	}

	w := cmd.OutOrStdout()
	switch format := viper.GetString("output"); format {
	case "json":
		return outputJSON(w, map[string]interface{}{"rules": rows})
	case "yaml":
		return outputYAML(w, map[string]interface{}{"rules": rows})
	case "text":
		renderRules(w, rows)
		return nil
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func renderRules(w io.Writer, rows []ruleRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Type", "Code", "Default", "Configured", "Title"})
	for _, row := range rows {
		configured := "-"
		if row.Configured != types.SQLReviewRuleLevel_LEVEL_UNSPECIFIED {
			configured = row.Configured.String()
		}
		t.AppendRow(table.Row{row.Type, row.Code, row.Level, configured, row.Title})
	}
	t.Render()
}
