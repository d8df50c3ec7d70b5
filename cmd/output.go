package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-formatter/pkg/analyzer"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

var (
	headerFmt  = color.New(color.FgBlue, color.Bold).SprintfFunc()
	errorFmt   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningFmt = color.New(color.FgYellow).SprintFunc()
	infoFmt    = color.New(color.FgCyan).SprintFunc()
)

func outputResults(w io.Writer, results []fileResult, format string) error {
	switch format {
	case "json":
		return outputJSON(w, map[string]interface{}{"results": results})
	case "yaml":
		return outputYAML(w, map[string]interface{}{"results": results})
	case "text":
		return outputText(w, results)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(v)
}

func outputText(w io.Writer, results []fileResult) error {
	errorCount := 0
	warningCount := 0

	for i, fr := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if len(results) > 1 {
			fmt.Fprintln(w, headerFmt("==> %s <==", fr.File))
		}

		for _, st := range fr.Result.Statements {
			renderReport(w, st.Report)
		}

		for _, advice := range fr.Result.Advices {
			var prefix string
			switch advice.Status {
			case types.Advice_ERROR:
				prefix = errorFmt("[ERROR]")
				errorCount++
			case types.Advice_WARNING:
				prefix = warningFmt("[WARNING]")
				warningCount++
			default:
				prefix = infoFmt("[INFO]")
			}

			position := ""
			if advice.StartPosition != nil {
				position = fmt.Sprintf(" at line %d, column %d", advice.StartPosition.Line, advice.StartPosition.Column)
			}

			fmt.Fprintf(w, "%s %s%s\n", prefix, advice.Title, position)
			if advice.Content != "" {
				fmt.Fprintf(w, "  %s\n", advice.Content)
			}
		}
	}

	fmt.Fprintln(w)
	if errorCount == 0 && warningCount == 0 {
		fmt.Fprintln(w, "No issues found.")
		return nil
	}
	fmt.Fprintf(w, "Summary: %d error(s), %d warning(s)\n", errorCount, warningCount)
	return nil
}

func renderReport(w io.Writer, report *analyzer.Report) {
	if report.Empty {
		fmt.Fprintln(w, "Empty query")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Query Type", "Tables", "Joins", "Subqueries", "Complexity", "Performance"})
	t.AppendRow(table.Row{
		report.QueryType,
		orDash(report.Tables),
		orDash(report.Joins),
		report.SubqueryCount,
		fmt.Sprintf("%s (%d)", report.Complexity, report.ComplexityScore),
		fmt.Sprintf("%s (%d)", report.Performance, report.PerformanceScore),
	})
	t.Render()
}

func orDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
