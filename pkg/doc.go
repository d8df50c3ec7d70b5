// Package pkg provides SQL formatting, minification and heuristic analysis
// for Go applications.
//
// # Package Structure
//
// The pkg directory contains several specialized packages:
//
//   - reviewer: High-level API over everything below (recommended starting point)
//   - token: Splits SQL text into classified tokens
//   - keyword: The case-insensitive SQL keyword table
//   - formatter: Renders a token stream in the Standard, Compact, Expanded or Tabular style
//   - minifier: Collapses SQL onto a single line
//   - extractor: Derives query type, tables, joins and clause flags from SQL text
//   - analyzer: Scores complexity and performance, and runs the checks
//   - advisor: Runs ordered lists of checks and turns matches into advices
//   - splitter: Splits scripts into statements with the MySQL lexer
//   - config: Configuration loading and the check catalog
//   - types: Core enums and data structures
//   - logger: Logging abstraction layer
//
// # Getting Started
//
// For most use cases, start with the reviewer package:
//
//	import "github.com/nsxbet/sql-formatter/pkg/reviewer"
//
//	func main() {
//	    r := reviewer.New()
//	    fmt.Println(r.Format("select a,b from t where x=1"))
//
//	    result, err := r.Review(context.Background(), "SELECT * FROM users")
//	    // Process results...
//	}
//
// # Checks
//
// Recommendations are reported at WARNING:
//   - Missing WHERE clause, SELECT *, missing LIMIT
//   - More than three kinds of JOIN, OR in a filter, leading wildcard LIKE
//   - LIMIT without ORDER BY, GROUP BY without HAVING, subqueries
//
// Security warnings are reported at ERROR:
//   - Quotes combined with + (string concatenation)
//   - -- comments
//   - Semicolons before the end of the text
//   - DROP, DELETE and TRUNCATE
//   - EXEC and EXECUTE
//
// # Configuration
//
// Formatting options and rule levels can be configured via YAML/JSON files or
// programmatically:
//
//	r := reviewer.New()
//	if err := r.WithConfig(".sql-formatter.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// A rule sets the level of one check by type (ERROR, WARNING or DISABLED).
// config.Schema lists every type.
//
// # Thread Safety
//
// Formatting, minification and analysis are pure functions of their input.
// A configured Reviewer can be shared across goroutines.
//
// # Error Handling
//
// Formatting and analysis never fail. Blank input is formatted as "" and
// analyzed as an empty report. Errors are returned only for I/O,
// configuration and context cancellation.
package pkg
