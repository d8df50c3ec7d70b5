package reviewer

import (
	"github.com/nsxbet/sql-formatter/pkg/logger"
)

// ReviewOption is a functional option for customizing review behavior.
type ReviewOption func(*reviewOptions)

// reviewOptions holds optional configuration for a review operation.
type reviewOptions struct {
	split  bool
	logger logger.Interface
}

// WithStatementSplit reviews each statement of the input separately.
//
// Statements are split with the MySQL lexer, so semicolons inside literals,
// comments and BEGIN ... END blocks do not end a statement.
//
// Example:
//
//	result, err := r.Review(ctx, script, WithStatementSplit())
func WithStatementSplit() ReviewOption {
	return func(opts *reviewOptions) {
		opts.split = true
	}
}

// WithLogger sets the logger used for per-statement diagnostics. A nil
// logger is ignored.
func WithLogger(l logger.Interface) ReviewOption {
	return func(opts *reviewOptions) {
		if l != nil {
			opts.logger = l
		}
	}
}
