package logger

import (
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Interface defines logging methods used by the reviewer
type Interface interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Logger implements the logging interface
type Logger struct {
	logger *slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	return NewWithLevel(slog.LevelInfo)
}

// NewWithLevel creates a new logger with specified level
func NewWithLevel(level slog.Level) *Logger {
	return NewWithWriter(os.Stderr, level)
}

// Default wraps the process-wide slog default logger
func Default() *Logger {
	return &Logger{logger: slog.Default()}
}

// NewWithWriter creates a text logger writing to w
func NewWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		logger: slog.New(handler),
	}
}

// ParseLevel resolves a level name (debug, info, warn, error).
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "invalid log level %q", name)
	}
	return level, nil
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// GetSlogLogger returns the underlying slog logger
func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// Error creates a structured error field
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// MaxStatementLength bounds the statement text attached to log lines.
const MaxStatementLength = 200

var spaces = regexp.MustCompile(`\s+`)

// Statement creates a structured field holding sql on one line, truncated
// to MaxStatementLength bytes.
func Statement(sql string) slog.Attr {
	return slog.String("statement", NormalizeStatement(sql))
}

// NormalizeStatement collapses whitespace and truncates long statements for
// logging.
func NormalizeStatement(sql string) string {
	sql = strings.TrimSpace(spaces.ReplaceAllString(sql, " "))
	if len(sql) > MaxStatementLength {
		return sql[:MaxStatementLength] + "..."
	}
	return sql
}
