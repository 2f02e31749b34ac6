package hrtree

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with field names used by the tree.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// LogRefine logs a leaf moving to a finer curve order.
func (l *Logger) LogRefine(from, to, count int) {
	l.Debug("leaf refined",
		"from_order", from,
		"order", to,
		"count", count,
	)
}

// LogSplit logs a physical node split.
func (l *Logger) LogSplit(kind string, axis, left, right int) {
	l.Debug("node split",
		"kind", kind,
		"axis", axis,
		"left", left,
		"right", right,
	)
}

// LogCollapse logs a subtree demoted to a single order 0 leaf.
func (l *Logger) LogCollapse(kind string, count int) {
	l.Debug("subtree collapsed",
		"kind", kind,
		"count", count,
	)
}
