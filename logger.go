package sparseset

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sparseset-specific context.
// This provides structured logging with consistent field names.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs text-formatted logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithCapacities adds sparse/dense capacity fields to the logger.
func (l *Logger) WithCapacities(sparse, dense int) *Logger {
	return &Logger{
		Logger: l.Logger.With("sparse_capacity", sparse, "dense_capacity", dense),
	}
}

// LogGrow logs a dense-side capacity growth.
func (l *Logger) LogGrow(oldCapacity, newCapacity, count int) {
	l.Debug("dense capacity grown",
		"old_capacity", oldCapacity,
		"new_capacity", newCapacity,
		"count", count,
	)
}
