package jdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with jdb-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithSource adds a source field to the logger.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// LogLoadStart logs the beginning of a load.
func (l *Logger) LogLoadStart(ctx context.Context, name string) {
	l.DebugContext(ctx, "load started",
		"source", name,
	)
}

// LogSection logs a loaded section.
func (l *Logger) LogSection(ctx context.Context, section Section, records int, elapsed time.Duration) {
	l.DebugContext(ctx, "section loaded",
		"section", string(section),
		"records", records,
		"elapsed", elapsed,
	)
}

// LogLoad logs the outcome of a load.
func (l *Logger) LogLoad(ctx context.Context, name string, stats Stats, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"source", name,
			"bytes_read", stats.BytesRead,
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"source", name,
			"obs", stats.ObCount,
			"apps", stats.AppCount,
			"comps", stats.CompCount,
			"joins", stats.JoinCount,
			"weights", stats.WeightCount,
			"names", stats.NameCount,
			"bytes", stats.Size,
			"elapsed", elapsed,
		)
	}
}
