package salstore

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger defines an interface for logging operations.
// Implementations should be safe for concurrent use.
type Logger interface {
	// Info logs informational messages
	Info(ctx context.Context, format string, args ...interface{})

	// Warn logs warning messages
	Warn(ctx context.Context, format string, args ...interface{})

	// Error logs error messages
	Error(ctx context.Context, format string, args ...interface{})

	// Debug logs debug messages
	Debug(ctx context.Context, format string, args ...interface{})
}

// noopLogger is a Logger that does nothing.
type noopLogger struct{}

func (noopLogger) Info(ctx context.Context, format string, args ...interface{})  {}
func (noopLogger) Warn(ctx context.Context, format string, args ...interface{})  {}
func (noopLogger) Error(ctx context.Context, format string, args ...interface{}) {}
func (noopLogger) Debug(ctx context.Context, format string, args ...interface{}) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return noopLogger{} }

var defaultLogger Logger = noopLogger{}

// slogLogger forwards formatted messages to a *slog.Logger.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts l to Logger. A nil l uses slog.Default().
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}

func (s slogLogger) Info(ctx context.Context, format string, args ...interface{}) {
	s.l.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (s slogLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	s.l.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (s slogLogger) Error(ctx context.Context, format string, args ...interface{}) {
	s.l.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

func (s slogLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	s.l.DebugContext(ctx, fmt.Sprintf(format, args...))
}

// Logf prefixes msg with tag and dispatches it to logger at level
// ("info", "warn", "error" or "debug").
func Logf(logger Logger, tag, level string, ctx context.Context, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if tag != "" {
		msg = tag + " " + msg
	}
	switch level {
	case "info":
		logger.Info(ctx, "%s", msg)
	case "warn":
		logger.Warn(ctx, "%s", msg)
	case "error":
		logger.Error(ctx, "%s", msg)
	case "debug":
		logger.Debug(ctx, "%s", msg)
	}
}
