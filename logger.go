package sigscan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with sigscan-specific fields.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON-formatted logs to w.
// A nil w means stderr.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text logs to w.
// A nil w means stderr.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithPattern adds a pattern field to the logger.
func (l *Logger) WithPattern(p Pattern) *Logger {
	return &Logger{Logger: l.Logger.With("pattern", p.String())}
}

// LogScan logs a completed scan. Pattern context comes from WithPattern.
func (l *Logger) LogScan(ctx context.Context, op string, bufLen, matches int, mode string, elapsed time.Duration, err error) {
	if errors.Is(err, ErrNonUniquePattern) {
		l.DebugContext(ctx, "pattern not unique",
			"op", op,
			"length", bufLen,
			"mode", mode,
			"error", err,
		)
		return
	}
	if err != nil {
		l.ErrorContext(ctx, "scan failed",
			"op", op,
			"length", bufLen,
			"mode", mode,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "scan completed",
		"op", op,
		"length", bufLen,
		"matches", matches,
		"mode", mode,
		"duration", elapsed,
	)
}
