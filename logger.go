package tensorcore

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tensor-specific context.
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
	return NewLogger(slog.DiscardHandler)
}

// WithOp adds an operation name field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// LogRejected logs a partial update that was refused because of its input.
func (l *Logger) LogRejected(ctx context.Context, op, inputType, otherType string, err error) {
	l.WithOp(op).ErrorContext(ctx, "partial update rejected",
		"input_type", inputType,
		"other_type", otherType,
		"error", err,
	)
}

// LogUpdate logs a completed partial update.
func (l *Logger) LogUpdate(ctx context.Context, op string, inputSubspaces, outputSubspaces, skipped int) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.WithOp(op).DebugContext(ctx, "partial update completed",
		"input_subspaces", inputSubspaces,
		"output_subspaces", outputSubspaces,
		"skipped", skipped,
	)
}

// LogBatch logs a batch of partial updates.
func (l *Logger) LogBatch(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "partial update batch completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.DebugContext(ctx, "partial update batch completed",
			"count", count,
		)
	}
}
