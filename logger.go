package kmeans

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific context.
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

// NewTextLogger creates a Logger that outputs human-readable text logs.
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
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogInit logs a centroid initialization.
func (l *Logger) LogInit(ctx context.Context, method InitMethod, k int, seed int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "centroid initialization failed",
			"method", method.String(),
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "centroids initialized",
			"method", method.String(),
			"k", k,
			"seed", seed,
		)
	}
}

// LogIteration logs a finished iteration.
func (l *Logger) LogIteration(ctx context.Context, stats IterationStats) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", stats.Iteration,
		"goal", stats.Goal,
		"changed", stats.Changed,
	)
}

// LogCompute logs a finished clustering run.
func (l *Logger) LogCompute(ctx context.Context, n, k, iterations int, goal float64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "compute failed",
			"points", n,
			"k", k,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "compute completed",
			"points", n,
			"k", k,
			"iterations", iterations,
			"goal", goal,
			"duration", duration,
		)
	}
}
