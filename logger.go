package cmeans

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with engine-specific context.
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
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRunID adds a run identifier to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(algorithm string) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", algorithm),
	}
}

// WithClusters adds a cluster count field to the logger.
func (l *Logger) WithClusters(c int) *Logger {
	return &Logger{
		Logger: l.Logger.With("clusters", c),
	}
}

// WithCount adds an object count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRun logs a completed engine run.
func (l *Logger) LogRun(ctx context.Context, iterations int, duration time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "run failed",
			"iterations", iterations,
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "run completed",
			"iterations", iterations,
			"duration", duration,
		)
	}
}

// LogPass logs a completed possibilistic pass.
func (l *Logger) LogPass(ctx context.Context, pass, iterations int, typicality []float64) {
	l.DebugContext(ctx, "pass completed",
		"pass", pass,
		"iterations", iterations,
		"typicality", typicality,
	)
}
