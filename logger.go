package statestore

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with archive-specific helpers.
// Load and store problems are reported here as well as through returned
// errors, so long-running planners get diagnostics even when they only
// check the resulting state count.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSpace adds the state space name to the logger.
func (l *Logger) WithSpace(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("space", name),
	}
}

// LogLoad logs the outcome of a load operation.
func (l *Logger) LogLoad(count int, err error) {
	if err != nil {
		l.Error("unable to load states",
			"error", err,
		)
	} else {
		l.Debug("deserialized states",
			"count", count,
		)
	}
}

// LogStore logs the outcome of a store operation.
func (l *Logger) LogStore(count int, err error) {
	if err != nil {
		l.Error("unable to store states",
			"error", err,
		)
	} else {
		l.Debug("serialized states",
			"count", count,
		)
	}
}
