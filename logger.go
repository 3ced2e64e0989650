package fortgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fortgo-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithFile adds a filename field to the logger (useful for tagging operations).
func (l *Logger) WithFile(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("file", name),
	}
}

// WithOrder adds a byte order field to the logger.
func (l *Logger) WithOrder(order string) *Logger {
	return &Logger{
		Logger: l.Logger.With("order", order),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogWrite logs a record write operation.
func (l *Logger) LogWrite(elements int, err error) {
	if err != nil {
		l.Error("record write failed",
			"elements", elements,
			"error", err,
		)
	} else {
		l.Debug("record written",
			"elements", elements,
		)
	}
}

// LogSave logs an atomic file save operation.
func (l *Logger) LogSave(filename string, bytes int64, err error) {
	if err != nil {
		l.Error("save failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.Info("file saved",
			"filename", filename,
			"bytes", bytes,
		)
	}
}

// LogClose logs a file close operation.
func (l *Logger) LogClose(filename string, err error) {
	if err != nil {
		l.Error("close failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.Debug("file closed",
			"filename", filename,
		)
	}
}
