package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Logger provides leveled logging throughout the application.
// Messages are printf-formatted and handed to a slog handler; errors get
// their own handler so they can go to a separate stream.
type Logger struct {
	out *slog.Logger
	err *slog.Logger
}

// NewLogger creates a Logger writing coloured output at the given level
// ("debug", "info", "warn" or "error"; anything else means info).
// Errors go to stderr, everything else to stdout.
func NewLogger(level string) *Logger {
	return newLogger(os.Stdout, os.Stderr, level)
}

// NewLoggerTo creates a Logger writing every level to w.
func NewLoggerTo(w io.Writer, level string) *Logger {
	return newLogger(w, w, level)
}

func newLogger(out, errOut io.Writer, level string) *Logger {
	opts := &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: "2006-01-02 15:04:05",
	}
	return &Logger{
		out: slog.New(tint.NewHandler(out, opts)),
		err: slog.New(tint.NewHandler(errOut, opts)),
	}
}

// NewNopLogger discards everything. Useful in tests.
func NewNopLogger() *Logger {
	return NewLoggerTo(io.Discard, "error")
}

func (l *Logger) Info(format string, args ...any) {
	l.log(slog.LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *Logger) log(level slog.Level, format string, args ...any) {
	target := l.out
	if level >= slog.LevelError {
		target = l.err
	}
	ctx := context.Background()
	if !target.Enabled(ctx, level) {
		return
	}
	target.Log(ctx, level, fmt.Sprintf(format, args...))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
