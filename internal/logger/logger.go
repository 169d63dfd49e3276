// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// Logger returns the global logger. It is safe to call concurrently with Setup.
func Logger() *slog.Logger {
	return current.Load()
}

// Replace installs l as the global logger and returns the previous one.
func Replace(l *slog.Logger) *slog.Logger {
	return current.Swap(l)
}

// Setup replaces the global logger with one writing to w at the named level
// ("debug", "info", "warn", "error") in the named format ("text" or "json").
// Unknown values fall back to info and text.
func Setup(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	current.Store(slog.New(h))
}

func ParseLevel(s string) slog.Level {
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

// Error logs an error message.
func Error(msg string, args ...any) {
	current.Load().Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	current.Load().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	current.Load().Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	current.Load().Debug(msg, args...)
}
