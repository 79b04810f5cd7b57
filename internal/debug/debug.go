// Package debug provides context-based debug mode with structured logging.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type contextKey string

const debugKey contextKey = "debug_enabled"

// WithDebug returns a context with debug mode enabled/disabled.
func WithDebug(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, debugKey, enabled)
}

// IsEnabled returns true if debug mode is enabled in the context.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(debugKey).(bool); ok {
		return v
	}
	return false
}

// Log writes a debug record when debug mode is enabled in ctx.
func Log(ctx context.Context, msg string, args ...any) {
	if !IsEnabled(ctx) {
		return
	}
	slog.DebugContext(ctx, msg, args...)
}

// SetupLogger configures the default slog logger on stderr.
func SetupLogger(debugEnabled bool) {
	SetupLoggerTo(os.Stderr, debugEnabled)
}

// SetupLoggerTo configures the default slog logger on w. Debug mode lowers the
// level from Warn to Debug.
func SetupLoggerTo(w io.Writer, debugEnabled bool) {
	level := slog.LevelWarn
	if debugEnabled {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
