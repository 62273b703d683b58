// Package ctxlog carries a *slog.Logger through context.Context so that the
// engine, loader and session layers log through the logger the application
// configured, without a package-level global.
package ctxlog

import (
	"context"
	"io"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx. A context without a logger is a
// wiring bug, so this panics rather than silently dropping records.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	panic("ctxlog: logger missing from context")
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Quiet returns a background context carrying a discarding logger. Handy for
// tests and for library callers that do not care about engine logs.
func Quiet() context.Context {
	return WithLogger(context.Background(), Discard())
}
