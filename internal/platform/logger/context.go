package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is an unexported type so no other package can collide
// with the logger entry in a context.
type loggerContextKey struct{}

// WithLogger returns a new context carrying the given logger.
// A nil logger leaves the context unchanged.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext retrieves the logger stored in the context, or nil if none
// is present.
func FromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerContextKey{}).(*slog.Logger)
	return logger
}

// FromContextOrDefault retrieves the logger stored in the context,
// falling back to the given default. A nil default falls back further
// to slog.Default, so the result is always usable.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger := FromContext(ctx); logger != nil {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
