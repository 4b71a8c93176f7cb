package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With derives a context whose logger carries the given fields in addition
// to whatever the parent already carried. The request id middleware uses it
// to stamp the trace id once, so every log line below it is correlated.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// From extracts the request-scoped logger. Outside a request, or before the
// middleware ran, it falls back to the process-wide logger.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
