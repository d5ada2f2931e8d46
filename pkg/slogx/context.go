package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

type requestInfoKey struct{}

// requestInfo is filled in by handlers further down the chain and read back
// by HTTPMiddleware once the request completes.
type requestInfo struct {
	userID string
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or slog.Default outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// With returns a context whose logger carries the extra attributes.
func With(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// WithUserID tags the request logger with the authenticated user and records
// the id for the access log line.
func WithUserID(ctx context.Context, userID string) context.Context {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		info.userID = userID
	}
	return With(ctx, slog.String("user_id", userID))
}
