package logs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	keyOperationID contextKey = "operation_id"
	keyLogger      contextKey = "logger"
)

// WithOperation tags ctx with a fresh operation ID and a logger carrying it.
// Front ends call it once per user-visible operation.
func WithOperation(ctx context.Context, base *slog.Logger) context.Context {
	operationID := uuid.NewString()
	ctx = context.WithValue(ctx, keyOperationID, operationID)

	return WithLogger(ctx, base.With(slog.String("operationId", operationID)))
}

// OperationID returns the operation ID stored in ctx, or "".
func OperationID(ctx context.Context) string {
	if id, ok := ctx.Value(keyOperationID).(string); ok {
		return id
	}

	return ""
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// FromContext extracts the operation-scoped logger from ctx.
// If not found, returns the provided fallback logger.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
