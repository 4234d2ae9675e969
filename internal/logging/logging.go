package logging

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
)

type contextKey struct{}

// ContextWithLogger returns a derived context that carries the provided logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a logger previously attached to the context.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return logger
}

// For picks the request logger when present, else base, else slog.Default,
// and tags it with the use case name.
func For(ctx context.Context, base *slog.Logger, usecase string, attrs ...any) *slog.Logger {
	logger := FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := append([]any{"usecase", usecase}, attrs...)
	return logger.With(pairs...)
}

// ErrorAttrs labels err with its kind for structured logs.
func ErrorAttrs(err error) []any {
	return []any{"error", err, "error_kind", string(httperr.KindOf(err))}
}
