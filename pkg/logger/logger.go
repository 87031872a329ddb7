// Package logger provides a structured, levelled logger built on log/slog.
//
// Handlers obtain a request-scoped logger with the request ID already
// attached via FromCtx, so every line from one request correlates:
//
//	log := logger.FromCtx(r.Context())
//	log.Info("order finalized", "order_id", orderID)
package logger

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

// New builds the process-wide logger: JSON in production for log
// aggregators, text for local development.
func New(production bool) *slog.Logger {
	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// Inject stores a pre-tagged logger into ctx. Called by the request-ID
// middleware; application code should not need it.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromCtx returns the request-scoped logger, or the default logger when
// the context carries none.
func FromCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}
