// Package context carries request-scoped values between middleware and handlers.
//
// Each request gets an id and a logger tagged with it. Handlers that dispatch
// an intent to the client session record its name with SetIntent, which tags
// the logger and the response as well.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyIntent is the key for the intent name a request dispatched.
	KeyIntent ContextKey = "intent"
)

const (
	// HeaderXRequestID carries the request id in both directions.
	HeaderXRequestID = "X-Request-Id"

	// HeaderXIntent names the intent a response was produced for.
	HeaderXIntent = "X-Intent"
)

// Begin stores the request id and a logger tagged with it on c and on its
// request context.
func Begin(c echo.Context, requestID string, logger *slog.Logger) {
	c.Set(string(KeyRequestID), requestID)
	c.Response().Header().Set(HeaderXRequestID, requestID)

	ctx := context.WithValue(c.Request().Context(), KeyRequestID, requestID)
	ctx = WithLogger(ctx, logger.With(slog.String("request_id", requestID)))
	c.SetRequest(c.Request().WithContext(ctx))
}

// RequestID returns the id Begin assigned to the request, or "" outside a request.
func RequestID(c echo.Context) string {
	id, _ := c.Get(string(KeyRequestID)).(string)

	return id
}

// SetIntent records the intent a request dispatched. Log lines written through
// the request logger afterwards carry it, and the response names it in X-Intent.
func SetIntent(c echo.Context, name string) {
	c.Set(string(KeyIntent), name)
	c.Response().Header().Set(HeaderXIntent, name)

	ctx := c.Request().Context()
	if logger := GetLogger(ctx); logger != nil {
		c.SetRequest(c.Request().WithContext(WithLogger(ctx, logger.With(slog.String("intent", name)))))
	}
}

// Intent returns the intent name recorded for the request, if any.
func Intent(c echo.Context) string {
	name, _ := c.Get(string(KeyIntent)).(string)

	return name
}

// GetLogger returns the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(KeyLogger).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when there is none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
