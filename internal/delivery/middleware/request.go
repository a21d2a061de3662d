package middleware

import (
	"log/slog"

	deliverycontext "bookswap/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxRequestIDLength = 128

// RequestMiddleware assigns each request an id and a request-scoped logger.
// A client supplied X-Request-Id is kept when it is short printable ASCII;
// anything else is replaced with a fresh UUIDv7.
type RequestMiddleware struct {
	logger *slog.Logger
}

// NewRequestMiddleware creates the request middleware.
func NewRequestMiddleware(logger *slog.Logger) *RequestMiddleware {
	return &RequestMiddleware{logger: logger}
}

// Process begins the request scope before calling next.
func (m *RequestMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if !acceptableRequestID(requestID) {
			requestID = newRequestID()
		}

		deliverycontext.Begin(c, requestID, m.logger)

		return next(c)
	}
}

func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
