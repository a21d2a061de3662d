package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "bookswap/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptableRequestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "empty", id: "", want: false},
		{name: "plain", id: "req-42", want: true},
		{name: "uuid", id: "0190b6e4-7c1a-7d2e-9f00-3a5b6c7d8e9f", want: true},
		{name: "space", id: "req 42", want: false},
		{name: "newline", id: "req\n42", want: false},
		{name: "non ascii", id: "réq", want: false},
		{name: "at limit", id: strings.Repeat("a", maxRequestIDLength), want: true},
		{name: "too long", id: strings.Repeat("a", maxRequestIDLength+1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptableRequestID(tt.id))
		})
	}
}

func TestRequestMiddleware_TagsRequestLoggerWithIntent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/intents", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewRequestMiddleware(logger).Process(func(c echo.Context) error {
		deliverycontext.SetIntent(c, "logout")
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil).Info("dispatched")

		return nil
	})
	require.NoError(t, handler(c))

	assert.Equal(t, "req-7", deliverycontext.RequestID(c))
	assert.Equal(t, "logout", deliverycontext.Intent(c))
	assert.Equal(t, "req-7", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "logout", rec.Header().Get(deliverycontext.HeaderXIntent))
	assert.Contains(t, buf.String(), `"request_id":"req-7"`)
	assert.Contains(t, buf.String(), `"intent":"logout"`)
}
