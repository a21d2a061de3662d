package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookswap/config"
	"bookswap/internal/app"
	"bookswap/internal/app/view"
	"bookswap/internal/delivery/api/router"
	"bookswap/internal/delivery/api/router/handler"
	deliverycontext "bookswap/internal/delivery/context"
	"bookswap/internal/domain/entity"
	domainerrors "bookswap/internal/domain/errors"
	"bookswap/internal/infra/geo"
	"bookswap/internal/infra/persistence/kv"
	"bookswap/internal/infra/persistence/store"
	"bookswap/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screenEnvelope struct {
	Data view.Screen            `json:"data"`
	Meta *domainerrors.MetaInfo `json:"meta"`
}

type errorEnvelope struct {
	Error *domainerrors.ErrorInfo `json:"error"`
}

func newTestServer(t *testing.T, provider geo.LocationProvider) *echo.Echo {
	t.Helper()

	s := store.New(kv.NewMemoryStore())
	require.NoError(t, impl.Seed(context.Background(), s))

	cfg := &config.Config{Location: config.DefaultLocation()}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	session := app.New(app.Params{
		Config:   cfg,
		Service:  impl.NewBookExchangeService(impl.BookExchangeServiceParams{Store: s, Delayer: impl.NoDelay{}}),
		Provider: provider,
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = session.Run(ctx) }()
	session.Start()

	routes := router.NewRouter(router.RouterParams{
		SessionHandler: handler.NewSessionHandler(handler.SessionHandlerParams{Session: session, Logger: discardLogger()}),
	})

	return NewEcho(cfg, discardLogger(), nil, routes)
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeScreen(t *testing.T, rec *httptest.ResponseRecorder) view.Screen {
	t.Helper()

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env screenEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Meta)
	assert.NotEmpty(t, env.Meta.RequestID)

	return env.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *domainerrors.ErrorInfo {
	t.Helper()

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NotNil(t, env.Error)

	return env.Error
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t, geo.UnsupportedProvider{})

	rec := do(t, e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(mustField(t, rec.Body.Bytes(), "data")))
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_RequestIDIsEchoed(t *testing.T) {
	e := newTestServer(t, geo.UnsupportedProvider{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_UnprintableRequestIDIsReplaced(t *testing.T) {
	e := newTestServer(t, geo.UnsupportedProvider{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req 42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	id := rec.Header().Get(deliverycontext.HeaderXRequestID)
	assert.NotEqual(t, "req 42", id)
	assert.Len(t, id, 36)
}

func TestServer_IntentIsNamedInResponse(t *testing.T) {
	e := newTestServer(t, geo.UnsupportedProvider{})

	rec := do(t, e, http.MethodPost, "/api/v1/intents", `{"type":"navigate","target":"login"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "navigate", rec.Header().Get(deliverycontext.HeaderXIntent))

	rec = do(t, e, http.MethodGet, "/api/v1/screen", "")
	assert.Empty(t, rec.Header().Get(deliverycontext.HeaderXIntent))
}

func TestServer_ScreenAndIntents(t *testing.T) {
	e := newTestServer(t, geo.StaticProvider{Location: entity.Location{Lat: 12.9716, Lng: 77.5946}})

	screen := decodeScreen(t, do(t, e, http.MethodGet, "/api/v1/screen?settle=true", ""))
	require.NotNil(t, screen.Home)
	assert.Len(t, screen.Home.Rows, 3)
	assert.Equal(t, "Location found", screen.Home.LocationStatus)

	screen = decodeScreen(t, do(t, e, http.MethodPost, "/api/v1/intents", `{"type":"navigate","target":"login"}`))
	assert.EqualValues(t, "login", screen.Page)

	screen = decodeScreen(t, do(t, e, http.MethodPost, "/api/v1/intents", `{"type":"submitLogin","email":"meena@example.com"}`))
	assert.True(t, screen.Header.LoggedIn)
	assert.Equal(t, "Welcome, Meena!", screen.Header.Welcome)

	screen = decodeScreen(t, do(t, e, http.MethodPost, "/api/v1/intents", `{"type":"filterBooks","exchangeType":"Sell"}`))
	require.Len(t, screen.Home.Rows, 1)
	assert.True(t, screen.Home.Rows[0].CanDelete)
}

func TestServer_ListIntents(t *testing.T) {
	e := newTestServer(t, geo.UnsupportedProvider{})

	rec := do(t, e, http.MethodGet, "/api/v1/intents", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data handler.IntentsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Data.Intents, "requestDelete")
}

func TestServer_RejectsBadIntents(t *testing.T) {
	e := newTestServer(t, geo.UnsupportedProvider{})

	tests := []struct {
		name   string
		target string
		body   string
		code   string
	}{
		{name: "unknown type", target: "/api/v1/intents", body: `{"type":"launch"}`, code: "UNKNOWN_INTENT"},
		{name: "missing type", target: "/api/v1/intents", body: `{"target":"login"}`, code: "VALIDATION_REQUIRED"},
		{name: "malformed", target: "/api/v1/intents", body: `{"type":`, code: "VALIDATION_REQUIRED"},
		{name: "bad payload", target: "/api/v1/intents", body: `{"type":"openDetail","bookId":7}`, code: "VALIDATION_REQUIRED"},
		{name: "bad settle", target: "/api/v1/intents?settle=maybe", body: `{"type":"logout"}`, code: "VALIDATION_REQUIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, tt.target, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestServer_Geolocation(t *testing.T) {
	e := newTestServer(t, geo.NewBrowserProvider())

	rec := do(t, e, http.MethodPost, "/api/v1/geolocation", `{"lat":100,"lng":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	screen := decodeScreen(t, do(t, e, http.MethodPost, "/api/v1/geolocation", `{"lat":12.9716,"lng":77.5946}`))
	require.NotNil(t, screen.Home)
	assert.Equal(t, "Location found", screen.Home.LocationStatus)
	assert.Equal(t, "0m away", screen.Home.Rows[0].Distance)
}

func TestServer_UnknownRoute(t *testing.T) {
	e := newTestServer(t, geo.UnsupportedProvider{})

	rec := do(t, e, http.MethodGet, "/api/v1/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", decodeError(t, rec).Code)
}

func mustField(t *testing.T, body []byte, field string) json.RawMessage {
	t.Helper()

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))

	return fields[field]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
