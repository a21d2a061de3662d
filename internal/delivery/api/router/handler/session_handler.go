package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"bookswap/internal/app"
	apphandler "bookswap/internal/app/handler"
	"bookswap/internal/app/loop"
	"bookswap/internal/app/view"
	"bookswap/internal/delivery/api/response"
	deliverycontext "bookswap/internal/delivery/context"
	domainerrors "bookswap/internal/domain/errors"
	"bookswap/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Session is the client session the handler drives.
type Session interface {
	Screen(ctx context.Context) (view.Screen, error)
	Dispatch(ctx context.Context, intent apphandler.Intent) error
	DispatchJSON(ctx context.Context, name string, raw []byte) error
	Settle(ctx context.Context) error
	SettleForeground(ctx context.Context) error
	Intents() []string
}

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	Session *app.App
	Logger  *slog.Logger
}

// SessionHandler exposes the screen and accepts intents over HTTP.
type SessionHandler struct {
	session Session
	logger  *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return newSessionHandler(params.Session, params.Logger)
}

func newSessionHandler(session Session, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &SessionHandler{session: session, logger: logger}
}

func (h *SessionHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// IntentRequest is the envelope of every intent: the type selects the intent,
// the remaining fields are its payload.
type IntentRequest struct {
	Type string `json:"type" validate:"required"`
}

// GeolocationRequest is the host's answer to a position request.
type GeolocationRequest struct {
	Lat    float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng    float64 `json:"lng" validate:"gte=-180,lte=180"`
	Denied bool    `json:"denied"`
}

// IntentsResponse lists the accepted intent types.
type IntentsResponse struct {
	Intents []string `json:"intents"`
}

// HealthCheck reports that the process is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// GetScreen returns the current UI tree. With settle=true it first waits for
// every pending operation to finish.
func (h *SessionHandler) GetScreen(c echo.Context) error {
	settle, err := boolQuery(c, "settle", false)
	if err != nil {
		return err
	}

	return h.respondScreen(c, settle, h.session.Settle)
}

// ListIntents returns the accepted intent types.
func (h *SessionHandler) ListIntents(c echo.Context) error {
	return response.Success(c, http.StatusOK, IntentsResponse{Intents: h.session.Intents()})
}

// PostIntent dispatches one intent and returns the resulting screen. Unless
// settle=false is given, the screen is taken once the work the intent started
// has finished; a location lookup still waiting on the host is not waited for.
func (h *SessionHandler) PostIntent(c echo.Context) error {
	settle, err := boolQuery(c, "settle", true)
	if err != nil {
		return err
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errors.Wrap(err, "read intent body")
	}

	var req IntentRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return domainerrors.ErrValidationRequired.WithDetails("malformed intent")
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrValidationRequired.WithDetails("type")
	}

	deliverycontext.SetIntent(c, req.Type)
	if err := h.session.DispatchJSON(c.Request().Context(), req.Type, raw); err != nil {
		h.log(c).Debug("Intent rejected", slog.String("intent", req.Type), slog.String("error", err.Error()))

		return h.sessionError(err)
	}

	return h.respondScreen(c, settle, h.session.SettleForeground)
}

// PostGeolocation forwards the host's position or denial.
func (h *SessionHandler) PostGeolocation(c echo.Context) error {
	var req GeolocationRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationRequired.WithDetails("malformed position")
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrValidationRequired.WithDetails(err.Error())
	}

	intent := apphandler.ReportLocation{Lat: req.Lat, Lng: req.Lng, Denied: req.Denied}
	deliverycontext.SetIntent(c, intent.Name())
	if err := h.session.Dispatch(c.Request().Context(), intent); err != nil {
		return h.sessionError(err)
	}

	return h.respondScreen(c, true, h.session.Settle)
}

func (h *SessionHandler) respondScreen(c echo.Context, settle bool, wait func(context.Context) error) error {
	ctx := c.Request().Context()
	if settle {
		if err := wait(ctx); err != nil {
			return h.sessionError(err)
		}
	}

	screen, err := h.session.Screen(ctx)
	if err != nil {
		return h.sessionError(err)
	}

	return response.Success(c, http.StatusOK, screen)
}

func (h *SessionHandler) sessionError(err error) error {
	if errors.Is(err, loop.ErrStopped) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Session is shutting down.")
	}

	return err
}

func boolQuery(c echo.Context, name string, fallback bool) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domainerrors.ErrValidationRequired.WithDetails(name)
	}

	return value, nil
}
