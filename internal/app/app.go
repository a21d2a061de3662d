// Package app wires one client session: state, loop, router, renderer and intent handlers.
package app

import (
	"context"
	"log/slog"

	"bookswap/config"
	"bookswap/internal/app/handler"
	"bookswap/internal/app/loop"
	"bookswap/internal/app/router"
	"bookswap/internal/app/state"
	"bookswap/internal/app/view"
	"bookswap/internal/domain/entity"
	"bookswap/internal/errors"
	"bookswap/internal/infra/geo"
	"bookswap/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// Params holds dependencies for the client session
type Params struct {
	fx.In

	Config    *config.Config
	Service   usecase.BookExchangeUsecase
	Provider  geo.LocationProvider
	Validator *validator.Validate `optional:"true"`
	Address   router.Address      `optional:"true"`
	Logger    *slog.Logger
}

// App is a single client session driven by its own task loop.
type App struct {
	loop       *loop.Loop
	state      *state.State
	renderer   *view.Renderer
	router     *router.Router
	dispatcher *handler.Dispatcher
	resolver   *geo.Resolver
	service    usecase.BookExchangeUsecase
	logger     *slog.Logger
}

// New builds a session. Call Run to start the loop and Start to begin the startup sequence.
func New(params Params) *App {
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	locationCfg := params.Config.Location
	if locationCfg == nil {
		locationCfg = config.DefaultLocation()
	}

	address := params.Address
	if address == nil {
		address = router.NewMemoryAddress("")
	}

	st := state.New()
	lp := loop.New(logger)
	renderer := view.New(st, params.Service, lp, logger)
	rt := router.New(st, address, renderer)
	renderer.SetNavigator(rt)

	reporter, _ := params.Provider.(handler.LocationReporter)

	return &App{
		loop:     lp,
		state:    st,
		renderer: renderer,
		router:   rt,
		dispatcher: handler.New(handler.Params{
			State:     st,
			Service:   params.Service,
			Loop:      lp,
			Router:    rt,
			Renderer:  renderer,
			Reporter:  reporter,
			Validator: params.Validator,
			Logger:    logger,
		}),
		resolver: geo.NewResolver(
			params.Provider,
			locationCfg.Timeout,
			entity.Location{Lat: locationCfg.FallbackLat, Lng: locationCfg.FallbackLng},
			logger,
		),
		service: params.Service,
		logger:  logger.With(slog.String("component", "app")),
	}
}

// Run executes the loop until ctx ends.
func (a *App) Run(ctx context.Context) error {
	return a.loop.Run(ctx)
}

// Start shows the loading page, restores the session, starts location
// resolution and routes to the initial page.
func (a *App) Start() {
	a.loop.Post(func() {
		a.renderer.Loading()

		loop.Suspend(a.loop, a.service.GetCurrentUser, func(user *entity.User, err error) {
			if err != nil {
				a.logger.Warn("Failed to restore session", slog.String("error", err.Error()))
			}
			a.state.CurrentUser = user

			a.resolveLocation()
			a.router.Handle()
		})
	})
}

func (a *App) resolveLocation() {
	loop.SuspendBackground(a.loop, func(ctx context.Context) (geo.Resolution, error) {
		return a.resolver.Resolve(ctx), nil
	}, func(res geo.Resolution, _ error) {
		loc := res.Location
		a.state.UserLocation = &loc
		a.state.LocationStatus = res.Status
		a.renderer.LocationChanged()
	})
}

// Screen returns a copy of the current UI tree.
func (a *App) Screen(ctx context.Context) (view.Screen, error) {
	var screen view.Screen
	err := a.loop.Call(ctx, func() { screen = a.renderer.Screen() })

	return screen, err
}

// Dispatch runs intent on the loop.
func (a *App) Dispatch(ctx context.Context, intent handler.Intent) error {
	var dispatchErr error
	if err := a.loop.Call(ctx, func() { dispatchErr = a.dispatcher.Dispatch(intent) }); err != nil {
		return err
	}

	return dispatchErr
}

// DispatchJSON decodes the intent called name from raw and dispatches it.
func (a *App) DispatchJSON(ctx context.Context, name string, raw []byte) error {
	intent, err := a.dispatcher.Decode(name, raw)
	if err != nil {
		return err
	}

	return a.Dispatch(ctx, intent)
}

// Settle waits until every queued task and suspended operation has finished.
func (a *App) Settle(ctx context.Context) error {
	return a.loop.Settle(ctx)
}

// SettleForeground is Settle without waiting for location resolution, which may
// block until the host answers or the location timeout fires.
func (a *App) SettleForeground(ctx context.Context) error {
	return a.loop.SettleForeground(ctx)
}

// Intents lists the intent names the session accepts.
func (a *App) Intents() []string {
	return a.dispatcher.Names()
}

// NewLocationProvider builds the configured location provider.
func NewLocationProvider(cfg *config.Config) (geo.LocationProvider, error) {
	locationCfg := cfg.Location
	if locationCfg == nil {
		locationCfg = config.DefaultLocation()
	}

	switch locationCfg.Provider {
	case config.LocationBrowser, "":
		return geo.NewBrowserProvider(), nil
	case config.LocationStatic:
		return geo.StaticProvider{Location: entity.Location{Lat: locationCfg.Lat, Lng: locationCfg.Lng}}, nil
	case config.LocationNone:
		return geo.UnsupportedProvider{}, nil
	case config.LocationDenied:
		return geo.DeniedProvider{}, nil
	default:
		return nil, errors.Errorf("unknown location provider: %s", locationCfg.Provider)
	}
}
