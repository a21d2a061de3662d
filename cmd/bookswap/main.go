package main

import (
	"context"
	"log/slog"
	"os"

	"bookswap/config"
	"bookswap/internal/app"
	"bookswap/internal/delivery"
	"bookswap/internal/delivery/api"
	"bookswap/internal/delivery/api/router/handler"
	"bookswap/internal/errors"
	logs "bookswap/internal/infra/log"
	"bookswap/internal/infra/persistence/kv"
	"bookswap/internal/infra/persistence/store"
	"bookswap/internal/usecase/impl"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectStore(),
		injectUsecase(),
		injectApp(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			seedStore,
			startSession,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newValidator,
	)
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func injectStore() fx.Option {
	return fx.Options(
		fx.Provide(
			kv.New,
			store.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				impl.NewTimerDelayer,
				fx.As(new(impl.Delayer)),
			),
			impl.NewBookExchangeService,
		),
	)
}

func injectApp() fx.Option {
	return fx.Options(
		fx.Provide(
			app.NewLocationProvider,
			app.New,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedStore writes the initial users and books once the backend is ready.
func seedStore(lc fx.Lifecycle, s *store.Store) {
	lc.Append(fx.StartHook(func(ctx context.Context) error {
		return errors.Wrap(impl.Seed(ctx, s), "seed store")
	}))
}

// startSession runs the client loop for the lifetime of the process.
func startSession(lc fx.Lifecycle, session *app.App, logger *slog.Logger) {
	var cancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			go func() {
				if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Session loop stopped", slog.Any("error", err))
				}
			}()
			session.Start()

			return nil
		},
		OnStop: func(context.Context) error {
			if cancel != nil {
				cancel()
			}

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
