package kv

import (
	"context"
	"log/slog"

	"bookswap/config"
	"bookswap/internal/domain/lifecycle"
	"bookswap/internal/domain/repository"
	"bookswap/internal/errors"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New builds the configured key-value backend and registers its lifecycle hooks.
func New(params Params) (repository.KeyValueStore, error) {
	storageCfg := params.Config.Storage
	if storageCfg == nil {
		storageCfg = &config.StorageConfig{Driver: config.StorageMemory}
	}

	logger := params.Logger.With(slog.String("storage", storageCfg.Driver))

	switch storageCfg.Driver {
	case config.StorageMemory, "":
		return NewMemoryStore(), nil

	case config.StorageSQLite:
		store, err := NewSQLiteStore(storageCfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		params.Append(fx.StopHook(store.Close))
		logger.Info("SQLite storage opened", slog.String("path", storageCfg.SQLite.Path))

		return store, nil

	case config.StorageRedis:
		store := NewRedisStore(storageCfg.Redis.Addr, storageCfg.Redis.Password, storageCfg.Redis.DB, storageCfg.Redis.Prefix)
		params.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				return store.Ping(ctx)
			},
			OnStop: func(_ context.Context) error {
				return store.Close()
			},
		})

		return store, nil

	case config.StoragePostgres:
		return newPostgres(params, storageCfg.Postgres.DSN, logger)

	default:
		return nil, errors.Errorf("unknown storage driver: %s", storageCfg.Driver)
	}
}

func newPostgres(params Params, dsn string, logger *slog.Logger) (repository.KeyValueStore, error) {
	db, err := OpenPostgres(dsn, logger, params.Config)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	store := NewPostgresStore(db)
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if err := store.Migrate(ctx); err != nil {
				return err
			}

			go monitorDBPool(monitorCtx, logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return store.Close()
		},
	})

	return store, nil
}
