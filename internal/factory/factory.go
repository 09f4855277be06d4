package factory

import (
	"fmt"
	"log/slog"

	"roomhub/internal/api"
	"roomhub/internal/dependencies/clock"
	"roomhub/internal/dependencies/random"
	"roomhub/internal/registry"
	"roomhub/internal/services/auth"
	"roomhub/internal/services/saves"
	"roomhub/internal/storage"
	"roomhub/internal/storage/memory"
	redisstorage "roomhub/internal/storage/redis"
	"roomhub/internal/ws"
)

// Config selects and configures the application's backing services
type Config struct {
	StorageType string // "memory" or "redis"
	Redis       redisstorage.Config
	Auth        auth.Config
	Server      api.Config
}

// DefaultConfig returns a memory-backed configuration
func DefaultConfig() Config {
	return Config{
		StorageType: "memory",
		Redis:       redisstorage.DefaultConfig(),
		Auth:        auth.DefaultConfig(),
		Server:      api.DefaultConfig(),
	}
}

// App is the fully wired application
type App struct {
	Storage     storage.Storage
	Clock       clock.Clock
	Random      random.Random
	Auth        *auth.Service
	Saves       *saves.Service
	Registry    *registry.Registry
	Hubs        *ws.HubManager
	Broadcaster *ws.Broadcaster
	Gateway     *ws.Gateway
	Server      *api.Server

	closers []func() error
}

// New wires the application from configuration. Wiring order matters: the
// hubs and broadcaster must exist before the registry so room events have
// somewhere to go from the first operation on.
func New(cfg Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Clock:  clock.New(),
		Random: random.New(),
	}

	switch cfg.StorageType {
	case "memory", "":
		app.Storage = memory.New()
	case "redis":
		store, err := redisstorage.New(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		app.Storage = store
		app.closers = append(app.closers, store.Close)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}

	app.Hubs = ws.NewHubManager(logger)
	app.closers = append(app.closers, func() error {
		app.Hubs.Close()
		return nil
	})

	app.Broadcaster = ws.NewBroadcaster(app.Hubs, logger)
	app.Registry = registry.New(app.Broadcaster, app.Clock, app.Random, logger)
	app.Gateway = ws.NewGateway(app.Registry, app.Hubs, logger)

	app.Auth = auth.New(app.Storage, app.Clock, cfg.Auth, logger)
	app.Saves = saves.New(app.Storage, app.Clock, logger)

	app.Server = api.New(cfg.Server, app.Auth, app.Saves, app.Registry, app.Gateway, logger)

	return app, nil
}

// Close releases the app's resources in reverse wiring order
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
