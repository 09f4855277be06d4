package factory

import (
	"time"

	"roomhub/internal/api"
	"roomhub/internal/dependencies/mocks"
	"roomhub/internal/registry"
	"roomhub/internal/services/auth"
	"roomhub/internal/services/saves"
	"roomhub/internal/storage/memory"
	"roomhub/internal/testutil"
	"roomhub/internal/ws"
)

// TestApp bundles a memory-backed app with its mocks for assertions
type TestApp struct {
	*App
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp wires an app on memory storage with a mock clock and random,
// suitable for API-level tests
func NewTestApp() *TestApp {
	logger := testutil.NopLogger()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := &App{
		Storage: memory.New(),
		Clock:   mockClock,
		Random:  mockRandom,
	}

	app.Hubs = ws.NewHubManager(logger)
	app.closers = append(app.closers, func() error {
		app.Hubs.Close()
		return nil
	})

	app.Broadcaster = ws.NewBroadcaster(app.Hubs, logger)
	app.Registry = registry.New(app.Broadcaster, app.Clock, app.Random, logger)
	app.Gateway = ws.NewGateway(app.Registry, app.Hubs, logger)

	app.Auth = auth.New(app.Storage, app.Clock, auth.DefaultConfig(), logger)
	app.Saves = saves.New(app.Storage, app.Clock, logger)

	app.Server = api.New(api.DefaultConfig(), app.Auth, app.Saves, app.Registry, app.Gateway, logger)

	return &TestApp{App: app, MockClock: mockClock, MockRandom: mockRandom}
}
