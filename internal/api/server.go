package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"roomhub/internal/registry"
	"roomhub/internal/services/auth"
	"roomhub/internal/services/saves"
	"roomhub/internal/ws"
)

// Config holds HTTP server configuration
type Config struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the HTTP front of the application
type Server struct {
	config   Config
	auth     *auth.Service
	saves    *saves.Service
	registry *registry.Registry
	gateway  *ws.Gateway
	logger   *slog.Logger

	httpServer *http.Server
}

// New creates a Server with its routes wired
func New(cfg Config, authService *auth.Service, savesService *saves.Service, reg *registry.Registry, gateway *ws.Gateway, logger *slog.Logger) *Server {
	s := &Server{
		config:   cfg,
		auth:     authService,
		saves:    savesService,
		registry: reg,
		gateway:  gateway,
		logger:   logger.With(slog.String("component", "api")),
	}

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: s.routes(),
		// WriteTimeout intentionally omitted: it would sever long-lived
		// WebSocket connections
		ReadHeaderTimeout: cfg.ReadTimeout,
	}
	return s
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is cancelled, then drains connections
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
