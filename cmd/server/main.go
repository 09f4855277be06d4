package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"roomhub/internal/factory"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	cfg := configFromEnv()

	app, err := factory.New(cfg, logger)
	if err != nil {
		logger.Error("failed to wire application", slog.Any("error", err))
		os.Exit(1)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Expired sessions accumulate until someone sweeps them
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				app.Auth.CleanExpiredSessions()
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := app.Server.Run(ctx); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func configFromEnv() factory.Config {
	cfg := factory.DefaultConfig()

	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.StorageType = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SESSION_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.SessionDuration = d
		}
	}
	return cfg
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
