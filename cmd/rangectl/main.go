package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-range-bot/internal/config"
	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	"github.com/KirkDiggler/dnd-range-bot/internal/logging"
	"github.com/KirkDiggler/dnd-range-bot/internal/repositories/settings"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadApp wires the CLI from the environment. Without REDIS_URL the setting
// lives in memory for the length of the command.
func loadApp() (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	registry, err := rangestrategy.NewDefaultRegistry(cfg.Range.StandardOptions())
	if err != nil {
		return nil, nil, err
	}

	a := &app{
		registry:        registry,
		defaultStrategy: rangestrategy.StrategyID(cfg.Range.DefaultStrategy),
		settings:        settings.NewInMemoryRepository(),
		logger:          logger,
	}
	cleanup := func() { _ = logger.Sync() }

	if cfg.Redis.URL == "" {
		logger.Debug("No REDIS_URL found, range strategy setting will not persist")
		return a, cleanup, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	a.settings = settings.NewRedis(client)
	a.persistent = true

	return a, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Error closing Redis connection", zap.Error(err))
		}
		cleanup()
	}, nil
}
