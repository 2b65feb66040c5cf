package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-range-bot/internal/config"
	"github.com/KirkDiggler/dnd-range-bot/internal/display"
	"github.com/KirkDiggler/dnd-range-bot/internal/domain/combatant"
	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	"github.com/KirkDiggler/dnd-range-bot/internal/logging"
	"github.com/KirkDiggler/dnd-range-bot/internal/repositories/combatants"
	"github.com/KirkDiggler/dnd-range-bot/internal/repositories/settings"
	"github.com/KirkDiggler/dnd-range-bot/internal/services"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("No .env file found")
	}

	providerConfig := &services.ProviderConfig{
		StandardOptions: cfg.Range.StandardOptions(),
		DefaultStrategy: rangestrategy.StrategyID(cfg.Range.DefaultStrategy),
		SceneID:         cfg.Range.SceneID,
		Actor: combatant.Actor{
			UserID: cfg.Range.ActorID,
			IsGM:   cfg.Range.ActorIsGM,
		},
		NotifyConcurrency: cfg.Range.NotifyConcurrency,
		NotifyTimeout:     cfg.Range.NotifyTimeout,
		NotifyRetries:     cfg.Range.NotifyRetries,
		Logger:            logger,
	}

	redisClient := connectRedis(cfg.Redis.URL, logger)
	if redisClient != nil {
		providerConfig.SettingsRepository = settings.NewRedis(redisClient)
		providerConfig.CombatantRepository = combatants.NewRedis(redisClient)
		logger.Info("Using Redis for persistence")
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Error closing Redis connection", zap.Error(err))
			}
		}()
	} else {
		logger.Info("Using in-memory repositories")
	}

	if cfg.Discord.Enabled() {
		dg, err := discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			logger.Fatal("Failed to create Discord session", zap.Error(err))
		}
		if err := dg.Open(); err != nil {
			logger.Fatal("Failed to open Discord connection", zap.Error(err))
		}
		defer func() {
			if err := dg.Close(); err != nil {
				logger.Warn("Failed to close Discord connection", zap.Error(err))
			}
		}()

		discordDisplay, err := display.NewDiscord(&display.DiscordConfig{
			Session:   dg,
			ChannelID: cfg.Discord.ChannelID,
		})
		if err != nil {
			logger.Fatal("Failed to create Discord display", zap.Error(err))
		}
		providerConfig.Display = discordDisplay
		logger.Info("Posting range modifiers to Discord", zap.String("channel", cfg.Discord.ChannelID))
	} else {
		providerConfig.Display = display.NewLog(logger)
	}

	provider, err := services.NewProvider(providerConfig)
	if err != nil {
		logger.Fatal("Failed to create services", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Apply the stored setting once before listening for changes
	if _, err := provider.Sync(ctx); err != nil {
		logger.Error("Failed to apply stored range strategy, keeping default",
			zap.String("strategy", string(provider.RangeEngine.ActiveStrategy())),
			zap.Error(err))
	}

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- provider.WatchSettings(ctx)
	}()

	logger.Info("Range bot is now running. Press CTRL-C to exit.",
		zap.String("strategy", string(provider.RangeEngine.ActiveStrategy())))

	select {
	case <-ctx.Done():
	case err := <-watchDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Stopped watching range strategy setting", zap.Error(err))
		}
		<-ctx.Done()
	}

	logger.Info("Shutting down...")
}

// connectRedis returns nil when no URL is configured or Redis cannot be
// reached, which selects the in-memory repositories.
func connectRedis(url string, logger *zap.Logger) *redis.Client {
	if url == "" {
		logger.Info("No REDIS_URL found")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("Failed to parse Redis URL, falling back to in-memory repositories", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, falling back to in-memory repositories", zap.Error(err))
		_ = client.Close()
		return nil
	}

	logger.Info("Successfully connected to Redis", zap.String("addr", opts.Addr))
	return client
}
