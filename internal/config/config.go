package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	Range   RangeConfig
	Log     LogConfig
}

// DiscordConfig holds Discord-specific configuration. Both fields are
// optional; without them modifiers are written to the log.
type DiscordConfig struct {
	Token     string `env:"DISCORD_TOKEN"`
	ChannelID string `env:"DISCORD_CHANNEL_ID"`
}

// Enabled reports whether a Discord display can be created
func (c DiscordConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

// RedisConfig holds Redis-specific configuration. An empty URL selects the
// in-memory repositories.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// RangeConfig controls the range strategy engine
type RangeConfig struct {
	DefaultStrategy   string        `env:"RANGE_DEFAULT_STRATEGY"   envDefault:"Standard"`
	StandardBands     int           `env:"RANGE_STANDARD_BANDS"     envDefault:"99"`
	StandardIncrement float64       `env:"RANGE_STANDARD_INCREMENT" envDefault:"10"`
	NotifyConcurrency int           `env:"RANGE_NOTIFY_CONCURRENCY" envDefault:"8"`
	NotifyTimeout     time.Duration `env:"RANGE_NOTIFY_TIMEOUT"     envDefault:"5s"`
	NotifyRetries     uint64        `env:"RANGE_NOTIFY_RETRIES"     envDefault:"2"`
	SceneID           string        `env:"RANGE_SCENE_ID"           envDefault:"default"`
	ActorID           string        `env:"RANGE_ACTOR_ID"`
	ActorIsGM         bool          `env:"RANGE_ACTOR_IS_GM"        envDefault:"true"`
}

// StandardOptions returns the options used to build the standard table
func (c RangeConfig) StandardOptions() rangestrategy.StandardOptions {
	return rangestrategy.StandardOptions{
		Bands:     c.StandardBands,
		Increment: c.StandardIncrement,
	}
}

// LogConfig controls the logger
type LogConfig struct {
	Level       string `env:"LOG_LEVEL"       envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env parsing cannot
func (c *Config) Validate() error {
	if (c.Discord.Token == "") != (c.Discord.ChannelID == "") {
		return fmt.Errorf("DISCORD_TOKEN and DISCORD_CHANNEL_ID must be set together")
	}
	switch rangestrategy.StrategyID(c.Range.DefaultStrategy) {
	case rangestrategy.StrategyStandard, rangestrategy.StrategySimplified:
	default:
		return fmt.Errorf("RANGE_DEFAULT_STRATEGY must be %q or %q, got %q",
			rangestrategy.StrategyStandard, rangestrategy.StrategySimplified, c.Range.DefaultStrategy)
	}
	if c.Range.StandardBands <= 0 {
		return fmt.Errorf("RANGE_STANDARD_BANDS must be positive, got %d", c.Range.StandardBands)
	}
	if c.Range.StandardIncrement <= 0 {
		return fmt.Errorf("RANGE_STANDARD_INCREMENT must be positive, got %v", c.Range.StandardIncrement)
	}
	if c.Range.NotifyConcurrency <= 0 {
		return fmt.Errorf("RANGE_NOTIFY_CONCURRENCY must be positive, got %d", c.Range.NotifyConcurrency)
	}
	if c.Range.NotifyTimeout <= 0 {
		return fmt.Errorf("RANGE_NOTIFY_TIMEOUT must be positive, got %s", c.Range.NotifyTimeout)
	}
	if c.Range.SceneID == "" {
		return fmt.Errorf("RANGE_SCENE_ID cannot be empty")
	}

	return nil
}
