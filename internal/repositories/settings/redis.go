package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
)

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis backed settings repository
func NewRedis(client redis.UniversalClient) Repository {
	return &redisRepo{client: client}
}

func (r *redisRepo) ReadStrategySetting(ctx context.Context) (rangestrategy.StrategyID, error) {
	value, err := r.client.Get(ctx, StrategyKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get range strategy from Redis: %w", err)
	}

	return rangestrategy.StrategyID(value), nil
}

func (r *redisRepo) WriteStrategySetting(ctx context.Context, id rangestrategy.StrategyID) error {
	if id == "" {
		return rangeerr.InvalidArgument("strategy id is required")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, StrategyKey, string(id), 0)
	pipe.Publish(ctx, StrategyChannel, string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write range strategy to Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) Watch(ctx context.Context, onChange func(rangestrategy.StrategyID)) error {
	sub := r.client.Subscribe(ctx, StrategyChannel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before reporting anything
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", StrategyChannel, err)
	}

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("subscription to %s closed", StrategyChannel)
			}
			onChange(rangestrategy.StrategyID(msg.Payload))
		}
	}
}
