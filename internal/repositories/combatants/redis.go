package combatants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/combatant"
	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
)

// Data represents the serialized form of a combatant in Redis
type Data struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	OwnerID       string               `json:"owner_id"`
	SceneID       string               `json:"scene_id"`
	RangeStrategy string               `json:"range_strategy,omitempty"`
	RangeTable    *rangestrategy.Table `json:"range_table,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider // Optional
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// NewRedis creates a Redis backed combatant repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// NewRedisRepository creates a Redis backed combatant repository from config
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = systemClock{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

func combatantKey(id string) string {
	return fmt.Sprintf("combatant:%s", id)
}

func sceneKey(sceneID string) string {
	return fmt.Sprintf("scene:%s:combatants", sceneID)
}

func (r *redisRepo) Create(ctx context.Context, c *combatant.Combatant) error {
	if c == nil {
		return rangeerr.InvalidArgument("combatant cannot be nil")
	}
	if c.ID == "" {
		return rangeerr.InvalidArgument("combatant ID is required")
	}

	exists, err := r.client.Exists(ctx, combatantKey(c.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check combatant existence: %w", err)
	}
	if exists > 0 {
		return rangeerr.Newf(rangeerr.CodeValidation, "combatant %s already exists", c.ID)
	}

	now := r.timeProvider.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	return r.set(ctx, c)
}

func (r *redisRepo) Get(ctx context.Context, id string) (*combatant.Combatant, error) {
	jsonData, err := r.client.Get(ctx, combatantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, rangeerr.NotFoundf("combatant %s not found", id)
		}
		return nil, fmt.Errorf("failed to get combatant from Redis: %w", err)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal combatant %s: %w", id, err)
	}

	return fromData(&data), nil
}

func (r *redisRepo) Update(ctx context.Context, c *combatant.Combatant) error {
	if c == nil {
		return rangeerr.InvalidArgument("combatant cannot be nil")
	}

	exists, err := r.client.Exists(ctx, combatantKey(c.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check combatant existence: %w", err)
	}
	if exists == 0 {
		return rangeerr.NotFoundf("combatant %s not found", c.ID)
	}

	c.UpdatedAt = r.timeProvider.Now()

	return r.set(ctx, c)
}

func (r *redisRepo) set(ctx context.Context, c *combatant.Combatant) error {
	jsonData, err := json.Marshal(toData(c))
	if err != nil {
		return fmt.Errorf("failed to marshal combatant data: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, combatantKey(c.ID), string(jsonData), 0)
	pipe.SAdd(ctx, sceneKey(c.SceneID), c.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set combatant in Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	c, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, combatantKey(id))
	pipe.SRem(ctx, sceneKey(c.SceneID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete combatant from Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) ListByScene(ctx context.Context, sceneID string) ([]*combatant.Combatant, error) {
	ids, err := r.client.SMembers(ctx, sceneKey(sceneID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get scene combatants from Redis: %w", err)
	}

	combatants := make([]*combatant.Combatant, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			c, err := r.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get combatant %s: %w", id, err)
			}
			combatants[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(combatants, func(i, j int) bool {
		return combatants[i].ID < combatants[j].ID
	})

	return combatants, nil
}

func toData(c *combatant.Combatant) *Data {
	return &Data{
		ID:            c.ID,
		Name:          c.Name,
		OwnerID:       c.OwnerID,
		SceneID:       c.SceneID,
		RangeStrategy: string(c.RangeStrategy),
		RangeTable:    c.RangeTable,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func fromData(data *Data) *combatant.Combatant {
	return &combatant.Combatant{
		ID:            data.ID,
		Name:          data.Name,
		OwnerID:       data.OwnerID,
		SceneID:       data.SceneID,
		RangeStrategy: rangestrategy.StrategyID(data.RangeStrategy),
		RangeTable:    data.RangeTable,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
