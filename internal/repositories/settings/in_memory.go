package settings

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu       sync.RWMutex
	strategy rangestrategy.StrategyID
	watchers map[int]chan rangestrategy.StrategyID
	nextID   int
}

// NewInMemoryRepository creates a new in-memory settings repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		watchers: make(map[int]chan rangestrategy.StrategyID),
	}
}

func (r *inMemoryRepository) ReadStrategySetting(ctx context.Context) (rangestrategy.StrategyID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.strategy, nil
}

func (r *inMemoryRepository) WriteStrategySetting(ctx context.Context, id rangestrategy.StrategyID) error {
	if id == "" {
		return rangeerr.InvalidArgument("strategy id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.strategy = id
	for _, ch := range r.watchers {
		// Keep only the newest pending value
		select {
		case <-ch:
		default:
		}
		ch <- id
	}

	return nil
}

func (r *inMemoryRepository) Watch(ctx context.Context, onChange func(rangestrategy.StrategyID)) error {
	ch := make(chan rangestrategy.StrategyID, 1)

	r.mu.Lock()
	watcherID := r.nextID
	r.nextID++
	r.watchers[watcherID] = ch
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.watchers, watcherID)
		r.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case id := <-ch:
			onChange(id)
		}
	}
}
