package combatants

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/combatant"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu           sync.RWMutex
	combatants   map[string]*combatant.Combatant
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory combatant repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		combatants:   make(map[string]*combatant.Combatant),
		timeProvider: systemClock{},
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, c *combatant.Combatant) error {
	if c == nil {
		return rangeerr.InvalidArgument("combatant cannot be nil")
	}
	if c.ID == "" {
		return rangeerr.InvalidArgument("combatant ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combatants[c.ID]; exists {
		return rangeerr.Newf(rangeerr.CodeValidation, "combatant %s already exists", c.ID)
	}

	now := r.timeProvider.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	// Store a copy to avoid external modifications
	stored := *c
	r.combatants[c.ID] = &stored

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*combatant.Combatant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.combatants[id]
	if !exists {
		return nil, rangeerr.NotFoundf("combatant %s not found", id)
	}

	copied := *c
	return &copied, nil
}

func (r *inMemoryRepository) Update(ctx context.Context, c *combatant.Combatant) error {
	if c == nil {
		return rangeerr.InvalidArgument("combatant cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combatants[c.ID]; !exists {
		return rangeerr.NotFoundf("combatant %s not found", c.ID)
	}

	c.UpdatedAt = r.timeProvider.Now()
	stored := *c
	r.combatants[c.ID] = &stored

	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combatants[id]; !exists {
		return rangeerr.NotFoundf("combatant %s not found", id)
	}
	delete(r.combatants, id)

	return nil
}

func (r *inMemoryRepository) ListByScene(ctx context.Context, sceneID string) ([]*combatant.Combatant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*combatant.Combatant
	for _, c := range r.combatants {
		if c.SceneID != sceneID {
			continue
		}
		copied := *c
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}
