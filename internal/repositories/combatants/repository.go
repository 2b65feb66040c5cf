package combatants

import (
	"context"
	"time"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/combatant"
)

// Repository defines the interface for combatant storage
type Repository interface {
	// Create stores a new combatant
	Create(ctx context.Context, c *combatant.Combatant) error

	// Get retrieves a combatant by ID
	Get(ctx context.Context, id string) (*combatant.Combatant, error)

	// Update replaces an existing combatant
	Update(ctx context.Context, c *combatant.Combatant) error

	// Delete removes a combatant
	Delete(ctx context.Context, id string) error

	// ListByScene retrieves every combatant placed on a scene
	ListByScene(ctx context.Context, sceneID string) ([]*combatant.Combatant, error)
}

// TimeProvider stamps CreatedAt and UpdatedAt
type TimeProvider interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
