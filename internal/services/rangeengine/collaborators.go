package rangeengine

//go:generate mockgen -destination=mock/mock_collaborators.go -package=mockrangeengine -source=collaborators.go

import (
	"context"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
)

// ConfigurationStore reads the configured strategy setting
type ConfigurationStore interface {
	ReadStrategySetting(ctx context.Context) (rangestrategy.StrategyID, error)
}

// ModifierDisplay re-renders the list of available range modifiers
type ModifierDisplay interface {
	Refresh(ctx context.Context, modifiers []string) error
}

// EntityRepository lists the entities the current actor may update.
// Filtering by permission is the repository's job.
type EntityRepository interface {
	ListUpdatableEntities(ctx context.Context) ([]EntityRef, error)
}

// EntityRef is one entity that stores the active range table
type EntityRef interface {
	ID() string
	ApplyRangeTable(ctx context.Context, table *rangestrategy.Table) error
}
