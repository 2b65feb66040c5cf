package combatant

import (
	"time"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
)

// Actor is whoever is asking to change a combatant
type Actor struct {
	UserID string
	IsGM   bool
}

// Combatant is a token on a scene that carries its own copy of the active
// range table so ranged attacks can be resolved without the engine.
type Combatant struct {
	ID            string
	Name          string
	OwnerID       string
	SceneID       string
	RangeStrategy rangestrategy.StrategyID
	RangeTable    *rangestrategy.Table
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanBeUpdatedBy reports whether actor may change this combatant.
// The GM may change anything, players only what they own.
func (c *Combatant) CanBeUpdatedBy(actor Actor) bool {
	if actor.IsGM {
		return true
	}
	return actor.UserID != "" && actor.UserID == c.OwnerID
}

// ApplyRangeTable stores table as this combatant's range table
func (c *Combatant) ApplyRangeTable(table *rangestrategy.Table) {
	c.RangeTable = table
	if table != nil {
		c.RangeStrategy = rangestrategy.StrategyID(table.Name())
	}
}
