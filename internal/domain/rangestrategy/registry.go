package rangestrategy

import (
	"sync"

	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
)

// Registry maps strategy ids to their tables
type Registry struct {
	mu     sync.RWMutex
	tables map[StrategyID]*Table
	order  []StrategyID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[StrategyID]*Table),
	}
}

// NewDefaultRegistry registers Standard and Simplified
func NewDefaultRegistry(opts StandardOptions) (*Registry, error) {
	standard, err := Standard(opts)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry()
	if err := registry.Register(StrategyStandard, standard); err != nil {
		return nil, err
	}
	if err := registry.Register(StrategySimplified, Simplified()); err != nil {
		return nil, err
	}

	return registry, nil
}

// Register adds a strategy. Ids are unique.
func (r *Registry) Register(id StrategyID, table *Table) error {
	if id == "" {
		return rangeerr.InvalidArgument("strategy id is required")
	}
	if table == nil {
		return rangeerr.InvalidArgumentf("strategy %s has no table", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[id]; exists {
		return rangeerr.Validationf("strategy %s is already registered", id)
	}

	r.tables[id] = table
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the table for id or an UnknownStrategy error
func (r *Registry) Lookup(id StrategyID) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.tables[id]
	if !ok {
		return nil, rangeerr.UnknownStrategy(string(id))
	}
	return table, nil
}

// IDs returns the registered ids in registration order
func (r *Registry) IDs() []StrategyID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]StrategyID, len(r.order))
	copy(ids, r.order)
	return ids
}
