// uuid id generation behind an interface so tests can pin ids
package uuid

import (
	"github.com/google/uuid"
)

// Generator is an interface for generating ids
type Generator interface {
	New() string
}

// PrefixedGenerator produces "<prefix>-<uuid v4>" ids
type PrefixedGenerator struct {
	prefix string
}

// New generates a new id
func (g *PrefixedGenerator) New() string {
	if g.prefix == "" {
		return uuid.NewString()
	}
	return g.prefix + "-" + uuid.NewString()
}

// NewPrefixedGenerator creates a generator; an empty prefix yields bare uuids
func NewPrefixedGenerator(prefix string) *PrefixedGenerator {
	return &PrefixedGenerator{prefix: prefix}
}
