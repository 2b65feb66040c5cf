package rangestrategy_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	registry, err := rangestrategy.NewDefaultRegistry(rangestrategy.StandardOptions{})
	require.NoError(t, err)

	assert.Equal(t, []rangestrategy.StrategyID{
		rangestrategy.StrategyStandard,
		rangestrategy.StrategySimplified,
	}, registry.IDs())

	table, err := registry.Lookup(rangestrategy.StrategySimplified)
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	_, err = registry.Lookup("UnknownX")
	assert.True(t, rangeerr.IsUnknownStrategy(err))
}

func TestRegistryRegister(t *testing.T) {
	registry := rangestrategy.NewRegistry()

	gritty := rangestrategy.MustTable("Gritty",
		rangestrategy.Band{ModifierLabel: "near", MaxDistance: rangestrategy.Bounded(30), Penalty: 0},
		rangestrategy.Band{ModifierLabel: "far", MaxDistance: rangestrategy.Unbounded(), Penalty: -6},
	)

	require.NoError(t, registry.Register("Gritty", gritty))
	assert.True(t, rangeerr.IsValidation(registry.Register("Gritty", gritty)))
	assert.True(t, rangeerr.IsInvalidArgument(registry.Register("", gritty)))
	assert.True(t, rangeerr.IsInvalidArgument(registry.Register("Nil", nil)))

	table, err := registry.Lookup("Gritty")
	require.NoError(t, err)
	assert.Same(t, gritty, table)
}
