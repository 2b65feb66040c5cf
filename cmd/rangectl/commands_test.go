package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/KirkDiggler/dnd-range-bot/internal/repositories/settings"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	registry, err := rangestrategy.NewDefaultRegistry(rangestrategy.StandardOptions{Bands: 3})
	require.NoError(t, err)

	return &app{
		registry:        registry,
		defaultStrategy: rangestrategy.StrategyStandard,
		settings:        settings.NewInMemoryRepository(),
		logger:          zap.NewNop(),
	}
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(a)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStrategiesCmd(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "strategies")
	require.NoError(t, err)
	assert.Contains(t, out, "* Standard (3 bands, bounded)")
	assert.Contains(t, out, "  Simplified (5 bands, open-ended)")
}

func TestTableCmd(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "table", "Simplified")
	require.NoError(t, err)
	assert.Contains(t, out, "MAX DISTANCE")
	assert.Contains(t, out, "unbounded")
	assert.Contains(t, out, "-15 Extreme range")

	out, err = run(t, a, "table", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Standard"`)

	_, err = run(t, a, "table", "hexes")
	assert.True(t, rangeerr.IsUnknownStrategy(err))
}

func TestLookupCmd(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "lookup", "501", "--strategy", "Simplified")
	require.NoError(t, err)
	assert.Equal(t, "Simplified: -15 Extreme range (up to unbounded)\n", out)

	out, err = run(t, a, "lookup", "11")
	require.NoError(t, err)
	assert.Equal(t, "Standard: +1 for 2 increments (up to 20)\n", out)

	_, err = run(t, a, "lookup", "31")
	assert.True(t, rangeerr.IsNoApplicableBand(err))

	_, err = run(t, a, "lookup", "far")
	assert.ErrorContains(t, err, "invalid distance")
}

func TestSetStrategyCmd(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "set-strategy", "Simplified")
	require.NoError(t, err)
	assert.Equal(t, "range strategy set to Simplified\n", out)

	id, err := a.settings.ReadStrategySetting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rangestrategy.StrategySimplified, id)

	out, err = run(t, a, "lookup", "6")
	require.NoError(t, err)
	assert.Equal(t, "Simplified: -3 Short range (up to 20)\n", out)

	_, err = run(t, a, "set-strategy", "hexes")
	assert.True(t, rangeerr.IsUnknownStrategy(err))

	id, err = a.settings.ReadStrategySetting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rangestrategy.StrategySimplified, id)
}
