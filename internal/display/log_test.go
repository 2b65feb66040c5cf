package display_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/dnd-range-bot/internal/display"
	"github.com/KirkDiggler/dnd-range-bot/internal/measurement"
)

func TestLogDisplay(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := display.NewLog(zap.New(core))
	ctx := context.Background()

	require.NoError(t, d.Refresh(ctx, []string{"-3 Short range"}))
	require.NoError(t, d.PushTransient(ctx, measurement.TransientModifier{
		ID:       "range-1",
		Penalty:  -7,
		Label:    "Medium range",
		Distance: 42.125,
		Units:    "ft",
	}))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "range modifiers refreshed", entries[0].Message)
	assert.Equal(t, "-7 Medium range", entries[1].ContextMap()["modifier"])
	assert.Equal(t, "42.13 ft", entries[1].ContextMap()["distance"])
}
