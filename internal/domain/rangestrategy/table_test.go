package rangestrategy_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifiedPenalties(t *testing.T) {
	table := rangestrategy.Simplified()

	tests := []struct {
		distance float64
		penalty  int
	}{
		{0, 0},
		{5, 0},
		{6, -3},
		{20, -3},
		{20.5, -7},
		{100, -7},
		{500, -11},
		{501, -15},
		{1_000_000, -15},
	}

	for _, tt := range tests {
		penalty, err := table.PenaltyFor(tt.distance)
		require.NoError(t, err, "distance %v", tt.distance)
		assert.Equal(t, tt.penalty, penalty, "distance %v", tt.distance)
	}
}

func TestStandardPenalties(t *testing.T) {
	table, err := rangestrategy.Standard(rangestrategy.StandardOptions{})
	require.NoError(t, err)
	require.Equal(t, rangestrategy.DefaultStandardBands, table.Len())
	assert.False(t, table.HasSentinel())

	for distance, want := range map[float64]int{0: 0, 10: 0, 11: 1, 20: 1, 21: 2, 990: 98} {
		penalty, err := table.PenaltyFor(distance)
		require.NoError(t, err)
		assert.Equal(t, want, penalty, "distance %v", distance)
	}

	_, err = table.PenaltyFor(991)
	assert.True(t, rangeerr.IsNoApplicableBand(err))
}

func TestStandardBandShape(t *testing.T) {
	table, err := rangestrategy.Standard(rangestrategy.StandardOptions{Bands: 3, Increment: 5})
	require.NoError(t, err)

	want := []rangestrategy.Band{
		{ModifierLabel: "for 1 increments", MaxDistance: rangestrategy.Bounded(5), Penalty: 0, Description: "1 increments"},
		{ModifierLabel: "for 2 increments", MaxDistance: rangestrategy.Bounded(10), Penalty: 1, Description: "2 increments"},
		{ModifierLabel: "for 3 increments", MaxDistance: rangestrategy.Bounded(15), Penalty: 2, Description: "3 increments"},
	}
	if diff := cmp.Diff(want, table.Bands(), cmp.AllowUnexported(rangestrategy.Bound{})); diff != "" {
		t.Errorf("standard bands mismatch (-want +got):\n%s", diff)
	}

	_, err = rangestrategy.Standard(rangestrategy.StandardOptions{Bands: -1})
	assert.True(t, rangeerr.IsInvalidArgument(err))
}

func TestPenaltyMatchesBandInterval(t *testing.T) {
	table := rangestrategy.Simplified()
	bands := table.Bands()

	lower := 0.0
	for i, band := range bands {
		upper := band.MaxDistance.Max()
		if band.MaxDistance.IsUnbounded() {
			upper = lower + 10_000
		}
		for _, d := range []float64{lower, (lower + upper) / 2, upper} {
			if i > 0 && d == lower {
				continue
			}
			penalty, err := table.PenaltyFor(d)
			require.NoError(t, err)
			assert.Equal(t, band.Penalty, penalty, "band %s distance %v", band.ModifierLabel, d)
		}
		lower = upper
	}
}

func TestInvalidDistance(t *testing.T) {
	table := rangestrategy.Simplified()

	for _, d := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := table.PenaltyFor(d)
		assert.True(t, rangeerr.IsInvalidDistance(err), "distance %v", d)
	}
}

func TestEmptyTable(t *testing.T) {
	table, err := rangestrategy.NewTable("Empty")
	require.NoError(t, err)

	_, err = table.PenaltyFor(1)
	assert.True(t, rangeerr.IsNoApplicableBand(err))
	assert.Empty(t, rangestrategy.DeriveModifiers(table))
}

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name  string
		bands []rangestrategy.Band
	}{
		{
			name: "not increasing",
			bands: []rangestrategy.Band{
				{ModifierLabel: "a", MaxDistance: rangestrategy.Bounded(10)},
				{ModifierLabel: "b", MaxDistance: rangestrategy.Bounded(10)},
			},
		},
		{
			name: "sentinel not last",
			bands: []rangestrategy.Band{
				{ModifierLabel: "a", MaxDistance: rangestrategy.Unbounded()},
				{ModifierLabel: "b", MaxDistance: rangestrategy.Bounded(10)},
			},
		},
		{
			name: "two sentinels",
			bands: []rangestrategy.Band{
				{ModifierLabel: "a", MaxDistance: rangestrategy.Unbounded()},
				{ModifierLabel: "b", MaxDistance: rangestrategy.Unbounded()},
			},
		},
		{
			name: "negative max",
			bands: []rangestrategy.Band{
				{ModifierLabel: "a", MaxDistance: rangestrategy.Bounded(-5)},
			},
		},
		{
			name: "infinite max",
			bands: []rangestrategy.Band{
				{ModifierLabel: "a", MaxDistance: rangestrategy.Bounded(math.Inf(1))},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rangestrategy.NewTable("Broken", tt.bands...)
			assert.True(t, rangeerr.IsValidation(err), "got %v", err)
		})
	}

	_, err := rangestrategy.NewTable("")
	assert.True(t, rangeerr.IsInvalidArgument(err))
}

func TestDeriveModifiersSkipsZeroPenalty(t *testing.T) {
	table, err := rangestrategy.NewTable("Mixed",
		rangestrategy.Band{ModifierLabel: "point blank", MaxDistance: rangestrategy.Bounded(2), Penalty: 1},
		rangestrategy.Band{ModifierLabel: "close", MaxDistance: rangestrategy.Bounded(5), Penalty: 0},
		rangestrategy.Band{ModifierLabel: "far", MaxDistance: rangestrategy.Bounded(50), Penalty: -4},
		rangestrategy.Band{ModifierLabel: "edge", MaxDistance: rangestrategy.Bounded(60), Penalty: 0},
		rangestrategy.Band{ModifierLabel: "beyond", MaxDistance: rangestrategy.Unbounded(), Penalty: -9},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"+1 point blank", "-4 far", "-9 beyond"}, rangestrategy.DeriveModifiers(table))
}

func TestSimplifiedModifiers(t *testing.T) {
	assert.Equal(t, []string{
		"-3 Short range",
		"-7 Medium range",
		"-11 Long range",
		"-15 Extreme range",
	}, rangestrategy.DeriveModifiers(rangestrategy.Simplified()))
}

func TestBandsReturnsCopy(t *testing.T) {
	table := rangestrategy.Simplified()

	bands := table.Bands()
	bands[0].Penalty = 42

	penalty, err := table.PenaltyFor(1)
	require.NoError(t, err)
	assert.Equal(t, 0, penalty)
}

func TestTableJSON(t *testing.T) {
	data, err := json.Marshal(rangestrategy.Simplified())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"max_distance":"unbounded"`)
	assert.Contains(t, string(data), `"max_distance":500`)

	var decoded rangestrategy.Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Simplified", decoded.Name())
	assert.True(t, decoded.HasSentinel())

	penalty, err := decoded.PenaltyFor(501)
	require.NoError(t, err)
	assert.Equal(t, -15, penalty)

	err = json.Unmarshal([]byte(`{"name":"Bad","bands":[{"max_distance":"forever"}]}`), &decoded)
	assert.Error(t, err)
}
