package rangestrategy

import (
	"encoding/json"
	"fmt"
	"math"

	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
)

// StrategyID selects a registered range table
type StrategyID string

const (
	StrategyStandard   StrategyID = "Standard"
	StrategySimplified StrategyID = "Simplified"
)

// Band is one distance interval of a range table
type Band struct {
	ModifierLabel string `json:"modifier_label"`
	MaxDistance   Bound  `json:"max_distance"`
	Penalty       int    `json:"penalty"`
	Description   string `json:"description"`
}

// Table is an ordered, closest-to-farthest set of bands. Tables are never
// mutated after construction; switching strategy swaps the whole table.
type Table struct {
	name  string
	bands []Band
}

// NewTable validates the band ordering and returns an immutable table.
// Bounded maxima must be finite, non-negative and strictly increasing; only
// the last band may be Unbounded.
func NewTable(name string, bands ...Band) (*Table, error) {
	if name == "" {
		return nil, rangeerr.InvalidArgument("table name is required")
	}

	prev := math.Inf(-1)
	for i, band := range bands {
		if band.MaxDistance.IsUnbounded() {
			if i != len(bands)-1 {
				return nil, rangeerr.Validationf("table %s: unbounded band %q must be last (position %d of %d)",
					name, band.ModifierLabel, i+1, len(bands))
			}
			continue
		}

		limit := band.MaxDistance.Max()
		if math.IsNaN(limit) || math.IsInf(limit, 0) || limit < 0 {
			return nil, rangeerr.Validationf("table %s: band %q has invalid max distance %v",
				name, band.ModifierLabel, limit)
		}
		if limit <= prev {
			return nil, rangeerr.Validationf("table %s: band %q max distance %v does not exceed previous %v",
				name, band.ModifierLabel, limit, prev)
		}
		prev = limit
	}

	copied := make([]Band, len(bands))
	copy(copied, bands)

	return &Table{name: name, bands: copied}, nil
}

// MustTable is NewTable for built-in tables known to be valid
func MustTable(name string, bands ...Band) *Table {
	table, err := NewTable(name, bands...)
	if err != nil {
		panic(err)
	}
	return table
}

func (t *Table) Name() string { return t.name }
func (t *Table) Len() int     { return len(t.bands) }

// Bands returns a copy of the bands in table order
func (t *Table) Bands() []Band {
	bands := make([]Band, len(t.bands))
	copy(bands, t.bands)
	return bands
}

// HasSentinel reports whether the last band is open-ended
func (t *Table) HasSentinel() bool {
	return len(t.bands) > 0 && t.bands[len(t.bands)-1].MaxDistance.IsUnbounded()
}

// BandFor returns the first band covering distance
func (t *Table) BandFor(distance float64) (Band, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return Band{}, rangeerr.InvalidDistance(distance)
	}

	for _, band := range t.bands {
		if band.MaxDistance.Covers(distance) {
			return band, nil
		}
	}

	return Band{}, rangeerr.NoApplicableBand(t.name, distance)
}

// PenaltyFor returns the penalty of the band covering distance
func (t *Table) PenaltyFor(distance float64) (int, error) {
	band, err := t.BandFor(distance)
	if err != nil {
		return 0, err
	}
	return band.Penalty, nil
}

// DeriveModifiers renders every band with a non-zero penalty as
// "<signed penalty> <label>", in table order.
func DeriveModifiers(t *Table) []string {
	if t == nil {
		return []string{}
	}

	modifiers := make([]string, 0, len(t.bands))
	for _, band := range t.bands {
		if band.Penalty == 0 {
			continue
		}
		modifiers = append(modifiers, FormatModifier(band.Penalty, band.ModifierLabel))
	}
	return modifiers
}

// FormatModifier renders a single signed modifier
func FormatModifier(penalty int, label string) string {
	return fmt.Sprintf("%+d %s", penalty, label)
}

type tableData struct {
	Name  string `json:"name"`
	Bands []Band `json:"bands"`
}

func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableData{Name: t.name, Bands: t.bands})
}

// UnmarshalJSON decodes and re-validates a persisted table
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw tableData
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal range table: %w", err)
	}

	table, err := NewTable(raw.Name, raw.Bands...)
	if err != nil {
		return err
	}
	*t = *table
	return nil
}
