package rangestrategy

import (
	"fmt"

	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
)

const (
	// DefaultStandardBands is how many increments the generated table covers
	DefaultStandardBands = 99

	// DefaultIncrement is the width of one range increment in distance units
	DefaultIncrement = 10.0
)

// StandardOptions shapes the generated increment table
type StandardOptions struct {
	Bands     int
	Increment float64
}

func (o StandardOptions) withDefaults() StandardOptions {
	if o.Bands == 0 {
		o.Bands = DefaultStandardBands
	}
	if o.Increment == 0 {
		o.Increment = DefaultIncrement
	}
	return o
}

// Standard generates one band per range increment: band i reaches i*Increment
// and costs i-1. The table is bounded, distances past the last increment have
// no band.
func Standard(opts StandardOptions) (*Table, error) {
	opts = opts.withDefaults()
	if opts.Bands < 0 {
		return nil, rangeerr.InvalidArgumentf("standard table needs a positive band count, got %d", opts.Bands)
	}
	if opts.Increment < 0 {
		return nil, rangeerr.InvalidArgumentf("standard table needs a positive increment, got %v", opts.Increment)
	}

	bands := make([]Band, 0, opts.Bands)
	for i := 1; i <= opts.Bands; i++ {
		bands = append(bands, Band{
			ModifierLabel: fmt.Sprintf("for %d increments", i),
			MaxDistance:   Bounded(float64(i) * opts.Increment),
			Penalty:       i - 1,
			Description:   fmt.Sprintf("%d increments", i),
		})
	}

	return NewTable(string(StrategyStandard), bands...)
}

// Simplified is the fixed five band table with an open-ended Extreme band
func Simplified() *Table {
	return MustTable(string(StrategySimplified),
		Band{
			ModifierLabel: "Close range",
			MaxDistance:   Bounded(5),
			Penalty:       0,
			Description:   "Close: within 5 units, no penalty",
		},
		Band{
			ModifierLabel: "Short range",
			MaxDistance:   Bounded(20),
			Penalty:       -3,
			Description:   "Short: up to 20 units",
		},
		Band{
			ModifierLabel: "Medium range",
			MaxDistance:   Bounded(100),
			Penalty:       -7,
			Description:   "Medium: up to 100 units",
		},
		Band{
			ModifierLabel: "Long range",
			MaxDistance:   Bounded(500),
			Penalty:       -11,
			Description:   "Long: up to 500 units",
		},
		Band{
			ModifierLabel: "Extreme range",
			MaxDistance:   Unbounded(),
			Penalty:       -15,
			Description:   "Extreme: anything beyond 500 units",
		},
	)
}
