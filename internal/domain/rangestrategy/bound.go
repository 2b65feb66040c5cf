package rangestrategy

import (
	"encoding/json"
	"fmt"
	"math"
)

// unboundedToken is the persisted form of the open-ended sentinel
const unboundedToken = "unbounded"

// Bound is the upper limit of a band, either a finite distance or open-ended
type Bound struct {
	max       float64
	unbounded bool
}

// Bounded returns a bound covering distances up to and including limit
func Bounded(limit float64) Bound {
	return Bound{max: limit}
}

// Unbounded returns the sentinel bound covering every distance past the prior bands
func Unbounded() Bound {
	return Bound{unbounded: true}
}

// IsUnbounded reports whether this is the open-ended sentinel
func (b Bound) IsUnbounded() bool { return b.unbounded }

// Max returns the inclusive upper distance. It is +Inf for the sentinel.
func (b Bound) Max() float64 {
	if b.unbounded {
		return math.Inf(1)
	}
	return b.max
}

// Covers reports whether distance falls at or under this bound
func (b Bound) Covers(distance float64) bool {
	return b.unbounded || distance <= b.max
}

func (b Bound) String() string {
	if b.unbounded {
		return unboundedToken
	}
	return fmt.Sprintf("%g", b.max)
}

// MarshalJSON writes bounded limits as numbers and the sentinel as "unbounded"
func (b Bound) MarshalJSON() ([]byte, error) {
	if b.unbounded {
		return json.Marshal(unboundedToken)
	}
	return json.Marshal(b.max)
}

// UnmarshalJSON accepts the forms written by MarshalJSON
func (b *Bound) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		if token != unboundedToken {
			return fmt.Errorf("invalid range bound %q", token)
		}
		*b = Unbounded()
		return nil
	}

	var limit float64
	if err := json.Unmarshal(data, &limit); err != nil {
		return fmt.Errorf("invalid range bound %s: %w", string(data), err)
	}
	*b = Bounded(limit)
	return nil
}
