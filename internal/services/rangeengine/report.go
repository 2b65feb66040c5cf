package rangeengine

import (
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
)

// EntityResult is the outcome of pushing a table to one entity
type EntityResult struct {
	EntityID string
	Attempts int
	Duration time.Duration
	Err      error
}

// SwitchReport collects the notification outcomes of one strategy switch
type SwitchReport struct {
	Previous  rangestrategy.StrategyID
	Strategy  rangestrategy.StrategyID
	Modifiers []string
	Entities  []EntityResult
	Duration  time.Duration

	DisplayErr error
	ListErr    error
}

// Failed returns the entities that did not accept the table
func (r *SwitchReport) Failed() []EntityResult {
	var failed []EntityResult
	for _, result := range r.Entities {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}

// Err joins every notification failure, nil when all dependents were updated
func (r *SwitchReport) Err() error {
	errs := []error{r.DisplayErr, r.ListErr}
	for _, result := range r.Failed() {
		errs = append(errs, fmt.Errorf("entity %s: %w", result.EntityID, result.Err))
	}
	return errors.Join(errs...)
}
