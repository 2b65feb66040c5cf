package events

// StrategyChangedEvent is emitted once a strategy switch has been published
// and its notifications have finished.
type StrategyChangedEvent struct {
	BaseEvent
	Previous  string
	Strategy  string
	Modifiers []string
	Notified  int
	Failed    int
}

// NewStrategyChangedEvent creates a strategy changed event
func NewStrategyChangedEvent(previous, strategy string, modifiers []string) *StrategyChangedEvent {
	return &StrategyChangedEvent{
		BaseEvent: BaseEvent{Type: EventTypeStrategyChanged},
		Previous:  previous,
		Strategy:  strategy,
		Modifiers: modifiers,
	}
}

// MeasurementCompletedEvent is emitted when a measurement pushed a transient modifier
type MeasurementCompletedEvent struct {
	BaseEvent
	ModifierID string
	Distance   float64
	Penalty    int
	Label      string
}

// NewMeasurementCompletedEvent creates a measurement completed event
func NewMeasurementCompletedEvent(modifierID string, distance float64, penalty int, label string) *MeasurementCompletedEvent {
	return &MeasurementCompletedEvent{
		BaseEvent:  BaseEvent{Type: EventTypeMeasurementCompleted},
		ModifierID: modifierID,
		Distance:   distance,
		Penalty:    penalty,
		Label:      label,
	}
}
