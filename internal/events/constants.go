package events

// Event type constants
const (
	// EventTypeStrategyChanged fires after the active range table was replaced
	EventTypeStrategyChanged EventType = "strategy_changed"

	// EventTypeMeasurementCompleted fires when a ruler measurement produced a range modifier
	EventTypeMeasurementCompleted EventType = "measurement_completed"
)

// Listener priorities
const (
	PriorityDisplay     = 100
	PriorityPersistence = 200
	PriorityAudit       = 900
)
