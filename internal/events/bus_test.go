package events_test

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/dnd-range-bot/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus(nil)

	var executionOrder []string
	record := func(name string) func(events.Event) error {
		return func(events.Event) error {
			executionOrder = append(executionOrder, name)
			return nil
		}
	}

	bus.Subscribe(events.EventTypeStrategyChanged, &events.ListenerFunc{ListenerID: "audit", ListenerPriority: events.PriorityAudit, Handle: record("audit")})
	bus.Subscribe(events.EventTypeStrategyChanged, &events.ListenerFunc{ListenerID: "display", ListenerPriority: events.PriorityDisplay, Handle: record("display")})
	bus.Subscribe(events.EventTypeStrategyChanged, &events.ListenerFunc{ListenerID: "store", ListenerPriority: events.PriorityPersistence, Handle: record("store")})

	err := bus.Emit(events.NewStrategyChangedEvent("Standard", "Simplified", []string{"-3 Short range"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"display", "store", "audit"}, executionOrder)
}

func TestEventBus_Cancellation(t *testing.T) {
	bus := events.NewBus(nil)

	var secondExecuted bool
	bus.Subscribe(events.EventTypeMeasurementCompleted, &events.ListenerFunc{
		ListenerID:       "first",
		ListenerPriority: 100,
		Handle: func(e events.Event) error {
			e.Cancel()
			return nil
		},
	})
	bus.Subscribe(events.EventTypeMeasurementCompleted, &events.ListenerFunc{
		ListenerID:       "second",
		ListenerPriority: 200,
		Handle: func(events.Event) error {
			secondExecuted = true
			return nil
		},
	})

	event := events.NewMeasurementCompletedEvent("mod-1", 30, -3, "Short range")
	require.NoError(t, bus.Emit(event))

	assert.False(t, secondExecuted)
	assert.True(t, event.IsCancelled())
}

func TestEventBus_ListenerError(t *testing.T) {
	bus := events.NewBus(nil)
	bus.Subscribe(events.EventTypeStrategyChanged, &events.ListenerFunc{
		ListenerID: "broken",
		Handle: func(events.Event) error {
			return errors.New("boom")
		},
	})

	err := bus.Emit(events.NewStrategyChangedEvent("", "Standard", nil))
	assert.ErrorContains(t, err, "listener broken failed")
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus(nil)

	calls := 0
	listener := &events.ListenerFunc{ListenerID: "counter", Handle: func(events.Event) error {
		calls++
		return nil
	}}

	bus.Subscribe(events.EventTypeStrategyChanged, listener)
	require.NoError(t, bus.Emit(events.NewStrategyChangedEvent("", "Standard", nil)))

	bus.Unsubscribe(events.EventTypeStrategyChanged, "counter")
	require.NoError(t, bus.Emit(events.NewStrategyChangedEvent("Standard", "Simplified", nil)))

	assert.Equal(t, 1, calls)
}
