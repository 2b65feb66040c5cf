package measurement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/KirkDiggler/dnd-range-bot/internal/events"
	"github.com/KirkDiggler/dnd-range-bot/internal/measurement"
)

type tableCallback struct {
	table *rangestrategy.Table
}

func (c *tableCallback) BandForDistance(distance float64) (rangestrategy.Band, error) {
	return c.table.BandFor(distance)
}

type recordingSink struct {
	pushed []measurement.TransientModifier
	err    error
}

func (s *recordingSink) PushTransient(_ context.Context, m measurement.TransientModifier) error {
	if s.err != nil {
		return s.err
	}
	s.pushed = append(s.pushed, m)
	return nil
}

type fixedIDs struct{}

func (fixedIDs) New() string { return "range-1" }

func newTool(t *testing.T, table *rangestrategy.Table, sink measurement.TransientSink, bus *events.Bus, logger *zap.Logger) *measurement.Tool {
	t.Helper()
	tool, err := measurement.NewTool(&measurement.ToolConfig{
		Callback:      &tableCallback{table: table},
		Sink:          sink,
		UUIDGenerator: fixedIDs{},
		EventBus:      bus,
		Logger:        logger,
	})
	require.NoError(t, err)
	return tool
}

func TestSegmentLabel(t *testing.T) {
	tool := newTool(t, rangestrategy.Simplified(), nil, nil, nil)

	assert.Equal(t, "3 ft\n[+0] Close range", tool.SegmentLabel(measurement.Segment{Distance: 3, TotalDistance: 3}))
	assert.Equal(t, "12.5 ft\n[-3] Short range", tool.SegmentLabel(measurement.Segment{Distance: 12.5, TotalDistance: 15.5}))
	assert.Equal(t, "1 ft", tool.SegmentLabel(measurement.Segment{Distance: 1, TotalDistance: -1}))

	labels := tool.Labels(measurement.Measurement{Segments: []measurement.Segment{
		{Distance: 15, TotalDistance: 15},
		{Distance: 600, TotalDistance: 615},
	}})
	assert.Equal(t, []string{"15 ft\n[-3] Short range", "600 ft\n[-15] Extreme range"}, labels)
}

func TestSegmentLabel_BoundedTableOverflow(t *testing.T) {
	standard, err := rangestrategy.Standard(rangestrategy.StandardOptions{Bands: 2})
	require.NoError(t, err)
	tool := newTool(t, standard, nil, nil, nil)

	assert.Equal(t, "25 ft", tool.SegmentLabel(measurement.Segment{Distance: 25, TotalDistance: 25}))
}

func TestComplete_PushesModifier(t *testing.T) {
	sink := &recordingSink{}
	bus := events.NewBus(nil)

	var completed *events.MeasurementCompletedEvent
	bus.Subscribe(events.EventTypeMeasurementCompleted, &events.ListenerFunc{
		ListenerID: "test",
		Handle: func(e events.Event) error {
			completed = e.(*events.MeasurementCompletedEvent)
			return nil
		},
	})

	tool := newTool(t, rangestrategy.Simplified(), sink, bus, nil)

	modifier, err := tool.Complete(context.Background(), measurement.Measurement{TotalDistance: 150})
	require.NoError(t, err)
	require.NotNil(t, modifier)

	assert.Equal(t, measurement.TransientModifier{
		ID:       "range-1",
		Penalty:  -11,
		Label:    "Long range",
		Distance: 150,
		Units:    "ft",
	}, *modifier)
	assert.Equal(t, "-11 Long range", modifier.Text())
	assert.Equal(t, []measurement.TransientModifier{*modifier}, sink.pushed)

	require.NotNil(t, completed)
	assert.Equal(t, -11, completed.Penalty)
}

func TestComplete_NothingToPush(t *testing.T) {
	sink := &recordingSink{}
	tool := newTool(t, rangestrategy.Simplified(), sink, nil, nil)
	ctx := context.Background()

	modifier, err := tool.Complete(ctx, measurement.Measurement{TotalDistance: 400, TriggeredByMovement: true})
	assert.NoError(t, err)
	assert.Nil(t, modifier)

	modifier, err = tool.Complete(ctx, measurement.Measurement{TotalDistance: 4})
	assert.NoError(t, err)
	assert.Nil(t, modifier)

	assert.Empty(t, sink.pushed)
}

func TestComplete_LookupFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	standard, err := rangestrategy.Standard(rangestrategy.StandardOptions{Bands: 2})
	require.NoError(t, err)

	sink := &recordingSink{}
	tool := newTool(t, standard, sink, nil, zap.New(core))
	ctx := context.Background()

	_, err = tool.Complete(ctx, measurement.Measurement{TotalDistance: 50})
	assert.True(t, rangeerr.IsNoApplicableBand(err))

	_, err = tool.Complete(ctx, measurement.Measurement{TotalDistance: -3})
	assert.True(t, rangeerr.IsInvalidDistance(err))

	assert.Empty(t, sink.pushed)
	assert.Equal(t, 2, logs.FilterMessage("no range modifier for measurement").Len())
}

func TestComplete_SinkFailure(t *testing.T) {
	sink := &recordingSink{err: errors.New("discord 503")}
	tool := newTool(t, rangestrategy.Simplified(), sink, nil, nil)

	modifier, err := tool.Complete(context.Background(), measurement.Measurement{TotalDistance: 30})

	assert.Nil(t, modifier)
	assert.Equal(t, rangeerr.CodeUnavailable, rangeerr.GetCode(err))
}

func TestNewTool_RequiresCallback(t *testing.T) {
	_, err := measurement.NewTool(&measurement.ToolConfig{})
	assert.True(t, rangeerr.IsInvalidArgument(err))
}
