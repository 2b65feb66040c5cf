package measurement

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/KirkDiggler/dnd-range-bot/internal/events"
	"github.com/KirkDiggler/dnd-range-bot/internal/uuid"
)

// DefaultUnits labels distances when none is configured
const DefaultUnits = "ft"

// Callback resolves a measured distance to its range band. The range
// engine implements it.
type Callback interface {
	BandForDistance(distance float64) (rangestrategy.Band, error)
}

// TransientSink receives the one-off modifier produced by a measurement
type TransientSink interface {
	PushTransient(ctx context.Context, modifier TransientModifier) error
}

// TransientModifier is a range modifier that applies to the next roll only
type TransientModifier struct {
	ID       string
	Penalty  int
	Label    string
	Distance float64
	Units    string
}

// Text renders the modifier the same way as the derived modifier list
func (m TransientModifier) Text() string {
	return rangestrategy.FormatModifier(m.Penalty, m.Label)
}

// Segment is one leg of a ruler measurement
type Segment struct {
	Distance      float64
	TotalDistance float64
}

// Measurement is a finished ruler measurement
type Measurement struct {
	Segments      []Segment
	TotalDistance float64

	// TriggeredByMovement is set when the ruler was drawn by a token moving,
	// not by someone measuring a shot
	TriggeredByMovement bool
}

// ToolConfig holds configuration for the tool
type ToolConfig struct {
	Callback      Callback
	Sink          TransientSink  // Optional
	UUIDGenerator uuid.Generator // Optional
	EventBus      *events.Bus    // Optional
	Logger        *zap.Logger    // Optional
	Units         string
}

// Tool labels ruler segments and turns finished measurements into
// transient range modifiers.
type Tool struct {
	callback Callback
	sink     TransientSink
	ids      uuid.Generator
	bus      *events.Bus
	logger   *zap.Logger
	units    string
}

// NewTool creates a measurement tool
func NewTool(cfg *ToolConfig) (*Tool, error) {
	if cfg == nil || cfg.Callback == nil {
		return nil, rangeerr.InvalidArgument("measurement tool requires a range callback")
	}

	t := &Tool{
		callback: cfg.Callback,
		sink:     cfg.Sink,
		ids:      cfg.UUIDGenerator,
		bus:      cfg.EventBus,
		logger:   cfg.Logger,
		units:    cfg.Units,
	}
	if t.ids == nil {
		t.ids = uuid.NewPrefixedGenerator("range")
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	t.logger = t.logger.Named("measurement")
	if t.units == "" {
		t.units = DefaultUnits
	}

	return t, nil
}

// SegmentLabel renders the ruler text for one segment: the segment length
// and, when a band covers the running total, the band's modifier.
func (t *Tool) SegmentLabel(segment Segment) string {
	label := fmt.Sprintf("%s %s", formatDistance(segment.Distance), t.units)

	band, err := t.callback.BandForDistance(segment.TotalDistance)
	if err != nil {
		t.logger.Debug("no range band for segment",
			zap.Float64("total_distance", segment.TotalDistance),
			zap.Error(err))
		return label
	}

	return fmt.Sprintf("%s\n[%+d] %s", label, band.Penalty, band.ModifierLabel)
}

// Labels renders every segment of a measurement
func (t *Tool) Labels(m Measurement) []string {
	labels := make([]string, 0, len(m.Segments))
	for _, segment := range m.Segments {
		labels = append(labels, t.SegmentLabel(segment))
	}
	return labels
}

// Complete handles the end of a measurement. It returns the modifier pushed
// to the sink, or nil when nothing applies: movement-triggered rulers and
// zero-penalty bands. Lookup failures come back as InvalidDistance or
// NoApplicableBand errors, which callers treat as "no modifier".
func (t *Tool) Complete(ctx context.Context, m Measurement) (*TransientModifier, error) {
	if m.TriggeredByMovement {
		return nil, nil
	}

	band, err := t.callback.BandForDistance(m.TotalDistance)
	if err != nil {
		t.logger.Warn("no range modifier for measurement",
			zap.Float64("total_distance", m.TotalDistance),
			zap.String("code", string(rangeerr.GetCode(err))),
			zap.Error(err))
		return nil, err
	}
	if band.Penalty == 0 {
		return nil, nil
	}

	modifier := TransientModifier{
		ID:       t.ids.New(),
		Penalty:  band.Penalty,
		Label:    band.ModifierLabel,
		Distance: m.TotalDistance,
		Units:    t.units,
	}

	if t.sink != nil {
		if err := t.sink.PushTransient(ctx, modifier); err != nil {
			return nil, rangeerr.WrapWithCode(err, rangeerr.CodeUnavailable, "failed to push range modifier")
		}
	}

	t.logger.Info("range modifier pushed",
		zap.String("id", modifier.ID),
		zap.Float64("distance", modifier.Distance),
		zap.String("modifier", modifier.Text()))

	if t.bus != nil {
		event := events.NewMeasurementCompletedEvent(modifier.ID, modifier.Distance, modifier.Penalty, modifier.Label)
		if err := t.bus.Emit(event); err != nil {
			t.logger.Warn("measurement listener failed", zap.Error(err))
		}
	}

	return &modifier, nil
}

func formatDistance(distance float64) string {
	return strconv.FormatFloat(math.Round(distance*100)/100, 'f', -1, 64)
}
