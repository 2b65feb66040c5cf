package display

import (
	"context"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-range-bot/internal/measurement"
)

// Log writes modifier updates to the logger. It is the display used when no
// Discord channel is configured.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a logging display
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger.Named("modifier_display")}
}

func (l *Log) Refresh(ctx context.Context, modifiers []string) error {
	l.logger.Info("range modifiers refreshed", zap.Strings("modifiers", modifiers))
	return nil
}

func (l *Log) PushTransient(ctx context.Context, modifier measurement.TransientModifier) error {
	l.logger.Info("range modifier measured",
		zap.String("id", modifier.ID),
		zap.String("modifier", modifier.Text()),
		zap.String("distance", formatDistance(modifier.Distance)+" "+modifier.Units))
	return nil
}

func formatDistance(distance float64) string {
	return strconv.FormatFloat(math.Round(distance*100)/100, 'f', -1, 64)
}
