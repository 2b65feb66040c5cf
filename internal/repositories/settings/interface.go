package settings

import (
	"context"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
)

const (
	// StrategyKey holds the configured range strategy id
	StrategyKey = "settings:range_strategy"

	// StrategyChannel receives the new id every time the setting is written
	StrategyChannel = "settings:range_strategy:changed"
)

// Repository stores the range strategy setting
type Repository interface {
	// ReadStrategySetting returns the configured id, empty when never set
	ReadStrategySetting(ctx context.Context) (rangestrategy.StrategyID, error)

	// WriteStrategySetting stores id and announces the change to watchers
	WriteStrategySetting(ctx context.Context, id rangestrategy.StrategyID) error

	// Watch calls onChange for every announced change until ctx is done
	Watch(ctx context.Context, onChange func(rangestrategy.StrategyID)) error
}
