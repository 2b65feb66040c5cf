package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/combatant"
	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/KirkDiggler/dnd-range-bot/internal/events"
	"github.com/KirkDiggler/dnd-range-bot/internal/measurement"
	"github.com/KirkDiggler/dnd-range-bot/internal/repositories/combatants"
	"github.com/KirkDiggler/dnd-range-bot/internal/repositories/settings"
	"github.com/KirkDiggler/dnd-range-bot/internal/services/rangeengine"
)

// Display renders both the derived modifier list and measured modifiers
type Display interface {
	rangeengine.ModifierDisplay
	measurement.TransientSink
}

// Provider holds all service instances
type Provider struct {
	Registry            *rangestrategy.Registry
	SettingsRepository  settings.Repository
	CombatantRepository combatants.Repository
	EventBus            *events.Bus
	RangeEngine         *rangeengine.Engine
	MeasurementTool     *measurement.Tool

	logger *zap.Logger
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	StandardOptions rangestrategy.StandardOptions
	DefaultStrategy rangestrategy.StrategyID

	SettingsRepository  settings.Repository   // Optional, in-memory when nil
	CombatantRepository combatants.Repository // Optional, in-memory when nil
	Display             Display               // Optional

	// SceneID and Actor scope which combatants a strategy switch reaches
	SceneID string
	Actor   combatant.Actor

	NotifyConcurrency int
	NotifyTimeout     time.Duration
	NotifyRetries     uint64

	Logger *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Use in-memory repositories if none provided
	settingsRepo := cfg.SettingsRepository
	if settingsRepo == nil {
		settingsRepo = settings.NewInMemoryRepository()
	}

	combatantRepo := cfg.CombatantRepository
	if combatantRepo == nil {
		combatantRepo = combatants.NewInMemoryRepository()
	}

	registry, err := rangestrategy.NewDefaultRegistry(cfg.StandardOptions)
	if err != nil {
		return nil, rangeerr.Wrap(err, "failed to build range strategies")
	}

	bus := events.NewBus(logger)
	audit := auditListener(logger.Named("audit"))
	bus.Subscribe(events.EventTypeStrategyChanged, audit)
	bus.Subscribe(events.EventTypeMeasurementCompleted, audit)

	engineCfg := &rangeengine.EngineConfig{
		Registry:          registry,
		DefaultStrategy:   cfg.DefaultStrategy,
		ConfigStore:       settingsRepo,
		Entities:          combatants.NewUpdatableSource(combatantRepo, cfg.SceneID, cfg.Actor),
		EventBus:          bus,
		Logger:            logger,
		NotifyConcurrency: cfg.NotifyConcurrency,
		NotifyTimeout:     cfg.NotifyTimeout,
		NotifyRetries:     cfg.NotifyRetries,
	}
	toolCfg := &measurement.ToolConfig{
		EventBus: bus,
		Logger:   logger,
	}
	// Assigned only when set so the interfaces stay nil rather than typed nil
	if cfg.Display != nil {
		engineCfg.Display = cfg.Display
		toolCfg.Sink = cfg.Display
	}

	engine, err := rangeengine.NewEngine(engineCfg)
	if err != nil {
		return nil, err
	}

	toolCfg.Callback = engine
	tool, err := measurement.NewTool(toolCfg)
	if err != nil {
		return nil, err
	}

	return &Provider{
		Registry:            registry,
		SettingsRepository:  settingsRepo,
		CombatantRepository: combatantRepo,
		EventBus:            bus,
		RangeEngine:         engine,
		MeasurementTool:     tool,
		logger:              logger.Named("provider"),
	}, nil
}

// Sync brings the engine in line with the stored setting
func (p *Provider) Sync(ctx context.Context) (*rangeengine.SwitchReport, error) {
	report, err := p.RangeEngine.SyncFromConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	if err := report.Err(); err != nil {
		p.logger.Warn("range strategy applied with failures",
			zap.String("strategy", string(report.Strategy)),
			zap.Error(err))
	}

	return report, nil
}

// WatchSettings re-syncs the engine every time the setting changes, until
// ctx is done. A rejected id leaves the active strategy in place.
func (p *Provider) WatchSettings(ctx context.Context) error {
	return p.SettingsRepository.Watch(ctx, func(id rangestrategy.StrategyID) {
		p.logger.Info("range strategy setting changed", zap.String("strategy", string(id)))

		if _, err := p.Sync(ctx); err != nil {
			p.logger.Error("failed to apply range strategy setting",
				zap.String("strategy", string(id)),
				zap.Error(err))
		}
	})
}

func auditListener(logger *zap.Logger) *events.ListenerFunc {
	return &events.ListenerFunc{
		ListenerID:       "audit",
		ListenerPriority: events.PriorityAudit,
		Handle: func(event events.Event) error {
			switch e := event.(type) {
			case *events.StrategyChangedEvent:
				logger.Info("strategy changed",
					zap.String("previous", e.Previous),
					zap.String("strategy", e.Strategy),
					zap.Int("notified", e.Notified),
					zap.Int("failed", e.Failed))
			case *events.MeasurementCompletedEvent:
				logger.Info("measurement completed",
					zap.String("modifier_id", e.ModifierID),
					zap.Float64("distance", e.Distance),
					zap.Int("penalty", e.Penalty))
			}
			return nil
		},
	}
}
