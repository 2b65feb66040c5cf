package rangeengine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/KirkDiggler/dnd-range-bot/internal/events"
)

const (
	DefaultNotifyConcurrency = 8
	DefaultNotifyTimeout     = 5 * time.Second
	DefaultNotifyRetries     = 2
	DefaultRetryInterval     = 100 * time.Millisecond
)

// EngineConfig holds configuration for the engine
type EngineConfig struct {
	// Registry defaults to the Standard and Simplified built-ins
	Registry *rangestrategy.Registry

	// DefaultStrategy is active from construction until the first switch
	DefaultStrategy rangestrategy.StrategyID

	ConfigStore ConfigurationStore
	Display     ModifierDisplay  // Optional
	Entities    EntityRepository // Optional
	EventBus    *events.Bus      // Optional
	Logger      *zap.Logger

	NotifyConcurrency int
	NotifyTimeout     time.Duration
	NotifyRetries     uint64
	RetryInterval     time.Duration
}

// snapshot is the unit of atomic replacement: readers see the table and
// the modifiers derived from it together or not at all.
type snapshot struct {
	strategy  rangestrategy.StrategyID
	table     *rangestrategy.Table
	modifiers []string
}

// Engine owns the active range table and keeps dependents in sync with it
type Engine struct {
	registry *rangestrategy.Registry
	config   ConfigurationStore
	display  ModifierDisplay
	entities EntityRepository
	bus      *events.Bus
	logger   *zap.Logger

	notifyConcurrency int
	notifyTimeout     time.Duration
	notifyRetries     uint64
	retryInterval     time.Duration

	defaultStrategy rangestrategy.StrategyID
	state           atomic.Pointer[snapshot]
	switchMu        sync.Mutex
}

// NewEngine creates an engine with the default strategy active. No
// collaborator is notified until SelectStrategy or SyncFromConfiguration runs.
func NewEngine(cfg *EngineConfig) (*Engine, error) {
	if cfg == nil {
		cfg = &EngineConfig{}
	}

	registry := cfg.Registry
	if registry == nil {
		var err error
		registry, err = rangestrategy.NewDefaultRegistry(rangestrategy.StandardOptions{})
		if err != nil {
			return nil, rangeerr.Wrap(err, "failed to build default range tables")
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		registry:          registry,
		config:            cfg.ConfigStore,
		display:           cfg.Display,
		entities:          cfg.Entities,
		bus:               cfg.EventBus,
		logger:            logger.Named("range_engine"),
		notifyConcurrency: cfg.NotifyConcurrency,
		notifyTimeout:     cfg.NotifyTimeout,
		notifyRetries:     cfg.NotifyRetries,
		retryInterval:     cfg.RetryInterval,
		defaultStrategy:   cfg.DefaultStrategy,
	}

	if e.notifyConcurrency <= 0 {
		e.notifyConcurrency = DefaultNotifyConcurrency
	}
	if e.notifyTimeout <= 0 {
		e.notifyTimeout = DefaultNotifyTimeout
	}
	if e.retryInterval <= 0 {
		e.retryInterval = DefaultRetryInterval
	}
	if e.defaultStrategy == "" {
		e.defaultStrategy = rangestrategy.StrategyStandard
	}

	table, err := registry.Lookup(e.defaultStrategy)
	if err != nil {
		return nil, rangeerr.Wrap(err, "failed to select default strategy")
	}
	e.publish(e.defaultStrategy, table)

	return e, nil
}

// PenaltyForDistance returns the penalty of the active band covering distance
func (e *Engine) PenaltyForDistance(distance float64) (int, error) {
	return e.state.Load().table.PenaltyFor(distance)
}

// BandForDistance returns the active band covering distance
func (e *Engine) BandForDistance(distance float64) (rangestrategy.Band, error) {
	return e.state.Load().table.BandFor(distance)
}

func (e *Engine) ActiveStrategy() rangestrategy.StrategyID { return e.state.Load().strategy }
func (e *Engine) ActiveTable() *rangestrategy.Table        { return e.state.Load().table }

// DerivedModifiers returns the rendered modifiers of the active table
func (e *Engine) DerivedModifiers() []string {
	modifiers := e.state.Load().modifiers
	copied := make([]string, len(modifiers))
	copy(copied, modifiers)
	return copied
}

// Strategies lists the registered strategy ids
func (e *Engine) Strategies() []rangestrategy.StrategyID {
	return e.registry.IDs()
}

// RebuildDerivedModifiers recomputes the modifier list from the active table
// and republishes it.
func (e *Engine) RebuildDerivedModifiers() {
	e.switchMu.Lock()
	defer e.switchMu.Unlock()

	current := e.state.Load()
	e.publish(current.strategy, current.table)
}

func (e *Engine) publish(id rangestrategy.StrategyID, table *rangestrategy.Table) *snapshot {
	next := &snapshot{
		strategy:  id,
		table:     table,
		modifiers: rangestrategy.DeriveModifiers(table),
	}
	e.state.Store(next)
	return next
}

// SyncFromConfiguration reads the configured strategy and switches to it. An
// empty setting falls back to the default strategy.
func (e *Engine) SyncFromConfiguration(ctx context.Context) (*SwitchReport, error) {
	if e.config == nil {
		return nil, rangeerr.InvalidArgument("no configuration store configured")
	}

	id, err := e.config.ReadStrategySetting(ctx)
	if err != nil {
		return nil, rangeerr.WrapWithCode(err, rangeerr.CodeUnavailable, "failed to read range strategy setting")
	}
	if id == "" {
		id = e.defaultStrategy
	}

	return e.SelectStrategy(ctx, id)
}

// SelectStrategy activates the table registered for id, then refreshes the
// display and pushes the table to every updatable entity. Notification
// failures end up in the report; they never undo the switch.
func (e *Engine) SelectStrategy(ctx context.Context, id rangestrategy.StrategyID) (*SwitchReport, error) {
	table, err := e.registry.Lookup(id)
	if err != nil {
		e.logger.Warn("rejected strategy switch", zap.String("strategy", string(id)), zap.Error(err))
		return nil, err
	}

	e.switchMu.Lock()
	defer e.switchMu.Unlock()

	start := time.Now()
	previous := e.state.Load()
	next := e.publish(id, table)

	report := &SwitchReport{
		Previous:  previous.strategy,
		Strategy:  id,
		Modifiers: append([]string(nil), next.modifiers...),
	}

	if e.display != nil {
		if err := e.display.Refresh(ctx, report.Modifiers); err != nil {
			report.DisplayErr = rangeerr.Wrap(err, "failed to refresh modifier display")
			e.logger.Warn("modifier display refresh failed", zap.Error(err))
		}
	}

	report.Entities, report.ListErr = e.propagate(ctx, table)
	report.Duration = time.Since(start)

	e.logger.Info("range strategy selected",
		zap.String("previous", string(report.Previous)),
		zap.String("strategy", string(id)),
		zap.Int("modifiers", len(report.Modifiers)),
		zap.Int("entities", len(report.Entities)),
		zap.Int("failed", len(report.Failed())),
		zap.Duration("duration", report.Duration))

	if e.bus != nil {
		event := events.NewStrategyChangedEvent(string(report.Previous), string(id), report.Modifiers)
		event.Notified = len(report.Entities) - len(report.Failed())
		event.Failed = len(report.Failed())
		if err := e.bus.Emit(event); err != nil {
			e.logger.Warn("strategy changed listener failed", zap.Error(err))
		}
	}

	return report, nil
}

// propagate applies table to a snapshot of the updatable entities. Entities
// are notified concurrently and one failure never cancels the others.
func (e *Engine) propagate(ctx context.Context, table *rangestrategy.Table) ([]EntityResult, error) {
	if e.entities == nil {
		return nil, nil
	}

	refs, err := e.entities.ListUpdatableEntities(ctx)
	if err != nil {
		e.logger.Warn("failed to list updatable entities", zap.Error(err))
		return nil, rangeerr.WrapWithCode(err, rangeerr.CodeUnavailable, "failed to list updatable entities")
	}

	results := make([]EntityResult, len(refs))

	var g errgroup.Group
	g.SetLimit(e.notifyConcurrency)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			results[i] = e.applyToEntity(ctx, ref, table)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (e *Engine) applyToEntity(ctx context.Context, ref EntityRef, table *rangestrategy.Table) EntityResult {
	start := time.Now()
	result := EntityResult{EntityID: ref.ID()}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(e.retryInterval), e.notifyRetries),
		ctx,
	)

	result.Err = backoff.Retry(func() error {
		result.Attempts++

		callCtx, cancel := context.WithTimeout(ctx, e.notifyTimeout)
		defer cancel()

		err := callWithContext(callCtx, func(callCtx context.Context) error {
			return ref.ApplyRangeTable(callCtx, table)
		})
		// A hung or forbidden entity will not get better by asking again
		if errors.Is(err, context.DeadlineExceeded) || rangeerr.IsPermissionDenied(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
	result.Duration = time.Since(start)

	if result.Err != nil {
		e.logger.Warn("failed to apply range table to entity",
			zap.String("entity", result.EntityID),
			zap.Int("attempts", result.Attempts),
			zap.Error(result.Err))
	}

	return result
}

// callWithContext returns when call does or when ctx ends, whichever is first.
// A call that ignores ctx keeps running in the background until it returns.
func callWithContext(ctx context.Context, call func(context.Context) error) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic applying range table: %v", r)
			}
		}()
		done <- call(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
