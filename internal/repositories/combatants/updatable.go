package combatants

import (
	"context"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/combatant"
	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/KirkDiggler/dnd-range-bot/internal/services/rangeengine"
)

// UpdatableSource exposes the combatants of one scene that an actor may
// change, in the shape the range engine propagates tables to.
type UpdatableSource struct {
	repo    Repository
	sceneID string
	actor   combatant.Actor
}

// NewUpdatableSource creates a source scoped to sceneID and actor
func NewUpdatableSource(repo Repository, sceneID string, actor combatant.Actor) *UpdatableSource {
	return &UpdatableSource{
		repo:    repo,
		sceneID: sceneID,
		actor:   actor,
	}
}

// ListUpdatableEntities snapshots the scene and keeps the permitted combatants
func (s *UpdatableSource) ListUpdatableEntities(ctx context.Context) ([]rangeengine.EntityRef, error) {
	all, err := s.repo.ListByScene(ctx, s.sceneID)
	if err != nil {
		return nil, rangeerr.Wrapf(err, "failed to list combatants for scene %s", s.sceneID)
	}

	refs := make([]rangeengine.EntityRef, 0, len(all))
	for _, c := range all {
		if !c.CanBeUpdatedBy(s.actor) {
			continue
		}
		refs = append(refs, &combatantRef{repo: s.repo, id: c.ID, actor: s.actor})
	}

	return refs, nil
}

type combatantRef struct {
	repo  Repository
	id    string
	actor combatant.Actor
}

func (r *combatantRef) ID() string { return r.id }

// ApplyRangeTable re-reads the combatant so the permission check and the
// write see its current owner.
func (r *combatantRef) ApplyRangeTable(ctx context.Context, table *rangestrategy.Table) error {
	c, err := r.repo.Get(ctx, r.id)
	if err != nil {
		return err
	}
	if !c.CanBeUpdatedBy(r.actor) {
		return rangeerr.PermissionDeniedf("user %s may not update combatant %s", r.actor.UserID, r.id)
	}

	c.ApplyRangeTable(table)

	return r.repo.Update(ctx, c)
}
