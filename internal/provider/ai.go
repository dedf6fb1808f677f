package provider

import (
	"cmp"
	"slices"

	"github.com/go-logr/logr"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/pathfind"
	"github.com/samdwyer/wayfarer/internal/world"
)

// AI decides on the spot: it heads for the cheapest thing of interest it
// can reach today and waits when there is none. Each actor enters a given
// structure or attacks a given target only once.
type AI struct {
	pathfinder *pathfind.Pathfinder
	logger     logr.Logger
	enabled    bool
	visited    mapset.Set[string]
}

// NewAI creates an enabled AI provider.
func NewAI(pf *pathfind.Pathfinder, logger logr.Logger) *AI {
	return &AI{
		pathfinder: pf,
		logger:     logger,
		enabled:    true,
		visited:    mapset.New[string](),
	}
}

func (ai *AI) RequestAction(actor *entity.Actor, view world.View, onReady func(action.Action)) {
	if !ai.enabled {
		ai.logger.Info("AI disabled, ignoring action request", "actor", actor.Name)
		return
	}
	a := ai.Decide(actor, view)
	ai.logger.V(1).Info("AI decided", "actor", actor.Name, "action", a.String())
	onReady(a)
}

// CancelRequest does nothing: requests are answered before RequestAction
// returns.
func (ai *AI) CancelRequest() {}

func (ai *AI) SetEnabled(enabled bool) { ai.enabled = enabled }
func (ai *AI) Enabled() bool           { return ai.enabled }
func (ai *AI) RequiresInput() bool     { return false }
func (ai *AI) IsWaiting() bool         { return false }

// Decide picks the actor's next action.
func (ai *AI) Decide(actor *entity.Actor, view world.View) action.Action {
	for _, c := range ai.candidates(actor) {
		for _, e := range view.EntitiesAt(c) {
			if !ai.interesting(actor, e) {
				continue
			}
			a, err := Intent(actor, view, ai.pathfinder, c)
			if err != nil || ai.repeats(actor, a) {
				continue
			}
			ai.remember(actor, a)
			return a
		}
	}
	return action.NewWait(actor)
}

// candidates lists reachable cells plus orthogonal neighbours, cheapest
// first, then by row and column.
func (ai *AI) candidates(actor *entity.Actor) []world.Cell {
	area := ai.pathfinder.ReachableArea(actor.Position(), actor.MovementPoints())
	for _, n := range actor.Position().Neighbors() {
		if _, ok := area[n]; !ok {
			area[n] = actor.MovementPoints() + 1
		}
	}

	cells := make([]world.Cell, 0, len(area))
	for c := range area {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b world.Cell) int {
		return cmp.Or(
			cmp.Compare(area[a], area[b]),
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.X, b.X),
		)
	})
	return cells
}

func (ai *AI) interesting(actor *entity.Actor, e world.Entity) bool {
	switch e.EntityKind() {
	case world.EntityPickup:
		return true
	case world.EntityStructure:
		return !ai.visited.Has(visitKey(actor, e))
	case world.EntityActor:
		return actor.IsHostileTo(e) && !ai.visited.Has(visitKey(actor, e))
	default:
		return false
	}
}

func (ai *AI) repeats(actor *entity.Actor, a action.Action) bool {
	target := targetOf(a)
	return target != nil && ai.visited.Has(visitKey(actor, target))
}

func (ai *AI) remember(actor *entity.Actor, a action.Action) {
	if target := targetOf(a); target != nil {
		ai.visited.Put(visitKey(actor, target))
	}
}

func targetOf(a action.Action) world.Entity {
	switch v := a.(type) {
	case action.EnterStructure:
		return v.Structure()
	case action.Attack:
		return v.Target()
	default:
		return nil
	}
}

func visitKey(actor *entity.Actor, e world.Entity) string {
	return actor.ID() + "/" + e.ID()
}
