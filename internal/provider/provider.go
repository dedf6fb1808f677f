// Package provider supplies actions for the actor whose turn it is, either
// from player input or from a simple AI.
package provider

import (
	"errors"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/pathfind"
	"github.com/samdwyer/wayfarer/internal/world"
)

var (
	ErrInvalidTarget = errors.New("invalid target")
	ErrUnreachable   = errors.New("no path to target")
	ErrNotWaiting    = errors.New("not waiting for an action")
	ErrWrongActor    = errors.New("action belongs to another actor")
)

// Provider answers action requests for the actors of one owner.
//
// RequestAction must not block. The provider calls onReady exactly once per
// request, now or later, unless CancelRequest is called first. Cancelling
// with nothing outstanding does nothing. Disabling a provider cancels its
// request; the scheduler skips actors whose provider is disabled.
type Provider interface {
	RequestAction(actor *entity.Actor, view world.View, onReady func(action.Action))
	CancelRequest()
	SetEnabled(enabled bool)
	Enabled() bool
	RequiresInput() bool
	IsWaiting() bool
}

// Intent works out what an actor means to do with target, the way a click
// on the map is read: a hostile actor is attacked when adjacent, a pickup
// or structure is used when the actor stands on it, and anything else is
// walked toward. Moves are cut to what the actor can afford today.
func Intent(actor *entity.Actor, view world.View, pf *pathfind.Pathfinder, target world.Cell) (action.Action, error) {
	if actor == nil {
		return nil, action.ErrNoActor
	}
	here := actor.Position()

	var (
		hostile   world.Entity
		pickup    *world.Pickup
		structure *world.Structure
	)
	for _, e := range view.EntitiesAt(target) {
		switch v := e.(type) {
		case *world.Pickup:
			if pickup == nil {
				pickup = v
			}
		case *world.Structure:
			if structure == nil {
				structure = v
			}
		default:
			if e.EntityKind() == world.EntityActor && hostile == nil && actor.IsHostileTo(e) {
				hostile = e
			}
		}
	}

	switch {
	case hostile != nil:
		if here.Adjacent(target) {
			return action.NewAttack(actor, target, hostile), nil
		}
		return approach(actor, view, pf, target, true)
	case pickup != nil && target == here:
		return action.NewPickUp(actor, target), nil
	case structure != nil && target == here:
		return action.NewEnterStructure(actor, structure), nil
	case target == here:
		return nil, ErrInvalidTarget
	case !view.IsPassable(target):
		return nil, ErrInvalidTarget
	}
	return approach(actor, view, pf, target, false)
}

func approach(actor *entity.Actor, view world.View, pf *pathfind.Pathfinder, target world.Cell, stopShort bool) (action.Action, error) {
	path, ok := pf.FindPath(actor.Position(), target)
	if !ok {
		return nil, ErrUnreachable
	}
	if stopShort && len(path) > 0 {
		path = path[:len(path)-1]
	}
	path = pathfind.Affordable(view, path, actor.MovementPoints())
	if len(path) == 0 {
		return nil, action.ErrInsufficientMovement
	}
	return action.NewMove(actor, path), nil
}
