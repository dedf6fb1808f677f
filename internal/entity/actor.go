// Package entity provides the units that move around the world.
package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/wayfarer/internal/gamedata"
	"github.com/samdwyer/wayfarer/internal/world"
)

// HumanOwner is the owner id reserved for the local player.
const HumanOwner = 0

// DefaultMovement is the per-day movement allowance of an actor built
// without a template.
const DefaultMovement = 12

// Actor is a unit belonging to one owner. It is not safe for concurrent
// use.
type Actor struct {
	id          string
	Name        string
	Symbol      rune
	owner       int
	position    world.Cell
	movement    int
	maxMovement int
	activity    Activity

	// OnActivityChanged, if set, is called after every activity change.
	OnActivityChanged func(from, to Activity)
}

// NewActor creates an actor with full movement points.
func NewActor(name string, owner int, pos world.Cell, maxMovement int) *Actor {
	if maxMovement < 0 {
		maxMovement = 0
	}
	return &Actor{
		id:          uuid.NewString(),
		Name:        name,
		Symbol:      '@',
		owner:       owner,
		position:    pos,
		movement:    maxMovement,
		maxMovement: maxMovement,
	}
}

// NewActorFromDef creates an actor from a hero template.
func NewActorFromDef(def *gamedata.HeroDef, owner int, pos world.Cell) *Actor {
	if def == nil {
		return NewActor("Wanderer", owner, pos, DefaultMovement)
	}
	a := NewActor(def.Name, owner, pos, def.Movement)
	if def.Symbol != "" {
		a.Symbol = []rune(def.Symbol)[0]
	}
	return a
}

func (a *Actor) ID() string                   { return a.id }
func (a *Actor) EntityKind() world.EntityKind { return world.EntityActor }
func (a *Actor) Cell() world.Cell             { return a.position }
func (a *Actor) OwnerID() int                 { return a.owner }

// Position returns the actor's current cell.
func (a *Actor) Position() world.Cell { return a.position }

// MoveTo places the actor on c. It does not spend movement points.
func (a *Actor) MoveTo(c world.Cell) { a.position = c }

// MovementPoints returns the points left this day.
func (a *Actor) MovementPoints() int { return a.movement }

// MaxMovementPoints returns the daily allowance.
func (a *Actor) MaxMovementPoints() int { return a.maxMovement }

// SetMaxMovementPoints changes the daily allowance. Current points are
// capped to the new maximum.
func (a *Actor) SetMaxMovementPoints(n int) {
	if n < 0 {
		n = 0
	}
	a.maxMovement = n
	if a.movement > n {
		a.movement = n
	}
}

// CanAct reports whether the actor has movement points left.
func (a *Actor) CanAct() bool { return a.movement > 0 }

// ConsumeMovement spends cost points. It returns false, spending nothing,
// when the actor cannot afford it.
func (a *Actor) ConsumeMovement(cost int) bool {
	if cost < 0 || a.movement < cost {
		return false
	}
	a.movement -= cost
	return true
}

// ResetMovement refills movement points to the daily allowance.
func (a *Actor) ResetMovement() { a.movement = a.maxMovement }

// Activity returns the actor's local state.
func (a *Actor) Activity() Activity { return a.activity }

// IsHostileTo reports whether e belongs to a different, real owner.
func (a *Actor) IsHostileTo(e world.Entity) bool {
	return e.OwnerID() != world.NoOwner && e.OwnerID() != a.owner
}

func (a *Actor) String() string { return a.Name }
