// Package action defines the closed set of things an actor can do on its
// turn, and the rules that make each one legal.
package action

import (
	"errors"
	"fmt"

	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/world"
)

// Reasons an action is refused.
var (
	ErrNoActor              = errors.New("no actor")
	ErrEmptyPath            = errors.New("empty path")
	ErrImpassable           = errors.New("impassable terrain")
	ErrInsufficientMovement = errors.New("insufficient movement")
	ErrNoTarget             = errors.New("no target")
	ErrNothingToPickUp      = errors.New("nothing to pick up")
	ErrBusy                 = errors.New("busy")
	ErrUnknownAction        = errors.New("unknown action")
)

// Kind identifies the variant of an Action.
type Kind int

const (
	KindMove Kind = iota
	KindEnterStructure
	KindPickUp
	KindAttack
	KindWait
	KindEndTurn
)

// String returns a human-readable name for the action kind.
func (k Kind) String() string {
	switch k {
	case KindMove:
		return "Move"
	case KindEnterStructure:
		return "EnterStructure"
	case KindPickUp:
		return "PickUp"
	case KindAttack:
		return "Attack"
	case KindWait:
		return "Wait"
	case KindEndTurn:
		return "EndTurn"
	default:
		return "Unknown"
	}
}

// Action is an immutable request by one actor. The set of implementations
// is closed: Move, EnterStructure, PickUp, Attack, Wait and EndTurn.
type Action interface {
	Kind() Kind
	Actor() *entity.Actor
	// Check returns nil when the action is legal against view, or the
	// reason it is not.
	Check(view world.View) error
	// MovementCost is the number of movement points the action spends.
	MovementCost(view world.View) int
	fmt.Stringer

	sealed()
}

// IsLegal reports whether a is non-nil and passes its checks.
func IsLegal(a Action, view world.View) bool {
	return a != nil && a.Check(view) == nil
}

type base struct {
	actor *entity.Actor
}

func (b base) Actor() *entity.Actor          { return b.actor }
func (b base) MovementCost(_ world.View) int { return 0 }
func (base) sealed()                         {}

func (b base) checkActor() error {
	if b.actor == nil {
		return ErrNoActor
	}
	return nil
}

func (b base) actorName() string {
	if b.actor == nil {
		return "<nobody>"
	}
	return b.actor.Name
}

// Move walks the actor along path, one cell at a time.
type Move struct {
	base
	path []world.Cell
}

// NewMove creates a move along path. The path excludes the actor's current
// cell and is copied.
func NewMove(actor *entity.Actor, path []world.Cell) Move {
	return Move{base: base{actor}, path: append([]world.Cell(nil), path...)}
}

func (Move) Kind() Kind { return KindMove }

// Path returns a copy of the cells to walk.
func (m Move) Path() []world.Cell {
	return append([]world.Cell(nil), m.path...)
}

// Len returns the number of steps.
func (m Move) Len() int { return len(m.path) }

// Destination returns the last cell of the path.
func (m Move) Destination() (world.Cell, bool) {
	if len(m.path) == 0 {
		return world.Cell{}, false
	}
	return m.path[len(m.path)-1], true
}

// MovementCost sums the cost of entering each path cell.
func (m Move) MovementCost(view world.View) int {
	total := 0
	for _, c := range m.path {
		total += view.MovementCost(c)
	}
	return total
}

func (m Move) Check(view world.View) error {
	if err := m.checkActor(); err != nil {
		return err
	}
	if len(m.path) == 0 {
		return ErrEmptyPath
	}
	for _, c := range m.path {
		if !view.IsPassable(c) {
			return fmt.Errorf("%w at %s", ErrImpassable, c)
		}
	}
	cost, have := m.MovementCost(view), m.actor.MovementPoints()
	if cost > have {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientMovement, cost, have)
	}
	return nil
}

func (m Move) String() string {
	dest, _ := m.Destination()
	return fmt.Sprintf("Move(%s to %s, %d steps)", m.actorName(), dest, len(m.path))
}

// EnterStructure visits a town-like structure.
type EnterStructure struct {
	base
	structure *world.Structure
}

// NewEnterStructure creates a visit to s.
func NewEnterStructure(actor *entity.Actor, s *world.Structure) EnterStructure {
	return EnterStructure{base: base{actor}, structure: s}
}

func (EnterStructure) Kind() Kind { return KindEnterStructure }

// Structure returns the structure being entered.
func (e EnterStructure) Structure() *world.Structure { return e.structure }

func (e EnterStructure) Check(_ world.View) error {
	if err := e.checkActor(); err != nil {
		return err
	}
	if e.structure == nil {
		return ErrNoTarget
	}
	return nil
}

func (e EnterStructure) String() string {
	name := "<none>"
	if e.structure != nil {
		name = e.structure.Name
	}
	return fmt.Sprintf("EnterStructure(%s into %s)", e.actorName(), name)
}

// PickUp collects a pile lying on a cell.
type PickUp struct {
	base
	cell world.Cell
}

// NewPickUp creates a pickup of whatever lies on c.
func NewPickUp(actor *entity.Actor, c world.Cell) PickUp {
	return PickUp{base: base{actor}, cell: c}
}

func (PickUp) Kind() Kind { return KindPickUp }

// Cell returns the cell being collected from.
func (p PickUp) Cell() world.Cell { return p.cell }

func (p PickUp) Check(view world.View) error {
	if err := p.checkActor(); err != nil {
		return err
	}
	for _, e := range view.EntitiesAt(p.cell) {
		if e.EntityKind() == world.EntityPickup {
			return nil
		}
	}
	return fmt.Errorf("%w at %s", ErrNothingToPickUp, p.cell)
}

func (p PickUp) String() string {
	return fmt.Sprintf("PickUp(%s at %s)", p.actorName(), p.cell)
}

// Attack starts a fight with the entity on a cell.
type Attack struct {
	base
	cell   world.Cell
	target world.Entity
}

// NewAttack creates an attack on target standing at c.
func NewAttack(actor *entity.Actor, c world.Cell, target world.Entity) Attack {
	return Attack{base: base{actor}, cell: c, target: target}
}

func (Attack) Kind() Kind { return KindAttack }

// Cell returns the attacked cell.
func (a Attack) Cell() world.Cell { return a.cell }

// Target returns the attacked entity.
func (a Attack) Target() world.Entity { return a.target }

func (a Attack) Check(_ world.View) error {
	if err := a.checkActor(); err != nil {
		return err
	}
	if a.target == nil {
		return ErrNoTarget
	}
	return nil
}

func (a Attack) String() string {
	return fmt.Sprintf("Attack(%s at %s)", a.actorName(), a.cell)
}

// Wait skips the rest of this actor's turn.
type Wait struct {
	base
}

// NewWait creates a wait for actor.
func NewWait(actor *entity.Actor) Wait {
	return Wait{base: base{actor}}
}

func (Wait) Kind() Kind                 { return KindWait }
func (w Wait) Check(_ world.View) error { return w.checkActor() }
func (w Wait) String() string           { return fmt.Sprintf("Wait(%s)", w.actorName()) }

// EndTurn ends the turn of the actor's owner early.
type EndTurn struct {
	base
}

// NewEndTurn creates an end-of-turn request for actor's owner.
func NewEndTurn(actor *entity.Actor) EndTurn {
	return EndTurn{base: base{actor}}
}

func (EndTurn) Kind() Kind                 { return KindEndTurn }
func (e EndTurn) Check(_ world.View) error { return e.checkActor() }
func (e EndTurn) String() string           { return fmt.Sprintf("EndTurn(%s)", e.actorName()) }
