package world

import (
	"fmt"

	"github.com/google/uuid"
)

// NoOwner marks structures and pickups that belong to nobody.
const NoOwner = -1

// EntityKind distinguishes the things a cell can hold.
type EntityKind int

const (
	EntityStructure EntityKind = iota
	EntityPickup
	EntityActor
)

// String returns a human-readable name for the entity kind.
func (k EntityKind) String() string {
	switch k {
	case EntityStructure:
		return "structure"
	case EntityPickup:
		return "pickup"
	case EntityActor:
		return "actor"
	default:
		return "unknown"
	}
}

// Entity is anything of interest that sits on a cell.
type Entity interface {
	ID() string
	EntityKind() EntityKind
	Cell() Cell
	OwnerID() int
}

// Structure is an enterable map object such as a town. Yield maps a
// resource to the amount the structure produces for its owner each day.
type Structure struct {
	id    string
	Name  string
	cell  Cell
	owner int
	Kind  ObjectKind
	Yield map[string]int
}

// NewStructure creates an unowned town-like structure at c.
func NewStructure(name string, c Cell) *Structure {
	return &Structure{
		id:    uuid.NewString(),
		Name:  name,
		cell:  c,
		owner: NoOwner,
		Kind:  ObjectTown,
	}
}

func (s *Structure) ID() string             { return s.id }
func (s *Structure) EntityKind() EntityKind { return EntityStructure }
func (s *Structure) Cell() Cell             { return s.cell }
func (s *Structure) OwnerID() int           { return s.owner }

// SetOwner transfers the structure to another owner.
func (s *Structure) SetOwner(owner int) { s.owner = owner }

// Pickup is a collectible pile lying on the map.
type Pickup struct {
	id       string
	Resource string
	Amount   int
	cell     Cell
}

// NewPickup creates a resource pile at c.
func NewPickup(resource string, amount int, c Cell) *Pickup {
	return &Pickup{
		id:       uuid.NewString(),
		Resource: resource,
		Amount:   amount,
		cell:     c,
	}
}

func (p *Pickup) ID() string             { return p.id }
func (p *Pickup) EntityKind() EntityKind { return EntityPickup }
func (p *Pickup) Cell() Cell             { return p.cell }
func (p *Pickup) OwnerID() int           { return NoOwner }

// EntityName returns a display name for e.
func EntityName(e Entity) string {
	switch v := e.(type) {
	case nil:
		return ""
	case *Structure:
		return v.Name
	case *Pickup:
		return v.Resource
	case fmt.Stringer:
		return v.String()
	default:
		return v.ID()
	}
}
