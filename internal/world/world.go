package world

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when placing an entity outside the grid.
var ErrOutOfBounds = errors.New("cell out of bounds")

// View is the read-only world surface used by pathfinding, legality checks
// and action providers.
type View interface {
	TileAt(c Cell) Tile
	InBounds(c Cell) bool
	IsPassable(c Cell) bool
	MovementCost(c Cell) int
	MinMovementCost() int
	EntitiesAt(c Cell) []Entity
}

// Occupancy reports mobile entities (actors) standing on a cell. Actor
// positions are owned elsewhere; the world only asks.
type Occupancy interface {
	EntitiesAt(c Cell) []Entity
}

// World combines a grid, a terrain policy and the static entities placed on
// it. It is not safe for concurrent use.
type World struct {
	grid      *Grid
	policy    *TerrainPolicy
	objects   map[Cell][]Entity
	occupancy Occupancy
}

// New creates a world over grid. A nil policy selects DefaultPolicy.
func New(grid *Grid, policy *TerrainPolicy) *World {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &World{
		grid:    grid,
		policy:  policy,
		objects: make(map[Cell][]Entity),
	}
}

// Grid returns the underlying tile grid.
func (w *World) Grid() *Grid { return w.grid }

// Policy returns the terrain policy.
func (w *World) Policy() *TerrainPolicy { return w.policy }

// SetOccupancy attaches the source of actor positions.
func (w *World) SetOccupancy(o Occupancy) { w.occupancy = o }

// TileAt returns the tile at c, or VoidTile outside the grid.
func (w *World) TileAt(c Cell) Tile {
	return w.grid.TileAt(c)
}

// InBounds reports whether c is on the grid.
func (w *World) InBounds(c Cell) bool {
	return w.grid.InBounds(c)
}

// MovementCost returns the cost of entering c.
func (w *World) MovementCost(c Cell) int {
	return w.policy.Cost(w.grid.TileAt(c))
}

// MinMovementCost returns the cheapest possible step on this world.
func (w *World) MinMovementCost() int {
	return w.policy.MinCost()
}

// IsPassable reports whether c is inside the grid and its tile may be
// entered.
func (w *World) IsPassable(c Cell) bool {
	if !w.grid.InBounds(c) {
		return false
	}
	return w.policy.Passable(w.grid.TileAt(c))
}

// EntitiesAt returns the static entities at c followed by any actors there.
func (w *World) EntitiesAt(c Cell) []Entity {
	var out []Entity
	out = append(out, w.objects[c]...)
	if w.occupancy != nil {
		out = append(out, w.occupancy.EntitiesAt(c)...)
	}
	return out
}

// Place puts a structure or pickup on the map and tags the tile's object
// category.
func (w *World) Place(e Entity) error {
	c := e.Cell()
	if !w.grid.InBounds(c) {
		return fmt.Errorf("place %s %s: %w", e.EntityKind(), c, ErrOutOfBounds)
	}
	w.objects[c] = append(w.objects[c], e)
	w.grid.setObject(c, objectKindOf(e))
	return nil
}

// Remove takes the entity with the given id off the map.
func (w *World) Remove(id string) bool {
	for c, list := range w.objects {
		for i, e := range list {
			if e.ID() != id {
				continue
			}
			list = append(list[:i:i], list[i+1:]...)
			if len(list) == 0 {
				delete(w.objects, c)
				w.grid.setObject(c, ObjectNone)
			} else {
				w.objects[c] = list
				w.grid.setObject(c, objectKindOf(list[len(list)-1]))
			}
			return true
		}
	}
	return false
}

// PickupAt returns the first pickup lying on c.
func (w *World) PickupAt(c Cell) (*Pickup, bool) {
	for _, e := range w.objects[c] {
		if p, ok := e.(*Pickup); ok {
			return p, true
		}
	}
	return nil, false
}

// Collect removes the first pickup at c and returns it.
func (w *World) Collect(c Cell) (*Pickup, bool) {
	p, ok := w.PickupAt(c)
	if !ok {
		return nil, false
	}
	w.Remove(p.ID())
	return p, true
}

// Structures returns every structure on the map in row-major order.
func (w *World) Structures() []*Structure {
	var out []*Structure
	w.eachObject(func(e Entity) {
		if s, ok := e.(*Structure); ok {
			out = append(out, s)
		}
	})
	return out
}

// Pickups returns every pickup on the map in row-major order.
func (w *World) Pickups() []*Pickup {
	var out []*Pickup
	w.eachObject(func(e Entity) {
		if p, ok := e.(*Pickup); ok {
			out = append(out, p)
		}
	})
	return out
}

func (w *World) eachObject(fn func(Entity)) {
	w.grid.Each(func(c Cell, _ Tile) {
		for _, e := range w.objects[c] {
			fn(e)
		}
	})
}

func objectKindOf(e Entity) ObjectKind {
	switch v := e.(type) {
	case *Structure:
		return v.Kind
	case *Pickup:
		return ObjectResource
	default:
		return ObjectNone
	}
}
