// Package pathfind finds cheapest routes over a tile grid with 4-way
// movement.
package pathfind

import (
	"slices"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/wayfarer/internal/world"
)

// Terrain is the part of the world the pathfinder reads. Implementations
// that also report MinMovementCost() get a tighter distance estimate.
type Terrain interface {
	InBounds(c world.Cell) bool
	IsPassable(c world.Cell) bool
	MovementCost(c world.Cell) int
}

type minCoster interface {
	MinMovementCost() int
}

// Pathfinder answers path and reachability queries. It holds no state
// between calls.
type Pathfinder struct {
	terrain Terrain
	unit    int
}

// New creates a pathfinder over t.
func New(t Terrain) *Pathfinder {
	unit := 1
	if mc, ok := t.(minCoster); ok {
		unit = mc.MinMovementCost()
	}
	return &Pathfinder{terrain: t, unit: unit}
}

// node is an open-set entry. seq is the insertion order, used to break ties
// between equal f scores first-in first-out.
type node struct {
	cell world.Cell
	f, g int
	seq  uint64
}

func lessNode(a, b node) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

func (p *Pathfinder) enterable(c world.Cell) bool {
	return p.terrain.InBounds(c) && p.terrain.IsPassable(c)
}

func (p *Pathfinder) estimate(from, to world.Cell) int {
	return from.Manhattan(to) * p.unit
}

// FindPath returns the cheapest path from start to goal, excluding start
// and including goal. A path from a cell to itself is empty. The second
// result is false when goal cannot be reached.
func (p *Pathfinder) FindPath(start, goal world.Cell) ([]world.Cell, bool) {
	if start == goal {
		return []world.Cell{}, true
	}
	if !p.enterable(goal) {
		return nil, false
	}

	var seq uint64
	open := heap.New[node](lessNode)
	open.Push(node{cell: start, f: p.estimate(start, goal)})

	gScore := map[world.Cell]int{start: 0}
	cameFrom := make(map[world.Cell]world.Cell)
	closed := mapset.New[world.Cell]()

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed.Has(cur.cell) {
			continue
		}
		if cur.cell == goal {
			return reconstruct(cameFrom, start, goal), true
		}
		closed.Put(cur.cell)

		for _, next := range cur.cell.Neighbors() {
			if closed.Has(next) || !p.enterable(next) {
				continue
			}
			g := cur.g + p.terrain.MovementCost(next)
			if old, seen := gScore[next]; seen && g >= old {
				continue
			}
			gScore[next] = g
			cameFrom[next] = cur.cell
			seq++
			open.Push(node{cell: next, f: g + p.estimate(next, goal), g: g, seq: seq})
		}
	}
	return nil, false
}

func reconstruct(cameFrom map[world.Cell]world.Cell, start, goal world.Cell) []world.Cell {
	var path []world.Cell
	for c := goal; c != start; c = cameFrom[c] {
		path = append(path, c)
	}
	slices.Reverse(path)
	return path
}

// ReachableArea returns the minimal cost of every cell reachable from start
// for at most maxCost. The start cell is included at cost 0. A negative
// budget reaches nothing.
func (p *Pathfinder) ReachableArea(start world.Cell, maxCost int) map[world.Cell]int {
	area := make(map[world.Cell]int)
	if maxCost < 0 {
		return area
	}

	var seq uint64
	open := heap.New[node](lessNode)
	open.Push(node{cell: start})
	best := map[world.Cell]int{start: 0}
	settled := mapset.New[world.Cell]()

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if settled.Has(cur.cell) {
			continue
		}
		settled.Put(cur.cell)
		area[cur.cell] = cur.g

		for _, next := range cur.cell.Neighbors() {
			if settled.Has(next) || !p.enterable(next) {
				continue
			}
			g := cur.g + p.terrain.MovementCost(next)
			if g > maxCost {
				continue
			}
			if old, seen := best[next]; seen && g >= old {
				continue
			}
			best[next] = g
			seq++
			open.Push(node{cell: next, f: g, g: g, seq: seq})
		}
	}
	return area
}

// PathCost sums the cost of entering each cell of path.
func PathCost(t Terrain, path []world.Cell) int {
	total := 0
	for _, c := range path {
		total += t.MovementCost(c)
	}
	return total
}

// Affordable returns the longest prefix of path whose cost fits in budget.
func Affordable(t Terrain, path []world.Cell, budget int) []world.Cell {
	spent := 0
	for i, c := range path {
		spent += t.MovementCost(c)
		if spent > budget {
			return path[:i]
		}
	}
	return path
}
