// Package world holds the grid model: tiles, terrain costs, and the entities
// placed on the map.
package world

import "fmt"

// Cell is a grid coordinate in external (origin-adjusted) space.
type Cell struct {
	X, Y int
}

// neighbourOffsets lists the four orthogonal steps in search order.
var neighbourOffsets = [4]Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Add returns c translated by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns c translated by -d.
func (c Cell) Sub(d Cell) Cell {
	return Cell{X: c.X - d.X, Y: c.Y - d.Y}
}

// Manhattan returns the taxicab distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Neighbors returns the four orthogonal neighbours: east, west, south, north.
func (c Cell) Neighbors() [4]Cell {
	var out [4]Cell
	for i, d := range neighbourOffsets {
		out[i] = c.Add(d)
	}
	return out
}

// Adjacent reports whether o is one orthogonal step from c.
func (c Cell) Adjacent(o Cell) bool {
	return c.Manhattan(o) == 1
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
