package world

// Room is a rectangular open area produced by the map generator.
type Room struct {
	X, Y          int // top-left corner, grid-local
	Width, Height int
}

// Center returns the centre cell of the room.
func (r Room) Center() Cell {
	return Cell{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether c lies inside the room.
func (r Room) Contains(c Cell) bool {
	return c.X >= r.X && c.X < r.X+r.Width && c.Y >= r.Y && c.Y < r.Y+r.Height
}

// Intersects reports whether two rooms overlap.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
