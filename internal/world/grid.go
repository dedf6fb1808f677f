package world

// Grid is a dense rectangular tile map. Cells are addressed in external
// coordinates; origin is the external coordinate of the top-left tile.
type Grid struct {
	width, height int
	origin        Cell
	tiles         []Tile
}

// NewGrid creates a grid of plain land tiles.
func NewGrid(width, height int, origin Cell) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	tiles := make([]Tile, width*height)
	return &Grid{
		width:  width,
		height: height,
		origin: origin,
		tiles:  tiles,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Origin returns the external coordinate of the top-left tile.
func (g *Grid) Origin() Cell { return g.origin }

func (g *Grid) index(c Cell) (int, bool) {
	local := c.Sub(g.origin)
	if local.X < 0 || local.X >= g.width || local.Y < 0 || local.Y >= g.height {
		return 0, false
	}
	return local.Y*g.width + local.X, true
}

// InBounds reports whether c addresses a tile of the grid.
func (g *Grid) InBounds(c Cell) bool {
	_, ok := g.index(c)
	return ok
}

// TileAt returns the tile at c, or VoidTile when c is outside the grid.
func (g *Grid) TileAt(c Cell) Tile {
	i, ok := g.index(c)
	if !ok {
		return VoidTile
	}
	return g.tiles[i]
}

// SetTile replaces the tile at c. It returns false when c is out of bounds.
func (g *Grid) SetTile(c Cell, t Tile) bool {
	i, ok := g.index(c)
	if !ok {
		return false
	}
	g.tiles[i] = t
	return true
}

// setObject changes only the object category of the tile at c.
func (g *Grid) setObject(c Cell, kind ObjectKind) {
	if i, ok := g.index(c); ok {
		g.tiles[i].Object = kind
	}
}

// Fill sets every tile to t.
func (g *Grid) Fill(t Tile) {
	for i := range g.tiles {
		g.tiles[i] = t
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(c Cell, t Tile)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(Cell{X: x + g.origin.X, Y: y + g.origin.Y}, g.tiles[y*g.width+x])
		}
	}
}
