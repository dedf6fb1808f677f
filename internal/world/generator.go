package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wayfarer/internal/telemetry"
)

const (
	// Default map dimensions
	DefaultWidth  = 64
	DefaultHeight = 22

	// BSP parameters
	minRoomSize = 5
	maxRoomSize = 12
	minLeafSize = 8
)

// roomSurfaces are the ground covers a generated clearing may get.
var roomSurfaces = []Surface{
	SurfaceNone, SurfaceNone, SurfaceForest, SurfaceHill, SurfaceSand, SurfaceSnow, SurfaceSwamp,
}

// Generator carves an overworld out of impassable highlands using binary
// space partitioning: leaves become clearings, siblings are joined by roads.
type Generator struct {
	width, height int
	rng           *rand.Rand
	grid          *Grid
	rooms         []Room
}

// NewGenerator creates a generator. The same rng seed always yields the same
// map.
func NewGenerator(width, height int, rng *rand.Rand) *Generator {
	return &Generator{
		width:  width,
		height: height,
		rng:    rng,
	}
}

// Generate builds a new grid with its origin at (0,0) and returns it along
// with the clearings it contains.
func (g *Generator) Generate(ctx context.Context) (*Grid, []Room) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.generate")
	defer span.End()

	startTime := time.Now()

	g.grid = NewGrid(g.width, g.height, Cell{})
	g.grid.Fill(Tile{Ground: GroundLand, Surface: SurfaceMountain})
	g.rooms = g.rooms[:0]

	root := &bspNode{x: 1, y: 1, width: g.width - 2, height: g.height - 2}
	g.splitNode(root)
	g.createRooms(root)
	g.connectRooms(root)
	g.flood()

	span.SetAttributes(
		attribute.Int("map.width", g.width),
		attribute.Int("map.height", g.height),
		attribute.Int("map.room_count", len(g.rooms)),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)

	rooms := make([]Room, len(g.rooms))
	copy(rooms, g.rooms)
	return g.grid, rooms
}

// RandomCellInRoom returns a random passable cell within room, falling back
// to its centre.
func (g *Generator) RandomCellInRoom(w *World, room Room) Cell {
	for i := 0; i < 100; i++ {
		c := Cell{X: room.X + g.rng.Intn(room.Width), Y: room.Y + g.rng.Intn(room.Height)}
		if w.IsPassable(c) && len(w.EntitiesAt(c)) == 0 {
			return c
		}
	}
	return room.Center()
}

type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

func (g *Generator) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	switch {
	case node.width > node.height && node.width >= minLeafSize*2:
		splitHorizontally = false
	case node.height >= minLeafSize*2:
		splitHorizontally = true
	case node.width >= minLeafSize*2:
		splitHorizontally = false
	default:
		return
	}

	span := node.width
	if splitHorizontally {
		span = node.height
	}
	lo, hi := minLeafSize, span-minLeafSize
	if hi <= lo {
		return
	}
	at := lo + g.rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: at}
		node.right = &bspNode{x: node.x, y: node.y + at, width: node.width, height: node.height - at}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: at, height: node.height}
		node.right = &bspNode{x: node.x + at, y: node.y, width: node.width - at, height: node.height}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

func (g *Generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	w := min(maxRoomSize, node.width-2)
	h := min(maxRoomSize, node.height-2)
	if w < minRoomSize || h < minRoomSize {
		return
	}
	w = minRoomSize + g.rng.Intn(w-minRoomSize+1)
	h = minRoomSize + g.rng.Intn(h-minRoomSize+1)

	room := Room{
		X:      node.x + 1 + g.rng.Intn(node.width-w-1),
		Y:      node.y + 1 + g.rng.Intn(node.height-h-1),
		Width:  w,
		Height: h,
	}
	node.room = &room
	g.rooms = append(g.rooms, room)
	g.carveRoom(room)
}

func (g *Generator) carveRoom(room Room) {
	cover := roomSurfaces[g.rng.Intn(len(roomSurfaces))]
	biome := Biome(g.rng.Intn(int(BiomeIslander) + 1))
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			s := cover
			if g.rng.Intn(4) == 0 {
				s = SurfaceNone
			}
			g.setInterior(Cell{X: x, Y: y}, Tile{Ground: GroundLand, Surface: s, Biome: biome})
		}
	}
}

func (g *Generator) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}
	g.connectRooms(node.left)
	g.connectRooms(node.right)

	a, b := g.anyRoom(node.left), g.anyRoom(node.right)
	if a != nil && b != nil {
		g.carveRoad(a.Center(), b.Center())
	}
}

func (g *Generator) anyRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if r := g.anyRoom(node.left); r != nil {
		return r
	}
	return g.anyRoom(node.right)
}

// carveRoad lays an L-shaped road between two cells.
func (g *Generator) carveRoad(from, to Cell) {
	corner := Cell{X: to.X, Y: from.Y}
	if g.rng.Intn(2) == 0 {
		corner = Cell{X: from.X, Y: to.Y}
	}
	g.carveLine(from, corner)
	g.carveLine(corner, to)
}

func (g *Generator) carveLine(a, b Cell) {
	step := Cell{X: sign(b.X - a.X), Y: sign(b.Y - a.Y)}
	for c := a; ; c = c.Add(step) {
		g.setInterior(c, Tile{Ground: GroundLand, Surface: SurfaceRoad})
		if c == b {
			return
		}
	}
}

// flood turns a share of the remaining highland into lakes.
func (g *Generator) flood() {
	g.grid.Each(func(c Cell, t Tile) {
		if t.Surface != SurfaceMountain || g.rng.Intn(5) != 0 {
			return
		}
		ground := GroundWater
		if g.rng.Intn(3) == 0 {
			ground = GroundDeepWater
		}
		g.grid.SetTile(c, Tile{Ground: ground})
	})
}

func (g *Generator) setInterior(c Cell, t Tile) {
	if c.X > 0 && c.X < g.width-1 && c.Y > 0 && c.Y < g.height-1 {
		g.grid.SetTile(c, t)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
