package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/gamedata"
	"github.com/samdwyer/wayfarer/internal/world"
)

const (
	structureRune = 'Π'
	pickupRune    = '$'
	pathRune      = '·'
)

var (
	reachBackground = tcell.NewRGBColor(20, 48, 20)
	ownerColors     = []tcell.Color{tcell.ColorYellow, tcell.ColorRed, tcell.ColorAqua, tcell.ColorFuchsia}
)

// Frame is everything one redraw shows.
type Frame struct {
	World    *world.World
	Actors   []*entity.Actor
	Current  *entity.Actor
	Reach    map[world.Cell]int
	Path     []world.Cell
	Status   string
	Messages []string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
	owners  map[int]tcell.Color
}

// NewRenderer creates a renderer drawing terrain with palette.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette, owners: make(map[int]tcell.Color)}
}

// SetOwnerColor overrides the colour used for an owner's actors.
func (r *Renderer) SetOwnerColor(owner int, c tcell.Color) {
	r.owners[owner] = c
}

// ScreenCell converts terminal coordinates to a map cell.
func (r *Renderer) ScreenCell(w *world.World, x, y int) (world.Cell, bool) {
	c := w.Grid().Origin().Add(world.Cell{X: x, Y: y})
	return c, w.InBounds(c)
}

// Render draws the map, reachable area, planned path, actors and the text
// lines below the map.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	origin := f.World.Grid().Origin()
	at := func(c world.Cell) (int, int) {
		d := c.Sub(origin)
		return d.X, d.Y
	}

	f.World.Grid().Each(func(c world.Cell, t world.Tile) {
		g := r.palette.TileGlyph(t)
		style := tcell.StyleDefault.Foreground(g.Color)
		if _, ok := f.Reach[c]; ok {
			style = style.Background(reachBackground)
		}
		x, y := at(c)
		r.screen.SetContent(x, y, g.Rune, style)
	})

	for _, c := range f.Path {
		x, y := at(c)
		r.screen.SetContent(x, y, pathRune, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(reachBackground))
	}
	for _, s := range f.World.Structures() {
		x, y := at(s.Cell())
		r.screen.SetContent(x, y, structureRune, tcell.StyleDefault.Foreground(r.ownerColor(s.OwnerID(), tcell.ColorWhite)).Bold(true))
	}
	for _, p := range f.World.Pickups() {
		x, y := at(p.Cell())
		r.screen.SetContent(x, y, pickupRune, tcell.StyleDefault.Foreground(tcell.ColorGold))
	}
	for _, a := range f.Actors {
		style := tcell.StyleDefault.Foreground(r.ownerColor(a.OwnerID(), tcell.ColorYellow)).Bold(true)
		if a == f.Current {
			style = style.Reverse(true)
		}
		x, y := at(a.Position())
		r.screen.SetContent(x, y, a.Symbol, style)
	}

	row := f.World.Grid().Height() + 1
	r.RenderMessage(f.Status, row)
	for i, msg := range f.Messages {
		r.RenderMessage(msg, row+1+i)
	}
	r.screen.Show()
}

func (r *Renderer) ownerColor(owner int, fallback tcell.Color) tcell.Color {
	if c, ok := r.owners[owner]; ok {
		return c
	}
	if owner >= 0 && owner < len(ownerColors) {
		return ownerColors[owner]
	}
	return fallback
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

// StatusLine summarises the acting actor for the line under the map.
func StatusLine(day, week int, current *entity.Actor, state string) string {
	if current == nil {
		return fmt.Sprintf("Day %d (week %d)  %s", day, week, state)
	}
	return fmt.Sprintf("Day %d (week %d)  %s  %s %d/%d MP", day, week, state,
		current.Name, current.MovementPoints(), current.MaxMovementPoints())
}
