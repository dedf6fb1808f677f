package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wayfarer/internal/world"
)

// GroundDef is one row of the ground table in terrain.json.
type GroundDef struct {
	Name     string `json:"name"`     // matches world.Ground.String()
	Cost     int    `json:"cost"`     // base movement cost
	Passable bool   `json:"passable"` // false blocks movement outright
	Glyph    string `json:"glyph"`
	Color    string `json:"color"`
}

// SurfaceDef is one row of the surface table in terrain.json.
type SurfaceDef struct {
	Name     string `json:"name"`     // matches world.Surface.String()
	Modifier int    `json:"modifier"` // added to the ground cost
	Passable bool   `json:"passable"`
	Glyph    string `json:"glyph"` // empty keeps the ground glyph
	Color    string `json:"color"`
}

// TerrainFile represents the structure of terrain.json.
type TerrainFile struct {
	Grounds  []GroundDef  `json:"grounds"`
	Surfaces []SurfaceDef `json:"surfaces"`
}

// LoadTerrain loads the terrain table from the embedded terrain.json file.
func LoadTerrain() (*TerrainFile, error) {
	file, err := Load[TerrainFile]("terrain.json")
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Policy converts the table into a world.TerrainPolicy. Unknown names are
// an error so typos in the data do not silently make terrain impassable.
func (f *TerrainFile) Policy() (*world.TerrainPolicy, error) {
	p := world.NewTerrainPolicy()
	for _, g := range f.Grounds {
		kind, ok := world.ParseGround(g.Name)
		if !ok {
			return nil, fmt.Errorf("terrain.json: unknown ground %q", g.Name)
		}
		p.SetGround(kind, world.GroundRule{Cost: g.Cost, Passable: g.Passable})
	}
	for _, s := range f.Surfaces {
		kind, ok := world.ParseSurface(s.Name)
		if !ok {
			return nil, fmt.Errorf("terrain.json: unknown surface %q", s.Name)
		}
		p.SetSurface(kind, world.SurfaceRule{Modifier: s.Modifier, Passable: s.Passable})
	}
	return p, nil
}

// Glyph is a display character with its colour.
type Glyph struct {
	Rune  rune
	Color tcell.Color
}

// Palette maps terrain to glyphs for the terminal renderer.
type Palette struct {
	Grounds  map[world.Ground]Glyph
	Surfaces map[world.Surface]Glyph
}

// Palette builds the display glyphs. Entries with a bad colour fall back to
// white.
func (f *TerrainFile) Palette() *Palette {
	p := &Palette{
		Grounds:  make(map[world.Ground]Glyph),
		Surfaces: make(map[world.Surface]Glyph),
	}
	for _, g := range f.Grounds {
		if kind, ok := world.ParseGround(g.Name); ok {
			p.Grounds[kind] = Glyph{Rune: glyphRune(g.Glyph, ' '), Color: colorOr(g.Color, tcell.ColorWhite)}
		}
	}
	for _, s := range f.Surfaces {
		kind, ok := world.ParseSurface(s.Name)
		if !ok || s.Glyph == "" {
			continue
		}
		p.Surfaces[kind] = Glyph{Rune: glyphRune(s.Glyph, ' '), Color: colorOr(s.Color, tcell.ColorWhite)}
	}
	return p
}

// TileGlyph returns the surface glyph when one is defined, else the ground
// glyph.
func (p *Palette) TileGlyph(t world.Tile) Glyph {
	if g, ok := p.Surfaces[t.Surface]; ok {
		return g
	}
	if g, ok := p.Grounds[t.Ground]; ok {
		return g
	}
	return Glyph{Rune: ' ', Color: tcell.ColorDefault}
}

func glyphRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}

func colorOr(hex string, fallback tcell.Color) tcell.Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return c
}
