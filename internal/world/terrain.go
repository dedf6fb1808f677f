package world

// ImpassableCost is reported for tiles whose ground type is unknown to the
// policy.
const ImpassableCost = 999

// GroundRule is the base movement rule for a ground type.
type GroundRule struct {
	Cost     int
	Passable bool
}

// SurfaceRule adjusts the ground rule for a surface feature.
type SurfaceRule struct {
	Modifier int
	Passable bool
}

// TerrainPolicy maps (ground, surface) pairs to a movement cost and a
// passability flag. A tile is passable only if both its ground and its
// surface are.
type TerrainPolicy struct {
	grounds  map[Ground]GroundRule
	surfaces map[Surface]SurfaceRule
}

// NewTerrainPolicy creates an empty policy. Every tile is impassable until
// ground rules are added.
func NewTerrainPolicy() *TerrainPolicy {
	return &TerrainPolicy{
		grounds:  make(map[Ground]GroundRule),
		surfaces: make(map[Surface]SurfaceRule),
	}
}

// DefaultPolicy returns the built-in movement table.
func DefaultPolicy() *TerrainPolicy {
	p := NewTerrainPolicy()
	p.SetGround(GroundLand, GroundRule{Cost: 2, Passable: true})
	p.SetGround(GroundWater, GroundRule{Cost: 4, Passable: false})
	p.SetGround(GroundDeepWater, GroundRule{Cost: 8, Passable: false})
	p.SetGround(GroundVoid, GroundRule{Cost: ImpassableCost, Passable: false})

	p.SetSurface(SurfaceNone, SurfaceRule{Modifier: 0, Passable: true})
	p.SetSurface(SurfaceRoad, SurfaceRule{Modifier: -1, Passable: true})
	p.SetSurface(SurfaceForest, SurfaceRule{Modifier: 1, Passable: true})
	p.SetSurface(SurfaceMountain, SurfaceRule{Modifier: 0, Passable: false})
	p.SetSurface(SurfaceHill, SurfaceRule{Modifier: 1, Passable: true})
	p.SetSurface(SurfaceSwamp, SurfaceRule{Modifier: 2, Passable: true})
	p.SetSurface(SurfaceSand, SurfaceRule{Modifier: 1, Passable: true})
	p.SetSurface(SurfaceSnow, SurfaceRule{Modifier: 1, Passable: true})
	p.SetSurface(SurfaceLava, SurfaceRule{Modifier: 0, Passable: false})
	return p
}

// SetGround registers the rule for a ground type.
func (p *TerrainPolicy) SetGround(g Ground, r GroundRule) {
	p.grounds[g] = r
}

// SetSurface registers the rule for a surface type.
func (p *TerrainPolicy) SetSurface(s Surface, r SurfaceRule) {
	p.surfaces[s] = r
}

// Passable reports whether units may enter the tile.
func (p *TerrainPolicy) Passable(t Tile) bool {
	g, ok := p.grounds[t.Ground]
	if !ok || !g.Passable {
		return false
	}
	s, ok := p.surfaces[t.Surface]
	if !ok {
		return true
	}
	return s.Passable
}

// Cost returns the movement cost of entering the tile. The result is never
// negative.
func (p *TerrainPolicy) Cost(t Tile) int {
	g, ok := p.grounds[t.Ground]
	if !ok {
		return ImpassableCost
	}
	cost := g.Cost + p.surfaces[t.Surface].Modifier
	if cost < 0 {
		return 0
	}
	return cost
}

// MinCost returns the lowest cost of any passable (ground, surface) pair.
// Surfaces without a rule cost the bare ground, so that cost always counts.
// Pathfinding scales its distance estimate by this value.
func (p *TerrainPolicy) MinCost() int {
	best := -1
	for gk, g := range p.grounds {
		if !g.Passable {
			continue
		}
		if c := max(g.Cost, 0); best < 0 || c < best {
			best = c
		}
		consider := func(s Surface) {
			t := Tile{Ground: gk, Surface: s}
			if !p.Passable(t) {
				return
			}
			if c := p.Cost(t); best < 0 || c < best {
				best = c
			}
		}
		consider(SurfaceNone)
		for sk := range p.surfaces {
			consider(sk)
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
