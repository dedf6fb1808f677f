package world

// Ground is the base layer of a tile.
type Ground int

const (
	GroundLand Ground = iota
	GroundWater
	GroundDeepWater
	GroundVoid
)

// String returns a human-readable name for the ground type.
func (g Ground) String() string {
	switch g {
	case GroundLand:
		return "land"
	case GroundWater:
		return "water"
	case GroundDeepWater:
		return "deep_water"
	case GroundVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Surface is the feature layered on top of the ground.
type Surface int

const (
	SurfaceNone Surface = iota
	SurfaceRoad
	SurfaceForest
	SurfaceMountain
	SurfaceHill
	SurfaceSwamp
	SurfaceSand
	SurfaceSnow
	SurfaceLava
)

// String returns a human-readable name for the surface type.
func (s Surface) String() string {
	switch s {
	case SurfaceNone:
		return "none"
	case SurfaceRoad:
		return "road"
	case SurfaceForest:
		return "forest"
	case SurfaceMountain:
		return "mountain"
	case SurfaceHill:
		return "hill"
	case SurfaceSwamp:
		return "swamp"
	case SurfaceSand:
		return "sand"
	case SurfaceSnow:
		return "snow"
	case SurfaceLava:
		return "lava"
	default:
		return "unknown"
	}
}

// Biome tags a tile with a regional flavour. It has no effect on movement.
type Biome int

const (
	BiomeNeutral Biome = iota
	BiomeArabian
	BiomeEgyptian
	BiomeIndian
	BiomeGreek
	BiomeChinese
	BiomeMongolian
	BiomeIslander
)

// ObjectKind is the category of object occupying a tile, if any.
type ObjectKind int

const (
	ObjectNone ObjectKind = iota
	ObjectTown
	ObjectMine
	ObjectArtifact
	ObjectMonster
	ObjectResource
	ObjectPortal
	ObjectShrine
)

// Tile is an immutable description of one grid cell.
type Tile struct {
	Ground  Ground
	Surface Surface
	Biome   Biome
	Object  ObjectKind
}

// VoidTile is returned for every cell outside the grid.
var VoidTile = Tile{Ground: GroundVoid}

// IsVoid reports whether the tile is off-map or unusable ground.
func (t Tile) IsVoid() bool {
	return t.Ground == GroundVoid
}

// ParseGround looks a ground type up by its String name.
func ParseGround(name string) (Ground, bool) {
	for g := GroundLand; g <= GroundVoid; g++ {
		if g.String() == name {
			return g, true
		}
	}
	return 0, false
}

// ParseSurface looks a surface type up by its String name.
func ParseSurface(name string) (Surface, bool) {
	for s := SurfaceNone; s <= SurfaceLava; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
