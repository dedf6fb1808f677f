package gamedata

// HeroDef defines a hero template loaded from JSON.
type HeroDef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`   // single character for rendering
	Movement int    `json:"movement"` // daily movement allowance
}

// HeroesFile represents the structure of heroes.json.
type HeroesFile struct {
	Heroes []HeroDef `json:"heroes"`
}

// LoadHeroes loads hero templates from the embedded heroes.json file.
func LoadHeroes() ([]HeroDef, error) {
	file, err := Load[HeroesFile]("heroes.json")
	if err != nil {
		return nil, err
	}
	return file.Heroes, nil
}

// ResourceDef defines a kind of collectible pile.
type ResourceDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Color       string `json:"color"`
	MinAmount   int    `json:"minAmount"`
	MaxAmount   int    `json:"maxAmount"`
	SpawnWeight int    `json:"spawnWeight"` // relative frequency of weekly spawns
}

// GlyphRune returns the glyph as a rune for rendering.
func (r *ResourceDef) GlyphRune() rune {
	return glyphRune(r.Glyph, '$')
}

// ResourcesFile represents the structure of resources.json.
type ResourcesFile struct {
	Resources []ResourceDef `json:"resources"`
}

// LoadResources loads resource kinds from the embedded resources.json file.
func LoadResources() ([]ResourceDef, error) {
	file, err := Load[ResourcesFile]("resources.json")
	if err != nil {
		return nil, err
	}
	return file.Resources, nil
}
