package gamedata

import (
	"errors"
	"math/rand"
)

// HeroRegistry indexes hero templates by id.
type HeroRegistry struct {
	heroes map[string]*HeroDef
	all    []HeroDef
}

// NewHeroRegistry creates a registry from loaded hero templates.
func NewHeroRegistry(heroes []HeroDef) *HeroRegistry {
	registry := &HeroRegistry{
		heroes: make(map[string]*HeroDef),
		all:    heroes,
	}
	for i := range heroes {
		registry.heroes[heroes[i].ID] = &heroes[i]
	}
	return registry
}

// LoadHeroRegistry loads and creates a registry from the embedded heroes.json.
func LoadHeroRegistry() (*HeroRegistry, error) {
	heroes, err := LoadHeroes()
	if err != nil {
		return nil, err
	}
	if len(heroes) == 0 {
		return nil, errors.New("no heroes loaded from heroes.json")
	}
	return NewHeroRegistry(heroes), nil
}

// GetByID returns the hero template with the given ID, or nil if not found.
func (r *HeroRegistry) GetByID(id string) *HeroDef {
	return r.heroes[id]
}

// Count returns the number of hero templates.
func (r *HeroRegistry) Count() int {
	return len(r.all)
}

// ResourceRegistry holds resource kinds and picks weekly spawns.
type ResourceRegistry struct {
	resources   []ResourceDef
	totalWeight int
}

// NewResourceRegistry creates a registry from loaded resource kinds.
func NewResourceRegistry(resources []ResourceDef) *ResourceRegistry {
	totalWeight := 0
	for _, r := range resources {
		totalWeight += r.SpawnWeight
	}
	return &ResourceRegistry{
		resources:   resources,
		totalWeight: totalWeight,
	}
}

// LoadResourceRegistry loads and creates a registry from the embedded
// resources.json.
func LoadResourceRegistry() (*ResourceRegistry, error) {
	resources, err := LoadResources()
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, errors.New("no resources loaded from resources.json")
	}
	return NewResourceRegistry(resources), nil
}

// SpawnRandom selects a resource kind by weight and rolls an amount for it.
func (r *ResourceRegistry) SpawnRandom(rng *rand.Rand) (*ResourceDef, int) {
	if r.totalWeight <= 0 || len(r.resources) == 0 {
		return nil, 0
	}

	roll := rng.Intn(r.totalWeight)
	def := &r.resources[0]
	cumulative := 0
	for i := range r.resources {
		cumulative += r.resources[i].SpawnWeight
		if roll < cumulative {
			def = &r.resources[i]
			break
		}
	}

	amount := def.MinAmount
	if def.MaxAmount > def.MinAmount {
		amount += rng.Intn(def.MaxAmount - def.MinAmount + 1)
	}
	return def, amount
}

// GetByID returns the resource kind with the given ID, or nil if not found.
func (r *ResourceRegistry) GetByID(id string) *ResourceDef {
	for i := range r.resources {
		if r.resources[i].ID == id {
			return &r.resources[i]
		}
	}
	return nil
}

// Count returns the number of resource kinds.
func (r *ResourceRegistry) Count() int {
	return len(r.resources)
}
