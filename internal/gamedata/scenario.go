package gamedata

import "fmt"

// Controller names accepted in scenario owner entries.
const (
	ControllerHuman = "human"
	ControllerAI    = "ai"
)

// OwnerDef declares one side of a scenario.
type OwnerDef struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Controller string `json:"controller"` // "human" or "ai"
	Color      string `json:"color"`
}

// HeroPlacement puts a hero template into a generated room.
type HeroPlacement struct {
	Hero  string `json:"hero"` // HeroDef.ID
	Owner int    `json:"owner"`
	Room  int    `json:"room"`
}

// StructurePlacement puts a town-like structure into a room. Yield is what
// the structure produces for its owner at the end of every day.
type StructurePlacement struct {
	Name  string         `json:"name"`
	Owner *int           `json:"owner,omitempty"` // nil leaves it unowned
	Room  int            `json:"room"`
	Yield map[string]int `json:"yield,omitempty"` // ResourceDef.ID -> amount
}

// PickupPlacement puts a resource pile into a room.
type PickupPlacement struct {
	Resource string `json:"resource"` // ResourceDef.ID
	Amount   int    `json:"amount"`
	Room     int    `json:"room"`
}

// ScenarioDef describes a starting map. Room indexes refer to the
// generator's rooms; negative values count from the last room and all
// indexes wrap when the map has fewer rooms.
type ScenarioDef struct {
	Name       string               `json:"name"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Owners     []OwnerDef           `json:"owners"`
	Heroes     []HeroPlacement      `json:"heroes"`
	Structures []StructurePlacement `json:"structures"`
	Pickups    []PickupPlacement    `json:"pickups"`
}

// LoadScenario loads a scenario by file name, e.g. "scenario.json".
func LoadScenario(filename string) (*ScenarioDef, error) {
	def, err := Load[ScenarioDef](filename)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &def, nil
}

// Validate checks owner references, controllers and structure yields.
func (s *ScenarioDef) Validate() error {
	owners := make(map[int]bool, len(s.Owners))
	for _, o := range s.Owners {
		if o.Controller != ControllerHuman && o.Controller != ControllerAI {
			return fmt.Errorf("owner %d: unknown controller %q", o.ID, o.Controller)
		}
		if owners[o.ID] {
			return fmt.Errorf("owner %d declared twice", o.ID)
		}
		owners[o.ID] = true
	}
	for _, h := range s.Heroes {
		if !owners[h.Owner] {
			return fmt.Errorf("hero %q: unknown owner %d", h.Hero, h.Owner)
		}
	}
	for _, st := range s.Structures {
		if st.Owner != nil && !owners[*st.Owner] {
			return fmt.Errorf("structure %q: unknown owner %d", st.Name, *st.Owner)
		}
		for res, n := range st.Yield {
			if n < 0 {
				return fmt.Errorf("structure %q: negative %s yield %d", st.Name, res, n)
			}
		}
	}
	return nil
}
