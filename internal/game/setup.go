package game

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/gamedata"
	"github.com/samdwyer/wayfarer/internal/session"
	"github.com/samdwyer/wayfarer/internal/world"
)

var ErrNoRooms = errors.New("generated map has no rooms")

// tables is the static data a game is built from.
type tables struct {
	terrain   *gamedata.TerrainFile
	policy    *world.TerrainPolicy
	scenario  *gamedata.ScenarioDef
	heroes    *gamedata.HeroRegistry
	resources *gamedata.ResourceRegistry
}

func loadTables(scenario string) (*tables, error) {
	terrain, err := gamedata.LoadTerrain()
	if err != nil {
		return nil, err
	}
	policy, err := terrain.Policy()
	if err != nil {
		return nil, err
	}
	def, err := gamedata.LoadScenario(scenario)
	if err != nil {
		return nil, err
	}
	heroes, err := gamedata.LoadHeroRegistry()
	if err != nil {
		return nil, err
	}
	resources, err := gamedata.LoadResourceRegistry()
	if err != nil {
		return nil, err
	}
	return &tables{terrain: terrain, policy: policy, scenario: def, heroes: heroes, resources: resources}, nil
}

// buildMap generates the overworld and places the scenario's owners,
// heroes, structures and pickups on it.
func (g *Game) buildMap(ctx context.Context, t *tables) error {
	ctx, span := g.tracer.Start(ctx, "game.build_map")
	defer span.End()

	width, height := t.scenario.Width, t.scenario.Height
	if g.cfg.Width > 0 {
		width = g.cfg.Width
	}
	if g.cfg.Height > 0 {
		height = g.cfg.Height
	}
	if width <= 0 || height <= 0 {
		width, height = world.DefaultWidth, world.DefaultHeight
	}

	g.gen = world.NewGenerator(width, height, g.rng)
	grid, rooms := g.gen.Generate(ctx)
	if len(rooms) == 0 {
		return ErrNoRooms
	}
	g.rooms = rooms
	g.world = world.New(grid, t.policy)
	g.session = session.New()
	g.world.SetOccupancy(g.session)

	for _, o := range t.scenario.Owners {
		owner := session.Owner{ID: o.ID, Name: o.Name, Human: o.Controller == gamedata.ControllerHuman, Color: o.Color}
		if err := g.session.AddOwner(owner); err != nil {
			return err
		}
	}
	for _, h := range t.scenario.Heroes {
		def := t.heroes.GetByID(h.Hero)
		if def == nil {
			return fmt.Errorf("scenario %q: unknown hero %q", t.scenario.Name, h.Hero)
		}
		pos := g.gen.RandomCellInRoom(g.world, g.room(h.Room))
		if err := g.session.AddActor(entity.NewActorFromDef(def, h.Owner, pos)); err != nil {
			return err
		}
	}
	for _, s := range t.scenario.Structures {
		st := world.NewStructure(s.Name, g.room(s.Room).Center())
		for res := range s.Yield {
			if t.resources.GetByID(res) == nil {
				return fmt.Errorf("scenario %q: structure %q yields unknown resource %q", t.scenario.Name, s.Name, res)
			}
		}
		st.Yield = s.Yield
		if s.Owner != nil {
			st.SetOwner(*s.Owner)
		}
		if err := g.world.Place(st); err != nil {
			return err
		}
	}
	for _, p := range t.scenario.Pickups {
		if t.resources.GetByID(p.Resource) == nil {
			return fmt.Errorf("scenario %q: unknown resource %q", t.scenario.Name, p.Resource)
		}
		c := g.gen.RandomCellInRoom(g.world, g.room(p.Room))
		if err := g.world.Place(world.NewPickup(p.Resource, p.Amount, c)); err != nil {
			return err
		}
	}

	span.SetAttributes(
		attribute.String("scenario.name", t.scenario.Name),
		attribute.Int("map.rooms", len(rooms)),
		attribute.Int("session.owners", len(t.scenario.Owners)),
		attribute.Int("session.actors", len(t.scenario.Heroes)),
	)
	g.logger.Info("map built", "scenario", t.scenario.Name, "width", width, "height", height, "rooms", len(rooms))
	return nil
}

// room resolves a scenario room index: negative indexes count from the
// last room and every index wraps.
func (g *Game) room(idx int) world.Room {
	n := len(g.rooms)
	idx %= n
	if idx < 0 {
		idx += n
	}
	return g.rooms[idx]
}
