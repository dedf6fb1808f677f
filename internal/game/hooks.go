package game

import (
	"context"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/events"
	"github.com/samdwyer/wayfarer/internal/turn"
	"github.com/samdwyer/wayfarer/internal/world"
)

// weeklyPiles is how many resource piles appear at the start of each week.
const weeklyPiles = 3

func (g *Game) calendarHook() turn.DayHook {
	return turn.HookFuncs{
		OnEndOfDay: func(ctx context.Context) {
			g.produce(ctx)
			for _, id := range g.session.Owners() {
				g.logger.V(1).Info("treasury", "day", g.session.Day(), "owner", id, "holdings", g.session.Treasury(id))
			}
		},
		OnStartOfWeek: g.spawnWeekly,
	}
}

// produce credits every owned structure's daily yield to its owner.
func (g *Game) produce(ctx context.Context) {
	_, span := g.tracer.Start(ctx, "day.produce")
	defer span.End()

	credited := 0
	for _, st := range g.world.Structures() {
		owner := st.OwnerID()
		if owner == world.NoOwner {
			continue
		}
		for _, res := range slices.Sorted(maps.Keys(st.Yield)) {
			amount := st.Yield[res]
			if amount <= 0 {
				continue
			}
			if err := g.session.Credit(owner, res, amount); err != nil {
				g.logger.Error(err, "crediting production", "structure", st.Name, "owner", owner)
				continue
			}
			credited++
		}
	}
	span.SetAttributes(attribute.Int("day", g.session.Day()), attribute.Int("credits", credited))
}

// spawnWeekly scatters fresh resource piles over random rooms.
func (g *Game) spawnWeekly(ctx context.Context, week int) {
	_, span := g.tracer.Start(ctx, "week.spawn")
	defer span.End()

	placed := 0
	for attempt := 0; attempt < weeklyPiles*10 && placed < weeklyPiles; attempt++ {
		def, amount := g.resources.SpawnRandom(g.rng)
		if def == nil {
			break
		}
		c := g.gen.RandomCellInRoom(g.world, g.rooms[g.rng.Intn(len(g.rooms))])
		if !g.world.IsPassable(c) || len(g.world.EntitiesAt(c)) > 0 {
			continue
		}
		if err := g.world.Place(world.NewPickup(def.ID, amount, c)); err != nil {
			g.logger.Error(err, "placing weekly resource")
			continue
		}
		placed++
	}
	span.SetAttributes(attribute.Int("week", week), attribute.Int("piles", placed))
	g.logger.Info("resources appeared", "week", week, "piles", placed)
}

// OnEvent credits collected pickups to the collecting owner.
func (g *Game) OnEvent(e events.Event) {
	if e.Kind != events.ActionCompleted || e.Result.Kind != action.ResultResourceGained {
		return
	}
	p, ok := e.Result.Payload.(*world.Pickup)
	if !ok || p == nil {
		return
	}
	if err := g.session.Credit(e.Owner, p.Resource, p.Amount); err != nil {
		g.logger.Error(err, "crediting pickup", "owner", e.Owner, "resource", p.Resource)
		return
	}
	g.logger.V(1).Info("resource collected", "owner", e.Owner, "resource", p.Resource, "amount", p.Amount)
}
