package game

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/events"
	"github.com/samdwyer/wayfarer/internal/turn"
	"github.com/samdwyer/wayfarer/internal/world"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, c Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, c Config) {
				if c.Scenario != "scenario.json" || c.TickInterval != 100*time.Millisecond || !c.Telemetry {
					t.Errorf("defaults = %+v", c)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"WAYFARER_SEED":      "42",
				"WAYFARER_HEADLESS":  "true",
				"WAYFARER_DAYS":      "14",
				"WAYFARER_TICK":      "0s",
				"WAYFARER_FEED_ADDR": ":8081",
				"WAYFARER_TELEMETRY": "false",
				"WAYFARER_WIDTH":     "",
			},
			check: func(t *testing.T, c Config) {
				if c.Seed != 42 || !c.Headless || c.Days != 14 || c.TickInterval != 0 || c.FeedAddr != ":8081" || c.Telemetry {
					t.Errorf("config = %+v", c)
				}
				if c.Width != 0 {
					t.Errorf("empty WAYFARER_WIDTH set width to %d", c.Width)
				}
			},
		},
		{
			name:    "every bad value is reported",
			env:     map[string]string{"WAYFARER_SEED": "x", "WAYFARER_TICK": "soon"},
			wantErr: "WAYFARER_TICK",
		},
		{
			name:    "negative days",
			env:     map[string]string{"WAYFARER_DAYS": "-1"},
			wantErr: "days",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

type fakeResumer struct {
	calls int
	err   error
}

func (r *fakeResumer) Resume() error {
	r.calls++
	return r.err
}

func TestCountdown(t *testing.T) {
	r := &fakeResumer{}
	c := NewCountdown(r, 3, logr.Discard())

	c.Tick()
	if r.calls != 0 {
		t.Fatal("idle countdown resumed")
	}

	c.Begin()
	c.Tick()
	c.Tick()
	if r.calls != 0 || !c.Active() {
		t.Fatalf("resumed early: calls = %d, active = %v", r.calls, c.Active())
	}
	c.Tick()
	if r.calls != 1 || c.Active() {
		t.Errorf("after 3 ticks: calls = %d, active = %v; want 1, false", r.calls, c.Active())
	}
	c.Tick()
	if r.calls != 1 {
		t.Errorf("resumed again: calls = %d", r.calls)
	}
}

func TestCountdownZeroResumesImmediately(t *testing.T) {
	r := &fakeResumer{err: errors.New("not interacting")}
	c := NewCountdown(r, 0, logr.Discard())

	c.Begin()
	if r.calls != 1 || c.Active() {
		t.Errorf("calls = %d, active = %v; want 1, false", r.calls, c.Active())
	}
}

func newHeadless(t *testing.T) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Headless = true
	cfg.Instant = true
	cfg.TickInterval = 0
	cfg.VisitTicks = 1
	cfg.Output = io.Discard
	g, err := New(context.Background(), cfg, logr.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewPopulatesScenario(t *testing.T) {
	g := newHeadless(t)

	if got := len(g.Session().Owners()); got != 2 {
		t.Errorf("owners = %d, want 2", got)
	}
	if got := len(g.Session().Actors()); got != 4 {
		t.Errorf("actors = %d, want 4", got)
	}
	if got := len(g.World().Structures()); got != 3 {
		t.Errorf("structures = %d, want 3", got)
	}
	if got := len(g.World().Pickups()); got != 5 {
		t.Errorf("pickups = %d, want 5", got)
	}
	for _, a := range g.Session().Actors() {
		if !g.World().IsPassable(a.Position()) {
			t.Errorf("%s placed on impassable %v", a.Name, a.Position())
		}
	}
	if g.human != nil {
		t.Error("headless game has a human provider")
	}
}

func TestNewIsReproducible(t *testing.T) {
	a, b := newHeadless(t), newHeadless(t)
	for i, actor := range a.Session().Actors() {
		if other := b.Session().Actors()[i]; actor.Position() != other.Position() {
			t.Errorf("actor %d: %v vs %v", i, actor.Position(), other.Position())
		}
	}
}

func TestNewRejectsUnknownScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "missing.json"
	if _, err := New(context.Background(), cfg, logr.Discard()); err == nil {
		t.Error("New succeeded with a missing scenario")
	}
}

func TestHeadlessRunStopsAfterDays(t *testing.T) {
	g := newHeadless(t)
	g.cfg.Days = 3

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := g.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("run hit the deadline")
	}
	if got := g.Session().Day(); got != 4 {
		t.Errorf("day = %d, want 4", got)
	}
	if got := g.Scheduler().State(); got != turn.StateIdle {
		t.Errorf("state after Run = %s, want Idle (closed)", got)
	}
	gold := 0
	for _, id := range g.Session().Owners() {
		gold += g.Session().Treasury(id)["gold"]
	}
	if gold < 3*1000 {
		t.Errorf("gold after 3 days = %d, want at least 3000 from the two owned towns", gold)
	}
}

func TestPickupCreditsTreasury(t *testing.T) {
	g := newHeadless(t)
	a := g.Session().ActorsForOwner(1)[0]
	pile := world.NewPickup("gold", 250, a.Position())

	g.OnEvent(events.Event{
		Kind:   events.ActionCompleted,
		Owner:  1,
		Actor:  a,
		Result: action.Succeeded(action.ResultResourceGained, pile),
	})
	g.OnEvent(events.Event{Kind: events.ActionCompleted, Owner: 1, Result: action.Succeeded(action.ResultMoved, nil)})

	if got := g.Session().Treasury(1)["gold"]; got != 250 {
		t.Errorf("gold = %d, want 250", got)
	}
}

func TestEndOfDayCreditsOwnedStructures(t *testing.T) {
	g := newHeadless(t)
	hook := g.calendarHook()

	hook.EndOfDay(context.Background())
	for _, id := range []int{0, 1} {
		if got := g.Session().Treasury(id)["gold"]; got != 500 {
			t.Errorf("owner %d gold after one day = %d, want 500", id, got)
		}
	}

	for _, st := range g.World().Structures() {
		if st.OwnerID() == world.NoOwner {
			st.SetOwner(1)
		}
	}
	hook.EndOfDay(context.Background())

	want := map[string]int{"gold": 500 + 500 + 250, "wood": 2}
	got := g.Session().Treasury(1)
	for res, n := range want {
		if got[res] != n {
			t.Errorf("owner 1 %s = %d, want %d", res, got[res], n)
		}
	}
	if got := g.Session().Treasury(0)["gold"]; got != 1000 {
		t.Errorf("owner 0 gold = %d, want 1000", got)
	}
}

func TestWeeklySpawnAddsPickups(t *testing.T) {
	g := newHeadless(t)
	before := len(g.World().Pickups())

	g.spawnWeekly(context.Background(), 2)

	if got := len(g.World().Pickups()); got <= before || got > before+weeklyPiles {
		t.Errorf("pickups = %d, want between %d and %d", got, before+1, before+weeklyPiles)
	}
}

func TestVisitFlagsStructure(t *testing.T) {
	g := newHeadless(t)
	g.visits = NewCountdown(&fakeResumer{}, 2, logr.Discard())

	var neutral *world.Structure
	for _, s := range g.World().Structures() {
		if s.OwnerID() == world.NoOwner {
			neutral = s
		}
	}
	if neutral == nil {
		t.Fatal("scenario has no neutral structure")
	}
	visitor := entity.NewActor("Vek", 1, neutral.Cell(), 18)

	g.visitStructure(turn.InteractionRequest{Kind: turn.InteractionStructure, Actor: visitor, Target: neutral})

	if neutral.OwnerID() != 1 {
		t.Errorf("owner = %d, want 1", neutral.OwnerID())
	}
	if !g.visits.Active() {
		t.Error("visit countdown not started")
	}
}

func TestModeFollowsScheduler(t *testing.T) {
	g := newHeadless(t)
	if err := g.Scheduler().StartDay(context.Background()); err != nil {
		t.Fatalf("StartDay: %v", err)
	}
	if got := g.Mode(); got != ModeWatching {
		t.Errorf("mode = %s, want watching", got)
	}
	g.Scheduler().Pause()
	if got := g.Mode(); got != ModePaused {
		t.Errorf("mode = %s, want paused", got)
	}
}
