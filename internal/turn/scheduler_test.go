package turn

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/events"
	"github.com/samdwyer/wayfarer/internal/executor"
	"github.com/samdwyer/wayfarer/internal/pathfind"
	"github.com/samdwyer/wayfarer/internal/provider"
	"github.com/samdwyer/wayfarer/internal/session"
	"github.com/samdwyer/wayfarer/internal/world"
)

// scripted answers requests from a script, then from repeat, and otherwise
// holds the request open.
type scripted struct {
	script   []func(a *entity.Actor) action.Action
	repeat   func(a *entity.Actor) action.Action
	onReady  func(action.Action)
	last     func(action.Action)
	requests int
	cancels  int
}

func (p *scripted) RequestAction(a *entity.Actor, _ world.View, onReady func(action.Action)) {
	p.requests++
	p.last = onReady
	if len(p.script) > 0 {
		next := p.script[0]
		p.script = p.script[1:]
		onReady(next(a))
		return
	}
	if p.repeat != nil {
		onReady(p.repeat(a))
		return
	}
	p.onReady = onReady
}

func (p *scripted) CancelRequest() {
	p.cancels++
	p.onReady = nil
}

func (p *scripted) SetEnabled(bool)     {}
func (p *scripted) Enabled() bool       { return true }
func (p *scripted) RequiresInput() bool { return true }
func (p *scripted) IsWaiting() bool     { return p.onReady != nil }

func wait(a *entity.Actor) action.Action    { return action.NewWait(a) }
func endTurn(a *entity.Actor) action.Action { return action.NewEndTurn(a) }

type hookCounter struct {
	endOfDay int
	weeks    []int
}

func (h *hookCounter) EndOfDay(context.Context) { h.endOfDay++ }

func (h *hookCounter) StartOfWeek(_ context.Context, week int) {
	h.weeks = append(h.weeks, week)
}

type fixture struct {
	world    *world.World
	session  *session.Session
	recorder *events.Recorder
	hooks    *hookCounter
	sched    *Scheduler
}

// newFixture builds an 8x3 land map with the given owners registered in
// order and a stepping executor.
func newFixture(t *testing.T, owners ...int) *fixture {
	t.Helper()
	f := &fixture{
		world:    world.New(world.NewGrid(8, 3, world.Cell{}), world.DefaultPolicy()),
		session:  session.New(),
		recorder: &events.Recorder{},
		hooks:    &hookCounter{},
	}
	f.world.SetOccupancy(f.session)
	for _, id := range owners {
		if err := f.session.AddOwner(session.Owner{ID: id}); err != nil {
			t.Fatalf("AddOwner(%d): %v", id, err)
		}
	}
	d := events.NewDispatcher(logr.Discard())
	d.Add(f.recorder)
	exec := executor.New(f.world, executor.Options{Collector: f.world, Events: d})
	f.sched = New(Config{
		World:    f.world,
		Session:  f.session,
		Executor: exec,
		Events:   d,
		Hooks:    []DayHook{f.hooks},
	})
	return f
}

func (f *fixture) actor(t *testing.T, name string, owner int, pos world.Cell) *entity.Actor {
	t.Helper()
	a := entity.NewActor(name, owner, pos, entity.DefaultMovement)
	if err := f.session.AddActor(a); err != nil {
		t.Fatalf("AddActor(%s): %v", name, err)
	}
	return a
}

func (f *fixture) provider(owner int, p *scripted) *scripted {
	f.sched.RegisterProvider(owner, p)
	return p
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	if err := f.sched.StartDay(context.Background()); err != nil {
		t.Fatalf("StartDay: %v", err)
	}
}

func (f *fixture) expect(t *testing.T, state State, current *entity.Actor) {
	t.Helper()
	if got := f.sched.State(); got != state {
		t.Errorf("state = %s, want %s", got, state)
	}
	if got := f.sched.CurrentActor(); got != current {
		t.Errorf("current actor = %v, want %v", got, current)
	}
}

func TestWaitPassesToNextOwnerWithoutExecuting(t *testing.T) {
	f := newFixture(t, 0, 1)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	b := f.actor(t, "Grusk", 1, world.Cell{X: 7, Y: 2})
	f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{wait}})
	p1 := f.provider(1, &scripted{})

	f.start(t)
	f.expect(t, StateWaitingForAction, a)

	f.sched.Tick()
	f.expect(t, StateWaitingForAction, b)
	if p1.requests != 1 {
		t.Errorf("owner 1 requests = %d, want 1", p1.requests)
	}
	if n := f.recorder.Count(events.ActionStarted); n != 0 {
		t.Errorf("ActionStarted emitted %d times, want 0", n)
	}
	if got := a.Activity(); got != entity.ActivityDisabled {
		t.Errorf("waiting actor activity = %s, want Disabled", got)
	}
	if owner, ok := f.sched.CurrentOwner(); !ok || owner != 1 {
		t.Errorf("CurrentOwner() = %d, %v; want 1, true", owner, ok)
	}
}

func TestEnterStructureSuspendsUntilResume(t *testing.T) {
	f := newFixture(t, 0)
	town := world.NewStructure("Harrowgate", world.Cell{X: 2})
	if err := f.world.Place(town); err != nil {
		t.Fatalf("Place: %v", err)
	}
	a := f.actor(t, "Ysolde", 0, town.Cell())
	p := f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{
		func(a *entity.Actor) action.Action { return action.NewEnterStructure(a, town) },
	}})
	var got []InteractionRequest
	f.sched.RegisterInteraction(InteractionStructure, InteractionFunc(func(req InteractionRequest) {
		got = append(got, req)
	}))

	f.start(t)
	f.sched.Tick()
	f.expect(t, StateInteracting, a)
	if len(got) != 1 {
		t.Fatalf("handler called %d times, want 1", len(got))
	}
	if got[0].Kind != InteractionStructure || got[0].Actor != a || got[0].Target != town {
		t.Errorf("interaction = %+v, want structure visit by %s to %s", got[0], a, town.Name)
	}
	if a.Activity() != entity.ActivityInteracting {
		t.Errorf("actor activity = %s, want Interacting", a.Activity())
	}

	for i := 0; i < 3; i++ {
		f.sched.Tick()
	}
	if p.requests != 1 {
		t.Errorf("requests during interaction = %d, want 1", p.requests)
	}
	if _, ok := f.sched.Interaction(); !ok {
		t.Error("Interaction() reports nothing in progress")
	}

	if err := f.sched.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if err := f.sched.Resume(); !errors.Is(err, ErrNotInteracting) {
		t.Errorf("second Resume = %v, want ErrNotInteracting", err)
	}

	f.sched.Tick()
	f.expect(t, StateWaitingForAction, a)
	if p.requests != 2 {
		t.Errorf("requests after resume = %d, want 2", p.requests)
	}
	if n := f.recorder.Count(events.InteractionEnded); n != 1 {
		t.Errorf("InteractionEnded emitted %d times, want 1", n)
	}
}

func TestResumeOutsideInteraction(t *testing.T) {
	f := newFixture(t, 0)
	f.actor(t, "Ysolde", 0, world.Cell{})
	f.provider(0, &scripted{})
	f.start(t)

	if err := f.sched.Resume(); !errors.Is(err, ErrNotInteracting) {
		t.Errorf("Resume = %v, want ErrNotInteracting", err)
	}
}

func TestMissingInteractionHandlerResumes(t *testing.T) {
	f := newFixture(t, 0)
	town := world.NewStructure("Harrowgate", world.Cell{X: 1})
	if err := f.world.Place(town); err != nil {
		t.Fatalf("Place: %v", err)
	}
	a := f.actor(t, "Ysolde", 0, town.Cell())
	p := f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{
		func(a *entity.Actor) action.Action { return action.NewEnterStructure(a, town) },
	}})

	f.start(t)
	f.sched.Tick()

	f.expect(t, StateWaitingForAction, a)
	if p.requests != 2 {
		t.Errorf("requests = %d, want 2", p.requests)
	}
	if f.recorder.Count(events.InteractionStarted) != 1 || f.recorder.Count(events.InteractionEnded) != 1 {
		t.Errorf("interaction events = %v", f.recorder.Kinds())
	}
}

func TestMoveAdvancesOneCellPerTick(t *testing.T) {
	f := newFixture(t, 0)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	p := f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{
		func(a *entity.Actor) action.Action {
			return action.NewMove(a, []world.Cell{{X: 1}, {X: 2}, {X: 3}})
		},
	}})

	f.start(t)
	f.sched.Tick()
	f.expect(t, StateExecutingAction, a)
	if got := a.MovementPoints(); got != entity.DefaultMovement-6 {
		t.Errorf("points = %d, want %d", got, entity.DefaultMovement-6)
	}

	for i, want := range []world.Cell{{X: 1}, {X: 2}} {
		f.sched.Tick()
		if got := a.Position(); got != want {
			t.Errorf("tick %d: position = %v, want %v", i+1, got, want)
		}
		if f.sched.State() != StateExecutingAction {
			t.Errorf("tick %d: state = %s, want ExecutingAction", i+1, f.sched.State())
		}
	}

	f.sched.Tick()
	if got := a.Position(); got != (world.Cell{X: 3}) {
		t.Errorf("final position = %v, want (3,0)", got)
	}
	f.expect(t, StateWaitingForAction, a)
	if p.requests != 2 {
		t.Errorf("requests = %d, want 2 (actor still has points)", p.requests)
	}
	if n := f.recorder.Count(events.ActorMoved); n != 3 {
		t.Errorf("ActorMoved emitted %d times, want 3", n)
	}
}

func TestSecondCallbackIsIgnored(t *testing.T) {
	f := newFixture(t, 0)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	p := f.provider(0, &scripted{})

	f.start(t)
	cb := p.onReady
	cb(action.NewMove(a, []world.Cell{{X: 1}, {X: 2}}))
	cb(action.NewWait(a))

	f.sched.Tick()
	f.expect(t, StateExecutingAction, a)
	if n := f.recorder.Count(events.ActorTurnEnded); n != 0 {
		t.Errorf("ActorTurnEnded emitted %d times, want 0", n)
	}

	f.sched.Tick()
	f.sched.Tick()
	f.expect(t, StateWaitingForAction, a)
	if got := a.Position(); got != (world.Cell{X: 2}) {
		t.Errorf("position = %v, want (2,0)", got)
	}
}

func TestFailedActionIsRetriedThenSkipped(t *testing.T) {
	f := newFixture(t, 0, 1)
	f.world.Grid().SetTile(world.Cell{X: 1}, world.Tile{Ground: world.GroundWater})
	f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	b := f.actor(t, "Grusk", 1, world.Cell{X: 7})
	p0 := f.provider(0, &scripted{repeat: func(a *entity.Actor) action.Action {
		return action.NewMove(a, []world.Cell{{X: 1}})
	}})
	f.provider(1, &scripted{})

	f.start(t)
	f.sched.Tick()

	f.expect(t, StateWaitingForAction, b)
	if p0.requests != maxFailures {
		t.Errorf("owner 0 requests = %d, want %d", p0.requests, maxFailures)
	}
	if n := f.recorder.Count(events.ActionFailed); n != maxFailures {
		t.Errorf("ActionFailed emitted %d times, want %d", n, maxFailures)
	}
}

func TestUnusableAnswersSkipActor(t *testing.T) {
	tests := []struct {
		name   string
		answer func(self, other *entity.Actor) action.Action
	}{
		{"nil action", func(_, _ *entity.Actor) action.Action { return nil }},
		{"another actor's action", func(_, other *entity.Actor) action.Action { return action.NewWait(other) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 0, 1)
			a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
			b := f.actor(t, "Grusk", 1, world.Cell{X: 7})
			f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{
				func(self *entity.Actor) action.Action { return tt.answer(self, b) },
			}})
			p1 := f.provider(1, &scripted{})

			f.start(t)
			f.sched.Tick()

			f.expect(t, StateWaitingForAction, b)
			if p1.requests != 1 {
				t.Errorf("owner 1 requests = %d, want 1", p1.requests)
			}
			if a.Activity() != entity.ActivityDisabled {
				t.Errorf("skipped actor activity = %s, want Disabled", a.Activity())
			}
		})
	}
}

func TestMissingProviderSkipsActor(t *testing.T) {
	f := newFixture(t, 0, 1)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	b := f.actor(t, "Grusk", 1, world.Cell{X: 7})
	f.provider(1, &scripted{})

	f.start(t)

	f.expect(t, StateWaitingForAction, b)
	if a.Activity() != entity.ActivityDisabled {
		t.Errorf("skipped actor activity = %s, want Disabled", a.Activity())
	}
}

func TestDisabledProviderSkipsActor(t *testing.T) {
	f := newFixture(t, 0, 1)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	b := f.actor(t, "Grusk", 1, world.Cell{X: 7})
	h := provider.NewHuman(pathfind.New(f.world), logr.Discard())
	f.sched.RegisterProvider(0, h)
	p1 := f.provider(1, &scripted{})

	f.start(t)
	f.expect(t, StateWaitingForAction, a)
	if !h.IsWaiting() {
		t.Fatal("human provider not asked for an action")
	}

	h.SetEnabled(false)
	f.sched.Tick()
	f.expect(t, StateWaitingForAction, b)
	if p1.requests != 1 {
		t.Errorf("owner 1 requests = %d, want 1", p1.requests)
	}

	// The next day skips the disabled owner without asking it.
	p1.onReady(action.NewEndTurn(b))
	f.sched.Tick()
	f.sched.Tick()
	if got := f.session.Day(); got != 2 {
		t.Fatalf("day = %d, want 2", got)
	}
	f.expect(t, StateWaitingForAction, b)
	if h.IsWaiting() {
		t.Error("disabled provider was asked for an action")
	}

	h.SetEnabled(true)
	p1.onReady(action.NewEndTurn(b))
	f.sched.Tick()
	f.sched.Tick()
	f.expect(t, StateWaitingForAction, a)
	if !h.IsWaiting() {
		t.Error("re-enabled provider not asked on day 3")
	}
}

func TestOwnerWithoutActorsIsSkipped(t *testing.T) {
	f := newFixture(t, 0, 1, 2)
	f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	c := f.actor(t, "Vek", 2, world.Cell{X: 7})
	f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{wait}})
	f.provider(1, &scripted{})
	f.provider(2, &scripted{})

	f.start(t)
	f.sched.Tick()

	f.expect(t, StateWaitingForAction, c)
	var owners []int
	for _, e := range f.recorder.Events {
		if e.Kind == events.OwnerTurnStarted {
			owners = append(owners, e.Owner)
		}
	}
	if !reflect.DeepEqual(owners, []int{0, 2}) {
		t.Errorf("owner turns = %v, want [0 2]", owners)
	}
}

func TestEndTurnSkipsRemainingActors(t *testing.T) {
	f := newFixture(t, 0, 1)
	f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	second := f.actor(t, "Pell", 0, world.Cell{X: 1})
	b := f.actor(t, "Grusk", 1, world.Cell{X: 7})
	p0 := f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{endTurn}})
	f.provider(1, &scripted{})

	f.start(t)
	f.sched.Tick()

	f.expect(t, StateWaitingForAction, b)
	if p0.requests != 1 {
		t.Errorf("owner 0 requests = %d, want 1", p0.requests)
	}
	if second.Activity() != entity.ActivityDisabled {
		t.Errorf("second actor activity = %s, want Disabled", second.Activity())
	}
	if n := f.recorder.Count(events.ActionStarted); n != 0 {
		t.Errorf("ActionStarted emitted %d times, want 0", n)
	}
}

func TestEndTurnByLastOwnerEndsDay(t *testing.T) {
	f := newFixture(t, 0)
	f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{endTurn}})

	f.start(t)
	f.sched.Tick()

	f.expect(t, StateDayEnd, nil)
	if got := f.session.Day(); got != 2 {
		t.Errorf("day = %d, want 2", got)
	}
}

func TestDayRollsOverOnNextTick(t *testing.T) {
	f := newFixture(t, 0, 1)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	f.actor(t, "Grusk", 1, world.Cell{X: 7})
	f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{wait}})
	f.provider(1, &scripted{script: []func(*entity.Actor) action.Action{wait}})
	a.ConsumeMovement(5)

	f.start(t)
	if got := a.MovementPoints(); got != entity.DefaultMovement {
		t.Errorf("points at day start = %d, want %d", got, entity.DefaultMovement)
	}

	a.ConsumeMovement(5)
	f.sched.Tick()
	f.expect(t, StateDayEnd, nil)
	if f.hooks.endOfDay != 1 {
		t.Errorf("EndOfDay called %d times, want 1", f.hooks.endOfDay)
	}
	if got := f.session.Day(); got != 2 {
		t.Errorf("day = %d, want 2", got)
	}

	f.sched.Tick()
	f.expect(t, StateWaitingForAction, a)
	if got := a.MovementPoints(); got != entity.DefaultMovement {
		t.Errorf("points on day 2 = %d, want %d", got, entity.DefaultMovement)
	}
	if got := a.Activity(); got != entity.ActivityIdle {
		t.Errorf("activity on day 2 = %s, want Idle", got)
	}

	var days []int
	for _, e := range f.recorder.Events {
		if e.Kind == events.DayStarted {
			days = append(days, e.Day)
		}
	}
	if !reflect.DeepEqual(days, []int{1, 2}) {
		t.Errorf("DayStarted days = %v, want [1 2]", days)
	}
}

func TestWeekHooksRunOnWeekBoundary(t *testing.T) {
	f := newFixture(t, 0, 1)
	f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	f.actor(t, "Grusk", 1, world.Cell{X: 7})
	f.provider(0, &scripted{repeat: wait})
	f.provider(1, &scripted{repeat: wait})

	f.start(t)
	for i := 0; i < 6; i++ {
		f.sched.Tick()
	}
	if len(f.hooks.weeks) != 0 {
		t.Fatalf("StartOfWeek called early: %v", f.hooks.weeks)
	}

	f.sched.Tick()
	if got := f.session.Day(); got != 8 {
		t.Errorf("day = %d, want 8", got)
	}
	if f.hooks.endOfDay != 7 {
		t.Errorf("EndOfDay called %d times, want 7", f.hooks.endOfDay)
	}
	if !reflect.DeepEqual(f.hooks.weeks, []int{2}) {
		t.Errorf("StartOfWeek weeks = %v, want [2]", f.hooks.weeks)
	}
	if n := f.recorder.Count(events.WeekStarted); n != 1 {
		t.Errorf("WeekStarted emitted %d times, want 1", n)
	}
}

func TestRemovedActorKeepsRosterOrder(t *testing.T) {
	f := newFixture(t, 0)
	town := world.NewStructure("Harrowgate", world.Cell{X: 0})
	if err := f.world.Place(town); err != nil {
		t.Fatalf("Place: %v", err)
	}
	a := f.actor(t, "Ysolde", 0, town.Cell())
	second := f.actor(t, "Pell", 0, world.Cell{X: 1})
	f.actor(t, "Bertram", 0, world.Cell{X: 2})
	f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{
		func(a *entity.Actor) action.Action { return action.NewEnterStructure(a, town) },
		wait,
	}})
	f.sched.RegisterInteraction(InteractionStructure, InteractionFunc(func(req InteractionRequest) {
		f.session.RemoveActor(req.Actor.ID())
		if err := f.sched.Resume(); err != nil {
			t.Errorf("Resume: %v", err)
		}
	}))

	f.start(t)
	f.sched.Tick()
	f.sched.Tick()

	if f.sched.CurrentActor() != second {
		t.Errorf("current actor = %v, want %s", f.sched.CurrentActor(), second)
	}
	if a.Activity() != entity.ActivityDisabled {
		t.Errorf("removed actor activity = %s, want Disabled", a.Activity())
	}
}

func TestPauseCancelsAndUnpauseReissues(t *testing.T) {
	f := newFixture(t, 0)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	p := f.provider(0, &scripted{})

	f.start(t)
	stale := p.onReady

	f.sched.Pause()
	f.expect(t, StateIdle, a)
	if p.cancels != 1 || p.IsWaiting() {
		t.Errorf("cancels = %d, waiting = %v; want 1, false", p.cancels, p.IsWaiting())
	}

	stale(action.NewWait(a))
	f.sched.Tick()
	f.expect(t, StateIdle, a)

	f.sched.Unpause()
	f.expect(t, StateWaitingForAction, a)
	if p.requests != 2 {
		t.Errorf("requests = %d, want 2", p.requests)
	}
	if f.sched.Paused() {
		t.Error("Paused() = true after Unpause")
	}
}

func TestPauseLetsExecutingActionFinish(t *testing.T) {
	f := newFixture(t, 0)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	p := f.provider(0, &scripted{script: []func(*entity.Actor) action.Action{
		func(a *entity.Actor) action.Action { return action.NewMove(a, []world.Cell{{X: 1}}) },
	}})

	f.start(t)
	f.sched.Tick()
	f.sched.Pause()
	f.expect(t, StateExecutingAction, a)

	f.sched.Tick()
	if got := a.Position(); got != (world.Cell{X: 1}) {
		t.Errorf("position = %v, want (1,0)", got)
	}
	f.expect(t, StateIdle, a)
	if p.requests != 1 {
		t.Errorf("requests while paused = %d, want 1", p.requests)
	}
}

func TestCloseDropsLateCallbacks(t *testing.T) {
	f := newFixture(t, 0)
	a := f.actor(t, "Ysolde", 0, world.Cell{X: 0})
	p := f.provider(0, &scripted{})

	f.start(t)
	late := p.last
	f.sched.Close()
	f.sched.Close()

	late(action.NewWait(a))
	f.sched.Tick()

	if f.sched.State() != StateIdle {
		t.Errorf("state = %s, want Idle", f.sched.State())
	}
	if p.cancels != 1 {
		t.Errorf("cancels = %d, want 1", p.cancels)
	}
	if n := f.recorder.Count(events.ActorTurnEnded); n != 0 {
		t.Errorf("ActorTurnEnded emitted %d times after Close", n)
	}
	if err := f.sched.StartDay(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("StartDay after Close = %v, want ErrClosed", err)
	}
	if err := f.sched.Resume(); !errors.Is(err, ErrClosed) {
		t.Errorf("Resume after Close = %v, want ErrClosed", err)
	}
}

func TestStartDayTwice(t *testing.T) {
	f := newFixture(t, 0)
	f.actor(t, "Ysolde", 0, world.Cell{})
	f.provider(0, &scripted{})

	f.start(t)
	if err := f.sched.StartDay(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("StartDay = %v, want ErrAlreadyStarted", err)
	}
}

func TestTickBeforeStartDoesNothing(t *testing.T) {
	f := newFixture(t, 0)
	f.actor(t, "Ysolde", 0, world.Cell{})
	p := f.provider(0, &scripted{})

	f.sched.Tick()

	f.expect(t, StateIdle, nil)
	if p.requests != 0 {
		t.Errorf("requests = %d, want 0", p.requests)
	}
}

func TestStateChangedEventsCarryNames(t *testing.T) {
	f := newFixture(t, 0)
	f.actor(t, "Ysolde", 0, world.Cell{})
	f.provider(0, &scripted{})

	f.start(t)

	var got [][2]string
	for _, e := range f.recorder.Events {
		if e.Kind == events.StateChanged {
			got = append(got, [2]string{e.PrevState, e.State})
		}
	}
	want := [][2]string{{"Idle", "DayStart"}, {"DayStart", "WaitingForAction"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("transitions = %v, want %v", got, want)
	}
}
