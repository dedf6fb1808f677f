// Package turn drives the day cycle: owners take turns in order, each
// owner's actors act one at a time, and the day rolls over once every owner
// is done.
//
// The scheduler is single-threaded. Provider and executor callbacks are
// queued and run on the next Tick, so a callback never re-enters the state
// machine while it is mid-transition.
package turn

import (
	"context"
	"errors"
	"slices"

	"github.com/go-logr/logr"
	"github.com/zyedidia/generic/queue"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/events"
	"github.com/samdwyer/wayfarer/internal/provider"
	"github.com/samdwyer/wayfarer/internal/session"
	"github.com/samdwyer/wayfarer/internal/telemetry"
	"github.com/samdwyer/wayfarer/internal/world"
)

var (
	ErrAlreadyStarted   = errors.New("day cycle already started")
	ErrClosed           = errors.New("scheduler closed")
	ErrNotInteracting   = errors.New("no interaction in progress")
	ErrNoProvider       = errors.New("no provider registered for owner")
	ErrProviderDisabled = errors.New("provider disabled")
	ErrStaleCallback    = errors.New("stale callback")
)

const (
	// maxCallbacksPerTick bounds the work one Tick does when providers
	// answer immediately.
	maxCallbacksPerTick = 256

	// maxFailures is how many failed actions in a row an actor may submit
	// before its turn is skipped.
	maxFailures = 3
)

// Config wires a Scheduler to its collaborators.
type Config struct {
	World    world.View
	Session  Session
	Executor Executor
	Events   *events.Dispatcher
	Hooks    []DayHook
	Logger   logr.Logger
	Tracer   trace.Tracer
}

// Scheduler runs the turn state machine. It is not safe for concurrent use;
// every method must be called from the goroutine that calls Tick.
type Scheduler struct {
	world    world.View
	session  Session
	executor Executor
	events   *events.Dispatcher
	hooks    []DayHook
	logger   logr.Logger
	tracer   trace.Tracer

	providers    map[int]provider.Provider
	interactions map[InteractionKind]InteractionHandler

	ctx     context.Context
	dayCtx  context.Context
	daySpan trace.Span

	state    State
	started  bool
	paused   bool
	closed   bool
	owners   []int
	ownerIdx int
	actorIdx int
	current  *entity.Actor
	failures int

	pending     provider.Provider
	request     uint64
	interaction *InteractionRequest

	inbox    *queue.Queue[func()]
	deferred []func()
}

// New creates a scheduler in StateIdle.
func New(cfg Config) *Scheduler {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}
	logger := cfg.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	return &Scheduler{
		world:        cfg.World,
		session:      cfg.Session,
		executor:     cfg.Executor,
		events:       cfg.Events,
		hooks:        cfg.Hooks,
		logger:       logger.WithName("turn"),
		tracer:       tracer,
		providers:    make(map[int]provider.Provider),
		interactions: make(map[InteractionKind]InteractionHandler),
		ctx:          context.Background(),
		dayCtx:       context.Background(),
		inbox:        queue.New[func()](),
	}
}

// RegisterProvider sets the provider answering for owner's actors.
func (s *Scheduler) RegisterProvider(owner int, p provider.Provider) {
	s.providers[owner] = p
}

// RegisterInteraction sets the handler for an interaction kind. Kinds
// without a handler resume immediately.
func (s *Scheduler) RegisterInteraction(kind InteractionKind, h InteractionHandler) {
	s.interactions[kind] = h
}

func (s *Scheduler) State() State { return s.state }

// CurrentActor returns the actor whose turn it is, or nil.
func (s *Scheduler) CurrentActor() *entity.Actor { return s.current }

// CurrentOwner returns the owner whose turn it is.
func (s *Scheduler) CurrentOwner() (int, bool) {
	if s.ownerIdx < 0 || s.ownerIdx >= len(s.owners) {
		return world.NoOwner, false
	}
	return s.owners[s.ownerIdx], true
}

func (s *Scheduler) Paused() bool { return s.paused }

// Interaction returns the interaction in progress, if any.
func (s *Scheduler) Interaction() (InteractionRequest, bool) {
	if s.interaction == nil {
		return InteractionRequest{}, false
	}
	return *s.interaction, true
}

// StartDay begins the first day. ctx parents the day spans and is passed to
// hooks and the executor.
func (s *Scheduler) StartDay(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.ctx = ctx
	s.beginDay()
	return nil
}

// Tick advances the machine: it steps in-flight movement, runs a deferred
// day start, skips an actor whose provider was disabled mid-request, then
// drains queued callbacks.
func (s *Scheduler) Tick() {
	if s.closed || !s.started {
		return
	}
	if s.state == StateExecutingAction && s.executor.Moving() {
		s.executor.Step()
	}
	deferred := s.deferred
	s.deferred = nil
	for _, fn := range deferred {
		fn()
	}
	if s.state == StateWaitingForAction && s.pending != nil && !s.pending.Enabled() {
		s.logger.Error(ErrProviderDisabled, "request cancelled, skipping actor", "actor", s.current.Name)
		s.cancelPending()
		s.nextActor()
	}
	for n := 0; n < maxCallbacksPerTick && !s.inbox.Empty(); n++ {
		fn := s.inbox.Dequeue()
		fn()
	}
}

// Resume ends the interaction in progress. The actor continues on the next
// Tick.
func (s *Scheduler) Resume() error {
	if s.closed {
		return ErrClosed
	}
	if s.state != StateInteracting || s.interaction == nil {
		return ErrNotInteracting
	}
	s.interaction = nil
	s.post(s.endInteraction)
	return nil
}

// Pause stops issuing requests. An outstanding request is cancelled and the
// scheduler parks in StateIdle; an action already executing runs to
// completion first.
func (s *Scheduler) Pause() {
	if s.closed || s.paused {
		return
	}
	s.paused = true
	s.logger.Info("paused")
	if s.state == StateWaitingForAction {
		s.cancelPending()
		s.setState(StateIdle)
	}
}

// Unpause re-issues the request Pause cancelled.
func (s *Scheduler) Unpause() {
	if s.closed || !s.paused {
		return
	}
	s.paused = false
	s.logger.Info("unpaused")
	if s.state == StateIdle && s.current != nil {
		s.requestAction()
	}
}

// Close cancels outstanding work. Callbacks arriving afterwards are ignored.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.cancelPending()
	if s.executor != nil {
		s.executor.Abort()
	}
	s.interaction = nil
	s.setState(StateIdle)
	s.endDaySpan()
	s.closed = true
	s.inbox = queue.New[func()]()
	s.deferred = nil
	s.logger.Info("scheduler closed")
}

func (s *Scheduler) post(fn func()) {
	if s.closed {
		return
	}
	s.inbox.Enqueue(fn)
}

func (s *Scheduler) emit(e events.Event) {
	s.events.Emit(e)
}

func (s *Scheduler) setState(next State) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	s.logger.V(2).Info("state changed", "from", prev.String(), "to", next.String())
	s.emit(events.Event{Kind: events.StateChanged, State: next.String(), PrevState: prev.String()})
}

func (s *Scheduler) beginDay() {
	s.setState(StateDayStart)
	day := s.session.Day()
	s.dayCtx, s.daySpan = s.tracer.Start(s.ctx, "turn.day", trace.WithAttributes(attribute.Int("day", day)))

	s.owners = s.session.Owners()
	for _, owner := range s.owners {
		for _, a := range s.session.ActorsForOwner(owner) {
			a.ResetMovement()
			a.StartTurn()
		}
	}
	s.logger.Info("day started", "day", day, "owners", len(s.owners))
	s.emit(events.Event{Kind: events.DayStarted, Day: day, Week: session.WeekOf(day)})

	s.ownerIdx = -1
	s.nextOwner()
}

func (s *Scheduler) nextOwner() {
	for s.ownerIdx++; s.ownerIdx < len(s.owners); s.ownerIdx++ {
		owner := s.owners[s.ownerIdx]
		actors := s.session.ActorsForOwner(owner)
		if len(actors) == 0 {
			s.logger.V(1).Info("skipping owner without actors", "owner", owner)
			continue
		}
		s.emit(events.Event{Kind: events.OwnerTurnStarted, Owner: owner, Day: s.session.Day()})
		s.actorIdx = 0
		s.beginActorTurn(actors[0])
		return
	}
	s.endDay()
}

func (s *Scheduler) beginActorTurn(a *entity.Actor) {
	s.current = a
	s.failures = 0
	s.daySpan.AddEvent("actor_turn", trace.WithAttributes(
		attribute.String("actor.name", a.Name),
		attribute.Int("actor.owner", a.OwnerID()),
	))
	s.emit(events.Event{Kind: events.ActorTurnStarted, Actor: a, Owner: a.OwnerID()})
	s.requestAction()
}

func (s *Scheduler) requestAction() {
	a := s.current
	if s.paused {
		s.setState(StateIdle)
		return
	}
	owner := a.OwnerID()
	p, ok := s.providers[owner]
	if !ok || p == nil {
		s.logger.Error(ErrNoProvider, "skipping actor", "owner", owner, "actor", a.Name)
		s.nextActor()
		return
	}
	if !p.Enabled() {
		s.logger.Error(ErrProviderDisabled, "skipping actor", "owner", owner, "actor", a.Name)
		s.nextActor()
		return
	}

	s.setState(StateWaitingForAction)
	s.request++
	seq := s.request
	s.pending = p
	s.emit(events.Event{Kind: events.ActionRequested, Actor: a, Owner: owner})
	p.RequestAction(a, s.world, func(act action.Action) {
		s.post(func() { s.onAction(seq, act) })
	})
}

func (s *Scheduler) cancelPending() {
	if s.pending != nil {
		s.pending.CancelRequest()
		s.pending = nil
	}
	s.request++
}

func (s *Scheduler) onAction(seq uint64, act action.Action) {
	if seq != s.request || s.state != StateWaitingForAction {
		s.logger.Error(ErrStaleCallback, "ignoring action", "action", describe(act), "state", s.state.String())
		return
	}
	s.pending = nil
	actor := s.current

	if act == nil {
		s.logger.Info("provider returned no action, skipping actor", "actor", actor.Name)
		s.nextActor()
		return
	}
	if act.Actor() != actor {
		s.logger.Error(provider.ErrWrongActor, "skipping actor", "actor", actor.Name, "action", act.String())
		s.nextActor()
		return
	}

	switch act.Kind() {
	case action.KindWait:
		s.logger.V(1).Info("actor waits", "actor", actor.Name)
		s.nextActor()
	case action.KindEndTurn:
		s.logger.V(1).Info("owner ended turn", "owner", actor.OwnerID(), "actor", actor.Name)
		s.finishOwner()
	default:
		s.setState(StateExecutingAction)
		s.executor.Execute(s.dayCtx, act, func(r action.Result) {
			s.post(func() { s.onResult(act, r) })
		})
	}
}

func (s *Scheduler) onResult(act action.Action, r action.Result) {
	if s.state != StateExecutingAction {
		s.logger.Error(ErrStaleCallback, "ignoring result", "action", act.String(), "state", s.state.String())
		return
	}
	if !r.Success {
		s.failures++
		s.logger.Info("action failed", "action", act.String(), "reason", r.Message, "failures", s.failures)
		if s.failures >= maxFailures {
			s.nextActor()
			return
		}
		s.continueOrAdvance()
		return
	}
	s.failures = 0

	switch r.Kind {
	case action.ResultEnterStructure:
		s.beginInteraction(InteractionStructure, r)
	case action.ResultTriggerCombat:
		s.beginInteraction(InteractionCombat, r)
	case action.ResultSkipActor:
		s.nextActor()
	case action.ResultTurnEnded:
		s.finishOwner()
	default:
		s.continueOrAdvance()
	}
}

func (s *Scheduler) beginInteraction(kind InteractionKind, r action.Result) {
	target, _ := r.Target()
	req := InteractionRequest{Kind: kind, Actor: s.current, Target: target}
	s.interaction = &req
	s.setState(StateInteracting)
	s.current.BeginInteraction()
	s.emit(events.Event{Kind: events.InteractionStarted, Actor: s.current, Owner: s.current.OwnerID(), Target: target})

	h, ok := s.interactions[kind]
	if !ok || h == nil {
		s.logger.Info("no interaction handler, resuming", "kind", kind.String())
		s.interaction = nil
		s.post(s.endInteraction)
		return
	}
	h.BeginInteraction(req)
}

func (s *Scheduler) endInteraction() {
	if s.state != StateInteracting {
		return
	}
	s.current.EndInteraction()
	s.emit(events.Event{Kind: events.InteractionEnded, Actor: s.current, Owner: s.current.OwnerID()})
	s.continueOrAdvance()
}

func (s *Scheduler) continueOrAdvance() {
	if s.current != nil && s.current.CanAct() {
		s.requestAction()
		return
	}
	s.nextActor()
}

func (s *Scheduler) finishActor() {
	a := s.current
	if a == nil {
		return
	}
	a.EndTurn()
	s.emit(events.Event{Kind: events.ActorTurnEnded, Actor: a, Owner: a.OwnerID()})
	s.current = nil
}

// nextActor moves to the owner's next actor. The roster is re-read so that
// actors removed during their own turn do not shift the order.
func (s *Scheduler) nextActor() {
	cur := s.current
	s.finishActor()

	owner := s.owners[s.ownerIdx]
	actors := s.session.ActorsForOwner(owner)
	next := s.actorIdx
	if i := slices.Index(actors, cur); i >= 0 {
		next = i + 1
	}
	if next < len(actors) {
		s.actorIdx = next
		s.beginActorTurn(actors[next])
		return
	}
	s.emit(events.Event{Kind: events.OwnerTurnEnded, Owner: owner})
	s.nextOwner()
}

// finishOwner ends the turn of every remaining actor of the current owner.
func (s *Scheduler) finishOwner() {
	s.finishActor()
	owner := s.owners[s.ownerIdx]
	for _, a := range s.session.ActorsForOwner(owner) {
		if a.Activity() != entity.ActivityDisabled {
			a.EndTurn()
		}
	}
	s.emit(events.Event{Kind: events.OwnerTurnEnded, Owner: owner})
	s.nextOwner()
}

func (s *Scheduler) endDay() {
	s.setState(StateDayEnd)
	s.current = nil
	ended := s.session.Day()
	for _, h := range s.hooks {
		h.EndOfDay(s.dayCtx)
	}
	day := s.session.AdvanceDay()
	s.logger.Info("day ended", "day", ended)
	s.emit(events.Event{Kind: events.DayEnded, Day: ended, Week: session.WeekOf(ended)})

	if session.IsWeekStart(day) {
		week := session.WeekOf(day)
		s.logger.Info("week started", "week", week)
		for _, h := range s.hooks {
			h.StartOfWeek(s.dayCtx, week)
		}
		s.emit(events.Event{Kind: events.WeekStarted, Day: day, Week: week})
	}
	s.endDaySpan()
	s.deferred = append(s.deferred, s.beginDay)
}

func (s *Scheduler) endDaySpan() {
	if s.daySpan != nil {
		s.daySpan.End()
		s.daySpan = nil
	}
}

func describe(a action.Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.String()
}
