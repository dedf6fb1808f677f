// Package executor carries out legal actions against the world, stepping
// movement one cell per tick.
package executor

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/events"
	"github.com/samdwyer/wayfarer/internal/telemetry"
	"github.com/samdwyer/wayfarer/internal/world"
)

// Collector removes a pickup from the map when it is collected.
type Collector interface {
	Collect(c world.Cell) (*world.Pickup, bool)
}

// Options configures an Executor. The zero value is usable.
type Options struct {
	// Instant completes movement inside Execute instead of one cell per Step.
	Instant   bool
	Collector Collector
	Events    *events.Dispatcher
	Logger    logr.Logger
	Tracer    trace.Tracer
}

// Executor runs one action at a time. It is not safe for concurrent use.
type Executor struct {
	view      world.View
	instant   bool
	collector Collector
	events    *events.Dispatcher
	logger    logr.Logger
	tracer    trace.Tracer

	busy bool
	move *moveRun
}

// moveRun is an in-flight Move waiting for Step calls.
type moveRun struct {
	act        action.Move
	path       []world.Cell
	next       int
	span       trace.Span
	onComplete func(action.Result)
}

// New creates an executor acting on view.
func New(view world.View, opts Options) *Executor {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}
	logger := opts.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	return &Executor{
		view:      view,
		instant:   opts.Instant,
		collector: opts.Collector,
		events:    opts.Events,
		logger:    logger,
		tracer:    tracer,
	}
}

// Busy reports whether an action is in flight.
func (e *Executor) Busy() bool { return e.busy }

// Moving reports whether a Move is waiting for Step calls.
func (e *Executor) Moving() bool { return e.move != nil }

// Execute runs a, calling onComplete exactly once with the result. Actions
// that finish immediately call onComplete before Execute returns; a Move
// calls it from the Step that reaches the destination. While an action is
// in flight every other call fails with action.ErrBusy.
func (e *Executor) Execute(ctx context.Context, a action.Action, onComplete func(action.Result)) {
	if onComplete == nil {
		onComplete = func(action.Result) {}
	}
	if e.busy {
		e.logger.Error(action.ErrBusy, "rejecting action while another is executing", "action", describe(a))
		onComplete(action.Failed(action.ErrBusy))
		return
	}
	if a == nil {
		onComplete(action.Failed(action.ErrUnknownAction))
		return
	}
	if err := a.Check(e.view); err != nil {
		e.reject(a, err, onComplete)
		return
	}

	_, span := e.tracer.Start(ctx, "action.execute", trace.WithAttributes(
		attribute.String("action.kind", a.Kind().String()),
		attribute.String("actor.name", a.Actor().Name),
		attribute.Int("actor.owner", a.Actor().OwnerID()),
	))
	e.busy = true
	e.events.Emit(events.Event{Kind: events.ActionStarted, Actor: a.Actor(), Owner: a.Actor().OwnerID(), Action: a})
	e.logger.V(1).Info("executing", "action", a.String())

	switch act := a.(type) {
	case action.Move:
		e.startMove(act, span, onComplete)
	case action.EnterStructure:
		e.finish(span, a, action.Succeeded(action.ResultEnterStructure, act.Structure()), onComplete)
	case action.PickUp:
		e.finish(span, a, action.Succeeded(action.ResultResourceGained, e.collect(act.Cell())), onComplete)
	case action.Attack:
		e.finish(span, a, action.Succeeded(action.ResultTriggerCombat, act.Target()), onComplete)
	case action.Wait:
		e.finish(span, a, action.Succeeded(action.ResultSkipActor, nil), onComplete)
	case action.EndTurn:
		e.finish(span, a, action.Succeeded(action.ResultTurnEnded, nil), onComplete)
	default:
		e.finish(span, a, action.Failed(action.ErrUnknownAction), onComplete)
	}
}

func (e *Executor) startMove(act action.Move, span trace.Span, onComplete func(action.Result)) {
	actor := act.Actor()
	cost := act.MovementCost(e.view)
	span.SetAttributes(attribute.Int("move.cost", cost), attribute.Int("move.steps", act.Len()))

	if !actor.ConsumeMovement(cost) {
		e.finish(span, act, action.Failed(action.ErrInsufficientMovement), onComplete)
		return
	}
	actor.BeginMove()
	e.move = &moveRun{
		act:        act,
		path:       act.Path(),
		span:       span,
		onComplete: onComplete,
	}
	if e.instant {
		for e.Step() {
		}
	}
}

// Step advances an in-flight Move by one cell. It returns true while more
// cells remain.
func (e *Executor) Step() bool {
	run := e.move
	if run == nil {
		return false
	}
	actor := run.act.Actor()
	from, to := actor.Position(), run.path[run.next]
	actor.MoveTo(to)
	run.next++
	e.events.Emit(events.Event{Kind: events.ActorMoved, Actor: actor, Owner: actor.OwnerID(), Action: run.act, From: from, To: to})

	if run.next < len(run.path) {
		return true
	}
	e.move = nil
	actor.EndMove()
	e.finish(run.span, run.act, action.Succeeded(action.ResultMoved, to), run.onComplete)
	return false
}

// Abort drops an in-flight Move without calling its completion callback.
// The actor keeps the cells already walked and the points already spent.
func (e *Executor) Abort() {
	run := e.move
	if run == nil {
		return
	}
	e.move = nil
	e.busy = false
	run.act.Actor().EndMove()
	run.span.SetStatus(codes.Error, "aborted")
	run.span.End()
	e.logger.Info("movement aborted", "action", run.act.String(), "steps", run.next)
}

func (e *Executor) collect(c world.Cell) *world.Pickup {
	if e.collector == nil {
		return nil
	}
	p, _ := e.collector.Collect(c)
	return p
}

func (e *Executor) reject(a action.Action, err error, onComplete func(action.Result)) {
	e.logger.V(1).Info("action refused", "action", a.String(), "reason", err.Error())
	r := action.Failed(err)
	e.events.Emit(events.Event{Kind: events.ActionFailed, Actor: a.Actor(), Action: a, Result: r, Owner: ownerOf(a)})
	onComplete(r)
}

func (e *Executor) finish(span trace.Span, a action.Action, r action.Result, onComplete func(action.Result)) {
	e.busy = false
	span.SetAttributes(
		attribute.Bool("action.success", r.Success),
		attribute.String("action.result", r.Kind.String()),
	)
	kind := events.ActionCompleted
	if !r.Success {
		span.SetStatus(codes.Error, r.Message)
		kind = events.ActionFailed
	}
	span.End()
	e.events.Emit(events.Event{Kind: kind, Actor: a.Actor(), Owner: a.Actor().OwnerID(), Action: a, Result: r})
	onComplete(r)
}

func ownerOf(a action.Action) int {
	if a.Actor() == nil {
		return world.NoOwner
	}
	return a.Actor().OwnerID()
}

func describe(a action.Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.String()
}
