// Package events carries scheduler and executor notifications to observers.
// Listeners are advisory: nothing in the core depends on them running.
package events

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/world"
)

// Kind identifies what happened.
type Kind int

const (
	StateChanged Kind = iota
	DayStarted
	DayEnded
	WeekStarted
	OwnerTurnStarted
	OwnerTurnEnded
	ActorTurnStarted
	ActorTurnEnded
	ActionRequested
	ActionStarted
	ActorMoved
	ActionCompleted
	ActionFailed
	InteractionStarted
	InteractionEnded
)

var kindNames = map[Kind]string{
	StateChanged:       "state_changed",
	DayStarted:         "day_started",
	DayEnded:           "day_ended",
	WeekStarted:        "week_started",
	OwnerTurnStarted:   "owner_turn_started",
	OwnerTurnEnded:     "owner_turn_ended",
	ActorTurnStarted:   "actor_turn_started",
	ActorTurnEnded:     "actor_turn_ended",
	ActionRequested:    "action_requested",
	ActionStarted:      "action_started",
	ActorMoved:         "actor_moved",
	ActionCompleted:    "action_completed",
	ActionFailed:       "action_failed",
	InteractionStarted: "interaction_started",
	InteractionEnded:   "interaction_ended",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a single notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind  Kind
	Day   int
	Week  int
	Owner int

	Actor  *entity.Actor
	Action action.Action
	Result action.Result
	Target world.Entity

	// From and To are set for ActorMoved.
	From, To world.Cell

	// State and PrevState are scheduler state names for StateChanged.
	State, PrevState string
}

// Listener receives events synchronously, in registration order.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher fans events out to an ordered list of listeners. A nil
// *Dispatcher is valid and drops everything.
type Dispatcher struct {
	listeners []Listener
	logger    logr.Logger
}

// NewDispatcher creates an empty dispatcher. Listener panics are recovered
// and reported to logger.
func NewDispatcher(logger logr.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Add appends l to the listener list.
func (d *Dispatcher) Add(l Listener) {
	if l == nil {
		return
	}
	d.listeners = append(d.listeners, l)
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	if d == nil {
		return 0
	}
	return len(d.listeners)
}

// Emit delivers e to every listener.
func (d *Dispatcher) Emit(e Event) {
	if d == nil {
		return
	}
	for _, l := range d.listeners {
		d.deliver(l, e)
	}
}

func (d *Dispatcher) deliver(l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(fmt.Errorf("listener panic: %v", r), "dropping event for listener", "event", e.Kind.String())
		}
	}()
	l.OnEvent(e)
}

// Recorder is a Listener that keeps every event it sees.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnEvent(e Event) { r.Events = append(r.Events, e) }

// Kinds returns the kinds of the recorded events, in order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Kind
	}
	return out
}

// Count returns how many recorded events have kind k.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }
