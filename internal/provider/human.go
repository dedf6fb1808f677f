package provider

import (
	"github.com/go-logr/logr"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/pathfind"
	"github.com/samdwyer/wayfarer/internal/world"
)

// InputState is where the human provider is in its request cycle.
type InputState int

const (
	InputDisabled InputState = iota
	InputIdle
	InputWaiting
	InputExecuting
)

// String returns a human-readable name for the input state.
func (s InputState) String() string {
	switch s {
	case InputDisabled:
		return "Disabled"
	case InputIdle:
		return "Idle"
	case InputWaiting:
		return "Waiting"
	case InputExecuting:
		return "Executing"
	default:
		return "Unknown"
	}
}

// Human turns player input into actions. Requests stay outstanding until
// the player clicks, submits, skips or ends the turn. It is not safe for
// concurrent use; feed it input from the same loop that ticks the
// scheduler.
type Human struct {
	pathfinder *pathfind.Pathfinder
	logger     logr.Logger

	state   InputState
	actor   *entity.Actor
	view    world.View
	onReady func(action.Action)
}

// NewHuman creates an enabled human provider.
func NewHuman(pf *pathfind.Pathfinder, logger logr.Logger) *Human {
	return &Human{
		pathfinder: pf,
		logger:     logger,
		state:      InputIdle,
	}
}

func (h *Human) RequestAction(actor *entity.Actor, view world.View, onReady func(action.Action)) {
	if h.state == InputDisabled {
		h.logger.Info("input disabled, ignoring action request", "actor", actor.Name)
		return
	}
	h.actor, h.view, h.onReady = actor, view, onReady
	h.state = InputWaiting
}

func (h *Human) CancelRequest() {
	if h.state != InputWaiting {
		return
	}
	h.clear()
	h.state = InputIdle
}

func (h *Human) SetEnabled(enabled bool) {
	if !enabled {
		h.CancelRequest()
		h.state = InputDisabled
		return
	}
	if h.state == InputDisabled {
		h.state = InputIdle
	}
}

func (h *Human) Enabled() bool       { return h.state != InputDisabled }
func (h *Human) RequiresInput() bool { return true }
func (h *Human) IsWaiting() bool     { return h.state == InputWaiting }

// State returns the current input state.
func (h *Human) State() InputState { return h.state }

// Actor returns the actor awaiting orders, or nil.
func (h *Human) Actor() *entity.Actor {
	if h.state != InputWaiting {
		return nil
	}
	return h.actor
}

// Submit hands a to the scheduler. Illegal actions are refused and the
// request stays open.
func (h *Human) Submit(a action.Action) error {
	if h.state != InputWaiting {
		return ErrNotWaiting
	}
	if a == nil {
		return ErrInvalidTarget
	}
	if a.Actor() != h.actor {
		return ErrWrongActor
	}
	if err := a.Check(h.view); err != nil {
		return err
	}

	onReady := h.onReady
	h.clear()
	h.state = InputExecuting
	onReady(a)
	return nil
}

// Click reads the intent of a map click on c and submits it.
func (h *Human) Click(c world.Cell) (action.Action, error) {
	if h.state != InputWaiting {
		return nil, ErrNotWaiting
	}
	a, err := Intent(h.actor, h.view, h.pathfinder, c)
	if err != nil {
		return nil, err
	}
	return a, h.Submit(a)
}

// Skip ends the current actor's turn.
func (h *Human) Skip() error {
	if h.state != InputWaiting {
		return ErrNotWaiting
	}
	return h.Submit(action.NewWait(h.actor))
}

// EndTurn ends the turn for every actor of the owner.
func (h *Human) EndTurn() error {
	if h.state != InputWaiting {
		return ErrNotWaiting
	}
	return h.Submit(action.NewEndTurn(h.actor))
}

// Preview returns the path and cost the current actor would take to c,
// without submitting anything.
func (h *Human) Preview(c world.Cell) ([]world.Cell, int, bool) {
	if h.state != InputWaiting {
		return nil, 0, false
	}
	path, ok := h.pathfinder.FindPath(h.actor.Position(), c)
	if !ok {
		return nil, 0, false
	}
	return path, pathfind.PathCost(h.view, path), true
}

// Reach returns the cells the current actor can still reach today.
func (h *Human) Reach() map[world.Cell]int {
	if h.state != InputWaiting {
		return nil
	}
	return h.pathfinder.ReachableArea(h.actor.Position(), h.actor.MovementPoints())
}

func (h *Human) clear() {
	h.actor, h.view, h.onReady = nil, nil, nil
}
