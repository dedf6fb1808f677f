package action

import (
	"fmt"

	"github.com/samdwyer/wayfarer/internal/world"
)

// ResultKind tells the scheduler what an executed action led to.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultMoved
	ResultEnterStructure
	ResultTriggerCombat
	ResultResourceGained
	ResultSkipActor
	ResultTurnEnded
)

// String returns a human-readable name for the result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "None"
	case ResultMoved:
		return "Moved"
	case ResultEnterStructure:
		return "EnterStructure"
	case ResultTriggerCombat:
		return "TriggerCombat"
	case ResultResourceGained:
		return "ResourceGained"
	case ResultSkipActor:
		return "SkipActor"
	case ResultTurnEnded:
		return "TurnEnded"
	default:
		return "Unknown"
	}
}

// Result is the outcome of executing one action.
type Result struct {
	Success bool
	Kind    ResultKind
	// Payload carries the kind-specific subject: *world.Structure for
	// EnterStructure, the target world.Entity for TriggerCombat and the
	// collected *world.Pickup for ResourceGained.
	Payload any
	Message string
	Err     error
}

// Succeeded builds a successful result.
func Succeeded(kind ResultKind, payload any) Result {
	return Result{Success: true, Kind: kind, Payload: payload}
}

// Failed builds a failed result carrying the reason.
func Failed(err error) Result {
	if err == nil {
		err = ErrUnknownAction
	}
	return Result{Kind: ResultNone, Err: err, Message: err.Error()}
}

// Suspends reports whether the result hands control to an interaction that
// must finish before scheduling continues.
func (r Result) Suspends() bool {
	return r.Success && (r.Kind == ResultEnterStructure || r.Kind == ResultTriggerCombat)
}

// Target returns the payload as a world entity, if it is one.
func (r Result) Target() (world.Entity, bool) {
	e, ok := r.Payload.(world.Entity)
	return e, ok && e != nil
}

func (r Result) String() string {
	if !r.Success {
		return fmt.Sprintf("failed: %s", r.Message)
	}
	return r.Kind.String()
}
