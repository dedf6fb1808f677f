package turn

import (
	"context"

	"github.com/samdwyer/wayfarer/internal/action"
	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/world"
)

// Session is the roster and calendar the scheduler walks through. The
// scheduler only writes to it through AdvanceDay.
type Session interface {
	Owners() []int
	ActorsForOwner(owner int) []*entity.Actor
	Day() int
	AdvanceDay() int
}

// Executor runs actions. Step advances in-flight movement by one cell.
type Executor interface {
	Execute(ctx context.Context, a action.Action, onComplete func(action.Result))
	Step() bool
	Moving() bool
	Abort()
}

// InteractionKind names the sub-activity an action opened.
type InteractionKind int

const (
	InteractionStructure InteractionKind = iota
	InteractionCombat
)

// String returns a human-readable name for the interaction kind.
func (k InteractionKind) String() string {
	switch k {
	case InteractionStructure:
		return "structure"
	case InteractionCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// InteractionRequest describes an interaction handed to a handler.
type InteractionRequest struct {
	Kind   InteractionKind
	Actor  *entity.Actor
	Target world.Entity
}

// InteractionHandler runs a town visit or a fight. It must call
// Scheduler.Resume exactly once when done, either from BeginInteraction or
// later.
type InteractionHandler interface {
	BeginInteraction(req InteractionRequest)
}

// InteractionFunc adapts a function to InteractionHandler.
type InteractionFunc func(req InteractionRequest)

func (f InteractionFunc) BeginInteraction(req InteractionRequest) { f(req) }

// DayHook receives calendar callbacks. EndOfDay runs before the day counter
// advances; StartOfWeek runs after it, when the new day opens a week.
type DayHook interface {
	EndOfDay(ctx context.Context)
	StartOfWeek(ctx context.Context, week int)
}

// HookFuncs adapts optional functions to DayHook.
type HookFuncs struct {
	OnEndOfDay    func(ctx context.Context)
	OnStartOfWeek func(ctx context.Context, week int)
}

func (h HookFuncs) EndOfDay(ctx context.Context) {
	if h.OnEndOfDay != nil {
		h.OnEndOfDay(ctx)
	}
}

func (h HookFuncs) StartOfWeek(ctx context.Context, week int) {
	if h.OnStartOfWeek != nil {
		h.OnStartOfWeek(ctx, week)
	}
}
