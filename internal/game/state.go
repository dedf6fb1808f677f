package game

import "github.com/samdwyer/wayfarer/internal/turn"

// Mode is what the front end is currently showing.
type Mode int

const (
	// ModeOrders means the human player is choosing an action.
	ModeOrders Mode = iota
	// ModeWatching means the AI is acting or a move is animating.
	ModeWatching
	// ModeVisit means an actor is inside a structure or a skirmish.
	ModeVisit
	// ModePaused means the scheduler is paused.
	ModePaused
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeOrders:
		return "orders"
	case ModeWatching:
		return "watching"
	case ModeVisit:
		return "visit"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Mode derives the front-end mode from the scheduler and the human input
// state.
func (g *Game) Mode() Mode {
	switch {
	case g.sched.Paused():
		return ModePaused
	case g.sched.State() == turn.StateInteracting:
		return ModeVisit
	case g.human != nil && g.human.IsWaiting():
		return ModeOrders
	default:
		return ModeWatching
	}
}
