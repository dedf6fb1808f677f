package turn

// State is the scheduler's position in the day cycle.
type State int

const (
	StateIdle State = iota
	StateDayStart
	StateWaitingForAction
	StateExecutingAction
	StateInteracting
	StateDayEnd
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDayStart:
		return "DayStart"
	case StateWaitingForAction:
		return "WaitingForAction"
	case StateExecutingAction:
		return "ExecutingAction"
	case StateInteracting:
		return "Interacting"
	case StateDayEnd:
		return "DayEnd"
	default:
		return "Unknown"
	}
}
