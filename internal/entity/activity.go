package entity

// Activity is an actor's local presentation state. The scheduler never
// consults it to decide legality.
type Activity int

const (
	ActivityIdle Activity = iota
	ActivityMoving
	ActivityInteracting
	ActivityDisabled
)

// String returns a human-readable name for the activity.
func (a Activity) String() string {
	switch a {
	case ActivityIdle:
		return "Idle"
	case ActivityMoving:
		return "Moving"
	case ActivityInteracting:
		return "Interacting"
	case ActivityDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

func (a *Actor) setActivity(next Activity) {
	prev := a.activity
	if prev == next {
		return
	}
	a.activity = next
	if a.OnActivityChanged != nil {
		a.OnActivityChanged(prev, next)
	}
}

// restingActivity is where an actor lands after finishing something.
func (a *Actor) restingActivity() Activity {
	if a.CanAct() {
		return ActivityIdle
	}
	return ActivityDisabled
}

// BeginMove enters Moving. It returns false, and changes nothing, when the
// actor is already moving.
func (a *Actor) BeginMove() bool {
	if a.activity == ActivityMoving {
		return false
	}
	a.setActivity(ActivityMoving)
	return true
}

// EndMove leaves Moving for Idle, or Disabled when no points remain.
func (a *Actor) EndMove() {
	if a.activity != ActivityMoving {
		return
	}
	a.setActivity(a.restingActivity())
}

// BeginInteraction enters Interacting.
func (a *Actor) BeginInteraction() {
	a.setActivity(ActivityInteracting)
}

// EndInteraction leaves Interacting for Idle or Disabled.
func (a *Actor) EndInteraction() {
	if a.activity != ActivityInteracting {
		return
	}
	a.setActivity(a.restingActivity())
}

// EndTurn disables the actor until its next turn.
func (a *Actor) EndTurn() {
	a.setActivity(ActivityDisabled)
}

// StartTurn returns the actor to Idle. Call after ResetMovement.
func (a *Actor) StartTurn() {
	a.setActivity(ActivityIdle)
}
