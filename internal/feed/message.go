package feed

import (
	"github.com/samdwyer/wayfarer/internal/events"
	"github.com/samdwyer/wayfarer/internal/world"
)

// Point is a cell on the wire.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Message is the JSON form of an event sent to spectators.
type Message struct {
	Kind      string `json:"kind"`
	Day       int    `json:"day,omitempty"`
	Week      int    `json:"week,omitempty"`
	Owner     int    `json:"owner"`
	Actor     string `json:"actor,omitempty"`
	Action    string `json:"action,omitempty"`
	Result    string `json:"result,omitempty"`
	Target    string `json:"target,omitempty"`
	From      *Point `json:"from,omitempty"`
	To        *Point `json:"to,omitempty"`
	State     string `json:"state,omitempty"`
	PrevState string `json:"prev_state,omitempty"`
}

// Encode flattens e into a Message.
func Encode(e events.Event) Message {
	m := Message{
		Kind:      e.Kind.String(),
		Day:       e.Day,
		Week:      e.Week,
		Owner:     e.Owner,
		State:     e.State,
		PrevState: e.PrevState,
		Target:    world.EntityName(e.Target),
	}
	if e.Actor != nil {
		m.Actor = e.Actor.Name
	}
	if e.Action != nil {
		m.Action = e.Action.String()
	}
	switch e.Kind {
	case events.ActionCompleted, events.ActionFailed:
		m.Result = e.Result.String()
	case events.ActorMoved:
		m.From = &Point{X: e.From.X, Y: e.From.Y}
		m.To = &Point{X: e.To.X, Y: e.To.Y}
	}
	return m
}
