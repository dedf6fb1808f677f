package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/gookit/color"

	"github.com/samdwyer/wayfarer/internal/events"
	"github.com/samdwyer/wayfarer/internal/world"
)

var (
	colorCalendar = color.Style{color.FgCyan, color.OpBold}
	colorTurn     = color.Style{color.FgBlue}
	colorDone     = color.Style{color.FgGreen}
	colorDenied   = color.Style{color.FgRed, color.OpBold}
	colorVisit    = color.Style{color.FgMagenta, color.OpBold}
	colorSubtle   = color.Style{color.FgGray}
)

// Narrator is an events.Listener printing a line per notable event. Quiet
// narrators skip per-step movement and actor turn boundaries.
type Narrator struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
	lines   []string
	keep    int
}

// NewNarrator writes to out. A nil out only records recent lines.
func NewNarrator(out io.Writer, verbose bool) *Narrator {
	return &Narrator{out: out, verbose: verbose, keep: 5}
}

// OnEvent prints e if it is worth narrating.
func (n *Narrator) OnEvent(e events.Event) {
	if !n.verbose && chatty(e.Kind) {
		return
	}
	line, ok := Describe(e)
	if !ok {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.lines = append(n.lines, line)
	if len(n.lines) > n.keep {
		n.lines = n.lines[len(n.lines)-n.keep:]
	}
	if n.out != nil {
		fmt.Fprintln(n.out, styleFor(e.Kind).Sprint(line))
	}
}

// Recent returns the last few narrated lines without colour codes.
func (n *Narrator) Recent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.lines...)
}

func chatty(k events.Kind) bool {
	switch k {
	case events.ActorMoved, events.ActorTurnStarted, events.ActorTurnEnded:
		return true
	}
	return false
}

func styleFor(k events.Kind) color.Style {
	switch k {
	case events.DayStarted, events.DayEnded, events.WeekStarted:
		return colorCalendar
	case events.OwnerTurnStarted, events.OwnerTurnEnded:
		return colorTurn
	case events.ActionCompleted:
		return colorDone
	case events.ActionFailed:
		return colorDenied
	case events.InteractionStarted, events.InteractionEnded:
		return colorVisit
	default:
		return colorSubtle
	}
}

// Describe renders e as a sentence. It reports false for events that are
// bookkeeping only.
func Describe(e events.Event) (string, bool) {
	actor := "someone"
	if e.Actor != nil {
		actor = e.Actor.Name
	}
	switch e.Kind {
	case events.DayStarted:
		return fmt.Sprintf("Day %d dawns.", e.Day), true
	case events.DayEnded:
		return fmt.Sprintf("Day %d ends.", e.Day), true
	case events.WeekStarted:
		return fmt.Sprintf("Week %d begins.", e.Week), true
	case events.OwnerTurnStarted:
		return fmt.Sprintf("Owner %d takes the field.", e.Owner), true
	case events.OwnerTurnEnded:
		return fmt.Sprintf("Owner %d is done.", e.Owner), true
	case events.ActorTurnStarted:
		return fmt.Sprintf("%s is up.", actor), true
	case events.ActorTurnEnded:
		return fmt.Sprintf("%s rests.", actor), true
	case events.ActorMoved:
		return fmt.Sprintf("%s walks to %s.", actor, e.To), true
	case events.ActionCompleted:
		if e.Action == nil {
			return "", false
		}
		return fmt.Sprintf("%s finishes %s (%s).", actor, e.Action.Kind(), e.Result), true
	case events.ActionFailed:
		what := "action"
		if e.Action != nil {
			what = e.Action.Kind().String()
		}
		return fmt.Sprintf("%s cannot %s: %s.", actor, what, e.Result.Message), true
	case events.InteractionStarted:
		return fmt.Sprintf("%s reaches %s.", actor, nameOr(e.Target, "something")), true
	case events.InteractionEnded:
		return fmt.Sprintf("%s moves on.", actor), true
	default:
		return "", false
	}
}

func nameOr(e world.Entity, fallback string) string {
	if name := world.EntityName(e); name != "" {
		return name
	}
	return fallback
}
