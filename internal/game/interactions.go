package game

import (
	"github.com/go-logr/logr"

	"github.com/samdwyer/wayfarer/internal/turn"
	"github.com/samdwyer/wayfarer/internal/world"
)

// Resumer ends the interaction in progress.
type Resumer interface {
	Resume() error
}

// Countdown holds an interaction open for a fixed number of ticks and then
// resumes the scheduler.
type Countdown struct {
	resumer   Resumer
	ticks     int
	remaining int
	active    bool
	logger    logr.Logger
}

// NewCountdown creates a countdown lasting ticks ticks. Zero resumes
// immediately.
func NewCountdown(r Resumer, ticks int, logger logr.Logger) *Countdown {
	return &Countdown{resumer: r, ticks: ticks, logger: logger}
}

// Begin starts counting.
func (c *Countdown) Begin() {
	if c.ticks <= 0 {
		c.finish()
		return
	}
	c.active = true
	c.remaining = c.ticks
}

func (c *Countdown) Active() bool { return c.active }

// Tick counts down one tick and resumes when it reaches zero.
func (c *Countdown) Tick() {
	if !c.active {
		return
	}
	c.remaining--
	if c.remaining <= 0 {
		c.finish()
	}
}

func (c *Countdown) finish() {
	c.active = false
	if err := c.resumer.Resume(); err != nil {
		c.logger.Error(err, "resuming after interaction")
	}
}

// visitStructure flags a structure for the visiting owner, then waits out
// the visit.
func (g *Game) visitStructure(req turn.InteractionRequest) {
	if s, ok := req.Target.(*world.Structure); ok && s.OwnerID() != req.Actor.OwnerID() {
		g.logger.Info("structure flagged", "structure", s.Name, "from", s.OwnerID(), "to", req.Actor.OwnerID())
		s.SetOwner(req.Actor.OwnerID())
	}
	g.visits.Begin()
}

// skirmish stands in for combat, which is resolved elsewhere: both sides
// stay put and the attacker's turn continues after the countdown.
func (g *Game) skirmish(req turn.InteractionRequest) {
	g.logger.Info("skirmish", "attacker", req.Actor.Name, "defender", world.EntityName(req.Target))
	g.visits.Begin()
}
