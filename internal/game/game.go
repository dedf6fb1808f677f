// Package game wires the world, the session and the turn scheduler into a
// playable loop, either in a terminal or headless.
package game

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wayfarer/internal/events"
	"github.com/samdwyer/wayfarer/internal/executor"
	"github.com/samdwyer/wayfarer/internal/feed"
	"github.com/samdwyer/wayfarer/internal/gamedata"
	"github.com/samdwyer/wayfarer/internal/pathfind"
	"github.com/samdwyer/wayfarer/internal/provider"
	"github.com/samdwyer/wayfarer/internal/session"
	"github.com/samdwyer/wayfarer/internal/telemetry"
	"github.com/samdwyer/wayfarer/internal/turn"
	"github.com/samdwyer/wayfarer/internal/ui"
	"github.com/samdwyer/wayfarer/internal/world"
)

const terminalTick = 100 * time.Millisecond

// Game holds the entire game state.
type Game struct {
	cfg    Config
	logger logr.Logger
	tracer trace.Tracer
	rng    *rand.Rand

	gen       *world.Generator
	rooms     []world.Room
	world     *world.World
	session   *session.Session
	resources *gamedata.ResourceRegistry
	palette   *gamedata.Palette

	events   *events.Dispatcher
	executor *executor.Executor
	sched    *turn.Scheduler
	human    *provider.Human
	visits   *Countdown
	narrator *ui.Narrator
	feed     *feed.Hub

	screen   *ui.Screen
	renderer *ui.Renderer
	hover    []world.Cell
	notes    []string
	running  bool
}

// New builds a game from cfg: it loads the data tables, generates the map,
// populates it from the scenario and wires the scheduler.
func New(ctx context.Context, cfg Config, logger logr.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:     cfg,
		logger:  logger.WithName("game"),
		tracer:  telemetry.Tracer("game"),
		rng:     rand.New(rand.NewSource(seed)),
		running: true,
	}

	ctx, span := g.tracer.Start(ctx, "game.init", trace.WithAttributes(attribute.Int64("game.seed", seed)))
	defer span.End()

	t, err := loadTables(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	g.resources = t.resources
	g.palette = t.terrain.Palette()
	if err := g.buildMap(ctx, t); err != nil {
		return nil, err
	}
	g.wire(logger)
	return g, nil
}

// wire connects the event listeners, executor, scheduler, providers and
// interaction handlers.
func (g *Game) wire(logger logr.Logger) {
	g.events = events.NewDispatcher(logger.WithName("events"))
	g.events.Add(g)

	out := g.cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if !g.cfg.Headless {
		out = nil
	}
	g.narrator = ui.NewNarrator(out, g.cfg.Verbosity > 0)
	g.events.Add(g.narrator)

	if g.cfg.FeedAddr != "" {
		g.feed = feed.NewHub(logger)
		g.events.Add(g.feed)
	}

	g.executor = executor.New(g.world, executor.Options{
		Instant:   g.cfg.Instant,
		Collector: g.world,
		Events:    g.events,
		Logger:    logger.WithName("executor"),
		Tracer:    telemetry.Tracer("executor"),
	})
	g.sched = turn.New(turn.Config{
		World:    g.world,
		Session:  g.session,
		Executor: g.executor,
		Events:   g.events,
		Hooks:    []turn.DayHook{g.calendarHook()},
		Logger:   logger,
		Tracer:   telemetry.Tracer("turn"),
	})

	pf := pathfind.New(g.world)
	for _, id := range g.session.Owners() {
		o, _ := g.session.Owner(id)
		if o.Human && !g.cfg.Headless && g.human == nil {
			g.human = provider.NewHuman(pf, logger.WithName("human"))
			g.sched.RegisterProvider(id, g.human)
			continue
		}
		g.sched.RegisterProvider(id, provider.NewAI(pf, logger.WithName("ai")))
	}

	g.visits = NewCountdown(g.sched, g.cfg.VisitTicks, g.logger)
	g.sched.RegisterInteraction(turn.InteractionStructure, turn.InteractionFunc(g.visitStructure))
	g.sched.RegisterInteraction(turn.InteractionCombat, turn.InteractionFunc(g.skirmish))
}

// World returns the map.
func (g *Game) World() *world.World { return g.world }

// Session returns the rosters and calendar.
func (g *Game) Session() *session.Session { return g.session }

// Scheduler returns the turn scheduler.
func (g *Game) Scheduler() *turn.Scheduler { return g.sched }

// Step advances the game by one tick.
func (g *Game) Step() {
	g.sched.Tick()
	g.visits.Tick()
}

// Run starts the first day and loops until the player quits, ctx is
// cancelled or, headless, the configured number of days has passed.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	if g.feed != nil {
		feedCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := g.feed.ListenAndServe(feedCtx, g.cfg.FeedAddr); err != nil {
				g.logger.Error(err, "spectator feed stopped")
			}
		}()
	}

	if err := g.sched.StartDay(ctx); err != nil {
		return err
	}
	if g.cfg.Headless {
		return g.runHeadless(ctx)
	}
	return g.runTerminal(ctx)
}

func (g *Game) finished() bool {
	return g.cfg.Days > 0 && g.session.Day() > g.cfg.Days
}

func (g *Game) runHeadless(ctx context.Context) error {
	var tick <-chan time.Time
	if g.cfg.TickInterval > 0 {
		ticker := time.NewTicker(g.cfg.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for !g.finished() {
		if tick == nil {
			if ctx.Err() != nil {
				return nil
			}
		} else {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		}
		g.Step()
	}
	g.logger.Info("run complete", "days", g.cfg.Days)
	return nil
}

func (g *Game) runTerminal(ctx context.Context) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen, g.palette)
	for _, id := range g.session.Owners() {
		o, _ := g.session.Owner(id)
		if c, err := gamedata.ParseHexColor(o.Color); err == nil {
			g.renderer.SetOwnerColor(id, c)
		}
	}

	interval := g.cfg.TickInterval
	if interval <= 0 {
		interval = terminalTick
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	input := screen.Events()

	g.render()
	for g.running {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-input:
			if !ok {
				return nil
			}
			g.handleInput(ev)
		case <-ticker.C:
			g.Step()
		}
		g.render()
	}
	return nil
}

// render draws the current frame.
func (g *Game) render() {
	f := ui.Frame{
		World:   g.world,
		Actors:  g.session.Actors(),
		Current: g.sched.CurrentActor(),
		Path:    g.hover,
		Status:  ui.StatusLine(g.session.Day(), g.session.Week(), g.sched.CurrentActor(), g.Mode().String()),
	}
	if g.human != nil {
		f.Reach = g.human.Reach()
	}
	f.Messages = append(g.narrator.Recent(), g.notes...)
	g.renderer.Render(f)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case ' ', 'w':
			g.order(g.human.Skip)
		case 'e':
			g.order(g.human.EndTurn)
		case 'p':
			if g.sched.Paused() {
				g.sched.Unpause()
			} else {
				g.sched.Pause()
			}
		}
	}
}

// handleMouseEvent previews a path on hover and acts on a left click.
func (g *Game) handleMouseEvent(ev *tcell.EventMouse) {
	if g.human == nil {
		return
	}
	x, y := ev.Position()
	c, ok := g.renderer.ScreenCell(g.world, x, y)
	if !ok {
		g.hover = nil
		return
	}
	if ev.Buttons()&tcell.Button1 == 0 {
		g.hover, _, _ = g.human.Preview(c)
		return
	}
	g.hover = nil
	g.order(func() error {
		_, err := g.human.Click(c)
		return err
	})
}

// order runs a human command and shows why it was refused, if it was.
func (g *Game) order(cmd func() error) {
	g.notes = g.notes[:0]
	if g.human == nil {
		return
	}
	err := cmd()
	if err == nil || errors.Is(err, provider.ErrNotWaiting) {
		return
	}
	g.notes = append(g.notes, err.Error())
}

// Close stops the scheduler and releases the screen and the feed.
func (g *Game) Close() {
	g.sched.Close()
	if g.feed != nil {
		g.feed.Close()
	}
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
