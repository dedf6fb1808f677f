package game

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible map generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Width and Height override the scenario's map size when non-zero.
	Width, Height int

	// Scenario is the embedded scenario file to load.
	Scenario string

	// Headless runs without a terminal UI; every owner is AI-controlled and
	// events are narrated to Output.
	Headless bool

	// Days stops a headless run once this many days have ended. 0 runs
	// until cancelled.
	Days int

	// TickInterval is the time between scheduler ticks. 0 ticks as fast as
	// possible in headless mode.
	TickInterval time.Duration

	// VisitTicks is how many ticks a structure visit or skirmish lasts.
	VisitTicks int

	// Instant completes moves in one tick instead of one cell per tick.
	Instant bool

	// FeedAddr, when set, serves the websocket spectator feed.
	FeedAddr string

	Verbosity int
	Telemetry bool

	// Output receives headless narration. nil means os.Stdout.
	Output io.Writer
}

// DefaultConfig returns the settings used when no environment overrides are
// present.
func DefaultConfig() Config {
	return Config{
		Scenario:     "scenario.json",
		TickInterval: 100 * time.Millisecond,
		VisitTicks:   5,
		Telemetry:    true,
	}
}

// LoadConfig reads WAYFARER_* environment variables on top of
// DefaultConfig.
func LoadConfig() (Config, error) {
	return loadConfig(os.LookupEnv)
}

func loadConfig(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	r := &envReader{lookup: lookup}
	r.int64Var("WAYFARER_SEED", &cfg.Seed)
	r.intVar("WAYFARER_WIDTH", &cfg.Width)
	r.intVar("WAYFARER_HEIGHT", &cfg.Height)
	r.stringVar("WAYFARER_SCENARIO", &cfg.Scenario)
	r.boolVar("WAYFARER_HEADLESS", &cfg.Headless)
	r.intVar("WAYFARER_DAYS", &cfg.Days)
	r.durationVar("WAYFARER_TICK", &cfg.TickInterval)
	r.intVar("WAYFARER_VISIT_TICKS", &cfg.VisitTicks)
	r.boolVar("WAYFARER_INSTANT", &cfg.Instant)
	r.stringVar("WAYFARER_FEED_ADDR", &cfg.FeedAddr)
	r.intVar("WAYFARER_VERBOSITY", &cfg.Verbosity)
	r.boolVar("WAYFARER_TELEMETRY", &cfg.Telemetry)
	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects negative sizes and durations.
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("map size %dx%d: must not be negative", c.Width, c.Height)
	case c.Days < 0:
		return fmt.Errorf("days %d: must not be negative", c.Days)
	case c.TickInterval < 0:
		return fmt.Errorf("tick interval %s: must not be negative", c.TickInterval)
	case c.VisitTicks < 0:
		return fmt.Errorf("visit ticks %d: must not be negative", c.VisitTicks)
	case c.Scenario == "":
		return errors.New("scenario: must not be empty")
	}
	return nil
}

// envReader collects parse errors so every bad variable is reported at
// once.
type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *envReader) get(name string) (string, bool) {
	v, ok := r.lookup(name)
	return v, ok && v != ""
}

func (r *envReader) fail(name, value string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", name, value, err))
}

func (r *envReader) stringVar(name string, dst *string) {
	if v, ok := r.get(name); ok {
		*dst = v
	}
}

func (r *envReader) intVar(name string, dst *int) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = n
}

func (r *envReader) int64Var(name string, dst *int64) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = n
}

func (r *envReader) boolVar(name string, dst *bool) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = b
}

func (r *envReader) durationVar(name string, dst *time.Duration) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = d
}
