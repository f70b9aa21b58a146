package app

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"flowpath/internal/sims/crowd"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override, e.g. FLOWPATH_LAYOUT.
const EnvPrefix = "FLOWPATH_"

var worldKeys = []string{
	"layout", "seed", "goal", "spawn", "agents",
	"speed_min", "speed_max", "substeps", "probe", "random_spawn",
}

// Config represents the settings shared by every shell.
type Config struct {
	World crowd.Config

	Tile    int
	TPS     int
	MaxStep time.Duration
	Addr    string

	goal  string
	spawn string
}

// NewConfig returns a Config populated with the classic demo defaults.
func NewConfig() *Config {
	return &Config{
		World:   crowd.DefaultConfig(),
		Tile:    64,
		TPS:     60,
		MaxStep: 100 * time.Millisecond,
		Addr:    ":8080",
	}
}

// LoadEnv loads the given .env files into the process environment, skipping
// files that do not exist, then applies FLOWPATH_* variables. Variables
// already set in the environment win over .env entries.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	env := func(key string) (string, bool) {
		return lookup(EnvPrefix + strings.ToUpper(key))
	}

	world := map[string]string{}
	for _, key := range worldKeys {
		if v, ok := env(key); ok {
			world[key] = v
		}
	}
	if len(world) > 0 {
		c.World = crowd.FromMap(world)
	}

	if v, ok := env("tile"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%sTILE=%q: want a positive integer", EnvPrefix, v)
		}
		c.Tile = n
	}
	if v, ok := env("tps"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%sTPS=%q: want a positive integer", EnvPrefix, v)
		}
		c.TPS = n
	}
	if v, ok := env("max_step"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sMAX_STEP: %w", EnvPrefix, err)
		}
		c.MaxStep = d
	}
	if v, ok := env("addr"); ok && v != "" {
		c.Addr = v
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet. Call Finish
// after parsing.
func (c *Config) Bind(fs *flag.FlagSet) {
	w := &c.World
	fs.StringVar(&w.Layout, "layout", w.Layout, "built-in layout name or path to a grid file")
	fs.Int64Var(&w.Seed, "seed", w.Seed, "seed for agent spawns")
	fs.StringVar(&c.goal, "goal", c.goal, "goal cell as x,y (default: the layout's goal)")
	fs.StringVar(&c.spawn, "spawn", c.spawn, "spawn cell as x,y (default: the layout's spawn)")
	fs.IntVar(&w.Params.Agents, "agents", w.Params.Agents, "number of agents")
	fs.Float64Var(&w.Params.SpeedMin, "speed-min", w.Params.SpeedMin, "slowest agent speed in cells/ms")
	fs.Float64Var(&w.Params.SpeedMax, "speed-max", w.Params.SpeedMax, "fastest agent speed in cells/ms")
	fs.IntVar(&w.Params.Substeps, "substeps", w.Params.Substeps, "collision sub-steps per tick")
	fs.Float64Var(&w.Params.Probe, "probe", w.Params.Probe, "collision probe offset in cells")
	fs.BoolVar(&w.Params.RandomSpawn, "random-spawn", w.Params.RandomSpawn, "spawn agents on random open cells")

	fs.IntVar(&c.Tile, "tile", c.Tile, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.DurationVar(&c.MaxStep, "max-step", c.MaxStep, "largest simulated step per tick")
	fs.StringVar(&c.Addr, "addr", c.Addr, "observer listen address")
}

// Finish validates the parsed flags and resolves the goal and spawn cells.
func (c *Config) Finish() error {
	if c.goal != "" {
		cell, err := crowd.ParseCell(c.goal)
		if err != nil {
			return fmt.Errorf("-goal: %w", err)
		}
		c.World.Goal, c.World.OverrideGoal = cell, true
	}
	if c.spawn != "" {
		cell, err := crowd.ParseCell(c.spawn)
		if err != nil {
			return fmt.Errorf("-spawn: %w", err)
		}
		c.World.Spawn, c.World.OverrideSpawn = cell, true
	}
	p := &c.World.Params
	switch {
	case p.Agents < 0:
		return fmt.Errorf("-agents %d: must not be negative", p.Agents)
	case p.SpeedMin <= 0 || p.SpeedMax < p.SpeedMin:
		return fmt.Errorf("speeds %g..%g: want 0 < speed-min <= speed-max", p.SpeedMin, p.SpeedMax)
	case p.Substeps < 1:
		return fmt.Errorf("-substeps %d: must be positive", p.Substeps)
	case p.Probe < 0 || p.Probe >= 0.5:
		return fmt.Errorf("-probe %g: want 0 <= probe < 0.5", p.Probe)
	case c.Tile < 1 || c.TPS < 1:
		return fmt.Errorf("-tile and -tps must be positive")
	}
	return nil
}
