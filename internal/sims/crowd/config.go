package crowd

import (
	"fmt"
	"strconv"
	"strings"

	"flowpath/internal/core"
)

// Params holds the agent and integrator tunables.
type Params struct {
	Agents   int
	SpeedMin float64 // cells per millisecond
	SpeedMax float64 // cells per millisecond

	Substeps int
	Probe    float64

	RandomSpawn bool
}

// Config selects the layout and overrides its defaults.
type Config struct {
	Layout string
	Seed   int64

	Goal          core.Cell
	OverrideGoal  bool
	Spawn         core.Cell
	OverrideSpawn bool

	Params Params
}

// DefaultConfig reproduces the classic demo: two agents at 0.001 and
// 0.0008 cells/ms.
func DefaultConfig() Config {
	return Config{
		Layout: "classic",
		Seed:   42,
		Params: Params{
			Agents:   2,
			SpeedMin: 0.0008,
			SpeedMax: 0.001,
			Substeps: 10,
			Probe:    0.2,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["layout"]; ok && v != "" {
		c.Layout = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["goal"]; ok {
		if cell, err := ParseCell(v); err == nil {
			c.Goal, c.OverrideGoal = cell, true
		}
	}
	if v, ok := cfg["spawn"]; ok {
		if cell, err := ParseCell(v); err == nil {
			c.Spawn, c.OverrideSpawn = cell, true
		}
	}
	if v, ok := cfg["agents"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Agents = parsed
		}
	}
	if v, ok := cfg["speed_min"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.SpeedMin = parsed
		}
	}
	if v, ok := cfg["speed_max"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.SpeedMax = parsed
		}
	}
	if c.Params.SpeedMax < c.Params.SpeedMin {
		c.Params.SpeedMax = c.Params.SpeedMin
	}
	if v, ok := cfg["substeps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.Substeps = parsed
		}
	}
	if v, ok := cfg["probe"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 0.5 {
			c.Params.Probe = parsed
		}
	}
	if v, ok := cfg["random_spawn"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.RandomSpawn = parsed
		}
	}
	return c
}

// ParseCell parses "x,y".
func ParseCell(s string) (core.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return core.Cell{}, fmt.Errorf("cell %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return core.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return core.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	return core.Cell{X: x, Y: y}, nil
}

// speedFor spreads speeds evenly from SpeedMax down to SpeedMin across n
// agents.
func (p Params) speedFor(i, n int) float64 {
	if n <= 1 || i <= 0 {
		return p.SpeedMax
	}
	if i >= n-1 {
		return p.SpeedMin
	}
	return p.SpeedMax - (p.SpeedMax-p.SpeedMin)*float64(i)/float64(n-1)
}
