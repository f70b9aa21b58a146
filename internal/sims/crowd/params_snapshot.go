package crowd

import (
	"strconv"

	"flowpath/internal/core"
)

// Parameters reports the world and agent tunables.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.grid.W),
				core.IntParam("h", "Height", w.grid.H),
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(w.cfg.Seed, 10)},
				core.IntParam("goal_x", "Goal X", w.goal.X),
				core.IntParam("goal_y", "Goal Y", w.goal.Y),
			},
		},
		{
			Name: "Agents",
			Params: []core.Parameter{
				core.IntParam("agents", "Agents", len(w.agents)),
				core.FloatParam("speed_min", "Speed min", p.SpeedMin),
				core.FloatParam("speed_max", "Speed max", p.SpeedMax),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				core.IntParam("substeps", "Substeps", p.Substeps),
				core.FloatParam("probe", "Probe", p.Probe),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "agents", Label: "Agents", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 64},
		{Key: "speed_max", Label: "Speed max", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0.0005, Max: 0.02},
		{Key: "speed_min", Label: "Speed min", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0.0005, Max: 0.02},
		{Key: "substeps", Label: "Substeps", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 40},
		{Key: "probe", Label: "Probe", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 0.45},
	}
}

// SetIntParameter updates an integer tunable. It reports whether key was
// recognised and the value accepted.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "agents":
		if value < 0 {
			return false
		}
		w.resize(value)
	case "substeps":
		if value < 1 {
			return false
		}
		w.cfg.Params.Substeps = value
		w.applyMotion()
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a floating point tunable.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := &w.cfg.Params
	switch key {
	case "speed_min":
		if value <= 0 {
			return false
		}
		p.SpeedMin = value
		if p.SpeedMax < value {
			p.SpeedMax = value
		}
		w.applySpeeds()
	case "speed_max":
		if value <= 0 {
			return false
		}
		p.SpeedMax = value
		if p.SpeedMin > value {
			p.SpeedMin = value
		}
		w.applySpeeds()
	case "probe":
		if value < 0 || value >= 0.5 {
			return false
		}
		p.Probe = value
		w.applyMotion()
	default:
		return false
	}
	return true
}

// resize spawns or drops agents until n remain. New agents start on the
// spawn cell; dropped agents are the most recently added.
func (w *World) resize(n int) {
	for len(w.agents) < n {
		if _, err := w.spawn(w.spawnCell(w.grid, w.rng)); err != nil {
			break
		}
	}
	if len(w.agents) > n {
		for _, a := range w.agents[n:] {
			delete(w.pinned, a.ID)
		}
		w.agents = w.agents[:n]
	}
	w.cfg.Params.Agents = len(w.agents)
	w.applySpeeds()
}

func (w *World) applyMotion() {
	m := w.motion()
	for _, a := range w.agents {
		a.SetMotion(m)
	}
}
