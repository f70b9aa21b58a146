package nav

import (
	"math"

	"flowpath/internal/core"

	"github.com/google/uuid"
)

// Motion tunes the agent integrator.
type Motion struct {
	// Substeps splits each tick's displacement for collision checks.
	Substeps int
	// Probe is the sampling offset around a destination, in cell units.
	Probe float64
}

// DefaultMotion returns ten sub-steps with a 0.2 cell probe.
func DefaultMotion() Motion {
	return Motion{Substeps: 10, Probe: 0.2}
}

func (m Motion) normalized() Motion {
	if m.Substeps <= 0 {
		m.Substeps = 1
	}
	if m.Probe < 0 {
		m.Probe = 0
	}
	if m.Probe >= 0.5 {
		m.Probe = 0.49
	}
	return m
}

// Agent steers along a flow field and collides against a grid. The grid
// and sampler are borrowed; the owner must keep them alive for as long as
// the agent is updated.
type Agent struct {
	ID    uuid.UUID
	Pos   core.Vec2
	Vel   core.Vec2
	Speed float64

	motion Motion
	grid   *core.Grid
	field  Sampler
}

// NewAgent places an agent at the centre of cell c. Speed is in cells per
// millisecond.
func NewAgent(grid *core.Grid, field Sampler, c core.Cell, speed float64, m Motion) *Agent {
	return &Agent{
		ID:     uuid.New(),
		Pos:    c.Center(),
		Speed:  speed,
		motion: m.normalized(),
		grid:   grid,
		field:  field,
	}
}

// SetMotion replaces the integrator tuning.
func (a *Agent) SetMotion(m Motion) { a.motion = m.normalized() }

// Cell returns the cell under the agent.
func (a *Agent) Cell() core.Cell { return a.Pos.Floor() }

// Arrived reports whether the agent is within half a cell of goal's centre.
func (a *Agent) Arrived(goal core.Cell) bool {
	return a.Pos.Sub(goal.Center()).Len() <= 0.5
}

// Update advances the agent by dt milliseconds.
func (a *Agent) Update(dt float64) {
	if dt <= 0 {
		return
	}
	here := a.Cell()
	acc := a.field.At(here.X, here.Y)
	rate := a.Speed * dt

	a.Vel = a.Vel.MoveTo(acc, rate).Clamp(a.Speed)
	if acc.IsZero() {
		a.Vel = core.Vec2{}
	}

	if a.grid.Walkable(here.X, here.Y) {
		a.Pos = a.Pos.MoveTo(here.Center(), rate)
	} else if c, ok := a.escape(here); ok {
		a.Pos = a.Pos.MoveTo(c.Center(), rate)
		return
	}

	step := a.Vel.Scale(dt / float64(a.motion.Substeps))
	for i := 0; i < a.motion.Substeps; i++ {
		a.move(core.Vec2{Y: step.Y})
		a.move(core.Vec2{X: step.X})
	}
}

// escape picks the first walkable 4-neighbour of a blocked cell.
func (a *Agent) escape(c core.Cell) (core.Cell, bool) {
	for _, d := range cardinal {
		n := core.Cell{X: c.X + d.X, Y: c.Y + d.Y}
		if a.grid.Walkable(n.X, n.Y) {
			return n, true
		}
	}
	return core.Cell{}, false
}

func (a *Agent) move(d core.Vec2) {
	if d.IsZero() {
		return
	}
	dst := a.Pos.Add(d)
	if Clear(a.grid, dst, a.motion.Probe) {
		a.Pos = dst
	}
}

// Clear reports whether every point of a 3x3 sample around p, spaced by
// probe, lies on a walkable cell. Off-grid samples count as blocked.
func Clear(g *core.Grid, p core.Vec2, probe float64) bool {
	offsets := [3]float64{-probe, 0, probe}
	for _, ox := range offsets {
		for _, oy := range offsets {
			x := int(math.Floor(p.X + ox))
			y := int(math.Floor(p.Y + oy))
			if !g.Walkable(x, y) {
				return false
			}
		}
	}
	return true
}
