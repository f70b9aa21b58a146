package crowd

import (
	"fmt"

	"flowpath/internal/core"
	"flowpath/internal/maps"
	"flowpath/internal/nav"

	"github.com/google/uuid"
)

// AgentState is a read-only view of one agent.
type AgentState struct {
	ID      uuid.UUID
	Pos     core.Vec2
	Vel     core.Vec2
	Speed   float64
	Arrived bool
}

// World owns a grid, the flow field toward the current goal, and the
// agents steering along it.
type World struct {
	cfg    Config
	layout maps.Layout

	grid  *core.Grid
	dist  *nav.DistanceField
	field nav.FieldRef
	goal  core.Cell

	agents  []*nav.Agent
	pinned  map[uuid.UUID]bool
	display []uint8

	rng     *core.RNG
	ticks   int
	elapsed float64
}

// New loads the configured layout and spawns the initial agents.
func New(cfg Config) (*World, error) {
	layout, err := maps.Load(cfg.Layout)
	if err != nil {
		return nil, err
	}
	w := &World{cfg: cfg, layout: layout, pinned: map[uuid.UUID]bool{}}
	if err := w.reset(cfg.Seed); err != nil {
		return nil, err
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "crowd" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.W, H: w.grid.H} }

// Cells exposes the display buffer (see Palette).
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the collision grid. Callers must not modify it.
func (w *World) Grid() *core.Grid { return w.grid }

// Field exposes the flow field handle shared by all agents.
func (w *World) Field() *nav.FieldRef { return &w.field }

// Goal returns the current goal cell.
func (w *World) Goal() core.Cell { return w.goal }

// Ticks returns the number of Advance calls since the last reset.
func (w *World) Ticks() int { return w.ticks }

// Elapsed returns the simulated milliseconds since the last reset.
func (w *World) Elapsed() float64 { return w.elapsed }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Reset reloads the layout and respawns every agent. A zero seed reuses
// the configured seed. On error the previous state is kept.
func (w *World) Reset(seed int64) error {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	return w.reset(seed)
}

func (w *World) reset(seed int64) error {
	grid, err := w.layout.Grid()
	if err != nil {
		return err
	}
	goal := w.layout.Goal
	if w.cfg.OverrideGoal {
		goal = w.cfg.Goal
	}
	dist, err := nav.BuildDistanceField(grid, goal)
	if err != nil {
		return err
	}

	rng := core.NewRNG(seed)
	m := w.motion()
	agents := make([]*nav.Agent, 0, w.cfg.Params.Agents)
	for i := 0; i < w.cfg.Params.Agents; i++ {
		c := w.spawnCell(grid, rng)
		if !grid.Walkable(c.X, c.Y) {
			return fmt.Errorf("spawn (%d,%d): cell is %v", c.X, c.Y, grid.State(c.X, c.Y))
		}
		agents = append(agents, nav.NewAgent(grid, &w.field, c, w.cfg.Params.SpeedMax, m))
	}

	w.grid = grid
	w.publish(dist)
	w.rng = rng
	w.ticks = 0
	w.elapsed = 0
	w.agents = agents
	clear(w.pinned)
	w.applySpeeds()
	return nil
}

func (w *World) spawnCell(g *core.Grid, rng *core.RNG) core.Cell {
	if w.cfg.Params.RandomSpawn {
		if c, ok := rng.Pick(g); ok {
			return c
		}
	}
	if w.cfg.OverrideSpawn {
		return w.cfg.Spawn
	}
	return w.layout.Spawn
}

func (w *World) motion() nav.Motion {
	return nav.Motion{Substeps: w.cfg.Params.Substeps, Probe: w.cfg.Params.Probe}
}

// SetGoal rebuilds the distance and flow fields toward (x, y). On error
// the current field stays in place.
func (w *World) SetGoal(x, y int) error {
	dist, err := nav.BuildDistanceField(w.grid, core.Cell{X: x, Y: y})
	if err != nil {
		return err
	}
	w.publish(dist)
	return nil
}

// publish swaps in the flow field derived from dist.
func (w *World) publish(dist *nav.DistanceField) {
	w.dist = dist
	w.goal = dist.Goal()
	w.field.Store(nav.BuildFlowField(dist))
	w.refreshDisplay()
}

// Advance moves every agent forward by dt milliseconds.
func (w *World) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	for _, a := range w.agents {
		a.Update(dt)
	}
	w.ticks++
	w.elapsed += dt
}

// SpawnAgent adds an agent at the centre of c moving at speed cells/ms.
// A positive speed is kept through later speed and agent count changes;
// otherwise the agent joins the configured speed spread.
func (w *World) SpawnAgent(c core.Cell, speed float64) (AgentState, error) {
	a, err := w.spawn(c)
	if err != nil {
		return AgentState{}, err
	}
	if speed > 0 {
		a.Speed = speed
		w.pinned[a.ID] = true
	}
	w.cfg.Params.Agents = len(w.agents)
	w.applySpeeds()
	return w.state(a), nil
}

func (w *World) spawn(c core.Cell) (*nav.Agent, error) {
	if !w.grid.Walkable(c.X, c.Y) {
		return nil, fmt.Errorf("spawn (%d,%d): cell is %v", c.X, c.Y, w.grid.State(c.X, c.Y))
	}
	a := nav.NewAgent(w.grid, &w.field, c, w.cfg.Params.SpeedMax, w.motion())
	w.agents = append(w.agents, a)
	return a, nil
}

// applySpeeds spreads the configured speeds over every agent without a
// pinned speed.
func (w *World) applySpeeds() {
	n := len(w.agents) - len(w.pinned)
	i := 0
	for _, a := range w.agents {
		if w.pinned[a.ID] {
			continue
		}
		a.Speed = w.cfg.Params.speedFor(i, n)
		i++
	}
}

func (w *World) state(a *nav.Agent) AgentState {
	return AgentState{ID: a.ID, Pos: a.Pos, Vel: a.Vel, Speed: a.Speed, Arrived: a.Arrived(w.goal)}
}

// Agents returns a snapshot of every agent.
func (w *World) Agents() []AgentState {
	out := make([]AgentState, len(w.agents))
	for i, a := range w.agents {
		out[i] = w.state(a)
	}
	return out
}

// Positions returns every agent position in cell units.
func (w *World) Positions() []core.Vec2 {
	out := make([]core.Vec2, len(w.agents))
	for i, a := range w.agents {
		out[i] = a.Pos
	}
	return out
}

// BlockedCells lists the cells a renderer should draw as walls.
func (w *World) BlockedCells() []core.Cell { return w.grid.BlockedCells() }

// FlowVectors lists the steering vector of every cell.
func (w *World) FlowVectors() []nav.CellVector {
	f := w.field.Load()
	if f == nil {
		return nil
	}
	return f.Vectors()
}

// DistanceAt returns the step distance from (x, y) to the goal.
func (w *World) DistanceAt(x, y int) (int, bool) { return w.dist.At(x, y) }
