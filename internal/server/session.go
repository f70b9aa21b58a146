package server

import (
	"sync"

	"flowpath/internal/core"
	"flowpath/internal/sims/crowd"
)

// CellJSON is a grid cell on the wire.
type CellJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AgentJSON is one agent on the wire. Positions are in cell units.
type AgentJSON struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Speed   float64 `json:"speed"`
	Arrived bool    `json:"arrived"`
}

// GridJSON describes the static layout.
type GridJSON struct {
	W       int        `json:"w"`
	H       int        `json:"h"`
	Blocked []CellJSON `json:"blocked"`
}

// VectorJSON is one non-zero flow vector.
type VectorJSON struct {
	X  int     `json:"x"`
	Y  int     `json:"y"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// FieldJSON is the current flow field plus step distances in row-major
// order, -1 for unreachable cells.
type FieldJSON struct {
	W        int          `json:"w"`
	H        int          `json:"h"`
	Goal     CellJSON     `json:"goal"`
	Vectors  []VectorJSON `json:"vectors"`
	Distance []int        `json:"distance"`
}

// Snapshot is the per-tick state streamed to websocket clients.
type Snapshot struct {
	Tick   int         `json:"tick"`
	Goal   CellJSON    `json:"goal"`
	Agents []AgentJSON `json:"agents"`
}

// Session serialises access to a world shared by handlers and the tick loop.
type Session struct {
	mu    sync.Mutex
	world *crowd.World
}

// NewSession wraps w.
func NewSession(w *crowd.World) *Session {
	return &Session{world: w}
}

// Advance steps the world by dt milliseconds.
func (s *Session) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.Advance(dt)
}

// SetGoal moves the goal, leaving the field unchanged on error.
func (s *Session) SetGoal(c core.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.SetGoal(c.X, c.Y)
}

// Spawn adds an agent.
func (s *Session) Spawn(c core.Cell, speed float64) (AgentJSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.world.SpawnAgent(c, speed)
	if err != nil {
		return AgentJSON{}, err
	}
	return agentJSON(a), nil
}

// Reset respawns the world. On error the world is unchanged.
func (s *Session) Reset(seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Reset(seed)
}

// Snapshot captures the tick, goal and agents.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Tick: s.world.Ticks(), Goal: cellJSON(s.world.Goal()), Agents: s.agents()}
}

// Agents lists every agent.
func (s *Session) Agents() []AgentJSON {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agents()
}

func (s *Session) agents() []AgentJSON {
	states := s.world.Agents()
	out := make([]AgentJSON, len(states))
	for i, a := range states {
		out[i] = agentJSON(a)
	}
	return out
}

// Grid describes the layout.
func (s *Session) Grid() GridJSON {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := s.world.Size()
	blocked := s.world.BlockedCells()
	out := GridJSON{W: size.W, H: size.H, Blocked: make([]CellJSON, len(blocked))}
	for i, c := range blocked {
		out.Blocked[i] = cellJSON(c)
	}
	return out
}

// Field describes the current flow field.
func (s *Session) Field() FieldJSON {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := s.world.Size()
	out := FieldJSON{
		W:        size.W,
		H:        size.H,
		Goal:     cellJSON(s.world.Goal()),
		Vectors:  []VectorJSON{},
		Distance: make([]int, 0, size.W*size.H),
	}
	for _, cv := range s.world.FlowVectors() {
		if cv.Vec.IsZero() {
			continue
		}
		out.Vectors = append(out.Vectors, VectorJSON{X: cv.Cell.X, Y: cv.Cell.Y, DX: cv.Vec.X, DY: cv.Vec.Y})
	}
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			d, _ := s.world.DistanceAt(x, y)
			out.Distance = append(out.Distance, d)
		}
	}
	return out
}

func cellJSON(c core.Cell) CellJSON { return CellJSON{X: c.X, Y: c.Y} }

func agentJSON(a crowd.AgentState) AgentJSON {
	return AgentJSON{
		ID:      a.ID.String(),
		X:       a.Pos.X,
		Y:       a.Pos.Y,
		VX:      a.Vel.X,
		VY:      a.Vel.Y,
		Speed:   a.Speed,
		Arrived: a.Arrived,
	}
}
