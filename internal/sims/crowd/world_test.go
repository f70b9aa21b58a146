package crowd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flowpath/internal/core"
)

func newWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestDefaultWorldMatchesClassicDemo(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	if w.Name() != "crowd" {
		t.Fatalf("Name() = %q", w.Name())
	}
	if s := w.Size(); s.W != 8 || s.H != 11 {
		t.Fatalf("Size() = %+v, want 8x11", s)
	}
	if w.Goal() != (core.Cell{X: 1, Y: 1}) {
		t.Fatalf("Goal() = %+v", w.Goal())
	}
	agents := w.Agents()
	if len(agents) != 2 {
		t.Fatalf("got %d agents, want 2", len(agents))
	}
	if agents[0].Speed != 0.001 || agents[1].Speed != 0.0008 {
		t.Fatalf("speeds = %g, %g", agents[0].Speed, agents[1].Speed)
	}
	spawn := core.Vec2{X: 1.5, Y: 9.5}
	for i, p := range w.Positions() {
		if p != spawn {
			t.Fatalf("agent %d at %+v, want %+v", i, p, spawn)
		}
	}
	if agents[0].ID == agents[1].ID {
		t.Fatal("agents share an ID")
	}
	if d, ok := w.DistanceAt(1, 9); !ok || d != 14 {
		t.Fatalf("DistanceAt(1,9) = %d,%v", d, ok)
	}
}

func TestDisplayBufferClassifiesCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.txt")
	if err := os.WriteFile(path, []byte("5 1\n0 0 1 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Layout = path
	w := newWorld(t, cfg)

	want := []uint8{DisplayIsolated, DisplayIsolated, DisplayWall, DisplayReachable, DisplayGoal}
	cells := w.Cells()
	if len(cells) != len(want) {
		t.Fatalf("len(Cells()) = %d", len(cells))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, cells[i], want[i])
		}
	}
	if len(w.Palette()) <= int(DisplayReachable) {
		t.Fatal("palette does not cover every display code")
	}

	// The agent spawned on the isolated side never moves.
	start := w.Positions()[0]
	for i := 0; i < 100; i++ {
		w.Advance(16)
	}
	if w.Positions()[0] != start {
		t.Fatalf("isolated agent moved to %+v", w.Positions()[0])
	}
}

func TestSetGoalRejectsInvalidCells(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	before := w.Field().Load()
	for _, c := range []core.Cell{{X: 0, Y: 0}, {X: -1, Y: 3}, {X: 8, Y: 1}} {
		if err := w.SetGoal(c.X, c.Y); !errors.Is(err, core.ErrInvalidGoalCell) {
			t.Fatalf("SetGoal(%+v) error = %v", c, err)
		}
	}
	if w.Field().Load() != before || w.Goal() != (core.Cell{X: 1, Y: 1}) {
		t.Fatal("failed SetGoal replaced the field")
	}

	if err := w.SetGoal(6, 9); err != nil {
		t.Fatal(err)
	}
	if w.Field().Load() == before {
		t.Fatal("SetGoal did not publish a new field")
	}
	if w.Goal() != (core.Cell{X: 6, Y: 9}) || w.Cells()[9*8+6] != DisplayGoal {
		t.Fatal("goal not reflected in state")
	}
	if w.Cells()[1*8+1] != DisplayReachable {
		t.Fatal("old goal should be plain reachable floor")
	}
	if len(w.FlowVectors()) != 8*11 {
		t.Fatalf("FlowVectors() returned %d vectors", len(w.FlowVectors()))
	}
}

func TestAdvanceAndReset(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	w.Advance(0)
	w.Advance(-5)
	if w.Ticks() != 0 {
		t.Fatalf("non-positive dt advanced the world")
	}
	for i := 0; i < 200; i++ {
		w.Advance(16)
	}
	if w.Ticks() != 200 || w.Elapsed() != 3200 {
		t.Fatalf("ticks=%d elapsed=%g", w.Ticks(), w.Elapsed())
	}
	if w.Positions()[0] == (core.Vec2{X: 1.5, Y: 9.5}) {
		t.Fatal("agent did not move")
	}
	if err := w.SetGoal(6, 9); err != nil {
		t.Fatal(err)
	}

	if err := w.Reset(0); err != nil {
		t.Fatal(err)
	}
	if w.Ticks() != 0 || w.Goal() != (core.Cell{X: 1, Y: 1}) {
		t.Fatalf("reset left ticks=%d goal=%+v", w.Ticks(), w.Goal())
	}
	if len(w.Agents()) != 2 || w.Positions()[0] != (core.Vec2{X: 1.5, Y: 9.5}) {
		t.Fatal("reset did not respawn agents")
	}
}

func TestSpawnAgent(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	if _, err := w.SpawnAgent(core.Cell{X: 0, Y: 0}, 0.002); err == nil {
		t.Fatal("spawn on a wall should fail")
	}
	if _, err := w.SpawnAgent(core.Cell{X: 20, Y: 0}, 0.002); err == nil {
		t.Fatal("spawn off the grid should fail")
	}
	st, err := w.SpawnAgent(core.Cell{X: 6, Y: 8}, 0.002)
	if err != nil {
		t.Fatal(err)
	}
	if st.Pos != (core.Vec2{X: 6.5, Y: 8.5}) || st.Speed != 0.002 {
		t.Fatalf("spawned %+v", st)
	}
	def, err := w.SpawnAgent(core.Cell{X: 6, Y: 8}, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Without a speed the agent joins the spread and, being last, runs at
	// the minimum.
	if def.Speed != w.Config().Params.SpeedMin {
		t.Fatalf("default speed = %g", def.Speed)
	}
	if len(w.Agents()) != 4 || w.Config().Params.Agents != 4 {
		t.Fatalf("got %d agents, config says %d", len(w.Agents()), w.Config().Params.Agents)
	}
	if v, _ := w.Parameters().Lookup("agents"); v.Value != "4" {
		t.Fatalf("agents parameter = %s", v.Value)
	}
}

func TestSpawnedSpeedSurvivesRetuning(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	st, err := w.SpawnAgent(core.Cell{X: 1, Y: 9}, 0.005)
	if err != nil {
		t.Fatal(err)
	}
	speedOf := func() float64 {
		for _, a := range w.Agents() {
			if a.ID == st.ID {
				return a.Speed
			}
		}
		t.Fatal("spawned agent is gone")
		return 0
	}

	if !w.SetFloatParameter("speed_max", 0.002) {
		t.Fatal("speed_max rejected")
	}
	if got := speedOf(); got != 0.005 {
		t.Fatalf("after speed_max change: %g", got)
	}
	if !w.SetIntParameter("agents", 5) {
		t.Fatal("agents rejected")
	}
	if got := speedOf(); got != 0.005 {
		t.Fatalf("after growing to 5 agents: %g", got)
	}

	// The configured agents still span the full range.
	agents := w.Agents()
	if agents[0].Speed != 0.002 || agents[len(agents)-1].Speed != w.Config().Params.SpeedMin {
		t.Fatalf("spread = %g..%g", agents[0].Speed, agents[len(agents)-1].Speed)
	}

	// Dropping the spawned agent returns the whole crowd to the spread.
	if !w.SetIntParameter("agents", 2) {
		t.Fatal("agents rejected")
	}
	for _, a := range w.Agents() {
		if a.Speed == 0.005 {
			t.Fatalf("agent %s kept the dropped agent's speed", a.ID)
		}
	}
	if got := w.Agents()[0].Speed; got != 0.002 {
		t.Fatalf("first agent speed = %g", got)
	}
}

func TestFailedResetKeepsWorld(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	for i := 0; i < 10; i++ {
		w.Advance(16)
	}
	before := w.Agents()

	w.cfg.OverrideSpawn = true
	w.cfg.Spawn = core.Cell{X: 0, Y: 0}
	if err := w.Reset(0); err == nil {
		t.Fatal("reset onto a wall spawn should fail")
	}
	if w.Ticks() != 10 {
		t.Fatalf("ticks = %d after failed reset", w.Ticks())
	}
	after := w.Agents()
	if len(after) != len(before) {
		t.Fatalf("agents %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Pos != before[i].Pos {
			t.Fatalf("agent %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestRandomSpawnIsSeeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = "rooms"
	cfg.Params.Agents = 12
	cfg.Params.RandomSpawn = true

	a := newWorld(t, cfg)
	b := newWorld(t, cfg)
	pa, pb := a.Positions(), b.Positions()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("agent %d: %+v vs %+v with the same seed", i, pa[i], pb[i])
		}
		c := pa[i].Floor()
		if !a.Grid().Walkable(c.X, c.Y) {
			t.Fatalf("agent %d spawned on %+v", i, c)
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = "no-such-layout"
	if _, err := New(cfg); err == nil {
		t.Fatal("unknown layout should fail")
	}

	cfg = DefaultConfig()
	cfg.Goal, cfg.OverrideGoal = core.Cell{X: 0, Y: 0}, true
	if _, err := New(cfg); !errors.Is(err, core.ErrInvalidGoalCell) {
		t.Fatalf("goal on a wall: err = %v", err)
	}

	cfg = DefaultConfig()
	cfg.Spawn, cfg.OverrideSpawn = core.Cell{X: 3, Y: 3}, true
	if _, err := New(cfg); err == nil {
		t.Fatal("spawn on a wall should fail")
	}
}

func TestWorldSatisfiesSim(t *testing.T) {
	var _ core.Sim = newWorld(t, DefaultConfig())
}
