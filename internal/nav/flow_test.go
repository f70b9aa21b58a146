package nav

import (
	"testing"

	"flowpath/internal/core"
)

func buildFlow(t *testing.T, g *core.Grid, goal core.Cell) *FlowField {
	t.Helper()
	d, err := BuildDistanceField(g, goal)
	if err != nil {
		t.Fatalf("build distance field: %v", err)
	}
	return BuildFlowField(d)
}

func TestOpenGridPointsAtCenter(t *testing.T) {
	g := core.NewGrid(3, 3)
	center := core.Cell{X: 1, Y: 1}
	d, err := BuildDistanceField(g, center)
	if err != nil {
		t.Fatal(err)
	}
	f := BuildFlowField(d)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				if !f.At(x, y).IsZero() {
					t.Fatalf("goal vector = %+v, want zero", f.At(x, y))
				}
				continue
			}
			want := 1
			if x != 1 && y != 1 {
				want = 2
			}
			if v, _ := d.At(x, y); v != want {
				t.Fatalf("distance (%d,%d) = %d, want %d", x, y, v, want)
			}
			v := f.At(x, y)
			toward := center.Center().Sub(core.Cell{X: x, Y: y}.Center())
			if v.X*toward.X+v.Y*toward.Y <= 0 {
				t.Fatalf("vector at (%d,%d) = %+v does not point at the centre", x, y, v)
			}
			if (v.X != 0) != (toward.X != 0) || (v.Y != 0) != (toward.Y != 0) {
				t.Fatalf("vector at (%d,%d) = %+v, want direction of %+v", x, y, v, toward)
			}
		}
	}
}

func TestFrontierPointsStraightAtGoal(t *testing.T) {
	g := core.NewGrid(5, 5)
	f := buildFlow(t, g, core.Cell{X: 2, Y: 2})
	cases := map[core.Cell]core.Vec2{
		{X: 2, Y: 1}: {Y: 1},
		{X: 2, Y: 3}: {Y: -1},
		{X: 1, Y: 2}: {X: 1},
		{X: 3, Y: 2}: {X: -1},
	}
	for c, want := range cases {
		if got := f.At(c.X, c.Y); got != want {
			t.Fatalf("vector at %+v = %+v, want %+v", c, got, want)
		}
	}
}

func TestUnreachableCellsHaveZeroVector(t *testing.T) {
	g := mustGrid(t, 3, 1, 0, 1, 0)
	f := buildFlow(t, g, core.Cell{})
	for x := 0; x < 3; x++ {
		if !f.At(x, 0).IsZero() {
			t.Fatalf("vector at (%d,0) = %+v, want zero", x, f.At(x, 0))
		}
	}
	if !f.At(10, 10).IsZero() {
		t.Fatal("off-grid sample should be zero")
	}
}

func TestFlowFieldIsDeterministic(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		g := randomGrid(seed, 14, 9)
		goal, ok := core.NewRNG(seed).Pick(g)
		if !ok {
			continue
		}
		d, err := BuildDistanceField(g, goal)
		if err != nil {
			t.Fatal(err)
		}
		a := BuildFlowField(d).Vectors()
		b := BuildFlowField(d).Vectors()
		if len(a) != len(b) || len(a) != g.W*g.H {
			t.Fatalf("seed %d: vector counts %d/%d", seed, len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("seed %d: vector %d differs: %+v vs %+v", seed, i, a[i], b[i])
			}
		}
	}
}

func TestDegenerateTieBreak(t *testing.T) {
	// Two equal arms meet at (2,2); the cell below is reachable so the
	// tie resolves downward.
	g := mustGrid(t, 3, 5,
		0, 0, 0,
		0, 1, 0,
		0, 1, 0,
		0, 1, 0,
		0, 0, 0,
	)
	f := buildFlow(t, g, core.Cell{X: 0, Y: 2})
	if got := f.At(2, 2); got != (core.Vec2{Y: 1}) {
		t.Fatalf("tie at (2,2) = %+v, want (0,1)", got)
	}

	// Same shape cut off below the meeting cell: nothing reachable below,
	// so the tie resolves to the left.
	g = mustGrid(t, 3, 3,
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	)
	f = buildFlow(t, g, core.Cell{X: 1, Y: 0})
	if got := f.At(1, 2); got != (core.Vec2{X: -1}) {
		t.Fatalf("tie at (1,2) = %+v, want (-1,0)", got)
	}
}

func TestDeadAheadSteersAlongFlatAxis(t *testing.T) {
	// (1,1) has equal routes above and below the wall at (2,1). The raw
	// gradient only says "right", straight into the wall.
	g := mustGrid(t, 4, 3,
		0, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 0,
	)
	f := buildFlow(t, g, core.Cell{X: 3, Y: 1})
	if got := f.At(1, 1); got != (core.Vec2{X: 1, Y: 1}) {
		t.Fatalf("vector at (1,1) = %+v, want (1,1)", got)
	}

	// The same situation rotated: heading down into a wall at (1,2).
	g = mustGrid(t, 3, 4,
		0, 0, 0,
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	)
	f = buildFlow(t, g, core.Cell{X: 1, Y: 3})
	if got := f.At(1, 1); got != (core.Vec2{X: 1, Y: 1}) {
		t.Fatalf("vector at (1,1) = %+v, want (1,1)", got)
	}
}

// cutsCorner reports whether v at c heads diagonally between two blocked
// orthogonal neighbours.
func cutsCorner(g *core.Grid, c core.Cell, v core.Vec2) bool {
	if v.X == 0 || v.Y == 0 {
		return false
	}
	sx, sy := 1, 1
	if v.X < 0 {
		sx = -1
	}
	if v.Y < 0 {
		sy = -1
	}
	return g.State(c.X+sx, c.Y) == core.CellBlocked && g.State(c.X, c.Y+sy) == core.CellBlocked
}

func TestNoVectorCutsDiagonalCorner(t *testing.T) {
	g := mustGrid(t, 5, 4,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 0, 0,
	)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.Walkable(x, y) {
				continue
			}
			f := buildFlow(t, g, core.Cell{X: x, Y: y})
			for _, c := range []core.Cell{{X: 1, Y: 1}, {X: 2, Y: 2}} {
				if v := f.At(c.X, c.Y); cutsCorner(g, c, v) {
					t.Fatalf("goal (%d,%d): vector at %+v = %+v cuts the corner", x, y, c, v)
				}
			}
		}
	}

	for seed := int64(1); seed <= 25; seed++ {
		g := randomGrid(seed, 12, 12)
		goal, ok := core.NewRNG(seed).Pick(g)
		if !ok {
			continue
		}
		f := buildFlow(t, g, goal)
		for _, cv := range f.Vectors() {
			if cutsCorner(g, cv.Cell, cv.Vec) {
				t.Fatalf("seed %d: vector at %+v = %+v cuts a corner", seed, cv.Cell, cv.Vec)
			}
		}
	}
}

func TestFieldRefPublishesWholeFields(t *testing.T) {
	var ref FieldRef
	if !ref.At(0, 0).IsZero() || ref.Load() != nil {
		t.Fatal("empty ref should sample zero")
	}
	g := core.NewGrid(3, 1)
	f := buildFlow(t, g, core.Cell{})
	ref.Store(f)
	if ref.Load() != f {
		t.Fatal("Load should return the stored field")
	}
	if got := ref.At(1, 0); got != (core.Vec2{X: -1}) {
		t.Fatalf("At(1,0) = %+v", got)
	}
}
