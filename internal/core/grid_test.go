package core

import (
	"errors"
	"testing"
)

func TestLoadRejectsMalformedInput(t *testing.T) {
	g := NewGrid(1, 1)
	cases := []struct {
		w, h  int
		tiles []int
	}{
		{0, 1, nil},
		{2, -1, nil},
		{2, 2, []int{0, 0, 0}},
		{1, 1, []int{0, 0}},
	}
	for _, c := range cases {
		if err := g.Load(c.w, c.h, c.tiles); !errors.Is(err, ErrInvalidGridData) {
			t.Fatalf("Load(%d, %d, %v) err = %v, want ErrInvalidGridData", c.w, c.h, c.tiles, err)
		}
	}
	if err := g.LoadFlat([]int{3}); !errors.Is(err, ErrInvalidGridData) {
		t.Fatalf("LoadFlat with missing height err = %v", err)
	}
}

func TestLoadFlatReplacesContents(t *testing.T) {
	g := NewGrid(5, 5)
	if err := g.LoadFlat([]int{3, 2, 0, 1, 0, 0, 0, 7}); err != nil {
		t.Fatalf("LoadFlat: %v", err)
	}
	if g.W != 3 || g.H != 2 {
		t.Fatalf("dimensions %dx%d, want 3x2", g.W, g.H)
	}
	if tile, ok := g.Get(2, 1); !ok || tile != 7 {
		t.Fatalf("Get(2,1) = %d,%v want 7,true", tile, ok)
	}
	if g.State(1, 0) != CellBlocked || g.State(0, 0) != CellOpen {
		t.Fatal("unexpected classification after load")
	}
}

func TestOutOfBoundsIsDistinctState(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(1, 1, 1)
	for _, c := range []Cell{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, ok := g.Get(c.X, c.Y); ok {
			t.Fatalf("Get(%d,%d) reported in bounds", c.X, c.Y)
		}
		if s := g.State(c.X, c.Y); s != CellOutOfBounds {
			t.Fatalf("State(%d,%d) = %v, want out-of-bounds", c.X, c.Y, s)
		}
		if g.Walkable(c.X, c.Y) {
			t.Fatalf("(%d,%d) should not be walkable", c.X, c.Y)
		}
	}
	if g.State(1, 1) != CellBlocked {
		t.Fatal("blocked cell misclassified")
	}
}

func TestSetOutOfBoundsIsNoop(t *testing.T) {
	g := NewGrid(2, 1)
	g.Set(5, 5, 1)
	g.Set(-1, 0, 1)
	if len(g.BlockedCells()) != 0 {
		t.Fatal("out-of-bounds Set modified the grid")
	}
}

func TestSetIfWalkableClaimsOnce(t *testing.T) {
	g := NewGrid(2, 1)
	if !g.SetIfWalkable(0, 0, 4) {
		t.Fatal("first claim should succeed")
	}
	if g.SetIfWalkable(0, 0, 9) {
		t.Fatal("second claim should fail")
	}
	if tile, _ := g.Get(0, 0); tile != 4 {
		t.Fatalf("tile = %d, want 4", tile)
	}
	if g.SetIfWalkable(3, 0, 1) {
		t.Fatal("out-of-bounds claim should fail")
	}
}

func TestBlockedCellsAndMask(t *testing.T) {
	g := NewGrid(1, 1)
	if err := g.Load(3, 2, []int{1, 0, 0, 0, 0, -2}); err != nil {
		t.Fatal(err)
	}
	blocked := g.BlockedCells()
	if len(blocked) != 2 || blocked[0] != (Cell{0, 0}) || blocked[1] != (Cell{2, 1}) {
		t.Fatalf("BlockedCells = %v", blocked)
	}
	mask := g.Mask()
	want := []uint8{1, 0, 0, 0, 0, 1}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask[%d] = %d, want %d", i, mask[i], want[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 2)
	c := g.Clone()
	c.Set(0, 0, 1)
	if !g.Walkable(0, 0) {
		t.Fatal("clone shares storage with its source")
	}
}

func TestString(t *testing.T) {
	g := NewGrid(1, 1)
	if err := g.Load(2, 1, []int{0, 1}); err != nil {
		t.Fatal(err)
	}
	if got := g.String(); got != "  0  1\n" {
		t.Fatalf("String() = %q", got)
	}
}
