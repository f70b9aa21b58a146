package core

import (
	"fmt"
	"strings"
)

// Tile is a grid tile code. Zero is walkable; anything else blocks movement.
type Tile int

// TileOpen is the only walkable tile code.
const TileOpen Tile = 0

// CellState classifies a coordinate against a grid.
type CellState uint8

const (
	// CellOpen marks an in-bounds walkable cell.
	CellOpen CellState = iota
	// CellBlocked marks an in-bounds cell with a non-zero tile code.
	CellBlocked
	// CellOutOfBounds marks a coordinate outside the grid.
	CellOutOfBounds
)

func (s CellState) String() string {
	switch s {
	case CellOpen:
		return "open"
	case CellBlocked:
		return "blocked"
	case CellOutOfBounds:
		return "out-of-bounds"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Cell is a discrete grid coordinate.
type Cell struct {
	X, Y int
}

// Grid stores tile codes in row-major order.
type Grid struct {
	W, H int
	data []Tile
}

// NewGrid allocates an all-walkable grid. Non-positive dimensions are
// clamped to 1 so the grid is always addressable.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]Tile, w*h)}
}

// Load replaces the grid contents with tiles laid out row-major.
func (g *Grid) Load(w, h int, tiles []int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGridData, w, h)
	}
	if len(tiles) != w*h {
		return fmt.Errorf("%w: got %d tiles for %dx%d", ErrInvalidGridData, len(tiles), w, h)
	}
	data := make([]Tile, w*h)
	for i, t := range tiles {
		data[i] = Tile(t)
	}
	g.W, g.H, g.data = w, h, data
	return nil
}

// LoadFlat loads a sequence whose first two entries are width and height,
// followed by exactly width*height tile codes.
func (g *Grid) LoadFlat(seq []int) error {
	if len(seq) < 2 {
		return fmt.Errorf("%w: missing dimensions", ErrInvalidGridData)
	}
	return g.Load(seq[0], seq[1], seq[2:])
}

// InBounds reports whether (x, y) addresses a stored cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Get returns the tile at (x, y) and whether the coordinate is in bounds.
func (g *Grid) Get(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return g.data[g.Index(x, y)], true
}

// State classifies (x, y) as open, blocked or out of bounds.
func (g *Grid) State(x, y int) CellState {
	t, ok := g.Get(x, y)
	switch {
	case !ok:
		return CellOutOfBounds
	case t != TileOpen:
		return CellBlocked
	default:
		return CellOpen
	}
}

// Walkable reports whether (x, y) is in bounds and open.
func (g *Grid) Walkable(x, y int) bool { return g.State(x, y) == CellOpen }

// Set writes a tile code. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.data[g.Index(x, y)] = t
	}
}

// SetIfWalkable writes t only over a walkable tile and reports whether it did.
func (g *Grid) SetIfWalkable(x, y int, t Tile) bool {
	if !g.Walkable(x, y) {
		return false
	}
	g.data[g.Index(x, y)] = t
	return true
}

// BlockedCells lists every blocked cell in row-major order.
func (g *Grid) BlockedCells() []Cell {
	var out []Cell
	for i, t := range g.data {
		if t != TileOpen {
			out = append(out, Cell{X: i % g.W, Y: i / g.W})
		}
	}
	return out
}

// Mask returns one byte per cell: 1 for blocked, 0 for walkable.
func (g *Grid) Mask() []uint8 {
	mask := make([]uint8, len(g.data))
	for i, t := range g.data {
		if t != TileOpen {
			mask[i] = 1
		}
	}
	return mask
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, data: append([]Tile(nil), g.data...)}
}

// String renders the tile codes one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			fmt.Fprintf(&b, "%3d", g.data[g.Index(x, y)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
