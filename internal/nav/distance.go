package nav

import (
	"fmt"

	"flowpath/internal/core"
)

// Unreachable marks blocked cells and walkable cells with no path to the goal.
const Unreachable = -1

// Cardinal neighbour offsets used by the distance builder.
var cardinal = [4]core.Cell{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// DistanceField maps each cell to its step count from a goal cell.
type DistanceField struct {
	w, h int
	goal core.Cell
	dist []int
}

// BuildDistanceField runs a layered breadth-first expansion from goal over
// the 4-connected walkable cells of g.
//
// A scratch grid carries the working values: blocked cells hold -1, open
// cells 0 and reached cells their layer number starting at 1 for the goal.
// Each layer claims unvisited neighbours through SetIfWalkable, so every
// cell is written exactly once. The result is shifted down by one so the
// goal reads 0 and anything never reached reads Unreachable.
func BuildDistanceField(g *core.Grid, goal core.Cell) (*DistanceField, error) {
	if !g.Walkable(goal.X, goal.Y) {
		return nil, fmt.Errorf("%w: (%d,%d) is %v", core.ErrInvalidGoalCell, goal.X, goal.Y, g.State(goal.X, goal.Y))
	}

	work := core.NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.Walkable(x, y) {
				work.Set(x, y, -1)
			}
		}
	}
	work.Set(goal.X, goal.Y, 1)

	frontier := []core.Cell{goal}
	var next []core.Cell
	for layer := core.Tile(1); len(frontier) > 0; layer++ {
		next = next[:0]
		for _, c := range frontier {
			for _, d := range cardinal {
				nx, ny := c.X+d.X, c.Y+d.Y
				if work.SetIfWalkable(nx, ny, layer+1) {
					next = append(next, core.Cell{X: nx, Y: ny})
				}
			}
		}
		frontier, next = next, frontier
	}

	df := &DistanceField{w: g.W, h: g.H, goal: goal, dist: make([]int, g.W*g.H)}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			t, _ := work.Get(x, y)
			v := int(t) - 1
			if v < 0 {
				v = Unreachable
			}
			df.dist[y*g.W+x] = v
		}
	}
	return df, nil
}

// Size returns the field dimensions.
func (d *DistanceField) Size() core.Size { return core.Size{W: d.w, H: d.h} }

// Goal returns the cell the field was built from.
func (d *DistanceField) Goal() core.Cell { return d.goal }

// At returns the distance stored at (x, y) and whether the coordinate is in
// bounds. Blocked and unreachable cells report Unreachable.
func (d *DistanceField) At(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return Unreachable, false
	}
	return d.dist[y*d.w+x], true
}

// Reachable reports whether (x, y) holds a finite distance.
func (d *DistanceField) Reachable(x, y int) bool {
	v, ok := d.At(x, y)
	return ok && v != Unreachable
}

// finite returns the distance at (x, y), or fallback when the cell is off
// the grid or unreachable.
func (d *DistanceField) finite(x, y, fallback int) int {
	v, ok := d.At(x, y)
	if !ok || v == Unreachable {
		return fallback
	}
	return v
}
