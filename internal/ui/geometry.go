package ui

import (
	"flowpath/internal/core"
	"flowpath/internal/nav"
	"flowpath/internal/render"
)

// Segment is a screen-space line.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Rect is a screen-space axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// VectorSegment returns the debug line for one flow vector: from the cell
// centre along the vector, one eighth of a tile per unit. ok is false for
// zero vectors.
func VectorSegment(vp render.Viewport, cv nav.CellVector) (Segment, bool) {
	if cv.Vec.IsZero() {
		return Segment{}, false
	}
	x0, y0 := vp.ToScreen(cv.Cell.Center())
	s := float64(vp.Tile) / 8
	return Segment{X0: x0, Y0: y0, X1: x0 + cv.Vec.X*s, Y1: y0 + cv.Vec.Y*s}, true
}

// AgentMarker returns a square a quarter tile wide centred on p.
func AgentMarker(vp render.Viewport, p core.Vec2) Rect {
	cx, cy := vp.ToScreen(p)
	side := float64(vp.Tile) / 4
	return Rect{X: cx - side/2, Y: cy - side/2, W: side, H: side}
}

// GoalMarker returns the inset outline of the goal cell.
func GoalMarker(vp render.Viewport, c core.Cell) Rect {
	x, y := vp.CellOrigin(c)
	inset := float64(vp.Tile) / 8
	return Rect{X: float64(x) + inset, Y: float64(y) + inset, W: float64(vp.Tile) - 2*inset, H: float64(vp.Tile) - 2*inset}
}
