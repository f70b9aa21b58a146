package render

import (
	"math"

	"flowpath/internal/core"
)

// Viewport maps simulation cell units to screen pixels. Tile is the pixel
// size of one cell; OffsetX/OffsetY place the grid's top-left corner.
type Viewport struct {
	Tile    int
	OffsetX int
	OffsetY int
	W, H    int
}

// NewViewport returns a viewport for a w×h grid drawn at tile pixels per cell.
func NewViewport(w, h, tile int) Viewport {
	if tile < 1 {
		tile = 1
	}
	return Viewport{Tile: tile, W: w, H: h}
}

// Bounds returns the pixel size of the whole grid.
func (v Viewport) Bounds() (int, int) { return v.W * v.Tile, v.H * v.Tile }

// ToScreen converts a position in cell units to pixels.
func (v Viewport) ToScreen(p core.Vec2) (float64, float64) {
	t := float64(v.Tile)
	return float64(v.OffsetX) + p.X*t, float64(v.OffsetY) + p.Y*t
}

// CellOrigin returns the top-left pixel of c.
func (v Viewport) CellOrigin(c core.Cell) (int, int) {
	return v.OffsetX + c.X*v.Tile, v.OffsetY + c.Y*v.Tile
}

// CellAt converts a pixel to the cell under it. ok is false outside the grid.
func (v Viewport) CellAt(px, py int) (c core.Cell, ok bool) {
	if v.Tile <= 0 {
		return core.Cell{}, false
	}
	x := int(math.Floor(float64(px-v.OffsetX) / float64(v.Tile)))
	y := int(math.Floor(float64(py-v.OffsetY) / float64(v.Tile)))
	c = core.Cell{X: x, Y: y}
	return c, x >= 0 && y >= 0 && x < v.W && y < v.H
}
