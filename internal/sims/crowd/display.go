package crowd

import "image/color"

// Display codes written into the Cells buffer.
const (
	DisplayIsolated  uint8 = iota // open but cut off from the goal
	DisplayWall                   // blocked
	DisplayGoal                   // goal cell
	DisplayReachable              // open with a path to the goal
)

var crowdPalette = []color.RGBA{
	DisplayIsolated:  {R: 48, G: 40, B: 40, A: 255},
	DisplayWall:      {R: 255, G: 255, B: 255, A: 255},
	DisplayGoal:      {R: 40, G: 160, B: 70, A: 255},
	DisplayReachable: {R: 0, G: 0, B: 0, A: 255},
}

// Palette exposes the colors used to render the display buffer.
func (w *World) Palette() []color.RGBA {
	return crowdPalette
}

func (w *World) refreshDisplay() {
	total := w.grid.W * w.grid.H
	if len(w.display) != total {
		w.display = make([]uint8, total)
	}
	for y := 0; y < w.grid.H; y++ {
		for x := 0; x < w.grid.W; x++ {
			w.display[y*w.grid.W+x] = w.displayValue(x, y)
		}
	}
}

func (w *World) displayValue(x, y int) uint8 {
	switch {
	case !w.grid.Walkable(x, y):
		return DisplayWall
	case x == w.goal.X && y == w.goal.Y:
		return DisplayGoal
	case w.dist.Reachable(x, y):
		return DisplayReachable
	default:
		return DisplayIsolated
	}
}
