package term

import (
	"flowpath/internal/core"
	"flowpath/internal/sims/crowd"
)

// Glyph kinds, drawn in increasing priority.
type Kind uint8

const (
	KindFloor Kind = iota
	KindIsolated
	KindWall
	KindVector
	KindGoal
	KindAgent
	KindCursor
)

// Glyph is one terminal cell of the frame.
type Glyph struct {
	Rune rune
	Kind Kind
}

// cellWidth is the number of terminal columns per grid cell so cells look
// roughly square.
const cellWidth = 2

// Arrow returns the glyph for the direction of v.
func Arrow(v core.Vec2) rune {
	sx, sy := sgn(v.X), sgn(v.Y)
	switch {
	case sx == 0 && sy == 0:
		return '·'
	case sx == 0 && sy < 0:
		return '↑'
	case sx == 0:
		return '↓'
	case sy == 0 && sx < 0:
		return '←'
	case sy == 0:
		return '→'
	case sx > 0 && sy > 0:
		return '↘'
	case sx > 0:
		return '↗'
	case sy > 0:
		return '↙'
	default:
		return '↖'
	}
}

func sgn(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

// Frame lays out the world as rows of glyphs, cellWidth columns per cell.
func Frame(w *crowd.World, vectors bool, cursor core.Cell) [][]Glyph {
	size := w.Size()
	rows := make([][]Glyph, size.H)
	for y := range rows {
		rows[y] = make([]Glyph, size.W*cellWidth)
	}
	put := func(c core.Cell, g Glyph) {
		if c.X < 0 || c.Y < 0 || c.X >= size.W || c.Y >= size.H {
			return
		}
		if cur := rows[c.Y][c.X*cellWidth]; cur.Kind > g.Kind {
			return
		}
		rows[c.Y][c.X*cellWidth] = g
		pad := ' '
		if g.Kind == KindWall {
			pad = g.Rune
		}
		rows[c.Y][c.X*cellWidth+1] = Glyph{Rune: pad, Kind: g.Kind}
	}

	cells := w.Cells()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			c := core.Cell{X: x, Y: y}
			switch cells[y*size.W+x] {
			case crowd.DisplayWall:
				put(c, Glyph{Rune: '█', Kind: KindWall})
			case crowd.DisplayIsolated:
				put(c, Glyph{Rune: '░', Kind: KindIsolated})
			default:
				put(c, Glyph{Rune: ' ', Kind: KindFloor})
			}
		}
	}
	if vectors {
		for _, cv := range w.FlowVectors() {
			if !cv.Vec.IsZero() {
				put(cv.Cell, Glyph{Rune: Arrow(cv.Vec), Kind: KindVector})
			}
		}
	}
	put(w.Goal(), Glyph{Rune: '◎', Kind: KindGoal})
	for _, p := range w.Positions() {
		put(p.Floor(), Glyph{Rune: '@', Kind: KindAgent})
	}
	put(cursor, Glyph{Rune: '+', Kind: KindCursor})
	return rows
}
