package maps

import "flowpath/internal/core"

// bordered returns a w x h flat layout with a one-cell wall border.
func bordered(w, h int) []int {
	flat := make([]int, 2+w*h)
	flat[0], flat[1] = w, h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				flat[2+y*w+x] = 1
			}
		}
	}
	return flat
}

func wall(flat []int, x, y int) {
	w := flat[0]
	flat[2+y*w+x] = 1
}

// corridor is a single one-wide hallway.
func corridor() []int {
	return bordered(24, 3)
}

// rooms is a 3x2 block of rooms joined by one-cell doors.
func rooms() []int {
	const w, h = 31, 21
	flat := bordered(w, h)
	for y := 1; y < h-1; y++ {
		for _, x := range []int{10, 20} {
			if y != 5 && y != 15 {
				wall(flat, x, y)
			}
		}
	}
	for x := 1; x < w-1; x++ {
		if x != 5 && x != 15 && x != 25 {
			wall(flat, x, 10)
		}
	}
	return flat
}

// pillars is an open arena with a lattice of single-cell pillars, which
// exercises the diagonal corner handling.
func pillars() []int {
	const w, h = 20, 15
	flat := bordered(w, h)
	for y := 2; y < h-2; y += 2 {
		for x := 2; x < w-2; x += 2 {
			if (x+y)%4 == 0 {
				wall(flat, x, y)
				wall(flat, x+1, y+1)
			}
		}
	}
	return flat
}

func init() {
	Register(Layout{Name: "corridor", Flat: corridor(), Spawn: core.Cell{X: 22, Y: 1}, Goal: core.Cell{X: 1, Y: 1}})
	Register(Layout{Name: "rooms", Flat: rooms(), Spawn: core.Cell{X: 28, Y: 18}, Goal: core.Cell{X: 2, Y: 2}})
	Register(Layout{Name: "pillars", Flat: pillars(), Spawn: core.Cell{X: 17, Y: 12}, Goal: core.Cell{X: 1, Y: 1}})
}
