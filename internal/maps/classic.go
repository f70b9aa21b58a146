package maps

import "flowpath/internal/core"

// The classic 8x11 demo map: two agents start in the lower room and the
// goal sits in the top-left pocket.
var classic = []int{
	8, 11,
	1, 1, 1, 1, 1, 1, 1, 1,
	1, 0, 1, 1, 1, 0, 0, 1,
	1, 0, 0, 1, 0, 0, 0, 1,
	1, 1, 0, 1, 1, 0, 1, 1,
	1, 1, 0, 0, 0, 0, 1, 1,
	1, 1, 1, 1, 0, 1, 1, 1,
	1, 0, 0, 0, 0, 0, 0, 1,
	1, 0, 0, 1, 1, 1, 0, 1,
	1, 0, 0, 0, 0, 0, 0, 1,
	1, 0, 0, 0, 0, 0, 0, 1,
	1, 1, 1, 1, 1, 1, 1, 1,
}

func init() {
	Register(Layout{
		Name:  "classic",
		Flat:  classic,
		Spawn: core.Cell{X: 1, Y: 9},
		Goal:  core.Cell{X: 1, Y: 1},
	})
}
