package core

import "math/rand/v2"

// RNG wraps math/rand/v2 with deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Range returns a float in [lo, hi). Reversed bounds are swapped.
func (r *RNG) Range(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// Pick returns a uniformly chosen walkable cell of g, or false when the
// grid has none.
func (r *RNG) Pick(g *Grid) (Cell, bool) {
	var open []Cell
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Walkable(x, y) {
				open = append(open, Cell{X: x, Y: y})
			}
		}
	}
	if len(open) == 0 {
		return Cell{}, false
	}
	return open[r.r.IntN(len(open))], true
}
