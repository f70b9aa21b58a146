package nav

import (
	"sync/atomic"

	"flowpath/internal/core"
)

// FlowField maps each cell to an unnormalized steering vector.
type FlowField struct {
	w, h int
	vecs []core.Vec2
}

// CellVector pairs a cell with its steering vector.
type CellVector struct {
	Cell core.Cell
	Vec  core.Vec2
}

// BuildFlowField derives a steering vector for every cell of d. The
// result depends only on d.
func BuildFlowField(d *DistanceField) *FlowField {
	f := &FlowField{w: d.w, h: d.h, vecs: make([]core.Vec2, d.w*d.h)}
	for y := 0; y < d.h; y++ {
		for x := 0; x < d.w; x++ {
			f.vecs[y*d.w+x] = steer(d, x, y)
		}
	}
	return f
}

func steer(d *DistanceField, x, y int) core.Vec2 {
	t, _ := d.At(x, y)
	if t <= 0 {
		return core.Vec2{}
	}

	// up, down, left, right
	raw := [4]int{}
	raw[0], _ = d.At(x, y-1)
	raw[1], _ = d.At(x, y+1)
	raw[2], _ = d.At(x-1, y)
	raw[3], _ = d.At(x+1, y)

	if t == 1 {
		switch {
		case raw[0] == 0:
			return core.Vec2{Y: -1}
		case raw[1] == 0:
			return core.Vec2{Y: 1}
		case raw[2] == 0:
			return core.Vec2{X: -1}
		case raw[3] == 0:
			return core.Vec2{X: 1}
		}
	}

	up := d.finite(x, y-1, t)
	down := d.finite(x, y+1, t)
	left := d.finite(x-1, y, t)
	right := d.finite(x+1, y, t)

	xd := left - right
	yd := up - down

	// A gradient along one axis that runs into a dead cell ahead would pin
	// the agent against the wall; push it along the flat axis instead.
	if xd != 0 && yd == 0 && !d.Reachable(x+sign(xd), y) {
		yd = sideStep(d.Reachable(x, y+1))
	}
	if yd != 0 && xd == 0 && !d.Reachable(x, y+sign(yd)) {
		xd = sideStep(d.Reachable(x+1, y))
	}

	if xd == 0 && yd == 0 {
		// Flat neighbourhood: prefer down, else left.
		if d.Reachable(x, y+1) {
			yd = 1
		} else {
			xd = -1
		}
	}

	return core.Vec2{X: float64(xd), Y: float64(yd)}
}

func sideStep(positiveOpen bool) int {
	if positiveOpen {
		return 1
	}
	return -1
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

// Size returns the field dimensions.
func (f *FlowField) Size() core.Size { return core.Size{W: f.w, H: f.h} }

// At returns the vector at (x, y), or the zero vector off the grid.
func (f *FlowField) At(x, y int) core.Vec2 {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return core.Vec2{}
	}
	return f.vecs[y*f.w+x]
}

// Vectors lists every cell vector in row-major order.
func (f *FlowField) Vectors() []CellVector {
	out := make([]CellVector, 0, len(f.vecs))
	for i, v := range f.vecs {
		out = append(out, CellVector{Cell: core.Cell{X: i % f.w, Y: i / f.w}, Vec: v})
	}
	return out
}

// Sampler yields the steering vector for a cell.
type Sampler interface {
	At(x, y int) core.Vec2
}

// FieldRef publishes the current flow field to any number of readers.
// Store swaps in a fully built field in one step.
type FieldRef struct {
	p atomic.Pointer[FlowField]
}

// Load returns the current field, or nil before the first Store.
func (r *FieldRef) Load() *FlowField { return r.p.Load() }

// Store publishes f.
func (r *FieldRef) Store(f *FlowField) { r.p.Store(f) }

// At samples the current field. It returns the zero vector when no field
// has been published.
func (r *FieldRef) At(x, y int) core.Vec2 {
	f := r.p.Load()
	if f == nil {
		return core.Vec2{}
	}
	return f.At(x, y)
}
