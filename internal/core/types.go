package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the contract the shells drive: a world that advances by elapsed
// milliseconds and exposes a per-cell display buffer.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64) error
	Advance(dtMillis float64)
	Cells() []uint8
}
