package core

import "errors"

var (
	// ErrInvalidGridData reports malformed grid input: non-positive
	// dimensions or a tile count that does not match them.
	ErrInvalidGridData = errors.New("invalid grid data")

	// ErrInvalidGoalCell reports a goal that is off the grid or blocked.
	ErrInvalidGoalCell = errors.New("invalid goal cell")
)
