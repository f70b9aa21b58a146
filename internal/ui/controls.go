package ui

import (
	"math"
	"strconv"

	"flowpath/internal/core"
)

// Adjust moves v one control step in direction dir and clamps the result
// to the control range. ok is false when nothing would change.
func Adjust(ctrl core.ParameterControl, v float64, dir int) (next float64, ok bool) {
	if dir == 0 {
		return v, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 1
		if ctrl.Type == core.ParamTypeFloat {
			step = 0.05
		}
	}
	next = ctrl.Clamp(v + float64(dir)*step)
	if ctrl.Type == core.ParamTypeInt {
		next = math.Round(next)
	}
	return next, math.Abs(next-v) > 1e-12
}

// FormatValue renders v with a precision matching the control step.
func FormatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
