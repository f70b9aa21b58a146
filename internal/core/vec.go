package core

import "math"

// Vec2 is a 2D vector in cell units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v multiplied by m.
func (v Vec2) Scale(m float64) Vec2 { return Vec2{X: v.X * m, Y: v.Y * m} }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Clamp limits the magnitude to c while keeping the direction.
func (v Vec2) Clamp(c float64) Vec2 {
	if c <= 0 {
		return Vec2{}
	}
	l := v.Len()
	if l <= c {
		return v
	}
	return v.Scale(c / l)
}

// MoveTo moves a fraction m of the remaining distance toward t. The
// fraction is clamped to [0, 1] so large steps land on t instead of
// overshooting it.
func (v Vec2) MoveTo(t Vec2, m float64) Vec2 {
	if m <= 0 {
		return v
	}
	if m > 1 {
		m = 1
	}
	return Vec2{X: v.X + (t.X-v.X)*m, Y: v.Y + (t.Y-v.Y)*m}
}

// Floor returns the cell containing the point.
func (v Vec2) Floor() Cell {
	return Cell{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// Center returns the midpoint of c in cell units.
func (c Cell) Center() Vec2 {
	return Vec2{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
}
