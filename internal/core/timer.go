package core

import "time"

// Clock measures the time elapsed between simulation updates.
type Clock struct {
	max  time.Duration
	last time.Time
	now  func() time.Time
}

// NewClock returns a Clock whose laps never exceed max. A non-positive max
// disables the clamp.
func NewClock(max time.Duration) *Clock {
	return &Clock{max: max, now: time.Now}
}

// Lap returns the milliseconds since the previous lap. The first lap
// returns zero.
func (c *Clock) Lap() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta < 0 {
		delta = 0
	}
	if c.max > 0 && delta > c.max {
		delta = c.max
	}
	return float64(delta) / float64(time.Millisecond)
}

// Reset forgets the previous lap so the next one returns zero.
func (c *Clock) Reset() { c.last = time.Time{} }
