package core

import "time"

// MaxFrameTime caps a single frame's dt so a stalled host does not
// produce one huge physics step.
const MaxFrameTime = 0.25

// FrameClock turns wall-clock frame timestamps into dt values.
type FrameClock struct {
	last     time.Time
	fallback float64
}

// NewFrameClock creates a clock whose first frame reports 1/tickRate.
func NewFrameClock(tickRate int) *FrameClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &FrameClock{fallback: 1.0 / float64(tickRate)}
}

// Tick returns the seconds elapsed since the previous Tick, capped at
// MaxFrameTime. Time running backwards yields 0.
func (c *FrameClock) Tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return c.fallback
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now

	if dt < 0 {
		return 0
	}
	if dt > MaxFrameTime {
		dt = MaxFrameTime
	}
	return dt
}

// Reset forgets the previous timestamp, e.g. after the host was suspended.
func (c *FrameClock) Reset() {
	c.last = time.Time{}
}
