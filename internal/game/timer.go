package game

import "time"

// Clock returns a monotonic timestamp. Production code passes the session's
// step clock so animations advance (and pause) with the simulation.
type Clock func() time.Duration

var wallEpoch = time.Now()

// WallClock returns a Clock backed by the process's monotonic wall time.
func WallClock() Clock {
	return func() time.Duration { return time.Since(wallEpoch) }
}

// Timer tracks progress through a fixed duration. One Timer per transition.
type Timer struct {
	clock    Clock
	start    time.Duration
	duration time.Duration
	elapsed  bool
}

// NewTimer starts a timer at clock(). A nil clock falls back to WallClock.
func NewTimer(duration time.Duration, clock Clock) *Timer {
	if clock == nil {
		clock = WallClock()
	}
	return &Timer{clock: clock, start: clock(), duration: duration}
}

// Progress returns the elapsed fraction in [0,1]. Once it reaches 1 it stays
// there even if the clock later jitters backwards.
func (t *Timer) Progress() float64 {
	if t.elapsed {
		return 1
	}
	if t.duration <= 0 {
		t.elapsed = true
		return 1
	}
	p := float64(t.clock()-t.start) / float64(t.duration)
	if p >= 1 {
		t.elapsed = true
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// HasElapsed reports whether progress has reached 1. Sticky.
func (t *Timer) HasElapsed() bool {
	return t.Progress() >= 1
}

// Linear interpolates between a and b.
func Linear(a, b, t float64) float64 {
	return a + (b-a)*t
}

// CurvePoint is one (t, value) knot of a piecewise-linear curve.
type CurvePoint struct {
	T, V float64
}

// PiecewiseLinear evaluates a curve through points sorted by T. Outside the
// first and last knot the nearest segment is extended.
func PiecewiseLinear(points []CurvePoint, t float64) float64 {
	switch len(points) {
	case 0:
		return 0
	case 1:
		return points[0].V
	}
	i := 1
	for ; i < len(points)-1; i++ {
		if t < points[i].T {
			break
		}
	}
	a, b := points[i-1], points[i]
	span := b.T - a.T
	if span == 0 {
		return b.V
	}
	return Linear(a.V, b.V, (t-a.T)/span)
}

// Guard clamps x so a circle of radius r stays inside [0, width].
func Guard(x, width, r float64) float64 {
	if x < r {
		return r
	}
	if x > width-r {
		return width - r
	}
	return x
}
