package app

import (
	"math"

	"github.com/Garsondee/Ball-Fuse/internal/game"
)

const (
	tiltStep = 0.1
	// minTiltY keeps gravity pointing at least half-way down.
	minTiltY = 0.5
)

// Tilt emulates device orientation with the keyboard. While disabled gravity
// points straight down.
type Tilt struct {
	Enabled bool
	x, y    float64
}

// NewTilt returns a level, disabled tilt.
func NewTilt() *Tilt { return &Tilt{y: 1} }

// Toggle flips tilt on or off and reports the new state.
func (t *Tilt) Toggle() bool {
	t.Enabled = !t.Enabled
	return t.Enabled
}

// Nudge shifts the tilt. x is clamped to [-1, 1] and y to [0.5, 1].
func (t *Tilt) Nudge(dx, dy float64) {
	t.x = math.Max(-1, math.Min(1, t.x+dx))
	t.y = math.Max(minTiltY, math.Min(1, t.y+dy))
}

// Gravity is the world gravity direction the tilt asks for.
func (t *Tilt) Gravity() game.Vec {
	if !t.Enabled {
		return game.Vec{Y: 1}
	}
	return game.Vec{X: t.x, Y: t.y}
}

// BackgroundAngle is the stripe rotation that keeps the stripes parallel to g.
func BackgroundAngle(g game.Vec) float64 {
	if g.Y == 0 {
		return 0
	}
	return math.Atan(-g.X / g.Y)
}
