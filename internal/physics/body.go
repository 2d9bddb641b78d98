package physics

import (
	"math"

	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/solarlune/resolv"
)

// Body is a circle in a World. It implements game.Body.
type Body struct {
	id     int
	world  *World
	obj    *resolv.Object
	radius float64

	pos    game.Vec
	vel    game.Vec // px/s
	angle  float64
	angVel float64 // rad/s

	mass      float64
	material  game.Material
	static    bool
	sensor    bool
	noCollide bool
	visual    game.Visual

	opacity float64
	scale   float64

	sleeping   bool
	stillSteps int
	grounded   bool
	removed    bool
}

// ID is the body's creation order. Contact pairs are ordered by it.
func (b *Body) ID() int { return b.id }

// Visual returns the renderer handle set at creation.
func (b *Body) Visual() game.Visual { return b.visual }

// Velocity returns the linear velocity in px/s; zero while asleep.
func (b *Body) Velocity() game.Vec {
	if b.static || b.sleeping {
		return game.Vec{}
	}
	return b.vel
}

// Sleeping reports whether the body has come to rest.
func (b *Body) Sleeping() bool { return b.sleeping }

func (b *Body) Position() game.Vec { return b.pos }

// SetPosition teleports the body. A dynamic body is woken.
func (b *Body) SetPosition(p game.Vec) {
	b.pos = p
	b.wake()
}

// Speed is exactly zero for static and sleeping bodies.
func (b *Body) Speed() float64 {
	if b.static || b.sleeping {
		return 0
	}
	return b.vel.Len()
}

func (b *Body) AngularSpeed() float64 {
	if b.static || b.sleeping {
		return 0
	}
	return math.Abs(b.angVel)
}

func (b *Body) Radius() float64 { return b.radius }
func (b *Body) IsStatic() bool { return b.static }

// SetStatic freezes or releases the body. Freezing clears its velocity.
func (b *Body) SetStatic(v bool) {
	if b.static == v {
		return
	}
	b.static = v
	b.vel = game.Vec{}
	b.angVel = 0
	if !v {
		b.wake()
	}
}

func (b *Body) IsSensor() bool { return b.sensor }
func (b *Body) Opacity() float64 { return b.opacity }
func (b *Body) SetOpacity(v float64) { b.opacity = v }
func (b *Body) Scale() float64 { return b.scale }
func (b *Body) SetScale(v float64) { b.scale = v }
func (b *Body) Angle() float64 { return b.angle }
func (b *Body) SetAngle(v float64) { b.angle = v }

func (b *Body) solid() bool { return !b.sensor && !b.noCollide }
func (b *Body) resting() bool { return b.static || b.sleeping }

// contactInvMass is zero for bodies that must not be pushed: static ones and
// sleepers, which act as supports until something wakes them.
func (b *Body) contactInvMass() float64 {
	if b.static || b.sleeping || b.mass <= 0 {
		return 0
	}
	return 1 / b.mass
}

func (b *Body) wake() {
	if b.static {
		return
	}
	b.sleeping = false
	b.stillSteps = 0
}

func (b *Body) sleep() {
	b.sleeping = true
	b.vel = game.Vec{}
	b.angVel = 0
}
