package physics

import (
	"math"

	"github.com/Garsondee/Ball-Fuse/internal/game"
)

// integrate applies gravity and air friction to awake dynamic bodies and
// moves them.
func (w *World) integrate(dt float64) {
	g := w.gravity.Scale(GravityScale * dt)
	for _, b := range w.bodies {
		b.grounded = false
		if b.resting() {
			continue
		}
		air := math.Pow(1-b.material.FrictionAir, dt*referenceHz)
		b.vel = b.vel.Add(g).Scale(air)
		b.pos = b.pos.Add(b.vel.Scale(dt))
		b.angle += b.angVel * dt
	}
}

// solve runs the velocity passes over ball contacts and the container, then
// pushes overlapping bodies apart.
func (w *World) solve(contacts []contact, dt float64) {
	solid := contacts[:0:0]
	for _, c := range contacts {
		if !c.a.solid() || !c.b.solid() {
			continue
		}
		w.wakeOnImpact(c)
		solid = append(solid, c)
	}

	for i := 0; i < solverIterations; i++ {
		for _, c := range solid {
			resolveVelocity(c)
		}
		for _, b := range w.bodies {
			w.resolveBounds(b)
		}
	}
	for _, c := range solid {
		correctPositions(c)
	}
	for _, b := range w.bodies {
		w.clampBounds(b)
		if b.resting() {
			continue
		}
		if b.grounded {
			// Rolling without slipping on the floor.
			b.angVel = b.vel.X / b.radius
		} else {
			b.angVel *= math.Pow(1-b.material.FrictionAir, dt*referenceHz)
		}
	}
}

func (w *World) wakeOnImpact(c contact) {
	closing := c.b.vel.Sub(c.a.vel).Dot(c.normal)
	if closing > -impactWakeSpeed {
		return
	}
	if c.a.sleeping {
		c.a.wake()
	}
	if c.b.sleeping {
		c.b.wake()
	}
}

func resolveVelocity(c contact) {
	ia, ib := c.a.contactInvMass(), c.b.contactInvMass()
	if ia+ib == 0 {
		return
	}
	rel := c.b.vel.Sub(c.a.vel)
	vn := rel.Dot(c.normal)
	if vn > 0 {
		return
	}
	e := math.Min(c.a.material.Restitution, c.b.material.Restitution)
	if -vn < restitutionThreshold {
		e = 0
	}
	j := -(1 + e) * vn / (ia + ib)
	impulse := c.normal.Scale(j)
	c.a.vel = c.a.vel.Sub(impulse.Scale(ia))
	c.b.vel = c.b.vel.Add(impulse.Scale(ib))

	// Coulomb friction along the tangent.
	rel = c.b.vel.Sub(c.a.vel)
	tangent := rel.Sub(c.normal.Scale(rel.Dot(c.normal)))
	tl := tangent.Len()
	if tl < 1e-9 {
		return
	}
	tangent = tangent.Scale(1 / tl)
	jt := -rel.Dot(tangent) / (ia + ib)
	mu := math.Min(1, math.Sqrt(c.a.material.Friction*c.b.material.Friction))
	limit := math.Abs(j) * mu
	if math.Abs(jt) > limit {
		jt = math.Copysign(limit, jt)
	}
	ft := tangent.Scale(jt)
	c.a.vel = c.a.vel.Sub(ft.Scale(ia))
	c.b.vel = c.b.vel.Add(ft.Scale(ib))
	c.a.angVel -= jt * ia / c.a.radius
	c.b.angVel -= jt * ib / c.b.radius
}

func correctPositions(c contact) {
	ia, ib := c.a.contactInvMass(), c.b.contactInvMass()
	if ia+ib == 0 || c.depth <= correctionSlop {
		return
	}
	k := (c.depth - correctionSlop) / (ia + ib) * correctionPercent
	fix := c.normal.Scale(k)
	c.a.pos = c.a.pos.Sub(fix.Scale(ia))
	c.b.pos = c.b.pos.Add(fix.Scale(ib))
}

// resolveBounds stops b moving into the walls or the floor.
func (w *World) resolveBounds(b *Body) {
	if b.resting() || !b.solid() {
		return
	}
	e := b.material.Restitution
	bounce := func(v float64) float64 {
		if math.Abs(v) < restitutionThreshold {
			return 0
		}
		return -v * e
	}
	if b.pos.X-b.radius <= 0 && b.vel.X < 0 {
		b.vel.X = bounce(b.vel.X)
	}
	if b.pos.X+b.radius >= w.width && b.vel.X > 0 {
		b.vel.X = bounce(b.vel.X)
	}
	if b.pos.Y+b.radius >= w.floor {
		b.grounded = true
		if b.vel.Y > 0 {
			b.vel.Y = bounce(b.vel.Y)
		}
		mu := math.Min(1, b.material.Friction)
		b.vel.X *= 1 - mu*frictionPerPass
	}
}

// clampBounds moves b back inside the container.
func (w *World) clampBounds(b *Body) {
	if b.static || !b.solid() {
		return
	}
	b.pos.X = game.Guard(b.pos.X, w.width, b.radius)
	if b.pos.Y+b.radius > w.floor {
		b.pos.Y = w.floor - b.radius
	}
}
