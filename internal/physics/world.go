package physics

import (
	"math"
	"sort"
	"time"

	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/solarlune/resolv"
)

const (
	// GravityScale converts a unit gravity vector to px/s².
	GravityScale = 1000.0
	// solverIterations is the number of velocity passes per step.
	solverIterations = 8
	// restitutionThreshold is the closing speed (px/s) below which contacts
	// do not bounce.
	restitutionThreshold = 60.0
	// correctionPercent and correctionSlop shape the positional fix-up.
	correctionPercent = 0.6
	correctionSlop    = 0.5
	// A body slower than sleepSpeed (px/s) for sleepSteps consecutive steps
	// falls asleep.
	sleepSpeed   = 8.0
	sleepAngular = 0.2
	sleepSteps   = 30
	// wakeGap is how close (px) a moving body must come to wake a sleeper.
	wakeGap = 2.0
	// impactWakeSpeed is the closing speed (px/s) at which a hit wakes a sleeper.
	impactWakeSpeed = 40.0
	// cellSize is the resolv broadphase cell edge in px.
	cellSize = 32
	// frictionPerPass is the floor's tangential damping per solver pass at mu=1.
	frictionPerPass = 0.01
	// referenceHz is the step rate the per-step air friction is tuned for.
	referenceHz = 60.0
)

type pairKey struct{ a, b int }

type contact struct {
	a, b   *Body
	normal game.Vec // from a to b
	depth  float64
}

// World is a circle-only rigid body simulation inside an open-topped box.
// It implements game.Simulation. All methods must be called from one goroutine.
type World struct {
	width  float64
	height float64
	floor  float64
	margin float64

	gravity   game.Vec
	bodies    []*Body
	byObj     map[*resolv.Object]*Body
	space     *resolv.Space
	listeners []game.StepListener

	running  bool
	now      time.Duration
	steps    int
	nextID   int
	touching map[pairKey]bool
}

// NewWorld builds a halted world sized to cfg with the floor at
// Height - GroundHeight and gravity pointing down.
func NewWorld(cfg game.Config) *World {
	margin := cfg.Size() / 2
	w := &World{
		width:    cfg.Width,
		height:   cfg.Height,
		floor:    cfg.Height - cfg.GroundHeight(),
		margin:   margin,
		gravity:  game.Vec{Y: 1},
		byObj:    make(map[*resolv.Object]*Body),
		touching: make(map[pairKey]bool),
	}
	w.space = resolv.NewSpace(
		int(math.Ceil(cfg.Width+2*margin)),
		int(math.Ceil(cfg.Height+2*margin)),
		cellSize, cellSize,
	)
	return w
}

// AddCircle creates a body. NoCollide bodies stay out of the broadphase.
func (w *World) AddCircle(pos game.Vec, radius float64, opts game.BodyOptions) game.Body {
	w.nextID++
	b := &Body{
		id:        w.nextID,
		world:     w,
		radius:    radius,
		pos:       pos,
		material:  opts.Material,
		static:    opts.Static,
		sensor:    opts.Sensor,
		noCollide: opts.NoCollide,
		visual:    opts.Visual,
		opacity:   1,
		scale:     1,
	}
	b.mass = opts.Material.Density * math.Pi * radius * radius
	if b.mass <= 0 {
		b.mass = 1
	}
	if !b.noCollide {
		b.obj = resolv.NewObject(0, 0, 2*radius, 2*radius)
		w.space.Add(b.obj)
		w.byObj[b.obj] = b
		w.syncObject(b)
	}
	w.bodies = append(w.bodies, b)
	return b
}

// Remove deletes b from the world and wakes whatever rested on it.
// Removing a body twice is a no-op.
func (w *World) Remove(gb game.Body) {
	b, ok := gb.(*Body)
	if !ok || b.removed || b.world != w {
		return
	}
	b.removed = true
	w.wakeNear(b)
	if b.obj != nil {
		w.space.Remove(b.obj)
		delete(w.byObj, b.obj)
		b.obj = nil
	}
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for k := range w.touching {
		if k.a == b.id || k.b == b.id {
			delete(w.touching, k)
		}
	}
}

// Subscribe registers a listener for step and collision callbacks.
func (w *World) Subscribe(l game.StepListener) { w.listeners = append(w.listeners, l) }

// Resume lets Step advance the world.
func (w *World) Resume() { w.running = true }

// Halt freezes the world; Step becomes a no-op.
func (w *World) Halt() { w.running = false }

// Running reports whether the world is stepping.
func (w *World) Running() bool { return w.running }

// Now returns the world's monotonic timestamp.
func (w *World) Now() time.Duration { return w.now }

// Steps returns the number of steps taken.
func (w *World) Steps() int { return w.steps }

// Gravity returns the unit gravity vector.
func (w *World) Gravity() game.Vec { return w.gravity }

// SetGravity changes the gravity direction and wakes every body.
func (w *World) SetGravity(g game.Vec) {
	if g == w.gravity {
		return
	}
	w.gravity = g
	for _, b := range w.bodies {
		b.wake()
	}
}

// Bounds returns the container: playfield width and floor height.
func (w *World) Bounds() (width, floor float64) { return w.width, w.floor }

// Bodies returns every body in creation order. The slice is shared; do not
// modify it.
func (w *World) Bodies() []*Body { return w.bodies }

// Step advances the world by dt. Listeners see BeforeStep, then the new
// pairs as a start batch, the continuing pairs as an active batch and
// finally AfterStep.
func (w *World) Step(dt time.Duration) {
	if !w.running || dt <= 0 {
		return
	}
	w.now += dt
	w.steps++
	for _, l := range w.listeners {
		l.BeforeStep(w.now)
	}
	if !w.running {
		return
	}

	sec := dt.Seconds()
	w.integrate(sec)
	contacts := w.detect()
	w.solve(contacts, sec)
	w.wakeNeighbours()
	w.updateSleep()

	started, active := w.classify(contacts)
	if len(started) > 0 {
		for _, l := range w.listeners {
			l.Collision(game.CollisionStart, started)
		}
	}
	if len(active) > 0 {
		for _, l := range w.listeners {
			l.Collision(game.CollisionActive, active)
		}
	}
	for _, l := range w.listeners {
		l.AfterStep(w.now)
	}
}

func (w *World) syncObject(b *Body) {
	if b.obj == nil {
		return
	}
	b.obj.X = b.pos.X - b.radius - wakeGap + w.margin
	b.obj.Y = b.pos.Y - b.radius - wakeGap + w.margin
	b.obj.W = 2 * (b.radius + wakeGap)
	b.obj.H = 2 * (b.radius + wakeGap)
	b.obj.Update()
}

// detect returns every overlapping pair, ordered by body id. Pairs where both
// bodies are static or asleep are skipped.
func (w *World) detect() []contact {
	var out []contact
	for _, a := range w.bodies {
		w.syncObject(a)
	}
	for _, a := range w.bodies {
		if a.obj == nil {
			continue
		}
		hit := a.obj.Check(0, 0)
		if hit == nil {
			continue
		}
		for _, o := range hit.Objects {
			b := w.byObj[o]
			if b == nil || b.id <= a.id {
				continue
			}
			if a.resting() && b.resting() {
				continue
			}
			d := b.pos.Sub(a.pos)
			dist := d.Len()
			if dist >= a.radius+b.radius {
				continue
			}
			n := game.Vec{X: 0, Y: 1}
			if dist > 0 {
				n = d.Scale(1 / dist)
			}
			out = append(out, contact{a: a, b: b, normal: n, depth: a.radius + b.radius - dist})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].a.id != out[j].a.id {
			return out[i].a.id < out[j].a.id
		}
		return out[i].b.id < out[j].b.id
	})
	return out
}

// wakeNeighbours wakes sleepers next to any body that is still moving.
// A chain of sleepers wakes one link per step.
func (w *World) wakeNeighbours() {
	for _, b := range w.bodies {
		if b.resting() || !b.solid() || b.obj == nil || b.vel.Len() < sleepSpeed {
			continue
		}
		w.wakeNear(b)
	}
}

func (w *World) wakeNear(b *Body) {
	if b.obj == nil {
		return
	}
	hit := b.obj.Check(0, 0)
	if hit == nil {
		return
	}
	for _, o := range hit.Objects {
		n := w.byObj[o]
		if n == nil || !n.sleeping {
			continue
		}
		if n.pos.Sub(b.pos).Len() < n.radius+b.radius+wakeGap {
			n.wake()
		}
	}
}

// classify splits contacts into new and continuing pairs and remembers the
// set for the next step.
func (w *World) classify(contacts []contact) (started, active []game.Pair) {
	next := make(map[pairKey]bool, len(contacts))
	for _, c := range contacts {
		if c.a.removed || c.b.removed {
			continue
		}
		k := pairKey{c.a.id, c.b.id}
		next[k] = true
		p := game.Pair{A: c.a, B: c.b}
		if w.touching[k] {
			active = append(active, p)
		} else {
			started = append(started, p)
		}
	}
	w.touching = next
	return started, active
}

func (w *World) updateSleep() {
	for _, b := range w.bodies {
		if b.static || b.sleeping || b.noCollide {
			continue
		}
		if b.vel.Len() < sleepSpeed && math.Abs(b.angVel) < sleepAngular {
			b.stillSteps++
			if b.stillSteps >= sleepSteps {
				b.sleep()
			}
			continue
		}
		b.stillSteps = 0
	}
}
