package game

import (
	"math/rand"
	"testing"
	"time"
)

// fakeBody is a hand-driven Body: tests set speeds and positions directly.
type fakeBody struct {
	id      int
	pos     Vec
	radius  float64
	speed   float64
	angular float64
	static  bool
	sensor  bool
	opts    BodyOptions
	opacity float64
	scale   float64
	angle   float64
	removed bool
}

func (b *fakeBody) Position() Vec { return b.pos }
func (b *fakeBody) SetPosition(p Vec) { b.pos = p }
func (b *fakeBody) Speed() float64 { return b.speed }
func (b *fakeBody) AngularSpeed() float64 { return b.angular }
func (b *fakeBody) Radius() float64 { return b.radius }
func (b *fakeBody) IsStatic() bool { return b.static }
func (b *fakeBody) SetStatic(v bool) { b.static = v }
func (b *fakeBody) IsSensor() bool { return b.sensor }
func (b *fakeBody) Opacity() float64 { return b.opacity }
func (b *fakeBody) SetOpacity(v float64) { b.opacity = v }
func (b *fakeBody) Scale() float64 { return b.scale }
func (b *fakeBody) SetScale(v float64) { b.scale = v }
func (b *fakeBody) Angle() float64 { return b.angle }
func (b *fakeBody) SetAngle(v float64) { b.angle = v }

// fakeSim is a Simulation with a manual clock and no dynamics. Collisions
// are injected by the test.
type fakeSim struct {
	bodies    []*fakeBody
	listeners []StepListener
	running   bool
	now       time.Duration
	nextID    int
	removals  int
}

func (fs *fakeSim) AddCircle(pos Vec, radius float64, opts BodyOptions) Body {
	fs.nextID++
	b := &fakeBody{
		id:      fs.nextID,
		pos:     pos,
		radius:  radius,
		static:  opts.Static,
		sensor:  opts.Sensor,
		opts:    opts,
		opacity: 1,
		scale:   1,
	}
	fs.bodies = append(fs.bodies, b)
	return b
}

func (fs *fakeSim) Remove(b Body) {
	fb := b.(*fakeBody)
	if fb.removed {
		return
	}
	fb.removed = true
	fs.removals++
	kept := fs.bodies[:0]
	for _, o := range fs.bodies {
		if o != fb {
			kept = append(kept, o)
		}
	}
	fs.bodies = kept
}

func (fs *fakeSim) Subscribe(l StepListener) { fs.listeners = append(fs.listeners, l) }
func (fs *fakeSim) Resume() { fs.running = true }
func (fs *fakeSim) Halt() { fs.running = false }

// step advances the clock by dt and fires one step with the given pairs as
// "active" contacts. A halted sim does nothing.
func (fs *fakeSim) step(dt time.Duration, pairs ...Pair) {
	if !fs.running {
		return
	}
	fs.now += dt
	for _, l := range fs.listeners {
		l.BeforeStep(fs.now)
	}
	if len(pairs) > 0 {
		for _, l := range fs.listeners {
			l.Collision(CollisionActive, pairs)
		}
	}
	for _, l := range fs.listeners {
		l.AfterStep(fs.now)
	}
}

// run steps at 16ms for the given duration.
func (fs *fakeSim) run(d time.Duration) {
	for t := time.Duration(0); t < d; t += 16 * time.Millisecond {
		fs.step(16 * time.Millisecond)
	}
}

func (fs *fakeSim) has(b Body) bool {
	for _, o := range fs.bodies {
		if o == b {
			return true
		}
	}
	return false
}

// countVisual counts bodies of a visual kind still in the world.
func (fs *fakeSim) countVisual(kind VisualKind) int {
	n := 0
	for _, b := range fs.bodies {
		if b.opts.Visual.Kind == kind {
			n++
		}
	}
	return n
}

// newTestSession builds a started session on a 960x960 fake world with a
// fixed seed. Debris is off unless a test turns it on.
func newTestSession(t *testing.T, mutate func(*Config)) (*Session, *fakeSim, *[]Status) {
	t.Helper()
	cfg := DefaultConfig(960, 960)
	cfg.Debris = false
	if mutate != nil {
		mutate(&cfg)
	}
	fs := &fakeSim{}
	var statuses []Status
	s := NewSession(fs, cfg,
		WithRand(rand.New(rand.NewSource(7))), // #nosec G404 -- test
		WithHooks(Hooks{Status: func(st Status) { statuses = append(statuses, st) }}),
	)
	s.Start()
	return s, fs, &statuses
}

// placeBall puts a resting, free play ball of tier at pos.
func placeBall(s *Session, tier int, pos Vec) Body {
	return s.spawnBall(pos, s.ladder[tier], BodyOptions{}, false, RolePlay)
}

// playBalls returns the registered play-role bodies.
func playBalls(s *Session) []Body {
	var out []Body
	for _, b := range s.registry.Bodies() {
		if r, _ := s.registry.Role(b); r == RolePlay {
			out = append(out, b)
		}
	}
	return out
}

// checkRegistryConsistent verifies every registered body is still in the world.
func checkRegistryConsistent(t *testing.T, s *Session, fs *fakeSim) {
	t.Helper()
	for _, b := range s.registry.Bodies() {
		if !fs.has(b) {
			t.Errorf("registered body %s is not in the simulation", s.label(b))
		}
	}
}
