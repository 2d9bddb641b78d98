package physics

import (
	"math"
	"testing"
	"time"

	"github.com/Garsondee/Ball-Fuse/internal/game"
)

const frame = time.Second / 60

type recorder struct {
	before, after int
	batches       []batch
}

type batch struct {
	kind  game.CollisionKind
	pairs []game.Pair
}

func (r *recorder) BeforeStep(time.Duration) { r.before++ }
func (r *recorder) AfterStep(time.Duration) { r.after++ }
func (r *recorder) Collision(kind game.CollisionKind, pairs []game.Pair) {
	cp := append([]game.Pair(nil), pairs...)
	r.batches = append(r.batches, batch{kind, cp})
}

func (r *recorder) count(kind game.CollisionKind) int {
	n := 0
	for _, b := range r.batches {
		if b.kind == kind {
			n += len(b.pairs)
		}
	}
	return n
}

func newTestWorld(t *testing.T) (*World, *recorder, game.Config) {
	t.Helper()
	cfg := game.DefaultConfig(960, 960)
	w := NewWorld(cfg)
	rec := &recorder{}
	w.Subscribe(rec)
	w.Resume()
	return w, rec, cfg
}

func ball(w *World, cfg game.Config, x, y, r float64) *Body {
	return w.AddCircle(game.Vec{X: x, Y: y}, r, game.BodyOptions{Material: cfg.Ball}).(*Body)
}

func runFor(w *World, steps int) {
	for i := 0; i < steps; i++ {
		w.Step(frame)
	}
}

func TestWorld_BallFallsAndSleeps(t *testing.T) {
	w, _, cfg := newTestWorld(t)
	b := ball(w, cfg, 480, 200, 26)

	runFor(w, 10)
	if b.Position().Y <= 200 {
		t.Fatalf("ball should fall, y=%.2f", b.Position().Y)
	}
	if b.Speed() == 0 {
		t.Fatal("falling ball must report motion")
	}

	runFor(w, 600)
	_, floor := w.Bounds()
	if got := b.Position().Y; math.Abs(got-(floor-26)) > 1 {
		t.Fatalf("expected ball resting on the floor at %.1f, got %.2f", floor-26, got)
	}
	if !b.Sleeping() {
		t.Fatal("resting ball should fall asleep")
	}
	if b.Speed() != 0 || b.AngularSpeed() != 0 {
		t.Fatalf("a sleeping ball reports exactly zero speed, got %v %v", b.Speed(), b.AngularSpeed())
	}
}

func TestWorld_OverlapReportsStartThenActive(t *testing.T) {
	w, rec, cfg := newTestWorld(t)
	a := ball(w, cfg, 480, 838, 26)
	b := ball(w, cfg, 520, 838, 26)

	w.Step(frame)
	if rec.count(game.CollisionStart) != 1 || rec.count(game.CollisionActive) != 0 {
		t.Fatalf("expected one start pair on first contact, got %+v", rec.batches)
	}
	p := rec.batches[0].pairs[0]
	if p.A != game.Body(a) || p.B != game.Body(b) {
		t.Fatal("pair should be ordered by body id")
	}

	w.Step(frame)
	if rec.count(game.CollisionActive) != 1 {
		t.Fatalf("expected the pair to continue as active, got %+v", rec.batches)
	}
	if rec.count(game.CollisionStart) != 1 {
		t.Fatal("a continuing pair must not start again")
	}
	if b.Position().X-a.Position().X <= 40 {
		t.Fatal("overlapping balls should be pushed apart")
	}
}

func TestWorld_NoCollideAndSensors(t *testing.T) {
	w, rec, cfg := newTestWorld(t)
	b := ball(w, cfg, 480, 838, 26)
	w.AddCircle(game.Vec{X: 480, Y: 838}, 26, game.BodyOptions{Static: true, NoCollide: true})
	w.Step(frame)
	if len(rec.batches) != 0 {
		t.Fatalf("NoCollide body produced pairs: %+v", rec.batches)
	}

	s := w.AddCircle(game.Vec{X: 500, Y: 838}, 26, game.BodyOptions{Static: true, Sensor: true})
	x := b.Position().X
	w.Step(frame)
	if rec.count(game.CollisionStart) != 1 {
		t.Fatalf("sensor overlap should be reported, got %+v", rec.batches)
	}
	if rec.batches[0].pairs[0].B != s {
		t.Fatal("expected the sensor in the pair")
	}
	if math.Abs(b.Position().X-x) > 1e-9 {
		t.Fatal("a sensor must not push bodies")
	}
}

func TestWorld_HaltedWorldDoesNotStep(t *testing.T) {
	cfg := game.DefaultConfig(960, 960)
	w := NewWorld(cfg)
	rec := &recorder{}
	w.Subscribe(rec)
	b := ball(w, cfg, 480, 200, 26)

	runFor(w, 10)
	if w.Now() != 0 || rec.before != 0 || b.Position().Y != 200 {
		t.Fatal("a world must not step before Resume")
	}
	w.Resume()
	runFor(w, 3)
	w.Halt()
	runFor(w, 10)
	if w.Steps() != 3 || rec.before != 3 || rec.after != 3 {
		t.Fatalf("expected 3 steps, got %d (before %d, after %d)", w.Steps(), rec.before, rec.after)
	}
	if w.Now() != 3*frame {
		t.Fatalf("expected timestamp %v, got %v", 3*frame, w.Now())
	}
}

func TestWorld_RemoveWakesStack(t *testing.T) {
	w, _, cfg := newTestWorld(t)
	bottom := ball(w, cfg, 480, 838, 26)
	top := ball(w, cfg, 480, 786, 26)
	runFor(w, 600)
	if !bottom.Sleeping() || !top.Sleeping() {
		t.Fatal("stack should settle asleep")
	}
	y := top.Position().Y

	w.Remove(bottom)
	w.Remove(bottom)
	if len(w.Bodies()) != 1 {
		t.Fatalf("expected one body left, got %d", len(w.Bodies()))
	}
	if top.Sleeping() {
		t.Fatal("removing a support should wake what rests on it")
	}
	runFor(w, 120)
	if top.Position().Y < y+40 {
		t.Fatalf("top ball should fall into the gap, y %.1f → %.1f", y, top.Position().Y)
	}
}

func TestWorld_GravityTiltWakesAndStaysInside(t *testing.T) {
	w, _, cfg := newTestWorld(t)
	b := ball(w, cfg, 480, 838, 26)
	runFor(w, 600)
	if !b.Sleeping() {
		t.Fatal("expected ball asleep before tilting")
	}

	w.SetGravity(game.Vec{X: -1, Y: 0.5})
	if b.Sleeping() {
		t.Fatal("changing gravity must wake bodies")
	}
	runFor(w, 600)
	if got := b.Position().X; got < b.Radius()-1e-9 {
		t.Fatalf("ball left through the wall: x=%.2f", got)
	}
	if got := b.Position().X; got > 100 {
		t.Fatalf("ball should roll to the left wall, x=%.2f", got)
	}
}

func TestWorld_StaticBodiesDoNotMove(t *testing.T) {
	w, _, cfg := newTestWorld(t)
	s := w.AddCircle(game.Vec{X: 480, Y: 96}, 26, game.BodyOptions{Static: true, Material: cfg.Ball})
	b := ball(w, cfg, 480, 600, 26)
	runFor(w, 30)
	b.SetStatic(true)
	y := b.Position().Y
	runFor(w, 30)
	if s.Position() != (game.Vec{X: 480, Y: 96}) || s.Speed() != 0 {
		t.Fatal("static body moved")
	}
	if b.Position().Y != y || b.Speed() != 0 {
		t.Fatal("frozen body kept moving")
	}
}
