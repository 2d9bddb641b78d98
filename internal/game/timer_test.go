package game

import (
	"math"
	"testing"
	"time"
)

func manualClock(now *time.Duration) Clock {
	return func() time.Duration { return *now }
}

func TestTimer_ProgressFollowsInjectedClock(t *testing.T) {
	var now time.Duration
	timer := NewTimer(100*time.Millisecond, manualClock(&now))

	if p := timer.Progress(); p != 0 {
		t.Fatalf("expected progress 0 at start, got %.3f", p)
	}
	now = 25 * time.Millisecond
	if p := timer.Progress(); math.Abs(p-0.25) > 1e-9 {
		t.Fatalf("expected progress 0.25, got %.3f", p)
	}
	if timer.HasElapsed() {
		t.Fatal("timer should not have elapsed at 25%")
	}
	now = 100 * time.Millisecond
	if !timer.HasElapsed() {
		t.Fatal("timer should have elapsed at 100%")
	}
}

func TestTimer_ElapsedIsSticky(t *testing.T) {
	var now time.Duration
	timer := NewTimer(50*time.Millisecond, manualClock(&now))
	now = 80 * time.Millisecond
	if p := timer.Progress(); p != 1 {
		t.Fatalf("expected clamped progress 1, got %.3f", p)
	}
	now = 10 * time.Millisecond // clock jitter backwards
	if p := timer.Progress(); p != 1 {
		t.Fatalf("progress regressed after elapse: %.3f", p)
	}
	if !timer.HasElapsed() {
		t.Fatal("HasElapsed must stay true once reached")
	}
}

func TestTimer_ClampsBeforeStart(t *testing.T) {
	now := 40 * time.Millisecond
	timer := NewTimer(100*time.Millisecond, manualClock(&now))
	now = 20 * time.Millisecond
	if p := timer.Progress(); p != 0 {
		t.Fatalf("expected progress clamped to 0, got %.3f", p)
	}
}

func TestTimer_ZeroDurationElapsesImmediately(t *testing.T) {
	var now time.Duration
	timer := NewTimer(0, manualClock(&now))
	if !timer.HasElapsed() {
		t.Fatal("zero-duration timer should be elapsed at once")
	}
}

func TestLinear(t *testing.T) {
	cases := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 0.5, 5},
		{10, 0, 0.25, 7.5},
		{1, 0.75, 1, 0.75},
	}
	for _, c := range cases {
		if got := Linear(c.a, c.b, c.t); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Linear(%v,%v,%v) = %v, want %v", c.a, c.b, c.t, got, c.want)
		}
	}
}

func TestPiecewiseLinear_GrowCurve(t *testing.T) {
	cases := []struct {
		t, want float64
	}{
		{0, 1.0 / 8},
		{3.0 / 8, (1.0/8 + 9.0/8) / 2},
		{3.0 / 4, 9.0 / 8},
		{7.0 / 8, (9.0/8 + 1) / 2},
		{1, 1},
	}
	for _, c := range cases {
		if got := PiecewiseLinear(growCurve, c.t); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("grow curve at %.3f = %.4f, want %.4f", c.t, got, c.want)
		}
	}
}

func TestPiecewiseLinear_ExtendsNearestSegment(t *testing.T) {
	pts := []CurvePoint{{0, 0}, {0.5, 1}, {1, 0}}
	if got := PiecewiseLinear(pts, 1.5); math.Abs(got-(-1)) > 1e-9 {
		t.Fatalf("expected last segment extended to -1, got %.3f", got)
	}
	if got := PiecewiseLinear(pts, -0.5); math.Abs(got-(-1)) > 1e-9 {
		t.Fatalf("expected first segment extended to -1, got %.3f", got)
	}
	if got := PiecewiseLinear([]CurvePoint{{0, 3}}, 0.7); got != 3 {
		t.Fatalf("single point curve should be constant, got %.3f", got)
	}
}

func TestGuard(t *testing.T) {
	cases := []struct {
		x, width, r, want float64
	}{
		{5, 100, 10, 10},
		{50, 100, 10, 50},
		{95, 100, 10, 90},
	}
	for _, c := range cases {
		if got := Guard(c.x, c.width, c.r); got != c.want {
			t.Errorf("Guard(%v,%v,%v) = %v, want %v", c.x, c.width, c.r, got, c.want)
		}
	}
}
