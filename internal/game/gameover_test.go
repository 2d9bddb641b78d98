package game

import (
	"reflect"
	"testing"
	"time"
)

func TestGameOver_RestingBallAboveLineEndsRound(t *testing.T) {
	s, fs, statuses := newTestSession(t, nil)
	placeBall(s, 0, Vec{480, 100})

	fs.step(stepDT)
	if s.Status() != StatusStopping {
		t.Fatalf("expected stopping after the scan, got %s", s.Status())
	}
	fs.run(2 * time.Second)

	want := []Status{StatusRunning, StatusStopping, StatusEnd}
	if !reflect.DeepEqual(*statuses, want) {
		t.Fatalf("status sequence = %v, want %v", *statuses, want)
	}
	if n := s.log.CountCategory("gameover", "trigger"); n != 1 {
		t.Fatalf("expected one trigger, got %d", n)
	}
	if fs.running {
		t.Fatal("simulation should be halted at the end")
	}
	if s.registry.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", s.registry.Len())
	}
}

func TestGameOver_OnlySettledFreeBallsTrigger(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Session, b *fakeBody)
	}{
		{"falling", func(_ *Session, b *fakeBody) { b.speed = 4 }},
		{"spinning", func(_ *Session, b *fakeBody) { b.angular = 0.2 }},
		{"merging", func(s *Session, b *fakeBody) { s.registry.setState(b, StateMerging) }},
		{"just dropped", func(s *Session, b *fakeBody) { s.registry.setState(b, StateJustDropped) }},
		{"below line", func(_ *Session, b *fakeBody) { b.pos.Y = 400 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fs, _ := newTestSession(t, nil)
			b := placeBall(s, 0, Vec{480, 100}).(*fakeBody)
			tt.setup(s, b)
			for i := 0; i < 10; i++ {
				fs.step(stepDT)
			}
			if s.Status() != StatusRunning {
				t.Fatalf("expected running, got %s\n%s", s.Status(), s.log.Format())
			}
		})
	}
}

func TestGameOver_EdgeTouchingLineDoesNotTrigger(t *testing.T) {
	s, fs, _ := newTestSession(t, nil)
	p := s.ladder[0]
	placeBall(s, 0, Vec{480, s.cfg.TopLineY() + p.Radius})
	fs.step(stepDT)
	if s.Status() != StatusRunning {
		t.Fatalf("ball with its top exactly on the line must not trigger, got %s", s.Status())
	}
}

func TestGameOver_ClearsSequentiallyAndCredits(t *testing.T) {
	s, fs, statuses := newTestSession(t, nil)
	var cleared []int
	s.hooks.Clear = func(tier int) { cleared = append(cleared, tier) }
	tiers := []int{0, 2, 4}
	for i, tier := range tiers {
		placeBall(s, tier, Vec{200 + float64(i)*250, 800})
	}

	s.GameOver()
	for _, b := range s.registry.Bodies() {
		if !b.IsStatic() {
			t.Fatalf("%s should be frozen during the clear", s.label(b))
		}
	}
	s.DropBall()
	if n := s.log.CountCategory("drop", "commit"); n != 0 {
		t.Fatal("drops must be ignored while stopping")
	}

	fs.run(2 * time.Second)

	if s.Score() != 1+3+5 {
		t.Fatalf("expected clear bonus 9, got %d", s.Score())
	}
	if !reflect.DeepEqual(cleared, tiers) {
		t.Fatalf("cleared tiers = %v, want %v in spawn order", cleared, tiers)
	}
	entries := s.log.Filter("clear", "ball")
	if len(entries) != len(tiers) {
		t.Fatalf("expected %d clear entries, got %d", len(tiers), len(entries))
	}
	minGap := int(s.cfg.ShrinkDuration / stepDT)
	for i := 1; i < len(entries); i++ {
		if gap := entries[i].Step - entries[i-1].Step; gap < minGap {
			t.Fatalf("balls cleared %d steps apart, want at least %d (sequential shrink)", gap, minGap)
		}
	}
	if s.registry.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", s.registry.Len())
	}
	want := []Status{StatusRunning, StatusStopping, StatusEnd}
	if !reflect.DeepEqual(*statuses, want) {
		t.Fatalf("status sequence = %v, want %v", *statuses, want)
	}
	if fs.running {
		t.Fatal("simulation should be halted")
	}
}

func TestGameOver_NoopUnlessRunning(t *testing.T) {
	fs := &fakeSim{}
	var statuses []Status
	s := NewSession(fs, DefaultConfig(960, 960), WithHooks(Hooks{Status: func(st Status) { statuses = append(statuses, st) }}))
	s.GameOver()
	if s.Status() != StatusIdle || len(statuses) != 0 {
		t.Fatalf("idle session must ignore GameOver, got %s %v", s.Status(), statuses)
	}

	s.Start()
	s.GameOver()
	s.GameOver()
	if n := len(statuses); n != 2 {
		t.Fatalf("second GameOver must be ignored, statuses %v", statuses)
	}
	fs.run(time.Second)
	s.GameOver()
	if s.Status() != StatusEnd {
		t.Fatalf("expected end, got %s", s.Status())
	}
	if n := len(statuses); n != 3 {
		t.Fatalf("GameOver after end must be ignored, statuses %v", statuses)
	}
}
