package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/Ball-Fuse/internal/game"
)

func newTestGame(autoplay bool) *Game {
	return New(Options{Width: 540, Height: 960, Seed: 5, Autoplay: autoplay})
}

func TestGame_LayoutIncludesFeedPanel(t *testing.T) {
	g := newTestGame(false)
	w, h := g.Layout(0, 0)
	if w != 540+feedPanelWidth || h != 960 {
		t.Fatalf("layout = %dx%d", w, h)
	}
}

func TestGame_StartReplacesFinishedRound(t *testing.T) {
	g := newTestGame(false)
	g.start()
	first := g.session
	if first.Status() != game.StatusRunning {
		t.Fatalf("status = %s", first.Status())
	}
	g.start()
	if g.session != first {
		t.Fatal("start during a round must not replace it")
	}
	first.Stop()
	g.start()
	if g.session == first || g.session.Status() != game.StatusRunning {
		t.Fatal("start after the end should run a fresh round")
	}
}

func TestGame_AutoplayDropsEveryInterval(t *testing.T) {
	g := newTestGame(true)
	g.start()
	for i := 0; i < 31; i++ {
		g.tick()
	}
	if n := g.session.EventLog().CountCategory("drop", "commit"); n != 1 {
		t.Fatalf("drops after ~0.5s = %d, want 1", n)
	}
	for i := 0; i < 31; i++ {
		g.tick()
	}
	if n := g.session.EventLog().CountCategory("drop", "commit"); n != 2 {
		t.Fatalf("drops after ~1s = %d, want 2", n)
	}
}

func TestGame_NoAutoplayWithoutFlag(t *testing.T) {
	g := newTestGame(false)
	g.start()
	for i := 0; i < 120; i++ {
		g.tick()
	}
	if n := g.session.EventLog().CountCategory("drop", "commit"); n != 0 {
		t.Fatalf("drops = %d, want 0", n)
	}
}

func TestGame_TiltReachesWorld(t *testing.T) {
	g := newTestGame(false)
	g.start()
	g.toggleTilt()
	g.tilt.Nudge(0.3, -0.2)
	g.tick()
	want := g.tilt.Gravity()
	if got := g.world.Gravity(); got != want {
		t.Fatalf("world gravity = %+v, want %+v", got, want)
	}
	g.toggleTilt()
	g.tick()
	if got := g.world.Gravity(); got != (game.Vec{Y: 1}) {
		t.Fatalf("gravity after disabling tilt = %+v", got)
	}
}

func TestGame_CopySummary(t *testing.T) {
	g := newTestGame(false)
	var copied string
	g.copyText = func(s string) error {
		copied = s
		return nil
	}
	g.start()
	g.copySummary()
	if !strings.Contains(copied, "status=running") {
		t.Fatalf("copied = %q", copied)
	}

	g.copyText = func(string) error { return errors.New("no clipboard") }
	g.copySummary()
	recent := g.feed.Recent()
	if last := recent[len(recent)-1]; !strings.Contains(last.Message, "no clipboard") {
		t.Fatalf("last feed line = %q", last.Message)
	}
}

func TestGame_FeedFollowsEventLog(t *testing.T) {
	g := newTestGame(false)
	g.start()
	g.tick()
	found := false
	for _, e := range g.feed.Recent() {
		if e.Category == "session" && strings.Contains(e.Message, "running") {
			found = true
		}
	}
	if !found {
		t.Fatal("feed should show the status change")
	}
}
