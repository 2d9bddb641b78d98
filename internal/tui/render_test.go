package tui

import (
	"strings"
	"testing"

	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(s tcell.Screen, row int) string {
	cols, _ := s.Size()
	var b strings.Builder
	for col := 0; col < cols; col++ {
		ch, _, _, _ := s.GetContent(col, row)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestTierGlyphAndStyle(t *testing.T) {
	if TierGlyph(0) != '0' || TierGlyph(10) != 'X' {
		t.Fatalf("unexpected ladder glyphs %q %q", TierGlyph(0), TierGlyph(10))
	}
	if TierGlyph(-1) != '#' || TierGlyph(11) != '#' {
		t.Fatal("out-of-ladder tiers should draw as #")
	}
	if TierStyle(99) != TierStyle(10) {
		t.Fatal("tiers past the ladder should reuse the top colour")
	}
}

func TestDraw_IdleLayout(t *testing.T) {
	screen := newTestScreen(t, 80, 25)
	app := NewApp(screen, game.DefaultConfig(540, 960), 1, nil)
	app.Draw()

	status := rowText(screen, 24)
	if !strings.HasPrefix(status, " idle") || !strings.Contains(status, "[enter] new round") {
		t.Fatalf("status line = %q", status)
	}
	// 960px over 24 playfield rows: the top line (y=144) sits on row 3 and
	// the ground (y>=864) starts on row 21.
	if ch, _, _, _ := screen.GetContent(0, 3); ch != '┄' {
		t.Fatalf("top line cell = %q", ch)
	}
	for row := 21; row < 24; row++ {
		if ch, _, _, _ := screen.GetContent(5, row); ch != '▒' {
			t.Fatalf("ground cell at row %d = %q", row, ch)
		}
	}
	if ch, _, _, _ := screen.GetContent(5, 20); ch == '▒' {
		t.Fatal("ground drawn above the floor")
	}
}

func TestDraw_RunningShowsBallsAndScore(t *testing.T) {
	screen := newTestScreen(t, 80, 25)
	app := NewApp(screen, game.DefaultConfig(540, 960), 3, nil)
	app.Start()
	app.handleKey(tcell.KeyRune, ' ')
	for i := 0; i < 120; i++ {
		app.Step()
	}
	app.Draw()

	status := rowText(screen, 24)
	if !strings.HasPrefix(status, " running") || !strings.Contains(status, "[space] drop") {
		t.Fatalf("status line = %q", status)
	}
	digits := 0
	for row := 0; row < 24; row++ {
		for _, ch := range rowText(screen, row) {
			if ch >= '0' && ch <= '9' {
				digits++
			}
		}
	}
	// The dropped ball and the next ball are both on screen.
	if digits < 2 {
		t.Fatalf("expected ball cells on screen, got %d", digits)
	}
}
