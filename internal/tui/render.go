// Package tui draws a round on a terminal with tcell.
package tui

import (
	"fmt"
	"math"

	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/Garsondee/Ball-Fuse/internal/physics"
	"github.com/gdamore/tcell/v2"
)

var tierGlyphs = []rune("0123456789X")

var tierColors = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorOrangeRed,
	tcell.ColorOrange,
	tcell.ColorYellow,
	tcell.ColorGreenYellow,
	tcell.ColorGreen,
	tcell.ColorTeal,
	tcell.ColorDodgerBlue,
	tcell.ColorBlue,
	tcell.ColorPurple,
	tcell.ColorFuchsia,
}

// TierStyle is the cell style of a ball of the given tier.
func TierStyle(tier int) tcell.Style {
	c := tierColors[len(tierColors)-1]
	if tier >= 0 && tier < len(tierColors) {
		c = tierColors[tier]
	}
	return tcell.StyleDefault.Foreground(c)
}

// TierGlyph is the rune a ball of the given tier is filled with.
func TierGlyph(tier int) rune {
	if tier < 0 || tier >= len(tierGlyphs) {
		return '#'
	}
	return tierGlyphs[tier]
}

// Frame is what one redraw needs.
type Frame struct {
	World   *physics.World
	Session *game.Session
	Best    int
	Muted   bool
}

// projection maps world pixels onto the playfield cells. The bottom row is
// reserved for the status line.
type projection struct {
	cols, rows int
	sx, sy     float64 // px per cell
}

func newProjection(cfg game.Config, cols, rows int) projection {
	rows--
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return projection{cols: cols, rows: rows, sx: cfg.Width / float64(cols), sy: cfg.Height / float64(rows)}
}

func (p projection) cell(v game.Vec) (int, int) {
	return int(math.Floor(v.X / p.sx)), int(math.Floor(v.Y / p.sy))
}

func (p projection) center(col, row int) game.Vec {
	return game.Vec{X: (float64(col) + 0.5) * p.sx, Y: (float64(row) + 0.5) * p.sy}
}

// Draw clears the screen and paints the frame.
func Draw(s tcell.Screen, f Frame) {
	s.Clear()
	cfg := f.Session.Config()
	cols, rows := s.Size()
	p := newProjection(cfg, cols, rows)

	_, floor := f.World.Bounds()
	_, floorRow := p.cell(game.Vec{Y: floor})
	ground := tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	for row := floorRow; row < p.rows; row++ {
		for col := 0; col < p.cols; col++ {
			s.SetContent(col, row, '▒', nil, ground)
		}
	}
	_, topRow := p.cell(game.Vec{Y: cfg.TopLineY()})
	line := tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	if f.Session.Status() == game.StatusStopping {
		line = line.Blink(true)
	}
	for col := 0; col < p.cols; col++ {
		s.SetContent(col, topRow, '┄', nil, line)
	}

	for _, b := range f.World.Bodies() {
		drawBody(s, p, b)
	}
	drawStatus(s, p, f)
	s.Show()
}

func drawBody(s tcell.Screen, p projection, b *physics.Body) {
	if b.Opacity() <= 0.05 {
		return
	}
	v := b.Visual()
	col, row := p.cell(b.Position())
	switch v.Kind {
	case game.VisualSplash:
		setCell(s, p, col, row, '*', TierStyle(v.Tier))
		return
	case game.VisualBubble:
		setCell(s, p, col, row, 'o', TierStyle(v.Tier).Dim(true))
		return
	case game.VisualPiece:
		setCell(s, p, col, row, '.', TierStyle(v.Tier))
		return
	}

	r := b.Radius() * b.Scale()
	style := TierStyle(v.Tier)
	if b.Opacity() < 0.5 {
		style = style.Dim(true)
	}
	glyph := TierGlyph(v.Tier)
	c0, r0 := p.cell(b.Position().Sub(game.Vec{X: r, Y: r}))
	c1, r1 := p.cell(b.Position().Add(game.Vec{X: r, Y: r}))
	drew := false
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			if p.center(x, y).Sub(b.Position()).Len() <= r {
				drew = setCell(s, p, x, y, glyph, style) || drew
			}
		}
	}
	if !drew {
		setCell(s, p, col, row, glyph, style)
	}
}

func setCell(s tcell.Screen, p projection, col, row int, ch rune, style tcell.Style) bool {
	if col < 0 || row < 0 || col >= p.cols || row >= p.rows {
		return false
	}
	s.SetContent(col, row, ch, nil, style)
	return true
}

func drawStatus(s tcell.Screen, p projection, f Frame) {
	text := fmt.Sprintf(" %s  score %d  best %d ", f.Session.Status(), f.Session.Score(), f.Best)
	switch f.Session.Status() {
	case game.StatusIdle, game.StatusEnd:
		text += " [enter] new round"
	default:
		text += " [←/→] move [space] drop"
	}
	if f.Muted {
		text += " (muted)"
	}
	text += " [q] quit"
	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, ch := range text {
		if col >= p.cols {
			break
		}
		s.SetContent(col, p.rows, ch, nil, style)
		col++
	}
	for ; col < p.cols; col++ {
		s.SetContent(col, p.rows, ' ', nil, style)
	}
}
