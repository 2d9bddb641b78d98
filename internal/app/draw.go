package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/Garsondee/Ball-Fuse/internal/physics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// stripeCount covers the playfield even when the stripes are rotated.
const stripeCount = 16

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawGround(screen)
	g.drawTopLine(screen)
	for _, b := range g.world.Bodies() {
		drawBody(screen, g.face, b)
	}
	g.drawHUD(screen)
	switch g.session.Status() {
	case game.StatusIdle, game.StatusEnd:
		g.drawOverlay(screen)
	}
	g.feed.Draw(screen, g.face, int(g.cfg.Width), g.height)
}

// drawBackground paints stripes that stay parallel to gravity.
func (g *Game) drawBackground(screen *ebiten.Image) {
	w, h := g.cfg.Width, g.cfg.Height
	vector.FillRect(screen, 0, 0, float32(w), float32(h), backgroundColor, false)

	angle := BackgroundAngle(g.world.Gravity())
	sin, cos := math.Sincos(angle)
	cx, cy := w/2, h/2
	rot := func(x, y float64) (float32, float32) {
		dx, dy := x-cx, y-cy
		return float32(cx + dx*cos - dy*sin), float32(cy + dx*sin + dy*cos)
	}
	sw := w / 8
	for i := 1; i < stripeCount; i += 2 {
		x0 := -w/2 + float64(i)*sw
		var path vector.Path
		path.MoveTo(rot(x0, -h/2))
		path.LineTo(rot(x0+sw, -h/2))
		path.LineTo(rot(x0+sw, h*1.5))
		path.LineTo(rot(x0, h*1.5))
		path.Close()
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(lightBackgroundColor)
		vector.FillPath(screen, &path, &vector.FillOptions{}, op)
	}
}

func (g *Game) drawGround(screen *ebiten.Image) {
	_, floor := g.world.Bounds()
	w := float32(g.cfg.Width)
	vector.FillRect(screen, 0, float32(floor), w, float32(g.cfg.Height-floor), groundColor, false)
	vector.FillRect(screen, 0, float32(floor), w, 4, lightGroundColor, false)
}

func (g *Game) drawTopLine(screen *ebiten.Image) {
	y := float32(g.cfg.TopLineY())
	c := fade(topLineColor, 0.5)
	if g.session.Status() == game.StatusStopping && (g.world.Steps()/8)%2 == 0 {
		c = topLineColor
	}
	const dash = 12
	for x := float32(0); x < float32(g.cfg.Width); x += dash * 2 {
		vector.StrokeLine(screen, x, y, x+dash, y, 2, c, false)
	}
}

func drawBody(screen *ebiten.Image, face text.Face, b *physics.Body) {
	alpha := b.Opacity()
	if alpha <= 0 {
		return
	}
	v := b.Visual()
	pos := b.Position()
	x, y := float32(pos.X), float32(pos.Y)
	r := float32(b.Radius() * b.Scale())
	base := tierColor(v.Tier)

	switch v.Kind {
	case game.VisualSplash:
		vector.FillCircle(screen, x, y, r, fade(base, alpha*0.6), true)
	case game.VisualBubble:
		vector.StrokeCircle(screen, x, y, r, 1.5, fade(base, alpha), true)
	case game.VisualPiece:
		vector.FillCircle(screen, x, y, r, fade(darken(base, 0.8), alpha), true)
	default:
		vector.FillCircle(screen, x, y, r, fade(base, alpha), true)
		vector.StrokeCircle(screen, x, y, r, 2, fade(darken(base, 0.6), alpha), true)
		// Spoke so rolling is visible.
		sin, cos := math.Sincos(b.Angle())
		vector.StrokeLine(screen, x, y, x+r*0.7*float32(cos), y+r*0.7*float32(sin), 2, fade(darken(base, 0.6), alpha*0.7), true)
		if r > 10 {
			label := fmt.Sprintf("%d", v.Tier+1)
			drawText(screen, face, label, int(x)-3*len(label), int(y)-7, fade(color.RGBA{R: 255, G: 255, B: 255, A: 255}, alpha))
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	status := fmt.Sprintf("SCORE %d   BEST %d", g.session.Score(), g.best)
	drawTextScaled(screen, g.face, status, 10, 8, 2, color.RGBA{R: 90, G: 60, B: 40, A: 255})

	hints := "click/space drop  arrows tilt  G tilt on/off  C copy  M mute"
	flags := ""
	if g.tilt.Enabled {
		grav := g.tilt.Gravity()
		flags += fmt.Sprintf("  tilt %.1f,%.1f", grav.X, grav.Y)
	}
	if g.sound != nil && g.sound.Muted() {
		flags += "  muted"
	}
	if g.autoplay != nil {
		flags += "  autoplay"
	}
	drawText(screen, g.face, hints+flags, 10, 40, color.RGBA{R: 123, G: 84, B: 57, A: 255})
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  step %d  balls %d",
		ebiten.ActualTPS(), g.world.Steps(), g.session.Registry().Count(game.RolePlay)), 10, int(g.cfg.Height)-18)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	w, h := float32(g.cfg.Width), float32(g.cfg.Height)
	vector.FillRect(screen, 0, 0, w, h, color.RGBA{R: 0, G: 0, B: 0, A: 120}, false)

	lines := []string{"click or press enter to play"}
	if g.session.Status() == game.StatusEnd {
		sum := game.Summarize(g.session)
		lines = []string{
			"GAME OVER",
			fmt.Sprintf("score %d  merges %d  drops %d", sum.Score, sum.Merges, sum.Drops),
			"click or press enter to play again",
		}
	}
	y := int(h/2) - len(lines)*12
	for _, l := range lines {
		x := int(w/2) - len(l)*7
		drawTextScaled(screen, g.face, l, x, y, 2, color.White)
		y += 28
	}
}

func drawText(dst *ebiten.Image, face text.Face, s string, x, y int, c color.Color) {
	drawTextScaled(dst, face, s, x, y, 1, c)
}

func drawTextScaled(dst *ebiten.Image, face text.Face, s string, x, y int, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
