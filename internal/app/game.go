// Package app is the ebiten desktop frontend.
package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Garsondee/Ball-Fuse/internal/audio"
	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/Garsondee/Ball-Fuse/internal/physics"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// stepInterval matches ebiten's default 60 ticks per second.
const stepInterval = time.Second / 60

// Options configures the desktop game.
type Options struct {
	Width, Height int // playfield in world pixels
	Seed          int64
	Autoplay      bool
	BlockGrowing  bool
	Sound         *audio.Bank // nil runs silently
}

// Game implements ebiten.Game around one round at a time.
type Game struct {
	cfg    game.Config
	width  int // playfield plus feed panel
	height int
	rng    *rand.Rand

	world    *physics.World
	session  *game.Session
	gravity  game.Vec
	pointerX float64
	best     int

	feed     *Feed
	tilt     *Tilt
	autoplay *Autoplay
	sound    *audio.Bank
	face     text.Face
	copyText func(string) error
}

// New builds the game with an idle round.
func New(o Options) *Game {
	cfg := game.DefaultConfig(float64(o.Width), float64(o.Height))
	cfg.BlockMergingWhenGrowing = o.BlockGrowing
	g := &Game{
		cfg:      cfg,
		width:    o.Width + feedPanelWidth,
		height:   o.Height,
		rng:      rand.New(rand.NewSource(o.Seed)), // #nosec G404 -- gameplay only
		pointerX: cfg.Width / 2,
		feed:     NewFeed(),
		tilt:     NewTilt(),
		sound:    o.Sound,
		face:     text.NewGoXFace(basicfont.Face7x13),
		copyText: clipboard.WriteAll,
	}
	if o.Autoplay {
		g.autoplay = NewAutoplay(AutoplayInterval)
	}
	g.newRound()
	return g
}

func (g *Game) newRound() {
	g.world = physics.NewWorld(g.cfg)
	g.gravity = g.world.Gravity()
	g.session = game.NewSession(g.world, g.cfg,
		game.WithRand(rand.New(rand.NewSource(g.rng.Int63()))), // #nosec G404 -- gameplay only
		game.WithHooks(game.Hooks{
			Status: g.onStatus,
			Score: func(v int) {
				if v > g.best {
					g.best = v
				}
			},
			Drop: func(int) {
				if g.sound != nil {
					g.sound.Drop()
				}
			},
			Merge: func(tier int, _ game.Vec) {
				if g.sound != nil {
					g.sound.Merge(tier)
				}
			},
			Clear: func(tier int) {
				if g.sound != nil {
					g.sound.Clear(tier)
				}
			},
		}),
	)
	g.session.MovePointer(g.pointerX)
}

func (g *Game) onStatus(st game.Status) {
	if g.autoplay != nil {
		g.autoplay.OnStatus(st, g.world.Now())
	}
	if st == game.StatusStopping && g.sound != nil {
		g.sound.GameOver()
	}
}

// start begins a round from idle, or replaces a finished one.
func (g *Game) start() {
	switch g.session.Status() {
	case game.StatusEnd:
		g.newRound()
	case game.StatusIdle:
	default:
		return
	}
	g.session.Start()
}

// tick advances the round by one frame.
func (g *Game) tick() {
	if grav := g.tilt.Gravity(); grav != g.gravity {
		g.gravity = grav
		g.world.SetGravity(grav)
	}
	g.world.Step(stepInterval)
	if g.autoplay != nil && g.autoplay.Due(g.world.Now()) {
		g.session.DropBall()
	}
	g.feed.Sync(g.session.EventLog())
}

func (g *Game) copySummary() {
	if err := g.copyText(game.Summarize(g.session).String()); err != nil {
		g.feed.Note(fmt.Sprintf("clipboard: %v", err))
		return
	}
	g.feed.Note("summary copied")
}

func (g *Game) toggleMute() {
	if g.sound == nil {
		return
	}
	if g.sound.ToggleMute() {
		g.feed.Note("sound off")
	} else {
		g.feed.Note("sound on")
	}
}

func (g *Game) toggleTilt() {
	if g.tilt.Toggle() {
		g.feed.Note("tilt on")
	} else {
		g.feed.Note("tilt off")
	}
}

func (g *Game) Update() error {
	g.handleInput()
	g.tick()
	return nil
}

// handleInput processes pointer and keyboard input (edge-triggered).
func (g *Game) handleInput() {
	mx, _ := ebiten.CursorPosition()
	inField := mx >= 0 && float64(mx) < g.cfg.Width
	if inField && float64(mx) != g.pointerX {
		g.pointerX = float64(mx)
		g.session.MovePointer(g.pointerX)
	}
	if inField && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.session.Status() == game.StatusRunning {
			g.session.Release(float64(mx))
		} else {
			g.start()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.DropBall()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.tilt.Nudge(-tiltStep, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.tilt.Nudge(tiltStep, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.tilt.Nudge(0, -tiltStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.tilt.Nudge(0, tiltStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.toggleTilt()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySummary()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleMute()
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the unscaled window size including the feed panel.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
