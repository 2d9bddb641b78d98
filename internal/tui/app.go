package tui

import (
	"context"
	"math/rand"
	"time"

	"github.com/Garsondee/Ball-Fuse/internal/audio"
	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/Garsondee/Ball-Fuse/internal/physics"
	"github.com/gdamore/tcell/v2"
)

// StepInterval is the fixed simulation step of the terminal loop.
const StepInterval = time.Second / 60

// pointerSteps is how many key presses cross the playfield.
const pointerSteps = 40

// App runs rounds on a tcell screen. Only Run's goroutine touches the game.
type App struct {
	screen tcell.Screen
	cfg    game.Config
	rng    *rand.Rand
	sound  *audio.Bank

	world    *physics.World
	session  *game.Session
	pointerX float64
	best     int
}

// NewApp prepares an app with an idle round. sound may be nil.
func NewApp(screen tcell.Screen, cfg game.Config, seed int64, sound *audio.Bank) *App {
	a := &App{
		screen:   screen,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay only
		sound:    sound,
		pointerX: cfg.Width / 2,
	}
	a.newRound()
	return a
}

// Session returns the current round.
func (a *App) Session() *game.Session { return a.session }

// World returns the current round's physics world.
func (a *App) World() *physics.World { return a.world }

// Best returns the best score seen this process.
func (a *App) Best() int { return a.best }

func (a *App) newRound() {
	a.world = physics.NewWorld(a.cfg)
	a.session = game.NewSession(a.world, a.cfg,
		game.WithRand(rand.New(rand.NewSource(a.rng.Int63()))), // #nosec G404 -- gameplay only
		game.WithHooks(game.Hooks{
			Status: a.onStatus,
			Score:  a.onScore,
			Drop: func(int) {
				if a.sound != nil {
					a.sound.Drop()
				}
			},
			Merge: func(tier int, _ game.Vec) {
				if a.sound != nil {
					a.sound.Merge(tier)
				}
			},
			Clear: func(tier int) {
				if a.sound != nil {
					a.sound.Clear(tier)
				}
			},
		}),
	)
	a.session.MovePointer(a.pointerX)
}

func (a *App) onStatus(st game.Status) {
	if st == game.StatusStopping && a.sound != nil {
		a.sound.GameOver()
	}
}

func (a *App) onScore(v int) {
	if v > a.best {
		a.best = v
	}
}

// Start begins a round when none is in progress. A finished round is
// replaced by a fresh world and session.
func (a *App) Start() {
	switch a.session.Status() {
	case game.StatusEnd:
		a.newRound()
	case game.StatusIdle:
	default:
		return
	}
	a.session.Start()
	a.session.MovePointer(a.pointerX)
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	return a.handleKey(key.Key(), key.Rune())
}

func (a *App) handleKey(k tcell.Key, r rune) bool {
	step := a.cfg.Width / pointerSteps
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.movePointer(a.pointerX - step)
	case tcell.KeyRight:
		a.movePointer(a.pointerX + step)
	case tcell.KeyEnter:
		a.Start()
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case ' ':
			a.session.Release(a.pointerX)
		case 'm', 'M':
			if a.sound != nil {
				a.sound.ToggleMute()
			}
		}
	}
	return true
}

func (a *App) movePointer(x float64) {
	a.pointerX = game.Guard(x, a.cfg.Width, 0)
	a.session.MovePointer(a.pointerX)
}

// Step advances the simulation one frame.
func (a *App) Step() { a.world.Step(StepInterval) }

// Draw repaints the screen.
func (a *App) Draw() {
	Draw(a.screen, Frame{
		World:   a.world,
		Session: a.session,
		Best:    a.best,
		Muted:   a.sound != nil && a.sound.Muted(),
	})
}

// Run drives the loop until ctx is done or the user quits. Terminal events
// are read on a separate goroutine and handed over on a channel.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(StepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				a.screen.Sync()
			}
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Step()
			a.Draw()
		}
	}
}
