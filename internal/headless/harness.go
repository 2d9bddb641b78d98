// Package headless runs full rounds on the real physics world without a
// window. It backs the batch report and the end-to-end tests.
package headless

import (
	"math/rand"
	"time"

	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/Garsondee/Ball-Fuse/internal/physics"
)

// Frame is the fixed step the harness advances the world by.
const Frame = time.Second / 60

// PointerPattern chooses where the next drop happens.
type PointerPattern func(drop int, width float64, rng *rand.Rand) float64

// TestSim is a headless round: a physics world, a session on top of it and
// an auto-player that drops on a fixed cadence.
type TestSim struct {
	Width   float64
	Height  float64
	Config  game.Config
	World   *physics.World
	Session *game.Session
	Log     *game.EventLog
	Step    int

	rng       *rand.Rand
	verbose   bool
	dropEvery int
	pointer   PointerPattern
	configFns []func(*game.Config)
	ladder    game.Ladder
	drops     int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // size, seed, verbose: applied first
	simOptConfig                      // config tweaks: applied to DefaultConfig
	simOptDriver                      // auto-player settings
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSize sets the playfield dimensions.
func WithSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Width = w
		ts.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose records every collision pair in the event log.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithConfig edits the round configuration after defaults are derived from
// the playfield size.
func WithConfig(fn func(*game.Config)) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.configFns = append(ts.configFns, fn)
	}}
}

// WithLadder replaces the stock tier ladder.
func WithLadder(l game.Ladder) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.ladder = l
	}}
}

// WithDropEvery sets the auto-player's cadence in steps. Zero disables it.
func WithDropEvery(steps int) SimOption {
	return SimOption{simOptDriver, func(ts *TestSim) {
		ts.dropEvery = steps
	}}
}

// WithPointerPattern sets where the auto-player drops.
func WithPointerPattern(p PointerPattern) SimOption {
	return SimOption{simOptDriver, func(ts *TestSim) {
		ts.pointer = p
	}}
}

// RandomPointer drops anywhere across the playfield.
func RandomPointer(_ int, width float64, rng *rand.Rand) float64 {
	return rng.Float64() * width
}

// SweepPointer walks left to right in eight columns.
func SweepPointer(drop int, width float64, _ *rand.Rand) float64 {
	const columns = 8
	return (float64(drop%columns) + 0.5) * width / columns
}

// CenterPointer always drops in the middle.
func CenterPointer(_ int, width float64, _ *rand.Rand) float64 {
	return width / 2
}

// NewTestSim builds and starts a round. Options apply in passes:
//  1. Infrastructure (size, seed, verbose)
//  2. Config tweaks on top of DefaultConfig(size)
//  3. Auto-player settings
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Width:     540,
		Height:    960,
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		dropEvery: 30,                          // the desktop autoplay cadence: 500ms at 60 Hz
		pointer:   RandomPointer,
	}
	for _, kind := range []simOptionKind{simOptInfra, simOptConfig, simOptDriver} {
		if kind == simOptConfig {
			ts.Config = game.DefaultConfig(ts.Width, ts.Height)
		}
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	for _, fn := range ts.configFns {
		fn(&ts.Config)
	}

	ts.Log = game.NewEventLog(ts.verbose)
	ts.World = physics.NewWorld(ts.Config)
	sessionOpts := []game.Option{
		game.WithRand(rand.New(rand.NewSource(ts.rng.Int63()))), // #nosec G404 -- test harness
		game.WithEventLog(ts.Log),
	}
	if ts.ladder != nil {
		sessionOpts = append(sessionOpts, game.WithLadder(ts.ladder))
	}
	ts.Session = game.NewSession(ts.World, ts.Config, sessionOpts...)
	ts.Session.Start()
	return ts
}

// RunSteps advances the round n steps.
func (ts *TestSim) RunSteps(n int) {
	for i := 0; i < n; i++ {
		ts.runOneStep()
	}
}

// RunUntil advances up to maxSteps, stopping early once predicate holds.
// Returns the step at which it held, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxSteps int) int {
	for i := 0; i < maxSteps; i++ {
		ts.runOneStep()
		if predicate(ts) {
			return ts.Step
		}
	}
	return -1
}

// RunUntilEnd plays until the session ends. Returns the step, or -1 if the
// round outlived maxSteps.
func (ts *TestSim) RunUntilEnd(maxSteps int) int {
	return ts.RunUntil(func(ts *TestSim) bool {
		return ts.Session.Status() == game.StatusEnd
	}, maxSteps)
}

// Drops returns how many drop attempts the auto-player made.
func (ts *TestSim) Drops() int { return ts.drops }

func (ts *TestSim) runOneStep() {
	ts.Step++
	if ts.dropEvery > 0 && ts.Step%ts.dropEvery == 0 && ts.Session.Status() == game.StatusRunning {
		x := ts.pointer(ts.drops, ts.Width, ts.rng)
		ts.drops++
		ts.Session.Release(x)
	}
	if !ts.World.Running() {
		return
	}
	ts.World.Step(Frame)
}
