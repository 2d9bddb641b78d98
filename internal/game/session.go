package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Status is the lifecycle of one round. Transitions only move forward:
// idle → running → stopping → end. A new round needs a new Session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopping
	StatusEnd
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusStopping:
		return "stopping"
	case StatusEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Hooks are optional UI callbacks. All of them fire on the simulation goroutine.
type Hooks struct {
	Status func(Status)
	Score  func(int)
	Drop   func(tier int)
	Merge  func(tier int, at Vec) // tier after the merge
	Clear  func(tier int)
}

// Option customises a Session at construction.
type Option func(*Session)

// WithHooks installs UI callbacks.
func WithHooks(h Hooks) Option {
	return func(s *Session) { s.hooks = h }
}

// WithRand sets the source used for next-ball tiers and debris.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithEventLog records gameplay events into el.
func WithEventLog(el *EventLog) Option {
	return func(s *Session) { s.log = el }
}

// WithLadder replaces the stock ladder.
func WithLadder(l Ladder) Option {
	return func(s *Session) { s.ladder = l }
}

// Session is one round of play. It owns the registry, the animation tasks
// and the score; the simulation is shared with the host.
type Session struct {
	sim      Simulation
	cfg      Config
	ladder   Ladder
	registry *Registry
	tasks    *TaskSet
	score    *Score
	log      *EventLog
	rng      *rand.Rand
	hooks    Hooks

	status Status
	now    time.Duration
	step   int

	nextBall     Body
	lockDropping bool
	pointerX     float64

	labels    map[Body]string
	nextLabel int
}

// NewSession builds an idle session on sim and subscribes it to sim's steps.
func NewSession(sim Simulation, cfg Config, opts ...Option) *Session {
	s := &Session{
		sim:      sim,
		cfg:      cfg,
		registry: NewRegistry(),
		tasks:    NewTaskSet(),
		log:      NewEventLog(false),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- gameplay only
		pointerX: cfg.Width / 2,
		labels:   make(map[Body]string),
	}
	for _, o := range opts {
		o(s)
	}
	if s.ladder == nil {
		s.ladder = NewLadder(cfg.ViewScale())
	}
	s.score = NewScore(func(v int) {
		if s.hooks.Score != nil {
			s.hooks.Score(v)
		}
	})
	sim.Subscribe(s)
	return s
}

// Start resets the score and drop lock, hangs the first next ball and starts
// the simulation. Only an idle session can start.
func (s *Session) Start() {
	if s.status != StatusIdle {
		return
	}
	s.score.Reset()
	s.lockDropping = false
	s.status = StatusRunning
	s.createNextBall(s.pointerX)
	s.sim.Resume()
	s.setStatus(StatusRunning)
}

// Stop ends the round immediately: stepping halts and pending animations are
// cancelled.
func (s *Session) Stop() {
	if s.status == StatusEnd {
		return
	}
	s.status = StatusEnd
	s.tasks.CancelAll()
	s.sim.Halt()
	s.setStatus(StatusEnd)
}

func (s *Session) setStatus(st Status) {
	s.status = st
	s.log.Add(s.step, "--", -1, "session", "status", st.String(), 0)
	if s.hooks.Status != nil {
		s.hooks.Status(st)
	}
}

// BeforeStep advances the session clock and every pending animation.
func (s *Session) BeforeStep(now time.Duration) {
	s.now = now
	s.step++
	s.tasks.Tick()
}

// Collision forwards both collision kinds to the single dispatch path.
func (s *Session) Collision(kind CollisionKind, pairs []Pair) {
	s.HandleCollision(kind, pairs)
}

// AfterStep runs the game-over scan on the settled world.
func (s *Session) AfterStep(now time.Duration) {
	s.now = now
	s.detectGameOver()
}

func (s *Session) clock() time.Duration { return s.now }

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// Score returns the current tally.
func (s *Session) Score() int { return s.score.Value() }

// Registry exposes the live-ball registry for renderers and reports.
func (s *Session) Registry() *Registry { return s.registry }

// Ladder returns the tier ladder in use.
func (s *Session) Ladder() Ladder { return s.ladder }

// Config returns the round's configuration.
func (s *Session) Config() Config { return s.cfg }

// EventLog returns the session's event log.
func (s *Session) EventLog() *EventLog { return s.log }

// NextBall returns the hanging placeholder, or nil while a drop is settling.
func (s *Session) NextBall() Body {
	if s.nextBall != nil && !s.registry.Has(s.nextBall) {
		return nil
	}
	return s.nextBall
}

// Locked reports whether a drop is in its freeze window.
func (s *Session) Locked() bool { return s.lockDropping }

// Steps returns how many simulation steps the session has seen.
func (s *Session) Steps() int { return s.step }

func (s *Session) label(b Body) string {
	if l, ok := s.labels[b]; ok {
		return l
	}
	return "--"
}

func (s *Session) assignLabel(b Body) {
	s.nextLabel++
	s.labels[b] = fmt.Sprintf("b%d", s.nextLabel)
}
