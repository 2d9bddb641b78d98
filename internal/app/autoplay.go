package app

import (
	"time"

	"github.com/Garsondee/Ball-Fuse/internal/game"
)

// AutoplayInterval is how often the autoplayer drops.
const AutoplayInterval = 500 * time.Millisecond

// Autoplay drops on a fixed cadence of simulation time while a round runs.
type Autoplay struct {
	interval time.Duration
	armed    bool
	last     time.Duration
}

// NewAutoplay creates a disarmed autoplayer.
func NewAutoplay(interval time.Duration) *Autoplay {
	return &Autoplay{interval: interval}
}

// OnStatus arms the autoplayer when a round starts and disarms it as soon as
// the round begins to stop.
func (a *Autoplay) OnStatus(st game.Status, now time.Duration) {
	switch st {
	case game.StatusRunning:
		a.armed = true
		a.last = now
	default:
		a.armed = false
	}
}

// Due reports whether a drop is owed at now and consumes it.
func (a *Autoplay) Due(now time.Duration) bool {
	if !a.armed || now-a.last < a.interval {
		return false
	}
	a.last += a.interval
	return true
}

// Armed reports whether the autoplayer is dropping.
func (a *Autoplay) Armed() bool { return a.armed }
