package game

import (
	"fmt"
	"math"
)

// chooseNextPrototype picks the next ball's tier. The range widens with the
// square root of the live ball count and is capped at half the ladder.
func (s *Session) chooseNextPrototype() *Prototype {
	live := float64(s.registry.Count(RolePlay))
	upper := math.Min(math.Sqrt(live), float64(len(s.ladder))/2)
	i := int(math.Floor(s.rng.Float64() * upper))
	if i >= len(s.ladder) {
		i = len(s.ladder) - 1
	}
	return s.ladder[i]
}

// createNextBall hangs a fresh non-colliding placeholder above the pointer.
func (s *Session) createNextBall(x float64) {
	p := s.chooseNextPrototype()
	pos := Vec{X: Guard(x, s.cfg.Width, p.Radius), Y: s.cfg.DropFromY()}
	s.nextBall = s.spawnBall(pos, p, BodyOptions{Static: true, NoCollide: true}, true, RoleNext)
}

func (s *Session) moveNextBall() {
	p := s.registry.Prototype(s.nextBall)
	if p == nil {
		return
	}
	pos := s.nextBall.Position()
	pos.X = Guard(s.pointerX, s.cfg.Width, p.Radius)
	s.nextBall.SetPosition(pos)
}

// MovePointer records the pointer's x and drags the next ball along unless a
// drop is settling.
func (s *Session) MovePointer(x float64) {
	s.pointerX = x
	if s.lockDropping {
		return
	}
	s.moveNextBall()
}

// Release is the pointer-up path: move to x, then drop.
func (s *Session) Release(x float64) {
	s.pointerX = x
	s.moveNextBall()
	s.DropBall()
}

// DropBall commits the next ball to the world. It is a no-op unless the
// round is running and no drop is settling.
func (s *Session) DropBall() {
	if s.status != StatusRunning || s.lockDropping {
		return
	}
	p := s.registry.Prototype(s.nextBall)
	if p == nil {
		return
	}
	s.lockDropping = true

	pos := s.nextBall.Position()
	s.removeBall(s.nextBall)
	s.nextBall = nil
	dropped := s.spawnBall(pos, p, BodyOptions{}, false, RolePlay)
	s.registry.setState(dropped, StateJustDropped)
	s.log.Add(s.step, s.label(dropped), p.Tier, "drop", "commit", fmt.Sprintf("x=%.1f", pos.X), pos.X)
	if s.hooks.Drop != nil {
		s.hooks.Drop(p.Tier)
	}

	s.tasks.After(NewTimer(s.cfg.DropFreeze, s.clock), func() {
		s.registry.release(dropped, StateJustDropped)
		if s.status != StatusRunning {
			return
		}
		s.createNextBall(s.pointerX)
		s.lockDropping = false
	})
}
