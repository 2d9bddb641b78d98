package game

import "fmt"

// mergeToScale is how far the receiving ball shrinks while the stand-in glides in.
const mergeToScale = 3.0 / 4

// HandleCollision is the one dispatch path for both collision kinds. Pairs
// are handled in order and every lock taken by a pair is visible to the next.
func (s *Session) HandleCollision(kind CollisionKind, pairs []Pair) {
	for _, p := range pairs {
		s.log.AddVerbose(s.step, s.label(p.A), -1, "collision", kind.String(), s.label(p.B), 0)
		if s.isLiveBall(p.A) && s.isLiveBall(p.B) {
			s.registry.release(p.A, StateJustDropped)
			s.registry.release(p.B, StateJustDropped)
		}
		s.mergeBalls(p.A, p.B)
	}
}

func (s *Session) isLiveBall(b Body) bool {
	role, ok := s.registry.Role(b)
	return ok && role == RolePlay && !b.IsStatic()
}

// mergeBalls starts a merge if a and b may fuse. All guards run before the
// first suspension, so a duplicate pair from the same batch is rejected.
func (s *Session) mergeBalls(a, b Body) {
	if s.status != StatusRunning || a == b {
		return
	}
	pa, pb := s.registry.Prototype(a), s.registry.Prototype(b)
	if pa == nil || pb == nil {
		return
	}
	if pa != pb {
		return
	}
	next := s.ladder.Next(pa)
	if next == nil {
		s.log.AddVerbose(s.step, s.label(a), pa.Tier, "merge", "ladder_top", s.label(b), 0)
		return
	}
	ra, _ := s.registry.Role(a)
	rb, _ := s.registry.Role(b)
	if ra != RolePlay || rb != RolePlay {
		return
	}
	sa, _ := s.registry.State(a)
	sb, _ := s.registry.State(b)
	if sa == StateJustDropped || sb == StateJustDropped {
		return
	}
	if sa.BlocksMerging() || sb.BlocksMerging() {
		return
	}

	s.registry.setState(a, StateMerging)
	s.registry.setState(b, StateMerging)
	s.log.Add(s.step, s.label(a), pa.Tier, "merge", "start", fmt.Sprintf("%s + %s", s.label(a), s.label(b)), 0)

	pause := NewTimer(s.cfg.PauseBeforeMerge, s.clock)
	s.tasks.Animate(nil, nil, pause.HasElapsed, func(bool) {
		s.glide(a, b, pa, next)
	})
}

// glide runs after the pause: the upper ball is replaced by a stand-in that
// slides into the lower one.
func (s *Session) glide(a, b Body, proto, next *Prototype) {
	if s.status != StatusRunning || !s.registry.Has(a) || !s.registry.Has(b) {
		s.log.Add(s.step, s.label(a), proto.Tier, "merge", "abandon", s.status.String(), 0)
		s.removeBall(a)
		s.removeBall(b)
		return
	}

	mergeTo, mergeFrom := b, a
	if a.Position().Y > b.Position().Y {
		mergeTo, mergeFrom = a, b
	}

	start := mergeFrom.Position()
	s.removeBall(mergeFrom)
	standIn := s.spawnBall(start, proto, BodyOptions{Static: true, Sensor: true, NoCollide: true}, false, RoleStandIn)
	s.registry.setState(standIn, StateMerging)

	timer := NewTimer(s.cfg.MergeDuration, s.clock)
	target := mergeTo.Position()
	s.tasks.Animate(standIn,
		func() {
			t := timer.Progress()
			if s.registry.Has(mergeTo) {
				target = mergeTo.Position()
				mergeTo.SetScale(Linear(1, mergeToScale, t))
			}
			standIn.SetPosition(LerpVec(start, target, t))
		},
		func() bool { return timer.HasElapsed() || !s.registry.Has(mergeTo) },
		func(cancelled bool) {
			if s.registry.Has(mergeTo) {
				target = mergeTo.Position()
			}
			s.completeMerge(standIn, mergeTo, proto, next, target, cancelled)
		},
	)
}

// completeMerge retires both halves and, if the round is still on, credits
// the merge and spawns the promoted ball at at.
func (s *Session) completeMerge(standIn, mergeTo Body, proto, next *Prototype, at Vec, cancelled bool) {
	label := s.label(mergeTo)
	if !cancelled {
		s.burst(standIn.Position(), proto)
	}
	s.removeBall(standIn)
	s.removeBall(mergeTo)
	if s.status != StatusRunning {
		s.log.Add(s.step, label, proto.Tier, "merge", "abandon", s.status.String(), 0)
		return
	}

	s.score.Add(next.Tier + 1)
	s.log.Add(s.step, label, next.Tier, "score", "add", "merge", float64(next.Tier+1))
	promoted := s.spawnBall(at, next, BodyOptions{}, true, RolePlay)
	s.log.Add(s.step, s.label(promoted), next.Tier, "merge", "complete",
		fmt.Sprintf("tier %d → %d", proto.Tier, next.Tier), float64(next.Tier))
	if s.hooks.Merge != nil {
		s.hooks.Merge(next.Tier, at)
	}
}
