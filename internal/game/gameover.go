package game

// detectGameOver ends the round when a settled ball pokes above the top line.
// Falling balls pass through the line freely; only a ball at rest counts.
func (s *Session) detectGameOver() {
	if s.status != StatusRunning {
		return
	}
	top := s.cfg.TopLineY()
	var high []Body
	for _, b := range s.registry.Bodies() {
		if b == s.nextBall {
			continue
		}
		if st, _ := s.registry.State(b); st != StateFree {
			continue
		}
		if b.Speed() != 0 || b.AngularSpeed() != 0 {
			continue
		}
		if b.Position().Y-b.Radius() >= top {
			continue
		}
		high = append(high, b)
	}
	if len(high) == 0 {
		return
	}
	s.log.Add(s.step, s.label(high[0]), s.registry.Prototype(high[0]).Tier, "gameover", "trigger", "settled above top line", float64(len(high)))
	s.GameOver()
}

// GameOver moves a running round to stopping, clears every ball one by one
// and then stops.
func (s *Session) GameOver() {
	if s.status != StatusRunning {
		return
	}
	s.setStatus(StatusStopping)
	s.clearBalls(func() {
		s.tasks.After(NewTimer(s.cfg.ClearSettle, s.clock), s.Stop)
	})
}

// clearBalls freezes the board, then shrinks and removes each registered
// body in spawn order, crediting scored balls as it goes.
func (s *Session) clearBalls(then func()) {
	balls := s.registry.Bodies()
	for _, b := range balls {
		b.SetStatic(true)
	}

	var next func(i int)
	next = func(i int) {
		if s.status == StatusEnd {
			return
		}
		for i < len(balls) && !s.registry.Has(balls[i]) {
			i++
		}
		if i >= len(balls) {
			then()
			return
		}
		b := balls[i]
		p := s.registry.Prototype(b)
		role, _ := s.registry.Role(b)
		s.shrinkBall(b, func() {
			if role == RolePlay && s.registry.Has(b) {
				s.score.Add(p.Tier + 1)
				s.log.Add(s.step, s.label(b), p.Tier, "clear", "ball", "shrunk", float64(p.Tier+1))
				if s.hooks.Clear != nil {
					s.hooks.Clear(p.Tier)
				}
			}
			s.removeBall(b)
			next(i + 1)
		})
	}
	next(0)
}
