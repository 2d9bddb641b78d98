package game

// growCurve overshoots past full size before settling.
var growCurve = []CurvePoint{{0, 1.0 / 8}, {3.0 / 4, 9.0 / 8}, {1, 1}}

// shrinkFloor is the visual scale a cleared ball shrinks down to.
const shrinkFloor = 1.0 / 32

// spawnBall creates a body for p and registers it. It is the only path into
// the registry. With grow the ball's visual scale follows growCurve.
func (s *Session) spawnBall(pos Vec, p *Prototype, opts BodyOptions, grow bool, role Role) Body {
	opts.Visual = Visual{Kind: VisualBall, Tier: p.Tier, Sprite: p.Sprite}
	if opts.Material == (Material{}) {
		opts.Material = s.cfg.Ball
	}
	b := s.sim.AddCircle(pos, p.Radius, opts)
	b.SetOpacity(1)
	s.registry.add(b, p, role)
	s.assignLabel(b)
	if !grow {
		b.SetScale(1)
		return b
	}

	timer := NewTimer(s.cfg.GrowDuration, s.clock)
	b.SetScale(PiecewiseLinear(growCurve, timer.Progress()))
	if s.cfg.BlockMergingWhenGrowing {
		s.registry.setState(b, StateGrowing)
	}
	s.tasks.Animate(b,
		func() {
			if !s.registry.Has(b) {
				return
			}
			b.SetScale(PiecewiseLinear(growCurve, timer.Progress()))
		},
		func() bool { return timer.HasElapsed() || !s.registry.Has(b) },
		func(cancelled bool) {
			if cancelled || !s.registry.Has(b) {
				return
			}
			b.SetScale(1)
			s.registry.release(b, StateGrowing)
		},
	)
	return b
}

// removeBall takes b out of play: registry entry, lock state, animations and
// simulation body. Safe to call more than once.
func (s *Session) removeBall(b Body) {
	if b == nil {
		return
	}
	present := s.registry.remove(b)
	s.tasks.Cancel(b)
	if present {
		s.sim.Remove(b)
		delete(s.labels, b)
	}
}

// shrinkBall scales b down while fading it out, bursts debris where it
// ended up and then calls then. then also runs if the shrink is cancelled.
func (s *Session) shrinkBall(b Body, then func()) {
	p := s.registry.Prototype(b)
	timer := NewTimer(s.cfg.ShrinkDuration, s.clock)
	last := b.Position()
	s.tasks.Animate(b,
		func() {
			if !s.registry.Has(b) {
				return
			}
			t := timer.Progress()
			b.SetScale(Linear(1, shrinkFloor, t))
			b.SetOpacity(Linear(1, 0, t))
			last = b.Position()
		},
		func() bool { return timer.HasElapsed() || !s.registry.Has(b) },
		func(cancelled bool) {
			if !cancelled && s.registry.Has(b) {
				s.burst(last, p)
			}
			then()
		},
	)
}
