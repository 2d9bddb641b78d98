package game

import "math"

// debrisSpriteRadius is the nominal radius of the debris sprites at scale 1.
const debrisSpriteRadius = 32

// splashOpacity flashes in quickly and fades out over the rest of the burst.
var splashOpacity = []CurvePoint{{0, 0}, {1.0 / 4, 3.0 / 4}, {1, 0}}

type debrisBit struct {
	body    Body
	offset  Vec
	delay   float64
	opacity float64
}

// burst spawns the cosmetic splash, bubbles and pieces of a popped ball at
// at. Debris never enters the registry and removes itself when done.
func (s *Session) burst(at Vec, p *Prototype) {
	if !s.cfg.Debris || p == nil {
		return
	}
	vs := s.cfg.ViewScale()
	base := p.Radius / vs
	timer := NewTimer(s.cfg.DebrisDuration, s.clock)
	opts := func(kind VisualKind) BodyOptions {
		return BodyOptions{
			Static:    true,
			Sensor:    true,
			NoCollide: true,
			Visual:    Visual{Kind: kind, Tier: p.Tier, Sprite: p.Sprite},
		}
	}

	splash := s.sim.AddCircle(at, debrisSpriteRadius, opts(VisualSplash))
	splash.SetOpacity(0)
	splash.SetScale(vs * base / debrisSpriteRadius / 4)

	var bubbles, pieces []debrisBit
	for i, n := 0, 4+s.rng.Intn(4); i < n; i++ {
		b := s.sim.AddCircle(at, p.Radius/5, opts(VisualBubble))
		b.SetScale(1)
		b.SetOpacity(1)
		bubbles = append(bubbles, debrisBit{
			body:   b,
			offset: s.randomOffset(p.Radius),
			delay:  1 + s.rng.Float64(),
		})
	}
	for i, n := 0, 4+s.rng.Intn(4); i < n; i++ {
		b := s.sim.AddCircle(at, p.Radius/6, opts(VisualPiece))
		b.SetScale(1)
		b.SetAngle(s.rng.Float64() * 2 * math.Pi)
		o := 0.5 + s.rng.Float64()/2
		b.SetOpacity(o)
		pieces = append(pieces, debrisBit{
			body:    b,
			offset:  s.randomOffset(p.Radius),
			opacity: o,
		})
	}

	s.tasks.Animate(splash,
		func() {
			t := timer.Progress()
			splash.SetOpacity(PiecewiseLinear(splashOpacity, t))
			splash.SetScale(Linear(vs*base/debrisSpriteRadius/4, vs*base/debrisSpriteRadius, t))
			for _, d := range bubbles {
				local := math.Min(1, t*d.delay)
				d.body.SetPosition(at.Add(d.offset.Scale(local)))
				d.body.SetOpacity(1 - local)
			}
			for _, d := range pieces {
				d.body.SetPosition(at.Add(d.offset.Scale(t)))
				d.body.SetOpacity(d.opacity * (1 - t))
			}
		},
		timer.HasElapsed,
		func(bool) {
			s.sim.Remove(splash)
			for _, d := range bubbles {
				s.sim.Remove(d.body)
			}
			for _, d := range pieces {
				s.sim.Remove(d.body)
			}
		},
	)
}

// randomOffset returns a vector of length r..2r in a random direction.
func (s *Session) randomOffset(r float64) Vec {
	a := s.rng.Float64() * 2 * math.Pi
	l := r * (1 + s.rng.Float64())
	return Vec{math.Cos(a) * l, math.Sin(a) * l}
}
