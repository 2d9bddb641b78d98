package game

import "fmt"

// ladderDiameters are the ball diameters at the standard view size, smallest first.
var ladderDiameters = [...]float64{52, 80, 108, 120, 152, 184, 186, 258, 308, 308, 404}

// Prototype is one rung of the ball ladder. Prototypes are created once and
// compared by pointer.
type Prototype struct {
	Tier   int
	Radius float64
	Sprite string
}

// Ladder is the ordered set of tiers. Tier n merges into tier n+1.
type Ladder []*Prototype

// NewLadder builds the stock ladder scaled by viewScale.
func NewLadder(viewScale float64) Ladder {
	l := make(Ladder, len(ladderDiameters))
	for i, d := range ladderDiameters {
		l[i] = &Prototype{
			Tier:   i,
			Radius: d * viewScale / 2,
			Sprite: fmt.Sprintf("pics/%d.png", i+1),
		}
	}
	return l
}

// Next returns the tier after p, or nil at the top of the ladder.
func (l Ladder) Next(p *Prototype) *Prototype {
	if p == nil || p.Tier+1 >= len(l) {
		return nil
	}
	return l[p.Tier+1]
}

// Top returns the highest tier.
func (l Ladder) Top() *Prototype {
	if len(l) == 0 {
		return nil
	}
	return l[len(l)-1]
}
