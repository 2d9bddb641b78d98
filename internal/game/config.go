package game

import (
	"math"
	"time"
)

// standardViewSize is the reference playfield size (sqrt(w*h)) that the
// ladder diameters are authored against.
const standardViewSize = 960

// Config holds the tunables of one round.
type Config struct {
	Width  float64
	Height float64

	// BlockMergingWhenGrowing keeps freshly promoted balls out of merges
	// until their grow curve completes.
	BlockMergingWhenGrowing bool
	// Debris enables the cosmetic burst on merge and clear.
	Debris bool

	ShrinkDuration   time.Duration
	MergeDuration    time.Duration
	GrowDuration     time.Duration
	PauseBeforeMerge time.Duration
	DropFreeze       time.Duration
	ClearSettle      time.Duration
	DebrisDuration   time.Duration

	Ball Material
}

// DefaultConfig returns the stock tuning for a playfield of the given size.
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:            width,
		Height:           height,
		Debris:           true,
		ShrinkDuration:   128 * time.Millisecond,
		MergeDuration:    128 * time.Millisecond,
		GrowDuration:     256 * time.Millisecond,
		PauseBeforeMerge: 64 * time.Millisecond,
		DropFreeze:       256 * time.Millisecond,
		ClearSettle:      100 * time.Millisecond,
		DebrisDuration:   512 * time.Millisecond,
		Ball: Material{
			Friction:       8,
			FrictionAir:    1.0 / 64,
			FrictionStatic: 1,
			Restitution:    1.0 / 16,
			Density:        1.0 / 512,
		},
	}
}

// Size is the geometric mean of the playfield dimensions.
func (c Config) Size() float64 { return math.Sqrt(c.Width * c.Height) }

// ViewScale converts ladder units to world pixels.
func (c Config) ViewScale() float64 { return c.Size() / standardViewSize }

// TopLineY is the height a settled ball must not reach.
func (c Config) TopLineY() float64 { return c.Size() / 5 }

// DropFromY is where the next ball hangs before it is dropped.
func (c Config) DropFromY() float64 { return c.Size() / 10 }

// GroundHeight is the thickness of the floor strip at the bottom.
func (c Config) GroundHeight() float64 { return c.Height / 10 }
