package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
	WaveSquare
)

type oscillator struct {
	freq     float64
	sweep    float64 // frequency change per second
	phase    float64
	position int
	total    int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator returns a finite tone. sweep bends the pitch in Hz/s.
func NewOscillator(freq, sweep float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, sweep: sweep, total: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			v = 4*math.Abs(o.phase-0.5) - 1
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		}
		samples[i][0] = v
		samples[i][1] = v

		f := o.freq + o.sweep*float64(o.position)/float64(o.rate)
		o.phase += math.Max(f, 0) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	s        beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		g := 1.0
		if e.attack > 0 && e.position < e.attack {
			g = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			g = math.Min(g, float64(left)/float64(e.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq, sweep float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, sweep, d, wave, rate), d, d/10, d/2, rate)
}

// tierFrequency climbs two semitones per tier from C5.
func tierFrequency(tier int) float64 {
	return 523.25 * math.Pow(2, float64(2*tier)/12)
}

// DropCue is a short falling blip.
func DropCue(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(tone(660, -1200, 90*time.Millisecond, WaveTriangle, rate), vol)
}

// MergeCue is a two-note chime whose pitch rises with the resulting tier.
func MergeCue(rate beep.SampleRate, tier int, vol float64) beep.Streamer {
	f := tierFrequency(tier)
	chime := beep.Seq(
		tone(f, 0, 70*time.Millisecond, WaveSine, rate),
		beep.Mix(
			withVolume(tone(f*1.5, 0, 140*time.Millisecond, WaveSine, rate), 0.7),
			withVolume(tone(f*3, 0, 140*time.Millisecond, WaveSine, rate), 0.3),
		),
	)
	return withVolume(chime, vol)
}

// ClearCue is a soft pop played for each ball cleared after game over.
func ClearCue(rate beep.SampleRate, tier int, vol float64) beep.Streamer {
	return withVolume(tone(tierFrequency(tier)/2, 400, 60*time.Millisecond, WaveSquare, rate), vol*0.4)
}

// GameOverCue is a descending three-note phrase.
func GameOverCue(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		tone(392, 0, 160*time.Millisecond, WaveTriangle, rate),
		tone(330, 0, 160*time.Millisecond, WaveTriangle, rate),
		tone(262, -80, 320*time.Millisecond, WaveTriangle, rate),
	), vol)
}
