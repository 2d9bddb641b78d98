// Package audio synthesises the game's sound cues with beep.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Bank plays cues through a single mixer on the speaker. Every method is a
// silent no-op until Init succeeds, so a machine without audio still plays.
type Bank struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	queued      int
}

// NewBank returns an uninitialised bank at the given master volume (0..1).
func NewBank(volume float64) *Bank {
	return &Bank{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker. Calling it again is a no-op.
func (b *Bank) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close drops every pending cue.
func (b *Bank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// SetMuted silences or restores future cues.
func (b *Bank) SetMuted(m bool) {
	b.mu.Lock()
	b.muted = m
	b.mu.Unlock()
}

// ToggleMute flips the mute flag and returns the new value.
func (b *Bank) ToggleMute() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = !b.muted
	return b.muted
}

// Muted reports whether cues are silenced.
func (b *Bank) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// Queued returns how many cues have been handed to the mixer.
func (b *Bank) Queued() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queued
}

// Drop, Merge, Clear and GameOver queue the matching cue.
func (b *Bank) Drop() { b.play(func(v float64) beep.Streamer { return DropCue(SampleRate, v) }) }
func (b *Bank) Merge(tier int) { b.play(func(v float64) beep.Streamer { return MergeCue(SampleRate, tier, v) }) }
func (b *Bank) Clear(tier int) { b.play(func(v float64) beep.Streamer { return ClearCue(SampleRate, tier, v) }) }
func (b *Bank) GameOver() { b.play(func(v float64) beep.Streamer { return GameOverCue(SampleRate, v) }) }

func (b *Bank) play(cue func(vol float64) beep.Streamer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || b.muted {
		return
	}
	s := cue(b.volume)
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
	b.queued++
}
