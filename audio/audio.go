// Package audio plays the contact-zone blip. Audio is best-effort: if
// the speaker cannot be initialized the simulator runs silent.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	blipFreq   = 880
	blipLen    = 50 * time.Millisecond
)

// Engine owns the speaker. Zero value is unusable; use New.
type Engine struct {
	ready bool
	muted bool
}

// New initializes the speaker. The returned error is informational; the
// engine is still safe to use and simply stays silent.
func New() (*Engine, error) {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	return &Engine{ready: err == nil}, err
}

// PlayContact emits a short sine blip, used when the agent enters the
// contact zone.
func (e *Engine) PlayContact() {
	if !e.ready || e.muted {
		return
	}
	sine, err := generators.SineTone(sampleRate, blipFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(blipLen), sine))
}

// ToggleMute flips the mute state and returns the new value.
func (e *Engine) ToggleMute() bool {
	e.muted = !e.muted
	return e.muted
}

// Muted reports the mute state.
func (e *Engine) Muted() bool { return e.muted }

// Close releases the speaker.
func (e *Engine) Close() {
	if e.ready {
		speaker.Close()
	}
}
