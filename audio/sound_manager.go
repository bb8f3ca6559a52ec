package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/callbubbles/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays short cues for bubble grab, capture and rejected capture
// Every Play method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences all cues
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// beep has no speaker close; clearing the mixer ends every cue
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles cue playback without releasing the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

func (sm *SoundManager) PlayGrab()    { sm.play(GrabCue(sampleRate)) }
func (sm *SoundManager) PlayCapture() { sm.play(CaptureCue(sampleRate)) }
func (sm *SoundManager) PlayReject()  { sm.play(RejectCue(sampleRate)) }

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// GrabCue is a short soft tick
func GrabCue(sr beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(sr, parameter.GrabCueFreq)
	if err != nil {
		return nil
	}
	return newVolume(beep.Take(sr.N(parameter.GrabCueDuration), tone), 0.4)
}

// CaptureCue is a rising two-note chime
func CaptureCue(sr beep.SampleRate) beep.Streamer {
	low, err := generators.SineTone(sr, parameter.CaptureCueFreqLow)
	if err != nil {
		return nil
	}
	high, err := generators.SineTone(sr, parameter.CaptureCueFreqHigh)
	if err != nil {
		return nil
	}
	n := sr.N(parameter.CaptureCueNoteDuration)
	return newVolume(beep.Seq(beep.Take(n, low), beep.Take(n, high)), 0.5)
}

// RejectCue is a low harmonic buzz
func RejectCue(sr beep.SampleRate) beep.Streamer {
	return newVolume(
		beep.Take(sr.N(parameter.RejectCueDuration), NewBuzzGenerator(sr, parameter.RejectCueFreq)),
		parameter.RejectCueVolume,
	)
}

// newVolume scales s linearly, zero is silence
// math.Log2(0) is -Inf, so zero volume is handled as silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fundamental plus two harmonics
		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms fade-in avoids a click
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
