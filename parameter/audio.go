package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Grab cue, short soft tick
const (
	GrabCueDuration = 40 * time.Millisecond
	GrabCueFreq     = 880.0
)

// Capture cue, rising two-note chime
const (
	CaptureCueNoteDuration = 90 * time.Millisecond
	CaptureCueFreqLow      = 660.0
	CaptureCueFreqHigh     = 990.0
)

// Reject cue, low buzz
const (
	RejectCueDuration = 150 * time.Millisecond
	RejectCueFreq     = 110.0
	RejectCueVolume   = 0.3
)
