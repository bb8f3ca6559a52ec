package parameter

import "time"

// Render Loop Timing
const (
	// FrameInterval is the rendering frame cadence (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// LoopStatusInterval is the minimum spacing of periodic loop debug lines
	LoopStatusInterval = 5 * time.Second

	// SimFrameInterval is the simulated frame step for headless runs
	SimFrameInterval = 20 * time.Millisecond
)

// Call event plumbing
const (
	// CallEventQueueSize is the buffered capacity of the controller event channel
	CallEventQueueSize = 64

	// LongPressDelay is the hold time after which a touch becomes a long press
	LongPressDelay = 500 * time.Millisecond
)
