package parameter

import "time"

// Bubble motion, all distances and speeds are in density-independent pixels and are
// multiplied by the display density when a physics profile is built
const (
	// ReturnHalfLife is the time for the position offset to the target to halve (exponential return)
	ReturnHalfLife = 300 * time.Millisecond

	// FrictionHalfLife is the time for free velocity to halve
	FrictionHalfLife = 200 * time.Millisecond

	// MaxSpeed caps velocity per axis (px/s)
	MaxSpeed = 2500.0

	// SmoothDistance is the radius of the speed and scale bands around an attractor
	SmoothDistance = 50.0

	// StallDistance is the inner radius where a bubble approaching an attractor shrinks to stall scale
	StallDistance = 15.0

	// SuckDistance is the capture distance to the attractor center
	SuckDistance = 20.0

	// BorderRepulsion is the velocity change per second applied when outside the viewport
	BorderRepulsion = 60000.0

	// MaxStep clamps the simulated interval of a single update
	MaxStep = 200 * time.Millisecond
)

// Bubble scale
const (
	// GrabScale is the target scale while a bubble is held
	GrabScale = 0.8

	// StallScale is the target scale inside the stall distance of an attractor
	StallScale = 0.2

	// ScaleSmoothing is the per-second rate of the scale interpolation toward the target
	ScaleSmoothing = 10.0

	// MaxScale bounds SetScale from above
	MaxScale = 1.5
)
