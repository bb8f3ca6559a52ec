package physics

import (
	"math"
	"time"

	"github.com/lixenwraith/callbubbles/parameter"
)

// Tuning holds the density-independent bubble motion constants
type Tuning struct {
	ReturnHalfLife   time.Duration // Position offset halving time
	FrictionHalfLife time.Duration // Free velocity halving time

	MaxSpeed        float64 // Per-axis velocity cap (px/s)
	SmoothDistance  float64 // Outer radius of the speed/scale band
	StallDistance   float64 // Inner radius of the speed/scale band
	SuckDistance    float64 // Capture distance
	BorderRepulsion float64 // Velocity change per second outside the viewport

	MaxStep time.Duration // Largest simulated interval per update
}

// DefaultTuning returns the reference motion constants
func DefaultTuning() Tuning {
	return Tuning{
		ReturnHalfLife:   parameter.ReturnHalfLife,
		FrictionHalfLife: parameter.FrictionHalfLife,
		MaxSpeed:         parameter.MaxSpeed,
		SmoothDistance:   parameter.SmoothDistance,
		StallDistance:    parameter.StallDistance,
		SuckDistance:     parameter.SuckDistance,
		BorderRepulsion:  parameter.BorderRepulsion,
		MaxStep:          parameter.MaxStep,
	}
}

// Profile is a Tuning resolved for one display density, pre-computed for the update hot path
type Profile struct {
	ReturnLambda   float64 // ln2 / return half-life (1/s)
	FrictionLambda float64 // ln2 / friction half-life (1/s)

	MaxSpeed        float64
	SmoothDistance  float64
	StallDistance   float64
	SuckDistance    float64
	SuckDistanceSq  float64
	BorderRepulsion float64

	MaxStep float64 // Seconds
}

// NewProfile scales every distance and speed of t by density
func NewProfile(t Tuning, density float64) Profile {
	if density <= 0 {
		density = parameter.DefaultDensity
	}
	suck := t.SuckDistance * density
	return Profile{
		ReturnLambda:    halfLifeLambda(t.ReturnHalfLife),
		FrictionLambda:  halfLifeLambda(t.FrictionHalfLife),
		MaxSpeed:        t.MaxSpeed * density,
		SmoothDistance:  t.SmoothDistance * density,
		StallDistance:   t.StallDistance * density,
		SuckDistance:    suck,
		SuckDistanceSq:  suck * suck,
		BorderRepulsion: t.BorderRepulsion * density,
		MaxStep:         t.MaxStep.Seconds(),
	}
}

// halfLifeLambda returns the decay rate for a half-life, 0 disables decay
func halfLifeLambda(halfLife time.Duration) float64 {
	s := halfLife.Seconds()
	if s <= 0 {
		return 0
	}
	return math.Ln2 / s
}
