package physics

import (
	"math"

	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/vmath"
)

// FrictionCoef returns the viscous velocity multiplier for dt seconds, exp(-λf·dt)
func (p *Profile) FrictionCoef(dt float64) float64 {
	return 1 + math.Expm1(-p.FrictionLambda*dt)
}

// ReturnFraction returns the share of the target offset covered in dt seconds, 1-exp(-λr·dt)
func (p *Profile) ReturnFraction(dt float64) float64 {
	return -math.Expm1(-p.ReturnLambda * dt)
}

// BandFactor maps a distance onto the attractor band: 1 beyond smooth, 0 inside stall, linear between
// Second return reports the position: -1 inside stall, 1 beyond smooth, 0 in the band
func (p *Profile) BandFactor(dist float64) (float64, int) {
	switch {
	case dist > p.SmoothDistance:
		return 1, 1
	case dist < p.StallDistance:
		return 0, -1
	default:
		return (dist - p.StallDistance) / (p.SmoothDistance - p.StallDistance), 0
	}
}

// TargetSpeed returns the approach speed for a distance to the target
func (p *Profile) TargetSpeed(dist float64) float64 {
	a, _ := p.BandFactor(dist)
	return p.MaxSpeed * a
}

// TargetScale returns the bubble scale goal for a distance to the nearest attractor
func (p *Profile) TargetScale(dist float64) float64 {
	a, band := p.BandFactor(dist)
	switch band {
	case 1:
		return 1
	case -1:
		return parameter.StallScale
	default:
		return a*(1-parameter.StallScale) + parameter.StallScale
	}
}

// RepelBorder pushes velocity back toward the viewport on each axis where pos is outside and moving away
func (p *Profile) RepelBorder(pos, vel vmath.Point2D, w, h, dt float64) vmath.Point2D {
	step := dt * p.BorderRepulsion
	if pos.X < 0 && vel.X < 0 {
		vel.X += step
	} else if pos.X > w && vel.X > 0 {
		vel.X -= step
	}
	if pos.Y < 0 && vel.Y < 0 {
		vel.Y += step
	} else if pos.Y > h && vel.Y > 0 {
		vel.Y -= step
	}
	return vel
}

// ClampSpeed limits each velocity axis to [-MaxSpeed, MaxSpeed]
func (p *Profile) ClampSpeed(vel vmath.Point2D) vmath.Point2D {
	return vmath.Point2D{
		X: vmath.ClampAbs(vel.X, p.MaxSpeed),
		Y: vmath.ClampAbs(vel.Y, p.MaxSpeed),
	}
}

// Approach advances one undragged bubble toward target for dt seconds
// Returns the new position and velocity; vel is the velocity after friction and border repulsion
// Distance is floored at 1 so the direction stays finite on top of the target
func (p *Profile) Approach(pos, vel, target vmath.Point2D, dt float64) (vmath.Point2D, vmath.Point2D) {
	offset := vmath.P2Sub(target, pos)
	dist := math.Max(1, vmath.P2Mag(offset))

	speed := p.TargetSpeed(dist)
	vel.X += dt * speed * offset.X / dist
	vel.Y += dt * speed * offset.Y / dist

	edt := p.ReturnFraction(dt)
	clamped := p.ClampSpeed(vel)
	next := vmath.Point2D{
		X: pos.X + offset.X*edt + clamped.X*dt,
		Y: pos.Y + offset.Y*edt + clamped.Y*dt,
	}
	return next, vel
}

// SmoothScale moves scale toward target at the fixed smoothing rate
// A step factor of 1 or more lands on target
func SmoothScale(scale, target, dt float64) float64 {
	f := dt * parameter.ScaleSmoothing
	if f >= 1 {
		return target
	}
	return scale + (target-scale)*f
}

// Drift advances a bubble with no target by its clamped velocity only
func (p *Profile) Drift(pos, vel vmath.Point2D, dt float64) vmath.Point2D {
	clamped := p.ClampSpeed(vel)
	return vmath.Point2D{X: pos.X + clamped.X*dt, Y: pos.Y + clamped.Y*dt}
}
