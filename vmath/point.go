package vmath

import (
	"math"
)

// Point2D is a float64 2D vector used for positions, velocities and offsets in pixels
type Point2D struct {
	X, Y float64
}

func P2(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func P2Add(a, b Point2D) Point2D {
	return Point2D{a.X + b.X, a.Y + b.Y}
}

func P2Sub(a, b Point2D) Point2D {
	return Point2D{a.X - b.X, a.Y - b.Y}
}

func P2Scale(v Point2D, s float64) Point2D {
	return Point2D{v.X * s, v.Y * s}
}

func P2MagSq(v Point2D) float64 {
	return v.X*v.X + v.Y*v.Y
}

func P2Mag(v Point2D) float64 {
	return math.Sqrt(P2MagSq(v))
}

// P2DistSq returns squared Euclidean distance, no sqrt
func P2DistSq(a, b Point2D) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx*dx + dy*dy
}

func P2Dist(a, b Point2D) float64 {
	return math.Sqrt(P2DistSq(a, b))
}

// P2Normalize returns unit vector, zero-safe
func P2Normalize(v Point2D) Point2D {
	mag := P2Mag(v)
	if mag == 0 {
		return Point2D{}
	}
	inv := 1.0 / mag
	return Point2D{v.X * inv, v.Y * inv}
}

// P2Lerp interpolates from a (t=0) to b (t=1), t is not clamped
func P2Lerp(a, b Point2D, t float64) Point2D {
	return Point2D{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// P2FromAngle returns the point at distance r from c in direction angle (radians, y grows downward)
func P2FromAngle(c Point2D, angle, r float64) Point2D {
	return Point2D{c.X + math.Cos(angle)*r, c.Y + math.Sin(angle)*r}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampAbs limits v to [-limit, limit]
func ClampAbs(v, limit float64) float64 {
	return Clamp(v, -limit, limit)
}
