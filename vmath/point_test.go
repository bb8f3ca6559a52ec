package vmath

import (
	"math"
	"testing"
)

func TestP2DistSq(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want float64
	}{
		{"same point", P2(3, 4), P2(3, 4), 0},
		{"axis x", P2(0, 0), P2(10, 0), 100},
		{"3-4-5", P2(1, 1), P2(4, 5), 25},
		{"negative", P2(-2, -2), P2(1, 2), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := P2DistSq(tt.a, tt.b); got != tt.want {
				t.Errorf("P2DistSq(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := P2Dist(tt.a, tt.b); got != math.Sqrt(tt.want) {
				t.Errorf("P2Dist(%v, %v) = %v, want %v", tt.a, tt.b, got, math.Sqrt(tt.want))
			}
		})
	}
}

func TestP2NormalizeZero(t *testing.T) {
	if got := P2Normalize(Point2D{}); got != (Point2D{}) {
		t.Errorf("expected zero vector, got %v", got)
	}

	n := P2Normalize(P2(3, 4))
	if math.Abs(P2Mag(n)-1) > 1e-12 {
		t.Errorf("expected unit magnitude, got %v", P2Mag(n))
	}
}

func TestP2Lerp(t *testing.T) {
	a, b := P2(0, 0), P2(10, -20)
	if got := P2Lerp(a, b, 0); got != a {
		t.Errorf("t=0: got %v", got)
	}
	if got := P2Lerp(a, b, 1); got != b {
		t.Errorf("t=1: got %v", got)
	}
	if got := P2Lerp(a, b, 0.5); got != P2(5, -10) {
		t.Errorf("t=0.5: got %v", got)
	}
}

func TestClampAbs(t *testing.T) {
	if got := ClampAbs(3000, 2500); got != 2500 {
		t.Errorf("got %v", got)
	}
	if got := ClampAbs(-3000, 2500); got != -2500 {
		t.Errorf("got %v", got)
	}
	if got := ClampAbs(42, 2500); got != 42 {
		t.Errorf("got %v", got)
	}
}

func TestBounds(t *testing.T) {
	b := BoundsAround(P2(100, 50), 20)
	if b.Width() != 40 || b.Height() != 40 {
		t.Fatalf("unexpected size %vx%v", b.Width(), b.Height())
	}
	if b.Center() != P2(100, 50) {
		t.Errorf("unexpected center %v", b.Center())
	}
	if !b.Contains(80, 30) || b.Contains(79, 50) {
		t.Errorf("edge containment wrong for %+v", b)
	}
	if b.Exceeds(200, 100) {
		t.Errorf("bounds inside viewport reported as exceeding")
	}
	if !BoundsAround(P2(5, 50), 20).Exceeds(200, 100) {
		t.Errorf("bounds crossing left edge not reported")
	}
}
