package vmath

// Bounds is an axis-aligned rectangle in pixels, derived from a center and extents
type Bounds struct {
	Left, Top, Right, Bottom float64
}

// BoundsAround returns the square bounds of a circle centered at c with radius r
func BoundsAround(c Point2D, r float64) Bounds {
	return Bounds{
		Left:   c.X - r,
		Top:    c.Y - r,
		Right:  c.X + r,
		Bottom: c.Y + r,
	}
}

func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

func (b Bounds) Center() Point2D {
	return Point2D{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// Contains checks if point is within bounds, edges inclusive
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right && y >= b.Top && y <= b.Bottom
}

// Exceeds reports whether the bounds extend past any edge of a w×h viewport anchored at origin
func (b Bounds) Exceeds(w, h float64) bool {
	return b.Left < 0 || b.Top < 0 || b.Right > w || b.Bottom > h
}
