package bubble

import (
	"github.com/lixenwraith/callbubbles/vmath"
)

// CaptureFunc is invoked when a bubble reaches capture distance of an attractor
// Returns true when the bubble should leave the model, false to bounce it back
type CaptureFunc func(b *Bubble) bool

// Attractor is a capture zone pulling nearby bubbles toward its position
type Attractor struct {
	name   string
	icon   string
	action Action
	pos    vmath.Point2D
	radius float64

	capture CaptureFunc

	// place recomputes pos from the viewport size, nil for fixed attractors
	place func(w, h float64) vmath.Point2D
}

// NewAttractor creates an attractor at a fixed position
func NewAttractor(name string, pos vmath.Point2D, radius float64, cb CaptureFunc) *Attractor {
	return &Attractor{
		name:    name,
		pos:     pos,
		radius:  radius,
		capture: cb,
	}
}

// NewRelativeAttractor creates an attractor placed at fractions (fx, fy) of the viewport
// Position is zero until the model receives a viewport size
func NewRelativeAttractor(name string, fx, fy, radius float64, cb CaptureFunc) *Attractor {
	a := NewAttractor(name, vmath.Point2D{}, radius, cb)
	a.place = func(w, h float64) vmath.Point2D {
		return vmath.P2(w*fx, h*fy)
	}
	return a
}

// WithIcon sets the opaque icon handle passed through to renderers
func (a *Attractor) WithIcon(icon string) *Attractor {
	a.icon = icon
	return a
}

// WithAction tags the attractor with the call-control action it stands for
func (a *Attractor) WithAction(action Action) *Attractor {
	a.action = action
	return a
}

func (a *Attractor) Name() string            { return a.name }
func (a *Attractor) Icon() string            { return a.icon }
func (a *Attractor) Action() Action          { return a.action }
func (a *Attractor) Position() vmath.Point2D { return a.pos }
func (a *Attractor) Radius() float64         { return a.radius }

// SetPosition moves the attractor, used by trackers following a moving bubble
func (a *Attractor) SetPosition(p vmath.Point2D) {
	a.pos = p
}

// DistanceSquaredTo returns the squared distance between the attractor and the bubble center
func (a *Attractor) DistanceSquaredTo(b *Bubble) float64 {
	return vmath.P2DistSq(a.pos, b.pos)
}

// Bounds returns the draw rectangle of the attractor icon at scale
func (a *Attractor) Bounds(scale float64) vmath.Bounds {
	return vmath.BoundsAround(a.pos, a.radius*scale)
}

// BoundsFrom returns the icon rectangle while animating out of origin, t in [0,1]
func (a *Attractor) BoundsFrom(scale float64, origin vmath.Point2D, t float64) vmath.Bounds {
	t = vmath.Clamp(t, 0, 1)
	return vmath.BoundsAround(vmath.P2Lerp(origin, a.pos, t), a.radius*scale*t)
}

// Contains reports whether a point lies on the attractor icon
func (a *Attractor) Contains(x, y float64) bool {
	return vmath.P2DistSq(a.pos, vmath.P2(x, y)) < a.radius*a.radius
}

// Capture runs the capture callback, attractors without one always bounce
func (a *Attractor) Capture(b *Bubble) bool {
	if a.capture == nil {
		return false
	}
	return a.capture(b)
}

func (a *Attractor) resize(w, h float64) {
	if a.place != nil {
		a.pos = a.place(w, h)
	}
}
