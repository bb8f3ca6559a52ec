package bubble

import (
	"time"

	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/vmath"
)

// Bubble is a draggable token bound to one call or conference
// All fields are guarded by the owning Model lock
type Bubble struct {
	entity Entity
	kind   Kind
	menu   Menu

	pos     vmath.Point2D
	vel     vmath.Point2D
	lastVel vmath.Point2D

	// anchor is the rest position competing with attractors, unset bubbles rest where they stop
	anchor   vmath.Point2D
	anchored bool

	scale       float64
	targetScale float64

	// Density-independent radii
	radius         float64
	expandedRadius float64
	density        float64

	bounds vmath.Bounds

	dragged  bool
	lastDrag time.Time

	expanded bool
	layout   *MenuLayout
	viewW    float64
	viewH    float64

	markedToDie bool
	attractor   *Attractor

	// rejectedBy holds the attractor that refused the current capture episode
	rejectedBy *Attractor

	alive bool
}

// NewContact creates a remote-party bubble with the linear drawer menu
func NewContact(e Entity, pos vmath.Point2D, radius, density float64) *Bubble {
	return newBubble(e, KindContact, ContactMenu, pos, radius, radius, density)
}

// NewUser creates the local user bubble with the ring menu
func NewUser(e Entity, pos vmath.Point2D, radius, expandedRadius, density float64) *Bubble {
	return newBubble(e, KindUser, UserMenu, pos, radius, expandedRadius, density)
}

func newBubble(e Entity, kind Kind, menu Menu, pos vmath.Point2D, radius, expandedRadius, density float64) *Bubble {
	if density <= 0 {
		density = parameter.DefaultDensity
	}
	b := &Bubble{
		entity:         e,
		kind:           kind,
		menu:           menu,
		pos:            pos,
		scale:          1,
		targetScale:    1,
		radius:         radius,
		expandedRadius: expandedRadius,
		density:        density,
	}
	b.updateBounds()
	return b
}

func (b *Bubble) ID() string                  { return b.entity.ID() }
func (b *Bubble) Entity() Entity              { return b.entity }
func (b *Bubble) Kind() Kind                  { return b.kind }
func (b *Bubble) Menu() Menu                  { return b.menu }
func (b *Bubble) Position() vmath.Point2D     { return b.pos }
func (b *Bubble) Velocity() vmath.Point2D     { return b.vel }
func (b *Bubble) LastVelocity() vmath.Point2D { return b.lastVel }
func (b *Bubble) Scale() float64              { return b.scale }
func (b *Bubble) TargetScale() float64        { return b.targetScale }
func (b *Bubble) Bounds() vmath.Bounds        { return b.bounds }
func (b *Bubble) Dragged() bool               { return b.dragged }
func (b *Bubble) LastDrag() time.Time         { return b.lastDrag }
func (b *Bubble) Expanded() bool              { return b.expanded }
func (b *Bubble) MarkedToDie() bool           { return b.markedToDie }
func (b *Bubble) Density() float64            { return b.density }

// Attractor returns the nearest attractor found by the last update, nil when resting on the anchor
func (b *Bubble) Attractor() *Attractor { return b.attractor }

// Layout returns the expanded menu geometry, nil when retracted
func (b *Bubble) Layout() *MenuLayout { return b.layout }

// SetEntity rebinds the bubble after a call state change, refreshing an open menu
func (b *Bubble) SetEntity(e Entity) {
	b.entity = e
	if b.expanded {
		b.relayout()
	}
}

// Radius returns the density-scaled hit radius; expanded bubbles ignore scale
func (b *Bubble) Radius() float64 {
	if b.expanded {
		return b.radius * b.density
	}
	return b.radius * b.scale * b.density
}

// ExpandedRadius returns the density-scaled ring menu radius
func (b *Bubble) ExpandedRadius() float64 {
	return b.expandedRadius * b.density
}

// Anchor returns the rest position and whether one is set
func (b *Bubble) Anchor() (vmath.Point2D, bool) {
	return b.anchor, b.anchored
}

// SetAnchor sets the rest position the bubble returns to when no attractor is closer
func (b *Bubble) SetAnchor(p vmath.Point2D) {
	b.anchor = p
	b.anchored = true
}

// ClearAnchor lets the bubble drift freely when no attractor is set
func (b *Bubble) ClearAnchor() {
	b.anchored = false
}

// SetPosition places the bubble directly and recomputes bounds
func (b *Bubble) SetPosition(x, y float64) {
	b.pos = vmath.P2(x, y)
	b.updateBounds()
}

// SetScale sets the render scale, clamped to (0, MaxScale]
func (b *Bubble) SetScale(s float64) {
	if s <= 0 {
		s = 1e-3
	}
	if s > parameter.MaxScale {
		s = parameter.MaxScale
	}
	b.scale = s
	b.updateBounds()
}

// SetTargetScale sets the scale the bubble interpolates toward
func (b *Bubble) SetTargetScale(s float64) {
	b.targetScale = s
}

// Grab starts a drag at now and shrinks the bubble to the picked-up scale
// A new drag starts a new capture episode, re-arming an attractor that rejected the bubble
func (b *Bubble) Grab(now time.Time) {
	b.rejectedBy = nil
	b.dragged = true
	b.lastDrag = now
	b.targetScale = parameter.GrabScale
}

// Release ends a drag; momentum moves to LastVelocity and the bubble stays where it was dropped
func (b *Bubble) Release() {
	b.dragged = false
	b.targetScale = 1
	b.lastVel = b.vel
	b.vel = vmath.Point2D{}
}

// Drag moves a grabbed bubble and samples the instantaneous velocity since the previous drag
func (b *Bubble) Drag(x, y float64, now time.Time) {
	if dt := now.Sub(b.lastDrag).Seconds(); dt > 0 {
		b.vel = vmath.P2((x-b.pos.X)/dt, (y-b.pos.Y)/dt)
	}
	b.lastDrag = now
	b.SetPosition(x, y)
}

// Expand opens the action menu laid out for a w×h viewport
func (b *Bubble) Expand(w, h float64) {
	b.expanded = true
	b.viewW, b.viewH = w, h
	b.relayout()
	b.updateBounds()
}

// Retract closes the action menu
func (b *Bubble) Retract() {
	b.expanded = false
	b.layout = nil
	b.updateBounds()
}

// Intersects is the point-in-bubble hit test
func (b *Bubble) Intersects(x, y float64) bool {
	r := b.Radius()
	return vmath.P2DistSq(b.pos, vmath.P2(x, y)) < r*r
}

// IsOnBorder reports whether the bubble bounds extend past any viewport edge
func (b *Bubble) IsOnBorder(w, h float64) bool {
	return b.bounds.Exceeds(w, h)
}

// MarkToDie schedules removal at the next simulation step
func (b *Bubble) MarkToDie() {
	b.markedToDie = true
}

func (b *Bubble) relayout() {
	l := Layout(b.menu, b.pos, b.radius*b.density, b.ExpandedRadius(), b.viewW, b.viewH, b.entity.OnHold())
	b.layout = &l
}

func (b *Bubble) updateBounds() {
	b.bounds = vmath.BoundsAround(b.pos, b.Radius())
}

// nearest returns the attraction target for this frame: the closest of the anchor and attrs
// attractor is nil when the anchor wins, hasTarget false when neither exists
func (b *Bubble) nearest(attrs []*Attractor) (target vmath.Point2D, attractor *Attractor, distSq float64, hasTarget bool) {
	if b.anchored {
		target, distSq, hasTarget = b.anchor, vmath.P2DistSq(b.anchor, b.pos), true
	}
	for _, a := range attrs {
		d := a.DistanceSquaredTo(b)
		if !hasTarget || d < distSq {
			target, attractor, distSq, hasTarget = a.pos, a, d, true
		}
	}
	return target, attractor, distSq, hasTarget
}
