package bubble

import (
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/callbubbles/core"
	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/physics"
	"github.com/lixenwraith/callbubbles/vmath"
)

// ActionHandler performs a menu action for a bubble; true removes the bubble
type ActionHandler func(b *Bubble, action Action) bool

// BorderPolicy decides whether a free bubble crossing the viewport edge is ejected
type BorderPolicy func(b *Bubble) bool

// Model is the simulation state: bubbles, attractors and the optional action group
// Methods never lock; callers serialize access through Lock/Unlock or RunSafe
// Capture callbacks run inside Update and may call any Model method directly
type Model struct {
	mu sync.Mutex

	clock   core.Clock
	log     *zap.Logger
	tuning  physics.Tuning
	profile physics.Profile
	density float64

	width, height float64
	circleCenter  vmath.Point2D
	circleRadius  float64

	bubbles    []*Bubble
	scratch    []*Bubble
	attractors []*Attractor
	group      *ActionGroup

	lastUpdate time.Time
	frames     uint64

	onGrab       func(b *Bubble)
	onAction     ActionHandler
	borderPolicy BorderPolicy

	appear    time.Duration
	disappear time.Duration
}

// Option configures a Model
type Option func(*Model)

// WithClock sets the time source read once per Update
func WithClock(c core.Clock) Option {
	return func(m *Model) { m.clock = c }
}

// WithTuning replaces the motion constants
func WithTuning(t physics.Tuning) Option {
	return func(m *Model) { m.tuning = t }
}

// WithLogger sets the model logger, nil keeps the no-op default
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithGrabHandler sets the callback run after a bubble is grabbed
func WithGrabHandler(fn func(b *Bubble)) Option {
	return func(m *Model) { m.onGrab = fn }
}

// WithActionHandler sets the callback run when a bubble is captured by a menu action
func WithActionHandler(fn ActionHandler) Option {
	return func(m *Model) { m.onAction = fn }
}

// WithBorderPolicy enables ejection of bubbles crossing the viewport edge
func WithBorderPolicy(fn BorderPolicy) Option {
	return func(m *Model) { m.borderPolicy = fn }
}

// WithActionFade sets the action group fade durations
func WithActionFade(appear, disappear time.Duration) Option {
	return func(m *Model) {
		m.appear = appear
		m.disappear = disappear
	}
}

// New creates an empty model for a display density
func New(density float64, opts ...Option) *Model {
	if density <= 0 {
		density = parameter.DefaultDensity
	}
	m := &Model{
		clock:     core.NewTimeProvider(),
		log:       zap.NewNop(),
		tuning:    physics.DefaultTuning(),
		density:   density,
		appear:    parameter.ActionAppearTime,
		disappear: parameter.ActionDisappearTime,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.profile = physics.NewProfile(m.tuning, density)
	return m
}

// Lock acquires the model lock
func (m *Model) Lock() { m.mu.Lock() }

// Unlock releases the model lock
func (m *Model) Unlock() { m.mu.Unlock() }

// RunSafe executes fn while holding the model lock
func (m *Model) RunSafe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

func (m *Model) Density() float64          { return m.density }
func (m *Model) Profile() physics.Profile  { return m.profile }
func (m *Model) Clock() core.Clock         { return m.clock }
func (m *Model) LastUpdate() time.Time     { return m.lastUpdate }
func (m *Model) Frames() uint64            { return m.frames }
func (m *Model) Size() (w, h float64)      { return m.width, m.height }
func (m *Model) ActionGroup() *ActionGroup { return m.group }

// ConferenceCircle returns the circle participants are laid out on
func (m *Model) ConferenceCircle() (vmath.Point2D, float64) {
	return m.circleCenter, m.circleRadius
}

// SetViewportSize resizes the simulation area, re-places relative attractors and the action row,
// and derives the conference circle from the bubble diameter
func (m *Model) SetViewportSize(w, h, bubbleSize float64) {
	m.width, m.height = w, h
	for _, a := range m.attractors {
		a.resize(w, h)
	}
	if g := m.group; g != nil {
		if g.owner.expanded {
			g.owner.Expand(w, h)
			m.placeMenuActions(g)
		} else {
			g.arrangeRow(w, parameter.ActionMargin*m.density)
		}
	}
	m.circleRadius = math.Max(math.Min(w, h)/2-bubbleSize, 0)
	m.circleCenter = vmath.P2(w/2, h/2)
}

// AddBubble inserts b on top of the z-order
// A bubble with the same id is replaced in place; a new user bubble replaces the previous one
func (m *Model) AddBubble(b *Bubble) {
	b.alive = true
	for i, old := range m.bubbles {
		if old.ID() == b.ID() {
			m.detach(old)
			m.bubbles[i] = b
			m.log.Debug("bubble replaced", zap.String("id", b.ID()))
			m.dropOtherUsers(b)
			return
		}
	}
	m.dropOtherUsers(b)
	m.bubbles = append(m.bubbles, b)
	m.log.Debug("bubble added", zap.String("id", b.ID()), zap.Stringer("kind", b.kind))
}

func (m *Model) dropOtherUsers(b *Bubble) {
	if b.kind != KindUser {
		return
	}
	for _, old := range m.bubbles {
		if old != b && old.kind == KindUser {
			m.removeBubble(old)
			return
		}
	}
}

// RemoveBubble removes the bubble bound to id, reporting whether one existed
func (m *Model) RemoveBubble(id string) bool {
	b := m.Bubble(id)
	if b == nil {
		return false
	}
	m.removeBubble(b)
	return true
}

func (m *Model) removeBubble(b *Bubble) {
	if !b.alive {
		return
	}
	for i, cur := range m.bubbles {
		if cur == b {
			m.bubbles = slices.Delete(m.bubbles, i, i+1)
			break
		}
	}
	m.detach(b)
	m.log.Debug("bubble removed", zap.String("id", b.ID()))
}

// detach marks b dead and tears down the action group it owns
func (m *Model) detach(b *Bubble) {
	b.alive = false
	if m.group != nil && m.group.owner == b {
		m.group = nil
		b.Retract()
	}
}

// Bubble returns the bubble bound to id, nil when absent
func (m *Model) Bubble(id string) *Bubble {
	for _, b := range m.bubbles {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// User returns the local user bubble, nil when absent
func (m *Model) User() *Bubble {
	for _, b := range m.bubbles {
		if b.kind == KindUser {
			return b
		}
	}
	return nil
}

// Bubbles returns the live bubbles in z-order; the slice is valid until the next mutation
func (m *Model) Bubbles() []*Bubble {
	return m.bubbles
}

// Dragged returns the bubble currently held, nil when none
func (m *Model) Dragged() *Bubble {
	for _, b := range m.bubbles {
		if b.dragged {
			return b
		}
	}
	return nil
}

// BubbleAt returns the first non-expanded bubble containing the point in insertion order
func (m *Model) BubbleAt(x, y float64) *Bubble {
	for _, b := range m.bubbles {
		if !b.expanded && b.Intersects(x, y) {
			return b
		}
	}
	return nil
}

// AddAttractor registers a global attractor, placing relative ones for the current viewport
func (m *Model) AddAttractor(a *Attractor) {
	if m.width > 0 && m.height > 0 {
		a.resize(m.width, m.height)
	}
	m.attractors = append(m.attractors, a)
}

// RemoveAttractor removes the global attractor named name
func (m *Model) RemoveAttractor(name string) bool {
	for i, a := range m.attractors {
		if a.name == name {
			m.attractors = slices.Delete(m.attractors, i, i+1)
			m.forget(a)
			return true
		}
	}
	return false
}

// Attractors returns the global attractors
func (m *Model) Attractors() []*Attractor {
	return m.attractors
}

// ClearAttractors removes every global attractor
func (m *Model) ClearAttractors() {
	for _, a := range m.attractors {
		m.forget(a)
	}
	clear(m.attractors)
	m.attractors = m.attractors[:0]
}

// forget drops per-bubble references to a removed attractor
func (m *Model) forget(a *Attractor) {
	for _, b := range m.bubbles {
		if b.attractor == a {
			b.attractor = nil
		}
		if b.rejectedBy == a {
			b.rejectedBy = nil
		}
	}
}

// Clear removes all bubbles, attractors and the action group
func (m *Model) Clear() {
	m.ClearActionGroup()
	m.ClearAttractors()
	for _, b := range m.bubbles {
		b.alive = false
	}
	clear(m.bubbles)
	m.bubbles = m.bubbles[:0]
}

// Grab starts dragging b and notifies the grab handler
func (m *Model) Grab(b *Bubble) {
	b.Grab(m.clock.Now())
	if m.onGrab != nil {
		m.onGrab(b)
	}
}

// Release ends dragging b
func (m *Model) Release(b *Bubble) {
	b.Release()
}

// ReleaseAll releases every dragged bubble, returning how many were held
func (m *Model) ReleaseAll() int {
	n := 0
	for _, b := range m.bubbles {
		if b.dragged {
			b.Release()
			n++
		}
	}
	return n
}
