package bubble

import (
	"time"

	"github.com/lixenwraith/callbubbles/vmath"
)

// BubbleState is the read-only render view of one bubble
type BubbleState struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Kind        Kind          `json:"kind"`
	Conference  bool          `json:"conference,omitempty"`
	OnHold      bool          `json:"on_hold,omitempty"`
	Position    vmath.Point2D `json:"pos"`
	Velocity    vmath.Point2D `json:"vel"`
	Scale       float64       `json:"scale"`
	TargetScale float64       `json:"target_scale"`
	Radius      float64       `json:"radius"`
	Bounds      vmath.Bounds  `json:"bounds"`
	Dragged     bool          `json:"dragged,omitempty"`
	Expanded    bool          `json:"expanded,omitempty"`
	Attractor   string        `json:"attractor,omitempty"`
	Menu        *MenuLayout   `json:"menu,omitempty"`
}

// AttractorState is the read-only render view of one attractor
type AttractorState struct {
	Name     string        `json:"name"`
	Icon     string        `json:"icon,omitempty"`
	Action   Action        `json:"action"`
	Position vmath.Point2D `json:"pos"`
	Radius   float64       `json:"radius"`
	Bounds   vmath.Bounds  `json:"bounds"`
}

// GroupState is the read-only render view of the action group
type GroupState struct {
	Owner      string           `json:"owner"`
	Enabled    bool             `json:"enabled"`
	Visibility float64          `json:"visibility"`
	Actions    []AttractorState `json:"actions"`
}

// Snapshot is the geometry of one frame, safe to read after the model lock is released
type Snapshot struct {
	Time       time.Time        `json:"time"`
	Frame      uint64           `json:"frame"`
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	Bubbles    []BubbleState    `json:"bubbles"`
	Attractors []AttractorState `json:"attractors"`
	Group      *GroupState      `json:"group,omitempty"`
}

// Snapshot fills dst with the current state, reusing its slices
func (m *Model) Snapshot(dst *Snapshot) {
	dst.Time = m.lastUpdate
	dst.Frame = m.frames
	dst.Width, dst.Height = m.width, m.height

	dst.Bubbles = dst.Bubbles[:0]
	for _, b := range m.bubbles {
		st := BubbleState{
			ID:          b.ID(),
			Name:        b.entity.DisplayName(),
			Kind:        b.kind,
			Conference:  b.entity.IsConference(),
			OnHold:      b.entity.OnHold(),
			Position:    b.pos,
			Velocity:    b.vel,
			Scale:       b.scale,
			TargetScale: b.targetScale,
			Radius:      b.Radius(),
			Bounds:      b.bounds,
			Dragged:     b.dragged,
			Expanded:    b.expanded,
		}
		if b.attractor != nil {
			st.Attractor = b.attractor.name
		}
		if b.layout != nil {
			l := *b.layout
			st.Menu = &l
		}
		dst.Bubbles = append(dst.Bubbles, st)
	}

	dst.Attractors = dst.Attractors[:0]
	for _, a := range m.attractors {
		dst.Attractors = append(dst.Attractors, attractorState(a, a.Bounds(1)))
	}

	dst.Group = nil
	if g := m.group; g != nil {
		vis := g.Visibility(m.clock.Now())
		gs := &GroupState{
			Owner:      g.owner.ID(),
			Enabled:    g.enabled,
			Visibility: vis,
			Actions:    make([]AttractorState, 0, len(g.actions)),
		}
		for _, a := range g.actions {
			gs.Actions = append(gs.Actions, attractorState(a, a.BoundsFrom(1, g.owner.pos, vis)))
		}
		dst.Group = gs
	}
}

func attractorState(a *Attractor, bounds vmath.Bounds) AttractorState {
	return AttractorState{
		Name:     a.name,
		Icon:     a.icon,
		Action:   a.action,
		Position: a.pos,
		Radius:   a.radius,
		Bounds:   bounds,
	}
}
