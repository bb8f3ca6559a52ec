package bubble

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/callbubbles/physics"
	"github.com/lixenwraith/callbubbles/vmath"
)

// Update advances the simulation to the current clock time
func (m *Model) Update() {
	m.UpdateAt(m.clock.Now())
}

// UpdateAt advances the simulation to now
// A now earlier than the previous update is ignored; the step is clamped to the profile MaxStep
func (m *Model) UpdateAt(now time.Time) {
	if !m.lastUpdate.IsZero() && now.Before(m.lastUpdate) {
		return
	}
	dt := m.profile.MaxStep
	if !m.lastUpdate.IsZero() {
		dt = math.Min(now.Sub(m.lastUpdate).Seconds(), m.profile.MaxStep)
	}
	m.lastUpdate = now
	m.frames++

	g := m.group
	if g != nil && !g.enabled && g.Visibility(now) <= 0 {
		m.ClearActionGroup()
		g = nil
	}

	actionAttr := false

	// Captures may remove bubbles mid-pass, iterate a frame-start copy
	m.scratch = append(m.scratch[:0], m.bubbles...)
	for _, b := range m.scratch {
		if !b.alive {
			continue
		}
		if b.markedToDie {
			m.log.Debug("bubble ejected", zap.String("id", b.ID()))
			m.removeBubble(b)
			continue
		}

		actionGrp := g != nil && g.enabled && g.owner == b
		attrs := m.attractors
		if actionGrp {
			attrs = g.actions
		}

		target, attractor, distSq, hasTarget := b.nearest(attrs)
		b.attractor = attractor

		// Re-arm a rejecting attractor once the bubble leaves it, dragged or not
		if b.rejectedBy != nil && (attractor != b.rejectedBy || distSq >= m.profile.SuckDistanceSq) {
			b.rejectedBy = nil
		}

		if b.dragged || b.expanded {
			actionAttr = true
			m.stepScale(b, dt)
			continue
		}
		if actionGrp && attractor != nil {
			actionAttr = true
		}

		m.advance(b, target, attractor != nil, hasTarget, distSq, dt)

		if attractor != nil && distSq < m.profile.SuckDistanceSq {
			if m.capture(b, attractor) {
				continue
			}
			if actionGrp && m.group == g {
				g.hide(now)
			}
		}

		if m.borderPolicy != nil && b.IsOnBorder(m.width, m.height) && m.borderPolicy(b) {
			b.MarkToDie()
		}

		m.stepScale(b, dt)
	}

	// Nothing dragged or hovering over the group actions: dismiss
	if g != nil && m.group == g && g.enabled && !actionAttr {
		g.hide(now)
	}
}

// advance applies friction, band scale, border repulsion and the exponential approach to target
func (m *Model) advance(b *Bubble, target vmath.Point2D, toAttractor, hasTarget bool, distSq, dt float64) {
	p := &m.profile

	b.vel = vmath.P2Scale(b.vel, p.FrictionCoef(dt))

	if toAttractor {
		b.targetScale = p.TargetScale(math.Max(1, math.Sqrt(distSq)))
	}

	b.vel = p.RepelBorder(b.pos, b.vel, m.width, m.height, dt)

	var next vmath.Point2D
	if hasTarget {
		next, b.vel = p.Approach(b.pos, b.vel, target, dt)
	} else {
		next = p.Drift(b.pos, b.vel, dt)
	}
	b.SetPosition(next.X, next.Y)
}

// capture runs the attractor callback once per capture episode, reporting whether b was removed
func (m *Model) capture(b *Bubble, a *Attractor) bool {
	if b.rejectedBy == a {
		b.targetScale = 1
		return false
	}
	if a.Capture(b) {
		m.log.Debug("bubble captured", zap.String("id", b.ID()), zap.String("attractor", a.name))
		m.removeBubble(b)
		return true
	}
	if !b.alive {
		return true
	}
	m.log.Debug("capture rejected", zap.String("id", b.ID()), zap.String("attractor", a.name))
	b.rejectedBy = a
	b.targetScale = 1
	return false
}

func (m *Model) stepScale(b *Bubble, dt float64) {
	b.SetScale(physics.SmoothScale(b.scale, b.targetScale, dt))
}
