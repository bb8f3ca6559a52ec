package bubble

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/callbubbles/parameter"
)

// SetActionGroup installs g as the only action group, fading it in around owner
func (m *Model) SetActionGroup(owner *Bubble, g *ActionGroup) {
	if m.group != nil && m.group != g {
		m.ClearActionGroup()
	}
	g.owner = owner
	g.show(m.clock.Now())
	m.group = g
}

// ClearActionGroup drops the action group at once and retracts its owner
func (m *Model) ClearActionGroup() {
	g := m.group
	if g == nil {
		return
	}
	m.group = nil
	if g.owner != nil && g.owner.expanded {
		g.owner.Retract()
	}
	m.log.Debug("action group cleared")
}

// ShowActions opens the grab menu of b: a row of action attractors above the bubble
// that b can be dropped onto; the row fades out once b is no longer in play
func (m *Model) ShowActions(b *Bubble) *ActionGroup {
	g := m.buildGroup(b)
	m.SetActionGroup(b, g)
	g.arrangeRow(m.width, parameter.ActionMargin*m.density)
	return g
}

// OpenActions expands b and binds one action attractor per menu slot
// The bubble holds still while expanded; actions fire through TriggerAction
func (m *Model) OpenActions(b *Bubble) *ActionGroup {
	if b.dragged {
		b.Release()
	}
	m.ClearActionGroup()
	b.Expand(m.width, m.height)
	g := m.buildGroup(b)
	m.SetActionGroup(b, g)
	m.placeMenuActions(g)
	m.log.Debug("actions opened", zap.String("id", b.ID()), zap.Stringer("dir", b.layout.Dir))
	return g
}

// CloseActions starts the fade-out of the action group
func (m *Model) CloseActions() {
	if m.group != nil && m.group.enabled {
		m.group.hide(m.clock.Now())
	}
}

// TriggerAction fires the open group action under the point
// Reports whether an action was hit; the owner is removed when the action requests it
func (m *Model) TriggerAction(x, y float64) bool {
	g := m.group
	if g == nil || !g.enabled {
		return false
	}
	a := g.ActionAt(x, y)
	if a == nil {
		return false
	}
	owner := g.owner
	m.log.Debug("action tapped", zap.String("id", owner.ID()), zap.Stringer("action", a.action))
	if a.Capture(owner) {
		m.removeBubble(owner)
		return true
	}
	if m.group == g {
		g.hide(m.clock.Now())
	}
	return true
}

func (m *Model) buildGroup(b *Bubble) *ActionGroup {
	g := newActionGroup(b, m.appear, m.disappear)
	onHold := b.entity.OnHold()
	radius := parameter.AttractorRadius * m.density
	for _, it := range b.menu.Items {
		slot := resolveSlot(it, b.pos, radius, onHold)
		action := slot.Action
		a := NewAttractor(action.String(), b.pos, radius, func(target *Bubble) bool {
			if !g.enabled || m.onAction == nil {
				return false
			}
			return m.onAction(target, action)
		}).WithIcon(slot.Icon).WithAction(action)
		g.add(a)
	}
	return g
}

// placeMenuActions moves group attractors onto the owner's menu slots
func (m *Model) placeMenuActions(g *ActionGroup) {
	l := g.owner.layout
	if l == nil {
		return
	}
	for i, a := range g.actions {
		if i < len(l.Slots) {
			a.SetPosition(l.Slots[i].Pos)
			a.radius = l.Slots[i].Radius
		}
	}
}
