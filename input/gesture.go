package input

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/callbubbles/bubble"
)

// LoopControl is the part of the render loop the dispatcher suspends and wakes
type LoopControl interface {
	Pause()
	Resume()
	Paused() bool
}

// Dispatcher turns touch gestures into grab, drag, release and menu operations on the model
// One touch session drags at most one bubble
type Dispatcher struct {
	model *bubble.Model
	loop  LoopControl
	log   *zap.Logger

	// Bubble grabbed by the current session, not guarded by the model lock
	held *bubble.Bubble
}

func NewDispatcher(model *bubble.Model, loop LoopControl, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{model: model, loop: loop, log: logger}
}

// Down wakes the loop and grabs the first non-expanded bubble under the touch, snapping it to the point
// Reports whether a bubble was grabbed
func (d *Dispatcher) Down(x, y float64) bool {
	d.resume()

	grabbed := false
	d.model.RunSafe(func() {
		d.held = nil
		b := d.model.BubbleAt(x, y)
		if b == nil {
			return
		}
		b.SetPosition(x, y)
		d.model.Grab(b)
		d.held = b
		grabbed = true
		d.log.Debug("bubble grabbed", zap.String("id", b.ID()))
	})
	return grabbed
}

// Move drags the held bubble; with nothing held and no action group showing,
// the loop is paused until the next touch
func (d *Dispatcher) Move(x, y float64) {
	busy := false
	d.model.RunSafe(func() {
		if g := d.model.ActionGroup(); g != nil && g.Enabled() {
			busy = true
		}
		b := d.held
		if b == nil || !b.Dragged() || d.model.Bubble(b.ID()) != b {
			return
		}
		b.Drag(x, y, d.model.Clock().Now())
		busy = true
	})
	if !busy && d.loop != nil && !d.loop.Paused() {
		d.loop.Pause()
	}
}

// Up releases every dragged bubble; a tap without a drag fires the menu action under the point,
// or closes an open menu when it lands elsewhere
func (d *Dispatcher) Up(x, y float64) {
	d.resume()

	d.model.RunSafe(func() {
		d.held = nil
		if d.model.ReleaseAll() > 0 {
			return
		}
		if d.model.TriggerAction(x, y) {
			return
		}
		if g := d.model.ActionGroup(); g != nil && g.Owner().Expanded() && !g.Owner().Intersects(x, y) {
			d.model.CloseActions()
		}
	})
}

// LongPress opens the action menu of the held bubble, or of the bubble under the point
func (d *Dispatcher) LongPress(x, y float64) {
	d.model.RunSafe(func() {
		b := d.held
		if b == nil || !b.Dragged() || d.model.Bubble(b.ID()) != b {
			b = d.model.BubbleAt(x, y)
		}
		if b == nil || b.Expanded() {
			return
		}
		d.model.OpenActions(b)
		d.held = nil
		d.log.Debug("menu opened", zap.String("id", b.ID()))
	})
}

func (d *Dispatcher) resume() {
	if d.loop != nil {
		d.loop.Resume()
	}
}
