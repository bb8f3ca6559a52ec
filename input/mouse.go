package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/callbubbles/parameter"
)

// Touch receives pixel-space gestures
type Touch interface {
	Down(x, y float64) bool
	Move(x, y float64)
	Up(x, y float64)
	LongPress(x, y float64)
}

// MouseTranslator maps terminal mouse events in cells to touch gestures in pixels
// Button 1 press/drag/release is down/move/up; buttons 2 and 3 are a long press;
// holding button 1 in place for the long-press delay is detected by Tick
type MouseTranslator struct {
	target Touch
	cellW  float64
	cellH  float64
	delay  time.Duration

	pressed bool
	fired   bool
	pressAt time.Time
	cellX   int
	cellY   int
}

// NewMouseTranslator creates a translator, non-positive metrics select the defaults
func NewMouseTranslator(target Touch, cellW, cellH float64) *MouseTranslator {
	if cellW <= 0 {
		cellW = parameter.CellWidthPx
	}
	if cellH <= 0 {
		cellH = parameter.CellHeightPx
	}
	return &MouseTranslator{
		target: target,
		cellW:  cellW,
		cellH:  cellH,
		delay:  parameter.LongPressDelay,
	}
}

// ToPixels returns the pixel center of a cell
func (t *MouseTranslator) ToPixels(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * t.cellW, (float64(cy) + 0.5) * t.cellH
}

// HandleEvent dispatches one mouse event, reporting whether it produced a gesture
func (t *MouseTranslator) HandleEvent(ev *tcell.EventMouse) bool {
	cx, cy := ev.Position()
	x, y := t.ToPixels(cx, cy)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0:
		if !t.pressed {
			t.pressed = true
			t.fired = false
			t.pressAt = ev.When()
			t.cellX, t.cellY = cx, cy
			t.target.Down(x, y)
			return true
		}
		if cx == t.cellX && cy == t.cellY {
			return false
		}
		t.cellX, t.cellY = cx, cy
		t.fired = true
		t.target.Move(x, y)
		return true

	case buttons&(tcell.Button2|tcell.Button3) != 0:
		if t.pressed {
			return false
		}
		t.target.LongPress(x, y)
		return true

	case buttons == tcell.ButtonNone && t.pressed:
		t.pressed = false
		t.target.Up(x, y)
		return true
	}
	return false
}

// Tick fires a long press when button 1 has been held on the same cell for the delay
func (t *MouseTranslator) Tick(now time.Time) bool {
	if !t.pressed || t.fired || now.Sub(t.pressAt) < t.delay {
		return false
	}
	t.fired = true
	x, y := t.ToPixels(t.cellX, t.cellY)
	t.target.LongPress(x, y)
	return true
}
