package render

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/callbubbles/bubble"
	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/vmath"
)

// Screen is the part of tcell.Screen the surface draws on
type Screen interface {
	Size() (int, int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

var (
	styleContact   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleUser      = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	styleHeld      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDragged   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLabel     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleAttractor = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleAccept    = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleAction    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleDrawer    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// TerminalSurface draws frame snapshots as cell discs, one cell standing for cellW×cellH pixels
type TerminalSurface struct {
	mu     sync.Mutex
	screen Screen
	cellW  float64
	cellH  float64
	status string
}

// NewTerminalSurface creates a surface, non-positive metrics select the defaults
func NewTerminalSurface(screen Screen, cellW, cellH float64) *TerminalSurface {
	if cellW <= 0 {
		cellW = parameter.CellWidthPx
	}
	if cellH <= 0 {
		cellH = parameter.CellHeightPx
	}
	return &TerminalSurface{screen: screen, cellW: cellW, cellH: cellH}
}

// PixelSize returns the screen extent in pixels
func (s *TerminalSurface) PixelSize() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.screen.Size()
	return float64(w) * s.cellW, float64(h) * s.cellH
}

// SetStatus sets the bottom line text
func (s *TerminalSurface) SetStatus(text string) {
	s.mu.Lock()
	s.status = text
	s.mu.Unlock()
}

// Lock acquires the screen for one frame, false when the screen is gone
func (s *TerminalSurface) Lock() bool {
	s.mu.Lock()
	if s.screen == nil {
		s.mu.Unlock()
		return false
	}
	return true
}

// Unlock presents the frame
func (s *TerminalSurface) Unlock() {
	s.screen.Show()
	s.mu.Unlock()
}

// Detach drops the screen; later frames are skipped
func (s *TerminalSurface) Detach() {
	s.mu.Lock()
	s.screen = nil
	s.mu.Unlock()
}

// Draw paints attractors below bubbles, then the action group on top; caller holds Lock
func (s *TerminalSurface) Draw(snap *bubble.Snapshot) {
	s.screen.Clear()

	for i := range snap.Attractors {
		a := &snap.Attractors[i]
		style := styleAttractor
		if a.Action == bubble.ActionAccept {
			style = styleAccept
		}
		s.ring(a.Position, a.Radius, style)
		s.label(a.Position, a.Name, style.Reverse(true))
	}

	for i := range snap.Bubbles {
		b := &snap.Bubbles[i]
		if b.Menu != nil && b.Menu.Dir != bubble.DirRing {
			s.area(b.Menu.Area, '░', styleDrawer)
		}
		s.disc(b.Position, b.Radius, '█', bubbleStyle(b))
		s.label(b.Position, b.Name, styleLabel)
		if b.Menu != nil {
			for _, slot := range b.Menu.Slots {
				s.disc(slot.Pos, slot.Radius, '▒', styleAction)
				s.label(slot.Pos, slot.Label, styleLabel)
			}
		}
	}

	if g := snap.Group; g != nil && g.Visibility > 0 {
		for i := range g.Actions {
			a := &g.Actions[i]
			r := a.Bounds.Width() / 2
			s.disc(a.Bounds.Center(), r, '▓', styleAction)
			s.label(a.Bounds.Center(), a.Name, styleLabel)
		}
	}

	if s.status != "" {
		_, h := s.screen.Size()
		s.text(0, h-1, s.status, styleStatus)
	}
}

func bubbleStyle(b *bubble.BubbleState) tcell.Style {
	switch {
	case b.Dragged:
		return styleDragged
	case b.OnHold:
		return styleHeld
	case b.Kind == bubble.KindUser:
		return styleUser
	default:
		return styleContact
	}
}

// cellOf returns the cell containing a pixel
func (s *TerminalSurface) cellOf(p vmath.Point2D) (int, int) {
	return int(math.Floor(p.X / s.cellW)), int(math.Floor(p.Y / s.cellH))
}

// center returns the pixel center of a cell
func (s *TerminalSurface) center(cx, cy int) vmath.Point2D {
	return vmath.P2((float64(cx)+0.5)*s.cellW, (float64(cy)+0.5)*s.cellH)
}

// visit calls fn for every on-screen cell overlapping the pixel rectangle
func (s *TerminalSurface) visit(b vmath.Bounds, fn func(cx, cy int)) {
	w, h := s.screen.Size()
	x0, y0 := s.cellOf(vmath.P2(b.Left, b.Top))
	x1, y1 := s.cellOf(vmath.P2(b.Right, b.Bottom))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w-1), min(y1, h-1)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			fn(cx, cy)
		}
	}
}

func (s *TerminalSurface) disc(c vmath.Point2D, r float64, ch rune, style tcell.Style) {
	if r <= 0 {
		return
	}
	filled := false
	rSq := r * r
	s.visit(vmath.BoundsAround(c, r), func(cx, cy int) {
		if vmath.P2DistSq(s.center(cx, cy), c) <= rSq {
			s.screen.SetContent(cx, cy, ch, nil, style)
			filled = true
		}
	})
	// Discs smaller than a cell still show up
	if !filled {
		s.point(c, ch, style)
	}
}

func (s *TerminalSurface) ring(c vmath.Point2D, r float64, style tcell.Style) {
	half := math.Max(s.cellW, s.cellH) / 2
	s.visit(vmath.BoundsAround(c, r+half), func(cx, cy int) {
		if math.Abs(vmath.P2Dist(s.center(cx, cy), c)-r) <= half {
			s.screen.SetContent(cx, cy, '○', nil, style)
		}
	})
}

func (s *TerminalSurface) area(b vmath.Bounds, ch rune, style tcell.Style) {
	s.visit(b, func(cx, cy int) {
		s.screen.SetContent(cx, cy, ch, nil, style)
	})
}

func (s *TerminalSurface) point(p vmath.Point2D, ch rune, style tcell.Style) {
	w, h := s.screen.Size()
	cx, cy := s.cellOf(p)
	if cx >= 0 && cy >= 0 && cx < w && cy < h {
		s.screen.SetContent(cx, cy, ch, nil, style)
	}
}

// label writes text centered on the cell row of p
func (s *TerminalSurface) label(p vmath.Point2D, text string, style tcell.Style) {
	if text == "" {
		return
	}
	runes := []rune(text)
	cx, cy := s.cellOf(p)
	s.text(cx-len(runes)/2, cy, text, style)
}

func (s *TerminalSurface) text(x, y int, text string, style tcell.Style) {
	w, h := s.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= 0 && x < w {
			s.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
