package bubble

import (
	"math"

	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/vmath"
)

// MenuStyle selects the geometry of an expanded bubble's action menu
type MenuStyle uint8

const (
	// MenuLinear is a straight drawer opening away from the nearest screen edge
	MenuLinear MenuStyle = iota
	// MenuRing places slots at the four compass points around the bubble
	MenuRing
)

// MenuItem is one action entry; Slot orders items along the drawer or around the ring
type MenuItem struct {
	Action Action `json:"action"`
	Slot   int    `json:"slot"`
	Icon   string `json:"icon,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Menu describes the actions a bubble kind exposes when expanded
type Menu struct {
	Style MenuStyle
	Items []MenuItem
}

// ContactMenu is the drawer of a remote-party bubble
var ContactMenu = Menu{
	Style: MenuLinear,
	Items: []MenuItem{
		{Action: ActionHold, Slot: 0, Icon: "hold", Label: "Hold"},
		{Action: ActionMessage, Slot: 1, Icon: "message", Label: "Message"},
		{Action: ActionTransfer, Slot: 2, Icon: "transfer", Label: "Transfer"},
		{Action: ActionHangUp, Slot: 3, Icon: "hangup", Label: "Hang up"},
	},
}

// UserMenu is the ring of the local user bubble: top, right, bottom, left
var UserMenu = Menu{
	Style: MenuRing,
	Items: []MenuItem{
		{Action: ActionHangUp, Slot: 0, Icon: "hangup", Label: "Hang up"},
		{Action: ActionMute, Slot: 1, Icon: "mic", Label: "Mute"},
		{Action: ActionRecord, Slot: 2, Icon: "record", Label: "Record"},
		{Action: ActionHold, Slot: 3, Icon: "hold", Label: "Hold"},
	},
}

// Direction is the screen region that decided a drawer orientation
type Direction uint8

const (
	DirLeft   Direction = iota // Bubble in the left third, drawer extends right
	DirRight                   // Bubble in the right third, drawer extends left
	DirTop                     // Bubble in the top band, drawer extends down
	DirBottom                  // Bubble in the bottom band, drawer extends up
	DirRing                    // Ring menu, no orientation
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirTop:
		return "top"
	case DirBottom:
		return "bottom"
	default:
		return "ring"
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MenuSlot is a resolved menu item with its hit circle
type MenuSlot struct {
	Action Action        `json:"action"`
	Icon   string        `json:"icon,omitempty"`
	Label  string        `json:"label,omitempty"`
	Pos    vmath.Point2D `json:"pos"`
	Radius float64       `json:"radius"`
}

// MenuLayout is the geometry of an expanded menu in viewport pixels
type MenuLayout struct {
	Dir    Direction     `json:"dir"`
	Center vmath.Point2D `json:"center"`
	Area   vmath.Bounds  `json:"area"`
	Slots  []MenuSlot    `json:"slots"`
}

// SlotAt returns the index of the slot containing the point, -1 when none
func (l *MenuLayout) SlotAt(x, y float64) int {
	p := vmath.P2(x, y)
	for i := range l.Slots {
		r := l.Slots[i].Radius
		if vmath.P2DistSq(l.Slots[i].Pos, p) < r*r {
			return i
		}
	}
	return -1
}

// Layout computes the menu geometry for a bubble of radius r (and ring radius ringR) centered at c
// inside a w×h viewport; ActionHold items resolve to ActionUnhold when onHold
func Layout(m Menu, c vmath.Point2D, r, ringR, w, h float64, onHold bool) MenuLayout {
	n := slotCount(m.Items)
	if m.Style == MenuRing {
		return ringLayout(m, c, r, ringR, w, h, onHold, n)
	}
	return linearLayout(m, c, r, w, h, onHold, n)
}

// Direction choice by thirds, the exact center third splits at half height
func drawerDirection(c vmath.Point2D, w, h float64) Direction {
	switch {
	case c.X < w/3:
		return DirLeft
	case c.X > 2*w/3:
		return DirRight
	case c.Y < h/3:
		return DirTop
	case c.Y > 2*h/3:
		return DirBottom
	case c.Y < h/2:
		return DirTop
	default:
		return DirBottom
	}
}

func linearLayout(m Menu, c vmath.Point2D, r, w, h float64, onHold bool, n int) MenuLayout {
	dir := drawerDirection(c, w, h)

	var axis vmath.Point2D
	var length float64
	switch dir {
	case DirLeft:
		axis, length = vmath.P2(1, 0), 2*w/3
	case DirRight:
		axis, length = vmath.P2(-1, 0), 2*w/3
	case DirTop:
		axis, length = vmath.P2(0, 1), h/2
	default:
		axis, length = vmath.P2(0, -1), h/2
	}
	length = math.Max(length, r)

	half := parameter.DrawerThickness * r / 2
	end := vmath.P2Add(c, vmath.P2Scale(axis, length))
	area := vmath.Bounds{
		Left:   math.Min(c.X, end.X) - half*math.Abs(axis.Y),
		Top:    math.Min(c.Y, end.Y) - half*math.Abs(axis.X),
		Right:  math.Max(c.X, end.X) + half*math.Abs(axis.Y),
		Bottom: math.Max(c.Y, end.Y) + half*math.Abs(axis.X),
	}

	step := (length - r) / float64(n)
	slotR := math.Min(step/2, half)

	slots := make([]MenuSlot, 0, len(m.Items))
	for _, it := range m.Items {
		d := r + (float64(it.Slot)+0.5)*step
		slots = append(slots, resolveSlot(it, vmath.P2Add(c, vmath.P2Scale(axis, d)), slotR, onHold))
	}

	return MenuLayout{Dir: dir, Center: c, Area: area, Slots: slots}
}

func ringLayout(m Menu, c vmath.Point2D, r, ringR, w, h float64, onHold bool, n int) MenuLayout {
	center := vmath.P2(clampInside(c.X, ringR, w), clampInside(c.Y, ringR, h))

	dist := (r + ringR) / 2
	slotR := (ringR - r) / 2
	if n > parameter.MenuSlotCount {
		slotR = math.Min(slotR, dist*math.Sin(math.Pi/float64(n)))
	}
	stepAngle := 2 * math.Pi / float64(max(n, parameter.MenuSlotCount))

	slots := make([]MenuSlot, 0, len(m.Items))
	for _, it := range m.Items {
		angle := -math.Pi/2 + float64(it.Slot)*stepAngle
		slots = append(slots, resolveSlot(it, vmath.P2FromAngle(center, angle, dist), slotR, onHold))
	}

	return MenuLayout{Dir: DirRing, Center: center, Area: vmath.BoundsAround(center, ringR), Slots: slots}
}

func resolveSlot(it MenuItem, pos vmath.Point2D, radius float64, onHold bool) MenuSlot {
	action, icon, label := it.Action, it.Icon, it.Label
	if action == ActionHold && onHold {
		action, icon, label = ActionUnhold, "unhold", "Unhold"
	}
	return MenuSlot{Action: action, Icon: icon, Label: label, Pos: pos, Radius: radius}
}

func slotCount(items []MenuItem) int {
	n := 1
	for _, it := range items {
		if it.Slot+1 > n {
			n = it.Slot + 1
		}
	}
	return n
}

// clampInside keeps a circle of radius r centered on v within [0, size], centering when it cannot fit
func clampInside(v, r, size float64) float64 {
	if size < 2*r {
		return size / 2
	}
	return vmath.Clamp(v, r, size-r)
}
