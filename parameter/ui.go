package parameter

import "time"

// Display defaults, density-independent
const (
	// DefaultDensity is the px per density-independent pixel
	DefaultDensity = 1.0

	// BubbleRadius is the resting radius of a contact or user bubble
	BubbleRadius = 40.0

	// ExpandedRadius is the radius of an expanded bubble ring menu
	ExpandedRadius = 110.0

	// AttractorRadius is the visual capture radius of an attractor icon
	AttractorRadius = 30.0
)

// Terminal cell metrics, mapping 1 cell to a pixel rectangle
const (
	CellWidthPx  = 10.0
	CellHeightPx = 20.0
)

// Action group fade
const (
	// ActionAppearTime is the fade-in duration of an action group
	ActionAppearTime = 400 * time.Millisecond

	// ActionDisappearTime is the fade-out duration of an action group
	ActionDisappearTime = 250 * time.Millisecond

	// MenuSlotCount is the number of slots on a ring menu
	MenuSlotCount = 4
)

// Incoming/outgoing call attractor placement as fractions of the viewport
const (
	AcceptAttractorX = 0.75
	RefuseAttractorX = 0.25
	CallAttractorY   = 2.0 / 3.0
	HangUpAttractorX = 0.5
	HangUpAttractorY = 0.9
)

// Action row shown above a grabbed bubble
const (
	// ActionMargin is the gap between the bubble and the row, and between row buttons
	ActionMargin = 10.0

	// DrawerThickness is the drawer width across its axis, relative to the bubble radius
	DrawerThickness = 1.5
)
