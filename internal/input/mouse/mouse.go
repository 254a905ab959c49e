// Package mouse defines pointer and wheel events delivered to the grid's
// event dispatcher.
package mouse

import (
	"github.com/dhollis/gridview/internal/input/key"
)

// Button identifies the button a press or release refers to.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonPrimary is the primary (left) button.
	ButtonPrimary
	// ButtonSecondary is the secondary (right) button.
	ButtonSecondary
	// ButtonAuxiliary is the middle button.
	ButtonAuxiliary
)

// String returns a human-readable button name.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonAuxiliary:
		return "auxiliary"
	default:
		return "none"
	}
}

// Buttons is the bit set of buttons held at event time.
type Buttons uint8

// ButtonsNone means no buttons are held.
const ButtonsNone Buttons = 0

const (
	// ButtonsPrimary is the primary button bit.
	ButtonsPrimary Buttons = 1 << iota

	// ButtonsSecondary is the secondary button bit.
	ButtonsSecondary

	// ButtonsAuxiliary is the middle button bit.
	ButtonsAuxiliary
)

// Has reports whether the bit set contains the given buttons.
func (b Buttons) Has(flag Buttons) bool {
	return b&flag != 0
}

// Position is a pixel coordinate relative to the grid origin.
type Position struct {
	X int
	Y int
}

// Distance returns the Manhattan distance between two positions. Manhattan
// distance is cheap and close enough for press/drag proximity checks.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event is a pointer event.
type Event struct {
	// Position is where the event occurred.
	Position Position

	// Button is the button that changed state, ButtonNone for pure moves.
	Button Button

	// Buttons is the bit set of buttons held when the event fired. For a
	// release the released button is already absent.
	Buttons Buttons

	// Modifiers are the keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Target is the identity handle of the surface that produced the event.
	// Events that bubbled from interior widgets carry a different handle
	// than the grid's own surface.
	Target any
}

// DeltaMode declares the unit of a wheel event's deltas.
type DeltaMode uint8

const (
	// DeltaPixel means deltas are raw pixels.
	DeltaPixel DeltaMode = iota
	// DeltaLine means deltas are rows/columns of the default cell size.
	DeltaLine
	// DeltaPage means deltas are viewport pages.
	DeltaPage
)

// String returns a human-readable delta mode name.
func (m DeltaMode) String() string {
	switch m {
	case DeltaPixel:
		return "pixel"
	case DeltaLine:
		return "line"
	case DeltaPage:
		return "page"
	default:
		return "unknown"
	}
}

// WheelEvent is a scroll wheel event.
type WheelEvent struct {
	// Position is where the wheel event occurred.
	Position Position

	// DeltaX and DeltaY are the scroll amounts in Mode units.
	DeltaX float64
	DeltaY float64

	// Mode declares the unit of the deltas.
	Mode DeltaMode

	// Modifiers are the keyboard modifiers held during the event.
	Modifiers key.Modifier
}
