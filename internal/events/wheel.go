package events

import (
	"fmt"

	"github.com/dhollis/gridview/internal/input/mouse"
)

// Wheel converts a wheel event's deltas to pixels and scrolls the viewport.
// Pixel-mode deltas pass through; line mode scales by the default cell
// size; page mode scales by the viewport page size. Any other delta mode is
// unreachable input and panics rather than guessing a conversion.
func (m *Manager) Wheel(ev mouse.WheelEvent) {
	if m.Disposed() {
		return
	}

	dx, dy := ev.DeltaX, ev.DeltaY
	switch ev.Mode {
	case mouse.DeltaPixel:
		// Raw pixels.
	case mouse.DeltaLine:
		dx *= float64(m.deps.Grid.DefaultColumnWidth())
		dy *= float64(m.deps.Grid.DefaultRowHeight())
	case mouse.DeltaPage:
		dx *= float64(m.deps.Grid.PageWidth())
		dy *= float64(m.deps.Grid.PageHeight())
	default:
		panic(fmt.Sprintf("events: unhandled wheel delta mode %d", ev.Mode))
	}

	m.deps.Grid.ScrollBy(dx, dy)
}
