// Package render is the tcell presentation layer: it translates terminal
// input into grid events and draws the table, selection, and highlighters.
package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dhollis/gridview/internal/events"
	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/input/key"
	"github.com/dhollis/gridview/internal/input/mouse"
)

// wheelLines is the number of rows one wheel tick scrolls.
const wheelLines = 3

// Input adapts tcell events into grid input events for attached handlers.
// It implements events.Source.
type Input struct {
	mu       sync.Mutex
	surface  *grid.Surface
	handlers map[int]events.Handler
	next     int

	buttons mouse.Buttons
	last    mouse.Position
	click   clickTracker
}

// NewInput creates an input adapter producing events tagged with the given
// surface handle.
func NewInput(surface *grid.Surface) *Input {
	return &Input{
		surface:  surface,
		handlers: make(map[int]events.Handler),
		click:    newClickTracker(400*time.Millisecond, 2),
	}
}

// Attach registers a handler and returns its detach func.
func (in *Input) Attach(h events.Handler) func() {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.next++
	id := in.next
	in.handlers[id] = h

	return func() {
		in.mu.Lock()
		defer in.mu.Unlock()
		delete(in.handlers, id)
	}
}

// snapshot returns the attached handlers (callers must not hold the lock).
func (in *Input) snapshot() []events.Handler {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := make([]events.Handler, 0, len(in.handlers))
	for _, h := range in.handlers {
		out = append(out, h)
	}
	return out
}

// Feed translates one tcell event and delivers it to attached handlers.
// Key events report whether any handler consumed them.
func (in *Input) Feed(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventMouse:
		in.feedMouse(tev)
		return true
	case *tcell.EventKey:
		return in.feedKey(tev)
	case *tcell.EventFocus:
		if !tev.Focused {
			in.feedUnfocus()
		}
		return true
	default:
		return false
	}
}

// feedMouse splits a tcell mouse event into press, release, move, wheel,
// and double-click deliveries.
func (in *Input) feedMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := mouse.Position{X: x, Y: y}
	mods := convertModifiers(ev.Modifiers())
	mask := ev.Buttons()

	if wheel := wheelEvent(mask, pos, mods); wheel != nil {
		for _, h := range in.snapshot() {
			h.Wheel(*wheel)
		}
		return
	}

	in.mu.Lock()
	prev := in.buttons
	held := convertButtons(mask)
	in.buttons = held
	in.last = pos
	doubled := false
	if held.Has(mouse.ButtonsPrimary) && !prev.Has(mouse.ButtonsPrimary) {
		doubled = in.click.record(pos, ev.When()) == 2
	}
	in.mu.Unlock()

	base := mouse.Event{
		Position:  pos,
		Buttons:   held,
		Modifiers: mods,
		Target:    in.surface,
	}

	for _, h := range in.snapshot() {
		switch {
		case held == prev:
			h.MouseMove(base)
		default:
			in.deliverTransitions(h, base, prev, held)
			if doubled {
				h.DoubleClick(base)
			}
		}
	}
}

// deliverTransitions emits a press or release for each button bit that
// changed between two held-button sets.
func (in *Input) deliverTransitions(h events.Handler, base mouse.Event, prev, held mouse.Buttons) {
	transitions := []struct {
		bit mouse.Buttons
		btn mouse.Button
	}{
		{mouse.ButtonsPrimary, mouse.ButtonPrimary},
		{mouse.ButtonsSecondary, mouse.ButtonSecondary},
		{mouse.ButtonsAuxiliary, mouse.ButtonAuxiliary},
	}
	for _, tr := range transitions {
		ev := base
		ev.Button = tr.btn
		switch {
		case held.Has(tr.bit) && !prev.Has(tr.bit):
			h.MouseDown(ev)
		case !held.Has(tr.bit) && prev.Has(tr.bit):
			h.MouseUp(ev)
		}
	}
}

// feedUnfocus synthesizes a mouse leave when the terminal loses focus.
func (in *Input) feedUnfocus() {
	in.mu.Lock()
	in.buttons = mouse.ButtonsNone
	in.mu.Unlock()

	ev := mouse.Event{
		Position: mouse.Position{X: -1, Y: -1},
		Target:   in.surface,
	}
	for _, h := range in.snapshot() {
		h.MouseLeave(ev)
	}
}

// feedKey translates a tcell key event.
func (in *Input) feedKey(ev *tcell.EventKey) bool {
	kev, ok := convertKey(ev)
	if !ok {
		return false
	}
	consumed := false
	for _, h := range in.snapshot() {
		if h.KeyDown(kev) {
			consumed = true
		}
	}
	return consumed
}

// wheelEvent builds a line-mode wheel event from wheel button bits, nil for
// non-wheel events.
func wheelEvent(mask tcell.ButtonMask, pos mouse.Position, mods key.Modifier) *mouse.WheelEvent {
	var dx, dy float64
	switch {
	case mask&tcell.WheelUp != 0:
		dy = -wheelLines
	case mask&tcell.WheelDown != 0:
		dy = wheelLines
	case mask&tcell.WheelLeft != 0:
		dx = -wheelLines
	case mask&tcell.WheelRight != 0:
		dx = wheelLines
	default:
		return nil
	}
	return &mouse.WheelEvent{
		Position:  pos,
		DeltaX:    dx,
		DeltaY:    dy,
		Mode:      mouse.DeltaLine,
		Modifiers: mods,
	}
}

// convertButtons maps tcell's held-button mask to the grid's bit set.
func convertButtons(mask tcell.ButtonMask) mouse.Buttons {
	var b mouse.Buttons
	if mask&tcell.Button1 != 0 {
		b |= mouse.ButtonsPrimary
	}
	if mask&tcell.Button2 != 0 {
		b |= mouse.ButtonsSecondary
	}
	if mask&tcell.Button3 != 0 {
		b |= mouse.ButtonsAuxiliary
	}
	return b
}

// convertModifiers maps tcell modifiers to grid key modifiers.
func convertModifiers(mods tcell.ModMask) key.Modifier {
	var m key.Modifier
	if mods&tcell.ModShift != 0 {
		m |= key.ModShift
	}
	if mods&tcell.ModCtrl != 0 {
		m |= key.ModCtrl
	}
	if mods&tcell.ModAlt != 0 {
		m |= key.ModAlt
	}
	return m
}

// convertKey maps a tcell key event to a grid key event.
func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertModifiers(ev.Modifiers())
	switch ev.Key() {
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods), true
	default:
		return key.Event{}, false
	}
}
