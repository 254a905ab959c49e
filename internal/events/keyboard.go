package events

import (
	"github.com/dhollis/gridview/internal/focus"
	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/grid/column"
	"github.com/dhollis/gridview/internal/input/key"
)

// KeyDown resolves the key to a logical grid code and, when one exists,
// consumes the event and runs it through the key handlers in fixed
// order. Each handler inspects the code and ignores codes that are not its
// own. Unrecognized keys are left unconsumed for the host.
func (m *Manager) KeyDown(ev key.Event) bool {
	if m.Disposed() {
		return false
	}

	code, digit := key.Resolve(ev)
	if code == key.CodeNone {
		return false
	}

	focused, hasFocus := m.deps.Focus.Focused()
	shift := ev.Modifiers.HasShift()

	m.keyInteract(code, focused, hasFocus, shift)
	m.keyHighlight(code, focused, hasFocus)
	m.keyFreeze(code, focused, hasFocus)
	m.keyPrecision(code, digit, focused, hasFocus, shift)
	m.keyNavigate(code, focused, hasFocus, shift)
	return true
}

// keyInteract handles Enter: the same selection interaction a pointer click
// performs, targeted at the focused cell. Without shift, or without an
// anchor, the anchor restarts at the focused cell.
func (m *Manager) keyInteract(code key.Code, focused grid.CellData, hasFocus, shift bool) {
	if code != key.CodeInteract || !hasFocus {
		return
	}
	m.deps.Selection.Interact(focused, shift)
}

// keyHighlight toggles a highlighter on the focused column.
func (m *Manager) keyHighlight(code key.Code, focused grid.CellData, hasFocus bool) {
	if !code.IsHighlighter() || !hasFocus {
		return
	}

	var flag column.Highlight
	switch code {
	case key.CodeHeatmap:
		flag = column.HighlightHeatmap
	case key.CodeUniqueEntries:
		flag = column.HighlightUnique
	case key.CodeDataBars:
		flag = column.HighlightDataBars
	}
	m.deps.Columns.ToggleHighlight(focused.Region, focused.Column, flag)
}

// keyFreeze flips the pinned state of the focused column so it stops
// following horizontal scroll.
func (m *Manager) keyFreeze(code key.Code, focused grid.CellData, hasFocus bool) {
	if code != key.CodeFreeze || !hasFocus {
		return
	}
	m.deps.Columns.ToggleFrozen(focused.Region, focused.Column)
}

// keyPrecision applies a digit key as display precision: shifted to the
// focused column only, unshifted to every column.
func (m *Manager) keyPrecision(code key.Code, digit int, focused grid.CellData, hasFocus, shift bool) {
	if code != key.CodePrecision {
		return
	}
	if shift {
		if hasFocus {
			m.deps.Columns.SetPrecision(focused.Region, focused.Column, digit)
		}
		return
	}
	m.deps.Columns.SetAllPrecision(digit)
}

// keyNavigate moves focus for arrow and page keys. With nothing focused,
// page keys scroll the viewport instead. Shift extends the selection end to
// the new focus; without an anchor the previous focus becomes the anchor so
// a shift+arrow starts a range without an initial Enter.
func (m *Manager) keyNavigate(code key.Code, focused grid.CellData, hasFocus, shift bool) {
	if !code.IsNavigation() {
		return
	}

	if !hasFocus {
		switch code {
		case key.CodePageUp:
			m.deps.Grid.ScrollByPage(true)
		case key.CodePageDown:
			m.deps.Grid.ScrollByPage(false)
		}
		return
	}

	var dir focus.Direction
	switch code {
	case key.CodeMoveUp:
		dir = focus.DirUp
	case key.CodeMoveDown:
		dir = focus.DirDown
	case key.CodeMoveLeft:
		dir = focus.DirLeft
	case key.CodeMoveRight:
		dir = focus.DirRight
	case key.CodePageUp:
		dir = focus.DirPageUp
	case key.CodePageDown:
		dir = focus.DirPageDown
	}

	cell, ok := m.deps.Focus.Navigate(dir)
	if !ok || !shift {
		return
	}
	if !m.deps.Selection.Active() {
		m.deps.Selection.Interact(focused, false)
	}
	m.deps.Selection.ExtendTo(cell)
}
