// Package selection tracks the rectangular cell selection defined by an
// anchor cell and an end cell.
package selection

import (
	"sync"

	"github.com/dhollis/gridview/internal/grid"
)

// Range is an inclusive rectangular cell region in view coordinates.
type Range struct {
	// StartRow and StartCol are the top-left corner.
	StartRow int
	StartCol int

	// EndRow and EndCol are the bottom-right corner.
	EndRow int
	EndCol int
}

// Contains reports whether the view cell lies inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

// Manager owns the selection state. It is the single writer of the anchor
// and end cells; the event dispatcher only calls its operations.
type Manager struct {
	mu      sync.Mutex
	anchor  *grid.CellData
	end     *grid.CellData
	pressed bool
}

// NewManager creates an empty selection manager.
func NewManager() *Manager {
	return &Manager{}
}

// Start begins a new selection gesture: the anchor and end both move to the
// cell and hover extension is armed until Release.
func (m *Manager) Start(cell grid.CellData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := cell
	m.anchor = &c
	e := cell
	m.end = &e
	m.pressed = true
}

// Hover extends the end of an in-progress gesture to the hovered cell.
// Outside a gesture it is a no-op.
func (m *Manager) Hover(cell grid.CellData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.pressed || m.anchor == nil {
		return
	}
	c := cell
	m.end = &c
}

// Release completes an in-progress gesture. The selected range survives;
// only the hover extension stops.
func (m *Manager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pressed = false
}

// Interact applies the shared click/Enter interaction at the cell: with
// shift held and an anchor set the end extends to the cell, otherwise the
// selection restarts at the cell.
func (m *Manager) Interact(cell grid.CellData, shift bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if shift && m.anchor != nil {
		c := cell
		m.end = &c
		return
	}
	c := cell
	m.anchor = &c
	e := cell
	m.end = &e
}

// ExtendTo moves the selection end to the cell without touching the anchor.
// Without an anchor it is a no-op.
func (m *Manager) ExtendTo(cell grid.CellData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.anchor == nil {
		return
	}
	c := cell
	m.end = &c
}

// Clear removes the selection entirely.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.anchor = nil
	m.end = nil
	m.pressed = false
}

// Anchor returns the anchor cell, if a selection exists.
func (m *Manager) Anchor() (grid.CellData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.anchor == nil {
		return grid.CellData{}, false
	}
	return *m.anchor, true
}

// End returns the end cell, if a selection exists.
func (m *Manager) End() (grid.CellData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.end == nil {
		return grid.CellData{}, false
	}
	return *m.end, true
}

// Active reports whether a selection exists. No anchor means no selection.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anchor != nil
}

// Range returns the normalized selected rectangle.
func (m *Manager) Range() (Range, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.anchor == nil || m.end == nil {
		return Range{}, false
	}
	r := Range{
		StartRow: m.anchor.Row, StartCol: m.anchor.Column,
		EndRow: m.end.Row, EndCol: m.end.Column,
	}
	if r.StartRow > r.EndRow {
		r.StartRow, r.EndRow = r.EndRow, r.StartRow
	}
	if r.StartCol > r.EndCol {
		r.StartCol, r.EndCol = r.EndCol, r.StartCol
	}
	return r, true
}
