// Package focus tracks the single focused cell and computes directional
// focus movement.
package focus

import (
	"sync"

	"github.com/dhollis/gridview/internal/grid"
)

// Direction is a focus navigation direction.
type Direction uint8

const (
	// DirUp moves focus one row up.
	DirUp Direction = iota
	// DirDown moves focus one row down.
	DirDown
	// DirLeft moves focus one column left.
	DirLeft
	// DirRight moves focus one column right.
	DirRight
	// DirPageUp moves focus one viewport page up.
	DirPageUp
	// DirPageDown moves focus one viewport page down.
	DirPageDown
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirPageUp:
		return "page-up"
	case DirPageDown:
		return "page-down"
	default:
		return "unknown"
	}
}

// Geometry is the grid shape the manager navigates against.
type Geometry interface {
	// RowCount returns the number of body rows.
	RowCount() int

	// ColumnCount returns the number of body columns.
	ColumnCount() int

	// PageRows returns the number of body rows in one viewport page.
	PageRows() int

	// CellAt resolves a body cell by view row and column.
	CellAt(row, col int) (grid.CellData, bool)
}

// Manager owns the focused cell. Keyboard navigation and click focus are
// mutually exclusive sources of truth; whichever wrote last wins.
type Manager struct {
	mu   sync.Mutex
	geo  Geometry
	cell *grid.CellData
}

// NewManager creates a focus manager navigating the given geometry.
func NewManager(geo Geometry) *Manager {
	return &Manager{geo: geo}
}

// Focused returns the focused cell, if any.
func (m *Manager) Focused() (grid.CellData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cell == nil {
		return grid.CellData{}, false
	}
	return *m.cell, true
}

// SetFocus moves focus to the cell. Header cells never take focus.
func (m *Manager) SetFocus(cell grid.CellData) {
	if cell.Region != grid.RegionBody {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c := cell
	m.cell = &c
}

// Clear removes focus.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cell = nil
}

// Navigate moves focus in the given direction, clamping at the grid edges,
// and returns the newly focused cell. Without a focused cell it reports
// false and moves nothing.
func (m *Manager) Navigate(dir Direction) (grid.CellData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cell == nil {
		return grid.CellData{}, false
	}

	row, col := m.cell.Row, m.cell.Column
	switch dir {
	case DirUp:
		row--
	case DirDown:
		row++
	case DirLeft:
		col--
	case DirRight:
		col++
	case DirPageUp:
		row -= m.geo.PageRows()
	case DirPageDown:
		row += m.geo.PageRows()
	}

	row = clamp(row, 0, m.geo.RowCount()-1)
	col = clamp(col, 0, m.geo.ColumnCount()-1)

	cell, ok := m.geo.CellAt(row, col)
	if !ok {
		return *m.cell, true
	}
	m.cell = &cell
	return cell, true
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
