// Package column holds per-column display state and the manager that owns it.
package column

import (
	"sync"

	"github.com/dhollis/gridview/internal/grid"
)

// SortDirection is the current sort order of a column.
type SortDirection uint8

const (
	// SortNone means the column is unsorted.
	SortNone SortDirection = iota
	// SortAscending sorts smallest first.
	SortAscending
	// SortDescending sorts largest first.
	SortDescending
)

// String returns a human-readable sort direction.
func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	default:
		return "none"
	}
}

// Toggle advances the sort direction: none -> ascending -> descending -> none.
func (d SortDirection) Toggle() SortDirection {
	switch d {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

// Highlight is a bit set of value highlighters enabled on a column.
type Highlight uint8

const (
	// HighlightNone disables all highlighters.
	HighlightNone Highlight = 0

	// HighlightHeatmap shades cell backgrounds by normalized value.
	HighlightHeatmap Highlight = 1 << iota

	// HighlightUnique assigns a stable color per distinct value.
	HighlightUnique

	// HighlightDataBars draws proportional bars behind values.
	HighlightDataBars
)

// Has reports whether h contains the given highlighter.
func (h Highlight) Has(flag Highlight) bool {
	return h&flag != 0
}

// Toggle returns h with the given highlighter flipped.
func (h Highlight) Toggle(flag Highlight) Highlight {
	return h ^ flag
}

// Renderer selects how a column's cells are drawn.
type Renderer uint8

const (
	// RendererDefault draws the formatted value as text.
	RendererDefault Renderer = iota
	// RendererBars draws data bars behind the value.
	RendererBars
	// RendererCustom formats values through a user script.
	RendererCustom
)

// Column is the display state of one grid column, identified by its stable
// position (region + index).
type Column struct {
	// Region is the region the column belongs to.
	Region grid.Region

	// Index is the column's position within the region.
	Index int

	// Name is the header label.
	Name string

	// Sort is the current sort direction.
	Sort SortDirection

	// Frozen pins the column against horizontal scrolling.
	Frozen bool

	// Hidden removes the column from the rendered view.
	Hidden bool

	// Precision is the number of fractional digits shown for numeric values.
	// Negative means unset (render as-is).
	Precision int

	// Highlights is the set of enabled highlighters.
	Highlights Highlight

	// Renderer selects the cell renderer.
	Renderer Renderer

	// FormatterSrc is the Lua source of the custom formatter, empty unless
	// Renderer is RendererCustom.
	FormatterSrc string
}

// Manager owns the columns of a grid and is the only writer of their
// display state.
type Manager struct {
	mu   sync.RWMutex
	cols []*Column
}

// NewManager creates a manager for body columns with the given header names.
func NewManager(names []string) *Manager {
	cols := make([]*Column, len(names))
	for i, name := range names {
		cols[i] = &Column{
			Region:    grid.RegionBody,
			Index:     i,
			Name:      name,
			Precision: -1,
		}
	}
	return &Manager{cols: cols}
}

// Len returns the number of columns.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cols)
}

// At returns the column at the given position.
func (m *Manager) At(region grid.Region, index int) (*Column, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.at(region, index)
}

// at looks up a column (internal, no lock). Column headers and body cells
// share column identity.
func (m *Manager) at(region grid.Region, index int) (*Column, bool) {
	if region != grid.RegionBody && region != grid.RegionColumnHeader {
		return nil, false
	}
	if index < 0 || index >= len(m.cols) {
		return nil, false
	}
	return m.cols[index], true
}

// ToggleSort advances the sort direction of the column at the position and
// clears the direction on every other column. It returns the new direction.
func (m *Manager) ToggleSort(region grid.Region, index int) (SortDirection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.at(region, index)
	if !ok {
		return SortNone, false
	}
	next := col.Sort.Toggle()
	for _, c := range m.cols {
		c.Sort = SortNone
	}
	col.Sort = next
	return next, true
}

// ToggleHighlight flips a highlighter on the column at the position.
func (m *Manager) ToggleHighlight(region grid.Region, index int, flag Highlight) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.at(region, index)
	if !ok {
		return false
	}
	col.Highlights = col.Highlights.Toggle(flag)
	return true
}

// SetPrecision sets the fractional digit count on one column.
func (m *Manager) SetPrecision(region grid.Region, index, digits int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.at(region, index)
	if !ok {
		return false
	}
	col.Precision = digits
	return true
}

// SetAllPrecision sets the fractional digit count on every column.
func (m *Manager) SetAllPrecision(digits int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.cols {
		c.Precision = digits
	}
}

// ToggleFrozen flips the pinned state of a column and returns the new
// state.
func (m *Manager) ToggleFrozen(region grid.Region, index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.at(region, index)
	if !ok {
		return false
	}
	col.Frozen = !col.Frozen
	return true
}

// SetFrozen pins or unpins a column.
func (m *Manager) SetFrozen(region grid.Region, index int, frozen bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.at(region, index)
	if !ok {
		return false
	}
	col.Frozen = frozen
	return true
}

// Move reorders the column at from to position to. Indexes are rewritten so
// position identity stays consistent with slice order.
func (m *Manager) Move(from, to int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if from < 0 || from >= len(m.cols) || to < 0 || to >= len(m.cols) {
		return false
	}
	if from == to {
		return true
	}
	col := m.cols[from]
	m.cols = append(m.cols[:from], m.cols[from+1:]...)
	rest := append([]*Column{}, m.cols[to:]...)
	m.cols = append(append(m.cols[:to:to], col), rest...)
	for i, c := range m.cols {
		c.Index = i
	}
	return true
}

// Sorted returns the column currently carrying a sort direction, if any.
func (m *Manager) Sorted() (*Column, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.cols {
		if c.Sort != SortNone {
			return c, true
		}
	}
	return nil, false
}

// Columns returns the columns in display order. The slice is a copy; the
// pointed-to columns are shared.
func (m *Manager) Columns() []*Column {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Column, len(m.cols))
	copy(out, m.cols)
	return out
}
