// Package table implements the grid's spatial query surface: cell geometry,
// pixel hit testing, scrolling, sorting, and the view-order to data-order
// row mapping.
package table

import (
	"strconv"
	"sync"

	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/grid/column"
	"github.com/dhollis/gridview/internal/resize"
)

// Config sizes a new table.
type Config struct {
	// DefaultColumnWidth is the width given to new columns, in pixels.
	DefaultColumnWidth int

	// DefaultRowHeight is the height given to rows, in pixels.
	DefaultRowHeight int

	// RowHeaderWidth is the width of the index column.
	RowHeaderWidth int

	// HeaderHeight is the height of the column header row.
	HeaderHeight int
}

// DefaultConfig returns sensible sizing defaults.
func DefaultConfig() Config {
	return Config{
		DefaultColumnWidth: 12,
		DefaultRowHeight:   1,
		RowHeaderWidth:     6,
		HeaderHeight:       1,
	}
}

// Table is the concrete grid surface. It owns geometry and the row view
// order; column display state is owned by the embedded column manager.
type Table struct {
	mu   sync.RWMutex
	cfg  Config
	cols *column.Manager

	// data holds rows in data order; cells are addressed through dataIdx so
	// column reorder never rewrites rows.
	data    [][]any
	dataIdx []int

	// view holds data row indexes in display order (post sort).
	view []int

	// widths are per display column; rowHeights overrides the default
	// height per view row.
	widths     []int
	rowHeights map[int]int

	// scroll and viewport state, in pixels.
	scrollX   int
	scrollY   int
	viewportW int
	viewportH int

	surface *grid.Surface
}

// New creates a table over the given headers and data rows.
func New(cfg Config, headers []string, rows [][]any) *Table {
	if cfg.DefaultColumnWidth < 1 {
		cfg.DefaultColumnWidth = 1
	}
	if cfg.DefaultRowHeight < 1 {
		cfg.DefaultRowHeight = 1
	}

	t := &Table{
		cfg:        cfg,
		cols:       column.NewManager(headers),
		data:       rows,
		dataIdx:    make([]int, len(headers)),
		view:       make([]int, len(rows)),
		widths:     make([]int, len(headers)),
		rowHeights: make(map[int]int),
		surface:    grid.NewSurface("grid-canvas"),
	}
	for i := range t.dataIdx {
		t.dataIdx[i] = i
		t.widths[i] = cfg.DefaultColumnWidth
	}
	for i := range t.view {
		t.view[i] = i
	}
	return t
}

// FromRecords builds a table from string records, converting numeric-looking
// cells to float64 so sorting and highlighting treat them as numbers.
func FromRecords(cfg Config, headers []string, records [][]string) *Table {
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(headers))
		for j := range headers {
			if j >= len(rec) {
				continue
			}
			if f, err := strconv.ParseFloat(rec[j], 64); err == nil {
				row[j] = f
			} else {
				row[j] = rec[j]
			}
		}
		rows[i] = row
	}
	return New(cfg, headers, rows)
}

// Columns returns the column manager that owns display state.
func (t *Table) Columns() *column.Manager {
	return t.cols
}

// Surface returns the table's rendering surface identity handle.
func (t *Table) Surface() *grid.Surface {
	return t.surface
}

// SetViewport sets the widget's on-screen size in pixels.
func (t *Table) SetViewport(w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	t.viewportW = w
	t.viewportH = h
	t.clampScroll()
}

// Bounds returns the widget's bounding rectangle.
func (t *Table) Bounds() grid.Rect {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return grid.Rect{X: 0, Y: 0, Width: t.viewportW, Height: t.viewportH}
}

// InViewport reports whether the point is inside the interactive viewport.
func (t *Table) InViewport(x, y int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return x >= 0 && x < t.viewportW && y >= 0 && y < t.viewportH
}

// DefaultColumnWidth returns the default column width in pixels.
func (t *Table) DefaultColumnWidth() int {
	return t.cfg.DefaultColumnWidth
}

// DefaultRowHeight returns the default row height in pixels.
func (t *Table) DefaultRowHeight() int {
	return t.cfg.DefaultRowHeight
}

// PageWidth returns the width of one body page in pixels.
func (t *Table) PageWidth() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return max(t.viewportW-t.cfg.RowHeaderWidth, 1)
}

// PageHeight returns the height of one body page in pixels.
func (t *Table) PageHeight() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return max(t.viewportH-t.cfg.HeaderHeight, 1)
}

// PageRows returns the number of default-height rows in one page.
func (t *Table) PageRows() int {
	return max(t.PageHeight()/t.cfg.DefaultRowHeight, 1)
}

// RowCount returns the number of body rows.
func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.view)
}

// ColumnCount returns the number of body columns.
func (t *Table) ColumnCount() int {
	return t.cols.Len()
}

// ScrollX returns the horizontal scroll offset in pixels.
func (t *Table) ScrollX() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollX
}

// ScrollY returns the vertical scroll offset in pixels.
func (t *Table) ScrollY() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollY
}

// ScrollBy scrolls the viewport by a pixel delta, clamped to content.
func (t *Table) ScrollBy(dx, dy float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scrollX += int(dx)
	t.scrollY += int(dy)
	t.clampScroll()
}

// ScrollByPage scrolls vertically by one page.
func (t *Table) ScrollByPage(up bool) {
	page := t.PageHeight()
	if up {
		page = -page
	}
	t.ScrollBy(0, float64(page))
}

// clampScroll bounds scroll offsets to the content size (caller holds the
// lock).
func (t *Table) clampScroll() {
	maxX := t.contentWidth() - (t.viewportW - t.cfg.RowHeaderWidth)
	maxY := t.contentHeight() - (t.viewportH - t.cfg.HeaderHeight)
	if t.scrollX > maxX {
		t.scrollX = maxX
	}
	if t.scrollY > maxY {
		t.scrollY = maxY
	}
	if t.scrollX < 0 {
		t.scrollX = 0
	}
	if t.scrollY < 0 {
		t.scrollY = 0
	}
}

// contentWidth is the total body width in pixels (caller holds the lock).
func (t *Table) contentWidth() int {
	total := 0
	for _, w := range t.widths {
		total += w
	}
	return total
}

// contentHeight is the total body height in pixels (caller holds the lock).
func (t *Table) contentHeight() int {
	total := 0
	for i := range t.view {
		total += t.rowHeightOf(i)
	}
	return total
}

// frozen reports whether a display column is pinned. Column state carries
// its own lock, so this is safe with t.mu held.
func (t *Table) frozen(col int) bool {
	c, ok := t.cols.At(grid.RegionBody, col)
	return ok && c.Frozen
}

// rowHeightOf returns the height of a view row (caller holds the lock).
func (t *Table) rowHeightOf(viewRow int) int {
	if h, ok := t.rowHeights[viewRow]; ok {
		return h
	}
	return t.cfg.DefaultRowHeight
}

// DataRow maps a view row index to its data row index. Out-of-range view
// rows, such as a stale event raced against a resort, report false.
func (t *Table) DataRow(viewRow int) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if viewRow < 0 || viewRow >= len(t.view) {
		return 0, false
	}
	return t.view[viewRow], true
}

// Value returns the cell value at a view position.
func (t *Table) Value(viewRow, col int) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value(viewRow, col)
}

// value reads a cell (caller holds the lock).
func (t *Table) value(viewRow, col int) (any, bool) {
	if viewRow < 0 || viewRow >= len(t.view) || col < 0 || col >= len(t.dataIdx) {
		return nil, false
	}
	row := t.data[t.view[viewRow]]
	di := t.dataIdx[col]
	if di >= len(row) {
		return nil, false
	}
	return row[di], true
}

// Interface checks: the table is the concrete collaborator behind the
// resize controller's surface.
var _ resize.Surface = (*Table)(nil)
