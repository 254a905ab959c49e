package table

import (
	"github.com/dhollis/gridview/internal/grid"
)

// HitTest resolves the cell under a pixel coordinate. It reports false
// outside the viewport and past the last row or column.
func (t *Table) HitTest(x, y int) (grid.CellData, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if x < 0 || x >= t.viewportW || y < 0 || y >= t.viewportH {
		return grid.CellData{}, false
	}

	inRowHeader := x < t.cfg.RowHeaderWidth
	inColHeader := y < t.cfg.HeaderHeight

	switch {
	case inRowHeader && inColHeader:
		return grid.CellData{
			Region: grid.RegionCornerHeader,
			Width:  t.cfg.RowHeaderWidth,
			Height: t.cfg.HeaderHeight,
			DeltaX: x,
			DeltaY: y,
		}, true

	case inColHeader:
		col, screenX, w, ok := t.columnAtScreen(x)
		if !ok {
			return grid.CellData{}, false
		}
		name := ""
		if c, ok := t.cols.At(grid.RegionBody, col); ok {
			name = c.Name
		}
		return grid.CellData{
			Region: grid.RegionColumnHeader,
			Column: col,
			X:      screenX,
			Width:  w,
			Height: t.cfg.HeaderHeight,
			DeltaX: x - screenX,
			DeltaY: y,
			Value:  name,
		}, true

	case inRowHeader:
		row, y0, h, ok := t.rowAt(y - t.cfg.HeaderHeight + t.scrollY)
		if !ok {
			return grid.CellData{}, false
		}
		screenY := y0 - t.scrollY + t.cfg.HeaderHeight
		return grid.CellData{
			Region: grid.RegionRowHeader,
			Row:    row,
			Y:      screenY,
			Width:  t.cfg.RowHeaderWidth,
			Height: h,
			DeltaX: x,
			DeltaY: y - screenY,
			Value:  t.view[row],
		}, true

	default:
		col, screenX, w, okC := t.columnAtScreen(x)
		row, y0, h, okR := t.rowAt(y - t.cfg.HeaderHeight + t.scrollY)
		if !okC || !okR {
			return grid.CellData{}, false
		}
		screenY := y0 - t.scrollY + t.cfg.HeaderHeight
		value, _ := t.value(row, col)
		return grid.CellData{
			Region: grid.RegionBody,
			Row:    row,
			Column: col,
			X:      screenX,
			Y:      screenY,
			Width:  w,
			Height: h,
			DeltaX: x - screenX,
			DeltaY: y - screenY,
			Value:  value,
		}, true
	}
}

// CellAt resolves a body cell by view row and column, producing the same
// geometry a hit test would.
func (t *Table) CellAt(row, col int) (grid.CellData, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if row < 0 || row >= len(t.view) || col < 0 || col >= len(t.widths) {
		return grid.CellData{}, false
	}

	y0 := 0
	for i := 0; i < row; i++ {
		y0 += t.rowHeightOf(i)
	}
	value, _ := t.value(row, col)
	return grid.CellData{
		Region: grid.RegionBody,
		Row:    row,
		Column: col,
		X:      t.columnScreenX(col),
		Y:      y0 - t.scrollY + t.cfg.HeaderHeight,
		Width:  t.widths[col],
		Height: t.rowHeightOf(row),
		Value:  value,
	}, true
}

// HeaderCell returns the column-header cell for a display column. Header
// geometry depends only on column widths, so it resolves even when the
// table has no rows.
func (t *Table) HeaderCell(col int) (grid.CellData, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if col < 0 || col >= len(t.widths) {
		return grid.CellData{}, false
	}
	name := ""
	if c, ok := t.cols.At(grid.RegionBody, col); ok {
		name = c.Name
	}
	return grid.CellData{
		Region: grid.RegionColumnHeader,
		Column: col,
		X:      t.columnScreenX(col),
		Width:  t.widths[col],
		Height: t.cfg.HeaderHeight,
		Value:  name,
	}, true
}

// columnScreenX computes a column's on-screen x: scrolled for ordinary
// columns, pinned at the unscrolled offset for frozen ones (caller holds
// the lock).
func (t *Table) columnScreenX(col int) int {
	x0 := 0
	for i := 0; i < col; i++ {
		x0 += t.widths[i]
	}
	if t.frozen(col) {
		return x0 + t.cfg.RowHeaderWidth
	}
	return x0 - t.scrollX + t.cfg.RowHeaderWidth
}

// columnAtScreen locates the column under a screen x coordinate. Frozen
// columns keep their unscrolled offsets and sit on top of scrolled
// content, so they are checked first and a scrolled column is never
// reported at a position where it is occluded (caller holds the lock).
func (t *Table) columnAtScreen(x int) (col, screenX, width int, ok bool) {
	sx := x - t.cfg.RowHeaderWidth
	if sx < 0 {
		return 0, 0, 0, false
	}

	off := 0
	for i, w := range t.widths {
		if t.frozen(i) && sx >= off && sx < off+w {
			return i, off + t.cfg.RowHeaderWidth, w, true
		}
		off += w
	}

	c, x0, w, found := t.columnAt(sx + t.scrollX)
	if !found || t.frozen(c) {
		return 0, 0, 0, false
	}
	return c, x0 - t.scrollX + t.cfg.RowHeaderWidth, w, true
}

// columnAt locates the column containing a body-space x coordinate (caller
// holds the lock). It returns the column index, its body-space offset, and
// its width.
func (t *Table) columnAt(bx int) (col, x0, width int, ok bool) {
	if bx < 0 {
		return 0, 0, 0, false
	}
	x := 0
	for i, w := range t.widths {
		if bx < x+w {
			return i, x, w, true
		}
		x += w
	}
	return 0, 0, 0, false
}

// rowAt locates the view row containing a body-space y coordinate (caller
// holds the lock).
func (t *Table) rowAt(by int) (row, y0, height int, ok bool) {
	if by < 0 {
		return 0, 0, 0, false
	}
	y := 0
	for i := range t.view {
		h := t.rowHeightOf(i)
		if by < y+h {
			return i, y, h, true
		}
		y += h
	}
	return 0, 0, 0, false
}
