package table

import (
	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/resize"
)

// ColumnEdgeNear returns the column edge within dist pixels of x, if any.
// Column edges are draggable from the header row and the body alike.
func (t *Table) ColumnEdgeNear(x, y, dist int) (resize.Edge, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if y < 0 || y >= t.viewportH || x < t.cfg.RowHeaderWidth {
		return resize.Edge{}, false
	}

	sx := x - t.cfg.RowHeaderWidth
	edge := 0
	for i, w := range t.widths {
		edge += w
		screenEdge := edge - t.scrollX
		if t.frozen(i) {
			screenEdge = edge
		}
		d := sx - screenEdge
		if d < 0 {
			d = -d
		}
		if d <= dist {
			return resize.Edge{
				Region: grid.RegionBody,
				Index:  i,
				Pos:    screenEdge + t.cfg.RowHeaderWidth,
				Size:   w,
			}, true
		}
	}
	return resize.Edge{}, false
}

// RowEdgeNear returns the row edge within dist pixels of y, if any. Row
// edges are draggable from the row header only, so body drags keep
// selecting cells.
func (t *Table) RowEdgeNear(x, y, dist int) (resize.Edge, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if x < 0 || x >= t.cfg.RowHeaderWidth || y < t.cfg.HeaderHeight {
		return resize.Edge{}, false
	}

	by := y - t.cfg.HeaderHeight + t.scrollY
	edge := 0
	for i := range t.view {
		h := t.rowHeightOf(i)
		edge += h
		d := by - edge
		if d < 0 {
			d = -d
		}
		if d <= dist {
			return resize.Edge{
				Region: grid.RegionBody,
				Index:  i,
				Pos:    edge - t.scrollY + t.cfg.HeaderHeight,
				Size:   h,
			}, true
		}
		if by < edge {
			break
		}
	}
	return resize.Edge{}, false
}

// SetColumnWidth applies a new width to a body column.
func (t *Table) SetColumnWidth(region grid.Region, index, width int) {
	if region != grid.RegionBody && region != grid.RegionColumnHeader {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.widths) || width < 1 {
		return
	}
	t.widths[index] = width
	t.clampScroll()
}

// SetRowHeight applies a new height to a view row.
func (t *Table) SetRowHeight(region grid.Region, index, height int) {
	if region != grid.RegionBody && region != grid.RegionRowHeader {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.view) || height < 1 {
		return
	}
	t.rowHeights[index] = height
	t.clampScroll()
}

// ColumnWidth returns the current width of a body column.
func (t *Table) ColumnWidth(index int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if index < 0 || index >= len(t.widths) {
		return 0
	}
	return t.widths[index]
}

// RowHeight returns the current height of a view row.
func (t *Table) RowHeight(index int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rowHeightOf(index)
}
