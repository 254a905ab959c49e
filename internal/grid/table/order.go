package table

import (
	"sort"
	"strings"

	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/grid/column"
)

// TargetIndex resolves the column a drop at the pixel position lands on.
func (t *Table) TargetIndex(x, y int) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if x < t.cfg.RowHeaderWidth {
		return 0, false
	}
	col, _, _, ok := t.columnAtScreen(x)
	return col, ok
}

// MoveColumn reorders the column at from to position to. Widths and the
// display-to-data index follow the column.
func (t *Table) MoveColumn(from, to int) bool {
	if !t.cols.Move(from, to) {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if from < 0 || from >= len(t.dataIdx) || to < 0 || to >= len(t.dataIdx) || from == to {
		return from == to
	}
	moveInt(t.dataIdx, from, to)
	moveInt(t.widths, from, to)
	return true
}

// moveInt moves s[from] to position to, shifting the rest.
func moveInt(s []int, from, to int) {
	v := s[from]
	if from < to {
		copy(s[from:], s[from+1:to+1])
	} else {
		copy(s[to+1:], s[to:from])
	}
	s[to] = v
}

// ToggleSort advances the sort direction of the column at the position and
// resorts the view order.
func (t *Table) ToggleSort(region grid.Region, index int) bool {
	dir, ok := t.cols.ToggleSort(region, index)
	if !ok {
		return false
	}
	t.resort(index, dir)
	return true
}

// resort rebuilds the view order for a sort direction on a display column.
func (t *Table) resort(col int, dir column.SortDirection) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.view {
		t.view[i] = i
	}
	if dir == column.SortNone || col < 0 || col >= len(t.dataIdx) {
		return
	}

	di := t.dataIdx[col]
	sort.SliceStable(t.view, func(a, b int) bool {
		va, vb := cellOf(t.data[t.view[a]], di), cellOf(t.data[t.view[b]], di)
		if dir == column.SortDescending {
			return valueLess(vb, va)
		}
		return valueLess(va, vb)
	})
}

// cellOf reads a data cell tolerating ragged rows.
func cellOf(row []any, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}

// valueLess orders cell values: numbers before strings, nil last.
func valueLess(a, b any) bool {
	if b == nil {
		return a != nil
	}
	if a == nil {
		return false
	}
	fa, aNum := a.(float64)
	fb, bNum := b.(float64)
	switch {
	case aNum && bNum:
		return fa < fb
	case aNum:
		return true
	case bNum:
		return false
	default:
		return strings.Compare(asString(a), asString(b)) < 0
	}
}

// asString renders a cell value for ordering.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
