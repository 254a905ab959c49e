package table

import (
	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/grid/column"
)

// The table forwards column display operations to its column manager so
// callers can treat it as the one concrete grid collaborator. Sorting is
// the exception: ToggleSort lives in order.go because it also rebuilds the
// view order.

// At returns the column at the given position.
func (t *Table) At(region grid.Region, index int) (*column.Column, bool) {
	return t.cols.At(region, index)
}

// ToggleHighlight flips a highlighter on the column at the position.
func (t *Table) ToggleHighlight(region grid.Region, index int, flag column.Highlight) bool {
	return t.cols.ToggleHighlight(region, index, flag)
}

// SetPrecision sets the fractional digit count on one column.
func (t *Table) SetPrecision(region grid.Region, index, digits int) bool {
	return t.cols.SetPrecision(region, index, digits)
}

// SetAllPrecision sets the fractional digit count on every column.
func (t *Table) SetAllPrecision(digits int) {
	t.cols.SetAllPrecision(digits)
}

// ToggleFrozen flips the pinned state of the column at the position.
func (t *Table) ToggleFrozen(region grid.Region, index int) bool {
	return t.cols.ToggleFrozen(region, index)
}
