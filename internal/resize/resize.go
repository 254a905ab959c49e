// Package resize tracks column and row resize gestures started near a cell
// boundary.
package resize

import (
	"sync"

	"github.com/dhollis/gridview/internal/grid"
)

// minColumnWidth and minRowHeight stop a resize from collapsing a cell to
// nothing.
const (
	minColumnWidth = 8
	minRowHeight   = 4
)

// Kind distinguishes the two resize gestures.
type Kind uint8

const (
	// KindNone means no gesture.
	KindNone Kind = iota
	// KindColumn resizes a column width.
	KindColumn
	// KindRow resizes a row height.
	KindRow
)

// Edge identifies a resizable boundary and the geometry behind it.
type Edge struct {
	// Region is the region owning the column or row.
	Region grid.Region

	// Index is the column or row index whose trailing edge this is.
	Index int

	// Pos is the edge's pixel position (x for columns, y for rows).
	Pos int

	// Size is the current width or height of the column or row.
	Size int
}

// Surface is the geometry the controller reads boundaries from and applies
// new sizes to.
type Surface interface {
	// ColumnEdgeNear returns the column edge within dist pixels of x, if
	// any, for the region at the given y coordinate.
	ColumnEdgeNear(x, y, dist int) (Edge, bool)

	// RowEdgeNear returns the row edge within dist pixels of y, if any.
	RowEdgeNear(x, y, dist int) (Edge, bool)

	// SetColumnWidth applies a new column width.
	SetColumnWidth(region grid.Region, index, width int)

	// SetRowHeight applies a new row height.
	SetRowHeight(region grid.Region, index, height int)
}

// Controller owns the active resize gesture. The gesture exists only
// between Start and Stop; Stop always clears it, displacement or not.
type Controller struct {
	mu   sync.Mutex
	surf Surface

	// band is the pixel band around an edge within which a press resizes.
	band int

	active bool
	kind   Kind
	edge   Edge
	startX int
	startY int
}

// NewController creates a resize controller with the given eligibility band
// in pixels.
func NewController(surf Surface, band int) *Controller {
	if band < 1 {
		band = 1
	}
	return &Controller{surf: surf, band: band}
}

// HitTest reports whether the position is within the eligibility band of a
// column or row boundary.
func (c *Controller) HitTest(x, y int) bool {
	_, ok := c.Affordance(x, y)
	return ok
}

// Affordance returns the cursor to show at the position, if the position is
// resize-eligible.
func (c *Controller) Affordance(x, y int) (grid.Cursor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.surf.ColumnEdgeNear(x, y, c.band); ok {
		return grid.CursorResizeColumn, true
	}
	if _, ok := c.surf.RowEdgeNear(x, y, c.band); ok {
		return grid.CursorResizeRow, true
	}
	return grid.CursorDefault, false
}

// Start begins a resize gesture at the boundary nearest the position.
// Reports false when the position is not resize-eligible.
func (c *Controller) Start(x, y int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if edge, ok := c.surf.ColumnEdgeNear(x, y, c.band); ok {
		c.active = true
		c.kind = KindColumn
		c.edge = edge
		c.startX, c.startY = x, y
		return true
	}
	if edge, ok := c.surf.RowEdgeNear(x, y, c.band); ok {
		c.active = true
		c.kind = KindRow
		c.edge = edge
		c.startX, c.startY = x, y
		return true
	}
	return false
}

// Move applies the gesture's displacement as a new column width or row
// height. Outside a gesture it is a no-op.
func (c *Controller) Move(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return
	}
	switch c.kind {
	case KindColumn:
		width := c.edge.Size + (x - c.startX)
		if width < minColumnWidth {
			width = minColumnWidth
		}
		c.surf.SetColumnWidth(c.edge.Region, c.edge.Index, width)
	case KindRow:
		height := c.edge.Size + (y - c.startY)
		if height < minRowHeight {
			height = minRowHeight
		}
		c.surf.SetRowHeight(c.edge.Region, c.edge.Index, height)
	}
}

// Stop finalizes the gesture and clears all gesture state.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = false
	c.kind = KindNone
	c.edge = Edge{}
	c.startX, c.startY = 0, 0
}

// Active reports whether a resize gesture is in progress.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
