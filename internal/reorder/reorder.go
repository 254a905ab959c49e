// Package reorder tracks the column drag gesture used for header
// repositioning.
package reorder

import (
	"sync"

	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/input/mouse"
)

// Mover commits a finished drag and resolves drop targets.
type Mover interface {
	// TargetIndex resolves the column index a drop at the position lands on.
	TargetIndex(x, y int) (int, bool)

	// MoveColumn reorders the column at from to position to.
	MoveColumn(from, to int) bool
}

// Controller owns the column drag state. A press arms the gesture; it
// becomes a live drag once the pointer travels past the activation
// threshold. Drop and Cancel both clear the state unconditionally so a
// mouse-up with zero displacement never leaves a dangling gesture.
type Controller struct {
	mu   sync.Mutex
	cols Mover

	// threshold is the Manhattan distance a press must travel before the
	// drag activates.
	threshold int

	armed    bool
	dragging bool
	cell     grid.CellData
	start    mouse.Position
	current  mouse.Position
}

// NewController creates a reorder controller with the given activation
// threshold in pixels.
func NewController(cols Mover, threshold int) *Controller {
	if threshold < 1 {
		threshold = 1
	}
	return &Controller{cols: cols, threshold: threshold}
}

// Press arms a drag for the header cell at the position. The drag does not
// activate until the pointer moves past the threshold.
func (c *Controller) Press(cell grid.CellData, pos mouse.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.armed = true
	c.dragging = false
	c.cell = cell
	c.start = pos
	c.current = pos
}

// Move updates an armed or active drag with the pointer position,
// activating the drag once the threshold is crossed.
func (c *Controller) Move(pos mouse.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.armed {
		return
	}
	c.current = pos
	if !c.dragging && pos.Distance(c.start) > c.threshold {
		c.dragging = true
	}
}

// Drop commits an active drag to the column it was released over and clears
// all gesture state. An armed-but-inactive gesture is cleared without
// moving anything.
func (c *Controller) Drop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dragging {
		if to, ok := c.cols.TargetIndex(c.current.X, c.current.Y); ok && to != c.cell.Column {
			c.cols.MoveColumn(c.cell.Column, to)
		}
	}
	c.clear()
}

// Cancel abandons the gesture without moving anything.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

// clear resets gesture state (internal, caller holds the lock).
func (c *Controller) clear() {
	c.armed = false
	c.dragging = false
	c.cell = grid.CellData{}
	c.start = mouse.Position{}
	c.current = mouse.Position{}
}

// Dragging reports whether the drag has activated.
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

// Armed reports whether a press is waiting to become a drag.
func (c *Controller) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// Cell returns the header cell being dragged, if the drag is active.
func (c *Controller) Cell() (grid.CellData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dragging {
		return grid.CellData{}, false
	}
	return c.cell, true
}

// Position returns the pointer position of an active drag, for rendering
// the dragged header.
func (c *Controller) Position() (mouse.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dragging {
		return mouse.Position{}, false
	}
	return c.current, true
}
