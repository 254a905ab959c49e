package events

import (
	"strings"

	"github.com/dhollis/gridview/internal/comm"
	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/input/mouse"
)

// MouseDown routes a press to the resize, reorder, or selection controller.
func (m *Manager) MouseDown(ev mouse.Event) {
	if m.Disposed() {
		return
	}
	x, y := ev.Position.X, ev.Position.Y

	resizable := m.deps.Resize.HitTest(x, y)

	headerPress := false
	if !resizable {
		if cell, ok := m.deps.Grid.HitTest(x, y); ok && cell.Region.IsHeader() {
			headerPress = true
			if m.canDragColumn(cell) {
				m.deps.Reorder.Press(cell, ev.Position)
			}
		}
	}

	// A press interpreted as a header gesture never starts a resize.
	if resizable && !headerPress {
		m.deps.Resize.Start(x, y)
		return
	}

	if !resizable && !headerPress {
		cell, ok := m.deps.Grid.HitTest(x, y)
		if !ok || cell.Region != grid.RegionBody {
			return
		}
		m.deps.Focus.SetFocus(cell)
		if ev.Modifiers.HasShift() && m.deps.Selection.Active() {
			m.deps.Selection.Interact(cell, true)
		} else {
			m.deps.Selection.Start(cell)
		}
	}
}

// canDragColumn decides whether a header press arms a column drag. Presses
// within the drag threshold of a column boundary stay available for resize;
// the corner header's first column is never draggable.
func (m *Manager) canDragColumn(cell grid.CellData) bool {
	if cell.Region == grid.RegionCornerHeader && cell.Column == 0 {
		return false
	}
	if cell.Region != grid.RegionColumnHeader {
		return false
	}
	th := m.cfg.DragThreshold
	return cell.DeltaX > th && cell.Width-cell.DeltaX > th
}

// MouseMove updates the active gesture and the hover state.
func (m *Manager) MouseMove(ev mouse.Event) {
	if m.Disposed() {
		return
	}
	x, y := ev.Position.X, ev.Position.Y

	// An active resize consumes moves exclusively.
	if m.deps.Resize.Active() {
		m.deps.Resize.Move(x, y)
		return
	}

	// A drag without the primary button held is stale.
	if ev.Buttons != mouse.ButtonsPrimary && (m.deps.Reorder.Armed() || m.deps.Reorder.Dragging()) {
		m.deps.Reorder.Cancel()
	}

	if cursor, ok := m.deps.Resize.Affordance(x, y); ok {
		m.deps.View.SetCursor(cursor)
	} else if m.deps.Reorder.Dragging() {
		m.deps.View.SetCursor(grid.CursorGrab)
	} else {
		m.deps.View.SetCursor(grid.CursorDefault)
	}

	if !m.deps.Grid.InViewport(x, y) {
		return
	}

	m.deps.Reorder.Move(ev.Position)

	cell, ok := m.deps.Grid.HitTest(x, y)
	if !ok {
		return
	}
	if m.setHovered(cell) {
		m.deps.Bus.Publish(comm.NewCellHover(cell.Region.String(), cell.Row, cell.Column))
		m.deps.Tooltip.Schedule(cell)
	}
	m.deps.Selection.Hover(cell)
}

// MouseUp completes the gesture in progress. An active resize is exclusive
// with every other completion; otherwise the release finishes selection,
// may toggle a header sort or open a URL, and always drops the column drag.
func (m *Manager) MouseUp(ev mouse.Event) {
	if m.Disposed() {
		return
	}
	x, y := ev.Position.X, ev.Position.Y

	if m.deps.Resize.Active() {
		m.deps.Resize.Stop()
		return
	}

	m.deps.Selection.Release()

	cell, hit := m.deps.Grid.HitTest(x, y)

	// A sort toggle requires a real header click: the spatial test, the
	// primary button, and the event target being the grid's own surface.
	// Events that bubbled from interior widgets carry a foreign target.
	if hit && cell.Region == grid.RegionColumnHeader &&
		ev.Button == mouse.ButtonPrimary &&
		ev.Target == any(m.deps.Grid.Surface()) &&
		!m.deps.Reorder.Dragging() {
		m.deps.Columns.ToggleSort(cell.Region, cell.Column)
	}

	if hit && cell.Region == grid.RegionBody && m.cfg.AutoOpenURL {
		if last, ok := m.lastHovered(); ok && last.Same(cell) {
			if url, found := findURL(cell.Value); found {
				m.deps.Bus.Publish(comm.NewOpenURL(url))
			}
		}
	}

	m.deps.Reorder.Drop()
}

// MouseLeave tears down hover state once the pointer has truly left the
// grid. Leaving a child element while still inside the bounds, or leaving
// mid-drag, is ignored.
func (m *Manager) MouseLeave(ev mouse.Event) {
	if m.Disposed() {
		return
	}

	if m.deps.Grid.Bounds().Contains(ev.Position.X, ev.Position.Y) ||
		ev.Buttons != mouse.ButtonsNone {
		return
	}

	m.deps.Tooltip.Cancel()
	if m.clearHovered() {
		m.deps.Bus.Publish(comm.NewCellHoverClear())
	}
	m.deps.View.SetCursor(grid.CursorDefault)
	m.deps.Reorder.Cancel()
	m.deps.Focus.Clear()
}

// DoubleClick publishes double-click notifications for body cells. Header
// regions and the index column never notify, and a stale view row that no
// longer maps to a data row is a no-op.
func (m *Manager) DoubleClick(ev mouse.Event) {
	if m.Disposed() {
		return
	}

	cell, ok := m.deps.Grid.HitTest(ev.Position.X, ev.Position.Y)
	if !ok || cell.Region != grid.RegionBody {
		return
	}

	row, ok := m.deps.Grid.DataRow(cell.Row)
	if !ok {
		return
	}

	name := ""
	if col, ok := m.deps.Columns.At(grid.RegionBody, cell.Column); ok {
		name = col.Name
	}

	if m.cfg.EmitDoubleClick {
		m.deps.Bus.Publish(comm.NewCellDoubleClick(row, cell.Column, name))
	}
	if m.cfg.EmitActionDetail {
		m.deps.Bus.Publish(comm.NewActionDetail(comm.ActionDoubleClick, row, cell.Column, name))
	}
}

// findURL extracts the first http(s) URL from a cell value's text.
func findURL(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	for _, field := range strings.Fields(s) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			return field, true
		}
	}
	return "", false
}
