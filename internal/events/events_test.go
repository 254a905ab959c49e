package events

import (
	"testing"

	"github.com/dhollis/gridview/internal/comm"
	"github.com/dhollis/gridview/internal/focus"
	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/grid/column"
	"github.com/dhollis/gridview/internal/input/key"
	"github.com/dhollis/gridview/internal/input/mouse"
)

// fakeGrid is a scriptable spatial model.
type fakeGrid struct {
	cells      map[[2]int]grid.CellData
	bounds     grid.Rect
	viewport   grid.Rect
	surface    *grid.Surface
	colWidth   int
	rowHeight  int
	pageWidth  int
	pageHeight int
	dataRows   int

	scrolledX, scrolledY float64
	pagedUp, pagedDown   int
}

func newFakeGrid() *fakeGrid {
	return &fakeGrid{
		cells:      make(map[[2]int]grid.CellData),
		bounds:     grid.Rect{X: 0, Y: 0, Width: 100, Height: 50},
		viewport:   grid.Rect{X: 0, Y: 0, Width: 100, Height: 50},
		surface:    grid.NewSurface("grid"),
		colWidth:   12,
		rowHeight:  20,
		pageWidth:  400,
		pageHeight: 500,
		dataRows:   100,
	}
}

func (g *fakeGrid) put(x, y int, cell grid.CellData) {
	g.cells[[2]int{x, y}] = cell
}

func (g *fakeGrid) HitTest(x, y int) (grid.CellData, bool) {
	cell, ok := g.cells[[2]int{x, y}]
	return cell, ok
}

func (g *fakeGrid) InViewport(x, y int) bool   { return g.viewport.Contains(x, y) }
func (g *fakeGrid) Bounds() grid.Rect          { return g.bounds }
func (g *fakeGrid) Surface() *grid.Surface     { return g.surface }
func (g *fakeGrid) DefaultColumnWidth() int    { return g.colWidth }
func (g *fakeGrid) DefaultRowHeight() int      { return g.rowHeight }
func (g *fakeGrid) PageWidth() int             { return g.pageWidth }
func (g *fakeGrid) PageHeight() int            { return g.pageHeight }
func (g *fakeGrid) ScrollBy(dx, dy float64)    { g.scrolledX += dx; g.scrolledY += dy }
func (g *fakeGrid) ScrollByPage(up bool) {
	if up {
		g.pagedUp++
	} else {
		g.pagedDown++
	}
}

func (g *fakeGrid) DataRow(viewRow int) (int, bool) {
	if viewRow < 0 || viewRow >= g.dataRows {
		return 0, false
	}
	return viewRow, true
}

type fakeSelection struct {
	started, hovered, released int
	interacted, extended       int
	lastCell                   grid.CellData
	lastShift                  bool
	extendedTo                 grid.CellData
	active                     bool
}

func (s *fakeSelection) Start(cell grid.CellData) { s.started++; s.lastCell = cell; s.active = true }
func (s *fakeSelection) Hover(cell grid.CellData) { s.hovered++; s.lastCell = cell }
func (s *fakeSelection) Release()                 { s.released++ }
func (s *fakeSelection) Interact(cell grid.CellData, shift bool) {
	s.interacted++
	s.lastCell = cell
	s.lastShift = shift
	s.active = true
}
func (s *fakeSelection) ExtendTo(cell grid.CellData) { s.extended++; s.extendedTo = cell }
func (s *fakeSelection) Active() bool                { return s.active }

type fakeFocus struct {
	focused  grid.CellData
	hasFocus bool
	next     grid.CellData
	canMove  bool

	setCalls, clearCalls, navCalls int
	lastDir                        focus.Direction
}

func (f *fakeFocus) Focused() (grid.CellData, bool) { return f.focused, f.hasFocus }
func (f *fakeFocus) SetFocus(cell grid.CellData)    { f.setCalls++; f.focused = cell; f.hasFocus = true }
func (f *fakeFocus) Clear()                         { f.clearCalls++; f.hasFocus = false }
func (f *fakeFocus) Navigate(dir focus.Direction) (grid.CellData, bool) {
	f.navCalls++
	f.lastDir = dir
	if !f.canMove {
		return f.focused, f.hasFocus
	}
	return f.next, true
}

type fakeResizer struct {
	resizable  bool
	affordance bool
	active     bool

	started, moved, stopped int
}

func (r *fakeResizer) HitTest(x, y int) bool { return r.resizable }
func (r *fakeResizer) Affordance(x, y int) (grid.Cursor, bool) {
	if !r.affordance {
		return grid.CursorDefault, false
	}
	return grid.CursorResizeColumn, true
}
func (r *fakeResizer) Start(x, y int) bool { r.started++; r.active = true; return true }
func (r *fakeResizer) Move(x, y int)       { r.moved++ }
func (r *fakeResizer) Stop()               { r.stopped++; r.active = false }
func (r *fakeResizer) Active() bool        { return r.active }

type fakeReorder struct {
	armed, dragging bool

	pressed, moved, dropped, canceled int
}

func (r *fakeReorder) Press(cell grid.CellData, pos mouse.Position) { r.pressed++; r.armed = true }
func (r *fakeReorder) Move(pos mouse.Position)                      { r.moved++ }
func (r *fakeReorder) Drop()                                        { r.dropped++; r.armed = false; r.dragging = false }
func (r *fakeReorder) Cancel()                                      { r.canceled++; r.armed = false; r.dragging = false }
func (r *fakeReorder) Dragging() bool                               { return r.dragging }
func (r *fakeReorder) Armed() bool                                  { return r.armed }

type fakeTooltip struct {
	scheduled, canceled, hidden int
}

func (t *fakeTooltip) Schedule(cell grid.CellData) { t.scheduled++ }
func (t *fakeTooltip) Cancel()                     { t.canceled++ }
func (t *fakeTooltip) Hide()                       { t.hidden++ }

type fakeColumns struct {
	cols map[int]*column.Column

	sortToggles      []int
	highlightToggles []column.Highlight
	precisionCalls   []int
	allPrecision     []int
	freezeToggles    []int
}

func newFakeColumns(names ...string) *fakeColumns {
	fc := &fakeColumns{cols: make(map[int]*column.Column)}
	for i, name := range names {
		fc.cols[i] = &column.Column{Region: grid.RegionBody, Index: i, Name: name, Precision: -1}
	}
	return fc
}

func (c *fakeColumns) At(region grid.Region, index int) (*column.Column, bool) {
	col, ok := c.cols[index]
	return col, ok
}

func (c *fakeColumns) ToggleSort(region grid.Region, index int) bool {
	c.sortToggles = append(c.sortToggles, index)
	return true
}

func (c *fakeColumns) ToggleHighlight(region grid.Region, index int, flag column.Highlight) bool {
	c.highlightToggles = append(c.highlightToggles, flag)
	return true
}

func (c *fakeColumns) SetPrecision(region grid.Region, index, digits int) bool {
	c.precisionCalls = append(c.precisionCalls, digits)
	return true
}

func (c *fakeColumns) SetAllPrecision(digits int) {
	c.allPrecision = append(c.allPrecision, digits)
}

func (c *fakeColumns) ToggleFrozen(region grid.Region, index int) bool {
	c.freezeToggles = append(c.freezeToggles, index)
	return true
}

type fakeView struct {
	cursors []grid.Cursor
}

func (v *fakeView) SetCursor(c grid.Cursor) { v.cursors = append(v.cursors, c) }

type fakeSource struct {
	attached int
	detached int
}

func (s *fakeSource) Attach(h Handler) func() {
	s.attached++
	return func() { s.detached++ }
}

// harness bundles a dispatcher with all its fakes.
type harness struct {
	grid    *fakeGrid
	sel     *fakeSelection
	foc     *fakeFocus
	resize  *fakeResizer
	reorder *fakeReorder
	tooltip *fakeTooltip
	cols    *fakeColumns
	bus     *recordingBus
	view    *fakeView
	source  *fakeSource
	mgr     *Manager
}

type recordingBus struct {
	messages []comm.Message
}

func (b *recordingBus) Publish(msg comm.Message) { b.messages = append(b.messages, msg) }

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()

	h := &harness{
		grid:    newFakeGrid(),
		sel:     &fakeSelection{},
		foc:     &fakeFocus{},
		resize:  &fakeResizer{},
		reorder: &fakeReorder{},
		tooltip: &fakeTooltip{},
		cols:    newFakeColumns("city", "population", "area"),
		bus:     &recordingBus{},
		view:    &fakeView{},
		source:  &fakeSource{},
	}

	mgr, err := New(cfg, Deps{
		Grid:      h.grid,
		Selection: h.sel,
		Focus:     h.foc,
		Resize:    h.resize,
		Reorder:   h.reorder,
		Tooltip:   h.tooltip,
		Columns:   h.cols,
		Bus:       h.bus,
		View:      h.view,
		Post:      func(f func()) { f() },
	}, h.source)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.mgr = mgr
	return h
}

func bodyCell(row, col int) grid.CellData {
	return grid.CellData{Region: grid.RegionBody, Row: row, Column: col, Width: 12, Height: 1}
}

func headerCell(col int) grid.CellData {
	return grid.CellData{Region: grid.RegionColumnHeader, Row: -1, Column: col, Width: 12, Height: 1, DeltaX: 6}
}

func TestNewMissingDependency(t *testing.T) {
	_, err := New(Config{}, Deps{})
	if err == nil {
		t.Fatal("New() with empty deps should fail")
	}
}

func TestMouseDownBodyStartsSelection(t *testing.T) {
	h := newHarness(t, Config{})
	h.grid.put(10, 10, bodyCell(2, 1))

	h.mgr.MouseDown(mouse.Event{Position: mouse.Position{X: 10, Y: 10}, Button: mouse.ButtonPrimary, Buttons: mouse.ButtonsPrimary})

	if h.foc.setCalls != 1 {
		t.Errorf("SetFocus calls = %d, want 1", h.foc.setCalls)
	}
	if h.sel.started != 1 {
		t.Errorf("Selection.Start calls = %d, want 1", h.sel.started)
	}
	if got := h.sel.lastCell; !got.Same(bodyCell(2, 1)) {
		t.Errorf("selection started at %v, want row 2 col 1", got)
	}
}

func TestMouseDownShiftExtendsActiveSelection(t *testing.T) {
	h := newHarness(t, Config{})
	h.grid.put(10, 10, bodyCell(2, 1))
	h.sel.active = true

	h.mgr.MouseDown(mouse.Event{
		Position:  mouse.Position{X: 10, Y: 10},
		Button:    mouse.ButtonPrimary,
		Buttons:   mouse.ButtonsPrimary,
		Modifiers: key.ModShift,
	})

	if h.sel.interacted != 1 {
		t.Errorf("Interact calls = %d, want 1", h.sel.interacted)
	}
	if !h.sel.lastShift {
		t.Error("Interact should carry shift")
	}
	if h.sel.started != 0 {
		t.Errorf("Start calls = %d, want 0", h.sel.started)
	}
}

func TestMouseDownResizeIsExclusive(t *testing.T) {
	h := newHarness(t, Config{})
	h.grid.put(10, 10, bodyCell(2, 1))
	h.resize.resizable = true

	h.mgr.MouseDown(mouse.Event{Position: mouse.Position{X: 10, Y: 10}, Button: mouse.ButtonPrimary, Buttons: mouse.ButtonsPrimary})

	if h.resize.started != 1 {
		t.Errorf("Resize.Start calls = %d, want 1", h.resize.started)
	}
	if h.sel.started != 0 || h.foc.setCalls != 0 || h.reorder.pressed != 0 {
		t.Error("resize press must not reach selection, focus, or reorder")
	}
}

func TestMouseDownHeaderArmsDrag(t *testing.T) {
	tests := []struct {
		name string
		cell grid.CellData
		want int
	}{
		{"mid header arms", headerCell(1), 1},
		{"near left boundary stays for resize", grid.CellData{Region: grid.RegionColumnHeader, Column: 1, Width: 12, DeltaX: 2}, 0},
		{"near right boundary stays for resize", grid.CellData{Region: grid.RegionColumnHeader, Column: 1, Width: 12, DeltaX: 10}, 0},
		{"corner index column never drags", grid.CellData{Region: grid.RegionCornerHeader, Column: 0, Width: 12, DeltaX: 6}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Config{DragThreshold: 4})
			h.grid.put(10, 0, tt.cell)

			h.mgr.MouseDown(mouse.Event{Position: mouse.Position{X: 10, Y: 0}, Button: mouse.ButtonPrimary, Buttons: mouse.ButtonsPrimary})

			if h.reorder.pressed != tt.want {
				t.Errorf("Reorder.Press calls = %d, want %d", h.reorder.pressed, tt.want)
			}
			if h.sel.started != 0 {
				t.Error("header press must not start selection")
			}
		})
	}
}

func TestMouseMoveCancelsStaleDrag(t *testing.T) {
	tests := []struct {
		name     string
		buttons  mouse.Buttons
		canceled int
	}{
		{"primary held keeps drag", mouse.ButtonsPrimary, 0},
		{"no buttons cancels", mouse.ButtonsNone, 1},
		{"secondary added cancels", mouse.ButtonsPrimary | mouse.ButtonsSecondary, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Config{})
			h.reorder.dragging = true

			h.mgr.MouseMove(mouse.Event{Position: mouse.Position{X: 10, Y: 10}, Buttons: tt.buttons})

			if h.reorder.canceled != tt.canceled {
				t.Errorf("Reorder.Cancel calls = %d, want %d", h.reorder.canceled, tt.canceled)
			}
		})
	}
}

func TestMouseMoveResizeIsExclusive(t *testing.T) {
	h := newHarness(t, Config{})
	h.grid.put(10, 10, bodyCell(2, 1))
	h.resize.active = true

	h.mgr.MouseMove(mouse.Event{Position: mouse.Position{X: 10, Y: 10}, Buttons: mouse.ButtonsPrimary})

	if h.resize.moved != 1 {
		t.Errorf("Resize.Move calls = %d, want 1", h.resize.moved)
	}
	if h.sel.hovered != 0 || h.tooltip.scheduled != 0 || len(h.bus.messages) != 0 {
		t.Error("active resize must consume the move exclusively")
	}
}

func TestMouseMoveHoverPublishesOncePerCell(t *testing.T) {
	h := newHarness(t, Config{})
	h.grid.put(10, 10, bodyCell(2, 1))
	h.grid.put(11, 10, bodyCell(2, 1))
	h.grid.put(30, 10, bodyCell(2, 2))

	ev := mouse.Event{Position: mouse.Position{X: 10, Y: 10}}
	h.mgr.MouseMove(ev)
	ev.Position.X = 11
	h.mgr.MouseMove(ev)
	ev.Position.X = 30
	h.mgr.MouseMove(ev)

	var hovers int
	for _, msg := range h.bus.messages {
		if msg.Topic == comm.TopicCellHover {
			hovers++
		}
	}
	if hovers != 2 {
		t.Errorf("hover messages = %d, want 2 (one per distinct cell)", hovers)
	}
	if h.tooltip.scheduled != 2 {
		t.Errorf("tooltip schedules = %d, want 2", h.tooltip.scheduled)
	}
}

func TestMouseMoveOutsideViewportSkipsHover(t *testing.T) {
	h := newHarness(t, Config{})
	h.grid.viewport = grid.Rect{X: 0, Y: 0, Width: 5, Height: 5}
	h.grid.put(10, 10, bodyCell(2, 1))

	h.mgr.MouseMove(mouse.Event{Position: mouse.Position{X: 10, Y: 10}})

	if len(h.bus.messages) != 0 || h.tooltip.scheduled != 0 {
		t.Error("moves outside the viewport must not hover")
	}
}

func TestMouseUpSortToggle(t *testing.T) {
	tests := []struct {
		name     string
		cell     grid.CellData
		button   mouse.Button
		target   func(h *harness) any
		dragging bool
		want     int
	}{
		{"header primary own target toggles", headerCell(1), mouse.ButtonPrimary, func(h *harness) any { return h.grid.surface }, false, 1},
		{"foreign target skips", headerCell(1), mouse.ButtonPrimary, func(h *harness) any { return grid.NewSurface("child") }, false, 0},
		{"secondary button skips", headerCell(1), mouse.ButtonSecondary, func(h *harness) any { return h.grid.surface }, false, 0},
		{"mid drag skips", headerCell(1), mouse.ButtonPrimary, func(h *harness) any { return h.grid.surface }, true, 0},
		{"body cell skips", bodyCell(2, 1), mouse.ButtonPrimary, func(h *harness) any { return h.grid.surface }, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Config{})
			h.grid.put(10, 0, tt.cell)
			h.reorder.dragging = tt.dragging

			h.mgr.MouseUp(mouse.Event{
				Position: mouse.Position{X: 10, Y: 0},
				Button:   tt.button,
				Target:   tt.target(h),
			})

			if got := len(h.cols.sortToggles); got != tt.want {
				t.Errorf("sort toggles = %d, want %d", got, tt.want)
			}
			if h.reorder.dropped != 1 {
				t.Errorf("Reorder.Drop calls = %d, want 1 (release always drops)", h.reorder.dropped)
			}
		})
	}
}

func TestMouseUpResizeStopIsExclusive(t *testing.T) {
	h := newHarness(t, Config{})
	h.grid.put(10, 0, headerCell(1))
	h.resize.active = true

	h.mgr.MouseUp(mouse.Event{
		Position: mouse.Position{X: 10, Y: 0},
		Button:   mouse.ButtonPrimary,
		Target:   h.grid.surface,
	})

	if h.resize.stopped != 1 {
		t.Errorf("Resize.Stop calls = %d, want 1", h.resize.stopped)
	}
	if h.sel.released != 0 || len(h.cols.sortToggles) != 0 || h.reorder.dropped != 0 {
		t.Error("resize release must not reach selection, sort, or reorder")
	}
}

func TestMouseUpOpensURL(t *testing.T) {
	h := newHarness(t, Config{AutoOpenURL: true})
	cell := bodyCell(2, 1)
	cell.Value = "see https://example.com/doc for details"
	h.grid.put(10, 10, cell)

	// Hover the cell first so the release matches the hovered cell.
	h.mgr.MouseMove(mouse.Event{Position: mouse.Position{X: 10, Y: 10}})
	h.mgr.MouseUp(mouse.Event{Position: mouse.Position{X: 10, Y: 10}, Button: mouse.ButtonPrimary, Target: h.grid.surface})

	var url string
	for _, msg := range h.bus.messages {
		if msg.Topic == comm.TopicOpenURL {
			url = string(msg.Payload)
		}
	}
	if url == "" {
		t.Fatal("release over a URL cell should publish an open-URL message")
	}
}

func TestMouseLeave(t *testing.T) {
	tests := []struct {
		name    string
		pos     mouse.Position
		buttons mouse.Buttons
		cleared bool
	}{
		{"inside bounds ignored", mouse.Position{X: 10, Y: 10}, mouse.ButtonsNone, false},
		{"outside with button held ignored", mouse.Position{X: -5, Y: -5}, mouse.ButtonsPrimary, false},
		{"truly left tears down", mouse.Position{X: -5, Y: -5}, mouse.ButtonsNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Config{})
			h.grid.put(10, 10, bodyCell(2, 1))
			h.mgr.MouseMove(mouse.Event{Position: mouse.Position{X: 10, Y: 10}})
			before := len(h.bus.messages)

			h.mgr.MouseLeave(mouse.Event{Position: tt.pos, Buttons: tt.buttons})

			cleared := false
			for _, msg := range h.bus.messages[before:] {
				if msg.Topic == comm.TopicCellHoverClear {
					cleared = true
				}
			}
			if cleared != tt.cleared {
				t.Errorf("hover clear published = %v, want %v", cleared, tt.cleared)
			}
			if tt.cleared && h.foc.clearCalls != 1 {
				t.Errorf("Focus.Clear calls = %d, want 1", h.foc.clearCalls)
			}
			if tt.cleared && h.reorder.canceled == 0 {
				t.Error("leaving the grid should cancel the column drag")
			}
		})
	}
}

func TestDoubleClickPublishesPair(t *testing.T) {
	h := newHarness(t, Config{EmitDoubleClick: true, EmitActionDetail: true})
	h.grid.put(10, 10, bodyCell(2, 1))

	h.mgr.DoubleClick(mouse.Event{Position: mouse.Position{X: 10, Y: 10}, Button: mouse.ButtonPrimary})

	if len(h.bus.messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(h.bus.messages))
	}
	if h.bus.messages[0].Topic != comm.TopicCellDoubleClick {
		t.Errorf("first topic = %q, want %q", h.bus.messages[0].Topic, comm.TopicCellDoubleClick)
	}
	if h.bus.messages[1].Topic != comm.TopicActionDetail {
		t.Errorf("second topic = %q, want %q", h.bus.messages[1].Topic, comm.TopicActionDetail)
	}
}

func TestDoubleClickSkips(t *testing.T) {
	tests := []struct {
		name string
		prep func(h *harness)
		pos  mouse.Position
	}{
		{"header region", func(h *harness) { h.grid.put(10, 0, headerCell(1)) }, mouse.Position{X: 10, Y: 0}},
		{"miss", func(h *harness) {}, mouse.Position{X: 10, Y: 10}},
		{"stale view row", func(h *harness) {
			h.grid.dataRows = 1
			h.grid.put(10, 10, bodyCell(5, 1))
		}, mouse.Position{X: 10, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Config{EmitDoubleClick: true, EmitActionDetail: true})
			tt.prep(h)

			h.mgr.DoubleClick(mouse.Event{Position: tt.pos, Button: mouse.ButtonPrimary})

			if len(h.bus.messages) != 0 {
				t.Errorf("messages = %d, want 0", len(h.bus.messages))
			}
		})
	}
}

func TestWheelScalesByMode(t *testing.T) {
	tests := []struct {
		name   string
		ev     mouse.WheelEvent
		wantDX float64
		wantDY float64
	}{
		{"pixel passthrough", mouse.WheelEvent{DeltaX: 3, DeltaY: 7, Mode: mouse.DeltaPixel}, 3, 7},
		{"line scales by cell size", mouse.WheelEvent{DeltaY: 2, Mode: mouse.DeltaLine}, 0, 40},
		{"page scales by viewport", mouse.WheelEvent{DeltaY: 1, Mode: mouse.DeltaPage}, 0, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Config{})

			h.mgr.Wheel(tt.ev)

			if h.grid.scrolledX != tt.wantDX || h.grid.scrolledY != tt.wantDY {
				t.Errorf("scrolled (%v, %v), want (%v, %v)",
					h.grid.scrolledX, h.grid.scrolledY, tt.wantDX, tt.wantDY)
			}
		})
	}
}

func TestWheelUnknownModePanics(t *testing.T) {
	h := newHarness(t, Config{})

	defer func() {
		if recover() == nil {
			t.Error("unknown delta mode should panic")
		}
	}()
	h.mgr.Wheel(mouse.WheelEvent{DeltaY: 1, Mode: mouse.DeltaMode(3)})
}

func TestKeyDownUnrecognizedNotConsumed(t *testing.T) {
	h := newHarness(t, Config{})

	if h.mgr.KeyDown(key.NewRuneEvent('x', key.ModNone)) {
		t.Error("unmapped rune should not be consumed")
	}
	if h.mgr.KeyDown(key.NewSpecialEvent(key.KeyTab, key.ModNone)) {
		t.Error("Tab should not be consumed")
	}
}

func TestKeyDownInteract(t *testing.T) {
	h := newHarness(t, Config{})
	h.foc.focused = bodyCell(3, 2)
	h.foc.hasFocus = true

	if !h.mgr.KeyDown(key.NewSpecialEvent(key.KeyEnter, key.ModNone)) {
		t.Fatal("Enter should be consumed")
	}
	if h.sel.interacted != 1 {
		t.Errorf("Interact calls = %d, want 1", h.sel.interacted)
	}
	if !h.sel.lastCell.Same(bodyCell(3, 2)) {
		t.Errorf("interacted at %v, want focused cell", h.sel.lastCell)
	}
}

func TestKeyDownInteractWithoutFocus(t *testing.T) {
	h := newHarness(t, Config{})

	if !h.mgr.KeyDown(key.NewSpecialEvent(key.KeyEnter, key.ModNone)) {
		t.Fatal("Enter should be consumed even without focus")
	}
	if h.sel.interacted != 0 {
		t.Errorf("Interact calls = %d, want 0", h.sel.interacted)
	}
}

func TestKeyDownHighlighters(t *testing.T) {
	tests := []struct {
		r    rune
		want column.Highlight
	}{
		{'h', column.HighlightHeatmap},
		{'H', column.HighlightHeatmap},
		{'u', column.HighlightUnique},
		{'b', column.HighlightDataBars},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			h := newHarness(t, Config{})
			h.foc.focused = bodyCell(0, 1)
			h.foc.hasFocus = true

			if !h.mgr.KeyDown(key.NewRuneEvent(tt.r, key.ModNone)) {
				t.Fatal("highlighter key should be consumed")
			}
			if len(h.cols.highlightToggles) != 1 || h.cols.highlightToggles[0] != tt.want {
				t.Errorf("highlight toggles = %v, want [%v]", h.cols.highlightToggles, tt.want)
			}
		})
	}
}

func TestKeyDownFreeze(t *testing.T) {
	t.Run("toggles the focused column", func(t *testing.T) {
		h := newHarness(t, Config{})
		h.foc.focused = bodyCell(0, 2)
		h.foc.hasFocus = true

		if !h.mgr.KeyDown(key.NewRuneEvent('f', key.ModNone)) {
			t.Fatal("freeze key should be consumed")
		}
		if len(h.cols.freezeToggles) != 1 || h.cols.freezeToggles[0] != 2 {
			t.Errorf("freeze toggles = %v, want [2]", h.cols.freezeToggles)
		}
	})

	t.Run("no-op without focus", func(t *testing.T) {
		h := newHarness(t, Config{})

		if !h.mgr.KeyDown(key.NewRuneEvent('F', key.ModNone)) {
			t.Fatal("freeze key should be consumed")
		}
		if len(h.cols.freezeToggles) != 0 {
			t.Errorf("freeze toggles = %v, want none", h.cols.freezeToggles)
		}
	})
}

func TestKeyDownPrecision(t *testing.T) {
	t.Run("unshifted applies to all columns", func(t *testing.T) {
		h := newHarness(t, Config{})

		if !h.mgr.KeyDown(key.NewRuneEvent('3', key.ModNone)) {
			t.Fatal("digit should be consumed")
		}
		if len(h.cols.allPrecision) != 1 || h.cols.allPrecision[0] != 3 {
			t.Errorf("all-precision calls = %v, want [3]", h.cols.allPrecision)
		}
	})

	t.Run("shifted applies to focused column", func(t *testing.T) {
		h := newHarness(t, Config{})
		h.foc.focused = bodyCell(0, 1)
		h.foc.hasFocus = true

		if !h.mgr.KeyDown(key.NewRuneEvent('2', key.ModShift)) {
			t.Fatal("shifted digit should be consumed")
		}
		if len(h.cols.precisionCalls) != 1 || h.cols.precisionCalls[0] != 2 {
			t.Errorf("precision calls = %v, want [2]", h.cols.precisionCalls)
		}
		if len(h.cols.allPrecision) != 0 {
			t.Error("shifted digit must not touch other columns")
		}
	})

	t.Run("shifted without focus is a no-op", func(t *testing.T) {
		h := newHarness(t, Config{})

		h.mgr.KeyDown(key.NewRuneEvent('2', key.ModShift))
		if len(h.cols.precisionCalls) != 0 || len(h.cols.allPrecision) != 0 {
			t.Error("shifted digit without focus must not set precision")
		}
	})
}

func TestKeyDownNavigate(t *testing.T) {
	tests := []struct {
		k    key.Key
		want focus.Direction
	}{
		{key.KeyUp, focus.DirUp},
		{key.KeyDown, focus.DirDown},
		{key.KeyLeft, focus.DirLeft},
		{key.KeyRight, focus.DirRight},
		{key.KeyPageUp, focus.DirPageUp},
		{key.KeyPageDown, focus.DirPageDown},
	}
	for _, tt := range tests {
		t.Run(tt.k.String(), func(t *testing.T) {
			h := newHarness(t, Config{})
			h.foc.focused = bodyCell(3, 2)
			h.foc.hasFocus = true
			h.foc.canMove = true
			h.foc.next = bodyCell(4, 2)

			if !h.mgr.KeyDown(key.NewSpecialEvent(tt.k, key.ModNone)) {
				t.Fatal("navigation key should be consumed")
			}
			if h.foc.lastDir != tt.want {
				t.Errorf("direction = %v, want %v", h.foc.lastDir, tt.want)
			}
		})
	}
}

func TestKeyDownPageScrollsWithoutFocus(t *testing.T) {
	h := newHarness(t, Config{})

	h.mgr.KeyDown(key.NewSpecialEvent(key.KeyPageUp, key.ModNone))
	h.mgr.KeyDown(key.NewSpecialEvent(key.KeyPageDown, key.ModNone))

	if h.grid.pagedUp != 1 || h.grid.pagedDown != 1 {
		t.Errorf("paged (up %d, down %d), want (1, 1)", h.grid.pagedUp, h.grid.pagedDown)
	}
	if h.foc.navCalls != 0 {
		t.Error("page keys without focus must scroll, not navigate")
	}
}

func TestKeyDownShiftArrowExtendsSelection(t *testing.T) {
	t.Run("existing anchor extends only", func(t *testing.T) {
		h := newHarness(t, Config{})
		h.foc.focused = bodyCell(3, 2)
		h.foc.hasFocus = true
		h.foc.canMove = true
		h.foc.next = bodyCell(4, 2)
		h.sel.active = true

		h.mgr.KeyDown(key.NewSpecialEvent(key.KeyDown, key.ModShift))

		if h.sel.interacted != 0 {
			t.Errorf("Interact calls = %d, want 0 (anchor must not move)", h.sel.interacted)
		}
		if h.sel.extended != 1 || !h.sel.extendedTo.Same(bodyCell(4, 2)) {
			t.Errorf("ExtendTo = (%d, %v), want once at new focus", h.sel.extended, h.sel.extendedTo)
		}
	})

	t.Run("no anchor anchors at previous focus", func(t *testing.T) {
		h := newHarness(t, Config{})
		h.foc.focused = bodyCell(3, 2)
		h.foc.hasFocus = true
		h.foc.canMove = true
		h.foc.next = bodyCell(4, 2)

		h.mgr.KeyDown(key.NewSpecialEvent(key.KeyDown, key.ModShift))

		if h.sel.interacted != 1 || !h.sel.lastCell.Same(bodyCell(3, 2)) {
			t.Errorf("anchor = (%d calls, %v), want once at previous focus", h.sel.interacted, h.sel.lastCell)
		}
		if h.sel.extended != 1 || !h.sel.extendedTo.Same(bodyCell(4, 2)) {
			t.Errorf("ExtendTo = (%d, %v), want once at new focus", h.sel.extended, h.sel.extendedTo)
		}
	})
}

func TestDisposeIdempotent(t *testing.T) {
	h := newHarness(t, Config{})

	h.mgr.Dispose()
	h.mgr.Dispose()

	if h.source.detached != 1 {
		t.Errorf("detach calls = %d, want exactly 1", h.source.detached)
	}
	if h.tooltip.canceled != 1 {
		t.Errorf("Tooltip.Cancel calls = %d, want 1", h.tooltip.canceled)
	}
	if !h.mgr.Disposed() {
		t.Error("Disposed() = false after Dispose")
	}
}

func TestDisposedDispatcherIgnoresEvents(t *testing.T) {
	h := newHarness(t, Config{})
	h.grid.put(10, 10, bodyCell(2, 1))
	h.mgr.Dispose()

	h.mgr.MouseDown(mouse.Event{Position: mouse.Position{X: 10, Y: 10}, Button: mouse.ButtonPrimary})
	h.mgr.MouseMove(mouse.Event{Position: mouse.Position{X: 10, Y: 10}})
	h.mgr.Wheel(mouse.WheelEvent{DeltaY: 1, Mode: mouse.DeltaPixel})
	if h.mgr.KeyDown(key.NewSpecialEvent(key.KeyEnter, key.ModNone)) {
		t.Error("disposed dispatcher must not consume keys")
	}

	if h.sel.started != 0 || len(h.bus.messages) != 0 || h.grid.scrolledY != 0 {
		t.Error("disposed dispatcher must not dispatch")
	}
}

func TestDisposeNullsHoverOnPost(t *testing.T) {
	var posted []func()
	h := &harness{
		grid:    newFakeGrid(),
		sel:     &fakeSelection{},
		foc:     &fakeFocus{},
		resize:  &fakeResizer{},
		reorder: &fakeReorder{},
		tooltip: &fakeTooltip{},
		cols:    newFakeColumns("city"),
		bus:     &recordingBus{},
		view:    &fakeView{},
		source:  &fakeSource{},
	}
	mgr, err := New(Config{}, Deps{
		Grid:      h.grid,
		Selection: h.sel,
		Focus:     h.foc,
		Resize:    h.resize,
		Reorder:   h.reorder,
		Tooltip:   h.tooltip,
		Columns:   h.cols,
		Bus:       h.bus,
		View:      h.view,
		Post:      func(f func()) { posted = append(posted, f) },
	}, h.source)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	h.grid.put(10, 10, bodyCell(2, 1))
	mgr.MouseMove(mouse.Event{Position: mouse.Position{X: 10, Y: 10}})

	mgr.Dispose()
	if _, ok := mgr.lastHovered(); !ok {
		t.Fatal("hover cache must survive until the posted callback runs")
	}

	for _, f := range posted {
		f()
	}
	if _, ok := mgr.lastHovered(); ok {
		t.Error("posted callback should null the hover cache")
	}
}
