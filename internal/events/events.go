// Package events implements the grid's input dispatcher: it interprets raw
// pointer, wheel, and keyboard events against the spatial model and drives
// the selection, focus, resize, reorder, and tooltip controllers.
//
// The dispatcher never owns interaction state itself; each slice of mutable
// state has exactly one controller writing it, and the dispatcher only calls
// controller operations.
package events

import (
	"errors"
	"sync"
	"time"

	"github.com/dhollis/gridview/internal/comm"
	"github.com/dhollis/gridview/internal/focus"
	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/grid/column"
	"github.com/dhollis/gridview/internal/input/key"
	"github.com/dhollis/gridview/internal/input/mouse"
)

// Grid is the spatial query surface the dispatcher resolves events against.
type Grid interface {
	// HitTest resolves the cell under a pixel coordinate.
	HitTest(x, y int) (grid.CellData, bool)

	// InViewport reports whether the point is inside the interactive
	// viewport.
	InViewport(x, y int) bool

	// Bounds returns the widget's bounding rectangle.
	Bounds() grid.Rect

	// Surface returns the grid's own rendering surface handle.
	Surface() *grid.Surface

	// DefaultColumnWidth and DefaultRowHeight give the line-mode wheel
	// conversion factors.
	DefaultColumnWidth() int
	DefaultRowHeight() int

	// PageWidth and PageHeight give the page-mode wheel conversion factors.
	PageWidth() int
	PageHeight() int

	// ScrollBy scrolls the viewport by a pixel delta.
	ScrollBy(dx, dy float64)

	// ScrollByPage scrolls the viewport by one page.
	ScrollByPage(up bool)

	// DataRow maps a view row index to its data row index.
	DataRow(viewRow int) (int, bool)
}

// Selection is the rectangular selection controller.
type Selection interface {
	Start(cell grid.CellData)
	Hover(cell grid.CellData)
	Release()
	Interact(cell grid.CellData, shift bool)
	ExtendTo(cell grid.CellData)
	Active() bool
}

// Focus is the focused-cell controller.
type Focus interface {
	Focused() (grid.CellData, bool)
	SetFocus(cell grid.CellData)
	Clear()
	Navigate(dir focus.Direction) (grid.CellData, bool)
}

// Resizer is the boundary resize controller.
type Resizer interface {
	HitTest(x, y int) bool
	Affordance(x, y int) (grid.Cursor, bool)
	Start(x, y int) bool
	Move(x, y int)
	Stop()
	Active() bool
}

// Reorder is the column drag controller.
type Reorder interface {
	Press(cell grid.CellData, pos mouse.Position)
	Move(pos mouse.Position)
	Drop()
	Cancel()
	Dragging() bool
	Armed() bool
}

// Tooltip is the hover tooltip controller.
type Tooltip interface {
	Schedule(cell grid.CellData)
	Cancel()
	Hide()
}

// Columns exposes the column manager operations the dispatcher toggles.
type Columns interface {
	At(region grid.Region, index int) (*column.Column, bool)
	ToggleSort(region grid.Region, index int) bool
	ToggleHighlight(region grid.Region, index int, flag column.Highlight) bool
	SetPrecision(region grid.Region, index, digits int) bool
	SetAllPrecision(digits int)
	ToggleFrozen(region grid.Region, index int) bool
}

// View receives presentation side effects that have no controller.
type View interface {
	SetCursor(c grid.Cursor)
}

// Handler receives raw input events from a source.
type Handler interface {
	MouseDown(ev mouse.Event)
	MouseUp(ev mouse.Event)
	MouseMove(ev mouse.Event)
	MouseLeave(ev mouse.Event)
	DoubleClick(ev mouse.Event)
	Wheel(ev mouse.WheelEvent)

	// KeyDown reports whether the event was consumed; unconsumed events
	// propagate to the host.
	KeyDown(ev key.Event) bool
}

// Source is an input event source the dispatcher attaches to, such as the
// grid's root and canvas surfaces.
type Source interface {
	// Attach registers the handler and returns its detach func. Detach is
	// called at most once.
	Attach(h Handler) (detach func())
}

// Config holds the dispatcher's feature flags and thresholds.
type Config struct {
	// EmitDoubleClick publishes a double-click message on body double-clicks.
	EmitDoubleClick bool

	// EmitActionDetail publishes a tagged action-detail message alongside.
	EmitActionDetail bool

	// AutoOpenURL emits an open-URL request when the released cell's text
	// contains a URL.
	AutoOpenURL bool

	// DragThreshold is the minimum press distance, in pixels, from a column
	// boundary for a header press to arm a column drag.
	DragThreshold int
}

// Deps are the dispatcher's collaborators. All fields are required except
// Post, which defaults to a zero-delay timer post.
type Deps struct {
	Grid      Grid
	Selection Selection
	Focus     Focus
	Resize    Resizer
	Reorder   Reorder
	Tooltip   Tooltip
	Columns   Columns
	Bus       comm.Publisher
	View      View

	// Post schedules a func to run after the current synchronous work
	// finishes. Disposal uses it to null internal references on the next
	// tick so already-queued callbacks complete against live state.
	Post func(func())
}

// Manager is the grid's input dispatcher.
type Manager struct {
	cfg  Config
	deps Deps

	mu       sync.Mutex
	hovered  *grid.CellData
	detach   []func()
	disposed bool
}

// New creates a dispatcher and attaches it to the given event sources.
func New(cfg Config, deps Deps, sources ...Source) (*Manager, error) {
	if deps.Grid == nil || deps.Selection == nil || deps.Focus == nil ||
		deps.Resize == nil || deps.Reorder == nil || deps.Tooltip == nil ||
		deps.Columns == nil || deps.Bus == nil || deps.View == nil {
		return nil, errors.New("events: missing dependency")
	}
	if deps.Post == nil {
		deps.Post = func(f func()) { time.AfterFunc(0, f) }
	}
	if cfg.DragThreshold < 1 {
		cfg.DragThreshold = 1
	}

	m := &Manager{cfg: cfg, deps: deps}
	for _, src := range sources {
		m.detach = append(m.detach, src.Attach(m))
	}
	return m, nil
}

// Dispose detaches the dispatcher from its sources. It is idempotent: the
// first call removes every registration and cancels the pending tooltip;
// repeated calls are no-ops. Cached cell references are nulled on the next
// tick, not synchronously.
func (m *Manager) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	detach := m.detach
	m.detach = nil
	m.mu.Unlock()

	m.deps.Tooltip.Cancel()
	for _, d := range detach {
		d()
	}

	m.deps.Post(func() {
		m.mu.Lock()
		m.hovered = nil
		m.mu.Unlock()
	})
}

// Disposed reports whether Dispose has run.
func (m *Manager) Disposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}

// lastHovered returns the most recently hovered cell.
func (m *Manager) lastHovered() (grid.CellData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hovered == nil {
		return grid.CellData{}, false
	}
	return *m.hovered, true
}

// setHovered caches the hovered cell and reports whether it changed.
func (m *Manager) setHovered(cell grid.CellData) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hovered != nil && m.hovered.Same(cell) {
		m.hovered = &cell
		return false
	}
	m.hovered = &cell
	return true
}

// clearHovered drops the hover cache and reports whether a cell was hovered.
func (m *Manager) clearHovered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	had := m.hovered != nil
	m.hovered = nil
	return had
}
