// Package tooltip shows transient cell tooltips after a hover delay.
package tooltip

import (
	"sync"
	"time"

	"github.com/dhollis/gridview/internal/grid"
)

// View is the rendering side of tooltips.
type View interface {
	// ShowTooltip displays a tooltip for the cell.
	ShowTooltip(cell grid.CellData)

	// HideTooltip removes any visible tooltip.
	HideTooltip()
}

// Manager debounces hover tooltips. The pending timer is the only
// asynchrony in the widget; Cancel and Close guarantee it never fires
// afterward.
type Manager struct {
	mu     sync.Mutex
	view   View
	delay  time.Duration
	timer  *time.Timer
	closed bool
}

// NewManager creates a tooltip manager with the given hover delay.
func NewManager(view View, delay time.Duration) *Manager {
	return &Manager{view: view, delay: delay}
}

// Schedule arms the tooltip for the cell, replacing any pending one.
func (m *Manager) Schedule(cell grid.CellData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.stopLocked()
	m.timer = time.AfterFunc(m.delay, func() {
		m.fire(cell)
	})
}

// fire shows the tooltip unless it was cancelled in the meantime.
func (m *Manager) fire(cell grid.CellData) {
	m.mu.Lock()
	if m.closed || m.timer == nil {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	view := m.view
	m.mu.Unlock()

	view.ShowTooltip(cell)
}

// Cancel discards any pending tooltip without hiding a visible one.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Hide cancels any pending tooltip and hides a visible one.
func (m *Manager) Hide() {
	m.mu.Lock()
	m.stopLocked()
	view := m.view
	closed := m.closed
	m.mu.Unlock()

	if !closed {
		view.HideTooltip()
	}
}

// Close cancels the pending timer and rejects further scheduling.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	m.closed = true
}

// stopLocked stops the pending timer (caller holds the lock).
func (m *Manager) stopLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Pending reports whether a tooltip is waiting to show.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timer != nil
}
