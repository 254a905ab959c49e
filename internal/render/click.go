package render

import (
	"time"

	"github.com/dhollis/gridview/internal/input/mouse"
)

// clickTracker detects double-clicks from consecutive primary presses.
type clickTracker struct {
	maxTime     time.Duration
	maxDistance int

	lastPos   mouse.Position
	lastTime  time.Time
	lastCount int
}

// newClickTracker creates a click tracker with the given double-click
// window.
func newClickTracker(maxTime time.Duration, maxDistance int) clickTracker {
	return clickTracker{maxTime: maxTime, maxDistance: maxDistance}
}

// record registers a primary press and returns the click count. The count
// wraps back to one after two, so a triple click is a fresh single.
func (t *clickTracker) record(pos mouse.Position, when time.Time) int {
	if when.IsZero() {
		when = time.Now()
	}

	if t.inSequence(pos, when) {
		t.lastCount++
		if t.lastCount > 2 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastPos = pos
	t.lastTime = when
	return t.lastCount
}

// inSequence reports whether a press continues the previous click sequence.
func (t *clickTracker) inSequence(pos mouse.Position, when time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}
	elapsed := when.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}
	return pos.Distance(t.lastPos) <= t.maxDistance
}
