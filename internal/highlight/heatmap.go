// Package highlight implements the column value highlighters: heatmap
// shading, unique-entry colors, and data bars.
package highlight

import (
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Heatmap shades values by blending between a low and a high color in HCL
// space, which keeps mid-range blends perceptually even.
type Heatmap struct {
	low  colorful.Color
	high colorful.Color
	min  float64
	max  float64
}

// NewHeatmap creates a heatmap over [min, max] with the default blue-to-red
// ramp.
func NewHeatmap(min, max float64) *Heatmap {
	low, _ := colorful.Hex("#2166ac")
	high, _ := colorful.Hex("#b2182b")
	return &Heatmap{low: low, high: high, min: min, max: max}
}

// NewHeatmapColors creates a heatmap with explicit ramp endpoints given as
// hex colors.
func NewHeatmapColors(min, max float64, lowHex, highHex string) (*Heatmap, error) {
	low, err := colorful.Hex(lowHex)
	if err != nil {
		return nil, err
	}
	high, err := colorful.Hex(highHex)
	if err != nil {
		return nil, err
	}
	return &Heatmap{low: low, high: high, min: min, max: max}, nil
}

// ColorFor returns the ramp color for a value, clamped at the range ends.
func (h *Heatmap) ColorFor(v float64) colorful.Color {
	t := 0.0
	if h.max > h.min {
		t = (v - h.min) / (h.max - h.min)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return h.low.BlendHcl(h.high, t).Clamped()
}

// Unique assigns each distinct value a stable color from a generated
// palette. Assignment order is first-seen; the palette wraps when exhausted.
type Unique struct {
	mu       sync.Mutex
	palette  []colorful.Color
	assigned map[string]int
}

// NewUnique creates a unique-entry highlighter with a palette of n warm
// colors.
func NewUnique(n int) *Unique {
	if n < 1 {
		n = 1
	}
	return &Unique{
		palette:  colorful.FastHappyPalette(n),
		assigned: make(map[string]int),
	}
}

// ColorFor returns the stable color for a value.
func (u *Unique) ColorFor(value string) colorful.Color {
	u.mu.Lock()
	defer u.mu.Unlock()

	idx, ok := u.assigned[value]
	if !ok {
		idx = len(u.assigned) % len(u.palette)
		u.assigned[value] = idx
	}
	return u.palette[idx]
}

// Seen returns the number of distinct values assigned so far.
func (u *Unique) Seen() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.assigned)
}
