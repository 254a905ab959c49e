package highlight

import (
	"github.com/rivo/uniseg"
)

// BarWidth returns the bar length in cells for a value over [min, max]
// within a cell of the given width. Zero-range and out-of-range values
// clamp rather than error.
func BarWidth(v, min, max float64, cellWidth int) int {
	if cellWidth <= 0 || max <= min {
		return 0
	}
	t := (v - min) / (max - min)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return int(t * float64(cellWidth))
}

// TextWidth returns the display width of cell text. Widths are measured in
// grapheme clusters, not bytes, so combining marks and wide runes size
// correctly.
func TextWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Fit truncates s to at most width display cells, appending an ellipsis
// when truncation happened and width allows it.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	target := width - 1
	var out []byte
	used := 0
	state := -1
	rest := []byte(s)
	for len(rest) > 0 {
		var cluster []byte
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeCluster(rest, state)
		if used+w > target {
			break
		}
		out = append(out, cluster...)
		used += w
	}
	return string(out) + "…"
}
