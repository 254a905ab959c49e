// Package config loads and persists the widget settings file.
//
// Settings live in a single JSON document. Reads go through gjson so a
// partial or hand-edited file degrades to defaults per field rather than
// failing the load.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Settings holds the widget's tunable behavior.
type Settings struct {
	// EmitDoubleClick publishes a double-click message on body cell
	// double-clicks.
	EmitDoubleClick bool

	// EmitActionDetail publishes an action-detail message alongside
	// double-clicks.
	EmitActionDetail bool

	// AutoOpenURL emits an open-URL request when a clicked cell's text
	// contains a URL.
	AutoOpenURL bool

	// HoverDelay is the tooltip debounce delay.
	HoverDelay time.Duration

	// DragThreshold is the pixel distance a header press must travel before
	// a column drag activates, and the minimum press distance from a column
	// boundary for the press to arm a drag at all.
	DragThreshold int

	// ResizeBand is the pixel band around a boundary within which a press
	// starts a resize.
	ResizeBand int

	// DefaultColumnWidth is the default column width in pixels.
	DefaultColumnWidth int

	// DefaultRowHeight is the default row height in pixels.
	DefaultRowHeight int

	// Formatters maps column names to Lua formatter script paths.
	Formatters map[string]string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		EmitDoubleClick:    true,
		EmitActionDetail:   false,
		AutoOpenURL:        false,
		HoverDelay:         400 * time.Millisecond,
		DragThreshold:      4,
		ResizeBand:         2,
		DefaultColumnWidth: 12,
		DefaultRowHeight:   1,
	}
}

// Parse overlays a JSON settings document on the defaults. Unknown fields
// are ignored; missing fields keep their defaults.
func Parse(data []byte) (Settings, error) {
	s := DefaultSettings()
	if len(data) == 0 {
		return s, nil
	}
	if !gjson.ValidBytes(data) {
		return s, fmt.Errorf("settings: invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if v := doc.Get("messages.doubleClick"); v.Exists() {
		s.EmitDoubleClick = v.Bool()
	}
	if v := doc.Get("messages.actionDetail"); v.Exists() {
		s.EmitActionDetail = v.Bool()
	}
	if v := doc.Get("autoOpenURL"); v.Exists() {
		s.AutoOpenURL = v.Bool()
	}
	if v := doc.Get("hoverDelayMs"); v.Exists() {
		s.HoverDelay = time.Duration(v.Int()) * time.Millisecond
	}
	if v := doc.Get("dragThreshold"); v.Exists() && v.Int() > 0 {
		s.DragThreshold = int(v.Int())
	}
	if v := doc.Get("resizeBand"); v.Exists() && v.Int() > 0 {
		s.ResizeBand = int(v.Int())
	}
	if v := doc.Get("defaultColumnWidth"); v.Exists() && v.Int() > 0 {
		s.DefaultColumnWidth = int(v.Int())
	}
	if v := doc.Get("defaultRowHeight"); v.Exists() && v.Int() > 0 {
		s.DefaultRowHeight = int(v.Int())
	}
	if v := doc.Get("formatters"); v.IsObject() {
		s.Formatters = make(map[string]string)
		v.ForEach(func(name, path gjson.Result) bool {
			s.Formatters[name.String()] = path.String()
			return true
		})
	}
	return s, nil
}

// Load reads a settings file. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// JSON renders the settings as a JSON document.
func (s Settings) JSON() []byte {
	out := []byte(`{}`)
	out, _ = sjson.SetBytes(out, "messages.doubleClick", s.EmitDoubleClick)
	out, _ = sjson.SetBytes(out, "messages.actionDetail", s.EmitActionDetail)
	out, _ = sjson.SetBytes(out, "autoOpenURL", s.AutoOpenURL)
	out, _ = sjson.SetBytes(out, "hoverDelayMs", s.HoverDelay.Milliseconds())
	out, _ = sjson.SetBytes(out, "dragThreshold", s.DragThreshold)
	out, _ = sjson.SetBytes(out, "resizeBand", s.ResizeBand)
	out, _ = sjson.SetBytes(out, "defaultColumnWidth", s.DefaultColumnWidth)
	out, _ = sjson.SetBytes(out, "defaultRowHeight", s.DefaultRowHeight)
	for name, path := range s.Formatters {
		out, _ = sjson.SetBytes(out, "formatters."+name, path)
	}
	return out
}

// Save writes the settings to a file.
func (s Settings) Save(path string) error {
	if err := os.WriteFile(path, s.JSON(), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
