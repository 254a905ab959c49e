// Package comm carries outbound grid notifications: an in-process bus for
// widget collaborators and a JSON channel toward the host.
package comm

import (
	"github.com/tidwall/sjson"
)

// Topics use dot-notation namespaces, matching the hierarchy the host
// subscribes to.
const (
	// TopicCellHover announces the pointer settling over a cell.
	TopicCellHover = "grid.cell.hover"

	// TopicCellHoverClear announces the pointer leaving the grid.
	TopicCellHoverClear = "grid.cell.hoverclear"

	// TopicCellDoubleClick announces a body cell double-click.
	TopicCellDoubleClick = "grid.cell.doubleclick"

	// TopicActionDetail announces a generic tagged action.
	TopicActionDetail = "grid.action.detail"

	// TopicOpenURL asks the host to open a URL found in a cell.
	TopicOpenURL = "grid.url.open"
)

// ActionDoubleClick is the action tag carried by detail messages emitted for
// double-clicks.
const ActionDoubleClick = "DOUBLE_CLICK"

// Message is one outbound notification: a topic plus a JSON payload.
type Message struct {
	// Topic is the dot-notation message type.
	Topic string

	// Payload is the JSON-encoded message body.
	Payload []byte
}

// NewCellHover builds a hover message for the view cell.
func NewCellHover(region string, row, col int) Message {
	p, _ := sjson.SetBytes([]byte(`{}`), "region", region)
	p, _ = sjson.SetBytes(p, "row", row)
	p, _ = sjson.SetBytes(p, "column", col)
	return Message{Topic: TopicCellHover, Payload: p}
}

// NewCellHoverClear builds a hover-clear message.
func NewCellHoverClear() Message {
	return Message{Topic: TopicCellHoverClear, Payload: []byte(`{}`)}
}

// NewCellDoubleClick builds a double-click message carrying the data row and
// column identity.
func NewCellDoubleClick(row, col int, name string) Message {
	p, _ := sjson.SetBytes([]byte(`{}`), "row", row)
	p, _ = sjson.SetBytes(p, "column", col)
	p, _ = sjson.SetBytes(p, "columnName", name)
	return Message{Topic: TopicCellDoubleClick, Payload: p}
}

// NewActionDetail builds a detail message tagged with an action name.
func NewActionDetail(action string, row, col int, name string) Message {
	p, _ := sjson.SetBytes([]byte(`{}`), "action", action)
	p, _ = sjson.SetBytes(p, "row", row)
	p, _ = sjson.SetBytes(p, "column", col)
	p, _ = sjson.SetBytes(p, "columnName", name)
	return Message{Topic: TopicActionDetail, Payload: p}
}

// NewOpenURL builds a message asking the host to open a URL.
func NewOpenURL(url string) Message {
	p, _ := sjson.SetBytes([]byte(`{}`), "url", url)
	return Message{Topic: TopicOpenURL, Payload: p}
}
