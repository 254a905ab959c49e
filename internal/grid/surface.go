package grid

// Surface is an opaque identity handle for a rendering surface. Input events
// carry the surface that produced them; comparing handles with == is the
// supported way to decide whether an event originated on the grid itself or
// bubbled from an interior widget.
type Surface struct {
	name string
}

// NewSurface creates a named surface handle. The name is for diagnostics
// only; identity is pointer identity.
func NewSurface(name string) *Surface {
	return &Surface{name: name}
}

// Name returns the diagnostic name of the surface.
func (s *Surface) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Cursor is a pointer affordance requested while hovering the grid.
type Cursor uint8

const (
	// CursorDefault is the normal pointer.
	CursorDefault Cursor = iota
	// CursorResizeColumn indicates a horizontal resize affordance.
	CursorResizeColumn
	// CursorResizeRow indicates a vertical resize affordance.
	CursorResizeRow
	// CursorGrab indicates a column drag in progress.
	CursorGrab
)

// String returns a human-readable cursor name.
func (c Cursor) String() string {
	switch c {
	case CursorResizeColumn:
		return "col-resize"
	case CursorResizeRow:
		return "row-resize"
	case CursorGrab:
		return "grab"
	default:
		return "default"
	}
}
