package grid

// CellData identifies a rendered cell resolved from a pixel coordinate.
// Instances are produced fresh per hit test and are not retained beyond the
// handling of one event, except where a controller caches one (selection
// anchor, focused cell, hovered cell).
type CellData struct {
	// Region is the part of the grid the cell belongs to.
	Region Region

	// Row is the view-order row index (post sort), not the data row.
	Row int

	// Column is the column index within the region.
	Column int

	// X and Y are the pixel offsets of the cell's top-left corner.
	X int
	Y int

	// Width and Height are the cell's pixel size.
	Width  int
	Height int

	// DeltaX and DeltaY are the pointer's distance from the cell's leading
	// edges at hit-test time. Width-DeltaX is the distance to the trailing
	// column boundary.
	DeltaX int
	DeltaY int

	// Value is the cell's data value, nil for header filler cells.
	Value any
}

// Same reports whether two cells refer to the same grid position.
// Geometry and value are not compared.
func (c CellData) Same(other CellData) bool {
	return c.Region == other.Region && c.Row == other.Row && c.Column == other.Column
}

// Rect is a pixel-space rectangle.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
