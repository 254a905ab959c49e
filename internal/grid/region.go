package grid

// Region classifies which part of the grid a coordinate falls in.
type Region uint8

const (
	// RegionNone indicates a coordinate outside every region.
	RegionNone Region = iota
	// RegionBody is the scrollable cell area.
	RegionBody
	// RegionRowHeader is the fixed index column on the left.
	RegionRowHeader
	// RegionColumnHeader is the fixed header row on top.
	RegionColumnHeader
	// RegionCornerHeader is the intersection of the row and column headers.
	RegionCornerHeader
)

// String returns the canonical hyphenated region name.
func (r Region) String() string {
	switch r {
	case RegionBody:
		return "body"
	case RegionRowHeader:
		return "row-header"
	case RegionColumnHeader:
		return "column-header"
	case RegionCornerHeader:
		return "corner-header"
	default:
		return "none"
	}
}

// IsHeader returns true for the three non-body regions.
func (r Region) IsHeader() bool {
	return r == RegionRowHeader || r == RegionColumnHeader || r == RegionCornerHeader
}
