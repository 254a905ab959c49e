// Package grid defines the spatial vocabulary shared by the grid widget:
// regions, per-cell hit test data, rectangles, cursor affordances, and the
// opaque surface identity handle events are tagged with.
//
// The package holds plain types only. The concrete spatial query surface
// lives in grid/table; column display state lives in grid/column.
package grid
