package render

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dhollis/gridview/internal/focus"
	"github.com/dhollis/gridview/internal/grid"
	"github.com/dhollis/gridview/internal/grid/column"
	"github.com/dhollis/gridview/internal/grid/table"
	"github.com/dhollis/gridview/internal/highlight"
	"github.com/dhollis/gridview/internal/reorder"
	"github.com/dhollis/gridview/internal/script"
	"github.com/dhollis/gridview/internal/selection"
)

// Renderer draws the table, headers, selection, focus, and highlighters to
// a tcell screen. It also implements the dispatcher's View and the tooltip
// manager's view.
type Renderer struct {
	mu      sync.Mutex
	screen  tcell.Screen
	table   *table.Table
	sel     *selection.Manager
	foc     *focus.Manager
	drag    *reorder.Controller
	heat    map[string]*highlight.Heatmap
	uniq    map[string]*highlight.Unique
	scripts map[string]*script.Formatter

	cursor  grid.Cursor
	tooltip string
	status  string
}

// NewRenderer creates a renderer over the given collaborators.
func NewRenderer(screen tcell.Screen, t *table.Table, sel *selection.Manager, foc *focus.Manager, drag *reorder.Controller) *Renderer {
	return &Renderer{
		screen:  screen,
		table:   t,
		sel:     sel,
		foc:     foc,
		drag:    drag,
		heat:    make(map[string]*highlight.Heatmap),
		uniq:    make(map[string]*highlight.Unique),
		scripts: make(map[string]*script.Formatter),
	}
}

// SetFormatter installs a custom Lua formatter for a column name.
func (r *Renderer) SetFormatter(name string, f *script.Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts[name] = f
}

// SetCursor records the pointer affordance; it is shown in the status line
// since terminals have no pointer shape.
func (r *Renderer) SetCursor(c grid.Cursor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = c
}

// ShowTooltip displays a tooltip for the cell in the status line.
func (r *Renderer) ShowTooltip(cell grid.CellData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tooltip = fmt.Sprintf("%s r%d c%d: %v", cell.Region, cell.Row, cell.Column, cell.Value)
}

// HideTooltip removes any visible tooltip.
func (r *Renderer) HideTooltip() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tooltip = ""
}

// SetStatus sets the status line text shown when no tooltip is visible.
func (r *Renderer) SetStatus(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = s
}

// Draw renders a full frame.
func (r *Renderer) Draw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Clear()
	width, height := r.screen.Size()
	if height < 2 {
		r.screen.Show()
		return
	}
	gridHeight := height - 1

	r.drawHeaders(width)
	r.drawBody(width, gridHeight)
	r.drawStatus(width, height-1)
	r.screen.Show()
}

// drawHeaders renders the corner and column headers with sort indicators.
// Frozen columns draw last so their pinned headers cover scrolled ones.
func (r *Renderer) drawHeaders(width int) {
	headerStyle := tcell.StyleDefault.Bold(true).Reverse(true)

	for x := 0; x < width; x++ {
		r.screen.SetContent(x, 0, ' ', nil, headerStyle)
	}
	r.putText(0, 0, "#", headerStyle)

	cols := r.table.Columns().Columns()
	for _, frozenPass := range []bool{false, true} {
		for _, col := range cols {
			if col.Hidden || col.Frozen != frozenPass {
				continue
			}
			cell, ok := r.table.HeaderCell(col.Index)
			if !ok {
				continue
			}
			label := col.Name
			switch col.Sort {
			case column.SortAscending:
				label += " ^"
			case column.SortDescending:
				label += " v"
			}
			if frozenPass {
				for i := 0; i < cell.Width && cell.X+i < width; i++ {
					r.screen.SetContent(cell.X+i, 0, ' ', nil, headerStyle)
				}
			}
			r.putText(cell.X, 0, highlight.Fit(label, cell.Width-1), headerStyle)
		}
	}
}

// drawBody renders the visible body cells and row headers.
func (r *Renderer) drawBody(width, height int) {
	selRange, hasSel := r.sel.Range()
	focused, hasFocus := r.foc.Focused()
	cols := r.table.Columns().Columns()

	for viewRow := 0; viewRow < r.table.RowCount(); viewRow++ {
		probe, ok := r.table.CellAt(viewRow, 0)
		if !ok || probe.Y >= height {
			break
		}
		if probe.Y < 1 {
			continue
		}

		if dataRow, ok := r.table.DataRow(viewRow); ok {
			r.putText(0, probe.Y, strconv.Itoa(dataRow), tcell.StyleDefault.Dim(true))
		}

		for _, frozenPass := range []bool{false, true} {
			for _, col := range cols {
				if col.Hidden || col.Frozen != frozenPass {
					continue
				}
				cell, ok := r.table.CellAt(viewRow, col.Index)
				if !ok || cell.X >= width || cell.X+cell.Width <= 0 {
					continue
				}

				style := r.cellStyle(col, cell)
				if hasSel && selRange.Contains(viewRow, col.Index) {
					style = style.Reverse(true)
				}
				if hasFocus && focused.Row == viewRow && focused.Column == col.Index {
					style = style.Bold(true).Underline(true)
				}

				if frozenPass {
					for i := 0; i < cell.Width && cell.X+i < width; i++ {
						r.screen.SetContent(cell.X+i, cell.Y, ' ', nil, style)
					}
				}
				text := r.cellText(col, cell)
				r.fillCell(cell, col, style)
				r.putText(cell.X, cell.Y, highlight.Fit(text, cell.Width-1), style)
			}
		}
	}
}

// cellStyle computes the background highlighting for a cell.
func (r *Renderer) cellStyle(col *column.Column, cell grid.CellData) tcell.Style {
	style := tcell.StyleDefault

	if col.Highlights.Has(column.HighlightHeatmap) {
		if v, ok := cell.Value.(float64); ok {
			h := r.heat[col.Name]
			if h == nil {
				min, max := r.columnRange(col.Index)
				h = highlight.NewHeatmap(min, max)
				r.heat[col.Name] = h
			}
			c := h.ColorFor(v)
			cr, cg, cb := c.RGB255()
			style = style.Background(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
		}
	}

	if col.Highlights.Has(column.HighlightUnique) {
		if s, ok := cell.Value.(string); ok {
			u := r.uniq[col.Name]
			if u == nil {
				u = highlight.NewUnique(16)
				r.uniq[col.Name] = u
			}
			c := u.ColorFor(s)
			cr, cg, cb := c.RGB255()
			style = style.Background(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
		}
	}

	return style
}

// fillCell paints the data-bar background for bar-highlighted cells.
func (r *Renderer) fillCell(cell grid.CellData, col *column.Column, style tcell.Style) {
	if !col.Highlights.Has(column.HighlightDataBars) {
		return
	}
	v, ok := cell.Value.(float64)
	if !ok {
		return
	}
	min, max := r.columnRange(col.Index)
	barStyle := style.Dim(true)
	for i := 0; i < highlight.BarWidth(v, min, max, cell.Width-1); i++ {
		r.screen.SetContent(cell.X+i, cell.Y, '▄', nil, barStyle)
	}
}

// columnRange scans a column's numeric range for highlighter scaling.
func (r *Renderer) columnRange(col int) (float64, float64) {
	min, max := 0.0, 0.0
	seen := false
	for row := 0; row < r.table.RowCount(); row++ {
		v, ok := r.table.Value(row, col)
		if !ok {
			continue
		}
		f, ok := v.(float64)
		if !ok {
			continue
		}
		if !seen {
			min, max = f, f
			seen = true
			continue
		}
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	return min, max
}

// cellText formats a cell value per the column's precision and renderer.
func (r *Renderer) cellText(col *column.Column, cell grid.CellData) string {
	if col.Renderer == column.RendererCustom {
		if f := r.scripts[col.Name]; f != nil {
			if out, err := f.Format(cell.Value, cell.Row, cell.Column); err == nil {
				return out
			}
		}
	}

	switch v := cell.Value.(type) {
	case nil:
		return ""
	case float64:
		if col.Precision >= 0 {
			return strconv.FormatFloat(v, 'f', col.Precision, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// drawStatus renders the status line: tooltip first, then drag state, then
// the ambient status text.
func (r *Renderer) drawStatus(width, y int) {
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	text := r.status
	if _, ok := r.drag.Cell(); ok {
		text = "moving column..."
	}
	if r.cursor != grid.CursorDefault {
		text = r.cursor.String()
	}
	if r.tooltip != "" {
		text = r.tooltip
	}
	r.putText(0, y, highlight.Fit(text, width), style)
}

// putText writes a string at a position, clipping at the screen edge.
func (r *Renderer) putText(x, y int, s string, style tcell.Style) {
	width, height := r.screen.Size()
	if y < 0 || y >= height {
		return
	}
	cx := x
	for _, ch := range s {
		if cx >= width {
			return
		}
		if cx >= 0 {
			r.screen.SetContent(cx, y, ch, nil, style)
		}
		cx++
	}
}
