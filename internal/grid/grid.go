package grid

// Grid is a worksheet materialized as a rectangular block of cell values.
// Cells are plain strings; empty string means a blank or missing cell.
// A Grid is read-only once built.
type Grid struct {
	rows [][]string
	cols int
}

// FromRows builds a Grid from raw row data. Rows may be ragged; the grid
// width is the widest row seen.
func FromRows(rows [][]string) *Grid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return &Grid{rows: rows, cols: cols}
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Cols returns the width of the grid.
func (g *Grid) Cols() int {
	return g.cols
}

// Cell returns the value at (row, col), or the empty string when the
// coordinates fall outside the grid or beyond a short row.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= g.cols {
		return ""
	}
	r := g.rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}
