// Package detect locates the tabular region of a worksheet grid: the
// header row carrying the start marker, the end column carrying the end
// marker, and the row where data stops (a terminator row such as "Total",
// or the last contiguous data row when no terminator exists).
package detect

import "strings"

// IsBlank reports whether a cell holds no data. Whitespace-only cells and
// the textual "nan" artifact count as blank.
func IsBlank(cell string) bool {
	t := strings.TrimSpace(cell)
	return t == "" || strings.EqualFold(t, "nan")
}

// normalize lowers a cell value and strips spaces and equals signs so
// decorations like "= Total =" still match terminator keywords.
func normalize(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "=", "")
}

// cellGrid is the read surface the locators need.
type cellGrid interface {
	Rows() int
	Cols() int
	Cell(row, col int) string
}

// FindHeader scans the first maxRows rows of the grid, top to bottom and
// left to right, for the first cell whose trimmed value equals marker.
// It returns the cell's (row, col), or ok=false when no cell matches.
func FindHeader(g cellGrid, marker string, maxRows int) (row, col int, ok bool) {
	limit := g.Rows()
	if maxRows < limit {
		limit = maxRows
	}
	for r := 0; r < limit; r++ {
		for c := 0; c < g.Cols(); c++ {
			if strings.TrimSpace(g.Cell(r, c)) == marker {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// FindEndColumn scans rightward along headerRow from startCol for the
// first cell whose trimmed value equals marker, returning its column.
func FindEndColumn(g cellGrid, headerRow, startCol int, marker string) (col int, ok bool) {
	for c := startCol; c < g.Cols(); c++ {
		if strings.TrimSpace(g.Cell(headerRow, c)) == marker {
			return c, true
		}
	}
	return 0, false
}

// FindTerminator returns the first row after headerRow where any cell in
// [startCol, endCol] contains one of the keywords after normalization.
// Keywords outside the column span do not terminate the region.
func FindTerminator(g cellGrid, headerRow, startCol, endCol int, keywords []string) (row int, ok bool) {
	for r := headerRow + 1; r < g.Rows(); r++ {
		for c := startCol; c <= endCol; c++ {
			cell := normalize(g.Cell(r, c))
			if cell == "" {
				continue
			}
			for _, kw := range keywords {
				if strings.Contains(cell, kw) {
					return r, true
				}
			}
		}
	}
	return 0, false
}

// FindLastDataRow scans rows after headerRow and returns the last row with
// at least one non-blank cell in [startCol, endCol]. The scan stops at the
// first fully-blank row once a data row has been seen, so trailing content
// separated by a gap is never included. ok is false when no row in the
// span holds data.
func FindLastDataRow(g cellGrid, headerRow, startCol, endCol int) (row int, ok bool) {
	last := -1
	for r := headerRow + 1; r < g.Rows(); r++ {
		hasData := false
		for c := startCol; c <= endCol; c++ {
			if !IsBlank(g.Cell(r, c)) {
				hasData = true
				break
			}
		}
		if hasData {
			last = r
		} else if last >= 0 {
			break
		}
	}
	if last < 0 {
		return 0, false
	}
	return last, true
}
