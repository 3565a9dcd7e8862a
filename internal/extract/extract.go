// Package extract turns one worksheet into a labeled table. It drives the
// detect locators to carve out the tabular region, strips blank rows, and
// attaches provenance metadata. The terminal outcome for every sheet is an
// explicit Result: either an extracted table or a skip with a reason.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"xlcombine/internal/config"
	"xlcombine/internal/detect"
	"xlcombine/internal/grid"
)

// Metadata column names appended to every extracted table, in output order.
const (
	ColSourceFile = "Source_File"
	ColSheetName  = "Sheet_Name"
	ColDate       = "Date"
)

// Strategy names how the end of the data region was determined.
type Strategy string

const (
	// StrategyTerminator means a Total/Summary row bounded the region.
	StrategyTerminator Strategy = "terminator"
	// StrategyLastDataRow means the fallback last-contiguous-data-row scan
	// bounded the region.
	StrategyLastDataRow Strategy = "last data row"
)

// Table is an extracted region: ordered header labels and one value map
// per row, plus the provenance metadata shared by all rows.
type Table struct {
	Headers    []string
	Rows       []map[string]string
	SourceFile string
	SheetName  string
	Date       string
}

// Result is the terminal outcome of extracting one sheet. Table is nil
// when the sheet was skipped, with Reason explaining why. The remaining
// fields are diagnostics for the extracted case.
type Result struct {
	Table            *Table
	Reason           string
	HeaderRow        int // 0-based
	TerminatorRow    int // 0-based, meaningful for StrategyTerminator
	Strategy         Strategy
	BlankRowsRemoved int
}

// Skipped reports whether the sheet produced no table.
func (r Result) Skipped() bool {
	return r.Table == nil
}

// Diagnostic renders the human-readable success line for this result:
// row count, 1-based header row, end strategy, and blank rows removed.
func (r Result) Diagnostic() string {
	if r.Table == nil {
		return r.Reason
	}
	endMarker := "last data row"
	if r.Strategy == StrategyTerminator {
		endMarker = fmt.Sprintf("Total/Summary at row %d", r.TerminatorRow+1)
	}
	blankInfo := ""
	if r.BlankRowsRemoved > 0 {
		blankInfo = fmt.Sprintf(", %d blank row(s) removed", r.BlankRowsRemoved)
	}
	return fmt.Sprintf("Extracted %d rows (Header at row %d, %s%s)",
		len(r.Table.Rows), r.HeaderRow+1, endMarker, blankInfo)
}

func skip(reason string) Result {
	return Result{Reason: reason}
}

// Extractor carves tabular regions out of worksheet grids using the
// configured markers.
type Extractor struct {
	headerMarker     string
	endMarker        string
	headerSearchRows int
	keywords         []string
	logger           *slog.Logger
}

// New creates an Extractor from scan configuration. Terminator keywords
// are lowercased once here; detection compares normalized cell text.
func New(scan config.ScanConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	keywords := make([]string, len(scan.TerminatorKeywords))
	for i, kw := range scan.TerminatorKeywords {
		keywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	return &Extractor{
		headerMarker:     scan.HeaderMarker,
		endMarker:        scan.EndMarker,
		headerSearchRows: scan.HeaderSearchRows,
		keywords:         keywords,
		logger:           logger,
	}
}

// Sheet extracts the tabular region of one worksheet grid. fileName is the
// bare file name (not a path) and sheetName the worksheet's literal name;
// both become metadata on the extracted table.
func (e *Extractor) Sheet(g *grid.Grid, fileName, sheetName string) Result {
	headerRow, startCol, ok := detect.FindHeader(g, e.headerMarker, e.headerSearchRows)
	if !ok {
		return skip(fmt.Sprintf("'%s' not found", e.headerMarker))
	}

	endCol, ok := detect.FindEndColumn(g, headerRow, startCol, e.endMarker)
	if !ok {
		return skip(fmt.Sprintf("'%s' column not found", e.endMarker))
	}

	// Terminator row is an exclusive boundary; the fallback last data row
	// is inclusive.
	var dataEnd int
	strategy := StrategyTerminator
	terminatorRow, ok := detect.FindTerminator(g, headerRow, startCol, endCol, e.keywords)
	if ok {
		dataEnd = terminatorRow
	} else {
		lastDataRow, ok := detect.FindLastDataRow(g, headerRow, startCol, endCol)
		if !ok {
			return skip("could not determine end of data")
		}
		dataEnd = lastDataRow + 1
		strategy = StrategyLastDataRow
	}

	dataStart := headerRow + 1
	if dataStart >= dataEnd {
		return skip("no data rows found between header and Total")
	}

	// Rows key cells by header label, so repeated labels get a numeric
	// suffix (Name, Name.1, ...) to keep every column's values.
	headers := make([]string, 0, endCol-startCol+1)
	used := make(map[string]bool, endCol-startCol+1)
	counts := make(map[string]int)
	for c := startCol; c <= endCol; c++ {
		label := strings.TrimSpace(g.Cell(headerRow, c))
		if used[label] {
			base := label
			for {
				counts[base]++
				label = fmt.Sprintf("%s.%d", base, counts[base])
				if !used[label] {
					break
				}
			}
		}
		used[label] = true
		headers = append(headers, label)
	}

	rows := make([]map[string]string, 0, dataEnd-dataStart)
	blankRemoved := 0
	for r := dataStart; r < dataEnd; r++ {
		blank := true
		row := make(map[string]string, len(headers))
		for c := startCol; c <= endCol; c++ {
			cell := g.Cell(r, c)
			if !detect.IsBlank(cell) {
				blank = false
			}
			row[headers[c-startCol]] = cell
		}
		if blank {
			blankRemoved++
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return skip("all data rows were blank")
	}

	table := &Table{
		Headers:    headers,
		Rows:       rows,
		SourceFile: fileName,
		SheetName:  sheetName,
		Date:       ConvertSheetNameToDate(sheetName),
	}

	e.logger.Debug("Sheet extracted",
		slog.String("file", fileName),
		slog.String("sheet", sheetName),
		slog.Int("rows", len(rows)),
		slog.Int("header_row", headerRow+1),
		slog.String("strategy", string(strategy)),
		slog.Int("blank_rows_removed", blankRemoved))

	return Result{
		Table:            table,
		HeaderRow:        headerRow,
		TerminatorRow:    terminatorRow,
		Strategy:         strategy,
		BlankRowsRemoved: blankRemoved,
	}
}
