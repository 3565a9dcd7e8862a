// Package combine drives a full batch run: discover workbooks in a
// directory, extract every sheet's tabular region, union the columns, and
// write one combined output workbook.
package combine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"xlcombine/internal/config"
	"xlcombine/internal/extract"
	"xlcombine/internal/files"
	"xlcombine/internal/grid"
)

var (
	// ErrNoFiles means the input directory held no .xls/.xlsx files.
	// No output is written.
	ErrNoFiles = errors.New("no excel files found")
	// ErrNoData means every sheet in every file was skipped.
	// No output is written.
	ErrNoData = errors.New("no valid data found to combine")
)

// Summary reports what a completed run produced.
type Summary struct {
	SheetsCombined int
	TotalRows      int
	OutputPath     string
}

// Combiner runs the batch extraction. Files are processed one at a time,
// fully, in name order; per-file and per-sheet failures are absorbed as
// skips and the run continues.
type Combiner struct {
	cfg       *config.Config
	logger    *slog.Logger
	extractor *extract.Extractor

	// Out receives the human-readable progress stream. Defaults to
	// stdout; not a stable contract.
	Out io.Writer
}

// New creates a Combiner from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Combiner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Combiner{
		cfg:       cfg,
		logger:    logger,
		extractor: extract.New(cfg.Scan, logger),
		Out:       os.Stdout,
	}
}

// Run combines every extractable sheet under dir into one workbook named
// outputName inside dir. The output is written only after all extraction
// is complete and at least one table exists; ErrNoFiles and ErrNoData
// terminate the run without writing anything.
func (c *Combiner) Run(ctx context.Context, dir, outputName string) (*Summary, error) {
	found, err := files.NewDiscovery(dir).FindExcelFiles(".")
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNoFiles
	}

	c.logger.InfoContext(ctx, "Starting batch extraction",
		slog.String("input_dir", dir),
		slog.Int("file_count", len(found)))
	fmt.Fprintf(c.Out, "Found %d Excel file(s)\n\n", len(found))

	var tables []*extract.Table
	for _, fi := range found {
		fmt.Fprintf(c.Out, "Processing: %s\n", fi.Name)

		wb, err := grid.Open(fi.Path)
		if err != nil {
			c.logger.ErrorContext(ctx, "Error reading file",
				slog.String("filename", fi.Name),
				slog.String("error", err.Error()))
			fmt.Fprintf(c.Out, "  ✗ Error reading file: %s\n\n", err)
			continue
		}

		sheets := wb.SheetNames()
		fmt.Fprintf(c.Out, "  Found %d sheet(s)\n", len(sheets))

		for _, sheet := range sheets {
			fmt.Fprintf(c.Out, "  Sheet: '%s'\n", sheet)

			res := c.extractSheet(ctx, wb, fi.Name, sheet)
			if res.Skipped() {
				c.logger.WarnContext(ctx, "Sheet skipped",
					slog.String("filename", fi.Name),
					slog.String("sheet", sheet),
					slog.String("reason", res.Reason))
				fmt.Fprintf(c.Out, "    ⚠ Skipped: %s\n", res.Reason)
				continue
			}

			c.logger.InfoContext(ctx, "Sheet extracted",
				slog.String("filename", fi.Name),
				slog.String("sheet", sheet),
				slog.Int("rows", len(res.Table.Rows)))
			fmt.Fprintf(c.Out, "    ✓ %s\n", res.Diagnostic())
			tables = append(tables, res.Table)
		}

		wb.Close()
		fmt.Fprintln(c.Out)
	}

	if len(tables) == 0 {
		return nil, ErrNoData
	}

	fmt.Fprintln(c.Out, "Combining all valid sheets...")
	headers, rows := unionColumns(tables)

	outputPath := filepath.Join(dir, outputName)
	if err := grid.WriteWorkbook(outputPath, headers, rows); err != nil {
		return nil, fmt.Errorf("failed to write combined workbook: %w", err)
	}

	summary := &Summary{
		SheetsCombined: len(tables),
		TotalRows:      len(rows),
		OutputPath:     outputPath,
	}

	c.logger.InfoContext(ctx, "Batch extraction complete",
		slog.Int("sheets_combined", summary.SheetsCombined),
		slog.Int("total_rows", summary.TotalRows),
		slog.String("output_path", summary.OutputPath))

	banner := strings.Repeat("=", 60)
	fmt.Fprintf(c.Out, "\n%s\n", banner)
	fmt.Fprintf(c.Out, "✓ Successfully combined %d sheet(s)\n", summary.SheetsCombined)
	fmt.Fprintf(c.Out, "✓ Total rows: %d\n", summary.TotalRows)
	fmt.Fprintf(c.Out, "✓ Output saved to: %s\n", summary.OutputPath)
	fmt.Fprintf(c.Out, "%s\n", banner)

	return summary, nil
}

// extractSheet loads one sheet's grid and runs the extractor on it. A
// grid load failure becomes a skip, never an error.
func (c *Combiner) extractSheet(ctx context.Context, wb grid.Workbook, fileName, sheet string) extract.Result {
	g, err := wb.Grid(sheet)
	if err != nil {
		c.logger.ErrorContext(ctx, "Error reading sheet",
			slog.String("filename", fileName),
			slog.String("sheet", sheet),
			slog.String("error", err.Error()))
		return extract.Result{Reason: "error reading file"}
	}
	return c.extractor.Sheet(g, fileName, sheet)
}

// unionColumns harmonizes all tables onto one column set: data columns in
// first-seen order, then the three metadata columns. Rows from tables
// lacking a column get blank values for it.
func unionColumns(tables []*extract.Table) ([]string, [][]string) {
	var dataCols []string
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, h := range t.Headers {
			if !seen[h] {
				seen[h] = true
				dataCols = append(dataCols, h)
			}
		}
	}

	headers := make([]string, 0, len(dataCols)+3)
	headers = append(headers, dataCols...)
	headers = append(headers, extract.ColSourceFile, extract.ColSheetName, extract.ColDate)

	var rows [][]string
	for _, t := range tables {
		for _, r := range t.Rows {
			row := make([]string, 0, len(headers))
			for _, col := range dataCols {
				row = append(row, r[col])
			}
			row = append(row, t.SourceFile, t.SheetName, t.Date)
			rows = append(rows, row)
		}
	}

	return headers, rows
}
