package grid

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes a header row followed by data rows to a single-sheet
// .xlsx workbook at path, overwriting any existing file. No index column is
// written; blank cells are left unset.
func WriteWorkbook(path string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for j, h := range headers {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %q: %w", h, err)
		}
	}

	for i, row := range rows {
		for j, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Debug("Workbook written",
		slog.String("path", path),
		slog.Int("columns", len(headers)),
		slog.Int("rows", len(rows)))

	return nil
}
