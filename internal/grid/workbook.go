package grid

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	xls "github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Workbook exposes a spreadsheet file as a set of named sheets, each
// readable as a Grid. Sheet order follows the order the library reports.
type Workbook interface {
	SheetNames() []string
	Grid(sheet string) (*Grid, error)
	Close() error
}

// Open opens a workbook file, dispatching on extension: .xlsx files are
// read with excelize, legacy .xls files with the xls package.
func Open(path string) (Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return openXLSX(path)
	case ".xls":
		return openXLS(path)
	default:
		return nil, fmt.Errorf("unsupported workbook extension: %s", filepath.Ext(path))
	}
}

type xlsxWorkbook struct {
	f *excelize.File
}

func openXLSX(path string) (*xlsxWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filepath.Base(path), err)
	}
	return &xlsxWorkbook{f: f}, nil
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *xlsxWorkbook) Grid(sheet string) (*Grid, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return FromRows(rows), nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}

type xlsWorkbook struct {
	wb     *xls.WorkBook
	closer io.Closer
}

func openXLS(path string) (*xlsWorkbook, error) {
	// Charset fallback: some legacy files carry non-UTF-8 shared strings.
	wb, closer, err := xls.OpenWithCloser(path, "utf-8")
	if err != nil {
		wb, closer, err = xls.OpenWithCloser(path, "windows-1251")
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", filepath.Base(path), err)
		}
	}
	return &xlsWorkbook{wb: wb, closer: closer}, nil
}

func (w *xlsWorkbook) SheetNames() []string {
	names := make([]string, 0, w.wb.NumSheets())
	for i := 0; i < w.wb.NumSheets(); i++ {
		if sheet := w.wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

func (w *xlsWorkbook) Grid(sheet string) (*Grid, error) {
	for i := 0; i < w.wb.NumSheets(); i++ {
		ws := w.wb.GetSheet(i)
		if ws == nil || ws.Name != sheet {
			continue
		}
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			rows = append(rows, cells)
		}
		return FromRows(rows), nil
	}
	return nil, fmt.Errorf("sheet %q not found", sheet)
}

func (w *xlsWorkbook) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
