package combine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"xlcombine/internal/config"
	"xlcombine/internal/extract"
	"xlcombine/internal/grid"
)

// writeFixture builds a workbook at path with the given sheets, each a
// block of rows starting at A1.
func writeFixture(t *testing.T, path string, sheets map[string][][]string) {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			f.SetSheetName(f.GetSheetName(0), name)
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cells := make([]interface{}, len(row))
			for j, v := range row {
				cells[j] = v
			}
			require.NoError(t, f.SetSheetRow(name, fmt.Sprintf("A%d", i+1), &cells))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

// readOutput loads the single sheet of the combined workbook back as rows.
func readOutput(t *testing.T, path string) [][]string {
	t.Helper()

	wb, err := grid.Open(path)
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, []string{"Sheet1"}, wb.SheetNames())
	g, err := wb.Grid("Sheet1")
	require.NoError(t, err)

	rows := make([][]string, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		rows[r] = make([]string, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			rows[r][c] = g.Cell(r, c)
		}
	}
	return rows
}

func newCombiner() (*Combiner, *bytes.Buffer) {
	c := New(config.Default(), nil)
	var buf bytes.Buffer
	c.Out = &buf
	return c, &buf
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "report.xlsx"), map[string][][]string{
		"28-Oct-25": {
			{"Daily QC Log"},
			{},
			{"Sl. No.", "Name", "Sample"},
			{"1", "Alpha", "S-1"},
			{"2", "Beta", "S-2"},
			{"Total", "", ""},
		},
	})

	c, out := newCombiner()
	summary, err := c.Run(context.Background(), dir, "combined_output.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SheetsCombined)
	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, filepath.Join(dir, "combined_output.xlsx"), summary.OutputPath)

	rows := readOutput(t, summary.OutputPath)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Sl. No.", "Name", "Sample", "Source_File", "Sheet_Name", "Date"}, rows[0])
	assert.Equal(t, []string{"1", "Alpha", "S-1", "report.xlsx", "28-Oct-25", "2025-10-28"}, rows[1])
	assert.Equal(t, []string{"2", "Beta", "S-2", "report.xlsx", "28-Oct-25", "2025-10-28"}, rows[2])

	assert.Contains(t, out.String(), "Found 1 Excel file(s)")
	assert.Contains(t, out.String(), "✓ Extracted 2 rows (Header at row 3, Total/Summary at row 6)")
	assert.Contains(t, out.String(), "✓ Total rows: 2")
}

func TestRunUnionsColumnsAcrossFiles(t *testing.T) {
	dir := t.TempDir()

	// File names force processing order: a_ before b_.
	writeFixture(t, filepath.Join(dir, "a_narrow.xlsx"), map[string][][]string{
		"01-11-25": {
			{"Sl. No.", "Name", "Sample"},
			{"1", "Alpha", "S-1"},
			{"Total", "", ""},
		},
	})
	writeFixture(t, filepath.Join(dir, "b_wide.xlsx"), map[string][][]string{
		"02-11-25": {
			{"Sl. No.", "Name", "Remarks", "Sample"},
			{"1", "Gamma", "retest", "S-9"},
			{"Total", "", "", ""},
		},
	})

	c, _ := newCombiner()
	summary, err := c.Run(context.Background(), dir, "combined_output.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SheetsCombined)

	rows := readOutput(t, summary.OutputPath)
	require.Len(t, rows, 3)

	// Data columns in first-seen order, metadata fixed at the end.
	assert.Equal(t, []string{"Sl. No.", "Name", "Sample", "Remarks", "Source_File", "Sheet_Name", "Date"}, rows[0])

	// The narrow file's row has a blank Remarks cell.
	assert.Equal(t, []string{"1", "Alpha", "S-1", "", "a_narrow.xlsx", "01-11-25", "2025-11-01"}, rows[1])
	assert.Equal(t, []string{"1", "Gamma", "S-9", "retest", "b_wide.xlsx", "02-11-25", "2025-11-02"}, rows[2])
}

func TestRunSkipsSheetsWithoutMarkers(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "mixed.xlsx"), map[string][][]string{
		"good": {
			{"Sl. No.", "Name", "Sample"},
			{"1", "Alpha", "S-1"},
			{"Total", "", ""},
		},
	})
	writeFixture(t, filepath.Join(dir, "noheader.xlsx"), map[string][][]string{
		"stats": {
			{"Totally", "Different", "Layout"},
			{"1", "2", "3"},
		},
	})

	c, out := newCombiner()
	summary, err := c.Run(context.Background(), dir, "combined_output.xlsx")
	require.NoError(t, err)

	// The markerless sheet contributes zero rows.
	assert.Equal(t, 1, summary.SheetsCombined)
	assert.Equal(t, 1, summary.TotalRows)
	assert.Contains(t, out.String(), "⚠ Skipped: 'Sl. No.' not found")
}

func TestRunNoFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a workbook"), 0644))

	c, _ := newCombiner()
	_, err := c.Run(context.Background(), dir, "combined_output.xlsx")
	require.ErrorIs(t, err, ErrNoFiles)

	_, statErr := os.Stat(filepath.Join(dir, "combined_output.xlsx"))
	assert.True(t, os.IsNotExist(statErr), "no output must be written")
}

func TestRunNoValidData(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "empty.xlsx"), map[string][][]string{
		"sheet": {
			{"nothing", "to", "see"},
		},
	})

	c, _ := newCombiner()
	_, err := c.Run(context.Background(), dir, "combined_output.xlsx")
	require.ErrorIs(t, err, ErrNoData)

	_, statErr := os.Stat(filepath.Join(dir, "combined_output.xlsx"))
	assert.True(t, os.IsNotExist(statErr), "no output must be written")
}

func TestRunContinuesPastUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_corrupt.xlsx"), []byte("garbage"), 0644))
	writeFixture(t, filepath.Join(dir, "b_good.xlsx"), map[string][][]string{
		"sheet": {
			{"Sl. No.", "Name", "Sample"},
			{"1", "Alpha", "S-1"},
			{"Total", "", ""},
		},
	})

	c, out := newCombiner()
	summary, err := c.Run(context.Background(), dir, "combined_output.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SheetsCombined)
	assert.Contains(t, out.String(), "✗ Error reading file")
}

func TestRunDateParseErrorSurfacesAsData(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "report.xlsx"), map[string][][]string{
		"Overview": {
			{"Sl. No.", "Name", "Sample"},
			{"1", "Alpha", "S-1"},
			{"Total", "", ""},
		},
	})

	c, _ := newCombiner()
	summary, err := c.Run(context.Background(), dir, "combined_output.xlsx")
	require.NoError(t, err)

	rows := readOutput(t, summary.OutputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "PARSE_ERROR: Overview", rows[1][len(rows[1])-1])
}

func TestUnionColumns(t *testing.T) {
	tables := []*extract.Table{
		{
			Headers:    []string{"Sl. No.", "Name", "Sample"},
			Rows:       []map[string]string{{"Sl. No.": "1", "Name": "Alpha", "Sample": "S-1"}},
			SourceFile: "a.xlsx",
			SheetName:  "one",
			Date:       "2025-10-28",
		},
		{
			Headers:    []string{"Sl. No.", "Remarks", "Sample"},
			Rows:       []map[string]string{{"Sl. No.": "2", "Remarks": "ok", "Sample": "S-2"}},
			SourceFile: "b.xlsx",
			SheetName:  "two",
			Date:       "2025-10-29",
		},
	}

	headers, rows := unionColumns(tables)
	assert.Equal(t, []string{"Sl. No.", "Name", "Sample", "Remarks", "Source_File", "Sheet_Name", "Date"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Alpha", "S-1", "", "a.xlsx", "one", "2025-10-28"}, rows[0])
	assert.Equal(t, []string{"2", "", "S-2", "ok", "b.xlsx", "two", "2025-10-29"}, rows[1])
}
