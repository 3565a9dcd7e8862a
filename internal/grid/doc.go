// Package grid is the workbook boundary for the combiner. It reads .xlsx
// and legacy .xls files into rectangular string grids and writes the
// combined result back out as a single-sheet .xlsx workbook.
//
// The rest of the application never touches a spreadsheet library
// directly; everything upstream of this package works on Grid values.
package grid
