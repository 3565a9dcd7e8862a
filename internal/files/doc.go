// Package files provides file system discovery for the combiner.
//
// Discovery finds the Excel workbooks directly inside an input directory,
// skipping subdirectories and Office lock files, and reports them in a
// deterministic name order.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	excelFiles, err := discovery.FindExcelFiles("invoices")
package files
