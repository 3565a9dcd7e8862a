package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"xlcombine/internal/combine"
	"xlcombine/internal/config"
	"xlcombine/internal/files"
	"xlcombine/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory containing .xls/.xlsx files (prompts when omitted)")
	outName := flag.String("out", "", "output workbook file name (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := infrastructure.ContextWithRunID(context.Background())

	fmt.Println("Excel Files Combiner - All Sheets with Dynamic Header Detection")
	fmt.Println(strings.Repeat("=", 60))

	reader := bufio.NewReader(os.Stdin)
	interactive := *inDir == ""

	dir := *inDir
	if interactive {
		dir = prompt(reader, "\nEnter the folder path containing Excel files: ")
	}

	if !files.DirExists(dir) {
		fmt.Printf("Error: Folder '%s' does not exist\n", dir)
		os.Exit(1)
	}

	name := *outName
	if interactive && name == "" {
		name = prompt(reader, fmt.Sprintf("Enter output filename (press Enter for '%s'): ", cfg.Output.FileName))
	}
	name = normalizeOutputName(name, cfg.Output.FileName)

	logger.InfoContext(ctx, "Starting run",
		slog.String("input_dir", dir),
		slog.String("output_file", name))

	fmt.Println()
	summary, err := combine.New(cfg, logger).Run(ctx, dir, name)
	switch {
	case errors.Is(err, combine.ErrNoFiles):
		fmt.Printf("No Excel files found in %s\n", dir)
		return
	case errors.Is(err, combine.ErrNoData):
		fmt.Println("No valid data found to combine")
		return
	case err != nil:
		logger.ErrorContext(ctx, "Run failed", slog.String("error", err.Error()))
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Run complete",
		slog.Int("sheets_combined", summary.SheetsCombined),
		slog.Int("total_rows", summary.TotalRows),
		slog.String("output_path", summary.OutputPath))
}

// prompt reads one trimmed line from the console.
func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// normalizeOutputName applies the default output name and ensures the
// .xlsx extension on user-supplied names.
func normalizeOutputName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if !strings.HasSuffix(name, ".xlsx") {
		name += ".xlsx"
	}
	return name
}
