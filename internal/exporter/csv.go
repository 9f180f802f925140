package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CSVWriter writes sheets as CSV files under a base directory.
type CSVWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewCSVWriter creates a CSV writer. Relative paths resolve against baseDir.
func NewCSVWriter(baseDir string, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{
		baseDir: baseDir,
		logger:  logger.With(slog.String("component", "csv_writer")),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM for Excel
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSheets writes each sheet to "<prefix>_<sheet>.csv" and returns the
// paths written.
func (w *CSVWriter) WriteSheets(prefix string, sheets ...Sheet) ([]string, error) {
	paths := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		name := sheetFileName(prefix, sheet.Name)
		records := make([][]string, 0, sheet.Table.Len())
		for _, r := range sheet.Table.Rows {
			records = append(records, recordOf(sheet.Table, r))
		}
		err := w.WriteCSV(name, WriteOptions{
			Headers:   sheet.Table.Columns,
			Records:   records,
			BOMPrefix: true,
		})
		if err != nil {
			return paths, fmt.Errorf("failed to write sheet %q: %w", sheet.Name, err)
		}
		paths = append(paths, w.resolvePath(name))
	}
	return paths, nil
}

// sheetFileName builds "filtered_data_positive.csv" style names.
func sheetFileName(prefix, sheet string) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(sheet), " ", "_"))
	if prefix == "" {
		return slug + ".csv"
	}
	return prefix + "_" + slug + ".csv"
}

// resolvePath anchors relative paths at the base directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.baseDir == "" {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
