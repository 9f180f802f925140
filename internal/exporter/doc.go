// Package exporter writes filter results as spreadsheets.
//
// WorkbookExporter renders one or more Sheets into a single xlsx workbook.
// A sheet built from a cross-highlight result fills the percent-change cell of
// each row light green (positive) or light coral (negative).
//
// CSVWriter writes the same sheets as one CSV file per sheet, prefixed with a
// UTF-8 BOM so Excel detects the encoding.
//
// Example usage:
//
//	sheets := exporter.HighlightSheets(filtered, highlight)
//	err := exporter.NewWorkbookExporter(logger).Write(w, sheets...)
package exporter
