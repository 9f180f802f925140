// Package dataprocessing loads uploaded market snapshot files into
// domain.Table values for the filter engine.
//
// Two formats are accepted, chosen by file extension:
//
//	.csv .txt    comma separated, first record is the header
//	.xlsx .xlsm  first worksheet that carries a header row; title rows above the
//	             header are skipped
//
// Loading is deliberately permissive. Ragged records are padded or cut to
// the header width, duplicate header names get a ".N" suffix and cell text is
// kept verbatim; trimming and numeric coercion belong to filter.Normalize.
// Only structurally unreadable input (no header, unknown extension, broken
// workbook) is reported as an error.
//
// Usage:
//
//	loader := dataprocessing.NewLoader(domain.DefaultColumns(), logger)
//	table, err := loader.LoadFile("snapshot.csv")
package dataprocessing
