package exporter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"chngfilter/pkg/contracts/domain"
)

// WorkbookExporter renders sheets into an xlsx workbook.
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter.
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	return &WorkbookExporter{
		logger: logger.With(slog.String("component", "workbook_exporter")),
	}
}

// styles holds the style ids registered on one workbook.
type styles struct {
	header   int
	positive int
	negative int
}

// Write renders the sheets, in order, into a workbook written to w.
func (e *WorkbookExporter) Write(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	st, err := registerStyles(f)
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, st); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet.Name, err)
		}
		e.logger.Debug("sheet written",
			slog.String("sheet", sheet.Name),
			slog.Int("rows", sheet.Table.Len()))
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Bytes renders the sheets and returns the workbook content.
func (e *WorkbookExporter) Bytes(sheets ...Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, sheets...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveAs renders the sheets into a workbook file.
func (e *WorkbookExporter) SaveAs(path string, sheets ...Sheet) error {
	data, err := e.Bytes(sheets...)
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	e.logger.Info("workbook saved",
		slog.String("path", path),
		slog.Int("sheets", len(sheets)))
	return nil
}

func registerStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, fmt.Errorf("failed to create header style: %w", err)
	}
	if st.positive, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{ColorPositive}},
	}); err != nil {
		return st, fmt.Errorf("failed to create positive style: %w", err)
	}
	if st.negative, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{ColorNegative}},
	}); err != nil {
		return st, fmt.Errorf("failed to create negative style: %w", err)
	}
	return st, nil
}

func writeSheet(f *excelize.File, sheet Sheet, st styles) error {
	t := sheet.Table

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}
	if len(t.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, st.header); err != nil {
			return err
		}
	}

	changeCol := -1
	for i, col := range t.Columns {
		if col == t.ChangeColumn {
			changeCol = i + 1
		}
	}

	numeric := numericColumns(t)
	for i, r := range t.Rows {
		rowNum := i + 2
		values := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			values[j] = cellValue(t, r, col, numeric[col])
		}
		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, start, &values); err != nil {
			return err
		}

		if changeCol < 0 || i >= len(sheet.Classes) {
			continue
		}
		style := 0
		switch sheet.Classes[i] {
		case domain.SignPositive:
			style = st.positive
		case domain.SignNegative:
			style = st.negative
		}
		if style == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(changeCol, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}
