package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"chngfilter/pkg/contracts/domain"
)

var (
	// ErrEmptyInput is returned when a file has no header row.
	ErrEmptyInput = errors.New("no columns to parse from file")
	// ErrUnsupportedFormat is returned for extensions other than .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// headerScanRows bounds how far down a worksheet the header row is searched.
const headerScanRows = 20

// ParseCSV reads a comma separated table. The first record is the header.
func ParseCSV(name string, r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return domain.Table{}, fmt.Errorf("%s: %w", name, ErrEmptyInput)
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read CSV header of %s: %w", name, err)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to read CSV record %d of %s: %w", len(records)+1, name, err)
		}
		records = append(records, rec)
	}

	return buildTable(name, header, records), nil
}

// ParseXLSX reads a workbook. The first worksheet holding a header row is
// used; a header row is the first non-blank row, or the first row mentioning
// changeColumn within the top rows when changeColumn is set.
func ParseXLSX(name string, r io.Reader, changeColumn string) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, name, err)
		}
		headerRow := findHeaderRow(rows, changeColumn)
		if headerRow < 0 {
			continue
		}
		return buildTable(name, rows[headerRow], rows[headerRow+1:]), nil
	}
	return domain.Table{}, fmt.Errorf("%s: %w", name, ErrEmptyInput)
}

// findHeaderRow returns the index of the header row or -1.
func findHeaderRow(rows [][]string, changeColumn string) int {
	first := -1
	want := strings.TrimSpace(changeColumn)
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if first < 0 {
			first = i
		}
		if want == "" || i >= headerScanRows {
			break
		}
		for _, cell := range row {
			if strings.TrimSpace(cell) == want {
				return i
			}
		}
	}
	return first
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isEmptyLine reports whether a record came from a line with no fields.
// encoding/csv already drops "\n\n"; a whitespace-only line still arrives as
// one field, and excelize returns blank worksheet rows as empty slices.
func isEmptyLine(rec []string) bool {
	return len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "")
}

// buildTable turns a header and its records into a raw table. Empty lines are
// skipped; a record of empty fields such as ",,," is kept as a row of
// missing values.
func buildTable(name string, header []string, records [][]string) domain.Table {
	columns := domain.UniqueColumns(header)
	t := domain.Table{
		Name:    name,
		Columns: columns,
		Rows:    make([]domain.Row, 0, len(records)),
	}
	for _, rec := range records {
		if isEmptyLine(rec) {
			continue
		}
		cells := make(map[string]string, len(columns))
		for j, col := range columns {
			if j < len(rec) {
				cells[col] = rec[j]
			} else {
				cells[col] = ""
			}
		}
		t.Rows = append(t.Rows, domain.Row{
			Index:  len(t.Rows),
			Cells:  cells,
			Change: domain.Missing(),
		})
	}
	return t
}
