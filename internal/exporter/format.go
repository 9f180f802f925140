package exporter

import (
	"math"
	"strconv"
	"strings"

	"chngfilter/pkg/contracts/domain"
)

// formatChange renders a percent-change value for CSV output. Missing values
// become an empty cell.
func formatChange(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numericColumns reports which columns hold only numbers. A column is numeric
// when it has at least one non-empty cell and every non-empty cell parses as
// a float. The change column is always numeric.
func numericColumns(t domain.Table) map[string]bool {
	numeric := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		if col == t.ChangeColumn {
			numeric[col] = true
			continue
		}
		seen := false
		ok := true
		for _, r := range t.Rows {
			s := strings.TrimSpace(r.Cells[col])
			if s == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				ok = false
				break
			}
		}
		numeric[col] = seen && ok
	}
	return numeric
}

// cellValue returns the value written to a workbook cell: a float64 for
// numeric columns, the raw text otherwise, nil for empty cells.
func cellValue(t domain.Table, r domain.Row, col string, numeric bool) interface{} {
	if col == t.ChangeColumn {
		if !r.HasChange() || math.IsInf(r.Change, 0) {
			return nil
		}
		return r.Change
	}
	raw := r.Cells[col]
	if raw == "" {
		return nil
	}
	if numeric {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return v
		}
	}
	return raw
}

// recordOf renders a row as CSV fields in column order.
func recordOf(t domain.Table, r domain.Row) []string {
	rec := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		if col == t.ChangeColumn {
			rec[i] = formatChange(r.Change)
			continue
		}
		rec[i] = r.Cells[col]
	}
	return rec
}
