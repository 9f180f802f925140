package filter

import (
	"math"
	"strconv"
	"strings"

	"chngfilter/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// Normalize trims surrounding whitespace from every column name and parses
// the change column into Row.Change. Unparseable, empty and NaN cells become
// the missing marker. If the change column does not exist every row is
// missing, so all range predicates yield nothing.
//
// Names that collide once trimmed are suffixed in column order, so the
// leftmost column keeps the bare name.
func Normalize(t domain.Table, cols domain.Columns) domain.Table {
	out := domain.Table{
		Name:         t.Name,
		Columns:      make([]string, len(t.Columns)),
		Rows:         make([]domain.Row, len(t.Rows)),
		ChangeColumn: strings.TrimSpace(cols.Change),
		SymbolColumn: strings.TrimSpace(cols.Symbol),
	}

	for i, c := range t.Columns {
		out.Columns[i] = strings.TrimSpace(strings.TrimPrefix(c, utf8BOM))
	}
	out.Columns = domain.UniqueColumns(out.Columns)

	for i, r := range t.Rows {
		cells := make(map[string]string, len(r.Cells))
		for j, c := range t.Columns {
			if v, ok := r.Cells[c]; ok {
				cells[out.Columns[j]] = v
			}
		}
		raw, ok := cells[out.ChangeColumn]
		change := domain.Missing()
		if ok {
			change = ParseChange(raw)
		}
		out.Rows[i] = domain.Row{Index: r.Index, Cells: cells, Change: change}
	}
	return out
}

// ParseChange coerces a cell to a number, returning the missing marker when
// the text is not numeric.
func ParseChange(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.Missing()
	}
	if isHexLiteral(s) {
		return domain.Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Missing()
	}
	return v
}

// isHexLiteral reports whether s is a 0x prefixed number, which
// strconv.ParseFloat would accept but is not decimal text.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// SplitBySign partitions a table into rows with a present change in
// (0, maxBound] and rows with a present change in [minBound, 0). Zero and
// missing rows belong to neither subset.
func SplitBySign(t domain.Table, minBound, maxBound float64) domain.Split {
	pos := t.Derive(0)
	neg := t.Derive(0)
	for _, r := range t.Rows {
		switch {
		case !r.HasChange():
		case r.Change > 0 && r.Change <= maxBound:
			pos.Rows = append(pos.Rows, r)
		case r.Change < 0 && r.Change >= minBound:
			neg.Rows = append(neg.Rows, r)
		}
	}
	return domain.Split{Positive: pos, Negative: neg}
}

// ExcludeValues drops rows whose change is missing and/or zero, according to
// the two switches. With both switches off the table is returned unchanged.
func ExcludeValues(t domain.Table, excludeMissing, excludeZero bool) domain.Table {
	if !excludeMissing && !excludeZero {
		return t
	}
	out := t.Derive(len(t.Rows))
	for _, r := range t.Rows {
		if excludeMissing && !r.HasChange() {
			continue
		}
		if excludeZero && r.Change == 0 {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// Union concatenates the positive subset followed by the negative subset.
func Union(s domain.Split) domain.Table {
	out := s.Positive.Derive(s.Positive.Len() + s.Negative.Len())
	out.Rows = append(out.Rows, s.Positive.Rows...)
	out.Rows = append(out.Rows, s.Negative.Rows...)
	return out
}

// Classify returns the sign class of a change value. Missing values are neutral.
func Classify(v float64) domain.Sign {
	switch {
	case math.IsNaN(v):
		return domain.SignNeutral
	case v > 0:
		return domain.SignPositive
	case v < 0:
		return domain.SignNegative
	default:
		return domain.SignNeutral
	}
}

// Head returns at most the first n rows of a table.
func Head(t domain.Table, n int) domain.Table {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	out := t.Derive(n)
	out.Rows = append(out.Rows, t.Rows[:n]...)
	return out
}
