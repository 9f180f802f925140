package domain

import (
	"math"
	"strconv"
)

// Default column names used by the NSE style market snapshot files.
const (
	DefaultChangeColumn = "%CHNG"
	DefaultSymbolColumn = "SYMBOL"
)

// Columns names the two columns the filter engine depends on.
type Columns struct {
	Change string `json:"change" yaml:"change"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// DefaultColumns returns the column names of the standard market snapshot.
func DefaultColumns() Columns {
	return Columns{
		Change: DefaultChangeColumn,
		Symbol: DefaultSymbolColumn,
	}
}

// Row is a single data row of a loaded table.
//
// Cells maps a column name to its raw text. Change holds the parsed value of
// the percent-change column, or NaN when the cell was empty or unparseable.
type Row struct {
	Index  int               `json:"index"`
	Cells  map[string]string `json:"cells"`
	Change float64           `json:"-"`
}

// HasChange reports whether the percent-change value is present.
func (r Row) HasChange() bool {
	return !math.IsNaN(r.Change)
}

// Value returns the raw cell text for a column, or "" if the column is absent.
func (r Row) Value(column string) string {
	return r.Cells[column]
}

// Table is an ordered sequence of rows loaded from one uploaded file.
// Tables are never mutated once built; filters return new tables that share
// row values with their source.
type Table struct {
	Name         string   `json:"name"`
	Columns      []string `json:"columns"`
	Rows         []Row    `json:"rows"`
	ChangeColumn string   `json:"change_column"`
	SymbolColumn string   `json:"symbol_column"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Symbol returns the identifier of a row.
func (t Table) Symbol(r Row) string {
	return r.Cells[t.SymbolColumn]
}

// Derive returns an empty table with the same shape, ready to receive a subset of rows.
func (t Table) Derive(capacity int) Table {
	return Table{
		Name:         t.Name,
		Columns:      t.Columns,
		Rows:         make([]Row, 0, capacity),
		ChangeColumn: t.ChangeColumn,
		SymbolColumn: t.SymbolColumn,
	}
}

// UniqueColumns suffixes repeated names with ".1", ".2", ... so every
// column keys its own cell. The first occurrence keeps the bare name.
func UniqueColumns(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, h := range names {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			out[i] = h
			continue
		}
		name := h + "." + strconv.Itoa(n)
		for {
			if _, taken := seen[name]; !taken {
				break
			}
			n++
			name = h + "." + strconv.Itoa(n)
		}
		seen[name] = 1
		out[i] = name
	}
	return out
}

// Missing is the marker stored in Row.Change for absent values.
func Missing() float64 {
	return math.NaN()
}
