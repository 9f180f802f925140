package exporter

import (
	"chngfilter/pkg/contracts/domain"
)

// Sheet and file names of the two export modes.
const (
	SheetFilteredFirst     = "Filtered First"
	SheetHighlightedSecond = "Highlighted Second"
	SheetPositive          = "Positive"
	SheetNegative          = "Negative"

	HighlightFileName = "combined_filtered_data.xlsx"
	SplitFileName     = "filtered_data.xlsx"
)

// Fill colors for classified change cells.
const (
	ColorPositive = "90EE90" // lightgreen
	ColorNegative = "F08080" // lightcoral
)

// Sheet is one worksheet of an export. Classes, when set, is aligned with
// Table.Rows and drives the change cell fill.
type Sheet struct {
	Name    string
	Table   domain.Table
	Classes []domain.Sign
}

// HighlightSheets lays out the highlight mode export: the range-filtered
// first table, then the highlighted rows of the second table.
func HighlightSheets(filtered domain.Table, hl domain.Highlight) []Sheet {
	return []Sheet{
		{Name: SheetFilteredFirst, Table: filtered},
		{Name: SheetHighlightedSecond, Table: hl.Rows, Classes: hl.Classes},
	}
}

// SplitSheets lays out the split mode export.
func SplitSheets(split domain.Split) []Sheet {
	return []Sheet{
		{Name: SheetPositive, Table: split.Positive},
		{Name: SheetNegative, Table: split.Negative},
	}
}
