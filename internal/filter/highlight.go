package filter

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"chngfilter/pkg/contracts/domain"
)

// sampleSize is the number of symbols reported in a Summary.
const sampleSize = 5

// SymbolSet collects the identifier values present in a table.
func SymbolSet(t domain.Table) map[string]struct{} {
	set := make(map[string]struct{}, len(t.Rows))
	for _, r := range t.Rows {
		sym, ok := r.Cells[t.SymbolColumn]
		if !ok {
			continue
		}
		set[sym] = struct{}{}
	}
	return set
}

// CrossHighlight filters source by sign within the bounds, collects the
// symbols of both subsets and selects the target rows whose symbol is in that
// set. Rows with an empty or absent symbol are never selected. Each selected
// row is classified by the sign of the target's own change value.
func CrossHighlight(source, target domain.Table, minBound, maxBound float64) domain.Highlight {
	symbols := SymbolSet(Union(SplitBySign(source, minBound, maxBound)))

	rows := target.Derive(0)
	var classes []domain.Sign
	for _, r := range target.Rows {
		sym, ok := r.Cells[target.SymbolColumn]
		if !ok || sym == "" {
			continue
		}
		if _, hit := symbols[sym]; !hit {
			continue
		}
		rows.Rows = append(rows.Rows, r)
		classes = append(classes, Classify(r.Change))
	}
	return domain.Highlight{Rows: rows, Classes: classes}
}

// Summarize counts rows and distinct non-empty symbols, samples up to five
// symbols in sorted order and averages the present change values.
func Summarize(t domain.Table) domain.Summary {
	set := SymbolSet(t)
	delete(set, "")

	symbols := make([]string, 0, len(set))
	for s := range set {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	if len(symbols) > sampleSize {
		symbols = symbols[:sampleSize]
	}

	sum := decimal.Zero
	n := int64(0)
	for _, r := range t.Rows {
		if !r.HasChange() || math.IsInf(r.Change, 0) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(r.Change))
		n++
	}
	mean := decimal.Zero
	if n > 0 {
		mean = sum.Div(decimal.NewFromInt(n)).Round(4)
	}

	return domain.Summary{
		Rows:          t.Len(),
		UniqueSymbols: len(set),
		SampleSymbols: symbols,
		MeanChange:    mean,
	}
}
