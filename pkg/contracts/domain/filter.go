package domain

import (
	"github.com/shopspring/decimal"
)

// Default percent-change bounds.
const (
	DefaultMinThreshold = -0.71
	DefaultMaxThreshold = 0.71
)

// Thresholds are the inclusive bounds used by sign filtering. Min bounds the
// negative subset from below, Max bounds the positive subset from above.
type Thresholds struct {
	Min float64 `json:"min_threshold"`
	Max float64 `json:"max_threshold"`
}

// DefaultThresholds returns the (-0.71, 0.71) pair.
func DefaultThresholds() Thresholds {
	return Thresholds{Min: DefaultMinThreshold, Max: DefaultMaxThreshold}
}

// FilterOptions is the full parameter set of one filter invocation.
type FilterOptions struct {
	Thresholds
	ExcludeMissing bool `json:"exclude_missing"`
	ExcludeZero    bool `json:"exclude_zero"`
}

// DefaultFilterOptions returns the defaults: default thresholds and both
// exclusion switches on.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Thresholds:     DefaultThresholds(),
		ExcludeMissing: true,
		ExcludeZero:    true,
	}
}

// Sign classifies a row by the sign of its percent change.
type Sign string

const (
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
	SignNeutral  Sign = "neutral"
)

// Split holds the two sign subsets of a table.
type Split struct {
	Positive Table
	Negative Table
}

// Highlight is the result of a cross-table highlight: the rows selected from
// the target table and, aligned by position, their sign classification.
type Highlight struct {
	Rows    Table
	Classes []Sign
}

// Summary describes a filtered table for display.
type Summary struct {
	Rows          int             `json:"rows"`
	UniqueSymbols int             `json:"unique_symbols"`
	SampleSymbols []string        `json:"sample_symbols"`
	MeanChange    decimal.Decimal `json:"mean_change"`
}
