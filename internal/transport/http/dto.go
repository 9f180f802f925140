package http

import (
	"math"

	"chngfilter/internal/filter"
	"chngfilter/internal/services"
	"chngfilter/pkg/contracts/domain"
)

// DefaultPreviewRows is the number of rows previewed per subset when the
// request does not say.
const DefaultPreviewRows = 5

// FilterRequest is the body of the filter and export endpoints. Absent
// fields take the defaults: thresholds -0.71/0.71 and both exclusion
// switches on.
type FilterRequest struct {
	MinThreshold   *float64 `json:"min_threshold,omitempty"`
	MaxThreshold   *float64 `json:"max_threshold,omitempty"`
	ExcludeMissing *bool    `json:"exclude_missing,omitempty"`
	ExcludeZero    *bool    `json:"exclude_zero,omitempty"`
	PreviewRows    *int     `json:"preview_rows,omitempty" validate:"omitempty,gte=0,lte=1000"`
}

// ToOptions fills in the defaults.
func (req *FilterRequest) ToOptions() domain.FilterOptions {
	opts := domain.DefaultFilterOptions()
	if req.MinThreshold != nil {
		opts.Min = *req.MinThreshold
	}
	if req.MaxThreshold != nil {
		opts.Max = *req.MaxThreshold
	}
	if req.ExcludeMissing != nil {
		opts.ExcludeMissing = *req.ExcludeMissing
	}
	if req.ExcludeZero != nil {
		opts.ExcludeZero = *req.ExcludeZero
	}
	return opts
}

// Preview returns the requested preview size.
func (req *FilterRequest) Preview() int {
	if req.PreviewRows == nil {
		return DefaultPreviewRows
	}
	return *req.PreviewRows
}

// RowDTO is a previewed row. Change is null when the value is missing.
type RowDTO struct {
	Index  int               `json:"index"`
	Symbol string            `json:"symbol"`
	Change *float64          `json:"change"`
	Class  domain.Sign       `json:"class,omitempty"`
	Cells  map[string]string `json:"cells"`
}

// SubsetDTO is one result table: its summary and the first rows.
type SubsetDTO struct {
	Summary domain.Summary `json:"summary"`
	Columns []string       `json:"columns"`
	Preview []RowDTO       `json:"preview"`
}

// SplitResponse is the body returned by POST /api/filter/split.
type SplitResponse struct {
	Options  domain.FilterOptions `json:"options"`
	Positive SubsetDTO            `json:"positive"`
	Negative SubsetDTO            `json:"negative"`
}

// HighlightResponse is the body returned by POST /api/filter/highlight.
type HighlightResponse struct {
	Options           domain.FilterOptions `json:"options"`
	FilteredFirst     SubsetDTO            `json:"filtered_first"`
	HighlightedSecond SubsetDTO            `json:"highlighted_second"`
}

// TablesResponse lists the loaded tables.
type TablesResponse struct {
	Tables []services.TableInfo `json:"tables"`
	Count  int                  `json:"count"`
}

func newSplitResponse(res *services.SplitResult, preview int) SplitResponse {
	return SplitResponse{
		Options:  res.Options,
		Positive: newSubset(res.Split.Positive, nil, res.Positive, preview),
		Negative: newSubset(res.Split.Negative, nil, res.Negative, preview),
	}
}

func newHighlightResponse(res *services.HighlightResult, preview int) HighlightResponse {
	return HighlightResponse{
		Options:           res.Options,
		FilteredFirst:     newSubset(res.Filtered, nil, res.First, preview),
		HighlightedSecond: newSubset(res.Highlight.Rows, res.Highlight.Classes, res.Highlighted, preview),
	}
}

func newSubset(t domain.Table, classes []domain.Sign, summary domain.Summary, preview int) SubsetDTO {
	head := filter.Head(t, preview)
	rows := make([]RowDTO, 0, head.Len())
	for i, r := range head.Rows {
		dto := RowDTO{
			Index:  r.Index,
			Symbol: t.Symbol(r),
			Cells:  r.Cells,
		}
		if r.HasChange() && !math.IsInf(r.Change, 0) {
			v := r.Change
			dto.Change = &v
		}
		if i < len(classes) {
			dto.Class = classes[i]
		}
		rows = append(rows, dto)
	}
	return SubsetDTO{Summary: summary, Columns: t.Columns, Preview: rows}
}
