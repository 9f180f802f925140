package http

import (
	"context"
	"io"

	"chngfilter/internal/services"
	"chngfilter/pkg/contracts/domain"
)

// TableService defines the table session operations used by TableHandler.
type TableService interface {
	LoadTable(ctx context.Context, slot services.Slot, name string, r io.Reader) (*services.TableInfo, error)
	Tables(ctx context.Context) []services.TableInfo
	RemoveTable(ctx context.Context, slot services.Slot) error
}

// FilterService defines the filter modes used by FilterHandler.
type FilterService interface {
	Split(ctx context.Context, opts domain.FilterOptions) (*services.SplitResult, error)
	Highlight(ctx context.Context, opts domain.FilterOptions) (*services.HighlightResult, error)
	ExportSplit(ctx context.Context, opts domain.FilterOptions) (*services.Export, error)
	ExportHighlight(ctx context.Context, opts domain.FilterOptions) (*services.Export, error)
}
