package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"chngfilter/internal/exporter"
	"chngfilter/internal/filter"
	"chngfilter/internal/infrastructure"
	"chngfilter/pkg/contracts/domain"
)

// Slot names one of the two tables held by a session.
type Slot string

const (
	SlotFirst  Slot = "first"
	SlotSecond Slot = "second"
)

// Filter modes, used as the mode label of metrics and spans.
const (
	ModeSplit     = "split"
	ModeHighlight = "highlight"
)

// ParseSlot validates a slot name.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotFirst, SlotSecond:
		return Slot(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSlot, s)
}

// TableLoader turns an uploaded file into a raw table.
type TableLoader interface {
	Load(name string, r io.Reader) (domain.Table, error)
}

// TableInfo describes a loaded table.
type TableInfo struct {
	ID              string         `json:"id"`
	Slot            Slot           `json:"slot"`
	Name            string         `json:"name"`
	Rows            int            `json:"rows"`
	Columns         []string       `json:"columns"`
	HasChangeColumn bool           `json:"has_change_column"`
	HasSymbolColumn bool           `json:"has_symbol_column"`
	LoadedAt        time.Time      `json:"loaded_at"`
	Summary         domain.Summary `json:"summary"`
}

// loadedTable is a normalized table held in a slot.
type loadedTable struct {
	id       uuid.UUID
	table    domain.Table
	loadedAt time.Time
}

// SplitResult is the output of split mode.
type SplitResult struct {
	Options  domain.FilterOptions
	Split    domain.Split
	Positive domain.Summary
	Negative domain.Summary
}

// HighlightResult is the output of highlight mode.
type HighlightResult struct {
	Options     domain.FilterOptions
	Filtered    domain.Table
	Highlight   domain.Highlight
	First       domain.Summary
	Highlighted domain.Summary
}

// Export is a rendered workbook ready for download.
type Export struct {
	FileName string
	Data     []byte
}

// FilterService holds the two tables of a session and runs the filter modes
// over them. Loading replaces a slot; filtering never modifies the stored tables.
type FilterService struct {
	loader   TableLoader
	workbook *exporter.WorkbookExporter
	columns  domain.Columns
	tracer   trace.Tracer
	metrics  *infrastructure.FilterMetrics
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	tables map[Slot]*loadedTable
}

// NewFilterService creates a filter service with an empty session.
func NewFilterService(loader TableLoader, workbook *exporter.WorkbookExporter, columns domain.Columns, logger *slog.Logger) *FilterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilterService{
		loader:   loader,
		workbook: workbook,
		columns:  columns,
		tracer:   otel.Tracer(infrastructure.MeterName),
		logger:   logger.With(slog.String("service", "filter")),
		now:      time.Now,
		tables:   make(map[Slot]*loadedTable, 2),
	}
}

// WithTelemetry sets the tracer and metrics used for each invocation.
func (s *FilterService) WithTelemetry(tracer trace.Tracer, metrics *infrastructure.FilterMetrics) *FilterService {
	if tracer != nil {
		s.tracer = tracer
	}
	s.metrics = metrics
	return s
}

// LoadTable parses r, normalizes it and stores it in slot, replacing any
// table already there.
func (s *FilterService) LoadTable(ctx context.Context, slot Slot, name string, r io.Reader) (*TableInfo, error) {
	ctx, span := s.tracer.Start(ctx, "FilterService.LoadTable",
		trace.WithAttributes(attribute.String("slot", string(slot)), attribute.String("file", name)))
	defer span.End()

	if _, err := ParseSlot(string(slot)); err != nil {
		return nil, err
	}

	raw, err := s.loader.Load(name, r)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lt := &loadedTable{
		id:       uuid.New(),
		table:    filter.Normalize(raw, s.columns),
		loadedAt: s.now(),
	}

	s.mu.Lock()
	s.tables[slot] = lt
	s.mu.Unlock()

	info := describe(slot, lt)
	if !info.HasChangeColumn {
		s.logger.WarnContext(ctx, "change column not found, every value is missing",
			slog.String("slot", string(slot)),
			slog.String("column", s.columns.Change))
	}
	s.logger.InfoContext(ctx, "table stored",
		slog.String("slot", string(slot)),
		slog.String("table_id", info.ID),
		slog.String("file", name),
		slog.Int("rows", info.Rows))
	span.SetAttributes(attribute.Int("rows", info.Rows))

	return info, nil
}

// Tables describes the loaded tables in slot order.
func (s *FilterService) Tables(ctx context.Context) []TableInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]TableInfo, 0, 2)
	for _, slot := range []Slot{SlotFirst, SlotSecond} {
		if lt, ok := s.tables[slot]; ok {
			infos = append(infos, *describe(slot, lt))
		}
	}
	return infos
}

// RemoveTable empties slot.
func (s *FilterService) RemoveTable(ctx context.Context, slot Slot) error {
	if _, err := ParseSlot(string(slot)); err != nil {
		return err
	}

	s.mu.Lock()
	_, ok := s.tables[slot]
	delete(s.tables, slot)
	s.mu.Unlock()

	if !ok {
		return &TableNotLoadedError{Slot: slot}
	}
	s.logger.InfoContext(ctx, "table removed", slog.String("slot", string(slot)))
	return nil
}

// Split runs split mode on the first table: exclusion switches, then the
// sign split within the thresholds.
func (s *FilterService) Split(ctx context.Context, opts domain.FilterOptions) (*SplitResult, error) {
	ctx, span := s.startMode(ctx, ModeSplit, opts)
	defer span.End()
	start := time.Now()

	first, err := s.table(SlotFirst)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	source := filter.ExcludeValues(first, opts.ExcludeMissing, opts.ExcludeZero)
	split := filter.SplitBySign(source, opts.Min, opts.Max)

	result := &SplitResult{
		Options:  opts,
		Split:    split,
		Positive: filter.Summarize(split.Positive),
		Negative: filter.Summarize(split.Negative),
	}

	s.finishMode(ctx, span, ModeSplit, start, map[string]int{
		"positive": split.Positive.Len(),
		"negative": split.Negative.Len(),
	})
	return result, nil
}

// Highlight runs highlight mode: the first table is filtered by sign within
// the thresholds and its symbols select rows of the second table.
func (s *FilterService) Highlight(ctx context.Context, opts domain.FilterOptions) (*HighlightResult, error) {
	ctx, span := s.startMode(ctx, ModeHighlight, opts)
	defer span.End()
	start := time.Now()

	first, err := s.table(SlotFirst)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	second, err := s.table(SlotSecond)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	source := filter.ExcludeValues(first, opts.ExcludeMissing, opts.ExcludeZero)
	filtered := filter.Union(filter.SplitBySign(source, opts.Min, opts.Max))
	hl := filter.CrossHighlight(source, second, opts.Min, opts.Max)

	result := &HighlightResult{
		Options:     opts,
		Filtered:    filtered,
		Highlight:   hl,
		First:       filter.Summarize(filtered),
		Highlighted: filter.Summarize(hl.Rows),
	}

	s.finishMode(ctx, span, ModeHighlight, start, map[string]int{
		"filtered":    filtered.Len(),
		"highlighted": hl.Rows.Len(),
	})
	return result, nil
}

// ExportSplit renders split mode as the Positive/Negative workbook.
func (s *FilterService) ExportSplit(ctx context.Context, opts domain.FilterOptions) (*Export, error) {
	result, err := s.Split(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, exporter.SplitFileName, exporter.SplitSheets(result.Split))
}

// ExportHighlight renders highlight mode as the Filtered First/Highlighted
// Second workbook.
func (s *FilterService) ExportHighlight(ctx context.Context, opts domain.FilterOptions) (*Export, error) {
	result, err := s.Highlight(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, exporter.HighlightFileName, exporter.HighlightSheets(result.Filtered, result.Highlight))
}

func (s *FilterService) render(ctx context.Context, fileName string, sheets []exporter.Sheet) (*Export, error) {
	ctx, span := s.tracer.Start(ctx, "FilterService.render", trace.WithAttributes(attribute.String("file", fileName)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.workbook.Bytes(sheets...)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to render %s: %w", fileName, err)
	}
	s.logger.InfoContext(ctx, "workbook rendered",
		slog.String("file", fileName),
		slog.Int("bytes", len(data)))
	return &Export{FileName: fileName, Data: data}, nil
}

// table returns the table in slot or a TableNotLoadedError.
func (s *FilterService) table(slot Slot) (domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lt, ok := s.tables[slot]
	if !ok {
		return domain.Table{}, &TableNotLoadedError{Slot: slot}
	}
	return lt.table, nil
}

func (s *FilterService) startMode(ctx context.Context, mode string, opts domain.FilterOptions) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "FilterService."+mode, trace.WithAttributes(
		attribute.String("mode", mode),
		attribute.Float64("min_threshold", opts.Min),
		attribute.Float64("max_threshold", opts.Max),
		attribute.Bool("exclude_missing", opts.ExcludeMissing),
		attribute.Bool("exclude_zero", opts.ExcludeZero),
	))
}

func (s *FilterService) finishMode(ctx context.Context, span trace.Span, mode string, start time.Time, matched map[string]int) {
	elapsed := time.Since(start)
	s.metrics.RecordInvocation(ctx, mode, elapsed, matched)

	attrs := []any{slog.String("mode", mode), slog.Duration("duration", elapsed)}
	for subset, n := range matched {
		span.SetAttributes(attribute.Int("rows."+subset, n))
		attrs = append(attrs, slog.Int(subset, n))
	}
	s.logger.InfoContext(ctx, "filter applied", attrs...)
}

func describe(slot Slot, lt *loadedTable) *TableInfo {
	return &TableInfo{
		ID:              lt.id.String(),
		Slot:            slot,
		Name:            lt.table.Name,
		Rows:            lt.table.Len(),
		Columns:         lt.table.Columns,
		HasChangeColumn: lt.table.HasColumn(lt.table.ChangeColumn),
		HasSymbolColumn: lt.table.HasColumn(lt.table.SymbolColumn),
		LoadedAt:        lt.loadedAt,
		Summary:         filter.Summarize(lt.table),
	}
}
