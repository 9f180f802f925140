package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"chngfilter/internal/config"
	"chngfilter/internal/dataprocessing"
	"chngfilter/internal/exporter"
	"chngfilter/internal/infrastructure"
	"chngfilter/internal/services"
	"chngfilter/internal/validation"
	"chngfilter/pkg/contracts"
	"chngfilter/pkg/contracts/domain"
)

// Output formats.
const (
	formatXLSX = "xlsx"
	formatCSV  = "csv"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	First        string
	Second       string
	Mode         string
	Out          string
	Format       string
	ChangeColumn string
	SymbolColumn string
	Filter       domain.FilterOptions
	Version      bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.Version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = infrastructure.EnsureTraceID(ctx)
	if err := run(ctx, opts, cfg, logger, os.Stdout); err != nil {
		logger.ErrorContext(ctx, "Filter run failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// parseFlags reads the command line. Usage errors are printed to output.
func parseFlags(args []string, output io.Writer) (*cliOptions, error) {
	opts := &cliOptions{Filter: domain.DefaultFilterOptions()}

	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.First, "first", "", "first table (.csv or .xlsx), the one filtered by %CHNG")
	fs.StringVar(&opts.Second, "second", "", "second table, highlighted by the symbols of the first (highlight mode)")
	fs.StringVar(&opts.Mode, "mode", services.ModeHighlight, "filter mode: highlight or split")
	fs.Float64Var(&opts.Filter.Min, "min", domain.DefaultMinThreshold, "lower bound of the negative subset")
	fs.Float64Var(&opts.Filter.Max, "max", domain.DefaultMaxThreshold, "upper bound of the positive subset")
	fs.BoolVar(&opts.Filter.ExcludeMissing, "exclude-missing", true, "drop rows of the first table without a %CHNG value")
	fs.BoolVar(&opts.Filter.ExcludeZero, "exclude-zero", true, "drop rows of the first table whose %CHNG is 0")
	fs.StringVar(&opts.Out, "out", "", "output file (xlsx) or file prefix (csv); defaults under the configured output dir")
	fs.StringVar(&opts.Format, "format", formatXLSX, "output format: xlsx or csv")
	fs.StringVar(&opts.ChangeColumn, "change-column", "", "override the percent change column name")
	fs.StringVar(&opts.SymbolColumn, "symbol-column", "", "override the symbol column name")
	fs.BoolVar(&opts.Version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case opts.Version:
		return opts, nil
	case opts.First == "":
		return nil, errors.New("-first is required")
	case opts.Mode != services.ModeHighlight && opts.Mode != services.ModeSplit:
		return nil, fmt.Errorf("-mode must be %s or %s, got %q", services.ModeHighlight, services.ModeSplit, opts.Mode)
	case opts.Format != formatXLSX && opts.Format != formatCSV:
		return nil, fmt.Errorf("-format must be %s or %s, got %q", formatXLSX, formatCSV, opts.Format)
	case opts.Mode == services.ModeHighlight && opts.Second == "":
		return nil, errors.New("-second is required in highlight mode")
	}
	return opts, nil
}

// run loads the tables, applies the mode, writes the result and prints a
// short summary to stdout.
func run(ctx context.Context, opts *cliOptions, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	columns := cfg.Columns.Domain()
	if opts.ChangeColumn != "" {
		columns.Change = opts.ChangeColumn
	}
	if opts.SymbolColumn != "" {
		columns.Symbol = opts.SymbolColumn
	}

	out := opts.Out
	if out == "" {
		out = filepath.Join(cfg.Paths.OutputDir, defaultOutput(opts.Mode, opts.Format))
	}

	validator := validation.NewFileValidator(logger)
	inputs := []string{opts.First}
	if opts.Mode == services.ModeHighlight {
		inputs = append(inputs, opts.Second)
	}
	for _, path := range inputs {
		if err := validator.ValidateTableFile(path); err != nil {
			return err
		}
	}
	if err := validator.ValidateOutputFile(out, opts.Format); err != nil {
		return err
	}

	workbook := exporter.NewWorkbookExporter(logger)
	svc := services.NewFilterService(dataprocessing.NewLoader(columns, logger), workbook, columns, logger)

	slots := []services.Slot{services.SlotFirst, services.SlotSecond}
	for i, path := range inputs {
		if err := loadFile(ctx, svc, slots[i], path); err != nil {
			return err
		}
	}

	var sheets []exporter.Sheet
	switch opts.Mode {
	case services.ModeSplit:
		res, err := svc.Split(ctx, opts.Filter)
		if err != nil {
			return err
		}
		sheets = exporter.SplitSheets(res.Split)
	default:
		res, err := svc.Highlight(ctx, opts.Filter)
		if err != nil {
			return err
		}
		sheets = exporter.HighlightSheets(res.Filtered, res.Highlight)
	}

	written, err := writeOutput(out, opts.Format, sheets, workbook, logger)
	if err != nil {
		return err
	}

	for _, sheet := range sheets {
		fmt.Fprintf(stdout, "%-20s %d rows\n", sheet.Name+":", sheet.Table.Len())
	}
	for _, path := range written {
		fmt.Fprintf(stdout, "wrote %s\n", path)
	}
	return nil
}

func loadFile(ctx context.Context, svc *services.FilterService, slot services.Slot, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	_, err = svc.LoadTable(ctx, slot, filepath.Base(path), f)
	return err
}

// writeOutput writes the workbook to out, or one CSV per sheet using the
// base name of out as the prefix.
func writeOutput(out, format string, sheets []exporter.Sheet, workbook *exporter.WorkbookExporter, logger *slog.Logger) ([]string, error) {
	if format == formatXLSX {
		if err := workbook.SaveAs(out, sheets...); err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	prefix := strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
	return exporter.NewCSVWriter(filepath.Dir(out), logger).WriteSheets(prefix, sheets...)
}

// defaultOutput names the output after the mode: the workbook names of the
// web export, or their stem as the CSV prefix.
func defaultOutput(mode, format string) string {
	name := exporter.HighlightFileName
	if mode == services.ModeSplit {
		name = exporter.SplitFileName
	}
	if format == formatCSV {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
