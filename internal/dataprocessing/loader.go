package dataprocessing

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chngfilter/pkg/contracts/domain"
)

// Loader reads uploaded files into raw tables.
type Loader struct {
	changeColumn string
	logger       *slog.Logger
}

// NewLoader creates a loader. The change column name is used to locate the
// header row of workbooks that carry title rows.
func NewLoader(cols domain.Columns, logger *slog.Logger) *Loader {
	return &Loader{
		changeColumn: cols.Change,
		logger:       logger.With(slog.String("component", "loader")),
	}
}

// Load parses r according to the extension of name.
func (l *Loader) Load(name string, r io.Reader) (domain.Table, error) {
	var (
		table domain.Table
		err   error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt":
		table, err = ParseCSV(name, stripBOM(r))
	case ".xlsx", ".xlsm":
		table, err = ParseXLSX(name, r, l.changeColumn)
	default:
		return domain.Table{}, fmt.Errorf("%s (%q): %w", name, ext, ErrUnsupportedFormat)
	}
	if err != nil {
		l.logger.Warn("failed to load table",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return domain.Table{}, err
	}

	l.logger.Info("table loaded",
		slog.String("file", name),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", table.Len()))
	return table, nil
}

// LoadFile opens path and loads it.
func (l *Loader) LoadFile(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return l.Load(filepath.Base(path), f)
}

// stripBOM drops a leading UTF-8 byte order mark, which Excel adds to CSV exports.
func stripBOM(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, _ := io.ReadFull(r, buf)
	buf = buf[:n]
	if bytes.Equal(buf, []byte{0xEF, 0xBB, 0xBF}) {
		return r
	}
	return io.MultiReader(bytes.NewReader(buf), r)
}
