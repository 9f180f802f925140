package exporter

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"chngfilter/internal/filter"
	"chngfilter/internal/shared/testutil"
	"chngfilter/pkg/contracts/domain"
)

func snapshots(t *testing.T) (domain.Table, domain.Table) {
	t.Helper()
	cols := domain.DefaultColumns()
	first := filter.Normalize(testutil.RawTable("first.csv", testutil.SnapshotHeader, testutil.FirstSnapshot()...), cols)
	second := filter.Normalize(testutil.RawTable("second.csv", testutil.SnapshotHeader, testutil.SecondSnapshot()...), cols)
	return first, second
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbookExporter_HighlightSheets(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	first, second := snapshots(t)
	filtered := filter.Union(filter.SplitBySign(first, -0.71, 0.71))
	hl := filter.CrossHighlight(first, second, -0.71, 0.71)

	data, err := NewWorkbookExporter(logger).Bytes(HighlightSheets(filtered, hl)...)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{SheetFilteredFirst, SheetHighlightedSecond}, f.GetSheetList())

	rows, err := f.GetRows(SheetFilteredFirst)
	require.NoError(t, err)
	require.Len(t, rows, 5) // header + AAA, GGG, BBB, HHH
	assert.Equal(t, []string{"SYMBOL", "OPEN", "LTP", "%CHNG", "VOLUME"}, rows[0])
	assert.Equal(t, "AAA", rows[1][0])
	assert.Equal(t, "GGG", rows[2][0])
	assert.Equal(t, "BBB", rows[3][0])
	assert.Equal(t, "HHH", rows[4][0])

	rows, err = f.GetRows(SheetHighlightedSecond)
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + AAA, BBB, GGG

	// D is the %CHNG column; rows 2..4 are positive, negative, neutral.
	pos, err := f.GetCellStyle(SheetHighlightedSecond, "D2")
	require.NoError(t, err)
	neg, err := f.GetCellStyle(SheetHighlightedSecond, "D3")
	require.NoError(t, err)
	neutral, err := f.GetCellStyle(SheetHighlightedSecond, "D4")
	require.NoError(t, err)

	assert.NotZero(t, pos)
	assert.NotZero(t, neg)
	assert.NotEqual(t, pos, neg)
	assert.Zero(t, neutral)

	// The first sheet carries no classification fills.
	plain, err := f.GetCellStyle(SheetFilteredFirst, "D2")
	require.NoError(t, err)
	assert.Zero(t, plain)
}

func TestWorkbookExporter_NumericCells(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	raw := testutil.RawTable("mixed.csv", []string{"SYMBOL", "%CHNG", "VOLUME", "NOTE"},
		[]string{"AAA", "0.5", "1000", "x"},
		[]string{"BBB", "bad", "", "12"},
	)
	table := filter.Normalize(raw, domain.DefaultColumns())

	data, err := NewWorkbookExporter(logger).Bytes(Sheet{Name: "Data", Table: table})
	require.NoError(t, err)

	f := openWorkbook(t, data)

	typ, err := f.GetCellType("Data", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)

	val, err := f.GetCellValue("Data", "B3")
	require.NoError(t, err)
	assert.Empty(t, val, "missing change is written as an empty cell")

	val, err = f.GetCellValue("Data", "C2")
	require.NoError(t, err)
	assert.Equal(t, "1000", val)

	// NOTE mixes text and numbers, so it stays text.
	typ, err = f.GetCellType("Data", "D3")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, typ)
}

func TestWorkbookExporter_SplitSheetsSaveAs(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	first, _ := snapshots(t)
	path := filepath.Join(t.TempDir(), "out", SplitFileName)

	err := NewWorkbookExporter(logger).SaveAs(path, SplitSheets(filter.SplitBySign(first, -0.71, 0.71))...)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPositive, SheetNegative}, f.GetSheetList())
	rows, err := f.GetRows(SheetNegative)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.True(t, logs.ContainsMessage("workbook saved"))
}

func TestWorkbookExporter_EmptySubsetKeepsHeader(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	first, _ := snapshots(t)

	split := filter.SplitBySign(first, 0, 0)
	data, err := NewWorkbookExporter(logger).Bytes(SplitSheets(split)...)
	require.NoError(t, err)

	rows, err := openWorkbook(t, data).GetRows(SheetPositive)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SYMBOL", rows[0][0])
}

func TestWorkbookExporter_NoSheets(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	_, err := NewWorkbookExporter(logger).Bytes()
	assert.Error(t, err)
}
