package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"chngfilter/pkg/contracts/domain"
)

// SnapshotHeader is the header of a market snapshot CSV. The padding around
// the names matches the exported files, which carry stray whitespace.
var SnapshotHeader = []string{"SYMBOL ", " OPEN", " LTP", " %CHNG ", " VOLUME"}

// RawTable builds an un-normalized table the way the loader would: header
// names are kept as given and Change is the missing marker.
func RawTable(name string, header []string, records ...[]string) domain.Table {
	t := domain.Table{Name: name, Columns: header}
	for i, rec := range records {
		cells := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(rec) {
				cells[h] = rec[j]
			}
		}
		t.Rows = append(t.Rows, domain.Row{Index: i, Cells: cells, Change: domain.Missing()})
	}
	return t
}

// ChangeTable builds a raw snapshot table with one row per (symbol, change) pair.
func ChangeTable(name string, pairs ...[2]string) domain.Table {
	records := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		records = append(records, []string{p[0], "100", "101", p[1], "1000"})
	}
	return RawTable(name, SnapshotHeader, records...)
}

// TableFixtures writes fixture files into a directory.
type TableFixtures struct {
	TestDataDir string
}

// NewTableFixtures creates a fixtures writer rooted at dir.
func NewTableFixtures(dir string) *TableFixtures {
	return &TableFixtures{TestDataDir: dir}
}

// WriteCSV writes header and records to name inside the fixture directory
// and returns the full path.
func (f *TableFixtures) WriteCSV(name string, header []string, records [][]string) (string, error) {
	path := filepath.Join(f.TestDataDir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create fixture: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write fixture header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write fixture records: %w", err)
	}
	return path, nil
}

// FirstSnapshot is a source table covering every sign/range case.
func FirstSnapshot() [][]string {
	return [][]string{
		{"AAA", "10", "10.05", "0.5", "100"},
		{"BBB", "20", "19.9", "-0.5", "200"},
		{"CCC", "30", "30", "0", "300"},
		{"DDD", "40", "40", "-", "400"},
		{"EEE", "50", "51", "2.0", "500"},
		{"FFF", "60", "59", "-1.66", "600"},
		{"GGG", "70", "70.5", "0.71", "700"},
		{"HHH", "80", "79.4", "-0.71", "800"},
	}
}

// SecondSnapshot is a target table sharing some symbols with FirstSnapshot.
func SecondSnapshot() [][]string {
	return [][]string{
		{"AAA", "11", "11.2", "1.2", "110"},
		{"CCC", "31", "30.8", "-0.6", "310"},
		{"", "0", "0", "0.3", "0"},
		{"BBB", "21", "20.8", "-0.9", "210"},
		{"GGG", "71", "71", "0", "710"},
		{"ZZZ", "90", "91", "1.1", "900"},
	}
}
