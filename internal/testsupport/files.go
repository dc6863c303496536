package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"crudeval/internal/grid"
)

// WriteCSV writes a semicolon separated file with the header row first.
func WriteCSV(t testing.TB, path string, header []string, rows ...[]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTable writes table as CSV at path.
func WriteTable(t testing.TB, path string, table *grid.Table) {
	t.Helper()
	WriteCSV(t, path, table.Columns, table.Rows...)
}

// ThresholdTable returns a small reproducibility sheet: DENSIDAD and API
// limits for cuts C1, C5 and C9, with the property filled on the first row of
// each group only.
func ThresholdTable() *grid.Table {
	return &grid.Table{
		Name:    "thresholds.csv",
		Columns: []string{"Property", "Tipo", "C1", "C5", "C9"},
		Rows: [][]string{
			{"Densidad a 15ºC", "Reproducibilidad", "1,0", "1,0", "2,0"},
			{"", "Repetibilidad", "0,5", "0,5", "1,0"},
			{"API", "Reproducibilidad", "0,5", "0,5", "0,5"},
			{"", "Valor", "9", "9", "9"},
		},
	}
}

// EntityTable builds a grid with a Property column followed by cuts.
// Each row is the property label followed by one value per cut.
func EntityTable(name string, cuts []string, rows ...[]string) *grid.Table {
	return &grid.Table{
		Name:    name,
		Columns: append([]string{"Property"}, cuts...),
		Rows:    rows,
	}
}
