package sheetio_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"crudeval/internal/faults"
	"crudeval/internal/logging"
	"crudeval/internal/sheetio"
)

func TestReadCSVSniffsDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"semicolon", "Property;C1;C5\nAPI;30,2;31\n", []string{"API", "30,2", "31"}},
		{"comma", "Property,C1,C5\nAPI,30.2,31\n", []string{"API", "30.2", "31"}},
		{"tab", "Property\tC1\tC5\nAPI\t30,2\t31\n", []string{"API", "30,2", "31"}},
		{"pipe", "Property|C1|C5\nAPI|30,2|31\n", []string{"API", "30,2", "31"}},
		{"semicolon wins over comma", "Property;C1,5;C5\nAPI;1,5;2\n", []string{"API", "1,5", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := sheetio.ReadCSV(strings.NewReader(tt.text), "x.csv")
			if err != nil {
				t.Fatalf("ReadCSV: %v", err)
			}
			if len(table.Columns) != 3 {
				t.Fatalf("columns = %q", table.Columns)
			}
			if len(table.Rows) != 1 || !reflect.DeepEqual(table.Rows[0], tt.want) {
				t.Fatalf("rows = %q, want [%q]", table.Rows, tt.want)
			}
		})
	}
}

func TestReadCSVStripsBOMAndBlankRows(t *testing.T) {
	text := "\xEF\xBB\xBF\n;;\n Property ;C1\nAPI;1\n;\n\n"
	table, err := sheetio.ReadCSV(strings.NewReader(text), "bom.csv")
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if table.Name != "bom.csv" {
		t.Fatalf("name = %q", table.Name)
	}
	if !reflect.DeepEqual(table.Columns, []string{"Property", "C1"}) {
		t.Fatalf("columns = %q", table.Columns)
	}
	if table.PropertyColumn() != 0 {
		t.Fatalf("property column = %d", table.PropertyColumn())
	}
	if len(table.Rows) != 1 {
		t.Fatalf("trailing blank rows kept: %q", table.Rows)
	}
}

func TestReadCSVAcceptsWindows1252(t *testing.T) {
	text := "Property;C1\nAzufre s\xe9;0,1\n"
	table, err := sheetio.ReadCSV(strings.NewReader(text), "cp.csv")
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got := table.Cell(0, 0); got != "Azufre sé" {
		t.Fatalf("cell = %q", got)
	}
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MAYA.ods")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := sheetio.Load(path)
	if !errors.Is(err, faults.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestLoadXLSXPrefersSheetWithProperty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ISA_Maya.xlsx")
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "Notes"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatal(err)
	}
	for cell, value := range map[string]any{
		"A2": "Property", "B2": "C1", "C2": "C5",
		"A3": "API", "B3": 30.25, "C3": "31,5",
	} {
		if err := f.SetCellValue("Data", cell, value); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	table, err := sheetio.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Name != "ISA_Maya.xlsx" {
		t.Fatalf("name = %q", table.Name)
	}
	if !reflect.DeepEqual(table.Columns, []string{"Property", "C1", "C5"}) {
		t.Fatalf("columns = %q", table.Columns)
	}
	if !reflect.DeepEqual(table.Rows, [][]string{{"API", "30.25", "31,5"}}) {
		t.Fatalf("rows = %q", table.Rows)
	}
}

func TestFilesListFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"RAMS_b.csv", "RAMS_a.XLSX", ".hidden.csv", "~$RAMS_a.xlsx", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := sheetio.NewFiles(logging.NewNop()).List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"RAMS_a.XLSX", "RAMS_b.csv"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %q, want %q", names, want)
	}
}

func TestFilesListMissingDirectory(t *testing.T) {
	if _, err := sheetio.NewFiles(nil).List(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
