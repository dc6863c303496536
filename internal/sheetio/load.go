package sheetio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"crudeval/internal/faults"
	"crudeval/internal/grid"
)

// Supported file extensions, lower case.
const (
	ExtXLSX = ".xlsx"
	ExtCSV  = ".csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvDelimiters are tried in order against the header line.
var csvDelimiters = []rune{';', ',', '\t', '|'}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtXLSX, ExtCSV:
		return true
	}
	return false
}

// Load reads the table stored at path.
func Load(path string) (*grid.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtXLSX:
		return LoadXLSX(path)
	case ExtCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f, filepath.Base(path))
	default:
		return nil, faults.Wrap(faults.ErrUnsupported, "sheetio", "load",
			fmt.Sprintf("%s: unsupported extension %q (use .xlsx or .csv)", filepath.Base(path), ext), nil)
	}
}

// LoadXLSX reads the first worksheet that has a Property column, or the
// first worksheet when none has one. Cells are read raw so numbers keep
// their stored precision.
func LoadXLSX(path string) (*grid.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	var fallback *grid.Table
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
		}
		table := tableFromRows(filepath.Base(path), rows)
		if table.PropertyColumn() >= 0 {
			return table, nil
		}
		if fallback == nil {
			fallback = table
		}
	}
	return fallback, nil
}

// ReadCSV parses delimited text. The delimiter is the first of ';', ',',
// tab and '|' found in the header line.
func ReadCSV(r io.Reader, name string) (*grid.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return tableFromRows(name, records), nil
}

func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func sniffDelimiter(text string) rune {
	header := text
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			header = line
			break
		}
	}
	for _, d := range csvDelimiters {
		if strings.ContainsRune(header, d) {
			return d
		}
	}
	return ','
}

// tableFromRows uses the first non-blank row as the header.
func tableFromRows(name string, rows [][]string) *grid.Table {
	table := &grid.Table{Name: name}
	start := 0
	for start < len(rows) && blankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return table
	}
	table.Columns = make([]string, len(rows[start]))
	for i, label := range rows[start] {
		table.Columns[i] = strings.TrimSpace(label)
	}
	for _, row := range rows[start+1:] {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strings.TrimSpace(v)
		}
		table.Rows = append(table.Rows, cells)
	}
	for len(table.Rows) > 0 && blankRow(table.Rows[len(table.Rows)-1]) {
		table.Rows = table.Rows[:len(table.Rows)-1]
	}
	return table
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
