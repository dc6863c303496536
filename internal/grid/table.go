package grid

import (
	"crudeval/internal/canon"
)

// PropertyHeader is the folded header of the column that names each row.
const PropertyHeader = "PROPERTY"

// reservedCutKeys are column labels that look like cuts after folding but
// describe the row instead (units, crude name).
var reservedCutKeys = map[string]struct{}{
	"UNIDAD":   {},
	"UNIDADES": {},
	"UNIT":     {},
	"UNITS":    {},
	"CRUDO":    {},
	"CRUDE":    {},
	"ENTITY":   {},
}

// Table is one parsed sheet: ordered column labels and rows of raw cell text.
// Rows may be shorter than Columns; missing cells read as empty.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// CutColumn describes a column recognised as a distillation cut.
type CutColumn struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Key   string `json:"key"`
}

// Cell returns the raw text at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}

// ColumnIndex returns the first column whose folded header equals the folded
// header, or -1.
func (t *Table) ColumnIndex(header string) int {
	if t == nil {
		return -1
	}
	want := canon.Header(header)
	for i, label := range t.Columns {
		if canon.Header(label) == want {
			return i
		}
	}
	return -1
}

// PropertyColumn locates the "Property" column.
func (t *Table) PropertyColumn() int {
	return t.ColumnIndex(PropertyHeader)
}

// ColumnValues returns up to limit raw values of column col, top to bottom.
// A limit <= 0 returns the whole column.
func (t *Table) ColumnValues(col, limit int) []string {
	if t == nil {
		return nil
	}
	n := len(t.Rows)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]string, 0, n)
	for row := 0; row < n; row++ {
		out = append(out, t.Cell(row, col))
	}
	return out
}

// CutColumns lists the columns that qualify as cuts, in table order. Columns
// in skip, columns whose folded cut key is empty and reserved labels are
// excluded.
func (t *Table) CutColumns(skip ...int) []CutColumn {
	if t == nil {
		return nil
	}
	excluded := make(map[int]struct{}, len(skip))
	for _, idx := range skip {
		excluded[idx] = struct{}{}
	}
	var cuts []CutColumn
	for i, label := range t.Columns {
		if _, ok := excluded[i]; ok {
			continue
		}
		key := canon.Cut(label)
		if key == "" || IsReservedCut(key) {
			continue
		}
		cuts = append(cuts, CutColumn{Index: i, Label: label, Key: key})
	}
	return cuts
}

// IsReservedCut reports whether a folded cut key names a non-cut column.
func IsReservedCut(key string) bool {
	_, ok := reservedCutKeys[key]
	return ok
}
