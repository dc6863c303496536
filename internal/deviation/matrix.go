package deviation

import (
	"math"

	"crudeval/internal/canon"
	"crudeval/internal/faults"
	"crudeval/internal/grid"
)

// Cell is the deviation at one cut. Present is false when either side is
// missing or unparsable.
type Cell struct {
	Cut     string
	Error   float64
	Present bool
}

// Row is one reference property row.
type Row struct {
	Label    string
	Property string
	Cells    []Cell
}

// PresentCount returns how many cells carry a value.
func (r Row) PresentCount() int {
	n := 0
	for _, c := range r.Cells {
		if c.Present {
			n++
		}
	}
	return n
}

// Matrix holds the deviations of one entity in reference order.
type Matrix struct {
	Cuts []grid.CutColumn
	Rows []Row
}

// Compute builds the deviation matrix for one reference/candidate pair. A nil
// aliases table uses canon.DefaultAliases.
func Compute(reference, candidate *grid.Table, aliases *canon.Aliases) (*Matrix, error) {
	if aliases == nil {
		aliases = canon.DefaultAliases()
	}
	refProp := reference.PropertyColumn()
	if refProp < 0 {
		return nil, faults.Wrap(faults.ErrValidation, "deviation", "locate columns",
			"property column not found in reference "+tableName(reference), nil)
	}
	candProp := candidate.PropertyColumn()
	if candProp < 0 {
		return nil, faults.Wrap(faults.ErrValidation, "deviation", "locate columns",
			"property column not found in candidate "+tableName(candidate), nil)
	}
	cuts := reference.CutColumns(refProp)
	if len(cuts) == 0 {
		return nil, faults.Wrap(faults.ErrValidation, "deviation", "locate columns",
			"no cut columns in reference "+tableName(reference), nil)
	}

	candCols := firstIndexByKey(candidate.CutColumns(candProp))
	candRows := make(map[string]int)
	for row := range candidate.Rows {
		prop := canon.Property(candidate.Cell(row, candProp), aliases)
		if prop == "" {
			continue
		}
		if _, seen := candRows[prop]; !seen {
			candRows[prop] = row
		}
	}

	m := &Matrix{Cuts: cuts}
	for row := range reference.Rows {
		label := reference.Cell(row, refProp)
		prop := canon.Property(label, aliases)
		if prop == "" {
			continue
		}
		candRow, hasRow := candRows[prop]
		cells := make([]Cell, len(cuts))
		for i, cut := range cuts {
			cells[i] = Cell{Cut: cut.Key}
			candCol, hasCol := candCols[cut.Key]
			if !hasRow || !hasCol {
				continue
			}
			refValue, ok := grid.ParseDecimal(reference.Cell(row, cut.Index))
			if !ok {
				continue
			}
			candValue, ok := grid.ParseDecimal(candidate.Cell(candRow, candCol))
			if !ok {
				continue
			}
			diff := math.Abs(candValue - refValue)
			if math.IsNaN(diff) || math.IsInf(diff, 0) {
				continue
			}
			cells[i].Error = diff
			cells[i].Present = true
		}
		m.Rows = append(m.Rows, Row{Label: label, Property: prop, Cells: cells})
	}
	return m, nil
}

func firstIndexByKey(cols []grid.CutColumn) map[string]int {
	out := make(map[string]int, len(cols))
	for _, c := range cols {
		if _, ok := out[c.Key]; !ok {
			out[c.Key] = c.Index
		}
	}
	return out
}

func tableName(t *grid.Table) string {
	if t == nil || t.Name == "" {
		return "grid"
	}
	return t.Name
}
