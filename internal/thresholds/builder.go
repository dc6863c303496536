package thresholds

import (
	"log/slog"
	"strings"

	"crudeval/internal/canon"
	"crudeval/internal/faults"
	"crudeval/internal/grid"
	"crudeval/internal/logging"
)

// typeHeaders are the folded header spellings accepted for the Type column.
var typeHeaders = []string{"TYPE", "TIPO", "TIPO DE VALOR", "TIPO VALOR", "TIPO DE DATO"}

// qualifyingTokens mark a row as a reproducibility limit. Matching is a
// substring test on the folded Type cell.
var qualifyingTokens = []string{"REPRODUCIBILIDAD", "ADMISIBLE", "REPETIBILIDAD"}

// typeScanRows bounds the content scan used when no Type header is found.
const typeScanRows = 50

// How the Type column was located.
const (
	TypeFromHeader  = "header"
	TypeFromContent = "content"
)

// Stats summarises one Build pass.
type Stats struct {
	TypeColumn       string `json:"type_column"`
	TypeColumnSource string `json:"type_column_source"`
	CutColumns       int    `json:"cut_columns"`
	RowsScanned      int    `json:"rows_scanned"`
	QualifyingRows   int    `json:"qualifying_rows"`
	CellsStored      int    `json:"cells_stored"`
	CellsSkipped     int    `json:"cells_skipped"`
}

// Builder turns a threshold sheet into a Matrix.
type Builder struct {
	aliases *canon.Aliases
	logger  *slog.Logger
}

// NewBuilder returns a Builder that canonicalises properties with aliases.
// A nil aliases table uses canon.DefaultAliases.
func NewBuilder(aliases *canon.Aliases, logger *slog.Logger) *Builder {
	if aliases == nil {
		aliases = canon.DefaultAliases()
	}
	return &Builder{
		aliases: aliases,
		logger:  logging.NewComponentLogger(logger, "thresholds"),
	}
}

// Build scans the sheet once, forward-filling the Property column, and keeps
// the largest positive value per (property, cut) among qualifying rows.
func (b *Builder) Build(table *grid.Table) (*Matrix, Stats, error) {
	var stats Stats
	name := ""
	if table != nil {
		name = table.Name
	}

	propCol := table.PropertyColumn()
	if propCol < 0 {
		return nil, stats, faults.Wrap(faults.ErrConfiguration, "thresholds", "locate columns",
			"property column not found in "+describe(name), nil)
	}

	typeCol, source := locateTypeColumn(table, propCol)
	if typeCol < 0 {
		return nil, stats, faults.Wrap(faults.ErrConfiguration, "thresholds", "locate columns",
			"type column not found in "+describe(name), nil)
	}
	stats.TypeColumn = table.Columns[typeCol]
	stats.TypeColumnSource = source

	cuts := table.CutColumns(propCol, typeCol)
	if len(cuts) == 0 {
		return nil, stats, faults.Wrap(faults.ErrConfiguration, "thresholds", "locate columns",
			"no cut columns in "+describe(name), nil)
	}
	stats.CutColumns = len(cuts)

	matrix := NewMatrix()
	current := ""
	for row := range table.Rows {
		stats.RowsScanned++
		if prop := canon.Property(table.Cell(row, propCol), b.aliases); prop != "" {
			current = prop
		}
		if current == "" || !isQualifying(table.Cell(row, typeCol)) {
			continue
		}
		stats.QualifyingRows++
		for _, cut := range cuts {
			value, ok := grid.ParseDecimal(table.Cell(row, cut.Index))
			if !ok || value <= 0 {
				stats.CellsSkipped++
				continue
			}
			matrix.raise(Key{Property: current, Cut: cut.Key}, value)
			stats.CellsStored++
		}
	}

	b.logger.Info("threshold matrix built",
		logging.String(logging.FieldFile, name),
		logging.String("type_column", stats.TypeColumn),
		logging.String("type_column_source", stats.TypeColumnSource),
		logging.Int("cut_columns", stats.CutColumns),
		logging.Int("rows_scanned", stats.RowsScanned),
		logging.Int("qualifying_rows", stats.QualifyingRows),
		logging.Int("cells_stored", stats.CellsStored),
		logging.Int("cells_skipped", stats.CellsSkipped),
		logging.Int("entries", matrix.Len()),
	)
	if matrix.Len() == 0 {
		logging.WarnWithContext(b.logger, "threshold matrix is empty", "thresholds_empty",
			logging.String(logging.FieldFile, name),
			logging.String(logging.FieldErrorHint, "check the Type column labels and the numeric cells"),
			logging.String(logging.FieldImpact, "every property will be reported as missing thresholds"),
		)
	}
	return matrix, stats, nil
}

func locateTypeColumn(table *grid.Table, propCol int) (int, string) {
	for _, header := range typeHeaders {
		if idx := table.ColumnIndex(header); idx >= 0 && idx != propCol {
			return idx, TypeFromHeader
		}
	}
	for col := range table.Columns {
		if col == propCol {
			continue
		}
		for _, value := range table.ColumnValues(col, typeScanRows) {
			if isQualifying(value) {
				return col, TypeFromContent
			}
		}
	}
	return -1, ""
}

func isQualifying(cell string) bool {
	folded := canon.Header(cell)
	if folded == "" {
		return false
	}
	for _, token := range qualifyingTokens {
		if strings.Contains(folded, token) {
			return true
		}
	}
	return false
}

func describe(name string) string {
	if strings.TrimSpace(name) == "" {
		return "threshold table"
	}
	return name
}
