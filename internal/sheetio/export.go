package sheetio

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"crudeval/internal/aggregate"
	"crudeval/internal/classify"
	"crudeval/internal/fileutil"
	"crudeval/internal/textutil"
	"crudeval/internal/validation"
)

// Fixed sheet names of the result workbook.
const (
	SummarySheet = "Resumen"
	LegendSheet  = "Leyenda"
)

// MissingValue is written where a cut has no numeric error.
const MissingValue = "N/D"

const (
	colorGreen   = "#92D050"
	colorYellow  = "#FFEB9C"
	colorRed     = "#FF0000"
	colorNeutral = "#CCCCCC"
	colorHeader  = "#1E3A5F"
)

// verdictColor returns the fill for a verdict, or "" for no fill.
func verdictColor(v classify.Verdict) string {
	switch v {
	case classify.VerdictGreen:
		return colorGreen
	case classify.VerdictYellow:
		return colorYellow
	case classify.VerdictRed:
		return colorRed
	case classify.VerdictNA:
		return colorNeutral
	}
	return ""
}

// cellColor returns the fill for a cut class, or "" for no fill.
func cellColor(c classify.CellClass) string {
	switch c {
	case classify.CellGreen:
		return colorGreen
	case classify.CellYellow:
		return colorYellow
	case classify.CellRed:
		return colorRed
	case classify.CellNoThreshold:
		return colorNeutral
	}
	return ""
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Export writes the result workbook to path atomically.
func Export(path string, result *validation.Result) error {
	f, err := Workbook(result)
	if err != nil {
		return err
	}
	defer f.Close()
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
}

// Workbook builds the result workbook in memory. The caller closes it.
func Workbook(result *validation.Result) (*excelize.File, error) {
	if result == nil {
		return nil, fmt.Errorf("export: nil result")
	}
	w := &workbook{file: excelize.NewFile(), fills: map[string]int{}}
	if err := w.build(result); err != nil {
		_ = w.file.Close()
		return nil, err
	}
	return w.file, nil
}

type workbook struct {
	file   *excelize.File
	header int
	fills  map[string]int
}

func (w *workbook) build(result *validation.Result) error {
	f := w.file
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("export: rename summary sheet: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	w.header = style

	if err := w.summary(result); err != nil {
		return err
	}
	namer := textutil.NewSheetNamer(SummarySheet, LegendSheet)
	for _, entity := range result.Entities {
		if err := w.entity(namer.Next(entity.Key), entity); err != nil {
			return err
		}
	}
	if err := w.legend(result.Params); err != nil {
		return err
	}
	f.SetActiveSheet(0)
	return nil
}

// fill returns a cached solid-fill style for color.
func (w *workbook) fill(color string) (int, error) {
	if id, ok := w.fills[color]; ok {
		return id, nil
	}
	id, err := w.file.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("export: fill style %s: %w", color, err)
	}
	w.fills[color] = id
	return id, nil
}

func (w *workbook) set(sheet string, col, row int, value any, color string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("export: %s!%s: %w", sheet, cell, err)
	}
	if color == "" {
		return nil
	}
	style, err := w.fill(color)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, cell, cell, style)
}

func (w *workbook) headerRow(sheet string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	row := make([]any, len(labels))
	for i, l := range labels {
		row[i] = l
	}
	if err := w.file.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("export: %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(labels), 1)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		return fmt.Errorf("export: %s header style: %w", sheet, err)
	}
	return w.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *workbook) widths(sheet string, columns int, first float64) error {
	if err := w.file.SetColWidth(sheet, "A", "A", first); err != nil {
		return err
	}
	if columns < 2 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, "B", last, 14)
}

func (w *workbook) summary(result *validation.Result) error {
	sheet := SummarySheet
	summary := result.Summary
	header := append([]string{"Property"}, summary.Entities...)
	if err := w.headerRow(sheet, header); err != nil {
		return err
	}
	rowNum := 2
	for _, row := range summary.Rows {
		if err := w.summaryRow(sheet, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}
	if len(summary.Entities) == 0 {
		if err := w.set(sheet, 1, rowNum, "No entities were graded", ""); err != nil {
			return err
		}
		rowNum++
	}

	if len(result.Failures) > 0 {
		rowNum++
		if err := w.set(sheet, 1, rowNum, "Failed entities", ""); err != nil {
			return err
		}
		rowNum++
		for _, failure := range result.Failures {
			if err := w.set(sheet, 1, rowNum, failure.Key, ""); err != nil {
				return err
			}
			if err := w.set(sheet, 2, rowNum, failure.Message, ""); err != nil {
				return err
			}
			rowNum++
		}
	}
	return w.widths(sheet, len(header), 32)
}

func (w *workbook) summaryRow(sheet string, rowNum int, row aggregate.SummaryRow) error {
	if err := w.set(sheet, 1, rowNum, row.Property, ""); err != nil {
		return err
	}
	for i, verdict := range row.Verdicts {
		if verdict == "" {
			continue
		}
		if err := w.set(sheet, i+2, rowNum, string(verdict), verdictColor(verdict)); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) entity(sheet string, entity validation.EntityResult) error {
	if _, err := w.file.NewSheet(sheet); err != nil {
		return fmt.Errorf("export: create sheet %q: %w", sheet, err)
	}
	header := entity.DetailHeader()
	if err := w.headerRow(sheet, header); err != nil {
		return err
	}
	const fixed = 5
	for i, row := range entity.Rows {
		r := i + 2
		if err := w.set(sheet, 1, r, row.Label, ""); err != nil {
			return err
		}
		if err := w.set(sheet, 2, r, string(row.Verdict), verdictColor(row.Verdict)); err != nil {
			return err
		}
		if row.HasWorst {
			if err := w.set(sheet, 3, r, row.WorstCut, ""); err != nil {
				return err
			}
			if err := w.set(sheet, 4, r, round4(row.WorstError), ""); err != nil {
				return err
			}
			if err := w.set(sheet, 5, r, round4(row.WorstThreshold), ""); err != nil {
				return err
			}
		} else {
			for col := 3; col <= fixed; col++ {
				if err := w.set(sheet, col, r, MissingValue, ""); err != nil {
					return err
				}
			}
		}
		for j := range entity.Cuts {
			col := fixed + 1 + j
			if j >= len(row.Cuts) || !row.Cuts[j].HasError {
				if err := w.set(sheet, col, r, MissingValue, ""); err != nil {
					return err
				}
				continue
			}
			cut := row.Cuts[j]
			if err := w.set(sheet, col, r, round4(cut.Error), cellColor(cut.Class)); err != nil {
				return err
			}
		}
	}

	// Entity verdict below the detail rows.
	footer := len(entity.Rows) + 3
	if err := w.set(sheet, 1, footer, "GLOBAL", ""); err != nil {
		return err
	}
	if err := w.set(sheet, 2, footer, string(entity.Global), verdictColor(entity.Global)); err != nil {
		return err
	}
	return w.widths(sheet, len(header), 32)
}

func (w *workbook) legend(p classify.Params) error {
	sheet := LegendSheet
	if _, err := w.file.NewSheet(sheet); err != nil {
		return fmt.Errorf("export: create sheet %q: %w", sheet, err)
	}
	if err := w.headerRow(sheet, []string{"Item", "Meaning"}); err != nil {
		return err
	}
	type entry struct {
		label string
		text  string
		color string
	}
	entries := []entry{
		{"GREEN", "error <= T (density and sulfur: error <= 2 x T)", colorGreen},
		{"YELLOW", fmt.Sprintf("error <= %.2f x T, or %.2f x T on heavy cuts C6-C10 and ranges starting at 299 (density and sulfur: error <= 3 x T)", 1+p.Tol, 1+p.TolHeavy), colorYellow},
		{"RED", "above the tolerance band, or any cut above 3 x T (hard red)", colorRed},
		{"NA", "no usable threshold for any cut of the property", colorNeutral},
		{"EMPTY", "no numeric deviation at all", ""},
		{MissingValue, "cut missing or non-numeric in one of the files", ""},
		{"Property rollup", fmt.Sprintf("RED when more than %.0f%% of valid cuts are red, else GREEN when at least %.0f%% are green, else YELLOW", p.PctRedForRed*100, p.PctGreenForGreen*100), ""},
		{"GLOBAL", "same rollup applied to the graded property verdicts of the entity", ""},
		{"Tolerance", fmt.Sprintf("%.2f", p.Tol), ""},
		{"Heavy tolerance", fmt.Sprintf("%.2f", p.TolHeavy), ""},
	}
	for i, e := range entries {
		if err := w.set(sheet, 1, i+2, e.label, e.color); err != nil {
			return err
		}
		if err := w.set(sheet, 2, i+2, e.text, ""); err != nil {
			return err
		}
	}
	if err := w.file.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, "B", "B", 100)
}
