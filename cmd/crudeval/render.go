package main

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"crudeval/internal/classify"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(title string, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// verdictPainter renders verdict names, coloured for terminals.
type verdictPainter struct {
	colorize bool
}

func (p verdictPainter) verdict(v classify.Verdict) string {
	return p.paint(string(v), verdictColors(v))
}

func (p verdictPainter) cell(c classify.CellClass, value string) string {
	switch c {
	case classify.CellGreen:
		return p.paint(value, text.Colors{text.FgGreen})
	case classify.CellYellow:
		return p.paint(value, text.Colors{text.FgYellow})
	case classify.CellRed:
		return p.paint(value, text.Colors{text.FgRed, text.Bold})
	}
	return value
}

func (p verdictPainter) paint(value string, colors text.Colors) string {
	if !p.colorize || len(colors) == 0 || value == "" {
		return value
	}
	return colors.Sprint(value)
}

func verdictColors(v classify.Verdict) text.Colors {
	switch v {
	case classify.VerdictGreen:
		return text.Colors{text.FgGreen}
	case classify.VerdictYellow:
		return text.Colors{text.FgYellow}
	case classify.VerdictRed:
		return text.Colors{text.FgRed, text.Bold}
	case classify.VerdictNA:
		return text.Colors{text.FgHiBlack}
	}
	return nil
}

// formatNumber prints a deviation or threshold with at most four decimals.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
