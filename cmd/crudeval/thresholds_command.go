package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crudeval/internal/thresholds"
)

type thresholdEntryView struct {
	Property  string  `json:"property"`
	Cut       string  `json:"cut"`
	Threshold float64 `json:"threshold"`
}

type thresholdsView struct {
	File    string               `json:"file"`
	Stats   thresholds.Stats     `json:"stats"`
	Entries []thresholdEntryView `json:"entries"`
}

func newThresholdsCommand(ctx *commandContext) *cobra.Command {
	var path, aliases string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Build and print the reproducibility threshold matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			file, err := pathFlag(path, cfg.Paths.ThresholdFile, "thresholds", "threshold_file")
			if err != nil {
				return err
			}
			runner, _, err := ctx.runner(aliases)
			if err != nil {
				return err
			}
			matrix, stats, err := runner.Thresholds(file)
			if err != nil {
				return err
			}

			view := thresholdsView{File: file, Stats: stats}
			for _, e := range matrix.Entries() {
				view.Entries = append(view.Entries, thresholdEntryView{Property: e.Property, Cut: e.Cut, Threshold: e.Value})
			}
			if asJSON {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(view.Entries))
			for _, e := range view.Entries {
				rows = append(rows, []string{e.Property, e.Cut, formatNumber(e.Threshold)})
			}
			fmt.Fprintln(out, renderTable("Thresholds", []string{"Property", "Cut", "Threshold"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight}))
			fmt.Fprintf(out, "Type column: %s (%s)\n", stats.TypeColumn, stats.TypeColumnSource)
			fmt.Fprintf(out, "Qualifying rows: %d of %d, cells stored: %d, skipped: %d\n",
				stats.QualifyingRows, stats.RowsScanned, stats.CellsStored, stats.CellsSkipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "thresholds", "t", "", "Reproducibility threshold sheet")
	cmd.Flags().StringVar(&aliases, "aliases", "", "YAML alias table extending the built-in aliases")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the matrix as JSON")
	return cmd
}
