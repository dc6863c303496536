package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"crudeval/internal/logging"
	"crudeval/internal/pairing"
	"crudeval/internal/sheetio"
	"crudeval/internal/validation"
)

type compareOptions struct {
	reference  string
	candidate  string
	thresholds string
	aliases    string
	output     string
	json       bool
	detail     bool
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Grade candidate assays against reference assays",
		Long: `Pair reference and candidate files by base identifier, compute the
per-cut deviation of every property, grade it against the reproducibility
thresholds, and print the property by entity verdict summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.reference, "reference", "r", "", "Directory of reference (ISA) files")
	flags.StringVarP(&opts.candidate, "candidate", "d", "", "Directory of candidate (RAMS) files")
	flags.StringVarP(&opts.thresholds, "thresholds", "t", "", "Reproducibility threshold sheet")
	flags.StringVar(&opts.aliases, "aliases", "", "YAML alias table extending the built-in aliases")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the result workbook (.xlsx) to this path")
	flags.BoolVar(&opts.json, "json", false, "Print the full result as JSON")
	flags.BoolVar(&opts.detail, "detail", false, "Print the per-entity detail tables")
	return cmd
}

func runCompare(cmd *cobra.Command, ctx *commandContext, opts compareOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	req := validation.Request{}
	if req.ReferenceDir, err = pathFlag(opts.reference, cfg.Paths.ReferenceDir, "reference", "reference_dir"); err != nil {
		return err
	}
	if req.CandidateDir, err = pathFlag(opts.candidate, cfg.Paths.CandidateDir, "candidate", "candidate_dir"); err != nil {
		return err
	}
	if req.ThresholdFile, err = pathFlag(opts.thresholds, cfg.Paths.ThresholdFile, "thresholds", "threshold_file"); err != nil {
		return err
	}

	runner, logger, err := ctx.runner(opts.aliases)
	if err != nil {
		return err
	}
	result, err := runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	output := strings.TrimSpace(opts.output)
	if output == "" {
		output = cfg.Paths.OutputFile
	}
	if output != "" {
		if output, err = pathFlag(output, "", "output", "output_file"); err != nil {
			return err
		}
		if err := sheetio.Export(output, result); err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
		logger.Info("workbook written",
			logging.String(logging.FieldFile, output),
			logging.String(logging.FieldRunID, result.RunID),
		)
	}

	if opts.json {
		return writeJSON(cmd, result)
	}

	out := cmd.OutOrStdout()
	painter := verdictPainter{colorize: shouldColorize(out)}
	printPairingNotes(out, result.Pairing)
	printFailures(out, result.Failures)
	printSummary(out, result, painter)
	if opts.detail {
		for _, entity := range result.Entities {
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderDetail(entity, painter))
		}
	}
	if output != "" {
		fmt.Fprintf(out, "\nWrote workbook to %s\n", output)
	}
	return nil
}

func printPairingNotes(out io.Writer, p pairing.Result) {
	for _, id := range p.UnpairedReferences {
		fmt.Fprintf(out, "Unpaired reference: %s\n", id)
	}
	for _, id := range p.UnpairedCandidates {
		fmt.Fprintf(out, "Unpaired candidate: %s\n", id)
	}
	for _, dup := range p.Duplicates {
		fmt.Fprintf(out, "Duplicate %s identifier %s: %s ignored, %s kept\n", dup.Side, dup.Key, dup.Identifier, dup.KeptAs)
	}
	for _, id := range p.UnidentifiedEntries {
		fmt.Fprintf(out, "Unidentified file: %s\n", id)
	}
	if !p.Complete() || len(p.Duplicates) > 0 || len(p.UnidentifiedEntries) > 0 {
		fmt.Fprintln(out)
	}
}

func printFailures(out io.Writer, failures []validation.EntityFailure) {
	if len(failures) == 0 {
		return
	}
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.Key, f.Message})
	}
	fmt.Fprintln(out, renderTable("Failed entities", []string{"Entity", "Error"}, rows, nil))
	fmt.Fprintln(out)
}

func printSummary(out io.Writer, result *validation.Result, painter verdictPainter) {
	summary := result.Summary
	if len(summary.Entities) == 0 {
		fmt.Fprintln(out, "No entities were graded")
		return
	}
	headers := append([]string{"Property"}, summary.Entities...)
	rows := make([][]string, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells, row.Property)
		for _, v := range row.Verdicts {
			cells = append(cells, painter.verdict(v))
		}
		rows = append(rows, cells)
	}
	fmt.Fprintln(out, renderTable("Summary", headers, rows, nil))
}

func renderDetail(entity validation.EntityResult, painter verdictPainter) string {
	headers := entity.DetailHeader()
	aligns := make([]columnAlignment, len(headers))
	for i := 3; i < len(aligns); i++ {
		aligns[i] = alignRight
	}

	rows := make([][]string, 0, len(entity.Rows)+1)
	for _, row := range entity.Rows {
		cells := []string{row.Label, painter.verdict(row.Verdict), "", "", ""}
		if row.HasWorst {
			cells[2] = row.WorstCut
			cells[3] = formatNumber(row.WorstError)
			cells[4] = formatNumber(row.WorstThreshold)
		}
		for i := range entity.Cuts {
			if i >= len(row.Cuts) || !row.Cuts[i].HasError {
				cells = append(cells, sheetio.MissingValue)
				continue
			}
			cut := row.Cuts[i]
			cells = append(cells, painter.cell(cut.Class, formatNumber(cut.Error)))
		}
		rows = append(rows, cells)
	}
	rows = append(rows, []string{"GLOBAL", painter.verdict(entity.Global)})

	title := fmt.Sprintf("%s (%s vs %s)", entity.Key, entity.Reference, entity.Candidate)
	return renderTable(title, headers, rows, aligns)
}
