package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPairCommand(ctx *commandContext) *cobra.Command {
	var reference, candidate string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Show how reference and candidate files pair up without grading",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			refDir, err := pathFlag(reference, cfg.Paths.ReferenceDir, "reference", "reference_dir")
			if err != nil {
				return err
			}
			candDir, err := pathFlag(candidate, cfg.Paths.CandidateDir, "candidate", "candidate_dir")
			if err != nil {
				return err
			}
			runner, _, err := ctx.runner("")
			if err != nil {
				return err
			}
			result, err := runner.Pair(refDir, candDir)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(result.Pairs))
			for _, p := range result.Pairs {
				rows = append(rows, []string{p.Key, p.Reference, p.Candidate})
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No pairs found")
			} else {
				fmt.Fprintln(out, renderTable("Pairs", []string{"Entity", "Reference", "Candidate"}, rows, nil))
			}
			fmt.Fprintln(out)
			printPairingNotes(out, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reference, "reference", "r", "", "Directory of reference (ISA) files")
	cmd.Flags().StringVarP(&candidate, "candidate", "d", "", "Directory of candidate (RAMS) files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the pairing as JSON")
	return cmd
}
