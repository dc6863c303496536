package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"crudeval/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := writeSampleConfig(targetPath, overwrite)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set paths.reference_dir, paths.candidate_dir and paths.threshold_file, or pass them as flags.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

// writeSampleConfig resolves the destination (default: the user config path)
// and refuses to replace an existing file unless overwrite is set.
func writeSampleConfig(path string, overwrite bool) (string, error) {
	var target string
	var err error
	if strings.TrimSpace(path) == "" {
		target, err = config.DefaultConfigPath()
	} else {
		target, err = config.ExpandPath(path)
	}
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	if !overwrite {
		_, statErr := os.Stat(target)
		switch {
		case statErr == nil:
			return "", fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
		case !errors.Is(statErr, fs.ErrNotExist):
			return "", fmt.Errorf("check config path: %w", statErr)
		}
	}
	if err := config.CreateSample(target); err != nil {
		return "", err
	}
	return target, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration and show the effective settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if ctx.configFlag != nil {
				flagPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, renderTable("Effective settings", []string{"Setting", "Value"}, settingRows(cfg), nil))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func settingRows(cfg *config.Config) [][]string {
	orUnset := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "(unset)"
		}
		return v
	}
	c := cfg.Classification
	return [][]string{
		{"classification.tol", formatNumber(c.Tol)},
		{"classification.tol_heavy", formatNumber(c.TolHeavy)},
		{"classification.pct_green_for_green", formatNumber(c.PctGreenForGreen)},
		{"classification.pct_red_for_red", formatNumber(c.PctRedForRed)},
		{"paths.reference_dir", orUnset(cfg.Paths.ReferenceDir)},
		{"paths.candidate_dir", orUnset(cfg.Paths.CandidateDir)},
		{"paths.threshold_file", orUnset(cfg.Paths.ThresholdFile)},
		{"paths.alias_file", orUnset(cfg.Paths.AliasFile)},
		{"paths.output_file", orUnset(cfg.Paths.OutputFile)},
		{"paths.log_dir", orUnset(cfg.Paths.LogDir)},
		{"logging.format", cfg.Logging.Format},
		{"logging.level", cfg.Logging.Level},
		{"logging.retention_days", strconv.Itoa(cfg.Logging.RetentionDays)},
	}
}
