package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeClassification(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeClassification() error {
	overrides := []struct {
		env    string
		target *float64
	}{
		{EnvTol, &c.Classification.Tol},
		{EnvTolHeavy, &c.Classification.TolHeavy},
		{EnvPctGreen, &c.Classification.PctGreenForGreen},
		{EnvPctRed, &c.Classification.PctRedForRed},
	}
	for _, o := range overrides {
		value, ok := os.LookupEnv(o.env)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q", o.env, value)
		}
		*o.target = parsed
	}
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name   string
		target *string
	}{
		{"paths.reference_dir", &c.Paths.ReferenceDir},
		{"paths.candidate_dir", &c.Paths.CandidateDir},
		{"paths.threshold_file", &c.Paths.ThresholdFile},
		{"paths.alias_file", &c.Paths.AliasFile},
		{"paths.output_file", &c.Paths.OutputFile},
		{"paths.log_dir", &c.Paths.LogDir},
	}
	for _, f := range fields {
		expanded, err := expandPath(strings.TrimSpace(*f.target))
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.target = expanded
	}
	return nil
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
