package testsupport

import (
	"path/filepath"
	"testing"

	"crudeval/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ReferenceDir = filepath.Join(base, "reference")
	cfgVal.Paths.CandidateDir = filepath.Join(base, "candidate")
	cfgVal.Paths.ThresholdFile = filepath.Join(base, "thresholds.csv")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTolerances overrides the standard and heavy-cut tolerances.
func WithTolerances(tol, tolHeavy float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classification.Tol = tol
		b.cfg.Classification.TolHeavy = tolHeavy
	}
}

// WithPercentages overrides the verdict percentages.
func WithPercentages(green, red float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classification.PctGreenForGreen = green
		b.cfg.Classification.PctRedForRed = red
	}
}

// WithOutputFile points the workbook export inside the test directory.
func WithOutputFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.OutputFile = filepath.Join(b.baseDir, name)
	}
}

// WithoutRunLog disables the JSON run log.
func WithoutRunLog() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ThresholdFile)
}
