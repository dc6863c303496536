package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"crudeval/internal/canon"
	"crudeval/internal/classify"
	"crudeval/internal/config"
	"crudeval/internal/logging"
	"crudeval/internal/sheetio"
	"crudeval/internal/validation"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// runLogger builds the console plus run-log logger on first use.
func (c *commandContext) runLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// aliases extends the built-in table with the YAML file named by override,
// or by paths.alias_file when override is empty.
func (c *commandContext) aliases(override string) (*canon.Aliases, error) {
	path := strings.TrimSpace(override)
	if path == "" && c.config != nil {
		path = c.config.Paths.AliasFile
	}
	if path == "" {
		return canon.DefaultAliases(), nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve alias file: %w", err)
	}
	groups, err := canon.LoadAliasFile(expanded)
	if err != nil {
		return nil, err
	}
	aliases, err := canon.DefaultAliases().Extend(groups)
	if err != nil {
		return nil, fmt.Errorf("alias file %s: %w", expanded, err)
	}
	return aliases, nil
}

// runner wires a validation runner over the local file system.
func (c *commandContext) runner(aliasOverride string) (*validation.Runner, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.runLogger()
	if err != nil {
		return nil, nil, err
	}
	aliases, err := c.aliases(aliasOverride)
	if err != nil {
		return nil, nil, err
	}
	return validation.NewRunner(sheetio.NewFiles(logger), aliases, paramsFromConfig(cfg), logger), logger, nil
}

func paramsFromConfig(cfg *config.Config) classify.Params {
	if cfg == nil {
		return classify.DefaultParams()
	}
	return classify.Params{
		Tol:              cfg.Classification.Tol,
		TolHeavy:         cfg.Classification.TolHeavy,
		PctGreenForGreen: cfg.Classification.PctGreenForGreen,
		PctRedForRed:     cfg.Classification.PctRedForRed,
	}
}

// pathFlag returns the flag value when set, else the configured fallback,
// expanded. An empty result is an error naming both sources.
func pathFlag(value, fallback, flag, key string) (string, error) {
	path := strings.TrimSpace(value)
	if path == "" {
		path = strings.TrimSpace(fallback)
	}
	if path == "" {
		return "", fmt.Errorf("%s is required (set --%s or paths.%s)", flag, flag, key)
	}
	return config.ExpandPath(path)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
