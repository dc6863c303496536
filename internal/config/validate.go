package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateClassification(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateClassification() error {
	cls := c.Classification
	if cls.Tol < 0 {
		return errors.New("classification.tol must be zero or greater")
	}
	if cls.TolHeavy < 0 {
		return errors.New("classification.tol_heavy must be zero or greater")
	}
	if cls.PctGreenForGreen < 0 || cls.PctGreenForGreen > 1 {
		return errors.New("classification.pct_green_for_green must be between 0 and 1")
	}
	if cls.PctRedForRed < 0 || cls.PctRedForRed > 1 {
		return errors.New("classification.pct_red_for_red must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero or greater")
	}
	return nil
}
