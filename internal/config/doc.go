// Package config loads, normalizes, and validates crudeval configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, picks up a local .env file, and honours the
// CRUDEVAL_* environment overrides for the classification parameters and log
// level. Every knob the CLI and the validation pipeline need lives on Config.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
