// Package logging builds the slog loggers used by crudeval.
//
// A run logs human-readable lines to stderr and, when a log directory is
// configured, the same records as JSON into a per-run file. Old run files are
// pruned on start. The field keys in fields.go are shared by every component.
package logging
