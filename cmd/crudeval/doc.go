// Package main hosts the crudeval CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the run logger
// and alias table, and hands the work to internal/validation. Commands only
// render: tables for terminals, JSON for scripts, and an optional workbook.
package main
