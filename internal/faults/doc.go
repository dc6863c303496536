// Package faults defines the error taxonomy shared by the validation core and
// its adapters.
//
// Two markers drive how a failure is surfaced:
//   - ErrConfiguration aborts the whole run (missing Property/Type columns in
//     the threshold source, no cut columns, zero entity pairs, invalid
//     parameters).
//   - ErrValidation is scoped to a single entity; the orchestrator records it
//     and keeps processing the remaining entities.
//
// Per-cell problems never become errors; they degrade into classification
// sentinels inside the classify package.
package faults
