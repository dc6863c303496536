// Package validation runs a full comparison: it builds the threshold matrix,
// pairs reference and candidate files, grades every paired entity, and rolls
// the verdicts up into a summary.
//
// Structural problems with the threshold table or an empty pairing abort the
// run. Anything that goes wrong with a single entity is logged, recorded in
// Result.Failures, and the run moves on to the next entity. Entities are
// processed one at a time in pairing order; the Runner is not meant to be
// shared between goroutines.
package validation
