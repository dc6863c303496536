// Package thresholds builds the (property, cut) → threshold lookup from the
// laboratory's reproducibility matrix.
//
// The source sheet is sparse: the Property column is filled only on the first
// row of each group and blank cells continue the previous property. Only rows
// whose Type cell names a reproducibility, admissible or repeatability limit
// contribute, and a key seen several times keeps the largest value.
package thresholds
