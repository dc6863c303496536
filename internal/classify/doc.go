// Package classify grades per-cut deviations against the threshold matrix
// and rolls them up into a property verdict.
//
// Cut rules apply in a fixed order: absent values, missing thresholds, the
// absolute 3x override, the density/sulfur tier, then the standard tolerance
// (widened for heavy cuts). The same two-percentage rule used for property
// rollup is exported as Rollup so the global aggregate can share it.
package classify
