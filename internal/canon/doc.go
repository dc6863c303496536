// Package canon turns the inconsistent spellings found in assay spreadsheets
// into comparable keys.
//
// Three key families exist: property keys (row labels such as "Densidad a
// 15ºC"), cut keys (column labels such as "260 – 300") and base identifiers
// (file names such as "ISA_Crudo_Maya_v2.xlsx"). Equality of keys is the only
// matching mechanism used anywhere in crudeval; there is no fuzzy matching.
//
// Property keys pass through an alias table after folding. Alias tables are
// immutable once built and their output is always a fixed point, so folding a
// key twice yields the same key.
package canon
