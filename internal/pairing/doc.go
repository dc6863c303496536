// Package pairing matches reference and candidate files by their canonical
// base identifier. Matching is exact on the canonical key; nothing is paired
// on similarity.
package pairing
