// Package grid holds the tabular contract shared by the loaders and the
// validation core: an ordered list of column labels and rows of raw cell
// text. It also owns the decimal parsing rules used for every numeric cell.
package grid
