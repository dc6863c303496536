// Package deviation computes per-cell absolute differences between a
// reference grid and its paired candidate grid. Rows and columns follow the
// reference; a cell without a counterpart or without two numbers is absent,
// never zero.
package deviation
