// Package aggregate collects property verdicts across entities and derives
// each entity's global verdict. Property display order is the order in which
// properties were first recorded; it is never re-sorted.
package aggregate
