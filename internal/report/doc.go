// Package report describes resolved declarations for humans: the slot table
// with its unused entries, the data member layout when type information is
// available, and the diagnostics collected on the way.
//
// Reports render as aligned text (styled with lipgloss on a terminal) or
// as YAML.
package report
