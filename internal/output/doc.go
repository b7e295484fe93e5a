// Package output formats the result of a bundle run for display or
// machine consumption.
//
// Two formats are supported:
//   - text — human-readable terminal output (default)
//   - json — structured result for scripting and CI
//
// Use [GetWriter] to obtain a [Writer] for a format string, or
// [WriteResult] to handle destination selection (file path or stdout).
package output
