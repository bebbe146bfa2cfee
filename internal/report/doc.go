// Package report writes the completed survey summary: the dated JSON
// counters file consumed by downstream analysis and an optional
// Markdown report for humans.
package report
