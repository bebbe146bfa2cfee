// Package model defines the core data types shared across the survey:
// license tokens and sets, detection results, release channels, and the
// per-channel counters that make up a survey summary.
//
// All types in this package are plain values with no I/O dependencies,
// which keeps the heuristic packages and the report writers testable in
// isolation.
package model
