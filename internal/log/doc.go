// Package log provides logging helpers built on the standard slog
// package.
//
// The survey logs fetched copyright documents at debug level, and those
// documents can be arbitrarily large. TruncateHandler caps oversized
// string attribute values so debug output stays readable, while leaving
// everything else untouched and working with any underlying handler.
package log
