// Package survey orchestrates a full run: deterministic sampling of the
// package universe and the sequential per-channel, per-package detection
// loop that builds the license counters.
package survey
