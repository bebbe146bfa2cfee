// Package archive talks to the Debian snapshot and metadata services:
// fetching the package universe and per-package copyright documents,
// pacing live requests to a fixed queries-per-second budget, and
// memoizing every response through an injected cache.
//
// The Detector at the top of the package turns a (channel, package)
// pair into a license Detection, mapping an absent document to the
// distinguished ErrPackageNotFound so callers can skip rather than fail.
package archive
