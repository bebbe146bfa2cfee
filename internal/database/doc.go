// Package database provides the SQLite-backed response cache.
//
// The cache is a write-through memoization layer keyed by request path:
// every fetched document, including "not found" outcomes, is stored with
// a timestamp and served from disk until it expires. This is what makes
// repeated survey runs cheap and keeps the load on the archive's
// metadata service down.
package database
