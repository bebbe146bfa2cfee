// Package license implements the license-detection heuristic: given the
// raw text of a package's copyright document, determine which license(s)
// apply.
//
// Detection prefers a structured parse of the machine-readable copyright
// format (DEP-5) and falls back to ordered pattern-matching rules when
// the document is free text. Raw license identifiers are collapsed to
// canonical tokens through a fixed normalization table.
//
// The heuristic targets Debian's copyright-file conventions; it is not a
// general license-classification library.
package license
