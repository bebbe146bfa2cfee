package model

import "sort"

// License is a canonical short license name used for counting and
// aggregation, e.g. "GPL-2", "BSD", "MIT". Spelling variants found in
// copyright documents are collapsed to these tokens by the normalizer.
//
// License is an open set: unknown spellings pass through verbatim rather
// than being rejected, so values outside the declared constants are valid.
type License string

// Distinguished license tokens.
const (
	// LicenseUnknown is reported when no guess rule matched a document.
	LicenseUnknown License = "unknown"

	// LicenseMissing is reported when a machine-readable copyright file
	// exists but declares no usable upstream license.
	LicenseMissing License = "missing"

	// LicensePerl is the classification for the Artistic/GPL-2
	// dual-licensing idiom used by Perl and most CPAN packages.
	LicensePerl License = "Perl"

	// LicenseOther groups rare licenses that are not worth tracking
	// individually.
	LicenseOther License = "other"
)

// String returns the license token as a plain string.
func (l License) String() string {
	return string(l)
}

// LicenseSet is an unordered collection of distinct license tokens.
// A package can legitimately carry multiple licenses across its files,
// so detection results are sets rather than single values.
type LicenseSet map[License]struct{}

// NewLicenseSet creates a LicenseSet containing the given licenses.
func NewLicenseSet(licenses ...License) LicenseSet {
	s := make(LicenseSet, len(licenses))
	for _, l := range licenses {
		s.Add(l)
	}
	return s
}

// Add inserts a license into the set. Duplicates collapse.
func (s LicenseSet) Add(l License) {
	s[l] = struct{}{}
}

// Has reports whether the set contains the given license.
func (s LicenseSet) Has(l License) bool {
	_, ok := s[l]
	return ok
}

// Len returns the number of distinct licenses in the set.
func (s LicenseSet) Len() int {
	return len(s)
}

// Sorted returns the set members in lexicographic order.
// Detection results expose sorted slices so that counter updates, JSON
// output, and log lines are deterministic across runs.
func (s LicenseSet) Sorted() []License {
	out := make([]License, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether two sets contain exactly the same licenses.
func (s LicenseSet) Equal(other LicenseSet) bool {
	if len(s) != len(other) {
		return false
	}
	for l := range s {
		if !other.Has(l) {
			return false
		}
	}
	return true
}
