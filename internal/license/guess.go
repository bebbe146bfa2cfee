package license

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/debresearch/licensetrend/internal/model"
)

// ErrDocumentAbsent is returned when the fetched text is not a copyright
// document at all but the metadata service's HTML error page. Callers
// treat it the same as a missing document, not as an unknown license.
var ErrDocumentAbsent = errors.New("document is an error page, not a copyright file")

// notFoundMarker is the literal prefix of the HTML error page served in
// place of a missing copyright document.
const notFoundMarker = `<!DOCTYPE HTML PUBLIC "-//IETF//DTD HTML 2.0//EN">`

// guessRule pairs a text pattern with the license it indicates.
// Rules are kept in an ordered slice for readability, but matching is
// independent per rule: every pattern is evaluated and the result depends
// only on the set of distinct licenses that matched.
type guessRule struct {
	pattern *regexp.Regexp
	license model.License
}

// guessRules maps free-text fingerprints to licenses. Most entries match
// the common-licenses symlink paths or boilerplate phrases found in
// Debian copyright files. Rare licenses that are not worth tracking
// individually collapse to "other".
var guessRules = []guessRule{
	{regexp.MustCompile(`Creative Commons Attribution-ShareAlike`), "CC"},
	{regexp.MustCompile(`/usr/share/common-licenses/BSD`), "BSD"},
	{regexp.MustCompile(`LaTeX Project Public License`), "LPPL"},
	{regexp.MustCompile(`Permission is hereby granted, free of charge, to any person obtaining a copy`), "MIT"},
	{regexp.MustCompile(`under the "Artistic" license`), "Artistic"},
	{regexp.MustCompile(`/usr/share/common-licenses/Apache-2\.0`), "Apache-2.0"},
	{regexp.MustCompile(`GNU General Public License as published by
the Free Software Foundation; either version 2`), "GPL-2"},
	{regexp.MustCompile(`may be used to endorse or promote products`), "BSD"},
	{regexp.MustCompile(`/usr/share/common-licenses/GPL-3`), "GPL-3"},
	{regexp.MustCompile(`/usr/share/common-licenses/GPL-[^3]`), "GPL-2"},
	{regexp.MustCompile(`/usr/share/common-licenses/GPL[^-]`), "GPL-2"},
	{regexp.MustCompile(`/usr/share/common-licenses/LGPL-3`), "LGPL-3"},
	{regexp.MustCompile(`/usr/share/common-licenses/LGPL-[^3]`), "LGPL-2"},
	{regexp.MustCompile(`/usr/share/common-licenses/LGPL[^-]`), "LGPL-2"},
	{regexp.MustCompile(`/usr/share/common-licenses/Artistic`), "Artistic"},
	{regexp.MustCompile(`from the Public Domain or from`), "Artistic"},
	{regexp.MustCompile(`modifications in the Public Domain or otherwise`), "Artistic"},
	{regexp.MustCompile(`GNU Free Documentation License`), "GFDL"},
	{regexp.MustCompile(`under the terms of the GPL`), "GPL-2"},

	// Rare licenses, grouped together as "other".
	{regexp.MustCompile(`9menu is free software`), model.LicenseOther},
	{regexp.MustCompile(`Allegro is gift-ware`), model.LicenseOther},
	{regexp.MustCompile(`Ruby's License`), model.LicenseOther},
	{regexp.MustCompile(`QoSient Public License`), model.LicenseOther},
}

// Guesser classifies free-text copyright documents by pattern matching.
// It is the fallback for documents that are not machine readable.
type Guesser struct {
	// logger receives diagnostic output. Never nil.
	logger *slog.Logger
}

// NewGuesser creates a Guesser.
// If logger is nil, slog.Default() is used.
func NewGuesser(logger *slog.Logger) *Guesser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guesser{logger: logger}
}

// Guess classifies a free-text copyright document.
//
// Every rule's pattern is evaluated against the document and the distinct
// matched licenses are collected; the resolution policy is then a pure
// function of that set:
//
//   - no matches: [unknown]
//   - exactly one distinct license: that license
//   - exactly {Artistic, GPL-2}: [Perl], the dual-licensing idiom
//   - anything else: the full matched set, sorted
//
// Text that starts with the metadata service's HTML error page marker is
// rejected with ErrDocumentAbsent.
func (g *Guesser) Guess(text string) ([]model.License, error) {
	if strings.HasPrefix(text, notFoundMarker) {
		return nil, ErrDocumentAbsent
	}

	// Diagnostic only: a free-text file may still carry "License: "
	// declaration lines. Scanning them keeps only the last one, which is
	// too lossy to be authoritative, so it is logged and discarded.
	if declared := lastDeclaredLicense(text); declared != "" {
		g.logger.Debug("declaration line found in unstructured document",
			"license", Normalize(declared).String())
	}

	matched := model.NewLicenseSet()
	for _, rule := range guessRules {
		if rule.pattern.MatchString(text) {
			matched.Add(rule.license)
		}
	}
	return resolveMatches(matched), nil
}

// resolveMatches turns the set of matched licenses into the final result.
// It is independent of rule order: only the number and identity of the
// matches matter.
func resolveMatches(matched model.LicenseSet) []model.License {
	switch {
	case matched.Len() == 0:
		return []model.License{model.LicenseUnknown}
	case matched.Equal(model.NewLicenseSet("Artistic", "GPL-2")):
		return []model.License{model.LicensePerl}
	default:
		return matched.Sorted()
	}
}

// lastDeclaredLicense returns the raw license name from the last
// "License: " line in the text, or "" if there is none.
func lastDeclaredLicense(text string) string {
	var declared string
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, "License: ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			declared = fields[len(fields)-1]
		}
	}
	return declared
}
