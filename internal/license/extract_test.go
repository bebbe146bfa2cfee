package license

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/debresearch/licensetrend/internal/model"
)

func TestExtractorExtractParsed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		expected model.Detection
	}{
		{
			name: "single upstream license",
			text: "Format: 1.0\n\nFiles: *\nLicense: Expat+\n",
			expected: model.Detection{
				Origin:   model.OriginParsed,
				Licenses: []model.License{"Expat"},
			},
		},
		{
			name: "packaging selector is dropped",
			text: "Format: 1.0\n\n" +
				"Files: *\nLicense: GPL-3.0+\n\n" +
				"Files: debian/*\nLicense: MIT\n",
			expected: model.Detection{
				Origin:   model.OriginParsed,
				Licenses: []model.License{"GPL-3"},
			},
		},
		{
			name: "duplicate licenses across selectors collapse",
			text: "Format: 1.0\n\n" +
				"Files: src/*\nLicense: GPL-2+\n\n" +
				"Files: lib/*\nLicense: GPL2+\n",
			expected: model.Detection{
				Origin:   model.OriginParsed,
				Licenses: []model.License{"GPL-2"},
			},
		},
		{
			name: "distinct licenses keep the set",
			text: "Format: 1.0\n\n" +
				"Files: src/*\nLicense: Apache-2.0\n\n" +
				"Files: vendor/*\nLicense: BSD-3-clause\n",
			expected: model.Detection{
				Origin:   model.OriginParsed,
				Licenses: []model.License{"Apache-2.0", "BSD"},
			},
		},
		{
			name: "only packaging files declared",
			text: "Format: 1.0\n\nFiles: debian/*\nLicense: MIT\n",
			expected: model.Detection{
				Origin:   model.OriginParsed,
				Licenses: []model.License{model.LicenseMissing},
			},
		},
		{
			name: "no file paragraphs at all",
			text: "Format: 1.0\nUpstream-Name: example\n",
			expected: model.Detection{
				Origin:   model.OriginParsed,
				Licenses: []model.License{model.LicenseMissing},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := NewExtractor(nil)
			got, err := e.Extract("example", tc.text)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Extract() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestExtractorExtractGuessed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		expected model.Detection
	}{
		{
			name: "free text falls back to guessing",
			text: "This package may be redistributed under the terms of the GPL.\n",
			expected: model.Detection{
				Origin:   model.OriginGuessed,
				Licenses: []model.License{"GPL-2"},
			},
		},
		{
			name: "malformed structured document falls back too",
			text: "Format: 1.0\nbroken line without a colon\n" +
				"Permission is hereby granted, free of charge, to any person obtaining a copy\n",
			expected: model.Detection{
				Origin:   model.OriginGuessed,
				Licenses: []model.License{"MIT"},
			},
		},
		{
			name: "unclassifiable free text",
			text: "All rights reserved.\n",
			expected: model.Detection{
				Origin:   model.OriginGuessed,
				Licenses: []model.License{model.LicenseUnknown},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := NewExtractor(nil)
			got, err := e.Extract("example", tc.text)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Extract() = %v, want %v", got, tc.expected)
			}
		})
	}
}

// TestExtractorExtractFreeTextIsQuiet checks that ordinary free-text
// documents, the single most common fallback case, never reach the
// error log: they are expected input, not a failure.
func TestExtractorExtractFreeTextIsQuiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewExtractor(logger)

	text := "This is the Debian package for hello.\n\n" +
		"It may be redistributed under the terms of the GPL.\n"
	got, err := e.Extract("hello", text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	expected := model.Detection{
		Origin:   model.OriginGuessed,
		Licenses: []model.License{"GPL-2"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Extract() = %v, want %v", got, expected)
	}

	out := buf.String()
	if strings.Contains(out, "level=ERROR") {
		t.Errorf("free text logged at error level:\n%s", out)
	}
	if !strings.Contains(out, "copyright is not machine readable") {
		t.Errorf("missing the debug-level fallback record:\n%s", out)
	}
}

func TestExtractorExtractAbsentDocument(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	_, err := e.Extract("example", notFoundMarker+"\n<html></html>")
	if !errors.Is(err, ErrDocumentAbsent) {
		t.Errorf("Extract() error = %v, want ErrDocumentAbsent", err)
	}
}
