package license

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseCopyright(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"Format: https://www.debian.org/doc/packaging-manuals/copyright-format/1.0/",
		"Upstream-Name: example",
		"",
		"Files: *",
		"Copyright: 2020 Example Upstream",
		"License: GPL-2+",
		" This program is free software; you can redistribute it",
		" and/or modify it under the terms of the GPL.",
		"",
		"Files: debian/*",
		"Copyright: 2021 Example Maintainer",
		"License: MIT",
		"",
		"License: GPL-2+",
		" On Debian systems the full text can be found in",
		" /usr/share/common-licenses/GPL-2.",
	}, "\n")

	c, err := ParseCopyright(doc)
	if err != nil {
		t.Fatalf("ParseCopyright() error = %v", err)
	}

	if got := c.Header["Format"]; !strings.HasPrefix(got, "https://www.debian.org/") {
		t.Errorf("Header[Format] = %q, want the format URL", got)
	}
	if got := c.Header["Upstream-Name"]; got != "example" {
		t.Errorf("Header[Upstream-Name] = %q, want %q", got, "example")
	}

	expected := []FileParagraph{
		{Globs: []string{"*"}, License: "GPL-2+"},
		{Globs: []string{"debian/*"}, License: "MIT"},
	}
	if !reflect.DeepEqual(c.Files, expected) {
		t.Errorf("Files = %v, want %v", c.Files, expected)
	}
}

func TestParseCopyrightEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("multiple globs in one paragraph", func(t *testing.T) {
		t.Parallel()

		doc := "Format: 1.0\n\nFiles: src/* include/*\nLicense: BSD\n"
		c, err := ParseCopyright(doc)
		if err != nil {
			t.Fatalf("ParseCopyright() error = %v", err)
		}
		if len(c.Files) != 1 {
			t.Fatalf("len(Files) = %d, want 1", len(c.Files))
		}
		if !reflect.DeepEqual(c.Files[0].Globs, []string{"src/*", "include/*"}) {
			t.Errorf("Globs = %v, want [src/* include/*]", c.Files[0].Globs)
		}
	})

	t.Run("lowercase field names", func(t *testing.T) {
		t.Parallel()

		doc := "format: 1.0\n\nfiles: *\nlicense: ISC\n"
		c, err := ParseCopyright(doc)
		if err != nil {
			t.Fatalf("ParseCopyright() error = %v", err)
		}
		if len(c.Files) != 1 || c.Files[0].License != "ISC" {
			t.Errorf("Files = %v, want one ISC paragraph", c.Files)
		}
	})

	t.Run("comments are ignored", func(t *testing.T) {
		t.Parallel()

		doc := "# generated file\nFormat: 1.0\n\nFiles: *\n# local note\nLicense: MIT\n"
		c, err := ParseCopyright(doc)
		if err != nil {
			t.Fatalf("ParseCopyright() error = %v", err)
		}
		if len(c.Files) != 1 || c.Files[0].License != "MIT" {
			t.Errorf("Files = %v, want one MIT paragraph", c.Files)
		}
	})

	t.Run("paragraph without license field", func(t *testing.T) {
		t.Parallel()

		doc := "Format: 1.0\n\nFiles: *\nCopyright: 2020 Somebody\n"
		c, err := ParseCopyright(doc)
		if err != nil {
			t.Fatalf("ParseCopyright() error = %v", err)
		}
		if len(c.Files) != 1 || c.Files[0].License != "" {
			t.Errorf("Files = %v, want one paragraph with an empty license", c.Files)
		}
	})

	t.Run("tab continuations", func(t *testing.T) {
		t.Parallel()

		doc := "Format: 1.0\n\nFiles: *\nLicense: Zlib\n\tfull text follows\n"
		c, err := ParseCopyright(doc)
		if err != nil {
			t.Fatalf("ParseCopyright() error = %v", err)
		}
		if c.Files[0].License != "Zlib" {
			t.Errorf("License = %q, want %q", c.Files[0].License, "Zlib")
		}
	})
}

func TestParseCopyrightNotMachineReadable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
	}{
		{
			name: "empty document",
			text: "",
		},
		{
			name: "no format field",
			text: "Upstream-Name: example\n\nFiles: *\nLicense: MIT\n",
		},
		{
			name: "plain free text",
			text: "This is the Debian package for hello.\n\n" +
				"It may be redistributed under the terms of the GPL.\n",
		},
		{
			name: "free text starting with indentation",
			text: "   Copyright 1998 Example Upstream\n   All rights reserved.\n",
		},
		{
			name: "prose before a late format header",
			text: "See below for details.\nFormat: 1.0\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseCopyright(tc.text); !errors.Is(err, ErrNotMachineReadable) {
				t.Errorf("ParseCopyright() error = %v, want ErrNotMachineReadable", err)
			}
		})
	}
}

func TestParseCopyrightMalformed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
	}{
		{
			name: "stray continuation after the header",
			text: "Format: 1.0\n\n stray continuation\n",
		},
		{
			name: "line that is not a field",
			text: "Format: 1.0\nthis line has no colon\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCopyright(tc.text)
			if err == nil || errors.Is(err, ErrNotMachineReadable) {
				t.Errorf("ParseCopyright() error = %v, want a parse error", err)
			}
		})
	}
}
