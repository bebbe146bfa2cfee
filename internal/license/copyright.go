package license

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotMachineReadable is returned by ParseCopyright when the document
// does not follow the machine-readable copyright format (DEP-5). This is
// expected for a large share of the archive and is not treated as an
// error by callers: it triggers the guessing fallback instead.
var ErrNotMachineReadable = errors.New("copyright file is not machine readable")

// Copyright is a parsed machine-readable copyright document: a header
// paragraph followed by file paragraphs, each naming a set of file globs
// and the license that applies to them.
type Copyright struct {
	// Header holds the fields of the first paragraph (Format,
	// Upstream-Name, and so on).
	Header map[string]string

	// Files holds the file paragraphs in document order.
	Files []FileParagraph
}

// FileParagraph is one "Files:" stanza of a copyright document.
type FileParagraph struct {
	// Globs are the whitespace-separated file selectors of the Files
	// field, e.g. "*" or "debian/*".
	Globs []string

	// License is the license synopsis: the first line of the License
	// field. Empty when the paragraph declares no license.
	License string
}

// ParseCopyright parses a machine-readable copyright document.
//
// The format is deb822: paragraphs separated by blank lines, each a
// sequence of "Field: value" lines where continuation lines start with a
// space or tab. A document that never presents a Format field, including
// plain free-text prose that is not deb822 at all, yields
// ErrNotMachineReadable. A descriptive parse error is reserved for
// documents that declared a Format header and then broke the syntax.
func ParseCopyright(text string) (*Copyright, error) {
	paragraphs, err := splitParagraphs(text)
	if err != nil {
		return nil, err
	}
	if len(paragraphs) == 0 {
		return nil, ErrNotMachineReadable
	}

	if !hasField(paragraphs[0], "Format") {
		return nil, ErrNotMachineReadable
	}

	c := &Copyright{Header: paragraphs[0]}
	for _, p := range paragraphs[1:] {
		files, ok := fieldValue(p, "Files")
		if !ok {
			// Stand-alone License paragraphs and other stanzas carry no
			// file selectors and do not contribute to the mapping.
			continue
		}
		lic, _ := fieldValue(p, "License")
		c.Files = append(c.Files, FileParagraph{
			Globs:   strings.Fields(files),
			License: synopsis(lic),
		})
	}
	return c, nil
}

// splitParagraphs breaks the document into field maps. Comment lines
// (starting with "#") are ignored. A line that is neither a field, a
// continuation, nor a comment ends the parse: before a Format field has
// been seen the document is simply free text and the result is
// ErrNotMachineReadable, afterwards it is a hard parse error.
func splitParagraphs(text string) ([]map[string]string, error) {
	var paragraphs []map[string]string
	var current map[string]string
	var lastField string
	var sawFormat bool

	fail := func(i int, format string, args ...any) error {
		if !sawFormat {
			return ErrNotMachineReadable
		}
		return fmt.Errorf("line %d: %s", i+1, fmt.Sprintf(format, args...))
	}

	for i, line := range strings.Split(text, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
			if current != nil {
				paragraphs = append(paragraphs, current)
				current = nil
				lastField = ""
			}
		case strings.HasPrefix(line, "#"):
			// comment
		case line[0] == ' ' || line[0] == '\t':
			if lastField == "" {
				return nil, fail(i, "continuation line outside a field")
			}
			current[lastField] += "\n" + strings.TrimRight(line[1:], " \t")
		default:
			name, value, ok := strings.Cut(line, ":")
			if !ok || strings.ContainsAny(name, " \t") {
				return nil, fail(i, "malformed field line %q", line)
			}
			if current == nil {
				current = make(map[string]string)
			}
			if strings.EqualFold(name, "Format") {
				sawFormat = true
			}
			lastField = name
			current[name] = strings.TrimSpace(value)
		}
	}
	if current != nil {
		paragraphs = append(paragraphs, current)
	}
	return paragraphs, nil
}

// hasField reports whether the paragraph has the named field,
// case-insensitively.
func hasField(p map[string]string, name string) bool {
	_, ok := fieldValue(p, name)
	return ok
}

// fieldValue looks up a field case-insensitively, per deb822 field name
// semantics.
func fieldValue(p map[string]string, name string) (string, bool) {
	for k, v := range p {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// synopsis returns the first line of a License field value, which names
// the license; any following lines are the full license text.
func synopsis(value string) string {
	first, _, _ := strings.Cut(value, "\n")
	return strings.TrimSpace(first)
}
