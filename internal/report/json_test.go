package report

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/debresearch/licensetrend/internal/model"
)

// reportSummary builds a small two-channel summary for writer tests.
func reportSummary() *model.Summary {
	s := model.NewSummary([]model.Channel{model.ChannelOldstable, model.ChannelUnstable})
	s.SampleSize = 10
	s.GeneratedAt = time.Date(2015, 3, 1, 12, 0, 0, 0, time.UTC)

	old := s.Counter(model.ChannelOldstable)
	old.Update([]model.License{"GPL-2"})
	old.Update([]model.License{"GPL-2"})
	old.Update([]model.License{"MIT"})

	next := s.Counter(model.ChannelUnstable)
	next.Update([]model.License{"GPL-2"})
	next.Update([]model.License{"MIT"})
	next.Update([]model.License{"MIT"})
	next.Update([]model.License{"Apache-2.0"})

	return s
}

func TestJSONWriterWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	n, err := w.Write(reportSummary())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != buf.Len() {
		t.Errorf("Write() = %d bytes, buffer has %d", n, buf.Len())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("output does not end with a newline")
	}

	var decoded map[string]map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	expected := map[string]map[string]int{
		"oldstable": {"GPL-2": 2, "MIT": 1},
		"unstable":  {"GPL-2": 1, "MIT": 2, "Apache-2.0": 1},
	}
	if !reflect.DeepEqual(decoded, expected) {
		t.Errorf("decoded = %v, want %v", decoded, expected)
	}
}

func TestJSONWriterDeterministic(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	if _, err := NewJSONWriter(&first).Write(reportSummary()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := NewJSONWriter(&second).Write(reportSummary()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("output differs across runs:\n%s\n%s", first.String(), second.String())
	}
}

func TestJSONWriterIndent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WithPrettyPrint())
	if _, err := w.Write(reportSummary()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("output is not indented:\n%s", buf.String())
	}
}

func TestFileNames(t *testing.T) {
	t.Parallel()

	at := time.Date(2015, 3, 1, 23, 59, 0, 0, time.UTC)
	if got := SummaryFileName(at); got != "summary_2015-03-01.json" {
		t.Errorf("SummaryFileName() = %q", got)
	}
	if got := MarkdownFileName(at); got != "report_2015-03-01.md" {
		t.Errorf("MarkdownFileName() = %q", got)
	}
}
