package report

import (
	"fmt"
	"io"
	"time"

	"github.com/debresearch/licensetrend/internal/model"
)

// Writer defines the interface for summary output.
// Implementations write the survey summary in various formats.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.Summary) (int, error)
}

// SummaryFileName returns the dated summary file name for a run, e.g.
// "summary_2015-03-01.json".
func SummaryFileName(t time.Time) string {
	return fmt.Sprintf("summary_%s.json", t.Format("2006-01-02"))
}

// MarkdownFileName returns the dated Markdown report file name for a
// run, e.g. "report_2015-03-01.md".
func MarkdownFileName(t time.Time) string {
	return fmt.Sprintf("report_%s.md", t.Format("2006-01-02"))
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
