package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/debresearch/licensetrend/internal/model"
)

// defaultMaxLicenses caps the report tables when no option is given.
const defaultMaxLicenses = 15

// MarkdownWriter outputs the survey summary in Markdown format, for
// documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides type-safe tables and headings
// instead of hand-assembled strings.
type MarkdownWriter struct {
	baseWriter

	// maxLicenses caps the rows of the ranking and delta tables.
	maxLicenses int

	// titler renders channel names as headings ("oldstable" → "Oldstable").
	titler cases.Caser
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMaxLicenses caps the number of licenses listed in the tables.
func WithMaxLicenses(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.maxLicenses = n
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:  newBaseWriter(output),
		maxLicenses: defaultMaxLicenses,
		titler:      cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeRanking(md, summary)
	w.writeDelta(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("Debian License Survey")
	md.PlainText("")

	channels := ""
	for i, ch := range summary.Channels {
		if i > 0 {
			channels += ", "
		}
		channels += ch.String()
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Sample Size", strconv.Itoa(summary.SampleSize)},
			{"Channels", channels},
		},
	})
	md.PlainText("")
}

// writeRanking writes the per-channel counts for the top licenses.
func (w *MarkdownWriter) writeRanking(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Top Licenses")
	md.PlainText("")

	header := []string{"License"}
	for _, ch := range summary.Channels {
		header = append(header, w.titler.String(ch.String()))
	}

	var rows [][]string
	for _, lic := range summary.TopLicenses(w.maxLicenses) {
		row := []string{lic.String()}
		for _, ch := range summary.Channels {
			row = append(row, strconv.Itoa(summary.Counter(ch).Count(lic)))
		}
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDelta writes the relative change between the oldest and newest
// channel for the same top licenses.
func (w *MarkdownWriter) writeDelta(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Change Across Releases")
	md.PlainText("")

	var rows [][]string
	for _, lic := range summary.TopLicenses(w.maxLicenses) {
		rows = append(rows, []string{
			lic.String(),
			fmt.Sprintf("%+.1f%%", summary.Delta(lic)*100),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"License", "Delta"},
		Rows:   rows,
	})
	md.PlainText("")
}
