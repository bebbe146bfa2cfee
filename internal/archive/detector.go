package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/debresearch/licensetrend/internal/license"
	"github.com/debresearch/licensetrend/internal/model"
)

// ErrPackageNotFound is returned by Detector.Detect when a package has
// no copyright document in the requested channel. This is frequent and
// expected: a package may exist in only one or two of the three
// channels. Callers skip the package for that channel.
var ErrPackageNotFound = errors.New("package not found in channel")

// DocumentFetcher fetches copyright documents by archive path.
// *Client implements it; tests substitute a fake.
type DocumentFetcher interface {
	Copyright(ctx context.Context, path string) (model.Document, error)
}

// Detector orchestrates fetch-then-extract for one package in one
// release channel.
type Detector struct {
	fetcher   DocumentFetcher
	extractor *license.Extractor
	logger    *slog.Logger
}

// NewDetector creates a Detector.
// If logger is nil, slog.Default() is used.
func NewDetector(fetcher DocumentFetcher, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		fetcher:   fetcher,
		extractor: license.NewExtractor(logger),
		logger:    logger,
	}
}

// CopyrightPath returns the archive path of a package's copyright
// document for a channel: first-letter bucket, package directory, then
// "{channel}_copyright".
func CopyrightPath(channel model.Channel, name string) string {
	return fmt.Sprintf("%s/%s/%s_copyright", name[:1], name, channel)
}

// Detect classifies one package in one channel.
// It returns an error wrapping ErrPackageNotFound when the channel has
// no copyright document for the package, either because the fetch came
// back absent or because the cached body turned out to be the service's
// HTML error page.
func (d *Detector) Detect(ctx context.Context, channel model.Channel, name string) (model.Detection, error) {
	if name == "" {
		return model.Detection{}, errors.New("empty package name")
	}

	path := CopyrightPath(channel, name)
	doc, err := d.fetcher.Copyright(ctx, path)
	if err != nil {
		return model.Detection{}, err
	}
	if !doc.Found {
		return model.Detection{}, fmt.Errorf("%s in %s: %w", name, channel, ErrPackageNotFound)
	}

	det, err := d.extractor.Extract(name, doc.Body)
	if err != nil {
		if errors.Is(err, license.ErrDocumentAbsent) {
			return model.Detection{}, fmt.Errorf("%s in %s: %w", name, channel, ErrPackageNotFound)
		}
		return model.Detection{}, err
	}

	d.logger.Debug("detected licenses",
		"package", name,
		"channel", channel.String(),
		"origin", det.Origin.String(),
		"licenses", fmt.Sprint(det.Licenses),
	)
	return det, nil
}
