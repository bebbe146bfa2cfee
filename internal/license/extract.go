package license

import (
	"errors"
	"log/slog"

	"github.com/debresearch/licensetrend/internal/model"
)

// packagingSelector is the file glob conventionally reserved for
// packaging-tool-authored files. The survey cares about the upstream
// work's licensing, so this selector is always dropped.
const packagingSelector = "debian/*"

// Extractor determines a package's licenses from its copyright document,
// preferring a structured parse and falling back to pattern guessing.
type Extractor struct {
	guesser *Guesser
	logger  *slog.Logger
}

// NewExtractor creates an Extractor.
// If logger is nil, slog.Default() is used.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		guesser: NewGuesser(logger),
		logger:  logger,
	}
}

// Extract classifies one package's copyright document.
//
// If the document is machine readable, the result origin is "parsed" and
// the licenses come from the file paragraphs, with the packaging-owned
// debian/* selector removed. A structured document that declares no
// usable license yields the distinguished "missing" token.
//
// A document that is not machine readable falls back to the pattern
// guesser with origin "guessed". So does any unexpected parser failure:
// it is logged with the package identity but never propagated, since a
// malformed copyright file must not abort the survey. The only error
// Extract returns is ErrDocumentAbsent from the guesser.
func (e *Extractor) Extract(pkg, text string) (model.Detection, error) {
	c, err := ParseCopyright(text)
	if err != nil {
		if errors.Is(err, ErrNotMachineReadable) {
			e.logger.Debug("copyright is not machine readable", "package", pkg)
		} else {
			e.logger.Error("parsing the copyright failed", "package", pkg, "error", err)
		}
		return e.guess(text)
	}

	// Map each file-group selector to its declared license. Later
	// paragraphs win for a repeated selector, matching how the archive's
	// own tooling reads these documents.
	selectors := make(map[string]string)
	for _, fp := range c.Files {
		if fp.License == "" || len(fp.Globs) == 0 {
			continue
		}
		selectors[fp.Globs[0]] = fp.License
	}
	delete(selectors, packagingSelector)

	if len(selectors) == 0 {
		return model.Detection{
			Origin:   model.OriginParsed,
			Licenses: []model.License{model.LicenseMissing},
		}, nil
	}

	set := model.NewLicenseSet()
	for _, synopsis := range selectors {
		set.Add(Normalize(synopsis))
	}
	return model.Detection{
		Origin:   model.OriginParsed,
		Licenses: set.Sorted(),
	}, nil
}

// guess runs the fallback classifier and tags the result as guessed.
func (e *Extractor) guess(text string) (model.Detection, error) {
	licenses, err := e.guesser.Guess(text)
	if err != nil {
		return model.Detection{}, err
	}
	return model.Detection{
		Origin:   model.OriginGuessed,
		Licenses: licenses,
	}, nil
}
