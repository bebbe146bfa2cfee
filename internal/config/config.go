package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/debresearch/licensetrend/internal/archive"
	"github.com/debresearch/licensetrend/internal/database"
	"github.com/debresearch/licensetrend/internal/model"
)

// Default configuration values.
const (
	// DefaultMaxPackages is the sample size. 900 packages keeps a full
	// three-channel run under ~2700 live fetches on a cold cache, which
	// is polite to the metadata service while still being a large enough
	// sample for stable counters.
	DefaultMaxPackages = 900

	// DefaultMaxLicenses is how many of the top licenses the charts and
	// report tables display. Beyond ~15 the long tail is all ones and
	// twos and only clutters the bars.
	DefaultMaxLicenses = 15

	// DefaultMaxQPS caps live fetches against the metadata service.
	// 20 queries per second is the ceiling the service's operators have
	// historically tolerated from bulk consumers.
	DefaultMaxQPS = 20

	// DefaultSampleSeed fixes the shuffle of the package universe.
	// The same seed and the same universe always produce the same
	// sample, which is what makes results comparable across runs and
	// across channels. Changing it invalidates comparisons with earlier
	// summaries, so it is a constant, not a flag.
	DefaultSampleSeed = 12345

	// AppName is the application name used for XDG directory paths.
	AppName = "licensetrend"
)

// Config holds all configuration options for a survey run.
// It is populated from CLI flags and an optional YAML file and passed
// through the application by dependency injection rather than global
// state.
type Config struct {
	// MaxPackages is the number of packages to sample from the universe.
	MaxPackages int

	// MaxLicenses is the number of top licenses to display and plot.
	MaxLicenses int

	// Debug enables slog.LevelDebug output, including per-package
	// detection results.
	Debug bool

	// CacheDir is the directory holding the SQLite response cache.
	CacheDir string

	// OutputDir is where the summary JSON, report, and charts go.
	OutputDir string

	// ConfigFilePath is an explicit config file path. If empty, the
	// loader searches the current directory and then the home directory.
	ConfigFilePath string

	// SnapshotBaseURL is the package-list service.
	SnapshotBaseURL string

	// MetadataBaseURL is the copyright-document service.
	MetadataBaseURL string

	// MaxQPS caps live fetches per second. Cached hits are not limited.
	MaxQPS float64

	// CacheTTL is the response cache expiry.
	CacheTTL time.Duration

	// Channels are the release channels to survey, oldest first.
	Channels []model.Channel

	// MarkdownReport additionally writes a Markdown report next to the
	// JSON summary.
	MarkdownReport bool
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		MaxPackages:     DefaultMaxPackages,
		MaxLicenses:     DefaultMaxLicenses,
		CacheDir:        XDGCacheDir(),
		OutputDir:       ".",
		SnapshotBaseURL: archive.DefaultSnapshotBaseURL,
		MetadataBaseURL: archive.DefaultMetadataBaseURL,
		MaxQPS:          DefaultMaxQPS,
		CacheTTL:        database.DefaultTTL,
		Channels:        model.DefaultChannels(),
	}
}

// Validate checks the configuration for consistency.
// It returns one of the package's sentinel errors so callers can branch
// with errors.Is.
func (c *Config) Validate() error {
	if c.MaxPackages <= 0 {
		return ErrInvalidMaxPackages
	}
	if c.MaxLicenses <= 0 {
		return ErrInvalidMaxLicenses
	}
	if c.MaxQPS <= 0 {
		return ErrInvalidMaxQPS
	}
	if c.CacheTTL <= 0 {
		return ErrInvalidCacheTTL
	}
	if len(c.Channels) == 0 {
		return ErrNoChannels
	}
	for _, ch := range c.Channels {
		if !ch.IsValid() {
			return ErrInvalidChannel
		}
	}
	return nil
}

// XDGCacheDir returns the default cache directory under the XDG cache
// home, e.g. ~/.cache/licensetrend on Linux.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}
