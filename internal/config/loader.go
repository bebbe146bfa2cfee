package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/debresearch/licensetrend/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".licensetrend"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file. Every field is optional; zero
// values leave the corresponding Config default untouched.
type File struct {
	// SnapshotURL overrides the package-list service base URL.
	SnapshotURL string `yaml:"snapshot_url"`

	// MetadataURL overrides the copyright-document service base URL.
	MetadataURL string `yaml:"metadata_url"`

	// MaxQPS overrides the live-fetch rate cap.
	MaxQPS float64 `yaml:"max_qps"`

	// CacheTTLDays overrides the response cache expiry, in days.
	CacheTTLDays int `yaml:"cache_ttl_days"`

	// Channels overrides the surveyed release channels, oldest first.
	Channels []string `yaml:"channels"`
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// decide how hard that is depending on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .licensetrend in the current directory
// 3. Look for .licensetrend in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// ApplyFile overlays non-zero file values onto the Config.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.SnapshotURL != "" {
		c.SnapshotBaseURL = f.SnapshotURL
	}
	if f.MetadataURL != "" {
		c.MetadataBaseURL = f.MetadataURL
	}
	if f.MaxQPS > 0 {
		c.MaxQPS = f.MaxQPS
	}
	if f.CacheTTLDays > 0 {
		c.CacheTTL = time.Duration(f.CacheTTLDays) * 24 * time.Hour
	}
	if len(f.Channels) > 0 {
		channels := make([]model.Channel, 0, len(f.Channels))
		for _, name := range f.Channels {
			channels = append(channels, model.ParseChannel(name))
		}
		c.Channels = channels
	}
}
