package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() as package-level sentinels so
// callers can use errors.Is for programmatic handling while still
// getting a human-readable message.
var (
	// ErrInvalidMaxPackages is returned when the sample size is not positive.
	ErrInvalidMaxPackages = errors.New("invalid max packages: must be positive")

	// ErrInvalidMaxLicenses is returned when the display limit is not positive.
	ErrInvalidMaxLicenses = errors.New("invalid max licenses: must be positive")

	// ErrInvalidMaxQPS is returned when the fetch rate cap is not positive.
	// An uncapped run would hammer the metadata service.
	ErrInvalidMaxQPS = errors.New("invalid max QPS: must be positive")

	// ErrInvalidCacheTTL is returned when the cache expiry is not positive.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be positive")

	// ErrNoChannels is returned when no release channel is configured.
	ErrNoChannels = errors.New("no release channels configured")

	// ErrInvalidChannel is returned when a configured channel name is not
	// one of oldstable, stable, unstable.
	ErrInvalidChannel = errors.New("invalid release channel name")
)
