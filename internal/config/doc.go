// Package config holds run configuration: documented defaults, the flat
// Config struct populated from CLI flags, validation with sentinel
// errors, and the optional YAML override file searched for in the
// current and home directories.
package config
