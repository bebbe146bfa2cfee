// Package main provides the entry point for the licensetrend CLI.
//
// licensetrend surveys package licenses across the Debian release
// channels (oldstable, stable, unstable): it samples the package
// universe, classifies each package's copyright document per channel,
// and writes a dated JSON summary plus two chart images.
//
// Usage:
//
//	licensetrend
//	licensetrend --max-packages 200 --max-licenses 10
//
// See --help for all available options.
package main

// main is the entry point for licensetrend.
func main() {
	Execute()
}
