// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Atma is the canonical application identifier used for filesystem paths and CLI branding.
	Atma = "atma"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// PaletteExtension is the default file extension for persisted palette files.
	PaletteExtension = ".atma"
)
