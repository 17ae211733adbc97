// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/atma-cli/atma/constant"
	"github.com/atma-cli/atma/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "ATMA_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It prioritizes the XDG_CONFIG_HOME specification on Linux and equivalent user profile paths on Darwin and Windows.
// Direct override: The path resolution can be explicitly specified via the ATMA_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Atma))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Settings resolves the absolute path to the user settings file.
func Settings() string {
	return filepath.Join(Config(), "settings.toml")
}

// State resolves the absolute path to the persisted application state registry,
// holding the active palette pointer and the recent palette list.
func State() string {
	return filepath.Join(Config(), "state.json")
}

// DefaultPalette resolves the absolute path used when a new palette is created without an explicit path.
func DefaultPalette() string {
	return filepath.Join(Config(), "default"+constant.PaletteExtension)
}
