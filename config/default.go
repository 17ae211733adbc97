// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"strings"

	"github.com/atma-cli/atma/constant"
	"github.com/atma-cli/atma/key"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Atma + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PaletteMaxPages, 16, "Maximum number of pages a palette position may address")
	register(key.PaletteMaxLines, 16, "Maximum number of lines per palette page")
	register(key.PaletteMaxColumns, 16, "Maximum number of columns per palette line")
	register(key.HistoryEnabled, true, "Record operations for undo/redo.\nDisable for scripted bulk edits that should not grow the history")
	register(key.DeleteCursorBehavior, "stay", "Cursor repositioning after delete.\nAvailable options are: stay, forward, backward, first_new, last_new")
	register(key.InsertCursorBehavior, "last_new", "Cursor repositioning after insert.\nAvailable options are: stay, forward, backward, first_new, last_new")
	register(key.MoveCursorBehavior, "stay", "Cursor repositioning after move.\nAvailable options are: stay, forward, backward, first_new, last_new")
	register(key.InsertOverwritePolicy, "error", "Collision handling when inserting into an occupied cell.\nAvailable options are: error, skip, move, overwrite, remove")
	register(key.InsertRoomPolicy, "wrap_line", "Capacity handling when an insert exceeds the palette bounds.\nAvailable options are: error, stop, wrap_line, wrap_page")
	register(key.ListMode, "grid", "Default list layout. Available options are: grid, lines, list")
	register(key.ListColorStyle, "tile", "Default color presentation. Available options are: tile, none, text")
	register(key.ListTextStyle, "hex6", "Default color text form. Available options are: none, hex6, hex3, rgb")
	register(key.ListRuleStyle, "colored", "Rule presentation. Available options are: colored, none, plain")
	register(key.ListLineStyle, "auto", "Line numbering. Available options are: auto, none, or a fixed size")
	register(key.ListGutterStyle, "auto", "Gutter sizing. Available options are: auto, none, or a fixed size")
	register(key.ExportSwatchSize, 32, "Edge length in pixels of each exported PNG swatch")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}
