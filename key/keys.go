// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Palette Geometry - these keys bound the positions assignable during inserts.
const (
	PaletteMaxPages   = "palette.max_pages"
	PaletteMaxLines   = "palette.max_lines"
	PaletteMaxColumns = "palette.max_columns"
)

// History Tracking - these keys configure the undo/redo operation log.
const (
	HistoryEnabled = "history.enabled"
)

// Cursor Behaviors - these keys select how composites reposition the palette cursor.
const (
	DeleteCursorBehavior = "cursor.delete_behavior"
	InsertCursorBehavior = "cursor.insert_behavior"
	MoveCursorBehavior   = "cursor.move_behavior"
)

// Insert Policies - these keys select the default collision and capacity handling for inserts.
const (
	InsertOverwritePolicy = "insert.overwrite_policy"
	InsertRoomPolicy      = "insert.room_policy"
)

// List Rendering - these keys define the default styling of the list command.
const (
	ListMode        = "list.mode"
	ListColorStyle  = "list.color_style"
	ListTextStyle   = "list.text_style"
	ListRuleStyle   = "list.rule_style"
	ListLineStyle   = "list.line_style"
	ListGutterStyle = "list.gutter_style"
)

// Export - these keys configure PNG export geometry.
const (
	ExportSwatchSize = "export.swatch_size"
)

// Diagnostics - these keys govern persistent logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Presentation.
const (
	CliColored = "cli.colored"
)
