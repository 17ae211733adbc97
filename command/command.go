// Package command translates parsed editing commands into palette composite
// operations and implements the script runner.
package command

import (
	"fmt"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/expr"
	"github.com/atma-cli/atma/key"
	"github.com/atma-cli/atma/log"
	"github.com/atma-cli/atma/palette"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Env is the execution environment shared by every command.
type Env struct {
	Palette *palette.Palette
	// Session marks script execution: settings changes apply to the session
	// only and are never persisted.
	Session bool
}

// Command is a parsed editing command ready for dispatch.
type Command interface {
	Execute(env *Env) error
}

// configuredInsertOptions reads the insert policies from the global
// configuration, tolerating absent or malformed values.
func configuredInsertOptions() (palette.OverwritePolicy, palette.RoomPolicy) {
	overwrite, err := palette.ParseOverwritePolicy(viper.GetString(key.InsertOverwritePolicy))
	if err != nil {
		overwrite = palette.OverwriteError
	}
	room, err := palette.ParseRoomPolicy(viper.GetString(key.InsertRoomPolicy))
	if err != nil {
		room = palette.RoomWrapLine
	}
	return overwrite, room
}

func configuredBehavior(k string, fallback palette.CursorBehavior) palette.CursorBehavior {
	b, err := palette.ParseCursorBehavior(viper.GetString(k))
	if err != nil {
		return fallback
	}
	return b
}

// Insert inserts one or more expressions at the cursor or an explicit target.
type Insert struct {
	Exprs []expr.InsertExpr
	Name  mo.Option[string]
	At    mo.Option[cell.Ref]
}

func (c Insert) Execute(env *Env) error {
	overwrite, room := configuredInsertOptions()
	log.Debugf("insert: %d expression(s)", len(c.Exprs))
	return env.Palette.InsertExprs(c.Exprs, palette.InsertOptions{
		Positioning: c.At,
		Name:        c.Name,
		Overwrite:   overwrite,
		Room:        room,
		Cursor:      configuredBehavior(key.InsertCursorBehavior, palette.CursorToLastNew),
	})
}

// Delete removes the selected cells.
type Delete struct {
	Sel          cell.Selection
	ClearOrphans bool
}

func (c Delete) Execute(env *Env) error {
	return env.Palette.DeleteRange(c.Sel, c.ClearOrphans,
		configuredBehavior(key.DeleteCursorBehavior, palette.CursorStay))
}

// Move relocates the selected cells.
type Move struct {
	Sel cell.Selection
	To  mo.Option[cell.Ref]
}

func (c Move) Execute(env *Env) error {
	return env.Palette.MoveRange(c.Sel, c.To,
		configuredBehavior(key.MoveCursorBehavior, palette.CursorStay))
}

// SetName assigns or clears the name of a cell.
type SetName struct {
	Ref  cell.Ref
	Name mo.Option[string]
}

func (c SetName) Execute(env *Env) error {
	idx, err := env.Palette.Resolve(c.Ref)
	if err != nil {
		return err
	}
	if name, ok := c.Name.Get(); ok {
		return env.Palette.Apply([]palette.Operation{palette.AssignName(idx, name)})
	}
	return env.Palette.Apply([]palette.Operation{palette.ClearName(idx)})
}

// SetGroup adds a cell to a group or removes it.
type SetGroup struct {
	Ref    cell.Ref
	Group  string
	Remove bool
}

func (c SetGroup) Execute(env *Env) error {
	idx, err := env.Palette.Resolve(c.Ref)
	if err != nil {
		return err
	}
	if c.Remove {
		return env.Palette.Apply([]palette.Operation{palette.UnassignGroup(idx, c.Group)})
	}
	return env.Palette.Apply([]palette.Operation{palette.AssignGroup(idx, c.Group)})
}

// SetExpr replaces the expression of a cell.
type SetExpr struct {
	Ref  cell.Ref
	Expr expr.InsertExpr
}

func (c SetExpr) Execute(env *Env) error {
	return env.Palette.SetRange(cell.Single(c.Ref), c.Expr)
}

// SetCursor moves the palette cursor.
type SetCursor struct {
	Ref cell.Ref
}

func (c SetCursor) Execute(env *Env) error {
	idx, err := env.Palette.Resolve(c.Ref)
	if err != nil {
		return err
	}
	env.Palette.SetCursor(idx)
	return nil
}

// SetHistory toggles or clears the operation log.
type SetHistory struct {
	Mode string // enable, disable or clear
}

func (c SetHistory) Execute(env *Env) error {
	switch c.Mode {
	case "enable":
		env.Palette.History().SetEnabled(true)
	case "disable":
		env.Palette.History().SetEnabled(false)
	case "clear":
		env.Palette.History().Clear()
	default:
		return fmt.Errorf("unknown history mode %q", c.Mode)
	}
	return nil
}

// SetBehavior updates a cursor behavior setting in the running configuration
// only. The change is not written to any file, in scripts or from the CLI.
type SetBehavior struct {
	Key      string
	Behavior string
}

func (c SetBehavior) Execute(env *Env) error {
	if _, err := palette.ParseCursorBehavior(c.Behavior); err != nil {
		return err
	}
	viper.Set(c.Key, c.Behavior)
	return nil
}
