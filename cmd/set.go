package cmd

import (
	"fmt"

	"github.com/atma-cli/atma/command"
	"github.com/atma-cli/atma/key"
	"github.com/atma-cli/atma/parse"
	"github.com/atma-cli/atma/state"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	setGroupCmd.Flags().Bool("remove", false, "Remove the cell from the group instead")

	setCmd.AddCommand(setNameCmd, setGroupCmd, setExprCmd, setCursorCmd,
		setHistoryCmd, setActivePaletteCmd,
		behaviorCmd("delete-cursor-behavior", key.DeleteCursorBehavior),
		behaviorCmd("insert-cursor-behavior", key.InsertCursorBehavior),
		behaviorCmd("move-cursor-behavior", key.MoveCursorBehavior))
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Assign cell metadata or adjust palette settings",
}

var setNameCmd = &cobra.Command{
	Use:   "name CELL_REF [NAME]",
	Short: "Name a cell, or clear its name",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		ref, err := parse.ParseCellRef(args[0])
		handleErr(err)
		c := command.SetName{Ref: ref}
		if len(args) == 2 {
			c.Name = mo.Some(args[1])
		}
		dispatch(cmd, c)
	},
}

var setGroupCmd = &cobra.Command{
	Use:   "group CELL_REF NAME",
	Short: "Add a cell to a group, or remove it",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ref, err := parse.ParseCellRef(args[0])
		handleErr(err)
		dispatch(cmd, command.SetGroup{
			Ref:    ref,
			Group:  args[1],
			Remove: lo.Must(cmd.Flags().GetBool("remove")),
		})
	},
}

var setExprCmd = &cobra.Command{
	Use:   "expr CELL_REF INSERT_EXPR",
	Short: "Replace the expression of a cell",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ref, err := parse.ParseCellRef(args[0])
		handleErr(err)
		e, err := parse.ParseInsertExpr(args[1])
		handleErr(err)
		dispatch(cmd, command.SetExpr{Ref: ref, Expr: e})
	},
}

var setCursorCmd = &cobra.Command{
	Use:   "cursor [POSITION]",
	Short: "Move the palette cursor, or show it",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			p, _, err := loadPalette(cmd)
			handleErr(err)
			fmt.Printf(":%d\n", p.Cursor())
			return
		}
		ref, err := parse.ParseCellRef(args[0])
		handleErr(err)
		dispatch(cmd, command.SetCursor{Ref: ref})
	},
}

var setHistoryCmd = &cobra.Command{
	Use:       "history enable|disable|clear",
	Short:     "Toggle or clear the operation log",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"enable", "disable", "clear"},
	Run: func(cmd *cobra.Command, args []string) {
		dispatch(cmd, command.SetHistory{Mode: args[0]})
	},
}

var setActivePaletteCmd = &cobra.Command{
	Use:   "active-palette PATH",
	Short: "Record the default palette for future invocations",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(state.SetActivePalette(args[0]))
	},
}

// behaviorCmd builds the three cursor-behavior setters, which share a shape.
func behaviorCmd(name, configKey string) *cobra.Command {
	return &cobra.Command{
		Use:       name + " BEHAVIOR",
		Short:     "Select the cursor behavior for " + name[:len(name)-len("-cursor-behavior")] + " operations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"stay", "forward", "backward", "first_new", "last_new"},
		Run: func(cmd *cobra.Command, args []string) {
			c := command.SetBehavior{Key: configKey, Behavior: args[0]}
			handleErr(c.Execute(&command.Env{}))
		},
	}
}
