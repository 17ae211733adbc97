package cmd

import (
	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/command"
	"github.com/atma-cli/atma/expr"
	"github.com/atma-cli/atma/palette"
	"github.com/atma-cli/atma/parse"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	insertCmd.Flags().String("name", "", "Assign the inserted cells to this group")
	insertCmd.Flags().String("at", "", "Insert at this reference or position")

	deleteCmd.Flags().Bool("clear-orphans", false, "Also drop metadata left dangling by the removal")

	moveCmd.Flags().String("to", "", "Move to this reference or position")

	rootCmd.AddCommand(insertCmd, deleteCmd, moveCmd)
}

// dispatch executes a command against the working palette and saves it.
func dispatch(cmd *cobra.Command, c command.Command) {
	handleErr(mutatePalette(cmd, func(p *palette.Palette) error {
		return c.Execute(&command.Env{Palette: p})
	}))
}

var insertCmd = &cobra.Command{
	Use:   "insert [INSERT_EXPR]",
	Short: "Insert an expression into the palette",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := parse.ParseInsertExpr(args[0])
		handleErr(err)

		c := command.Insert{Exprs: []expr.InsertExpr{e}}
		if name := lo.Must(cmd.Flags().GetString("name")); name != "" {
			c.Name = mo.Some(name)
		}
		if at := lo.Must(cmd.Flags().GetString("at")); at != "" {
			ref, err := parse.ParseCellRef(at)
			handleErr(err)
			c.At = mo.Some(ref)
		}
		dispatch(cmd, c)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [SELECTION]",
	Short: "Delete the selected cells",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sel := cell.All()
		if len(args) == 1 {
			parsed, err := parse.ParseSelection(args[0])
			handleErr(err)
			sel = parsed
		}
		dispatch(cmd, command.Delete{
			Sel:          sel,
			ClearOrphans: lo.Must(cmd.Flags().GetBool("clear-orphans")),
		})
	},
}

var moveCmd = &cobra.Command{
	Use:   "move [SELECTION]",
	Short: "Move the selected cells",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sel := cell.All()
		if len(args) == 1 {
			parsed, err := parse.ParseSelection(args[0])
			handleErr(err)
			sel = parsed
		}
		c := command.Move{Sel: sel}
		if to := lo.Must(cmd.Flags().GetString("to")); to != "" {
			ref, err := parse.ParseCellRef(to)
			handleErr(err)
			c.To = mo.Some(ref)
		}
		dispatch(cmd, c)
	},
}
