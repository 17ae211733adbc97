package cmd

import (
	"fmt"
	"strconv"

	"github.com/atma-cli/atma/palette"
	"github.com/atma-cli/atma/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(undoCmd, redoCmd)
}

func countArg(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("count must be a positive integer, got %q", args[0])
	}
	return n, nil
}

var undoCmd = &cobra.Command{
	Use:   "undo [COUNT]",
	Short: "Undo the most recent operations",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		count, err := countArg(args)
		handleErr(err)
		handleErr(mutatePalette(cmd, func(p *palette.Palette) error {
			n, err := p.Undo(count)
			if err != nil {
				return err
			}
			fmt.Printf("undid %s\n", util.Quantify(n, "operation", "operations"))
			return nil
		}))
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo [COUNT]",
	Short: "Redo previously undone operations",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		count, err := countArg(args)
		handleErr(err)
		handleErr(mutatePalette(cmd, func(p *palette.Palette) error {
			n, err := p.Redo(count)
			if err != nil {
				return err
			}
			fmt.Printf("redid %s\n", util.Quantify(n, "operation", "operations"))
			return nil
		}))
	},
}
