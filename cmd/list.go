package cmd

import (
	"fmt"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/list"
	"github.com/atma-cli/atma/parse"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	listCmd.Flags().String("mode", "", "Layout mode: grid, lines or list")
	listCmd.Flags().String("color-style", "", "Color presentation: tile, none or text")
	listCmd.Flags().String("text-style", "", "Color text form: none, hex6, hex3 or rgb")
	listCmd.Flags().String("rule-style", "", "Rule presentation: colored, none or plain")
	listCmd.Flags().String("line-style", "", "Line numbering: auto, none or a size")
	listCmd.Flags().String("gutter-style", "", "Gutter sizing: auto, none or a size")
	listCmd.Flags().Int("max-width", 0, "Constrain output width")
	listCmd.Flags().Int("max-columns", 0, "Constrain grid columns")
	listCmd.Flags().Int("max-height", 0, "Constrain grid rows")
	listCmd.Flags().Bool("no-color", false, "Disable colored tiles")

	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [SELECTION]",
	Short: "Show resolved palette cells",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sel := cell.All()
		if len(args) == 1 {
			parsed, err := parse.ParseSelection(args[0])
			handleErr(err)
			sel = parsed
		}

		opts := list.DefaultOptions()
		override := func(flag string, dst *string) {
			if v := lo.Must(cmd.Flags().GetString(flag)); v != "" {
				*dst = v
			}
		}
		override("mode", &opts.Mode)
		override("color-style", &opts.ColorStyle)
		override("text-style", &opts.TextStyle)
		override("rule-style", &opts.RuleStyle)
		override("line-style", &opts.LineStyle)
		override("gutter-style", &opts.GutterStyle)
		opts.MaxWidth = lo.Must(cmd.Flags().GetInt("max-width"))
		opts.MaxColumns = lo.Must(cmd.Flags().GetInt("max-columns"))
		opts.MaxHeight = lo.Must(cmd.Flags().GetInt("max-height"))
		opts.NoColor = lo.Must(cmd.Flags().GetBool("no-color"))

		p, _, err := loadPalette(cmd)
		handleErr(err)

		out, err := list.Render(p, sel, opts)
		handleErr(err)
		fmt.Print(out)
	},
}
