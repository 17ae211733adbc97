package cmd

import (
	"fmt"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/export"
	"github.com/atma-cli/atma/key"
	"github.com/atma-cli/atma/parse"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	exportPngCmd.Flags().StringP("output", "o", "palette.png", "Output file path")
	exportCmd.AddCommand(exportPngCmd)
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export resolved palette colors",
}

var exportPngCmd = &cobra.Command{
	Use:   "png [SELECTION]...",
	Short: "Export selections as a PNG swatch strip",
	Run: func(cmd *cobra.Command, args []string) {
		sels := []cell.Selection{cell.All()}
		if len(args) > 0 {
			sels = nil
			for _, arg := range args {
				sel, err := parse.ParseSelection(arg)
				handleErr(err)
				sels = append(sels, sel)
			}
		}

		p, _, err := loadPalette(cmd)
		handleErr(err)

		out := lo.Must(cmd.Flags().GetString("output"))
		handleErr(export.PNG(p, sels, out, viper.GetInt(key.ExportSwatchSize)))
		fmt.Printf("exported %s\n", out)
	},
}
