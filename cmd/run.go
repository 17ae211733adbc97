package cmd

import (
	"github.com/atma-cli/atma/command"
	"github.com/atma-cli/atma/filesystem"
	"github.com/atma-cli/atma/palette"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Run an editing script against the palette",
	Long: "Runs a script of ';'-separated editing commands (insert, delete, move,\n" +
		"set). Settings changed by a script apply to this run only.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := filesystem.API().ReadFile(args[0])
		handleErr(err)
		handleErr(mutatePalette(cmd, func(p *palette.Palette) error {
			return command.RunScript(p, string(src))
		}))
	},
}
