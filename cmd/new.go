package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/atma-cli/atma/command"
	"github.com/atma-cli/atma/config"
	"github.com/atma-cli/atma/constant"
	"github.com/atma-cli/atma/filesystem"
	"github.com/atma-cli/atma/palette"
	"github.com/atma-cli/atma/state"
	"github.com/atma-cli/atma/util"
	"github.com/atma-cli/atma/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	newPaletteCmd.Flags().String("from-script", "", "Seed the palette by running the script at this path")
	newPaletteCmd.Flags().String("name", "", "Group name assigned to cells seeded from the script")
	newPaletteCmd.Flags().Bool("no-history", false, "Create the palette without an operation log")
	newPaletteCmd.Flags().Bool("set-active", false, "Record the new palette as the active one")
	newPaletteCmd.Flags().Bool("overwrite", false, "Replace an existing file without confirmation")

	newConfigCmd.Flags().Bool("overwrite", false, "Replace an existing file without confirmation")
	newSettingsCmd.Flags().Bool("overwrite", false, "Replace an existing file without confirmation")

	newCmd.AddCommand(newPaletteCmd, newConfigCmd, newSettingsCmd)
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new palette, config or settings file",
}

// confirmOverwrite asks before clobbering an existing file; non-interactive
// runs refuse instead.
func confirmOverwrite(path string, force bool) error {
	exists := lo.Must(filesystem.API().Exists(path))
	if !exists || force {
		return nil
	}
	if !util.IsTerminal() {
		return fmt.Errorf("%s already exists; pass --overwrite to replace it", path)
	}
	ok := false
	prompt := &survey.Confirm{Message: fmt.Sprintf("%s already exists. Overwrite?", path)}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("refusing to overwrite %s", path)
	}
	return nil
}

var newPaletteCmd = &cobra.Command{
	Use:   "palette [PATH]",
	Short: "Create a new palette file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := where.DefaultPalette()
		if len(args) == 1 {
			path = args[0]
		}
		handleErr(confirmOverwrite(path, lo.Must(cmd.Flags().GetBool("overwrite"))))

		p := palette.New()
		if lo.Must(cmd.Flags().GetBool("no-history")) {
			p.WithoutHistory()
		}

		if scriptPath := lo.Must(cmd.Flags().GetString("from-script")); scriptPath != "" {
			src, err := filesystem.API().ReadFile(scriptPath)
			handleErr(err)
			handleErr(command.RunScript(p, string(src)))
			if group := lo.Must(cmd.Flags().GetString("name")); group != "" {
				var ops []palette.Operation
				for _, idx := range p.Indices() {
					ops = append(ops, palette.AssignGroup(idx, group))
				}
				handleErr(p.Apply(ops))
			}
		}

		handleErr(p.Save(path))

		if lo.Must(cmd.Flags().GetBool("set-active")) {
			handleErr(state.SetActivePalette(path))
		}
		fmt.Printf("created palette %s\n", path)
	},
}

var newConfigCmd = &cobra.Command{
	Use:   "config [PATH]",
	Short: "Write a config file populated with commented defaults",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := filepath.Join(where.Config(), constant.Atma+".toml")
		if len(args) == 1 {
			path = args[0]
		}
		writeDefaults(cmd, path)
	},
}

var newSettingsCmd = &cobra.Command{
	Use:   "settings [PATH]",
	Short: "Write a settings file populated with commented defaults",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := where.Settings()
		if len(args) == 1 {
			path = args[0]
		}
		writeDefaults(cmd, path)
	},
}

func writeDefaults(cmd *cobra.Command, path string) {
	handleErr(confirmOverwrite(path, lo.Must(cmd.Flags().GetBool("overwrite"))))

	var b []byte
	for _, name := range sortedConfigKeys() {
		field := config.Default[name]
		desc := strings.ReplaceAll(field.Description, "\n", "\n# ")
		b = append(b, fmt.Sprintf("# %s\n#%s = %v\n\n",
			desc, field.Key, field.Value)...)
	}
	handleErr(filesystem.API().WriteFile(path, b, 0644))
	fmt.Printf("created %s\n", path)
}

func sortedConfigKeys() []string {
	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys
}
