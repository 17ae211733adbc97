// Package cmd implements the command-line interface for atma.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atma-cli/atma/constant"
	"github.com/atma-cli/atma/filesystem"
	"github.com/atma-cli/atma/key"
	"github.com/atma-cli/atma/log"
	"github.com/atma-cli/atma/palette"
	"github.com/atma-cli/atma/parse"
	"github.com/atma-cli/atma/state"
	"github.com/atma-cli/atma/style"
	"github.com/atma-cli/atma/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.PersistentFlags().String("config", "", "Override the configuration file path")
	rootCmd.PersistentFlags().String("settings", "", "Override the settings file path")
	rootCmd.PersistentFlags().StringP("palette", "p", "", "Operate on the palette at this path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose diagnostics")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().Bool("silent", false, "Alias of --quiet")
	rootCmd.PersistentFlags().Bool("ztrace", false, "Enable trace-level logging")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if path := lo.Must(cmd.Flags().GetString("config")); path != "" {
			viper.SetConfigFile(path)
			handleErr(viper.ReadInConfig())
		}
		if lo.Must(cmd.Flags().GetBool("quiet")) || lo.Must(cmd.Flags().GetBool("silent")) {
			if devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0); err == nil {
				os.Stdout = devNull
			}
		}
		switch {
		case lo.Must(cmd.Flags().GetBool("ztrace")):
			viper.Set(key.LogsLevel, "trace")
		case lo.Must(cmd.Flags().GetBool("verbose")):
			viper.Set(key.LogsLevel, "debug")
		default:
			return
		}
		// Re-run the log setup so the override reaches the backend.
		_ = log.Setup()
	}
}

// rootCmd defines the entry point for the atma application.
var rootCmd = &cobra.Command{
	Use:   constant.Atma,
	Short: "A command-line editor for structured color palettes",
	Long: "atma edits palettes whose cells are expressions: colors, references,\n" +
		"blends and ramps that recompute as their sources change.",
	Version: constant.Version,
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}

// userError reports whether an error stems from user input rather than an
// internal or environmental failure.
func userError(err error) bool {
	var (
		unknownRef  *palette.UnknownRefError
		notOccupied *palette.NotOccupiedError
		occupied    *palette.AlreadyOccupiedError
		nameConf    *palette.NameConflictError
		posConf     *palette.PositionConflictError
		cycle       *palette.CycleError
		room        *palette.OutOfRoomError
		parseFail   *parse.Failure
	)
	switch {
	case errors.As(err, &unknownRef),
		errors.As(err, &notOccupied),
		errors.As(err, &occupied),
		errors.As(err, &nameConf),
		errors.As(err, &posConf),
		errors.As(err, &cycle),
		errors.As(err, &room),
		errors.As(err, &parseFail),
		errors.Is(err, palette.ErrHistoryEmpty):
		return true
	}
	// Wrapped parse errors from entry points carry the failure in their text.
	return strings.Contains(err.Error(), "parse error")
}

// fail prints a diagnostic and exits with the contract's code: 1 for user
// errors, 2 for internal ones.
func fail(err error) {
	log.Error(err)
	fmt.Fprintf(os.Stderr, "%s %s\n",
		style.ErrorTitle("error"), strings.Trim(err.Error(), " \n"))
	if userError(err) {
		os.Exit(1)
	}
	os.Exit(2)
}

// handleErr is the common terminal error path for commands.
func handleErr(err error) {
	if err != nil {
		fail(err)
	}
}

// palettePath resolves the palette file to operate on: the -p flag, the
// active palette pointer, or the default location.
func palettePath(cmd *cobra.Command) string {
	if path := lo.Must(cmd.Flags().GetString("palette")); path != "" {
		return path
	}
	if active, err := state.ActivePalette(); err == nil && active != "" {
		return active
	}
	return where.DefaultPalette()
}

// loadPalette reads the working palette.
func loadPalette(cmd *cobra.Command) (*palette.Palette, string, error) {
	path := palettePath(cmd)
	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return nil, path, err
	}
	if !exists {
		return nil, path, fmt.Errorf(
			"no palette at %s; create one with %q", path, "atma new palette")
	}
	p, err := palette.Load(path)
	return p, path, err
}

// mutatePalette loads the palette, runs the mutation and writes the result
// back on success.
func mutatePalette(cmd *cobra.Command, fn func(p *palette.Palette) error) error {
	p, path, err := loadPalette(cmd)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return p.Save(path)
}
