// Package cmd implements the command-line interface for seekbar.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seekbar-cli/seekbar/color"
	"github.com/seekbar-cli/seekbar/constant"
	"github.com/seekbar-cli/seekbar/icon"
	"github.com/seekbar-cli/seekbar/key"
	"github.com/seekbar-cli/seekbar/log"
	"github.com/seekbar-cli/seekbar/style"
	"github.com/seekbar-cli/seekbar/timeline"
	"github.com/seekbar-cli/seekbar/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("scenario", "s", "", "Play the named scenario or JSON scenario file directly, skipping the picker")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("scenario", completionScenarioNames))

	rootCmd.Flags().BoolP("inline", "i", false, "Render in the main screen buffer instead of the alternate one")
}

// rootCmd defines the entry point for the seekbar application.
var rootCmd = &cobra.Command{
	Use:   constant.Seekbar,
	Short: "An interactive terminal seek bar over simulated media timelines",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - An interactive terminal seek bar over simulated media timelines"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options := tui.Options{
			Scenario: mo.None[timeline.Scenario](),
			Inline:   lo.Must(cmd.Flags().GetBool("inline")),
		}

		if name := lo.Must(cmd.Flags().GetString("scenario")); name != "" {
			scenario, err := resolveScenario(name)
			handleErr(err)
			options.Scenario = mo.Some(scenario)
		}

		handleErr(tui.Run(&options))
	},
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
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
