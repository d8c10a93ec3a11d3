// Package cmd implements the command-line interface for seekbar.
package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/seekbar-cli/seekbar/color"
	"github.com/seekbar-cli/seekbar/filesystem"
	"github.com/seekbar-cli/seekbar/icon"
	"github.com/seekbar-cli/seekbar/style"
	"github.com/seekbar-cli/seekbar/timeline"
	"github.com/seekbar-cli/seekbar/util"
	"github.com/seekbar-cli/seekbar/where"
	"github.com/spf13/cobra"
)

// resolveScenario maps a --scenario argument to a scenario: a path to a JSON
// file is loaded directly, anything else is matched against the available
// scenario names.
func resolveScenario(arg string) (timeline.Scenario, error) {
	if exists, _ := filesystem.API().Exists(arg); exists {
		return timeline.LoadScenario(arg)
	}

	scenarios := timeline.Available(where.Scenarios())
	for _, s := range scenarios {
		if strings.EqualFold(s.Name, arg) {
			return s, nil
		}
	}

	closest := lo.MinBy(scenarios, func(a, b timeline.Scenario) bool {
		return levenshtein.Distance(arg, a.Name) < levenshtein.Distance(arg, b.Name)
	})
	return timeline.Scenario{}, fmt.Errorf(
		"unknown scenario %s, did you mean %s?",
		style.Fg(color.Red)(arg),
		style.Fg(color.Yellow)(closest.Name),
	)
}

func completionScenarioNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(timeline.Available(where.Scenarios()), func(s timeline.Scenario, _ int) string {
		return s.Name
	}), cobra.ShellCompDirectiveDefault
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

// scenariosCmd serves as the parent command for managing demo timeline scenarios.
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Manage demo timeline scenarios",
}

func init() {
	scenariosCmd.AddCommand(scenariosListCmd)
}

// scenariosListCmd lists the builtin and user-installed scenarios.
var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available timeline scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range timeline.Available(where.Scenarios()) {
			var breaks int
			for _, w := range s.Windows {
				for _, p := range w.Periods {
					breaks += len(p.AdBreaks)
				}
			}
			breaks += len(s.ExtraMarkers)

			cmd.Printf(
				"%s %s\n",
				style.Fg(color.Purple)(s.Name),
				style.Faint(fmt.Sprintf(
					"(%s, %s)",
					util.Quantify(len(s.Windows), "window", "windows"),
					util.Quantify(breaks, "break", "breaks"),
				)),
			)
		}
	},
}

func init() {
	scenariosCmd.AddCommand(scenariosImportCmd)
	scenariosImportCmd.Flags().BoolP("force", "f", false, "Overwrite an existing scenario file without confirmation")
}

// scenariosImportCmd copies a scenario file into the localized scenario directory.
var scenariosImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Install a JSON scenario file into the localized scenario directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source := args[0]

		// Validate before copying so a broken file never lands in the directory.
		scenario, err := timeline.LoadScenario(source)
		handleErr(err)
		_, err = scenario.Build()
		handleErr(err)

		target := filepath.Join(where.Scenarios(), filepath.Base(source))
		if exists, _ := filesystem.API().Exists(target); exists && !lo.Must(cmd.Flags().GetBool("force")) {
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Scenario %s already exists. Overwrite?", filepath.Base(source)),
				Default: false,
			}

			var overwrite bool
			handleErr(survey.AskOne(&confirm, &overwrite))
			if !overwrite {
				handleErr(errors.New("scenario import aborted"))
			}
		}

		data, err := filesystem.API().ReadFile(source)
		handleErr(err)
		handleErr(filesystem.API().WriteFile(target, data, 0o644))

		fmt.Printf(
			"%s imported %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(scenario.Name),
		)
	},
}
