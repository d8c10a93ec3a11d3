// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/seekbar-cli/seekbar/timeline"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Scenario skips the picker and plays the given scenario directly.
	Scenario mo.Option[timeline.Scenario]

	// Inline renders in the main screen buffer instead of the alternate one.
	Inline bool
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)

	if options.Scenario.IsAbsent() {
		bubble.setState(pickState)
	}

	programOptions := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !options.Inline {
		programOptions = append(programOptions, tea.WithAltScreen())
	}

	program := tea.NewProgram(bubble, programOptions...)
	bubble.program = program

	_, err := program.Run()
	return err
}
