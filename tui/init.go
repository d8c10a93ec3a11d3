// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the spinner and, when a scenario was preselected on the command
// line, jumps straight into the player.
func (b *statefulBubble) Init() tea.Cmd {
	if scenario, ok := b.options.Scenario.Get(); ok {
		return tea.Batch(b.spinnerC.Tick, b.startPlayer(scenario))
	}

	return b.spinnerC.Tick
}
