// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/seekbar-cli/seekbar/internal/ui"
)

// Update is the central message dispatcher of the application loop.
func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case uiCallMsg:
		// Deferred engine callback marshaled back onto the loop.
		msg.fn()
		return b, b.refreshPlayer()

	case refreshMsg:
		return b, b.refreshPlayer()

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case string:
		return b, b.notifier.Update(msg)

	case ui.ClearNotificationMsg:
		return b, b.notifier.Update(msg)

	case tea.MouseMsg:
		return b.handleMouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			b.stopPlayer()
			return b, tea.Quit
		}
	}

	switch b.state {
	case pickState:
		return b.updatePick(msg)
	case playerState:
		return b.updatePlayer(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

// handleMouse routes pointer events into the scrub controller while the
// player view is active.
func (b *statefulBubble) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if b.state != playerState || b.control == nil {
		return b, nil
	}

	scrub := b.control.Scrub()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		scrub.KeyStep(1)
		return b, nil
	case tea.MouseButtonWheelDown:
		scrub.KeyStep(-1)
		return b, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			scrub.PointerDown(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		scrub.PointerMove(msg.X, msg.Y)
	case tea.MouseActionRelease:
		if scrub.PointerUp(msg.X, msg.Y) {
			return b, b.refreshPlayer()
		}
	}

	return b, nil
}

func (b *statefulBubble) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.confirm):
			item, ok := b.scenariosC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			return b, b.startPlayer(item.scenario)
		case key.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	b.scenariosC, cmd = b.scenariosC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	scrub := b.control.Scrub()

	switch {
	case key.Matches(keyMsg, b.keymap.stepBack):
		scrub.KeyStep(-1)
	case key.Matches(keyMsg, b.keymap.stepForward):
		scrub.KeyStep(1)
	case key.Matches(keyMsg, b.keymap.confirm):
		scrub.CommitScrub()
		return b, b.refreshPlayer()
	case key.Matches(keyMsg, b.keymap.back):
		if scrub.Scrubbing() {
			scrub.CancelScrub()
			return b, nil
		}
		b.stopPlayer()
		b.newState(pickState)
	case key.Matches(keyMsg, b.keymap.playPause):
		b.sim.TogglePause()
		return b, b.refreshPlayer()
	case key.Matches(keyMsg, b.keymap.rateUp):
		return b, b.adjustRate(2)
	case key.Matches(keyMsg, b.keymap.rateDown):
		return b, b.adjustRate(0.5)
	case key.Matches(keyMsg, b.keymap.multiWindow):
		return b, b.toggleMultiWindow()
	case key.Matches(keyMsg, b.keymap.repeat):
		return b, b.toggleFlags(!b.repeat, b.shuffle)
	case key.Matches(keyMsg, b.keymap.shuffle):
		return b, b.toggleFlags(b.repeat, !b.shuffle)
	case key.Matches(keyMsg, b.keymap.quit):
		b.stopPlayer()
		return b, tea.Quit
	}

	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch {
	case key.Matches(keyMsg, b.keymap.back):
		b.newState(pickState)
	case key.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	}

	return b, nil
}
