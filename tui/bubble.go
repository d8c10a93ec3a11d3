// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/seekbar-cli/seekbar/internal/ui"
	"github.com/seekbar-cli/seekbar/playback"
	"github.com/seekbar-cli/seekbar/style"
	"github.com/seekbar-cli/seekbar/timebar"
	"github.com/seekbar-cli/seekbar/timeline"
	"github.com/seekbar-cli/seekbar/util"
	"github.com/seekbar-cli/seekbar/where"
)

// Placement of the bar within the player view, relative to the terminal.
// Mouse hit-testing depends on these matching the line layout in viewPlayer.
const (
	barX = 2
	barY = 3
)

// refreshMsg asks the update loop to re-poll the player and re-render the bar.
type refreshMsg struct{}

// uiCallMsg marshals a deferred engine callback back onto the update loop.
type uiCallMsg struct {
	fn func()
}

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
type statefulBubble struct {
	state     state
	prevState state

	keymap *statefulKeymap

	// components
	scenariosC list.Model
	spinnerC   spinner.Model
	helpC      help.Model

	control *timebar.Control
	sim     *playback.Simulator

	scenarioName string
	multiWindow  bool
	repeat       bool
	shuffle      bool

	// program is the running Bubble Tea program, used to marshal engine timer
	// callbacks back onto the update loop. Set by Run before the loop starts.
	program *tea.Program

	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to a target state, remembering the previous one for esc navigation.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.prevState = b.state
	b.setState(s)
}

// previousState restores the application to its immediate predecessor state.
func (b *statefulBubble) previousState() {
	b.setState(b.prevState)
}

// resize propagates terminal dimension changes to all child component models
// and relayouts the seek bar.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.scenariosC.SetSize(width-xx, height-yy)
	b.scenariosC.Help.Width = width - xx
	b.helpC.Width = width - xx

	if b.control != nil {
		b.control.SetLayout(barX, barY, util.Max(b.width-2*barX, 0))
	}
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:   keymap,
		notifier: &ui.Model{},
		options:  options,
	}

	makeList := func(title string, titleBackground lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.ShowDescription = true
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.Played).
			Foreground(style.Played).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(titleBackground).
			Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.Played)

	bubble.scenariosC = makeList("Scenarios", lipgloss.Color("62"))
	bubble.scenariosC.SetStatusBarItemName("scenario", "scenarios")

	var items []list.Item
	for _, s := range timeline.Available(where.Scenarios()) {
		items = append(items, &listItem{scenario: s})
	}
	bubble.scenariosC.SetItems(items)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
