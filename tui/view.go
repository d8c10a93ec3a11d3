// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/seekbar-cli/seekbar/icon"
	"github.com/seekbar-cli/seekbar/playback"
	"github.com/seekbar-cli/seekbar/style"
	"github.com/seekbar-cli/seekbar/timebar"
	"github.com/seekbar-cli/seekbar/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case pickState:
		output = b.viewPick()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewPick() string {
	return listExtraPaddingStyle.Render(b.scenariosC.View())
}

func (b *statefulBubble) viewPlayer() string {
	st := b.sim.Snapshot()
	bar := b.control.State()

	title := fmt.Sprintf("%s %s", b.stateIcon(st.State), style.Fg(style.Text)(b.scenarioName))
	if st.Rate != 1 {
		title += " " + style.Faint(fmt.Sprintf("×%g", st.Rate))
	}
	if bar.Repeat {
		title += " " + style.Faint("[repeat]")
	}
	if bar.Shuffle {
		title += " " + style.Faint("[shuffle]")
	}

	lines := []string{
		style.Truncate(b.width)(title),
		"",
		renderBar(bar),
		"",
		style.Truncate(b.width)(b.statusLine(st, bar)),
	}

	return b.renderLines(true, lines)
}

// statusLine composes the clock, window indicator, and scrub hint under the bar.
func (b *statefulBubble) statusLine(st playback.Status, bar timebar.BarState) string {
	var clock string
	if bar.DurationMs > 0 {
		clock = fmt.Sprintf("%s / %s", util.FormatTime(bar.PositionMs), util.FormatTime(bar.DurationMs))
	} else {
		clock = fmt.Sprintf("%s / %s", util.FormatTime(bar.PositionMs), style.Fg(style.ErrorColor)("live"))
	}

	parts := []string{clock}

	tl := b.sim.Timeline()
	if tl.WindowCount() > 1 && !b.control.MultiWindowActive() {
		parts = append(parts, style.Faint(fmt.Sprintf("window %d/%d", st.WindowIndex+1, tl.WindowCount())))
	}

	if bar.Scrubbing {
		parts = append(parts, style.Fg(style.Scrubbed)("seeking"))
	} else {
		parts = append(parts, style.Faint(st.State.String()))
	}

	return strings.Join(parts, "  ")
}

func (b *statefulBubble) stateIcon(s playback.State) string {
	switch s {
	case playback.Playing:
		return icon.Get(icon.Play)
	case playback.Buffering:
		return b.spinnerC.View()
	case playback.Ended:
		return icon.Get(icon.Success)
	default:
		return icon.Get(icon.Pause)
	}
}

// Bar cell classes, back to front: base fill, then markers, then the handle.
type barCell int

const (
	cellUnplayed barCell = iota
	cellBuffered
	cellPlayed
	cellMarker
	cellPlayedMarker
	cellHandle
)

// renderBar paints the seek bar row from the render-ready snapshot.
func renderBar(s timebar.BarState) string {
	width := s.Geometry.TrackWidth()
	if width <= 0 {
		return ""
	}

	cells := make([]barCell, width)
	for px := range cells {
		switch {
		case px < s.PlayedPx:
			cells[px] = cellPlayed
		case px < s.BufferedPx:
			cells[px] = cellBuffered
		default:
			cells[px] = cellUnplayed
		}
	}

	for i, px := range s.MarkerPx {
		for w := 0; w < s.MarkerWidthPx; w++ {
			at := util.Clamp(px+w, 0, width-1)
			if s.Markers.Played[i] {
				cells[at] = cellPlayedMarker
			} else {
				cells[at] = cellMarker
			}
		}
	}

	if s.DurationMs > 0 {
		handle := util.Clamp(s.Geometry.HandleX-s.Geometry.TrackBounds.X, 0, width-1)
		cells[handle] = cellHandle
	}

	playedColor := style.Played
	if s.Scrubbing {
		playedColor = style.Scrubbed
	}

	var sb strings.Builder
	for _, c := range cells {
		switch c {
		case cellPlayed:
			sb.WriteString(style.Fg(playedColor)("▓"))
		case cellBuffered:
			sb.WriteString(style.Fg(style.Buffered)("▒"))
		case cellMarker:
			sb.WriteString(style.Fg(style.AdMarker)(icon.Get(icon.AdMarker)))
		case cellPlayedMarker:
			sb.WriteString(style.Fg(style.PlayedAdMarker)(icon.Get(icon.PlayedAdMarker)))
		case cellHandle:
			sb.WriteString(style.Fg(style.Handle)(icon.Get(icon.Handle)))
		default:
			sb.WriteString(style.Fg(style.Unplayed)("░"))
		}
	}

	return sb.String()
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
