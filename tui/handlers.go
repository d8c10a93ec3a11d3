// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seekbar-cli/seekbar/internal/ui"
	"github.com/seekbar-cli/seekbar/log"
	"github.com/seekbar-cli/seekbar/playback"
	"github.com/seekbar-cli/seekbar/timebar"
	"github.com/seekbar-cli/seekbar/timeline"
	"github.com/seekbar-cli/seekbar/util"
)

// Playback rate bounds for the +/- keys.
const (
	minRate = 0.25
	maxRate = 16.0
)

// simulatorDispatcher adapts the playback controller to the seek dispatch
// contract of the bar.
type simulatorDispatcher struct {
	controller playback.Controller
}

func (d *simulatorDispatcher) DispatchSeek(windowIndex int, positionMs int64) bool {
	return d.controller.SeekTo(windowIndex, positionMs)
}

// startPlayer builds the playback simulator and the bar control for the given
// scenario and transitions into the player view.
func (b *statefulBubble) startPlayer(scenario timeline.Scenario) tea.Cmd {
	tl, err := scenario.Build()
	if err != nil {
		b.raiseError(err)
		return nil
	}

	sim, err := playback.NewSimulator(tl)
	if err != nil {
		b.raiseError(err)
		return nil
	}

	control, err := timebar.NewControl(timebar.DefaultControlConfig(), &simulatorDispatcher{controller: sim})
	if err != nil {
		b.raiseError(err)
		return nil
	}

	// Engine timers fire on their own goroutines; route their callbacks back
	// through the update loop so the control stays single-threaded.
	control.Scrub().SetDispatch(func(fn func()) {
		b.program.Send(uiCallMsg{fn: fn})
	})

	if err := control.OnTimelineChanged(tl); err != nil {
		b.raiseError(err)
		return nil
	}

	times, played := scenario.ExtraMarkerOffsets()
	extra, err := timebar.NewMarkerSet(times, played)
	if err != nil {
		b.raiseError(err)
		return nil
	}
	if err := control.SetMarkers(timebar.MarkerSet{}, extra); err != nil {
		b.raiseError(err)
		return nil
	}

	b.sim = sim
	b.control = control
	b.scenarioName = scenario.Name
	b.multiWindow = false
	b.repeat = false
	b.shuffle = false

	control.SetLayout(barX, barY, util.Max(b.width-2*barX, 0))

	log.Infof("starting scenario %q with %s", scenario.Name,
		util.Quantify(tl.WindowCount(), "window", "windows"))

	b.newState(playerState)
	return b.refreshPlayer()
}

// stopPlayer tears down the running player, if any.
func (b *statefulBubble) stopPlayer() {
	if b.control != nil {
		b.control.Detach()
	}
	b.control = nil
	b.sim = nil
}

// refreshPlayer polls the playback snapshot into the bar and schedules the
// next refresh for when the displayed position will change again.
func (b *statefulBubble) refreshPlayer() tea.Cmd {
	if b.control == nil || b.sim == nil {
		return nil
	}

	st := b.sim.Snapshot()

	b.control.SetCurrentWindow(st.WindowIndex)
	b.control.SetDuration(st.Duration)
	b.control.SetPosition(b.rangePosition(st.WindowIndex, st.PositionMs))
	b.control.SetBufferedPosition(b.rangePosition(st.WindowIndex, st.BufferedMs))
	b.control.SetFlags(st.Repeat, st.Shuffle)

	b.control.ScheduleRefresh(st.State.Advancing(), st.Rate, func() {
		b.program.Send(refreshMsg{})
	})
	return nil
}

// rangePosition translates a window-local time to a bar-range one: in
// multi-window mode positions are offset by the durations of earlier windows.
func (b *statefulBubble) rangePosition(windowIndex int, positionMs int64) int64 {
	if !b.control.MultiWindowActive() {
		return positionMs
	}

	tl := b.sim.Timeline()
	for wi := 0; wi < windowIndex && wi < tl.WindowCount(); wi++ {
		positionMs += tl.Windows[wi].Duration.OrElse(0)
	}
	return positionMs
}

// adjustRate scales the playback rate by the given factor within fixed bounds.
func (b *statefulBubble) adjustRate(factor float64) tea.Cmd {
	st := b.sim.Snapshot()
	rate := util.Clamp(st.Rate*factor, minRate, maxRate)
	if rate == st.Rate {
		return nil
	}

	b.sim.SetRate(rate)
	b.refreshPlayer()
	return ui.Notify(fmt.Sprintf("rate ×%g", rate))
}

// toggleMultiWindow flips between the whole-timeline and current-window bar.
func (b *statefulBubble) toggleMultiWindow() tea.Cmd {
	b.multiWindow = !b.multiWindow
	b.control.SetMultiWindowMode(b.multiWindow)

	active := b.control.MultiWindowActive()
	b.multiWindow = active
	b.refreshPlayer()

	if active {
		return ui.Notify("showing whole timeline")
	}
	return ui.Notify("showing current window")
}

// toggleFlags updates repeat/shuffle on both the player and the bar.
func (b *statefulBubble) toggleFlags(repeat, shuffle bool) tea.Cmd {
	b.repeat = repeat
	b.shuffle = shuffle
	b.sim.SetFlags(repeat, shuffle)
	b.control.SetFlags(repeat, shuffle)

	status := func(name string, on bool) string {
		if on {
			return name + " on"
		}
		return name + " off"
	}
	return ui.Notify(status("repeat", repeat) + ", " + status("shuffle", shuffle))
}
