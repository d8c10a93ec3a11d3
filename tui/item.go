// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"strings"

	"github.com/seekbar-cli/seekbar/style"
	"github.com/seekbar-cli/seekbar/timeline"
	"github.com/seekbar-cli/seekbar/util"
)

// listItem implements the list.Item interface, wrapping a scenario for terminal display.
type listItem struct {
	scenario timeline.Scenario
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	return t.scenario.Name
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() string {
	var parts []string

	parts = append(parts, util.Quantify(len(t.scenario.Windows), "window", "windows"))

	var (
		totalMs int64
		breaks  int
		live    bool
	)
	for _, w := range t.scenario.Windows {
		if w.DurationSec <= 0 {
			live = true
		}
		totalMs += int64(w.DurationSec * 1000)
		for _, p := range w.Periods {
			breaks += len(p.AdBreaks)
		}
	}
	breaks += len(t.scenario.ExtraMarkers)

	if live {
		parts = append(parts, style.Faint("live"))
	} else {
		parts = append(parts, util.FormatTime(totalMs))
	}
	if breaks > 0 {
		parts = append(parts, util.Quantify(breaks, "break", "breaks"))
	}

	return strings.Join(parts, " · ")
}

// FilterValue retrieves the string used for list filtering.
func (t *listItem) FilterValue() string {
	return t.scenario.Name
}
