// Package timeline models the multi-segment media timeline rendered by the seek bar:
// windows, periods, and the ad breaks scheduled inside them.
package timeline

import (
	"fmt"
	"math"

	"github.com/samber/mo"
)

// EndOfSource is the sentinel ad-break offset for a break scheduled at the very
// end of its period. It resolves to the period's own duration during marker
// aggregation, or is dropped when that duration is unknown.
const EndOfSource int64 = math.MinInt64

// AdBreak is a scheduled interruption at a period-local time offset.
type AdBreak struct {
	// Offset is the period-local time in milliseconds, or EndOfSource.
	Offset int64
	Played bool
}

// Period is a sub-segment of a window with its own duration and ad-break schedule.
type Period struct {
	// Duration in milliseconds; None when unknown.
	Duration mo.Option[int64]

	// PositionInWindow is the period's start offset within its window, in milliseconds.
	PositionInWindow int64

	AdBreaks []AdBreak
}

// Window is one playable program unit in a timeline. Live/dynamic windows may
// have unknown duration.
type Window struct {
	// Duration in milliseconds; None when unknown or unbounded.
	Duration mo.Option[int64]

	Seekable bool
	Dynamic  bool

	Periods []Period
}

// Timeline is an ordered sequence of windows.
type Timeline struct {
	Windows []Window
}

// WindowCount returns the number of windows in the timeline.
func (t Timeline) WindowCount() int {
	return len(t.Windows)
}

// Empty reports whether the timeline has no windows.
func (t Timeline) Empty() bool {
	return len(t.Windows) == 0
}

// CanShowMultiWindow reports whether the whole timeline may be shown on the bar
// at once: every window must have a known duration and the window count must not
// exceed the cap.
func (t Timeline) CanShowMultiWindow(cap int) bool {
	if t.Empty() || t.WindowCount() > cap {
		return false
	}
	for _, w := range t.Windows {
		if w.Duration.IsAbsent() {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants: period offsets within a window are
// monotonic, a window's known duration equals the sum of its periods' known
// durations, and ad-break offsets are non-negative or EndOfSource.
func (t Timeline) Validate() error {
	for wi, w := range t.Windows {
		var (
			lastOffset int64 = -1
			periodSum  int64
			sumKnown   = true
		)

		for pi, p := range w.Periods {
			if p.PositionInWindow < lastOffset {
				return fmt.Errorf("window %d: period %d offset %d is not monotonic", wi, pi, p.PositionInWindow)
			}
			lastOffset = p.PositionInWindow

			if d, ok := p.Duration.Get(); ok {
				periodSum += d
			} else {
				sumKnown = false
			}

			for bi, brk := range p.AdBreaks {
				if brk.Offset != EndOfSource && brk.Offset < 0 {
					return fmt.Errorf("window %d: period %d: ad break %d has negative offset %d", wi, pi, bi, brk.Offset)
				}
			}
		}

		if wd, ok := w.Duration.Get(); ok && sumKnown && len(w.Periods) > 0 && wd != periodSum {
			return fmt.Errorf("window %d: duration %dms does not match period sum %dms", wi, wd, periodSum)
		}
	}

	return nil
}

// Range is the inclusive first/last window index currently shown on the bar.
type Range struct {
	First, Last int
}

// SingleWindow returns a range covering only the window at index i.
func SingleWindow(i int) Range {
	return Range{First: i, Last: i}
}

// FullRange returns a range covering every window of the timeline.
func FullRange(t Timeline) Range {
	if t.Empty() {
		return Range{}
	}
	return Range{First: 0, Last: t.WindowCount() - 1}
}

// Multi reports whether the range spans more than one window.
func (r Range) Multi() bool {
	return r.Last > r.First
}

// Clamped constrains the range to valid window indices of t.
func (r Range) Clamped(t Timeline) Range {
	if t.Empty() {
		return Range{}
	}
	last := t.WindowCount() - 1
	if r.First < 0 {
		r.First = 0
	}
	if r.Last > last {
		r.Last = last
	}
	if r.Last < r.First {
		r.Last = r.First
	}
	return r
}

// Duration returns the summed duration of all windows in the range, or None if
// any of them has unknown duration.
func (r Range) Duration(t Timeline) mo.Option[int64] {
	if t.Empty() {
		return mo.None[int64]()
	}

	var total int64
	for i := r.First; i <= r.Last && i < t.WindowCount(); i++ {
		d, ok := t.Windows[i].Duration.Get()
		if !ok {
			return mo.None[int64]()
		}
		total += d
	}
	return mo.Some(total)
}
