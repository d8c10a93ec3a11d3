package timebar

import "time"

// Progress refresh pacing bounds.
const (
	// nearStoppedRate is the playback rate at or below which the display is
	// effectively frozen and a slow fixed cadence suffices.
	nearStoppedRate = 0.1

	// fastForwardRate is the playback rate above which redraw frequency is capped.
	fastForwardRate = 5.0

	nearStoppedDelay = time.Second
	fastForwardDelay = 200 * time.Millisecond

	// DefaultUnitPeriodMs matches the granularity of the displayed position
	// label (whole seconds).
	DefaultUnitPeriodMs = int64(1000)
)

// ProgressDelay computes how long to wait before the next progress refresh so
// that the displayed position advances at a visually correct rate without
// excessive redraw.
//
// When playback is not advancing, ok is false and no refresh should be
// scheduled. Otherwise the delay targets one displayed time unit changing per
// tick, biased to land just after a unit boundary: when the remainder until the
// next boundary is under one fifth of a unit period, a full period is added to
// avoid a near-zero wait.
func ProgressDelay(advancing bool, rate float64, positionMs, unitPeriodMs int64) (delay time.Duration, ok bool) {
	if !advancing {
		return 0, false
	}

	if rate <= nearStoppedRate {
		return nearStoppedDelay, true
	}
	if rate > fastForwardRate {
		return fastForwardDelay, true
	}

	if unitPeriodMs <= 0 {
		unitPeriodMs = DefaultUnitPeriodMs
	}
	if positionMs < 0 {
		positionMs = 0
	}

	mediaDelayMs := unitPeriodMs - positionMs%unitPeriodMs
	if mediaDelayMs < unitPeriodMs/5 {
		mediaDelayMs += unitPeriodMs
	}

	if rate == 1 {
		return time.Duration(mediaDelayMs) * time.Millisecond, true
	}
	return time.Duration(float64(mediaDelayMs)/rate) * time.Millisecond, true
}
