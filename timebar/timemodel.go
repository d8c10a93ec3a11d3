// Package timebar implements the progress-and-scrub engine behind the seek bar:
// time/pixel mapping, ad-marker aggregation, the scrub state machine, and the
// adaptive progress refresh scheduler.
package timebar

import "github.com/seekbar-cli/seekbar/util"

// TimeToPixel maps a media time offset to a track column. Degenerate inputs
// (non-positive duration or width) map to 0; the result is clamped to
// [0, trackWidthPx].
func TimeToPixel(timeMs, durationMs int64, trackWidthPx int) int {
	if durationMs <= 0 || trackWidthPx <= 0 {
		return 0
	}
	t := util.Clamp(timeMs, 0, durationMs)
	return int(int64(trackWidthPx) * t / durationMs)
}

// PixelToTime is the inverse of TimeToPixel. Degenerate inputs map to 0; the
// result is clamped to [0, durationMs].
func PixelToTime(px int, durationMs int64, trackWidthPx int) int64 {
	if durationMs <= 0 || trackWidthPx <= 0 {
		return 0
	}
	p := util.Clamp(px, 0, trackWidthPx)
	return durationMs * int64(p) / int64(trackWidthPx)
}
