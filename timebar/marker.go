package timebar

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/seekbar-cli/seekbar/timeline"
)

// ErrMarkerMismatch is returned when marker times and played flags disagree in length.
var ErrMarkerMismatch = errors.New("marker times and played flags have mismatched lengths")

// MarkerSet is a flat list of ad-break markers as parallel time/played slices.
// Invariant: len(Times) == len(Played).
type MarkerSet struct {
	Times  []int64
	Played []bool
}

// NewMarkerSet pairs times with played flags, rejecting mismatched lengths.
func NewMarkerSet(times []int64, played []bool) (MarkerSet, error) {
	m := MarkerSet{Times: times, Played: played}
	if err := m.Validate(); err != nil {
		return MarkerSet{}, err
	}
	return m, nil
}

// Len returns the number of markers in the set.
func (m MarkerSet) Len() int {
	return len(m.Times)
}

// Validate checks the parallel-slice invariant.
func (m MarkerSet) Validate() error {
	if len(m.Times) != len(m.Played) {
		return fmt.Errorf("%w: %d times, %d flags", ErrMarkerMismatch, len(m.Times), len(m.Played))
	}
	return nil
}

func (m *MarkerSet) add(timeMs int64, played bool) {
	m.Times = append(m.Times, timeMs)
	m.Played = append(m.Played, played)
}

// AggregateMarkers walks the timeline windows within r and produces a flat,
// time-ordered marker set positioned relative to the start of the display
// range. Extra host-supplied markers are appended afterwards in caller order,
// never re-sorted; natural markers coinciding exactly in time with an extra
// marker are dropped in favor of the extra one.
//
// Calling this in multi-window mode against a timeline containing a window of
// unknown duration is a programming error in the host: the facade guarantees
// multi-window mode is never enabled for such a timeline.
func AggregateMarkers(tl timeline.Timeline, r timeline.Range, extra MarkerSet) (MarkerSet, error) {
	if err := extra.Validate(); err != nil {
		return MarkerSet{}, err
	}

	var out MarkerSet
	if tl.Empty() {
		return MergeMarkers(out, extra)
	}

	r = r.Clamped(tl)
	if r.Multi() && r.Duration(tl).IsAbsent() {
		panic("timebar: marker aggregation in multi-window mode over a window of unknown duration")
	}

	var rangeOffset int64
	for wi := r.First; wi <= r.Last; wi++ {
		w := tl.Windows[wi]
		windowDur, windowDurKnown := w.Duration.Get()

		for _, p := range w.Periods {
			for _, brk := range p.AdBreaks {
				offset := brk.Offset
				if offset == timeline.EndOfSource {
					// The end-of-source sentinel resolves to the period's own
					// duration; with an unknown duration the marker has no
					// placeable time and is dropped.
					pd, ok := p.Duration.Get()
					if !ok {
						continue
					}
					offset = pd
				}

				windowLocal := offset + p.PositionInWindow
				if windowLocal < 0 {
					continue
				}
				// Boundary markers at 0 and windowDur are both kept.
				if windowDurKnown && windowLocal > windowDur {
					continue
				}

				out.add(rangeOffset+windowLocal, brk.Played)
			}
		}

		rangeOffset += w.Duration.OrElse(0)
	}

	return MergeMarkers(out, extra)
}

// MergeMarkers appends extra host-supplied markers after the natural ones,
// preserving the caller-provided extra order. Natural markers coinciding
// exactly in time with an extra marker are dropped in favor of the extra one.
func MergeMarkers(natural, extra MarkerSet) (MarkerSet, error) {
	if err := natural.Validate(); err != nil {
		return MarkerSet{}, err
	}
	if err := extra.Validate(); err != nil {
		return MarkerSet{}, err
	}

	if extra.Len() == 0 {
		return natural, nil
	}

	extraTimes := lo.SliceToMap(extra.Times, func(t int64) (int64, struct{}) {
		return t, struct{}{}
	})

	var merged MarkerSet
	for i, t := range natural.Times {
		if _, clash := extraTimes[t]; clash {
			continue
		}
		merged.add(t, natural.Played[i])
	}

	merged.Times = append(merged.Times, extra.Times...)
	merged.Played = append(merged.Played, extra.Played...)
	return merged, nil
}
