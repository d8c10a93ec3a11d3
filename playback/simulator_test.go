package playback

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/seekbar-cli/seekbar/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func seekableWindows(durations ...int64) timeline.Timeline {
	var tl timeline.Timeline
	for _, d := range durations {
		tl.Windows = append(tl.Windows, timeline.Window{
			Duration: mo.Some(d),
			Seekable: true,
		})
	}
	return tl
}

func newTestSimulator(tl timeline.Timeline) (*Simulator, *fakeClock) {
	s, err := NewSimulator(tl)
	So(err, ShouldBeNil)

	clock := &fakeClock{t: time.Unix(1000, 0)}
	s.SetClock(clock.now)
	return s, clock
}

func TestState(t *testing.T) {
	Convey("State", t, func() {
		Convey("Only playing advances the display", func() {
			So(Playing.Advancing(), ShouldBeTrue)
			for _, s := range []State{Idle, Buffering, Paused, Ended} {
				So(s.Advancing(), ShouldBeFalse)
			}
		})

		Convey("States render their names", func() {
			So(Playing.String(), ShouldEqual, "playing")
			So(State(42).String(), ShouldEqual, "unknown")
		})
	})
}

func TestSimulator(t *testing.T) {
	Convey("Simulator", t, func() {
		Convey("Rejects an empty or inconsistent timeline", func() {
			_, err := NewSimulator(timeline.Timeline{})
			So(err, ShouldNotBeNil)

			bad := timeline.Timeline{Windows: []timeline.Window{{
				Duration: mo.Some[int64](5000),
				Periods:  []timeline.Period{{Duration: mo.Some[int64](3000)}},
			}}}
			_, err = NewSimulator(bad)
			So(err, ShouldNotBeNil)
		})

		Convey("Starts paused at the beginning", func() {
			s, _ := newTestSimulator(seekableWindows(60_000))
			st := s.Snapshot()
			So(st.State, ShouldEqual, Paused)
			So(st.PositionMs, ShouldEqual, 0)
			So(st.Rate, ShouldEqual, 1.0)
			So(st.Duration.MustGet(), ShouldEqual, 60_000)
		})

		Convey("Advances with wall time while playing", func() {
			s, clock := newTestSimulator(seekableWindows(60_000))
			s.TogglePause()

			clock.advance(5 * time.Second)
			So(s.Snapshot().PositionMs, ShouldEqual, 5000)

			Convey("And freezes while paused", func() {
				s.TogglePause()
				clock.advance(5 * time.Second)
				So(s.Snapshot().PositionMs, ShouldEqual, 5000)
			})
		})

		Convey("Scales elapsed time by the playback rate", func() {
			s, clock := newTestSimulator(seekableWindows(60_000))
			s.TogglePause()

			clock.advance(2 * time.Second)
			s.SetRate(2)
			clock.advance(3 * time.Second)

			So(s.Snapshot().PositionMs, ShouldEqual, 8000)
		})

		Convey("Ignores non-positive rates", func() {
			s, _ := newTestSimulator(seekableWindows(60_000))
			s.SetRate(0)
			s.SetRate(-1)
			So(s.Snapshot().Rate, ShouldEqual, 1.0)
		})

		Convey("Buffers ahead of the playhead up to the window end", func() {
			s, clock := newTestSimulator(seekableWindows(60_000))
			s.TogglePause()

			clock.advance(10 * time.Second)
			So(s.Snapshot().BufferedMs, ShouldEqual, 25_000)

			clock.advance(40 * time.Second)
			So(s.Snapshot().BufferedMs, ShouldEqual, 60_000)
		})

		Convey("Crosses into the next window when one runs out", func() {
			s, clock := newTestSimulator(seekableWindows(10_000, 20_000))
			s.TogglePause()

			clock.advance(12 * time.Second)
			st := s.Snapshot()
			So(st.WindowIndex, ShouldEqual, 1)
			So(st.PositionMs, ShouldEqual, 2000)
			So(st.State, ShouldEqual, Playing)
		})

		Convey("Ends at the last window boundary", func() {
			s, clock := newTestSimulator(seekableWindows(10_000))
			s.TogglePause()

			clock.advance(15 * time.Second)
			st := s.Snapshot()
			So(st.State, ShouldEqual, Ended)
			So(st.PositionMs, ShouldEqual, 10_000)

			Convey("And restarts from the top on toggle", func() {
				s.TogglePause()
				st := s.Snapshot()
				So(st.State, ShouldEqual, Playing)
				So(st.WindowIndex, ShouldEqual, 0)
				So(st.PositionMs, ShouldEqual, 0)
			})
		})

		Convey("Wraps around instead of ending when repeat is on", func() {
			s, clock := newTestSimulator(seekableWindows(10_000))
			s.SetFlags(true, false)
			s.TogglePause()

			clock.advance(13 * time.Second)
			st := s.Snapshot()
			So(st.State, ShouldEqual, Playing)
			So(st.PositionMs, ShouldEqual, 3000)
		})

		Convey("Live windows advance without bound", func() {
			s, clock := newTestSimulator(timeline.Timeline{Windows: []timeline.Window{{
				Dynamic: true,
			}}})
			s.TogglePause()

			clock.advance(time.Hour)
			st := s.Snapshot()
			So(st.State, ShouldEqual, Playing)
			So(st.PositionMs, ShouldEqual, int64(3_600_000))
			So(st.Duration.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestSimulatorSeek(t *testing.T) {
	Convey("Simulator seeks", t, func() {
		s, clock := newTestSimulator(seekableWindows(10_000, 20_000))

		Convey("Moves the playhead within a window", func() {
			So(s.SeekTo(0, 7000), ShouldBeTrue)
			So(s.Snapshot().PositionMs, ShouldEqual, 7000)
		})

		Convey("Jumps across windows", func() {
			So(s.SeekTo(1, 5000), ShouldBeTrue)
			st := s.Snapshot()
			So(st.WindowIndex, ShouldEqual, 1)
			So(st.PositionMs, ShouldEqual, 5000)
		})

		Convey("Rejects out-of-range targets", func() {
			So(s.SeekTo(-1, 0), ShouldBeFalse)
			So(s.SeekTo(2, 0), ShouldBeFalse)
			So(s.SeekTo(0, -1), ShouldBeFalse)
			So(s.SeekTo(0, 10_001), ShouldBeFalse)
		})

		Convey("Rejects seeks into unseekable windows", func() {
			live, _ := newTestSimulator(timeline.Timeline{Windows: []timeline.Window{{
				Dynamic: true,
			}}})
			So(live.SeekTo(0, 1000), ShouldBeFalse)
		})

		Convey("Seeking an ended player revives it paused", func() {
			s.TogglePause()
			clock.advance(time.Minute)
			So(s.Snapshot().State, ShouldEqual, Ended)

			So(s.SeekTo(0, 2000), ShouldBeTrue)
			st := s.Snapshot()
			So(st.State, ShouldEqual, Paused)
			So(st.PositionMs, ShouldEqual, 2000)
		})
	})
}
