package timebar

import (
	"testing"

	"github.com/samber/mo"
	"github.com/seekbar-cli/seekbar/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDispatcher records dispatched seeks and answers with a fixed verdict.
type stubDispatcher struct {
	accept  bool
	windows []int
	seeks   []int64
}

func (d *stubDispatcher) DispatchSeek(windowIndex int, positionMs int64) bool {
	d.windows = append(d.windows, windowIndex)
	d.seeks = append(d.seeks, positionMs)
	return d.accept
}

func testControlConfig() ControlConfig {
	return ControlConfig{
		MultiWindowCap: 100,
		MarkerWidthPx:  1,
		HitPadding:     1,
		UnitPeriodMs:   1000,
		Scrub:          testConfig(),
	}
}

func newTestControl(dispatcher SeekDispatcher) *Control {
	c, err := NewControl(testControlConfig(), dispatcher)
	So(err, ShouldBeNil)

	c.SetLayout(0, 5, 100)
	c.SetDuration(mo.Some[int64](10000))
	c.SetPosition(2000)
	return c
}

func knownWindows(durations ...int64) timeline.Timeline {
	var tl timeline.Timeline
	for _, d := range durations {
		tl.Windows = append(tl.Windows, timeline.Window{
			Duration: mo.Some(d),
			Seekable: true,
		})
	}
	return tl
}

func TestControlConfigValidation(t *testing.T) {
	Convey("ControlConfig validation", t, func() {
		Convey("Rejects a non-positive multi-window cap", func() {
			cfg := testControlConfig()
			cfg.MultiWindowCap = 0
			_, err := NewControl(cfg, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects a bad scrub section", func() {
			cfg := testControlConfig()
			cfg.Scrub.StepCount = 0
			_, err := NewControl(cfg, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestControlState(t *testing.T) {
	Convey("Control state", t, func() {
		c := newTestControl(nil)

		Convey("Reflects the external clock while idle", func() {
			s := c.State()
			So(s.PositionMs, ShouldEqual, 2000)
			So(s.DurationMs, ShouldEqual, 10000)
			So(s.Scrubbing, ShouldBeFalse)
			So(s.PlayedPx, ShouldEqual, 20)
			So(s.Geometry.HandleX, ShouldEqual, 20)
		})

		Convey("Tracks the buffered position", func() {
			c.SetBufferedPosition(5000)
			s := c.State()
			So(s.BufferedMs, ShouldEqual, 5000)
			So(s.BufferedPx, ShouldEqual, 50)
		})

		Convey("Shows the scrub preview while a session is open", func() {
			c.Scrub().PointerDown(70, 5)
			s := c.State()
			So(s.Scrubbing, ShouldBeTrue)
			So(s.PositionMs, ShouldEqual, 7000)
			So(s.Geometry.HandleX, ShouldEqual, 70)
			c.Scrub().PointerCancel()
		})

		Convey("An unknown duration renders as zero progress", func() {
			c.SetDuration(mo.None[int64]())
			s := c.State()
			So(s.DurationMs, ShouldEqual, 0)
			So(s.PlayedPx, ShouldEqual, 0)
		})

		Convey("Projects markers to track columns", func() {
			So(c.OnTimelineChanged(timeline.Timeline{Windows: []timeline.Window{{
				Duration: mo.Some[int64](10000),
				Seekable: true,
				Periods: []timeline.Period{{
					Duration: mo.Some[int64](10000),
					AdBreaks: []timeline.AdBreak{{Offset: 2500}, {Offset: 7500, Played: true}},
				}},
			}}}), ShouldBeNil)

			s := c.State()
			So(s.Markers.Times, ShouldResemble, []int64{2500, 7500})
			So(s.MarkerPx, ShouldResemble, []int{25, 75})
			So(s.MarkerWidthPx, ShouldEqual, 1)
		})

		Convey("Carries the repeat and shuffle flags", func() {
			c.SetFlags(true, false)
			s := c.State()
			So(s.Repeat, ShouldBeTrue)
			So(s.Shuffle, ShouldBeFalse)
		})
	})
}

func TestControlSeekDispatch(t *testing.T) {
	Convey("Seek dispatch", t, func() {
		Convey("A committed scrub dispatches once to the current window", func() {
			d := &stubDispatcher{accept: true}
			c := newTestControl(d)

			c.Scrub().PointerDown(70, 5)
			c.Scrub().PointerUp(70, 5)

			So(d.windows, ShouldResemble, []int{0})
			So(d.seeks, ShouldResemble, []int64{7000})
		})

		Convey("A canceled scrub dispatches nothing and snaps back", func() {
			d := &stubDispatcher{accept: true}
			c := newTestControl(d)

			c.Scrub().PointerDown(70, 5)
			c.Scrub().PointerCancel()

			So(d.seeks, ShouldBeEmpty)
			So(c.State().PositionMs, ShouldEqual, 2000)
		})

		Convey("A rejected seek snaps the display back to the external position", func() {
			d := &stubDispatcher{accept: false}
			c := newTestControl(d)

			var geoms []BarGeometry
			c.OnGeometryChanged(func(g BarGeometry) { geoms = append(geoms, g) })

			c.Scrub().PointerDown(70, 5)
			c.Scrub().PointerUp(70, 5)

			So(d.seeks, ShouldResemble, []int64{7000})
			So(c.State().PositionMs, ShouldEqual, 2000)
			So(geoms, ShouldNotBeEmpty)
			So(geoms[len(geoms)-1].HandleX, ShouldEqual, 20)
		})

		Convey("A nil dispatcher accepts commits silently", func() {
			c := newTestControl(nil)
			c.Scrub().PointerDown(70, 5)
			So(func() { c.Scrub().PointerUp(70, 5) }, ShouldNotPanic)
		})
	})
}

func TestControlMultiWindow(t *testing.T) {
	Convey("Multi-window mode", t, func() {
		Convey("Spans the whole timeline when every duration is known", func() {
			c := newTestControl(nil)
			So(c.OnTimelineChanged(knownWindows(4000, 6000)), ShouldBeNil)

			c.SetMultiWindowMode(true)
			So(c.State().DurationMs, ShouldEqual, 10000)
		})

		Convey("Falls back silently above the window cap", func() {
			c := newTestControl(nil)
			var durations []int64
			for i := 0; i < 101; i++ {
				durations = append(durations, 1000)
			}
			So(c.OnTimelineChanged(knownWindows(durations...)), ShouldBeNil)

			c.SetMultiWindowMode(true)
			// Host duration, not the 101s sum.
			So(c.State().DurationMs, ShouldEqual, 10000)
		})

		Convey("Falls back silently when any window duration is unknown", func() {
			c := newTestControl(nil)
			tl := knownWindows(4000)
			tl.Windows = append(tl.Windows, timeline.Window{Dynamic: true})
			So(c.OnTimelineChanged(tl), ShouldBeNil)

			c.SetMultiWindowMode(true)
			So(c.State().DurationMs, ShouldEqual, 10000)
		})

		Convey("Resolves committed seeks to window-local positions", func() {
			d := &stubDispatcher{accept: true}
			c := newTestControl(d)
			So(c.OnTimelineChanged(knownWindows(4000, 6000)), ShouldBeNil)
			c.SetMultiWindowMode(true)

			// 70 of 100 px over a 10000ms range lands 3000ms into window 1.
			c.Scrub().PointerDown(70, 5)
			c.Scrub().PointerUp(70, 5)

			So(d.windows, ShouldResemble, []int{1})
			So(d.seeks, ShouldResemble, []int64{3000})
		})

		Convey("Offsets markers of later windows by the preceding durations", func() {
			c := newTestControl(nil)
			tl := timeline.Timeline{Windows: []timeline.Window{
				{
					Duration: mo.Some[int64](4000),
					Periods: []timeline.Period{{
						Duration: mo.Some[int64](4000),
						AdBreaks: []timeline.AdBreak{{Offset: 1000}},
					}},
				},
				{
					Duration: mo.Some[int64](6000),
					Periods: []timeline.Period{{
						Duration: mo.Some[int64](6000),
						AdBreaks: []timeline.AdBreak{{Offset: 2000}},
					}},
				},
			}}
			So(c.OnTimelineChanged(tl), ShouldBeNil)

			c.SetMultiWindowMode(true)
			So(c.State().Markers.Times, ShouldResemble, []int64{1000, 6000})

			Convey("Switching back narrows to the current window", func() {
				c.SetMultiWindowMode(false)
				So(c.State().Markers.Times, ShouldResemble, []int64{1000})

				c.SetCurrentWindow(1)
				So(c.State().Markers.Times, ShouldResemble, []int64{2000})
			})
		})
	})
}

func TestControlMarkers(t *testing.T) {
	Convey("Control markers", t, func() {
		c := newTestControl(nil)

		Convey("Host extras are appended after natural markers", func() {
			So(c.OnTimelineChanged(timeline.Timeline{Windows: []timeline.Window{{
				Duration: mo.Some[int64](10000),
				Periods: []timeline.Period{{
					Duration: mo.Some[int64](10000),
					AdBreaks: []timeline.AdBreak{{Offset: 3000}},
				}},
			}}}), ShouldBeNil)

			So(c.SetMarkers(MarkerSet{}, MarkerSet{
				Times:  []int64{8000},
				Played: []bool{true},
			}), ShouldBeNil)

			s := c.State()
			So(s.Markers.Times, ShouldResemble, []int64{3000, 8000})
			So(s.Markers.Played, ShouldResemble, []bool{false, true})
		})

		Convey("A natural override replaces timeline aggregation", func() {
			So(c.SetMarkers(MarkerSet{
				Times:  []int64{1111},
				Played: []bool{false},
			}, MarkerSet{}), ShouldBeNil)

			So(c.State().Markers.Times, ShouldResemble, []int64{1111})
		})

		Convey("Mismatched parallel slices are rejected", func() {
			err := c.SetMarkers(MarkerSet{}, MarkerSet{Times: []int64{1, 2}, Played: []bool{true}})
			So(err, ShouldNotBeNil)
		})

		Convey("An inconsistent timeline is rejected", func() {
			tl := timeline.Timeline{Windows: []timeline.Window{{
				Duration: mo.Some[int64](5000),
				Periods:  []timeline.Period{{Duration: mo.Some[int64](3000)}},
			}}}
			So(c.OnTimelineChanged(tl), ShouldNotBeNil)
		})
	})
}
