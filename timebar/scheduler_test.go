package timebar

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestProgressDelay(t *testing.T) {
	Convey("ProgressDelay", t, func() {
		Convey("Schedules nothing while playback is not advancing", func() {
			_, ok := ProgressDelay(false, 1, 500, 1000)
			So(ok, ShouldBeFalse)
		})

		Convey("Near-stopped rates fall back to a slow fixed cadence", func() {
			for _, rate := range []float64{0, 0.05, 0.1} {
				delay, ok := ProgressDelay(true, rate, 500, 1000)
				So(ok, ShouldBeTrue)
				So(delay, ShouldEqual, time.Second)
			}
		})

		Convey("Fast-forward rates cap the redraw frequency", func() {
			for _, rate := range []float64{5.1, 16, 64} {
				delay, ok := ProgressDelay(true, rate, 500, 1000)
				So(ok, ShouldBeTrue)
				So(delay, ShouldEqual, 200*time.Millisecond)
			}
		})

		Convey("Normal playback waits until the next unit boundary", func() {
			delay, ok := ProgressDelay(true, 1, 300, 1000)
			So(ok, ShouldBeTrue)
			So(delay, ShouldEqual, 700*time.Millisecond)
		})

		Convey("A remainder just shy of the boundary gains a full extra period", func() {
			delay, ok := ProgressDelay(true, 1, 900, 1000)
			So(ok, ShouldBeTrue)
			So(delay, ShouldEqual, 1100*time.Millisecond)
		})

		Convey("Landing exactly on a boundary waits one full period", func() {
			delay, ok := ProgressDelay(true, 1, 2000, 1000)
			So(ok, ShouldBeTrue)
			So(delay, ShouldEqual, time.Second)
		})

		Convey("Intermediate rates divide the media delay by the rate", func() {
			delay, ok := ProgressDelay(true, 2, 300, 1000)
			So(ok, ShouldBeTrue)
			So(delay, ShouldEqual, 350*time.Millisecond)

			delay, ok = ProgressDelay(true, 0.5, 500, 1000)
			So(ok, ShouldBeTrue)
			So(delay, ShouldEqual, time.Second)
		})

		Convey("A non-positive unit period falls back to the default", func() {
			delay, ok := ProgressDelay(true, 1, 300, 0)
			So(ok, ShouldBeTrue)
			So(delay, ShouldEqual, 700*time.Millisecond)
		})

		Convey("Negative positions are treated as zero", func() {
			delay, ok := ProgressDelay(true, 1, -42, 1000)
			So(ok, ShouldBeTrue)
			So(delay, ShouldEqual, time.Second)
		})
	})
}

func TestTimer(t *testing.T) {
	Convey("Timer", t, func() {
		Convey("Schedule replaces the pending callback", func() {
			var tm Timer
			fired := make(chan int, 2)

			tm.Schedule(time.Hour, func() { fired <- 1 })
			tm.Schedule(10*time.Millisecond, func() { fired <- 2 })

			select {
			case got := <-fired:
				So(got, ShouldEqual, 2)
			case <-time.After(time.Second):
				So("timer never fired", ShouldBeEmpty)
			}
		})

		Convey("Stop cancels the pending callback", func() {
			var tm Timer
			fired := make(chan struct{}, 1)

			tm.Schedule(20*time.Millisecond, func() { fired <- struct{}{} })
			tm.Stop()

			select {
			case <-fired:
				So("timer fired after stop", ShouldBeEmpty)
			case <-time.After(100 * time.Millisecond):
			}
		})

		Convey("Stop without a pending callback is a no-op", func() {
			var tm Timer
			So(tm.Stop, ShouldNotPanic)
		})
	})
}
