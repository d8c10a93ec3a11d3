package timebar

import (
	"sync"
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// recorder captures scrub events; guarded because auto-commit fires from a
// timer goroutine under the default inline dispatch.
type recorder struct {
	mu     sync.Mutex
	starts []int64
	moves  []int64
	stops  []int64
	cancel []bool
}

func (r *recorder) OnScrubStart(pos int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, pos)
}

func (r *recorder) OnScrubMove(pos int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves = append(r.moves, pos)
}

func (r *recorder) OnScrubStop(pos int64, canceled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops = append(r.stops, pos)
	r.cancel = append(r.cancel, canceled)
}

func (r *recorder) snapshot() (starts, moves, stops []int64, cancel []bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64{}, r.starts...), append([]int64{}, r.moves...),
		append([]int64{}, r.stops...), append([]bool{}, r.cancel...)
}

func testConfig() ScrubConfig {
	return ScrubConfig{
		FineThreshold:     2,
		FineRatio:         3,
		StepCount:         20,
		AutoCommitTimeout: time.Second,
	}
}

func newTestController(cfg ScrubConfig) (*ScrubController, *recorder) {
	c, err := NewScrubController(cfg)
	So(err, ShouldBeNil)

	c.SetGeometry(Layout(0, 5, 100, 1))
	c.SetDuration(mo.Some[int64](10000))

	r := &recorder{}
	c.AddListener(r)
	return c, r
}

func TestScrubConfigValidation(t *testing.T) {
	Convey("ScrubConfig validation", t, func() {
		Convey("Rejects non-positive step counts", func() {
			cfg := testConfig()
			cfg.StepCount = 0
			_, err := NewScrubController(cfg)
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects negative increments", func() {
			cfg := testConfig()
			cfg.IncrementMs = -100
			_, err := NewScrubController(cfg)
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects a zero fine ratio", func() {
			cfg := testConfig()
			cfg.FineRatio = 0
			_, err := NewScrubController(cfg)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPointerScrub(t *testing.T) {
	Convey("Pointer scrubbing", t, func() {
		c, r := newTestController(testConfig())

		Convey("Down inside the hit area starts exactly one session", func() {
			So(c.PointerDown(30, 5), ShouldBeTrue)
			starts, _, stops, _ := r.snapshot()
			So(starts, ShouldResemble, []int64{3000})
			So(stops, ShouldBeEmpty)
			So(c.Scrubbing(), ShouldBeTrue)

			Convey("Up commits with exactly one uncanceled stop", func() {
				So(c.PointerUp(30, 5), ShouldBeTrue)
				_, _, stops, cancel := r.snapshot()
				So(stops, ShouldResemble, []int64{3000})
				So(cancel, ShouldResemble, []bool{false})
				So(c.Scrubbing(), ShouldBeFalse)

				Convey("A second up is ignored", func() {
					So(c.PointerUp(30, 5), ShouldBeFalse)
					_, _, stops, _ := r.snapshot()
					So(len(stops), ShouldEqual, 1)
				})
			})

			Convey("Cancel discards with a canceled stop", func() {
				c.PointerCancel()
				_, _, stops, cancel := r.snapshot()
				So(len(stops), ShouldEqual, 1)
				So(cancel, ShouldResemble, []bool{true})
			})
		})

		Convey("Down outside the hit area is ignored", func() {
			So(c.PointerDown(30, 1), ShouldBeFalse)
			So(c.PointerDown(30, 9), ShouldBeFalse)
			starts, _, _, _ := r.snapshot()
			So(starts, ShouldBeEmpty)
		})

		Convey("The hit area is taller than the visible track", func() {
			So(c.PointerDown(30, 4), ShouldBeTrue)
			c.PointerCancel()
			So(c.PointerDown(30, 6), ShouldBeTrue)
		})

		Convey("Moves track the pointer in coarse mode", func() {
			c.PointerDown(30, 5)
			So(c.PointerMove(60, 5), ShouldBeTrue)
			So(c.Position(), ShouldEqual, 6000)
		})

		Convey("Fine mode scales a 30px move down by the fine ratio", func() {
			c.PointerDown(30, 5)

			// Two rows above the track crosses the threshold; the switching
			// move only re-anchors the reference column.
			So(c.PointerMove(30, 2), ShouldBeTrue)
			So(c.Position(), ShouldEqual, 3000)

			So(c.PointerMove(60, 2), ShouldBeTrue)
			So(c.Position(), ShouldEqual, 4000)

			Convey("Returning to the coarse band re-anchors without a jump", func() {
				So(c.PointerMove(60, 5), ShouldBeTrue)
				So(c.Position(), ShouldEqual, 4000)

				So(c.PointerMove(70, 5), ShouldBeTrue)
				So(c.Position(), ShouldEqual, 5000)
			})
		})

		Convey("Move without a session is ignored", func() {
			So(c.PointerMove(50, 5), ShouldBeFalse)
		})
	})
}

func TestKeyScrub(t *testing.T) {
	Convey("Key scrubbing", t, func() {
		c, r := newTestController(testConfig())
		c.SetDisplayPosition(4000)

		Convey("First step opens a session at the display position", func() {
			So(c.KeyStep(1), ShouldBeTrue)
			starts, moves, _, _ := r.snapshot()
			So(starts, ShouldResemble, []int64{4000})
			// duration/stepCount = 10000/20 = 500 per step.
			So(moves, ShouldResemble, []int64{4500})
		})

		Convey("Repeated steps accumulate without a pointer session", func() {
			c.KeyStep(1)
			c.KeyStep(1)
			c.KeyStep(-1)
			So(c.Position(), ShouldEqual, 4500)
			starts, moves, _, _ := r.snapshot()
			So(len(starts), ShouldEqual, 1)
			So(len(moves), ShouldEqual, 3)
		})

		Convey("Steps clamp to the valid range", func() {
			c.SetDisplayPosition(200)
			c.KeyStep(-1)
			So(c.Position(), ShouldEqual, 0)

			c.SetDisplayPosition(9800)
			c2, _ := newTestController(testConfig())
			c2.SetDisplayPosition(9800)
			c2.KeyStep(1)
			So(c2.Position(), ShouldEqual, 10000)
		})

		Convey("A configured fixed increment overrides the step derivation", func() {
			cfg := testConfig()
			cfg.IncrementMs = 250
			c2, _ := newTestController(cfg)
			c2.SetDisplayPosition(1000)
			c2.KeyStep(1)
			So(c2.Position(), ShouldEqual, 1250)
		})

		Convey("Steps are refused when the duration is unknown and no fixed increment is set", func() {
			c.SetDuration(mo.None[int64]())
			So(c.KeyStep(1), ShouldBeFalse)
		})

		Convey("CommitScrub ends the session uncanceled", func() {
			c.KeyStep(1)
			c.CommitScrub()
			_, _, stops, cancel := r.snapshot()
			So(stops, ShouldResemble, []int64{4500})
			So(cancel, ShouldResemble, []bool{false})
		})

		Convey("Idle timeout auto-commits the session", func() {
			cfg := testConfig()
			cfg.AutoCommitTimeout = 20 * time.Millisecond
			c2, r2 := newTestController(cfg)
			c2.SetDisplayPosition(4000)

			c2.KeyStep(1)
			time.Sleep(100 * time.Millisecond)

			_, _, stops, cancel := r2.snapshot()
			So(stops, ShouldResemble, []int64{4500})
			So(cancel, ShouldResemble, []bool{false})
			So(c2.Scrubbing(), ShouldBeFalse)
		})

		Convey("Each step pushes the auto-commit deadline back", func() {
			cfg := testConfig()
			cfg.AutoCommitTimeout = 60 * time.Millisecond
			c2, r2 := newTestController(cfg)
			c2.SetDisplayPosition(0)

			for i := 0; i < 3; i++ {
				c2.KeyStep(1)
				time.Sleep(20 * time.Millisecond)
			}
			_, _, stops, _ := r2.snapshot()
			So(stops, ShouldBeEmpty)

			time.Sleep(150 * time.Millisecond)
			_, _, stops, _ = r2.snapshot()
			So(len(stops), ShouldEqual, 1)
		})
	})
}

func TestScrubSessionInterruptions(t *testing.T) {
	Convey("Session interruptions", t, func() {
		c, r := newTestController(testConfig())

		Convey("Duration becoming unknown cancels an open session", func() {
			c.PointerDown(30, 5)
			c.SetDuration(mo.None[int64]())
			_, _, stops, cancel := r.snapshot()
			So(len(stops), ShouldEqual, 1)
			So(cancel, ShouldResemble, []bool{true})
		})

		Convey("Detach cancels an open session", func() {
			c.PointerDown(30, 5)
			c.Detach()
			_, _, _, cancel := r.snapshot()
			So(cancel, ShouldResemble, []bool{true})
		})

		Convey("Pointer down takes over a key session without a second start", func() {
			c.SetDisplayPosition(4000)
			c.KeyStep(1)
			So(c.PointerDown(30, 5), ShouldBeTrue)
			starts, _, stops, _ := r.snapshot()
			So(len(starts), ShouldEqual, 1)
			So(stops, ShouldBeEmpty)

			c.PointerUp(30, 5)
			_, _, stops, _ = r.snapshot()
			So(len(stops), ShouldEqual, 1)
		})

		Convey("A relayout preserves the preview position", func() {
			c.PointerDown(50, 5)
			So(c.Position(), ShouldEqual, 5000)

			c.SetGeometry(Layout(0, 5, 200, 1))
			So(c.Position(), ShouldEqual, 5000)
			c.PointerCancel()
		})
	})
}
