package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/seekbar-cli/seekbar/key"
	"github.com/seekbar-cli/seekbar/timebar"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func barState(width int) timebar.BarState {
	s := timebar.BarState{
		Geometry:      timebar.Layout(0, 0, width, 0),
		DurationMs:    10000,
		PositionMs:    3000,
		PlayedPx:      3,
		BufferedPx:    5,
		MarkerWidthPx: 1,
	}
	s.Geometry.HandleX = 3
	return s
}

func TestRenderBar(t *testing.T) {
	viper.Set(key.IconsVariant, "plain")

	Convey("renderBar", t, func() {
		Convey("Paints exactly one cell per track column", func() {
			out := renderBar(barState(10))
			So(lipgloss.Width(out), ShouldEqual, 10)
		})

		Convey("Draws the handle at the played edge", func() {
			out := renderBar(barState(10))
			So(out, ShouldContainSubstring, "O")
		})

		Convey("Overlays markers on the fill", func() {
			s := barState(10)
			s.Markers = timebar.MarkerSet{Times: []int64{7000, 1000}, Played: []bool{false, true}}
			s.MarkerPx = []int{7, 1}

			out := renderBar(s)
			So(out, ShouldContainSubstring, "!")
			So(out, ShouldContainSubstring, ".")
			So(lipgloss.Width(out), ShouldEqual, 10)
		})

		Convey("Clamps markers past the track end onto the last column", func() {
			s := barState(10)
			s.Markers = timebar.MarkerSet{Times: []int64{10000}, Played: []bool{false}}
			s.MarkerPx = []int{10}

			out := renderBar(s)
			So(lipgloss.Width(out), ShouldEqual, 10)
			So(out, ShouldContainSubstring, "!")
		})

		Convey("Skips the handle when the duration is unknown", func() {
			s := barState(10)
			s.DurationMs = 0
			s.PlayedPx = 0

			out := renderBar(s)
			So(out, ShouldNotContainSubstring, "O")
		})

		Convey("An empty track renders nothing", func() {
			So(renderBar(barState(0)), ShouldBeEmpty)
		})
	})
}
