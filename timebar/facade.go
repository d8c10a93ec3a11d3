package timebar

import (
	"fmt"

	"github.com/samber/mo"
	"github.com/seekbar-cli/seekbar/key"
	"github.com/seekbar-cli/seekbar/log"
	"github.com/seekbar-cli/seekbar/timeline"
	"github.com/seekbar-cli/seekbar/util"
	"github.com/spf13/viper"
)

// SeekDispatcher receives committed scrub positions. DispatchSeek may reject a
// seek by returning false, in which case the control snaps the display back to
// the authoritative external position.
type SeekDispatcher interface {
	DispatchSeek(windowIndex int, positionMs int64) bool
}

// ControlConfig tunes the control facade.
type ControlConfig struct {
	// MultiWindowCap bounds the window count for which multi-window mode may
	// be enabled.
	MultiWindowCap int

	// MarkerWidthPx is the rendered width of one ad marker.
	MarkerWidthPx int

	// HitPadding widens the pointer hit area around the track.
	HitPadding int

	// UnitPeriodMs is the granularity of the displayed position.
	UnitPeriodMs int64

	Scrub ScrubConfig
}

// DefaultControlConfig assembles a ControlConfig from the global configuration.
func DefaultControlConfig() ControlConfig {
	return ControlConfig{
		MultiWindowCap: viper.GetInt(key.BarMultiWindowCap),
		MarkerWidthPx:  viper.GetInt(key.BarMarkerWidth),
		HitPadding:     viper.GetInt(key.BarHitPadding),
		UnitPeriodMs:   viper.GetInt64(key.ProgressUnitPeriod),
		Scrub:          DefaultScrubConfig(),
	}
}

func (c ControlConfig) validate() error {
	if c.MultiWindowCap < 1 {
		return fmt.Errorf("multi-window cap must be positive, got %d", c.MultiWindowCap)
	}
	if c.MarkerWidthPx < 1 {
		return fmt.Errorf("marker width must be positive, got %d", c.MarkerWidthPx)
	}
	if c.HitPadding < 0 {
		return fmt.Errorf("hit padding must not be negative, got %d", c.HitPadding)
	}
	return nil
}

// BarState is the render-ready snapshot of the control: pixel geometry plus the
// marker columns for the current layout. Read-only to renderers.
type BarState struct {
	Geometry BarGeometry

	// DurationMs is 0 when the duration is unknown.
	DurationMs int64

	// PositionMs is the displayed position: the scrub preview while a session
	// is open, the external playback position otherwise.
	PositionMs int64
	BufferedMs int64

	Scrubbing bool

	PlayedPx   int
	BufferedPx int

	Markers       MarkerSet
	MarkerPx      []int
	MarkerWidthPx int

	Repeat, Shuffle bool
}

// Control is the thin facade a host view binds to. It orchestrates marker
// aggregation, geometry, the scrub controller, and progress refresh
// scheduling. All methods are UI-loop confined.
type Control struct {
	cfg        ControlConfig
	dispatcher SeekDispatcher

	tl            timeline.Timeline
	rng           timeline.Range
	currentWindow int
	multiWindow   bool

	position mo.Option[int64]
	buffered int64
	duration mo.Option[int64]

	naturalOverride MarkerSet
	extra           MarkerSet
	markers         MarkerSet

	geometry BarGeometry
	onGeom   []func(BarGeometry)

	scrub   *ScrubController
	refresh Timer

	repeat, shuffle bool
}

// NewControl builds a control facade. dispatcher may be nil for renderer-only
// hosts; committed scrubs are then accepted without dispatch.
func NewControl(cfg ControlConfig, dispatcher SeekDispatcher) (*Control, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("control config: %w", err)
	}

	scrub, err := NewScrubController(cfg.Scrub)
	if err != nil {
		return nil, err
	}

	c := &Control{
		cfg:        cfg,
		dispatcher: dispatcher,
		scrub:      scrub,
		position:   mo.Some[int64](0),
		duration:   mo.None[int64](),
	}
	scrub.AddListener(&facadeScrubListener{control: c})
	return c, nil
}

// Scrub exposes the scrub controller for input wiring.
func (c *Control) Scrub() *ScrubController {
	return c.scrub
}

// AddScrubListener registers a host listener for scrub session events. The
// facade's own seek-dispatch handling always runs first.
func (c *Control) AddScrubListener(l ScrubListener) {
	c.scrub.AddListener(l)
}

// OnGeometryChanged registers a renderer callback invoked after every geometry
// or data change.
func (c *Control) OnGeometryChanged(fn func(BarGeometry)) {
	c.onGeom = append(c.onGeom, fn)
}

// SetLayout places the bar on the rendering surface and recomputes geometry.
func (c *Control) SetLayout(x, y, width int) {
	c.geometry = Layout(x, y, width, c.cfg.HitPadding)
	c.scrub.SetGeometry(c.geometry)
	c.refreshGeometry()
}

// SetPosition pushes the authoritative external playback position.
func (c *Control) SetPosition(ms int64) {
	c.position = mo.Some(ms)
	c.scrub.SetDisplayPosition(ms)
	c.refreshGeometry()
}

// SetBufferedPosition pushes the external buffered position.
func (c *Control) SetBufferedPosition(ms int64) {
	c.buffered = ms
	c.refreshGeometry()
}

// SetDuration pushes the media duration; None marks it unknown, which cancels
// any scrub session in flight.
func (c *Control) SetDuration(d mo.Option[int64]) {
	c.duration = d
	c.scrub.SetDuration(c.effectiveDuration())
	c.refreshGeometry()
}

// SetFlags records the host's repeat/shuffle state for button rendering.
func (c *Control) SetFlags(repeat, shuffle bool) {
	c.repeat = repeat
	c.shuffle = shuffle
}

// SetMarkers overrides the timeline-derived natural markers and replaces the
// host-supplied extra markers. Mismatched parallel slices are rejected.
func (c *Control) SetMarkers(natural, extra MarkerSet) error {
	if err := natural.Validate(); err != nil {
		return err
	}
	if err := extra.Validate(); err != nil {
		return err
	}

	c.naturalOverride = natural
	c.extra = extra
	return c.recomputeMarkers()
}

// SetMultiWindowMode requests showing the whole timeline on the bar. The
// request silently falls back to single-window mode when any window has
// unknown duration or the window count exceeds the cap.
func (c *Control) SetMultiWindowMode(enabled bool) {
	c.multiWindow = enabled
	c.applyWindowRange()
	// Aggregation over the new range cannot fail: the range was just validated.
	_ = c.recomputeMarkers()
}

// MultiWindowActive reports whether the bar currently spans the whole
// timeline, after any silent fallback. Hosts pushing positions must translate
// window-local times to range-relative ones while this is true.
func (c *Control) MultiWindowActive() bool {
	return c.multiWindow
}

// SetCurrentWindow updates which window the external clock is playing.
func (c *Control) SetCurrentWindow(index int) {
	c.currentWindow = index
	c.applyWindowRange()
	_ = c.recomputeMarkers()
}

// OnTimelineChanged replaces the timeline description, revalidates multi-window
// mode, and recomputes markers and geometry.
func (c *Control) OnTimelineChanged(tl timeline.Timeline) error {
	if err := tl.Validate(); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}

	c.tl = tl
	if c.currentWindow >= tl.WindowCount() {
		c.currentWindow = util.Max(tl.WindowCount()-1, 0)
	}
	c.applyWindowRange()
	return c.recomputeMarkers()
}

// ScheduleRefresh arranges refresh to run when the displayed position is next
// expected to change, replacing any pending refresh. When playback is not
// advancing the pending refresh is cancelled instead.
func (c *Control) ScheduleRefresh(advancing bool, rate float64, refresh func()) {
	delay, ok := ProgressDelay(advancing, rate, c.displayPosition(), c.cfg.UnitPeriodMs)
	if !ok {
		c.refresh.Stop()
		return
	}
	c.refresh.Schedule(delay, refresh)
}

// Detach cancels all pending timers and any open scrub session. Call when the
// control leaves its display surface.
func (c *Control) Detach() {
	c.refresh.Stop()
	c.scrub.Detach()
}

// State returns the render-ready snapshot for the current layout.
func (c *Control) State() BarState {
	var (
		dur   = c.effectiveDuration().OrElse(0)
		pos   = c.displayPosition()
		width = c.geometry.TrackWidth()
	)

	s := BarState{
		Geometry:      c.geometry,
		DurationMs:    dur,
		PositionMs:    pos,
		BufferedMs:    c.buffered,
		Scrubbing:     c.scrub.Scrubbing(),
		PlayedPx:      TimeToPixel(pos, dur, width),
		BufferedPx:    TimeToPixel(c.buffered, dur, width),
		Markers:       c.markers,
		MarkerWidthPx: c.cfg.MarkerWidthPx,
		Repeat:        c.repeat,
		Shuffle:       c.shuffle,
	}
	s.Geometry.HandleX = c.geometry.TrackBounds.X + s.PlayedPx

	for _, t := range c.markers.Times {
		s.MarkerPx = append(s.MarkerPx, TimeToPixel(t, dur, width))
	}
	return s
}

// displayPosition is the scrub preview while a session is open, the external
// position otherwise.
func (c *Control) displayPosition() int64 {
	if c.scrub.Scrubbing() {
		return c.scrub.Position()
	}
	return c.position.OrElse(0)
}

// effectiveDuration is the summed range duration in multi-window mode and the
// host-pushed duration otherwise.
func (c *Control) effectiveDuration() mo.Option[int64] {
	if c.multiWindow && !c.tl.Empty() {
		return c.rng.Duration(c.tl)
	}
	return c.duration
}

func (c *Control) applyWindowRange() {
	if c.multiWindow && !c.tl.CanShowMultiWindow(c.cfg.MultiWindowCap) {
		if !c.tl.Empty() {
			log.Debugf("multi-window mode unavailable for %s, falling back to single window",
				util.Quantify(c.tl.WindowCount(), "window", "windows"))
		}
		c.multiWindow = false
	}

	if c.multiWindow {
		c.rng = timeline.FullRange(c.tl)
	} else {
		c.rng = timeline.SingleWindow(c.currentWindow).Clamped(c.tl)
	}
	c.scrub.SetDuration(c.effectiveDuration())
}

func (c *Control) recomputeMarkers() error {
	natural := c.naturalOverride
	if natural.Len() == 0 {
		aggregated, err := AggregateMarkers(c.tl, c.rng, MarkerSet{})
		if err != nil {
			return err
		}
		natural = aggregated
	}

	merged, err := MergeMarkers(natural, c.extra)
	if err != nil {
		return err
	}

	c.markers = merged
	c.refreshGeometry()
	return nil
}

func (c *Control) refreshGeometry() {
	if c.geometry.Zero() {
		return
	}

	state := c.State()
	c.geometry.HandleX = state.Geometry.HandleX
	for _, fn := range c.onGeom {
		fn(c.geometry)
	}
}

// resolveSeek maps a range-local committed scrub position to a window index and
// window-local position for dispatch.
func (c *Control) resolveSeek(positionMs int64) (windowIndex int, windowPos int64) {
	if !c.multiWindow || c.tl.Empty() {
		return c.currentWindow, positionMs
	}

	remaining := positionMs
	for wi := c.rng.First; wi <= c.rng.Last; wi++ {
		d := c.tl.Windows[wi].Duration.OrElse(0)
		if remaining <= d || wi == c.rng.Last {
			return wi, util.Clamp(remaining, 0, d)
		}
		remaining -= d
	}
	return c.rng.Last, remaining
}

// facadeScrubListener is the control's own scrub subscription: it dispatches
// committed seeks and snaps the display back when the host rejects one.
type facadeScrubListener struct {
	control *Control
}

func (l *facadeScrubListener) OnScrubStart(int64) {}

func (l *facadeScrubListener) OnScrubMove(int64) {
	l.control.refreshGeometry()
}

func (l *facadeScrubListener) OnScrubStop(positionMs int64, canceled bool) {
	c := l.control

	if !canceled && c.dispatcher != nil {
		wi, wpos := c.resolveSeek(positionMs)
		if !c.dispatcher.DispatchSeek(wi, wpos) {
			log.Infof("seek to window %d at %dms rejected, snapping back to %dms",
				wi, wpos, c.position.OrElse(0))
		}
	}

	// The session is closed either way; re-render from the authoritative
	// external position so any unaccepted drift snaps back.
	c.refreshGeometry()
}
