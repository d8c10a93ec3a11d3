package timebar

import (
	"fmt"
	"time"

	"github.com/samber/mo"
	"github.com/seekbar-cli/seekbar/key"
	"github.com/seekbar-cli/seekbar/log"
	"github.com/seekbar-cli/seekbar/util"
	"github.com/spf13/viper"
)

// ScrubListener receives scrub session events. Ordering guarantee: start always
// precedes any move; stop fires exactly once per session, even on cancel.
type ScrubListener interface {
	// OnScrubStart signals a new session at the initial preview position.
	// Hosts should stop pushing the external playback position into the
	// position display until OnScrubStop.
	OnScrubStart(positionMs int64)

	// OnScrubMove fires on every accepted move, including key increments.
	OnScrubMove(positionMs int64)

	// OnScrubStop ends the session. canceled means the preview position must
	// be discarded rather than committed.
	OnScrubStop(positionMs int64, canceled bool)
}

// ScrubConfig tunes the gesture-to-time translation.
type ScrubConfig struct {
	// FineThreshold is how many rows above the track the pointer must move
	// before fine mode engages.
	FineThreshold int

	// FineRatio divides horizontal pointer deltas while in fine mode.
	FineRatio int

	// StepCount splits the duration into key-scrub increments.
	StepCount int

	// IncrementMs, when non-zero, is a fixed key-scrub increment overriding
	// the StepCount derivation.
	IncrementMs int64

	// AutoCommitTimeout is the key inactivity span after which an open
	// key-driven session commits on its own.
	AutoCommitTimeout time.Duration
}

// DefaultScrubConfig assembles a ScrubConfig from the global configuration.
func DefaultScrubConfig() ScrubConfig {
	return ScrubConfig{
		FineThreshold:     viper.GetInt(key.ScrubFineThreshold),
		FineRatio:         viper.GetInt(key.ScrubFineRatio),
		StepCount:         viper.GetInt(key.ScrubStepCount),
		IncrementMs:       viper.GetInt64(key.ScrubIncrement),
		AutoCommitTimeout: time.Duration(viper.GetInt(key.ScrubAutoCommitTimeout)) * time.Millisecond,
	}
}

func (c ScrubConfig) validate() error {
	if c.FineThreshold < 0 {
		return fmt.Errorf("fine threshold must not be negative, got %d", c.FineThreshold)
	}
	if c.FineRatio < 1 {
		return fmt.Errorf("fine ratio must be positive, got %d", c.FineRatio)
	}
	if c.StepCount < 1 {
		return fmt.Errorf("step count must be positive, got %d", c.StepCount)
	}
	if c.IncrementMs < 0 {
		return fmt.Errorf("increment must not be negative, got %d", c.IncrementMs)
	}
	if c.AutoCommitTimeout <= 0 {
		return fmt.Errorf("auto-commit timeout must be positive, got %s", c.AutoCommitTimeout)
	}
	return nil
}

type scrubMode int

const (
	scrubIdle scrubMode = iota
	scrubCoarse
	scrubFine
)

// ScrubController is the state machine for pointer- and key-driven scrubbing.
// All methods must be called from the host's single UI loop; the auto-commit
// timer re-enters through the dispatch hook so hosts can marshal it back onto
// that loop.
type ScrubController struct {
	cfg       ScrubConfig
	listeners []ScrubListener

	geometry BarGeometry
	duration mo.Option[int64]

	// displayPos is the externally pushed playback position, the base for a
	// fresh key-driven session.
	displayPos int64

	mode      scrubMode
	pointer   bool
	keyDriven bool
	lastX     int
	scrubPx   float64
	position  int64

	session    uint64
	autoCommit Timer
	dispatch   func(func())
}

// NewScrubController validates the configuration and returns a controller.
func NewScrubController(cfg ScrubConfig) (*ScrubController, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("scrub config: %w", err)
	}

	return &ScrubController{
		cfg:      cfg,
		duration: mo.None[int64](),
		dispatch: func(fn func()) { fn() },
	}, nil
}

// AddListener registers a listener. Listeners are notified in registration order.
func (c *ScrubController) AddListener(l ScrubListener) {
	c.listeners = append(c.listeners, l)
}

// SetDispatch installs the hook through which deferred auto-commits re-enter
// the host's loop. The default runs them inline on the timer goroutine.
func (c *ScrubController) SetDispatch(dispatch func(func())) {
	if dispatch != nil {
		c.dispatch = dispatch
	}
}

// SetGeometry updates the bar layout. An open session re-anchors its pixel
// accumulator so the preview position is preserved across relayouts.
func (c *ScrubController) SetGeometry(g BarGeometry) {
	c.geometry = g
	if c.mode != scrubIdle {
		c.scrubPx = float64(TimeToPixel(c.position, c.duration.OrElse(0), g.TrackWidth()))
	}
}

// SetDuration updates the known media duration. Duration becoming unknown
// mid-scrub forces an immediate cancel of the session.
func (c *ScrubController) SetDuration(d mo.Option[int64]) {
	c.duration = d
	if d.IsAbsent() && c.mode != scrubIdle {
		c.stop(true)
	}
}

// SetDisplayPosition records the externally pushed playback position used as
// the starting point of a key-driven session.
func (c *ScrubController) SetDisplayPosition(ms int64) {
	c.displayPos = ms
}

// Scrubbing reports whether a session is open. While true the host should
// suppress ancestor input routing so the gesture is not stolen mid-drag, and
// show the preview position instead of the external one.
func (c *ScrubController) Scrubbing() bool {
	return c.mode != scrubIdle
}

// Position returns the current preview position of the open session.
func (c *ScrubController) Position() int64 {
	return c.position
}

// PointerDown opens a pointer session when (x, y) falls inside the seek hit
// area. A pending key-driven session is taken over without a second start event.
func (c *ScrubController) PointerDown(x, y int) bool {
	if c.geometry.Zero() || !c.geometry.SeekBounds.Contains(x, y) {
		return false
	}

	c.autoCommit.Stop()
	fresh := c.mode == scrubIdle

	c.pointer = true
	c.keyDriven = false
	c.mode = scrubCoarse
	c.lastX = x
	c.scrubPx = float64(util.Clamp(x-c.geometry.TrackBounds.X, 0, c.geometry.TrackWidth()))
	c.position = PixelToTime(int(c.scrubPx), c.duration.OrElse(0), c.geometry.TrackWidth())

	if fresh {
		c.fireStart()
	} else {
		c.fireMove()
	}
	return true
}

// PointerMove advances an open pointer session. Moving the pointer at least
// FineThreshold rows above the track switches to fine mode, scaling subsequent
// horizontal deltas down by FineRatio; returning to the coarse band switches
// back and resets the reference column to the current one.
func (c *ScrubController) PointerMove(x, y int) bool {
	if !c.pointer || c.mode == scrubIdle {
		return false
	}

	wanted := scrubCoarse
	if c.geometry.TrackBounds.Y-y >= c.cfg.FineThreshold {
		wanted = scrubFine
	}
	if wanted != c.mode {
		c.mode = wanted
		c.lastX = x
		c.fireMove()
		return true
	}

	dx := float64(x - c.lastX)
	c.lastX = x
	if c.mode == scrubFine {
		dx /= float64(c.cfg.FineRatio)
	}

	c.scrubPx = util.Clamp(c.scrubPx+dx, 0, float64(c.geometry.TrackWidth()))
	c.position = PixelToTime(int(c.scrubPx+0.5), c.duration.OrElse(0), c.geometry.TrackWidth())
	c.fireMove()
	return true
}

// PointerUp commits the open pointer session at its preview position.
func (c *ScrubController) PointerUp(x, y int) bool {
	if !c.pointer || c.mode == scrubIdle {
		return false
	}
	c.stop(false)
	return true
}

// PointerCancel discards the open pointer session without committing.
func (c *ScrubController) PointerCancel() {
	if !c.pointer || c.mode == scrubIdle {
		return
	}
	c.stop(true)
}

// KeyStep applies one incremental scrub step in the given direction (negative
// is rewind). Without a pointer session it opens a key-driven one based at the
// display position; repeated presses accumulate. The session auto-commits
// after AutoCommitTimeout of key inactivity.
func (c *ScrubController) KeyStep(direction int) bool {
	if direction == 0 {
		return false
	}

	increment := c.cfg.IncrementMs
	dur, durKnown := c.duration.Get()
	if increment == 0 {
		if !durKnown || dur <= 0 {
			return false
		}
		increment = util.Max(dur/int64(c.cfg.StepCount), 1)
	}

	if c.mode == scrubIdle {
		c.mode = scrubCoarse
		c.keyDriven = true
		c.pointer = false
		c.position = c.displayPos
		c.fireStart()
	}

	target := c.position
	if direction > 0 {
		target += increment
	} else {
		target -= increment
	}
	if target < 0 {
		target = 0
	}
	if durKnown && target > dur {
		target = dur
	}

	c.position = target
	c.scrubPx = float64(TimeToPixel(target, c.duration.OrElse(0), c.geometry.TrackWidth()))
	c.fireMove()

	if c.keyDriven {
		c.armAutoCommit()
	}
	return true
}

// CommitScrub ends any open session, committing its preview position.
func (c *ScrubController) CommitScrub() {
	if c.mode == scrubIdle {
		return
	}
	c.stop(false)
}

// CancelScrub ends any open session, discarding its preview position.
func (c *ScrubController) CancelScrub() {
	if c.mode == scrubIdle {
		return
	}
	c.stop(true)
}

// Detach cancels any open session and all pending timers. Call when the
// control leaves its display surface.
func (c *ScrubController) Detach() {
	c.autoCommit.Stop()
	if c.mode != scrubIdle {
		c.stop(true)
	}
}

func (c *ScrubController) armAutoCommit() {
	session := c.session
	c.autoCommit.Schedule(c.cfg.AutoCommitTimeout, func() {
		c.dispatch(func() {
			if c.session != session || c.mode == scrubIdle || !c.keyDriven {
				return
			}
			log.Debugf("key scrub idle for %s, committing at %dms", c.cfg.AutoCommitTimeout, c.position)
			c.stop(false)
		})
	})
}

func (c *ScrubController) stop(canceled bool) {
	c.autoCommit.Stop()
	c.mode = scrubIdle
	c.pointer = false
	c.keyDriven = false
	c.session++

	for _, l := range c.listeners {
		l.OnScrubStop(c.position, canceled)
	}
}

func (c *ScrubController) fireStart() {
	for _, l := range c.listeners {
		l.OnScrubStart(c.position)
	}
}

func (c *ScrubController) fireMove() {
	for _, l := range c.listeners {
		l.OnScrubMove(c.position)
	}
}
