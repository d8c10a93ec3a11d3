package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/seekbar-cli/seekbar/log"
	"github.com/seekbar-cli/seekbar/timeline"
	"github.com/seekbar-cli/seekbar/util"
)

// bufferedLeadMs is how far ahead of the playhead the simulated buffer runs.
const bufferedLeadMs = int64(15_000)

// Simulator is a wall-clock Controller over a timeline description. It derives
// the playhead from elapsed real time scaled by the playback rate, so it needs
// no ticking goroutine of its own; hosts poll Snapshot on their own refresh
// cadence. Safe for concurrent use.
type Simulator struct {
	mu sync.Mutex

	tl timeline.Timeline

	state  State
	rate   float64
	window int

	// anchorMs is the window-local position at anchor time; the playhead is
	// anchorMs plus scaled elapsed time while playing.
	anchorMs int64
	anchor   time.Time

	repeat, shuffle bool

	now func() time.Time
}

// NewSimulator builds a paused simulator at the start of the first window.
func NewSimulator(tl timeline.Timeline) (*Simulator, error) {
	if err := tl.Validate(); err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	if tl.Empty() {
		return nil, fmt.Errorf("timeline has no windows")
	}

	return &Simulator{
		tl:    tl,
		state: Paused,
		rate:  1,
		now:   time.Now,
	}, nil
}

// SetClock replaces the wall clock, for tests.
func (s *Simulator) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebase()
	s.now = now
	s.anchor = now()
}

// Timeline returns the timeline description the simulator plays.
func (s *Simulator) Timeline() timeline.Timeline {
	return s.tl
}

// Snapshot implements Controller.
func (s *Simulator) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebase()

	w := s.tl.Windows[s.window]
	buffered := s.anchorMs + bufferedLeadMs
	if d, ok := w.Duration.Get(); ok {
		buffered = util.Min(buffered, d)
	}

	return Status{
		State:       s.state,
		Rate:        s.rate,
		PositionMs:  s.anchorMs,
		BufferedMs:  buffered,
		Duration:    w.Duration,
		WindowIndex: s.window,
		Repeat:      s.repeat,
		Shuffle:     s.shuffle,
	}
}

// SeekTo implements Controller. Seeks into unseekable windows and positions
// outside a known duration are rejected.
func (s *Simulator) SeekTo(windowIndex int, positionMs int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if windowIndex < 0 || windowIndex >= s.tl.WindowCount() || positionMs < 0 {
		return false
	}

	w := s.tl.Windows[windowIndex]
	if !w.Seekable {
		log.Debugf("seek into unseekable window %d refused", windowIndex)
		return false
	}
	if d, ok := w.Duration.Get(); ok && positionMs > d {
		return false
	}

	s.rebase()
	s.window = windowIndex
	s.anchorMs = positionMs
	if s.state == Ended {
		s.state = Paused
	}
	return true
}

// TogglePause implements Controller. Toggling an ended player restarts it from
// the beginning of the first window.
func (s *Simulator) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebase()

	switch s.state {
	case Playing:
		s.state = Paused
	case Paused, Idle, Buffering:
		s.state = Playing
	case Ended:
		s.window = 0
		s.anchorMs = 0
		s.state = Playing
	}
}

// SetRate implements Controller. Non-positive rates are ignored.
func (s *Simulator) SetRate(rate float64) {
	if rate <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebase()
	s.rate = rate
}

// SetFlags sets the repeat and shuffle state reported in snapshots.
func (s *Simulator) SetFlags(repeat, shuffle bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = repeat
	s.shuffle = shuffle
}

// rebase folds elapsed wall time into the anchor and handles window ends.
// Callers must hold mu.
func (s *Simulator) rebase() {
	now := s.now()
	if s.state == Playing {
		elapsed := now.Sub(s.anchor)
		s.anchorMs += int64(float64(elapsed.Milliseconds()) * s.rate)
	}
	s.anchor = now

	for {
		d, ok := s.tl.Windows[s.window].Duration.Get()
		if !ok || s.anchorMs < d {
			return
		}

		if s.window+1 < s.tl.WindowCount() {
			s.anchorMs -= d
			s.window++
			continue
		}

		if s.repeat {
			s.anchorMs -= d
			s.window = 0
			continue
		}

		s.anchorMs = d
		if s.state == Playing {
			s.state = Ended
		}
		return
	}
}
