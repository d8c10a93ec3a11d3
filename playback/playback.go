// Package playback defines the host-side playback contract the seek bar binds
// to, plus a wall-clock simulator for demos and tests.
package playback

import (
	"github.com/samber/mo"
)

// State is the coarse playback state of the host player.
type State int

const (
	Idle State = iota
	Buffering
	Playing
	Paused
	Ended
)

// Advancing reports whether the displayed position is expected to move.
func (s State) Advancing() bool {
	return s == Playing
}

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Buffering:
		return "buffering"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// Status is a point-in-time snapshot of the host player.
type Status struct {
	State State
	Rate  float64

	// PositionMs is window-local; WindowIndex names the window it belongs to.
	PositionMs  int64
	BufferedMs  int64
	Duration    mo.Option[int64]
	WindowIndex int

	Repeat  bool
	Shuffle bool
}

// Controller is what the seek bar needs from a host player: a status feed and
// the seek, pause, and rate verbs it dispatches.
type Controller interface {
	Snapshot() Status

	// SeekTo jumps to a window-local position. false means the seek was
	// rejected and the caller must keep displaying the authoritative position.
	SeekTo(windowIndex int, positionMs int64) bool

	TogglePause()
	SetRate(rate float64)
}
