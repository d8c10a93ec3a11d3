package timebar

import (
	"sync"
	"time"
)

// Timer is a cancellable deferred callback with single-outstanding semantics:
// scheduling replaces any pending callback. Callbacks fire on a background
// goroutine; hosts that confine mutation to one loop should marshal the
// callback back onto it (the TUI does this by re-posting a message).
type Timer struct {
	mu      sync.Mutex
	pending *time.Timer
}

// Schedule arranges fn to run after d, replacing any previously scheduled callback.
func (t *Timer) Schedule(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(d, fn)
}

// Stop cancels any pending callback. Safe to call when nothing is scheduled.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
