package frameloop

import "time"

// ResizeDebouncer coalesces a burst of window-resize events into one
// deferred action fired Delay after the last resize, so a terminal
// pane's PTY isn't resized on every intermediate frame of a drag-resize
// (which would spam SIGWINCH at the shell for no visual benefit).
type ResizeDebouncer struct {
	Delay   time.Duration
	pending bool
	fireAt  time.Time
}

const defaultResizeDelay = 100 * time.Millisecond

// NewResizeDebouncer returns a debouncer using the standard 100ms delay.
func NewResizeDebouncer() *ResizeDebouncer {
	return &ResizeDebouncer{Delay: defaultResizeDelay}
}

// Touch records a new resize at time now, rescheduling the pending fire.
func (d *ResizeDebouncer) Touch(now time.Time) {
	d.pending = true
	d.fireAt = now.Add(d.Delay)
}

// Poll reports whether the debounced action is due at time now,
// clearing the pending flag if so.
func (d *ResizeDebouncer) Poll(now time.Time) bool {
	if !d.pending {
		return false
	}
	if now.Before(d.fireAt) {
		return false
	}
	d.pending = false
	return true
}

// Pending reports whether a resize is still waiting to fire.
func (d *ResizeDebouncer) Pending() bool {
	return d.pending
}
