// Package frameloop implements the event-driven main loop's pacing and
// background-poller plumbing: input-class events may redraw as often as
// every 4ms, everything else waits for 16ms, and a "rapid frame" (two
// frames within 8ms of each other, e.g. a burst of scroll events) skips
// non-critical polling so the event loop can keep draining input instead
// of doing file-watch/git-status work nobody's waiting on.
package frameloop

import "time"

const (
	// MinIntervalInput is the minimum time between redraws triggered by
	// input-class events (keystrokes, pointer moves while dragging).
	MinIntervalInput = 4 * time.Millisecond
	// MinIntervalOther is the minimum time between redraws triggered by
	// anything else (terminal output, file watch, git poll results).
	MinIntervalOther = 16 * time.Millisecond
	// RapidFrameThreshold: frames closer together than this skip
	// non-critical background work for this tick.
	RapidFrameThreshold = 8 * time.Millisecond
)

// Pacer tracks the last frame's timing to decide whether a new one is
// due yet, and whether the loop is in a "rapid frame" burst.
type Pacer struct {
	lastFrame time.Time
	hasFrame  bool
}

// NewPacer returns a pacer with no prior frame recorded (the first call
// to Allow always succeeds).
func NewPacer() *Pacer {
	return &Pacer{}
}

// Allow reports whether enough time has passed since the last allowed
// frame to render again, given whether this request came from an
// input-class event. On true, it records now as the new last-frame time.
func (p *Pacer) Allow(now time.Time, inputClass bool) bool {
	if !p.hasFrame {
		p.lastFrame = now
		p.hasFrame = true
		return true
	}
	minInterval := MinIntervalOther
	if inputClass {
		minInterval = MinIntervalInput
	}
	if now.Sub(p.lastFrame) < minInterval {
		return false
	}
	p.lastFrame = now
	return true
}

// IsRapidFrame reports whether now is within RapidFrameThreshold of the
// last allowed frame, without consuming/recording a new frame itself.
func (p *Pacer) IsRapidFrame(now time.Time) bool {
	if !p.hasFrame {
		return false
	}
	return now.Sub(p.lastFrame) < RapidFrameThreshold
}
