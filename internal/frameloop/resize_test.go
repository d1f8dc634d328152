package frameloop

import (
	"testing"
	"time"
)

func TestResizeDebouncerDoesNotFireBeforeDelay(t *testing.T) {
	d := NewResizeDebouncer()
	t0 := time.Unix(0, 0)
	d.Touch(t0)
	if d.Poll(t0.Add(50 * time.Millisecond)) {
		t.Error("should not fire before the 100ms delay elapses")
	}
}

func TestResizeDebouncerFiresAfterDelay(t *testing.T) {
	d := NewResizeDebouncer()
	t0 := time.Unix(0, 0)
	d.Touch(t0)
	if !d.Poll(t0.Add(150 * time.Millisecond)) {
		t.Error("should fire once the delay has elapsed")
	}
	if d.Pending() {
		t.Error("Poll firing should clear the pending flag")
	}
}

func TestResizeDebouncerCoalescesBurst(t *testing.T) {
	d := NewResizeDebouncer()
	t0 := time.Unix(0, 0)
	d.Touch(t0)
	d.Touch(t0.Add(50 * time.Millisecond))
	d.Touch(t0.Add(90 * time.Millisecond))

	if d.Poll(t0.Add(150 * time.Millisecond)) {
		t.Error("a resize 90ms in should reschedule the fire to 190ms, not 100ms")
	}
	if !d.Poll(t0.Add(191 * time.Millisecond)) {
		t.Error("should fire 100ms after the last Touch")
	}
}
