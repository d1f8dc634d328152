package frameloop

import (
	"testing"
	"time"
)

func TestPollerDeliversResult(t *testing.T) {
	p := NewPoller(5*time.Millisecond, func() (int, error) { return 42, nil })
	p.Start()
	defer p.Stop()

	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if v, _, ok := p.Drain(); ok {
			if v != 42 {
				t.Fatalf("value = %d, want 42", v)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("poller never delivered a result")
}

func TestPollerDrainWithoutStartReturnsFalse(t *testing.T) {
	p := NewPoller(time.Second, func() (int, error) { return 1, nil })
	if _, _, ok := p.Drain(); ok {
		t.Error("an unstarted poller should have nothing to drain")
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := NewPoller(time.Millisecond, func() (int, error) { return 1, nil })
	p.Start()
	p.Stop()
	p.Stop() // must not panic
}
