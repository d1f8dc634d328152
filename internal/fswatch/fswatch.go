// Package fswatch wraps fsnotify into a coarse, debounced filesystem
// event channel: a path plus a kind (Created/Modified/Removed),
// debounced at 100ms so a burst of writes from an external tool (a
// formatter, a build step) collapses into one reload instead of several.
// The debounce itself is one time.AfterFunc timer per path, guarded by a
// mutex, covering arbitrary editor paths rather than one fixed directory.
package fswatch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind tags the coarse classification of a filesystem event.
type Kind int

const (
	Created Kind = iota
	Modified
	Removed
)

// Event is one debounced filesystem change.
type Event struct {
	Path string
	Kind Kind
}

// DebounceDelay is the fixed settle time before a burst of fs events fires.
const DebounceDelay = 100 * time.Millisecond

// Watcher wraps an fsnotify.Watcher, coalescing rapid-fire events per
// path into a single debounced Event on Events().
type Watcher struct {
	inner *fsnotify.Watcher
	out   chan Event

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]Kind
	closed  bool
	wake    func()
}

// New starts a watcher with no paths registered yet; call Add for each
// file or directory that needs watching.
func New() (*Watcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		inner:   inner,
		out:     make(chan Event, 32),
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]Kind),
	}
	go w.loop()
	return w, nil
}

// Add registers path (a file or directory) for watching.
func (w *Watcher) Add(path string) error {
	return w.inner.Add(path)
}

// Remove stops watching path. It is not an error to remove a path that
// was never added.
func (w *Watcher) Remove(path string) error {
	return w.inner.Remove(path)
}

// SetWake installs fn to be called (from a debounce timer goroutine)
// after each event is published, so the main loop learns a redraw is
// due without polling. fn must be cheap and allocation-free.
func (w *Watcher) SetWake(fn func()) {
	w.mu.Lock()
	w.wake = fn
	w.mu.Unlock()
}

// Events returns the channel debounced events are published on.
func (w *Watcher) Events() <-chan Event {
	return w.out
}

// Close stops the underlying fsnotify watcher and releases any pending
// debounce timers.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	err := w.inner.Close()
	close(w.out)
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.inner.Events:
			if !ok {
				return
			}
			w.schedule(ev)
		case _, ok := <-w.inner.Errors:
			if !ok {
				return
			}
			// Watcher-internal errors (e.g. a removed directory) have no
			// user-facing action and are dropped: the watcher goroutine is
			// either healthy or gone, nothing in between to report.
		}
	}
}

func (w *Watcher) schedule(ev fsnotify.Event) {
	kind := classify(ev)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending[ev.Name] = kind
	if t, ok := w.timers[ev.Name]; ok {
		t.Stop()
	}
	path := ev.Name
	w.timers[ev.Name] = time.AfterFunc(DebounceDelay, func() {
		w.fire(path)
	})
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	kind, ok := w.pending[path]
	delete(w.pending, path)
	delete(w.timers, path)
	wake := w.wake
	w.mu.Unlock()
	if !ok {
		return
	}
	defer func() {
		if wake != nil {
			wake()
		}
	}()
	select {
	case w.out <- Event{Path: path, Kind: kind}:
	default:
		// Consumer is behind; dropping a coalesced fs event is safe since
		// the editor reload path re-reads from disk regardless of which
		// specific event triggered it.
	}
}

func classify(ev fsnotify.Event) Kind {
	switch {
	case ev.Op&fsnotify.Remove != 0 || ev.Op&fsnotify.Rename != 0:
		return Removed
	case ev.Op&fsnotify.Create != 0:
		return Created
	default:
		return Modified
	}
}
