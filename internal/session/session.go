// Package session owns the pane registry, the content/chrome generation
// counters the render layer reads to decide what's stale, and snapshot
// persistence of editor tabs' files, scroll positions and cursor
// locations. The split layout itself is not saved.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// Session is the root object tying a layout tree to a pane registry and
// the two generation counters the renderer gates cache invalidation on.
type Session struct {
	mu sync.Mutex

	Tree     *layout.Tree
	Registry *pane.Registry
	Dock     *Dock

	contentGeneration uint64
	chromeGeneration  uint64
}

// New returns a session with a single pane, root, occupying the whole
// layout tree, and an empty registry (the caller still owns inserting
// root's Content via Registry.Put).
func New(root pane.Id) *Session {
	return &Session{Tree: layout.NewTree(root), Registry: pane.NewRegistry(), Dock: NewDock()}
}

// BumpContent marks that some pane's visible content changed (buffer
// edit, terminal output, diff reload). This is the sole signal the
// renderer's per-pane grid cache reads; nothing else invalidates it.
func (s *Session) BumpContent() {
	s.mu.Lock()
	s.contentGeneration++
	s.mu.Unlock()
}

// BumpChrome marks that layout, focus, or tab chrome changed, independent
// of any pane's content (a split, a drag, a focus change).
func (s *Session) BumpChrome() {
	s.mu.Lock()
	s.chromeGeneration++
	s.mu.Unlock()
}

// Generations returns the current (content, chrome) pair for a renderer
// to compare against its last-seen values.
func (s *Session) Generations() (content, chrome uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentGeneration, s.chromeGeneration
}

// Resize recomputes the layout tree's rects for a new window size,
// snapping split ratios to whole cell counts, and bumps the chrome
// generation since every pane's on-screen rect changed even though no
// pane's content did.
func (s *Session) Resize(width, height float32, cell layout.Size, dec layout.Decorations) []layout.PaneRect {
	area := layout.Rect{Width: width, Height: height}
	s.Tree.SnapRatios(area, cell, dec)
	rects := s.Tree.ComputeRects(area)
	s.BumpChrome()
	return rects
}

// Snapshot is the JSON-persisted shape of an open session: each pane's
// id and kind, plus an editor's file path and scroll/cursor position.
// It holds no live content (buffers are reloaded from disk, terminals
// are not resurrected) and no split-tree structure, so the layout is
// not restored.
type Snapshot struct {
	Panes []PaneSnapshot `json:"panes"`
	Focus pane.Id        `json:"focus,omitempty"`
}

// PaneSnapshot is one pane's restorable state.
type PaneSnapshot struct {
	Id            pane.Id `json:"id"`
	Kind          string  `json:"kind"`
	Path          string  `json:"path,omitempty"`          // editor/diff: file path
	ScrollOffset  int     `json:"scrollOffset,omitempty"`
	HScrollOffset int     `json:"hScrollOffset,omitempty"`
	CursorLine    int     `json:"cursorLine,omitempty"`
	CursorCol     int     `json:"cursorCol,omitempty"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mosaic"), nil
}

func snapshotPath(dir string) string {
	return filepath.Join(dir, "session.json")
}

// SaveSnapshot writes snap to the default session file, creating the
// config directory if needed.
func SaveSnapshot(snap Snapshot) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	return SaveSnapshotTo(dir, snap)
}

// SaveSnapshotTo writes snap under dir; split out from SaveSnapshot so
// tests don't touch the real user config directory.
func SaveSnapshotTo(dir string, snap Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(snapshotPath(dir), data, 0o644)
}

// LoadSnapshot reads the default session file. A missing file is not an
// error: it returns a zero Snapshot, the same as a first run.
func LoadSnapshot() (Snapshot, error) {
	dir, err := configDir()
	if err != nil {
		return Snapshot{}, err
	}
	return LoadSnapshotFrom(dir)
}

// LoadSnapshotFrom reads dir's session file.
func LoadSnapshotFrom(dir string) (Snapshot, error) {
	data, err := os.ReadFile(snapshotPath(dir))
	if os.IsNotExist(err) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// RunningMarker is the crash-recovery token: its presence on the next
// launch means the previous process never reached a clean shutdown, so
// the app can warn the user their last session snapshot may be stale
// (e.g. mid-edit when the process died).
type RunningMarker struct {
	path string
}

func markerPath(dir string) string {
	return filepath.Join(dir, "running.lock")
}

// AcquireRunningMarker writes a fresh marker token and reports whether a
// marker from a previous run was already present (a crash indicator).
func AcquireRunningMarker() (*RunningMarker, bool, error) {
	dir, err := configDir()
	if err != nil {
		return nil, false, err
	}
	return AcquireRunningMarkerIn(dir)
}

// AcquireRunningMarkerIn is AcquireRunningMarker parameterized by
// directory, for tests.
func AcquireRunningMarkerIn(dir string) (*RunningMarker, bool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, false, err
	}
	p := markerPath(dir)
	_, err := os.Stat(p)
	hadPrevious := err == nil

	token := uuid.NewString()
	if err := os.WriteFile(p, []byte(token), 0o644); err != nil {
		return nil, false, err
	}
	return &RunningMarker{path: p}, hadPrevious, nil
}

// Release removes the marker on clean shutdown.
func (m *RunningMarker) Release() error {
	err := os.Remove(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
