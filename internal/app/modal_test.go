package app

import (
	"testing"

	"github.com/mosaicterm/mosaic/internal/session"
)

func newTestApp() *App {
	return &App{session: session.New(1)}
}

func TestRefilterFileFinderCaseInsensitiveSubstring(t *testing.T) {
	a := newTestApp()
	a.modal = modalState{
		kind:       modalFileFinder,
		candidates: []string{"internal/app/app.go", "README.md", "internal/layout/tree.go"},
	}
	a.modal.query = "LAYOUT"

	a.refilterFileFinder()

	if len(a.modal.matches) != 1 || a.modal.matches[0] != "internal/layout/tree.go" {
		t.Fatalf("matches = %v, want exactly [internal/layout/tree.go]", a.modal.matches)
	}
}

func TestRefilterFileFinderEmptyQueryShowsAllCandidates(t *testing.T) {
	a := newTestApp()
	candidates := []string{"a.go", "b.go", "c.go"}
	a.modal = modalState{kind: modalFileFinder, candidates: candidates}

	a.refilterFileFinder()

	if len(a.modal.matches) != len(candidates) {
		t.Fatalf("matches = %v, want all %d candidates", a.modal.matches, len(candidates))
	}
}

func TestRefilterFileFinderClampsSelectedWhenMatchesShrink(t *testing.T) {
	a := newTestApp()
	a.modal = modalState{
		kind:       modalFileFinder,
		candidates: []string{"a.go", "b.go", "c.go"},
		selected:   2,
	}

	a.modal.query = "zzz-no-match"
	a.refilterFileFinder()

	if len(a.modal.matches) != 0 {
		t.Fatalf("matches = %v, want none", a.modal.matches)
	}
	if a.modal.selected != 0 {
		t.Fatalf("selected = %d, want reset to 0 once it's out of range", a.modal.selected)
	}
}

func TestHandleFileFinderKeyNavigationClampsAtBounds(t *testing.T) {
	a := newTestApp()
	a.modal = modalState{
		kind:     modalFileFinder,
		matches:  []string{"a.go", "b.go"},
		selected: 0,
	}

	a.handleFileFinderKey("up")
	if a.modal.selected != 0 {
		t.Fatalf("selected = %d, want 0 (clamped below zero)", a.modal.selected)
	}

	a.handleFileFinderKey("down")
	if a.modal.selected != 1 {
		t.Fatalf("selected = %d, want 1", a.modal.selected)
	}

	a.handleFileFinderKey("down")
	if a.modal.selected != 1 {
		t.Fatalf("selected = %d, want 1 (clamped at len-1)", a.modal.selected)
	}
}

func TestHandleFileFinderKeyEscapeClosesModal(t *testing.T) {
	a := newTestApp()
	a.modal = modalState{kind: modalFileFinder, query: "foo"}

	a.handleFileFinderKey("escape")

	if a.activeModal() != modalNone {
		t.Fatalf("activeModal() = %v, want modalNone after escape", a.activeModal())
	}
}

func TestHandleFileFinderKeyBackspaceRefilters(t *testing.T) {
	a := newTestApp()
	a.modal = modalState{
		kind:       modalFileFinder,
		candidates: []string{"layout.go", "app.go"},
		query:      "layoutx",
	}
	a.modal.matches = nil

	a.handleFileFinderKey("backspace")

	if a.modal.query != "layout" {
		t.Fatalf("query = %q, want %q", a.modal.query, "layout")
	}
	if len(a.modal.matches) != 1 || a.modal.matches[0] != "layout.go" {
		t.Fatalf("matches = %v, want [layout.go] after backspace re-filters", a.modal.matches)
	}
}

func TestHandleQuitConfirmKeyEscapeClosesWithoutRemoving(t *testing.T) {
	a := newTestApp()
	a.session.Registry.Put(1, nil)
	a.modal = modalState{kind: modalQuitConfirm, pendingClose: 1}

	a.handleQuitConfirmKey("escape")

	if a.activeModal() != modalNone {
		t.Fatalf("activeModal() = %v, want modalNone", a.activeModal())
	}
}
