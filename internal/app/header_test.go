package app

import (
	"testing"

	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/termpane"
)

func TestHeaderTextUsesWorkDirRelativePathForEditor(t *testing.T) {
	a := &App{workDir: "/home/user/project"}
	st := editor.NewEmpty()
	st.Buffer.SetPath("/home/user/project/src/main.go")
	ep := editor.NewPane(1, st)

	got := a.headerText(ep)
	if got != "src/main.go" {
		t.Fatalf("headerText() = %q, want %q", got, "src/main.go")
	}
}

func TestHeaderTextFallsBackToTitleWithoutPath(t *testing.T) {
	a := &App{workDir: "/home/user/project"}
	ep := editor.NewPane(1, editor.NewEmpty())

	got := a.headerText(ep)
	if got != ep.Title() {
		t.Fatalf("headerText() = %q, want the pane's own Title() %q", got, ep.Title())
	}
}

func TestHeaderTextFallsBackToTitleForNonEditorPanes(t *testing.T) {
	a := &App{workDir: "/home/user/project"}
	tp := termpane.New(1, &noopBackend{}, "shell")

	got := a.headerText(tp)
	if got != tp.Title() {
		t.Fatalf("headerText() = %q, want %q", got, tp.Title())
	}
}

// noopBackend is a minimal termpane.Backend stub for tests that only
// need a pane.Content to route through headerText's type switch.
type noopBackend struct{}

func (*noopBackend) Write(p []byte) (int, error)      { return len(p), nil }
func (*noopBackend) Process() error                   { return nil }
func (*noopBackend) Grid() termpane.Grid               { return termpane.Grid{} }
func (*noopBackend) Resize(cols, rows int) error      { return nil }
func (*noopBackend) Cursor() termpane.Cursor           { return termpane.Cursor{} }
func (*noopBackend) GridGeneration() uint64           { return 0 }
func (*noopBackend) Search(query string) []termpane.Match { return nil }
func (*noopBackend) ScrollDisplay(delta int)          {}
func (*noopBackend) Close() error                     { return nil }
