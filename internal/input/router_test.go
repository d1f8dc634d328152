package input

import (
	"testing"

	"github.com/mosaicterm/mosaic/internal/keymap"
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
)

func newTestRouter(t *testing.T) (*Router, *layout.Tree, layout.Rect) {
	t.Helper()
	tree := layout.NewTree(1)
	tree.Split(1, layout.Horizontal)
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	area := layout.Rect{X: 0, Y: 0, Width: 800, Height: 600}
	return NewRouter(tree, km), tree, area
}

// invariant 5: a click strictly inside a leaf's rect, away from any
// border, routes to that leaf.
func TestProcessClickRoutesToPane(t *testing.T) {
	r, tree, area := newTestRouter(t)
	rects := tree.ComputeRects(area)

	action := r.Process(Event{Kind: MouseClick, Position: Vec2{X: 100, Y: 300}}, area, rects)
	if action.Kind != ActionRouteToPane {
		t.Fatalf("want ActionRouteToPane, got %v", action.Kind)
	}
	if action.Pane != 1 {
		t.Fatalf("want pane 1, got %v", action.Pane)
	}
	focused, ok := r.Focused()
	if !ok || focused != 1 {
		t.Fatalf("want focus on pane 1, got %v ok=%v", focused, ok)
	}
}

// invariant 6: a click within threshold of a border begins a border drag.
func TestProcessClickBeginsBorderDrag(t *testing.T) {
	r, tree, area := newTestRouter(t)
	rects := tree.ComputeRects(area)
	_ = rects

	action := r.Process(Event{Kind: MouseClick, Position: Vec2{X: 400, Y: 300}}, area, rects)
	if action.Kind != ActionDragBorder {
		t.Fatalf("want ActionDragBorder, got %v", action.Kind)
	}
	if !r.IsDraggingBorder() {
		t.Fatalf("want router to record dragging state")
	}
	if !tree.IsDragging() {
		t.Fatalf("want tree to record dragging state")
	}
}

func TestProcessKeyGlobalShortcut(t *testing.T) {
	r, _, area := newTestRouter(t)
	action := r.Process(Event{Kind: KeyPress, Key: "ctrl+shift+h"}, area, nil)
	if action.Kind != ActionGlobal || action.Command != "split-horizontal" {
		t.Fatalf("want global split-horizontal, got %+v", action)
	}
}

func TestProcessKeyRoutesUnrecognizedToFocused(t *testing.T) {
	r, tree, area := newTestRouter(t)
	rects := tree.ComputeRects(area)
	r.Process(Event{Kind: MouseClick, Position: Vec2{X: 100, Y: 300}}, area, rects)

	action := r.Process(Event{Kind: KeyPress, Key: "x"}, area, rects)
	if action.Kind != ActionRouteToPane || action.Pane != 1 {
		t.Fatalf("want route to focused pane 1, got %+v", action)
	}
}

// A border drag must end on release, not persist across every subsequent
// move: without this, the first border click would turn every later
// pointer move into a border drag for the rest of the session.
func TestProcessReleaseEndsBorderDrag(t *testing.T) {
	r, tree, area := newTestRouter(t)
	rects := tree.ComputeRects(area)
	r.Process(Event{Kind: MouseClick, Position: Vec2{X: 400, Y: 300}}, area, rects)
	if !r.IsDraggingBorder() {
		t.Fatal("expected border drag to begin")
	}

	action := r.Process(Event{Kind: MouseRelease, Position: Vec2{X: 420, Y: 300}}, area, rects)
	if action.Kind != ActionDragEnd {
		t.Fatalf("want ActionDragEnd, got %v", action.Kind)
	}
	if r.IsDraggingBorder() || tree.IsDragging() {
		t.Fatal("border drag should be closed after release")
	}

	action = r.Process(Event{Kind: MouseMove, Position: Vec2{X: 100, Y: 300}}, area, rects)
	if action.Kind == ActionDragBorder {
		t.Fatal("move after release should no longer be treated as a border drag")
	}
}

func TestProcessReleaseWithoutDragReportsMouseRelease(t *testing.T) {
	r, tree, area := newTestRouter(t)
	rects := tree.ComputeRects(area)

	action := r.Process(Event{Kind: MouseRelease, Position: Vec2{X: 100, Y: 300}}, area, rects)
	if action.Kind != ActionMouseRelease {
		t.Fatalf("want ActionMouseRelease, got %v", action.Kind)
	}
	if action.DragPos != (Vec2{X: 100, Y: 300}) {
		t.Fatalf("want release position carried through, got %v", action.DragPos)
	}
}

func TestSetFocusedRecordsHistory(t *testing.T) {
	r, _, _ := newTestRouter(t)
	r.SetFocused(1)
	r.SetFocused(2)

	back, ok := r.history.Back(2)
	if !ok || back != 1 {
		t.Fatalf("want history back to pane 1, got %v ok=%v", back, ok)
	}
}

func TestSetFocusedCallsOnFocusChangeWithOutgoingPane(t *testing.T) {
	r, _, _ := newTestRouter(t)
	var got []pane.Id
	r.SetOnFocusChange(func(old pane.Id) { got = append(got, old) })

	r.SetFocused(1) // first focus: no prior pane, no callback
	r.SetFocused(2)
	r.SetFocused(2) // no-op re-focus: no callback
	r.SetFocused(1)

	if want := []pane.Id{1, 2}; !equalPaneIds(got, want) {
		t.Fatalf("onFocusChange calls = %v, want %v", got, want)
	}
}

func equalPaneIds(a, b []pane.Id) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
