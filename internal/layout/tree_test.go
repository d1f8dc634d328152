package layout

import (
	"testing"

	"github.com/mosaicterm/mosaic/internal/pane"
)

func TestSplitAndResize(t *testing.T) {
	// S1: one pane (id 1) in an 800x600 area.
	tr := NewTree(1)
	area := Rect{X: 0, Y: 0, Width: 800, Height: 600}

	newID, ok := tr.Split(1, Horizontal)
	if !ok {
		t.Fatalf("split failed")
	}

	rects := tr.ComputeRects(area)
	if len(rects) != 2 {
		t.Fatalf("want 2 leaves, got %d", len(rects))
	}
	widths := widthsByID(rects)
	if widths[1] != 400 || widths[newID] != 400 {
		t.Fatalf("want widths (400,400), got (%v,%v)", widths[1], widths[newID])
	}

	if !tr.BeginDrag(area, Vec2{X: 400, Y: 300}) {
		t.Fatalf("expected border hit at x=400")
	}
	tr.DragBorder(area, Vec2{X: 300, Y: 300}, Size{Width: 10, Height: 20}, Decorations{})
	tr.EndDrag()

	rects = tr.ComputeRects(area)
	widths = widthsByID(rects)
	if widths[1] != 300 || widths[newID] != 500 {
		t.Fatalf("want widths (300,500) after drag, got (%v,%v)", widths[1], widths[newID])
	}

	tr.SnapRatios(area, Size{Width: 10, Height: 20}, Decorations{})
	rects = tr.ComputeRects(area)
	widths = widthsByID(rects)
	for id, w := range widths {
		if mod := float32(int(w)%10); mod > 0.5 && mod < 9.5 {
			t.Fatalf("pane %v width %v not snapped to a multiple of 10", id, w)
		}
	}
}

func widthsByID(rects []PaneRect) map[pane.Id]float32 {
	out := make(map[pane.Id]float32, len(rects))
	for _, r := range rects {
		out[r.Id] = r.Rect.Width
	}
	return out
}

func TestClosePreservesSiblings(t *testing.T) {
	// S2: tree H(V(1,2), 3). Remove 2: tree becomes H(1, 3), leaves {1,3}.
	tr := &Tree{
		root: &node{
			dir:   Horizontal,
			ratio: 0.5,
			left: &node{
				dir:   Vertical,
				ratio: 0.5,
				left:  newLeaf(1),
				right: newLeaf(2),
			},
			right: newLeaf(3),
		},
		nextID: 3,
	}

	if !tr.Remove(2) {
		t.Fatalf("remove of existing pane failed")
	}

	ids := tr.PaneIds()
	got := map[pane.Id]bool{}
	for _, id := range ids {
		got[id] = true
	}
	if len(got) != 2 || !got[1] || !got[3] {
		t.Fatalf("want leaves {1,3}, got %v", ids)
	}
	if tr.root.leaf {
		t.Fatalf("want root to remain a Horizontal split H(1,3), got a bare leaf")
	}
	if tr.root.left.id != 1 || tr.root.right.id != 3 {
		t.Fatalf("want H(1,3), got left=%v right=%v", tr.root.left, tr.root.right)
	}
}

func TestRemoveUnknownIdFails(t *testing.T) {
	tr := NewTree(1)
	tr.Split(1, Horizontal)
	if tr.Remove(99) {
		t.Fatalf("remove of unknown id should fail")
	}
}

func TestRemoveLastPaneFails(t *testing.T) {
	tr := NewTree(1)
	if tr.Remove(1) {
		t.Fatalf("remove of the sole remaining pane should fail")
	}
}

// invariant 1: compute_rects returns non-overlapping rects whose union
// equals the area; every leaf appears exactly once.
func TestComputeRectsPartitionsArea(t *testing.T) {
	tr := NewTree(1)
	area := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	id2, _ := tr.Split(1, Horizontal)
	id3, _ := tr.Split(id2, Vertical)

	rects := tr.ComputeRects(area)
	if len(rects) != 3 {
		t.Fatalf("want 3 leaves, got %d", len(rects))
	}
	seen := map[pane.Id]bool{}
	var totalArea float32
	for _, pr := range rects {
		if seen[pr.Id] {
			t.Fatalf("leaf %v appeared twice", pr.Id)
		}
		seen[pr.Id] = true
		totalArea += pr.Rect.Width * pr.Rect.Height
	}
	for _, want := range []pane.Id{1, id2, id3} {
		if !seen[want] {
			t.Fatalf("missing leaf %v in compute_rects output", want)
		}
	}
	wantArea := area.Width * area.Height
	if diff := totalArea - wantArea; diff > 1.0 || diff < -1.0 {
		t.Fatalf("rect union area %v != area %v", totalArea, wantArea)
	}
}

// invariant 2: after snap_ratios, every leaf's content rect width/height is
// divisible by the cell size within 0.5px. The width is chosen so the two
// leaves' content widths sum to whole cells (801 - 2*(1+8) = 783 = 87*9);
// with a remainder there, no ratio could align both leaves.
func TestSnapRatiosAligned(t *testing.T) {
	tr := NewTree(1)
	area := Rect{X: 0, Y: 0, Width: 801, Height: 617}
	id2, _ := tr.Split(1, Horizontal)

	cell := Size{Width: 9, Height: 18}
	dec := Decorations{Gap: 2, Padding: 4, TabBarHeight: 24}
	tr.SnapRatios(area, cell, dec)

	rects := tr.ComputeRects(area)
	widths := widthsByID(rects)
	for _, id := range []pane.Id{1, id2} {
		contentW := widths[id] - dec.Gap/2 - 2*dec.Padding
		remainder := remainderFloat(contentW, cell.Width)
		if remainder > 0.5 && remainder < cell.Width-0.5 {
			t.Fatalf("leaf %v content width %v not cell-aligned (remainder %v)", id, contentW, remainder)
		}
	}
}

func remainderFloat(v, unit float32) float32 {
	n := float32(int(v/unit + 0.5))
	return abs32(v - n*unit)
}

func TestSplitReequalizesChain(t *testing.T) {
	tr := NewTree(1)
	id2, _ := tr.Split(1, Horizontal)
	id3, _ := tr.Split(id2, Horizontal)

	area := Rect{X: 0, Y: 0, Width: 900, Height: 100}
	rects := tr.ComputeRects(area)
	widths := widthsByID(rects)
	for _, id := range []pane.Id{1, id2, id3} {
		if w := widths[id]; w < 299 || w > 301 {
			t.Fatalf("expected equal thirds, pane %v got width %v", id, w)
		}
	}
}

func TestDropZonePartition(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	cases := []struct {
		pos  Vec2
		zone Zone
	}{
		{Vec2{50, 10}, ZoneTop},
		{Vec2{50, 90}, ZoneBottom},
		{Vec2{10, 50}, ZoneLeft},
		{Vec2{90, 50}, ZoneRight},
		{Vec2{50, 50}, ZoneCenter},
	}
	for _, c := range cases {
		if got := ZoneFor(rect, c.pos); got != c.zone {
			t.Errorf("ZoneFor(%v) = %v, want %v", c.pos, got, c.zone)
		}
	}
}

func TestMovePaneAndSimulateDrop(t *testing.T) {
	tr := NewTree(1)
	id2, _ := tr.Split(1, Horizontal)

	area := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	preview, ok := tr.SimulateDrop(id2, 1, ZoneBottom, true, area)
	if !ok {
		t.Fatalf("simulate_drop failed")
	}
	if preview.Height <= 0 || preview.Height >= area.Height {
		t.Fatalf("unexpected preview rect %+v", preview)
	}

	// dry run must not mutate the tree.
	if len(tr.PaneIds()) != 2 {
		t.Fatalf("dry run mutated the tree")
	}
	widthsBefore := widthsByID(tr.ComputeRects(area))
	if widthsBefore[1] != 400 {
		t.Fatalf("dry run mutated the tree's ratios")
	}

	if !tr.MovePane(id2, 1, ZoneBottom) {
		t.Fatalf("move_pane failed")
	}
	rects := tr.ComputeRects(area)
	if len(rects) != 2 {
		t.Fatalf("want 2 leaves after move, got %d", len(rects))
	}
}

func TestMovePaneRejectsSelf(t *testing.T) {
	tr := NewTree(1)
	tr.Split(1, Horizontal)
	if tr.MovePane(1, 1, ZoneTop) {
		t.Fatalf("moving a pane onto itself should fail")
	}
}
