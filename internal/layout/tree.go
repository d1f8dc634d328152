package layout

import "github.com/mosaicterm/mosaic/internal/pane"

// Tree is the split/stack layout engine: a binary tree of panes over a
// rectangular area, plus the border-drag session state. A zero Tree is not
// valid; use NewTree.
type Tree struct {
	root   *node
	nextID pane.Id

	dragging bool
	dragPath []bool
}

// NewTree returns a tree with a single leaf occupying the whole area.
func NewTree(root pane.Id) *Tree {
	return &Tree{root: newLeaf(root), nextID: root}
}

// AllocId reserves a pane id that has never been used by this tree.
func (t *Tree) AllocId() pane.Id {
	t.nextID++
	return t.nextID
}

// PaneIds returns every leaf id in the tree, in tree order.
func (t *Tree) PaneIds() []pane.Id {
	var out []pane.Id
	t.root.paneIds(&out)
	return out
}

// ComputeRects assigns a rect to every leaf by dividing area along each
// split's axis and ratio, preorder.
func (t *Tree) ComputeRects(area Rect) []PaneRect {
	var out []PaneRect
	t.root.computeRects(area, &out)
	return out
}

// Split replaces target's leaf with a new split of direction containing
// target and a freshly allocated pane id, re-equalizing any enclosing
// same-direction chain. It returns the new id and false if target isn't a
// leaf in this tree.
func (t *Tree) Split(target pane.Id, dir Direction) (pane.Id, bool) {
	newID := t.AllocId()
	if !t.root.splitPane(target, newID, dir) {
		t.nextID--
		return 0, false
	}
	return newID, true
}

// Insert is Split with an already-allocated id and explicit left/right
// placement (insertFirst puts newID in the left/top child).
func (t *Tree) Insert(target, newID pane.Id, dir Direction, insertFirst bool) bool {
	return t.root.insertPaneAt(target, newID, dir, insertFirst)
}

// InsertAtRoot wraps the whole tree in a new split along zone's axis,
// putting newID on the side zone names. zone must be one of Top/Bottom/
// Left/Right; Center is invalid at the root and returns false.
func (t *Tree) InsertAtRoot(newID pane.Id, zone Zone) bool {
	dir, insertFirst, ok := zoneToRootSplit(zone)
	if !ok {
		return false
	}
	old := t.root
	newLeafNode := newLeaf(newID)
	if insertFirst {
		t.root = &node{dir: dir, ratio: 0.5, left: newLeafNode, right: old}
	} else {
		t.root = &node{dir: dir, ratio: 0.5, left: old, right: newLeafNode}
	}
	return true
}

func zoneToRootSplit(zone Zone) (dir Direction, insertFirst, ok bool) {
	switch zone {
	case ZoneLeft:
		return Horizontal, true, true
	case ZoneRight:
		return Horizontal, false, true
	case ZoneTop:
		return Vertical, true, true
	case ZoneBottom:
		return Vertical, false, true
	default:
		return 0, false, false
	}
}

// Remove deletes id's leaf from the tree, collapsing its parent split into
// the sibling subtree and re-equalizing any ancestor whose same-direction
// chain leaf count changed. It returns false if id is not in the tree, or
// if id is the last remaining pane (the root leaf can't be removed).
func (t *Tree) Remove(id pane.Id) bool {
	if t.root.leaf {
		return false
	}
	repl, gone, found := t.root.removePane(id)
	if !found {
		return false
	}
	if gone {
		// root itself can't be "gone" unless it was a bare leaf, handled above.
		return false
	}
	t.root = repl
	return true
}

// MovePane removes src from wherever it sits and re-inserts it beside
// target per zone (Center replaces target's spot is not supported here;
// callers route Center drops to a dock/tab action instead). It returns
// false, leaving the tree unchanged, if src or target can't be found or if
// src == target.
func (t *Tree) MovePane(src, target pane.Id, zone Zone) bool {
	if src == target {
		return false
	}
	if !t.contains(target) || !t.contains(src) {
		return false
	}
	dir, insertFirst, ok := zoneDirection(zone)
	if !ok {
		return false
	}
	if !t.Remove(src) {
		return false
	}
	// target was verified present above and src != target, so target's leaf
	// still exists post-removal; insertPaneAt cannot fail here.
	return t.root.insertPaneAt(target, src, dir, insertFirst)
}

// MovePaneToRoot removes src and re-inserts it as a new top-level split per
// zone, the drag-to-outer-band gesture.
func (t *Tree) MovePaneToRoot(src pane.Id, zone Zone) bool {
	if !t.contains(src) {
		return false
	}
	if t.root.leaf && t.root.id == src {
		return false
	}
	if !t.Remove(src) {
		return false
	}
	if !t.InsertAtRoot(src, zone) {
		return false
	}
	return true
}

func zoneDirection(zone Zone) (dir Direction, insertFirst, ok bool) {
	switch zone {
	case ZoneLeft:
		return Horizontal, true, true
	case ZoneRight:
		return Horizontal, false, true
	case ZoneTop:
		return Vertical, true, true
	case ZoneBottom:
		return Vertical, false, true
	default:
		return 0, false, false
	}
}

func (t *Tree) contains(id pane.Id) bool {
	for _, p := range t.PaneIds() {
		if p == id {
			return true
		}
	}
	return false
}

// FindNearestBorder locates the split whose border is closest to pos and
// within its perpendicular extent, returning the left/right path to reach
// it and its distance from pos. found is false if the tree has no splits
// (a single-leaf tree) or pos is outside every border's perpendicular
// extent. The caller (the input router) compares dist against its own
// border_threshold before calling BeginDragPath.
func (t *Tree) FindNearestBorder(area Rect, pos Vec2) (path []bool, dist float32, found bool) {
	var best borderHit
	var p []bool
	t.root.findBorderAt(area, pos, &best, &p)
	if !best.found {
		return nil, 0, false
	}
	return best.path, best.dist, true
}

// BeginDragPath starts a border-drag session at the given path, as found by
// a prior FindNearestBorder call.
func (t *Tree) BeginDragPath(path []bool) {
	t.dragging = true
	t.dragPath = path
}

// BeginDrag starts a border-drag session by finding the split whose border
// is nearest pos and within its perpendicular extent. It returns false (and
// starts no session) if pos isn't near any border.
func (t *Tree) BeginDrag(area Rect, pos Vec2) bool {
	path, _, found := t.FindNearestBorder(area, pos)
	if !found {
		return false
	}
	t.BeginDragPath(path)
	return true
}

// DragBorder updates the ratio of the split under drag, given the current
// pointer position and the cell/decoration sizes used to compute its
// minimum ratio. It is a no-op if no drag is in progress.
func (t *Tree) DragBorder(area Rect, pos Vec2, cell Size, dec Decorations) {
	if !t.dragging {
		return
	}
	minR := t.minRatioAtPath(area, cell, dec, t.dragPath)
	t.root.applyDrag(area, t.dragPath, pos, minR)
}

// EndDrag closes the current border-drag session, if any.
func (t *Tree) EndDrag() {
	t.dragging = false
	t.dragPath = nil
}

// IsDragging reports whether a border-drag session is open.
func (t *Tree) IsDragging() bool {
	return t.dragging
}

func (t *Tree) minRatioAtPath(area Rect, cell Size, dec Decorations, path []bool) float32 {
	n := t.root
	rect := area
	for _, right := range path {
		lr, rr := splitRect(rect, n.dir, n.ratio)
		if right {
			n, rect = n.right, rr
		} else {
			n, rect = n.left, lr
		}
	}
	return minRatioForDirection(rect, cell, dec, n.dir)
}

// SnapRatios rounds every split's ratio so its left/top child's content
// area (tiling rect minus gap/padding/tab-bar decorations) lands on a
// whole cell count. The right/bottom child takes the remainder, which is
// a whole cell count only when the split's total content extent is.
func (t *Tree) SnapRatios(area Rect, cell Size, dec Decorations) {
	t.root.snapRatios(area, cell, dec)
}

// SimulateDrop previews (or, with dryRun false, performs) dropping src onto
// target's zone and returns the rect src would occupy afterward. target==0
// means a root-level drop (see MovePaneToRoot) rather than against a
// specific leaf. It returns (zero Rect, false) if the move is invalid
// (src==target, unknown id). With dryRun true the tree is left unchanged;
// the preview is computed against a cloned tree.
func (t *Tree) SimulateDrop(src, target pane.Id, zone Zone, dryRun bool, area Rect) (Rect, bool) {
	work := t
	if dryRun {
		work = &Tree{root: t.root.clone(), nextID: t.nextID}
	}
	var ok bool
	if zone == ZoneCenter {
		ok = false
	} else if target == 0 {
		ok = work.MovePaneToRoot(src, zone)
	} else {
		ok = work.MovePane(src, target, zone)
	}
	if !ok {
		return Rect{}, false
	}
	for _, pr := range work.ComputeRects(area) {
		if pr.Id == src {
			return pr.Rect, true
		}
	}
	return Rect{}, false
}
