package layout

import "github.com/mosaicterm/mosaic/internal/pane"

// node is either a leaf holding a single pane id, or a split holding two
// children divided along direction by ratio. The zero value is not a valid
// node; always construct via leaf() or split-producing operations.
type node struct {
	leaf bool
	id   pane.Id // valid when leaf

	dir   Direction // valid when !leaf
	ratio float32
	left  *node
	right *node
}

func newLeaf(id pane.Id) *node {
	return &node{leaf: true, id: id}
}

func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	c := *n
	c.left = n.left.clone()
	c.right = n.right.clone()
	return &c
}

func (n *node) paneIds(out *[]pane.Id) {
	if n.leaf {
		*out = append(*out, n.id)
		return
	}
	n.left.paneIds(out)
	n.right.paneIds(out)
}

func (n *node) computeRects(rect Rect, out *[]PaneRect) {
	if n.leaf {
		*out = append(*out, PaneRect{Id: n.id, Rect: rect})
		return
	}
	lr, rr := splitRect(rect, n.dir, n.ratio)
	n.left.computeRects(lr, out)
	n.right.computeRects(rr, out)
}

// countChainLeaves counts leaves reachable through consecutive splits that
// share dir; a leaf or a split with a different direction counts as 1 so
// re-equalization only averages across the chain it is part of.
func (n *node) countChainLeaves(dir Direction) int {
	if n.leaf {
		return 1
	}
	if n.dir == dir {
		return n.left.countChainLeaves(dir) + n.right.countChainLeaves(dir)
	}
	return 1
}

func reequalize(n *node, dir Direction) {
	if n.dir != dir {
		return
	}
	nl := n.left.countChainLeaves(dir)
	nr := n.right.countChainLeaves(dir)
	n.ratio = float32(nl) / float32(nl+nr)
}

// splitPane replaces the leaf holding target with a new split of direction
// containing the original leaf (left/top) and newID (right/bottom), then
// re-equalizes any enclosing same-direction chain on the way back up.
func (n *node) splitPane(target, newID pane.Id, dir Direction) bool {
	if n.leaf {
		if n.id != target {
			return false
		}
		original := newLeaf(target)
		fresh := newLeaf(newID)
		n.leaf = false
		n.id = 0
		n.dir = dir
		n.ratio = 0.5
		n.left = original
		n.right = fresh
		return true
	}
	if n.left.splitPane(target, newID, dir) {
		reequalize(n, n.dir)
		return true
	}
	if n.right.splitPane(target, newID, dir) {
		reequalize(n, n.dir)
		return true
	}
	return false
}

// insertPaneAt is splitPane with explicit control over which side the new
// pane lands on.
func (n *node) insertPaneAt(target, newID pane.Id, dir Direction, insertFirst bool) bool {
	if n.leaf {
		if n.id != target {
			return false
		}
		targetNode := newLeaf(target)
		newNode := newLeaf(newID)
		n.leaf = false
		n.id = 0
		n.dir = dir
		n.ratio = 0.5
		if insertFirst {
			n.left, n.right = newNode, targetNode
		} else {
			n.left, n.right = targetNode, newNode
		}
		return true
	}
	if n.left.insertPaneAt(target, newID, dir, insertFirst) {
		reequalize(n, n.dir)
		return true
	}
	if n.right.insertPaneAt(target, newID, dir, insertFirst) {
		reequalize(n, n.dir)
		return true
	}
	return false
}

// removePane looks for target within n. It returns (replacement, removed,
// found):
//   - found=false: target isn't in this subtree, nothing changed.
//   - found=true, removed=true: n itself was the leaf to remove; the caller
//     must replace n's slot with nothing (collapse to the sibling).
//   - found=true, removed=false: n survives as replacement (either itself,
//     mutated in place, or the sibling subtree that should take n's slot).
func (n *node) removePane(target pane.Id) (replacement *node, removed, found bool) {
	if n.leaf {
		if n.id == target {
			return nil, true, true
		}
		return nil, false, false
	}

	dir := n.dir
	leftOld := n.left.countChainLeaves(dir)
	if repl, gone, ok := n.left.removePane(target); ok {
		if gone {
			return n.right, false, true
		}
		n.left = repl
		if n.left.countChainLeaves(dir) != leftOld {
			reequalize(n, dir)
		}
		return n, false, true
	}

	rightOld := n.right.countChainLeaves(dir)
	if repl, gone, ok := n.right.removePane(target); ok {
		if gone {
			return n.left, false, true
		}
		n.right = repl
		if n.right.countChainLeaves(dir) != rightOld {
			reequalize(n, dir)
		}
		return n, false, true
	}

	return nil, false, false
}

// borderHit records the closest border found so far during find_border_at:
// its distance from the query point and the left/right path that reaches
// its split node. found distinguishes "no candidate yet" from a zero
// distance at the root path.
type borderHit struct {
	dist  float32
	path  []bool
	found bool
}

func (n *node) findBorderAt(rect Rect, pos Vec2, best *borderHit, path *[]bool) {
	if n.leaf {
		return
	}
	var borderPos, dist float32
	var inRange bool
	switch n.dir {
	case Horizontal:
		borderPos = rect.X + rect.Width*n.ratio
		dist = abs32(pos.X - borderPos)
		inRange = pos.Y >= rect.Y && pos.Y <= rect.Y+rect.Height
	default:
		borderPos = rect.Y + rect.Height*n.ratio
		dist = abs32(pos.Y - borderPos)
		inRange = pos.X >= rect.X && pos.X <= rect.X+rect.Width
	}

	if inRange && (!best.found || dist < best.dist) {
		cp := append([]bool(nil), *path...)
		*best = borderHit{dist: dist, path: cp, found: true}
	}

	lr, rr := splitRect(rect, n.dir, n.ratio)

	*path = append(*path, false)
	n.left.findBorderAt(lr, pos, best, path)
	*path = (*path)[:len(*path)-1]

	*path = append(*path, true)
	n.right.findBorderAt(rr, pos, best, path)
	*path = (*path)[:len(*path)-1]
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (n *node) applyDrag(rect Rect, path []bool, pos Vec2, minRatio float32) {
	if n.leaf {
		return
	}
	if len(path) == 0 {
		var newRatio float32
		switch n.dir {
		case Horizontal:
			newRatio = (pos.X - rect.X) / rect.Width
		default:
			newRatio = (pos.Y - rect.Y) / rect.Height
		}
		n.ratio = clamp32(newRatio, minRatio, 1-minRatio)
		return
	}
	lr, rr := splitRect(rect, n.dir, n.ratio)
	if !path[0] {
		n.left.applyDrag(lr, path[1:], pos, minRatio)
	} else {
		n.right.applyDrag(rr, path[1:], pos, minRatio)
	}
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (n *node) replacePaneId(from, to pane.Id) {
	if n.leaf {
		if n.id == from {
			n.id = to
		}
		return
	}
	n.left.replacePaneId(from, to)
	n.right.replacePaneId(from, to)
}

const swapSentinel = pane.Id(^uint64(0))

func (n *node) swapPanes(a, b pane.Id) {
	n.replacePaneId(a, swapSentinel)
	n.replacePaneId(b, a)
	n.replacePaneId(swapSentinel, b)
}

// snapRatios rounds every split's ratio so the left/top child's content
// area (tiling rect minus gap/padding/tab-bar decorations) lands on a whole
// number of cells, then recurses into both children with their new rects.
func (n *node) snapRatios(rect Rect, cell Size, dec Decorations) {
	if n.leaf {
		return
	}
	halfGap := dec.Gap / 2

	switch n.dir {
	case Horizontal:
		total := rect.Width
		if total >= 1.0 && cell.Width >= 1.0 {
			leftTilingW := total * n.ratio
			contentW := leftTilingW - halfGap - 2*dec.Padding
			if contentW > 0 {
				snappedW := roundTo(contentW, cell.Width)
				newTilingW := snappedW + halfGap + 2*dec.Padding
				newRatio := newTilingW / total
				minR := minRatioForDirection(rect, cell, dec, Horizontal)
				n.ratio = clamp32(newRatio, minR, 1-minR)
			}
		}
	default:
		total := rect.Height
		if total >= 1.0 && cell.Height >= 1.0 {
			leftTilingH := total * n.ratio
			contentH := leftTilingH - halfGap - dec.TabBarHeight - dec.Padding
			if contentH > 0 {
				snappedH := roundTo(contentH, cell.Height)
				newTilingH := snappedH + halfGap + dec.TabBarHeight + dec.Padding
				newRatio := newTilingH / total
				minR := minRatioForDirection(rect, cell, dec, Vertical)
				n.ratio = clamp32(newRatio, minR, 1-minR)
			}
		}
	}

	lr, rr := splitRect(rect, n.dir, n.ratio)
	n.left.snapRatios(lr, cell, dec)
	n.right.snapRatios(rr, cell, dec)
}

func roundTo(v, unit float32) float32 {
	return roundHalfAwayFromZero(v/unit) * unit
}

func roundHalfAwayFromZero(v float32) float32 {
	if v >= 0 {
		return float32(int32(v + 0.5))
	}
	return float32(int32(v - 0.5))
}
