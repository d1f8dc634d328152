// Package layout implements the split/stack pane layout engine: a binary
// tree of leaves (pane ids) and splits (direction, ratio) over a rectangular
// area, with border dragging, ratio re-equalization, cell snapping, and
// drop-zone computation for drag-and-drop.
package layout

import "github.com/mosaicterm/mosaic/internal/pane"

// Vec2 is a point in pane-area coordinates.
type Vec2 struct {
	X, Y float32
}

// Size is a width/height pair, used for the cell grid a pane renders at.
type Size struct {
	Width, Height float32
}

// Rect is an axis-aligned rectangle in pane-area coordinates.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether point lies within the rect, inclusive of edges
// (matching the half-open-on-neither-side semantics the border hit test
// relies on: a point exactly on a shared edge belongs to both neighbors).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Direction is the axis a split divides its rect along.
type Direction int

const (
	// Horizontal splits left/right: ratio is the left child's width share.
	Horizontal Direction = iota
	// Vertical splits top/bottom: ratio is the top child's height share.
	Vertical
)

// Decorations are the chrome sizes the caller's renderer reserves around a
// pane's content, needed only so snap_ratios can align content rects to
// whole cells; the tree itself never subtracts them from leaf rects.
type Decorations struct {
	Gap         float32
	Padding     float32
	TabBarHeight float32
}

// Zone is a drop target region within a pane's rect.
type Zone int

const (
	ZoneCenter Zone = iota
	ZoneTop
	ZoneBottom
	ZoneLeft
	ZoneRight
)

func splitRect(r Rect, dir Direction, ratio float32) (left, right Rect) {
	switch dir {
	case Horizontal:
		lw := r.Width * ratio
		return Rect{r.X, r.Y, lw, r.Height}, Rect{r.X + lw, r.Y, r.Width - lw, r.Height}
	default: // Vertical
		th := r.Height * ratio
		return Rect{r.X, r.Y, r.Width, th}, Rect{r.X, r.Y + th, r.Width, r.Height - th}
	}
}

// minCols/minRows bound how small a pane's content area is allowed to get
// before a split or drag refuses to shrink it further.
const (
	minCols float32 = 4.0
	minRows float32 = 2.0
)

// minRatioForDirection returns the minimum (and, by symmetry, 1-minimum
// maximum) ratio a split may take so that neither child drops below
// minCols/minRows cells of content, accounting for decoration chrome.
func minRatioForDirection(r Rect, cell Size, dec Decorations, dir Direction) float32 {
	halfGap := dec.Gap / 2
	clamp := func(v float32) float32 {
		if v < 0.05 {
			return 0.05
		}
		if v > 0.45 {
			return 0.45
		}
		return v
	}
	switch dir {
	case Horizontal:
		if r.Width < 1.0 {
			return 0.1
		}
		minTilingW := minCols*cell.Width + halfGap + 2*dec.Padding
		return clamp(minTilingW / r.Width)
	default:
		if r.Height < 1.0 {
			return 0.1
		}
		minTilingH := minRows*cell.Height + halfGap + dec.TabBarHeight + dec.Padding
		return clamp(minTilingH / r.Height)
	}
}

// PaneRect pairs a leaf's id with its computed rect.
type PaneRect struct {
	Id   pane.Id
	Rect Rect
}
