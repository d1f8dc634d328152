package input

import (
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// Direction is a directional-navigation command, independent of whether it
// came from hjkl or the arrow keys.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// nonOverlapPenalty is added to a candidate's distance score when its
// perpendicular extent doesn't overlap the focused pane's, so an
// overlapping candidate is always preferred over a merely-closer
// non-overlapping one; only when nothing overlaps does the penalized
// distance ordering kick in. This is deliberately a flat additive penalty,
// not a smooth falloff: ties among non-overlapping candidates still break
// purely by distance, and a very close overlapping neighbor always beats a
// very close non-overlapping one.
const nonOverlapPenalty = 100000.0

// Navigate picks the best candidate pane in direction from current's rect
// among candidates, by the smallest primary-axis center-to-center
// distance, preferring candidates whose perpendicular extent overlaps
// current's. Ties break by the lowest pane id. ok is false if no candidate
// lies in that direction at all.
func Navigate(current layout.Rect, currentID pane.Id, candidates []layout.PaneRect, dir Direction) (pane.Id, bool) {
	cx := current.X + current.Width/2
	cy := current.Y + current.Height/2

	var bestID pane.Id
	var bestScore float32
	haveBest := false

	for _, cand := range candidates {
		if cand.Id == currentID {
			continue
		}
		ox := cand.Rect.X + cand.Rect.Width/2
		oy := cand.Rect.Y + cand.Rect.Height/2
		dx := ox - cx
		dy := oy - cy

		var valid, overlaps bool
		var dist float32
		switch dir {
		case DirLeft:
			valid = dx < -1.0
			overlaps = cand.Rect.Y < current.Y+current.Height && cand.Rect.Y+cand.Rect.Height > current.Y
			dist = abs32(dx)
		case DirRight:
			valid = dx > 1.0
			overlaps = cand.Rect.Y < current.Y+current.Height && cand.Rect.Y+cand.Rect.Height > current.Y
			dist = abs32(dx)
		case DirUp:
			valid = dy < -1.0
			overlaps = cand.Rect.X < current.X+current.Width && cand.Rect.X+cand.Rect.Width > current.X
			dist = abs32(dy)
		case DirDown:
			valid = dy > 1.0
			overlaps = cand.Rect.X < current.X+current.Width && cand.Rect.X+cand.Rect.Width > current.X
			dist = abs32(dy)
		}
		if !valid {
			continue
		}

		score := dist
		if !overlaps {
			score += nonOverlapPenalty
		}

		if !haveBest || score < bestScore || (score == bestScore && cand.Id < bestID) {
			bestID, bestScore, haveBest = cand.Id, score, true
		}
	}

	return bestID, haveBest
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// FocusHistory is a bounded back/forward stack of previously focused panes,
// for the focus-history-back/forward commands.
type FocusHistory struct {
	back    []pane.Id
	forward []pane.Id
}

// historyLimit bounds memory growth across a long session; the oldest
// entries are dropped once exceeded.
const historyLimit = 64

// NewFocusHistory returns an empty history.
func NewFocusHistory() *FocusHistory {
	return &FocusHistory{}
}

// Push records id as the pane focus is leaving, and clears the forward
// stack (a fresh navigation invalidates any prior "forward" redo path).
func (h *FocusHistory) Push(id pane.Id) {
	h.back = append(h.back, id)
	if len(h.back) > historyLimit {
		h.back = h.back[len(h.back)-historyLimit:]
	}
	h.forward = h.forward[:0]
}

// Back pops the most recent prior focus, pushing current onto the forward
// stack so Forward can return to it. ok is false if the back stack is
// empty.
func (h *FocusHistory) Back(current pane.Id) (pane.Id, bool) {
	if len(h.back) == 0 {
		return 0, false
	}
	n := len(h.back) - 1
	id := h.back[n]
	h.back = h.back[:n]
	h.forward = append(h.forward, current)
	return id, true
}

// Forward pops the most recently undone focus change, pushing current back
// onto the back stack.
func (h *FocusHistory) Forward(current pane.Id) (pane.Id, bool) {
	if len(h.forward) == 0 {
		return 0, false
	}
	n := len(h.forward) - 1
	id := h.forward[n]
	h.forward = h.forward[:n]
	h.back = append(h.back, current)
	return id, true
}
