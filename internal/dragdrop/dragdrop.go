// Package dragdrop implements the tab/pane drag state machine: Idle ->
// PendingDrag -> Dragging -> Idle, gated by a pixel displacement
// threshold so an ordinary click doesn't register as a drag.
// Drop-target computation reuses the layout package's drop zones over
// tiling rects plus a dock panel rect.
package dragdrop

import (
	"math"

	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// DragThreshold is the minimum pointer displacement, in pixels, before a
// pending drag becomes an active one.
const DragThreshold float32 = 6.0

// Phase names the state machine's current state.
type Phase int

const (
	Idle Phase = iota
	PendingDrag
	Dragging
)

// DropTarget is where a drag would land if released right now.
type DropTarget struct {
	PaneID pane.Id   // target leaf (0 for a root-level / dock drop)
	Zone   layout.Zone
	IsDock bool
}

// State is the drag-drop state machine for one window. A zero State is
// Idle.
type State struct {
	phase Phase

	source     pane.Id
	fromDock   bool
	pressPos   layout.Vec2
	dropTarget *DropTarget
}

// Phase reports the current state.
func (s *State) Phase() Phase { return s.phase }

// Source returns the pane being dragged; valid once Phase is past Idle.
func (s *State) Source() pane.Id { return s.source }

// FromDock reports whether the drag originated from a dock tab rather
// than a tiled pane's tab bar.
func (s *State) FromDock() bool { return s.fromDock }

// DropTarget returns the currently computed drop target, if any.
func (s *State) DropTarget() (DropTarget, bool) {
	if s.dropTarget == nil {
		return DropTarget{}, false
	}
	return *s.dropTarget, true
}

// PressTabBar starts a pending drag at a tab-bar press.
func (s *State) PressTabBar(source pane.Id, pos layout.Vec2, fromDock bool) {
	s.phase = PendingDrag
	s.source = source
	s.pressPos = pos
	s.fromDock = fromDock
	s.dropTarget = nil
}

// Move advances the state machine on a pointer move: a PendingDrag whose
// displacement from the press position crosses DragThreshold becomes
// Dragging; a Dragging state recomputes its drop target every call.
// compute is consulted for the new drop target (ok false means "no valid
// target here").
func (s *State) Move(pos layout.Vec2, compute func(pos layout.Vec2) (DropTarget, bool)) {
	switch s.phase {
	case PendingDrag:
		if distance(pos, s.pressPos) >= DragThreshold {
			s.phase = Dragging
			s.recompute(pos, compute)
		}
	case Dragging:
		s.recompute(pos, compute)
	}
}

func (s *State) recompute(pos layout.Vec2, compute func(pos layout.Vec2) (DropTarget, bool)) {
	if target, ok := compute(pos); ok {
		t := target
		s.dropTarget = &t
	} else {
		s.dropTarget = nil
	}
}

// ReleaseResult describes what a Release call resolved to.
type ReleaseResult struct {
	// Applied is true if a valid drop target was present and the caller
	// should perform the structural layout mutation.
	Applied bool
	Target  DropTarget
	// ClickWithoutDrag is true when the release ends a PendingDrag that
	// never crossed the threshold: ordinary click-to-focus semantics
	// apply instead of any drag.
	ClickWithoutDrag bool
}

// Release ends the current drag (if any) and reports what should happen.
func (s *State) Release() ReleaseResult {
	var result ReleaseResult
	switch s.phase {
	case PendingDrag:
		result.ClickWithoutDrag = true
	case Dragging:
		if s.dropTarget != nil {
			result.Applied = true
			result.Target = *s.dropTarget
		}
	}
	s.reset()
	return result
}

// Cancel returns to Idle without applying anything (Escape key).
func (s *State) Cancel() {
	s.reset()
}

func (s *State) reset() {
	s.phase = Idle
	s.source = 0
	s.fromDock = false
	s.dropTarget = nil
}

func distance(a, b layout.Vec2) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}
