package dragdrop

import (
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// DockRect is the dock panel's screen rect, or the zero value if the
// dock is hidden/empty.
type DockRect struct {
	Rect    layout.Rect
	Visible bool
}

// IsTerminal reports whether pane id is a terminal pane, used to reject
// dock drops from terminal panes.
type IsTerminal func(id pane.Id) bool

// ComputeTarget finds the drop target at pos, given the current tiling
// rects, the pane area they're laid out in, the dock's rect, the drag's
// source pane, and whether the source started on the dock. It never
// offers a dock->dock self-drop or a terminal->dock drop.
func ComputeTarget(pos layout.Vec2, rects []layout.PaneRect, paneArea layout.Rect, dock DockRect, source pane.Id, sourceFromDock bool, isTerminal IsTerminal) (DropTarget, bool) {
	if dock.Visible && dock.Rect.Contains(pos) {
		if sourceFromDock {
			return DropTarget{}, false
		}
		if isTerminal != nil && isTerminal(source) {
			return DropTarget{}, false
		}
		return DropTarget{IsDock: true}, true
	}

	var sourceTiling layout.Rect
	haveSourceTiling := false
	for _, pr := range rects {
		if pr.Id == source {
			sourceTiling = pr.Rect
			haveSourceTiling = true
			break
		}
	}

	for _, pr := range rects {
		if pr.Id == source {
			continue
		}
		if !pr.Rect.Contains(pos) {
			continue
		}
		zone := layout.ZoneFor(pr.Rect, pos)
		if layout.IsOuterBand(paneArea, pr.Rect, pr.Rect, pos, zone) {
			if haveSourceTiling && layout.SpansEdge(paneArea, sourceTiling, zone) {
				return DropTarget{PaneID: pr.Id, Zone: zone}, true
			}
			return DropTarget{PaneID: 0, Zone: zone}, true
		}
		return DropTarget{PaneID: pr.Id, Zone: zone}, true
	}
	return DropTarget{}, false
}
