package app

import (
	"github.com/mosaicterm/mosaic/internal/diffpane"
	"github.com/mosaicterm/mosaic/internal/dragdrop"
	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/editor/chromahl"
	"github.com/mosaicterm/mosaic/internal/input"
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/mouse"
	"github.com/mosaicterm/mosaic/internal/pane"
	"github.com/mosaicterm/mosaic/internal/render"
	"github.com/mosaicterm/mosaic/internal/state"
)

// defaultDockWidth is used when the user has never resized the dock
// (state.GetDockWidth reports 0 for "unset").
const defaultDockWidth float32 = 320

// splitDockArea divides the full window area into the tiling rect the
// split layout tree lays panes out in and the editor dock's own rect;
// the dock stays disjoint from the layout tree's leaves. An empty dock
// reserves no space, so a fresh window is all tiling area until the
// first file is opened into the dock.
func (a *App) splitDockArea() (tiling, dock layout.Rect, visible bool) {
	if a.session.Dock.Len() == 0 {
		return a.area, layout.Rect{}, false
	}
	w := float32(state.GetDockWidth())
	if w <= 0 {
		w = defaultDockWidth
	}
	if max := a.area.Width * 0.6; w > max {
		w = max
	}
	if state.GetDockSide() == state.SideLeft {
		return layout.Rect{X: a.area.X + w, Y: a.area.Y, Width: a.area.Width - w, Height: a.area.Height},
			layout.Rect{X: a.area.X, Y: a.area.Y, Width: w, Height: a.area.Height},
			true
	}
	return layout.Rect{X: a.area.X, Y: a.area.Y, Width: a.area.Width - w, Height: a.area.Height},
		layout.Rect{X: a.area.X + a.area.Width - w, Y: a.area.Y, Width: w, Height: a.area.Height},
		true
}

// tilingArea is the rect the layout tree computes pane rects against.
func (a *App) tilingArea() layout.Rect {
	tiling, _, _ := a.splitDockArea()
	return tiling
}

// dockTabRect returns the on-screen rect of the dock's i'th tab button
// within dock's tab strip, for hit-testing clicks and drag-drop presses.
func (a *App) dockTabRect(dock layout.Rect, i int) layout.Rect {
	const tabWidth = 140
	return layout.Rect{X: dock.X + float32(i)*tabWidth, Y: dock.Y, Width: tabWidth, Height: a.dec.TabBarHeight}
}

// closeButtonSize is the square hit area of a dock tab's close button,
// at the tab's right edge.
const closeButtonSize = 20

// dockHitMap builds the tab strip's hit regions: each tab first, then
// its close button, so the close button (added last) wins where they
// overlap.
func (a *App) dockHitMap(dock layout.Rect) *mouse.HitMap {
	hm := mouse.NewHitMap()
	for i, id := range a.session.Dock.Tabs() {
		r := a.dockTabRect(dock, i)
		hm.AddRect("tab", int(r.X), int(r.Y), int(r.Width), int(r.Height), id)
		hm.AddRect("close", int(r.X+r.Width)-closeButtonSize, int(r.Y), closeButtonSize, int(r.Height), id)
	}
	return hm
}

// openInDock opens content as a new dock tab, replacing the now-legacy
// "always tile a new editor pane" behavior: editors (and the diff pane)
// live in the dock, disjoint from the split tree.
func (a *App) openInDock(id pane.Id, content pane.Content) {
	a.session.Registry.Put(id, content)
	a.session.Dock.PushTab(id)
	a.router.SetFocused(id)
	a.session.BumpChrome()
}

// closeDockTab removes id from the dock and the registry, refusing if
// the pane is a dirty editor (mirrors closeFocused's tiled-pane path).
func (a *App) closeDockTab(id pane.Id) {
	content, ok := a.session.Registry.Get(id)
	if ok {
		if dc, ok := content.(interface{ IsDirty() bool }); ok && dc.IsDirty() {
			a.openQuitConfirm(id)
			return
		}
	}
	a.removePane(id)
}

func (a *App) dockNext() {
	if id, ok := a.session.Dock.Next(); ok {
		a.router.SetFocused(id)
		a.session.BumpChrome()
	}
}

func (a *App) dockPrev() {
	if id, ok := a.session.Dock.Prev(); ok {
		a.router.SetFocused(id)
		a.session.BumpChrome()
	}
}

// handleDockClick routes a click within the dock rect: the tab strip
// selects a tab (and begins a pending tab drag), the content area below
// it just focuses whatever's already active.
func (a *App) handleDockClick(dock layout.Rect, ev input.Event) bool {
	if !dock.Contains(ev.Position) {
		return false
	}
	if ev.Position.Y < dock.Y+a.dec.TabBarHeight {
		if hit := a.dockHitMap(dock).Test(int(ev.Position.X), int(ev.Position.Y)); hit != nil {
			id := hit.Data.(pane.Id)
			if hit.ID == "close" {
				a.closeDockTab(id)
				return true
			}
			a.session.Dock.SetActive(id)
			a.router.SetFocused(id)
			a.session.BumpChrome()
			a.drag.PressTabBar(id, ev.Position, true)
		}
		return true
	}
	if active, ok := a.session.Dock.Active(); ok {
		a.router.SetFocused(active)
		a.routeToPane(active, ev)
	}
	return true
}

// handleDragMove advances the drag-drop state machine on every pointer
// move once a drag has begun (PressTabBar was called on the preceding
// click), recomputing the drop target against the current tiling rects
// and dock rect.
func (a *App) handleDragMove(pos layout.Vec2) {
	if a.drag.Phase() == dragdrop.Idle {
		return
	}
	tiling := a.tilingArea()
	_, dockRect, dockVisible := a.splitDockArea()
	a.drag.Move(pos, func(p layout.Vec2) (dragdrop.DropTarget, bool) {
		return dragdrop.ComputeTarget(p, a.paneRects, tiling, dragdrop.DockRect{Rect: dockRect, Visible: dockVisible}, a.drag.Source(), a.drag.FromDock(), a.isTerminalPane)
	})
	a.session.BumpChrome()
}

// handleDragRelease resolves a pending or active drag on mouse-up: a
// completed drag applies the structural mutation (tree<->tree move, or
// tree<->dock transfer); a release before crossing the drag threshold is
// an ordinary click, already handled by the press.
func (a *App) handleDragRelease() {
	// Source/FromDock reset when Release returns the machine to Idle, so
	// they must be read first.
	source := a.drag.Source()
	fromDock := a.drag.FromDock()
	result := a.drag.Release()
	if !result.Applied {
		return
	}
	target := result.Target

	switch {
	case target.IsDock:
		a.moveToDock(source, fromDock)
	case fromDock:
		a.moveFromDockToTree(source, target)
	default:
		if target.PaneID == 0 {
			a.session.Tree.MovePaneToRoot(source, target.Zone)
		} else {
			a.session.Tree.MovePane(source, target.PaneID, target.Zone)
		}
	}
	a.session.BumpChrome()
}

func (a *App) moveToDock(source pane.Id, alreadyInDock bool) {
	if alreadyInDock {
		return
	}
	a.session.Tree.Remove(source)
	a.session.Dock.PushTab(source)
}

func (a *App) moveFromDockToTree(source pane.Id, target dragdrop.DropTarget) bool {
	a.session.Dock.RemoveTab(source)
	if target.PaneID == 0 {
		return a.session.Tree.InsertAtRoot(source, target.Zone)
	}
	dir, insertFirst, ok := zoneInsertDirection(target.Zone)
	if !ok {
		return a.session.Tree.InsertAtRoot(source, target.Zone)
	}
	return a.session.Tree.Insert(target.PaneID, source, dir, insertFirst)
}

// zoneInsertDirection maps a drop zone onto the Direction/insertFirst
// pair layout.Tree.Insert expects, mirroring zoneDirection's private
// logic in internal/layout since a dock->tree transfer needs to call
// Insert directly (MovePane assumes the source is already a tree leaf).
func zoneInsertDirection(zone layout.Zone) (dir layout.Direction, insertFirst, ok bool) {
	switch zone {
	case layout.ZoneLeft:
		return layout.Horizontal, true, true
	case layout.ZoneRight:
		return layout.Horizontal, false, true
	case layout.ZoneTop:
		return layout.Vertical, true, true
	case layout.ZoneBottom:
		return layout.Vertical, false, true
	default:
		return 0, false, false
	}
}

// hitTiledTabBar reports which tiled pane's tab-bar strip (the top
// a.dec.TabBarHeight of its rect) pos lands on, for starting a tab/pane
// drag from a split pane rather than the dock.
func (a *App) hitTiledTabBar(pos layout.Vec2) (pane.Id, bool) {
	for _, pr := range a.paneRects {
		bar := layout.Rect{X: pr.Rect.X, Y: pr.Rect.Y, Width: pr.Rect.Width, Height: a.dec.TabBarHeight}
		if bar.Contains(pos) {
			return pr.Id, true
		}
	}
	return 0, false
}

func (a *App) isTerminalPane(id pane.Id) bool {
	content, ok := a.session.Registry.Get(id)
	if !ok {
		return false
	}
	return content.Kind() == pane.KindTerminal
}

// paintDock draws the dock's tab strip and its active tab's content,
// reusing the same chrome/grid rect-and-glyph idiom paintPaneChrome and
// paintPaneGrid use for tiled panes.
func (a *App) paintDock(dl *render.DrawList, dock layout.Rect, raster render.GlyphRaster, atlasReset uint64) {
	tabs := a.session.Dock.Tabs()
	active, hasActive := a.session.Dock.Active()

	dl.Rects[render.LayerChromeRect] = append(dl.Rects[render.LayerChromeRect], render.RectInstance{
		X: dock.X, Y: dock.Y, W: dock.Width, H: a.dec.TabBarHeight, Color: a.palette.Muted,
	})
	for i, id := range tabs {
		r := a.dockTabRect(dock, i)
		content, ok := a.session.Registry.Get(id)
		title := "tab"
		if ok {
			title = content.Title()
		}
		if dc, ok := content.(interface{ IsDirty() bool }); ok && dc.IsDirty() {
			title = "* " + title
		}
		fg := a.palette.Foreground
		if hasActive && active == id {
			fg = a.palette.Primary
			dl.Rects[render.LayerChromeRect] = append(dl.Rects[render.LayerChromeRect], render.RectInstance{
				X: r.X, Y: r.Y, W: r.Width, H: r.Height, Color: a.palette.Selection,
			})
		}
		spans := [][]chromahl.StyledSpan{{{Text: title, Style: chromahl.TextStyle{Foreground: toChromaColor(fg)}}}}
		rects, glyphs := render.AssembleGrid(spans, a.cell, r.X+a.dec.Padding, r.Y, raster)
		dl.Rects[render.LayerChromeRect] = append(dl.Rects[render.LayerChromeRect], rects...)
		dl.Glyphs[render.LayerChromeGlyph] = append(dl.Glyphs[render.LayerChromeGlyph], glyphs...)

		closeSpans := [][]chromahl.StyledSpan{{{Text: "x", Style: chromahl.TextStyle{Foreground: toChromaColor(a.palette.Muted)}}}}
		_, closeGlyphs := render.AssembleGrid(closeSpans, a.cell, r.X+r.Width-closeButtonSize+a.dec.Padding, r.Y, raster)
		dl.Glyphs[render.LayerChromeGlyph] = append(dl.Glyphs[render.LayerChromeGlyph], closeGlyphs...)
	}
	dl.Rects[render.LayerChromeRect] = append(dl.Rects[render.LayerChromeRect], borderRects(dock, a.palette.Border, 1)...)

	if !hasActive {
		return
	}
	content, ok := a.session.Registry.Get(active)
	if !ok {
		return
	}
	contentY := dock.Y + a.dec.TabBarHeight
	contentX := dock.X + a.dec.Padding

	if rects, glyphs, hit := a.renderer.Grids.BeginPaneGrid(active, content.Generation(), atlasReset); hit {
		dl.Rects[render.LayerGridRect] = append(dl.Rects[render.LayerGridRect], rects...)
		dl.Glyphs[render.LayerGridGlyph] = append(dl.Glyphs[render.LayerGridGlyph], glyphs...)
		return
	}

	var rects []render.RectInstance
	var glyphs []render.GlyphInstance
	switch c := content.(type) {
	case *editor.Pane:
		visibleRows := int((dock.Height - a.dec.TabBarHeight) / a.cell.Height)
		c.State().EnsureCursorVisible(visibleRows)
		lines := c.State().VisibleHighlightedLines(visibleRows)
		rects, glyphs = render.AssembleGrid(lines, a.cell, contentX, contentY, raster)
	case *diffpane.Pane:
		rects, glyphs = a.assembleDiffGrid(c, contentX, contentY, raster)
	}
	a.renderer.Grids.EndPaneGrid(active, content.Generation(), atlasReset, rects, glyphs)
	dl.Rects[render.LayerGridRect] = append(dl.Rects[render.LayerGridRect], rects...)
	dl.Glyphs[render.LayerGridGlyph] = append(dl.Glyphs[render.LayerGridGlyph], glyphs...)
}
