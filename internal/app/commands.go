package app

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mosaicterm/mosaic/internal/diffpane"
	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/input"
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
	"github.com/mosaicterm/mosaic/internal/termpane"
)

// dispatch runs a command resolved from the "global" keymap context.
func (a *App) dispatch(cmd string) {
	switch cmd {
	case "split-horizontal":
		a.split(layout.Horizontal)
	case "split-vertical":
		a.split(layout.Vertical)
	case "close-pane":
		a.closeFocused()
	case "zoom-toggle":
		a.toggleZoom()
	case "nav-left":
		a.navigate(input.DirLeft)
	case "nav-right":
		a.navigate(input.DirRight)
	case "nav-up":
		a.navigate(input.DirUp)
	case "nav-down":
		a.navigate(input.DirDown)
	case "dock-next":
		a.dockNext()
	case "dock-prev":
		a.dockPrev()
	case "focus-history-back":
		if id, ok := a.router.FocusBack(); ok {
			a.session.BumpChrome()
			_ = id
		}
	case "focus-history-forward":
		if id, ok := a.router.FocusForward(); ok {
			a.session.BumpChrome()
			_ = id
		}
	case "file-finder":
		a.openFileFinder()
	case "new-file":
		a.openEditor("")
	case "save":
		a.saveFocused()
	case "undo":
		a.withEditor(func(s *editor.State) { s.Undo() })
	case "redo":
		a.withEditor(func(s *editor.State) { s.Redo() })
	case "find":
		a.withEditor(func(s *editor.State) { s.Search.Visible = true })
	case "open-diff":
		a.openDiffPane()
	case "copy-visible-text":
		if err := a.CopyVisibleText(); err != nil {
			a.setStatus("copy failed: "+err.Error(), true, 3*time.Second)
		} else {
			a.setStatus("copied", false, 2*time.Second)
		}
	default:
		if len(cmd) >= len("focus-area-") && cmd[:len("focus-area-")] == "focus-area-" {
			a.focusArea(cmd[len("focus-area-"):])
			return
		}
	}
}

// dispatchPaneLocal runs a command resolved from a pane-kind-specific
// keymap context (editor/terminal).
func (a *App) dispatchPaneLocal(content pane.Content, cmd string) {
	switch c := content.(type) {
	case *editor.Pane:
		switch cmd {
		case "find-next":
			c.State().RunSearch()
			c.State().FindNext()
		case "find-prev":
			c.State().FindPrev()
		case "toggle-comment":
			// Needs per-language comment-token lookup beyond chromahl's
			// current syntax-detection surface; left unimplemented.
		case "markdown-preview":
			a.toggleMarkdownPreview(c.State())
		}
	case *termpane.Pane:
		switch cmd {
		case "copy-selection":
			if err := a.copyTerminalSelection(c); err != nil {
				a.setStatus("copy failed: "+err.Error(), true, 3*time.Second)
			}
		case "paste":
			if err := a.pasteIntoTerminal(c); err != nil {
				a.setStatus("paste failed: "+err.Error(), true, 3*time.Second)
			}
		}
	}
	a.session.BumpContent()
}

func (a *App) split(dir layout.Direction) {
	focused, ok := a.router.Focused()
	if !ok {
		return
	}
	content, ok := a.session.Registry.Get(focused)
	if !ok {
		return
	}
	// The registry is the id authority for every pane, tiled or docked;
	// Tree.AllocId only serves trees used standalone in tests.
	newID := a.session.Registry.Alloc()
	sibling, err := a.cloneLikeSibling(content, newID)
	if err != nil {
		a.setStatus("split failed: "+err.Error(), true, 4*time.Second)
		return
	}
	if !a.session.Tree.Insert(focused, newID, dir, false) {
		return
	}
	a.zoomed = false
	a.session.Registry.Put(newID, sibling)
	a.router.SetFocused(newID)
	a.session.BumpChrome()
}

// cloneLikeSibling opens a new pane of the same kind as sibling when
// splitting: a fresh shell for a terminal split, a fresh untitled buffer
// for an editor split.
func (a *App) cloneLikeSibling(sibling pane.Content, newID pane.Id) (pane.Content, error) {
	switch sibling.(type) {
	case *editor.Pane:
		return editor.NewPane(newID, editor.NewEmpty()), nil
	default:
		backend, err := termpane.NewVTBackend("", nil, 80, 24)
		if err != nil {
			return nil, err
		}
		backend.SetWake(a.win.Invalidate)
		return termpane.New(newID, backend, "terminal"), nil
	}
}

// toggleZoom flips the focused tiled pane between its tree rect and the
// full tiling area. Dock tabs already have the dock to themselves, so
// zoom only applies to panes in the split tree.
func (a *App) toggleZoom() {
	if a.zoomed {
		a.zoomed = false
		a.session.BumpChrome()
		return
	}
	focused, ok := a.router.Focused()
	if !ok || a.session.Dock.Contains(focused) {
		return
	}
	a.zoomed = true
	a.session.BumpChrome()
}

// computePaneRects is ComputeRects with the zoom override applied: a
// zoomed pane is the only rect, occupying the whole tiling area.
func (a *App) computePaneRects(tiling layout.Rect) []layout.PaneRect {
	if a.zoomed {
		if id, ok := a.router.Focused(); ok && !a.session.Dock.Contains(id) {
			return []layout.PaneRect{{Id: id, Rect: tiling}}
		}
		a.zoomed = false
	}
	return a.session.Tree.ComputeRects(tiling)
}

func (a *App) closeFocused() {
	focused, ok := a.router.Focused()
	if !ok {
		return
	}
	if a.session.Dock.Contains(focused) {
		a.closeDockTab(focused)
		return
	}
	if c, ok := a.session.Registry.Get(focused); ok {
		if dc, ok := c.(interface{ IsDirty() bool }); ok && dc.IsDirty() {
			a.openQuitConfirm(focused)
			return
		}
	}
	a.removePane(focused)
}

func (a *App) removePane(id pane.Id) {
	a.zoomed = false
	if a.session.Dock.Contains(id) {
		a.session.Dock.RemoveTab(id)
	} else {
		a.session.Tree.Remove(id)
	}
	a.session.Registry.Remove(id)
	delete(a.imeSinks, id)
	a.renderer.Grids.Remove(id)
	if active, ok := a.session.Dock.Active(); ok {
		a.router.SetFocused(active)
	} else if remaining := a.session.Tree.PaneIds(); len(remaining) > 0 {
		a.router.SetFocused(remaining[0])
	}
	a.session.BumpChrome()
}

// navigate moves focus one pane over in dir. By the axis-isolation
// rule, when focus is on a dock tab, Left/Right cycle the
// dock's own tab list instead of reaching into the split tree; Up/Down
// fall through to ordinary directional navigation (there's nothing above
// or below a dock tab to navigate to, but the rule still names them as
// "falls through", so they're left to the normal path below, which will
// simply find no candidate).
func (a *App) navigate(dir input.Direction) {
	focused, ok := a.router.Focused()
	if !ok || a.area.Width == 0 {
		return
	}
	if a.session.Dock.Contains(focused) {
		switch dir {
		case input.DirLeft:
			a.dockPrev()
			return
		case input.DirRight:
			a.dockNext()
			return
		}
	}

	rects := a.computePaneRects(a.tilingArea())
	var current layout.Rect
	for _, r := range rects {
		if r.Id == focused {
			current = r.Rect
		}
	}
	if id, ok := input.Navigate(current, focused, rects, dir); ok {
		a.router.SetFocused(id)
		a.session.BumpChrome()
	}
}

func (a *App) focusArea(n string) {
	rects := a.session.Tree.ComputeRects(a.tilingArea())
	a.zoomed = false
	idx := int(n[0] - '1')
	if idx < 0 || idx >= len(rects) {
		return
	}
	a.router.SetFocused(rects[idx].Id)
	a.session.BumpChrome()
}

func (a *App) withEditor(fn func(*editor.State)) {
	content, ok := a.focusedContent()
	if !ok {
		return
	}
	if ep, ok := content.(*editor.Pane); ok {
		fn(ep.State())
		a.session.BumpContent()
	}
}

func (a *App) saveFocused() {
	content, ok := a.focusedContent()
	if !ok {
		return
	}
	ep, ok := content.(*editor.Pane)
	if !ok {
		return
	}
	if err := ep.State().Save(); err != nil {
		a.setStatus("save failed: "+err.Error(), true, 4*time.Second)
		return
	}
	msg := "saved"
	if path, ok := ep.State().Buffer.Path(); ok {
		if fi, err := os.Stat(path); err == nil {
			msg = "saved " + humanize.Bytes(uint64(fi.Size()))
		}
	}
	a.setStatus(msg, false, 2*time.Second)
}

// openEditor opens path (or a fresh untitled buffer, for path == "") as a
// new dock tab. Editors live in the dock, disjoint from the split layout
// tree; "split" still lets a user tile an editor that's
// already in the tree, but new files always land in the dock.
func (a *App) openEditor(path string) {
	var st *editor.State
	var err error
	if path == "" {
		st = editor.NewEmpty()
	} else {
		st, err = editor.Open(path)
		if err != nil {
			a.setStatus("open failed: "+err.Error(), true, 4*time.Second)
			return
		}
	}
	newID := a.session.Registry.Alloc()
	a.openInDock(newID, editor.NewPane(newID, st))
}

// ensureDiffPane lazily creates the single diff pane for this project,
// reusing it across file-finder/refresh calls rather than one per open.
func (a *App) ensureDiffPane() *diffpane.Pane {
	if a.hasDiff {
		if c, ok := a.session.Registry.Get(a.diffPaneID); ok {
			if dp, ok := c.(*diffpane.Pane); ok {
				return dp
			}
		}
	}
	id := a.session.Registry.Alloc()
	dp := diffpane.New(id, a.workDir)
	a.session.Registry.Put(id, dp)
	a.diffPaneID = id
	a.hasDiff = true
	return dp
}

// openDiffPane surfaces the project's diff pane in the dock, creating it
// on first use and simply refocusing it on subsequent calls.
func (a *App) openDiffPane() {
	dp := a.ensureDiffPane()
	if err := dp.Refresh(); err != nil {
		a.setStatus("diff refresh failed: "+err.Error(), true, 4*time.Second)
	}
	if a.histCache != nil {
		if entries, err := a.histCache.LoadHistory(a.workDir, 30); err == nil {
			dp.SetHistory(entries)
		}
	}
	id := a.diffPaneID
	if a.session.Dock.Contains(id) {
		a.session.Dock.SetActive(id)
	} else {
		a.session.Dock.PushTab(id)
	}
	a.router.SetFocused(id)
	a.session.BumpChrome()
}
