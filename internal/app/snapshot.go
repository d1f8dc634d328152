package app

import (
	"os"

	"github.com/mosaicterm/mosaic/internal/buffer"
	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/pane"
	"github.com/mosaicterm/mosaic/internal/session"
)

// SnapshotState captures the reopenable parts of the current session:
// every dock tab (with viewport state for editors) and every tiled pane's
// kind. Live content is not captured; editors reload from disk and
// terminals get a fresh shell.
func (a *App) SnapshotState() session.Snapshot {
	var snap session.Snapshot
	if id, ok := a.router.Focused(); ok {
		snap.Focus = id
	}
	for _, id := range a.session.Dock.Tabs() {
		content, ok := a.session.Registry.Get(id)
		if !ok {
			continue
		}
		ps := session.PaneSnapshot{Id: id, Kind: content.Kind().String()}
		if ep, ok := content.(*editor.Pane); ok {
			st := ep.State()
			path, hasPath := st.Buffer.Path()
			if !hasPath {
				// Untitled buffers have nothing on disk to reopen from.
				continue
			}
			ps.Path = path
			ps.ScrollOffset = st.ScrollOffset()
			ps.HScrollOffset = st.HScrollOffset()
			ps.CursorLine = st.Cursor.Position.Line
			ps.CursorCol = st.Cursor.Position.Col
		}
		snap.Panes = append(snap.Panes, ps)
	}
	for _, id := range a.session.Tree.PaneIds() {
		content, ok := a.session.Registry.Get(id)
		if !ok {
			continue
		}
		snap.Panes = append(snap.Panes, session.PaneSnapshot{Id: id, Kind: content.Kind().String()})
	}
	return snap
}

// RestoreSnapshot reopens the snapshot's editor tabs whose files still
// exist, restoring each one's cursor and viewport. Pane ids are
// reallocated, so the snapshot's focus id is not carried over; the last
// reopened tab ends up focused the way any newly opened tab would.
func (a *App) RestoreSnapshot(snap session.Snapshot) {
	for _, ps := range snap.Panes {
		if ps.Kind != pane.KindEditor.String() || ps.Path == "" {
			continue
		}
		if _, err := os.Stat(ps.Path); err != nil {
			continue
		}
		st, err := editor.Open(ps.Path)
		if err != nil {
			a.logger.Warn("session restore: reopen failed", "path", ps.Path, "err", err)
			continue
		}
		st.Cursor.SetPosition(buffer.Position{Line: ps.CursorLine, Col: ps.CursorCol})
		st.Cursor.Clamp(st.Buffer)
		st.RestoreView(ps.ScrollOffset, ps.HScrollOffset)
		id := a.session.Registry.Alloc()
		a.openInDock(id, editor.NewPane(id, st))
	}
}
