package app

import (
	"path/filepath"

	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// headerText is the label painted into a pane's chrome tab: for an editor
// pane with a backing file, that file's path relative to the working
// directory alone; otherwise (or when no relative path exists) the
// pane's own title. Folded
// into the existing per-pane chrome tab rather than a separate header
// strip, since every pane's own chrome bar already occupies that role.
func (a *App) headerText(content pane.Content) string {
	ep, ok := content.(*editor.Pane)
	if !ok {
		return content.Title()
	}
	path, hasPath := ep.State().Buffer.Path()
	if !hasPath {
		return content.Title()
	}
	rel, err := filepath.Rel(a.workDir, path)
	if err != nil {
		return content.Title()
	}
	return rel
}
