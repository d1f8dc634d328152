package editor

import (
	"path/filepath"

	"github.com/mosaicterm/mosaic/internal/pane"
)

// Pane wraps a *State as a pane.Content, the editor-side counterpart of
// termpane.Pane: it owns nothing the State doesn't already track, it
// just exposes the Kind/Title/Generation/Close surface the layout and
// render layers address panes through, plus IsDirty for the tab bar's
// dirty-dot indicator (pane.DirtyConfirmer).
type Pane struct {
	id    pane.Id
	state *State
}

// NewPane wraps state as a pane.Content with the given id.
func NewPane(id pane.Id, state *State) *Pane {
	return &Pane{id: id, state: state}
}

func (p *Pane) Kind() pane.Kind { return pane.KindEditor }

// Title is the open file's base name, or "untitled" for a buffer with no
// backing path yet.
func (p *Pane) Title() string {
	if path, ok := p.state.Buffer.Path(); ok {
		return filepath.Base(path)
	}
	return "untitled"
}

func (p *Pane) Generation() uint64 { return p.state.Generation() }

func (p *Pane) Close() {}

// IsDirty reports whether the buffer has unsaved edits.
func (p *Pane) IsDirty() bool { return p.state.Buffer.IsModified() }

// State exposes the wrapped editor state for the input router and
// renderer.
func (p *Pane) State() *State { return p.state }
