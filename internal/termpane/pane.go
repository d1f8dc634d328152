package termpane

import (
	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// SelectionPoint is one endpoint of a terminal selection, in grid
// coordinates (row is backend-global: negative indexes scrollback).
type SelectionPoint struct {
	Row, Col int
}

// Pane wraps a Backend with the host-side concerns the layout/render
// layers need: a selection, a search overlay (reusing editor.SearchState
// so the overlay renderer has one code path for both editor and
// terminal search), and the chrome generation gate for tab bar / focus
// border redraws that aren't the grid's own content.
type Pane struct {
	id      pane.Id
	backend Backend
	title   string

	selecting bool
	selStart  SelectionPoint
	selEnd    SelectionPoint

	search         *editor.SearchState
	chromeGen      uint64
	lastGridGen    uint64
}

// New wraps backend as a pane with the given display title.
func New(id pane.Id, backend Backend, title string) *Pane {
	return &Pane{id: id, backend: backend, title: title, search: editor.NewSearchState()}
}

func (p *Pane) Kind() pane.Kind { return pane.KindTerminal }
func (p *Pane) Title() string  { return p.title }

// Generation is the pane's content generation: it tracks the backend's
// own grid generation (content) joined with the chrome generation (tab
// highlight, search bar visibility) since either can make a cached draw
// list stale.
func (p *Pane) Generation() uint64 {
	return p.backend.GridGeneration() + p.chromeGen
}

func (p *Pane) Close() {
	_ = p.backend.Close()
}

// Backend exposes the underlying terminal backend for the render layer.
func (p *Pane) Backend() Backend { return p.backend }

// Backspace writes the terminal's erase-character sequence, satisfying
// internal/ime's BackspaceEmitter contract for replacement-range commits.
func (p *Pane) Backspace() {
	_, _ = p.backend.Write([]byte{0x7f})
}

// InsertText writes s to the PTY as if typed, satisfying internal/ime's
// TextInserter contract for IME commits.
func (p *Pane) InsertText(s string) {
	_, _ = p.backend.Write([]byte(s))
}

// BeginSelection starts a drag-selection at a grid point.
func (p *Pane) BeginSelection(pt SelectionPoint) {
	p.selecting = true
	p.selStart = pt
	p.selEnd = pt
	p.chromeGen++
}

// ExtendSelection updates the selection's live endpoint during a drag.
func (p *Pane) ExtendSelection(pt SelectionPoint) {
	if !p.selecting {
		return
	}
	p.selEnd = pt
	p.chromeGen++
}

// EndSelection freezes the current selection.
func (p *Pane) EndSelection() {
	p.selecting = false
}

// ClearSelection drops any active selection.
func (p *Pane) ClearSelection() {
	if p.selStart == p.selEnd && !p.selecting {
		return
	}
	p.selecting = false
	p.selStart = SelectionPoint{}
	p.selEnd = SelectionPoint{}
	p.chromeGen++
}

// Selection returns the normalized (start before end) selection range,
// and whether one is active.
func (p *Pane) Selection() (start, end SelectionPoint, ok bool) {
	if p.selStart == p.selEnd {
		return SelectionPoint{}, SelectionPoint{}, false
	}
	if rowColLess(p.selEnd, p.selStart) {
		return p.selEnd, p.selStart, true
	}
	return p.selStart, p.selEnd, true
}

func rowColLess(a, b SelectionPoint) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// Search exposes the pane's search overlay state.
func (p *Pane) Search() *editor.SearchState { return p.search }

// ExecuteSearch runs the pane's pending query against the backend's
// scrollback+visible text, preserving the current match position the
// way editor.ExecuteSearch does for buffers.
func (p *Pane) ExecuteSearch() {
	backendMatches := p.backend.Search(p.search.Query)
	matches := make([]editor.Match, len(backendMatches))
	for i, m := range backendMatches {
		matches[i] = editor.Match{Line: m.Row, Col: m.Col, Len: m.Len}
	}
	p.search.SetMatches(matches)
	p.chromeGen++
}
