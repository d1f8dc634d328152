// Package termpane wraps a terminal emulator backend into a pane:
// selection, search over scrollback, and the chrome/content generation
// counters the renderer reads to decide what's stale.
package termpane

// Cell is one character cell of a terminal grid.
type Cell struct {
	Char       rune
	Bold       bool
	Italic     bool
	Underline  bool
	FG, BG     uint32 // packed RGBA, 0 = use the pane's default palette color
}

// Grid is a read-only snapshot of a terminal's visible contents plus
// however much scrollback the backend chooses to expose for search.
type Grid struct {
	Cols, Rows int
	Cells      [][]Cell // Rows slices of Cols cells each
	Scrollback [][]Cell // oldest first, not included in Cells
}

// Cursor is the terminal's own text cursor, separate from any host UI
// cursor; (Col, Row) are in grid coordinates, Visible reflects DECTCEM.
type Cursor struct {
	Col, Row int
	Visible  bool
}

// Backend is the consumed interface for the
// terminal emulator: write bytes in, drain output, read back a grid.
// Exact ANSI and palette handling live entirely behind this interface.
type Backend interface {
	Write(p []byte) (int, error)
	// Process drains any output the backend has buffered since the last
	// call, applying it to internal grid state. It never blocks.
	Process() error
	Grid() Grid
	Resize(cols, rows int) error
	Cursor() Cursor
	// GridGeneration ticks whenever Process changed the visible grid.
	GridGeneration() uint64
	// Search returns every scrollback+visible match for query,
	// case-insensitive, as (row, col, length) in backend-global row
	// coordinates (negative rows index into scrollback).
	Search(query string) []Match
	ScrollDisplay(delta int)
	Close() error
}

// Match is one search hit within a terminal's scrollback+visible text.
type Match struct {
	Row, Col, Len int
}
