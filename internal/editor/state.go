package editor

import (
	"github.com/mosaicterm/mosaic/internal/buffer"
	"github.com/mosaicterm/mosaic/internal/editor/chromahl"
)

// State is the orchestrator wrapping a buffer, its cursor, scroll
// offsets, and syntax highlighting for one open file.
type State struct {
	Buffer      *buffer.Buffer
	Cursor      *Cursor
	Search      *SearchState
	highlighter *chromahl.Highlighter

	scrollOffset  int
	hScrollOffset int
	generation    uint64
}

// NewEmpty returns editor state for an unsaved, empty document.
func NewEmpty() *State {
	return &State{
		Buffer:      buffer.New(),
		Cursor:      NewCursor(),
		Search:      NewSearchState(),
		highlighter: chromahl.New(),
	}
}

// Open loads path into a fresh editor state, detecting its syntax from
// the file extension.
func Open(path string) (*State, error) {
	b, err := buffer.FromFile(path)
	if err != nil {
		return nil, err
	}
	h := chromahl.New()
	h.DetectSyntax(path)
	return &State{Buffer: b, Cursor: NewCursor(), Search: NewSearchState(), highlighter: h}, nil
}

// Reload re-reads the backing file, clamping the cursor and scroll
// offset to remain valid rather than resetting them.
func (s *State) Reload() error {
	oldLineCount := s.Buffer.LineCount()
	if err := s.Buffer.Reload(); err != nil {
		return err
	}
	if s.Buffer.LineCount() != oldLineCount {
		s.Cursor.Clamp(s.Buffer)
		maxScroll := s.Buffer.LineCount() - 1
		if s.scrollOffset > maxScroll {
			s.scrollOffset = maxScroll
		}
	}
	s.generation++
	return nil
}

func (s *State) InsertChar(ch rune) {
	s.Cursor.Clamp(s.Buffer)
	s.Buffer.InsertChar(s.Cursor.Position, ch)
	s.Cursor.Position.Col += runeByteLen(ch)
	s.Cursor.DesiredCol = s.Cursor.Position.Col
	s.generation++
}

func (s *State) Backspace() {
	s.Cursor.Clamp(s.Buffer)
	pos := s.Buffer.Backspace(s.Cursor.Position)
	s.Cursor.SetPosition(pos)
	s.generation++
}

func (s *State) Delete() {
	s.Cursor.Clamp(s.Buffer)
	s.Buffer.DeleteChar(s.Cursor.Position)
	s.generation++
}

func (s *State) Enter() {
	s.Cursor.Clamp(s.Buffer)
	pos := s.Buffer.InsertNewline(s.Cursor.Position)
	s.Cursor.SetPosition(pos)
	s.generation++
}

func (s *State) Save() error {
	err := s.Buffer.Save()
	s.generation++
	return err
}

func (s *State) Undo() {
	if pos, ok := s.Buffer.Undo(); ok {
		s.Cursor.SetPosition(pos)
		s.generation++
	}
}

func (s *State) Redo() {
	if pos, ok := s.Buffer.Redo(); ok {
		s.Cursor.SetPosition(pos)
		s.generation++
	}
}

// SetCursorChar places the cursor at (line, charCol), converting the
// character index (e.g. from a mouse click) to a byte offset.
func (s *State) SetCursorChar(line, charCol int) {
	if line > s.Buffer.LineCount()-1 {
		line = s.Buffer.LineCount() - 1
	}
	lineStr, _ := s.Buffer.Line(line)
	byteCol := charIndexToByteOffset(lineStr, charCol)
	s.Cursor.SetPosition(buffer.Position{Line: line, Col: byteCol})
}

func charIndexToByteOffset(s string, charIdx int) int {
	count := 0
	for i := range s {
		if count == charIdx {
			return i
		}
		count++
	}
	return len(s)
}

func (s *State) ScrollUp(delta int) {
	prev := s.scrollOffset
	s.scrollOffset = saturatingSub(s.scrollOffset, delta)
	if s.scrollOffset != prev {
		s.generation++
	}
}

func (s *State) ScrollDown(delta int) {
	prev := s.scrollOffset
	maxScroll := s.Buffer.LineCount() - 1
	offset := s.scrollOffset + delta
	if offset > maxScroll {
		offset = maxScroll
	}
	s.scrollOffset = offset
	if s.scrollOffset != prev {
		s.generation++
	}
}

func (s *State) ScrollLeft(delta int) {
	prev := s.hScrollOffset
	s.hScrollOffset = saturatingSub(s.hScrollOffset, delta)
	if s.hScrollOffset != prev {
		s.generation++
	}
}

func (s *State) ScrollRight(delta int) {
	prev := s.hScrollOffset
	maxChars := s.Buffer.MaxLineChars()
	offset := s.hScrollOffset + delta
	if offset > maxChars {
		offset = maxChars
	}
	s.hScrollOffset = offset
	if s.hScrollOffset != prev {
		s.generation++
	}
}

// RestoreView sets the scroll offsets directly, clamped to the current
// buffer, used when reopening a pane from a session snapshot.
func (s *State) RestoreView(scroll, hscroll int) {
	maxScroll := s.Buffer.LineCount() - 1
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	if hscroll < 0 {
		hscroll = 0
	}
	s.scrollOffset = scroll
	s.hScrollOffset = hscroll
	s.generation++
}

func (s *State) ScrollOffset() int  { return s.scrollOffset }
func (s *State) HScrollOffset() int { return s.hScrollOffset }
func (s *State) Generation() uint64 { return s.generation }

// InsertText inserts text at the cursor as a single undo entry.
func (s *State) InsertText(text string) {
	s.Cursor.Clamp(s.Buffer)
	end := s.Buffer.InsertText(s.Cursor.Position, text)
	s.Cursor.SetPosition(end)
	s.generation++
}

// EnsureCursorVisible scrolls vertically so the cursor's line is within
// the viewport of visibleRows lines.
func (s *State) EnsureCursorVisible(visibleRows int) {
	if visibleRows == 0 {
		return
	}
	line := s.Cursor.Position.Line
	if line < s.scrollOffset {
		s.scrollOffset = line
	} else if line >= s.scrollOffset+visibleRows {
		s.scrollOffset = line - visibleRows + 1
	}
}

// EnsureCursorVisibleH scrolls horizontally so the cursor's column is
// within the viewport of visibleCols character columns.
func (s *State) EnsureCursorVisibleH(visibleCols int) {
	if visibleCols == 0 {
		return
	}
	line, _ := s.Buffer.Line(s.Cursor.Position.Line)
	byteCol := s.Cursor.Position.Col
	if byteCol > len(line) {
		byteCol = len(line)
	}
	charCol := byteOffsetToCharIndex(line, byteCol)
	if charCol < s.hScrollOffset {
		s.hScrollOffset = charCol
	} else if charCol >= s.hScrollOffset+visibleCols {
		s.hScrollOffset = charCol - visibleCols + 1
	}
}

func byteOffsetToCharIndex(s string, byteOffset int) int {
	count := 0
	for i := range s {
		if i >= byteOffset {
			break
		}
		count++
	}
	return count
}

// RunSearch re-executes the search box's query against the current
// buffer contents and jumps the cursor to the now-current match, if any.
func (s *State) RunSearch() {
	ExecuteSearch(s.Search, linesSlice(s.Buffer))
	s.jumpToCurrentMatch()
}

// FindNext advances to the next match and moves the cursor there.
func (s *State) FindNext() {
	s.Search.NextMatch()
	s.jumpToCurrentMatch()
}

// FindPrev moves to the previous match and moves the cursor there.
func (s *State) FindPrev() {
	s.Search.PrevMatch()
	s.jumpToCurrentMatch()
}

func (s *State) jumpToCurrentMatch() {
	m, ok := s.Search.Current()
	if !ok {
		return
	}
	s.SetCursorChar(m.Line, m.Col)
}

// VisibleHighlightedLines returns syntax-highlighted spans for the
// visible viewport, deferring to the highlighter's lazy per-range cache.
func (s *State) VisibleHighlightedLines(visibleRows int) [][]chromahl.StyledSpan {
	return s.highlighter.HighlightLines(linesSlice(s.Buffer), s.scrollOffset, visibleRows)
}

func linesSlice(b *buffer.Buffer) []string {
	out := make([]string, b.LineCount())
	for i := range out {
		l, _ := b.Line(i)
		out[i] = l
	}
	return out
}

func runeByteLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
