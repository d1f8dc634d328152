// Package editor orchestrates a buffer.Buffer with a cursor, scroll
// offsets, search state, and (via the chromahl and mdpreview
// subpackages) syntax highlighting and markdown preview.
package editor

import (
	"github.com/clipperhouse/uax29/v2/graphemes"

	"github.com/mosaicterm/mosaic/internal/buffer"
)

// Cursor tracks a position within a buffer plus the column it "wants" to
// be at, so moving up/down through short lines and back doesn't lose the
// original horizontal position.
type Cursor struct {
	Position   buffer.Position
	DesiredCol int
}

// NewCursor returns a cursor at the buffer origin.
func NewCursor() *Cursor {
	return &Cursor{}
}

func lineLen(b *buffer.Buffer, line int) int {
	l, ok := b.Line(line)
	if !ok {
		return 0
	}
	return len(l)
}

func clampToBoundary(b *buffer.Buffer, line, col int) int {
	l, ok := b.Line(line)
	if !ok {
		return 0
	}
	if col > len(l) {
		col = len(l)
	}
	return floorCharBoundary(l, col)
}

func (c *Cursor) MoveUp(b *buffer.Buffer) {
	if c.Position.Line > 0 {
		c.Position.Line--
		c.Position.Col = clampToBoundary(b, c.Position.Line, c.DesiredCol)
	}
}

func (c *Cursor) MoveDown(b *buffer.Buffer) {
	if c.Position.Line+1 < b.LineCount() {
		c.Position.Line++
		c.Position.Col = clampToBoundary(b, c.Position.Line, c.DesiredCol)
	}
}

// MoveLeft steps one grapheme cluster left, wrapping to the end of the
// previous line at column 0, so a combining sequence or emoji ZWJ run is
// crossed in one keystroke rather than rune by rune.
func (c *Cursor) MoveLeft(b *buffer.Buffer) {
	if c.Position.Col > 0 {
		l, _ := b.Line(c.Position.Line)
		col := c.Position.Col
		if col > len(l) {
			col = len(l)
		}
		c.Position.Col = prevGraphemeBoundary(l, col)
	} else if c.Position.Line > 0 {
		c.Position.Line--
		c.Position.Col = lineLen(b, c.Position.Line)
	}
	c.DesiredCol = c.Position.Col
}

// MoveRight steps one grapheme cluster right, wrapping to the start of
// the next line at end-of-line.
func (c *Cursor) MoveRight(b *buffer.Buffer) {
	lineLength := lineLen(b, c.Position.Line)
	if c.Position.Col < lineLength {
		l, _ := b.Line(c.Position.Line)
		c.Position.Col = nextGraphemeBoundary(l, c.Position.Col)
	} else if c.Position.Line+1 < b.LineCount() {
		c.Position.Line++
		c.Position.Col = 0
	}
	c.DesiredCol = c.Position.Col
}

func (c *Cursor) MoveHome() {
	c.Position.Col = 0
	c.DesiredCol = 0
}

func (c *Cursor) MoveEnd(b *buffer.Buffer) {
	c.Position.Col = lineLen(b, c.Position.Line)
	c.DesiredCol = c.Position.Col
}

func (c *Cursor) MovePageUp(b *buffer.Buffer, visibleRows int) {
	jump := visibleRows - 1
	if jump < 1 {
		jump = 1
	}
	c.Position.Line = saturatingSub(c.Position.Line, jump)
	c.Position.Col = clampToBoundary(b, c.Position.Line, c.DesiredCol)
}

func (c *Cursor) MovePageDown(b *buffer.Buffer, visibleRows int) {
	jump := visibleRows - 1
	if jump < 1 {
		jump = 1
	}
	maxLine := b.LineCount() - 1
	line := c.Position.Line + jump
	if line > maxLine {
		line = maxLine
	}
	c.Position.Line = line
	c.Position.Col = clampToBoundary(b, c.Position.Line, c.DesiredCol)
}

// Clamp keeps the cursor within valid buffer bounds, used defensively
// before any edit in case the buffer changed out from under it (e.g.
// after a reload).
func (c *Cursor) Clamp(b *buffer.Buffer) {
	if b.LineCount() == 0 {
		c.Position = buffer.Position{}
		return
	}
	if c.Position.Line > b.LineCount()-1 {
		c.Position.Line = b.LineCount() - 1
	}
	c.Position.Col = clampToBoundary(b, c.Position.Line, c.Position.Col)
}

// SetPosition moves the cursor to pos and syncs DesiredCol.
func (c *Cursor) SetPosition(pos buffer.Position) {
	c.Position = pos
	c.DesiredCol = pos.Col
}

func saturatingSub(a, b int) int {
	if b > a {
		return 0
	}
	return a - b
}

// prevGraphemeBoundary returns the start of the grapheme cluster ending
// at (or containing) byte offset col.
func prevGraphemeBoundary(s string, col int) int {
	g := graphemes.FromString(s)
	start := 0
	for g.Next() {
		end := start + len(g.Value())
		if end >= col {
			return start
		}
		start = end
	}
	return start
}

// nextGraphemeBoundary returns the end of the grapheme cluster starting
// at (or containing) byte offset col.
func nextGraphemeBoundary(s string, col int) int {
	g := graphemes.FromString(s)
	start := 0
	for g.Next() {
		end := start + len(g.Value())
		if end > col {
			return end
		}
		start = end
	}
	return len(s)
}

func isCharBoundary(s string, idx int) bool {
	if idx == 0 || idx == len(s) {
		return true
	}
	return s[idx]&0xC0 != 0x80
}

func floorCharBoundary(s string, idx int) int {
	if idx >= len(s) {
		return len(s)
	}
	if idx < 0 {
		return 0
	}
	i := idx
	for i > 0 && !isCharBoundary(s, i) {
		i--
	}
	return i
}
