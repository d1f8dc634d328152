package editor

import (
	"testing"

	"github.com/mosaicterm/mosaic/internal/buffer"
)

func makeTestBuffer(lines []string) *buffer.Buffer {
	b := buffer.New()
	b.InsertText(buffer.Position{}, joinForTest(lines))
	return b
}

func joinForTest(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func TestMoveUpFromFirstLineStays(t *testing.T) {
	b := makeTestBuffer([]string{"hello", "world"})
	c := NewCursor()
	c.MoveUp(b)
	if c.Position != (buffer.Position{Line: 0, Col: 0}) {
		t.Fatalf("want cursor to stay at (0,0), got %v", c.Position)
	}
}

func TestMoveDownWrapsColToShorterLine(t *testing.T) {
	b := makeTestBuffer([]string{"hello", "hi"})
	c := NewCursor()
	c.Position.Col = 4
	c.DesiredCol = 4
	c.MoveDown(b)
	if c.Position != (buffer.Position{Line: 1, Col: 2}) {
		t.Fatalf("want cursor at (1,2), got %v", c.Position)
	}
	if c.DesiredCol != 4 {
		t.Fatalf("want desired col preserved at 4, got %d", c.DesiredCol)
	}
}

func TestMoveLeftWrapsToPrevLine(t *testing.T) {
	b := makeTestBuffer([]string{"abc", "def"})
	c := NewCursor()
	c.Position = buffer.Position{Line: 1, Col: 0}
	c.MoveLeft(b)
	if c.Position != (buffer.Position{Line: 0, Col: 3}) {
		t.Fatalf("want cursor at (0,3), got %v", c.Position)
	}
}

func TestMoveRightWrapsToNextLine(t *testing.T) {
	b := makeTestBuffer([]string{"ab", "cd"})
	c := NewCursor()
	c.Position = buffer.Position{Line: 0, Col: 2}
	c.MoveRight(b)
	if c.Position != (buffer.Position{Line: 1, Col: 0}) {
		t.Fatalf("want cursor at (1,0), got %v", c.Position)
	}
}

func TestMoveCrossesCombiningSequenceAsOneStep(t *testing.T) {
	// "e" + COMBINING ACUTE ACCENT is one grapheme cluster (3 bytes).
	b := makeTestBuffer([]string{"e\u0301x"})
	c := NewCursor()
	c.MoveRight(b)
	if c.Position.Col != 3 {
		t.Fatalf("want cursor past the combining sequence at col 3, got %d", c.Position.Col)
	}
	c.MoveRight(b)
	if c.Position.Col != 4 {
		t.Fatalf("want col 4 after 'x', got %d", c.Position.Col)
	}
	c.MoveLeft(b)
	c.MoveLeft(b)
	if c.Position.Col != 0 {
		t.Fatalf("want col 0 after stepping back over both clusters, got %d", c.Position.Col)
	}
}

func TestPageUpAndDown(t *testing.T) {
	b := makeTestBuffer([]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"})
	c := NewCursor()
	c.Position = buffer.Position{Line: 5, Col: 0}
	c.MovePageUp(b, 3)
	if c.Position.Line != 3 {
		t.Fatalf("want line 3 after page up, got %d", c.Position.Line)
	}
	c.MovePageDown(b, 3)
	if c.Position.Line != 5 {
		t.Fatalf("want line 5 after page down, got %d", c.Position.Line)
	}
}
