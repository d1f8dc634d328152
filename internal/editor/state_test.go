package editor

import "testing"

func TestEnsureCursorVisibleVScrollsMinimally(t *testing.T) {
	s := NewEmpty()
	for i := 0; i < 20; i++ {
		s.Enter()
	}
	s.Cursor.Position.Line = 15
	s.EnsureCursorVisible(10)
	if s.ScrollOffset() != 6 {
		t.Fatalf("want scroll offset 6 so line 15 is the last visible row, got %d", s.ScrollOffset())
	}

	s.Cursor.Position.Line = 2
	s.EnsureCursorVisible(10)
	if s.ScrollOffset() != 2 {
		t.Fatalf("want scroll offset to drop to cursor's line 2, got %d", s.ScrollOffset())
	}
}

func TestInsertAndUndoThroughState(t *testing.T) {
	s := NewEmpty()
	s.InsertChar('h')
	s.InsertChar('i')
	if got, _ := s.Buffer.Line(0); got != "hi" {
		t.Fatalf("want line 'hi', got %q", got)
	}
	s.Undo()
	s.Undo()
	if got, _ := s.Buffer.Line(0); got != "" {
		t.Fatalf("want line restored to empty, got %q", got)
	}
	if s.Buffer.IsModified() {
		t.Fatalf("want buffer unmodified after undoing back to its initial snapshot")
	}
}

func TestScrollDownClampsToLastLine(t *testing.T) {
	s := NewEmpty()
	s.Enter()
	s.Enter()
	s.ScrollDown(100)
	if s.ScrollOffset() != s.Buffer.LineCount()-1 {
		t.Fatalf("want scroll clamped to last line %d, got %d", s.Buffer.LineCount()-1, s.ScrollOffset())
	}
}
