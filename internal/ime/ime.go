// Package ime implements per-pane input method isolation: each pane that
// accepts text input owns a Sink holding the IME's in-progress
// composition (marked text) and a mirror of recently committed text, so
// the platform's replacement-range queries can be answered without
// re-reading the pane's buffer. Grounded on the commit/preedit/focus
// contract below; there is no equivalent concept since
// a terminal UI has no IME surface of its own.
package ime

import "unicode/utf16"

// Range is a half-open span, in UTF-16 code units, matching the
// platform text-input API's addressing.
type Range struct {
	Location, Length int
}

// Event is one message the platform's text-input bridge delivers to a
// focused pane's Sink.
type Event struct {
	Kind Kind

	// Commit
	Text             string
	ReplacementRange Range
	HasReplacement   bool

	// Preedit
	PreeditText   string
	PreeditCursor int

	// EnabledChanged
	Enabled bool
}

type Kind int

const (
	KindCommit Kind = iota
	KindPreedit
	KindEnabledChanged
	KindFocus
)

// BackspaceEmitter is how a Sink asks its pane's content to delete
// characters before a replacement-range commit; the pane (editor buffer
// or terminal backend) implements this however it already deletes text.
type BackspaceEmitter interface {
	Backspace()
}

// TextInserter is how a Sink asks its pane's content to insert the
// committed text.
type TextInserter interface {
	InsertText(s string)
}

// Sink is one pane's IME state.
type Sink struct {
	markedText    string
	committedText string // mirror of recently committed text, for replacement-range queries
	cursorArea    CursorArea
}

// CursorArea is the screen-space rect the candidate window should be
// anchored near, in window coordinates.
type CursorArea struct {
	X, Y, W, H float32
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// MarkedText returns the in-progress composition, for the top layer to
// render above the grid cursor with an underline.
func (s *Sink) MarkedText() string { return s.markedText }

// HasMarkedText reports whether a composition is in progress.
func (s *Sink) HasMarkedText() bool { return s.markedText != "" }

// SetCursorArea updates where the platform should anchor its candidate
// window; called whenever the pane's cursor moves or scrolls.
func (s *Sink) SetCursorArea(area CursorArea) {
	s.cursorArea = area
}

// CursorArea returns the sink's last-set cursor area.
func (s *Sink) CursorArea() CursorArea { return s.cursorArea }

// Handle applies ev to the sink, mutating content through backspace/text
// as the Commit contract requires. Preedit events never touch content.
func (s *Sink) Handle(ev Event, content interface {
	BackspaceEmitter
	TextInserter
}) {
	switch ev.Kind {
	case KindCommit:
		if ev.HasReplacement && ev.ReplacementRange.Length > 0 {
			// The platform addresses the replacement in UTF-16 units;
			// convert to a count of backspace presses over the committed
			// mirror so multi-unit runes (surrogate pairs) aren't
			// double-deleted.
			n := utf16DeleteCount(s.committedText, ev.ReplacementRange)
			for i := 0; i < n; i++ {
				content.Backspace()
			}
		}
		content.InsertText(ev.Text)
		s.markedText = ""
		s.committedText = appendCommitted(s.committedText, ev.Text)
	case KindPreedit:
		s.markedText = ev.PreeditText
	case KindEnabledChanged, KindFocus:
		// no content mutation; tracked by the platform bridge only.
	}
}

// CommitPreedit forces whatever composition is in progress to commit as
// plain text, used when focus is about to move to another pane so a
// half-composed syllable never re-surfaces somewhere else
// ("commit-before-refocus").
func (s *Sink) CommitPreedit(content TextInserter) {
	if s.markedText == "" {
		return
	}
	content.InsertText(s.markedText)
	s.committedText = appendCommitted(s.committedText, s.markedText)
	s.markedText = ""
}

func appendCommitted(mirror, text string) string {
	const maxMirrorRunes = 256
	joined := mirror + text
	r := []rune(joined)
	if len(r) > maxMirrorRunes {
		r = r[len(r)-maxMirrorRunes:]
	}
	return string(r)
}

// utf16DeleteCount converts a UTF-16 replacement range ending at the
// mirror's current length into a rune count, since Backspace operates
// rune-at-a-time on the pane's content.
func utf16DeleteCount(mirror string, rng Range) int {
	units := utf16.Encode([]rune(mirror))
	end := len(units)
	start := end - rng.Length
	if start < 0 {
		start = 0
	}
	runes := utf16.Decode(units[start:end])
	return len(runes)
}
