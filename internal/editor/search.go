package editor

import "strings"

// Match is a single search hit: line is a buffer line index, col a
// character column, len its length in characters.
type Match struct {
	Line, Col, Len int
}

// SearchState is the Cmd+F search box state for one pane: the query
// being typed, its cursor, the current match list, and which one is
// selected.
type SearchState struct {
	Query   string
	cursor  int // byte offset into Query
	Matches []Match
	current int // -1 if none
	Visible bool
}

// NewSearchState returns an empty, visible search box.
func NewSearchState() *SearchState {
	return &SearchState{current: -1, Visible: true}
}

func (s *SearchState) InsertChar(ch rune) {
	s.Query = s.Query[:s.cursor] + string(ch) + s.Query[s.cursor:]
	s.cursor += runeByteLen(ch)
}

func (s *SearchState) Backspace() {
	if s.cursor == 0 {
		return
	}
	prev := prevCharBoundary(s.Query, s.cursor)
	s.Query = s.Query[:prev] + s.Query[s.cursor:]
	s.cursor = prev
}

func (s *SearchState) DeleteChar() {
	if s.cursor >= len(s.Query) {
		return
	}
	next := nextCharBoundary(s.Query, s.cursor)
	s.Query = s.Query[:s.cursor] + s.Query[next:]
}

func (s *SearchState) MoveCursorLeft() {
	if s.cursor > 0 {
		s.cursor = prevCharBoundary(s.Query, s.cursor)
	}
}

func (s *SearchState) MoveCursorRight() {
	if s.cursor < len(s.Query) {
		s.cursor = nextCharBoundary(s.Query, s.cursor)
	}
}

func prevCharBoundary(s string, idx int) int {
	i := idx - 1
	for i > 0 && !isCharBoundary(s, i) {
		i--
	}
	return i
}

func nextCharBoundary(s string, idx int) int {
	i := idx + 1
	for i < len(s) && !isCharBoundary(s, i) {
		i++
	}
	return i
}

// Current returns the currently selected match, if any.
func (s *SearchState) Current() (Match, bool) {
	if s.current < 0 || s.current >= len(s.Matches) {
		return Match{}, false
	}
	return s.Matches[s.current], true
}

func (s *SearchState) NextMatch() {
	if len(s.Matches) == 0 {
		s.current = -1
		return
	}
	if s.current < 0 {
		s.current = 0
		return
	}
	s.current = (s.current + 1) % len(s.Matches)
}

func (s *SearchState) PrevMatch() {
	if len(s.Matches) == 0 {
		s.current = -1
		return
	}
	if s.current <= 0 {
		s.current = len(s.Matches) - 1
		return
	}
	s.current--
}

// SetMatches replaces the match list, keeping the previously selected
// match selected when one at the same (line, col) is still present,
// else selecting the first match. This is what keeps the visible
// highlight stable across re-executions.
func (s *SearchState) SetMatches(matches []Match) {
	prev, hadPrev := s.Current()
	s.Matches = matches
	s.current = -1
	if len(matches) == 0 {
		return
	}
	if hadPrev {
		for i, m := range matches {
			if m.Line == prev.Line && m.Col == prev.Col {
				s.current = i
				return
			}
		}
	}
	s.current = 0
}

// CurrentDisplay returns a string like "3/42" or "0/0".
func (s *SearchState) CurrentDisplay() string {
	if s.current < 0 {
		return "0/" + itoa(len(s.Matches))
	}
	return itoa(s.current+1) + "/" + itoa(len(s.Matches))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ExecuteSearch runs the current query over lines, finding
// case-insensitive, possibly overlapping matches, and tries to keep the
// previously selected match selected across re-execution (e.g. after the
// buffer changed but the old match text is still present at the same
// location).
func ExecuteSearch(s *SearchState, lines []string) {
	if s.Query == "" {
		s.SetMatches(nil)
		return
	}

	queryLower := strings.ToLower(s.Query)
	queryCharLen := len([]rune(s.Query))

	var found []Match
	for lineIdx, line := range lines {
		lineLower := strings.ToLower(line)
		start := 0
		for {
			idx := strings.Index(lineLower[start:], queryLower)
			if idx < 0 {
				break
			}
			byteCol := start + idx
			charCol := byteOffsetToCharIndex(line, byteCol)
			found = append(found, Match{Line: lineIdx, Col: charCol, Len: queryCharLen})
			_, size := decodeRuneAt(lineLower, byteCol)
			if size == 0 {
				size = 1
			}
			start = byteCol + size
			if start > len(lineLower) {
				break
			}
		}
	}
	s.SetMatches(found)
}

func decodeRuneAt(s string, idx int) (rune, int) {
	for i := idx + 1; i <= len(s) && i-idx <= 4; i++ {
		if i == len(s) || isCharBoundary(s, i) {
			return 0, i - idx
		}
	}
	return 0, 1
}
