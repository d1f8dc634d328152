// Package chromahl adapts github.com/alecthomas/chroma/v2 to the
// editor's visible-range highlighting needs: a lexer chosen once per
// file, a style converted to the render package's color model, and a
// one-entry cache so repainting an unchanged document at the same
// scroll position and height doesn't re-tokenize it; an edit or a scroll
// re-tokenizes the whole document.
package chromahl

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/cespare/xxhash/v2"
)

// StyledSpan is a run of text sharing one TextStyle.
type StyledSpan struct {
	Text  string
	Style TextStyle
}

// Highlighter tokenizes a file's lines with a lexer detected from its
// path, rendering spans in a fixed theme.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	cacheKey   uint64
	cacheStart int
	cacheLines [][]StyledSpan
}

// New returns a highlighter with no lexer detected yet (plain text).
func New() *Highlighter {
	return &Highlighter{lexer: lexers.Fallback, style: styles.Get("monokai")}
}

// DetectSyntax selects a lexer from path's extension, falling back to
// plain text if none match.
func (h *Highlighter) DetectSyntax(path string) {
	if l := lexers.Match(path); l != nil {
		h.lexer = l
		return
	}
	h.lexer = lexers.Fallback
}

// HighlightLines tokenizes lines[startLine:startLine+count] (clamped to
// bounds) and returns one span slice per line. The whole document must
// be fed to the lexer so multi-line constructs (block comments, fenced
// code) carry state across the viewport boundary, but only the requested
// range is materialized into spans.
func (h *Highlighter) HighlightLines(lines []string, startLine, count int) [][]StyledSpan {
	if count <= 0 || startLine >= len(lines) {
		return nil
	}
	end := startLine + count
	if end > len(lines) {
		end = len(lines)
	}

	key := hashLines(lines)
	if key == h.cacheKey && startLine == h.cacheStart && len(h.cacheLines) == end-startLine {
		return h.cacheLines
	}

	joined := strings.Join(lines, "\n")
	iter, err := h.lexer.Tokenise(nil, joined)
	if err != nil {
		result := make([][]StyledSpan, end-startLine)
		return result
	}
	tokens := chroma.Coalesce(iter).Tokens()

	result := make([][]StyledSpan, end-startLine)
	for i := range result {
		result[i] = []StyledSpan{}
	}

	line := 0
	for _, tok := range tokens {
		parts := strings.Split(tok.Value, "\n")
		for pi, part := range parts {
			if pi > 0 {
				line++
			}
			if part == "" {
				continue
			}
			if line >= startLine && line < end {
				result[line-startLine] = append(result[line-startLine], StyledSpan{
					Text:  part,
					Style: h.convertStyle(tok.Type),
				})
			}
			if line >= end {
				break
			}
		}
	}

	h.cacheKey = key
	h.cacheStart = startLine
	h.cacheLines = result
	return result
}

func (h *Highlighter) convertStyle(tt chroma.TokenType) TextStyle {
	entry := h.style.Get(tt)
	fg := Color{A: 1}
	if entry.Colour.IsSet() {
		fg = colorFromRGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	var bg *Color
	if entry.Background.IsSet() {
		c := colorFromRGB(entry.Background.Red(), entry.Background.Green(), entry.Background.Blue())
		bg = &c
	}
	return TextStyle{
		Foreground: fg,
		Background: bg,
		Bold:       entry.Bold == chroma.Yes,
		Italic:     entry.Italic == chroma.Yes,
		Underline:  entry.Underline == chroma.Yes,
	}
}

func hashLines(lines []string) uint64 {
	h := xxhash.New()
	for _, l := range lines {
		h.WriteString(l)
		h.Write([]byte{0})
	}
	return h.Sum64()
}
