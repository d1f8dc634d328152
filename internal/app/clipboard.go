package app

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/termpane"
)

// CopyVisibleText copies the focused pane's text to the system clipboard
// via atotto/clipboard: for a terminal, its selection, or the whole grid
// when nothing is selected; for an editor, every line of the buffer, not
// only the rows scrolled into view.
func (a *App) CopyVisibleText() error {
	content, ok := a.focusedContent()
	if !ok {
		return nil
	}
	switch c := content.(type) {
	case *termpane.Pane:
		return a.copyTerminalSelection(c)
	case *editor.Pane:
		return clipboard.WriteAll(visibleEditorText(c.State()))
	}
	return nil
}

func (a *App) copyTerminalSelection(tp *termpane.Pane) error {
	start, end, ok := tp.Selection()
	grid := tp.Backend().Grid()
	var text string
	if ok {
		text = selectionText(grid, start, end)
	} else {
		text = gridText(grid)
	}
	return clipboard.WriteAll(text)
}

func (a *App) pasteIntoTerminal(tp *termpane.Pane) error {
	text, err := clipboard.ReadAll()
	if err != nil {
		return err
	}
	_, err = tp.Backend().Write([]byte(text))
	return err
}

func selectionText(grid termpane.Grid, start, end termpane.SelectionPoint) string {
	var b strings.Builder
	for row := start.Row; row <= end.Row && row < len(grid.Cells); row++ {
		line := grid.Cells[row]
		colStart, colEnd := 0, len(line)
		if row == start.Row {
			colStart = start.Col
		}
		if row == end.Row {
			colEnd = end.Col
		}
		for col := colStart; col < colEnd && col < len(line); col++ {
			b.WriteRune(line[col].Char)
		}
		if row != end.Row {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func gridText(grid termpane.Grid) string {
	var b strings.Builder
	for i, row := range grid.Cells {
		for _, cell := range row {
			b.WriteRune(cell.Char)
		}
		if i != len(grid.Cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func visibleEditorText(s *editor.State) string {
	var b strings.Builder
	total := s.Buffer.LineCount()
	for i := 0; i < total; i++ {
		line, _ := s.Buffer.Line(i)
		b.WriteString(line)
		if i != total-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
