package app

import (
	"regexp"
	"strings"
	"time"

	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/editor/chromahl"
	"github.com/mosaicterm/mosaic/internal/editor/mdpreview"
	"github.com/mosaicterm/mosaic/internal/render"
)

// previewState is the markdown preview overlay: glamour-rendered text of
// the focused .md buffer, shown in the top layer until toggled off.
type previewState struct {
	visible  bool
	lines    []string
	scroll   int
	renderer *mdpreview.Renderer
}

// glamour emits ANSI-styled terminal text; the GPU renderer draws glyph
// runs, so SGR sequences are stripped and only glamour's layout (word
// wrap, indents, list markers) is kept.
var sgrRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripSGR(s string) string {
	return sgrRe.ReplaceAllString(s, "")
}

// toggleMarkdownPreview shows or hides the rendered preview of the
// focused editor's buffer. Non-markdown buffers get a status message
// instead of a garbled preview.
func (a *App) toggleMarkdownPreview(st *editor.State) {
	if a.preview.visible {
		a.preview.visible = false
		a.session.BumpChrome()
		return
	}
	path, hasPath := st.Buffer.Path()
	if !hasPath || !strings.HasSuffix(strings.ToLower(path), ".md") {
		a.setStatus("markdown preview needs a .md file", true, 3*time.Second)
		return
	}

	cols := int(a.area.Width/a.cell.Width) - 8
	if cols < 20 {
		cols = 20
	}
	if a.preview.renderer == nil {
		r, err := mdpreview.New(cols)
		if err != nil {
			a.setStatus("markdown preview failed: "+err.Error(), true, 4*time.Second)
			return
		}
		a.preview.renderer = r
	} else if err := a.preview.renderer.Resize(cols); err != nil {
		a.setStatus("markdown preview failed: "+err.Error(), true, 4*time.Second)
		return
	}

	out, err := a.preview.renderer.Render(visibleEditorText(st))
	if err != nil {
		a.setStatus("markdown preview failed: "+err.Error(), true, 4*time.Second)
		return
	}
	a.preview.lines = strings.Split(stripSGR(out), "\n")
	a.preview.scroll = 0
	a.preview.visible = true
	a.session.BumpChrome()
}

// paintMarkdownPreview draws the preview panel over the whole pane area
// in the top layer.
func (a *App) paintMarkdownPreview(dl *render.DrawList, raster render.GlyphRaster) {
	if !a.preview.visible {
		return
	}
	dl.Rects[render.LayerTopRect] = append(dl.Rects[render.LayerTopRect], render.RectInstance{
		X: 0, Y: 0, W: a.area.Width, H: a.area.Height, Color: a.palette.Background,
	})
	visibleRows := int(a.area.Height / a.cell.Height)
	from := a.preview.scroll
	if from > len(a.preview.lines) {
		from = len(a.preview.lines)
	}
	to := from + visibleRows
	if to > len(a.preview.lines) {
		to = len(a.preview.lines)
	}
	var lines [][]chromahl.StyledSpan
	for _, l := range a.preview.lines[from:to] {
		lines = append(lines, []chromahl.StyledSpan{{Text: l, Style: chromahl.TextStyle{Foreground: toChromaColor(a.palette.Foreground)}}})
	}
	rects, glyphs := render.AssembleGrid(lines, a.cell, a.dec.Padding, 0, raster)
	dl.Rects[render.LayerTopRect] = append(dl.Rects[render.LayerTopRect], rects...)
	dl.Glyphs[render.LayerTopGlyph] = append(dl.Glyphs[render.LayerTopGlyph], glyphs...)
}
