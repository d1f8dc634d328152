package render

import (
	"image/color"

	"github.com/mattn/go-runewidth"

	"github.com/mosaicterm/mosaic/internal/atlas"
	"github.com/mosaicterm/mosaic/internal/editor/chromahl"
	"github.com/mosaicterm/mosaic/internal/pane"
	"github.com/mosaicterm/mosaic/internal/termpane"
	"github.com/mosaicterm/mosaic/internal/theme"
)

// gridCacheEntry is what a pane's last assembled grid draw looked like,
// plus the generation values that produced it. A fresh AssembleGrid call
// compares against these to decide whether to reuse the cached instances
// untouched (the common case: most panes aren't the one the user is
// typing into on any given frame). The glyph instances themselves live
// in the shared GlyphBuffer, keyed by pane id, so an unchanged pane's
// hit reuses its stable (offset, length) range rather than holding its
// own separately allocated slice.
type gridCacheEntry struct {
	contentGen uint64
	atlasReset uint64
	rects      []RectInstance
}

// GridCache owns one cache entry per pane plus the flat glyph buffer
// those entries' ranges index into; BeginPaneGrid/EndPaneGrid bracket
// the (re)build of a single pane's grid layer so callers that don't
// need the rebuild path can skip straight to the cached result. An
// atlas reset invalidates every entry at once since every UV in every
// cached glyph instance is now stale.
type GridCache struct {
	entries map[pane.Id]*gridCacheEntry
	glyphs  *GlyphBuffer
}

func newGridCache(glyphs *GlyphBuffer) *GridCache {
	return &GridCache{entries: make(map[pane.Id]*gridCacheEntry), glyphs: glyphs}
}

// BeginPaneGrid reports whether id's cached grid is still valid for the
// given content generation and atlas reset count. A cache hit means
// EndPaneGrid need not be called at all this frame; its glyphs come
// back as a slice of the pane's existing range in the shared
// GlyphBuffer rather than a fresh rebuild.
func (c *GridCache) BeginPaneGrid(id pane.Id, contentGen, atlasReset uint64) (rects []RectInstance, glyphs []GlyphInstance, hit bool) {
	e, ok := c.entries[id]
	if !ok || e.contentGen != contentGen || e.atlasReset != atlasReset {
		return nil, nil, false
	}
	r, ok := c.glyphs.Range(id)
	if !ok {
		return nil, nil, false
	}
	return e.rects, c.glyphs.Instances()[r.Offset : r.Offset+r.Length], true
}

// EndPaneGrid stores a freshly assembled grid for id: rects are kept on
// the entry directly, glyphs are written into the shared GlyphBuffer
// (in place, when the pane's existing range is large enough, or
// appended with the backing array doubling in size if not -- spec.md
// §4.5's "partial instance-buffer uploads" and growth-by-doubling,
// applied to the CPU-side flat instance store gio's immediate-mode
// paint.ImageOp submits from each frame).
func (c *GridCache) EndPaneGrid(id pane.Id, contentGen, atlasReset uint64, rects []RectInstance, glyphs []GlyphInstance) {
	c.entries[id] = &gridCacheEntry{contentGen: contentGen, atlasReset: atlasReset, rects: rects}
	c.glyphs.Put(id, glyphs)
}

// Remove drops a closed pane's cached grid and releases its range in
// the shared glyph buffer.
func (c *GridCache) Remove(id pane.Id) {
	delete(c.entries, id)
	c.glyphs.Remove(id)
}

// CellMetrics is the fixed advance of one monospace grid cell, in pixels.
type CellMetrics struct {
	Width, Height float32
	Ascent        float32
}

// GlyphRaster rasterizes (or fetches from cache) the atlas region for a
// styled rune, returning an empty region for glyphs with no ink (spaces,
// control characters).
type GlyphRaster func(r rune, bold, italic bool) atlas.Region

// AssembleGrid builds the rect+glyph instances for an editor pane's
// visible, already-highlighted lines at origin (x0, y0).
func AssembleGrid(lines [][]chromahl.StyledSpan, cell CellMetrics, x0, y0 float32, raster GlyphRaster) ([]RectInstance, []GlyphInstance) {
	var rects []RectInstance
	var glyphs []GlyphInstance

	y := y0
	for _, spans := range lines {
		x := x0
		for _, span := range spans {
			if span.Style.Background != nil {
				w := float32(runewidth.StringWidth(span.Text)) * cell.Width
				rects = append(rects, RectInstance{X: x, Y: y, W: w, H: cell.Height, Color: toColor(*span.Style.Background)})
			}
			for _, r := range span.Text {
				if r == '\t' || r == '\n' {
					x += cell.Width
					continue
				}
				region := raster(r, span.Style.Bold, span.Style.Italic)
				if !region.Empty {
					glyphs = append(glyphs, GlyphInstance{
						X: x + float32(region.BearingX), Y: y + cell.Ascent - float32(region.BearingY),
						W: float32(region.PixelW), H: float32(region.PixelH),
						UMin: region.UMin, VMin: region.VMin, UMax: region.UMax, VMax: region.VMax,
						Color: toColor(span.Style.Foreground),
					})
				}
				// Wide (CJK, emoji) runes advance two grid cells,
				// zero-width combining marks stack on the previous cell.
				x += float32(runewidth.RuneWidth(r)) * cell.Width
			}
		}
		y += cell.Height
	}
	return rects, glyphs
}

// AssembleTerminalGrid is AssembleGrid's counterpart for a termpane.Grid:
// every cell is drawn individually since terminal cells carry per-cell
// color and attribute state rather than spans.
func AssembleTerminalGrid(grid termpane.Grid, cell CellMetrics, x0, y0 float32, pal theme.Palette, raster GlyphRaster) ([]RectInstance, []GlyphInstance) {
	var rects []RectInstance
	var glyphs []GlyphInstance

	for row := 0; row < grid.Rows; row++ {
		y := y0 + float32(row)*cell.Height
		for col := 0; col < grid.Cols; col++ {
			c := grid.Cells[row][col]
			if c.Char == 0 || c.Char == ' ' {
				continue
			}
			region := raster(c.Char, c.Bold, c.Italic)
			if region.Empty {
				continue
			}
			x := x0 + float32(col)*cell.Width
			fg := pal.Foreground
			if c.FG != 0 {
				fg = unpackRGBA(c.FG)
			}
			glyphs = append(glyphs, GlyphInstance{
				X: x + float32(region.BearingX), Y: y + cell.Ascent - float32(region.BearingY),
				W: float32(region.PixelW), H: float32(region.PixelH),
				UMin: region.UMin, VMin: region.VMin, UMax: region.UMax, VMax: region.VMax,
				Color: fg,
			})
		}
	}
	return rects, glyphs
}

func toColor(c chromahl.Color) color.RGBA {
	return color.RGBA{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: uint8(c.A * 255)}
}

func unpackRGBA(packed uint32) color.RGBA {
	return color.RGBA{R: uint8(packed >> 24), G: uint8(packed >> 16), B: uint8(packed >> 8), A: uint8(packed)}
}
