package render

import (
	"testing"

	"github.com/mosaicterm/mosaic/internal/atlas"
	"github.com/mosaicterm/mosaic/internal/editor/chromahl"
)

func TestGridCacheMissWithoutEntry(t *testing.T) {
	c := newGridCache(newGlyphBuffer())
	if _, _, hit := c.BeginPaneGrid(1, 0, 0); hit {
		t.Error("a pane with no prior EndPaneGrid call should always miss")
	}
}

func TestGridCacheHitOnMatchingGenerations(t *testing.T) {
	c := newGridCache(newGlyphBuffer())
	rects := []RectInstance{{X: 1}}
	glyphs := []GlyphInstance{{X: 2}}
	c.EndPaneGrid(1, 5, 0, rects, glyphs)

	gotRects, gotGlyphs, hit := c.BeginPaneGrid(1, 5, 0)
	if !hit {
		t.Fatal("expected a cache hit for unchanged generations")
	}
	if len(gotRects) != 1 || len(gotGlyphs) != 1 {
		t.Error("cached rects/glyphs not returned correctly")
	}
}

func TestGridCacheMissOnContentGenerationChange(t *testing.T) {
	c := newGridCache(newGlyphBuffer())
	c.EndPaneGrid(1, 5, 0, nil, nil)
	if _, _, hit := c.BeginPaneGrid(1, 6, 0); hit {
		t.Error("a content generation bump must invalidate the cache")
	}
}

func TestGridCacheMissOnAtlasReset(t *testing.T) {
	c := newGridCache(newGlyphBuffer())
	c.EndPaneGrid(1, 5, 0, nil, nil)
	if _, _, hit := c.BeginPaneGrid(1, 5, 1); hit {
		t.Error("an atlas reset must invalidate every cached pane's UVs")
	}
}

func TestGridCacheRemove(t *testing.T) {
	c := newGridCache(newGlyphBuffer())
	c.EndPaneGrid(1, 5, 0, nil, nil)
	c.Remove(1)
	if _, _, hit := c.BeginPaneGrid(1, 5, 0); hit {
		t.Error("Remove should drop the cached entry")
	}
}

func TestGridCacheSharesGlyphBufferAcrossPanes(t *testing.T) {
	gb := newGlyphBuffer()
	c := newGridCache(gb)
	c.EndPaneGrid(1, 5, 0, nil, []GlyphInstance{{X: 1}, {X: 2}})
	c.EndPaneGrid(2, 5, 0, nil, []GlyphInstance{{X: 10}})

	_, glyphs1, hit := c.BeginPaneGrid(1, 5, 0)
	if !hit || len(glyphs1) != 2 || glyphs1[0].X != 1 {
		t.Fatalf("pane 1 glyphs = %+v, hit=%v, want 2 instances starting at X=1", glyphs1, hit)
	}
	_, glyphs2, hit := c.BeginPaneGrid(2, 5, 0)
	if !hit || len(glyphs2) != 1 || glyphs2[0].X != 10 {
		t.Fatalf("pane 2 glyphs = %+v, hit=%v, want 1 instance at X=10", glyphs2, hit)
	}

	// Unchanged pane 1's range must survive pane 2's later write.
	r1, ok := gb.Range(1)
	if !ok || r1.Length != 2 {
		t.Fatalf("pane 1's range in the shared buffer was disturbed: %+v, ok=%v", r1, ok)
	}

	c.Remove(1)
	if _, ok := gb.Range(1); ok {
		t.Error("GridCache.Remove should release the pane's range in the shared GlyphBuffer")
	}
}

func TestAssembleGridSkipsEmptyGlyphsAndAdvancesCursor(t *testing.T) {
	lines := [][]chromahl.StyledSpan{
		{{Text: "ab", Style: chromahl.TextStyle{Foreground: chromahl.Color{R: 1, G: 1, B: 1, A: 1}}}},
	}
	cell := CellMetrics{Width: 8, Height: 16, Ascent: 12}
	calls := 0
	raster := func(r rune, bold, italic bool) atlas.Region {
		calls++
		return atlas.Region{PixelW: 8, PixelH: 16}
	}
	rects, glyphs := AssembleGrid(lines, cell, 0, 0, raster)
	if len(glyphs) != 2 {
		t.Fatalf("len(glyphs) = %d, want 2", len(glyphs))
	}
	if glyphs[1].X != 8 {
		t.Errorf("second glyph X = %v, want 8 (one cell advance)", glyphs[1].X)
	}
	if len(rects) != 0 {
		t.Error("a span with no background should not emit a rect")
	}
	if calls != 2 {
		t.Errorf("raster called %d times, want 2", calls)
	}
}

func TestAssembleGridWideRuneAdvancesTwoCells(t *testing.T) {
	lines := [][]chromahl.StyledSpan{
		{{Text: "世x", Style: chromahl.TextStyle{Foreground: chromahl.Color{A: 1}}}},
	}
	cell := CellMetrics{Width: 8, Height: 16, Ascent: 12}
	raster := func(r rune, bold, italic bool) atlas.Region {
		return atlas.Region{PixelW: 8, PixelH: 16}
	}
	_, glyphs := AssembleGrid(lines, cell, 0, 0, raster)
	if len(glyphs) != 2 {
		t.Fatalf("len(glyphs) = %d, want 2", len(glyphs))
	}
	if glyphs[1].X != 16 {
		t.Errorf("glyph after a wide rune X = %v, want 16 (two cell advance)", glyphs[1].X)
	}
}

func TestAssembleGridEmitsBackgroundRect(t *testing.T) {
	bg := chromahl.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	lines := [][]chromahl.StyledSpan{
		{{Text: "xy", Style: chromahl.TextStyle{Background: &bg}}},
	}
	cell := CellMetrics{Width: 10, Height: 20}
	raster := func(r rune, bold, italic bool) atlas.Region { return atlas.Region{Empty: true} }
	rects, _ := AssembleGrid(lines, cell, 0, 0, raster)
	if len(rects) != 1 {
		t.Fatalf("len(rects) = %d, want 1", len(rects))
	}
	if rects[0].W != 20 {
		t.Errorf("background rect width = %v, want 20 (2 cells)", rects[0].W)
	}
}
