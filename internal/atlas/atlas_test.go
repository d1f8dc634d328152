package atlas

import "testing"

func solidGlyph(w, h int) []byte {
	p := make([]byte, w*h)
	for i := range p {
		p[i] = 0xff
	}
	return p
}

func TestUploadPacksAndReturnsUV(t *testing.T) {
	a := New(64)
	r := a.Upload(8, 10, 1, 9, solidGlyph(8, 10))
	if r.Empty {
		t.Fatal("expected a non-empty region")
	}
	if r.PixelW != 8 || r.PixelH != 10 {
		t.Errorf("region size = (%d,%d), want (8,10)", r.PixelW, r.PixelH)
	}
	if r.UMin != 0 || r.VMin != 0 {
		t.Errorf("first glyph should pack at origin, got (%v,%v)", r.UMin, r.VMin)
	}
}

func TestUploadAdvancesCursorAlongRow(t *testing.T) {
	a := New(64)
	r1 := a.Upload(8, 10, 0, 0, solidGlyph(8, 10))
	r2 := a.Upload(8, 10, 0, 0, solidGlyph(8, 10))
	if r2.UMin <= r1.UMin {
		t.Error("second glyph should pack to the right of the first")
	}
	if r1.VMin != r2.VMin {
		t.Error("glyphs in the same row should share a V origin")
	}
}

func TestUploadOversizeGlyphIsEmpty(t *testing.T) {
	a := New(16)
	r := a.Upload(32, 32, 0, 0, solidGlyph(32, 32))
	if !r.Empty {
		t.Error("a glyph larger than the atlas must return an empty region")
	}
}

func TestUploadOverflowTriggersReset(t *testing.T) {
	a := New(16)
	before := a.ResetCount()
	// Pack glyphs until the strip can't fit another one on this row,
	// forcing at least one row wrap, then force a reset by filling the
	// whole texture.
	for i := 0; i < 10; i++ {
		a.Upload(8, 8, 0, 0, solidGlyph(8, 8))
	}
	if a.ResetCount() <= before {
		t.Error("expected packing overflow to trigger at least one atlas reset")
	}
}

func TestEnsureCachedReusesEntry(t *testing.T) {
	a := New(64)
	calls := 0
	raster := func() (int, int, int, int, []byte) {
		calls++
		return 8, 8, 0, 0, solidGlyph(8, 8)
	}
	k := Key{Char: 'a'}
	r1 := a.EnsureCached(k, raster)
	r2 := a.EnsureCached(k, raster)
	if calls != 1 {
		t.Errorf("rasterize called %d times, want 1 (second lookup should hit cache)", calls)
	}
	if r1 != r2 {
		t.Error("repeated EnsureCached for the same key should return the same region")
	}
}

func TestEnsureCachedDistinctStyleVariants(t *testing.T) {
	a := New(64)
	raster := func() (int, int, int, int, []byte) { return 8, 8, 0, 0, solidGlyph(8, 8) }
	plain := a.EnsureCached(Key{Char: 'a'}, raster)
	bold := a.EnsureCached(Key{Char: 'a', Bold: true}, raster)
	if plain == bold {
		t.Error("bold variant of the same rune should pack a distinct region")
	}
}

func TestResetClearsCacheAndCursor(t *testing.T) {
	a := New(64)
	a.Upload(8, 8, 0, 0, solidGlyph(8, 8))
	a.EnsureCached(Key{Char: 'x'}, func() (int, int, int, int, []byte) { return 4, 4, 0, 0, solidGlyph(4, 4) })
	before := a.ResetCount()

	a.Reset()

	if a.ResetCount() != before+1 {
		t.Errorf("ResetCount = %d, want %d", a.ResetCount(), before+1)
	}
	r := a.Upload(8, 8, 0, 0, solidGlyph(8, 8))
	if r.UMin != 0 || r.VMin != 0 {
		t.Error("after Reset, packing should restart from the origin")
	}
}

func TestDirtyRectTracksUploads(t *testing.T) {
	a := New(64)
	if _, _, _, _, ok := a.DirtyRect(); ok {
		t.Error("a fresh atlas should have no dirty rect")
	}
	a.Upload(8, 8, 0, 0, solidGlyph(8, 8))
	x0, y0, x1, y1, ok := a.DirtyRect()
	if !ok {
		t.Fatal("expected a dirty rect after an upload")
	}
	if x1-x0 != 8 || y1-y0 != 8 {
		t.Errorf("dirty rect = (%d,%d)-(%d,%d), want an 8x8 box", x0, y0, x1, y1)
	}
	a.Flush()
	if _, _, _, _, ok := a.DirtyRect(); ok {
		t.Error("Flush should clear the dirty rect")
	}
}
