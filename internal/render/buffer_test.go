package render

import "testing"

func TestPutAppendsNewPaneRange(t *testing.T) {
	b := newGlyphBuffer()
	r := b.Put(1, []GlyphInstance{{X: 1}, {X: 2}, {X: 3}})
	if r.Offset != 0 || r.Length != 3 {
		t.Errorf("range = %+v, want offset=0 length=3", r)
	}
	if len(b.Instances()) != 3 {
		t.Errorf("len(Instances()) = %d, want 3", len(b.Instances()))
	}
}

func TestPutReusesRangeInPlaceWhenLengthFits(t *testing.T) {
	b := newGlyphBuffer()
	b.Put(1, []GlyphInstance{{X: 1}, {X: 2}, {X: 3}})
	b.Put(2, []GlyphInstance{{X: 10}, {X: 11}})

	r := b.Put(1, []GlyphInstance{{X: 100}, {X: 101}})
	if r.Offset != 0 {
		t.Errorf("shrinking write should stay in place, got offset %d", r.Offset)
	}
	// pane 2's range must be untouched
	r2, _ := b.Range(2)
	if b.Instances()[r2.Offset].X != 10 {
		t.Error("unrelated pane's instances were clobbered by an in-place write")
	}
}

func TestPutAppendsFreshWhenGrowingPastOldRange(t *testing.T) {
	b := newGlyphBuffer()
	first := b.Put(1, []GlyphInstance{{X: 1}})
	second := b.Put(1, []GlyphInstance{{X: 1}, {X: 2}, {X: 3}})
	if second.Offset == first.Offset {
		t.Error("growing a pane's glyph count should abandon the old range and append")
	}
	if second.Length != 3 {
		t.Errorf("Length = %d, want 3", second.Length)
	}
}

func TestGrowDoublesCapacity(t *testing.T) {
	b := newGlyphBuffer()
	startCap := cap(b.instances)
	glyphs := make([]GlyphInstance, startCap+1)
	b.Put(1, glyphs)
	if cap(b.instances) <= startCap {
		t.Error("backing array should have grown past its initial capacity")
	}
	if cap(b.instances) < len(glyphs) {
		t.Error("grown capacity must be able to hold every instance written")
	}
}

func TestDirtyRangeTracksPutsAndFlush(t *testing.T) {
	b := newGlyphBuffer()
	if _, _, ok := b.DirtyRange(); ok {
		t.Error("a fresh buffer should report no dirty range")
	}
	b.Put(1, []GlyphInstance{{X: 1}, {X: 2}})
	from, to, ok := b.DirtyRange()
	if !ok || from != 0 || to != 2 {
		t.Errorf("DirtyRange = (%d,%d,%v), want (0,2,true)", from, to, ok)
	}
	b.Flush()
	if _, _, ok := b.DirtyRange(); ok {
		t.Error("Flush should clear the dirty range")
	}
}

func TestRemoveDropsPaneRange(t *testing.T) {
	b := newGlyphBuffer()
	b.Put(1, []GlyphInstance{{X: 1}})
	b.Remove(1)
	if _, ok := b.Range(1); ok {
		t.Error("Remove should drop the pane's range")
	}
}
