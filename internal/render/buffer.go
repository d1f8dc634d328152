package render

import "github.com/mosaicterm/mosaic/internal/pane"

// InstanceRange is a pane's stable slice of a GlyphBuffer: the layout
// only ever grows when a pane's glyph count grows past its last
// allocation, so panes whose content didn't change this frame are
// never touched.
type InstanceRange struct {
	Offset, Length int
}

// GlyphBuffer is the flat, append-only backing store the render layer
// hands the GPU each frame. It grows by doubling (starting at 64KiB
// worth of instances) rather than per-pane, so resizing happens
// logarithmically often rather than on every new pane.
type GlyphBuffer struct {
	instances []GlyphInstance
	ranges    map[pane.Id]InstanceRange
	dirtyFrom int
	dirtyTo   int
	hasDirty  bool
}

const glyphInstanceSize = 4*4 + 4*4 + 4 // 4 float32 rect + 4 float32 uv + 4 byte color
const initialGlyphCapacityBytes = 64 * 1024

func newGlyphBuffer() *GlyphBuffer {
	cap := initialGlyphCapacityBytes / glyphInstanceSize
	return &GlyphBuffer{
		instances: make([]GlyphInstance, 0, cap),
		ranges:    make(map[pane.Id]InstanceRange),
	}
}

// Put writes pane id's glyph instances into the buffer. If id's
// previous range is large enough, the write happens in place (the
// stable range the renderer keeps across frames for unchanged panes);
// otherwise the old range is abandoned and a new one is appended,
// growing the backing slice by doubling if needed.
func (b *GlyphBuffer) Put(id pane.Id, glyphs []GlyphInstance) InstanceRange {
	if existing, ok := b.ranges[id]; ok && existing.Length >= len(glyphs) {
		copy(b.instances[existing.Offset:existing.Offset+len(glyphs)], glyphs)
		r := InstanceRange{Offset: existing.Offset, Length: len(glyphs)}
		b.ranges[id] = r
		b.markDirty(r.Offset, r.Offset+len(glyphs))
		return r
	}

	offset := len(b.instances)
	b.grow(offset + len(glyphs))
	b.instances = b.instances[:offset+len(glyphs)]
	copy(b.instances[offset:], glyphs)

	r := InstanceRange{Offset: offset, Length: len(glyphs)}
	b.ranges[id] = r
	b.markDirty(offset, offset+len(glyphs))
	return r
}

// grow doubles the backing array's capacity until it can hold n
// instances without reallocating again next frame.
func (b *GlyphBuffer) grow(n int) {
	if cap(b.instances) >= n {
		return
	}
	newCap := cap(b.instances)
	if newCap == 0 {
		newCap = initialGlyphCapacityBytes / glyphInstanceSize
	}
	for newCap < n {
		newCap *= 2
	}
	grown := make([]GlyphInstance, len(b.instances), newCap)
	copy(grown, b.instances)
	b.instances = grown
}

// Remove drops a pane's range reservation (called when a pane is
// closed); the backing slice isn't compacted and the freed slot is not
// reused: later Puts that need a new range append past it.
func (b *GlyphBuffer) Remove(id pane.Id) {
	delete(b.ranges, id)
}

func (b *GlyphBuffer) markDirty(from, to int) {
	if !b.hasDirty {
		b.dirtyFrom, b.dirtyTo, b.hasDirty = from, to, true
		return
	}
	if from < b.dirtyFrom {
		b.dirtyFrom = from
	}
	if to > b.dirtyTo {
		b.dirtyTo = to
	}
}

// DirtyRange reports the instance-index span touched since the last
// Flush, for callers that want to upload only the changed slice to a
// GPU-resident buffer instead of the whole thing.
func (b *GlyphBuffer) DirtyRange() (from, to int, ok bool) {
	return b.dirtyFrom, b.dirtyTo, b.hasDirty
}

func (b *GlyphBuffer) Flush() {
	b.hasDirty = false
	b.dirtyFrom, b.dirtyTo = 0, 0
}

// Instances returns the full live slice, valid until the next Put.
func (b *GlyphBuffer) Instances() []GlyphInstance {
	return b.instances
}

// Range returns a pane's current range, if it has written any glyphs.
func (b *GlyphBuffer) Range(id pane.Id) (InstanceRange, bool) {
	r, ok := b.ranges[id]
	return r, ok
}
