// Package atlas packs rasterized glyph coverage bitmaps into one
// fixed-size GPU texture using a strip packer: a horizontal cursor and a
// row-height watermark, advancing to a new row on overflow and resetting
// the whole atlas when packing runs out of room entirely. A reset bumps
// a counter callers compare across frames to invalidate cached UVs.
package atlas

import (
	"github.com/cespare/xxhash/v2"
)

// DefaultSize is the edge length, in pixels, of the coverage texture.
const DefaultSize = 4096

// Key identifies one glyph variant: a rune at a given style.
type Key struct {
	Char   rune
	Bold   bool
	Italic bool
}

func (k Key) hash() uint64 {
	var buf [9]byte
	buf[0] = byte(k.Char)
	buf[1] = byte(k.Char >> 8)
	buf[2] = byte(k.Char >> 16)
	buf[3] = byte(k.Char >> 24)
	if k.Bold {
		buf[4] = 1
	}
	if k.Italic {
		buf[5] = 1
	}
	return xxhash.Sum64(buf[:])
}

// Region is the packed location of one glyph within the atlas texture,
// plus the metrics needed to position it relative to a cursor cell.
type Region struct {
	UMin, VMin   float32
	UMax, VMax   float32
	PixelW       int
	PixelH       int
	BearingX     int
	BearingY     int
	Empty        bool
}

// Atlas is a single-channel (coverage) texture with a strip packer.
type Atlas struct {
	size       int
	pixels     []byte // size*size, row-major, single channel
	cursorX    int
	cursorY    int
	rowHeight  int
	entries    map[uint64]Region
	resetCount uint64

	// dirty tracks the smallest rect touched since the last Flush, so
	// callers can do a partial texture upload instead of the whole atlas.
	dirtyMinX, dirtyMinY int
	dirtyMaxX, dirtyMaxY int
	hasDirty             bool
}

// New returns an empty atlas of size x size pixels.
func New(size int) *Atlas {
	if size <= 0 {
		size = DefaultSize
	}
	a := &Atlas{size: size}
	a.reset()
	return a
}

func (a *Atlas) reset() {
	a.pixels = make([]byte, a.size*a.size)
	a.cursorX = 0
	a.cursorY = 0
	a.rowHeight = 0
	a.entries = make(map[uint64]Region)
	a.hasDirty = false
}

// Reset clears the cache, zeroes the packing cursors, and bumps the
// reset counter. Callers must drop every per-pane draw-list cache that
// references this atlas's UVs when ResetCount changes.
func (a *Atlas) Reset() {
	a.reset()
	a.resetCount++
}

// ResetCount reports how many times Reset has fired.
func (a *Atlas) ResetCount() uint64 {
	return a.resetCount
}

// Size returns the atlas texture's edge length in pixels.
func (a *Atlas) Size() int {
	return a.size
}

// Pixels returns the backing coverage buffer (size*size bytes).
func (a *Atlas) Pixels() []byte {
	return a.pixels
}

// EnsureCached returns the packed region for key, rasterizing via raster
// if it isn't already cached. raster returns a coverage bitmap (w*h
// bytes, row-major) plus integer pixel bearings.
func (a *Atlas) EnsureCached(key Key, raster func() (w, h, bearingX, bearingY int, pixels []byte)) Region {
	h := key.hash()
	if r, ok := a.entries[h]; ok {
		return r
	}
	w, ht, bx, by, pixels := raster()
	r := a.Upload(w, ht, bx, by, pixels)
	a.entries[h] = r
	return r
}

// Upload packs a w x h coverage bitmap into the atlas, resetting first
// if it would not otherwise fit. Glyphs larger than the atlas itself
// produce an empty region rather than ever fitting; callers should skip
// drawing them (and log it).
func (a *Atlas) Upload(w, h, bearingX, bearingY int, pixels []byte) Region {
	if w > a.size || h > a.size {
		return Region{Empty: true}
	}
	if a.cursorX+w > a.size {
		a.cursorX = 0
		a.cursorY += a.rowHeight
		a.rowHeight = 0
	}
	if a.cursorY+h > a.size {
		a.Reset()
		if w > a.size || h > a.size {
			return Region{Empty: true}
		}
	}

	x0, y0 := a.cursorX, a.cursorY
	for row := 0; row < h; row++ {
		srcOff := row * w
		dstOff := (y0+row)*a.size + x0
		copy(a.pixels[dstOff:dstOff+w], pixels[srcOff:srcOff+w])
	}
	a.markDirty(x0, y0, x0+w, y0+h)

	a.cursorX += w
	if h > a.rowHeight {
		a.rowHeight = h
	}

	s := float32(a.size)
	return Region{
		UMin:     float32(x0) / s,
		VMin:     float32(y0) / s,
		UMax:     float32(x0+w) / s,
		VMax:     float32(y0+h) / s,
		PixelW:   w,
		PixelH:   h,
		BearingX: bearingX,
		BearingY: bearingY,
	}
}

func (a *Atlas) markDirty(x0, y0, x1, y1 int) {
	if !a.hasDirty {
		a.dirtyMinX, a.dirtyMinY, a.dirtyMaxX, a.dirtyMaxY = x0, y0, x1, y1
		a.hasDirty = true
		return
	}
	if x0 < a.dirtyMinX {
		a.dirtyMinX = x0
	}
	if y0 < a.dirtyMinY {
		a.dirtyMinY = y0
	}
	if x1 > a.dirtyMaxX {
		a.dirtyMaxX = x1
	}
	if y1 > a.dirtyMaxY {
		a.dirtyMaxY = y1
	}
}

// DirtyRect returns the smallest rect touched since the last Flush.
func (a *Atlas) DirtyRect() (x0, y0, x1, y1 int, ok bool) {
	return a.dirtyMinX, a.dirtyMinY, a.dirtyMaxX, a.dirtyMaxY, a.hasDirty
}

// Flush clears the dirty-rect tracker after the caller has uploaded it
// to the GPU texture.
func (a *Atlas) Flush() {
	a.hasDirty = false
}
