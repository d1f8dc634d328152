package atlas

import (
	"image"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Rasterizer renders glyph outlines from an sfnt.Font into coverage
// bitmaps at a fixed pixel size, the same approach gio's own text
// shaper uses ahead of atlas packing.
type Rasterizer struct {
	font *sfnt.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
}

// NewRasterizer returns a rasterizer for font at the given integer pixel
// size (monospace rendering only needs integer bearings).
func NewRasterizer(font *sfnt.Font, pixelSize int) *Rasterizer {
	return &Rasterizer{
		font: font,
		ppem: fixed.I(pixelSize),
	}
}

// Rasterize returns a coverage bitmap for r plus its integer pixel
// bearings, suitable for Atlas.Upload. ok is false for glyphs the font
// has no outline for (e.g. unmapped runes); callers fall back to an
// empty region.
func (rz *Rasterizer) Rasterize(r rune) (w, h, bearingX, bearingY int, pixels []byte, ok bool) {
	idx, err := rz.font.GlyphIndex(&rz.buf, r)
	if err != nil || idx == 0 {
		return 0, 0, 0, 0, nil, false
	}

	segs, err := rz.font.LoadGlyph(&rz.buf, idx, rz.ppem, nil)
	if err != nil {
		return 0, 0, 0, 0, nil, false
	}

	bounds, _, err := rz.font.GlyphBounds(&rz.buf, idx, rz.ppem, nil)
	if err != nil {
		return 0, 0, 0, 0, nil, false
	}

	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if width <= 0 || height <= 0 {
		return 0, 0, 0, 0, nil, true // space and other zero-ink glyphs
	}

	ras := vector.NewRasterizer(width, height)
	originX := -bounds.Min.X
	originY := -bounds.Min.Y
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			ras.MoveTo(toF32(seg.Args[0], originX, originY))
		case sfnt.SegmentOpLineTo:
			ras.LineTo(toF32(seg.Args[0], originX, originY))
		case sfnt.SegmentOpQuadTo:
			ras.QuadTo(toF32(seg.Args[0], originX, originY), toF32(seg.Args[1], originX, originY))
		case sfnt.SegmentOpCubeTo:
			ras.CubeTo(
				toF32(seg.Args[0], originX, originY),
				toF32(seg.Args[1], originX, originY),
				toF32(seg.Args[2], originX, originY),
			)
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	ras.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	return width, height, bounds.Min.X.Floor(), -bounds.Min.Y.Floor(), dst.Pix, true
}

func toF32(p fixed.Point26_6, originX, originY fixed.Int26_6) f32.Vec2 {
	return f32.Vec2{float32(p.X+originX) / 64, float32(p.Y+originY) / 64}
}
