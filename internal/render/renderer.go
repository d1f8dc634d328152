package render

import (
	"image"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/mosaicterm/mosaic/internal/atlas"
)

// Renderer owns the frame-to-frame caches: the glyph atlas, the grid
// cache, and the glyph instance buffer. Callers assemble a DrawList each
// frame (cheaply, reusing cached per-pane grids) and call Paint to
// replay it into an op.Ops.
type Renderer struct {
	Atlas  *atlas.Atlas
	Grids  *GridCache
	Glyphs *GlyphBuffer
}

// NewRenderer builds a renderer backed by at, an already-populated
// glyph atlas. Grids and Glyphs share one GlyphBuffer: GridCache writes
// every pane's grid glyphs into it through Put so the buffer's stable
// per-pane ranges and doubling growth are exercised by the live frame
// path, not just by its own tests.
func NewRenderer(at *atlas.Atlas) *Renderer {
	glyphs := newGlyphBuffer()
	return &Renderer{Atlas: at, Grids: newGridCache(glyphs), Glyphs: glyphs}
}

// Paint replays dl into ops in layer order: chrome, grid, overlay rects,
// then chrome, grid, overlay glyphs, then top rects/glyphs last so modals
// and other top-layer popups always paint over everything else.
//
// gio has no app-controlled GPU buffer handle to partially update: every
// frame resubmits its paint ops from scratch, so unlike a wgpu/vulkan
// backend there is no persistent device-side buffer for DirtyRange to
// drive a partial upload into. What DOES carry over frame-to-frame is
// the CPU-side instance store itself -- GridCache's per-pane ranges in
// Glyphs mean an unchanged pane's glyphs are never re-rasterized or
// re-packed, only re-walked here to emit ops, which is the portion of
// §4.5's partial-upload discipline that's meaningful under an
// immediate-mode renderer. Flush only clears the dirty-span bookkeeping
// a future retained-buffer backend would consume; this one doesn't.
func (r *Renderer) Paint(ops *op.Ops, dl *DrawList) {
	defer r.Atlas.Flush()
	defer r.Glyphs.Flush()

	for _, l := range []Layer{LayerChromeRect, LayerGridRect, LayerOverlayRect} {
		paintRects(ops, dl.Rects[l])
	}
	for _, l := range []Layer{LayerChromeGlyph, LayerGridGlyph, LayerOverlayGlyph} {
		r.paintGlyphs(ops, dl.Glyphs[l])
	}
	paintRects(ops, dl.Rects[LayerTopRect])
	r.paintGlyphs(ops, dl.Glyphs[LayerTopGlyph])
}

func paintRects(ops *op.Ops, rects []RectInstance) {
	for _, rc := range rects {
		bounds := image.Rect(int(rc.X), int(rc.Y), int(rc.X+rc.W), int(rc.Y+rc.H))
		var st clip.Stack
		if rc.CornerRadius > 0 {
			st = clip.RRect{Rect: bounds, SE: int(rc.CornerRadius), SW: int(rc.CornerRadius), NE: int(rc.CornerRadius), NW: int(rc.CornerRadius)}.Push(ops)
		} else {
			st = clip.Rect(bounds).Push(ops)
		}
		paint.ColorOp{Color: toNRGBA(rc.Color)}.Add(ops)
		paint.PaintOp{}.Add(ops)
		st.Pop()
	}
}

// paintGlyphs draws each glyph instance. The atlas stores single-channel
// coverage, so each instance's sub-rectangle is tinted into its own tiny
// NRGBA patch at paint time (coverage becomes alpha, the instance's
// color becomes RGB) rather than trying to combine a solid-color
// material with an image material in one draw: gio's paint package
// treats those as alternative, not combinable, materials.
func (r *Renderer) paintGlyphs(ops *op.Ops, glyphs []GlyphInstance) {
	atlasSize := r.Atlas.Size()
	pixels := r.Atlas.Pixels()
	for _, g := range glyphs {
		u0 := int(g.UMin * float32(atlasSize))
		v0 := int(g.VMin * float32(atlasSize))
		w, h := int(g.W), int(g.H)
		if w <= 0 || h <= 0 {
			continue
		}

		patch := image.NewNRGBA(image.Rect(0, 0, w, h))
		for row := 0; row < h; row++ {
			srcOff := (v0+row)*atlasSize + u0
			if srcOff < 0 || srcOff+w > len(pixels) {
				continue
			}
			for col := 0; col < w; col++ {
				cov := pixels[srcOff+col]
				i := patch.PixOffset(col, row)
				patch.Pix[i+0] = g.Color.R
				patch.Pix[i+1] = g.Color.G
				patch.Pix[i+2] = g.Color.B
				patch.Pix[i+3] = scale8(g.Color.A, cov)
			}
		}

		bounds := image.Rect(int(g.X), int(g.Y), int(g.X)+w, int(g.Y)+h)
		clipStack := clip.Rect(bounds).Push(ops)
		off := op.Affine(f32.Affine2D{}.Offset(f32.Pt(g.X, g.Y))).Push(ops)
		paint.NewImageOp(patch).Add(ops)
		paint.PaintOp{}.Add(ops)
		off.Pop()
		clipStack.Pop()
	}
}

func scale8(a, b uint8) uint8 {
	return uint8((uint16(a) * uint16(b)) / 255)
}
