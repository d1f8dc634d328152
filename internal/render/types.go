// Package render turns layout geometry, theme colors, and pane content
// (editor buffers, terminal grids) into a gio draw list: a small set of
// instance buffers replayed into op.Ops every frame. The six layers are
// chrome rects, grid rects, overlay rects, chrome glyphs, grid glyphs,
// and overlay glyphs, plus a "top" rect/glyph pair for modals and
// popups drawn after everything else. Layer order is fixed: overlay
// glyphs (search bar text) paint over pane text, while every rect layer,
// overlay rects included, paints before any glyph layer.
package render

import "image/color"

// Layer names one of the renderer's fixed draw passes. Order matters:
// later layers paint over earlier ones.
type Layer int

const (
	LayerChromeRect Layer = iota
	LayerGridRect
	LayerOverlayRect
	LayerChromeGlyph
	LayerGridGlyph
	LayerOverlayGlyph
	LayerTopRect
	LayerTopGlyph
	layerCount
)

// RectInstance is one solid-color (optionally rounded) quad.
type RectInstance struct {
	X, Y, W, H float32
	Color      color.RGBA
	CornerRadius float32 // 0 for sharp rects; >0 uses the SDF rounded-rect path
}

// GlyphInstance is one atlas-backed glyph quad: screen position plus the
// atlas region it samples, set by atlas.Region.
type GlyphInstance struct {
	X, Y, W, H     float32
	UMin, VMin     float32
	UMax, VMax     float32
	Color          color.RGBA
}

// DrawList is the full frame's worth of instances, one slice per layer.
type DrawList struct {
	Rects  [layerCount][]RectInstance
	Glyphs [layerCount][]GlyphInstance
}

func newDrawList() *DrawList {
	return &DrawList{}
}

func (d *DrawList) addRect(l Layer, r RectInstance) {
	d.Rects[l] = append(d.Rects[l], r)
}

func (d *DrawList) addGlyph(l Layer, g GlyphInstance) {
	d.Glyphs[l] = append(d.Glyphs[l], g)
}

// toNRGBA converts a straight RGBA color.RGBA (theme.Palette's storage
// type) into the colors gio's paint package expects.
func toNRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
