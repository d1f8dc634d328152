// Package mouse provides pixel-grid hit testing for chrome widgets drawn on
// top of the pane layout: tab close buttons, scrollbar thumbs, resize
// handles. The layout tree's own border/drop-zone hit testing (see
// internal/layout) works in float pane-area coordinates; this package is
// for the smaller, integer-pixel UI elements the renderer's chrome layer
// places inside a pane's rect.
package mouse

// Rect is an integer pixel rectangle, right/bottom-exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls within the rect. The right and
// bottom edges are exclusive: a 10-wide rect starting at x=10 contains x=19
// but not x=20.
func (r Rect) Contains(x, y int) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named, hit-testable rectangle carrying arbitrary caller data
// (a pane id, a command, a tab index).
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap is an ordered set of regions tested back-to-front: the most
// recently added region that contains a point wins, so overlapping widgets
// (a close button drawn on top of its tab) resolve correctly without the
// caller needing to sort by z-order itself.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(id string, rect Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: rect, Data: data})
}

// AddRect is Add with the rect's fields spelled out, for call sites
// building the rect inline.
func (h *HitMap) AddRect(id string, x, y, w, height int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: height}, data)
}

// Test returns the topmost (last-added) region containing (x, y), or nil if
// none does.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all registered regions, done once per frame before the
// chrome layer re-registers whatever it draws.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a defensive copy of the registered regions, in add order.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}
