// Package mdpreview renders markdown documents to styled terminal text
// for the editor's markdown preview pane, via
// github.com/charmbracelet/glamour.
package mdpreview

import "github.com/charmbracelet/glamour"

// Renderer renders markdown to ANSI-styled text at a fixed wrap width.
// A new renderer is built per width change since glamour bakes word wrap
// into the renderer at construction time.
type Renderer struct {
	width int
	inner *glamour.TermRenderer
}

// New builds a renderer wrapping at width columns using glamour's
// auto-detected (light/dark) style.
func New(width int) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}
	inner, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{width: width, inner: inner}, nil
}

// Render converts markdown source to styled terminal text.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.inner.Render(markdown)
}

// Width reports the wrap width this renderer was built with.
func (r *Renderer) Width() int {
	return r.width
}

// Resize rebuilds the renderer for a new wrap width, a no-op if width is
// unchanged.
func (r *Renderer) Resize(width int) error {
	if width == r.width {
		return nil
	}
	next, err := New(width)
	if err != nil {
		return err
	}
	*r = *next
	return nil
}
