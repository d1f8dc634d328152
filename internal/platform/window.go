// Package platform bridges gioui.org's windowing and event system to the
// engine-agnostic internal/input and internal/ime event types the rest
// of mosaic is built around: register a clip.Rect input area, call
// event.Op to claim it, then drain gtx.Event with a key.Filter and a
// pointer.Filter each frame.
package platform

import (
	"image"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	giolayout "gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	"github.com/mosaicterm/mosaic/internal/ime"
	"github.com/mosaicterm/mosaic/internal/input"
)

// Handler is implemented by the root application shell. Window calls it
// once per recognized input event and once per frame to obtain the
// paint operations to submit.
type Handler interface {
	// HandleInput delivers a classified, engine-agnostic input event.
	HandleInput(ev input.Event)
	// HandleIME delivers an IME composition/commit event.
	HandleIME(ev ime.Event)
	// Paint assembles this frame's draw list into ops, given the current
	// window size and the time the frame is being built at.
	Paint(ops *op.Ops, size input.Size, now time.Time)
}

// Window owns the gio platform window and translates its event stream.
type Window struct {
	win     *app.Window
	handler Handler

	haveFocus   bool
	lastSize    image.Point
	haveLastSize bool
}

// NewWindow creates a platform window of the given title and size,
// driven by handler.
func NewWindow(title string, width, height int, handler Handler) *Window {
	w := new(app.Window)
	w.Option(app.Title(title), app.Size(unit.Dp(width), unit.Dp(height)))
	return &Window{win: w, handler: handler}
}

// Invalidate requests a redraw outside the normal event-driven path, for
// background pollers (terminal output, git status, fswatch) that need to
// get their result on screen without waiting for the next input event.
func (w *Window) Invalidate() {
	w.win.Invalidate()
}

// Run drives the platform event loop until the window is closed. Per
// gio's platform requirements it runs on a goroutine other than the one
// that calls app.Main (the caller's main function starts this in a
// goroutine and then calls app.Main()).
func (w *Window) Run() error {
	var ops op.Ops
	for {
		switch e := w.win.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.claimInputArea(gtx)
			w.drainEvents(gtx)

			size := input.Size{Width: float32(e.Size.X), Height: float32(e.Size.Y)}
			if !w.haveLastSize || e.Size != w.lastSize {
				w.lastSize = e.Size
				w.haveLastSize = true
				w.handler.HandleInput(input.Event{Kind: input.Resize, Size: size})
			}

			w.handler.Paint(gtx.Ops, size, time.Now())
			e.Frame(gtx.Ops)
		}
	}
}

// claimInputArea registers the whole window as one event target. mosaic
// does its own hit-testing (via the input.Router against layout rects)
// rather than gio's widget tree, so there is exactly one event.Op for
// the whole surface.
func (w *Window) claimInputArea(gtx giolayout.Context) {
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()
	if !w.haveFocus {
		w.haveFocus = true
		gtx.Execute(key.FocusCmd{Tag: w})
	}
}

func (w *Window) drainEvents(gtx giolayout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Focus: w, Optional: key.ModShift | key.ModCtrl | key.ModAlt | key.ModCommand},
			pointer.Filter{
				Target:  w,
				Kinds:   pointer.Press | pointer.Release | pointer.Move | pointer.Drag | pointer.Scroll,
				ScrollY: pointer.ScrollRange{Min: -1 << 20, Max: 1 << 20},
			},
		)
		if !ok {
			return
		}
		switch e := ev.(type) {
		case key.Event:
			if e.State == key.Press {
				if chord, ok := chordString(e); ok {
					w.handler.HandleInput(input.Event{Kind: input.KeyPress, Key: chord})
				}
			}
		case key.EditEvent:
			// gio's public event stream only ever delivers a committed
			// replacement, never a separate in-progress preedit signal
			// (composing-region tracking lives inside the platform
			// driver's own window state, not in anything gtx.Event
			// surfaces) -- so every EditEvent is a Commit, and e.Range
			// (already in UTF-16 units, matching ime.Range) carries
			// whatever replacement span the IME asked to replace.
			w.handler.HandleIME(ime.Event{
				Kind:             ime.KindCommit,
				Text:             e.Text,
				ReplacementRange: ime.Range{Location: e.Range.Start, Length: e.Range.End - e.Range.Start},
				HasReplacement:   e.Range.Start != e.Range.End,
			})
		case pointer.Event:
			w.handlePointer(e)
		}
	}
}

func (w *Window) handlePointer(e pointer.Event) {
	pos := input.Vec2{X: e.Position.X, Y: e.Position.Y}
	switch e.Kind {
	case pointer.Press:
		w.handler.HandleInput(input.Event{Kind: input.MouseClick, Position: pos, Button: buttonFrom(e)})
	case pointer.Release:
		w.handler.HandleInput(input.Event{Kind: input.MouseRelease, Position: pos, Button: buttonFrom(e)})
	case pointer.Move, pointer.Drag:
		w.handler.HandleInput(input.Event{Kind: input.MouseMove, Position: pos})
	case pointer.Scroll:
		w.handler.HandleInput(input.Event{Kind: input.MouseScroll, Position: pos, ScrollDelta: e.Scroll.Y})
	}
}

func buttonFrom(e pointer.Event) input.MouseButton {
	switch {
	case e.Buttons.Contain(pointer.ButtonSecondary):
		return input.ButtonRight
	case e.Buttons.Contain(pointer.ButtonTertiary):
		return input.ButtonMiddle
	default:
		return input.ButtonLeft
	}
}
