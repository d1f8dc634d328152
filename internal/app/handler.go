package app

import (
	"time"

	"github.com/mosaicterm/mosaic/internal/dragdrop"
	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/ime"
	"github.com/mosaicterm/mosaic/internal/input"
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
	"github.com/mosaicterm/mosaic/internal/termpane"
)

// HandleInput implements platform.Handler. It classifies ev through the
// router and either dispatches a global command, forwards it to the
// focused pane's own handling, or updates border-drag state.
func (a *App) HandleInput(ev input.Event) {
	if ev.Kind == input.Resize {
		a.area = layout.Rect{Width: ev.Size.Width, Height: ev.Size.Height}
		tiling := a.tilingArea()
		a.session.Tree.SnapRatios(tiling, layout.Size{Width: a.cell.Width, Height: a.cell.Height}, a.dec)
		a.paneRects = a.computePaneRects(tiling)
		a.resizer.Touch(time.Now())
		return
	}
	if a.modal.kind != modalNone {
		a.handleModalInput(ev)
		return
	}
	if ev.Kind == input.KeyPress && ev.Key == "escape" && a.drag.Phase() != dragdrop.Idle {
		a.drag.Cancel()
		a.session.BumpChrome()
		return
	}

	tiling, dock, dockVisible := a.splitDockArea()
	a.paneRects = a.computePaneRects(tiling)

	if dockVisible && dock.Contains(ev.Position) {
		switch ev.Kind {
		case input.MouseClick:
			if a.handleDockClick(dock, ev) {
				return
			}
		case input.MouseMove:
			a.handleDragMove(ev.Position)
			return
		case input.MouseScroll:
			if active, ok := a.session.Dock.Active(); ok {
				a.routeToPane(active, ev)
				return
			}
		}
	}
	if ev.Kind == input.MouseMove && a.drag.Phase() != dragdrop.Idle {
		a.handleDragMove(ev.Position)
		return
	}
	if ev.Kind == input.MouseRelease && a.drag.Phase() != dragdrop.Idle {
		a.handleDragRelease()
		return
	}
	if ev.Kind == input.MouseClick {
		if id, ok := a.hitTiledTabBar(ev.Position); ok {
			a.drag.PressTabBar(id, ev.Position, false)
		}
	}

	action := a.router.Process(ev, tiling, a.paneRects)
	switch action.Kind {
	case input.ActionGlobal:
		a.dispatch(action.Command)
	case input.ActionRouteToPane:
		a.routeToPane(action.Pane, ev)
	case input.ActionDragBorder:
		a.session.Tree.DragBorder(tiling, action.DragPos, layout.Size{Width: a.cell.Width, Height: a.cell.Height}, a.dec)
		a.session.BumpChrome()
	}
}

// routeToPane forwards ev to pane id's content. Key presses are first
// re-resolved against the pane kind's own keymap context (the router
// only ever checks "global"), falling back to literal insertion/typing
// when no binding matches either context.
func (a *App) routeToPane(id pane.Id, ev input.Event) {
	content, ok := a.session.Registry.Get(id)
	if !ok {
		return
	}

	switch ev.Kind {
	case input.KeyPress:
		ctx := contextFor(content.Kind())
		if cmd, ok := a.keymap.Resolve(ctx, ev.Key); ok {
			a.dispatchPaneLocal(content, cmd)
			return
		}
		a.handlePaneKey(content, ev.Key)
	case input.MouseScroll:
		a.handlePaneScroll(content, ev.ScrollDelta)
	case input.MouseClick, input.MouseMove:
		// Hit-testing within a pane (text selection, tab clicks) is
		// content-specific; terminal selection is wired here since it's
		// the one pointer-driven in-pane gesture currently implemented.
		if tp, ok := content.(*termpane.Pane); ok {
			a.handleTerminalPointer(tp, ev)
		}
	}
	a.session.BumpContent()
}

func contextFor(k pane.Kind) string {
	switch k {
	case pane.KindEditor:
		return "editor"
	case pane.KindTerminal:
		return "terminal"
	default:
		return "global"
	}
}

// handlePaneKey applies a key chord that resolved to no command: single
// printable characters get inserted/typed, and a handful of named keys
// (enter, backspace, arrows) map onto the pane's own editing/navigation
// methods.
func (a *App) handlePaneKey(content pane.Content, key string) {
	switch c := content.(type) {
	case *editor.Pane:
		applyEditorKey(c.State(), key)
	case *termpane.Pane:
		applyTerminalKey(c, key)
	}
}

func (a *App) handlePaneScroll(content pane.Content, delta float32) {
	lines := int(delta)
	if lines == 0 {
		if delta > 0 {
			lines = 1
		} else if delta < 0 {
			lines = -1
		}
	}
	switch c := content.(type) {
	case *editor.Pane:
		if lines > 0 {
			c.State().ScrollDown(lines)
		} else if lines < 0 {
			c.State().ScrollUp(-lines)
		}
	case *termpane.Pane:
		c.Backend().ScrollDisplay(-lines)
	}
}

func (a *App) handleTerminalPointer(tp *termpane.Pane, ev input.Event) {
	// Cell-precise hit testing needs the pane's own rect and the cell
	// grid; left as a future refinement once tab-bar/content sub-rects
	// are threaded through paneRects. For now a click focuses the pane
	// (already done by the router) without starting a selection.
	_ = tp
	_ = ev
}

// editorVisibleRows approximates the focused pane's visible row count for
// page-up/page-down; exact per-pane geometry isn't threaded into
// applyEditorKey, so this tracks a typical pane height in cells.
const editorVisibleRows = 40

func applyEditorKey(s *editor.State, key string) {
	switch key {
	case "enter":
		s.Enter()
	case "backspace":
		s.Backspace()
	case "delete":
		s.Delete()
	case "left":
		s.Cursor.MoveLeft(s.Buffer)
	case "right":
		s.Cursor.MoveRight(s.Buffer)
	case "up":
		s.Cursor.MoveUp(s.Buffer)
	case "down":
		s.Cursor.MoveDown(s.Buffer)
	case "home":
		s.Cursor.MoveHome()
	case "end":
		s.Cursor.MoveEnd(s.Buffer)
	case "pageup":
		s.Cursor.MovePageUp(s.Buffer, editorVisibleRows)
	case "pagedown":
		s.Cursor.MovePageDown(s.Buffer, editorVisibleRows)
	default:
		if r, ok := singleRune(key); ok {
			s.InsertChar(r)
		}
	}
}

func applyTerminalKey(tp *termpane.Pane, key string) {
	seq, ok := terminalEscape(key)
	if ok {
		_, _ = tp.Backend().Write([]byte(seq))
		return
	}
	if r, ok := singleRune(key); ok {
		_, _ = tp.Backend().Write([]byte(string(r)))
	}
}

func terminalEscape(key string) (string, bool) {
	switch key {
	case "enter":
		return "\r", true
	case "backspace":
		return "\x7f", true
	case "tab":
		return "\t", true
	case "escape":
		return "\x1b", true
	case "left":
		return "\x1b[D", true
	case "right":
		return "\x1b[C", true
	case "up":
		return "\x1b[A", true
	case "down":
		return "\x1b[B", true
	case "space":
		return " ", true
	}
	return "", false
}

// singleRune reports whether key names a single printable character (not
// a chord with modifiers, which routeToPane already filtered out by
// virtue of reaching here only when no binding matched).
func singleRune(key string) (rune, bool) {
	runes := []rune(key)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

// HandleIME implements platform.Handler: every composition/commit event
// is routed through the focused pane's own internal/ime.Sink, which owns
// the marked-text/committed-text mirror and turns a replacement-range
// commit into Backspace-then-insert against the pane's content (editor
// buffer or terminal PTY, both of which satisfy Sink.Handle's
// BackspaceEmitter/TextInserter contract directly).
func (a *App) HandleIME(ev ime.Event) {
	id, ok := a.router.Focused()
	if !ok {
		return
	}
	content, ok := a.session.Registry.Get(id)
	if !ok {
		return
	}
	sink := a.sinkFor(id)
	switch c := content.(type) {
	case *editor.Pane:
		sink.Handle(ev, c.State())
	case *termpane.Pane:
		sink.Handle(ev, c)
	default:
		return
	}
	if ev.Kind == ime.KindPreedit {
		// Marked text only affects the top-layer overlay, which
		// rebuilds every frame regardless of content generation; a
		// chrome bump is enough to guarantee a redraw is scheduled.
		a.session.BumpChrome()
		return
	}
	a.session.BumpContent()
}
