package input

import (
	"github.com/mosaicterm/mosaic/internal/keymap"
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// borderThreshold is how close, in pane-area pixels, a click or hover must
// be to a split's border line before it's treated as a border interaction
// rather than pane content.
const borderThreshold float32 = 4.0

// Router owns focus/hover state and classifies raw events into actions,
// consulting the global keymap for recognized shortcuts and the layout
// tree for border hit-testing. It never mutates the tree itself beyond the
// border-drag ratio update DragBorder performs.
type Router struct {
	keymap *keymap.Registry
	tree   *layout.Tree

	focused    pane.Id
	hasFocused bool
	hovered    pane.Id
	hasHovered bool

	dragging bool

	history *FocusHistory

	onFocusChange func(old pane.Id)
}

// NewRouter returns a router bound to tree for hit-testing and km for
// global shortcut resolution.
func NewRouter(tree *layout.Tree, km *keymap.Registry) *Router {
	return &Router{tree: tree, keymap: km, history: NewFocusHistory()}
}

// Focused returns the currently focused pane, if any.
func (r *Router) Focused() (pane.Id, bool) {
	return r.focused, r.hasFocused
}

// SetOnFocusChange installs fn to be called with the previously focused
// pane whenever focus moves away from it, before the new pane becomes
// focused. The app shell uses this to commit any in-progress IME
// composition on the old pane before handing focus off, per spec.md
// §4.7's commit-before-refocus contract.
func (r *Router) SetOnFocusChange(fn func(old pane.Id)) {
	r.onFocusChange = fn
}

// SetFocused changes focus, recording the previous focus in the focus
// history stack (unless this is the first focus, or a no-op re-focus).
func (r *Router) SetFocused(id pane.Id) {
	if r.hasFocused && r.focused == id {
		return
	}
	if r.hasFocused {
		r.history.Push(r.focused)
		if r.onFocusChange != nil {
			r.onFocusChange(r.focused)
		}
	}
	r.focused = id
	r.hasFocused = true
}

// Hovered returns the pane currently under the pointer, if any.
func (r *Router) Hovered() (pane.Id, bool) {
	return r.hovered, r.hasHovered
}

// IsDraggingBorder reports whether a border-drag session is open.
func (r *Router) IsDraggingBorder() bool {
	return r.dragging
}

// EndDrag closes any open border-drag session.
func (r *Router) EndDrag() {
	r.dragging = false
	r.tree.EndDrag()
}

// FocusBack moves focus to the previous entry in the focus history stack,
// for the focus-history-back command. ok is false with an empty stack or
// no current focus.
func (r *Router) FocusBack() (pane.Id, bool) {
	if !r.hasFocused {
		return 0, false
	}
	id, ok := r.history.Back(r.focused)
	if !ok {
		return 0, false
	}
	if r.onFocusChange != nil && id != r.focused {
		r.onFocusChange(r.focused)
	}
	r.focused = id
	return id, true
}

// FocusForward moves focus to the next entry undone by a prior FocusBack,
// for the focus-history-forward command.
func (r *Router) FocusForward() (pane.Id, bool) {
	if !r.hasFocused {
		return 0, false
	}
	id, ok := r.history.Forward(r.focused)
	if !ok {
		return 0, false
	}
	if r.onFocusChange != nil && id != r.focused {
		r.onFocusChange(r.focused)
	}
	r.focused = id
	return id, true
}

// Process classifies ev against the current pane rects (as computed by
// layout.Tree.ComputeRects for the current area) and returns the resulting
// Action.
func (r *Router) Process(ev Event, area layout.Rect, paneRects []layout.PaneRect) Action {
	switch ev.Kind {
	case KeyPress:
		return r.processKey(ev)
	case MouseClick:
		return r.processClick(ev, area, paneRects)
	case MouseMove:
		return r.processMove(ev, area, paneRects)
	case MouseScroll:
		return r.processScroll(ev, paneRects)
	case MouseRelease:
		return r.processRelease(ev.Position)
	default:
		return Action{Kind: ActionNone}
	}
}

// processRelease ends an open border drag, if any. A release that isn't
// closing a border drag is handed to the caller as ActionMouseRelease,
// since only app-level code knows about tab-bar drag sessions.
func (r *Router) processRelease(pos Vec2) Action {
	if r.dragging {
		r.EndDrag()
		return Action{Kind: ActionDragEnd}
	}
	return Action{Kind: ActionMouseRelease, DragPos: pos}
}

func (r *Router) processKey(ev Event) Action {
	if cmd, ok := r.keymap.Resolve("global", ev.Key); ok {
		return Action{Kind: ActionGlobal, Command: cmd}
	}
	if r.hasFocused {
		return Action{Kind: ActionRouteToPane, Pane: r.focused}
	}
	return Action{Kind: ActionNone}
}

func (r *Router) processClick(ev Event, area layout.Rect, paneRects []layout.PaneRect) Action {
	if path, dist, found := r.tree.FindNearestBorder(area, ev.Position); found && dist <= borderThreshold {
		r.tree.BeginDragPath(path)
		r.dragging = true
		return Action{Kind: ActionDragBorder, DragPos: ev.Position}
	}

	if id, ok := paneAt(paneRects, ev.Position); ok {
		r.SetFocused(id)
		return Action{Kind: ActionRouteToPane, Pane: id}
	}
	return Action{Kind: ActionNone}
}

func (r *Router) processMove(ev Event, area layout.Rect, paneRects []layout.PaneRect) Action {
	if r.dragging {
		return Action{Kind: ActionDragBorder, DragPos: ev.Position}
	}
	if id, ok := paneAt(paneRects, ev.Position); ok {
		r.hovered, r.hasHovered = id, true
	} else {
		r.hasHovered = false
	}
	return Action{Kind: ActionNone}
}

func (r *Router) processScroll(ev Event, paneRects []layout.PaneRect) Action {
	if id, ok := paneAt(paneRects, ev.Position); ok {
		return Action{Kind: ActionRouteToPane, Pane: id}
	}
	return Action{Kind: ActionNone}
}

func paneAt(rects []layout.PaneRect, pos layout.Vec2) (pane.Id, bool) {
	for _, pr := range rects {
		if pr.Rect.Contains(pos) {
			return pr.Id, true
		}
	}
	return 0, false
}
