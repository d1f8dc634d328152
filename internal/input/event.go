// Package input routes raw platform events (key chords, pointer clicks,
// motion, scroll) to either a recognized global shortcut or the focused
// pane, and owns directional pane-to-pane navigation and the focus
// history stack.
package input

import (
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// MouseButton identifies which physical button produced a click event.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// EventKind tags the variant an Event holds.
type EventKind int

const (
	KeyPress EventKind = iota
	MouseClick
	MouseMove
	MouseScroll
	MouseRelease
	Resize
)

// Event is the tagged union of input the router classifies. Only the
// fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	// KeyPress
	Key string // canonical chord string, e.g. "ctrl+shift+s"

	// MouseClick / MouseMove / MouseScroll
	Position Vec2
	Button   MouseButton

	// MouseScroll
	ScrollDelta float32

	// Resize
	Size Size
}

// Vec2 and Size mirror layout's geometry types; the router works in the
// same pane-area coordinate space the layout tree does.
type Vec2 = layout.Vec2
type Size = layout.Size

// ActionKind tags which variant an Action holds.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionGlobal
	ActionRouteToPane
	ActionDragBorder
	// ActionDragEnd reports that a border-drag session the router itself
	// owned (layout.Tree's ratio drag) has just closed on a mouse release.
	ActionDragEnd
	// ActionMouseRelease is returned for every release that wasn't
	// consumed as a border-drag end, so app-level state machines (the
	// tab/pane drag-drop machine) can resolve their own press/release
	// pairing; the router has no opinion on tab-bar gestures.
	ActionMouseRelease
)

// Action is the result of Router.Process: either a recognized global
// shortcut, a raw event forwarded to a specific pane, a border-drag update,
// or nothing (the event was consumed by router-internal state, such as
// updating hover).
type Action struct {
	Kind ActionKind

	Command string  // set for ActionGlobal: the resolved command name
	Pane    pane.Id // set for ActionRouteToPane: the pane the event routes to
	DragPos Vec2    // set for ActionDragBorder
}
