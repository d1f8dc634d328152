package session

import "github.com/mosaicterm/mosaic/internal/pane"

// Dock is the editor panel: an ordered list of pane ids disjoint from the
// layout tree's leaves, plus an optional active id. The invariant is
// active ∈ tabs ∨ active = None; an empty dock has no active tab.
type Dock struct {
	tabs   []pane.Id
	active pane.Id
	hasAct bool
}

// NewDock returns an empty dock.
func NewDock() *Dock {
	return &Dock{}
}

// Tabs returns the dock's ordered pane ids. The slice is a defensive copy.
func (d *Dock) Tabs() []pane.Id {
	out := make([]pane.Id, len(d.tabs))
	copy(out, d.tabs)
	return out
}

// Len reports how many tabs the dock holds.
func (d *Dock) Len() int {
	return len(d.tabs)
}

// Active returns the active tab, if any.
func (d *Dock) Active() (pane.Id, bool) {
	return d.active, d.hasAct
}

// Contains reports whether id is one of the dock's tabs.
func (d *Dock) Contains(id pane.Id) bool {
	_, ok := d.indexOf(id)
	return ok
}

func (d *Dock) indexOf(id pane.Id) (int, bool) {
	for i, t := range d.tabs {
		if t == id {
			return i, true
		}
	}
	return 0, false
}

// PushTab appends id to the dock and makes it active. A no-op if id is
// already present (it's just made active instead of duplicated).
func (d *Dock) PushTab(id pane.Id) {
	if _, ok := d.indexOf(id); !ok {
		d.tabs = append(d.tabs, id)
	}
	d.active, d.hasAct = id, true
}

// RemoveTab removes id from the dock. If id was active, the tab that took
// its slot becomes active (or the new last tab, or none if the dock is now
// empty), preserving the invariant active ∈ list ∨ active = None.
func (d *Dock) RemoveTab(id pane.Id) bool {
	i, ok := d.indexOf(id)
	if !ok {
		return false
	}
	d.tabs = append(d.tabs[:i], d.tabs[i+1:]...)

	if !d.hasAct || d.active != id {
		return true
	}
	switch {
	case len(d.tabs) == 0:
		d.hasAct = false
		d.active = 0
	case i < len(d.tabs):
		d.active = d.tabs[i]
	default:
		d.active = d.tabs[len(d.tabs)-1]
	}
	return true
}

// SetActive makes id the active tab. False if id isn't in the dock.
func (d *Dock) SetActive(id pane.Id) bool {
	if _, ok := d.indexOf(id); !ok {
		return false
	}
	d.active, d.hasAct = id, true
	return true
}

// Next cycles the active tab forward, wrapping. False if the dock is empty.
func (d *Dock) Next() (pane.Id, bool) {
	return d.cycle(1)
}

// Prev cycles the active tab backward, wrapping. False if the dock is empty.
func (d *Dock) Prev() (pane.Id, bool) {
	return d.cycle(-1)
}

func (d *Dock) cycle(delta int) (pane.Id, bool) {
	if len(d.tabs) == 0 {
		return 0, false
	}
	if !d.hasAct {
		d.active, d.hasAct = d.tabs[0], true
		return d.active, true
	}
	i, ok := d.indexOf(d.active)
	if !ok {
		d.active = d.tabs[0]
		return d.active, true
	}
	n := len(d.tabs)
	i = ((i+delta)%n + n) % n
	d.active = d.tabs[i]
	return d.active, true
}
