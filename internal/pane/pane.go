// Package pane defines the pane identity and content model: the tagged
// union of content a layout leaf or dock tab can hold, and the registry
// that owns it.
package pane

import "sync"

// Id is an opaque, stable identifier allocated by the layout engine.
type Id uint64

// Kind tags which variant a Pane holds.
type Kind int

const (
	KindTerminal Kind = iota
	KindEditor
	KindDiff
	KindBrowser
	KindApp
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindEditor:
		return "editor"
	case KindDiff:
		return "diff"
	case KindBrowser:
		return "browser"
	case KindApp:
		return "app"
	default:
		return "unknown"
	}
}

// Content is implemented by each pane variant's payload. It is kept
// intentionally small: the registry and layout tree never need to know
// anything about a pane beyond its kind and content generation.
type Content interface {
	Kind() Kind
	// Generation returns the monotonically increasing counter that ticks
	// whenever this pane's cached draw list would be stale.
	Generation() uint64
	// Title is a short display name for tab bars and the header.
	Title() string
	// Close is called once when the pane is removed from both the layout
	// tree and the dock. Implementations release any OS resources (PTYs,
	// file watches) here.
	Close()
}

// DirtyConfirmer is implemented by pane content that must block a close
// behind a user confirmation (editors with unsaved changes).
type DirtyConfirmer interface {
	IsDirty() bool
}

// Registry owns the PaneId -> Pane mapping. The layout tree and the dock
// tab list hold only Ids; they never hold a Content reference directly,
// which is what keeps the tree free of back-references into panes.
type Registry struct {
	mu     sync.Mutex
	nextID Id
	panes  map[Id]Content
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{panes: make(map[Id]Content)}
}

// Alloc reserves a new, never-before-used Id. It does not register any
// content; the caller inserts content with Put once the pane is built.
func (r *Registry) Alloc() Id {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

// Put registers content under id, replacing any previous content.
func (r *Registry) Put(id Id, c Content) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panes[id] = c
}

// Get resolves id to its content. ok is false for an orphan id (one
// referenced by the tree or dock but not present in the registry, or a
// dangling id after Remove); callers must treat this as "prune it", never
// as a panic condition.
func (r *Registry) Get(id Id) (Content, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.panes[id]
	return c, ok
}

// Remove closes and deletes the pane's content. It is a no-op if the id
// isn't registered.
func (r *Registry) Remove(id Id) {
	r.mu.Lock()
	c, ok := r.panes[id]
	delete(r.panes, id)
	r.mu.Unlock()
	if ok {
		c.Close()
	}
}

// Len returns the number of registered panes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.panes)
}

// Ids returns a snapshot of all registered pane ids, in no particular order.
func (r *Registry) Ids() []Id {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]Id, 0, len(r.panes))
	for id := range r.panes {
		ids = append(ids, id)
	}
	return ids
}
