package keymap

// DefaultBindings returns the built-in key bindings. Global entries are the
// shortcuts the input router recognizes before ever routing a key to a
// pane; editor/terminal entries layer pane-local bindings the router falls
// back to global for when the focused pane's context has no match.
func DefaultBindings() []Binding {
	return []Binding{
		// Pane management.
		{Key: "ctrl+shift+h", Command: "split-horizontal", Context: "global"},
		{Key: "ctrl+shift+v", Command: "split-vertical", Context: "global"},
		{Key: "ctrl+shift+w", Command: "close-pane", Context: "global"},
		{Key: "ctrl+shift+x", Command: "zoom-toggle", Context: "global"},
		{Key: "ctrl+1", Command: "focus-area-1", Context: "global"},
		{Key: "ctrl+2", Command: "focus-area-2", Context: "global"},
		{Key: "ctrl+3", Command: "focus-area-3", Context: "global"},
		{Key: "ctrl+4", Command: "focus-area-4", Context: "global"},
		{Key: "ctrl+5", Command: "focus-area-5", Context: "global"},
		{Key: "ctrl+6", Command: "focus-area-6", Context: "global"},
		{Key: "ctrl+7", Command: "focus-area-7", Context: "global"},
		{Key: "ctrl+8", Command: "focus-area-8", Context: "global"},
		{Key: "ctrl+9", Command: "focus-area-9", Context: "global"},

		// Directional navigation between panes.
		{Key: "alt+h", Command: "nav-left", Context: "global"},
		{Key: "alt+l", Command: "nav-right", Context: "global"},
		{Key: "alt+k", Command: "nav-up", Context: "global"},
		{Key: "alt+j", Command: "nav-down", Context: "global"},
		{Key: "alt+left", Command: "nav-left", Context: "global"},
		{Key: "alt+right", Command: "nav-right", Context: "global"},
		{Key: "alt+up", Command: "nav-up", Context: "global"},
		{Key: "alt+down", Command: "nav-down", Context: "global"},
		{Key: "alt+shift+left", Command: "focus-history-back", Context: "global"},
		{Key: "alt+shift+right", Command: "focus-history-forward", Context: "global"},

		// Dock / tab stack.
		{Key: "ctrl+tab", Command: "dock-next", Context: "global"},
		{Key: "ctrl+shift+tab", Command: "dock-prev", Context: "global"},

		// File and document actions.
		{Key: "ctrl+p", Command: "file-finder", Context: "global"},
		{Key: "ctrl+n", Command: "new-file", Context: "global"},
		{Key: "ctrl+s", Command: "save", Context: "global"},
		{Key: "ctrl+z", Command: "undo", Context: "global"},
		{Key: "ctrl+shift+z", Command: "redo", Context: "global"},
		{Key: "ctrl+y", Command: "redo", Context: "global"},
		{Key: "ctrl+f", Command: "find", Context: "global"},
		{Key: "ctrl+shift+d", Command: "open-diff", Context: "global"},
		{Key: "ctrl+shift+y", Command: "copy-visible-text", Context: "global"},

		// Editor-local bindings (fall back to global for anything else).
		{Key: "ctrl+g", Command: "find-next", Context: "editor"},
		{Key: "ctrl+shift+g", Command: "find-prev", Context: "editor"},
		{Key: "ctrl+slash", Command: "toggle-comment", Context: "editor"},
		{Key: "ctrl+shift+m", Command: "markdown-preview", Context: "editor"},

		// Terminal-local bindings.
		{Key: "ctrl+shift+c", Command: "copy-selection", Context: "terminal"},
		{Key: "ctrl+shift+v", Command: "paste", Context: "terminal"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
