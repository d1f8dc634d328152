// Package keymap resolves key chords to command names, scoped by context
// (global shortcuts vs. the focused pane's own bindings).
package keymap

// Binding maps a key chord, as a canonical lowercase "ctrl+shift+s"-style
// string, to a command name within a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry holds bindings grouped by context and resolves a (context, key)
// pair to a command, falling back to the "global" context when the
// requested context has no binding for that key.
type Registry struct {
	byContext map[string]map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byContext: make(map[string]map[string]string)}
}

// RegisterBinding adds b, overwriting any existing binding for the same
// (context, key) pair.
func (r *Registry) RegisterBinding(b Binding) {
	m, ok := r.byContext[b.Context]
	if !ok {
		m = make(map[string]string)
		r.byContext[b.Context] = m
	}
	m[b.Key] = b.Command
}

// Resolve looks up key within context, then within "global" if context
// didn't have it (and isn't itself "global"). ok is false if no binding
// matches either.
func (r *Registry) Resolve(context, key string) (command string, ok bool) {
	if m, exists := r.byContext[context]; exists {
		if cmd, found := m[key]; found {
			return cmd, true
		}
	}
	if context != "global" {
		if m, exists := r.byContext["global"]; exists {
			if cmd, found := m[key]; found {
				return cmd, true
			}
		}
	}
	return "", false
}
