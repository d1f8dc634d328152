package keymap

import "testing"

func TestResolveContextBindingWins(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "ctrl+s", Command: "save", Context: "global"})
	r.RegisterBinding(Binding{Key: "ctrl+s", Command: "save-as", Context: "editor"})

	cmd, ok := r.Resolve("editor", "ctrl+s")
	if !ok || cmd != "save-as" {
		t.Fatalf("Resolve(editor, ctrl+s) = (%q, %v), want (save-as, true)", cmd, ok)
	}
}

func TestResolveFallsBackToGlobal(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "alt+h", Command: "nav-left", Context: "global"})

	cmd, ok := r.Resolve("editor", "alt+h")
	if !ok || cmd != "nav-left" {
		t.Fatalf("Resolve(editor, alt+h) = (%q, %v), want (nav-left, true) via global fallback", cmd, ok)
	}
}

func TestResolveUnknownKeyFails(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "ctrl+s", Command: "save", Context: "global"})

	if _, ok := r.Resolve("editor", "ctrl+q"); ok {
		t.Fatalf("Resolve found a binding for an unregistered key")
	}
}

func TestRegisterBindingOverwritesSameContextAndKey(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "ctrl+p", Command: "file-finder", Context: "global"})
	r.RegisterBinding(Binding{Key: "ctrl+p", Command: "command-palette", Context: "global"})

	cmd, ok := r.Resolve("global", "ctrl+p")
	if !ok || cmd != "command-palette" {
		t.Fatalf("Resolve(global, ctrl+p) = (%q, %v), want (command-palette, true)", cmd, ok)
	}
}

func TestResolveGlobalContextDoesNotDoubleFallback(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "ctrl+s", Command: "save", Context: "editor"})

	if _, ok := r.Resolve("global", "ctrl+s"); ok {
		t.Fatalf("Resolve(global, ...) should not pick up an editor-only binding")
	}
}

func TestDefaultBindingsResolveGlobalShortcuts(t *testing.T) {
	r := NewRegistry()
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}

	cases := map[string]string{
		"ctrl+shift+h": "split-horizontal",
		"ctrl+shift+v": "split-vertical",
		"ctrl+shift+w": "close-pane",
		"alt+h":        "nav-left",
		"ctrl+tab":     "dock-next",
	}
	for key, want := range cases {
		cmd, ok := r.Resolve("global", key)
		if !ok || cmd != want {
			t.Errorf("Resolve(global, %q) = (%q, %v), want (%q, true)", key, cmd, ok, want)
		}
	}
}
