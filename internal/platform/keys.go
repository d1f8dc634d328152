package platform

import (
	"strings"

	"gioui.org/io/key"
)

// chordString renders a gio key.Event into the canonical
// "ctrl+shift+x"-style chord string internal/keymap.Binding.Key uses:
// modifiers in ctrl, alt, cmd, shift order, lowercase, joined by "+". ok is
// false for a bare modifier press, which carries no chord of its own.
func chordString(e key.Event) (string, bool) {
	name, ok := keyName(e.Name)
	if !ok {
		return "", false
	}

	var parts []string
	if e.Modifiers.Contain(key.ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if e.Modifiers.Contain(key.ModAlt) {
		parts = append(parts, "alt")
	}
	if e.Modifiers.Contain(key.ModCommand) {
		parts = append(parts, "cmd")
	}
	if e.Modifiers.Contain(key.ModShift) {
		parts = append(parts, "shift")
	}
	parts = append(parts, name)
	return strings.Join(parts, "+"), true
}

// keyName maps gio's named keys to the lowercase tokens bindings.go
// uses, and rejects bare modifier keys (Ctrl/Shift/Alt/Command by
// themselves produce no event of their own).
func keyName(n key.Name) (string, bool) {
	switch n {
	case key.NameLeftArrow:
		return "left", true
	case key.NameRightArrow:
		return "right", true
	case key.NameUpArrow:
		return "up", true
	case key.NameDownArrow:
		return "down", true
	case key.NameTab:
		return "tab", true
	case key.NameReturn, key.NameEnter:
		return "enter", true
	case key.NameEscape:
		return "escape", true
	case key.NameDeleteBackward:
		return "backspace", true
	case key.NameDeleteForward:
		return "delete", true
	case key.NameSpace:
		return "space", true
	case key.NameHome:
		return "home", true
	case key.NameEnd:
		return "end", true
	case key.NamePageUp:
		return "pageup", true
	case key.NamePageDown:
		return "pagedown", true
	case key.NameCtrl, key.NameAlt, key.NameShift, key.NameCommand, key.NameSuper:
		return "", false
	case "/":
		return "slash", true
	default:
		return strings.ToLower(string(n)), true
	}
}
