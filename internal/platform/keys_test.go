package platform

import (
	"testing"

	"gioui.org/io/key"
)

func TestChordString(t *testing.T) {
	cases := []struct {
		event key.Event
		want  string
	}{
		{key.Event{Name: "H", Modifiers: key.ModCtrl | key.ModShift}, "ctrl+shift+h"},
		{key.Event{Name: key.NameLeftArrow, Modifiers: key.ModAlt}, "alt+left"},
		{key.Event{Name: "P", Modifiers: key.ModCtrl}, "ctrl+p"},
		{key.Event{Name: key.NameTab, Modifiers: key.ModCtrl}, "ctrl+tab"},
	}
	for _, c := range cases {
		got, ok := chordString(c.event)
		if !ok {
			t.Fatalf("chordString(%+v) not ok", c.event)
		}
		if got != c.want {
			t.Errorf("chordString(%+v) = %q, want %q", c.event, got, c.want)
		}
	}
}

func TestChordStringRejectsBareModifier(t *testing.T) {
	if _, ok := chordString(key.Event{Name: key.NameCtrl}); ok {
		t.Error("expected bare modifier to be rejected")
	}
}
