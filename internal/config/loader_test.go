package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Projects.Mode != "single" {
		t.Errorf("default Projects.Mode = %q, want single", cfg.Projects.Mode)
	}
	if cfg.UI.Theme.Name != "default" {
		t.Errorf("default UI.Theme.Name = %q, want default", cfg.UI.Theme.Name)
	}
}

func TestLoadFrom_MergesProjectsAndTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"projects": {"mode": "single", "root": ".", "list": [
			{"name": "api", "path": "~/code/api"}
		]},
		"ui": {"showHeader": true, "sidebarWidth": 280, "theme": {"name": "dracula"}},
		"keymap": {"overrides": {"ctrl+s": "save-all"}},
		"features": {"flags": {"experimental-ime": true}}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if len(cfg.Projects.List) != 1 {
		t.Fatalf("got %d projects, want 1", len(cfg.Projects.List))
	}
	if cfg.Projects.List[0].Name != "api" {
		t.Errorf("project name = %q, want api", cfg.Projects.List[0].Name)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "code/api"); cfg.Projects.List[0].Path != want {
		t.Errorf("project path = %q, want %q (expanded)", cfg.Projects.List[0].Path, want)
	}

	if cfg.UI.Theme.Name != "dracula" {
		t.Errorf("UI.Theme.Name = %q, want dracula", cfg.UI.Theme.Name)
	}
	if cfg.UI.SidebarWidth != 280 {
		t.Errorf("UI.SidebarWidth = %d, want 280", cfg.UI.SidebarWidth)
	}
	if cfg.Keymap.Overrides["ctrl+s"] != "save-all" {
		t.Errorf("keymap override not merged: %+v", cfg.Keymap.Overrides)
	}
	if !cfg.Features.Flags["experimental-ime"] {
		t.Error("feature flag not merged")
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestValidate_ClampsNegativeWidths(t *testing.T) {
	cfg := Default()
	cfg.UI.SidebarWidth = -10
	cfg.UI.DockWidth = -5

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.UI.SidebarWidth != 0 {
		t.Errorf("SidebarWidth = %d, want 0 after validation", cfg.UI.SidebarWidth)
	}
	if cfg.UI.DockWidth != 0 {
		t.Errorf("DockWidth = %d, want 0 after validation", cfg.UI.DockWidth)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := ExpandPath("~/foo"); got != filepath.Join(home, "foo") {
		t.Errorf("ExpandPath(~/foo) = %q, want %q", got, filepath.Join(home, "foo"))
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(abs) = %q, want unchanged", got)
	}
}
