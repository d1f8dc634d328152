// Package config holds the root, user-editable configuration: the
// project list, keymap overrides, UI preferences, and feature flags.
// It follows the source's JSON-to-~/.config load/merge/save shape.
package config

// Config is the root configuration structure.
type Config struct {
	Projects ProjectsConfig `json:"projects"`
	Keymap   KeymapConfig   `json:"keymap"`
	UI       UIConfig       `json:"ui"`
	Features FeaturesConfig `json:"features"`
}

// FeaturesConfig holds feature flag settings.
type FeaturesConfig struct {
	Flags map[string]bool `json:"flags"`
}

// ProjectsConfig configures project detection and the project switcher.
type ProjectsConfig struct {
	Mode string          `json:"mode"` // "single" for now
	Root string          `json:"root"` // "." default
	List []ProjectConfig `json:"list"` // configured projects for the switcher
}

// ProjectConfig represents a single project in the project switcher. A
// project is consulted only for its theme override (theme.ResolveTheme);
// terminal panes and the git poller run in the app's working directory.
type ProjectConfig struct {
	Name  string       `json:"name"`            // display name for the project
	Path  string       `json:"path"`            // absolute path to project root (supports ~ expansion)
	Theme *ThemeConfig `json:"theme,omitempty"` // per-project theme (nil = use global)
}

// KeymapConfig holds key binding overrides layered on top of
// keymap.DefaultBindings.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures the chrome geometry and appearance.
type UIConfig struct {
	ShowHeader   bool        `json:"showHeader"`
	SidebarWidth int         `json:"sidebarWidth,omitempty"`
	DockWidth    int         `json:"dockWidth,omitempty"`
	Theme        ThemeConfig `json:"theme"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string                 `json:"name"`
	Overrides map[string]interface{} `json:"overrides,omitempty"` // user customizations on top
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Projects: ProjectsConfig{
			Mode: "single",
			Root: ".",
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowHeader: true,
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]interface{}),
			},
		},
		Features: FeaturesConfig{
			Flags: make(map[string]bool),
		},
	}
}

// Validate checks the configuration for errors, clamping out-of-range
// values to their defaults rather than failing to load.
func (c *Config) Validate() error {
	if c.UI.SidebarWidth < 0 {
		c.UI.SidebarWidth = 0
	}
	if c.UI.DockWidth < 0 {
		c.UI.DockWidth = 0
	}
	return nil
}
