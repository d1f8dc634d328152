package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDir  = ".config/mosaic"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Projects rawProjectsConfig `json:"projects"`
	Keymap   KeymapConfig      `json:"keymap"`
	UI       UIConfig          `json:"ui"`
	Features FeaturesConfig    `json:"features"`
}

type rawProjectsConfig struct {
	Mode string             `json:"mode"`
	Root string             `json:"root"`
	List []rawProjectConfig `json:"list"`
}

type rawProjectConfig struct {
	Name  string       `json:"name"`
	Path  string       `json:"path"`
	Theme *ThemeConfig `json:"theme"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/mosaic/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	for i := range cfg.Projects.List {
		cfg.Projects.List[i].Path = ExpandPath(cfg.Projects.List[i].Path)
		if _, err := os.Stat(cfg.Projects.List[i].Path); os.IsNotExist(err) {
			slog.Warn("project path not found", "name", cfg.Projects.List[i].Name, "path", cfg.Projects.List[i].Path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Projects.Mode != "" {
		cfg.Projects.Mode = raw.Projects.Mode
	}
	if raw.Projects.Root != "" {
		cfg.Projects.Root = raw.Projects.Root
	}
	if len(raw.Projects.List) > 0 {
		cfg.Projects.List = make([]ProjectConfig, len(raw.Projects.List))
		for i, rp := range raw.Projects.List {
			cfg.Projects.List[i] = ProjectConfig{
				Name:  rp.Name,
				Path:  rp.Path,
				Theme: rp.Theme,
			}
		}
	}

	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}

	cfg.UI.ShowHeader = raw.UI.ShowHeader
	if raw.UI.SidebarWidth != 0 {
		cfg.UI.SidebarWidth = raw.UI.SidebarWidth
	}
	if raw.UI.DockWidth != 0 {
		cfg.UI.DockWidth = raw.UI.DockWidth
	}
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
	if raw.UI.Theme.Overrides != nil {
		for k, v := range raw.UI.Theme.Overrides {
			cfg.UI.Theme.Overrides[k] = v
		}
	}

	if raw.Features.Flags != nil {
		for k, v := range raw.Features.Flags {
			cfg.Features.Flags[k] = v
		}
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
