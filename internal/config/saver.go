package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the config to ~/.config/mosaic/config.json
func Save(cfg *Config) error {
	path := ConfigPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(themeName string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	cfg.UI.Theme.Overrides = nil
	return Save(cfg)
}

// SaveThemeWithOverrides saves a theme name and full overrides map to config.
func SaveThemeWithOverrides(themeName string, overrides map[string]interface{}) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	cfg.UI.Theme.Overrides = overrides
	return Save(cfg)
}

// SaveProjectTheme updates a specific project's theme in config and saves.
func SaveProjectTheme(projectPath string, theme *ThemeConfig) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	for i, proj := range cfg.Projects.List {
		if proj.Path == projectPath {
			cfg.Projects.List[i].Theme = theme
			return Save(cfg)
		}
	}
	return fmt.Errorf("project not found: %s", projectPath)
}

// SaveGlobalTheme saves a ThemeConfig as the global UI theme.
func SaveGlobalTheme(tc ThemeConfig) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme = tc
	return Save(cfg)
}
