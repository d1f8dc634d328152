package theme

import (
	"image/color"
	"testing"

	"github.com/mosaicterm/mosaic/internal/config"
)

func TestResolveTheme(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		projectPath string
		want        ResolvedTheme
	}{
		{
			name: "global theme only, no projects",
			cfg: &config.Config{
				UI: config.UIConfig{
					Theme: config.ThemeConfig{Name: "dracula"},
				},
			},
			projectPath: "/some/path",
			want:        ResolvedTheme{BaseName: "dracula"},
		},
		{
			name: "project without theme field falls back to global",
			cfg: &config.Config{
				UI: config.UIConfig{
					Theme: config.ThemeConfig{Name: "monokai"},
				},
				Projects: config.ProjectsConfig{
					List: []config.ProjectConfig{
						{Name: "proj", Path: "/code/proj"},
					},
				},
			},
			projectPath: "/code/proj",
			want:        ResolvedTheme{BaseName: "monokai"},
		},
		{
			name: "project with theme overrides global",
			cfg: &config.Config{
				UI: config.UIConfig{
					Theme: config.ThemeConfig{Name: "monokai"},
				},
				Projects: config.ProjectsConfig{
					List: []config.ProjectConfig{
						{Name: "proj", Path: "/code/proj", Theme: &config.ThemeConfig{Name: "dracula"}},
					},
				},
			},
			projectPath: "/code/proj",
			want:        ResolvedTheme{BaseName: "dracula"},
		},
		{
			name: "empty base name defaults to default",
			cfg: &config.Config{
				UI: config.UIConfig{
					Theme: config.ThemeConfig{Name: ""},
				},
			},
			projectPath: "/code/proj",
			want:        ResolvedTheme{BaseName: "default"},
		},
		{
			name: "overrides propagated from global",
			cfg: &config.Config{
				UI: config.UIConfig{
					Theme: config.ThemeConfig{
						Name:      "default",
						Overrides: map[string]interface{}{"primary": "#ff0000"},
					},
				},
			},
			projectPath: "/code/proj",
			want: ResolvedTheme{
				BaseName:  "default",
				Overrides: map[string]interface{}{"primary": "#ff0000"},
			},
		},
		{
			name: "project overrides replace global overrides",
			cfg: &config.Config{
				UI: config.UIConfig{
					Theme: config.ThemeConfig{
						Name:      "default",
						Overrides: map[string]interface{}{"primary": "#ff0000"},
					},
				},
				Projects: config.ProjectsConfig{
					List: []config.ProjectConfig{
						{Name: "proj", Path: "/code/proj", Theme: &config.ThemeConfig{
							Name:      "default",
							Overrides: map[string]interface{}{"primary": "#00ff00"},
						}},
					},
				},
			},
			projectPath: "/code/proj",
			want: ResolvedTheme{
				BaseName:  "default",
				Overrides: map[string]interface{}{"primary": "#00ff00"},
			},
		},
		{
			name: "unmatched project path uses global",
			cfg: &config.Config{
				UI: config.UIConfig{
					Theme: config.ThemeConfig{Name: "dracula"},
				},
				Projects: config.ProjectsConfig{
					List: []config.ProjectConfig{
						{Name: "other", Path: "/code/other", Theme: &config.ThemeConfig{Name: "monokai"}},
					},
				},
			},
			projectPath: "/code/proj",
			want:        ResolvedTheme{BaseName: "dracula"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTheme(tt.cfg, tt.projectPath)
			if got.BaseName != tt.want.BaseName {
				t.Errorf("BaseName = %q, want %q", got.BaseName, tt.want.BaseName)
			}
			if len(got.Overrides) != len(tt.want.Overrides) {
				t.Errorf("Overrides len = %d, want %d", len(got.Overrides), len(tt.want.Overrides))
			}
			for k, wantV := range tt.want.Overrides {
				if gotV, ok := got.Overrides[k]; !ok || gotV != wantV {
					t.Errorf("Overrides[%q] = %v, want %v", k, gotV, wantV)
				}
			}
		})
	}
}

func TestResolvePalette(t *testing.T) {
	t.Run("unknown base name falls back to default", func(t *testing.T) {
		p := Resolve(ResolvedTheme{BaseName: "not-a-real-theme"})
		if p != basePalettes["default"] {
			t.Error("unknown theme name should resolve to the default palette")
		}
	})

	t.Run("known base name selects its palette", func(t *testing.T) {
		p := Resolve(ResolvedTheme{BaseName: "dracula"})
		if p != basePalettes["dracula"] {
			t.Error("dracula theme should resolve to the dracula palette")
		}
	})

	t.Run("override replaces one field only", func(t *testing.T) {
		p := Resolve(ResolvedTheme{
			BaseName:  "default",
			Overrides: map[string]interface{}{"primary": "#ff0000"},
		})
		want := color.RGBA{0xff, 0x00, 0x00, 0xff}
		if p.Primary != want {
			t.Errorf("Primary = %+v, want %+v", p.Primary, want)
		}
		if p.Background != basePalettes["default"].Background {
			t.Error("unrelated fields should be untouched by an override")
		}
	})

	t.Run("unparsable override is ignored", func(t *testing.T) {
		p := Resolve(ResolvedTheme{
			BaseName:  "default",
			Overrides: map[string]interface{}{"primary": "not-a-color"},
		})
		if p.Primary != basePalettes["default"].Primary {
			t.Error("malformed override should leave the base value in place")
		}
	})

	t.Run("rrggbbaa override parses alpha", func(t *testing.T) {
		p := Resolve(ResolvedTheme{
			BaseName:  "default",
			Overrides: map[string]interface{}{"background": "#11223344"},
		})
		want := color.RGBA{0x11, 0x22, 0x33, 0x44}
		if p.Background != want {
			t.Errorf("Background = %+v, want %+v", p.Background, want)
		}
	})
}
