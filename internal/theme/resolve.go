// Package theme resolves a project's effective color theme (project
// override > global config > built-in default) and converts it into a
// Palette of concrete RGBA values, since there is no terminal
// here to style with ANSI/lipgloss strings — the renderer paints
// rectangles and glyphs directly from this palette.
package theme

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/mosaicterm/mosaic/internal/config"
)

// ResolvedTheme is the effective theme for one project path: a base
// palette name plus any per-key color overrides layered on top of it.
type ResolvedTheme struct {
	BaseName  string
	Overrides map[string]interface{}
}

// ResolveTheme determines the effective theme for a project path.
// Priority: project.Theme > global UI.Theme > "default".
func ResolveTheme(cfg *config.Config, projectPath string) ResolvedTheme {
	resolved := ResolvedTheme{
		BaseName:  cfg.UI.Theme.Name,
		Overrides: cfg.UI.Theme.Overrides,
	}

	for _, proj := range cfg.Projects.List {
		if proj.Path == projectPath && proj.Theme != nil {
			resolved.BaseName = proj.Theme.Name
			resolved.Overrides = proj.Theme.Overrides
			break
		}
	}

	if resolved.BaseName == "" {
		resolved.BaseName = "default"
	}

	return resolved
}

// Palette is the set of RGBA colors the renderer paints chrome, grid
// backgrounds, and glyph runs with.
type Palette struct {
	Background    color.RGBA
	Foreground    color.RGBA
	Primary       color.RGBA
	Muted         color.RGBA
	Border        color.RGBA
	FocusBorder   color.RGBA
	Selection     color.RGBA
	Cursor        color.RGBA
	Error         color.RGBA
	Warning       color.RGBA
	DirtyIndicator color.RGBA
}

var basePalettes = map[string]Palette{
	"default": {
		Background:     color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
		Foreground:     color.RGBA{0xcd, 0xd6, 0xf4, 0xff},
		Primary:        color.RGBA{0x89, 0xb4, 0xfa, 0xff},
		Muted:          color.RGBA{0x6c, 0x70, 0x86, 0xff},
		Border:         color.RGBA{0x31, 0x32, 0x44, 0xff},
		FocusBorder:    color.RGBA{0x89, 0xb4, 0xfa, 0xff},
		Selection:      color.RGBA{0x45, 0x47, 0x5a, 0xff},
		Cursor:         color.RGBA{0xf5, 0xe0, 0xdc, 0xff},
		Error:          color.RGBA{0xf3, 0x8b, 0xa8, 0xff},
		Warning:        color.RGBA{0xf9, 0xe2, 0xaf, 0xff},
		DirtyIndicator: color.RGBA{0xfa, 0xb3, 0x87, 0xff},
	},
	"dracula": {
		Background:     color.RGBA{0x28, 0x2a, 0x36, 0xff},
		Foreground:     color.RGBA{0xf8, 0xf8, 0xf2, 0xff},
		Primary:        color.RGBA{0xbd, 0x93, 0xf9, 0xff},
		Muted:          color.RGBA{0x62, 0x72, 0xa4, 0xff},
		Border:         color.RGBA{0x44, 0x47, 0x5a, 0xff},
		FocusBorder:    color.RGBA{0xff, 0x79, 0xc6, 0xff},
		Selection:      color.RGBA{0x44, 0x47, 0x5a, 0xff},
		Cursor:         color.RGBA{0xf8, 0xf8, 0xf2, 0xff},
		Error:          color.RGBA{0xff, 0x55, 0x55, 0xff},
		Warning:        color.RGBA{0xf1, 0xfa, 0x8c, 0xff},
		DirtyIndicator: color.RGBA{0xff, 0xb8, 0x6c, 0xff},
	},
	"monokai": {
		Background:     color.RGBA{0x27, 0x28, 0x22, 0xff},
		Foreground:     color.RGBA{0xf8, 0xf8, 0xf2, 0xff},
		Primary:        color.RGBA{0xa6, 0xe2, 0x2e, 0xff},
		Muted:          color.RGBA{0x75, 0x71, 0x5e, 0xff},
		Border:         color.RGBA{0x3e, 0x3d, 0x32, 0xff},
		FocusBorder:    color.RGBA{0xa6, 0xe2, 0x2e, 0xff},
		Selection:      color.RGBA{0x49, 0x48, 0x3e, 0xff},
		Cursor:         color.RGBA{0xf8, 0xf8, 0xf0, 0xff},
		Error:          color.RGBA{0xf9, 0x26, 0x72, 0xff},
		Warning:        color.RGBA{0xe6, 0xdb, 0x74, 0xff},
		DirtyIndicator: color.RGBA{0xfd, 0x97, 0x1f, 0xff},
	},
}

// Resolve converts a ResolvedTheme into a concrete Palette: it looks up
// the base palette by name (falling back to "default" for an unknown
// name) and then applies any #rrggbb[aa] overrides keyed by field name
// (lowercase: "background", "foreground", "primary", "muted", "border",
// "focusborder", "selection", "cursor", "error", "warning",
// "dirtyindicator").
func Resolve(r ResolvedTheme) Palette {
	p, ok := basePalettes[r.BaseName]
	if !ok {
		p = basePalettes["default"]
	}
	for k, v := range r.Overrides {
		s, ok := v.(string)
		if !ok {
			continue
		}
		c, ok := parseHexColor(s)
		if !ok {
			continue
		}
		applyOverride(&p, strings.ToLower(k), c)
	}
	return p
}

func applyOverride(p *Palette, key string, c color.RGBA) {
	switch key {
	case "background":
		p.Background = c
	case "foreground":
		p.Foreground = c
	case "primary":
		p.Primary = c
	case "muted":
		p.Muted = c
	case "border":
		p.Border = c
	case "focusborder":
		p.FocusBorder = c
	case "selection":
		p.Selection = c
	case "cursor":
		p.Cursor = c
	case "error":
		p.Error = c
	case "warning":
		p.Warning = c
	case "dirtyindicator":
		p.DirtyIndicator = c
	}
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa" into an RGBA value.
func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	if len(s) == 6 {
		return color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 0xff,
		}, true
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}
