// Package state persists the small set of UI preferences that survive
// across runs but aren't part of the session snapshot (internal/session):
// sidebar/dock geometry, which side they dock to, dark mode, and the
// last known window size. It mirrors the source's global,
// mutex-guarded, JSON-to-~/.config singleton pattern.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Side names which edge of the window a panel docks to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// State holds persistent UI preferences.
type State struct {
	DarkMode bool `json:"darkMode"`

	SidebarWidth int  `json:"sidebarWidth,omitempty"` // 0 = use default
	DockWidth    int  `json:"dockWidth,omitempty"`    // 0 = use default
	SidebarSide  Side `json:"sidebarSide,omitempty"`
	DockSide     Side `json:"dockSide,omitempty"`

	Fullscreen   bool `json:"fullscreen,omitempty"`
	WindowWidth  int  `json:"windowWidth,omitempty"`
	WindowHeight int  `json:"windowHeight,omitempty"`
}

func defaults() *State {
	return &State{
		DarkMode:     true,
		SidebarSide:  SideLeft,
		DockSide:     SideRight,
		WindowWidth:  1280,
		WindowHeight: 800,
	}
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "mosaic"))
}

// InitWithDir loads state from a specified directory. This is primarily
// for testing, to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func ensure() {
	if current == nil {
		current = defaults()
	}
}

// GetDarkMode returns whether dark mode is enabled.
func GetDarkMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return true
	}
	return current.DarkMode
}

// SetDarkMode saves the dark mode preference.
func SetDarkMode(v bool) error {
	mu.Lock()
	ensure()
	current.DarkMode = v
	mu.Unlock()
	return Save()
}

// GetSidebarWidth returns the saved sidebar width, or 0 if unset.
func GetSidebarWidth() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.SidebarWidth
}

// SetSidebarWidth saves the sidebar width.
func SetSidebarWidth(width int) error {
	mu.Lock()
	ensure()
	current.SidebarWidth = width
	mu.Unlock()
	return Save()
}

// GetDockWidth returns the saved dock width, or 0 if unset.
func GetDockWidth() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.DockWidth
}

// SetDockWidth saves the dock width.
func SetDockWidth(width int) error {
	mu.Lock()
	ensure()
	current.DockWidth = width
	mu.Unlock()
	return Save()
}

// GetSidebarSide returns which edge the sidebar docks to.
func GetSidebarSide() Side {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.SidebarSide == "" {
		return SideLeft
	}
	return current.SidebarSide
}

// SetSidebarSide saves which edge the sidebar docks to.
func SetSidebarSide(side Side) error {
	mu.Lock()
	ensure()
	current.SidebarSide = side
	mu.Unlock()
	return Save()
}

// GetDockSide returns which edge the editor dock docks to.
func GetDockSide() Side {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.DockSide == "" {
		return SideRight
	}
	return current.DockSide
}

// SetDockSide saves which edge the editor dock docks to.
func SetDockSide(side Side) error {
	mu.Lock()
	ensure()
	current.DockSide = side
	mu.Unlock()
	return Save()
}

// GetFullscreen returns the saved fullscreen flag.
func GetFullscreen() bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return false
	}
	return current.Fullscreen
}

// SetFullscreen saves the fullscreen flag.
func SetFullscreen(v bool) error {
	mu.Lock()
	ensure()
	current.Fullscreen = v
	mu.Unlock()
	return Save()
}

// GetWindowSize returns the saved window size in physical pixels.
func GetWindowSize() (width, height int) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 1280, 800
	}
	return current.WindowWidth, current.WindowHeight
}

// SetWindowSize saves the window size in physical pixels.
func SetWindowSize(width, height int) error {
	mu.Lock()
	ensure()
	current.WindowWidth = width
	current.WindowHeight = height
	mu.Unlock()
	return Save()
}
