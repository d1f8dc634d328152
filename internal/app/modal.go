package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mosaicterm/mosaic/internal/input"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// modalKind identifies which app-level modal is open; modalNone means
// none is.
type modalKind int

const (
	modalNone modalKind = iota
	modalFileFinder
	modalQuitConfirm
)

// modalState holds every modal's state; only one is live at a time,
// selected by kind. activeModal is trivial here since there's no
// separate show* bool per modal — kind itself is the single source of
// truth.
type modalState struct {
	kind modalKind

	// file finder
	query      string
	candidates []string
	matches    []string
	selected   int

	// quit confirm
	pendingClose pane.Id
}

func (a *App) activeModal() modalKind { return a.modal.kind }

func (a *App) closeModal() {
	a.modal = modalState{}
	a.session.BumpChrome()
}

// openFileFinder lists every regular file under workDir (skipping .git
// and other dot-directories) for the ctrl+p fuzzy-ish substring finder.
func (a *App) openFileFinder() {
	var candidates []string
	_ = filepath.WalkDir(a.workDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(a.workDir, path)
		if err != nil {
			return nil
		}
		candidates = append(candidates, rel)
		return nil
	})
	sort.Strings(candidates)
	a.modal = modalState{kind: modalFileFinder, candidates: candidates, matches: candidates}
	a.session.BumpChrome()
}

func (a *App) openQuitConfirm(id pane.Id) {
	a.modal = modalState{kind: modalQuitConfirm, pendingClose: id}
	a.session.BumpChrome()
}

// handleModalInput routes input while a modal is open. Only key presses
// matter; clicks/scroll/drag outside a modal are swallowed rather than
// falling through to pane content underneath.
func (a *App) handleModalInput(ev input.Event) {
	if ev.Kind != input.KeyPress {
		return
	}
	switch a.modal.kind {
	case modalFileFinder:
		a.handleFileFinderKey(ev.Key)
	case modalQuitConfirm:
		a.handleQuitConfirmKey(ev.Key)
	}
}

func (a *App) handleFileFinderKey(key string) {
	switch key {
	case "escape":
		a.closeModal()
	case "enter":
		if len(a.modal.matches) == 0 {
			return
		}
		path := filepath.Join(a.workDir, a.modal.matches[a.modal.selected])
		a.closeModal()
		a.openEditor(path)
	case "up":
		if a.modal.selected > 0 {
			a.modal.selected--
			a.session.BumpChrome()
		}
	case "down":
		if a.modal.selected < len(a.modal.matches)-1 {
			a.modal.selected++
			a.session.BumpChrome()
		}
	case "backspace":
		if len(a.modal.query) > 0 {
			a.modal.query = a.modal.query[:len(a.modal.query)-1]
			a.refilterFileFinder()
		}
	default:
		if r, ok := singleRune(key); ok {
			a.modal.query += string(r)
			a.refilterFileFinder()
		}
	}
}

func (a *App) refilterFileFinder() {
	q := strings.ToLower(a.modal.query)
	if q == "" {
		a.modal.matches = a.modal.candidates
	} else {
		matches := make([]string, 0, len(a.modal.candidates))
		for _, c := range a.modal.candidates {
			if strings.Contains(strings.ToLower(c), q) {
				matches = append(matches, c)
			}
		}
		a.modal.matches = matches
	}
	if a.modal.selected >= len(a.modal.matches) {
		a.modal.selected = 0
	}
	a.session.BumpChrome()
}

func (a *App) handleQuitConfirmKey(key string) {
	switch key {
	case "enter", "y":
		id := a.modal.pendingClose
		a.closeModal()
		a.removePane(id)
	case "escape", "n":
		a.closeModal()
	}
}
