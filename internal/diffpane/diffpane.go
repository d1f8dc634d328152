// Package diffpane implements the Diff pane variant: a file list grouped
// into staged/modified/untracked buckets, each row lazily expandable
// into its unified diff, populated only on toggle rather than eagerly
// for every changed file, with the actual status/diff data sourced from
// internal/gitpoll.
package diffpane

import (
	"fmt"

	"github.com/mosaicterm/mosaic/internal/gitpoll"
	"github.com/mosaicterm/mosaic/internal/pane"
)

// Pane is a pane.Content presenting one repository's working-tree
// status, with per-file diffs loaded on demand.
type Pane struct {
	id      pane.Id
	workDir string

	status gitpoll.GitStatus

	expanded map[string]bool
	cache    map[string]gitpoll.ParsedDiff

	history []gitpoll.HistoryEntry

	selected   int
	generation uint64
}

// New creates a diff pane rooted at workDir. Call Refresh to populate
// its initial status.
func New(id pane.Id, workDir string) *Pane {
	return &Pane{
		id:       id,
		workDir:  workDir,
		expanded: make(map[string]bool),
		cache:    make(map[string]gitpoll.ParsedDiff),
	}
}

func (p *Pane) Kind() pane.Kind     { return pane.KindDiff }
func (p *Pane) Title() string       { return "Changes" }
func (p *Pane) Generation() uint64  { return p.generation }
func (p *Pane) Close()              {}

// Status returns the most recently refreshed git status.
func (p *Pane) Status() gitpoll.GitStatus { return p.status }

// Refresh re-runs the status poll and drops any cached diffs whose file
// is no longer changed, so a file staged/unstaged between refreshes
// doesn't show a stale diff under the wrong bucket.
func (p *Pane) Refresh() error {
	st, err := gitpoll.RefreshStatus(p.workDir)
	if err != nil {
		return err
	}
	p.status = st
	p.pruneStale()
	p.generation++
	return nil
}

func (p *Pane) pruneStale() {
	live := make(map[string]bool, p.status.TotalCount())
	for _, e := range p.status.Staged {
		live[cacheKey(e.Path, true)] = true
	}
	for _, e := range p.status.Modified {
		live[cacheKey(e.Path, false)] = true
	}
	for key := range p.cache {
		if !live[key] {
			delete(p.cache, key)
			delete(p.expanded, key)
		}
	}
}

func cacheKey(path string, staged bool) string {
	if staged {
		return "staged:" + path
	}
	return "unstaged:" + path
}

// IsExpanded reports whether path's diff is currently shown.
func (p *Pane) IsExpanded(path string, staged bool) bool {
	return p.expanded[cacheKey(path, staged)]
}

// ToggleExpand flips path's expanded state, lazily loading and caching
// its diff on first expand the way diff_pane.rs's toggle_expand does.
func (p *Pane) ToggleExpand(path string, staged bool) error {
	key := cacheKey(path, staged)
	if p.expanded[key] {
		p.expanded[key] = false
		p.generation++
		return nil
	}
	if _, ok := p.cache[key]; !ok {
		diff, err := gitpoll.FileDiff(p.workDir, path, staged)
		if err != nil {
			return fmt.Errorf("diff %s: %w", path, err)
		}
		p.cache[key] = diff
	}
	p.expanded[key] = true
	p.generation++
	return nil
}

// Diff returns the cached parsed diff for path, if it has been expanded
// at least once since the last refresh.
func (p *Pane) Diff(path string, staged bool) (gitpoll.ParsedDiff, bool) {
	d, ok := p.cache[cacheKey(path, staged)]
	return d, ok
}

// SetHistory replaces the recent-commit list shown below the status
// buckets, as loaded through gitpoll.HistoryCache.
func (p *Pane) SetHistory(entries []gitpoll.HistoryEntry) {
	p.history = entries
	p.generation++
}

// History returns the recent-commit list, oldest last.
func (p *Pane) History() []gitpoll.HistoryEntry {
	return p.history
}

// Selected is the index of the highlighted row across the combined
// staged+modified+untracked listing, for keyboard navigation.
func (p *Pane) Selected() int { return p.selected }

// MoveSelection shifts the selected row by delta, clamped to the
// current total file count.
func (p *Pane) MoveSelection(delta int) {
	total := p.status.TotalCount()
	if total == 0 {
		p.selected = 0
		return
	}
	next := p.selected + delta
	if next < 0 {
		next = 0
	}
	if next > total-1 {
		next = total - 1
	}
	if next != p.selected {
		p.selected = next
		p.generation++
	}
}
