package diffpane

import (
	"testing"

	"github.com/mosaicterm/mosaic/internal/gitpoll"
)

func TestMoveSelectionClampsToTotal(t *testing.T) {
	p := New(1, "/tmp/repo")
	p.status = gitpoll.GitStatus{
		Staged:   []gitpoll.FileEntry{{Path: "a.go"}},
		Modified: []gitpoll.FileEntry{{Path: "b.go"}, {Path: "c.go"}},
	}

	p.MoveSelection(-5)
	if p.Selected() != 0 {
		t.Fatalf("Selected() = %d, want 0 after moving below zero", p.Selected())
	}

	p.MoveSelection(5)
	if p.Selected() != 2 {
		t.Fatalf("Selected() = %d, want 2 (clamped to total-1)", p.Selected())
	}
}

func TestMoveSelectionOnEmptyStatusStaysZero(t *testing.T) {
	p := New(1, "/tmp/repo")
	p.MoveSelection(3)
	if p.Selected() != 0 {
		t.Fatalf("Selected() = %d, want 0 with no changed files", p.Selected())
	}
}

func TestPruneStaleDropsEntriesNoLongerChanged(t *testing.T) {
	p := New(1, "/tmp/repo")
	p.status = gitpoll.GitStatus{
		Modified: []gitpoll.FileEntry{{Path: "a.go"}},
	}
	p.cache[cacheKey("a.go", false)] = gitpoll.ParsedDiff{}
	p.cache[cacheKey("b.go", false)] = gitpoll.ParsedDiff{}
	p.expanded[cacheKey("b.go", false)] = true

	p.pruneStale()

	if _, ok := p.cache[cacheKey("a.go", false)]; !ok {
		t.Errorf("pruneStale dropped a still-changed file's cache entry")
	}
	if _, ok := p.cache[cacheKey("b.go", false)]; ok {
		t.Errorf("pruneStale kept a no-longer-changed file's cache entry")
	}
	if p.expanded[cacheKey("b.go", false)] {
		t.Errorf("pruneStale left a stale file marked expanded")
	}
}

func TestCacheKeyDistinguishesStagedFromUnstaged(t *testing.T) {
	if cacheKey("a.go", true) == cacheKey("a.go", false) {
		t.Fatalf("cacheKey collided between staged and unstaged for the same path")
	}
}

func TestGenerationTicksOnSelectionAndExpandChanges(t *testing.T) {
	p := New(1, "/tmp/repo")
	p.status = gitpoll.GitStatus{Modified: []gitpoll.FileEntry{{Path: "a.go"}, {Path: "b.go"}}}

	g0 := p.Generation()
	p.MoveSelection(1)
	if p.Generation() == g0 {
		t.Errorf("Generation() did not tick after a selection change")
	}

	g1 := p.Generation()
	p.MoveSelection(0)
	if p.Generation() != g1 {
		t.Errorf("Generation() ticked on a no-op selection move")
	}
}
