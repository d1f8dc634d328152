package pane

import "testing"

type fakeContent struct {
	kind   Kind
	closed bool
}

func (f *fakeContent) Kind() Kind        { return f.kind }
func (f *fakeContent) Generation() uint64 { return 0 }
func (f *fakeContent) Title() string     { return "fake" }
func (f *fakeContent) Close()            { f.closed = true }

func TestAllocNeverReusesAnId(t *testing.T) {
	r := NewRegistry()
	seen := make(map[Id]bool)
	for i := 0; i < 100; i++ {
		id := r.Alloc()
		if seen[id] {
			t.Fatalf("Alloc() returned duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestGetUnregisteredIdIsNotOk(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get(999); ok {
		t.Fatalf("Get(999) on an empty registry reported ok=true")
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	r := NewRegistry()
	id := r.Alloc()
	c := &fakeContent{kind: KindEditor}
	r.Put(id, c)

	got, ok := r.Get(id)
	if !ok || got != c {
		t.Fatalf("Get(%d) = (%v, %v), want the content just Put", id, got, ok)
	}
}

func TestRemoveClosesContentAndPrunesId(t *testing.T) {
	r := NewRegistry()
	id := r.Alloc()
	c := &fakeContent{kind: KindTerminal}
	r.Put(id, c)

	r.Remove(id)

	if !c.closed {
		t.Errorf("Remove did not call Close on the removed pane's content")
	}
	if _, ok := r.Get(id); ok {
		t.Errorf("Get(%d) still ok after Remove", id)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after removing the only pane", r.Len())
	}
}

func TestRemoveUnregisteredIdIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Remove(42) // must not panic
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestIdsReturnsAllRegisteredPanes(t *testing.T) {
	r := NewRegistry()
	var want []Id
	for i := 0; i < 5; i++ {
		id := r.Alloc()
		r.Put(id, &fakeContent{kind: KindApp})
		want = append(want, id)
	}

	got := r.Ids()
	if len(got) != len(want) {
		t.Fatalf("Ids() returned %d ids, want %d", len(got), len(want))
	}
	seen := make(map[Id]bool, len(got))
	for _, id := range got {
		seen[id] = true
	}
	for _, id := range want {
		if !seen[id] {
			t.Errorf("Ids() missing %d", id)
		}
	}
}

func TestKindStringCoversAllVariants(t *testing.T) {
	cases := map[Kind]string{
		KindTerminal: "terminal",
		KindEditor:   "editor",
		KindDiff:     "diff",
		KindBrowser:  "browser",
		KindApp:      "app",
		Kind(99):     "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
