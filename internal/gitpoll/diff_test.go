package gitpoll

import "testing"

func TestParseUnifiedDiff(t *testing.T) {
	text := `diff --git a/foo.go b/foo.go
index abc123..def456 100644
--- a/foo.go
+++ b/foo.go
@@ -1,3 +1,4 @@
 package foo
+import "fmt"
-func old() {}
 func new() {}
`
	pd := ParseUnifiedDiff("foo.go", text)
	if pd.Path != "foo.go" {
		t.Fatalf("Path = %q, want foo.go", pd.Path)
	}
	if len(pd.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(pd.Hunks))
	}
	h := pd.Hunks[0]
	if h.Header != "@@ -1,3 +1,4 @@" {
		t.Errorf("Header = %q", h.Header)
	}
	want := []DiffLine{
		{Kind: LineContext, Text: "package foo"},
		{Kind: LineAdded, Text: `import "fmt"`},
		{Kind: LineRemoved, Text: "func old() {}"},
		{Kind: LineContext, Text: "func new() {}"},
	}
	if len(h.Lines) != len(want) {
		t.Fatalf("len(Lines) = %d, want %d", len(h.Lines), len(want))
	}
	for i, w := range want {
		if h.Lines[i] != w {
			t.Errorf("Lines[%d] = %+v, want %+v", i, h.Lines[i], w)
		}
	}
}

func TestParseUnifiedDiffMultipleHunks(t *testing.T) {
	text := `diff --git a/bar.go b/bar.go
--- a/bar.go
+++ b/bar.go
@@ -1,1 +1,1 @@
-old line
+new line
@@ -10,1 +10,1 @@
 unchanged
`
	pd := ParseUnifiedDiff("bar.go", text)
	if len(pd.Hunks) != 2 {
		t.Fatalf("len(Hunks) = %d, want 2", len(pd.Hunks))
	}
	if len(pd.Hunks[0].Lines) != 2 {
		t.Errorf("hunk 0 len(Lines) = %d, want 2", len(pd.Hunks[0].Lines))
	}
	if len(pd.Hunks[1].Lines) != 1 {
		t.Errorf("hunk 1 len(Lines) = %d, want 1", len(pd.Hunks[1].Lines))
	}
}

func TestGitStatusTotalCount(t *testing.T) {
	st := GitStatus{
		Staged:    []FileEntry{{Path: "a.go"}},
		Modified:  []FileEntry{{Path: "b.go"}, {Path: "c.go"}},
		Untracked: []FileEntry{{Path: "d.go"}},
	}
	if got := st.TotalCount(); got != 4 {
		t.Errorf("TotalCount() = %d, want 4", got)
	}
}
