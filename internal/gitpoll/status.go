// Package gitpoll shells out to the git binary to build the content the
// Diff pane variant renders: working-tree status, branch tracking info,
// and unified diffs, plus a local numstat cache so re-visiting an
// already-seen commit in the history view doesn't respawn
// `git show --numstat`.
package gitpoll

import (
	"bytes"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FileStatus is the single-letter porcelain status code for one file.
type FileStatus string

const (
	StatusModified  FileStatus = "M"
	StatusAdded     FileStatus = "A"
	StatusDeleted   FileStatus = "D"
	StatusRenamed   FileStatus = "R"
	StatusCopied    FileStatus = "C"
	StatusUntracked FileStatus = "?"
	StatusUnmerged  FileStatus = "U"
)

// FileEntry is one changed file, with its diff stats filled in by
// loadNumstat.
type FileEntry struct {
	Path      string
	OldPath   string // set for renames
	Status    FileStatus
	Staged    bool
	Additions int
	Deletions int
}

// GitStatus is the full picture gitpoll refreshes on its polling
// interval: the branch/tracking header plus the three status buckets a
// Diff pane groups files into.
type GitStatus struct {
	Branch   string
	Ahead    int
	Behind   int
	Detached bool

	Staged    []FileEntry
	Modified  []FileEntry
	Untracked []FileEntry
}

// TotalCount is the number of changed files across all three buckets.
func (s GitStatus) TotalCount() int {
	return len(s.Staged) + len(s.Modified) + len(s.Untracked)
}

var abRe = regexp.MustCompile(`^# branch\.ab \+(\d+) -(\d+)$`)

// RefreshStatus runs `git status --porcelain=v2 --branch -z` against
// workDir and parses the result. A non-git directory or a missing git
// binary is not an error condition worth logging ("expected
// absence" class); it is reported to the caller as an error so the
// poller simply leaves the last-known status in place.
func RefreshStatus(workDir string) (GitStatus, error) {
	cmd := exec.Command("git", "status", "--porcelain=v2", "--branch", "-z", "--untracked-files=all")
	cmd.Dir = workDir
	out, err := cmd.Output()
	if err != nil {
		return GitStatus{}, err
	}

	var st GitStatus
	parts := bytes.Split(out, []byte{0})
	i := 0
	for i < len(parts) {
		line := string(parts[i])
		switch {
		case line == "":
		case strings.HasPrefix(line, "# branch.head "):
			st.Branch = strings.TrimPrefix(line, "# branch.head ")
			st.Detached = st.Branch == "(detached)"
		case strings.HasPrefix(line, "# branch.ab "):
			if m := abRe.FindStringSubmatch(line); m != nil {
				st.Ahead, _ = strconv.Atoi(m[1])
				st.Behind, _ = strconv.Atoi(m[2])
			}
		case strings.HasPrefix(line, "1 "):
			if e := parseOrdinary(line); e != nil {
				addEntry(&st, e)
			}
		case strings.HasPrefix(line, "2 "):
			if e := parseRenamed(line); e != nil {
				i++
				if i < len(parts) {
					e.OldPath = string(parts[i])
				}
				addEntry(&st, e)
			}
		case strings.HasPrefix(line, "? "):
			st.Untracked = append(st.Untracked, FileEntry{
				Path: strings.TrimPrefix(line, "? "), Status: StatusUntracked,
			})
		case strings.HasPrefix(line, "u "):
			if e := parseUnmerged(line); e != nil {
				st.Modified = append(st.Modified, *e)
			}
		}
		i++
	}

	sortEntries(st.Staged)
	sortEntries(st.Modified)
	sortEntries(st.Untracked)

	loadNumstat(workDir, &st)
	return st, nil
}

func sortEntries(entries []FileEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
}

func parseOrdinary(line string) *FileEntry {
	fields := strings.SplitN(line, " ", 9)
	if len(fields) < 9 {
		return nil
	}
	xy, path := fields[1], fields[8]
	e := &FileEntry{Path: path}
	if len(xy) >= 2 {
		if xy[0] != '.' {
			e.Staged = true
			e.Status = FileStatus(string(xy[0]))
		}
		if xy[1] != '.' && !e.Staged {
			e.Status = FileStatus(string(xy[1]))
		}
	}
	return e
}

func parseRenamed(line string) *FileEntry {
	fields := strings.SplitN(line, " ", 10)
	if len(fields) < 10 {
		return nil
	}
	return &FileEntry{Path: fields[9], Status: StatusRenamed, Staged: true}
}

func parseUnmerged(line string) *FileEntry {
	fields := strings.SplitN(line, " ", 11)
	if len(fields) < 11 {
		return nil
	}
	return &FileEntry{Path: fields[10], Status: StatusUnmerged}
}

func addEntry(st *GitStatus, e *FileEntry) {
	if e.Staged {
		st.Staged = append(st.Staged, *e)
		// A file can also carry unstaged changes on top of a staged
		// change; the worktree status byte would have caught that, but
		// porcelain v2's single XY pair already folded it into Staged
		// above to match spec's Diff pane which shows one row per file.
		return
	}
	st.Modified = append(st.Modified, *e)
}

// loadNumstat fills in Additions/Deletions for staged and unstaged
// entries from `git diff --numstat`.
func loadNumstat(workDir string, st *GitStatus) error {
	if err := applyNumstat(workDir, false, st.Modified); err != nil {
		return err
	}
	return applyNumstat(workDir, true, st.Staged)
}

var numstatRe = regexp.MustCompile(`^(\d+|-)\t(\d+|-)\t(.+)$`)

func applyNumstat(workDir string, staged bool, entries []FileEntry) error {
	args := []string{"diff", "--numstat"}
	if staged {
		args = append(args, "--cached")
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = workDir
	out, err := cmd.Output()
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(out), "\n") {
		m := numstatRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		add, _ := strconv.Atoi(m[1])
		del, _ := strconv.Atoi(m[2])
		path := m[3]
		if idx := strings.Index(path, "\t"); idx > 0 {
			path = path[:idx]
		}
		for i := range entries {
			if entries[i].Path == path {
				entries[i].Additions, entries[i].Deletions = add, del
				break
			}
		}
	}
	return nil
}
