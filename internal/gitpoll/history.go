package gitpoll

import (
	"database/sql"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// HistoryEntry is one commit's summary plus its numstat totals, cached
// to avoid a `git show --numstat` subprocess spawn for a commit the
// history view has already rendered once.
type HistoryEntry struct {
	Hash      string
	Author    string
	Subject   string
	Additions int
	Deletions int
	Files     int
}

// HistoryCache is a local sqlite-backed cache of HistoryEntry numstat
// totals, keyed by repo path + commit hash. The commit metadata itself
// (hash/author/subject) is cheap to re-fetch every poll via `git log`;
// only the numstat lookup, which needs its own git invocation per
// commit, is worth caching.
type HistoryCache struct {
	db *sql.DB
}

// OpenHistoryCache opens (creating if absent) the sqlite database at
// path and ensures its schema exists.
func OpenHistoryCache(path string) (*HistoryCache, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open numstat cache: %w", err)
	}
	c := &HistoryCache{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init numstat cache schema: %w", err)
	}
	return c, nil
}

func (c *HistoryCache) initSchema() error {
	_, err := c.db.Exec(`
CREATE TABLE IF NOT EXISTS commit_numstat (
	repo_path  TEXT NOT NULL,
	commit_sha TEXT NOT NULL,
	additions  INTEGER NOT NULL,
	deletions  INTEGER NOT NULL,
	files      INTEGER NOT NULL,
	PRIMARY KEY (repo_path, commit_sha)
);`)
	return err
}

// Close closes the underlying database connection.
func (c *HistoryCache) Close() error {
	return c.db.Close()
}

func (c *HistoryCache) lookup(repoPath, sha string) (additions, deletions, files int, ok bool) {
	row := c.db.QueryRow(
		`SELECT additions, deletions, files FROM commit_numstat WHERE repo_path = ? AND commit_sha = ?`,
		repoPath, sha)
	if err := row.Scan(&additions, &deletions, &files); err != nil {
		return 0, 0, 0, false
	}
	return additions, deletions, files, true
}

func (c *HistoryCache) store(repoPath, sha string, additions, deletions, files int) {
	_, _ = c.db.Exec(
		`INSERT OR REPLACE INTO commit_numstat (repo_path, commit_sha, additions, deletions, files) VALUES (?, ?, ?, ?, ?)`,
		repoPath, sha, additions, deletions, files)
}

const historyLogSep = "\x1f" // unit separator, safe against commit subjects

// LoadHistory returns the most recent limit commits in workDir, with
// numstat totals served from c when available and computed (then
// cached) otherwise.
func (c *HistoryCache) LoadHistory(workDir string, limit int) ([]HistoryEntry, error) {
	repoPath, err := filepath.Abs(workDir)
	if err != nil {
		repoPath = workDir
	}

	format := "%H" + historyLogSep + "%an" + historyLogSep + "%s"
	cmd := exec.Command("git", "log", "-n", strconv.Itoa(limit), "--format="+format)
	cmd.Dir = workDir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var entries []HistoryEntry
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, historyLogSep, 3)
		if len(fields) != 3 {
			continue
		}
		e := HistoryEntry{Hash: fields[0], Author: fields[1], Subject: fields[2]}

		if add, del, files, ok := c.lookup(repoPath, e.Hash); ok {
			e.Additions, e.Deletions, e.Files = add, del, files
		} else if add, del, files, err := commitNumstat(workDir, e.Hash); err == nil {
			e.Additions, e.Deletions, e.Files = add, del, files
			c.store(repoPath, e.Hash, add, del, files)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// commitNumstat spawns `git show --numstat` for a single commit not yet
// in the cache.
func commitNumstat(workDir, sha string) (additions, deletions, files int, err error) {
	cmd := exec.Command("git", "show", "--numstat", "--format=", sha)
	cmd.Dir = workDir
	out, err := cmd.Output()
	if err != nil {
		return 0, 0, 0, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		m := numstatRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		a, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		additions += a
		deletions += d
		files++
	}
	return additions, deletions, files, nil
}
