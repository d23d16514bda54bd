package git

import (
	"fmt"
	"strings"
	"time"
)

// Commit is one entry of the commits panel
type Commit struct {
	ID      string
	ShortID string
	Summary string // First line of the message
	Author  string
	When    time.Time
}

// SearchMode selects which commit field a query matches against
type SearchMode uint8

const (
	SearchMessage SearchMode = iota
	SearchAuthor
	SearchHash
)

const logFormat = "%H\x1f%h\x1f%s\x1f%an\x1f%at"

// Commits returns up to max commits reachable from HEAD, newest first
func (r *Repo) Commits(max int) ([]Commit, error) {
	out, err := r.runner.Run("log", "--format="+logFormat, fmt.Sprintf("--max-count=%d", max))
	if err != nil {
		// An unborn branch has no commits; present it as empty history
		if strings.Contains(out, "does not have any commits") {
			return nil, nil
		}
		return nil, err
	}
	return parseCommits(out), nil
}

// SearchCommits asks git to filter history by message or author; a hash
// prefix query filters the loaded commit list instead
func (r *Repo) SearchCommits(query string, mode SearchMode, max int) ([]Commit, error) {
	args := []string{"log", "--format=" + logFormat, fmt.Sprintf("--max-count=%d", max)}
	switch mode {
	case SearchAuthor:
		args = append(args, "--author="+query, "--regexp-ignore-case")
	case SearchHash:
		commits, err := r.Commits(max)
		if err != nil {
			return nil, err
		}
		return FilterCommits(commits, query, SearchHash), nil
	default:
		args = append(args, "--grep="+query, "--regexp-ignore-case")
	}
	out, err := r.runner.Run(args...)
	if err != nil {
		return nil, err
	}
	return parseCommits(out), nil
}

// FilterCommits filters a cached commit list the way the search dialog
// does: case-insensitive substring for message and author, prefix match
// for hashes.
func FilterCommits(commits []Commit, query string, mode SearchMode) []Commit {
	q := strings.ToLower(query)
	var out []Commit
	for _, c := range commits {
		if commitMatches(c, q, mode) {
			out = append(out, c)
		}
	}
	return out
}

// CommitMatches reports whether one commit matches a query under the given
// mode, using the same rules as FilterCommits
func CommitMatches(c Commit, query string, mode SearchMode) bool {
	return commitMatches(c, strings.ToLower(query), mode)
}

func commitMatches(c Commit, lowerQuery string, mode SearchMode) bool {
	switch mode {
	case SearchAuthor:
		return strings.Contains(strings.ToLower(c.Author), lowerQuery)
	case SearchHash:
		return strings.HasPrefix(strings.ToLower(c.ID), lowerQuery) ||
			strings.HasPrefix(strings.ToLower(c.ShortID), lowerQuery)
	default:
		return strings.Contains(strings.ToLower(c.Summary), lowerQuery)
	}
}

func parseCommits(out string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\x1f")
		if len(fields) < 5 {
			continue
		}
		commits = append(commits, Commit{
			ID:      fields[0],
			ShortID: fields[1],
			Summary: fields[2],
			Author:  fields[3],
			When:    time.Unix(int64(parseUint(fields[4])), 0),
		})
	}
	return commits
}

// Commit records the staged changes with the given message and returns the
// new commit id
func (r *Repo) Commit(message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: empty commit message", ErrValidation)
	}
	if _, err := r.runner.Run("commit", "-m", message); err != nil {
		return "", err
	}
	return r.runner.Run(cmdRevParse, "HEAD")
}

// CommitDetails returns the full metadata and diff of one commit as a
// parsed Diff plus the raw header lines
func (r *Repo) CommitDetails(id string) (header []string, diff *Diff, err error) {
	meta, err := r.runner.Run("show", "--no-patch",
		"--format=commit %H%nAuthor: %an <%ae>%nDate:   %ad%n%n%B", id)
	if err != nil {
		return nil, nil, err
	}
	patch, err := r.runner.Run("show", "--format=", id)
	if err != nil {
		return nil, nil, err
	}
	return strings.Split(meta, "\n"), ParseDiff(patch), nil
}

// CherryPick applies the named commit onto HEAD
func (r *Repo) CherryPick(id string) error {
	_, err := r.runner.Run("cherry-pick", id)
	return err
}

// Revert creates a commit undoing the named commit
func (r *Repo) Revert(id string) error {
	_, err := r.runner.Run("revert", "--no-edit", id)
	return err
}
