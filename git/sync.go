package git

import (
	"regexp"
	"strings"
)

// Progress reports counters from a network operation. git emits progress
// lines frequently enough to keep a synchronous UI alive.
type Progress func(current, total int)

// progressRe matches git's "... 60% (3/5)" progress lines
var progressRe = regexp.MustCompile(`(\d+)% \((\d+)/(\d+)\)`)

// reportProgress forwards counter updates parsed from one stderr line
func reportProgress(p Progress, line string) {
	if p == nil {
		return
	}
	m := progressRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	p(parseUint(m[2]), parseUint(m[3]))
}

// Push publishes branch to remote. Defaults: origin, current branch.
func (r *Repo) Push(remote, branch string, p Progress) error {
	if remote == "" {
		remote = "origin"
	}
	args := []string{"push", "--progress", remote}
	if branch != "" {
		args = append(args, branch)
	}
	_, err := r.runner.RunStream(func(line string) {
		reportProgress(p, line)
	}, args...)
	return err
}

// Pull fetches and integrates branch from remote
func (r *Repo) Pull(remote, branch string, p Progress) error {
	if remote == "" {
		remote = "origin"
	}
	args := []string{"pull", "--progress", remote}
	if branch != "" {
		args = append(args, branch)
	}
	_, err := r.runner.RunStream(func(line string) {
		reportProgress(p, line)
	}, args...)
	return err
}

// Fetch updates remote-tracking refs from remote
func (r *Repo) Fetch(remote string, p Progress) error {
	if remote == "" {
		remote = "origin"
	}
	_, err := r.runner.RunStream(func(line string) {
		reportProgress(p, line)
	}, "fetch", "--progress", remote)
	return err
}

// Remotes lists configured remote names
func (r *Repo) Remotes() ([]string, error) {
	out, err := r.runner.Run("remote")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
