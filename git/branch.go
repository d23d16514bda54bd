package git

import (
	"fmt"
	"strings"
)

// BranchType distinguishes local from remote-tracking branches
type BranchType uint8

const (
	BranchLocal BranchType = iota
	BranchRemote
)

// Branch describes one reference of the branches panel
type Branch struct {
	Name     string
	Type     BranchType
	IsHead   bool
	Upstream string
	Ahead    int
	Behind   int
}

// branchFormat asks for-each-ref for fields separated by the unit
// separator, which cannot occur in reference names
const branchFormat = "%(HEAD)\x1f%(refname:short)\x1f%(upstream:short)\x1f%(upstream:track)"

// Branches lists local branches, plus remote-tracking branches when
// includeRemote is set. Local branches come first, in ref order.
func (r *Repo) Branches(includeRemote bool) ([]Branch, error) {
	out, err := r.runner.Run("for-each-ref", "--format", branchFormat, "refs/heads")
	if err != nil {
		return nil, err
	}
	branches := parseBranches(out, BranchLocal)

	if includeRemote {
		out, err := r.runner.Run("for-each-ref", "--format", branchFormat, "refs/remotes")
		if err != nil {
			return nil, err
		}
		branches = append(branches, parseBranches(out, BranchRemote)...)
	}
	return branches, nil
}

func parseBranches(out string, btype BranchType) []Branch {
	var branches []Branch
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\x1f")
		if len(fields) < 4 {
			continue
		}
		name := fields[1]
		if btype == BranchRemote && strings.HasSuffix(name, "/HEAD") {
			continue // Symbolic origin/HEAD entry is noise
		}
		b := Branch{
			IsHead:   fields[0] == "*",
			Name:     name,
			Type:     btype,
			Upstream: fields[2],
		}
		b.Ahead, b.Behind = parseTrack(fields[3])
		branches = append(branches, b)
	}
	return branches
}

// parseTrack decodes "[ahead 2, behind 1]" style annotations
func parseTrack(track string) (ahead, behind int) {
	track = strings.Trim(track, "[]")
	for _, part := range strings.Split(track, ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "ahead "):
			ahead = parseUint(part[6:])
		case strings.HasPrefix(part, "behind "):
			behind = parseUint(part[7:])
		}
	}
	return ahead, behind
}

// CreateBranch creates a branch at base (HEAD when base is empty)
func (r *Repo) CreateBranch(name, base string) error {
	if err := validateRefName(name); err != nil {
		return err
	}
	args := []string{"branch", name}
	if base != "" {
		args = append(args, base)
	}
	_, err := r.runner.Run(args...)
	return err
}

// DeleteBranch deletes a local branch. If force is true, uses -D instead
// of -d.
func (r *Repo) DeleteBranch(name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := r.runner.Run("branch", flag, name)
	return err
}

// SwitchBranch checks out the named branch
func (r *Repo) SwitchBranch(name string) error {
	_, err := r.runner.Run("switch", name)
	return err
}

// validateRefName rejects names git would refuse, before shelling out
func validateRefName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty branch name", ErrValidation)
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "/") ||
		strings.HasSuffix(name, ".lock") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: invalid branch name %q", ErrValidation, name)
	}
	for _, c := range name {
		if c <= ' ' || strings.ContainsRune("~^:?*[\\", c) {
			return fmt.Errorf("%w: invalid branch name %q", ErrValidation, name)
		}
	}
	return nil
}
