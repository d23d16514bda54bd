package git

import (
	"strings"
)

// ChangeKind classifies a working tree change
type ChangeKind uint8

const (
	ChangeModified ChangeKind = iota
	ChangeAdded
	ChangeDeleted
	ChangeRenamed
	ChangeCopied
	ChangeUnmerged
	ChangeUntracked
)

// Change is one entry of the repository status
type Change struct {
	Path string
	Orig string // Previous path for renames/copies
	Kind ChangeKind
}

// Status groups changes the way the dashboard presents them
type Status struct {
	Staged    []Change
	Unstaged  []Change
	Untracked []Change
}

// Status reads the porcelain status and splits it into staged, unstaged,
// and untracked entries. A file with both staged and unstaged edits
// appears in both lists.
func (r *Repo) Status() (*Status, error) {
	out, err := r.runner.Run("status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseStatus(out), nil
}

func parseStatus(out string) *Status {
	st := &Status{}
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		x, y := line[0], line[1]
		path := line[3:]
		orig := ""
		if i := strings.Index(path, " -> "); i >= 0 {
			orig = path[:i]
			path = path[i+4:]
		}

		if x == '?' && y == '?' {
			st.Untracked = append(st.Untracked, Change{Path: path, Kind: ChangeUntracked})
			continue
		}
		if x == 'U' || y == 'U' || (x == 'A' && y == 'A') || (x == 'D' && y == 'D') {
			st.Unstaged = append(st.Unstaged, Change{Path: path, Kind: ChangeUnmerged})
			continue
		}
		if x != ' ' {
			st.Staged = append(st.Staged, Change{Path: path, Orig: orig, Kind: changeKind(x)})
		}
		if y != ' ' {
			st.Unstaged = append(st.Unstaged, Change{Path: path, Orig: orig, Kind: changeKind(y)})
		}
	}
	return st
}

func changeKind(code byte) ChangeKind {
	switch code {
	case 'A':
		return ChangeAdded
	case 'D':
		return ChangeDeleted
	case 'R':
		return ChangeRenamed
	case 'C':
		return ChangeCopied
	case 'U':
		return ChangeUnmerged
	default:
		return ChangeModified
	}
}

// Marker returns the single-character status marker shown in the list
func (k ChangeKind) Marker() byte {
	switch k {
	case ChangeAdded:
		return 'A'
	case ChangeDeleted:
		return 'D'
	case ChangeRenamed:
		return 'R'
	case ChangeCopied:
		return 'C'
	case ChangeUnmerged:
		return 'U'
	case ChangeUntracked:
		return '?'
	default:
		return 'M'
	}
}
