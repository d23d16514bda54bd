package git

import (
	"fmt"
	"strings"
)

// LineKind classifies one line of a hunk
type LineKind uint8

const (
	LineContext LineKind = iota
	LineAddition
	LineDeletion
	LineHunkHeader
)

// DiffLine is one typed line of a hunk. Line numbers are 1-based; zero
// means the line does not exist on that side.
type DiffLine struct {
	Kind    LineKind
	Content string
	OldLine int
	NewLine int
}

// Hunk is a contiguous group of changed lines introduced by a header line
type Hunk struct {
	Header string
	Lines  []DiffLine
}

// DiffFile is one file's worth of hunks plus the raw preamble needed to
// rebuild an applicable patch
type DiffFile struct {
	Path     string
	OldPath  string
	Preamble []string
	Hunks    []Hunk
}

// Diff is a parsed unified diff
type Diff struct {
	Files []DiffFile
}

// Empty reports whether the diff lists no files at all. A file entry
// without hunks (a binary or mode-only change) still counts as content.
func (d *Diff) Empty() bool {
	if d == nil {
		return true
	}
	for _, f := range d.Files {
		if len(f.Hunks) > 0 {
			return false
		}
	}
	return len(d.Files) == 0
}

// DiffStaged returns the diff between HEAD and the index
func (r *Repo) DiffStaged() (*Diff, error) {
	out, err := r.runner.Run("diff", "--cached", "--no-color")
	if err != nil {
		return nil, err
	}
	return ParseDiff(out), nil
}

// DiffUnstaged returns the diff between the index and the working tree
func (r *Repo) DiffUnstaged() (*Diff, error) {
	out, err := r.runner.Run("diff", "--no-color")
	if err != nil {
		return nil, err
	}
	return ParseDiff(out), nil
}

// DiffFile returns the diff of one path; staged selects the index side
func (r *Repo) DiffFile(path string, staged bool) (*Diff, error) {
	args := []string{"diff", "--no-color"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	out, err := r.runner.Run(args...)
	if err != nil {
		return nil, err
	}
	d := ParseDiff(out)
	if d.Empty() && !staged {
		// Untracked files have no tracked diff; synthesize one so the
		// main panel can still show the content
		return r.untrackedDiff(path)
	}
	return d, nil
}

// untrackedDiff renders a new file as a pure-addition diff
func (r *Repo) untrackedDiff(path string) (*Diff, error) {
	out, err := r.runner.Run("diff", "--no-color", "--no-index", "--", "/dev/null", path)
	// diff --no-index exits 1 when the files differ, which is the normal
	// case here, so only an empty result counts as failure
	if out == "" && err != nil {
		return nil, err
	}
	return ParseDiff(out), nil
}

// DiffStash returns the diff of one stash entry
func (r *Repo) DiffStash(index int) (*Diff, error) {
	out, err := r.runner.Run("stash", "show", "-p", "--no-color", fmt.Sprintf("stash@{%d}", index))
	if err != nil {
		return nil, err
	}
	return ParseDiff(out), nil
}

// ParseDiff turns unified diff text into typed files, hunks, and lines
func ParseDiff(out string) *Diff {
	d := &Diff{}
	if strings.TrimSpace(out) == "" {
		return d
	}

	var file *DiffFile
	var hunk *Hunk
	oldLine, newLine := 0, 0

	flushHunk := func() {
		if hunk != nil && file != nil {
			file.Hunks = append(file.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if file != nil {
			d.Files = append(d.Files, *file)
		}
		file = nil
	}

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flushFile()
			file = &DiffFile{Preamble: []string{line}}
		case strings.HasPrefix(line, "@@"):
			if file == nil {
				continue
			}
			flushHunk()
			oldLine, newLine = parseHunkHeader(line)
			hunk = &Hunk{
				Header: line,
				Lines:  []DiffLine{{Kind: LineHunkHeader, Content: line}},
			}
		case hunk != nil && strings.HasPrefix(line, "+"):
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind: LineAddition, Content: line[1:], NewLine: newLine,
			})
			newLine++
		case hunk != nil && strings.HasPrefix(line, "-"):
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind: LineDeletion, Content: line[1:], OldLine: oldLine,
			})
			oldLine++
		case hunk != nil && strings.HasPrefix(line, " "):
			hunk.Lines = append(hunk.Lines, DiffLine{
				Kind: LineContext, Content: line[1:], OldLine: oldLine, NewLine: newLine,
			})
			oldLine++
			newLine++
		case hunk != nil && strings.HasPrefix(line, `\`):
			// "\ No newline at end of file" rides along as context
			hunk.Lines = append(hunk.Lines, DiffLine{Kind: LineContext, Content: line})
		case file != nil && hunk == nil:
			file.Preamble = append(file.Preamble, line)
			switch {
			case strings.HasPrefix(line, "--- a/"):
				file.OldPath = line[6:]
			case strings.HasPrefix(line, "+++ b/"):
				file.Path = line[6:]
			case strings.HasPrefix(line, "--- /dev/null"), strings.HasPrefix(line, "+++ /dev/null"):
				// Creation/deletion; path comes from the other side
			case strings.HasPrefix(line, "+++ "):
				file.Path = strings.TrimPrefix(line[4:], "b/")
			}
		}
	}
	flushFile()

	// Deleted files only carry an old path
	for i := range d.Files {
		if d.Files[i].Path == "" {
			d.Files[i].Path = d.Files[i].OldPath
		}
	}
	return d
}

// parseHunkHeader extracts the starting line numbers from
// "@@ -old,n +new,m @@ ..."
func parseHunkHeader(header string) (oldStart, newStart int) {
	oldStart, newStart = 1, 1
	rest := strings.TrimPrefix(header, "@@ ")
	end := strings.Index(rest, " @@")
	if end < 0 {
		return
	}
	for _, part := range strings.Fields(rest[:end]) {
		if len(part) < 2 {
			continue
		}
		numbers := part[1:]
		if i := strings.Index(numbers, ","); i >= 0 {
			numbers = numbers[:i]
		}
		switch part[0] {
		case '-':
			oldStart = parseUint(numbers)
		case '+':
			newStart = parseUint(numbers)
		}
	}
	return
}

// PatchText rebuilds an applicable patch containing only the given hunk
func (f *DiffFile) PatchText(hunkIdx int) string {
	if hunkIdx < 0 || hunkIdx >= len(f.Hunks) {
		return ""
	}
	var b strings.Builder
	for _, line := range f.Preamble {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, l := range f.Hunks[hunkIdx].Lines {
		switch l.Kind {
		case LineHunkHeader:
			b.WriteString(l.Content)
		case LineAddition:
			b.WriteByte('+')
			b.WriteString(l.Content)
		case LineDeletion:
			b.WriteByte('-')
			b.WriteString(l.Content)
		default:
			if strings.HasPrefix(l.Content, `\`) {
				b.WriteString(l.Content)
			} else {
				b.WriteByte(' ')
				b.WriteString(l.Content)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// StageFile adds one path to the index
func (r *Repo) StageFile(path string) error {
	_, err := r.runner.Run("add", "--", path)
	return err
}

// StageAll stages every change including deletions and untracked files
func (r *Repo) StageAll() error {
	_, err := r.runner.Run("add", "--all")
	return err
}

// UnstageFile removes one path from the index, keeping the working tree
func (r *Repo) UnstageFile(path string) error {
	_, err := r.runner.Run("restore", "--staged", "--", path)
	return err
}

// UnstageAll clears the index back to HEAD
func (r *Repo) UnstageAll() error {
	_, err := r.runner.Run("reset", "--quiet", "HEAD", "--")
	return err
}

// StageHunk applies a single hunk to the index
func (r *Repo) StageHunk(file *DiffFile, hunkIdx int) error {
	patch := file.PatchText(hunkIdx)
	if patch == "" {
		return fmt.Errorf("%w: no such hunk", ErrValidation)
	}
	_, err := r.runner.RunInput(patch, "apply", "--cached", "-")
	return err
}

// UnstageHunk reverses a single hunk out of the index
func (r *Repo) UnstageHunk(file *DiffFile, hunkIdx int) error {
	patch := file.PatchText(hunkIdx)
	if patch == "" {
		return fmt.Errorf("%w: no such hunk", ErrValidation)
	}
	_, err := r.runner.RunInput(patch, "apply", "--cached", "--reverse", "-")
	return err
}

// Discard throws away working tree changes to one path. Untracked files
// are removed instead of restored.
func (r *Repo) Discard(change Change) error {
	if change.Kind == ChangeUntracked {
		_, err := r.runner.Run("clean", "--force", "--", change.Path)
		return err
	}
	_, err := r.runner.Run("restore", "--", change.Path)
	return err
}

// DiscardAll resets the working tree and removes untracked files
func (r *Repo) DiscardAll() error {
	if _, err := r.runner.Run("restore", "."); err != nil {
		return err
	}
	_, err := r.runner.Run("clean", "--force", "-d")
	return err
}
