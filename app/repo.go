package app

import (
	"github.com/lixenwraith/g/git"
)

// Repository is the collaborator port the controller drives. *git.Repo is
// the production implementation; tests substitute a stub. All calls are
// synchronous and made from the event loop only.
type Repository interface {
	Name() string
	CurrentBranch() (name string, ok bool, err error)
	AheadBehind() (ahead, behind int)
	IsClean() (bool, error)

	Status() (*git.Status, error)
	Branches(includeRemote bool) ([]git.Branch, error)
	Commits(max int) ([]git.Commit, error)
	SearchCommits(query string, mode git.SearchMode, max int) ([]git.Commit, error)

	DiffStaged() (*git.Diff, error)
	DiffUnstaged() (*git.Diff, error)
	DiffFile(path string, staged bool) (*git.Diff, error)
	DiffStash(index int) (*git.Diff, error)
	CommitDetails(id string) (header []string, diff *git.Diff, err error)

	StageFile(path string) error
	StageAll() error
	UnstageFile(path string) error
	UnstageAll() error
	StageHunk(file *git.DiffFile, hunk int) error
	UnstageHunk(file *git.DiffFile, hunk int) error
	Discard(change git.Change) error
	DiscardAll() error

	Commit(message string) (string, error)
	CherryPick(id string) error
	Revert(id string) error

	CreateBranch(name, base string) error
	DeleteBranch(name string, force bool) error
	SwitchBranch(name string) error
	Merge(branch string) (git.MergeOutcome, []string, error)
	Rebase(upstream string) ([]string, error)
	ConflictedFiles() ([]string, error)

	StashList() ([]git.Stash, error)
	StashSave(message string) error
	StashPop(index int) error
	StashDrop(index int) error

	Tags() ([]git.Tag, error)
	CreateTag(name, ref string) error
	DeleteTag(name string) error
	PushTag(remote, name string) error

	Push(remote, branch string, p git.Progress) error
	Pull(remote, branch string, p git.Progress) error
	Fetch(remote string, p git.Progress) error
}
