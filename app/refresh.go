package app

import (
	"fmt"

	"github.com/lixenwraith/g/views"
)

// applyRefresh reloads exactly the cached slices invalidated since the
// last frame. refreshAll happens only at startup and on resize.
func (a *App) applyRefresh() {
	if a.pending == 0 || a.tooSmall {
		return
	}
	pending := a.pending
	a.pending = 0

	if pending&refreshHead != 0 {
		a.refreshHead()
	}
	if pending&refreshStatus != 0 {
		st, err := a.repo.Status()
		if err != nil {
			a.setError(err)
		} else {
			a.statusView.SetStatus(st)
		}
	}
	if pending&refreshBranches != 0 {
		branches, err := a.repo.Branches(a.branchesView.ShowRemotes)
		if err != nil {
			a.setError(err)
		} else {
			a.branchesView.SetBranches(branches)
		}
	}
	if pending&refreshCommits != 0 {
		commits, err := a.repo.Commits(a.cfg.UI.CommitLimit)
		if err != nil {
			a.setError(err)
		} else {
			a.commitsView.SetCommits(commits)
		}
	}
	if pending&refreshStash != 0 && a.thirdSlot == views.PanelStash {
		stashes, err := a.repo.StashList()
		if err != nil {
			a.setError(err)
		} else {
			a.stashView.SetStashes(stashes)
		}
	}
	if pending&refreshTags != 0 && a.thirdSlot == views.PanelTags {
		tags, err := a.repo.Tags()
		if err != nil {
			a.setError(err)
		} else {
			a.tagsView.SetTags(tags)
		}
	}
	if pending&refreshDiff != 0 {
		a.refreshMain()
	}
}

func (a *App) refreshHead() {
	name, onBranch, err := a.repo.CurrentBranch()
	if err != nil {
		a.setError(err)
		return
	}
	a.headBranch = name
	a.detached = !onBranch
	a.ahead, a.behind = a.repo.AheadBehind()

	clean, err := a.repo.IsClean()
	if err != nil {
		a.setError(err)
		return
	}
	a.clean = clean

	conflicts, err := a.repo.ConflictedFiles()
	if err == nil {
		a.conflicts = conflicts
		if len(conflicts) > 0 && a.dialog == nil {
			a.mode = ModeConflict
		} else if a.mode == ModeConflict {
			a.mode = ModeNormal
		}
	}
}

// refreshMain recomputes the main panel for its current source. When the
// status panel drives it, the diff follows the selected file.
func (a *App) refreshMain() {
	switch a.mainSrc.kind {
	case srcStatusFile:
		a.showStatusDiff()
	case srcCommit:
		a.showCommitDetails(a.mainSrc.id)
	case srcStash:
		a.showStashDiff(a.mainSrc.stash)
	case srcConflicts:
		a.showConflicts()
	case srcHelp:
		// Static content
	default:
		if a.focus == views.PanelStatus {
			a.showStatusDiff()
		}
	}
}

// showStatusDiff points the main panel at the selected status entry
func (a *App) showStatusDiff() {
	change, section, ok := a.statusView.Selected()
	if !ok {
		a.mainSrc = mainSource{}
		a.mainView.Clear()
		return
	}
	staged := section == views.SectionStaged
	diff, err := a.repo.DiffFile(change.Path, staged)
	if err != nil {
		a.setError(err)
		return
	}
	a.mainSrc = mainSource{kind: srcStatusFile, path: change.Path, staged: staged}
	title := change.Path
	if staged {
		title += " (staged)"
	}
	a.mainView.ShowDiff(title, nil, diff, staged)
}

// showCommitDetails renders one commit's metadata and patch
func (a *App) showCommitDetails(id string) {
	header, diff, err := a.repo.CommitDetails(id)
	if err != nil {
		a.setError(err)
		return
	}
	a.mainSrc = mainSource{kind: srcCommit, id: id}
	short := id
	if len(short) > 7 {
		short = short[:7]
	}
	a.mainView.ShowDiff("Commit "+short, header, diff, false)
}

// showStashDiff renders one stash entry's patch
func (a *App) showStashDiff(index int) {
	diff, err := a.repo.DiffStash(index)
	if err != nil {
		a.setError(err)
		return
	}
	a.mainSrc = mainSource{kind: srcStash, stash: index}
	a.mainView.ShowDiff(fmt.Sprintf("stash@{%d}", index), nil, diff, false)
}

// showConflicts lists unresolved paths in the main panel
func (a *App) showConflicts() {
	lines := []string{"Resolve conflicts in your editor, then stage the files.", ""}
	lines = append(lines, a.conflicts...)
	a.mainSrc = mainSource{kind: srcConflicts}
	a.mainView.ShowText("Conflicts", lines)
}
