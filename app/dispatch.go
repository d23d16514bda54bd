package app

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/logging"
	"github.com/lixenwraith/g/terminal/tui"
	"github.com/lixenwraith/g/views"
)

// dispatch applies one resolved action: either a direct view model
// mutation or a delegated repository operation with a targeted refresh.
func (a *App) dispatch(act Action) {
	switch act {
	// --- Direct view model mutations ---
	case ActQuit:
		a.quit = true
	case ActCancel:
		a.cancel()
	case ActToggleHelp:
		a.toggleHelp()
	case ActNextPanel:
		a.nextPanel()
	case ActPrevPanel:
		a.prevPanel()
	case ActFocusStatus:
		a.focusPanel(views.PanelStatus)
	case ActFocusBranches:
		a.focusPanel(views.PanelBranches)
	case ActFocusCommits:
		a.focusPanel(views.PanelCommits)
	case ActFocusMain:
		a.focusPanel(views.PanelMain)
	case ActFocusStash:
		a.focusPanel(views.PanelStash)
	case ActFocusTags:
		a.focusPanel(views.PanelTags)
	case ActMoveUp, ActMoveDown, ActPageUp, ActPageDown, ActTop, ActBottom:
		a.navigate(act)
	case ActSearch:
		a.focusPanel(views.PanelCommits)
		a.mode = ModeSearch
		a.openDialog(newSearch())
	case ActCommand:
		a.mode = ModeCommand
		a.openDialog(newInput(":", "", submitCommandLine, ""))
	case ActNextResult:
		a.commitsView.NextResult()
	case ActPrevResult:
		a.commitsView.PrevResult()

	// --- Status panel ---
	case ActStageToggle:
		a.stageToggle()
	case ActStageAll:
		a.guard(a.repo.StageAll, refreshStatus|refreshDiff|refreshHead, "Staged all changes")
	case ActUnstageAll:
		a.guard(a.repo.UnstageAll, refreshStatus|refreshDiff|refreshHead, "Unstaged all changes")
	case ActDiscard:
		a.discardSelected()
	case ActCommit:
		a.beginCommit()

	// --- Branches panel ---
	case ActCheckout:
		a.checkoutSelected()
	case ActCreateBranch:
		a.openDialog(newInput("New branch name", "", submitBranchName, ""))
	case ActDeleteBranch:
		a.deleteSelectedBranch(false)
	case ActForceDeleteBranch:
		a.deleteSelectedBranch(true)
	case ActMerge:
		a.mergeSelected()
	case ActRebase:
		a.rebaseSelected()
	case ActToggleRemotes:
		a.branchesView.ShowRemotes = !a.branchesView.ShowRemotes
		a.pending |= refreshBranches

	// --- Commits panel ---
	case ActDetails:
		a.showDetails()
	case ActCherryPick:
		a.cherryPickSelected()
	case ActRevert:
		a.revertSelected()
	case ActCopyHash:
		a.copySelectedHash()

	// --- Main (diff) panel ---
	case ActStageHunk:
		a.stageSelectedHunk()
	case ActNextHunk:
		a.mainView.NextHunk(a.mainVisibleRows())
	case ActPrevHunk:
		a.mainView.PrevHunk(a.mainVisibleRows())
	case ActNextFile:
		a.mainView.NextFile(a.mainVisibleRows())
	case ActPrevFile:
		a.mainView.PrevFile(a.mainVisibleRows())

	// --- Stash panel ---
	case ActStashSave:
		a.openDialog(newInput("Stash message (empty for default)", "", submitStashMessage, ""))
	case ActStashPop:
		a.stashPopSelected()
	case ActStashDrop:
		a.stashDropSelected()

	// --- Tags panel ---
	case ActCreateTag:
		a.openDialog(newInput("New tag name", "", submitTagName, ""))
	case ActDeleteTag:
		a.deleteSelectedTag()
	case ActPushTag:
		a.pushSelectedTag()

	// --- Network ---
	case ActPush:
		a.runNetwork("Push", func(p git.Progress) error {
			return a.repo.Push(a.cfg.UI.Remote, a.headBranch, p)
		})
	case ActPull:
		a.runNetwork("Pull", func(p git.Progress) error {
			return a.repo.Pull(a.cfg.UI.Remote, a.headBranch, p)
		})
	case ActFetch:
		a.runNetwork("Fetch", func(p git.Progress) error {
			return a.repo.Fetch(a.cfg.UI.Remote, p)
		})
	}
}

// guard runs a repository mutation, surfaces failure, and on success
// invalidates the given slices and shows a message
func (a *App) guard(op func() error, refresh refreshSet, message string) {
	if err := op(); err != nil {
		a.setError(err)
		return
	}
	a.pending |= refresh
	if message != "" {
		a.setMessage("%s", message)
	}
}

// cancel handles Esc: dismiss message, drop search results, leave
// conflict hint mode
func (a *App) cancel() {
	switch {
	case a.message != "":
		a.message = ""
	case a.commitsView.Query != "":
		a.commitsView.ClearSearch()
		a.mode = ModeNormal
	case a.mode == ModeConflict:
		a.mode = ModeNormal
	}
}

// navigate routes movement actions to the focused panel
func (a *App) navigate(act Action) {
	if a.focus == views.PanelMain {
		vis := a.mainVisibleRows()
		switch act {
		case ActMoveUp:
			a.mainView.ScrollBy(-1, vis)
		case ActMoveDown:
			a.mainView.ScrollBy(1, vis)
		case ActPageUp:
			a.mainView.ScrollBy(-vis, vis)
		case ActPageDown:
			a.mainView.ScrollBy(vis, vis)
		case ActTop:
			a.mainView.ScrollTop()
		case ActBottom:
			a.mainView.ScrollBottom(vis)
		}
		return
	}

	if a.focus == views.PanelStatus {
		switch act {
		case ActMoveUp:
			a.statusView.Move(-1)
		case ActMoveDown:
			a.statusView.Move(1)
		case ActPageUp:
			a.statusView.List.PageUp()
		case ActPageDown:
			a.statusView.List.PageDown()
		case ActTop:
			a.statusView.List.Top()
		case ActBottom:
			a.statusView.List.Bottom()
		}
		// The main diff follows the status selection
		a.pending |= refreshDiff
		return
	}

	list := a.focusedList()
	if list == nil {
		return
	}
	switch act {
	case ActMoveUp:
		list.MoveUp()
	case ActMoveDown:
		list.MoveDown()
	case ActPageUp:
		list.PageUp()
	case ActPageDown:
		list.PageDown()
	case ActTop:
		list.Top()
	case ActBottom:
		list.Bottom()
	}
}

func (a *App) focusedList() *tui.ScrollState {
	switch a.focus {
	case views.PanelBranches:
		return &a.branchesView.List
	case views.PanelCommits:
		return &a.commitsView.List
	case views.PanelStash:
		return &a.stashView.List
	case views.PanelTags:
		return &a.tagsView.List
	}
	return nil
}

// mainVisibleRows approximates the main panel's inner height
func (a *App) mainVisibleRows() int {
	if a.height < 4 {
		return 1
	}
	return a.height - 4 // Header, footer, and the panel border
}

// --- Status operations ---

// stageToggle stages or unstages the selected entry depending on its
// section
func (a *App) stageToggle() {
	change, section, ok := a.statusView.Selected()
	if !ok {
		return
	}
	if section == views.SectionStaged {
		a.guard(func() error { return a.repo.UnstageFile(change.Path) },
			refreshStatus|refreshDiff|refreshHead, "Unstaged "+change.Path)
		return
	}
	a.guard(func() error { return a.repo.StageFile(change.Path) },
		refreshStatus|refreshDiff|refreshHead, "Staged "+change.Path)
}

// discardSelected throws away working tree changes, behind a confirmation
// when the setting demands one
func (a *App) discardSelected() {
	change, section, ok := a.statusView.Selected()
	if !ok {
		return
	}
	if section == views.SectionStaged {
		a.setError(fmt.Errorf("%w: unstage before discarding", git.ErrValidation))
		return
	}
	if a.cfg.ConfirmDestructive() {
		a.openDialog(newConfirm("Discard changes",
			"Discard changes to "+change.Path+"? This cannot be undone.",
			submitDiscardFile, change.Path))
		return
	}
	a.discardPath(change.Path)
}

func (a *App) discardPath(path string) {
	change, _, ok := a.statusView.Selected()
	if !ok || change.Path != path {
		// Selection moved while the dialog was open; look the entry up
		change = git.Change{Path: path}
		if st := a.currentStatus(); st != nil {
			for _, list := range [][]git.Change{st.Unstaged, st.Untracked} {
				for _, c := range list {
					if c.Path == path {
						change = c
					}
				}
			}
		}
	}
	a.guard(func() error { return a.repo.Discard(change) },
		refreshStatus|refreshDiff|refreshHead, "Discarded "+path)
}

// beginCommit validates preconditions and opens the message dialog
func (a *App) beginCommit() {
	st := a.currentStatus()
	if st == nil || len(st.Staged) == 0 {
		a.setError(fmt.Errorf("%w: no staged changes", git.ErrValidation))
		return
	}
	a.openDialog(newInput("Commit message", "", submitCommitMessage, ""))
}

func (a *App) currentStatus() *git.Status {
	st, err := a.repo.Status()
	if err != nil {
		a.setError(err)
		return nil
	}
	return st
}

// --- Branch operations ---

// checkoutSelected switches branches. A dirty working tree opens the
// three-way Stash/Discard/Cancel dialog first.
func (a *App) checkoutSelected() {
	branch, ok := a.branchesView.Selected()
	if !ok || branch.IsHead {
		return
	}
	clean, err := a.repo.IsClean()
	if err != nil {
		a.setError(err)
		return
	}
	if !clean {
		a.openDialog(newChoiceDialog("Dirty working tree",
			"Working tree has local changes. Checkout "+branch.Name+"?",
			branch.Name, []Choice{
				{Key: 's', Label: "stash", Submit: submitCheckoutStash},
				{Key: 'd', Label: "discard", Submit: submitCheckoutDiscard},
			}))
		return
	}
	a.switchBranch(branch.Name)
}

func (a *App) switchBranch(name string) {
	a.guard(func() error { return a.repo.SwitchBranch(name) },
		refreshHead|refreshStatus|refreshBranches|refreshCommits|refreshDiff,
		"Switched to "+name)
}

func (a *App) deleteSelectedBranch(force bool) {
	branch, ok := a.branchesView.Selected()
	if !ok {
		return
	}
	if branch.IsHead {
		a.setError(fmt.Errorf("%w: cannot delete the checked-out branch", git.ErrValidation))
		return
	}
	submit := submitDeleteBranch
	verb := "Delete"
	if force {
		submit = submitForceDeleteBranch
		verb = "Force delete"
	}
	if a.cfg.ConfirmDestructive() {
		a.openDialog(newConfirm(verb+" branch",
			verb+" branch "+branch.Name+"?", submit, branch.Name))
		return
	}
	a.deleteBranch(branch.Name, force)
}

func (a *App) deleteBranch(name string, force bool) {
	a.guard(func() error { return a.repo.DeleteBranch(name, force) },
		refreshBranches, "Deleted "+name)
}

func (a *App) mergeSelected() {
	branch, ok := a.branchesView.Selected()
	if !ok || branch.IsHead {
		return
	}
	outcome, conflicts, err := a.repo.Merge(branch.Name)
	if err != nil {
		a.setError(err)
		return
	}
	a.pending |= refreshHead | refreshStatus | refreshCommits | refreshDiff
	switch outcome {
	case git.MergeUpToDate:
		a.setMessage("Already up to date")
	case git.MergeFastForward:
		a.setMessage("Fast-forwarded to %s", branch.Name)
	case git.MergeMerged:
		a.setMessage("Merged %s", branch.Name)
	case git.MergeConflict:
		a.enterConflictMode(conflicts)
	}
}

func (a *App) rebaseSelected() {
	branch, ok := a.branchesView.Selected()
	if !ok || branch.IsHead {
		return
	}
	conflicts, err := a.repo.Rebase(branch.Name)
	if err != nil {
		a.setError(err)
		return
	}
	a.pending |= refreshHead | refreshStatus | refreshCommits | refreshDiff
	if len(conflicts) > 0 {
		a.enterConflictMode(conflicts)
		return
	}
	a.setMessage("Rebased onto %s", branch.Name)
}

// enterConflictMode switches hints and the main panel to conflict
// resolution
func (a *App) enterConflictMode(conflicts []string) {
	a.conflicts = conflicts
	a.mode = ModeConflict
	a.showConflicts()
	a.setMessage("Conflicts in %d file(s)", len(conflicts))
	a.log.Info("conflict mode", logging.F("files", len(conflicts)))
}

// --- Commit operations ---

func (a *App) showDetails() {
	switch a.focus {
	case views.PanelCommits:
		if c, ok := a.commitsView.Selected(); ok {
			a.showCommitDetails(c.ID)
		}
	case views.PanelStash:
		if s, ok := a.stashView.Selected(); ok {
			a.showStashDiff(s.Index)
		}
	case views.PanelTags:
		if t, ok := a.tagsView.Selected(); ok {
			a.showCommitDetails(t.Name)
		}
	}
}

func (a *App) cherryPickSelected() {
	c, ok := a.commitsView.Selected()
	if !ok {
		return
	}
	a.guard(func() error { return a.repo.CherryPick(c.ID) },
		refreshHead|refreshStatus|refreshCommits|refreshDiff,
		"Cherry-picked "+c.ShortID)
}

func (a *App) revertSelected() {
	c, ok := a.commitsView.Selected()
	if !ok {
		return
	}
	if a.cfg.ConfirmDestructive() {
		a.openDialog(newConfirm("Revert commit",
			"Revert "+c.ShortID+" \""+c.Summary+"\"?", submitRevertCommit, c.ID))
		return
	}
	a.revertCommit(c.ID)
}

func (a *App) revertCommit(id string) {
	short := id
	if len(short) > 7 {
		short = short[:7]
	}
	a.guard(func() error { return a.repo.Revert(id) },
		refreshHead|refreshStatus|refreshCommits|refreshDiff, "Reverted "+short)
}

func (a *App) copySelectedHash() {
	c, ok := a.commitsView.Selected()
	if !ok {
		return
	}
	if err := clipboard.WriteAll(c.ID); err != nil {
		a.setError(fmt.Errorf("copy hash: %w", err))
		return
	}
	a.setMessage("Copied %s", c.ShortID)
}

// --- Hunk operations ---

func (a *App) stageSelectedHunk() {
	file, hunk, ok := a.mainView.SelectedHunkTarget()
	if !ok {
		return
	}
	if a.mainSrc.kind != srcStatusFile {
		return // Hunk staging only applies to working tree diffs
	}
	if a.mainView.StagedSource {
		a.guard(func() error { return a.repo.UnstageHunk(file, hunk) },
			refreshStatus|refreshDiff|refreshHead, "Unstaged hunk")
		return
	}
	a.guard(func() error { return a.repo.StageHunk(file, hunk) },
		refreshStatus|refreshDiff|refreshHead, "Staged hunk")
}

// --- Stash operations ---

func (a *App) stashPopSelected() {
	s, ok := a.stashView.Selected()
	if !ok {
		return
	}
	a.guard(func() error { return a.repo.StashPop(s.Index) },
		refreshStatus|refreshStash|refreshDiff|refreshHead,
		fmt.Sprintf("Popped stash@{%d}", s.Index))
}

func (a *App) stashDropSelected() {
	s, ok := a.stashView.Selected()
	if !ok {
		return
	}
	if a.cfg.ConfirmDestructive() {
		a.openDialog(newConfirm("Drop stash",
			fmt.Sprintf("Drop stash@{%d} \"%s\"?", s.Index, s.Message),
			submitStashDrop, fmt.Sprintf("%d", s.Index)))
		return
	}
	a.stashDrop(s.Index)
}

func (a *App) stashDrop(index int) {
	a.guard(func() error { return a.repo.StashDrop(index) },
		refreshStash, fmt.Sprintf("Dropped stash@{%d}", index))
}

// --- Tag operations ---

func (a *App) deleteSelectedTag() {
	t, ok := a.tagsView.Selected()
	if !ok {
		return
	}
	if a.cfg.ConfirmDestructive() {
		a.openDialog(newConfirm("Delete tag", "Delete tag "+t.Name+"?",
			submitDeleteTag, t.Name))
		return
	}
	a.deleteTag(t.Name)
}

func (a *App) deleteTag(name string) {
	a.guard(func() error { return a.repo.DeleteTag(name) },
		refreshTags, "Deleted tag "+name)
}

func (a *App) pushSelectedTag() {
	t, ok := a.tagsView.Selected()
	if !ok {
		return
	}
	a.guard(func() error { return a.repo.PushTag(a.cfg.UI.Remote, t.Name) },
		0, "Pushed tag "+t.Name)
}

// --- Network operations ---

// runNetwork wraps a synchronous push/pull/fetch in a Progress dialog.
// The progress callback carries only the capability to update that
// dialog's counters and repaint; it never touches the wider view model.
func (a *App) runNetwork(title string, op func(git.Progress) error) {
	dlg := newProgress(title)
	a.openDialog(dlg)
	a.renderNow()

	err := op(func(current, total int) {
		dlg.Current, dlg.Total = current, total
		a.renderNow()
	})

	a.closeDialog()
	if err != nil {
		a.setError(err)
		return
	}
	a.pending |= refreshHead | refreshBranches | refreshCommits | refreshStatus
	a.setMessage("%s completed", title)
}

// --- Dialog submissions ---

// dispatchSubmit applies a dialog result
func (a *App) dispatchSubmit(submit submitID, value string) {
	switch submit {
	case submitCommitMessage:
		a.commitWithMessage(value)
	case submitBranchName:
		a.guard(func() error { return a.repo.CreateBranch(value, "") },
			refreshBranches, "Created branch "+value)
	case submitTagName:
		a.guard(func() error { return a.repo.CreateTag(value, "") },
			refreshTags, "Created tag "+value)
	case submitStashMessage:
		a.guard(func() error { return a.repo.StashSave(value) },
			refreshStatus|refreshStash|refreshDiff|refreshHead, "Stashed changes")
	case submitSearchQuery:
		a.applySearch(value)
	case submitCommandLine:
		a.runCommand(value)
	case submitDiscardFile:
		a.discardPath(value)
	case submitDeleteBranch:
		a.deleteBranch(value, false)
	case submitForceDeleteBranch:
		a.deleteBranch(value, true)
	case submitStashDrop:
		a.stashDrop(parseIndex(value))
	case submitDeleteTag:
		a.deleteTag(value)
	case submitRevertCommit:
		a.revertCommit(value)
	case submitCheckoutStash:
		if err := a.repo.StashSave(""); err != nil {
			a.setError(err)
			return
		}
		a.pending |= refreshStash
		a.switchBranch(value)
	case submitCheckoutDiscard:
		if err := a.repo.DiscardAll(); err != nil {
			a.setError(err)
			return
		}
		a.pending |= refreshStatus | refreshDiff
		a.switchBranch(value)
	}
}

func (a *App) commitWithMessage(message string) {
	id, err := a.repo.Commit(message)
	if err != nil {
		a.setError(err)
		return
	}
	short := id
	if len(short) > 7 {
		short = short[:7]
	}
	a.pending |= refreshStatus | refreshCommits | refreshHead | refreshDiff
	a.setMessage("Committed %s", short)
}

// applySearch runs the query against the cached commit list
func (a *App) applySearch(query string) {
	a.mode = ModeSearch
	if query == "" {
		a.commitsView.ClearSearch()
		a.mode = ModeNormal
		return
	}
	n := a.commitsView.Search(query)
	if n == 0 {
		a.setMessage("No matches for %q", query)
		a.mode = ModeNormal
		return
	}
	a.setMessage("%d match(es) — n/N to cycle", n)
}

// runCommand is the minimal ':' command parser
func (a *App) runCommand(line string) {
	a.mode = ModeNormal
	switch line {
	case "":
	case "q", "quit":
		a.quit = true
	case "help":
		a.toggleHelp()
	default:
		a.setError(fmt.Errorf("unknown command: %s", line))
	}
}

func parseIndex(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}
