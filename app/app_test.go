package app

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/logging"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/views"
)

// stubRepo is a scriptable collaborator that records every operation
type stubRepo struct {
	name     string
	branch   string
	detached bool
	ahead    int
	behind   int
	clean    bool

	status   git.Status
	branches []git.Branch
	commits  []git.Commit
	stashes  []git.Stash
	tags     []git.Tag

	calls []string

	// pullFn, when set, is invoked with the progress callback so tests can
	// observe mid-operation state
	pullFn func(git.Progress)
}

func newStubRepo() *stubRepo {
	return &stubRepo{name: "demo", branch: "main", clean: true}
}

func (s *stubRepo) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *stubRepo) Name() string                   { return s.name }
func (s *stubRepo) CurrentBranch() (string, bool, error) { return s.branch, !s.detached, nil }
func (s *stubRepo) AheadBehind() (int, int)        { return s.ahead, s.behind }
func (s *stubRepo) IsClean() (bool, error)         { return s.clean, nil }

func (s *stubRepo) Status() (*git.Status, error) {
	st := s.status
	return &st, nil
}

func (s *stubRepo) Branches(includeRemote bool) ([]git.Branch, error) {
	return s.branches, nil
}

func (s *stubRepo) Commits(max int) ([]git.Commit, error) { return s.commits, nil }

func (s *stubRepo) SearchCommits(q string, m git.SearchMode, max int) ([]git.Commit, error) {
	return git.FilterCommits(s.commits, q, m), nil
}

func (s *stubRepo) DiffStaged() (*git.Diff, error)   { return &git.Diff{}, nil }
func (s *stubRepo) DiffUnstaged() (*git.Diff, error) { return &git.Diff{}, nil }

func (s *stubRepo) DiffFile(path string, staged bool) (*git.Diff, error) {
	s.record("diff_file %s staged=%v", path, staged)
	return &git.Diff{}, nil
}

func (s *stubRepo) DiffStash(index int) (*git.Diff, error) {
	s.record("diff_stash %d", index)
	return &git.Diff{}, nil
}

func (s *stubRepo) CommitDetails(id string) ([]string, *git.Diff, error) {
	s.record("commit_details %s", id)
	return []string{"commit " + id}, &git.Diff{}, nil
}

func (s *stubRepo) StageFile(path string) error {
	s.record("stage_file %s", path)
	// Move the entry from unstaged/untracked to staged
	move := func(from *[]git.Change) bool {
		for i, c := range *from {
			if c.Path == path {
				*from = append((*from)[:i], (*from)[i+1:]...)
				s.status.Staged = append(s.status.Staged, c)
				return true
			}
		}
		return false
	}
	if !move(&s.status.Unstaged) {
		move(&s.status.Untracked)
	}
	return nil
}

func (s *stubRepo) StageAll() error { s.record("stage_all"); return nil }

func (s *stubRepo) UnstageFile(path string) error {
	s.record("unstage_file %s", path)
	return nil
}

func (s *stubRepo) UnstageAll() error { s.record("unstage_all"); return nil }

func (s *stubRepo) StageHunk(f *git.DiffFile, hunk int) error {
	s.record("stage_hunk %s %d", f.Path, hunk)
	return nil
}

func (s *stubRepo) UnstageHunk(f *git.DiffFile, hunk int) error {
	s.record("unstage_hunk %s %d", f.Path, hunk)
	return nil
}

func (s *stubRepo) Discard(c git.Change) error {
	s.record("discard %s", c.Path)
	return nil
}

func (s *stubRepo) DiscardAll() error {
	s.record("discard_all")
	s.clean = true
	return nil
}

func (s *stubRepo) Commit(message string) (string, error) {
	s.record("commit %q", message)
	return "feedc0de1234", nil
}

func (s *stubRepo) CherryPick(id string) error { s.record("cherry_pick %s", id); return nil }
func (s *stubRepo) Revert(id string) error     { s.record("revert %s", id); return nil }

func (s *stubRepo) CreateBranch(name, base string) error {
	s.record("create_branch %s", name)
	return nil
}

func (s *stubRepo) DeleteBranch(name string, force bool) error {
	s.record("delete_branch %s force=%v", name, force)
	return nil
}

func (s *stubRepo) SwitchBranch(name string) error {
	s.record("switch_branch %s", name)
	s.branch = name
	for i := range s.branches {
		s.branches[i].IsHead = s.branches[i].Name == name
	}
	return nil
}

func (s *stubRepo) Merge(branch string) (git.MergeOutcome, []string, error) {
	s.record("merge %s", branch)
	return git.MergeMerged, nil, nil
}

func (s *stubRepo) Rebase(upstream string) ([]string, error) {
	s.record("rebase %s", upstream)
	return nil, nil
}

func (s *stubRepo) ConflictedFiles() ([]string, error) { return nil, nil }

func (s *stubRepo) StashList() ([]git.Stash, error) { return s.stashes, nil }

func (s *stubRepo) StashSave(message string) error {
	s.record("stash_save %q", message)
	s.clean = true
	return nil
}

func (s *stubRepo) StashPop(index int) error  { s.record("stash_pop %d", index); return nil }
func (s *stubRepo) StashDrop(index int) error { s.record("stash_drop %d", index); return nil }

func (s *stubRepo) Tags() ([]git.Tag, error) { return s.tags, nil }

func (s *stubRepo) CreateTag(name, ref string) error {
	s.record("create_tag %s", name)
	return nil
}

func (s *stubRepo) DeleteTag(name string) error { s.record("delete_tag %s", name); return nil }

func (s *stubRepo) PushTag(remote, name string) error {
	s.record("push_tag %s %s", remote, name)
	return nil
}

func (s *stubRepo) Push(remote, branch string, p git.Progress) error {
	s.record("push %s %s", remote, branch)
	return nil
}

func (s *stubRepo) Pull(remote, branch string, p git.Progress) error {
	s.record("pull %s %s", remote, branch)
	if s.pullFn != nil {
		s.pullFn(p)
	}
	return nil
}

func (s *stubRepo) Fetch(remote string, p git.Progress) error {
	s.record("fetch %s", remote)
	return nil
}

func (s *stubRepo) lastCall() string {
	if len(s.calls) == 0 {
		return ""
	}
	return s.calls[len(s.calls)-1]
}

func (s *stubRepo) hasCall(call string) bool {
	for _, c := range s.calls {
		if c == call {
			return true
		}
	}
	return false
}

// --- Test harness ---

func newTestApp(t *testing.T, repo *stubRepo) *App {
	t.Helper()
	a, err := New(repo, config.Default(), logging.Nop())
	if err != nil {
		t.Fatal(err)
	}
	a.setSize(80, 24)
	a.applyRefresh()
	return a
}

func (a *App) frameText(t *testing.T) []string {
	t.Helper()
	a.Compose(a.frame)
	lines := make([]string, a.frame.H)
	for y := 0; y < a.frame.H; y++ {
		var b strings.Builder
		for x := 0; x < a.frame.W; x++ {
			r := a.frame.At(x, y).Rune
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func (a *App) press(ev terminal.Event) {
	a.handleKey(ev)
	a.applyRefresh()
}

// --- Scenarios ---

func TestScenarioStartupAndQuit(t *testing.T) {
	repo := newStubRepo()
	a := newTestApp(t, repo)

	lines := a.frameText(t)
	wantHeader := "g - [demo] | branch: main | ↑0 ↓0 | ✓ clean"
	if !strings.HasPrefix(lines[0], wantHeader) {
		t.Errorf("header = %q, want prefix %q", lines[0], wantHeader)
	}

	if a.focus != views.PanelStatus {
		t.Errorf("initial focus = %v, want status", a.focus)
	}
	if !strings.Contains(lines[23], "commit") {
		t.Errorf("footer should show status hints, got %q", lines[23])
	}

	a.press(runeEv('q'))
	if !a.quit || a.exitCode != 0 {
		t.Errorf("q must quit with code 0, quit=%v code=%d", a.quit, a.exitCode)
	}
}

func TestScenarioStageFile(t *testing.T) {
	repo := newStubRepo()
	repo.clean = false
	repo.status.Unstaged = []git.Change{{Path: "README.md", Kind: git.ChangeModified}}
	a := newTestApp(t, repo)

	// The unstaged file is selected after the section header is skipped
	change, section, ok := a.statusView.Selected()
	if !ok || change.Path != "README.md" || section != views.SectionUnstaged {
		t.Fatalf("selection = %+v %v %v", change, section, ok)
	}

	a.press(keyEv(terminal.KeyEnter))
	if !repo.hasCall("stage_file README.md") {
		t.Fatalf("expected stage_file call, got %v", repo.calls)
	}

	// After the refresh the file renders under Staged
	lines := a.frameText(t)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Staged") {
		t.Errorf("staged section missing after staging:\n%s", joined)
	}
}

func TestScenarioSearchCommits(t *testing.T) {
	repo := newStubRepo()
	repo.commits = []git.Commit{
		{ID: "a1b2c3d4", ShortID: "a1b2c3d", Summary: "Fix crash on resize", Author: "alice"},
		{ID: "b2c3d4e5", ShortID: "b2c3d4e", Summary: "Add tags panel", Author: "bob"},
		{ID: "c3d4e5f6", ShortID: "c3d4e5f", Summary: "fix typo", Author: "alice"},
	}
	a := newTestApp(t, repo)

	// '/' opens search focused on commits
	a.press(runeEv('/'))
	if a.dialog == nil || a.dialog.Kind != DialogSearch {
		t.Fatal("search dialog should be open")
	}
	for _, r := range "fix" {
		a.press(runeEv(r))
	}
	a.press(keyEv(terminal.KeyEnter))

	if len(a.commitsView.Results) != 2 {
		t.Fatalf("message search 'fix' should match 2 commits, got %v", a.commitsView.Results)
	}

	// Author sigil
	a.press(runeEv('/'))
	for _, r := range "@alice" {
		a.press(runeEv(r))
	}
	a.press(keyEv(terminal.KeyEnter))
	if len(a.commitsView.Results) != 2 {
		t.Fatalf("author search @alice should match 2, got %v", a.commitsView.Results)
	}

	// Hash sigil
	a.press(runeEv('/'))
	for _, r := range "#a1b" {
		a.press(runeEv(r))
	}
	a.press(keyEv(terminal.KeyEnter))
	if len(a.commitsView.Results) != 1 || a.commitsView.Results[0] != 0 {
		t.Fatalf("hash search #a1b should match the first commit, got %v", a.commitsView.Results)
	}
}

func TestScenarioDirtyCheckout(t *testing.T) {
	repo := newStubRepo()
	repo.clean = false
	repo.status.Unstaged = []git.Change{{Path: "wip.go", Kind: git.ChangeModified}}
	repo.branches = []git.Branch{
		{Name: "main", IsHead: true},
		{Name: "feature/x"},
	}
	a := newTestApp(t, repo)

	a.press(runeEv('2')) // Focus branches
	if a.focus != views.PanelBranches {
		t.Fatalf("focus = %v", a.focus)
	}
	a.press(runeEv('j')) // Select feature/x
	a.press(keyEv(terminal.KeyEnter))

	if a.dialog == nil || len(a.dialog.Choices) != 2 {
		t.Fatalf("dirty checkout must open the stash/discard dialog, got %+v", a.dialog)
	}

	a.press(runeEv('s'))
	if !repo.hasCall(`stash_save ""`) {
		t.Fatalf("expected stash_save, got %v", repo.calls)
	}
	if !repo.hasCall("switch_branch feature/x") {
		t.Fatalf("expected switch_branch after stash, got %v", repo.calls)
	}

	// Ordering: stash before switch
	var stashIdx, switchIdx int
	for i, c := range repo.calls {
		if c == `stash_save ""` {
			stashIdx = i
		}
		if c == "switch_branch feature/x" {
			switchIdx = i
		}
	}
	if stashIdx > switchIdx {
		t.Error("stash_save must run before switch_branch")
	}

	lines := a.frameText(t)
	if !strings.Contains(lines[0], "branch: feature/x") {
		t.Errorf("header should show the new branch, got %q", lines[0])
	}
}

func TestScenarioTooSmall(t *testing.T) {
	repo := newStubRepo()
	a := newTestApp(t, repo)

	a.setSize(79, 24)
	lines := a.frameText(t)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "too small") {
		t.Fatalf("expected too-small notice, got:\n%s", joined)
	}

	// Everything except quit is ignored
	a.press(runeEv('j'))
	a.press(keyEv(terminal.KeyEnter))
	if a.quit {
		t.Fatal("navigation must not quit")
	}

	// Growing back restores the dashboard
	a.setSize(100, 30)
	a.applyRefresh()
	lines = a.frameText(t)
	if !strings.Contains(lines[0], "g - [demo]") {
		t.Errorf("dashboard should be back, got %q", lines[0])
	}

	a.setSize(79, 24)
	a.press(runeEv('q'))
	if !a.quit {
		t.Error("q must quit in the too-small state")
	}
}

func TestScenarioPullProgress(t *testing.T) {
	repo := newStubRepo()
	a := newTestApp(t, repo)

	var midDialog bool
	var midCurrent, midTotal int
	repo.pullFn = func(p git.Progress) {
		p(3, 5)
		// The callback mutates only the progress dialog; observe it while
		// the synchronous call is still in flight
		midDialog = a.dialog != nil && a.dialog.Kind == DialogProgress
		if a.dialog != nil {
			midCurrent, midTotal = a.dialog.Current, a.dialog.Total
		}
	}

	a.dispatch(ActPull)
	if !repo.hasCall("pull origin main") {
		t.Fatalf("expected pull, got %v", repo.calls)
	}
	if !midDialog || midCurrent != 3 || midTotal != 5 {
		t.Errorf("mid-operation dialog state: open=%v %d/%d, want 3/5", midDialog, midCurrent, midTotal)
	}
	if a.dialog != nil {
		t.Error("progress dialog must close on completion")
	}
	if a.message != "Pull completed" {
		t.Errorf("message = %q, want %q", a.message, "Pull completed")
	}
}

func TestFocusCycleIdentity(t *testing.T) {
	repo := newStubRepo()
	a := newTestApp(t, repo)

	order := []views.PanelID{}
	for i := 0; i < 4; i++ {
		order = append(order, a.focus)
		a.dispatch(ActNextPanel)
	}
	if a.focus != order[0] {
		t.Errorf("4x next panel must be the identity, got %v", a.focus)
	}

	want := []views.PanelID{views.PanelStatus, views.PanelBranches, views.PanelCommits, views.PanelMain}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("cycle order = %v, want %v", order, want)
		}
	}

	// Backwards is the inverse
	a.dispatch(ActPrevPanel)
	if a.focus != views.PanelMain {
		t.Errorf("prev from status should land on main, got %v", a.focus)
	}
}

func TestDialogBlocksOtherInput(t *testing.T) {
	repo := newStubRepo()
	repo.status.Staged = []git.Change{{Path: "a.go", Kind: git.ChangeModified}}
	repo.clean = false
	a := newTestApp(t, repo)

	a.press(runeEv('c')) // Commit dialog
	if a.dialog == nil || a.dialog.Kind != DialogInput {
		t.Fatal("commit dialog should be open")
	}

	// 'q' types into the field instead of quitting
	a.press(runeEv('q'))
	if a.quit {
		t.Fatal("keys must route into the dialog")
	}
	if a.dialog.Field.Value() != "q" {
		t.Errorf("field = %q", a.dialog.Field.Value())
	}

	// Esc cancels the dialog without committing
	a.press(keyEv(terminal.KeyEscape))
	if a.dialog != nil {
		t.Fatal("escape must close the dialog")
	}
	for _, c := range repo.calls {
		if strings.HasPrefix(c, "commit") {
			t.Fatalf("cancelled dialog must not commit: %v", repo.calls)
		}
	}
}

func TestCommitFlow(t *testing.T) {
	repo := newStubRepo()
	repo.status.Staged = []git.Change{{Path: "a.go", Kind: git.ChangeModified}}
	repo.clean = false
	a := newTestApp(t, repo)

	a.press(runeEv('c'))
	for _, r := range "fix: parser" {
		a.press(runeEv(r))
	}
	a.press(keyEv(terminal.KeyEnter))

	if !repo.hasCall(`commit "fix: parser"`) {
		t.Fatalf("expected commit, got %v", repo.calls)
	}
	if !strings.Contains(a.message, "feedc0d") {
		t.Errorf("message should carry the short id, got %q", a.message)
	}
}

func TestCommitRequiresStagedChanges(t *testing.T) {
	repo := newStubRepo()
	a := newTestApp(t, repo)

	a.press(runeEv('c'))
	if a.dialog != nil {
		t.Fatal("commit with nothing staged must not open a dialog")
	}
	if !a.messageIsError {
		t.Error("expected a validation error message")
	}
}

func TestDiscardConfirmation(t *testing.T) {
	repo := newStubRepo()
	repo.clean = false
	repo.status.Unstaged = []git.Change{{Path: "wip.go", Kind: git.ChangeModified}}
	a := newTestApp(t, repo)

	a.press(runeEv('d'))
	if a.dialog == nil || a.dialog.Kind != DialogConfirm {
		t.Fatal("discard must confirm first")
	}

	// 'n' declines
	a.press(runeEv('n'))
	if repo.hasCall("discard wip.go") {
		t.Fatal("declined confirmation must not discard")
	}

	// 'y' accepts
	a.press(runeEv('d'))
	a.press(runeEv('y'))
	if !repo.hasCall("discard wip.go") {
		t.Fatalf("expected discard, got %v", repo.calls)
	}
}

func TestStashPanelFlow(t *testing.T) {
	repo := newStubRepo()
	repo.stashes = []git.Stash{{Index: 0, Message: "WIP on main"}}
	a := newTestApp(t, repo)

	a.press(runeEv('5'))
	if a.focus != views.PanelStash || a.thirdSlot != views.PanelStash {
		t.Fatalf("5 should focus the stash panel, focus=%v slot=%v", a.focus, a.thirdSlot)
	}

	a.press(runeEv('p'))
	if !repo.hasCall("stash_pop 0") {
		t.Fatalf("expected stash_pop, got %v", repo.calls)
	}
}

func TestConflictModeFooter(t *testing.T) {
	repo := newStubRepo()
	repo.branches = []git.Branch{
		{Name: "main", IsHead: true},
		{Name: "topic"},
	}
	a := newTestApp(t, repo)

	a.enterConflictMode([]string{"a.go", "b.go"})
	a.message = "" // Let the hints show
	lines := a.frameText(t)
	if !strings.Contains(lines[23], "conflict") {
		t.Errorf("footer should show conflict hints, got %q", lines[23])
	}
	if !strings.Contains(lines[0], "CONFLICTS: 2") {
		t.Errorf("header should flag conflicts, got %q", lines[0])
	}
}
