package app

import (
	"fmt"

	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/terminal/tui"
	"github.com/lixenwraith/g/views"
)

// appTitle is the short name shown at the left edge of the header
const appTitle = "g"

// Compose renders the full view model into the front buffer. It is a pure
// function of controller state, which keeps frames consistent: mutations
// and rendering never interleave.
func (a *App) Compose(buf *terminal.Buffer) {
	buf.Clear()
	root := tui.NewRegion(buf)

	if a.tooSmall {
		a.composeTooSmall(root)
		return
	}

	l := Compute(buf.W, buf.H)

	a.composeHeader(regionOf(root, l.Header))
	a.composeFooter(regionOf(root, l.Footer))

	a.statusView.Render(regionOf(root, l.Left[0]), &a.th, a.focus == views.PanelStatus)
	a.branchesView.Render(regionOf(root, l.Left[1]), &a.th, a.focus == views.PanelBranches)

	slot3 := regionOf(root, l.Left[2])
	switch a.thirdSlot {
	case views.PanelStash:
		a.stashView.Render(slot3, &a.th, a.focus == views.PanelStash)
	case views.PanelTags:
		a.tagsView.Render(slot3, &a.th, a.focus == views.PanelTags)
	default:
		a.commitsView.Render(slot3, &a.th, a.focus == views.PanelCommits)
	}

	a.mainView.Render(regionOf(root, l.Main), &a.th, a.focus == views.PanelMain)

	if a.dialog != nil {
		a.dialog.Render(root, &a.th)
	}
}

func regionOf(root tui.Region, r Rect) tui.Region {
	return root.Sub(r.X, r.Y, r.W, r.H)
}

// composeTooSmall replaces the dashboard with a centered notice; only Quit
// and resize respond in this state
func (a *App) composeTooSmall(root tui.Region) {
	msg := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d — q quits",
		terminal.MinWidth, terminal.MinHeight, a.width, a.height)
	root.TextCenter(root.H/2, msg, tui.Style{Fg: a.th.Error, Attr: terminal.AttrBold})
}

// composeHeader renders the repository snapshot line
func (a *App) composeHeader(r tui.Region) {
	r.FillRow(0, tui.Style{Fg: a.th.Header})

	branch := a.headBranch
	if a.detached {
		branch = fmt.Sprintf("%s (detached)", a.headBranch)
	}
	state := "✓ clean"
	stateStyle := tui.Style{Fg: a.th.Staged}
	if !a.clean {
		state = "✗ dirty"
		stateStyle = tui.Style{Fg: a.th.Unstaged}
	}

	left := fmt.Sprintf("%s - [%s] | branch: %s | ↑%d ↓%d | ",
		appTitle, a.repo.Name(), branch, a.ahead, a.behind)
	r.Text(0, 0, left, tui.Style{Fg: a.th.Header, Attr: terminal.AttrBold})
	r.Text(tui.DisplayWidth(left), 0, state, stateStyle)

	if len(a.conflicts) > 0 {
		r.TextRight(0, fmt.Sprintf("CONFLICTS: %d", len(a.conflicts)),
			tui.Style{Fg: a.th.Error, Attr: terminal.AttrBold})
	}
}

// composeFooter renders either the transient message or the focused
// panel's key hints
func (a *App) composeFooter(r tui.Region) {
	r.FillRow(0, tui.Style{Fg: a.th.Footer})

	if a.message != "" {
		st := tui.Style{Fg: a.th.Message}
		if a.messageIsError {
			st = tui.Style{Fg: a.th.Error}
		}
		r.Text(0, 0, tui.Truncate(a.message, r.W), st)
		return
	}

	r.Text(0, 0, tui.Truncate(a.footerHints(), r.W), tui.Style{Fg: a.th.Footer})
}

// footerHints derives the hint list from the focused panel and mode
func (a *App) footerHints() string {
	if a.mode == ModeConflict {
		return "merge conflicts — resolve files, stage them, then commit │ Esc dismiss"
	}
	base := hintsFor(a.focus)
	return base + " │ ? help │ q quit"
}

// hintsFor is the pure hint table for each panel
func hintsFor(p views.PanelID) string {
	switch p {
	case views.PanelStatus:
		return "Enter stage │ a stage all │ A unstage all │ d discard │ c commit"
	case views.PanelBranches:
		return "Enter checkout │ n new │ d delete │ m merge │ R rebase │ t remotes"
	case views.PanelCommits:
		return "Enter details │ / search │ n/N results │ c cherry-pick │ r revert │ y copy hash"
	case views.PanelMain:
		return "Enter stage hunk │ [ ] hunks │ { } files"
	case views.PanelStash:
		return "Enter show │ s save │ p pop │ d drop"
	default:
		return "Enter show │ n new │ d delete │ P push"
	}
}
