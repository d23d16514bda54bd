package views

import (
	"fmt"

	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/terminal/tui"
)

// BranchesView lists local (and optionally remote) branches
type BranchesView struct {
	List        tui.ScrollState
	ShowRemotes bool
	branches    []git.Branch
}

// NewBranchesView creates an empty branches view
func NewBranchesView() *BranchesView {
	return &BranchesView{List: tui.ScrollState{Selection: -1, Visible: 1}}
}

// SetBranches replaces the branch list
func (v *BranchesView) SetBranches(branches []git.Branch) {
	v.branches = branches
	sel := v.List.Selection
	v.List.SetTotal(len(branches))
	if sel >= 0 {
		v.List.Select(sel)
	}
}

// Selected returns the branch under the cursor
func (v *BranchesView) Selected() (git.Branch, bool) {
	i := v.List.Selection
	if i < 0 || i >= len(v.branches) {
		return git.Branch{}, false
	}
	return v.branches[i], true
}

// Render draws the panel
func (v *BranchesView) Render(r tui.Region, th *config.Theme, focused bool) {
	title := PanelBranches.Title()
	if v.ShowRemotes {
		title = "Branches +remotes"
	}
	inner := frame(r, title, th, focused)
	v.List.SetVisible(inner.H)

	if len(v.branches) == 0 {
		emptyHint(inner, "no branches")
		return
	}

	for y := 0; y < inner.H; y++ {
		idx := v.List.Offset + y
		if idx >= len(v.branches) {
			break
		}
		b := v.branches[idx]
		selected := focused && idx == v.List.Selection

		marker := "  "
		st := tui.Style{Fg: th.Branch}
		if b.IsHead {
			marker = "* "
			st = tui.Style{Fg: th.BranchHead, Attr: terminal.AttrBold}
		}
		if b.Type == git.BranchRemote {
			st = tui.Style{Fg: th.Untracked}
		}

		text := marker + b.Name
		if b.Ahead > 0 || b.Behind > 0 {
			text += fmt.Sprintf(" ↑%d ↓%d", b.Ahead, b.Behind)
		}
		listRow(inner, y, text, st, selected, th)
	}
}
