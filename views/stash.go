package views

import (
	"fmt"

	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/terminal/tui"
)

// StashView lists stash entries
type StashView struct {
	List    tui.ScrollState
	stashes []git.Stash
}

// NewStashView creates an empty stash view
func NewStashView() *StashView {
	return &StashView{List: tui.ScrollState{Selection: -1, Visible: 1}}
}

// SetStashes replaces the stash list
func (v *StashView) SetStashes(stashes []git.Stash) {
	v.stashes = stashes
	sel := v.List.Selection
	v.List.SetTotal(len(stashes))
	if sel >= 0 {
		v.List.Select(sel)
	}
}

// Selected returns the stash under the cursor
func (v *StashView) Selected() (git.Stash, bool) {
	i := v.List.Selection
	if i < 0 || i >= len(v.stashes) {
		return git.Stash{}, false
	}
	return v.stashes[i], true
}

// Render draws the panel
func (v *StashView) Render(r tui.Region, th *config.Theme, focused bool) {
	inner := frame(r, PanelStash.Title(), th, focused)
	v.List.SetVisible(inner.H)

	if len(v.stashes) == 0 {
		emptyHint(inner, "no stashes")
		return
	}

	for y := 0; y < inner.H; y++ {
		idx := v.List.Offset + y
		if idx >= len(v.stashes) {
			break
		}
		s := v.stashes[idx]
		selected := focused && idx == v.List.Selection
		text := fmt.Sprintf("{%d} %s", s.Index, s.Message)
		listRow(inner, y, text, tui.Style{Fg: th.Branch}, selected, th)
	}
}
