package views

import (
	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/terminal/tui"
)

// TagsView lists tags
type TagsView struct {
	List tui.ScrollState
	tags []git.Tag
}

// NewTagsView creates an empty tags view
func NewTagsView() *TagsView {
	return &TagsView{List: tui.ScrollState{Selection: -1, Visible: 1}}
}

// SetTags replaces the tag list
func (v *TagsView) SetTags(tags []git.Tag) {
	v.tags = tags
	sel := v.List.Selection
	v.List.SetTotal(len(tags))
	if sel >= 0 {
		v.List.Select(sel)
	}
}

// Selected returns the tag under the cursor
func (v *TagsView) Selected() (git.Tag, bool) {
	i := v.List.Selection
	if i < 0 || i >= len(v.tags) {
		return git.Tag{}, false
	}
	return v.tags[i], true
}

// Render draws the panel
func (v *TagsView) Render(r tui.Region, th *config.Theme, focused bool) {
	inner := frame(r, PanelTags.Title(), th, focused)
	v.List.SetVisible(inner.H)

	if len(v.tags) == 0 {
		emptyHint(inner, "no tags")
		return
	}

	for y := 0; y < inner.H; y++ {
		idx := v.List.Offset + y
		if idx >= len(v.tags) {
			break
		}
		selected := focused && idx == v.List.Selection
		listRow(inner, y, v.tags[idx].Name, tui.Style{Fg: th.Branch}, selected, th)
	}
}
