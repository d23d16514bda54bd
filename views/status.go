package views

import (
	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/terminal/tui"
)

// StatusSection tags which group a status row belongs to
type StatusSection uint8

const (
	SectionStaged StatusSection = iota
	SectionUnstaged
	SectionUntracked
)

// statusRow is one display row: either a section header or a file entry
type statusRow struct {
	header  string
	section StatusSection
	change  git.Change
	isFile  bool
}

// StatusView shows staged, unstaged, and untracked changes
type StatusView struct {
	List tui.ScrollState
	rows []statusRow
}

// NewStatusView creates an empty status view
func NewStatusView() *StatusView {
	return &StatusView{List: tui.ScrollState{Selection: -1, Visible: 1}}
}

// SetStatus rebuilds the row model from a fresh status snapshot, keeping
// the selection position where possible
func (v *StatusView) SetStatus(st *git.Status) {
	v.rows = v.rows[:0]
	if st != nil {
		appendSection := func(name string, section StatusSection, changes []git.Change) {
			if len(changes) == 0 {
				return
			}
			v.rows = append(v.rows, statusRow{header: name, section: section})
			for _, c := range changes {
				v.rows = append(v.rows, statusRow{section: section, change: c, isFile: true})
			}
		}
		appendSection("Staged", SectionStaged, st.Staged)
		appendSection("Unstaged", SectionUnstaged, st.Unstaged)
		appendSection("Untracked", SectionUntracked, st.Untracked)
	}

	sel := v.List.Selection
	v.List.SetTotal(len(v.rows))
	if sel >= 0 {
		v.List.Select(sel)
	}
	v.skipHeader(1)
}

// Empty reports whether there are no changes at all
func (v *StatusView) Empty() bool {
	return len(v.rows) == 0
}

// Selected returns the currently selected file entry
func (v *StatusView) Selected() (git.Change, StatusSection, bool) {
	i := v.List.Selection
	if i < 0 || i >= len(v.rows) || !v.rows[i].isFile {
		return git.Change{}, 0, false
	}
	return v.rows[i].change, v.rows[i].section, true
}

// Move applies a selection delta, skipping section headers
func (v *StatusView) Move(delta int) {
	if delta > 0 {
		v.List.MoveDown()
		v.skipHeader(1)
	} else {
		v.List.MoveUp()
		v.skipHeader(-1)
	}
}

// skipHeader nudges the selection off header rows in the given direction
func (v *StatusView) skipHeader(dir int) {
	for {
		i := v.List.Selection
		if i < 0 || i >= len(v.rows) || v.rows[i].isFile {
			return
		}
		next := i + dir
		if next < 0 || next >= len(v.rows) {
			// Nothing selectable that way; try the other direction
			if dir < 0 {
				dir = 1
			} else {
				return
			}
			next = i + dir
			if next < 0 || next >= len(v.rows) {
				return
			}
		}
		v.List.Select(next)
	}
}

// Render draws the panel
func (v *StatusView) Render(r tui.Region, th *config.Theme, focused bool) {
	inner := frame(r, PanelStatus.Title(), th, focused)
	v.List.SetVisible(inner.H)

	if len(v.rows) == 0 {
		emptyHint(inner, "nothing to commit")
		return
	}

	for y := 0; y < inner.H; y++ {
		idx := v.List.Offset + y
		if idx >= len(v.rows) {
			break
		}
		row := v.rows[idx]
		selected := focused && idx == v.List.Selection

		if !row.isFile {
			listRow(inner, y, row.header, tui.Style{Fg: th.Title, Attr: terminal.AttrBold}, selected, th)
			continue
		}

		st := tui.Style{}
		switch row.section {
		case SectionStaged:
			st.Fg = th.Staged
		case SectionUnstaged:
			st.Fg = th.Unstaged
		default:
			st.Fg = th.Untracked
		}
		text := " " + string(row.change.Kind.Marker()) + " " + row.change.Path
		listRow(inner, y, text, st, selected, th)
	}
}
