// Package views holds the per-panel content state of the dashboard and the
// composition of each panel into cell regions.
package views

import (
	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/terminal/tui"
)

// PanelID identifies a dashboard panel
type PanelID uint8

const (
	PanelStatus PanelID = iota
	PanelBranches
	PanelCommits
	PanelMain
	PanelStash
	PanelTags
)

// Title returns the panel's box title
func (p PanelID) Title() string {
	switch p {
	case PanelStatus:
		return "Status"
	case PanelBranches:
		return "Branches"
	case PanelCommits:
		return "Commits"
	case PanelMain:
		return "Main"
	case PanelStash:
		return "Stash"
	default:
		return "Tags"
	}
}

// frame draws the panel border, highlighted when focused, and returns the
// inner content region
func frame(r tui.Region, title string, th *config.Theme, focused bool) tui.Region {
	border := tui.Style{Fg: th.Border}
	if focused {
		border = tui.Style{Fg: th.BorderFocused}
	}
	line := tui.LineSingle
	if focused {
		line = tui.LineHeavy
	}
	return r.Card(title, line, border)
}

// listRow paints one row of a list panel, reversing the selected row
func listRow(r tui.Region, y int, text string, st tui.Style, selected bool, th *config.Theme) {
	if selected {
		st = st.WithBg(th.Selection)
		r.FillRow(y, tui.Style{Bg: th.Selection})
	}
	r.Text(0, y, tui.Truncate(text, r.W), st)
}

// emptyHint renders a dimmed placeholder for panels with no content
func emptyHint(r tui.Region, text string) {
	r.Text(0, 0, text, tui.Style{Fg: terminal.Palette(242), Attr: terminal.AttrDim})
}
