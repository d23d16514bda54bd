package app

import (
	"github.com/lixenwraith/g/views"
)

// toggleHelp shows the binding table in the main panel, or clears the panel
// when the help is already showing. The content shown before the help is
// not brought back; the status diff returns only while Status is focused.
func (a *App) toggleHelp() {
	if a.mainSrc.kind == srcHelp {
		a.mainSrc = mainSource{}
		a.mainView.Clear()
		a.pending |= refreshDiff
		return
	}
	a.mainSrc = mainSource{kind: srcHelp}
	a.mainView.ShowText("Help", helpLines())
	a.focusPanel(views.PanelMain)
	// Focusing main must not clobber the help text with a diff
	a.mainSrc = mainSource{kind: srcHelp}
}

// helpLines is the static binding table shown by '?'
func helpLines() []string {
	return []string{
		"Global",
		"  q, Ctrl+c      quit",
		"  ?              toggle this help",
		"  Esc            cancel / dismiss",
		"  j/k, arrows    move",
		"  Ctrl+u/Ctrl+d  page up / page down",
		"  g / G          top / bottom",
		"  h/l, Tab       previous / next panel",
		"  1-4            focus status/branches/commits/main",
		"  5 / 6          stash / tags panel",
		"  /              search commits",
		"  :              command (:q, :help)",
		"  P / p / f      push / pull / fetch",
		"",
		"Status",
		"  Enter, Space   stage or unstage file",
		"  a / A          stage all / unstage all",
		"  d              discard changes",
		"  c              commit staged changes",
		"",
		"Branches",
		"  Enter          checkout",
		"  n              create branch",
		"  d / D          delete / force delete",
		"  m / R          merge / rebase",
		"  t              toggle remote branches",
		"",
		"Commits",
		"  Enter          details",
		"  /              search (@author, #hash)",
		"  n / N          next / previous result",
		"  c / r          cherry-pick / revert",
		"  y              copy hash",
		"",
		"Diff (main panel)",
		"  Enter, Space   stage or unstage hunk",
		"  [ / ]          previous / next hunk",
		"  { / }          previous / next file",
		"",
		"Stash",
		"  Enter          show diff",
		"  s / p / d      save / pop / drop",
		"",
		"Tags",
		"  Enter          show target",
		"  n / d / P      create / delete / push",
	}
}
