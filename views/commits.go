package views

import (
	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/terminal/tui"
)

// CommitsView lists history and carries the active search result set
type CommitsView struct {
	List    tui.ScrollState
	commits []git.Commit

	// Search state: indices into commits, cursor within results
	Query     string
	Results   []int
	ResultPos int
}

// NewCommitsView creates an empty commits view
func NewCommitsView() *CommitsView {
	return &CommitsView{List: tui.ScrollState{Selection: -1, Visible: 1}}
}

// SetCommits replaces the history snapshot and drops stale search results
func (v *CommitsView) SetCommits(commits []git.Commit) {
	v.commits = commits
	sel := v.List.Selection
	v.List.SetTotal(len(commits))
	if sel >= 0 {
		v.List.Select(sel)
	}
	v.ClearSearch()
}

// Selected returns the commit under the cursor
func (v *CommitsView) Selected() (git.Commit, bool) {
	i := v.List.Selection
	if i < 0 || i >= len(v.commits) {
		return git.Commit{}, false
	}
	return v.commits[i], true
}

// Search filters the cached commits. A leading @ sigil matches authors, a
// leading # matches hash prefixes, anything else matches messages
// case-insensitively. The selection jumps to the first result.
func (v *CommitsView) Search(query string) int {
	mode := git.SearchMessage
	needle := query
	switch {
	case len(query) > 1 && query[0] == '@':
		mode = git.SearchAuthor
		needle = query[1:]
	case len(query) > 1 && query[0] == '#':
		mode = git.SearchHash
		needle = query[1:]
	}

	v.Query = query
	v.Results = v.Results[:0]
	v.ResultPos = 0
	for i, c := range v.commits {
		if git.CommitMatches(c, needle, mode) {
			v.Results = append(v.Results, i)
		}
	}
	if len(v.Results) > 0 {
		v.List.Select(v.Results[0])
	}
	return len(v.Results)
}

// NextResult advances the cursor through search results, wrapping
func (v *CommitsView) NextResult() {
	if len(v.Results) == 0 {
		return
	}
	v.ResultPos = (v.ResultPos + 1) % len(v.Results)
	v.List.Select(v.Results[v.ResultPos])
}

// PrevResult steps backwards through search results, wrapping
func (v *CommitsView) PrevResult() {
	if len(v.Results) == 0 {
		return
	}
	v.ResultPos = (v.ResultPos - 1 + len(v.Results)) % len(v.Results)
	v.List.Select(v.Results[v.ResultPos])
}

// ClearSearch drops the result set
func (v *CommitsView) ClearSearch() {
	v.Query = ""
	v.Results = nil
	v.ResultPos = 0
}

// Render draws the panel
func (v *CommitsView) Render(r tui.Region, th *config.Theme, focused bool) {
	title := PanelCommits.Title()
	if v.Query != "" {
		title = "Commits /" + v.Query
	}
	inner := frame(r, title, th, focused)
	v.List.SetVisible(inner.H)

	if len(v.commits) == 0 {
		emptyHint(inner, "no commits")
		return
	}

	inResults := make(map[int]bool, len(v.Results))
	for _, i := range v.Results {
		inResults[i] = true
	}

	for y := 0; y < inner.H; y++ {
		idx := v.List.Offset + y
		if idx >= len(v.commits) {
			break
		}
		c := v.commits[idx]
		selected := focused && idx == v.List.Selection

		hashStyle := tui.Style{Fg: th.Branch}
		msgStyle := tui.Style{}
		if inResults[idx] {
			msgStyle.Attr |= terminal.AttrBold
		}

		if selected {
			inner.FillRow(y, tui.Style{Bg: th.Selection})
			hashStyle = hashStyle.WithBg(th.Selection)
			msgStyle = msgStyle.WithBg(th.Selection)
		}
		inner.Text(0, y, c.ShortID, hashStyle)
		inner.Text(len(c.ShortID)+1, y, tui.Truncate(c.Summary, inner.W-len(c.ShortID)-1), msgStyle)
	}
}
