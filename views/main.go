package views

import (
	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/terminal/tui"
)

// MainContent discriminates what the main panel shows
type MainContent uint8

const (
	MainEmpty MainContent = iota
	MainDiff
	MainText
)

type rowKind uint8

const (
	rowText rowKind = iota
	rowFile
	rowLine
)

// diffRow is one flattened display row of the main panel
type diffRow struct {
	kind rowKind
	text string
	line git.DiffLine
	hunk int // Index into hunks, -1 for non-hunk rows
}

// hunkRef locates a hunk inside the diff and the flattened rows
type hunkRef struct {
	file int
	hunk int
	row  int
}

// MainView renders diffs, commit details, and free text overlays
type MainView struct {
	Content MainContent
	Title   string

	// Diff state
	Diff         *git.Diff
	StagedSource bool // Hunk operations target the index side
	SelectedHunk int  // Index into hunks, -1 when none
	Scroll       int

	rows  []diffRow
	hunks []hunkRef

	// Text state
	Lines []string
}

// NewMainView creates an empty main view
func NewMainView() *MainView {
	return &MainView{SelectedHunk: -1}
}

// ShowText switches to free text content
func (v *MainView) ShowText(title string, lines []string) {
	v.Content = MainText
	v.Title = title
	v.Lines = lines
	v.Scroll = 0
}

// ShowDiff switches to diff content, optionally prefixed by header lines
// (commit details). stagedSource marks hunk operations as index-side.
func (v *MainView) ShowDiff(title string, preface []string, diff *git.Diff, stagedSource bool) {
	v.Content = MainDiff
	v.Title = title
	v.Diff = diff
	v.StagedSource = stagedSource
	v.Scroll = 0
	v.SelectedHunk = -1
	v.rebuild(preface)
	if len(v.hunks) > 0 {
		v.SelectedHunk = 0
	}
}

// Clear empties the panel
func (v *MainView) Clear() {
	v.Content = MainEmpty
	v.Title = ""
	v.Diff = nil
	v.rows = nil
	v.hunks = nil
	v.Lines = nil
	v.Scroll = 0
	v.SelectedHunk = -1
}

// rebuild flattens the diff into display rows
func (v *MainView) rebuild(preface []string) {
	v.rows = v.rows[:0]
	v.hunks = v.hunks[:0]

	for _, line := range preface {
		v.rows = append(v.rows, diffRow{kind: rowText, text: line, hunk: -1})
	}
	if v.Diff == nil {
		return
	}
	for fi, f := range v.Diff.Files {
		v.rows = append(v.rows, diffRow{kind: rowFile, text: f.Path, hunk: -1})
		for hi, h := range f.Hunks {
			ref := hunkRef{file: fi, hunk: hi, row: len(v.rows)}
			idx := len(v.hunks)
			v.hunks = append(v.hunks, ref)
			for _, l := range h.Lines {
				v.rows = append(v.rows, diffRow{kind: rowLine, line: l, hunk: idx})
			}
		}
	}
}

// SelectedHunkTarget returns the file and hunk index the staging operation
// applies to
func (v *MainView) SelectedHunkTarget() (*git.DiffFile, int, bool) {
	if v.Diff == nil || v.SelectedHunk < 0 || v.SelectedHunk >= len(v.hunks) {
		return nil, 0, false
	}
	ref := v.hunks[v.SelectedHunk]
	return &v.Diff.Files[ref.file], ref.hunk, true
}

// NextHunk selects the following hunk and scrolls it into view
func (v *MainView) NextHunk(visible int) {
	if v.SelectedHunk >= 0 && v.SelectedHunk < len(v.hunks)-1 {
		v.SelectedHunk++
		v.scrollToHunk(visible)
	}
}

// PrevHunk selects the preceding hunk
func (v *MainView) PrevHunk(visible int) {
	if v.SelectedHunk > 0 {
		v.SelectedHunk--
		v.scrollToHunk(visible)
	}
}

// NextFile jumps to the first hunk of the next file
func (v *MainView) NextFile(visible int) {
	if v.SelectedHunk < 0 {
		return
	}
	cur := v.hunks[v.SelectedHunk].file
	for i := v.SelectedHunk + 1; i < len(v.hunks); i++ {
		if v.hunks[i].file != cur {
			v.SelectedHunk = i
			v.scrollToHunk(visible)
			return
		}
	}
}

// PrevFile jumps to the first hunk of the previous file
func (v *MainView) PrevFile(visible int) {
	if v.SelectedHunk < 0 {
		return
	}
	cur := v.hunks[v.SelectedHunk].file
	for i := v.SelectedHunk - 1; i >= 0; i-- {
		if v.hunks[i].file != cur {
			// Walk back to that file's first hunk
			first := i
			for first > 0 && v.hunks[first-1].file == v.hunks[i].file {
				first--
			}
			v.SelectedHunk = first
			v.scrollToHunk(visible)
			return
		}
	}
}

func (v *MainView) scrollToHunk(visible int) {
	if v.SelectedHunk < 0 || v.SelectedHunk >= len(v.hunks) {
		return
	}
	row := v.hunks[v.SelectedHunk].row
	if row < v.Scroll {
		v.Scroll = row
	} else if visible > 0 && row >= v.Scroll+visible {
		v.Scroll = row - visible + 1
	}
}

// rowCount returns the total rows for the current content
func (v *MainView) rowCount() int {
	if v.Content == MainText {
		return len(v.Lines)
	}
	return len(v.rows)
}

// ScrollBy moves the viewport, clamped to content
func (v *MainView) ScrollBy(delta, visible int) {
	v.Scroll += delta
	max := v.rowCount() - visible
	if max < 0 {
		max = 0
	}
	if v.Scroll > max {
		v.Scroll = max
	}
	if v.Scroll < 0 {
		v.Scroll = 0
	}
}

// ScrollTop jumps to the first row
func (v *MainView) ScrollTop() {
	v.Scroll = 0
}

// ScrollBottom jumps so the last row is visible
func (v *MainView) ScrollBottom(visible int) {
	v.Scroll = v.rowCount() - visible
	if v.Scroll < 0 {
		v.Scroll = 0
	}
}

// Render draws the panel
func (v *MainView) Render(r tui.Region, th *config.Theme, focused bool) {
	title := v.Title
	if title == "" {
		title = PanelMain.Title()
	}
	inner := frame(r, title, th, focused)

	switch v.Content {
	case MainText:
		for y := 0; y < inner.H; y++ {
			idx := v.Scroll + y
			if idx >= len(v.Lines) {
				break
			}
			inner.Text(0, y, tui.Truncate(v.Lines[idx], inner.W), tui.Style{})
		}
	case MainDiff:
		v.renderDiff(inner, th)
	default:
		emptyHint(inner, "select a file or commit to view its diff")
	}
}

func (v *MainView) renderDiff(r tui.Region, th *config.Theme) {
	for y := 0; y < r.H; y++ {
		idx := v.Scroll + y
		if idx >= len(v.rows) {
			break
		}
		row := v.rows[idx]

		switch row.kind {
		case rowText:
			r.Text(0, y, tui.Truncate(row.text, r.W), tui.Style{})
		case rowFile:
			r.Text(0, y, tui.Truncate("▸ "+row.text, r.W), tui.Style{Fg: th.Title, Attr: terminal.AttrBold})
		case rowLine:
			v.renderDiffLine(r, y, row, th)
		}
	}
}

func (v *MainView) renderDiffLine(r tui.Region, y int, row diffRow, th *config.Theme) {
	l := row.line
	var prefix byte
	var st tui.Style
	switch l.Kind {
	case git.LineHunkHeader:
		st = tui.Style{Fg: th.DiffHunk}
		if row.hunk == v.SelectedHunk {
			st = st.WithBg(th.Selection).Bold()
			r.FillRow(y, tui.Style{Bg: th.Selection})
		}
		r.Text(0, y, tui.Truncate(l.Content, r.W), st)
		return
	case git.LineAddition:
		prefix = '+'
		st = tui.Style{Fg: th.DiffAdd}
	case git.LineDeletion:
		prefix = '-'
		st = tui.Style{Fg: th.DiffDelete}
	default:
		prefix = ' '
		st = tui.Style{}
	}
	r.Cell(0, y, rune(prefix), st)
	r.Text(1, y, tui.Truncate(l.Content, r.W-1), st)
}
