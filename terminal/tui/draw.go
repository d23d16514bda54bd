package tui

// LineType specifies box drawing character style
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
	LineHeavy                   // ┏━┓┃┗┛
)

// Box drawing character sets indexed by LineType
var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// Progress bar characters
const (
	progressFull  = '█'
	progressEmpty = '░'
)

// Box draws a border around the region edge
func (r Region) Box(line LineType, st Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if line >= LineType(len(boxChars)) {
		line = LineSingle
	}
	chars := boxChars[line]

	r.Cell(0, 0, chars[boxTL], st)
	r.Cell(r.W-1, 0, chars[boxTR], st)
	r.Cell(0, r.H-1, chars[boxBL], st)
	r.Cell(r.W-1, r.H-1, chars[boxBR], st)

	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, chars[boxH], st)
		r.Cell(x, r.H-1, chars[boxH], st)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, chars[boxV], st)
		r.Cell(r.W-1, y, chars[boxV], st)
	}
}

// Card draws a titled border and returns the inner content region
func (r Region) Card(title string, line LineType, st Style) Region {
	r.Box(line, st)

	if title != "" && r.W > 4 {
		display := Truncate(title, r.W-4)
		titleX := (r.W - DisplayWidth(display) - 2) / 2
		r.Text(titleX, 0, " "+display+" ", st.Bold())
	}

	return r.Inset(1)
}

// HLine draws a horizontal line across the region width at row y
func (r Region) HLine(y int, line LineType, st Style) {
	if y < 0 || y >= r.H {
		return
	}
	if line >= LineType(len(boxChars)) {
		line = LineSingle
	}
	ch := boxChars[line][boxH]
	for x := 0; x < r.W; x++ {
		r.Cell(x, y, ch, st)
	}
}

// VLine draws a vertical line across the region height at column x
func (r Region) VLine(x int, line LineType, st Style) {
	if x < 0 || x >= r.W {
		return
	}
	if line >= LineType(len(boxChars)) {
		line = LineSingle
	}
	ch := boxChars[line][boxV]
	for y := 0; y < r.H; y++ {
		r.Cell(x, y, ch, st)
	}
}

// Progress draws a horizontal progress bar (0.0-1.0)
func (r Region) Progress(x, y, w int, pct float64, st Style) {
	if y < 0 || y >= r.H || w <= 0 {
		return
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(float64(w) * pct)
	for i := 0; i < w; i++ {
		if x+i >= r.W {
			break
		}
		ch := progressEmpty
		if i < filled {
			ch = progressFull
		}
		r.Cell(x+i, y, ch, st)
	}
}

// Center returns a centered region of the given size within outer
func Center(outer Region, w, h int) Region {
	x := (outer.W - w) / 2
	y := (outer.H - h) / 2
	return outer.Sub(x, y, w, h)
}
