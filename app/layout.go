package app

// Rect is a panel rectangle in cell coordinates, origin top-left (0,0)
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// maxLeftWidth caps the left column on wide terminals
const maxLeftWidth = 40

// Layout assigns rectangles to the visible panels. Row 0 is the header, the
// last row the footer. The left column holds three stacked panels; the main
// panel takes the remaining width including the shared separator border.
type Layout struct {
	Header Rect
	Footer Rect
	Left   [3]Rect // Status, Branches, third slot top to bottom
	Main   Rect
}

// Compute derives the layout for a terminal of w×h cells. Callers guarantee
// w≥80 and h≥24; below that the dashboard is replaced by the too-small
// notice and no layout is computed.
func Compute(w, h int) Layout {
	var l Layout
	l.Header = Rect{X: 0, Y: 0, W: w, H: 1}
	l.Footer = Rect{X: 0, Y: h - 1, W: w, H: 1}

	contentY := 1
	contentH := h - 2

	leftW := w * 30 / 100
	if leftW > maxLeftWidth {
		leftW = maxLeftWidth
	}

	third := contentH / 3
	l.Left[0] = Rect{X: 0, Y: contentY, W: leftW, H: third}
	l.Left[1] = Rect{X: 0, Y: contentY + third, W: leftW, H: third}
	// The bottom slot absorbs the rounding remainder
	l.Left[2] = Rect{X: 0, Y: contentY + 2*third, W: leftW, H: contentH - 2*third}

	l.Main = Rect{X: leftW, Y: contentY, W: w - leftW, H: contentH}
	return l
}
