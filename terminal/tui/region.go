package tui

import "github.com/lixenwraith/g/terminal"

// Region represents a rectangular area within a cell buffer
// All coordinates are relative to the region's origin
type Region struct {
	buf  *terminal.Buffer
	X, Y int // Absolute position in cell buffer
	W, H int // Region dimensions
}

// NewRegion creates a region covering the whole buffer
func NewRegion(buf *terminal.Buffer) Region {
	return Region{buf: buf, W: buf.W, H: buf.H}
}

// Sub returns a nested region with coordinates relative to parent, clipped
// to parent bounds
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	return Region{buf: r.buf, X: r.X + x, Y: r.Y + y, W: w, H: h}
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Cell sets a single cell with bounds checking
func (r Region) Cell(x, y int, ch rune, st Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H || r.buf == nil {
		return
	}
	r.buf.Set(r.X+x, r.Y+y, terminal.Cell{Rune: ch, Fg: st.Fg, Bg: st.Bg, Attrs: st.Attr})
}

// Fill fills the entire region with spaces in the given style
func (r Region) Fill(st Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ' ', st)
		}
	}
}

// FillRow fills one row with spaces in the given style
func (r Region) FillRow(y int, st Style) {
	for x := 0; x < r.W; x++ {
		r.Cell(x, y, ' ', st)
	}
}
