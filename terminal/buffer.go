package terminal

import (
	"bufio"
	"io"
)

// Buffer is a fixed-size rectangular cell array, row-major.
type Buffer struct {
	W, H  int
	Cells []Cell
}

// NewBuffer allocates a w×h buffer of zero cells
func NewBuffer(w, h int) *Buffer {
	return &Buffer{W: w, H: h, Cells: make([]Cell, w*h)}
}

// Resize reallocates to the new dimensions and clears content
func (b *Buffer) Resize(w, h int) {
	size := w * h
	if cap(b.Cells) < size {
		b.Cells = make([]Cell, size)
	} else {
		b.Cells = b.Cells[:size]
		for i := range b.Cells {
			b.Cells[i] = Cell{}
		}
	}
	b.W = w
	b.H = h
}

// Clear resets every cell to the zero cell
func (b *Buffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = Cell{}
	}
}

// Fill sets every cell to c
func (b *Buffer) Fill(c Cell) {
	for i := range b.Cells {
		b.Cells[i] = c
	}
}

// At returns the cell at (x, y); the zero cell when out of bounds
func (b *Buffer) At(x, y int) Cell {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return Cell{}
	}
	return b.Cells[y*b.W+x]
}

// Set writes the cell at (x, y), ignoring out-of-bounds writes
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	b.Cells[y*b.W+x] = c
}

// Renderer diffs composed frames against the last written frame and emits
// the minimal escape stream. The back buffer always matches what was most
// recently written to the terminal.
type Renderer struct {
	writer *bufio.Writer
	back   *Buffer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    Color
	lastBg    Color
	lastAttr  Attr
	lastValid bool
}

// NewRenderer creates a renderer writing to w with the given initial size
func NewRenderer(w io.Writer, width, height int) *Renderer {
	r := &Renderer{
		writer: bufio.NewWriterSize(w, 131072),
		back:   NewBuffer(width, height),
	}
	r.back.Fill(sentinelCell)
	return r
}

// Back exposes the back buffer for inspection (tests)
func (r *Renderer) Back() *Buffer {
	return r.back
}

// Resize reallocates the back buffer and fills it with a sentinel that cannot
// equal any real cell, forcing a full redraw on the next frame
func (r *Renderer) Resize(width, height int) {
	r.back.Resize(width, height)
	r.back.Fill(sentinelCell)
	r.lastValid = false
	r.cursorValid = false
}

// Invalidate forces a full redraw on the next Flush without resizing
func (r *Renderer) Invalidate() {
	r.back.Fill(sentinelCell)
	r.lastValid = false
	r.cursorValid = false
}

// Flush writes front to the terminal, diffing against the back buffer.
// Frames whose size does not match the back buffer are dropped; the caller
// resizes first.
func (r *Renderer) Flush(front *Buffer) error {
	if front.W != r.back.W || front.H != r.back.H {
		return nil
	}

	w := r.writer
	width, height := front.W, front.H

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if front.Cells[idx] == r.back.Cells[idx] {
				x++
				continue
			}

			// Position cursor once for this dirty region
			if !r.cursorValid || x != r.cursorX || y != r.cursorY {
				if r.cursorValid && y == r.cursorY && x > r.cursorX {
					writeCursorForward(w, x-r.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				r.cursorX = x
				r.cursorY = y
				r.cursorValid = true
			}

			// Write contiguous dirty cells, emitting style only when changed
			for x < width {
				cidx := rowStart + x
				c := front.Cells[cidx]
				if c == r.back.Cells[cidx] {
					break
				}

				r.writeStyle(c.Fg, c.Bg, c.Attrs)

				ch := c.Rune
				if ch == 0 {
					ch = ' '
				}
				if ch < 0x80 {
					w.WriteByte(byte(ch))
				} else {
					w.WriteRune(ch)
				}

				r.back.Cells[cidx] = c
				r.cursorX++
				x++
			}
		}
	}

	return w.Flush()
}

// writeStyle emits a coalesced SGR sequence for the required style. When any
// attribute disappears relative to the current style a full reset is emitted
// followed by the active set; otherwise only the additive escapes.
func (r *Renderer) writeStyle(fg, bg Color, attr Attr) {
	fgChanged := !r.lastValid || fg != r.lastFg
	bgChanged := !r.lastValid || bg != r.lastBg
	attrChanged := !r.lastValid || attr != r.lastAttr

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	w := r.writer
	weakened := !r.lastValid || r.lastAttr&^attr != 0

	w.Write(csi)
	first := true

	if weakened {
		w.WriteByte('0')
		first = false
		// After the reset the terminal is at defaults; re-emit the full
		// active set
		writeAttrParams(w, attr, &first)
		if fg.Kind != ColorDefault {
			writeColorParams(w, fg, false, &first)
		}
		if bg.Kind != ColorDefault {
			writeColorParams(w, bg, true, &first)
		}
	} else {
		if added := attr &^ r.lastAttr; added != 0 {
			writeAttrParams(w, added, &first)
		}
		if fgChanged {
			writeColorParams(w, fg, false, &first)
		}
		if bgChanged {
			writeColorParams(w, bg, true, &first)
		}
	}
	w.WriteByte('m')

	r.lastFg = fg
	r.lastBg = bg
	r.lastAttr = attr
	r.lastValid = true
}

// writeAttrParams appends SGR parameters for the given attribute set
func writeAttrParams(w *bufio.Writer, attr Attr, first *bool) {
	emit := func(code byte) {
		if !*first {
			w.WriteByte(';')
		}
		w.WriteByte(code)
		*first = false
	}
	if attr&AttrBold != 0 {
		emit('1')
	}
	if attr&AttrDim != 0 {
		emit('2')
	}
	if attr&AttrItalic != 0 {
		emit('3')
	}
	if attr&AttrUnderline != 0 {
		emit('4')
	}
	if attr&AttrReverse != 0 {
		emit('7')
	}
}

// writeColorParams appends SGR parameters for one color
func writeColorParams(w *bufio.Writer, c Color, background bool, first *bool) {
	if !*first {
		w.WriteByte(';')
	}
	*first = false

	switch c.Kind {
	case ColorDefault:
		if background {
			writeInt(w, 49)
		} else {
			writeInt(w, 39)
		}
	case ColorNamed:
		base := 30
		if background {
			base = 40
		}
		writeInt(w, base+int(c.Idx&7))
	case ColorPalette:
		if background {
			w.Write(csiBg256)
		} else {
			w.Write(csiFg256)
		}
		writeInt(w, int(c.Idx))
	case ColorRGB:
		if background {
			w.Write(csiBgRGB)
		} else {
			w.Write(csiFgRGB)
		}
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
	}
}
