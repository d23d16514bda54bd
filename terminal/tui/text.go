package tui

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the number of terminal columns the string occupies.
// Measured over grapheme clusters so combining sequences count once.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Graphemes splits a string into grapheme clusters. Truncation and cursor
// arithmetic operate on these units, never on byte offsets.
func Graphemes(s string) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// Truncate shortens the string to at most maxWidth columns, appending …
// when anything was cut
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if DisplayWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}

	w := 0
	out := ""
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cw := gr.Width()
		if w+cw > maxWidth-1 {
			break
		}
		out += gr.Str()
		w += cw
	}
	return out + "…"
}

// TruncateLeft shortens from the left with a … prefix, keeping the end
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if DisplayWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}

	clusters := Graphemes(s)
	w := 0
	start := len(clusters)
	for i := len(clusters) - 1; i >= 0; i-- {
		cw := runewidth.StringWidth(clusters[i])
		if w+cw > maxWidth-1 {
			break
		}
		w += cw
		start = i
	}
	out := "…"
	for _, c := range clusters[start:] {
		out += c
	}
	return out
}

// PadRight pads with spaces to the given column width
func PadRight(s string, width int) string {
	w := DisplayWidth(s)
	for w < width {
		s += " "
		w++
	}
	return s
}

// PadLeft left-pads with spaces to the given column width
func PadLeft(s string, width int) string {
	w := DisplayWidth(s)
	for w < width {
		s = " " + s
		w++
	}
	return s
}

// Text renders a string at (x, y), truncating at the region edge, never
// wrapping. Advances one column per grapheme cluster (wide clusters advance
// by their width).
func (r Region) Text(x, y int, s string, st Style) {
	if y < 0 || y >= r.H {
		return
	}
	col := x
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if col >= r.W {
			break
		}
		runes := gr.Runes()
		if len(runes) == 0 {
			continue
		}
		cw := gr.Width()
		if cw <= 0 {
			continue
		}
		if col >= 0 {
			r.Cell(col, y, runes[0], st)
			// Wide clusters blank their continuation column so stale
			// cells never show through
			for i := 1; i < cw && col+i < r.W; i++ {
				r.Cell(col+i, y, ' ', st)
			}
		}
		col += cw
	}
}

// TextRight renders right-aligned on a row
func (r Region) TextRight(y int, s string, st Style) {
	r.Text(r.W-DisplayWidth(s), y, s, st)
}

// TextCenter renders centered on a row
func (r Region) TextCenter(y int, s string, st Style) {
	r.Text((r.W-DisplayWidth(s))/2, y, s, st)
}

// WrapText wraps text at word boundaries to fit width
func WrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}

	var lines []string
	line := ""
	lineW := 0
	word := ""
	wordW := 0

	flushWord := func() {
		if word == "" {
			return
		}
		if lineW > 0 && lineW+1+wordW > width {
			lines = append(lines, line)
			line = word
			lineW = wordW
		} else if lineW == 0 {
			line = word
			lineW = wordW
		} else {
			line += " " + word
			lineW += 1 + wordW
		}
		word = ""
		wordW = 0
	}

	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		c := gr.Str()
		if c == " " {
			flushWord()
			continue
		}
		if c == "\n" {
			flushWord()
			lines = append(lines, line)
			line = ""
			lineW = 0
			continue
		}
		cw := gr.Width()
		if wordW+cw > width {
			// Single word longer than the line; hard-break it
			flushWord()
			if line != "" {
				lines = append(lines, line)
				line = ""
				lineW = 0
			}
			word = c
			wordW = cw
			continue
		}
		word += c
		wordW += cw
	}
	flushWord()
	lines = append(lines, line)
	return lines
}
