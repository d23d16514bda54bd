package tui

import (
	"github.com/lixenwraith/g/terminal"
)

// Style bundles foreground, background, and attributes for text rendering
type Style struct {
	Fg   terminal.Color
	Bg   terminal.Color
	Attr terminal.Attr
}

// Bold returns the style with the bold attribute added
func (s Style) Bold() Style {
	s.Attr |= terminal.AttrBold
	return s
}

// Dim returns the style with the dim attribute added
func (s Style) Dim() Style {
	s.Attr |= terminal.AttrDim
	return s
}

// Reverse returns the style with the reverse attribute added
func (s Style) Reverse() Style {
	s.Attr |= terminal.AttrReverse
	return s
}

// WithBg returns the style with the background replaced
func (s Style) WithBg(bg terminal.Color) Style {
	s.Bg = bg
	return s
}
