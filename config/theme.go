package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/g/terminal"
)

// ThemeConfig is the raw theme section: hex color strings, empty meaning
// the built-in default for that slot
type ThemeConfig struct {
	Border        string `toml:"border,omitempty"`
	BorderFocused string `toml:"border_focused,omitempty"`
	Title         string `toml:"title,omitempty"`
	Selection     string `toml:"selection,omitempty"`
	Header        string `toml:"header,omitempty"`
	Footer        string `toml:"footer,omitempty"`
	Staged        string `toml:"staged,omitempty"`
	Unstaged      string `toml:"unstaged,omitempty"`
	Untracked     string `toml:"untracked,omitempty"`
	DiffAdd       string `toml:"diff_add,omitempty"`
	DiffDelete    string `toml:"diff_delete,omitempty"`
	DiffHunk      string `toml:"diff_hunk,omitempty"`
	Branch        string `toml:"branch,omitempty"`
	BranchHead    string `toml:"branch_head,omitempty"`
	Error         string `toml:"error,omitempty"`
	Message       string `toml:"message,omitempty"`
}

// Theme is the decoded theme used by the views
type Theme struct {
	Border        terminal.Color
	BorderFocused terminal.Color
	Title         terminal.Color
	Selection     terminal.Color // Background of the selected row
	Header        terminal.Color
	Footer        terminal.Color
	Staged        terminal.Color
	Unstaged      terminal.Color
	Untracked     terminal.Color
	DiffAdd       terminal.Color
	DiffDelete    terminal.Color
	DiffHunk      terminal.Color
	Branch        terminal.Color
	BranchHead    terminal.Color
	Error         terminal.Color
	Message       terminal.Color
}

func defaultThemeConfig() ThemeConfig {
	return ThemeConfig{}
}

// defaultTheme uses the named base colors, which inherit the user's
// terminal colors, plus fixed 256-color gray indices for borders,
// selection, footer, and untracked entries
func defaultTheme() Theme {
	return Theme{
		Border:        terminal.Palette(240),
		BorderFocused: terminal.Named(terminal.Cyan),
		Title:         terminal.Named(terminal.White),
		Selection:     terminal.Palette(237),
		Header:        terminal.Named(terminal.Cyan),
		Footer:        terminal.Palette(245),
		Staged:        terminal.Named(terminal.Green),
		Unstaged:      terminal.Named(terminal.Red),
		Untracked:     terminal.Palette(244),
		DiffAdd:       terminal.Named(terminal.Green),
		DiffDelete:    terminal.Named(terminal.Red),
		DiffHunk:      terminal.Named(terminal.Cyan),
		Branch:        terminal.Named(terminal.Yellow),
		BranchHead:    terminal.Named(terminal.Green),
		Error:         terminal.Named(terminal.Red),
		Message:       terminal.Named(terminal.Green),
	}
}

// Build decodes the hex overrides onto the default theme
func (tc *ThemeConfig) Build() (Theme, error) {
	th := defaultTheme()
	slots := []struct {
		hex string
		dst *terminal.Color
	}{
		{tc.Border, &th.Border},
		{tc.BorderFocused, &th.BorderFocused},
		{tc.Title, &th.Title},
		{tc.Selection, &th.Selection},
		{tc.Header, &th.Header},
		{tc.Footer, &th.Footer},
		{tc.Staged, &th.Staged},
		{tc.Unstaged, &th.Unstaged},
		{tc.Untracked, &th.Untracked},
		{tc.DiffAdd, &th.DiffAdd},
		{tc.DiffDelete, &th.DiffDelete},
		{tc.DiffHunk, &th.DiffHunk},
		{tc.Branch, &th.Branch},
		{tc.BranchHead, &th.BranchHead},
		{tc.Error, &th.Error},
		{tc.Message, &th.Message},
	}
	for _, s := range slots {
		if s.hex == "" {
			continue
		}
		c, err := parseHex(s.hex)
		if err != nil {
			return th, err
		}
		*s.dst = c
	}
	return th, nil
}

// parseHex decodes "#rrggbb" into a 24-bit terminal color
func parseHex(hex string) (terminal.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return terminal.Reset, fmt.Errorf("invalid theme color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return terminal.RGB(r, g, b), nil
}
