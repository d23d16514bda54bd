package app

import (
	"fmt"

	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/terminal/tui"
)

// DialogKind discriminates the single-slot dialog
type DialogKind uint8

const (
	DialogConfirm DialogKind = iota
	DialogInput
	DialogSearch
	DialogProgress
	DialogError
)

// submitID tags what a dialog submission means to the dispatcher
type submitID uint8

const (
	submitNone submitID = iota
	submitCommitMessage
	submitBranchName
	submitTagName
	submitStashMessage
	submitSearchQuery
	submitCommandLine
	submitDiscardFile
	submitDeleteBranch
	submitForceDeleteBranch
	submitStashDrop
	submitDeleteTag
	submitCheckoutStash
	submitCheckoutDiscard
	submitRevertCommit
)

// Choice is one key-selectable option of a multi-choice confirm dialog
type Choice struct {
	Key    rune
	Label  string
	Submit submitID
}

// Dialog is the single-slot modal. While present it is the sole recipient
// of input other than Cancel and resize.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	Lines   []string // Error dialog body

	Field  *tui.TextFieldState // Input and Search
	Submit submitID
	Target string // Name/path the submission applies to

	Choices []Choice // Multi-choice confirm; empty means plain yes/no

	Current, Total int // Progress counters
}

// newConfirm builds a yes/no confirmation
func newConfirm(title, message string, submit submitID, target string) *Dialog {
	return &Dialog{
		Kind:    DialogConfirm,
		Title:   title,
		Message: message,
		Submit:  submit,
		Target:  target,
	}
}

// newChoiceDialog builds a multi-choice confirmation
func newChoiceDialog(title, message string, target string, choices []Choice) *Dialog {
	return &Dialog{
		Kind:    DialogConfirm,
		Title:   title,
		Message: message,
		Target:  target,
		Choices: choices,
	}
}

// newInput builds a text input dialog
func newInput(title, initial string, submit submitID, target string) *Dialog {
	return &Dialog{
		Kind:   DialogInput,
		Title:  title,
		Field:  tui.NewTextFieldState(initial),
		Submit: submit,
		Target: target,
	}
}

// newSearch builds the commit search dialog
func newSearch() *Dialog {
	return &Dialog{
		Kind:   DialogSearch,
		Title:  "Search (@author, #hash)",
		Field:  tui.NewTextFieldState(""),
		Submit: submitSearchQuery,
	}
}

// newProgress builds the network progress dialog
func newProgress(title string) *Dialog {
	return &Dialog{Kind: DialogProgress, Title: title}
}

// newError builds a modal error dialog for multi-line messages
func newError(title string, lines []string) *Dialog {
	return &Dialog{Kind: DialogError, Title: title, Lines: lines}
}

// handleKey routes a key event into the active dialog. It returns the
// submission to dispatch (submitNone while the dialog stays open) and
// whether the dialog closed.
func (d *Dialog) handleKey(ev terminal.Event) (submitID, string, bool) {
	switch d.Kind {
	case DialogProgress:
		// Not cancellable mid-operation
		return submitNone, "", false

	case DialogError:
		if ev.Key == terminal.KeyEscape || ev.Key == terminal.KeyEnter ||
			(ev.Key == terminal.KeyRune && ev.Rune == 'q') {
			return submitNone, "", true
		}
		return submitNone, "", false

	case DialogConfirm:
		if ev.Key == terminal.KeyEscape {
			return submitNone, "", true
		}
		if len(d.Choices) > 0 {
			if ev.Key == terminal.KeyRune {
				for _, c := range d.Choices {
					if c.Key == ev.Rune {
						return c.Submit, d.Target, true
					}
				}
			}
			return submitNone, "", false
		}
		if ev.Key == terminal.KeyRune {
			switch ev.Rune {
			case 'y', 'Y':
				return d.Submit, d.Target, true
			case 'n', 'N':
				return submitNone, "", true
			}
		}
		if ev.Key == terminal.KeyEnter {
			return d.Submit, d.Target, true
		}
		return submitNone, "", false

	default: // DialogInput, DialogSearch
		switch ev.Key {
		case terminal.KeyEscape:
			return submitNone, "", true
		case terminal.KeyEnter:
			return d.Submit, d.Field.Value(), true
		case terminal.KeyBackspace:
			d.Field.DeleteBackward()
		case terminal.KeyDelete:
			d.Field.DeleteForward()
		case terminal.KeyLeft:
			d.Field.MoveLeft()
		case terminal.KeyRight:
			d.Field.MoveRight()
		case terminal.KeyHome:
			d.Field.MoveHome()
		case terminal.KeyEnd:
			d.Field.MoveEnd()
		case terminal.KeyRune:
			if ev.Mods&(terminal.ModCtrl|terminal.ModAlt) == 0 {
				d.Field.Insert(ev.Rune)
			}
		}
		return submitNone, "", false
	}
}

// Render draws the dialog centered over the frame
func (d *Dialog) Render(outer tui.Region, th *config.Theme) {
	w := outer.W * 2 / 3
	if w < 40 {
		w = 40
	}
	if w > outer.W-4 {
		w = outer.W - 4
	}

	var bodyLines []string
	switch d.Kind {
	case DialogError:
		bodyLines = d.Lines
	default:
		if d.Message != "" {
			bodyLines = tui.WrapText(d.Message, w-4)
		}
	}

	h := len(bodyLines) + 4
	if d.Kind == DialogInput || d.Kind == DialogSearch || d.Kind == DialogProgress {
		h++
	}
	if h < 5 {
		h = 5
	}
	if h > outer.H-2 {
		h = outer.H - 2
	}

	box := tui.Center(outer, w, h)
	borderFg := th.BorderFocused
	if d.Kind == DialogError {
		borderFg = th.Error
	}
	box.Fill(tui.Style{})
	inner := box.Card(d.Title, tui.LineRounded, tui.Style{Fg: borderFg})

	y := 0
	for _, line := range bodyLines {
		if y >= inner.H {
			break
		}
		inner.Text(0, y, tui.Truncate(line, inner.W), tui.Style{})
		y++
	}

	switch d.Kind {
	case DialogInput, DialogSearch:
		d.Field.Render(inner.Sub(0, y, inner.W, 1), tui.Style{})
	case DialogProgress:
		pct := 0.0
		if d.Total > 0 {
			pct = float64(d.Current) / float64(d.Total)
		}
		inner.Progress(0, y, inner.W-8, pct, tui.Style{Fg: th.BorderFocused})
		label := fmt.Sprintf("%3.0f%%", pct*100)
		if d.Total > 0 {
			label = fmt.Sprintf("%d/%d %s", d.Current, d.Total, label)
		}
		inner.TextRight(y, label, tui.Style{})
	case DialogConfirm:
		hint := "y yes │ n no │ Esc cancel"
		if len(d.Choices) > 0 {
			hint = ""
			for i, c := range d.Choices {
				if i > 0 {
					hint += " │ "
				}
				hint += string(c.Key) + " " + c.Label
			}
			hint += " │ Esc cancel"
		}
		inner.TextCenter(inner.H-1, hint, tui.Style{Fg: th.Footer})
	case DialogError:
		inner.TextCenter(inner.H-1, "Esc close", tui.Style{Fg: th.Footer})
	}
}
