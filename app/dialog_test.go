package app

import (
	"strings"
	"testing"

	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/terminal"
	"github.com/lixenwraith/g/terminal/tui"
)

func renderDialog(t *testing.T, d *Dialog) *terminal.Buffer {
	t.Helper()
	th, err := config.Default().Theme.Build()
	if err != nil {
		t.Fatal(err)
	}
	buf := terminal.NewBuffer(80, 24)
	d.Render(tui.NewRegion(buf), &th)
	return buf
}

func bufString(buf *terminal.Buffer) string {
	var b strings.Builder
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			r := buf.At(x, y).Rune
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestProgressDialogBar(t *testing.T) {
	d := newProgress("Pull")
	d.Current, d.Total = 3, 5

	out := bufString(renderDialog(t, d))
	if !strings.Contains(out, "3/5") {
		t.Errorf("expected counter label, got:\n%s", out)
	}

	filled := strings.Count(out, string('█'))
	empty := strings.Count(out, string('░'))
	if filled == 0 || empty == 0 {
		t.Fatalf("expected a partial bar, got filled=%d empty=%d", filled, empty)
	}
	// 3/5 fills 60%: the filled share must exceed the empty share
	if filled <= empty {
		t.Errorf("60%% bar should be mostly filled: filled=%d empty=%d", filled, empty)
	}
}

func TestProgressDialogIgnoresKeys(t *testing.T) {
	d := newProgress("Push")
	if _, _, closed := d.handleKey(keyEv(terminal.KeyEscape)); closed {
		t.Error("progress dialog must not be cancellable")
	}
}

func TestConfirmDialogKeys(t *testing.T) {
	d := newConfirm("Delete", "Really?", submitDeleteBranch, "topic")

	submit, target, closed := d.handleKey(runeEv('y'))
	if submit != submitDeleteBranch || target != "topic" || !closed {
		t.Errorf("y: got submit=%v target=%q closed=%v", submit, target, closed)
	}

	d = newConfirm("Delete", "Really?", submitDeleteBranch, "topic")
	submit, _, closed = d.handleKey(runeEv('n'))
	if submit != submitNone || !closed {
		t.Errorf("n must close without submitting, got %v %v", submit, closed)
	}

	d = newConfirm("Delete", "Really?", submitDeleteBranch, "topic")
	submit, _, closed = d.handleKey(keyEv(terminal.KeyEscape))
	if submit != submitNone || !closed {
		t.Errorf("esc must cancel, got %v %v", submit, closed)
	}
}

func TestChoiceDialogKeys(t *testing.T) {
	d := newChoiceDialog("Dirty", "msg", "feature/x", []Choice{
		{Key: 's', Label: "stash", Submit: submitCheckoutStash},
		{Key: 'd', Label: "discard", Submit: submitCheckoutDiscard},
	})

	if submit, _, _ := d.handleKey(runeEv('z')); submit != submitNone {
		t.Error("unknown choice key must be ignored")
	}
	submit, target, closed := d.handleKey(runeEv('d'))
	if submit != submitCheckoutDiscard || target != "feature/x" || !closed {
		t.Errorf("got %v %q %v", submit, target, closed)
	}
}

func TestInputDialogEditing(t *testing.T) {
	d := newInput("Name", "", submitBranchName, "")

	for _, r := range "topíc" {
		d.handleKey(runeEv(r))
	}
	d.handleKey(keyEv(terminal.KeyBackspace))
	d.handleKey(runeEv('c'))

	submit, value, closed := d.handleKey(keyEv(terminal.KeyEnter))
	if submit != submitBranchName || !closed {
		t.Fatalf("enter should submit, got %v %v", submit, closed)
	}
	if value != "topíc" {
		t.Errorf("value = %q, want %q", value, "topíc")
	}
}

func TestErrorDialogDismiss(t *testing.T) {
	d := newError("Error", []string{"line one", "line two"})
	if _, _, closed := d.handleKey(runeEv('x')); closed {
		t.Error("random keys must not dismiss the error")
	}
	if _, _, closed := d.handleKey(keyEv(terminal.KeyEscape)); !closed {
		t.Error("esc must dismiss the error")
	}
}
