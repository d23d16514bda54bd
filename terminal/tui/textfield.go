package tui

// TextFieldState holds editable single-line text state. The cursor is
// indexed in code points, never bytes, so multibyte input stays intact.
type TextFieldState struct {
	Text   []rune
	Cursor int // Position the cursor sits before (0 = before first rune)
	Scroll int // First visible rune index
}

// NewTextFieldState creates field state with the cursor at the end
func NewTextFieldState(initial string) *TextFieldState {
	runes := []rune(initial)
	return &TextFieldState{Text: runes, Cursor: len(runes)}
}

// Value returns the current text
func (t *TextFieldState) Value() string {
	return string(t.Text)
}

// SetValue replaces the text and moves the cursor to the end
func (t *TextFieldState) SetValue(s string) {
	t.Text = []rune(s)
	t.Cursor = len(t.Text)
	t.Scroll = 0
}

// Insert adds a rune at the cursor position
func (t *TextFieldState) Insert(r rune) {
	t.Text = append(t.Text[:t.Cursor], append([]rune{r}, t.Text[t.Cursor:]...)...)
	t.Cursor++
}

// DeleteBackward removes the rune before the cursor
func (t *TextFieldState) DeleteBackward() bool {
	if t.Cursor == 0 {
		return false
	}
	t.Text = append(t.Text[:t.Cursor-1], t.Text[t.Cursor:]...)
	t.Cursor--
	return true
}

// DeleteForward removes the rune at the cursor
func (t *TextFieldState) DeleteForward() bool {
	if t.Cursor >= len(t.Text) {
		return false
	}
	t.Text = append(t.Text[:t.Cursor], t.Text[t.Cursor+1:]...)
	return true
}

// MoveLeft moves the cursor one rune left
func (t *TextFieldState) MoveLeft() {
	if t.Cursor > 0 {
		t.Cursor--
	}
}

// MoveRight moves the cursor one rune right
func (t *TextFieldState) MoveRight() {
	if t.Cursor < len(t.Text) {
		t.Cursor++
	}
}

// MoveHome moves the cursor to the start
func (t *TextFieldState) MoveHome() {
	t.Cursor = 0
}

// MoveEnd moves the cursor past the last rune
func (t *TextFieldState) MoveEnd() {
	t.Cursor = len(t.Text)
}

// Render draws the field into a one-row region with the cursor cell
// reversed. The view scrolls horizontally to keep the cursor visible.
func (t *TextFieldState) Render(r Region, st Style) {
	if r.W < 1 || r.H < 1 {
		return
	}

	// Keep cursor inside the viewport
	if t.Cursor < t.Scroll {
		t.Scroll = t.Cursor
	}
	if t.Cursor >= t.Scroll+r.W {
		t.Scroll = t.Cursor - r.W + 1
	}
	if t.Scroll < 0 {
		t.Scroll = 0
	}

	r.FillRow(0, st)
	for i := 0; i < r.W; i++ {
		idx := t.Scroll + i
		ch := ' '
		if idx < len(t.Text) {
			ch = t.Text[idx]
		} else if idx > len(t.Text) {
			break
		}
		cst := st
		if idx == t.Cursor {
			cst = st.Reverse()
		}
		r.Cell(i, 0, ch, cst)
	}
}
