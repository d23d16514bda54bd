package tui

// ScrollState tracks selection and scroll position for a scrollable list.
// Invariant after any mutation: Offset <= Selection < Offset+Visible
// whenever the list is non-empty.
type ScrollState struct {
	Offset    int // First visible item index
	Total     int // Total item count
	Visible   int // Viewport height in rows
	Selection int // Currently selected item, -1 when empty
}

// NewScrollState creates initialized scroll state
func NewScrollState(total, visible int) *ScrollState {
	s := &ScrollState{Total: total, Visible: visible, Selection: -1}
	if total > 0 {
		s.Selection = 0
	}
	return s
}

// SetTotal updates the item count, reclamping selection and offset
func (s *ScrollState) SetTotal(total int) {
	s.Total = total
	if total == 0 {
		s.Selection = -1
		s.Offset = 0
		return
	}
	if s.Selection < 0 {
		s.Selection = 0
	}
	if s.Selection >= total {
		s.Selection = total - 1
	}
	s.ensureVisible()
}

// SetVisible updates the viewport height and reclamps
func (s *ScrollState) SetVisible(visible int) {
	if visible < 1 {
		visible = 1
	}
	s.Visible = visible
	s.ensureVisible()
}

// MoveUp moves selection up one item; no-op at the top
func (s *ScrollState) MoveUp() {
	if s.Selection > 0 {
		s.Selection--
		s.ensureVisible()
	}
}

// MoveDown moves selection down one item; no-op at the bottom (no wrap)
func (s *ScrollState) MoveDown() {
	if s.Selection >= 0 && s.Selection < s.Total-1 {
		s.Selection++
		s.ensureVisible()
	}
}

// PageUp moves selection up a viewport's worth
func (s *ScrollState) PageUp() {
	if s.Selection < 0 {
		return
	}
	s.Selection -= s.Visible
	if s.Selection < 0 {
		s.Selection = 0
	}
	s.ensureVisible()
}

// PageDown moves selection down a viewport's worth
func (s *ScrollState) PageDown() {
	if s.Selection < 0 {
		return
	}
	s.Selection += s.Visible
	if s.Selection >= s.Total {
		s.Selection = s.Total - 1
	}
	s.ensureVisible()
}

// Top selects the first item
func (s *ScrollState) Top() {
	if s.Total > 0 {
		s.Selection = 0
		s.ensureVisible()
	}
}

// Bottom selects the last item and adjusts the offset so it is visible
func (s *ScrollState) Bottom() {
	if s.Total > 0 {
		s.Selection = s.Total - 1
		s.ensureVisible()
	}
}

// Select sets the selection directly, clamped to range
func (s *ScrollState) Select(idx int) {
	if s.Total == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= s.Total {
		idx = s.Total - 1
	}
	s.Selection = idx
	s.ensureVisible()
}

// ensureVisible clamps the offset to keep the selection inside the viewport
func (s *ScrollState) ensureVisible() {
	if s.Selection < 0 {
		s.Offset = 0
		return
	}
	if s.Selection < s.Offset {
		s.Offset = s.Selection
	} else if s.Selection >= s.Offset+s.Visible {
		s.Offset = s.Selection - s.Visible + 1
	}
	maxOffset := s.Total - s.Visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.Offset > maxOffset {
		s.Offset = maxOffset
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
}
