package app

import (
	"testing"
)

// TestLayoutTiling checks that for all supported sizes the four panel
// rects are pairwise disjoint, lie inside the content region, and cover
// every content cell.
func TestLayoutTiling(t *testing.T) {
	for w := 80; w <= 200; w += 7 {
		for h := 24; h <= 60; h += 5 {
			l := Compute(w, h)
			rects := []Rect{l.Left[0], l.Left[1], l.Left[2], l.Main}

			for y := 1; y < h-1; y++ {
				for x := 0; x < w; x++ {
					owners := 0
					for _, r := range rects {
						if r.Contains(x, y) {
							owners++
						}
					}
					if owners != 1 {
						t.Fatalf("size %dx%d: cell (%d,%d) owned by %d rects", w, h, x, y, owners)
					}
				}
			}
		}
	}
}

func TestLayoutHeaderFooter(t *testing.T) {
	l := Compute(100, 30)
	if l.Header != (Rect{0, 0, 100, 1}) {
		t.Errorf("header = %+v", l.Header)
	}
	if l.Footer != (Rect{0, 29, 100, 1}) {
		t.Errorf("footer = %+v", l.Footer)
	}
}

func TestLayoutLeftColumnWidth(t *testing.T) {
	// 30% of the width, capped at 40 columns
	l := Compute(100, 30)
	if l.Left[0].W != 30 {
		t.Errorf("at 100 cols left width = %d, want 30", l.Left[0].W)
	}
	l = Compute(200, 30)
	if l.Left[0].W != 40 {
		t.Errorf("at 200 cols left width = %d, want 40 (cap)", l.Left[0].W)
	}
	l = Compute(80, 24)
	if l.Left[0].W != 24 {
		t.Errorf("at 80 cols left width = %d, want 24", l.Left[0].W)
	}
}

func TestLayoutThirdSlotAbsorbsRemainder(t *testing.T) {
	l := Compute(80, 24)
	contentH := 24 - 2
	total := l.Left[0].H + l.Left[1].H + l.Left[2].H
	if total != contentH {
		t.Errorf("left column heights sum to %d, want %d", total, contentH)
	}
	if l.Left[2].H < l.Left[0].H {
		t.Errorf("bottom slot must absorb the remainder: %+v", l.Left)
	}
}
