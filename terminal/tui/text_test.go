package tui

import (
	"strings"
	"testing"
)

func TestTruncateASCII(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Errorf("short strings pass through, got %q", got)
	}
	if got := Truncate("hello", 0); got != "" {
		t.Errorf("zero width yields empty, got %q", got)
	}
}

func TestTruncateMultibyte(t *testing.T) {
	// Multibyte content must never be cut mid-sequence
	s := "héllo wörld"
	got := Truncate(s, 6)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if DisplayWidth(got) > 6 {
		t.Errorf("truncated width %d exceeds 6: %q", DisplayWidth(got), got)
	}
}

func TestTruncateCombining(t *testing.T) {
	// e + combining acute is one grapheme, one column
	s := "ééé"
	if w := DisplayWidth(s); w != 3 {
		t.Fatalf("expected width 3, got %d", w)
	}
	got := Truncate(s, 2)
	if DisplayWidth(got) != 2 {
		t.Errorf("expected width 2 after truncation, got %d (%q)", DisplayWidth(got), got)
	}
}

func TestTruncateLeft(t *testing.T) {
	got := TruncateLeft("path/to/deep/file.go", 8)
	if !strings.HasPrefix(got, "…") {
		t.Fatalf("expected leading ellipsis, got %q", got)
	}
	if !strings.HasSuffix(got, "file.go") {
		t.Errorf("expected tail preserved, got %q", got)
	}
}

func TestPad(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("got %q", got)
	}
	if got := PadLeft("ab", 4); got != "  ab" {
		t.Errorf("got %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := WrapText("the quick brown fox", 9)
	for _, l := range lines {
		if DisplayWidth(l) > 9 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	joined := strings.Join(lines, " ")
	if joined != "the quick brown fox" {
		t.Errorf("wrap lost content: %q", joined)
	}
}

func TestGraphemes(t *testing.T) {
	gs := Graphemes("ab")
	if len(gs) != 2 || gs[0] != "a" {
		t.Errorf("got %v", gs)
	}
	gs = Graphemes("éx")
	if len(gs) != 2 {
		t.Errorf("combining sequence must be one cluster, got %v", gs)
	}
}
