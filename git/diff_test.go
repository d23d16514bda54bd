package git

import (
	"strings"
	"testing"
)

const sampleDiff = `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,4 +1,5 @@
 package main
 
-func old() {}
+func new() {}
+func extra() {}
@@ -10,2 +11,2 @@ func other()
 	a := 1
-	b := 2
+	b := 3
diff --git a/util.go b/util.go
index 3333333..4444444 100644
--- a/util.go
+++ b/util.go
@@ -1,1 +1,2 @@
 package main
+// added
`

func TestParseDiff(t *testing.T) {
	d := ParseDiff(sampleDiff)

	if len(d.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(d.Files))
	}
	f := d.Files[0]
	if f.Path != "main.go" {
		t.Errorf("expected path main.go, got %q", f.Path)
	}
	if len(f.Hunks) != 2 {
		t.Fatalf("expected 2 hunks in main.go, got %d", len(f.Hunks))
	}

	h := f.Hunks[0]
	if h.Lines[0].Kind != LineHunkHeader {
		t.Errorf("first hunk line should be the header, got %+v", h.Lines[0])
	}

	var adds, dels, ctx int
	for _, l := range h.Lines[1:] {
		switch l.Kind {
		case LineAddition:
			adds++
		case LineDeletion:
			dels++
		case LineContext:
			ctx++
		}
	}
	if adds != 2 || dels != 1 || ctx != 2 {
		t.Errorf("hunk 1: adds=%d dels=%d ctx=%d, want 2/1/2", adds, dels, ctx)
	}

	if d.Files[1].Path != "util.go" || len(d.Files[1].Hunks) != 1 {
		t.Errorf("second file parsed wrong: %+v", d.Files[1])
	}
}

func TestParseDiffLineNumbers(t *testing.T) {
	d := ParseDiff(sampleDiff)
	h := d.Files[0].Hunks[0]

	// First content line is context "package main" at old 1 / new 1
	first := h.Lines[1]
	if first.OldLine != 1 || first.NewLine != 1 {
		t.Errorf("first context line numbers: old=%d new=%d, want 1/1", first.OldLine, first.NewLine)
	}

	// The deletion only has an old line, additions only a new line
	for _, l := range h.Lines {
		switch l.Kind {
		case LineDeletion:
			if l.OldLine == 0 || l.NewLine != 0 {
				t.Errorf("deletion numbering wrong: %+v", l)
			}
		case LineAddition:
			if l.NewLine == 0 || l.OldLine != 0 {
				t.Errorf("addition numbering wrong: %+v", l)
			}
		}
	}
}

func TestParseHunkHeader(t *testing.T) {
	o, n := parseHunkHeader("@@ -10,2 +11,2 @@ func other()")
	if o != 10 || n != 11 {
		t.Errorf("got %d/%d, want 10/11", o, n)
	}
	o, n = parseHunkHeader("@@ -5 +7 @@")
	if o != 5 || n != 7 {
		t.Errorf("single-line form: got %d/%d, want 5/7", o, n)
	}
}

func TestParseDiffEmpty(t *testing.T) {
	if d := ParseDiff(""); !d.Empty() {
		t.Error("empty input must parse to an empty diff")
	}
	if d := ParseDiff("   \n"); !d.Empty() {
		t.Error("whitespace input must parse to an empty diff")
	}
}

func TestPatchTextRebuildsHunk(t *testing.T) {
	d := ParseDiff(sampleDiff)
	patch := d.Files[0].PatchText(1)

	if !strings.Contains(patch, "--- a/main.go") || !strings.Contains(patch, "+++ b/main.go") {
		t.Errorf("patch missing file headers:\n%s", patch)
	}
	if !strings.Contains(patch, "@@ -10,2 +11,2 @@") {
		t.Errorf("patch missing hunk header:\n%s", patch)
	}
	if strings.Contains(patch, "@@ -1,4 +1,5 @@") {
		t.Errorf("patch must contain only the selected hunk:\n%s", patch)
	}
	if !strings.Contains(patch, "-\tb := 2") || !strings.Contains(patch, "+\tb := 3") {
		t.Errorf("patch body wrong:\n%s", patch)
	}
}

func TestStageHunkAppliesPatch(t *testing.T) {
	m := newMockRunner()
	repo := NewRepo(m, "test")
	d := ParseDiff(sampleDiff)

	if err := repo.StageHunk(&d.Files[0], 0); err != nil {
		t.Fatal(err)
	}
	if !m.called("apply --cached -") {
		t.Fatalf("expected apply --cached invocation, got %v", m.calls)
	}
	if len(m.inputs) != 1 || !strings.Contains(m.inputs[0], "@@ -1,4 +1,5 @@") {
		t.Errorf("patch not fed on stdin: %v", m.inputs)
	}
}

func TestDiscardUntrackedUsesClean(t *testing.T) {
	m := newMockRunner()
	repo := NewRepo(m, "test")

	if err := repo.Discard(Change{Path: "junk.txt", Kind: ChangeUntracked}); err != nil {
		t.Fatal(err)
	}
	if !m.called("clean --force -- junk.txt") {
		t.Errorf("untracked discard should clean, got %v", m.calls)
	}

	if err := repo.Discard(Change{Path: "file.go", Kind: ChangeModified}); err != nil {
		t.Fatal(err)
	}
	if !m.called("restore -- file.go") {
		t.Errorf("tracked discard should restore, got %v", m.calls)
	}
}
