package git

import (
	"testing"
)

func TestPullReportsProgress(t *testing.T) {
	m := newMockRunner()
	m.streamLines["pull --progress origin main"] = []string{
		"remote: Enumerating objects: 5, done.",
		"Receiving objects:  20% (1/5)",
		"Receiving objects:  60% (3/5)",
		"Receiving objects: 100% (5/5), done.",
	}
	repo := NewRepo(m, "test")

	var updates [][2]int
	err := repo.Pull("origin", "main", func(current, total int) {
		updates = append(updates, [2]int{current, total})
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(updates) != 3 {
		t.Fatalf("expected 3 progress updates, got %d: %v", len(updates), updates)
	}
	if updates[1] != [2]int{3, 5} {
		t.Errorf("second update = %v, want {3 5}", updates[1])
	}
}

func TestFetchDefaultsRemote(t *testing.T) {
	m := newMockRunner()
	repo := NewRepo(m, "test")

	if err := repo.Fetch("", nil); err != nil {
		t.Fatal(err)
	}
	if !m.called("fetch --progress origin") {
		t.Errorf("expected origin default, got %v", m.calls)
	}
}

func TestPushWithoutBranch(t *testing.T) {
	m := newMockRunner()
	repo := NewRepo(m, "test")

	if err := repo.Push("origin", "", nil); err != nil {
		t.Fatal(err)
	}
	if !m.called("push --progress origin") {
		t.Errorf("expected bare push, got %v", m.calls)
	}
}

func TestProgressLineParsing(t *testing.T) {
	var got [2]int
	p := func(c, tot int) { got = [2]int{c, tot} }

	reportProgress(p, "Compressing objects:  50% (10/20)")
	if got != [2]int{10, 20} {
		t.Errorf("got %v", got)
	}

	got = [2]int{}
	reportProgress(p, "remote: done.")
	if got != [2]int{} {
		t.Errorf("non-progress lines must not fire the callback, got %v", got)
	}
}
