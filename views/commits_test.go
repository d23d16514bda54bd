package views

import (
	"testing"

	"github.com/lixenwraith/g/git"
)

func sampleCommits() []git.Commit {
	return []git.Commit{
		{ID: "a1b2c3", ShortID: "a1b2c3", Summary: "Fix crash", Author: "alice"},
		{ID: "d4e5f6", ShortID: "d4e5f6", Summary: "Add panel", Author: "bob"},
		{ID: "a9b8c7", ShortID: "a9b8c7", Summary: "fix lint", Author: "alice"},
	}
}

func TestCommitsSearchSigils(t *testing.T) {
	v := NewCommitsView()
	v.SetCommits(sampleCommits())

	if n := v.Search("fix"); n != 2 {
		t.Errorf("message search = %d, want 2", n)
	}
	if v.List.Selection != 0 {
		t.Errorf("search should jump to the first result, got %d", v.List.Selection)
	}

	if n := v.Search("@bob"); n != 1 {
		t.Errorf("author search = %d, want 1", n)
	}
	if v.List.Selection != 1 {
		t.Errorf("author result selection = %d, want 1", v.List.Selection)
	}

	if n := v.Search("#a9"); n != 1 {
		t.Errorf("hash search = %d, want 1", n)
	}
}

func TestCommitsResultCycling(t *testing.T) {
	v := NewCommitsView()
	v.SetCommits(sampleCommits())
	v.Search("fix") // Results: 0, 2

	v.NextResult()
	if v.List.Selection != 2 {
		t.Errorf("next result = %d, want 2", v.List.Selection)
	}
	v.NextResult()
	if v.List.Selection != 0 {
		t.Errorf("results wrap, got %d", v.List.Selection)
	}
	v.PrevResult()
	if v.List.Selection != 2 {
		t.Errorf("prev wraps backwards, got %d", v.List.Selection)
	}
}

func TestCommitsRefreshClearsSearch(t *testing.T) {
	v := NewCommitsView()
	v.SetCommits(sampleCommits())
	v.Search("fix")
	v.SetCommits(sampleCommits())
	if v.Query != "" || len(v.Results) != 0 {
		t.Error("refresh must drop stale search results")
	}
}
