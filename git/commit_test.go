package git

import (
	"errors"
	"testing"
)

const sampleLog = "aaaa1111\x1faaaa111\x1fFix the parser\x1fAlice\x1f1700000000\n" +
	"bbbb2222\x1fbbbb222\x1fAdd feature\x1fBob\x1f1700000100\n" +
	"cccc3333\x1fcccc333\x1ffix typo in docs\x1fAlice\x1f1700000200"

func TestParseCommits(t *testing.T) {
	commits := parseCommits(sampleLog)
	if len(commits) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(commits))
	}
	c := commits[0]
	if c.ID != "aaaa1111" || c.ShortID != "aaaa111" || c.Summary != "Fix the parser" || c.Author != "Alice" {
		t.Errorf("first commit parsed wrong: %+v", c)
	}
	if c.When.Unix() != 1700000000 {
		t.Errorf("timestamp wrong: %v", c.When)
	}
}

func TestFilterCommitsByMessage(t *testing.T) {
	commits := parseCommits(sampleLog)
	got := FilterCommits(commits, "fix", SearchMessage)
	if len(got) != 2 {
		t.Fatalf("case-insensitive message filter: expected 2, got %d", len(got))
	}
}

func TestFilterCommitsByAuthor(t *testing.T) {
	commits := parseCommits(sampleLog)
	got := FilterCommits(commits, "alice", SearchAuthor)
	if len(got) != 2 {
		t.Fatalf("author filter: expected 2, got %d", len(got))
	}
	if got[0].Author != "Alice" || got[1].Author != "Alice" {
		t.Errorf("wrong commits: %+v", got)
	}
}

func TestFilterCommitsByHashPrefix(t *testing.T) {
	commits := parseCommits(sampleLog)
	got := FilterCommits(commits, "bbbb", SearchHash)
	if len(got) != 1 || got[0].ID != "bbbb2222" {
		t.Fatalf("hash prefix filter: got %+v", got)
	}
	if got := FilterCommits(commits, "zzz", SearchHash); len(got) != 0 {
		t.Errorf("non-matching prefix must return nothing, got %+v", got)
	}
}

func TestCommitRejectsEmptyMessage(t *testing.T) {
	m := newMockRunner()
	repo := NewRepo(m, "test")

	if _, err := repo.Commit("   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(m.calls) != 0 {
		t.Errorf("empty message must never reach git: %v", m.calls)
	}
}

func TestCommitReturnsNewID(t *testing.T) {
	m := newMockRunner()
	m.responses["rev-parse HEAD"] = "deadbeef"
	repo := NewRepo(m, "test")

	id, err := repo.Commit("message")
	if err != nil {
		t.Fatal(err)
	}
	if id != "deadbeef" {
		t.Errorf("got id %q", id)
	}
	if !m.called("commit -m message") {
		t.Errorf("expected commit invocation, got %v", m.calls)
	}
}
