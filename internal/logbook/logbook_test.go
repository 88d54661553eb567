package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "journal.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestEntriesCarryLevelAndRunID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Warn("lookup miss for %s", "nobody@example.com")
	book.Error("export failed")

	lines, total := book.Tail(10)
	if total != 2 {
		t.Fatalf("total lines = %d, want 2", total)
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], "nobody@example.com") {
		t.Fatalf("unexpected warn line %q", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR") {
		t.Fatalf("unexpected error line %q", lines[1])
	}
	tag := "[" + shortID(book.RunID()) + "]"
	for _, line := range lines {
		if !strings.Contains(line, tag) {
			t.Fatalf("line %q missing run tag %s", line, tag)
		}
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	if lines, total := book.Tail(5); lines != nil || total != 0 {
		t.Fatalf("nil logbook tail = %v, %d", lines, total)
	}
	if book.Path() != "" || book.RunID() != "" {
		t.Fatalf("nil logbook should report empty path and run id")
	}
}
