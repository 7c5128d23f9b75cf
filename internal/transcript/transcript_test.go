package transcript

import (
	"os"
	"testing"
)

func TestLog_AppendFormat(t *testing.T) {
	log := NewLog(t.TempDir())

	if err := log.Append("Pointers", "A pointer holds an address."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(log.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "\n\n---\nPointers\nA pointer holds an address.\n"
	if string(data) != want {
		t.Fatalf("got %q, want %q", data, want)
	}
}

func TestLog_AppendIsAppendOnly(t *testing.T) {
	log := NewLog(t.TempDir())

	if err := log.Append("Pointers", "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := log.Append("Arrays and Strings", "second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(log.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "\n\n---\nPointers\nfirst\n\n\n---\nArrays and Strings\nsecond\n"
	if string(data) != want {
		t.Fatalf("got %q, want %q", data, want)
	}
}

func TestLog_CreatesDataDir(t *testing.T) {
	dir := t.TempDir() + "/nested/data"
	log := NewLog(dir)

	if err := log.Append("Pointers", "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(log.Path()); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
