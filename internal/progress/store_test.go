package progress

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var topics = []string{"Pointers", "Arrays", "Structs"}

func TestLoad_NoFile(t *testing.T) {
	s := NewStore(t.TempDir())
	rec, err := s.Load(topics, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec) != len(topics) {
		t.Fatalf("expected %d entries, got %d", len(topics), len(rec))
	}
	for topic, done := range rec {
		if done {
			t.Errorf("fresh record has %q completed", topic)
		}
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	s := NewStore(t.TempDir())
	rec := Record{"Pointers": true, "Arrays": false, "Structs": true}
	if err := s.Save(rec, "alice"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(topics, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for topic, want := range rec {
		if got[topic] != want {
			t.Errorf("topic %q: got %v, want %v", topic, got[topic], want)
		}
	}
}

func TestLoad_Migration(t *testing.T) {
	s := NewStore(t.TempDir())
	// Stored record has a topic no longer in the track.
	old := Record{"Pointers": true, "Removed Topic": true}
	if err := s.Save(old, "bob"); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(topics, "bob")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := got["Removed Topic"]; ok {
		t.Error("removed topic should be dropped on load")
	}
	if !got["Pointers"] {
		t.Error("surviving topic lost its flag")
	}
	if got["Structs"] {
		t.Error("new topic should default to false")
	}
	if len(got) != len(topics) {
		t.Errorf("record domain must equal track topics, got %d entries", len(got))
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "eve_progress.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load(topics, "eve")
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if se.Op != "load" {
		t.Errorf("expected load op, got %q", se.Op)
	}
}

func TestReset_AllFalse(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Save(Record{"Pointers": true, "Arrays": true, "Structs": true}, "alice"); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(topics, "alice"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	rec, err := s.Load(topics, "alice")
	if err != nil {
		t.Fatal(err)
	}
	for topic, done := range rec {
		if done {
			t.Errorf("topic %q still completed after reset", topic)
		}
	}
}

func TestSave_InvalidUser(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, user := range []string{"", "  ", "a/b", `a\b`, ".."} {
		if err := s.Save(Record{}, user); err == nil {
			t.Errorf("expected error for user %q", user)
		}
	}
}

func TestSharedStorageKey(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Save(Record{"Pointers": true}, "alice"); err != nil {
		t.Fatal(err)
	}
	// A second "session" with the same name reads the same record.
	rec, err := s.Load(topics, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !rec["Pointers"] {
		t.Error("same username must map to the same stored record")
	}
}

func TestSave_PreservesOtherTracks(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Save(Record{"File Handling": true}, "alice"); err != nil {
		t.Fatal(err)
	}
	// Saving a record for a different topic set must not drop flags
	// the record does not mention.
	if err := s.Save(Record{"Pointers": true, "Arrays": false, "Structs": false}, "alice"); err != nil {
		t.Fatal(err)
	}

	rec, err := s.Load([]string{"File Handling"}, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !rec["File Handling"] {
		t.Error("flag from another topic set was lost on save")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want int
	}{
		{"empty", Record{}, 0},
		{"none done", Record{"a": false, "b": false}, 0},
		{"half", Record{"a": true, "b": false}, 50},
		{"all done", Record{"a": true, "b": true}, 100},
		{"floor", Record{"a": true, "b": false, "c": false}, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Percent(); got != tt.want {
				t.Errorf("Percent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemaining_PreservesOrder(t *testing.T) {
	rec := Record{"Pointers": true, "Arrays": false, "Structs": false}
	got := rec.Remaining(topics)
	if len(got) != 2 || got[0] != "Arrays" || got[1] != "Structs" {
		t.Errorf("Remaining() = %v", got)
	}
}
