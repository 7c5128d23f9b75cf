package curriculum

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrackNames_CoreFirst(t *testing.T) {
	c := NewCatalog()
	names := c.TrackNames()
	if len(names) == 0 {
		t.Fatal("expected at least one track")
	}
	if names[0] != CoreTrackName {
		t.Errorf("expected %q first, got %q", CoreTrackName, names[0])
	}
}

func TestTopicsFor_EveryTrackNonEmpty(t *testing.T) {
	c := NewCatalog()
	for _, name := range c.TrackNames() {
		topics := c.TopicsFor(name)
		if len(topics) == 0 {
			t.Errorf("track %q has no topics", name)
		}
	}
}

func TestTopicsFor_Unknown(t *testing.T) {
	c := NewCatalog()
	if topics := c.TopicsFor("Quantum Basket Weaving"); topics != nil {
		t.Errorf("expected nil for unknown track, got %v", topics)
	}
	if c.Has("Quantum Basket Weaving") {
		t.Error("Has should be false for unknown track")
	}
}

func TestTopicsFor_ReturnsCopy(t *testing.T) {
	c := NewCatalog()
	topics := c.TopicsFor(CoreTrackName)
	topics[0] = "mutated"
	if c.TopicsFor(CoreTrackName)[0] == "mutated" {
		t.Error("TopicsFor must not expose internal slices")
	}
}

func TestLoadCustomTracks(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("kernel.yaml", "name: Kernel Hacking\ntopics:\n  - Modules\n  - Syscalls\n")
	write("broken.yaml", "name: [\n")
	write("shadow.yaml", "name: "+CoreTrackName+"\ntopics:\n  - Nope\n")
	write("notes.txt", "not a track")

	c := NewCatalog()
	if err := c.LoadCustomTracks(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	topics := c.TopicsFor("Kernel Hacking")
	if len(topics) != 2 || topics[0] != "Modules" {
		t.Errorf("unexpected custom topics: %v", topics)
	}

	// The core track must not have been shadowed.
	core := c.TopicsFor(CoreTrackName)
	if len(core) == 1 {
		t.Error("built-in track was shadowed by custom file")
	}

	names := c.TrackNames()
	if names[len(names)-1] != "Kernel Hacking" {
		t.Errorf("expected custom track last, got %v", names)
	}
}

func TestLoadCustomTracks_MissingDir(t *testing.T) {
	c := NewCatalog()
	if err := c.LoadCustomTracks(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
