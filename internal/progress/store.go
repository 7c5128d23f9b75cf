package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Record maps every topic of the active track to its completion flag.
// The key set always equals the track's topic list after Load.
type Record map[string]bool

// NewRecord returns an all-false record over the given topics.
func NewRecord(topics []string) Record {
	rec := make(Record, len(topics))
	for _, t := range topics {
		rec[t] = false
	}
	return rec
}

// StorageError wraps a failure of the persisted progress file.
type StorageError struct {
	Op   string // "load", "save"
	User string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("progress %s for %q: %v", e.Op, e.User, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store persists one JSON progress file per user under a data directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on
// first save, not here, so a read-only run can still load.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's data directory.
func (s *Store) Dir() string { return s.dir }

// ValidateUser checks that a username is usable as a storage key.
func ValidateUser(user string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return fmt.Errorf("username is empty")
	}
	if strings.ContainsAny(user, `/\`) || user == "." || user == ".." {
		return fmt.Errorf("username %q contains path characters", user)
	}
	return nil
}

// userFile derives the per-user file path. Identical usernames always
// map to the same file; there is no session isolation by design.
func (s *Store) userFile(user string) string {
	return filepath.Join(s.dir, user+"_progress.json")
}

// Load reads the user's persisted record and restricts it to topics:
// stored topics missing from the track are dropped, track topics
// missing from storage default to false. A missing file yields an
// all-false record; a malformed file yields a *StorageError.
func (s *Store) Load(topics []string, user string) (Record, error) {
	if err := ValidateUser(user); err != nil {
		return nil, &StorageError{Op: "load", User: user, Err: err}
	}

	rec := NewRecord(topics)

	data, err := os.ReadFile(s.userFile(user))
	if os.IsNotExist(err) {
		return rec, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", User: user, Err: err}
	}

	var stored map[string]bool
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, &StorageError{Op: "load", User: user, Err: fmt.Errorf("malformed progress file: %w", err)}
	}

	for _, t := range topics {
		if done, ok := stored[t]; ok {
			rec[t] = done
		}
	}
	return rec, nil
}

// Save persists the user's record, merged over any topics already in
// the file that rec does not mention. Tracks share one file per user,
// so saving one track must not drop another track's flags. The write
// goes through a temp file and rename in the same directory.
func (s *Store) Save(rec Record, user string) error {
	if err := ValidateUser(user); err != nil {
		return &StorageError{Op: "save", User: user, Err: err}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StorageError{Op: "save", User: user, Err: err}
	}

	merged := rec
	if prev, err := os.ReadFile(s.userFile(user)); err == nil {
		var stored map[string]bool
		if json.Unmarshal(prev, &stored) == nil {
			merged = make(Record, len(stored)+len(rec))
			for t, done := range stored {
				merged[t] = done
			}
			for t, done := range rec {
				merged[t] = done
			}
		}
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", User: user, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, user+"_progress-*.tmp")
	if err != nil {
		return &StorageError{Op: "save", User: user, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "save", User: user, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", User: user, Err: err}
	}
	if err := os.Rename(tmpName, s.userFile(user)); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", User: user, Err: err}
	}
	return nil
}

// Reset saves an all-false record for the given topics.
func (s *Store) Reset(topics []string, user string) error {
	return s.Save(NewRecord(topics), user)
}

// Completed returns the number of completed topics.
func (r Record) Completed() int {
	n := 0
	for _, done := range r {
		if done {
			n++
		}
	}
	return n
}

// Percent returns floor(100 * completed / total). An empty record is 0%.
func (r Record) Percent() int {
	if len(r) == 0 {
		return 0
	}
	return 100 * r.Completed() / len(r)
}

// Remaining returns the incomplete topics of the given track order,
// preserving that order.
func (r Record) Remaining(topics []string) []string {
	var out []string
	for _, t := range topics {
		if done, ok := r[t]; ok && !done {
			out = append(out, t)
		}
	}
	return out
}
