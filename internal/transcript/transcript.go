package transcript

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the transcript file created in the data directory.
const FileName = "learning_log_c.txt"

// Log appends exported topic explanations to a plain text file. Entries
// are separated by a --- divider and never rewritten.
type Log struct {
	path string
}

// NewLog creates a transcript log in the given data directory.
func NewLog(dir string) *Log {
	return &Log{path: filepath.Join(dir, FileName)}
}

// Path returns the transcript file path.
func (l *Log) Path() string { return l.path }

// Append writes one topic and its explanation to the end of the log.
func (l *Log) Append(topic, explanation string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("transcript append: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("transcript append: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n\n---\n%s\n%s\n", topic, explanation); err != nil {
		return fmt.Errorf("transcript append: %w", err)
	}
	return nil
}
