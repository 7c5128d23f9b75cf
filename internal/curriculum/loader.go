package curriculum

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// trackFile is the on-disk shape of a custom track definition.
type trackFile struct {
	Name   string   `yaml:"name"`
	Topics []string `yaml:"topics"`
}

// LoadCustomTracks reads *.yaml / *.yml files from dir and merges them
// into the catalog after the built-in tracks. Files that fail to parse
// or define an empty/duplicate track are skipped with a warning on
// stderr so one bad file never blocks startup.
func (c *Catalog) LoadCustomTracks(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read tracks dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		path := filepath.Join(dir, name)
		if err := c.loadTrackFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping track file %s: %v\n", path, err)
		}
	}
	return nil
}

func (c *Catalog) loadTrackFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var tf trackFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	tf.Name = strings.TrimSpace(tf.Name)
	if tf.Name == "" {
		return fmt.Errorf("track has no name")
	}
	if len(tf.Topics) == 0 {
		return fmt.Errorf("track %q has no topics", tf.Name)
	}
	// Built-in tracks cannot be shadowed, and later files cannot
	// overwrite earlier custom tracks.
	if c.Has(tf.Name) {
		return fmt.Errorf("track %q already exists", tf.Name)
	}

	topics := make([]string, 0, len(tf.Topics))
	seen := make(map[string]bool, len(tf.Topics))
	for _, t := range tf.Topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
	}
	if len(topics) == 0 {
		return fmt.Errorf("track %q has no usable topics", tf.Name)
	}

	c.customOrder = append(c.customOrder, tf.Name)
	c.customTopics[tf.Name] = topics
	return nil
}
