package modsect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
)

// runState is the durable record of the folders this run disabled and has not yet
// restored. It is rewritten in full after every mutation, via a temp file and an
// atomic rename, so a crash never leaves a partial file behind. When the record
// drains to empty the file is removed instead.
//
// No two runs may share one state file; the store assumes a single writer.
type runState struct {
	path    string
	entries []string
}

func newRunState(path string) *runState {
	return &runState{path: path}
}

// record appends a disabled-on-disk path and persists the record.
// Paths already recorded are not recorded twice.
func (s *runState) record(path string) error {
	if s.contains(path) {
		return nil
	}
	s.entries = append(s.entries, path)
	return s.persist()
}

// unrecord removes a path from the record and persists it.
func (s *runState) unrecord(path string) error {
	for i, entry := range s.entries {
		if entry == path {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

func (s *runState) contains(path string) bool {
	for _, entry := range s.entries {
		if entry == path {
			return true
		}
	}
	return false
}

// paths returns a copy of the recorded paths in insertion order.
func (s *runState) paths() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// delete removes the durable file and clears the in-memory record.
func (s *runState) delete() error {
	s.entries = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *runState) persist() error {
	if len(s.entries) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uniuri.New())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// loadStatePaths reads a durable state file into its recorded paths.
// An absent file means there is nothing to recover and yields an empty list.
// Entries that are not strings are silently discarded; a file that is not a
// JSON list at all is an error.
func loadStatePaths(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("state file %s does not contain a JSON list: %w", path, err)
	}
	var paths []string
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			paths = append(paths, s)
		}
	}
	return paths, nil
}
