package team

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"legendary/internal/data"
	"legendary/internal/logging"
)

var ErrBadStats = errors.New("team entry does not hold six stats")

// Entry is one team member as stored on disk. Entries added by stats have
// no types.
type Entry struct {
	Name  string `json:"name"`
	Stats []int  `json:"stats"`
	Type1 string `json:"type1,omitempty"`
	Type2 string `json:"type2,omitempty"`
}

func NewEntry(name string, stats data.Stats, type1, type2 string) Entry {
	return Entry{Name: name, Stats: stats.Slice(), Type1: type1, Type2: type2}
}

func (e Entry) Features() (data.Stats, error) {
	stats, err := data.StatsFromSlice(e.Stats)
	if err != nil {
		return stats, fmt.Errorf("%w: %s has %d", ErrBadStats, e.Name, len(e.Stats))
	}
	return stats, nil
}

// Store persists the whole team as one JSON file. Every Save rewrites the
// file; there is no locking.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the saved team, or an empty team if the file does not exist.
func (s *Store) Load() ([]Entry, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read team file: %w", err)
	}

	entries := []Entry{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode team file %s: %w", s.path, err)
	}
	if entries == nil {
		entries = []Entry{}
	}

	return entries, nil
}

func (s *Store) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode team: %w", err)
	}
	out = append(out, '\n')

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create team directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write team file: %w", err)
	}

	logging.New("team").Debug("team saved", "path", s.path, "entries", len(entries))
	return nil
}

func (s *Store) Clear() error {
	return s.Save(nil)
}
