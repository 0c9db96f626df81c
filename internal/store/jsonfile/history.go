// Package jsonfile implements stores backed by a single JSON file on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/a4s/internal/core/history"
)

// HistoryFile is the root JSON structure stored on disk.
type HistoryFile struct {
	Entries []history.Entry `json:"entries"`
}

// HistoryStore implements history.Store using a JSON file for persistence.
type HistoryStore struct {
	path string
	mu   sync.RWMutex
}

var _ history.Store = (*HistoryStore)(nil)

// NewHistoryStore creates a new JSON file history store at the given path.
func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// List returns all history entries, newest first.
func (s *HistoryStore) List(ctx context.Context) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.Entries, nil
}

// Save adds a new history entry, pruning old entries to stay within maxEntries.
// An existing entry with the same crew and payload is moved to the front
// instead of being duplicated.
func (s *HistoryStore) Save(ctx context.Context, entry history.Entry, maxEntries int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	kept := make([]history.Entry, 0, len(file.Entries)+1)
	kept = append(kept, entry)
	for _, e := range file.Entries {
		if e.CrewID == entry.CrewID && string(e.Payload) == string(entry.Payload) {
			continue
		}
		kept = append(kept, e)
	}

	if maxEntries > 0 && len(kept) > maxEntries {
		kept = kept[:maxEntries]
	}

	return s.save(HistoryFile{Entries: kept})
}

// LastForCrew returns the most recent entry for a crew. Returns ErrNotFound if none.
func (s *HistoryStore) LastForCrew(ctx context.Context, crewID string) (history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return history.Entry{}, err
	}

	for _, entry := range file.Entries {
		if entry.CrewID == crewID {
			return entry, nil
		}
	}

	return history.Entry{}, history.ErrNotFound
}

// load reads the history file from disk.
// Returns empty HistoryFile if file doesn't exist.
func (s *HistoryStore) load() (HistoryFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return HistoryFile{}, nil
		}
		return HistoryFile{}, err
	}

	if len(data) == 0 {
		return HistoryFile{}, nil
	}

	var file HistoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return HistoryFile{}, err
	}

	return file, nil
}

// save writes the history file to disk atomically.
func (s *HistoryStore) save(file HistoryFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
