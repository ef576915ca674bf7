// Package recent persists the list of recently converted theme files.
package recent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"themesmith/internal/domain"
)

const storeFile = ".themesmith_recent.json"

// Store keeps a bounded, most-recent-first list of theme file paths in a
// JSON dot-file. The home directory hosts the file; the working directory is
// the fallback when home cannot be resolved.
type Store struct {
	fs     domain.FileSystemAdapter
	path   string
	limit  int
	logger *slog.Logger
}

// NewStore creates a store bounded to limit entries.
func NewStore(fs domain.FileSystemAdapter, limit int, logger *slog.Logger) (*Store, error) {
	dir, err := fs.UserHomeDir()
	if err != nil {
		dir, err = fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving recent-files location: %w", err)
		}
	}

	return &Store{
		fs:     fs,
		path:   filepath.Join(dir, storeFile),
		limit:  limit,
		logger: logger,
	}, nil
}

// Path returns where the store persists its entries.
func (s *Store) Path() string {
	return s.path
}

// Add records a path at the front of the list, deduplicating and truncating
// to the configured bound.
func (s *Store) Add(path string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	updated := make([]string, 0, len(entries)+1)
	updated = append(updated, path)
	for _, entry := range entries {
		if entry != path {
			updated = append(updated, entry)
		}
	}
	if len(updated) > s.limit {
		updated = updated[:s.limit]
	}

	return s.save(updated)
}

// List returns the recorded paths, most recent first. Entries whose file no
// longer exists are dropped from the result and from the store.
func (s *Store) List() ([]string, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	alive := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, statErr := s.fs.Stat(entry); statErr != nil {
			s.logger.Debug("dropping stale recent entry", "path", entry)
			continue
		}
		alive = append(alive, entry)
	}

	if len(alive) != len(entries) {
		if saveErr := s.save(alive); saveErr != nil {
			s.logger.Warn("could not compact recent-files store", "error", saveErr)
		}
	}
	return alive, nil
}

// Clear empties the store.
func (s *Store) Clear() error {
	return s.save([]string{})
}

func (s *Store) load() ([]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing store is an empty store.
			return nil, nil
		}
		return nil, fmt.Errorf("reading recent-files store %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing recent-files store %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *Store) save(entries []string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding recent-files store: %w", err)
	}
	if err := s.fs.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing recent-files store %s: %w", s.path, err)
	}
	return nil
}
