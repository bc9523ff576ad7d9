// Package session persists per-session configuration as JSON records on
// disk. Two stores exist side by side: a private one holding cargo defaults
// and a shared one holding the working directory used by every collaborating
// tool-family server.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a JSON-file-backed map from session id to a record of type T.
// Every operation is whole-file read-modify-write; the last writer wins.
// Concurrent writers from sibling tool-family processes can race on the
// shared file; that is a known limitation of the on-disk contract.
type Store[T any] struct {
	path string
}

// NewStore opens (or lazily creates) the store backing file at path.
func NewStore[T any](path string) (*Store[T], error) {
	if path == "" {
		return nil, fmt.Errorf("session store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return &Store[T]{path: path}, nil
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

func (s *Store[T]) load() (map[string]T, error) {
	records := make(map[string]T)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return records, nil
		}
		return nil, fmt.Errorf("read session store %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse session store %s: %w", s.path, err)
	}
	return records, nil
}

func (s *Store[T]) save(records map[string]T) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session store: %w", err)
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write session store %s: %w", s.path, err)
	}
	return nil
}

// GetOrCreate returns the record for id, creating and persisting a
// zero-valued one on first access.
func (s *Store[T]) GetOrCreate(id string) (T, error) {
	records, err := s.load()
	if err != nil {
		var zero T
		return zero, err
	}
	if record, ok := records[id]; ok {
		return record, nil
	}
	var record T
	records[id] = record
	if err := s.save(records); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Update loads (or defaults) the record for id, applies mutate, and persists
// the whole record back. There is no partial-field persistence.
func (s *Store[T]) Update(id string, mutate func(*T)) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	record := records[id]
	mutate(&record)
	records[id] = record
	return s.save(records)
}

// Sessions returns the ids present in the store, for CLI inspection.
func (s *Store[T]) Sessions() ([]string, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	return ids, nil
}
