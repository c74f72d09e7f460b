// Package jsonfile stores a record collection in a file under the data
// directory, either as one JSON array (the same value a browser would keep
// under the rfLinksData key) or as JSON Lines with a header line.
package jsonfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// File names inside the data directory.
const (
	JSONFileName  = types.StorageKey + ".json"
	JSONLFileName = types.StorageKey + ".jsonl"
)

var _ types.Storage = (*Store)(nil)

// Store is a file-backed types.Storage.
type Store struct {
	path  string
	lines bool
}

// NewJSON returns a Store keeping the collection as a JSON array in
// dataDir/rfLinksData.json.
func NewJSON(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, JSONFileName)}
}

// NewJSONL returns a Store keeping the collection as JSON Lines in
// dataDir/rfLinksData.jsonl.
func NewJSONL(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, JSONLFileName), lines: true}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the collection. A missing or blank file is ErrNotPresent.
func (s *Store) Load() ([]types.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.ErrNotPresent
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", types.ErrStorageUnavailable, s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, types.ErrNotPresent
	}
	if s.lines {
		return decodeLines(s.path, data)
	}

	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", types.ErrCorruptState, s.path, err)
	}
	if records == nil {
		// A stored JSON null decodes to nil; keep "present but empty"
		// distinct from ErrNotPresent.
		records = []types.Record{}
	}
	return records, nil
}

// Save replaces the file contents with records.
func (s *Store) Save(records []types.Record) error {
	var err error
	if s.lines {
		err = writeAtomic(s.path, func(w *bufio.Writer) error {
			return encodeLines(w, records)
		})
	} else {
		err = writeAtomic(s.path, func(w *bufio.Writer) error {
			if records == nil {
				records = []types.Record{}
			}
			data, err := json.Marshal(records)
			if err != nil {
				return fmt.Errorf("encoding records: %w", err)
			}
			_, err = w.Write(data)
			return err
		})
	}
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorageUnavailable, err)
	}
	return nil
}

// Clear removes the file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: removing %s: %w", types.ErrStorageUnavailable, s.path, err)
	}
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}
