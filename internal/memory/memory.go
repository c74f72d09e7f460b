// Package memory provides an in-memory types.Storage used by tests and by
// the "memory" backend for throwaway sessions.
package memory

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/rflinks/pkg/types"
)

var _ types.Storage = (*Store)(nil)

// Store keeps the serialized collection in memory. Values are stored
// encoded, the same way a durable backend would hold them, so callers never
// share slices with the store.
type Store struct {
	value   []byte
	present bool

	// SaveErr, when set, is returned by every Save without storing anything.
	SaveErr error

	// Saves counts successful Save calls.
	Saves int
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// NewWithRecords creates a store that already holds records.
func NewWithRecords(records []types.Record) *Store {
	s := New()
	if err := s.Save(records); err != nil {
		panic(err)
	}
	s.Saves = 0
	return s
}

// SetRaw stores value as-is, bypassing encoding. Tests use it to plant a
// corrupt collection.
func (s *Store) SetRaw(value []byte) {
	s.value = append([]byte(nil), value...)
	s.present = true
}

// Raw returns the stored value.
func (s *Store) Raw() []byte {
	return s.value
}

// Load decodes the stored collection.
func (s *Store) Load() ([]types.Record, error) {
	if !s.present || len(s.value) == 0 {
		return nil, types.ErrNotPresent
	}
	var records []types.Record
	if err := json.Unmarshal(s.value, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrCorruptState, err)
	}
	if records == nil {
		records = []types.Record{}
	}
	return records, nil
}

// Save encodes and stores records.
func (s *Store) Save(records []types.Record) error {
	if s.SaveErr != nil {
		return fmt.Errorf("%w: %w", types.ErrStorageUnavailable, s.SaveErr)
	}
	if records == nil {
		records = []types.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	s.value = data
	s.present = true
	s.Saves++
	return nil
}

// Clear forgets the stored collection.
func (s *Store) Clear() error {
	s.value = nil
	s.present = false
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
