// Package store implements the record store: the authoritative in-memory
// collection of links, the views derived from it, and the single persist
// path every mutation goes through.
//
// A Store is used from one goroutine at a time. It holds no locks.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mesh-intelligence/rflinks/internal/logging"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// Store owns a record collection and persists it through a types.Storage.
type Store struct {
	storage  types.Storage
	logger   *slog.Logger
	defaults []types.Record
	records  []types.Record
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report recoveries. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults replaces the built-in collection used to seed empty storage.
func WithDefaults(records []types.Record) Option {
	return func(s *Store) {
		s.defaults = slices.Clone(records)
	}
}

// Open loads the collection from storage. Empty storage is seeded with the
// default collection, which is saved immediately. A corrupt stored value is
// logged and replaced in memory by the defaults; storage is left untouched
// until the next mutation. Any other load error is returned.
func Open(storage types.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage:  storage,
		logger:   logging.Discard(),
		defaults: DefaultRecords(),
	}
	for _, opt := range opts {
		opt(s)
	}

	records, err := storage.Load()
	switch {
	case err == nil:
		s.records = records
		if dups := duplicateIDs(records); len(dups) > 0 {
			s.logger.Warn("stored collection has duplicate link IDs", "ids", dups)
		}
		s.logger.Debug("loaded collection", "records", len(records))
	case errors.Is(err, types.ErrNotPresent):
		s.records = slices.Clone(s.defaults)
		s.logger.Info("seeding default collection", "records", len(s.records))
		if err := s.persist(); err != nil {
			return nil, err
		}
	case errors.Is(err, types.ErrCorruptState):
		s.logger.Warn("stored collection is corrupt; using defaults", "err", err)
		s.records = slices.Clone(s.defaults)
	default:
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return s, nil
}

// persist writes the whole collection back to storage. The in-memory state
// is kept when the write fails.
func (s *Store) persist() error {
	if err := s.storage.Save(s.records); err != nil {
		s.logger.Error("persisting collection failed", "records", len(s.records), "err", err)
		if !errors.Is(err, types.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: %w", types.ErrStorageUnavailable, err)
		}
		return err
	}
	s.logger.Debug("persisted collection", "records", len(s.records))
	return nil
}

// Len returns the number of records in the collection.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of the collection in order.
func (s *Store) All() []types.Record {
	return slices.Clone(s.records)
}

// Get returns the first record with the given ID.
func (s *Store) Get(id string) (types.Record, error) {
	i := s.index(id)
	if i < 0 {
		return types.Record{}, fmt.Errorf("%w: %s", types.ErrRecordNotFound, id)
	}
	return s.records[i], nil
}

// Add appends rec and persists. The ID must be non-empty and not already in
// the collection.
func (s *Store) Add(rec types.Record) error {
	if rec.ID == "" {
		return types.ErrInvalidID
	}
	if s.index(rec.ID) >= 0 {
		return fmt.Errorf("%w: %s", types.ErrDuplicateID, rec.ID)
	}
	s.records = append(s.records, rec)
	return s.persist()
}

// Update replaces the first record whose ID is id with rec, keeping its
// position, and persists. rec may carry a new ID as long as no other record
// uses it.
func (s *Store) Update(id string, rec types.Record) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", types.ErrRecordNotFound, id)
	}
	if rec.ID == "" {
		return types.ErrInvalidID
	}
	if rec.ID != id && s.index(rec.ID) >= 0 {
		return fmt.Errorf("%w: %s", types.ErrDuplicateID, rec.ID)
	}
	s.records[i] = rec
	return s.persist()
}

// Delete removes every record with the given ID and persists. It returns the
// number removed; removing nothing is ErrRecordNotFound and skips the write.
func (s *Store) Delete(id string) (int, error) {
	before := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(r types.Record) bool {
		return r.ID == id
	})
	removed := before - len(s.records)
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", types.ErrRecordNotFound, id)
	}
	return removed, s.persist()
}

// Reset discards the collection, clears storage and saves the defaults.
func (s *Store) Reset() error {
	if err := s.storage.Clear(); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	s.records = slices.Clone(s.defaults)
	s.logger.Info("collection reset to defaults", "records", len(s.records))
	return s.persist()
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.records, func(r types.Record) bool {
		return r.ID == id
	})
}

// duplicateIDs returns each ID that appears more than once, in first-seen
// order.
func duplicateIDs(records []types.Record) []string {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, r := range records {
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}
