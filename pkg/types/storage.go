package types

import "errors"

// StorageKey is the single key the whole collection is stored under.
const StorageKey = "rfLinksData"

// Storage is the durable home of a record collection. Every call reads or
// replaces the whole collection; there are no partial writes.
type Storage interface {
	// Load returns the stored collection in its stored order.
	// Returns ErrNotPresent if nothing has been saved yet, ErrCorruptState
	// if the stored value cannot be decoded, and ErrStorageUnavailable if
	// the underlying medium cannot be read.
	Load() ([]Record, error)

	// Save replaces the stored collection with records.
	Save(records []Record) error

	// Clear removes the stored collection. Clearing an empty store succeeds.
	Clear() error

	// Close releases resources held by the adapter. Idempotent.
	Close() error
}

// Storage errors.
var (
	ErrNotPresent         = errors.New("no stored collection")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptState       = errors.New("corrupt persisted state")
)

// Record operation errors.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateID    = errors.New("duplicate record ID")
	ErrInvalidID      = errors.New("record ID must not be empty")
)

// Import errors.
var (
	ErrMalformedRow    = errors.New("malformed import row")
	ErrMalformedHeader = errors.New("malformed import header")
)
