// Package sqlite implements the SQLite storage backend for rflinks.
// The collection is kept as a single JSON value in a key/value table, the
// embedded equivalent of the browser local-storage key it replaces.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/rflinks/pkg/types"
)

var _ types.Storage = (*Backend)(nil)

// ErrAlreadyAttached is returned by Attach on an attached backend.
var ErrAlreadyAttached = errors.New("backend is already attached")

// Backend implements types.Storage on top of a SQLite database file.
type Backend struct {
	attached bool
	config   types.Config
	db       *sql.DB
	key      string
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{key: types.StorageKey}
}

// Attach opens (creating if needed) DataDir/rflinks.db and applies the
// schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	if b.attached {
		return ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorageUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", types.ErrStorageUnavailable, dbPath, err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("%w: applying schema: %w", types.ErrStorageUnavailable, err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent. After Detach every storage call
// returns ErrStorageUnavailable until Attach is called again.
func (b *Backend) Detach() error {
	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

// Close detaches the backend.
func (b *Backend) Close() error {
	return b.Detach()
}

// Load reads the collection stored under the rfLinksData key.
func (b *Backend) Load() ([]types.Record, error) {
	if !b.attached {
		return nil, fmt.Errorf("%w: backend is detached", types.ErrStorageUnavailable)
	}

	var value string
	err := b.db.QueryRow("SELECT value FROM local_storage WHERE key = ?", b.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotPresent
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", types.ErrStorageUnavailable, b.key, err)
	}
	if value == "" {
		return nil, types.ErrNotPresent
	}

	var records []types.Record
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", types.ErrCorruptState, b.key, err)
	}
	if records == nil {
		records = []types.Record{}
	}
	return records, nil
}

// Save upserts the serialized collection under the rfLinksData key.
func (b *Backend) Save(records []types.Record) error {
	if !b.attached {
		return fmt.Errorf("%w: backend is detached", types.ErrStorageUnavailable)
	}
	if records == nil {
		records = []types.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", types.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO local_storage (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		b.key, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: writing %s: %w", types.ErrStorageUnavailable, b.key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing %s: %w", types.ErrStorageUnavailable, b.key, err)
	}
	return nil
}

// Clear deletes the rfLinksData row.
func (b *Backend) Clear() error {
	if !b.attached {
		return fmt.Errorf("%w: backend is detached", types.ErrStorageUnavailable)
	}
	if _, err := b.db.Exec("DELETE FROM local_storage WHERE key = ?", b.key); err != nil {
		return fmt.Errorf("%w: clearing %s: %w", types.ErrStorageUnavailable, b.key, err)
	}
	return nil
}
