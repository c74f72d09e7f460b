// Package storage selects and opens the types.Storage adapter named by a
// Config.
package storage

import (
	"fmt"

	"github.com/mesh-intelligence/rflinks/internal/jsonfile"
	"github.com/mesh-intelligence/rflinks/internal/memory"
	"github.com/mesh-intelligence/rflinks/internal/sqlite"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// Open validates cfg and returns the adapter for cfg.Backend. The caller
// must Close the result.
func Open(cfg types.Config) (types.Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	switch cfg.Backend {
	case types.BackendJSON:
		return jsonfile.NewJSON(dataDir), nil
	case types.BackendJSONL:
		return jsonfile.NewJSONL(dataDir), nil
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach sqlite: %w", err)
		}
		return b, nil
	case types.BackendMemory:
		return memory.New(), nil
	default:
		return nil, types.ErrBackendUnknown
	}
}
