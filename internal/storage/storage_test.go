package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rflinks/internal/jsonfile"
	"github.com/mesh-intelligence/rflinks/internal/memory"
	"github.com/mesh-intelligence/rflinks/internal/sqlite"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

func TestOpenSelectsAdapter(t *testing.T) {
	tests := []struct {
		backend string
		check   func(t *testing.T, s types.Storage)
	}{
		{types.BackendJSON, func(t *testing.T, s types.Storage) {
			js, ok := s.(*jsonfile.Store)
			require.True(t, ok)
			assert.Contains(t, js.Path(), jsonfile.JSONFileName)
		}},
		{types.BackendJSONL, func(t *testing.T, s types.Storage) {
			js, ok := s.(*jsonfile.Store)
			require.True(t, ok)
			assert.Contains(t, js.Path(), jsonfile.JSONLFileName)
		}},
		{types.BackendSQLite, func(t *testing.T, s types.Storage) {
			_, ok := s.(*sqlite.Backend)
			assert.True(t, ok)
		}},
		{types.BackendMemory, func(t *testing.T, s types.Storage) {
			_, ok := s.(*memory.Store)
			assert.True(t, ok)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			s, err := Open(types.Config{Backend: tt.backend, DataDir: t.TempDir()})
			require.NoError(t, err)
			defer s.Close()
			tt.check(t, s)

			// Every adapter honours the same contract.
			_, err = s.Load()
			assert.ErrorIs(t, err, types.ErrNotPresent)
			recs := []types.Record{{ID: "LNK-1", Location: "Muladi"}}
			require.NoError(t, s.Save(recs))
			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, recs, got)
		})
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open(types.Config{Backend: "redis"})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}
