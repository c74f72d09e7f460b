package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rflinks/internal/logging"
	"github.com/mesh-intelligence/rflinks/internal/storage"
	"github.com/mesh-intelligence/rflinks/internal/store"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// session is one opened store together with the storage behind it.
type session struct {
	cfg     types.Config
	logger  *slog.Logger
	storage types.Storage
	store   *store.Store
}

// logger builds the stderr logger at the configured level.
func (a *app) logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(a.v.GetString(cfgKeyLogLevel))
	if err != nil {
		return nil, userError(err)
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

// openSession resolves the configuration, opens the storage backend and
// loads the store. The caller must close the session.
func (a *app) openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	logger, err := a.logger(cmd)
	if err != nil {
		return nil, err
	}

	st, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	s, err := store.Open(st, store.WithLogger(logger))
	if err != nil {
		st.Close()
		return nil, err
	}
	logger.Debug("store opened", "backend", cfg.Backend, "data_dir", cfg.DataDir, "records", s.Len())
	return &session{cfg: cfg, logger: logger, storage: st, store: s}, nil
}

// Close releases the storage backend.
func (s *session) Close() error {
	return s.storage.Close()
}

// withSession opens a session, runs fn, and closes the session.
func (a *app) withSession(cmd *cobra.Command, fn func(*session) error) error {
	s, err := a.openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
