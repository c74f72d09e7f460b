package types

import "errors"

// Config holds backend selection and parameters for opening a record store.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	PageSize int    `json:"page_size" yaml:"page_size"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultPageSize is the number of rows shown per page when none is configured.
const DefaultPageSize = 20

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrPageSizeInvalid = errors.New("page size must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSON:   true,
	BackendJSONL:  true,
	BackendSQLite: true,
	BackendMemory: true,
}

// Validate checks that the Config is well-formed. A zero PageSize is
// allowed and means DefaultPageSize.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.PageSize < 0 {
		return ErrPageSizeInvalid
	}
	return nil
}

// GetPageSize returns PageSize, or DefaultPageSize when it is unset.
func (c Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}
