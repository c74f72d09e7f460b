package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "negative page size returns ErrPageSizeInvalid",
			config:  Config{Backend: BackendJSON, PageSize: -1},
			wantErr: ErrPageSizeInvalid,
		},
		{
			name:    "valid json config",
			config:  Config{Backend: "json", DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "valid jsonl config",
			config:  Config{Backend: "jsonl", DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite", DataDir: "/tmp/data", PageSize: 50},
			wantErr: nil,
		},
		{
			name:    "memory with empty DataDir is valid at config level",
			config:  Config{Backend: "memory", DataDir: ""},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigGetPageSize(t *testing.T) {
	if got := (Config{}).GetPageSize(); got != DefaultPageSize {
		t.Errorf("zero PageSize: got %d, want %d", got, DefaultPageSize)
	}
	if got := (Config{PageSize: 5}).GetPageSize(); got != 5 {
		t.Errorf("explicit PageSize: got %d, want 5", got)
	}
}
