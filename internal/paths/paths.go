// Package paths locates the rflinks configuration and data directories.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// appName names the per-user configuration directory.
const appName = "rflinks"

// DataDirName is the data directory created under the working directory
// when nothing else names one.
const DataDirName = ".rflinks-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RFLINKS_CONFIG_DIR"
	EnvDataDir   = "RFLINKS_DATA_DIR"
)

// env is the slice of process state directory resolution reads.
type env struct {
	getenv        func(string) string
	getwd         func() (string, error)
	userConfigDir func() (string, error)
}

var processEnv = env{
	getenv:        os.Getenv,
	getwd:         os.Getwd,
	userConfigDir: os.UserConfigDir,
}

// ResolveConfigDir returns the configuration directory: flag, then
// RFLINKS_CONFIG_DIR, then rflinks under os.UserConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return processEnv.configDir(flag)
}

// ResolveDataDir returns the data directory: flag, then the data_dir value
// from config.yaml, then RFLINKS_DATA_DIR, then .rflinks-db in the working
// directory. Each project directory keeps its own links unless told
// otherwise.
func ResolveDataDir(flag, configValue string) (string, error) {
	return processEnv.dataDir(flag, configValue)
}

func (e env) configDir(flag string) (string, error) {
	if dir, ok, err := firstAbs(flag, e.getenv(EnvConfigDir)); ok {
		return dir, err
	}
	base, err := e.userConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

func (e env) dataDir(flag, configValue string) (string, error) {
	if dir, ok, err := firstAbs(flag, configValue, e.getenv(EnvDataDir)); ok {
		return dir, err
	}
	cwd, err := e.getwd()
	if err != nil {
		return "", fmt.Errorf("locate working dir: %w", err)
	}
	return filepath.Join(cwd, DataDirName), nil
}

// firstAbs returns the absolute form of the first non-empty candidate. ok
// is false when every candidate is empty.
func firstAbs(candidates ...string) (dir string, ok bool, err error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		dir, err = filepath.Abs(c)
		return dir, true, err
	}
	return "", false, nil
}
