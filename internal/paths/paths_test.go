package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv builds an env from a variable map with fixed directories.
func fakeEnv(vars map[string]string) env {
	return env{
		getenv:        func(k string) string { return vars[k] },
		getwd:         func() (string, error) { return "/work/site-a", nil },
		userConfigDir: func() (string, error) { return "/home/noc/.config", nil },
	}
}

func TestConfigDir(t *testing.T) {
	tests := []struct {
		name string
		flag string
		vars map[string]string
		want string
	}{
		{"flag wins over env", "/etc/rflinks", map[string]string{EnvConfigDir: "/env/cfg"}, "/etc/rflinks"},
		{"env when no flag", "", map[string]string{EnvConfigDir: "/env/cfg"}, "/env/cfg"},
		{"user config dir by default", "", nil, "/home/noc/.config/rflinks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fakeEnv(tt.vars).configDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDataDir(t *testing.T) {
	vars := map[string]string{EnvDataDir: "/env/data"}
	tests := []struct {
		name        string
		flag        string
		configValue string
		vars        map[string]string
		want        string
	}{
		{"flag wins over all", "/flag/data", "/config/data", vars, "/flag/data"},
		{"config.yaml wins over env", "", "/config/data", vars, "/config/data"},
		{"env when flag and config empty", "", "", vars, "/env/data"},
		{"working directory by default", "", "", nil, "/work/site-a/" + DataDirName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fakeEnv(tt.vars).dataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeValuesBecomeAbsolute(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	e := fakeEnv(map[string]string{EnvConfigDir: "rel/cfg", EnvDataDir: "rel/data"})

	got, err := e.configDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "rel/cfg"), got)

	got, err = e.dataDir("", "rel/config-value")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "rel/config-value"), got)
}

func TestLookupFailures(t *testing.T) {
	boom := errors.New("boom")
	e := fakeEnv(nil)
	e.userConfigDir = func() (string, error) { return "", boom }
	e.getwd = func() (string, error) { return "", boom }

	_, err := e.configDir("")
	assert.ErrorIs(t, err, boom)
	_, err = e.dataDir("", "")
	assert.ErrorIs(t, err, boom)

	got, err := e.dataDir("/flag/data", "")
	require.NoError(t, err, "an explicit value needs no lookup")
	assert.Equal(t, "/flag/data", got)
}

func TestResolveUsesProcessEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(dir, "cfg"))
	t.Setenv(EnvDataDir, filepath.Join(dir, "data"))

	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cfg"), got)

	got, err = ResolveDataDir("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), got)
}
