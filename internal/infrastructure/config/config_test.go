package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateXDG points every XDG directory at a temp dir.
func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(root, "run"))
	return root
}

func TestDefaultConfigIsValid(t *testing.T) {
	isolateXDG(t)
	cfg := DefaultConfig()
	require.NoError(t, resolvePaths(cfg))
	assert.NoError(t, validateConfig(cfg))
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	root := isolateXDG(t)

	m, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, m.Load())

	path := filepath.Join(root, "config", appName, configFileName)
	assert.Equal(t, path, m.ConfigFile())
	assert.FileExists(t, path)

	cfg := m.Get()
	assert.Equal(t, BackendMemory, cfg.ContentView.Backend)
	assert.Equal(t, filepath.Join(root, "state", appName, sessionFileName), cfg.Session.File)
	assert.Equal(t, filepath.Join(root, "data", appName, databaseName), cfg.History.DatabasePath)
	assert.Equal(t, filepath.Join(root, "run", socketName), cfg.IPC.SocketPath)
	assert.Equal(t, 250*time.Millisecond, cfg.SnapshotInterval())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[session]
snapshot_interval_ms = 0
home_url = "https://start.test/"

[content_view]
backend = "CDP"

[window]
theme = "Light"

[filtering]
allow_hosts = ["Example.COM", "example.com", " "]
`), 0o644))

	t.Setenv("CASEMENT_LOG_LEVEL", "debug")
	t.Setenv("CASEMENT_HISTORY_MAX_ENTRIES", "42")

	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 0, cfg.Session.SnapshotIntervalMs)
	assert.Equal(t, "https://start.test/", cfg.Session.HomeURL)
	assert.Equal(t, BackendCDP, cfg.ContentView.Backend)
	assert.Equal(t, ThemeLight, cfg.Window.Theme)
	assert.Equal(t, []string{"example.com"}, cfg.Filtering.AllowHosts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 42, cfg.History.MaxEntries)
	// Untouched sections keep their defaults.
	assert.Equal(t, 10_000, cfg.Session.RestoreTimeoutMs)
}

func TestLoad_InvalidValuesAreAggregated(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[session]
restore_timeout_ms = 0
search_template = "https://search.test/"

[content_view]
backend = "webkit"

[history]
max_entries = 0
`), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)

	err = m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.restore_timeout_ms")
	assert.Contains(t, err.Error(), "session.search_template")
	assert.Contains(t, err.Error(), "content_view.backend")
	assert.Contains(t, err.Error(), "history.max_entries")
}

func TestLoad_MalformedTOML(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[session\n"), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Error(t, m.Load())
}

func TestReload_NotifiesCallbacks(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[filtering]\nenabled = true\n"), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Load())

	var got *Config
	m.OnConfigChange(func(c *Config) { got = c })

	require.NoError(t, os.WriteFile(path, []byte("[filtering]\nenabled = false\n"), 0o644))
	require.NoError(t, m.Reload())
	require.NotNil(t, got)
	assert.False(t, got.Filtering.Enabled)
	assert.False(t, m.Get().Filtering.Enabled)
}

func TestReload_InvalidKeepsPrevious(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nmax_title_width = 30\n"), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Load())

	called := false
	m.OnConfigChange(func(*Config) { called = true })

	require.NoError(t, os.WriteFile(path, []byte("[history]\nmax_entries = -1\n"), 0o644))
	assert.Error(t, m.Reload())
	assert.False(t, called)
	assert.Equal(t, 30, m.Get().Window.MaxTitleWidth)
}

func TestFilterConfig(t *testing.T) {
	root := isolateXDG(t)
	cfg := DefaultConfig()
	cfg.Filtering.BlockHosts = []string{"ads.test"}

	fc, err := cfg.FilterConfig()
	require.NoError(t, err)
	assert.True(t, fc.Enabled)
	assert.Equal(t, []string{"ads.test"}, fc.BlockHosts)
	assert.Equal(t, 24*time.Hour, fc.ListMaxAge)
	assert.Equal(t, filepath.Join(root, "cache", appName, "filters"), fc.CacheDir)
}

func TestCDPFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentView.CDP.ExtraFlags = []string{"--no-sandbox", "--proxy-server=http://p.test:3128", "--", ""}

	assert.Equal(t, map[string]any{
		"no-sandbox":   true,
		"proxy-server": "http://p.test:3128",
	}, cfg.CDPFlags())
}

func TestDevModeUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ENV", "dev")

	dirs, err := GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".dev", appName), dirs.ConfigHome)
	assert.Equal(t, filepath.Join(dir, ".dev", appName, "cache"), dirs.CacheHome)
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"session", "logging", "content_view", "filtering", "history", "window", "ipc"} {
		assert.Contains(t, props, key)
	}
}
