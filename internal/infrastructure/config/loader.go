package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const envPrefix = "CASEMENT"

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	path      string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a configuration manager. An empty path uses
// $XDG_CONFIG_HOME/casement/config.toml.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config file: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	// CASEMENT_SESSION_FILE, CASEMENT_CONTENT_VIEW_BACKEND, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The logging package reads these before config is loaded.
	if err := v.BindEnv("logging.level", envPrefix+"_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind %s_LOG_LEVEL: %w", envPrefix, err)
	}
	if err := v.BindEnv("logging.format", envPrefix+"_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind %s_LOG_FORMAT: %w", envPrefix, err)
	}

	return &Manager{
		viper: v,
		path:  path,
	}, nil
}

// Load reads the config file, creating it from defaults when absent, and
// applies environment overrides.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.path, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.path,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// decode unmarshals, fills paths, normalizes and validates.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.path,
			err,
		)
	}
	if err := resolvePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.ContentView.Backend = Backend(strings.ToLower(strings.TrimSpace(string(config.ContentView.Backend))))
	if config.ContentView.Backend == "" {
		config.ContentView.Backend = BackendMemory
	}

	switch LogFormat(strings.ToLower(string(config.Logging.Format))) {
	case LogFormatJSON:
		config.Logging.Format = LogFormatJSON
	default:
		config.Logging.Format = LogFormatConsole
	}

	switch Theme(strings.ToLower(string(config.Window.Theme))) {
	case ThemeLight:
		config.Window.Theme = ThemeLight
	default:
		config.Window.Theme = ThemeDark
	}

	config.Window.Launcher = strings.TrimSpace(config.Window.Launcher)
	config.Filtering.AllowHosts = normalizeHosts(config.Filtering.AllowHosts)
	config.Filtering.BlockHosts = normalizeHosts(config.Filtering.BlockHosts)
}

func normalizeHosts(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	seen := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	return &configCopy
}

// ConfigFile returns the path of the configuration file.
func (m *Manager) ConfigFile() string {
	return m.path
}

// createDefaultConfig writes the defaults to the config file.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.path), dirPerm); err != nil {
		return err
	}
	if err := m.viper.SafeWriteConfigAs(m.path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults registers every default with viper so env overrides and
// partial files work.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setSessionDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.setContentViewDefaults(defaults)
	m.setFilteringDefaults(defaults)
	m.setHistoryDefaults(defaults)
	m.setWindowDefaults(defaults)
	m.viper.SetDefault("ipc.socket_path", defaults.IPC.SocketPath)
}

func (m *Manager) setSessionDefaults(defaults *Config) {
	m.viper.SetDefault("session.file", defaults.Session.File)
	m.viper.SetDefault("session.snapshot_interval_ms", defaults.Session.SnapshotIntervalMs)
	m.viper.SetDefault("session.restore_timeout_ms", defaults.Session.RestoreTimeoutMs)
	m.viper.SetDefault("session.home_url", defaults.Session.HomeURL)
	m.viper.SetDefault("session.search_template", defaults.Session.SearchTemplate)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", string(defaults.Logging.Format))
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setContentViewDefaults(defaults *Config) {
	cv := defaults.ContentView
	m.viper.SetDefault("content_view.backend", string(cv.Backend))
	m.viper.SetDefault("content_view.max_views", cv.MaxViews)
	m.viper.SetDefault("content_view.load_delay_ms", cv.LoadDelayMs)
	m.viper.SetDefault("content_view.cdp.remote_url", cv.CDP.RemoteURL)
	m.viper.SetDefault("content_view.cdp.exec_path", cv.CDP.ExecPath)
	m.viper.SetDefault("content_view.cdp.user_data_dir", cv.CDP.UserDataDir)
	m.viper.SetDefault("content_view.cdp.headless", cv.CDP.Headless)
	m.viper.SetDefault("content_view.cdp.extra_flags", cv.CDP.ExtraFlags)
	m.viper.SetDefault("content_view.cdp.start_timeout_seconds", cv.CDP.StartTimeoutSeconds)
}

func (m *Manager) setFilteringDefaults(defaults *Config) {
	m.viper.SetDefault("filtering.enabled", defaults.Filtering.Enabled)
	m.viper.SetDefault("filtering.allow_hosts", defaults.Filtering.AllowHosts)
	m.viper.SetDefault("filtering.block_hosts", defaults.Filtering.BlockHosts)
	m.viper.SetDefault("filtering.list_url", defaults.Filtering.ListURL)
	m.viper.SetDefault("filtering.list_max_age_hours", defaults.Filtering.ListMaxAgeHours)
}

func (m *Manager) setHistoryDefaults(defaults *Config) {
	m.viper.SetDefault("history.enabled", defaults.History.Enabled)
	m.viper.SetDefault("history.max_entries", defaults.History.MaxEntries)
	m.viper.SetDefault("history.database_path", defaults.History.DatabasePath)
}

func (m *Manager) setWindowDefaults(defaults *Config) {
	m.viper.SetDefault("window.launcher", defaults.Window.Launcher)
	m.viper.SetDefault("window.theme", string(defaults.Window.Theme))
	m.viper.SetDefault("window.max_title_width", defaults.Window.MaxTitleWidth)
}
