package config

// Config represents the complete configuration for casement.
type Config struct {
	// Session controls session persistence and restoration.
	Session SessionConfig `mapstructure:"session" yaml:"session" toml:"session" json:"session"`
	// Logging controls log level, format and the optional rotated log file.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	// ContentView selects and tunes the content view backend.
	ContentView ContentViewConfig `mapstructure:"content_view" yaml:"content_view" toml:"content_view" json:"content_view"`
	// Filtering controls network request blocking.
	Filtering FilteringConfig `mapstructure:"filtering" yaml:"filtering" toml:"filtering" json:"filtering"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history" toml:"history" json:"history"`
	// Window controls detached window surfaces and the tab switcher.
	Window WindowConfig `mapstructure:"window" yaml:"window" toml:"window" json:"window"`
	IPC    IPCConfig    `mapstructure:"ipc" yaml:"ipc" toml:"ipc" json:"ipc"`
}

// SessionConfig controls session persistence and restoration.
type SessionConfig struct {
	// File is the JSON tab list. Empty means $XDG_STATE_HOME/casement/session.json.
	File string `mapstructure:"file" yaml:"file" toml:"file" json:"file"`
	// SnapshotIntervalMs debounces session writes. 0 writes synchronously.
	SnapshotIntervalMs int `mapstructure:"snapshot_interval_ms" yaml:"snapshot_interval_ms" toml:"snapshot_interval_ms" json:"snapshot_interval_ms" jsonschema:"minimum=0"`
	// RestoreTimeoutMs bounds the wait for each restored tab to become ready.
	RestoreTimeoutMs int `mapstructure:"restore_timeout_ms" yaml:"restore_timeout_ms" toml:"restore_timeout_ms" json:"restore_timeout_ms" jsonschema:"minimum=1"`
	// HomeURL is loaded by new tabs.
	HomeURL string `mapstructure:"home_url" yaml:"home_url" toml:"home_url" json:"home_url"`
	// SearchTemplate turns non-URL input into a search; must contain %s.
	SearchTemplate string `mapstructure:"search_template" yaml:"search_template" toml:"search_template" json:"search_template"`
}

// LogFormat selects the stderr log encoding.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string    `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format LogFormat `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// EnableFileLog also writes JSON logs to a rotated file under LogDir.
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays    int    `mapstructure:"max_age_days" yaml:"max_age_days" toml:"max_age_days" json:"max_age_days"`
	Compress      bool   `mapstructure:"compress" yaml:"compress" toml:"compress" json:"compress"`
}

// Backend names a content view implementation.
type Backend string

const (
	// BackendMemory simulates pages in-process.
	BackendMemory Backend = "memory"
	// BackendCDP drives a Chrome tab per view over the DevTools protocol.
	BackendCDP Backend = "cdp"
)

// ContentViewConfig selects and tunes the content view backend.
type ContentViewConfig struct {
	Backend Backend `mapstructure:"backend" yaml:"backend" toml:"backend" json:"backend" jsonschema:"enum=memory,enum=cdp"`
	// MaxViews caps live views; 0 means unlimited.
	MaxViews int `mapstructure:"max_views" yaml:"max_views" toml:"max_views" json:"max_views"`
	// LoadDelayMs simulates network latency in the memory backend.
	LoadDelayMs int       `mapstructure:"load_delay_ms" yaml:"load_delay_ms" toml:"load_delay_ms" json:"load_delay_ms"`
	CDP         CDPConfig `mapstructure:"cdp" yaml:"cdp" toml:"cdp" json:"cdp"`
}

// CDPConfig configures the Chrome backend.
type CDPConfig struct {
	// RemoteURL attaches to a running browser (ws:// or http://host:port)
	// instead of starting one.
	RemoteURL   string `mapstructure:"remote_url" yaml:"remote_url" toml:"remote_url" json:"remote_url"`
	ExecPath    string `mapstructure:"exec_path" yaml:"exec_path" toml:"exec_path" json:"exec_path"`
	UserDataDir string `mapstructure:"user_data_dir" yaml:"user_data_dir" toml:"user_data_dir" json:"user_data_dir"`
	Headless    bool   `mapstructure:"headless" yaml:"headless" toml:"headless" json:"headless"`
	// ExtraFlags are passed to Chrome as --flag or --flag=value.
	ExtraFlags          []string `mapstructure:"extra_flags" yaml:"extra_flags" toml:"extra_flags" json:"extra_flags"`
	StartTimeoutSeconds int      `mapstructure:"start_timeout_seconds" yaml:"start_timeout_seconds" toml:"start_timeout_seconds" json:"start_timeout_seconds"`
}

// FilteringConfig controls network request blocking.
type FilteringConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	// AllowHosts are never blocked, including subdomains.
	AllowHosts []string `mapstructure:"allow_hosts" yaml:"allow_hosts" toml:"allow_hosts" json:"allow_hosts"`
	// BlockHosts are blocked together with their subdomains.
	BlockHosts []string `mapstructure:"block_hosts" yaml:"block_hosts" toml:"block_hosts" json:"block_hosts"`
	// ListURL is a hosts-file or domain-per-line block list fetched at startup.
	ListURL         string `mapstructure:"list_url" yaml:"list_url" toml:"list_url" json:"list_url"`
	ListMaxAgeHours int    `mapstructure:"list_max_age_hours" yaml:"list_max_age_hours" toml:"list_max_age_hours" json:"list_max_age_hours"`
}

// HistoryConfig controls the visit history sink.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	// MaxEntries is the number of visits retained.
	MaxEntries int `mapstructure:"max_entries" yaml:"max_entries" toml:"max_entries" json:"max_entries" jsonschema:"minimum=1"`
	// DatabasePath defaults to $XDG_DATA_HOME/casement/history.sqlite.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path" toml:"database_path" json:"database_path"`
}

// Theme selects the tab switcher palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// WindowConfig controls detached window surfaces and the tab switcher.
type WindowConfig struct {
	// Launcher starts a surface for a detached window. {exe}, {id} and
	// {socket} are substituted. Empty only logs how to attach one.
	Launcher string `mapstructure:"launcher" yaml:"launcher" toml:"launcher" json:"launcher"`
	Theme    Theme  `mapstructure:"theme" yaml:"theme" toml:"theme" json:"theme" jsonschema:"enum=dark,enum=light"`
	// MaxTitleWidth truncates tab titles in the switcher.
	MaxTitleWidth int `mapstructure:"max_title_width" yaml:"max_title_width" toml:"max_title_width" json:"max_title_width"`
}

// IPCConfig controls the controller socket.
type IPCConfig struct {
	// SocketPath defaults to $XDG_RUNTIME_DIR/casement.sock.
	SocketPath string `mapstructure:"socket_path" yaml:"socket_path" toml:"socket_path" json:"socket_path"`
}
