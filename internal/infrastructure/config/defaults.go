package config

import (
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/url"
	"github.com/bnema/casement/internal/infrastructure/filtering"
)

const (
	defaultRestoreTimeoutMs  = 10_000
	defaultSnapshotInterval  = 250
	defaultLogMaxSizeMB      = 10
	defaultLogMaxBackups     = 3
	defaultLogMaxAgeDays     = 7
	defaultListMaxAgeHours   = 24
	defaultMaxTitleWidth     = 40
	defaultCDPStartTimeout   = 20
	defaultFilterListEnabled = true
)

// DefaultConfig returns the default configuration. Path settings stay empty
// and are resolved from the XDG directories on load.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			SnapshotIntervalMs: defaultSnapshotInterval,
			RestoreTimeoutMs:   defaultRestoreTimeoutMs,
			HomeURL:            url.HomeURL,
			SearchTemplate:     url.DefaultSearchTemplate,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     LogFormatConsole,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
			Compress:   true,
		},
		ContentView: ContentViewConfig{
			Backend: BackendMemory,
			CDP: CDPConfig{
				Headless:            true,
				ExtraFlags:          []string{},
				StartTimeoutSeconds: defaultCDPStartTimeout,
			},
		},
		Filtering: FilteringConfig{
			Enabled:         defaultFilterListEnabled,
			AllowHosts:      append([]string(nil), filtering.DefaultAllowHosts...),
			BlockHosts:      []string{},
			ListMaxAgeHours: defaultListMaxAgeHours,
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: entity.DefaultHistoryLimit,
		},
		Window: WindowConfig{
			Theme:         ThemeDark,
			MaxTitleWidth: defaultMaxTitleWidth,
		},
	}
}
