package config

import (
	"fmt"
	neturl "net/url"
	"strings"
)

// validateConfig checks every section and reports all problems at once.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateSession(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateContentView(config)...)
	validationErrors = append(validationErrors, validateFiltering(config)...)
	validationErrors = append(validationErrors, validateHistory(config)...)
	validationErrors = append(validationErrors, validateWindow(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateSession(config *Config) []string {
	var validationErrors []string
	if config.Session.SnapshotIntervalMs < 0 {
		validationErrors = append(validationErrors, "session.snapshot_interval_ms must be non-negative")
	}
	if config.Session.RestoreTimeoutMs <= 0 {
		validationErrors = append(validationErrors, "session.restore_timeout_ms must be positive")
	}
	if strings.Count(config.Session.SearchTemplate, "%s") != 1 {
		validationErrors = append(validationErrors, "session.search_template must contain exactly one %s placeholder")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error", config.Logging.Level))
	}
	if config.Logging.MaxSizeMB < 0 || config.Logging.MaxBackups < 0 || config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging rotation limits must be non-negative")
	}
	return validationErrors
}

func validateContentView(config *Config) []string {
	var validationErrors []string
	cv := config.ContentView
	if cv.Backend != BackendMemory && cv.Backend != BackendCDP {
		validationErrors = append(validationErrors,
			fmt.Sprintf("content_view.backend %q must be memory or cdp", cv.Backend))
	}
	if cv.MaxViews < 0 {
		validationErrors = append(validationErrors, "content_view.max_views must be non-negative")
	}
	if cv.LoadDelayMs < 0 {
		validationErrors = append(validationErrors, "content_view.load_delay_ms must be non-negative")
	}
	if cv.Backend == BackendCDP && cv.CDP.RemoteURL != "" {
		u, err := neturl.Parse(cv.CDP.RemoteURL)
		if err != nil || u.Host == "" {
			validationErrors = append(validationErrors, "content_view.cdp.remote_url must be a ws:// or http:// address")
		}
	}
	if cv.CDP.StartTimeoutSeconds < 0 {
		validationErrors = append(validationErrors, "content_view.cdp.start_timeout_seconds must be non-negative")
	}
	return validationErrors
}

func validateFiltering(config *Config) []string {
	var validationErrors []string
	if config.Filtering.ListURL != "" {
		u, err := neturl.Parse(config.Filtering.ListURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			validationErrors = append(validationErrors, "filtering.list_url must be an http(s) URL")
		}
	}
	if config.Filtering.ListMaxAgeHours < 0 {
		validationErrors = append(validationErrors, "filtering.list_max_age_hours must be non-negative")
	}
	for _, h := range append(append([]string(nil), config.Filtering.AllowHosts...), config.Filtering.BlockHosts...) {
		if strings.ContainsAny(h, "/ ") {
			validationErrors = append(validationErrors, fmt.Sprintf("filtering host %q must be a bare host name", h))
		}
	}
	return validationErrors
}

func validateHistory(config *Config) []string {
	if config.History.MaxEntries <= 0 {
		return []string{"history.max_entries must be positive"}
	}
	return nil
}

func validateWindow(config *Config) []string {
	var validationErrors []string
	if config.Window.MaxTitleWidth < 8 {
		validationErrors = append(validationErrors, "window.max_title_width must be at least 8")
	}
	if l := config.Window.Launcher; l != "" && !strings.Contains(l, "{id}") {
		validationErrors = append(validationErrors, "window.launcher must contain the {id} placeholder")
	}
	return validationErrors
}
