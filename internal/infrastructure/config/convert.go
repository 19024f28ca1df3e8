package config

import (
	"strings"
	"time"

	"github.com/bnema/casement/internal/infrastructure/filtering"
)

// FilterConfig converts the filtering section for the request filter.
func (c *Config) FilterConfig() (filtering.Config, error) {
	cacheDir, err := GetFilterCacheDir()
	if err != nil {
		return filtering.Config{}, err
	}
	return filtering.Config{
		Enabled:    c.Filtering.Enabled,
		AllowHosts: append([]string(nil), c.Filtering.AllowHosts...),
		BlockHosts: append([]string(nil), c.Filtering.BlockHosts...),
		ListURL:    c.Filtering.ListURL,
		ListMaxAge: time.Duration(c.Filtering.ListMaxAgeHours) * time.Hour,
		CacheDir:   cacheDir,
	}, nil
}

// SnapshotInterval returns the session write debounce.
func (c *Config) SnapshotInterval() time.Duration {
	return time.Duration(c.Session.SnapshotIntervalMs) * time.Millisecond
}

// RestoreTimeout returns the per-tab restore readiness bound.
func (c *Config) RestoreTimeout() time.Duration {
	return time.Duration(c.Session.RestoreTimeoutMs) * time.Millisecond
}

// CDPFlags turns ExtraFlags into chromedp switches. "--a=b" maps to a:"b"
// and a bare "--a" to a:true.
func (c *Config) CDPFlags() map[string]any {
	flags := make(map[string]any, len(c.ContentView.CDP.ExtraFlags))
	for _, raw := range c.ContentView.CDP.ExtraFlags {
		name, value, hasValue := strings.Cut(strings.TrimLeft(strings.TrimSpace(raw), "-"), "=")
		if name == "" {
			continue
		}
		if hasValue {
			flags[name] = value
		} else {
			flags[name] = true
		}
	}
	return flags
}
