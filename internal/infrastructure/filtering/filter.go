// Package filtering decides which network requests content views may make.
package filtering

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/infrastructure/cache"
	"github.com/bnema/casement/internal/logging"
)

// hostCacheSize bounds the per ruleset memo of host verdicts.
const hostCacheSize = 4096

// ruleSet is swapped as a whole on reload so Decide never takes f.mu.
// Verdicts are memoized per ruleSet and die with it.
type ruleSet struct {
	enabled  bool
	allow    hostSet
	block    hostSet
	verdicts port.Cache[string, hostVerdict]
}

type hostVerdict struct {
	allowed   bool
	blockedBy string
}

func (rs *ruleSet) verdict(host string) hostVerdict {
	if v, ok := rs.verdicts.Get(host); ok {
		return v
	}
	var v hostVerdict
	if _, ok := rs.allow.match(host); ok {
		v.allowed = true
	} else if matched, ok := rs.block.match(host); ok {
		v.blockedBy = matched
	}
	rs.verdicts.Set(host, v)
	return v
}

// Filter implements port.RequestFilter with host based allow and block
// rules and an optional downloaded block list.
type Filter struct {
	rules  atomic.Pointer[ruleSet]
	status atomic.Value // FilterStatus
	bypass *BypassRegistry

	mu       sync.Mutex
	cfg      Config
	listed   []string
	onStatus func(FilterStatus)
}

var _ port.RequestFilter = (*Filter)(nil)

// New creates a Filter from cfg. The remote list, if any, is loaded by
// LoadList.
func New(cfg Config) *Filter {
	f := &Filter{bypass: NewBypassRegistry()}
	f.status.Store(FilterStatus{State: StateUninitialized})
	f.Apply(cfg)
	return f
}

// Decide reports whether a request for rawURL must be blocked.
func (f *Filter) Decide(rawURL, resourceType string) port.Decision {
	rs := f.rules.Load()
	if rs == nil || !rs.enabled {
		return port.Decision{}
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return port.Decision{}
	}
	v := rs.verdict(normalizeHost(u.Hostname()))

	if v.allowed {
		return port.Decision{}
	}
	if resourceType == "Document" && f.bypass.Consume(rawURL) {
		return port.Decision{}
	}
	if v.blockedBy != "" {
		return port.Decision{Block: true, Reason: v.blockedBy}
	}
	return port.Decision{}
}

// AllowOnce lets the next document load of rawURL through.
func (f *Filter) AllowOnce(rawURL string) {
	f.bypass.AllowOnce(rawURL)
}

// Apply swaps in a new configuration. Entries from the downloaded list are
// kept until the next LoadList.
func (f *Filter) Apply(cfg Config) {
	f.mu.Lock()
	if len(cfg.AllowHosts) == 0 {
		cfg.AllowHosts = DefaultAllowHosts
	}
	if cfg.ListURL != f.cfg.ListURL {
		f.listed = nil
	}
	f.cfg = cfg
	rs := f.buildLocked()
	f.mu.Unlock()

	f.rules.Store(rs)
	if !cfg.Enabled {
		f.setStatus(FilterStatus{State: StateDisabled})
		return
	}
	f.setStatus(f.activeStatus(rs))
}

func (f *Filter) buildLocked() *ruleSet {
	return &ruleSet{
		enabled:  f.cfg.Enabled,
		allow:    newHostSet(f.cfg.AllowHosts),
		block:    newHostSet(f.cfg.BlockHosts, f.listed),
		verdicts: cache.NewLRU[string, hostVerdict](hostCacheSize),
	}
}

// LoadList reads the configured block list, downloading it when the cached
// copy is missing or stale. A failed download falls back to a stale cache.
func (f *Filter) LoadList(ctx context.Context) error {
	log := logging.FromContext(ctx).With().Str("component", "filter").Logger()

	f.mu.Lock()
	cfg := f.cfg
	f.mu.Unlock()
	if !cfg.Enabled || cfg.ListURL == "" {
		return nil
	}
	if cfg.CacheDir == "" {
		return errors.New("filter cache dir not configured")
	}

	maxAge := cfg.ListMaxAge
	if maxAge <= 0 {
		maxAge = CacheMaxAge
	}

	d := NewDownloader(cfg.ListURL, cfg.CacheDir)
	path := d.CachedPath()
	if !d.IsFresh(maxAge) {
		f.setStatus(FilterStatus{State: StateLoading, Message: "downloading block list"})
		if _, err := d.Fetch(ctx); err != nil {
			if _, statErr := os.Stat(path); statErr != nil {
				f.setStatus(FilterStatus{State: StateError, Message: err.Error()})
				return err
			}
			log.Warn().Err(err).Msg("block list download failed, using stale cache")
		}
	}

	file, err := os.Open(path)
	if err != nil {
		f.setStatus(FilterStatus{State: StateError, Message: err.Error()})
		return fmt.Errorf("open block list: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Msg("failed to close block list")
		}
	}()

	hosts, err := ParseHostList(file)
	if err != nil {
		f.setStatus(FilterStatus{State: StateError, Message: err.Error()})
		return err
	}

	f.mu.Lock()
	if f.cfg.ListURL != cfg.ListURL {
		// Reconfigured while loading.
		f.mu.Unlock()
		return nil
	}
	f.listed = hosts
	rs := f.buildLocked()
	f.mu.Unlock()

	f.rules.Store(rs)
	st := f.activeStatus(rs)
	st.UpdatedAt = time.Now()
	f.setStatus(st)
	log.Info().Int("hosts", len(hosts)).Msg("block list loaded")
	return nil
}

// Status returns the last reported status.
func (f *Filter) Status() FilterStatus {
	return f.status.Load().(FilterStatus)
}

// SetStatusCallback registers a function called on every status change.
func (f *Filter) SetStatusCallback(fn func(FilterStatus)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onStatus = fn
}

func (f *Filter) activeStatus(rs *ruleSet) FilterStatus {
	return FilterStatus{
		State:      StateActive,
		BlockRules: len(rs.block),
		AllowRules: len(rs.allow),
	}
}

func (f *Filter) setStatus(st FilterStatus) {
	f.status.Store(st)
	f.mu.Lock()
	fn := f.onStatus
	f.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
