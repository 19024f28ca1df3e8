package filtering

import "time"

// FilterState represents the current state of the request filter.
type FilterState string

const (
	// StateUninitialized means no rules have been loaded yet.
	StateUninitialized FilterState = "uninitialized"
	// StateLoading means the remote block list is being fetched.
	StateLoading FilterState = "loading"
	// StateActive means rules are loaded and consulted.
	StateActive FilterState = "active"
	// StateDisabled means filtering is disabled by configuration.
	StateDisabled FilterState = "disabled"
	// StateError means the remote block list could not be loaded.
	StateError FilterState = "error"
)

// FilterStatus is reported to status callbacks and the ctl status command.
type FilterStatus struct {
	State      FilterState `json:"state"`
	Message    string      `json:"message,omitempty"`
	BlockRules int         `json:"block_rules"`
	AllowRules int         `json:"allow_rules"`
	UpdatedAt  time.Time   `json:"updated_at,omitzero"`
}

// Config selects what the filter blocks.
type Config struct {
	Enabled bool
	// AllowHosts bypass every rule, including their subdomains.
	AllowHosts []string
	// BlockHosts are blocked together with their subdomains.
	BlockHosts []string
	// ListURL points at a hosts-style or domain-per-line block list.
	ListURL string
	// ListMaxAge is how long a downloaded list stays fresh.
	ListMaxAge time.Duration
	// CacheDir stores the downloaded list.
	CacheDir string
}

// DefaultAllowHosts keeps video sites working with aggressive lists.
var DefaultAllowHosts = []string{"youtube.com", "www.youtube.com"}

// CacheMaxAge is the default freshness of a downloaded block list.
const CacheMaxAge = 24 * time.Hour
