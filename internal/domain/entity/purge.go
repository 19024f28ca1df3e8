package entity

// PurgeTargetType identifies a kind of stored data the purge command removes.
type PurgeTargetType string

const (
	PurgeTargetSession        PurgeTargetType = "session"
	PurgeTargetHistory        PurgeTargetType = "history"
	PurgeTargetLogs           PurgeTargetType = "logs"
	PurgeTargetFilterCache    PurgeTargetType = "filter-cache"
	PurgeTargetBrowserProfile PurgeTargetType = "browser-profile"
	PurgeTargetConfig         PurgeTargetType = "config"
)

// AllPurgeTargetTypes lists every target in display order.
func AllPurgeTargetTypes() []PurgeTargetType {
	return []PurgeTargetType{
		PurgeTargetSession,
		PurgeTargetHistory,
		PurgeTargetLogs,
		PurgeTargetFilterCache,
		PurgeTargetBrowserProfile,
		PurgeTargetConfig,
	}
}

// PurgeTarget is one file or directory that can be removed.
type PurgeTarget struct {
	Type        PurgeTargetType
	Path        string
	Description string
	Exists      bool
	Size        int64
}

// PurgeResult is the outcome of removing one target.
type PurgeResult struct {
	Target  PurgeTarget
	Success bool
	Error   error
}
