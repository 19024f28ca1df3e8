package controller

import (
	"github.com/bnema/casement/internal/domain/entity"
)

// Op names a controller operation.
type Op string

const (
	OpCreateTab        Op = "create_tab"
	OpActivateTab      Op = "activate_tab"
	OpActivateFallback Op = "activate_fallback"
	OpCloseTab         Op = "close_tab"
	OpCloseAllUnpinned Op = "close_all_unpinned"
	OpDetachTab        Op = "detach_tab"
	OpReattachTab      Op = "reattach_tab"
	OpCloseWindow      Op = "close_window"
	OpSetPinned        Op = "set_pinned"
	OpSetMuted         Op = "set_muted"
	OpSetZoom          Op = "set_zoom"
	OpZoomIn           Op = "zoom_in"
	OpZoomOut          Op = "zoom_out"
	OpResetZoom        Op = "reset_zoom"
	OpNavigate         Op = "navigate"
	OpReload           Op = "reload"
	OpGoBack           Op = "go_back"
	OpGoForward        Op = "go_forward"
	OpSnapshot         Op = "snapshot"
	OpResync           Op = "resync"
	OpList             Op = "list"
	OpPersist          Op = "persist"
	// OpRestore runs outside the loop; see Controller.Restore.
	OpRestore Op = "restore"

	opValidate     Op = "validate"
	opRestoreGuard Op = "restore_guard"
)

// Command is a request to the controller. Only the fields relevant to Op are read.
type Command struct {
	Op       Op              `json:"op"`
	TabID    entity.TabID    `json:"tab_id,omitempty"`
	WindowID entity.WindowID `json:"window_id,omitempty"`
	URL      string          `json:"url,omitempty"`
	Pinned   bool            `json:"pinned,omitempty"`
	Muted    bool            `json:"muted,omitempty"`
	Activate bool            `json:"activate,omitempty"`
	Zoom     float64         `json:"zoom,omitempty"`
	Origin   string          `json:"origin,omitempty"`
	// Source is the window whose surface issued the command. Refusals and
	// stale ids are reported back to it as a snapshot notice.
	Source entity.WindowID `json:"source,omitempty"`
}

// Result is the outcome of a handled command.
type Result struct {
	TabID    entity.TabID             `json:"tab_id,omitempty"`
	WindowID entity.WindowID          `json:"window_id,omitempty"`
	Zoom     float64                  `json:"zoom,omitempty"`
	Snapshot *entity.WindowSnapshot   `json:"snapshot,omitempty"`
	Windows  []*entity.WindowSnapshot `json:"windows,omitempty"`
	Restored int                      `json:"restored,omitempty"`
	Shutdown bool                     `json:"shutdown,omitempty"`
	// Ready is closed once a created tab reports its first load outcome.
	Ready <-chan struct{} `json:"-"`
}
