package entity

import (
	"fmt"
	"time"
)

// TabID uniquely identifies a tab within a controller process.
// IDs are allocated monotonically starting at 1 and never reused.
type TabID uint64

// DefaultTabTitle is shown until the content view reports a title.
const DefaultTabTitle = "New Tab"

// TabState is the lifecycle state of a tab.
type TabState int

const (
	TabCreating TabState = iota
	TabReady
	TabActive
	TabInactive
	TabDetaching
	TabClosing
	TabClosed
)

var tabStateNames = map[TabState]string{
	TabCreating:  "creating",
	TabReady:     "ready",
	TabActive:    "active",
	TabInactive:  "inactive",
	TabDetaching: "detaching",
	TabClosing:   "closing",
	TabClosed:    "closed",
}

func (s TabState) String() string {
	if name, ok := tabStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TabState(%d)", int(s))
}

// allowedTransitions lists, per state, the states a tab may move to.
var allowedTransitions = map[TabState][]TabState{
	TabCreating:  {TabReady, TabClosing},
	TabReady:     {TabActive, TabInactive, TabClosing},
	TabActive:    {TabInactive, TabDetaching, TabClosing},
	TabInactive:  {TabActive, TabDetaching, TabClosing},
	TabDetaching: {TabActive, TabInactive},
	TabClosing:   {TabClosed},
	TabClosed:    nil,
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to TabState) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Tab is the canonical record of one browsing tab.
type Tab struct {
	ID         TabID
	URL        string
	Title      string
	Pinned     bool
	Muted      bool
	Zoom       float64
	WindowID   WindowID
	State      TabState
	LoadError  *LoadError
	Fullscreen bool
	CreatedAt  time.Time
}

// NewTab creates a tab record in the creating state.
func NewTab(id TabID, windowID WindowID, url string) *Tab {
	return &Tab{
		ID:        id,
		URL:       url,
		Title:     DefaultTabTitle,
		Zoom:      ZoomDefault,
		WindowID:  windowID,
		State:     TabCreating,
		CreatedAt: time.Now(),
	}
}

// Transition moves the tab to a new lifecycle state.
// Moving to the current state is a no-op.
func (t *Tab) Transition(to TabState) error {
	if t.State == to {
		return nil
	}
	if !CanTransition(t.State, to) {
		return fmt.Errorf("%w: tab %d %s -> %s", ErrInvalidTransition, t.ID, t.State, to)
	}
	t.State = to
	return nil
}

// IsLive reports whether the tab has finished creating and is not being torn down.
func (t *Tab) IsLive() bool {
	switch t.State {
	case TabReady, TabActive, TabInactive, TabDetaching:
		return true
	default:
		return false
	}
}

// IsClosing reports whether the tab is on its way out.
func (t *Tab) IsClosing() bool {
	return t.State == TabClosing || t.State == TabClosed
}

// SetTitle records a reported title; blank titles fall back to the default.
func (t *Tab) SetTitle(title string) {
	if title == "" {
		title = DefaultTabTitle
	}
	t.Title = title
}

// SetZoom updates the zoom factor, clamping and rounding it.
// Returns true when the stored value changed.
func (t *Tab) SetZoom(factor float64) bool {
	z := ClampZoom(factor)
	if z == t.Zoom {
		return false
	}
	t.Zoom = z
	return true
}

// ZoomIn increases the zoom factor by one step.
func (t *Tab) ZoomIn() bool {
	return t.SetZoom(t.Zoom + ZoomStep)
}

// ZoomOut decreases the zoom factor by one step.
func (t *Tab) ZoomOut() bool {
	return t.SetZoom(t.Zoom - ZoomStep)
}

// ResetZoom restores the default zoom factor.
func (t *Tab) ResetZoom() bool {
	return t.SetZoom(ZoomDefault)
}

// DisplayTitle returns the title, falling back to the URL.
func (t *Tab) DisplayTitle() string {
	if t.Title != "" && t.Title != DefaultTabTitle {
		return t.Title
	}
	if t.URL != "" && t.State != TabCreating {
		return t.URL
	}
	return DefaultTabTitle
}
