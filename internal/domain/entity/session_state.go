package entity

// SessionEntry is one persisted main-window tab. Detached windows are not persisted.
type SessionEntry struct {
	URL    string `json:"url" yaml:"url"`
	Pinned bool   `json:"pinned" yaml:"pinned"`
}

// TabView is the read-only projection of a tab pushed to window surfaces.
type TabView struct {
	ID           TabID   `json:"id"`
	URL          string  `json:"url"`
	Title        string  `json:"title"`
	Pinned       bool    `json:"pinned"`
	Muted        bool    `json:"muted"`
	Zoom         float64 `json:"zoom"`
	Active       bool    `json:"active"`
	State        string  `json:"state"`
	Loading      bool    `json:"loading"`
	LoadError    string  `json:"load_error,omitempty"`
	Fullscreen   bool    `json:"fullscreen,omitempty"`
	CanGoBack    bool    `json:"can_go_back"`
	CanGoForward bool    `json:"can_go_forward"`
}

// WindowSnapshot is an immutable view of one window. Surfaces replace their
// whole mirror with each snapshot they receive.
type WindowSnapshot struct {
	WindowID      WindowID  `json:"window_id"`
	IsMain        bool      `json:"is_main"`
	Tabs          []TabView `json:"tabs"`
	ActiveTabID   TabID     `json:"active_tab_id"`
	DetachedCount int       `json:"detached_count"`
	Degraded      bool      `json:"degraded,omitempty"`
	Notice        string    `json:"notice,omitempty"`
	Seq           uint64    `json:"seq"`
}

// ActiveTab returns the focused tab view, if any.
func (s *WindowSnapshot) ActiveTab() (TabView, bool) {
	for _, tv := range s.Tabs {
		if tv.ID == s.ActiveTabID {
			return tv, true
		}
	}
	return TabView{}, false
}

// NavigationLookup reports back/forward capability for a tab.
type NavigationLookup func(TabID) (canGoBack, canGoForward bool)

// SnapshotWindow builds the projection of a window. The returned value
// shares no memory with the table.
func (t *Table) SnapshotWindow(id WindowID, nav NavigationLookup) (*WindowSnapshot, error) {
	w, err := t.Window(id)
	if err != nil {
		return nil, err
	}
	snap := &WindowSnapshot{
		WindowID:      w.ID,
		IsMain:        w.IsMain,
		ActiveTabID:   w.ActiveTabID,
		DetachedCount: t.DetachedCount(),
		Tabs:          make([]TabView, 0, w.Len()),
	}
	for _, tab := range t.TabsIn(id) {
		tv := TabView{
			ID:         tab.ID,
			URL:        tab.URL,
			Title:      tab.DisplayTitle(),
			Pinned:     tab.Pinned,
			Muted:      tab.Muted,
			Zoom:       tab.Zoom,
			Active:     tab.ID == w.ActiveTabID,
			State:      tab.State.String(),
			Loading:    tab.State == TabCreating,
			Fullscreen: tab.Fullscreen,
		}
		if tab.LoadError != nil {
			tv.LoadError = tab.LoadError.Error()
		}
		if nav != nil {
			tv.CanGoBack, tv.CanGoForward = nav(tab.ID)
		}
		snap.Tabs = append(snap.Tabs, tv)
	}
	return snap, nil
}
