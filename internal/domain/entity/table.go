package entity

import (
	"errors"
	"fmt"
	"sort"
)

// Table is the canonical set of tabs and windows. It is owned by a single
// goroutine and performs no locking.
type Table struct {
	tabs         map[TabID]*Tab
	windows      map[WindowID]*Window
	order        []WindowID
	lastTabID    TabID
	lastWindowID WindowID
}

// NewTable creates a table holding only the (empty) main window.
func NewTable() *Table {
	t := &Table{
		tabs:    make(map[TabID]*Tab),
		windows: make(map[WindowID]*Window),
	}
	t.lastWindowID = MainWindowID
	t.windows[MainWindowID] = NewWindow(MainWindowID)
	t.order = []WindowID{MainWindowID}
	return t
}

// NextTabID allocates a new tab id.
func (t *Table) NextTabID() TabID {
	t.lastTabID++
	return t.lastTabID
}

// Main returns the main window.
func (t *Table) Main() *Window {
	return t.windows[MainWindowID]
}

// Tab looks up a tab record.
func (t *Table) Tab(id TabID) (*Tab, error) {
	tab, ok := t.tabs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTab, id)
	}
	return tab, nil
}

// Window looks up a window record.
func (t *Table) Window(id WindowID) (*Window, error) {
	w, ok := t.windows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWindow, id)
	}
	return w, nil
}

// Windows returns every open window in creation order, main first.
func (t *Table) Windows() []*Window {
	out := make([]*Window, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.windows[id])
	}
	return out
}

// DetachedCount returns the number of open non-main windows.
func (t *Table) DetachedCount() int {
	return len(t.order) - 1
}

// Len returns the number of tabs across all windows.
func (t *Table) Len() int {
	return len(t.tabs)
}

// TabsIn returns the tabs of a window in strip order.
func (t *Table) TabsIn(windowID WindowID) []*Tab {
	w, ok := t.windows[windowID]
	if !ok {
		return nil
	}
	out := make([]*Tab, 0, len(w.TabIDs))
	for _, id := range w.TabIDs {
		out = append(out, t.tabs[id])
	}
	return out
}

// OpenWindow allocates a new detached window.
func (t *Table) OpenWindow() *Window {
	t.lastWindowID++
	w := NewWindow(t.lastWindowID)
	t.windows[w.ID] = w
	t.order = append(t.order, w.ID)
	return w
}

// CloseWindow removes an empty detached window.
func (t *Table) CloseWindow(id WindowID) error {
	w, err := t.Window(id)
	if err != nil {
		return err
	}
	if w.IsMain {
		return fmt.Errorf("close window %d: %w", id, ErrMainWindowRequired)
	}
	if !w.IsEmpty() {
		return fmt.Errorf("close window %d: still holds %d tabs", id, w.Len())
	}
	delete(t.windows, id)
	for i, wid := range t.order {
		if wid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Insert adds a tab record at the end of its window's strip.
func (t *Table) Insert(tab *Tab) error {
	if _, exists := t.tabs[tab.ID]; exists {
		return fmt.Errorf("insert tab %d: already present", tab.ID)
	}
	w, err := t.Window(tab.WindowID)
	if err != nil {
		return err
	}
	t.tabs[tab.ID] = tab
	w.append(tab.ID)
	return nil
}

// Remove drops a tab record. When the tab was active in its window, the
// returned successor is the tab that should be activated next (0 if none).
func (t *Table) Remove(id TabID) (WindowID, TabID, error) {
	tab, err := t.Tab(id)
	if err != nil {
		return 0, 0, err
	}
	w := t.windows[tab.WindowID]
	successor, _ := w.remove(id)
	delete(t.tabs, id)
	return w.ID, successor, nil
}

// Move transfers a tab to the end of another window's strip in one step.
// The returned successor belongs to the origin window (see Remove).
func (t *Table) Move(id TabID, to WindowID) (TabID, error) {
	tab, err := t.Tab(id)
	if err != nil {
		return 0, err
	}
	dst, err := t.Window(to)
	if err != nil {
		return 0, err
	}
	if tab.WindowID == to {
		return 0, nil
	}
	src := t.windows[tab.WindowID]
	successor, _ := src.remove(id)
	dst.append(id)
	tab.WindowID = to
	return successor, nil
}

// Activate makes a tab the focused tab of its window. The previously active
// tab becomes inactive. Tabs still creating keep their state and become
// active once ready.
func (t *Table) Activate(id TabID) error {
	tab, err := t.Tab(id)
	if err != nil {
		return err
	}
	if tab.IsClosing() {
		return fmt.Errorf("activate tab %d: %w", id, ErrUnknownTab)
	}
	w := t.windows[tab.WindowID]
	if prevID := w.ActiveTabID; prevID != 0 && prevID != id {
		if prev, ok := t.tabs[prevID]; ok && prev.State == TabActive {
			if err := prev.Transition(TabInactive); err != nil {
				return err
			}
		}
	}
	w.ActiveTabID = id
	switch tab.State {
	case TabReady, TabInactive, TabDetaching:
		return tab.Transition(TabActive)
	}
	return nil
}

// Settle moves a tab out of ready or detaching into active or inactive,
// depending on whether its window focuses it.
func (t *Table) Settle(id TabID) error {
	tab, err := t.Tab(id)
	if err != nil {
		return err
	}
	w := t.windows[tab.WindowID]
	target := TabInactive
	if w.ActiveTabID == id {
		target = TabActive
	}
	return tab.Transition(target)
}

// MainHasDetachedWindows reports whether the main window is blocked from closing.
func (t *Table) MainHasDetachedWindows() bool {
	return t.DetachedCount() > 0
}

// Validate checks that tab ownership and window strips agree.
func (t *Table) Validate() error {
	var errs []error

	main, ok := t.windows[MainWindowID]
	if !ok || !main.IsMain {
		errs = append(errs, errors.New("main window missing"))
	}

	seen := make(map[TabID]WindowID, len(t.tabs))
	for _, w := range t.Windows() {
		if w.IsMain != (w.ID == MainWindowID) {
			errs = append(errs, fmt.Errorf("window %d: main flag mismatch", w.ID))
		}
		activeCount := 0
		for _, id := range w.TabIDs {
			if other, dup := seen[id]; dup {
				errs = append(errs, fmt.Errorf("tab %d listed in windows %d and %d", id, other, w.ID))
				continue
			}
			seen[id] = w.ID
			tab, ok := t.tabs[id]
			if !ok {
				errs = append(errs, fmt.Errorf("window %d lists unknown tab %d", w.ID, id))
				continue
			}
			if tab.WindowID != w.ID {
				errs = append(errs, fmt.Errorf("tab %d owned by window %d but listed in %d", id, tab.WindowID, w.ID))
			}
			if tab.State == TabActive {
				activeCount++
				if w.ActiveTabID != id {
					errs = append(errs, fmt.Errorf("tab %d active but window %d focuses %d", id, w.ID, w.ActiveTabID))
				}
			}
		}
		if activeCount > 1 {
			errs = append(errs, fmt.Errorf("window %d has %d active tabs", w.ID, activeCount))
		}
		if w.ActiveTabID != 0 && !w.Contains(w.ActiveTabID) {
			errs = append(errs, fmt.Errorf("window %d focuses foreign tab %d", w.ID, w.ActiveTabID))
		}
	}

	ids := make([]TabID, 0, len(t.tabs))
	for id := range t.tabs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			errs = append(errs, fmt.Errorf("tab %d not listed in any window", id))
		}
	}

	return errors.Join(errs...)
}
