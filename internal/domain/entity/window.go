package entity

import "time"

// WindowID uniquely identifies a window surface. IDs are monotonic.
type WindowID uint64

// MainWindowID is the id of the main window, which exists for the whole process.
const MainWindowID WindowID = 1

// Window is the record of one window surface: an ordered tab strip with one active tab.
type Window struct {
	ID          WindowID
	IsMain      bool
	TabIDs      []TabID
	ActiveTabID TabID
	CreatedAt   time.Time
}

// NewWindow creates an empty window record.
func NewWindow(id WindowID) *Window {
	return &Window{
		ID:        id,
		IsMain:    id == MainWindowID,
		CreatedAt: time.Now(),
	}
}

// Len returns the number of tabs in the window.
func (w *Window) Len() int {
	return len(w.TabIDs)
}

// IsEmpty reports whether the window holds no tabs.
func (w *Window) IsEmpty() bool {
	return len(w.TabIDs) == 0
}

// IndexOf returns the position of a tab, or -1.
func (w *Window) IndexOf(id TabID) int {
	for i, tid := range w.TabIDs {
		if tid == id {
			return i
		}
	}
	return -1
}

// Contains reports whether the tab belongs to the window.
func (w *Window) Contains(id TabID) bool {
	return w.IndexOf(id) >= 0
}

// First returns the first tab id, or 0 for an empty window.
func (w *Window) First() TabID {
	if len(w.TabIDs) == 0 {
		return 0
	}
	return w.TabIDs[0]
}

func (w *Window) append(id TabID) {
	w.TabIDs = append(w.TabIDs, id)
}

// remove drops a tab from the strip and returns the tab that should take
// focus if the removed one was active: the tab that followed it, else the
// one before it. Returns 0 when nothing remains or the tab was not active.
func (w *Window) remove(id TabID) (successor TabID, removed bool) {
	idx := w.IndexOf(id)
	if idx < 0 {
		return 0, false
	}
	w.TabIDs = append(w.TabIDs[:idx], w.TabIDs[idx+1:]...)
	if w.ActiveTabID != id {
		return 0, true
	}
	w.ActiveTabID = 0
	switch {
	case idx < len(w.TabIDs):
		return w.TabIDs[idx], true
	case idx > 0:
		return w.TabIDs[idx-1], true
	default:
		return 0, true
	}
}
