package entity

import "time"

// DefaultHistoryLimit is the number of history rows retained by default.
const DefaultHistoryLimit = 500

// HistoryEntry represents a visited URL in browsing history.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	VisitedAt time.Time `json:"visited_at"`
}

// NewHistoryEntry creates a new history entry for a URL.
func NewHistoryEntry(url, title string) *HistoryEntry {
	return &HistoryEntry{
		URL:       url,
		Title:     title,
		VisitedAt: time.Now(),
	}
}

// Bookmark is a saved URL.
type Bookmark struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
