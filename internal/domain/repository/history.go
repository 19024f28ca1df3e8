package repository

import (
	"context"

	"github.com/bnema/casement/internal/domain/entity"
)

// HistoryRepository defines operations for browsing history persistence.
type HistoryRepository interface {
	// Append records a visit.
	Append(ctx context.Context, entry *entity.HistoryEntry) error

	// GetRecent retrieves the most recent entries, newest first.
	GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error)

	// Trim deletes everything but the newest keep entries.
	Trim(ctx context.Context, keep int) (int64, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)

	// DeleteAll removes all history entries.
	DeleteAll(ctx context.Context) error
}

// BookmarkRepository defines operations for bookmark persistence.
type BookmarkRepository interface {
	// Save creates a bookmark or updates the title of an existing URL.
	Save(ctx context.Context, bookmark *entity.Bookmark) error

	// GetAll retrieves all bookmarks, oldest first.
	GetAll(ctx context.Context) ([]*entity.Bookmark, error)

	// Delete removes a bookmark by URL.
	Delete(ctx context.Context, url string) error
}
