package repository

import (
	"context"
	"errors"

	"github.com/bnema/casement/internal/domain/entity"
)

// ErrStoreLocked is returned when another process holds the session store writer lock.
var ErrStoreLocked = errors.New("session store locked by another process")

// SessionStore persists the ordered main-window tab list.
type SessionStore interface {
	// Load returns the stored entries. Unreadable or malformed data yields an
	// empty list and the store heals itself.
	Load(ctx context.Context) ([]entity.SessionEntry, error)

	// Save atomically replaces the stored entries.
	Save(ctx context.Context, entries []entity.SessionEntry) error
}
