package port

import (
	"context"

	"github.com/bnema/casement/internal/domain/entity"
)

// SessionWriter accepts the main-window tab list for persistence.
type SessionWriter interface {
	// Write hands entries over for storage. Synchronous writers return the
	// store error; deferred writers report failures through their result handler.
	Write(ctx context.Context, entries []entity.SessionEntry) error
}

// CreateTabOptions configures a new tab.
type CreateTabOptions struct {
	WindowID entity.WindowID
	Pinned   bool
	Activate bool
	// Origin is a free-form label for logs (restore, ipc, keybinding...).
	Origin string
}

// CreatedTab is returned by tab creation. Ready is closed once the content
// view reports its first load outcome.
type CreatedTab struct {
	ID    entity.TabID
	Ready <-chan struct{}
}

// TabOpener is the subset of the controller used by session restore.
type TabOpener interface {
	CreateTab(ctx context.Context, url string, opts CreateTabOptions) (*CreatedTab, error)
	ActivateTab(ctx context.Context, id entity.TabID) error
}
