package port

import (
	"context"

	"github.com/bnema/casement/internal/domain/entity"
)

// WindowHost materialises detached window surfaces.
type WindowHost interface {
	// OpenWindow brings up a surface for a newly detached window.
	OpenWindow(ctx context.Context, windowID entity.WindowID) error
	// CloseWindow tears down the surface of a destroyed window.
	CloseWindow(ctx context.Context, windowID entity.WindowID) error
}

// SnapshotPublisher delivers window snapshots to observing surfaces.
type SnapshotPublisher interface {
	// Publish pushes a snapshot. Implementations must not block the caller.
	Publish(snapshot *entity.WindowSnapshot)
	// Notice delivers a transient message to surfaces of a window.
	Notice(windowID entity.WindowID, message string)
	// WindowClosed tells subscribers of a window that it is gone.
	WindowClosed(windowID entity.WindowID)
}
