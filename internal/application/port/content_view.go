// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the application layer to
// remain independent of specific implementations (Chrome, in-memory views, etc.).
package port

import (
	"context"

	"github.com/bnema/casement/internal/domain/entity"
)

// ContentViewCallbacks defines handlers for content view events.
// Backends may invoke them from any goroutine; consumers must not block.
type ContentViewCallbacks struct {
	// OnNavigated is called when the main frame commits a new URL.
	OnNavigated func(url string)
	// OnTitleUpdated is called when the page title changes.
	OnTitleUpdated func(title string)
	// OnDOMReady is called once the document has been parsed.
	OnDOMReady func()
	// OnLoadFinished is called when the page and its subresources have loaded.
	OnLoadFinished func()
	// OnLoadFailed is called when a navigation fails.
	OnLoadFailed func(err *entity.LoadError)
	// OnEnterFullscreen and OnLeaveFullscreen mirror HTML fullscreen requests.
	OnEnterFullscreen func()
	OnLeaveFullscreen func()
}

// ContentView is an isolated rendering context bound to one tab.
type ContentView interface {
	// --- Navigation ---

	// Load starts navigating to url. It returns once the navigation is
	// issued; progress is reported through callbacks.
	Load(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	// Stop aborts an in-flight load.
	Stop(ctx context.Context) error
	GoBack(ctx context.Context) error
	GoForward(ctx context.Context) error

	// --- State Queries ---

	CanGoBack() bool
	CanGoForward() bool
	// URL returns the URL currently committed in the view.
	URL() string
	Title() string

	// --- Presentation ---

	SetZoomFactor(ctx context.Context, factor float64) error
	SetAudioMuted(ctx context.Context, muted bool) error
	// Reparent attaches the view to another window surface.
	Reparent(ctx context.Context, windowID entity.WindowID) error

	// --- Lifecycle ---

	// Destroy releases the view. Callbacks are not invoked afterwards.
	Destroy(ctx context.Context) error
	SetCallbacks(callbacks *ContentViewCallbacks)
}

// ContentViewFactory allocates content views.
type ContentViewFactory interface {
	// Create allocates a view for a tab in the given window. An error here
	// means the rendering engine is unusable.
	Create(ctx context.Context, tabID entity.TabID, windowID entity.WindowID) (ContentView, error)
	// Close releases engine-wide resources.
	Close(ctx context.Context) error
}
