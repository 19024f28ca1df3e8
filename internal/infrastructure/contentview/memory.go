// Package contentview provides content view backends: an in-process
// simulated view and a Chrome DevTools Protocol view per tab.
package contentview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	urlutil "github.com/bnema/casement/internal/domain/url"
	"github.com/bnema/casement/internal/logging"
)

// ErrDestroyed is returned by calls on a destroyed view.
var ErrDestroyed = errors.New("content view destroyed")

// ErrViewLimit is returned when the memory factory runs out of view slots.
var ErrViewLimit = errors.New("content view limit reached")

// Chromium net error codes reported by the simulated backend.
const (
	netErrNameNotResolved = -105
	netErrBlockedByClient = -20
)

// MemoryOptions configures the simulated backend.
type MemoryOptions struct {
	// LoadDelay is the time between Load and the first reported event.
	LoadDelay time.Duration
	// Hang suppresses every load outcome; views never become ready.
	Hang bool
	// MaxViews caps live views; zero means unlimited.
	MaxViews int
	// Filter is consulted for every document load.
	Filter port.RequestFilter
}

// MemoryFactory creates simulated content views. Hosts under the reserved
// ".invalid" TLD fail to resolve; everything else loads successfully.
type MemoryFactory struct {
	opts MemoryOptions

	mu    sync.Mutex
	views map[entity.TabID]*MemoryView
}

// NewMemoryFactory creates a factory for simulated views.
func NewMemoryFactory(opts MemoryOptions) *MemoryFactory {
	return &MemoryFactory{
		opts:  opts,
		views: make(map[entity.TabID]*MemoryView),
	}
}

// Create allocates a simulated view.
func (f *MemoryFactory) Create(ctx context.Context, tabID entity.TabID, windowID entity.WindowID) (port.ContentView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.opts.MaxViews > 0 && len(f.views) >= f.opts.MaxViews {
		return nil, fmt.Errorf("create view for tab %d: %w", tabID, ErrViewLimit)
	}

	v := &MemoryView{
		factory:  f,
		tabID:    tabID,
		windowID: windowID,
		opts:     f.opts,
	}
	f.views[tabID] = v

	logging.FromContext(ctx).Trace().
		Uint64("tab_id", uint64(tabID)).
		Uint64("window_id", uint64(windowID)).
		Msg("memory view created")
	return v, nil
}

// View returns the live view of a tab, if any.
func (f *MemoryFactory) View(tabID entity.TabID) (*MemoryView, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.views[tabID]
	return v, ok
}

// Len reports the number of live views.
func (f *MemoryFactory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.views)
}

// Close destroys every live view.
func (f *MemoryFactory) Close(ctx context.Context) error {
	f.mu.Lock()
	views := make([]*MemoryView, 0, len(f.views))
	for _, v := range f.views {
		views = append(views, v)
	}
	f.mu.Unlock()

	var errs []error
	for _, v := range views {
		if err := v.Destroy(ctx); err != nil && !errors.Is(err, ErrDestroyed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *MemoryFactory) release(tabID entity.TabID) {
	f.mu.Lock()
	delete(f.views, tabID)
	f.mu.Unlock()
}

// MemoryView simulates a page: loads complete after the configured delay and
// navigation history is kept as back and forward stacks.
type MemoryView struct {
	factory  *MemoryFactory
	tabID    entity.TabID
	opts     MemoryOptions
	windowID entity.WindowID

	mu        sync.Mutex
	url       string
	title     string
	back      []string
	forward   []string
	zoom      float64
	muted     bool
	destroyed bool
	callbacks *port.ContentViewCallbacks

	// gen invalidates the pending load on Stop, Destroy or a newer load.
	gen    uint64
	cancel chan struct{}

	// fireMu keeps callbacks of one view in order.
	fireMu sync.Mutex
}

// Load simulates a navigation. The committed URL changes once the load
// commits, not when it is issued.
func (v *MemoryView) Load(ctx context.Context, url string) error {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return ErrDestroyed
	}
	if v.url != "" && v.url != url {
		v.back = append(v.back, v.url)
		v.forward = nil
	}
	v.mu.Unlock()

	v.start(ctx, url)
	return nil
}

// Reload re-runs the load of the current URL.
func (v *MemoryView) Reload(ctx context.Context) error {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return ErrDestroyed
	}
	url := v.url
	v.mu.Unlock()

	if url == "" {
		return nil
	}
	v.start(ctx, url)
	return nil
}

// Stop aborts the pending load, if any.
func (v *MemoryView) Stop(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.destroyed {
		return ErrDestroyed
	}
	v.abortLocked()
	return nil
}

func (v *MemoryView) GoBack(ctx context.Context) error {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return ErrDestroyed
	}
	if len(v.back) == 0 {
		v.mu.Unlock()
		return nil
	}
	target := v.back[len(v.back)-1]
	v.back = v.back[:len(v.back)-1]
	v.forward = append(v.forward, v.url)
	v.mu.Unlock()

	v.start(ctx, target)
	return nil
}

func (v *MemoryView) GoForward(ctx context.Context) error {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return ErrDestroyed
	}
	if len(v.forward) == 0 {
		v.mu.Unlock()
		return nil
	}
	target := v.forward[len(v.forward)-1]
	v.forward = v.forward[:len(v.forward)-1]
	v.back = append(v.back, v.url)
	v.mu.Unlock()

	v.start(ctx, target)
	return nil
}

func (v *MemoryView) CanGoBack() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.back) > 0
}

func (v *MemoryView) CanGoForward() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.forward) > 0
}

func (v *MemoryView) URL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.url
}

func (v *MemoryView) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

func (v *MemoryView) SetZoomFactor(_ context.Context, factor float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.destroyed {
		return ErrDestroyed
	}
	v.zoom = factor
	return nil
}

// Zoom returns the last applied zoom factor.
func (v *MemoryView) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

func (v *MemoryView) SetAudioMuted(_ context.Context, muted bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.destroyed {
		return ErrDestroyed
	}
	v.muted = muted
	return nil
}

// Muted reports the audio state.
func (v *MemoryView) Muted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.muted
}

func (v *MemoryView) Reparent(ctx context.Context, windowID entity.WindowID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.destroyed {
		return ErrDestroyed
	}
	logging.FromContext(ctx).Trace().
		Uint64("tab_id", uint64(v.tabID)).
		Uint64("from_window", uint64(v.windowID)).
		Uint64("window_id", uint64(windowID)).
		Msg("memory view reparented")
	v.windowID = windowID
	return nil
}

// WindowID returns the window the view is attached to.
func (v *MemoryView) WindowID() entity.WindowID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.windowID
}

// Destroy aborts pending work and releases the view. No callback fires
// after Destroy returns.
func (v *MemoryView) Destroy(context.Context) error {
	// Holding fireMu waits out a callback batch that is already running.
	v.fireMu.Lock()
	defer v.fireMu.Unlock()

	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return ErrDestroyed
	}
	v.destroyed = true
	v.abortLocked()
	v.callbacks = nil
	v.mu.Unlock()

	v.factory.release(v.tabID)
	return nil
}

// IsDestroyed reports whether Destroy was called.
func (v *MemoryView) IsDestroyed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.destroyed
}

func (v *MemoryView) SetCallbacks(callbacks *port.ContentViewCallbacks) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.callbacks = callbacks
}

// SetFullscreen simulates the page entering or leaving HTML fullscreen.
func (v *MemoryView) SetFullscreen(on bool) {
	v.fire(v.currentGen(), func(cb *port.ContentViewCallbacks) {
		switch {
		case on && cb.OnEnterFullscreen != nil:
			cb.OnEnterFullscreen()
		case !on && cb.OnLeaveFullscreen != nil:
			cb.OnLeaveFullscreen()
		}
	})
}

// SetPageTitle simulates a title change reported by the page.
func (v *MemoryView) SetPageTitle(title string) {
	v.mu.Lock()
	v.title = title
	v.mu.Unlock()
	v.fire(v.currentGen(), func(cb *port.ContentViewCallbacks) {
		if cb.OnTitleUpdated != nil {
			cb.OnTitleUpdated(title)
		}
	})
}

func (v *MemoryView) currentGen() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen
}

func (v *MemoryView) abortLocked() {
	v.gen++
	if v.cancel != nil {
		close(v.cancel)
		v.cancel = nil
	}
}

// start supersedes any pending load and schedules the outcome of a new one.
func (v *MemoryView) start(ctx context.Context, url string) {
	v.mu.Lock()
	v.abortLocked()
	gen := v.gen
	cancel := make(chan struct{})
	v.cancel = cancel
	v.mu.Unlock()

	if v.opts.Hang {
		logging.FromContext(ctx).Trace().Uint64("tab_id", uint64(v.tabID)).Str("url", url).Msg("memory view hanging load")
		return
	}

	go func() {
		if v.opts.LoadDelay > 0 {
			timer := time.NewTimer(v.opts.LoadDelay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-cancel:
				return
			}
		}
		v.complete(gen, url)
	}()
}

func (v *MemoryView) complete(gen uint64, url string) {
	if failure := v.failureFor(url); failure != nil {
		v.fire(gen, func(cb *port.ContentViewCallbacks) {
			if cb.OnLoadFailed != nil {
				cb.OnLoadFailed(failure)
			}
		})
		return
	}

	title := titleFor(url)
	v.mu.Lock()
	if v.gen != gen {
		v.mu.Unlock()
		return
	}
	v.url = url
	v.title = title
	v.mu.Unlock()

	v.fire(gen, func(cb *port.ContentViewCallbacks) {
		if cb.OnNavigated != nil {
			cb.OnNavigated(url)
		}
		if cb.OnTitleUpdated != nil {
			cb.OnTitleUpdated(title)
		}
		if cb.OnDOMReady != nil {
			cb.OnDOMReady()
		}
		if cb.OnLoadFinished != nil {
			cb.OnLoadFinished()
		}
	})
}

func (v *MemoryView) failureFor(url string) *entity.LoadError {
	if v.opts.Filter != nil {
		if d := v.opts.Filter.Decide(url, "Document"); d.Block {
			return &entity.LoadError{URL: url, Code: netErrBlockedByClient, Description: "blocked: " + d.Reason}
		}
	}
	host := urlutil.ExtractHost(url)
	if host == "invalid" || strings.HasSuffix(host, ".invalid") {
		return &entity.LoadError{URL: url, Code: netErrNameNotResolved, Description: "name not resolved"}
	}
	return nil
}

// fire runs fn with the current callbacks unless the load generation moved on.
func (v *MemoryView) fire(gen uint64, fn func(cb *port.ContentViewCallbacks)) {
	v.fireMu.Lock()
	defer v.fireMu.Unlock()

	v.mu.Lock()
	cb := v.callbacks
	stale := v.gen != gen || v.destroyed
	v.mu.Unlock()

	if cb == nil || stale {
		return
	}
	fn(cb)
}

func titleFor(url string) string {
	if urlutil.IsInternal(url) {
		name := strings.TrimPrefix(url, urlutil.InternalScheme)
		if name == "" {
			return entity.DefaultTabTitle
		}
		return strings.ToUpper(name[:1]) + name[1:]
	}
	if host := urlutil.ExtractDomain(url); host != "" {
		return host
	}
	return url
}

var (
	_ port.ContentViewFactory = (*MemoryFactory)(nil)
	_ port.ContentView        = (*MemoryView)(nil)
)
