package contentview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/logging"
)

// CDPOptions configures the Chrome backend.
type CDPOptions struct {
	// RemoteURL attaches to a running Chrome (ws://...) instead of launching one.
	RemoteURL string
	// ExecPath overrides the Chrome binary lookup.
	ExecPath    string
	UserDataDir string
	Headless    bool
	// Flags are extra command-line switches; a true value passes a bare switch.
	Flags map[string]any
	// StartTimeout bounds browser start-up.
	StartTimeout time.Duration
	// Filter is consulted for every paused request.
	Filter port.RequestFilter
}

// DefaultStartTimeout bounds the browser start when StartTimeout is zero.
const DefaultStartTimeout = 20 * time.Second

// CDPFactory drives one Chrome process; every content view is a page target.
type CDPFactory struct {
	opts CDPOptions

	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	cancel      context.CancelFunc

	mu     sync.Mutex
	views  map[entity.TabID]*CDPView
	closed bool
}

// NewCDPFactory starts (or attaches to) Chrome.
func NewCDPFactory(ctx context.Context, opts CDPOptions) (*CDPFactory, error) {
	log := logging.FromContext(ctx)
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = DefaultStartTimeout
	}

	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if opts.RemoteURL != "" {
		log.Info().Str("url", opts.RemoteURL).Msg("connecting to chrome")
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), opts.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), buildAllocatorOptions(opts)...)
	}

	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...any) {
		log.Debug().Msgf(format, args...)
	}))

	startCtx, startDone := context.WithTimeout(ctx, opts.StartTimeout)
	defer startDone()

	errCh := make(chan error, 1)
	go func() { errCh <- chromedp.Run(browserCtx) }()

	select {
	case err := <-errCh:
		if err != nil {
			cancel()
			allocCancel()
			return nil, fmt.Errorf("start chrome: %w", err)
		}
	case <-startCtx.Done():
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: timed out after %s", opts.StartTimeout)
	}

	log.Info().Bool("headless", opts.Headless).Msg("chrome started")

	return &CDPFactory{
		opts:        opts,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		browserCtx:  browserCtx,
		cancel:      cancel,
		views:       make(map[entity.TabID]*CDPView),
	}, nil
}

func buildAllocatorOptions(opts CDPOptions) []chromedp.ExecAllocatorOption {
	out := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-backgrounding-occluded-windows", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-session-crashed-bubble", true),
		chromedp.Flag("hide-crash-restore-bubble", true),
		chromedp.Flag("disable-sync", true),
	}
	if opts.UserDataDir != "" {
		out = append(out, chromedp.UserDataDir(opts.UserDataDir))
	}
	if opts.ExecPath != "" {
		out = append(out, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.Headless {
		out = append(out, chromedp.Headless)
	} else {
		out = append(out, chromedp.Flag("headless", false))
	}
	for k, v := range opts.Flags {
		out = append(out, chromedp.Flag(strings.TrimLeft(k, "-"), v))
	}
	return out
}

// Create opens a new page target for the tab.
func (f *CDPFactory) Create(ctx context.Context, tabID entity.TabID, windowID entity.WindowID) (port.ContentView, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, errors.New("chrome factory closed")
	}
	f.mu.Unlock()

	tabCtx, cancel := chromedp.NewContext(f.browserCtx)
	v := &CDPView{
		factory:  f,
		tabID:    tabID,
		windowID: windowID,
		ctx:      tabCtx,
		cancel:   cancel,
		filter:   f.opts.Filter,
		tasks:    newTaskQueue(),
		logger: logging.FromContext(ctx).With().
			Str("component", "cdp-view").
			Uint64("tab_id", uint64(tabID)).
			Logger(),
	}

	go v.tasks.run(tabCtx.Done())
	chromedp.ListenTarget(tabCtx, v.onEvent)

	actions := []chromedp.Action{
		page.Enable(),
		network.Enable(),
		runtime.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(fullscreenScript).Do(ctx)
			return err
		}),
	}
	if v.filter != nil {
		actions = append(actions, fetch.Enable())
	}
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		cancel()
		return nil, fmt.Errorf("open page target for tab %d: %w", tabID, err)
	}

	f.mu.Lock()
	f.views[tabID] = v
	f.mu.Unlock()

	v.logger.Debug().Uint64("window_id", uint64(windowID)).Msg("page target created")
	return v, nil
}

// Close closes every page and stops Chrome.
func (f *CDPFactory) Close(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	views := make([]*CDPView, 0, len(f.views))
	for _, v := range f.views {
		views = append(views, v)
	}
	f.mu.Unlock()

	for _, v := range views {
		_ = v.Destroy(ctx)
	}

	err := chromedp.Cancel(f.browserCtx)
	f.cancel()
	f.allocCancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stop chrome: %w", err)
	}
	logging.FromContext(ctx).Info().Msg("chrome stopped")
	return nil
}

func (f *CDPFactory) release(tabID entity.TabID) {
	f.mu.Lock()
	delete(f.views, tabID)
	f.mu.Unlock()
}

// CDPView is one Chrome page target. Commands run on the page's chromedp
// context; events are translated into callbacks on one worker goroutine
// per view, in arrival order.
type CDPView struct {
	factory *CDPFactory
	tabID   entity.TabID
	ctx     context.Context
	cancel  context.CancelFunc
	filter  port.RequestFilter
	logger  zerolog.Logger
	tasks   *taskQueue

	mu        sync.Mutex
	windowID  entity.WindowID
	url       string
	title     string
	canBack   bool
	canFwd    bool
	destroyed bool
	callbacks *port.ContentViewCallbacks
	loadStop  context.CancelFunc

	// fireMu keeps callbacks of one view in order.
	fireMu sync.Mutex
}

// Load issues the navigation and returns; the outcome arrives via callbacks.
func (v *CDPView) Load(_ context.Context, url string) error {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return ErrDestroyed
	}
	if v.loadStop != nil {
		v.loadStop()
	}
	loadCtx, stop := context.WithCancel(v.ctx)
	v.loadStop = stop
	v.mu.Unlock()

	go func() {
		defer stop()
		err := chromedp.Run(loadCtx, chromedp.Navigate(url))
		if err == nil || loadCtx.Err() != nil {
			return
		}
		v.logger.Debug().Err(err).Str("url", url).Msg("navigation failed")
		v.post(func(cb *port.ContentViewCallbacks) {
			if cb.OnLoadFailed != nil {
				cb.OnLoadFailed(loadErrorFrom(url, err))
			}
		})
	}()
	return nil
}

func (v *CDPView) Reload(context.Context) error {
	return v.run(page.Reload())
}

// Stop aborts the in-flight navigation.
func (v *CDPView) Stop(context.Context) error {
	v.mu.Lock()
	if v.loadStop != nil {
		v.loadStop()
		v.loadStop = nil
	}
	v.mu.Unlock()
	return v.run(page.StopLoading())
}

func (v *CDPView) GoBack(context.Context) error {
	return v.navigateHistory(-1)
}

func (v *CDPView) GoForward(context.Context) error {
	return v.navigateHistory(1)
}

func (v *CDPView) navigateHistory(delta int64) error {
	return v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		current, entries, err := page.GetNavigationHistory().Do(ctx)
		if err != nil {
			return err
		}
		idx := current + delta
		if idx < 0 || idx >= int64(len(entries)) {
			return nil
		}
		return page.NavigateToHistoryEntry(entries[idx].ID).Do(ctx)
	}))
}

func (v *CDPView) CanGoBack() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canBack
}

func (v *CDPView) CanGoForward() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canFwd
}

func (v *CDPView) URL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.url
}

func (v *CDPView) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

// SetZoomFactor scales the page.
func (v *CDPView) SetZoomFactor(_ context.Context, factor float64) error {
	return v.run(emulation.SetPageScaleFactor(factor))
}

// SetAudioMuted mutes every media element of the page, including ones added later.
func (v *CDPView) SetAudioMuted(_ context.Context, muted bool) error {
	return v.run(chromedp.Evaluate(muteScript(muted), nil))
}

func muteScript(muted bool) string {
	return fmt.Sprintf(`(() => {
  const muted = %t;
  window.__casementMuted = muted;
  document.querySelectorAll('audio,video').forEach(m => { m.muted = muted; });
  if (!window.__casementMuteObserver) {
    window.__casementMuteObserver = new MutationObserver(() => {
      document.querySelectorAll('audio,video').forEach(m => { m.muted = window.__casementMuted; });
    });
    window.__casementMuteObserver.observe(document.documentElement, {childList: true, subtree: true});
  }
})()`, muted)
}

// Reparent brings the page target to the front for its new window. Chrome
// targets have no window parent to change.
func (v *CDPView) Reparent(_ context.Context, windowID entity.WindowID) error {
	v.mu.Lock()
	v.windowID = windowID
	v.mu.Unlock()

	c := chromedp.FromContext(v.ctx)
	if c == nil || c.Target == nil {
		return nil
	}
	return v.run(target.ActivateTarget(c.Target.TargetID))
}

// Destroy closes the page target.
func (v *CDPView) Destroy(context.Context) error {
	v.fireMu.Lock()
	defer v.fireMu.Unlock()

	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return ErrDestroyed
	}
	v.destroyed = true
	v.callbacks = nil
	if v.loadStop != nil {
		v.loadStop()
		v.loadStop = nil
	}
	v.mu.Unlock()

	err := chromedp.Cancel(v.ctx)
	v.cancel()
	v.factory.release(v.tabID)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close page target: %w", err)
	}
	v.logger.Debug().Msg("page target closed")
	return nil
}

func (v *CDPView) SetCallbacks(callbacks *port.ContentViewCallbacks) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.callbacks = callbacks
}

func (v *CDPView) run(actions ...chromedp.Action) error {
	v.mu.Lock()
	destroyed := v.destroyed
	v.mu.Unlock()
	if destroyed {
		return ErrDestroyed
	}
	return chromedp.Run(v.ctx, actions...)
}

// onEvent runs on chromedp's event goroutine and must not block.
func (v *CDPView) onEvent(ev any) {
	switch e := ev.(type) {
	case *page.EventFrameNavigated:
		if e.Frame == nil || e.Frame.ParentID != "" {
			return
		}
		url := frameURL(e.Frame)
		v.mu.Lock()
		v.url = url
		v.mu.Unlock()
		v.afterNavigation(func(cb *port.ContentViewCallbacks) {
			if cb.OnNavigated != nil {
				cb.OnNavigated(url)
			}
		})
	case *page.EventNavigatedWithinDocument:
		url := e.URL
		v.mu.Lock()
		v.url = url
		v.mu.Unlock()
		v.afterNavigation(func(cb *port.ContentViewCallbacks) {
			if cb.OnNavigated != nil {
				cb.OnNavigated(url)
			}
		})
	case *page.EventDomContentEventFired:
		v.post(func(cb *port.ContentViewCallbacks) {
			if cb.OnDOMReady != nil {
				cb.OnDOMReady()
			}
		})
	case *page.EventLoadEventFired:
		v.tasks.submit(v.afterLoad)
	case *runtime.EventConsoleAPICalled:
		// Fullscreen changes are reported by an injected listener.
		if e.Type != runtime.APITypeDebug || len(e.Args) == 0 {
			return
		}
		switch strings.Trim(string(e.Args[0].Value), `"`) {
		case fullscreenEnterMarker:
			v.post(func(cb *port.ContentViewCallbacks) {
				if cb.OnEnterFullscreen != nil {
					cb.OnEnterFullscreen()
				}
			})
		case fullscreenLeaveMarker:
			v.post(func(cb *port.ContentViewCallbacks) {
				if cb.OnLeaveFullscreen != nil {
					cb.OnLeaveFullscreen()
				}
			})
		}
	case *fetch.EventRequestPaused:
		go v.decide(e)
	}
}

const (
	fullscreenEnterMarker = "casement:fullscreen:enter"
	fullscreenLeaveMarker = "casement:fullscreen:leave"
)

// fullscreenScript reports HTML fullscreen changes through console.debug.
var fullscreenScript = fmt.Sprintf(`document.addEventListener('fullscreenchange', () => {
  console.debug(document.fullscreenElement ? %q : %q);
});`, fullscreenEnterMarker, fullscreenLeaveMarker)

// afterNavigation refreshes history capability before reporting, so the
// snapshot built from the callback sees current flags.
func (v *CDPView) afterNavigation(report func(cb *port.ContentViewCallbacks)) {
	v.tasks.submit(func() {
		v.refreshHistory()
		v.fire(report)
	})
}

// post queues a callback behind the view's earlier events.
func (v *CDPView) post(fn func(cb *port.ContentViewCallbacks)) {
	v.tasks.submit(func() { v.fire(fn) })
}

func (v *CDPView) afterLoad() {
	var title string
	if err := v.run(chromedp.Title(&title)); err == nil {
		v.mu.Lock()
		v.title = title
		v.mu.Unlock()
		v.fire(func(cb *port.ContentViewCallbacks) {
			if cb.OnTitleUpdated != nil {
				cb.OnTitleUpdated(title)
			}
		})
	}
	v.fire(func(cb *port.ContentViewCallbacks) {
		if cb.OnLoadFinished != nil {
			cb.OnLoadFinished()
		}
	})
}

func (v *CDPView) refreshHistory() {
	_ = v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		current, entries, err := page.GetNavigationHistory().Do(ctx)
		if err != nil {
			return err
		}
		v.mu.Lock()
		v.canBack = current > 0
		v.canFwd = current < int64(len(entries))-1
		v.mu.Unlock()
		return nil
	}))
}

// decide continues or fails a paused request according to the filter.
func (v *CDPView) decide(e *fetch.EventRequestPaused) {
	var action chromedp.Action = fetch.ContinueRequest(e.RequestID)
	if v.filter != nil && e.Request != nil {
		if d := v.filter.Decide(e.Request.URL, string(e.ResourceType)); d.Block {
			v.logger.Debug().
				Str("url", e.Request.URL).
				Str("resource_type", string(e.ResourceType)).
				Str("reason", d.Reason).
				Msg("request blocked")
			action = fetch.FailRequest(e.RequestID, network.ErrorReasonBlockedByClient)
		}
	}
	if err := v.run(action); err != nil && !errors.Is(err, ErrDestroyed) {
		v.logger.Trace().Err(err).Msg("paused request not resumed")
	}
}

func (v *CDPView) fire(fn func(cb *port.ContentViewCallbacks)) {
	v.fireMu.Lock()
	defer v.fireMu.Unlock()

	v.mu.Lock()
	cb := v.callbacks
	destroyed := v.destroyed
	v.mu.Unlock()

	if cb == nil || destroyed {
		return
	}
	fn(cb)
}

func frameURL(f *cdp.Frame) string {
	return f.URL + f.URLFragment
}

// loadErrorFrom maps a chromedp navigation error to a load error. Chrome
// reports failures as "page load error net::ERR_...".
func loadErrorFrom(url string, err error) *entity.LoadError {
	msg := err.Error()
	if i := strings.Index(msg, "net::"); i >= 0 {
		msg = msg[i:]
	}
	return &entity.LoadError{URL: url, Code: netErrorCode(msg), Description: msg}
}

var netErrorCodes = map[string]int{
	"net::ERR_ABORTED":                -3,
	"net::ERR_BLOCKED_BY_CLIENT":      netErrBlockedByClient,
	"net::ERR_CONNECTION_REFUSED":     -102,
	"net::ERR_CONNECTION_RESET":       -101,
	"net::ERR_NAME_NOT_RESOLVED":      netErrNameNotResolved,
	"net::ERR_INTERNET_DISCONNECTED":  -106,
	"net::ERR_TIMED_OUT":              -7,
	"net::ERR_CERT_AUTHORITY_INVALID": -202,
}

func netErrorCode(msg string) int {
	for prefix, code := range netErrorCodes {
		if strings.HasPrefix(msg, prefix) {
			return code
		}
	}
	return 0
}

var (
	_ port.ContentViewFactory = (*CDPFactory)(nil)
	_ port.ContentView        = (*CDPView)(nil)
)
