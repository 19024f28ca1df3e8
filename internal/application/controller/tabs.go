package controller

import (
	"context"
	"fmt"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	urlutil "github.com/bnema/casement/internal/domain/url"
	"github.com/bnema/casement/internal/logging"
)

func (c *Controller) handleCreateTab(ctx context.Context, url string, opts port.CreateTabOptions) (Result, error) {
	windowID := c.windowOrMain(opts.WindowID)
	w, err := c.table.Window(windowID)
	if err != nil {
		return Result{}, err
	}
	if url == "" {
		url = c.cfg.HomeURL
	}

	tab, ready, err := c.openTab(ctx, w, url, opts.Pinned, opts.Activate, opts.Origin)
	if err != nil {
		return Result{}, err
	}

	if w.IsMain {
		_ = c.persist(ctx)
	}
	c.publish(w.ID)

	return Result{TabID: tab.ID, WindowID: w.ID, Ready: ready}, nil
}

// openTab allocates the record and its content view, then starts the load.
// A factory failure is fatal for the controller.
func (c *Controller) openTab(
	ctx context.Context,
	w *entity.Window,
	url string,
	pinned, activate bool,
	origin string,
) (*entity.Tab, <-chan struct{}, error) {
	id := c.table.NextTabID()
	log := logging.FromContext(ctx).With().
		Uint64("tab_id", uint64(id)).
		Uint64("window_id", uint64(w.ID)).
		Logger()

	view, err := c.views.Create(ctx, id, w.ID)
	if err != nil {
		c.fatal = fmt.Errorf("%w: %w", entity.ErrContentViewUnavailable, err)
		return nil, nil, c.fatal
	}

	tab := entity.NewTab(id, w.ID, url)
	tab.Pinned = pinned
	if err := c.table.Insert(tab); err != nil {
		_ = view.Destroy(ctx)
		return nil, nil, err
	}

	ready := make(chan struct{})
	c.contents[id] = view
	c.ready[id] = ready
	view.SetCallbacks(c.callbacksFor(id))

	if activate || w.ActiveTabID == 0 {
		if err := c.table.Activate(id); err != nil {
			return nil, nil, err
		}
	}

	log.Debug().
		Str("url", url).
		Bool("pinned", pinned).
		Str("origin", origin).
		Msg("tab created")

	if err := view.Load(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("content view refused load")
		tab.LoadError = &entity.LoadError{URL: url, Description: err.Error()}
		c.markReady(tab)
	}

	return tab, ready, nil
}

func (c *Controller) handleActivateTab(id entity.TabID) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}
	if err := c.table.Activate(id); err != nil {
		return Result{}, err
	}
	c.publish(tab.WindowID)
	return Result{TabID: id, WindowID: tab.WindowID}, nil
}

// handleActivateFallback focuses the first tab of a window, or opens a
// default tab when the window is empty.
func (c *Controller) handleActivateFallback(ctx context.Context, windowID entity.WindowID) (Result, error) {
	w, err := c.table.Window(c.windowOrMain(windowID))
	if err != nil {
		return Result{}, err
	}
	if w.IsEmpty() {
		return c.handleCreateTab(ctx, "", port.CreateTabOptions{
			WindowID: w.ID,
			Activate: true,
			Origin:   "fallback",
		})
	}
	return c.handleActivateTab(w.First())
}

func (c *Controller) handleCloseTab(ctx context.Context, id entity.TabID) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}
	if tab.Pinned {
		return Result{}, fmt.Errorf("close tab %d: %w", id, entity.ErrPinnedTab)
	}

	windowID := tab.WindowID
	successor, err := c.destroyTab(ctx, tab)
	if err != nil {
		return Result{}, err
	}
	if err := c.refocus(ctx, windowID, successor, refillEmpty); err != nil {
		return Result{}, err
	}

	if windowID == entity.MainWindowID {
		_ = c.persist(ctx)
	}
	c.publishAll()
	return Result{TabID: id, WindowID: windowID}, nil
}

func (c *Controller) handleCloseAllUnpinned(ctx context.Context, windowID entity.WindowID) (Result, error) {
	w, err := c.table.Window(c.windowOrMain(windowID))
	if err != nil {
		return Result{}, err
	}

	var successor entity.TabID
	for _, tab := range c.table.TabsIn(w.ID) {
		if tab.Pinned {
			continue
		}
		next, err := c.destroyTab(ctx, tab)
		if err != nil {
			return Result{}, err
		}
		if next != 0 {
			successor = next
		}
	}
	// The recorded successor may itself have been closed later in the loop.
	if _, err := c.table.Tab(successor); err != nil {
		successor = 0
	}
	if w.ActiveTabID == 0 && successor == 0 {
		successor = w.First()
	}
	if err := c.refocus(ctx, w.ID, successor, refillEmpty); err != nil {
		return Result{}, err
	}

	if w.IsMain {
		_ = c.persist(ctx)
	}
	c.publishAll()
	return Result{WindowID: w.ID}, nil
}

// destroyTab stops and releases the tab's content view and drops the record.
// It returns the tab that should be focused next in the tab's window.
func (c *Controller) destroyTab(ctx context.Context, tab *entity.Tab) (entity.TabID, error) {
	ctx = logging.WithTabID(ctx, uint64(tab.ID))
	log := logging.FromContext(ctx)

	if err := tab.Transition(entity.TabClosing); err != nil {
		return 0, err
	}
	if view, ok := c.contents[tab.ID]; ok {
		if err := view.Stop(ctx); err != nil {
			log.Debug().Err(err).Msg("stop before destroy failed")
		}
		if err := view.Destroy(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to destroy content view")
		}
		delete(c.contents, tab.ID)
	}
	if ready, ok := c.ready[tab.ID]; ok {
		close(ready)
		delete(c.ready, tab.ID)
	}

	_, successor, err := c.table.Remove(tab.ID)
	if err != nil {
		return 0, err
	}
	_ = tab.Transition(entity.TabClosed)

	log.Debug().Msg("tab closed")
	return successor, nil
}

// whenEmpty says what refocus does with a window that has no tabs left.
type whenEmpty int

const (
	// refillEmpty opens a default tab. The main window always refills.
	refillEmpty whenEmpty = iota
	// dropEmpty destroys an emptied detached window.
	dropEmpty
)

// refocus restores the non-empty and focused invariants of a window after
// tabs left it.
func (c *Controller) refocus(ctx context.Context, windowID entity.WindowID, successor entity.TabID, empty whenEmpty) error {
	w, err := c.table.Window(windowID)
	if err != nil {
		return err
	}
	if w.IsEmpty() {
		if w.IsMain || empty == refillEmpty {
			_, _, err := c.openTab(ctx, w, c.cfg.HomeURL, false, true, "default")
			return err
		}
		return c.destroyWindow(ctx, w.ID)
	}
	if successor != 0 {
		return c.table.Activate(successor)
	}
	if w.ActiveTabID == 0 {
		return c.table.Activate(w.First())
	}
	return nil
}

func (c *Controller) handleSetPinned(ctx context.Context, id entity.TabID, pinned bool) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}
	if tab.Pinned != pinned {
		tab.Pinned = pinned
		if tab.WindowID == entity.MainWindowID {
			_ = c.persist(ctx)
		}
	}
	c.publish(tab.WindowID)
	return Result{TabID: id, WindowID: tab.WindowID}, nil
}

func (c *Controller) handleSetMuted(ctx context.Context, id entity.TabID, muted bool) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}
	tab.Muted = muted
	if view, ok := c.contents[id]; ok {
		if err := view.SetAudioMuted(ctx, muted); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Uint64("tab_id", uint64(id)).Msg("failed to apply mute")
		}
	}
	c.publish(tab.WindowID)
	return Result{TabID: id, WindowID: tab.WindowID}, nil
}

func (c *Controller) handleZoom(ctx context.Context, op Op, id entity.TabID, factor float64) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}

	var changed bool
	switch op {
	case OpZoomIn:
		changed = tab.ZoomIn()
	case OpZoomOut:
		changed = tab.ZoomOut()
	case OpResetZoom:
		changed = tab.ResetZoom()
	default:
		changed = tab.SetZoom(factor)
	}

	if changed {
		if view, ok := c.contents[id]; ok {
			if err := view.SetZoomFactor(ctx, tab.Zoom); err != nil {
				logging.FromContext(ctx).Warn().Err(err).Uint64("tab_id", uint64(id)).Msg("failed to apply zoom")
			}
		}
		if tab.WindowID == entity.MainWindowID {
			_ = c.persist(ctx)
		}
	}
	c.publish(tab.WindowID)
	return Result{TabID: id, WindowID: tab.WindowID, Zoom: tab.Zoom}, nil
}

func (c *Controller) handleNavigate(ctx context.Context, id entity.TabID, input string) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}
	view, ok := c.contents[id]
	if !ok {
		return Result{}, fmt.Errorf("navigate tab %d: %w", id, entity.ErrUnknownTab)
	}

	target := urlutil.Resolve(input, c.cfg.SearchTemplate)
	tab.LoadError = nil
	if err := view.Load(ctx, target); err != nil {
		tab.LoadError = &entity.LoadError{URL: target, Description: err.Error()}
	}
	c.publish(tab.WindowID)
	return Result{TabID: id, WindowID: tab.WindowID}, nil
}

// handleHistoryNav runs reload/back/forward. Back and forward are no-ops when
// the view reports it cannot move.
func (c *Controller) handleHistoryNav(ctx context.Context, op Op, id entity.TabID) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}
	view, ok := c.contents[id]
	if !ok {
		return Result{}, fmt.Errorf("%s tab %d: %w", op, id, entity.ErrUnknownTab)
	}

	switch op {
	case OpReload:
		tab.LoadError = nil
		err = view.Reload(ctx)
	case OpGoBack:
		if view.CanGoBack() {
			err = view.GoBack(ctx)
		}
	case OpGoForward:
		if view.CanGoForward() {
			err = view.GoForward(ctx)
		}
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s tab %d: %w", op, id, err)
	}
	c.publish(tab.WindowID)
	return Result{TabID: id, WindowID: tab.WindowID}, nil
}
