package controller

import (
	"context"
	"fmt"

	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/logging"
)

// handleDetachTab moves a tab into a new window in a single loop step.
func (c *Controller) handleDetachTab(ctx context.Context, id entity.TabID) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}
	origin, err := c.table.Window(tab.WindowID)
	if err != nil {
		return Result{}, err
	}
	if origin.Len() == 1 {
		if origin.IsMain {
			return Result{}, fmt.Errorf("detach tab %d: %w", id, entity.ErrMainWindowRequired)
		}
		// Already alone in its own window.
		return Result{TabID: id, WindowID: origin.ID}, nil
	}

	dst := c.table.OpenWindow()
	if err := c.transfer(ctx, tab, dst, true); err != nil {
		return Result{}, err
	}

	logging.FromContext(ctx).Info().
		Uint64("tab_id", uint64(id)).
		Uint64("from_window", uint64(origin.ID)).
		Uint64("window_id", uint64(dst.ID)).
		Msg("tab detached")

	if err := c.host.OpenWindow(ctx, dst.ID); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Uint64("window_id", uint64(dst.ID)).Msg("window host failed to open surface")
	}

	if origin.IsMain {
		_ = c.persist(ctx)
	}
	c.publishAll()
	return Result{TabID: id, WindowID: dst.ID}, nil
}

// handleReattachTab moves a tab into an existing window (main when target is 0).
func (c *Controller) handleReattachTab(ctx context.Context, id entity.TabID, target entity.WindowID) (Result, error) {
	tab, err := c.table.Tab(id)
	if err != nil {
		return Result{}, err
	}
	dst, err := c.table.Window(c.windowOrMain(target))
	if err != nil {
		return Result{}, err
	}
	if tab.WindowID == dst.ID {
		return c.handleActivateTab(id)
	}
	origin, err := c.table.Window(tab.WindowID)
	if err != nil {
		return Result{}, err
	}
	if origin.IsMain && origin.Len() == 1 {
		return Result{}, fmt.Errorf("move tab %d out of main: %w", id, entity.ErrMainWindowRequired)
	}

	if err := c.transfer(ctx, tab, dst, true); err != nil {
		return Result{}, err
	}

	logging.FromContext(ctx).Info().
		Uint64("tab_id", uint64(id)).
		Uint64("from_window", uint64(origin.ID)).
		Uint64("window_id", uint64(dst.ID)).
		Msg("tab reattached")

	if origin.IsMain || dst.IsMain {
		_ = c.persist(ctx)
	}
	c.publishAll()
	return Result{TabID: id, WindowID: dst.ID}, nil
}

// transfer moves a tab between windows and reparents its view. The origin
// window gets a new focus if it lost its active tab; an emptied detached
// origin is destroyed.
func (c *Controller) transfer(ctx context.Context, tab *entity.Tab, dst *entity.Window, activate bool) error {
	originID := tab.WindowID

	if tab.State == entity.TabActive || tab.State == entity.TabInactive {
		if err := tab.Transition(entity.TabDetaching); err != nil {
			return err
		}
	}

	successor, err := c.table.Move(tab.ID, dst.ID)
	if err != nil {
		return err
	}

	switch {
	case activate || dst.ActiveTabID == 0:
		err = c.table.Activate(tab.ID)
	case tab.State == entity.TabDetaching:
		err = c.table.Settle(tab.ID)
	}
	if err != nil {
		return err
	}

	if view, ok := c.contents[tab.ID]; ok {
		if err := view.Reparent(ctx, dst.ID); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Uint64("tab_id", uint64(tab.ID)).Msg("failed to reparent content view")
		}
	}

	return c.refocus(ctx, originID, successor, dropEmpty)
}

// handleCloseWindow closes a window surface. The main window only closes
// when no detached window exists, and closing it requests shutdown.
func (c *Controller) handleCloseWindow(ctx context.Context, windowID entity.WindowID) (Result, error) {
	w, err := c.table.Window(c.windowOrMain(windowID))
	if err != nil {
		return Result{}, err
	}

	if w.IsMain {
		if c.table.MainHasDetachedWindows() {
			return Result{}, fmt.Errorf("close main window with %d detached: %w",
				c.table.DetachedCount(), entity.ErrMainWindowRequired)
		}
		_ = c.persist(ctx)
		logging.FromContext(ctx).Info().Msg("main window closed, shutdown requested")
		c.requestShutdown()
		return Result{WindowID: w.ID, Shutdown: true}, nil
	}

	main := c.table.Main()
	for _, tab := range c.table.TabsIn(w.ID) {
		if tab.Pinned {
			if err := c.transfer(ctx, tab, main, false); err != nil {
				return Result{}, err
			}
			continue
		}
		successor, err := c.destroyTab(ctx, tab)
		if err != nil {
			return Result{}, err
		}
		if err := c.refocus(ctx, w.ID, successor, dropEmpty); err != nil {
			return Result{}, err
		}
	}
	// The last transfer or close already destroyed the emptied window.
	if _, err := c.table.Window(w.ID); err == nil {
		if err := c.destroyWindow(ctx, w.ID); err != nil {
			return Result{}, err
		}
	}

	_ = c.persist(ctx)
	c.publishAll()
	return Result{WindowID: w.ID}, nil
}

// destroyWindow removes an empty detached window and tells its surface.
func (c *Controller) destroyWindow(ctx context.Context, id entity.WindowID) error {
	if err := c.table.CloseWindow(id); err != nil {
		return err
	}
	c.publisher.WindowClosed(id)

	ctx = logging.WithWindowID(ctx, uint64(id))
	log := logging.FromContext(ctx)
	if err := c.host.CloseWindow(ctx, id); err != nil {
		log.Warn().Err(err).Msg("window host failed to close surface")
	}
	log.Debug().Msg("window destroyed")
	return nil
}
